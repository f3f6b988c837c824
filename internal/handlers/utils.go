package handlers

import (
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

// stripJSONExtension removes .json extension from a parameter if present
func stripJSONExtension(c *gin.Context, paramName string) {
	value := c.Param(paramName)
	if strings.HasSuffix(value, ".json") {
		for i, param := range c.Params {
			if param.Key == paramName {
				c.Params[i].Value = strings.TrimSuffix(value, ".json")
				break
			}
		}
	}
}

// rawExtra returns the still-escaped extra segment of a catalog path
// (/catalog/{type}/{id}/{extra}), or "" when there is none.
func rawExtra(u *url.URL) string {
	parts := strings.SplitN(strings.TrimPrefix(u.EscapedPath(), "/"), "/", 4)
	if len(parts) < 4 {
		return ""
	}
	return parts[3]
}

// parseExtra decodes Stremio's path-encoded extra arguments ("search=a%20b&skip=24").
// extra must still be escaped: pairs are split first, then each key and value
// is unescaped once, so "%26" and "%2B" survive as '&' and '+'.
func parseExtra(extra string) map[string]string {
	out := make(map[string]string)
	for _, param := range strings.Split(extra, "&") {
		key, value, ok := strings.Cut(param, "=")
		if !ok || key == "" {
			continue
		}
		if k, err := url.PathUnescape(key); err == nil {
			key = k
		}
		if v, err := url.PathUnescape(value); err == nil {
			value = v
		}
		out[key] = value
	}
	return out
}
