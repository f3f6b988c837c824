package scraper

import (
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/amaumene/film21/internal/media"
)

var imageSizeRegex = regexp.MustCompile(`-\d+x\d+`)

// AbsURL resolves ref against base. Blank refs resolve to "". When base is nil
// or ref cannot be parsed, the trimmed ref is returned unchanged.
func AbsURL(base *url.URL, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	r, err := url.Parse(ref)
	if err != nil || base == nil {
		return ref
	}
	return base.ResolveReference(r).String()
}

// ImageAttr returns the lazy-load aware image source of an <img>: data-src,
// then data-lazy-src, then the first srcset candidate, then src.
func ImageAttr(img *goquery.Selection, base *url.URL) string {
	if v, ok := img.Attr("data-src"); ok {
		return AbsURL(base, v)
	}
	if v, ok := img.Attr("data-lazy-src"); ok {
		return AbsURL(base, v)
	}
	if v, ok := img.Attr("srcset"); ok {
		first, _, _ := strings.Cut(strings.TrimSpace(v), " ")
		return AbsURL(base, first)
	}
	return AbsURL(base, img.AttrOr("src", ""))
}

// FixImageQuality drops the WordPress thumbnail size suffix (e.g. -300x450)
// so the full-size upload is referenced. The first matched suffix is removed
// wherever it occurs in the URL.
func FixImageQuality(u string) string {
	m := imageSizeRegex.FindString(u)
	if m == "" {
		return u
	}
	return strings.ReplaceAll(u, m, "")
}

// posterOf resolves the poster of the first image matched by sel inside s.
func posterOf(s *goquery.Selection, sel string, base *url.URL) string {
	img := s.Find(sel).First()
	if img.Length() == 0 {
		return ""
	}
	return FixImageQuality(ImageAttr(img, base))
}

// ownText returns the text of the direct text children of the first node in s.
func ownText(s *goquery.Selection) string {
	var b strings.Builder
	s.First().Contents().Each(func(_ int, c *goquery.Selection) {
		if n := c.Get(0); n != nil && n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
	})
	return normSpace(b.String())
}

// text returns the whitespace-normalized text of s.
func text(s *goquery.Selection) string {
	return normSpace(s.Text())
}

func normSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// digitsOnly keeps the ASCII digits of s.
func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// parseInt parses s as a base-10 integer, returning nil for anything else.
func parseInt(s string) *int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}

// parseScore parses a decimal rating and normalizes it onto a 0-10 scale.
func parseScore(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	if v < 0 {
		v = 0
	}
	if v > 10 {
		v = 10
	}
	return media.FloatPtr(v)
}
