package extractor

import (
	"context"
	"net/url"
	"regexp"
	"strings"

	apperrors "github.com/amaumene/film21/internal/errors"
	"github.com/amaumene/film21/internal/fetcher"
	"github.com/amaumene/film21/internal/media"
)

var (
	m3u8Regex     = regexp.MustCompile(`:\s*"([^"]*?m3u8[^"]*?)"`)
	trackRegex    = regexp.MustCompile(`\{\s*file\s*:\s*"([^"]+)"\s*,\s*label\s*:\s*"([^"]*)"\s*,\s*kind\s*:\s*"captions"`)
	embedPathRepl = strings.NewReplacer("/download/", "/v/", "/file/", "/v/", "/d/", "/v/", "/f/", "/v/")
)

// VidHide extracts HLS sources from VidHide-style players. These hosts serve
// an embed page whose player setup is hidden in a p,a,c,k,e,d packed script.
type VidHide struct {
	name  string
	hosts []string
	fetch BodyFetcher
}

// NewVidHide creates a VidHide extractor named name that accepts hosts and their subdomains.
func NewVidHide(name string, fetch BodyFetcher, hosts ...string) *VidHide {
	return &VidHide{name: name, hosts: hosts, fetch: fetch}
}

// The VidHide mirrors linked from Film21 players and download lists.

func NewDingtezuni(fetch BodyFetcher) *VidHide {
	return NewVidHide("Dingtezuni", fetch, "dingtezuni.com")
}

func NewMovearnpre(fetch BodyFetcher) *VidHide {
	return NewVidHide("Movearnpre", fetch, "movearnpre.com")
}

func NewMivalyo(fetch BodyFetcher) *VidHide {
	return NewVidHide("Mivalyo", fetch, "mivalyo.com")
}

func NewBingezove(fetch BodyFetcher) *VidHide {
	return NewVidHide("Bingezove", fetch, "bingezove.com")
}

func NewRyderjet(fetch BodyFetcher) *VidHide {
	return NewVidHide("Ryderjet", fetch, "ryderjet.com")
}

func (v *VidHide) Name() string { return v.name }

func (v *VidHide) Match(u *url.URL) bool {
	return hostMatches(u.Host, v.hosts)
}

// Extract loads the embed page, unpacks the player script and emits every
// HLS playlist it references, plus caption tracks.
func (v *VidHide) Extract(ctx context.Context, embedURL, referer string, emit Emitter) error {
	pageURL := EmbedURL(embedURL)
	body, final, err := v.fetch.GetBody(ctx, pageURL, referer)
	if err != nil {
		return apperrors.NewExtractError(v.name, pageURL, err)
	}

	script := string(body)
	if IsPacked(script) {
		unpacked, err := Unpack(script)
		if err != nil {
			return apperrors.NewExtractError(v.name, pageURL, apperrors.NewParseError("unpack player script", err))
		}
		script = unpacked
	}

	origin := fetcher.Origin(final)
	headers := map[string]string{"Referer": origin + "/", "Origin": origin}

	seen := make(map[string]bool)
	for _, m := range m3u8Regex.FindAllStringSubmatch(script, -1) {
		link := resolveAgainst(final, unescapeJS(m[1]))
		if link == "" || seen[link] {
			continue
		}
		seen[link] = true
		emit.Stream(media.StreamDescriptor{
			Source:  v.name,
			Name:    v.name,
			URL:     link,
			Referer: origin + "/",
			IsM3U8:  true,
			Headers: headers,
		})
	}

	for _, m := range trackRegex.FindAllStringSubmatch(script, -1) {
		link := resolveAgainst(final, unescapeJS(m[1]))
		if link == "" {
			continue
		}
		lang := m[2]
		if lang == "" {
			lang = "Unknown"
		}
		emit.Subtitle(media.SubtitleFile{Lang: lang, URL: link})
	}
	return nil
}

// EmbedURL rewrites VidHide download and file paths to the /v/ player path.
func EmbedURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	u.Path = embedPathRepl.Replace(u.Path)
	return u.String()
}

func resolveAgainst(base *url.URL, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	r, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	if base == nil {
		return r.String()
	}
	return base.ResolveReference(r).String()
}

func unescapeJS(s string) string {
	return strings.ReplaceAll(s, `\/`, `/`)
}
