// Package resolver walks a Film21 play page and hands every embedded player
// and download link to the extractor registry.
package resolver

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/amaumene/film21/internal/constants"
	"github.com/amaumene/film21/internal/extractor"
	"github.com/amaumene/film21/internal/fetcher"
	"github.com/amaumene/film21/internal/media"
	"github.com/amaumene/film21/pkg/logger"
)

// PageFetcher is the subset of *fetcher.Fetcher the resolver needs.
type PageFetcher interface {
	Get(ctx context.Context, rawURL, referer string) (*fetcher.Page, error)
	PostForm(ctx context.Context, rawURL string, form url.Values, referer string) (*fetcher.Page, error)
}

// Dispatcher resolves one embed URL. *extractor.Registry satisfies it.
type Dispatcher interface {
	Extract(ctx context.Context, rawURL, referer string, emit extractor.Emitter) error
}

// Resolver turns a play page into extractor calls. It holds no per-request
// state, so one Resolver serves concurrent requests.
type Resolver struct {
	fetch      PageFetcher
	extractors Dispatcher
	logger     logger.Logger
}

// New creates a Resolver. A nil log discards output.
func New(fetch PageFetcher, extractors Dispatcher, log logger.Logger) *Resolver {
	if log == nil {
		log = logger.Discard()
	}
	return &Resolver{fetch: fetch, extractors: extractors, logger: log}
}

// Resolve loads pageURL and extracts every player and download link on it.
// origin is the site origin used for the AJAX endpoint and player referers;
// when empty, the origin of the fetched page is used.
//
// Only a failure to load pageURL itself is returned. Failing tabs and
// extractors are logged and skipped, and the result is true.
func (r *Resolver) Resolve(ctx context.Context, pageURL, origin string, emit extractor.Emitter) (bool, error) {
	page, err := r.fetch.Get(ctx, pageURL, "")
	if err != nil {
		return false, err
	}
	if origin == "" {
		origin = page.Origin()
	}
	origin = strings.TrimRight(origin, "/")

	r.walk(ctx, page, pageURL, origin, func(c media.StreamCandidate) {
		if err := r.extractors.Extract(ctx, c.EmbedURL, c.Referer, emit); err != nil {
			r.logger.Warnf("[Resolver] extract %s: %v", c.EmbedURL, err)
		}
	})
	return true, nil
}

func (r *Resolver) walk(ctx context.Context, page *fetcher.Page, pageURL, origin string, yield func(media.StreamCandidate)) {
	doc := page.Doc
	playerReferer := origin + "/"

	postID := strings.TrimSpace(doc.Find(constants.SelPlayerContentID).First().AttrOr("data-id", ""))
	if postID != "" {
		doc.Find(constants.SelPlayerAjaxTabs).Each(func(_ int, tab *goquery.Selection) {
			if ctx.Err() != nil {
				return
			}
			if embed := r.ajaxPlayer(ctx, origin, tab.AttrOr("id", ""), postID, pageURL); embed != "" {
				yield(media.StreamCandidate{EmbedURL: embed, Referer: playerReferer})
			}
		})
	} else {
		doc.Find(constants.SelPlayerTabLinks).Each(func(_ int, a *goquery.Selection) {
			if ctx.Err() != nil {
				return
			}
			if embed := r.tabPlayer(ctx, page.URL, a.AttrOr("href", "")); embed != "" {
				yield(media.StreamCandidate{EmbedURL: embed, Referer: playerReferer})
			}
		})
	}

	doc.Find(constants.SelDownloadLinks).Each(func(_ int, a *goquery.Selection) {
		href := strings.TrimSpace(a.AttrOr("href", ""))
		if href == "" || ctx.Err() != nil {
			return
		}
		yield(media.StreamCandidate{EmbedURL: href, Referer: pageURL})
	})
}

// ajaxPlayer asks the theme's AJAX endpoint for the player of one tab.
func (r *Resolver) ajaxPlayer(ctx context.Context, origin, tab, postID, pageURL string) string {
	form := url.Values{}
	form.Set("action", constants.AjaxPlayerAction)
	form.Set("tab", tab)
	form.Set("post_id", postID)

	resp, err := r.fetch.PostForm(ctx, origin+constants.AjaxPath, form, pageURL)
	if err != nil {
		r.logger.Warnf("[Resolver] player tab %q of post %s: %v", tab, postID, err)
		return ""
	}
	src, ok := resp.Doc.Find("iframe").First().Attr("src")
	if !ok {
		r.logger.Debugf("[Resolver] player tab %q of post %s has no iframe", tab, postID)
		return ""
	}
	return Httpsify(src)
}

// tabPlayer loads an alternate player page and reads its embed iframe.
func (r *Resolver) tabPlayer(ctx context.Context, base *url.URL, href string) string {
	link := absURL(base, href)
	if link == "" {
		return ""
	}
	resp, err := r.fetch.Get(ctx, link, "")
	if err != nil {
		r.logger.Warnf("[Resolver] player page %s: %v", link, err)
		return ""
	}
	iframe := resp.Doc.Find(constants.SelEmbedIframe).First()
	if iframe.Length() == 0 {
		return ""
	}
	return Httpsify(IframeSrc(iframe))
}

// IframeSrc prefers the lazy-load data-litespeed-src over src.
func IframeSrc(iframe *goquery.Selection) string {
	if v := strings.TrimSpace(iframe.AttrOr("data-litespeed-src", "")); v != "" {
		return v
	}
	return strings.TrimSpace(iframe.AttrOr("src", ""))
}

// Httpsify upgrades protocol-relative URLs to https.
func Httpsify(u string) string {
	u = strings.TrimSpace(u)
	if strings.HasPrefix(u, "//") {
		return "https:" + u
	}
	return u
}

func absURL(base *url.URL, ref string) string {
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
