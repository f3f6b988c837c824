// Package fetcher issues the GET and form-POST requests of the catalog site
// and hands back parsed documents.
package fetcher

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/amaumene/film21/internal/constants"
	apperrors "github.com/amaumene/film21/internal/errors"
	"github.com/amaumene/film21/pkg/logger"
)

// maxBodyBytes caps a response body. Larger bodies fail with ErrBodyTooLarge.
const maxBodyBytes = 8 << 20

// Page is a fetched and parsed document.
type Page struct {
	Doc *goquery.Document
	// URL is the final request URL after redirects.
	URL *url.URL
}

// Origin returns scheme://host of the final page URL.
func (p *Page) Origin() string {
	return Origin(p.URL)
}

// Origin returns scheme://host of u, or "" when u is nil or not absolute.
func Origin(u *url.URL) string {
	if u == nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}

// Fetcher performs requests against the catalog site.
// It does not cache, retry or rate limit.
type Fetcher struct {
	client    *http.Client
	mainURL   string
	userAgent string
	maxBody   int64
	logger    logger.Logger
}

// New creates a Fetcher rooted at mainURL (scheme and host, no trailing slash).
func New(client *http.Client, mainURL string, log logger.Logger) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Fetcher{
		client:    client,
		mainURL:   strings.TrimRight(mainURL, "/"),
		userAgent: constants.UserAgent,
		maxBody:   maxBodyBytes,
		logger:    log,
	}
}

// MainURL returns the configured site root.
func (f *Fetcher) MainURL() string {
	return f.mainURL
}

// FetchPage loads one page of a category listing. pathTemplate holds exactly one
// %d placeholder which receives the 1-based page number.
func (f *Fetcher) FetchPage(ctx context.Context, pathTemplate string, page int) (*Page, error) {
	if strings.Count(pathTemplate, "%d") != 1 {
		return nil, fmt.Errorf("path template %q must contain exactly one %%d", pathTemplate)
	}
	if page < 1 {
		page = 1
	}
	path := strings.TrimLeft(fmt.Sprintf(pathTemplate, page), "/")
	return f.Get(ctx, f.mainURL+"/"+path, "")
}

// Search loads the search results page for query, covering both movies and series.
func (f *Fetcher) Search(ctx context.Context, query string) (*Page, error) {
	return f.Get(ctx, f.SearchURL(query), "")
}

// SearchURL builds the search request URL for query.
func (f *Fetcher) SearchURL(query string) string {
	return f.mainURL + "?s=" + url.QueryEscape(strings.TrimSpace(query)) + "&post_type[]=post&post_type[]=tv"
}

// Get fetches rawURL and parses the response as HTML.
func (f *Fetcher) Get(ctx context.Context, rawURL, referer string) (*Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", rawURL, err)
	}
	return f.document(req, referer)
}

// PostForm sends form as an AJAX form-POST to rawURL and parses the response as HTML.
func (f *Fetcher) PostForm(ctx context.Context, rawURL string, form url.Values, referer string) (*Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", rawURL, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded; charset=UTF-8")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	return f.document(req, referer)
}

// GetBody fetches rawURL and returns the raw body with the final URL.
func (f *Fetcher) GetBody(ctx context.Context, rawURL, referer string) ([]byte, *url.URL, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("build request for %s: %w", rawURL, err)
	}
	return f.do(req, referer)
}

func (f *Fetcher) document(req *http.Request, referer string) (*Page, error) {
	body, final, err := f.do(req, referer)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, apperrors.NewParseError(fmt.Sprintf("parse %s", final), err)
	}
	doc.Url = final
	return &Page{Doc: doc, URL: final}, nil
}

func (f *Fetcher) do(req *http.Request, referer string) ([]byte, *url.URL, error) {
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept-Language", "id-ID,id;q=0.9,en;q=0.8")
	if referer != "" {
		req.Header.Set("Referer", referer)
	}

	f.logger.Debugf("[Fetcher] %s %s", req.Method, req.URL)
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("%s %s: %w", req.Method, req.URL, err)
	}
	defer resp.Body.Close()

	final := req.URL
	if resp.Request != nil && resp.Request.URL != nil {
		final = resp.Request.URL
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return nil, final, &HTTPStatusError{
			URL:        req.URL.String(),
			StatusCode: resp.StatusCode,
			Location:   resp.Header.Get("Location"),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBody+1))
	if err != nil {
		return nil, final, fmt.Errorf("read %s: %w", final, err)
	}
	if int64(len(body)) > f.maxBody {
		return nil, final, fmt.Errorf("read %s: %w (limit %d bytes)", final, ErrBodyTooLarge, f.maxBody)
	}
	return body, final, nil
}
