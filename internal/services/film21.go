package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/mozillazg/go-unidecode"
	"github.com/sourcegraph/conc/pool"

	"github.com/amaumene/film21/internal/constants"
	apperrors "github.com/amaumene/film21/internal/errors"
	"github.com/amaumene/film21/internal/extractor"
	"github.com/amaumene/film21/internal/fetcher"
	"github.com/amaumene/film21/internal/media"
	"github.com/amaumene/film21/internal/resolver"
	"github.com/amaumene/film21/internal/scraper"
	"github.com/amaumene/film21/pkg/logger"
)

var slugInvalid = regexp.MustCompile(`[^a-z0-9]+`)

// HomeSection is one loaded row of the home view.
type HomeSection struct {
	Section constants.Section
	Titles  []media.Title
	Err     error
}

// Film21 exposes the catalog site: listings, search, detail pages and stream links.
type Film21 struct {
	fetch       *fetcher.Fetcher
	resolver    *resolver.Resolver
	sections    []constants.Section
	concurrency int
	logger      logger.Logger
}

func NewFilm21(fetch *fetcher.Fetcher, extractors resolver.Dispatcher, concurrency int, log logger.Logger) *Film21 {
	if log == nil {
		log = logger.Discard()
	}
	if concurrency < 1 {
		concurrency = constants.HomeConcurrency
	}
	return &Film21{
		fetch:       fetch,
		resolver:    resolver.New(fetch, extractors, log),
		sections:    constants.MainPageSections,
		concurrency: concurrency,
		logger:      log,
	}
}

// MainURL returns the site root requests are made against.
func (f *Film21) MainURL() string {
	return f.fetch.MainURL()
}

// Sections lists the browsable categories in display order.
func (f *Film21) Sections() []constants.Section {
	return f.sections
}

// SectionByCatalogID finds the section whose CatalogID is id.
func (f *Film21) SectionByCatalogID(id string) (constants.Section, bool) {
	for _, s := range f.sections {
		if CatalogID(s) == id {
			return s, true
		}
	}
	return constants.Section{}, false
}

// MainPage loads one page of a section listing.
func (f *Film21) MainPage(ctx context.Context, section constants.Section, page int) ([]media.Title, error) {
	p, err := f.fetch.FetchPage(ctx, section.Path, page)
	if err != nil {
		return nil, apperrors.NewFetchError(section.Name, err)
	}
	titles := scraper.ParseListing(p.Doc, p.URL)
	f.logger.Debugf("[Film21] section %q page %d: %d titles", section.Name, page, len(titles))
	return titles, nil
}

// Home loads page of every section concurrently. Sections keep their order;
// a failed section carries its error and no titles. The error is non-nil
// only when every section failed.
func (f *Film21) Home(ctx context.Context, page int) ([]HomeSection, error) {
	out := make([]HomeSection, len(f.sections))
	p := pool.New().WithMaxGoroutines(f.concurrency)

	var (
		mu     sync.Mutex
		failed []error
	)
	for i, s := range f.sections {
		p.Go(func() {
			titles, err := f.MainPage(ctx, s, page)
			out[i] = HomeSection{Section: s, Titles: titles, Err: err}
			if err != nil {
				f.logger.Warnf("[Film21] home section %q: %v", s.Name, err)
				mu.Lock()
				failed = append(failed, err)
				mu.Unlock()
			}
		})
	}
	p.Wait()

	if len(f.sections) > 0 && len(failed) == len(f.sections) {
		return out, fmt.Errorf("all home sections failed: %w", errors.Join(failed...))
	}
	return out, nil
}

// Search returns listing titles matching query. Blank queries return nothing.
func (f *Film21) Search(ctx context.Context, query string) ([]media.Title, error) {
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}
	p, err := f.fetch.Search(ctx, query)
	if err != nil {
		return nil, apperrors.NewFetchError(f.fetch.SearchURL(query), err)
	}
	return scraper.ParseListing(p.Doc, p.URL), nil
}

// Load fetches and parses a detail page.
func (f *Film21) Load(ctx context.Context, pageURL string) (*media.Program, error) {
	p, err := f.fetch.Get(ctx, pageURL, "")
	if err != nil {
		return nil, apperrors.NewFetchError(pageURL, err)
	}
	return scraper.ParseDetail(p.Doc, pageURL), nil
}

// LoadLinks resolves the streams of a movie or episode page. origin may be
// empty, in which case the page's own origin is used.
func (f *Film21) LoadLinks(ctx context.Context, pageURL, origin string, emit extractor.Emitter) (bool, error) {
	ok, err := f.resolver.Resolve(ctx, pageURL, origin, emit)
	if err != nil {
		return false, apperrors.NewFetchError(pageURL, err)
	}
	return ok, nil
}

// CatalogID derives the catalog id of a section from its name.
func CatalogID(s constants.Section) string {
	return "film21-" + Slug(s.Name)
}

// CatalogType is "series" for the TV listing and "movie" for every other section.
func CatalogType(s constants.Section) media.Kind {
	if strings.HasPrefix(s.Path, "tv/") {
		return media.KindSeries
	}
	return media.KindMovie
}

// Slug lower-cases name, transliterates it to ASCII and joins words with dashes.
func Slug(name string) string {
	ascii := strings.ToLower(strings.TrimSpace(unidecode.Unidecode(name)))
	return strings.Trim(slugInvalid.ReplaceAllString(ascii, "-"), "-")
}
