package scraper

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/amaumene/film21/internal/constants"
	"github.com/amaumene/film21/internal/fetcher"
	"github.com/amaumene/film21/internal/media"
)

// ParseDetail parses a detail page loaded from pageURL.
//
// The kind is decided by pageURL alone: a "/tv/" path segment means Series.
// This differs on purpose from the listing heuristic, so a title can be a
// Movie in a listing and a Series here.
func ParseDetail(doc *goquery.Document, pageURL string) *media.Program {
	base := doc.Url
	if base == nil {
		base, _ = url.Parse(pageURL)
	}

	p := &media.Program{
		Title:    DetailTitle(text(doc.Find(constants.SelDetailTitle).First())),
		URL:      pageURL,
		Origin:   fetcher.Origin(base),
		Poster:   posterOf(doc.Selection, constants.SelDetailPoster, base),
		Year:     parseInt(strings.TrimSpace(doc.Find(constants.SelDetailYear).Text())),
		Plot:     text(doc.Find(constants.SelDetailPlot).First()),
		Tags:     texts(doc.Find(constants.SelDetailTags)),
		Rating:   text(doc.Find(constants.SelDetailRating).First()),
		Actors:   texts(doc.Find(constants.SelDetailActors)),
		Duration: durationMinutes(doc.Find(constants.SelDetailDuration).First()),
		Trailer:  strings.TrimSpace(doc.Find(constants.SelDetailTrailer).First().AttrOr("href", "")),
		Kind:     KindFromURL(pageURL),
	}

	p.Recommendations = make([]media.Title, 0)
	doc.Find(constants.SelRecommendation).Each(func(_ int, s *goquery.Selection) {
		if t := ParseRecommendation(s, base); t != nil {
			p.Recommendations = append(p.Recommendations, *t)
		}
	})

	if p.Kind == media.KindSeries {
		p.Episodes = ParseEpisodes(doc, base)
	}
	return p
}

// KindFromURL reports Series for detail URLs containing "/tv/".
func KindFromURL(pageURL string) media.Kind {
	if strings.Contains(pageURL, "/tv/") {
		return media.KindSeries
	}
	return media.KindMovie
}

// DetailTitle cuts the heading at the first "Season", then at the first
// "Episode", and trims the rest.
func DetailTitle(heading string) string {
	heading, _, _ = strings.Cut(heading, "Season")
	heading, _, _ = strings.Cut(heading, "Episode")
	return strings.TrimSpace(heading)
}

func durationMinutes(s *goquery.Selection) int {
	if s.Length() == 0 {
		return 0
	}
	if n := parseInt(digitsOnly(s.Text())); n != nil {
		return *n
	}
	return 0
}

// texts keeps one entry per matched element, empty ones included, so the
// result lines up with the page order.
func texts(s *goquery.Selection) []string {
	out := make([]string, 0, s.Length())
	s.Each(func(_ int, e *goquery.Selection) {
		out = append(out, text(e))
	})
	return out
}
