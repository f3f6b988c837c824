// Package scraper turns catalog-site documents into media records. Every
// function here is pure: the same document always yields the same record,
// and missing markup yields absent fields rather than errors.
package scraper

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/amaumene/film21/internal/constants"
	"github.com/amaumene/film21/internal/media"
)

// ParseListing parses every listing item of a catalog or search page,
// skipping items without a title link.
func ParseListing(doc *goquery.Document, base *url.URL) []media.Title {
	titles := make([]media.Title, 0)
	doc.Find(constants.SelListingItem).Each(func(_ int, s *goquery.Selection) {
		if t := ParseListingItem(s, base); t != nil {
			titles = append(titles, *t)
		}
	})
	return titles
}

// ParseListingItem parses one article of a listing. It returns nil when the
// title link is missing. The kind is Series when the item advertises a
// positive episode count and Movie otherwise; only movies carry a score.
func ParseListingItem(s *goquery.Selection, base *url.URL) *media.Title {
	name, href, ok := titleLink(s, base)
	if !ok {
		return nil
	}

	quality := strings.ReplaceAll(text(s.Find(constants.SelItemQuality)), "-", "")
	episodes := 0
	if n := parseInt(strings.TrimSpace(s.Find(constants.SelItemEpisodes).Text())); n != nil {
		episodes = *n
	}

	t := &media.Title{
		Name:    name,
		URL:     href,
		Poster:  posterOf(s, constants.SelItemPoster, base),
		Quality: quality,
	}
	if episodes > 0 {
		t.Kind = media.KindSeries
		t.Episodes = media.IntPtr(episodes)
		return t
	}

	t.Kind = media.KindMovie
	if rating := s.Find(constants.SelItemRating).First(); rating.Length() > 0 {
		t.Score = parseScore(ownText(rating))
	}
	return t
}

// ParseRecommendation parses one entry of the related-posts block. The kind
// comes from the post-type label: anything mentioning "tv" is a Series.
func ParseRecommendation(s *goquery.Selection, base *url.URL) *media.Title {
	name, href, ok := titleLink(s, base)
	if !ok {
		return nil
	}

	postType := "movie"
	if label := s.Find(constants.SelItemPostType).First(); label.Length() > 0 {
		postType = strings.ToLower(text(label))
	}

	kind := media.KindMovie
	if strings.Contains(postType, "tv") {
		kind = media.KindSeries
	}
	return &media.Title{
		Name:   name,
		URL:    href,
		Poster: posterOf(s, constants.SelItemPoster, base),
		Kind:   kind,
	}
}

func titleLink(s *goquery.Selection, base *url.URL) (name, href string, ok bool) {
	a := s.Find(constants.SelItemTitleLink).First()
	if a.Length() == 0 {
		return "", "", false
	}
	raw, exists := a.Attr("href")
	if !exists || strings.TrimSpace(raw) == "" {
		return "", "", false
	}
	return text(a), AbsURL(base, raw), true
}
