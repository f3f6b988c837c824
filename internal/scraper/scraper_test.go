package scraper

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amaumene/film21/internal/media"
)

func loadFixture(t *testing.T, name, pageURL string) *goquery.Document {
	t.Helper()
	f, err := os.Open(filepath.Join("testdata", name))
	require.NoError(t, err)
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	require.NoError(t, err)
	doc.Url, err = url.Parse(pageURL)
	require.NoError(t, err)
	return doc
}

func fragment(t *testing.T, html string) *goquery.Selection {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc.Find("article, li").First()
}

func TestParseListing(t *testing.T) {
	doc := loadFixture(t, "listing.html", "https://tv1.filem21.org/genre/action/page/1/")
	titles := ParseListing(doc, doc.Url)
	require.Len(t, titles, 3)

	movie := titles[0]
	assert.Equal(t, "Movie Y (2024)", movie.Name)
	assert.Equal(t, "https://tv1.filem21.org/movie-y/", movie.URL)
	assert.Equal(t, "https://tv1.filem21.org/wp-content/uploads/2024/05/movie-y.jpg", movie.Poster)
	assert.Equal(t, media.KindMovie, movie.Kind)
	assert.Equal(t, "WEBDL", movie.Quality)
	assert.Nil(t, movie.Episodes)
	require.NotNil(t, movie.Score)
	assert.InDelta(t, 7.5, *movie.Score, 1e-9)

	series := titles[1]
	assert.Equal(t, media.KindSeries, series.Kind)
	assert.Equal(t, "https://cdn.example/show-x.jpg", series.Poster)
	require.NotNil(t, series.Episodes)
	assert.Equal(t, 12, *series.Episodes)
	assert.Nil(t, series.Score, "series items never carry a score")

	unrated := titles[2]
	assert.Equal(t, media.KindMovie, unrated.Kind)
	assert.Nil(t, unrated.Score)
	assert.Empty(t, unrated.Poster)
}

func TestParseListingItemMissingTitleOrLink(t *testing.T) {
	cases := []string{
		`<article class="item-infinite"><div class="content-thumbnail"><img src="/a.jpg"></div></article>`,
		`<article class="item-infinite"><h2 class="entry-title"><a>No href</a></h2></article>`,
		`<article class="item-infinite"><h2 class="entry-title"><a href="  ">Blank</a></h2></article>`,
		`<article class="item-infinite"></article>`,
	}
	for _, c := range cases {
		assert.Nil(t, ParseListingItem(fragment(t, c), nil), c)
	}
}

func TestParseListingItemKindFollowsEpisodeCount(t *testing.T) {
	cases := []struct {
		eps  string
		want media.Kind
	}{
		{`<div class="gmr-numbeps"><span>1</span></div>`, media.KindSeries},
		{`<div class="gmr-numbeps"><span>0</span></div>`, media.KindMovie},
		{`<div class="gmr-numbeps"><span>?</span></div>`, media.KindMovie},
		{``, media.KindMovie},
	}
	for _, c := range cases {
		html := `<article class="item-infinite">` + c.eps +
			`<div class="gmr-posttype-item">TV</div><h2 class="entry-title"><a href="/x/">X</a></h2></article>`
		got := ParseListingItem(fragment(t, html), nil)
		require.NotNil(t, got)
		assert.Equal(t, c.want, got.Kind, c.eps)
	}
}

func TestParseScore(t *testing.T) {
	require.NotNil(t, parseScore("7.5"))
	assert.InDelta(t, 7.5, *parseScore("7.5"), 1e-9)
	assert.InDelta(t, 10, *parseScore("12"), 1e-9)
	assert.Nil(t, parseScore(""))
	assert.Nil(t, parseScore("N/A"))
	assert.Nil(t, parseScore("NaN"))
}

func TestFixImageQuality(t *testing.T) {
	cases := map[string]string{
		"https://cdn.example/foo-300x450.jpg":   "https://cdn.example/foo.jpg",
		"https://cdn.example/foo.jpg":           "https://cdn.example/foo.jpg",
		"https://cdn.example/x-men-152x228.jpg": "https://cdn.example/x-men.jpg",
		"":                                      "",
	}
	for in, want := range cases {
		once := FixImageQuality(in)
		assert.Equal(t, want, once, in)
		assert.Equal(t, once, FixImageQuality(once), "idempotent for %q", in)
	}
}

func TestImageAttrOrder(t *testing.T) {
	base, _ := url.Parse("https://tv1.filem21.org/a/")
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`
		<img id="a" data-src="/1.jpg" data-lazy-src="/2.jpg" srcset="/3.jpg 1x" src="/4.jpg">
		<img id="b" data-lazy-src="/2.jpg" srcset="/3.jpg 1x" src="/4.jpg">
		<img id="c" srcset="/3.jpg 1x, /5.jpg 2x" src="/4.jpg">
		<img id="d" src="4.jpg">`))
	require.NoError(t, err)

	assert.Equal(t, "https://tv1.filem21.org/1.jpg", ImageAttr(doc.Find("#a"), base))
	assert.Equal(t, "https://tv1.filem21.org/2.jpg", ImageAttr(doc.Find("#b"), base))
	assert.Equal(t, "https://tv1.filem21.org/3.jpg", ImageAttr(doc.Find("#c"), base))
	assert.Equal(t, "https://tv1.filem21.org/a/4.jpg", ImageAttr(doc.Find("#d"), base))
}

func TestParseRecommendation(t *testing.T) {
	tv := ParseRecommendation(fragment(t, `<li><div class="gmr-posttype-item"> TV Show </div><h2 class="entry-title"><a href="/tv/a/">A</a></h2></li>`), nil)
	require.NotNil(t, tv)
	assert.Equal(t, media.KindSeries, tv.Kind)
	assert.Empty(t, tv.Quality)
	assert.Nil(t, tv.Score)

	movie := ParseRecommendation(fragment(t, `<li><h2 class="entry-title"><a href="/b/">B</a></h2></li>`), nil)
	require.NotNil(t, movie)
	assert.Equal(t, media.KindMovie, movie.Kind)

	assert.Nil(t, ParseRecommendation(fragment(t, `<li><div class="gmr-posttype-item">TV</div></li>`), nil))
}

func TestParseDetailSeries(t *testing.T) {
	pageURL := "https://tv1.filem21.org/tv/show-x/"
	doc := loadFixture(t, "detail_series.html", pageURL)
	p := ParseDetail(doc, pageURL)

	assert.Equal(t, "Show X", p.Title)
	assert.Equal(t, pageURL, p.URL)
	assert.Equal(t, "https://tv1.filem21.org", p.Origin)
	assert.Equal(t, "https://tv1.filem21.org/wp-content/uploads/show-x.jpg", p.Poster)
	require.NotNil(t, p.Year)
	assert.Equal(t, 2023, *p.Year)
	assert.Equal(t, "A gritty crime story.", p.Plot)
	assert.Equal(t, []string{"Drama", "Crime", "2023", "Actor A", "Actor B"}, p.Tags)
	assert.Equal(t, "8.4", p.Rating)
	assert.Equal(t, []string{"Actor A", "Actor B"}, p.Actors)
	assert.Equal(t, 45, p.Duration)
	assert.Equal(t, "https://www.youtube.com/watch?v=abc123", p.Trailer)
	assert.Equal(t, media.KindSeries, p.Kind)

	require.Len(t, p.Recommendations, 2)
	assert.Equal(t, media.KindSeries, p.Recommendations[0].Kind)
	assert.Equal(t, "https://tv1.filem21.org/wp-content/uploads/rec-a.jpg", p.Recommendations[0].Poster)
	assert.Equal(t, media.KindMovie, p.Recommendations[1].Kind)

	require.Len(t, p.Episodes, 3)
	for i, ep := range p.Episodes {
		n := i + 1
		require.NotNil(t, ep.Episode)
		assert.Equal(t, n, *ep.Episode)
		assert.Nil(t, ep.Season)
		assert.Equal(t, fmt.Sprintf("Episode %d", n), ep.Name)
	}
	assert.Equal(t, "https://tv1.filem21.org/eps/show-x-episode-1/", p.Episodes[0].URL)
}

func TestParseDetailMovieIgnoresEpisodeMarkup(t *testing.T) {
	pageURL := "https://tv1.filem21.org/movie-y/"
	doc := loadFixture(t, "detail_movie.html", pageURL)
	p := ParseDetail(doc, pageURL)

	assert.Equal(t, media.KindMovie, p.Kind)
	assert.Empty(t, p.Episodes)
	assert.Equal(t, 112, p.Duration)
	assert.Nil(t, p.Year)
	assert.Empty(t, p.Trailer)
	assert.Empty(t, p.Tags)
	assert.NotNil(t, p.Recommendations)
}

func TestKindFromURL(t *testing.T) {
	assert.Equal(t, media.KindSeries, KindFromURL("https://tv1.filem21.org/tv/show-x/"))
	assert.Equal(t, media.KindMovie, KindFromURL("https://tv1.filem21.org/movie-y/"))
	assert.Equal(t, media.KindMovie, KindFromURL("https://tv1.filem21.org/tvshow/"))
}

func TestDetailTitle(t *testing.T) {
	assert.Equal(t, "Show X", DetailTitle("Show X Season 2 Episode 5"))
	assert.Equal(t, "Show X", DetailTitle("Show X Episode 5"))
	assert.Equal(t, "Movie Y", DetailTitle("  Movie Y  "))
	assert.Equal(t, "", DetailTitle(""))
}

func TestParseEpisodeLabel(t *testing.T) {
	ep := ParseEpisodeLabel("Permalink ke Season 2 Episode 5")
	require.NotNil(t, ep.Season)
	require.NotNil(t, ep.Episode)
	assert.Equal(t, 2, *ep.Season)
	assert.Equal(t, 5, *ep.Episode)
	assert.Equal(t, "Season 2 Episode 5", ep.Name)

	ep = ParseEpisodeLabel("permalink KE Eps 7")
	require.NotNil(t, ep.Episode)
	assert.Equal(t, 7, *ep.Episode)
	assert.Nil(t, ep.Season)
	assert.Equal(t, "Episode 7", ep.Name)

	ep = ParseEpisodeLabel("S3 finale E10")
	require.NotNil(t, ep.Episode)
	require.NotNil(t, ep.Season)
	assert.Equal(t, 10, *ep.Episode)
	assert.Equal(t, 3, *ep.Season)

	ep = ParseEpisodeLabel("Trailer")
	assert.Nil(t, ep.Episode)
	assert.Nil(t, ep.Season)
	assert.Empty(t, ep.Name)

	ep = ParseEpisodeLabel("")
	assert.Nil(t, ep.Episode)
}

func TestParseEpisodesDropsUnnumbered(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`
		<div class="gmr-listseries">
			<a href="/eps/a/">Season 1 Episode 1</a>
			<a href="/eps/b/" title="   ">Season 1 Episode 2</a>
			<a href="/eps/c/">Specials</a>
		</div>`))
	require.NoError(t, err)
	base, _ := url.Parse("https://tv1.filem21.org/tv/show/")

	eps := ParseEpisodes(doc, base)
	require.Len(t, eps, 2)
	assert.Equal(t, "Season 1 Episode 2", eps[1].Name)
	assert.Equal(t, "https://tv1.filem21.org/eps/b/", eps[1].URL)
}

func TestParseEpisodesMultilineLabel(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`
		<div class="gmr-listseries">
			<a href="/eps/s2e5/">S2
				E5</a>
			<a href="/eps/s2e6/">S2	E6</a>
		</div>`))
	require.NoError(t, err)
	base, _ := url.Parse("https://tv1.filem21.org/tv/show/")

	eps := ParseEpisodes(doc, base)
	require.Len(t, eps, 2)
	require.NotNil(t, eps[0].Season)
	require.NotNil(t, eps[0].Episode)
	assert.Equal(t, 2, *eps[0].Season)
	assert.Equal(t, 5, *eps[0].Episode)
	assert.Equal(t, "Season 2 Episode 5", eps[0].Name)
	assert.Equal(t, 6, *eps[1].Episode)

	ep := ParseEpisodeLabel("S2\nE5")
	require.NotNil(t, ep.Episode)
	assert.Equal(t, 5, *ep.Episode)

	ep = ParseEpisodeLabel(" \n\t ")
	assert.Nil(t, ep.Episode)
	assert.Nil(t, ep.Season)
}

func TestParseDetailKeepsEmptyTagEntries(t *testing.T) {
	pageURL := "https://tv1.filem21.org/movie-z/"
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`
		<h1 class="entry-title">Movie Z</h1>
		<div class="gmr-moviedata"><a href="/genre/drama/">Drama</a> <a href="/genre/x/"> </a> <a href="/genre/crime/">Crime</a></div>
		<div class="gmr-moviedata"><span itemprop="actors"><a href="/cast/a/"></a></span><span itemprop="actors"><a href="/cast/b/">Actor B</a></span></div>`))
	require.NoError(t, err)

	p := ParseDetail(doc, pageURL)
	assert.Equal(t, []string{"Drama", "", "Crime", "", "Actor B"}, p.Tags)
	assert.Equal(t, []string{"", "Actor B"}, p.Actors)
}
