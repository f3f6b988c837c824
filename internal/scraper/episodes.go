package scraper

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/amaumene/film21/internal/constants"
	"github.com/amaumene/film21/internal/media"
)

var (
	permalinkRegex = regexp.MustCompile(`(?i)Permalink ke\s*`)
	episodeRegex   = regexp.MustCompile(`Episode\s*(\d+)`)
	seasonRegex    = regexp.MustCompile(`Season\s*(\d+)`)
)

// ParseEpisodes collects the episode anchors of a series page. Anchors whose
// label yields no episode number are dropped.
func ParseEpisodes(doc *goquery.Document, base *url.URL) []media.Episode {
	episodes := make([]media.Episode, 0)
	doc.Find(constants.SelEpisodeLinks).Each(func(_ int, a *goquery.Selection) {
		label := normSpace(a.AttrOr("title", ""))
		if label == "" {
			label = text(a)
		}
		ep := ParseEpisodeLabel(label)
		if ep.Episode == nil {
			return
		}
		ep.URL = AbsURL(base, a.AttrOr("href", ""))
		episodes = append(episodes, ep)
	})
	return episodes
}

// ParseEpisodeLabel extracts season and episode numbers from an anchor label.
//
// The episode number comes from "Episode N", else from the digits of the last
// whitespace-delimited token. The season number comes from "Season N", else
// from the digits of the first token.
func ParseEpisodeLabel(label string) media.Episode {
	clean := normSpace(replaceFirst(permalinkRegex, label, ""))
	tokens := strings.Fields(clean)
	if len(tokens) == 0 {
		return media.Episode{}
	}

	epNum := submatchInt(episodeRegex, clean)
	if epNum == nil {
		epNum = parseInt(digitsOnly(tokens[len(tokens)-1]))
	}
	seasonNum := submatchInt(seasonRegex, clean)
	if seasonNum == nil {
		seasonNum = parseInt(digitsOnly(tokens[0]))
	}

	var name strings.Builder
	if seasonNum != nil {
		name.WriteString("Season " + strconv.Itoa(*seasonNum) + " ")
	}
	if epNum != nil {
		name.WriteString("Episode " + strconv.Itoa(*epNum))
	}

	return media.Episode{
		Name:    name.String(),
		Episode: epNum,
		Season:  seasonNum,
	}
}

func submatchInt(re *regexp.Regexp, s string) *int {
	m := re.FindStringSubmatch(s)
	if len(m) < 2 {
		return nil
	}
	return parseInt(m[1])
}

func replaceFirst(re *regexp.Regexp, s, repl string) string {
	loc := re.FindStringIndex(s)
	if loc == nil {
		return s
	}
	return s[:loc[0]] + repl + s[loc[1]:]
}
