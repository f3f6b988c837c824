package handlers

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/amaumene/film21/internal/database"
	"github.com/amaumene/film21/internal/media"
	"github.com/amaumene/film21/internal/models"
)

// titleToMeta converts a listing title into a catalog preview.
func titleToMeta(t media.Title) (models.Meta, bool) {
	id, err := database.IDFromURL(t.URL)
	if err != nil {
		return models.Meta{}, false
	}
	meta := models.Meta{
		ID:          id,
		Type:        string(t.Kind),
		Name:        t.Name,
		Poster:      t.Poster,
		PosterShape: "poster",
	}
	if t.Score != nil {
		meta.IMDBRating = strconv.FormatFloat(*t.Score, 'f', 1, 64)
	}

	var info []string
	if t.Quality != "" {
		info = append(info, t.Quality)
	}
	if t.Episodes != nil {
		info = append(info, fmt.Sprintf("%d episodes", *t.Episodes))
	}
	meta.Description = strings.Join(info, " · ")
	return meta, true
}

func titlesToMetas(titles []media.Title, kind string) []models.Meta {
	metas := make([]models.Meta, 0, len(titles))
	for _, t := range titles {
		if kind != "" && string(t.Kind) != kind {
			continue
		}
		if m, ok := titleToMeta(t); ok {
			metas = append(metas, m)
		}
	}
	return metas
}

// programToMeta converts a detail page into a full meta. Episode video ids
// are derived from episode URLs; a missing season number becomes season 1.
func programToMeta(id string, p *media.Program) models.Meta {
	meta := models.Meta{
		ID:          id,
		Type:        string(p.Kind),
		Name:        p.Title,
		Poster:      p.Poster,
		PosterShape: "poster",
		Background:  p.Poster,
		Description: p.Plot,
		IMDBRating:  p.Rating,
		Genres:      p.Tags,
		Cast:        p.Actors,
	}
	if p.Year != nil {
		meta.ReleaseInfo = strconv.Itoa(*p.Year)
	}
	if p.Duration > 0 {
		meta.Runtime = fmt.Sprintf("%d min", p.Duration)
	}
	if yt := youtubeID(p.Trailer); yt != "" {
		meta.Trailers = []models.Trailer{{Source: yt, Type: "Trailer"}}
	}
	for _, r := range p.Recommendations {
		rid, err := database.IDFromURL(r.URL)
		if err != nil {
			continue
		}
		meta.Links = append(meta.Links, models.MetaLink{
			Name:     r.Name,
			Category: "Recommendations",
			URL:      fmt.Sprintf("stremio:///detail/%s/%s", r.Kind, url.PathEscape(rid)),
		})
	}

	for _, ep := range p.Episodes {
		vid, err := database.IDFromURL(ep.URL)
		if err != nil || ep.Episode == nil {
			continue
		}
		season := 1
		if ep.Season != nil {
			season = *ep.Season
		}
		meta.Videos = append(meta.Videos, models.Video{
			ID:      vid,
			Title:   ep.Name,
			Season:  season,
			Episode: *ep.Episode,
		})
	}
	return meta
}

// youtubeID returns the video id of a YouTube watch, short or embed link.
func youtubeID(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return ""
	}
	host := strings.TrimPrefix(u.Hostname(), "www.")
	switch {
	case host == "youtu.be":
		return strings.Trim(u.Path, "/")
	case strings.HasSuffix(host, "youtube.com"):
		if v := u.Query().Get("v"); v != "" {
			return v
		}
		if rest, ok := strings.CutPrefix(u.Path, "/embed/"); ok {
			return strings.Trim(rest, "/")
		}
	}
	return ""
}

// descriptorsToStreams converts extractor output to Stremio streams, attaching
// every subtitle to every stream.
func descriptorsToStreams(descs []media.StreamDescriptor, subs []media.SubtitleFile) []models.Stream {
	subtitles := make([]models.Subtitle, 0, len(subs))
	for i, s := range subs {
		subtitles = append(subtitles, models.Subtitle{
			ID:   fmt.Sprintf("%s-%d", s.Lang, i+1),
			URL:  s.URL,
			Lang: s.Lang,
		})
	}

	streams := make([]models.Stream, 0, len(descs))
	for _, d := range descs {
		title := d.Name
		if d.Quality > 0 {
			title = fmt.Sprintf("%s %dp", title, d.Quality)
		}
		stream := models.Stream{
			Name:  "Film21\n" + d.Source,
			Title: title,
			URL:   d.URL,
		}
		if len(subtitles) > 0 {
			stream.Subtitles = subtitles
		}

		headers := make(map[string]string, len(d.Headers)+1)
		for k, v := range d.Headers {
			headers[k] = v
		}
		if _, ok := headers["Referer"]; !ok && d.Referer != "" {
			headers["Referer"] = d.Referer
		}
		if len(headers) > 0 || d.IsM3U8 {
			stream.BehaviorHints = &models.StreamBehaviorHints{
				NotWebReady: true,
				BingeGroup:  "film21-" + strings.ToLower(d.Source),
			}
			if len(headers) > 0 {
				stream.BehaviorHints.ProxyHeaders = &models.ProxyHeaders{Request: headers}
			}
		}
		streams = append(streams, stream)
	}
	return streams
}
