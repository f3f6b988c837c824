package extractor

import (
	"context"
	"net/url"
	"path"
	"strings"

	"github.com/amaumene/film21/internal/media"
)

// Direct passes through links that already point at a media file or playlist.
type Direct struct{}

func (Direct) Name() string { return "Direct" }

func (Direct) Match(u *url.URL) bool {
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	switch strings.ToLower(path.Ext(u.Path)) {
	case ".m3u8", ".mp4", ".mkv", ".webm":
		return true
	}
	return false
}

func (Direct) Extract(_ context.Context, embedURL, referer string, emit Emitter) error {
	u, err := url.Parse(embedURL)
	if err != nil {
		return err
	}
	emit.Stream(media.StreamDescriptor{
		Source:  "Direct",
		Name:    path.Base(u.Path),
		URL:     embedURL,
		Referer: referer,
		IsM3U8:  strings.EqualFold(path.Ext(u.Path), ".m3u8"),
	})
	return nil
}
