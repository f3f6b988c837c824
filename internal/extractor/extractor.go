// Package extractor turns third-party embed URLs into playable streams.
//
// Each Extractor handles a family of hosts. The Registry picks the first
// registered Extractor whose Match accepts the URL; callers never need to
// know which host they are dealing with.
package extractor

import (
	"context"
	"errors"
	"net/url"

	"github.com/amaumene/film21/internal/media"
)

// ErrNoExtractor is returned when no registered extractor matches a URL.
var ErrNoExtractor = errors.New("no extractor for url")

// Emitter receives extractor output one item at a time.
type Emitter interface {
	Stream(media.StreamDescriptor)
	Subtitle(media.SubtitleFile)
}

// EmitterFuncs adapts a pair of callbacks to Emitter. Nil callbacks drop items.
type EmitterFuncs struct {
	OnStream   func(media.StreamDescriptor)
	OnSubtitle func(media.SubtitleFile)
}

func (e EmitterFuncs) Stream(s media.StreamDescriptor) {
	if e.OnStream != nil {
		e.OnStream(s)
	}
}

func (e EmitterFuncs) Subtitle(s media.SubtitleFile) {
	if e.OnSubtitle != nil {
		e.OnSubtitle(s)
	}
}

// Extractor resolves one embed URL into zero or more streams and subtitles.
type Extractor interface {
	Name() string
	Match(u *url.URL) bool
	Extract(ctx context.Context, embedURL, referer string, emit Emitter) error
}

// BodyFetcher loads a raw response body. *fetcher.Fetcher satisfies it.
type BodyFetcher interface {
	GetBody(ctx context.Context, rawURL, referer string) ([]byte, *url.URL, error)
}
