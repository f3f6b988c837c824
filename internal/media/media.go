// Package media holds the normalized catalog records produced by the scraper
// and the stream records produced by extractors.
package media

// Kind classifies a catalog entry.
type Kind string

const (
	KindMovie  Kind = "movie"
	KindSeries Kind = "series"
)

// Title is a listing entry from a catalog, search or recommendation block.
type Title struct {
	Name     string
	URL      string
	Poster   string
	Kind     Kind
	Quality  string
	Episodes *int
	// Score is on a 0-10 scale.
	Score *float64
}

// Program is a parsed detail page.
type Program struct {
	Title string
	URL   string
	// Origin is scheme://host of the page as it was finally served, after redirects.
	Origin          string
	Poster          string
	Year            *int
	Plot            string
	Tags            []string
	Rating          string
	Actors          []string
	Duration        int
	Trailer         string
	Recommendations []Title
	Kind            Kind
	Episodes        []Episode
}

// Episode is one playable entry of a series.
type Episode struct {
	URL     string
	Name    string
	Episode *int
	Season  *int
}

// StreamCandidate is an embed endpoint waiting to be handed to an extractor.
type StreamCandidate struct {
	EmbedURL string
	Referer  string
}

// StreamDescriptor is a playable stream produced by an extractor.
type StreamDescriptor struct {
	Source  string
	Name    string
	URL     string
	Referer string
	// Quality is the vertical resolution, 0 when unknown.
	Quality int
	IsM3U8  bool
	Headers map[string]string
}

// SubtitleFile is an external subtitle track.
type SubtitleFile struct {
	Lang string
	URL  string
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int { return &v }

// FloatPtr returns a pointer to v.
func FloatPtr(v float64) *float64 { return &v }
