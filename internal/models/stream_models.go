package models

// Stream represents a single playable stream in Stremio format.
type Stream struct {
	Name          string               `json:"name,omitempty"`
	Title         string               `json:"title,omitempty"`
	URL           string               `json:"url"`
	Subtitles     []Subtitle           `json:"subtitles,omitempty"`
	BehaviorHints *StreamBehaviorHints `json:"behaviorHints,omitempty"`
}

type StreamBehaviorHints struct {
	NotWebReady  bool          `json:"notWebReady,omitempty"`
	BingeGroup   string        `json:"bingeGroup,omitempty"`
	ProxyHeaders *ProxyHeaders `json:"proxyHeaders,omitempty"`
}

type ProxyHeaders struct {
	Request map[string]string `json:"request,omitempty"`
}

type Subtitle struct {
	ID   string `json:"id"`
	URL  string `json:"url"`
	Lang string `json:"lang"`
}

// StreamResponse is the response format for stream endpoints.
type StreamResponse struct {
	Streams []Stream `json:"streams"`
}
