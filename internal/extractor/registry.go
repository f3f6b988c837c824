package extractor

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// Registry holds extractors in registration order.
type Registry struct {
	extractors []Extractor
	byName     map[string]Extractor
}

// NewRegistry registers extractors in order, rejecting nil and duplicate names.
func NewRegistry(extractors ...Extractor) (*Registry, error) {
	r := &Registry{byName: make(map[string]Extractor, len(extractors))}
	for _, e := range extractors {
		if err := r.Register(e); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register appends e to the registry.
func (r *Registry) Register(e Extractor) error {
	if e == nil {
		return fmt.Errorf("extractor must not be nil")
	}
	name := strings.ToLower(strings.TrimSpace(e.Name()))
	if name == "" {
		return fmt.Errorf("extractor name must not be empty")
	}
	if _, ok := r.byName[name]; ok {
		return fmt.Errorf("duplicate extractor %q", name)
	}
	r.byName[name] = e
	r.extractors = append(r.extractors, e)
	return nil
}

// Get returns the extractor registered under name, case-insensitively.
func (r *Registry) Get(name string) (Extractor, bool) {
	e, ok := r.byName[strings.ToLower(strings.TrimSpace(name))]
	return e, ok
}

// Names lists registered extractor names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.extractors))
	for _, e := range r.extractors {
		names = append(names, e.Name())
	}
	return names
}

// Lookup returns the first extractor matching rawURL.
func (r *Registry) Lookup(rawURL string) (Extractor, bool) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Host == "" {
		return nil, false
	}
	for _, e := range r.extractors {
		if e.Match(u) {
			return e, true
		}
	}
	return nil, false
}

// Extract dispatches rawURL to the first matching extractor.
// It returns ErrNoExtractor when nothing matches.
func (r *Registry) Extract(ctx context.Context, rawURL, referer string, emit Emitter) error {
	e, ok := r.Lookup(rawURL)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoExtractor, rawURL)
	}
	return e.Extract(ctx, rawURL, referer, emit)
}

// hostMatches reports whether host equals one of domains or is a subdomain of one.
func hostMatches(host string, domains []string) bool {
	host = strings.ToLower(host)
	if h, _, ok := strings.Cut(host, ":"); ok {
		host = h
	}
	host = strings.TrimPrefix(host, "www.")
	for _, d := range domains {
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}
