package constants

import "time"

// Timeout constants for various operations
const (
	// HTTPTimeout is the per-request timeout of the shared HTTP client.
	HTTPTimeout = 30 * time.Second

	// RequestTimeout bounds a whole catalog, meta or stream request.
	RequestTimeout = 60 * time.Second

	// IndexCacheTTL is how long index entries stay in the in-memory cache.
	IndexCacheTTL = 24 * time.Hour

	// IndexCacheCleanupInterval is how often expired cache entries are evicted.
	IndexCacheCleanupInterval = time.Hour

	// Server shutdown grace period
	ShutdownTimeout = 10 * time.Second
)
