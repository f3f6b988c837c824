package services

import (
	"context"
	"sync"
	"time"

	"github.com/amaumene/film21/internal/database"
	"github.com/amaumene/film21/pkg/logger"
)

const (
	// Default cleanup settings
	defaultCleanupInterval = 24 * time.Hour
	defaultRetentionPeriod = 30 * 24 * time.Hour
)

// CleanupService periodically prunes index entries that have not been
// refreshed by a meta request within the retention period.
type CleanupService struct {
	db              database.Database
	logger          logger.Logger
	interval        time.Duration
	retentionPeriod time.Duration
	mu              sync.Mutex
	running         bool
	stopChan        chan struct{}
}

func NewCleanupService(db database.Database, log logger.Logger) *CleanupService {
	if log == nil {
		log = logger.Discard()
	}
	return &CleanupService{
		db:              db,
		logger:          log,
		interval:        defaultCleanupInterval,
		retentionPeriod: defaultRetentionPeriod,
		stopChan:        make(chan struct{}),
	}
}

// SetRetentionPeriod sets how long an entry is kept after its last update
func (c *CleanupService) SetRetentionPeriod(duration time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.retentionPeriod = duration
}

// SetInterval sets how often cleanup runs
func (c *CleanupService) SetInterval(duration time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.interval = duration
}

// Start runs one cleanup immediately, then every interval until Stop or ctx is done.
func (c *CleanupService) Start(ctx context.Context) {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return
	}
	c.running = true
	interval := c.interval
	c.mu.Unlock()

	c.logger.Infof("[Cleanup] starting with interval %v, retention %v", interval, c.retention())
	c.CleanupNow()

	go c.loop(ctx, interval)
}

func (c *CleanupService) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running {
		return
	}
	c.running = false
	close(c.stopChan)
	c.logger.Infof("[Cleanup] stopped")
}

func (c *CleanupService) loop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.Stop()
			return
		case <-c.stopChan:
			return
		case <-ticker.C:
			c.CleanupNow()
		}
	}
}

// CleanupNow prunes stale entries and returns how many were removed.
func (c *CleanupService) CleanupNow() int {
	n, err := c.db.DeleteOlderThan(c.retention())
	if err != nil {
		c.logger.Errorf("[Cleanup] failed to prune index: %v", err)
		return 0
	}
	if n > 0 {
		c.logger.Infof("[Cleanup] removed %d stale index entries", n)
	}
	return n
}

func (c *CleanupService) retention() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.retentionPeriod
}
