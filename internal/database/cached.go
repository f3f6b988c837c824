package database

import (
	"context"
	"time"

	"github.com/amaumene/film21/internal/cache"
)

// Cached fronts a Database with an in-memory LRU for GetEntry.
type Cached struct {
	Database
	lru *cache.LRUCache[Entry]
}

func NewCached(db Database, capacity int, ttl time.Duration) *Cached {
	return &Cached{Database: db, lru: cache.New[Entry](capacity, ttl)}
}

// StartCleanup evicts expired cache entries every interval until ctx is done.
func (c *Cached) StartCleanup(ctx context.Context, interval time.Duration) {
	c.lru.StartCleanup(ctx, interval)
}

func (c *Cached) PutEntry(entry *Entry) error {
	if err := c.Database.PutEntry(entry); err != nil {
		return err
	}
	c.lru.Set(entry.ID, *entry)
	return nil
}

func (c *Cached) GetEntry(id string) (*Entry, error) {
	if e, ok := c.lru.Get(id); ok {
		return &e, nil
	}
	entry, err := c.Database.GetEntry(id)
	if err != nil || entry == nil {
		return entry, err
	}
	c.lru.Set(id, *entry)
	return entry, nil
}

func (c *Cached) DeleteOlderThan(maxAge time.Duration) (int, error) {
	n, err := c.Database.DeleteOlderThan(maxAge)
	if n > 0 {
		c.lru.Clear()
	}
	return n, err
}
