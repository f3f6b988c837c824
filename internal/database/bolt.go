// Package database provides the addon ID index using BoltDB.
package database

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/amaumene/film21/internal/media"
)

const (
	// Default database file permissions
	dbFileMode = 0600
	dbDirMode  = 0755

	// Default database filename
	defaultDBFile = "film21.db"

	openTimeout = 5 * time.Second
)

var entriesBucket = []byte("entries")

// Entry maps an addon ID to the page it was built from.
type Entry struct {
	ID        string     `json:"id"`
	URL       string     `json:"url"`
	Origin    string     `json:"origin"` // scheme://host the page was served from
	Kind      media.Kind `json:"kind"`
	Name      string     `json:"name"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Database defines the interface for index persistence.
type Database interface {
	// PutEntry inserts or replaces an entry keyed by its ID
	PutEntry(entry *Entry) error
	// GetEntry returns nil without error when id is unknown
	GetEntry(id string) (*Entry, error)
	// DeleteOlderThan removes entries not updated within maxAge
	DeleteOlderThan(maxAge time.Duration) (int, error)
	// Close closes the database
	Close() error
}

// BoltDB implements Database on a single bbolt bucket holding JSON values.
type BoltDB struct {
	db *bolt.DB
}

// NewBolt opens or creates the index at dbPath.
// If dbPath is empty, uses the default database file in current directory.
func NewBolt(dbPath string) (*BoltDB, error) {
	if dbPath == "" {
		dbPath = filepath.Join(".", defaultDBFile)
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), dbDirMode); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := bolt.Open(dbPath, dbFileMode, &bolt.Options{Timeout: openTimeout})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(entriesBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create bucket: %w", err)
	}

	return &BoltDB{db: db}, nil
}

func (b *BoltDB) Close() error {
	return b.db.Close()
}

// PutEntry stores entry, stamping UpdatedAt when it is zero.
func (b *BoltDB) PutEntry(entry *Entry) error {
	if entry == nil || entry.ID == "" {
		return errors.New("entry id must not be empty")
	}
	if entry.UpdatedAt.IsZero() {
		entry.UpdatedAt = time.Now()
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode entry %s: %w", entry.ID, err)
	}

	err = b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(entriesBucket).Put([]byte(entry.ID), data)
	})
	if err != nil {
		return fmt.Errorf("failed to store entry %s: %w", entry.ID, err)
	}
	return nil
}

func (b *BoltDB) GetEntry(id string) (*Entry, error) {
	var entry *Entry
	err := b.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(entriesBucket).Get([]byte(id))
		if data == nil {
			return nil
		}
		entry = &Entry{}
		return json.Unmarshal(data, entry)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get entry %s: %w", id, err)
	}
	return entry, nil
}

// DeleteOlderThan removes entries whose UpdatedAt is before now-maxAge and
// returns how many were removed. Undecodable values are removed too.
func (b *BoltDB) DeleteOlderThan(maxAge time.Duration) (int, error) {
	cutoff := time.Now().Add(-maxAge)
	removed := 0

	err := b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(entriesBucket)
		var stale [][]byte
		err := bucket.ForEach(func(k, v []byte) error {
			var e Entry
			if err := json.Unmarshal(v, &e); err != nil || e.UpdatedAt.Before(cutoff) {
				stale = append(stale, append([]byte(nil), k...))
			}
			return nil
		})
		if err != nil {
			return err
		}
		for _, k := range stale {
			if err := bucket.Delete(k); err != nil {
				return err
			}
		}
		removed = len(stale)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to delete old entries: %w", err)
	}
	return removed, nil
}
