// Package cache provides a read-through response cache for the HIBP client
// with pluggable storage backends and breach-date-aware invalidation.
package cache

import (
	"encoding/json"
	"errors"
	"time"
)

var (
	// ErrInvalidAppID is returned by Dir when the application identifier
	// is empty or contains characters other than letters, digits and hyphens.
	ErrInvalidAppID = errors.New("invalid application identifier")

	// ErrNotFound is returned by Storage implementations when no entry
	// exists for a key.
	ErrNotFound = errors.New("cache entry not found")
)

// Entry is the stored document for each cache key.
type Entry struct {
	Data       json.RawMessage `json:"data"`
	CreatedAt  time.Time       `json:"created_at"`
	BreachDate string          `json:"breach_date,omitempty"`
}

// Storage persists raw entry documents by key. Implementations must write
// atomically so a concurrent reader never observes a partial entry.
type Storage interface {
	// Read returns the stored bytes for key, or ErrNotFound.
	Read(key string) ([]byte, error)

	// Write stores data under key, creating parent locations as needed.
	Write(key string, data []byte) error

	// Clear removes every stored entry.
	Clear() error
}
