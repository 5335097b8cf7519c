package cache

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Config controls a Store's behavior.
type Config struct {
	// Enabled switches caching on. When false the store is a pure
	// pass-through: Get always misses and Set is a no-op.
	Enabled bool

	// Dir overrides the storage location for the default file backend.
	// Empty means the platform cache directory for "breachwatch".
	Dir string

	// TTL, when positive, is the sole freshness criterion: entries older
	// than TTL are stale and breach-date comparison is never consulted.
	TTL time.Duration
}

// FetchFunc performs one live request and returns its raw payload.
type FetchFunc func(ctx context.Context) (json.RawMessage, error)

// Store is a read-through response cache. Storage faults never propagate:
// a failed read is a miss and a failed write is dropped, so a cache
// malfunction can only cost extra live calls, never correctness.
type Store struct {
	cfg     Config
	storage Storage
	log     zerolog.Logger
	now     func() time.Time

	mu               sync.Mutex
	latestBreachDate string
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithStorage replaces the default file backend.
func WithStorage(s Storage) StoreOption {
	return func(st *Store) { st.storage = s }
}

// WithLogger sets the logger used for swallowed storage faults.
func WithLogger(log zerolog.Logger) StoreOption {
	return func(st *Store) { st.log = log }
}

// NewStore builds a Store from cfg. Without WithStorage it persists to the
// filesystem, in cfg.Dir if set or the platform cache directory otherwise.
func NewStore(cfg Config, opts ...StoreOption) (*Store, error) {
	st := &Store{
		cfg: cfg,
		log: zerolog.Nop(),
		now: time.Now,
	}
	for _, o := range opts {
		o(st)
	}

	if st.storage == nil {
		dir := cfg.Dir
		if dir == "" {
			resolved, err := Dir("breachwatch")
			if err != nil {
				return nil, err
			}
			dir = resolved
		}
		st.storage = NewFileStorage(dir)
	}

	return st, nil
}

// Get returns the cached payload for (endpoint, params) if a fresh entry
// exists. Unreadable or corrupt entries count as misses.
func (st *Store) Get(endpoint string, params Params) (json.RawMessage, bool) {
	if !st.cfg.Enabled {
		return nil, false
	}

	key := Key(endpoint, params)
	raw, err := st.storage.Read(key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			st.log.Debug().Err(err).Str("key", key).Msg("cache read failed, treating as miss")
		}
		return nil, false
	}

	var entry Entry
	if err := json.Unmarshal(raw, &entry); err != nil {
		st.log.Debug().Err(err).Str("key", key).Msg("corrupt cache entry, treating as miss")
		return nil, false
	}

	if !st.fresh(&entry) {
		return nil, false
	}
	return entry.Data, true
}

// Set persists data for (endpoint, params), stamping the current time and
// the latest known breach date. Empty payloads are not cached. Write
// failures are logged and dropped.
func (st *Store) Set(endpoint string, params Params, data json.RawMessage) {
	if !st.cfg.Enabled || len(data) == 0 || string(data) == "null" {
		return
	}

	st.mu.Lock()
	tag := st.latestBreachDate
	st.mu.Unlock()

	entry := Entry{
		Data:       data,
		CreatedAt:  st.now(),
		BreachDate: tag,
	}
	raw, err := json.Marshal(&entry)
	if err != nil {
		st.log.Warn().Err(err).Msg("cache entry marshal failed, skipping write")
		return
	}

	key := Key(endpoint, params)
	if err := st.storage.Write(key, raw); err != nil {
		st.log.Warn().Err(err).Str("key", key).Msg("cache write failed, continuing without caching")
	}
}

// SetLatestBreachDate records the "added" date of the newest known breach.
// An empty string clears the signal. Entries already written keep the tag
// they were stamped with.
func (st *Store) SetLatestBreachDate(date string) {
	st.mu.Lock()
	st.latestBreachDate = date
	st.mu.Unlock()
}

// Clear removes all stored entries.
func (st *Store) Clear() error {
	return st.storage.Clear()
}

// Fetch is the read-through path: a fresh cached payload is returned
// directly, otherwise fn performs the live call and its result is written
// back before being returned.
func (st *Store) Fetch(ctx context.Context, endpoint string, params Params, fn FetchFunc) (json.RawMessage, error) {
	if data, ok := st.Get(endpoint, params); ok {
		return data, nil
	}

	data, err := fn(ctx)
	if err != nil {
		return nil, err
	}
	st.Set(endpoint, params, data)
	return data, nil
}

// fresh applies the invalidation policy in strict order: TTL when
// configured; otherwise breach-date comparison when both sides are known;
// otherwise the entry never expires. The last rule means a cache with no
// TTL and no breach signal serves entries indefinitely.
func (st *Store) fresh(entry *Entry) bool {
	if st.cfg.TTL > 0 {
		return st.now().Sub(entry.CreatedAt) < st.cfg.TTL
	}

	st.mu.Lock()
	signal := st.latestBreachDate
	st.mu.Unlock()

	if signal != "" && entry.BreachDate != "" {
		// ISO-8601 timestamps compare chronologically as strings.
		return entry.BreachDate >= signal
	}
	return true
}
