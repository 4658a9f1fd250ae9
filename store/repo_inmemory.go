package store

import (
	"sync"
	"time"

	"github.com/jrsteele09/go-pkce-exchange/internal/errors"
)

type entry struct {
	value     string
	createdAt time.Time
}

// InMemoryRepo is a thread-safe in-memory implementation of the Store interface.
// With a TTL, entries older than the TTL read as missing and are swept on write.
type InMemoryRepo struct {
	mu        sync.RWMutex
	values    map[string]entry
	ttl       time.Duration
	now       func() time.Time
	lastSweep time.Time
}

var _ Store = (*InMemoryRepo)(nil)

type Option func(*InMemoryRepo)

// WithTTL expires entries ttl after they were last set. Zero keeps entries forever.
func WithTTL(ttl time.Duration) Option {
	return func(r *InMemoryRepo) {
		r.ttl = ttl
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(r *InMemoryRepo) {
		r.now = now
	}
}

// NewInMemoryRepo creates a new in-memory store
func NewInMemoryRepo(opts ...Option) *InMemoryRepo {
	r := &InMemoryRepo{
		values: make(map[string]entry),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.lastSweep = r.now()
	return r
}

// Get retrieves a value by key
func (r *InMemoryRepo) Get(key string) (string, error) {
	if key == "" {
		return "", errors.ErrEmptyKey
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	e, exists := r.values[key]
	if !exists || r.expired(e, r.now()) {
		return "", errors.Wrapf(errors.ErrNotFound, "[store Get] %s", key)
	}
	return e.value, nil
}

// Set stores or replaces a value
func (r *InMemoryRepo) Set(key, value string) error {
	if key == "" {
		return errors.ErrEmptyKey
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.sweep(now)
	r.values[key] = entry{value: value, createdAt: now}
	return nil
}

// Remove deletes a value. Removing a missing key is not an error.
func (r *InMemoryRepo) Remove(key string) error {
	if key == "" {
		return errors.ErrEmptyKey
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.values, key)
	return nil
}

// Len reports the number of entries held, expired or not.
func (r *InMemoryRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.values)
}

func (r *InMemoryRepo) expired(e entry, now time.Time) bool {
	return r.ttl > 0 && now.Sub(e.createdAt) >= r.ttl
}

// sweep drops expired entries at most once per TTL. Callers hold the write lock.
func (r *InMemoryRepo) sweep(now time.Time) {
	if r.ttl <= 0 || now.Sub(r.lastSweep) < r.ttl {
		return
	}
	for k, e := range r.values {
		if r.expired(e, now) {
			delete(r.values, k)
		}
	}
	r.lastSweep = now
}
