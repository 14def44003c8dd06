// Package swr implements a keyed stale-while-revalidate cache.
//
// Semantics per key:
//   - a fresh entry is served without touching the fetch function
//   - a stale entry is served immediately while a background refetch
//     runs; callers never block on revalidation
//   - a failed fetch never evicts a previously successful value; the
//     error is reported alongside the stale value instead
//   - each fetch carries a per-key sequence number so an older
//     in-flight response can never overwrite a newer one
package swr

import (
	"context"
	"sync"
	"time"
)

const (
	defaultTTL          = 5 * time.Minute
	defaultRetryBackoff = 200 * time.Millisecond
	revalidateTimeout   = 30 * time.Second
)

// FetchFunc loads the value for a key.
type FetchFunc func(ctx context.Context) (any, error)

// Options controls freshness and retry behavior for one lookup.
type Options struct {
	TTL          time.Duration // freshness window; default 5m
	Retries      int           // automatic retries on failure
	RetryBackoff time.Duration // base delay, grows linearly per attempt
}

// Source tells the caller how a result was produced.
type Source int

const (
	SourceMiss  Source = iota // fetched synchronously
	SourceHit                 // served fresh from cache
	SourceStale               // served from cache while revalidating
)

func (s Source) String() string {
	switch s {
	case SourceHit:
		return "hit"
	case SourceStale:
		return "stale"
	default:
		return "miss"
	}
}

// Result is the outcome of a lookup. Value and Err can both be set:
// a stale value with the error from the most recent failed refetch.
type Result struct {
	Value  any
	Err    error
	Source Source
}

type entry struct {
	value     any
	hasValue  bool
	fetchedAt time.Time
	seq       uint64 // latest issued fetch sequence for this key
	inflight  bool
	lastErr   error
}

// Store is a process-wide SWR cache. Initialized empty, cleared only
// by explicit invalidation or process restart.
type Store struct {
	mu      sync.Mutex
	entries map[string]*entry
	now     func() time.Time
}

// NewStore creates an empty store.
func NewStore() *Store {
	return NewStoreWithClock(time.Now)
}

// NewStoreWithClock creates an empty store with a custom time source.
func NewStoreWithClock(now func() time.Time) *Store {
	return &Store{
		entries: make(map[string]*entry),
		now:     now,
	}
}

// Get returns the cached value for key, fetching via fn when the entry
// is missing, and revalidating in the background when it is stale.
func (s *Store) Get(ctx context.Context, key string, opts Options, fn FetchFunc) Result {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}

	s.mu.Lock()
	e := s.entry(key)

	if e.hasValue {
		if s.now().Sub(e.fetchedAt) < ttl {
			res := Result{Value: e.value, Source: SourceHit}
			s.mu.Unlock()
			return res
		}

		// Stale: serve the last good value, refresh in the background.
		if !e.inflight {
			e.inflight = true
			e.seq++
			go s.revalidate(key, e.seq, opts, fn)
		}
		res := Result{Value: e.value, Err: e.lastErr, Source: SourceStale}
		s.mu.Unlock()
		return res
	}

	// Miss: the caller has nothing to show, fetch synchronously.
	e.inflight = true
	e.seq++
	seq := e.seq
	s.mu.Unlock()

	value, err := fetchWithRetry(ctx, opts, fn)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.apply(key, seq, value, err)
	if err != nil {
		return Result{Err: err, Source: SourceMiss}
	}
	return Result{Value: value, Source: SourceMiss}
}

// Refetch bypasses the freshness check and re-runs fn, replacing the
// entry on success. On failure the previous value stays intact and the
// error is both recorded and returned.
func (s *Store) Refetch(ctx context.Context, key string, opts Options, fn FetchFunc) (any, error) {
	s.mu.Lock()
	e := s.entry(key)
	e.inflight = true
	e.seq++
	seq := e.seq
	s.mu.Unlock()

	value, err := fetchWithRetry(ctx, opts, fn)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.apply(key, seq, value, err)
	return value, err
}

// Invalidate drops the entry for key.
func (s *Store) Invalidate(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
}

// InvalidateAll clears the store.
func (s *Store) InvalidateAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]*entry)
}

// entry returns the entry for key, creating it if needed. Caller must
// hold s.mu.
func (s *Store) entry(key string) *entry {
	e, ok := s.entries[key]
	if !ok {
		e = &entry{}
		s.entries[key] = e
	}
	return e
}

// apply commits a fetch outcome. Responses whose sequence is not the
// latest issued for the key are discarded: they lost the race to a
// newer fetch. Caller must hold s.mu.
func (s *Store) apply(key string, seq uint64, value any, err error) {
	e, ok := s.entries[key]
	if !ok || seq != e.seq {
		return
	}
	e.inflight = false
	if err != nil {
		// Errors never evict a previously successful value.
		e.lastErr = err
		return
	}
	e.value = value
	e.hasValue = true
	e.fetchedAt = s.now()
	e.lastErr = nil
}

// revalidate runs a background refresh decoupled from the caller's
// request context.
func (s *Store) revalidate(key string, seq uint64, opts Options, fn FetchFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), revalidateTimeout)
	defer cancel()

	value, err := fetchWithRetry(ctx, opts, fn)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.apply(key, seq, value, err)
}

// fetchWithRetry runs fn with up to opts.Retries additional attempts,
// backing off with an increasing delay between attempts.
func fetchWithRetry(ctx context.Context, opts Options, fn FetchFunc) (any, error) {
	backoff := opts.RetryBackoff
	if backoff <= 0 {
		backoff = defaultRetryBackoff
	}

	var lastErr error
	for attempt := 0; attempt <= opts.Retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * backoff):
			}
		}

		value, err := fn(ctx)
		if err == nil {
			return value, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return nil, lastErr
		}
	}
	return nil, lastErr
}
