// Package store tracks one synchronization state per remote collection so
// loading, error and ready semantics are implemented once instead of per
// screen.
package store

import (
	"context"
	"sync"
	"time"
)

// Status enumerates the per-key synchronization states. Idle is the zero
// value so an absent key reads as Idle without special-casing.
type Status string

const (
	StatusIdle    Status = ""
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusError   Status = "error"
)

// Snapshot is the observable state of one resource key.
type Snapshot struct {
	Status    Status
	Data      any
	Err       error
	FetchedAt time.Time
}

// Result carries one fetch completion back into the store.
type Result struct {
	Key       string
	Data      any
	Err       error
	keepStale bool
}

// FetchFunc performs the remote read for one key.
type FetchFunc func(context.Context) (any, error)

// LoadOption adjusts how one load's completion is applied.
type LoadOption func(*loadSettings)

type loadSettings struct {
	keepStale bool
}

// KeepStaleOnError retains the last Ready data when the fetch fails
// (stale-while-revalidate). The default is that an error replaces the data.
func KeepStaleOnError() LoadOption {
	return func(s *loadSettings) { s.keepStale = true }
}

// Store holds the per-key snapshots. It is the single shared mutable
// resource of the client and is safe for concurrent use; the at-most-one
// in-flight rule is enforced by Begin.
type Store struct {
	mu     sync.RWMutex
	states map[string]Snapshot
}

// New creates an empty store; every key starts Idle.
func New() *Store {
	return &Store{states: map[string]Snapshot{}}
}

// Begin marks the key Loading and returns a thunk that performs the fetch
// and produces the Result to Apply. When the key is already Loading the
// call is a no-op and ok is false: concurrent triggers for the same key
// de-duplicate to a single underlying request.
func (s *Store) Begin(key string, fetch FetchFunc, opts ...LoadOption) (run func(context.Context) Result, ok bool) {
	settings := loadSettings{}
	for _, opt := range opts {
		opt(&settings)
	}

	s.mu.Lock()
	current := s.states[key]
	if current.Status == StatusLoading {
		s.mu.Unlock()
		return nil, false
	}
	// Prior data stays visible while the refresh is in flight.
	current.Status = StatusLoading
	current.Err = nil
	s.states[key] = current
	s.mu.Unlock()

	return func(ctx context.Context) Result {
		data, err := fetch(ctx)
		return Result{Key: key, Data: data, Err: err, keepStale: settings.keepStale}
	}, true
}

// Apply writes one fetch completion. Loading transitions to Ready on
// success and to Error on failure. Completions are applied even if the
// originating view has navigated away, so the next reader of the key sees
// current data.
func (s *Store) Apply(res Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current := s.states[res.Key]
	if res.Err != nil {
		current.Status = StatusError
		current.Err = res.Err
		if !res.keepStale {
			current.Data = nil
			current.FetchedAt = time.Time{}
		}
		s.states[res.Key] = current
		return
	}
	s.states[res.Key] = Snapshot{
		Status:    StatusReady,
		Data:      res.Data,
		FetchedAt: time.Now(),
	}
}

// Read returns the current snapshot for the key; unknown keys are Idle.
func (s *Store) Read(key string) Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.states[key]
}

// Invalidate resets the key to Idle so the next load refetches.
func (s *Store) Invalidate(key string) {
	s.mu.Lock()
	delete(s.states, key)
	s.mu.Unlock()
}

// Reset drops every key. Called when the session identity changes so one
// user's data never leaks into the next session.
func (s *Store) Reset() {
	s.mu.Lock()
	s.states = map[string]Snapshot{}
	s.mu.Unlock()
}
