package throttle

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// MemoryStore keeps both keyspaces in process memory behind a single mutex.
// Records expire lazily on Attempt; there is no background cleanup.
type MemoryStore struct {
	mu         sync.Mutex
	identities map[string]Record
	origins    map[string]Record

	// Sizes are published after every mutation so Size never takes mu.
	identityCount atomic.Int64
	originCount   atomic.Int64
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		identities: make(map[string]Record, 8192),
		origins:    make(map[string]Record, 8192),
	}
}

func (ms *MemoryStore) Attempt(_ context.Context, keyspace Keyspace, key string, now time.Time, cfg Config) (bool, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	m, err := ms.records(keyspace)
	if err != nil {
		return false, err
	}

	var current *Record
	if rec, ok := m[key]; ok {
		current = &rec
	}
	rec, allowed := next(current, now, cfg)
	m[key] = rec

	ms.sweep(now, cfg.Window)
	ms.publish()

	return allowed, nil
}

func (ms *MemoryStore) Clear(_ context.Context, keys ...string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	for _, key := range keys {
		delete(ms.identities, key)
		delete(ms.origins, key)
	}
	ms.publish()
	return nil
}

func (ms *MemoryStore) Size(keyspace Keyspace) int {
	switch keyspace {
	case KeyspaceIdentity:
		return int(ms.identityCount.Load())
	case KeyspaceOrigin:
		return int(ms.originCount.Load())
	default:
		return 0
	}
}

// Lookup returns the record tracked for key in keyspace.
func (ms *MemoryStore) Lookup(keyspace Keyspace, key string) (Record, bool) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	m, err := ms.records(keyspace)
	if err != nil {
		return Record{}, false
	}
	rec, ok := m[key]
	return rec, ok
}

func (ms *MemoryStore) records(keyspace Keyspace) (map[string]Record, error) {
	switch keyspace {
	case KeyspaceIdentity:
		return ms.identities, nil
	case KeyspaceOrigin:
		return ms.origins, nil
	default:
		return nil, ErrUnknownKeyspace
	}
}

// sweep must be called with mu held.
func (ms *MemoryStore) sweep(now time.Time, window time.Duration) {
	for _, m := range []map[string]Record{ms.identities, ms.origins} {
		for key, rec := range m {
			if expired(rec, now, window) {
				delete(m, key)
			}
		}
	}
}

// publish must be called with mu held.
func (ms *MemoryStore) publish() {
	ms.identityCount.Store(int64(len(ms.identities)))
	ms.originCount.Store(int64(len(ms.origins)))
}
