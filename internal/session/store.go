// Package session provides the TTL key-value store backing login sessions.
// Payloads are opaque JSON documents; a payload may embed an "expiresAt"
// timestamp (unix milliseconds) which then overrides the default TTL.
package session

import (
	"encoding/json"
	"strings"
	"sync"
	"time"
)

// Store is the session persistence contract. Implementations enforce TTL
// expiry themselves; callers never see expired entries.
type Store interface {
	// Get returns the payload stored under key, or absent when the key is
	// unknown, expired, or holds a malformed payload.
	Get(key string) ([]byte, bool)
	// Set writes payload under key. The TTL derives from a payload-embedded
	// expiresAt when present, otherwise the configured default. A write whose
	// computed TTL is not positive destroys the key instead.
	Set(key string, payload []byte)
	// Touch resets the key's TTL to the default without rewriting the
	// payload. No-op when touch is disabled or the key is absent.
	Touch(key string)
	// Destroy removes the key.
	Destroy(key string)
	// Clear removes every key with the given prefix.
	Clear(prefix string)
}

type entry struct {
	payload   []byte
	expiresAt time.Time
}

type MemoryStore struct {
	mu           sync.RWMutex
	now          func() time.Time
	defaultTTL   time.Duration
	touchEnabled bool
	entries      map[string]entry
}

func NewMemoryStore(defaultTTL time.Duration, touchEnabled bool) *MemoryStore {
	return newMemoryStore(defaultTTL, touchEnabled, time.Now)
}

func newMemoryStore(defaultTTL time.Duration, touchEnabled bool, now func() time.Time) *MemoryStore {
	if defaultTTL <= 0 {
		defaultTTL = 30 * time.Minute
	}
	if now == nil {
		now = time.Now
	}
	return &MemoryStore{
		now:          now,
		defaultTTL:   defaultTTL,
		touchEnabled: touchEnabled,
		entries:      make(map[string]entry),
	}
}

func (s *MemoryStore) Get(key string) ([]byte, bool) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if s.now().After(e.expiresAt) {
		s.Destroy(key)
		return nil, false
	}
	if !json.Valid(e.payload) {
		s.Destroy(key)
		return nil, false
	}
	payload := make([]byte, len(e.payload))
	copy(payload, e.payload)
	return payload, true
}

func (s *MemoryStore) Set(key string, payload []byte) {
	ttl := s.ttlFor(payload)
	if ttl <= 0 {
		s.Destroy(key)
		return
	}

	stored := make([]byte, len(payload))
	copy(stored, payload)

	s.mu.Lock()
	s.entries[key] = entry{payload: stored, expiresAt: s.now().Add(ttl)}
	s.mu.Unlock()
}

func (s *MemoryStore) Touch(key string) {
	if !s.touchEnabled {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok {
		return
	}
	e.expiresAt = s.now().Add(s.defaultTTL)
	s.entries[key] = e
}

func (s *MemoryStore) Destroy(key string) {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

func (s *MemoryStore) Clear(prefix string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.entries {
		if strings.HasPrefix(key, prefix) {
			delete(s.entries, key)
		}
	}
}

// ttlFor computes the write TTL: ceil((expiresAt-now)/1s) when the payload
// embeds an expiry, else the default. Non-positive means already expired.
func (s *MemoryStore) ttlFor(payload []byte) time.Duration {
	var probe struct {
		ExpiresAt int64 `json:"expiresAt"`
	}
	if err := json.Unmarshal(payload, &probe); err != nil || probe.ExpiresAt == 0 {
		return s.defaultTTL
	}
	remaining := time.UnixMilli(probe.ExpiresAt).Sub(s.now())
	if remaining <= 0 {
		return 0
	}
	// Round up to whole seconds, matching store backends that take TTLs in
	// integral seconds.
	seconds := (remaining + time.Second - 1) / time.Second
	return seconds * time.Second
}
