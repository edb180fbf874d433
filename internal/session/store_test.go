package session

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestStore(ttl time.Duration, touch bool) (*MemoryStore, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	return newMemoryStore(ttl, touch, clock.now), clock
}

func TestSetGet(t *testing.T) {
	store, _ := newTestStore(30*time.Minute, true)

	store.Set("sess:a", []byte(`{"user":{"id":1}}`))

	payload, ok := store.Get("sess:a")
	assert.True(t, ok)
	assert.JSONEq(t, `{"user":{"id":1}}`, string(payload))

	_, ok = store.Get("sess:missing")
	assert.False(t, ok)
}

func TestDefaultTTLExpiry(t *testing.T) {
	store, clock := newTestStore(30*time.Minute, true)

	store.Set("sess:a", []byte(`{}`))

	clock.advance(29 * time.Minute)
	_, ok := store.Get("sess:a")
	assert.True(t, ok)

	clock.advance(2 * time.Minute)
	_, ok = store.Get("sess:a")
	assert.False(t, ok)
}

func TestEmbeddedExpiryOverridesDefault(t *testing.T) {
	store, clock := newTestStore(30*time.Minute, true)

	expiresAt := clock.t.Add(5 * time.Second).UnixMilli()
	store.Set("sess:a", []byte(`{"expiresAt":`+timeString(expiresAt)+`}`))

	clock.advance(4 * time.Second)
	_, ok := store.Get("sess:a")
	assert.True(t, ok)

	clock.advance(2 * time.Second)
	_, ok = store.Get("sess:a")
	assert.False(t, ok)
}

func TestExpiredWriteDestroys(t *testing.T) {
	store, clock := newTestStore(30*time.Minute, true)

	store.Set("sess:a", []byte(`{}`))

	// Rewriting with an already-past expiry must delete, not store.
	past := clock.t.Add(-time.Minute).UnixMilli()
	store.Set("sess:a", []byte(`{"expiresAt":`+timeString(past)+`}`))

	_, ok := store.Get("sess:a")
	assert.False(t, ok)
}

func TestTouchRefreshesTTL(t *testing.T) {
	store, clock := newTestStore(10*time.Minute, true)

	store.Set("sess:a", []byte(`{}`))

	clock.advance(9 * time.Minute)
	store.Touch("sess:a")

	clock.advance(9 * time.Minute)
	_, ok := store.Get("sess:a")
	assert.True(t, ok)

	clock.advance(2 * time.Minute)
	_, ok = store.Get("sess:a")
	assert.False(t, ok)
}

func TestTouchDisabled(t *testing.T) {
	store, clock := newTestStore(10*time.Minute, false)

	store.Set("sess:a", []byte(`{}`))

	clock.advance(9 * time.Minute)
	store.Touch("sess:a")

	clock.advance(2 * time.Minute)
	_, ok := store.Get("sess:a")
	assert.False(t, ok)
}

func TestMalformedPayloadAbsent(t *testing.T) {
	store, _ := newTestStore(10*time.Minute, true)

	store.mu.Lock()
	store.entries["sess:bad"] = entry{
		payload:   []byte(`{"truncated":`),
		expiresAt: store.now().Add(time.Hour),
	}
	store.mu.Unlock()

	_, ok := store.Get("sess:bad")
	assert.False(t, ok)
}

func TestDestroyAndClear(t *testing.T) {
	store, _ := newTestStore(10*time.Minute, true)

	store.Set("sess:a", []byte(`{}`))
	store.Set("sess:b", []byte(`{}`))
	store.Set("other:c", []byte(`{}`))

	store.Destroy("sess:a")
	_, ok := store.Get("sess:a")
	assert.False(t, ok)

	store.Clear("sess:")
	_, ok = store.Get("sess:b")
	assert.False(t, ok)
	_, ok = store.Get("other:c")
	assert.True(t, ok)
}

func timeString(millis int64) string {
	return strconv.FormatInt(millis, 10)
}
