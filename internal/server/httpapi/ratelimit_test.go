package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/dmitrijs2005/meanblog/internal/logging"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T, limit float64, burst int) (*RedisRateLimiterStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisRateLimiterStore(client, limit, burst, logging.Nop{}), mr
}

func TestRedisRateLimiterStore_Window(t *testing.T) {
	store, _ := newRedisStore(t, 2, 3)
	now := time.Unix(1_700_000_000, 0)
	store.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		ok, err := store.Allow("10.0.0.1")
		require.NoError(t, err)
		assert.True(t, ok, "request %d", i)
	}

	ok, err := store.Allow("10.0.0.1")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, _ = store.Allow("10.0.0.2")
	assert.True(t, ok, "other identifiers have their own budget")

	now = now.Add(time.Second)
	ok, _ = store.Allow("10.0.0.1")
	assert.True(t, ok, "next window starts fresh")
}

func TestRedisRateLimiterStore_KeysExpire(t *testing.T) {
	store, mr := newRedisStore(t, 1, 1)
	store.now = func() time.Time { return time.Unix(1_700_000_000, 0) }

	_, err := store.Allow("10.0.0.1")
	require.NoError(t, err)

	keys := mr.Keys()
	require.Len(t, keys, 1)
	assert.Equal(t, "meanblog:ratelimit:10.0.0.1:1700000000", keys[0])
	assert.Equal(t, 2*time.Second, mr.TTL(keys[0]))
}

func TestRedisRateLimiterStore_FailsOpen(t *testing.T) {
	store, mr := newRedisStore(t, 1, 1)
	mr.Close()

	ok, err := store.Allow("10.0.0.1")
	assert.NoError(t, err)
	assert.True(t, ok)
}

func TestNewRedisRateLimiterStore_Budget(t *testing.T) {
	assert.Equal(t, int64(20), NewRedisRateLimiterStore(nil, 10, 20, logging.Nop{}).limit)
	assert.Equal(t, int64(3), NewRedisRateLimiterStore(nil, 2.5, 1, logging.Nop{}).limit)
}

func TestRateLimitMiddleware_Denies(t *testing.T) {
	h := NewHTTPServer(Options{
		RoutePrefix: prefix,
		RateLimiter: NewMemoryRateLimiterStore(0.001, 1),
	}, logging.Nop{}, newTestService(t, time.Hour)).Handler()

	send := func() *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, prefix+"/checkUsername/alice", nil))
		return rec
	}

	assert.Equal(t, http.StatusOK, send().Code)

	denied := send()
	assert.Equal(t, http.StatusTooManyRequests, denied.Code)
	assert.JSONEq(t, `{"success":false,"message":"Too many requests"}`, denied.Body.String())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code, "health is not rate limited")
}

var _ middleware.RateLimiterStore = (*RedisRateLimiterStore)(nil)
