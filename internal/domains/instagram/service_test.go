package instagram

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"school-site-backend/internal/config"
	infracache "school-site-backend/internal/infrastructure/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfig(upstreamURL string) config.InstagramConfig {
	return config.InstagramConfig{
		AccessToken: "test-token",
		APIURL:      upstreamURL,
		FeedLimit:   12,
		CacheTTL:    10 * time.Minute,
	}
}

func TestFeedRequestsGraphAPI(t *testing.T) {
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/me/media", r.URL.Path)
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"data":[{"id":"1","media_type":"IMAGE"}]}`))
	}))
	defer srv.Close()

	svc := NewService(newTestConfig(srv.URL), infracache.NewMemoryCache())

	feed, err := svc.Feed(context.Background())
	require.NoError(t, err)
	assert.False(t, feed.FromCache)
	assert.JSONEq(t, `{"data":[{"id":"1","media_type":"IMAGE"}]}`, string(feed.Payload))

	assert.Equal(t, []string{"test-token"}, gotQuery["access_token"])
	assert.Equal(t, []string{"12"}, gotQuery["limit"])
	assert.Equal(t, []string{feedFields}, gotQuery["fields"])
}

func TestFeedServedFromCacheWhileUpstreamDown(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) > 1 {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error":{"message":"token expired"}}`))
			return
		}
		w.Write([]byte(`{"data":[{"id":"1"}]}`))
	}))
	defer srv.Close()

	svc := NewService(newTestConfig(srv.URL), infracache.NewMemoryCache())

	first, err := svc.Feed(context.Background())
	require.NoError(t, err)

	// The upstream now fails, but the cached slot is inside its TTL so
	// the consumer sees the identical payload and no error.
	second, err := svc.Feed(context.Background())
	require.NoError(t, err)
	assert.True(t, second.FromCache)
	assert.Equal(t, string(first.Payload), string(second.Payload))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestFeedNotConfigured(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("upstream must not be called without a token")
	}))
	defer srv.Close()

	cfg := newTestConfig(srv.URL)
	cfg.AccessToken = ""
	svc := NewService(cfg, infracache.NewMemoryCache())

	_, err := svc.Feed(context.Background())
	require.ErrorIs(t, err, ErrNotConfigured)
	assert.Contains(t, err.Error(), "not configured")
}

func TestFeedUpstreamErrorSurfacesDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"invalid token"}}`))
	}))
	defer srv.Close()

	svc := NewService(newTestConfig(srv.URL), infracache.NewMemoryCache())

	_, err := svc.Feed(context.Background())
	require.Error(t, err)

	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, http.StatusBadRequest, upstream.StatusCode)
	assert.Contains(t, upstream.Detail, "invalid token")
}
