package handler

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"school-site-backend/internal/cms"
	"school-site-backend/internal/domains/content"
	"school-site-backend/pkg/swr"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newContentRouter(t *testing.T, upstream http.HandlerFunc, clock *testClock) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	srv := httptest.NewServer(upstream)
	t.Cleanup(srv.Close)

	svc := content.NewService(cms.NewClient(cms.Config{BaseURL: srv.URL}))
	cached := content.NewCachedService(svc, swr.NewStoreWithClock(clock.Now))
	h := NewContentHandler(cached, svc, &cms.Resolver{BaseURL: srv.URL})

	r := gin.New()
	r.GET("/api/content/hero-banners", h.HeroBanners)
	r.GET("/api/content/media-url", h.MediaURL)
	return r
}

func doGet(r *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCacheHeaderMissThenHit(t *testing.T) {
	clock := &testClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	r := newContentRouter(t, func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(`{"data":[{"id":1,"attributes":{"title":"welcome"}}],"meta":{}}`))
	}, clock)

	first := doGet(r, "/api/content/hero-banners")
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "miss", first.Header().Get("X-Cache"))

	second := doGet(r, "/api/content/hero-banners")
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "hit", second.Header().Get("X-Cache"))
	assert.Equal(t, first.Body.String(), second.Body.String())
}

func TestStaleReadWithFailingRefetchStays200(t *testing.T) {
	clock := &testClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}

	// Upstream serves one good payload, then fails every request.
	var calls int32
	r := newContentRouter(t, func(w http.ResponseWriter, req *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.Write([]byte(`{"data":[{"id":1,"attributes":{"title":"welcome"}}],"meta":{}}`))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"message":"cms down"}}`))
	}, clock)

	first := doGet(r, "/api/content/hero-banners")
	require.Equal(t, http.StatusOK, first.Code)

	// Past the freshness window: the entry is stale, every read serves
	// the last good body and triggers a background refetch that fails.
	clock.Advance(time.Hour)

	stale := doGet(r, "/api/content/hero-banners")
	require.Equal(t, http.StatusOK, stale.Code)
	assert.Equal(t, "stale", stale.Header().Get("X-Cache"))
	assert.Equal(t, first.Body.String(), stale.Body.String())

	// Keep reading until a second revalidation cycle has been kicked
	// off: that only happens after the first cycle finished recording
	// its failure, so the response below carried both the cached value
	// and the refetch error.
	var again *httptest.ResponseRecorder
	require.Eventually(t, func() bool {
		again = doGet(r, "/api/content/hero-banners")
		return atomic.LoadInt32(&calls) >= 5
	}, 5*time.Second, 50*time.Millisecond)

	assert.Equal(t, http.StatusOK, again.Code)
	assert.Equal(t, "stale", again.Header().Get("X-Cache"))
	assert.Equal(t, first.Body.String(), again.Body.String())
}

func TestMediaURLEndpointIsTotal(t *testing.T) {
	clock := &testClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	r := newContentRouter(t, func(w http.ResponseWriter, req *http.Request) {}, clock)

	w := doGet(r, "/api/content/media-url?src=/uploads/banner.jpg&width=640")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/uploads/banner.jpg?width=640")

	w = doGet(r, "/api/content/media-url")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"url":""`)
}
