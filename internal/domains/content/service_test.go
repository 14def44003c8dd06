package content

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"school-site-backend/internal/cms"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, handler http.HandlerFunc) (*Service, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewService(cms.NewClient(cms.Config{BaseURL: srv.URL})), srv
}

func TestHeroBannersDefaults(t *testing.T) {
	var gotQuery map[string][]string
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/hero-banners", r.URL.Path)
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"data":[],"meta":{}}`))
	})

	_, err := svc.HeroBanners(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"*"}, gotQuery["populate"])
	assert.Equal(t, []string{"order:asc"}, gotQuery["sort"])
	assert.Equal(t, []string{"true"}, gotQuery["filters[isActive][$eq]"])
}

func TestNewsArticlesOptions(t *testing.T) {
	var gotQuery map[string][]string
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"data":[],"meta":{}}`))
	})

	featured := true
	_, err := svc.NewsArticles(context.Background(), NewsOptions{Featured: &featured, Limit: 6})
	require.NoError(t, err)

	assert.Equal(t, []string{"publishedAt:desc"}, gotQuery["sort"])
	assert.Equal(t, []string{"true"}, gotQuery["filters[featured][$eq]"])
	assert.Equal(t, []string{"6"}, gotQuery["pagination[pageSize]"])
}

func TestUpcomingEventsFiltersOutPastEvents(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	// CMS fixture: 3 past and 2 future events; the handler honors the
	// eventDate filter the way the real CMS would.
	all := []cms.Entity{
		{ID: 1, Attributes: map[string]any{"title": "old one", "eventDate": "2025-01-10T09:00:00Z"}},
		{ID: 2, Attributes: map[string]any{"title": "old two", "eventDate": "2025-03-15T09:00:00Z"}},
		{ID: 3, Attributes: map[string]any{"title": "old three", "eventDate": "2025-05-30T09:00:00Z"}},
		{ID: 4, Attributes: map[string]any{"title": "sports day", "eventDate": "2025-06-10T09:00:00Z"}},
		{ID: 5, Attributes: map[string]any{"title": "graduation", "eventDate": "2025-07-01T09:00:00Z"}},
	}

	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/events", r.URL.Path)
		assert.Equal(t, "eventDate:asc", r.URL.Query().Get("sort"))

		cutoffRaw := r.URL.Query().Get("filters[eventDate][$gte]")
		require.NotEmpty(t, cutoffRaw, "upcoming events must request a lower bound on eventDate")
		cutoff, err := time.Parse(time.RFC3339, cutoffRaw)
		require.NoError(t, err)

		var matched []cms.Entity
		for _, e := range all {
			eventDate, err := time.Parse(time.RFC3339, e.Attributes["eventDate"].(string))
			require.NoError(t, err)
			if !eventDate.Before(cutoff) {
				matched = append(matched, e)
			}
		}

		payload, _ := json.Marshal(matched)
		w.Write([]byte(`{"data":` + string(payload) + `,"meta":{}}`))
	})
	svc.now = func() time.Time { return now }

	env, err := svc.UpcomingEvents(context.Background(), 5)
	require.NoError(t, err)

	events, err := env.Entities()
	require.NoError(t, err)
	require.Len(t, events, 2, "only future events expected")
	assert.Equal(t, "sports day", events[0].Attributes["title"])
	assert.Equal(t, "graduation", events[1].Attributes["title"])
}

func TestSearchRejectsShortQuery(t *testing.T) {
	called := false
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := svc.Search(context.Background(), "ab", 10)
	require.ErrorIs(t, err, ErrQueryTooShort)
	assert.False(t, called, "short queries must not reach the CMS")

	_, err = svc.Search(context.Background(), "  a  ", 10)
	require.ErrorIs(t, err, ErrQueryTooShort)
}

func TestSearchQueriesNewsAndEvents(t *testing.T) {
	paths := map[string]int{}
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		paths[r.URL.Path]++
		assert.Equal(t, "library", r.URL.Query().Get("filters[title][$containsi]"))
		w.Write([]byte(`{"data":[{"id":1,"attributes":{"title":"library week"}}],"meta":{}}`))
	})

	results, err := svc.Search(context.Background(), "library", 10)
	require.NoError(t, err)

	assert.Equal(t, 1, paths["/api/news-articles"])
	assert.Equal(t, 1, paths["/api/events"])
	require.Len(t, results.News, 1)
	require.Len(t, results.Events, 1)
}

func TestSubmitContactValidates(t *testing.T) {
	called := false
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := svc.SubmitContact(context.Background(), ContactSubmission{Name: "x"})
	require.Error(t, err)
	assert.False(t, called, "invalid submissions must not reach the CMS")
}

func TestSubmitContactForwardsEnvelope(t *testing.T) {
	var gotBody map[string]any
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/contact-submissions", r.URL.Path)
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"data":{"id":11,"attributes":{}},"meta":{}}`))
	})

	sub := ContactSubmission{
		Name:    "Jane Doe",
		Email:   "jane@example.com",
		Subject: "Admissions",
		Message: "I would like to know more about enrollment.",
	}
	env, err := svc.SubmitContact(context.Background(), sub)
	require.NoError(t, err)

	data, ok := gotBody["data"].(map[string]any)
	require.True(t, ok, "submission must be wrapped in {data: ...}")
	assert.Equal(t, "Jane Doe", data["name"])

	entity, ok, err := env.Entity()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 11, entity.ID)
}
