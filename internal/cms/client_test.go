package cms

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSendsAuthAndContentType(t *testing.T) {
	var gotAuth, gotContentType, gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[],"meta":{"pagination":{"page":1,"pageSize":10,"pageCount":0,"total":0}}}`))
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL, APIToken: "secret-token"})
	env, err := client.Get(context.Background(), "/news-articles", &Query{PageSize: 10})
	require.NoError(t, err)

	assert.Equal(t, "Bearer secret-token", gotAuth)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "/api/news-articles", gotPath)
	assert.Contains(t, gotQuery, "pagination%5BpageSize%5D=10")

	require.NotNil(t, env.Meta.Pagination)
	assert.Equal(t, 10, env.Meta.Pagination.PageSize)
}

func TestGetNoTokenOmitsAuthHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"data":null,"meta":{}}`))
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL})
	_, err := client.Get(context.Background(), "/footer-info", nil)
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestGetRemoteError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"status":403,"name":"ForbiddenError","message":"Invalid credentials"}}`))
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL})
	_, err := client.Get(context.Background(), "/hero-banners", nil)
	require.Error(t, err)

	var remote *RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, http.StatusForbidden, remote.StatusCode)
	assert.Equal(t, "403 Forbidden. Invalid credentials", remote.Error())
	assert.True(t, IsRemoteError(err))
	assert.False(t, IsNetworkError(err))
}

func TestGetRemoteErrorUnparsableBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("<html>gateway exploded</html>"))
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL})
	_, err := client.Get(context.Background(), "/hero-banners", nil)

	var remote *RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, "500 Internal Server Error. Unknown error", remote.Error())
}

func TestGetNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	client := NewClient(Config{BaseURL: srv.URL})
	_, err := client.Get(context.Background(), "/hero-banners", nil)
	require.Error(t, err)

	assert.True(t, IsNetworkError(err))
	assert.False(t, IsRemoteError(err))
}

func TestPostWrapsBody(t *testing.T) {
	var gotBody string
	var gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf, _ := io.ReadAll(r.Body)
		gotBody = string(buf)
		gotMethod = r.Method
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"data":{"id":7,"attributes":{}},"meta":{}}`))
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL})
	env, err := client.Post(context.Background(), "/contact-submissions", map[string]any{
		"data": map[string]any{"name": "Jane"},
	})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.JSONEq(t, `{"data":{"name":"Jane"}}`, gotBody)

	entity, ok, err := env.Entity()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 7, entity.ID)
}

func TestEnvelopeEntities(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[{"id":1,"attributes":{"title":"a"}},{"id":2,"attributes":{"title":"b"}}],"meta":{}}`))
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL})
	env, err := client.Get(context.Background(), "/news-articles", nil)
	require.NoError(t, err)

	entities, err := env.Entities()
	require.NoError(t, err)
	require.Len(t, entities, 2)
	assert.Equal(t, "a", entities[0].Attributes["title"])
}
