package tmdb

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mmcdole/cinesearch/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const searchBody = `{
  "page": 2,
  "results": [
    {"id": 11, "title": "Return of the Jedi", "release_date": "1983-05-25", "overview": "Luke...", "poster_path": "/jedi.jpg"},
    {"id": 12, "title": "The Return", "release_date": "", "overview": "", "poster_path": null}
  ],
  "total_pages": 20,
  "total_results": 392
}`

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSearchMapsResults(t *testing.T) {
	var got *http.Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, searchBody)
	}))
	defer server.Close()

	client := NewClient(Config{
		AccessToken:  "token-123",
		BaseURL:      server.URL,
		ImageBaseURL: "https://img.example/w500",
		Language:     "en-US",
	}, quietLogger())

	page, err := client.Search(context.Background(), "return", 2)
	require.NoError(t, err)

	require.NotNil(t, got)
	assert.Equal(t, "/3/search/movie", got.URL.Path)
	assert.Equal(t, "return", got.URL.Query().Get("query"))
	assert.Equal(t, "2", got.URL.Query().Get("page"))
	assert.Equal(t, "en-US", got.URL.Query().Get("language"))
	assert.Equal(t, "false", got.URL.Query().Get("include_adult"))
	assert.Equal(t, "Bearer token-123", got.Header.Get("Authorization"))
	assert.Empty(t, got.URL.Query().Get("api_key"))

	assert.Equal(t, 20, page.TotalPages)
	require.Len(t, page.Items, 2)
	assert.Equal(t, domain.MovieSummary{
		ID:          "11",
		Title:       "Return of the Jedi",
		ReleaseDate: "1983-05-25",
		Overview:    "Luke...",
		PosterPath:  "https://img.example/w500/jedi.jpg",
	}, page.Items[0])
	assert.Equal(t, "", page.Items[1].PosterPath)
}

func TestSearchUsesAPIKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "v3key", r.URL.Query().Get("api_key"))
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = io.WriteString(w, `{"page":1,"results":[],"total_pages":0}`)
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "v3key", BaseURL: server.URL}, quietLogger())
	page, err := client.Search(context.Background(), "nothing", 1)
	require.NoError(t, err)
	assert.True(t, page.IsEmpty())
}

func TestSearchClampsTotalPages(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"page":1,"results":[{"id":1,"title":"A"}],"total_pages":9000}`)
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "k", BaseURL: server.URL}, quietLogger())
	page, err := client.Search(context.Background(), "a", 1)
	require.NoError(t, err)
	assert.Equal(t, 500, page.TotalPages)
}

func TestSearchErrors(t *testing.T) {
	testCases := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "Unauthorized", status: http.StatusUnauthorized, body: `{"status_code":7,"status_message":"Invalid API key"}`, wantErr: domain.ErrUnauthorized},
		{name: "ServerError", status: http.StatusServiceUnavailable, body: `{"status_message":"down"}`, wantErr: domain.ErrCatalogUnavailable},
		{name: "RateLimited", status: http.StatusTooManyRequests, body: ``, wantErr: domain.ErrCatalogUnavailable},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = io.WriteString(w, tc.body)
			}))
			defer server.Close()

			client := NewClient(Config{APIKey: "k", BaseURL: server.URL}, quietLogger())
			_, err := client.Search(context.Background(), "x", 1)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestSearchMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"results": [`)
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "k", BaseURL: server.URL}, quietLogger())
	_, err := client.Search(context.Background(), "x", 1)
	assert.Error(t, err)
}

func TestSearchUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewClient(Config{APIKey: "k", BaseURL: url}, quietLogger())
	_, err := client.Search(context.Background(), "x", 1)
	assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)
}
