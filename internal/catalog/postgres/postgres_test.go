package postgres

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikePattern(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "Plain", input: "alien", expected: "%alien%"},
		{name: "Percent", input: "100%", expected: `%100\%%`},
		{name: "Underscore", input: "a_b", expected: `%a\_b%`},
		{name: "Backslash", input: `c:\`, expected: `%c:\\%`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, likePattern(tc.input))
		})
	}
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, totalPages(0, 20))
	assert.Equal(t, 1, totalPages(19, 20))
	assert.Equal(t, 3, totalPages(41, 20))
}

// TestSearchAgainstDatabase runs only when CINESEARCH_TEST_DATABASE_URL
// points at a database. A single connection keeps the temp table visible.
func TestSearchAgainstDatabase(t *testing.T) {
	url := os.Getenv("CINESEARCH_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("CINESEARCH_TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	catalog, err := Open(ctx, Config{URL: url, PageSize: 2, MaxConns: 1}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	defer catalog.Close()

	_, err = catalog.pool.Exec(ctx, `
		CREATE TEMP TABLE movies (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			release_date DATE,
			overview TEXT NOT NULL DEFAULT '',
			poster_path TEXT,
			popularity DOUBLE PRECISION NOT NULL DEFAULT 0
		)`)
	require.NoError(t, err)

	_, err = catalog.pool.Exec(ctx, `
		INSERT INTO movies (id, title, release_date, popularity, poster_path) VALUES
		('1', 'Alien', '1979-05-25', 90, '/a.jpg'),
		('2', 'Aliens', '1986-07-18', 80, NULL),
		('3', 'Alien 3', NULL, 70, NULL),
		('4', 'Heat', '1995-12-15', 60, NULL)`)
	require.NoError(t, err)

	page, err := catalog.Search(ctx, "alien", 1)
	require.NoError(t, err)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Alien", page.Items[0].Title)
	assert.Equal(t, "1979-05-25", page.Items[0].ReleaseDate)
	assert.Equal(t, "/a.jpg", page.Items[0].PosterPath)

	page, err = catalog.Search(ctx, "alien", 2)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "", page.Items[0].ReleaseDate)
}
