package config

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadFromYAML(t *testing.T, yaml string) (*Config, error) {
	t.Helper()
	v := newViper()
	require.NoError(t, v.ReadConfig(bytes.NewBufferString(yaml)))
	return decode(v)
}

func TestDefaultsApplyWithoutFile(t *testing.T) {
	cfg, err := loadFromYAML(t, `
tmdb:
  access_token: abc
`)
	require.NoError(t, err)

	assert.Equal(t, SourceTMDB, cfg.Catalog.Source)
	assert.Equal(t, 750*time.Millisecond, cfg.Search.Debounce)
	assert.Equal(t, 15*time.Second, cfg.Catalog.FetchTimeout)
	assert.Equal(t, "return", cfg.Search.SeedQuery)
	assert.Equal(t, "https://api.themoviedb.org", cfg.TMDB.BaseURL)
	assert.Equal(t, 20, cfg.Catalog.PageSize)
}

func TestFileOverridesDefaults(t *testing.T) {
	cfg, err := loadFromYAML(t, `
catalog:
  source: index
  page_size: 10
index:
  path: /tmp/movies
search:
  seed_query: alien
  debounce: 300ms
`)
	require.NoError(t, err)

	assert.Equal(t, SourceIndex, cfg.Catalog.Source)
	assert.Equal(t, 10, cfg.Catalog.PageSize)
	assert.Equal(t, "/tmp/movies", cfg.Index.Path)
	assert.Equal(t, "alien", cfg.Search.SeedQuery)
	assert.Equal(t, 300*time.Millisecond, cfg.Search.Debounce)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	t.Setenv("CINESEARCH_TMDB_ACCESS_TOKEN", "from-env")
	t.Setenv("CINESEARCH_SEARCH_SEED_QUERY", "heat")

	cfg, err := loadFromYAML(t, `
tmdb:
  access_token: from-file
`)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.TMDB.AccessToken)
	assert.Equal(t, "heat", cfg.Search.SeedQuery)
}

func TestValidationFailures(t *testing.T) {
	testCases := []struct {
		name string
		yaml string
	}{
		{name: "UnknownSource", yaml: "catalog:\n  source: ftp\n"},
		{name: "TMDBWithoutCredentials", yaml: "catalog:\n  source: tmdb\n"},
		{name: "PostgresWithoutURL", yaml: "catalog:\n  source: postgres\n"},
		{name: "PageSizeTooLarge", yaml: "catalog:\n  source: index\n  page_size: 500\n"},
		{name: "BadLogLevel", yaml: "tmdb:\n  api_key: k\nlogging:\n  level: loud\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := loadFromYAML(t, tc.yaml)
			assert.Error(t, err)
		})
	}
}
