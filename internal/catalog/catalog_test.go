package catalog

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/mmcdole/cinesearch/internal/catalog/index"
	"github.com/mmcdole/cinesearch/internal/catalog/tmdb"
	"github.com/mmcdole/cinesearch/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestOpenSelectsBackend(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.TMDB.AccessToken = "t"

	src, err := Open(context.Background(), cfg, quietLogger())
	require.NoError(t, err)
	assert.IsType(t, &tmdb.Client{}, src.CatalogService)
	assert.NoError(t, src.Close())

	cfg.Catalog.Source = config.SourceIndex
	cfg.Index.Path = t.TempDir()

	src, err = Open(context.Background(), cfg, quietLogger())
	require.NoError(t, err)
	assert.IsType(t, &index.Catalog{}, src.CatalogService)
	assert.NoError(t, src.Close())
}

func TestOpenRejectsUnknownSource(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Catalog.Source = "gopher"

	_, err := Open(context.Background(), cfg, quietLogger())
	assert.Error(t, err)
}
