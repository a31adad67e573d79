// Package catalog selects the movie catalog backend from configuration.
package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mmcdole/cinesearch/internal/catalog/index"
	"github.com/mmcdole/cinesearch/internal/catalog/postgres"
	"github.com/mmcdole/cinesearch/internal/catalog/tmdb"
	"github.com/mmcdole/cinesearch/internal/config"
	"github.com/mmcdole/cinesearch/internal/domain"
)

// Source is an opened catalog backend. Close releases any files or
// connections it holds.
type Source struct {
	domain.CatalogService
	close func() error
}

// Close releases the backend
func (s *Source) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// Open creates the backend named by cfg.Catalog.Source
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Source, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}

	switch cfg.Catalog.Source {
	case config.SourceTMDB:
		client := tmdb.NewClient(tmdb.Config{
			APIKey:       cfg.TMDB.APIKey,
			AccessToken:  cfg.TMDB.AccessToken,
			BaseURL:      cfg.TMDB.BaseURL,
			ImageBaseURL: cfg.TMDB.ImageBaseURL,
			Language:     cfg.TMDB.Language,
			IncludeAdult: cfg.TMDB.IncludeAdult,
		}, logger)
		return &Source{CatalogService: client}, nil

	case config.SourceIndex:
		idx, err := OpenIndex(cfg, logger)
		if err != nil {
			return nil, err
		}
		return &Source{CatalogService: idx, close: idx.Close}, nil

	case config.SourcePostgres:
		pg, err := postgres.Open(ctx, postgres.Config{
			URL:      cfg.Postgres.URL,
			MaxConns: cfg.Postgres.MaxConns,
			PageSize: cfg.Catalog.PageSize,
		}, logger)
		if err != nil {
			return nil, err
		}
		return &Source{CatalogService: pg, close: func() error {
			pg.Close()
			return nil
		}}, nil

	default:
		return nil, fmt.Errorf("unknown catalog source: %s", cfg.Catalog.Source)
	}
}

// OpenIndex opens the local index catalog regardless of the configured
// source, for importing movies into it
func OpenIndex(cfg *config.Config, logger *slog.Logger) (*index.Catalog, error) {
	idx, err := index.Open(cfg.Index.Path, cfg.Catalog.PageSize, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open index catalog: %w", err)
	}
	return idx, nil
}
