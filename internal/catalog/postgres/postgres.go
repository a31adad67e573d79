// Package postgres is a movie catalog backed by a SQL table:
//
//	CREATE TABLE movies (
//		id           TEXT PRIMARY KEY,
//		title        TEXT NOT NULL,
//		release_date DATE,
//		overview     TEXT NOT NULL DEFAULT '',
//		poster_path  TEXT,
//		popularity   DOUBLE PRECISION NOT NULL DEFAULT 0
//	);
package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mmcdole/cinesearch/internal/domain"
)

const defaultPageSize = 20

const countQuery = `SELECT COUNT(*) FROM movies WHERE title ILIKE $1`

const listQuery = `
	SELECT id, title, release_date, overview, poster_path
	FROM movies
	WHERE title ILIKE $1
	ORDER BY popularity DESC, title ASC
	LIMIT $2 OFFSET $3`

// Config holds pool settings
type Config struct {
	URL      string
	MaxConns int32
	PageSize int
}

// Catalog implements domain.CatalogService over PostgreSQL
type Catalog struct {
	pool     *pgxpool.Pool
	pageSize int
	logger   *slog.Logger
}

// Open creates a connection pool and verifies it with a ping
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (*Catalog, error) {
	if logger == nil {
		logger = slog.Default()
	}

	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database URL: %w", err)
	}

	poolConfig.MaxConns = cfg.MaxConns
	if poolConfig.MaxConns == 0 {
		poolConfig.MaxConns = 4
	}
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%w: unable to ping database: %v", domain.ErrCatalogUnavailable, err)
	}

	logger.Info("connected to postgres catalog", "max_conns", poolConfig.MaxConns)

	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &Catalog{pool: pool, pageSize: pageSize, logger: logger}, nil
}

// Close closes the pool
func (c *Catalog) Close() {
	c.pool.Close()
}

// Search returns one page of movies whose title contains query
func (c *Catalog) Search(ctx context.Context, query string, page int) (domain.ResultPage, error) {
	if page < 1 {
		page = 1
	}
	pattern := likePattern(query)

	var total int
	if err := c.pool.QueryRow(ctx, countQuery, pattern).Scan(&total); err != nil {
		return domain.ResultPage{}, fmt.Errorf("failed to count movies: %w", err)
	}

	rows, err := c.pool.Query(ctx, listQuery, pattern, c.pageSize, (page-1)*c.pageSize)
	if err != nil {
		return domain.ResultPage{}, fmt.Errorf("failed to query movies: %w", err)
	}

	items, err := pgx.CollectRows(rows, scanMovie)
	if err != nil {
		return domain.ResultPage{}, fmt.Errorf("failed to scan movies: %w", err)
	}

	c.logger.Debug("postgres search", "query", query, "page", page, "total", total)

	return domain.ResultPage{
		Items:      items,
		TotalPages: totalPages(total, c.pageSize),
	}, nil
}

func scanMovie(row pgx.CollectableRow) (domain.MovieSummary, error) {
	var (
		m          domain.MovieSummary
		released   pgtype.Date
		posterPath *string
	)
	if err := row.Scan(&m.ID, &m.Title, &released, &m.Overview, &posterPath); err != nil {
		return m, err
	}
	if released.Valid {
		m.ReleaseDate = released.Time.Format(time.DateOnly)
	}
	if posterPath != nil {
		m.PosterPath = *posterPath
	}
	return m, nil
}

// likePattern wraps query for a substring ILIKE, escaping wildcards
func likePattern(query string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(query)
	return "%" + escaped + "%"
}

func totalPages(total, pageSize int) int {
	if total <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}
