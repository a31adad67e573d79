// Package index is a local movie catalog: full-text search in bleve over
// records kept in bbolt. Movies are loaded with Import from a JSON array.
package index

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"
	"github.com/mmcdole/cinesearch/internal/domain"
)

const (
	indexingBatchSize = 100
	defaultPageSize   = 20

	fieldTitle    = "title"
	fieldOverview = "overview"
)

// Catalog implements domain.CatalogService over a local index
type Catalog struct {
	index    bleve.Index
	store    *movieStore
	pageSize int
	logger   *slog.Logger
}

// Open opens or creates the catalog stored under dir
func Open(dir string, pageSize int, logger *slog.Logger) (*Catalog, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create index directory: %w", err)
	}

	indexPath := filepath.Join(dir, "movies.bleve")
	idx, err := bleve.New(indexPath, createIndexMapping())
	if err != nil {
		idx, err = bleve.Open(indexPath)
		if err != nil {
			logger.Error("could not open index", "path", indexPath, "error", err)
			return nil, fmt.Errorf("failed to open index: %w", err)
		}
	}

	store, err := openMovieStore(filepath.Join(dir, "movies.db"))
	if err != nil {
		idx.Close()
		return nil, err
	}

	return &Catalog{index: idx, store: store, pageSize: pageSize, logger: logger}, nil
}

// Close releases the index and the store
func (c *Catalog) Close() error {
	return errors.Join(c.index.Close(), c.store.Close())
}

func createIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	docMapping := bleve.NewDocumentMapping()

	titleFieldMapping := bleve.NewTextFieldMapping()
	titleFieldMapping.Analyzer = standard.Name
	titleFieldMapping.Store = false
	docMapping.AddFieldMappingsAt(fieldTitle, titleFieldMapping)

	overviewFieldMapping := bleve.NewTextFieldMapping()
	overviewFieldMapping.Analyzer = standard.Name
	overviewFieldMapping.Store = false
	docMapping.AddFieldMappingsAt(fieldOverview, overviewFieldMapping)

	indexMapping.DefaultMapping = docMapping
	return indexMapping
}

// Import reads a JSON array of movies from r and adds them to the catalog.
// Records without an id or title are skipped. Returns the number imported.
func (c *Catalog) Import(ctx context.Context, r io.Reader) (int, error) {
	dec := json.NewDecoder(r)
	tok, err := dec.Token()
	if err != nil {
		return 0, fmt.Errorf("failed to read movies: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return 0, errors.New("movies file must contain a JSON array")
	}

	imported := 0
	pending := make([]domain.MovieSummary, 0, indexingBatchSize)
	for dec.More() {
		var m domain.MovieSummary
		if err := dec.Decode(&m); err != nil {
			return imported, fmt.Errorf("failed to decode movie %d: %w", imported, err)
		}
		if m.ID == "" || m.Title == "" {
			c.logger.Warn("skipping movie without id or title", "id", m.ID)
			continue
		}

		pending = append(pending, m)
		if len(pending) == indexingBatchSize {
			if err := c.write(ctx, pending); err != nil {
				return imported, err
			}
			imported += len(pending)
			pending = pending[:0]
		}
	}

	if len(pending) > 0 {
		if err := c.write(ctx, pending); err != nil {
			return imported, err
		}
		imported += len(pending)
	}

	c.logger.Info("import complete", "imported", imported)
	return imported, nil
}

// write stores one batch and indexes it
func (c *Catalog) write(ctx context.Context, movies []domain.MovieSummary) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := c.store.put(movies); err != nil {
		return fmt.Errorf("failed to store movies: %w", err)
	}

	batch := c.index.NewBatch()
	for _, m := range movies {
		doc := map[string]interface{}{
			fieldTitle:    m.Title,
			fieldOverview: m.Overview,
		}
		if err := batch.Index(m.ID, doc); err != nil {
			return fmt.Errorf("failed to index movie %s: %w", m.ID, err)
		}
	}
	if err := c.index.Batch(batch); err != nil {
		return fmt.Errorf("failed to index batch: %w", err)
	}
	return nil
}

// Search returns one page of movies ranked by relevance
func (c *Catalog) Search(ctx context.Context, queryString string, page int) (domain.ResultPage, error) {
	if page < 1 {
		page = 1
	}

	count, err := c.index.DocCount()
	if err != nil {
		return domain.ResultPage{}, fmt.Errorf("failed to read index: %w", err)
	}
	if count == 0 {
		return domain.ResultPage{}, domain.ErrIndexEmpty
	}

	req := bleve.NewSearchRequestOptions(buildSearchQuery(queryString), c.pageSize, (page-1)*c.pageSize, false)
	res, err := c.index.SearchInContext(ctx, req)
	if err != nil {
		c.logger.Error("search failed", "query", queryString, "error", err)
		return domain.ResultPage{}, fmt.Errorf("search failed: %w", err)
	}

	ids := make([]string, len(res.Hits))
	for i, hit := range res.Hits {
		ids[i] = hit.ID
	}

	items, err := c.store.get(ids)
	if err != nil {
		return domain.ResultPage{}, err
	}

	return domain.ResultPage{
		Items:      items,
		TotalPages: totalPages(int(res.Total), c.pageSize),
	}, nil
}

// buildSearchQuery favors title matches and treats the last word as a
// prefix so partially typed titles still hit
func buildSearchQuery(queryString string) query.Query {
	titleMatch := bleve.NewMatchQuery(queryString)
	titleMatch.SetField(fieldTitle)
	titleMatch.SetBoost(3)

	overviewMatch := bleve.NewMatchQuery(queryString)
	overviewMatch.SetField(fieldOverview)

	disjuncts := []query.Query{titleMatch, overviewMatch}

	words := strings.Fields(strings.ToLower(queryString))
	if len(words) > 0 {
		prefix := bleve.NewPrefixQuery(words[len(words)-1])
		prefix.SetField(fieldTitle)
		prefix.SetBoost(2)
		disjuncts = append(disjuncts, prefix)
	}

	return bleve.NewDisjunctionQuery(disjuncts...)
}

func totalPages(total, pageSize int) int {
	if total <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}
