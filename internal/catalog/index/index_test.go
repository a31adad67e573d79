package index

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/mmcdole/cinesearch/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const moviesJSON = `[
  {"id": "348", "title": "Alien", "release_date": "1979-05-25", "overview": "A crew encounters a deadly creature."},
  {"id": "679", "title": "Aliens", "release_date": "1986-07-18", "overview": "Ripley returns to the moon LV-426."},
  {"id": "8077", "title": "Alien 3", "release_date": "1992-05-22", "overview": "Ripley crash lands on a prison planet."},
  {"id": "1891", "title": "The Empire Strikes Back", "release_date": "1980-05-20", "overview": "The rebels are scattered."},
  {"id": "1892", "title": "Return of the Jedi", "release_date": "1983-05-25", "overview": "Luke returns to Tatooine."},
  {"id": "", "title": "No Identifier"},
  {"id": "999", "title": ""}
]`

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func openTestCatalog(t *testing.T, pageSize int) *Catalog {
	t.Helper()
	catalog, err := Open(t.TempDir(), pageSize, quietLogger())
	require.NoError(t, err)
	t.Cleanup(func() { catalog.Close() })
	return catalog
}

func titles(items []domain.MovieSummary) []string {
	out := make([]string, len(items))
	for i, m := range items {
		out[i] = m.Title
	}
	return out
}

func TestImportSkipsIncompleteRecords(t *testing.T) {
	catalog := openTestCatalog(t, 10)

	n, err := catalog.Import(context.Background(), strings.NewReader(moviesJSON))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, 5, catalog.store.count())
}

func TestImportRejectsNonArray(t *testing.T) {
	catalog := openTestCatalog(t, 10)

	_, err := catalog.Import(context.Background(), strings.NewReader(`{"id": "1"}`))
	assert.Error(t, err)
}

func TestSearchEmptyIndex(t *testing.T) {
	catalog := openTestCatalog(t, 10)

	_, err := catalog.Search(context.Background(), "alien", 1)
	assert.ErrorIs(t, err, domain.ErrIndexEmpty)
}

func TestSearchMatchesTitlesAndPrefixes(t *testing.T) {
	catalog := openTestCatalog(t, 10)
	_, err := catalog.Import(context.Background(), strings.NewReader(moviesJSON))
	require.NoError(t, err)

	page, err := catalog.Search(context.Background(), "alien", 1)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Alien", "Aliens", "Alien 3"}, titles(page.Items))
	assert.Equal(t, 1, page.TotalPages)

	page, err = catalog.Search(context.Background(), "jed", 1)
	require.NoError(t, err)
	require.NotEmpty(t, page.Items)
	assert.Equal(t, "Return of the Jedi", page.Items[0].Title)
	assert.Equal(t, "1983-05-25", page.Items[0].ReleaseDate)
}

func TestSearchNoMatches(t *testing.T) {
	catalog := openTestCatalog(t, 10)
	_, err := catalog.Import(context.Background(), strings.NewReader(moviesJSON))
	require.NoError(t, err)

	page, err := catalog.Search(context.Background(), "zzzzqx", 1)
	require.NoError(t, err)
	assert.True(t, page.IsEmpty())
	assert.Equal(t, 0, page.TotalPages)
}

func TestSearchPaginates(t *testing.T) {
	catalog := openTestCatalog(t, 2)
	_, err := catalog.Import(context.Background(), strings.NewReader(moviesJSON))
	require.NoError(t, err)

	first, err := catalog.Search(context.Background(), "alien", 1)
	require.NoError(t, err)
	second, err := catalog.Search(context.Background(), "alien", 2)
	require.NoError(t, err)

	assert.Len(t, first.Items, 2)
	assert.Len(t, second.Items, 1)
	assert.Equal(t, 2, first.TotalPages)
	assert.ElementsMatch(t, []string{"Alien", "Aliens", "Alien 3"}, append(titles(first.Items), titles(second.Items)...))
}

func TestCatalogReopens(t *testing.T) {
	dir := t.TempDir()
	catalog, err := Open(dir, 10, quietLogger())
	require.NoError(t, err)
	_, err = catalog.Import(context.Background(), strings.NewReader(moviesJSON))
	require.NoError(t, err)
	require.NoError(t, catalog.Close())

	reopened, err := Open(dir, 10, quietLogger())
	require.NoError(t, err)
	defer reopened.Close()

	page, err := reopened.Search(context.Background(), "empire", 1)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "1891", page.Items[0].ID)
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, totalPages(0, 20))
	assert.Equal(t, 1, totalPages(1, 20))
	assert.Equal(t, 1, totalPages(20, 20))
	assert.Equal(t, 2, totalPages(21, 20))
}
