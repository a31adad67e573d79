package domain

import "context"

// CatalogService searches a paginated movie catalog.
//
// Pages are 1-based and the page size is owned by the implementation.
// Implementations may block on network or disk I/O and must honor ctx.
type CatalogService interface {
	Search(ctx context.Context, query string, page int) (ResultPage, error)
}

// CatalogFunc adapts a plain function to CatalogService.
type CatalogFunc func(ctx context.Context, query string, page int) (ResultPage, error)

// Search calls f(ctx, query, page)
func (f CatalogFunc) Search(ctx context.Context, query string, page int) (ResultPage, error) {
	return f(ctx, query, page)
}
