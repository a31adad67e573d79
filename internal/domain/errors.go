package domain

import "errors"

// Sentinel errors for catalog and search operations
var (
	// ErrCatalogUnavailable indicates the catalog backend could not be reached
	ErrCatalogUnavailable = errors.New("movie catalog is unavailable")

	// ErrUnauthorized indicates the catalog rejected the configured credentials
	ErrUnauthorized = errors.New("catalog credentials were rejected")

	// ErrIndexEmpty indicates the local index has no movies imported yet
	ErrIndexEmpty = errors.New("local movie index is empty")

	// ErrPageOutOfRange indicates a page outside [1, totalPages] was requested
	ErrPageOutOfRange = errors.New("page out of range")

	// ErrNoActiveQuery indicates a page change was requested without a search
	ErrNoActiveQuery = errors.New("no active search query")
)
