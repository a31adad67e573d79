package domain

// User-visible messages for the two failure display modes
const (
	MsgNoResults   = "Unfortunately we couldn't find any movies"
	MsgFetchFailed = "Couldn't load the data."
)

// DisplayMode is the single mode a SearchState renders as
type DisplayMode int

const (
	DisplayIdle DisplayMode = iota // empty query, nothing requested
	DisplayLoading
	DisplayError
	DisplayResults
)

// SearchState is the UI-facing state of a search session.
// It is owned by the browse controller; everything else gets copies.
type SearchState struct {
	Query        string
	CurrentPage  int
	Items        []MovieSummary
	TotalPages   int
	Loading      bool
	Error        bool
	ErrorMessage string
}

// Mode resolves the state to exactly one display mode
func (s SearchState) Mode() DisplayMode {
	switch {
	case s.Loading:
		return DisplayLoading
	case s.Error:
		return DisplayError
	case s.Query == "":
		return DisplayIdle
	default:
		return DisplayResults
	}
}

// CanPage reports whether the page selector should be offered
func (s SearchState) CanPage() bool {
	return s.Mode() == DisplayResults && s.TotalPages > 0
}
