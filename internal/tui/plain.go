package tui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mmcdole/cinesearch/internal/browse"
	"github.com/mmcdole/cinesearch/internal/domain"
	"github.com/mmcdole/cinesearch/internal/tui/styles"
)

// ErrNoQuery is returned by RunPlain when there is nothing to search for
var ErrNoQuery = errors.New("no query given")

// SearchError reports that a plain search ended in the error display mode
type SearchError struct {
	Message string
}

func (e *SearchError) Error() string {
	return e.Message
}

const plainOverviewLines = 6

// RunPlain performs one search through ctrl without the TUI and prints the
// resulting page to w. Commands are run inline, so no debounce applies.
func RunPlain(ctrl *browse.Controller, query string, page int, w io.Writer) error {
	if query == "" {
		return ErrNoQuery
	}

	if cmd := ctrl.Initialize(query); cmd != nil {
		ctrl.Update(cmd())
	}

	if page > 1 && ctrl.State().CanPage() {
		cmd, err := ctrl.PageChanged(page)
		if err != nil {
			return err
		}
		ctrl.Update(cmd())
	}

	state := ctrl.State()
	if state.Mode() == domain.DisplayError {
		return &SearchError{Message: state.ErrorMessage}
	}

	PrintPage(w, state)
	return nil
}

// PrintPage writes a settled result page as plain text
func PrintPage(w io.Writer, state domain.SearchState) {
	fmt.Fprintf(w, "Results for %q (page %d of %d)\n\n", state.Query, state.CurrentPage, state.TotalPages)
	for _, m := range state.Items {
		fmt.Fprintf(w, "%s (%s)\n", m.Title, m.DisplayYear())
		if m.Overview != "" {
			fmt.Fprintf(w, "    %s\n", strings.Join(styles.Wrap(m.Overview, 76, plainOverviewLines), "\n    "))
		}
	}
}
