package components

import (
	"fmt"
	"strings"

	"github.com/mmcdole/cinesearch/internal/domain"
	"github.com/mmcdole/cinesearch/internal/tui/styles"
	"github.com/sahilm/fuzzy"
)

const overviewLines = 3

// ResultList renders one page of movie results with a cursor
type ResultList struct {
	items   []domain.MovieSummary
	matches map[int][]int // item index -> matched rune offsets in the title
	cursor  int
	offset  int
	width   int
	height  int

	showOverview bool
	showPosters  bool
}

// NewResultList creates an empty result list
func NewResultList(showOverview, showPosters bool) ResultList {
	return ResultList{
		showOverview: showOverview,
		showPosters:  showPosters,
	}
}

// SetItems replaces the page being shown and highlights query matches in titles
func (l *ResultList) SetItems(items []domain.MovieSummary, query string) {
	l.items = items
	l.cursor = 0
	l.offset = 0
	l.matches = matchTitles(items, query)
}

// Items returns the page being shown
func (l ResultList) Items() []domain.MovieSummary {
	return l.items
}

// SetSize updates the component dimensions
func (l *ResultList) SetSize(width, height int) {
	l.width = width
	l.height = height
	l.clampOffset()
}

// Cursor returns the selected index
func (l ResultList) Cursor() int {
	return l.cursor
}

// Selected returns the movie under the cursor
func (l ResultList) Selected() (domain.MovieSummary, bool) {
	if l.cursor < 0 || l.cursor >= len(l.items) {
		return domain.MovieSummary{}, false
	}
	return l.items[l.cursor], true
}

// MoveUp moves the cursor up one row
func (l *ResultList) MoveUp() {
	if l.cursor > 0 {
		l.cursor--
		l.clampOffset()
	}
}

// MoveDown moves the cursor down one row
func (l *ResultList) MoveDown() {
	if l.cursor < len(l.items)-1 {
		l.cursor++
		l.clampOffset()
	}
}

// ToggleOverview shows or hides the overview under the selected row
func (l *ResultList) ToggleOverview() {
	l.showOverview = !l.showOverview
	l.clampOffset()
}

// ShowOverview reports whether the overview panel is visible
func (l ResultList) ShowOverview() bool {
	return l.showOverview
}

// visibleRows is how many titles fit alongside the overview panel
func (l ResultList) visibleRows() int {
	rows := l.height
	if l.showOverview {
		rows -= overviewLines
		if l.showPosters {
			rows--
		}
	}
	return max(rows, 1)
}

func (l *ResultList) clampOffset() {
	rows := l.visibleRows()
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+rows {
		l.offset = l.cursor - rows + 1
	}
	l.offset = max(l.offset, 0)
}

// View renders the visible rows
func (l ResultList) View() string {
	if len(l.items) == 0 {
		return ""
	}

	var b strings.Builder
	end := min(l.offset+l.visibleRows(), len(l.items))
	for i := l.offset; i < end; i++ {
		b.WriteString(l.renderRow(i))
		b.WriteString("\n")
		if i == l.cursor && l.showOverview {
			l.renderOverview(&b, l.items[i])
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (l ResultList) renderRow(i int) string {
	movie := l.items[i]
	selected := i == l.cursor

	year := fmt.Sprintf(" (%s)", movie.DisplayYear())
	titleWidth := l.width - len(year) - 4
	if l.width <= 0 {
		titleWidth = len([]rune(movie.Title))
	}
	title := styles.Truncate(movie.Title, titleWidth)

	var line strings.Builder
	if selected {
		line.WriteString(styles.AccentStyle.Render("▸ "))
	} else {
		line.WriteString("  ")
	}
	line.WriteString(highlightMatches(title, l.matches[i], selected))
	if selected {
		line.WriteString(styles.SelectedItemStyle.UnsetPadding().Render(year))
	} else {
		line.WriteString(styles.DimStyle.Render(year))
	}
	return line.String()
}

func (l ResultList) renderOverview(b *strings.Builder, movie domain.MovieSummary) {
	width := l.width - 6
	if width <= 0 {
		width = 72
	}

	overview := movie.Overview
	if overview == "" {
		overview = "No overview available."
	}
	for _, line := range styles.Wrap(overview, width, overviewLines) {
		b.WriteString("    ")
		b.WriteString(styles.SubtitleStyle.Render(line))
		b.WriteString("\n")
	}
	if l.showPosters && movie.PosterPath != "" {
		b.WriteString("    ")
		b.WriteString(styles.DimStyle.Render(styles.Truncate(movie.PosterPath, width)))
		b.WriteString("\n")
	}
}

// matchTitles fuzzy-matches query against each title for highlighting.
// Ranking is left to the catalog; this only locates the matched runes.
func matchTitles(items []domain.MovieSummary, query string) map[int][]int {
	if query == "" || len(items) == 0 {
		return nil
	}

	lowerTitles := make([]string, len(items))
	for i, m := range items {
		lowerTitles[i] = strings.ToLower(m.Title)
	}

	matches := fuzzy.Find(strings.ToLower(query), lowerTitles)
	out := make(map[int][]int, len(matches))
	for _, match := range matches {
		out[match.Index] = byteToRuneOffsets(lowerTitles[match.Index], match.MatchedIndexes)
	}
	return out
}

func byteToRuneOffsets(s string, byteIdx []int) []int {
	want := make(map[int]bool, len(byteIdx))
	for _, i := range byteIdx {
		want[i] = true
	}
	var out []int
	r := 0
	for i := range s {
		if want[i] {
			out = append(out, r)
		}
		r++
	}
	return out
}

// highlightMatches renders text with matched runes highlighted
func highlightMatches(text string, matched []int, selected bool) string {
	normal := styles.NormalItemStyle.UnsetPadding()
	match := styles.MatchHighlightStyle
	if selected {
		normal = styles.SelectedItemStyle.UnsetPadding()
		match = styles.MatchHighlightSelectedStyle
	}

	if len(matched) == 0 {
		return normal.Render(text)
	}

	matchSet := make(map[int]bool, len(matched))
	for _, idx := range matched {
		matchSet[idx] = true
	}

	// Batch consecutive runes with the same style
	var result strings.Builder
	runes := []rune(text)
	i := 0
	for i < len(runes) {
		isMatch := matchSet[i]
		start := i
		for i < len(runes) && matchSet[i] == isMatch {
			i++
		}
		batch := string(runes[start:i])
		if isMatch {
			result.WriteString(match.Render(batch))
		} else {
			result.WriteString(normal.Render(batch))
		}
	}
	return result.String()
}
