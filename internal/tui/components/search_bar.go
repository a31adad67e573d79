package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/cinesearch/internal/tui/styles"
)

// SearchBar is the always-focused query input
type SearchBar struct {
	input     textinput.Model
	prevQuery string
	width     int
}

// NewSearchBar creates a search bar pre-filled with seed
func NewSearchBar(seed string) SearchBar {
	ti := textinput.New()
	ti.Placeholder = "Type to search..."
	ti.CharLimit = 100
	ti.Width = 40
	ti.Prompt = "🔍 "
	ti.PromptStyle = styles.AccentStyle
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle
	ti.SetValue(seed)
	ti.Focus()

	return SearchBar{
		input:     ti,
		prevQuery: seed,
	}
}

// Query returns the current text
func (s SearchBar) Query() string {
	return s.input.Value()
}

// QueryChanged returns true if the text changed since last check and updates prevQuery
func (s *SearchBar) QueryChanged() bool {
	current := s.input.Value()
	if current != s.prevQuery {
		s.prevQuery = current
		return true
	}
	return false
}

// Clear empties the input
func (s *SearchBar) Clear() {
	s.input.SetValue("")
}

// SetWidth updates the component width
func (s *SearchBar) SetWidth(width int) {
	s.width = width
	s.input.Width = max(width-8, 10)
}

// Init starts the cursor blink
func (s SearchBar) Init() tea.Cmd {
	return textinput.Blink
}

// Update forwards the message to the text input
func (s SearchBar) Update(msg tea.Msg) (SearchBar, tea.Cmd) {
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// View renders the input inside the header frame
func (s SearchBar) View() string {
	style := styles.HeaderStyle
	if s.width > 2 {
		style = style.Width(s.width - 2)
	}
	return style.Render(s.input.View())
}
