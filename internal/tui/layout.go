package tui

// Vertical chrome around the result body
const (
	HeaderHeight = 3 // bordered search box
	FooterHeight = 2 // paginator line and help line
	MinBodyWidth = 20
)

// bodySize returns the space left for the result body
func (m Model) bodySize() (width, height int) {
	width = max(m.Width-4, MinBodyWidth) // MainStyle horizontal padding
	height = max(m.Height-HeaderHeight-FooterHeight-2, 1)
	return width, height
}

// updateLayout propagates the window size to components
func (m *Model) updateLayout() {
	m.SearchBar.SetWidth(m.Width)
	m.Help.Width = m.Width

	width, height := m.bodySize()
	m.Results.SetSize(width, height)
}
