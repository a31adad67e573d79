package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/cinesearch/internal/domain"
	"github.com/mmcdole/cinesearch/internal/tui/styles"
)

// View renders the search box, exactly one body for the current display
// mode, and the footer
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	state := m.Controller.State()
	width, height := m.bodySize()

	body := lipgloss.NewStyle().
		Width(width).
		Height(height).
		Render(m.renderBody(state, width))

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.SearchBar.View(),
		styles.MainStyle.Render(body),
		m.renderFooter(state),
	)
}

func (m Model) renderBody(state domain.SearchState, width int) string {
	switch state.Mode() {
	case domain.DisplayLoading:
		return m.Spinner.View() + " " + styles.DimStyle.Render("Searching...")
	case domain.DisplayError:
		return RenderBanner(state.ErrorMessage, width)
	case domain.DisplayResults:
		return m.Results.View()
	default:
		return styles.DimStyle.Render("Start typing to search for a movie.")
	}
}

// renderFooter renders the page selector when results are settled, then
// the status message or key help
func (m Model) renderFooter(state domain.SearchState) string {
	var pager string
	if state.CanPage() {
		p := m.Paginator
		p.SetTotalPages(state.TotalPages)
		p.Page = state.CurrentPage - 1
		pager = styles.DimStyle.Render("Page ") + styles.AccentStyle.Render(p.View())
	}

	var bottom string
	if m.StatusMsg != "" {
		if m.StatusIsErr {
			bottom = styles.ErrorStyle.Render(m.StatusMsg)
		} else {
			bottom = styles.DimStyle.Render(m.StatusMsg)
		}
	} else {
		bottom = m.Help.View(Keys)
	}

	return styles.FooterStyle.Render(pager + "\n" + bottom)
}

// RenderBanner renders the warning banner shown in the error display mode
func RenderBanner(message string, width int) string {
	inner := max(width-6, 10)
	lines := styles.Wrap(message, inner, 4)

	var b strings.Builder
	b.WriteString(styles.BannerTitleStyle.Render("⚠ Error"))
	for _, line := range lines {
		b.WriteString("\n")
		b.WriteString(line)
	}
	return styles.BannerStyle.Render(b.String())
}
