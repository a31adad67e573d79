package tui

import (
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/cinesearch/internal/domain"
)

const statusDelay = 2 * time.Second

// handleKeyMsg handles keyboard input. Bindings are checked first; every
// other key goes to the search box.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Up):
		m.Results.MoveUp()
		return m, nil

	case key.Matches(msg, Keys.Down):
		m.Results.MoveDown()
		return m, nil

	case key.Matches(msg, Keys.Detail):
		m.Results.ToggleOverview()
		return m, nil

	case key.Matches(msg, Keys.NextPage):
		return m.goToPage(m.Controller.State().CurrentPage + 1)

	case key.Matches(msg, Keys.PrevPage):
		return m.goToPage(m.Controller.State().CurrentPage - 1)

	case key.Matches(msg, Keys.FirstPage):
		return m.goToPage(1)

	case key.Matches(msg, Keys.LastPage):
		return m.goToPage(m.Controller.State().TotalPages)

	case key.Matches(msg, Keys.Clear):
		m.SearchBar.Clear()
		return m, m.checkQuery()
	}

	var cmd tea.Cmd
	m.SearchBar, cmd = m.SearchBar.Update(msg)
	return m, tea.Batch(cmd, m.checkQuery())
}

// checkQuery forwards edited search text to the controller
func (m *Model) checkQuery() tea.Cmd {
	if !m.SearchBar.QueryChanged() {
		return nil
	}
	return m.Controller.QueryChanged(m.SearchBar.Query())
}

// goToPage requests page through the controller. The selector is only
// offered while results are settled, so other states ignore paging keys.
func (m Model) goToPage(page int) (tea.Model, tea.Cmd) {
	if !m.Controller.State().CanPage() {
		return m, nil
	}
	if page == m.Controller.State().CurrentPage {
		return m, nil
	}

	cmd, err := m.Controller.PageChanged(page)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPageOutOfRange) && page < 1:
			m.StatusMsg = "Already on the first page"
		case errors.Is(err, domain.ErrPageOutOfRange):
			m.StatusMsg = "Already on the last page"
		default:
			m.StatusMsg = err.Error()
		}
		m.StatusIsErr = true
		return m, ClearStatusCmd(statusDelay)
	}

	m.StatusMsg = ""
	m.StatusIsErr = false
	return m, cmd
}
