package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/cinesearch/internal/browse"
	"github.com/mmcdole/cinesearch/internal/domain"
	"github.com/mmcdole/cinesearch/internal/tui/components"
	"github.com/mmcdole/cinesearch/internal/tui/styles"
)

// Options configures the model's presentation
type Options struct {
	SeedQuery    string
	ShowOverview bool
	ShowPosters  bool
}

// Model is the main Bubble Tea model for the application
type Model struct {
	Ready bool

	// Search state lives in the controller; the model only renders it
	Controller *browse.Controller
	seed       string

	// UI Components
	SearchBar components.SearchBar
	Results   components.ResultList
	Spinner   spinner.Model
	Paginator paginator.Model
	Help      help.Model

	// Dimensions
	Width  int
	Height int

	// Transient footer message
	StatusMsg   string
	StatusIsErr bool
}

// NewModel creates a new application model around ctrl
func NewModel(ctrl *browse.Controller, opts Options) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.SpinnerStyle

	pg := paginator.New()
	pg.Type = paginator.Arabic
	pg.PerPage = 1

	h := help.New()
	h.Styles.ShortKey = styles.HelpKeyStyle
	h.Styles.ShortDesc = styles.HelpDescStyle

	return Model{
		Controller: ctrl,
		seed:       opts.SeedQuery,
		SearchBar:  components.NewSearchBar(opts.SeedQuery),
		Results:    components.NewResultList(opts.ShowOverview, opts.ShowPosters),
		Spinner:    sp,
		Paginator:  pg,
		Help:       h,
	}
}

// Init seeds the search and starts the input and spinner animations
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.SearchBar.Init(),
		m.Spinner.Tick,
		m.Controller.Initialize(m.seed),
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case browse.ResultsMsg:
		m.Controller.Update(msg)
		m.syncResults(msg.Key)
		return m, nil

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil
	}

	// A debounce timer that fires yields the fetch
	if cmd := m.Controller.Update(msg); cmd != nil {
		return m, cmd
	}

	var cmd tea.Cmd
	m.SearchBar, cmd = m.SearchBar.Update(msg)
	return m, cmd
}

// syncResults loads the list with the controller's items when the result
// for key was the one applied
func (m *Model) syncResults(key browse.Key) {
	if key != m.Controller.Key() {
		return
	}
	state := m.Controller.State()
	if state.Mode() != domain.DisplayResults {
		return
	}
	m.Results.SetItems(state.Items, state.Query)
}
