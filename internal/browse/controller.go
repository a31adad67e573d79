// Package browse implements the search-and-page state machine that sits
// between user input and a domain.CatalogService.
//
// All methods are expected to run on the Bubble Tea update goroutine. Catalog
// calls run inside the returned tea.Cmd values and report back through
// ResultsMsg, which Update reconciles against the current request key.
package browse

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/mmcdole/cinesearch/internal/domain"
)

const (
	DefaultDebounce     = 750 * time.Millisecond
	DefaultFetchTimeout = 15 * time.Second
)

// Scheduler arms a one-shot timer that delivers fn's message after d.
// tea.Tick satisfies it.
type Scheduler func(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd

// Key identifies the (query, page) a fetch was issued for
type Key struct {
	Query string
	Page  int
}

func (k Key) String() string {
	return fmt.Sprintf("%q p%d", k.Query, k.Page)
}

// ResultsMsg carries the outcome of one catalog fetch
type ResultsMsg struct {
	RequestID string
	Key       Key
	Page      domain.ResultPage
	Err       error
	Elapsed   time.Duration
}

// debounceMsg is delivered when a debounce timer expires. Gen identifies
// which arming produced it; only the latest arming may fire.
type debounceMsg struct {
	gen  uint64
	text string
}

// Options tunes a Controller. Zero values select the defaults.
type Options struct {
	Debounce     time.Duration
	FetchTimeout time.Duration
	Logger       *slog.Logger
	Schedule     Scheduler
}

// Controller owns a SearchState and mediates every catalog call
type Controller struct {
	catalog      domain.CatalogService
	logger       *slog.Logger
	debounce     time.Duration
	fetchTimeout time.Duration
	schedule     Scheduler

	state domain.SearchState

	// Debounce timer: gen increments on every arming, armed is cleared on
	// fire or cancel. A firing whose gen differs from the current one was
	// re-armed in the meantime and is dropped.
	gen   uint64
	armed bool
}

// New creates a controller bound to catalog
func New(catalog domain.CatalogService, opts Options) *Controller {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = DefaultFetchTimeout
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Schedule == nil {
		opts.Schedule = tea.Tick
	}
	return &Controller{
		catalog:      catalog,
		logger:       opts.Logger,
		debounce:     opts.Debounce,
		fetchTimeout: opts.FetchTimeout,
		schedule:     opts.Schedule,
		state:        domain.SearchState{CurrentPage: 1},
	}
}

// State returns a snapshot of the current search state
func (c *Controller) State() domain.SearchState {
	s := c.state
	s.Items = slices.Clone(c.state.Items)
	return s
}

// Key returns the request key the controller currently wants displayed
func (c *Controller) Key() Key {
	return Key{Query: c.state.Query, Page: c.state.CurrentPage}
}

// DebouncePending reports whether a debounced search is waiting to fire
func (c *Controller) DebouncePending() bool {
	return c.armed
}

// Initialize seeds the query and fetches page 1 without debouncing
func (c *Controller) Initialize(seed string) tea.Cmd {
	c.cancelDebounce()
	c.state = domain.SearchState{Query: seed, CurrentPage: 1}
	if seed == "" {
		return nil
	}
	return c.issue()
}

// QueryChanged handles new text from the search box.
//
// Empty text stops searching without contacting the catalog. Anything else
// resets to page 1 and (re)arms the debounce timer; only the last text
// within the quiet period is fetched.
func (c *Controller) QueryChanged(text string) tea.Cmd {
	if text == "" {
		c.cancelDebounce()
		c.state.Query = ""
		c.state.Loading = false
		c.clearError()
		c.logger.Debug("query cleared")
		return nil
	}

	c.state.Query = text
	c.state.CurrentPage = 1
	c.state.Loading = true
	c.clearError()

	c.gen++
	c.armed = true
	gen := c.gen
	return c.schedule(c.debounce, func(time.Time) tea.Msg {
		return debounceMsg{gen: gen, text: text}
	})
}

// PageChanged moves to page and fetches it immediately
func (c *Controller) PageChanged(page int) (tea.Cmd, error) {
	if c.state.Query == "" {
		return nil, domain.ErrNoActiveQuery
	}
	if page < 1 || page > c.state.TotalPages {
		return nil, fmt.Errorf("%w: %d not in [1, %d]", domain.ErrPageOutOfRange, page, c.state.TotalPages)
	}

	// The immediate fetch below already covers the current text
	c.cancelDebounce()

	c.state.CurrentPage = page
	c.state.Loading = true
	c.clearError()
	return c.issue(), nil
}

// Update reconciles timer and fetch messages. Other messages are ignored.
func (c *Controller) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case debounceMsg:
		return c.onDebounce(msg)
	case ResultsMsg:
		c.onResults(msg)
	}
	return nil
}

func (c *Controller) onDebounce(msg debounceMsg) tea.Cmd {
	if !c.armed || msg.gen != c.gen {
		return nil
	}
	c.armed = false

	if msg.text != c.state.Query {
		return nil
	}
	return c.issue()
}

// issue starts a fetch for the current key
func (c *Controller) issue() tea.Cmd {
	key := c.Key()
	c.state.Loading = true
	c.clearError()

	requestID := uuid.NewString()
	c.logger.Debug("fetch issued", "request_id", requestID, "query", key.Query, "page", key.Page)

	catalog := c.catalog
	timeout := c.fetchTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		start := time.Now()
		page, err := catalog.Search(ctx, key.Query, key.Page)
		return ResultsMsg{
			RequestID: requestID,
			Key:       key,
			Page:      page,
			Err:       err,
			Elapsed:   time.Since(start),
		}
	}
}

func (c *Controller) onResults(msg ResultsMsg) {
	log := c.logger.With("request_id", msg.RequestID, "query", msg.Key.Query, "page", msg.Key.Page, "elapsed", msg.Elapsed)

	if msg.Key != c.Key() {
		log.Debug("discarding superseded result", "current", c.Key().String())
		return
	}

	if msg.Err != nil {
		log.Warn("fetch failed", "error", msg.Err)
		c.fail(domain.MsgFetchFailed)
		return
	}

	if msg.Page.IsEmpty() {
		log.Info("no results")
		c.fail(domain.MsgNoResults)
		return
	}

	c.state.Items = msg.Page.Items
	c.state.TotalPages = msg.Page.TotalPages
	c.state.Loading = false
	c.clearError()
	log.Info("results applied", "items", len(msg.Page.Items), "total_pages", msg.Page.TotalPages)
}

func (c *Controller) fail(message string) {
	c.state.Loading = false
	c.state.Error = true
	c.state.ErrorMessage = message
}

func (c *Controller) clearError() {
	c.state.Error = false
	c.state.ErrorMessage = ""
}

func (c *Controller) cancelDebounce() {
	if c.armed {
		c.gen++
		c.armed = false
	}
}
