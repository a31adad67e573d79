package tui

// Message types for the TUI. Search results and debounce timers are
// browse messages and are routed to the controller.

// ClearStatusMsg signals to clear the footer status message
type ClearStatusMsg struct{}
