// Package state holds UI state types for the TUI.
package state

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/EgorUlitin/rss-aggregator/internal/application/settings"
	appstate "github.com/EgorUlitin/rss-aggregator/internal/application/state"
)

// Session represents the current view state.
type Session int

const (
	BrowseView Session = iota
	AddFeedView
	ModalView
)

// KeyMap defines the keybindings for the application.
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Open    key.Binding
	Back    key.Binding
	AddFeed key.Binding
	Quit    key.Binding
}

// NewKeyMap builds the keymap from configuration.
func NewKeyMap(cfg settings.KeyMapConfig) KeyMap {
	return KeyMap{
		Up:      key.NewBinding(key.WithKeys(cfg.Up, "up"), key.WithHelp(cfg.Up, "up")),
		Down:    key.NewBinding(key.WithKeys(cfg.Down, "down"), key.WithHelp(cfg.Down, "down")),
		Open:    key.NewBinding(key.WithKeys(cfg.Open), key.WithHelp(cfg.Open, "open post")),
		Back:    key.NewBinding(key.WithKeys(cfg.Back), key.WithHelp(cfg.Back, "back")),
		AddFeed: key.NewBinding(key.WithKeys(cfg.AddFeed), key.WithHelp(cfg.AddFeed, "add feed")),
		Quit:    key.NewBinding(key.WithKeys(cfg.Quit, "ctrl+c"), key.WithHelp(cfg.Quit, "quit")),
	}
}

// StatusText maps a submission status and error code to the footer
// message shown under the form.
func StatusText(status appstate.SubmissionStatus, code appstate.ErrorCode) string {
	switch status {
	case appstate.Sending:
		return "Loading feed..."
	case appstate.Success:
		return "RSS loaded successfully"
	case appstate.Failed:
		return ErrorText(code)
	default:
		return ""
	}
}

// ErrorText maps an error code to its user-facing message.
func ErrorText(code appstate.ErrorCode) string {
	switch code {
	case appstate.ErrorNotAURL:
		return "The link must be a valid URL"
	case appstate.ErrorAlreadyExists:
		return "RSS already exists"
	case appstate.ErrorParsing:
		return "Resource does not contain valid RSS"
	case appstate.ErrorNetwork:
		return "Network error"
	default:
		return ""
	}
}
