// Package tui provides the terminal view bound to the application state.
package tui

import (
	appstate "github.com/EgorUlitin/rss-aggregator/internal/application/state"
)

// StateMsg delivers a state event into the bubbletea program.
type StateMsg struct {
	Event appstate.Event
}

// Binder bridges state mutations into the bubbletea message loop. It is
// the application's state.Observer: every mutation lands in a buffered
// channel the model drains between frames. Events carry only the kind of
// change; the model re-reads everything it renders from the state, so a
// dropped event under heavy backlog delays a repaint until the next
// event rather than losing data.
type Binder struct {
	events chan appstate.Event
}

// NewBinder constructs a Binder.
func NewBinder() *Binder {
	return &Binder{events: make(chan appstate.Event, 256)}
}

// StateChanged implements state.Observer. Never blocks: it is called
// under the state lock.
func (b *Binder) StateChanged(ev appstate.Event) {
	select {
	case b.events <- ev:
	default:
	}
}

// waitForEvent returns a command that blocks until the next state event.
func (b *Binder) waitForEvent() StateMsg {
	return StateMsg{Event: <-b.events}
}
