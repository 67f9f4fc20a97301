// Package tui provides the Bubble Tea front end for the memory game.
// It handles the terminal UI loop, input mapping and rendering; all game
// rules live in the memory package.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-memory/internal/memory"
)

// TickMsg is sent to refresh the clock display.
type TickMsg time.Time

// StateChangedMsg is sent when the controller changed state on its own,
// e.g. after a match check or a mismatch reset.
type StateChangedMsg struct{}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 10
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Notifier forwards controller changes into the Bubble Tea loop.
// Pass OnChange as memory.Options.OnChange.
type Notifier struct {
	ch chan struct{}
}

// NewNotifier creates a notifier. Bursts of changes collapse into one message.
func NewNotifier() *Notifier {
	return &Notifier{ch: make(chan struct{}, 1)}
}

// OnChange never blocks; it is called from timer goroutines.
func (n *Notifier) OnChange(memory.State) {
	select {
	case n.ch <- struct{}{}:
	default:
	}
}

// wait returns a command that delivers the next change.
func (n *Notifier) wait() tea.Cmd {
	if n == nil {
		return nil
	}
	return func() tea.Msg {
		<-n.ch
		return StateChangedMsg{}
	}
}
