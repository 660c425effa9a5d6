package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/streetbites/guide/internal/guide"
)

// completionMsg carries a resolved service call back to Update.
type completionMsg struct{ c guide.Completion }

// waitFor blocks on f off the event loop and reports its completion.
func waitFor(f *guide.Future) tea.Cmd {
	if f == nil {
		return nil
	}
	return func() tea.Msg {
		<-f.Done()
		return completionMsg{c: f.Result()}
	}
}
