package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ErikMN/dnf-ui/internal/task"
)

// completionMsg carries one settled engine completion into the update loop.
type completionMsg task.Completion

// awaitCompletion blocks on the completions channel and delivers the next
// completion as a message. Update re-arms it after every receipt so the
// channel keeps draining for as long as the program runs.
func awaitCompletion(ch <-chan task.Completion) tea.Cmd {
	return func() tea.Msg {
		return completionMsg(<-ch)
	}
}
