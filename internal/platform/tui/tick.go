// Package tui provides the Bubble Tea front end for SameGame: the board
// picker, the replay view, the scoreboard and the SSH server that serves
// them to remote users.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a replay tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends a tick after millis milliseconds.
func tickCmd(millis int) tea.Cmd {
	if millis <= 0 {
		millis = 50
	}
	return tea.Tick(time.Duration(millis)*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
