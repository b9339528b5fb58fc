// Package tui provides the terminal debug viewer: a top-down map of the
// committed world frames, an entity table and SSH serving via Wish.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tomb-engine/internal/engine"
	"github.com/vovakirdan/tomb-engine/internal/platform"
)

// FrameMsg carries one committed frame into the Bubble Tea loop.
type FrameMsg engine.Frame

// EndedMsg is sent when the session stops publishing.
type EndedMsg struct{}

// waitFrame returns a command that blocks until the next frame arrives.
func waitFrame(sub *platform.Subscription) tea.Cmd {
	return func() tea.Msg {
		select {
		case f, ok := <-sub.Frames():
			if !ok {
				return EndedMsg{}
			}
			return FrameMsg(f)
		case <-sub.Done():
			return EndedMsg{}
		}
	}
}
