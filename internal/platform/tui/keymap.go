package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tomb-engine/internal/core"
)

// KeyMap binds keys to player actions plus the viewer's own controls.
// This centralizes key bindings and makes them testable.
type KeyMap struct {
	Forward key.Binding
	Back    key.Binding
	Left    key.Binding
	Right   key.Binding
	Jump    key.Binding
	Action  key.Binding
	Draw    key.Binding
	Look    key.Binding
	Walk    key.Binding
	Flare   key.Binding
	Roll    key.Binding
	Pause   key.Binding
	Quit    key.Binding

	Follow  key.Binding
	ZoomIn  key.Binding
	ZoomOut key.Binding
	Help    key.Binding
}

// ShortHelp returns keybindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Forward, k.Jump, k.Action, k.Pause, k.Help, k.Quit}
}

// FullHelp returns keybindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Forward, k.Back, k.Left, k.Right},
		{k.Jump, k.Action, k.Draw, k.Look},
		{k.Walk, k.Flare, k.Roll},
		{k.Follow, k.ZoomIn, k.ZoomOut},
		{k.Pause, k.Help, k.Quit},
	}
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Forward: key.NewBinding(key.WithKeys("w", "up"), key.WithHelp("w/↑", "forward")),
		Back:    key.NewBinding(key.WithKeys("s", "down"), key.WithHelp("s/↓", "back")),
		Left:    key.NewBinding(key.WithKeys("a", "left"), key.WithHelp("a/←", "turn left")),
		Right:   key.NewBinding(key.WithKeys("d", "right"), key.WithHelp("d/→", "turn right")),
		Jump:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "jump")),
		Action:  key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "action")),
		Draw:    key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "draw weapons")),
		Look:    key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "look")),
		Walk:    key.NewBinding(key.WithKeys("W"), key.WithHelp("W", "walk")),
		Flare:   key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "flare")),
		Roll:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "roll")),
		Pause:   key.NewBinding(key.WithKeys("p", "esc"), key.WithHelp("p", "pause")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),

		Follow:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "follow camera")),
		ZoomIn:  key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "zoom in")),
		ZoomOut: key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "zoom out")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	}
}

// MapKey translates a key message to a player action.
// Returns ActionNone for keys that are not player actions.
func (k KeyMap) MapKey(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Pause):
		return core.ActionPause
	case key.Matches(msg, k.Forward):
		return core.ActionForward
	case key.Matches(msg, k.Back):
		return core.ActionBack
	case key.Matches(msg, k.Left):
		return core.ActionLeft
	case key.Matches(msg, k.Right):
		return core.ActionRight
	case key.Matches(msg, k.Jump):
		return core.ActionJump
	case key.Matches(msg, k.Action):
		return core.ActionAction
	case key.Matches(msg, k.Draw):
		return core.ActionDraw
	case key.Matches(msg, k.Look):
		return core.ActionLook
	case key.Matches(msg, k.Walk):
		return core.ActionWalk
	case key.Matches(msg, k.Flare):
		return core.ActionFlare
	case key.Matches(msg, k.Roll):
		return core.ActionRoll
	}
	return core.ActionNone
}

// MapKeyToFrame adds the action of msg to frame.
// Returns true if the key was a quit request.
func (k KeyMap) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action := k.MapKey(msg)
	switch action {
	case core.ActionQuit:
		return true
	case core.ActionNone:
	default:
		frame.Set(action)
	}
	return false
}
