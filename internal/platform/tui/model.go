package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tomb-engine/internal/core"
	"github.com/vovakirdan/tomb-engine/internal/engine"
	"github.com/vovakirdan/tomb-engine/internal/platform"
)

// Layout constants.
const (
	tableWidth = 46
	minMapW    = 20
	minMapH    = 8
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	pausedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208"))
	mapBorder   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
)

// Model is the Bubble Tea model of one viewer. It only reads committed
// frames from its subscription; actions go back through the session.
type Model struct {
	session *Session
	sub     *platform.Subscription
	snap    MapSnapshot
	canvas  *core.Canvas
	table   table.Model
	help    help.Model
	keys    KeyMap

	frame    engine.Frame
	user     string
	width    int
	height   int
	follow   bool
	zoom     int32
	ended    bool
	quitting bool
}

// NewModel creates a viewer of session sized width x height.
func NewModel(session *Session, user string, width, height int) Model {
	h := help.New()
	h.ShowAll = false

	m := Model{
		session: session,
		sub:     session.Subscribe(),
		snap:    session.Map(),
		canvas:  core.NewCanvas(minMapW, minMapH),
		help:    h,
		keys:    DefaultKeyMap(),
		frame:   session.Last(),
		user:    user,
		zoom:    1,
	}
	m.table = newEntityTable()
	m.resize(width, height)
	m.updateRows()
	return m
}

func newEntityTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 3},
		{Title: "Object", Width: 12},
		{Title: "Room", Width: 4},
		{Title: "State", Width: 5},
		{Title: "HP", Width: 5},
		{Title: "Status", Width: 9},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(false),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// resize lays out the map and the table for a terminal of width x height.
func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	mapW := max(width-tableWidth-4, minMapW)
	mapH := max(height-6, minMapH)
	m.canvas.Resize(mapW, mapH)
	m.table.SetHeight(max(mapH-2, 3))
	m.help.Width = width
	m.place()
}

// place positions the canvas over the map or the camera target.
func (m *Model) place() {
	m.snap.Fit(m.canvas)
	m.canvas.Scale = max(m.canvas.Scale/m.zoom, core.WallL/4)
	if m.follow {
		FollowCamera(m.canvas, m.frame)
	}
}

func (m *Model) updateRows() {
	rows := make([]table.Row, 0, len(m.frame.Items)+len(m.frame.Effects))
	for _, e := range m.frame.Items {
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", e.Num),
			e.Name,
			fmt.Sprintf("%d", e.Room),
			fmt.Sprintf("%d", e.State),
			fmt.Sprintf("%d", e.HitPoints),
			e.Status,
		})
	}
	for _, e := range m.frame.Effects {
		rows = append(rows, table.Row{
			fmt.Sprintf("f%d", e.Num),
			e.Name,
			fmt.Sprintf("%d", e.Room),
			"",
			"",
			"effect",
		})
	}
	m.table.SetRows(rows)
}

// Init starts waiting for frames.
func (m Model) Init() tea.Cmd {
	return waitFrame(m.sub)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case FrameMsg:
		m.frame = engine.Frame(msg)
		if m.follow {
			FollowCamera(m.canvas, m.frame)
		}
		m.updateRows()
		return m, waitFrame(m.sub)

	case EndedMsg:
		m.ended = true
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Follow):
		m.follow = !m.follow
		m.place()
		return m, nil
	case key.Matches(msg, m.keys.ZoomIn):
		m.zoom = min(m.zoom*2, 8)
		m.place()
		return m, nil
	case key.Matches(msg, m.keys.ZoomOut):
		m.zoom = max(m.zoom/2, 1)
		m.place()
		return m, nil
	}

	action := m.keys.MapKey(msg)
	if action == core.ActionQuit {
		m.quitting = true
		m.sub.Cancel()
		return m, tea.Quit
	}
	if action != core.ActionNone && !m.ended {
		m.session.Send(action)
	}
	return m, nil
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	DrawFrame(m.canvas, m.snap, m.frame)
	left := mapBorder.Render(RenderCanvas(m.canvas))
	right := lipgloss.NewStyle().PaddingLeft(1).Render(m.table.View())

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title()))
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, right))
	b.WriteString("\n")
	b.WriteString(m.status())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) title() string {
	name := m.frame.Level
	if name == "" {
		name = "level"
	}
	if m.user != "" {
		return fmt.Sprintf("%s  [%s]", name, m.user)
	}
	return name
}

func (m Model) status() string {
	f := m.frame
	parts := []string{
		fmt.Sprintf("tick %d", f.Tick),
		fmt.Sprintf("camera %s room %d", f.Camera.Type, f.Camera.Room),
		fmt.Sprintf("viewers %d", m.session.Viewers()),
	}
	for _, e := range f.Items {
		if e.Num != f.Lara {
			continue
		}
		lara := fmt.Sprintf("lara room %d hp %d", e.Room, e.HitPoints)
		if !viewport(m.canvas).Contains(int(e.Pos.X>>core.WallShift), int(e.Pos.Z>>core.WallShift)) {
			lara += " (off view)"
		}
		parts = append(parts, lara)
	}
	if f.Flipped {
		parts = append(parts, "flipped")
	}
	if m.follow {
		parts = append(parts, "follow")
	}
	line := statusStyle.Render(strings.Join(parts, " | "))

	switch {
	case f.Complete:
		line += "  " + pausedStyle.Render("LEVEL COMPLETE")
	case m.ended:
		line += "  " + pausedStyle.Render("SESSION ENDED")
	case m.session.Paused():
		line += "  " + pausedStyle.Render("PAUSED")
	}
	return line
}

// Run starts a local Bubble Tea program viewing session.
func Run(session *Session, width, height int) error {
	model := NewModel(session, "", width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
