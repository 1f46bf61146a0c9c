package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/brickfall/internal/breakout"
	"github.com/vovakirdan/brickfall/internal/core"
)

// holdTimeout is how long a movement key keeps the paddle moving after the
// last key event. Terminals report presses and repeats, never releases.
const holdTimeout = 180 * time.Millisecond

// Model is the Bubble Tea model hosting one game.
type Model struct {
	game   *Game
	screen *core.Screen
	keys   *KeyMapper
	help   help.Model
	table  table.Model

	lastTick  time.Time
	heldX     float64
	heldZ     float64
	heldUntil time.Time
	quitting  bool
}

// NewModel creates a model for game sized width×height.
func NewModel(game *Game, width, height int) Model {
	h := help.New()
	h.ShowAll = false

	return Model{
		game:   game,
		screen: core.NewScreen(width, height),
		keys:   NewKeyMapper(DefaultKeyMap()),
		help:   h,
		table:  newBrickTable(),
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.game.FPS())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, max(msg.Height-1, 1))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.MapKey(msg)
	switch action {
	case core.ActionNone:
		return m, nil
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionLeft, core.ActionRight, core.ActionForward, core.ActionBack:
		x, z := action.Axis()
		m.hold(x, z)
		return m, nil
	}

	m.game.Dispatch(action)
	return m, nil
}

// hold starts or extends a movement. A new direction on one axis keeps the
// other axis moving.
func (m *Model) hold(x, z float64) {
	now := time.Now()
	if now.After(m.heldUntil) {
		m.heldX, m.heldZ = 0, 0
	}
	if x != 0 {
		m.heldX = x
	}
	if z != 0 {
		m.heldZ = z
	}
	m.heldUntil = now.Add(holdTimeout)
	m.game.SetMoveInput(m.heldX, m.heldZ)
}

// handleTick advances the game by the real time since the previous tick.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	frame := time.Second / time.Duration(m.game.FPS())
	if !m.lastTick.IsZero() {
		frame = now.Sub(m.lastTick)
	}
	m.lastTick = now

	if (m.heldX != 0 || m.heldZ != 0) && now.After(m.heldUntil) {
		m.heldX, m.heldZ = 0, 0
		m.game.SetMoveInput(0, 0)
	}

	m.game.Advance(frame)
	return m, tickCmd(m.game.FPS())
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.game.Session().State() == breakout.StatePaused {
		return m.pauseView()
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + m.help.View(m.keys.Keys())
}

// pauseView shows the board breakdown while the game is paused.
func (m Model) pauseView() string {
	m.table.SetRows(brickRows(m.game.BrickStats()))

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Render("PAUSED")
	s := m.game.Session()
	summary := fmt.Sprintf("score %d   lives %d   %d/%d bricks left",
		s.Score(), s.Lives(), s.Level().RemainingBricks(), s.Level().TotalDestroyableBricks())

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1).
		Render(lipgloss.JoinVertical(lipgloss.Center,
			title, "", summary, "", m.table.View(), "", "p/esc resume · r restart · m menu · q quit"))

	return lipgloss.Place(m.screen.Width(), m.screen.Height()+1, lipgloss.Center, lipgloss.Center, box)
}

func newBrickTable() table.Model {
	columns := []table.Column{
		{Title: "Brick", Width: 16},
		{Title: "Standing", Width: 9},
		{Title: "Destroyed", Width: 10},
		{Title: "Points", Width: 8},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithHeight(4),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.NoColor{}).
		Bold(false)
	t.SetStyles(s)
	return t
}

func brickRows(stats []BrickStat) []table.Row {
	rows := make([]table.Row, 0, len(stats))
	for _, st := range stats {
		rows = append(rows, table.Row{
			strings.ToUpper(st.Type.String()[:1]) + st.Type.String()[1:],
			fmt.Sprintf("%d", st.Standing),
			fmt.Sprintf("%d", st.Destroyed),
			fmt.Sprintf("%d", st.Points),
		})
	}
	return rows
}

// Run starts the Bubble Tea program for game in the current terminal.
func Run(game *Game, width, height int) error {
	p := tea.NewProgram(
		NewModel(game, width, height-1),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
