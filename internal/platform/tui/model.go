package tui

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-memory/internal/config"
	"github.com/vovakirdan/tui-memory/internal/memory"
)

// screen identifies which view is active.
type screen int

const (
	screenPicker screen = iota
	screenBoard
)

// Options configures the game model.
type Options struct {
	Config     config.Config
	Difficulty memory.Difficulty // Skips the picker when set
	Notifier   *Notifier
	Logger     *log.Logger
	Width      int
	Height     int
	Now        func() time.Time
}

// Model is the Bubble Tea model for the memory game. It holds only
// presentation state; the controller owns the game.
type Model struct {
	ctrl     *memory.Controller
	cfg      config.Config
	notifier *Notifier
	logger   *log.Logger
	now      func() time.Time

	keys  GameKeyMap
	help  help.Model
	theme Theme

	screen   screen
	picker   int // Difficulty index on the picker
	cursor   int // Card index on the board
	prevBest *time.Duration
	width    int
	height   int
	quitting bool
}

// NewModel creates a new Bubble Tea model driving ctrl.
func NewModel(ctrl *memory.Controller, opts Options) Model {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	h := help.New()
	h.ShowAll = false

	m := Model{
		ctrl:     ctrl,
		cfg:      opts.Config,
		notifier: opts.Notifier,
		logger:   opts.Logger,
		now:      opts.Now,
		keys:     DefaultGameKeyMap(),
		help:     h,
		theme:    ThemeByName(opts.Config.UI.Theme),
		width:    opts.Width,
		height:   opts.Height,
	}
	m.picker = max(slices.Index(memory.Difficulties, opts.Config.DefaultDifficulty()), 0)

	if opts.Difficulty != "" {
		m.picker = max(slices.Index(memory.Difficulties, opts.Difficulty), 0)
		m.start(opts.Difficulty)
	}
	return m
}

// Init starts the clock tick loop and the controller change listener.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(m.cfg.UI.TickRate), m.notifier.wait())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m, tickCmd(m.cfg.UI.TickRate)

	case StateChangedMsg:
		return m, m.notifier.wait()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if m.screen == screenPicker {
		return m.handlePickerKey(msg)
	}
	return m.handleBoardKey(msg)
}

func (m Model) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(memory.Difficulties)

	switch {
	case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Left):
		m.picker = (m.picker - 1 + n) % n
	case key.Matches(msg, m.keys.Down), key.Matches(msg, m.keys.Right):
		m.picker = (m.picker + 1) % n
	case key.Matches(msg, m.keys.Flip):
		m.start(memory.Difficulties[m.picker])
	}
	return m, nil
}

func (m Model) handleBoardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	state := m.ctrl.State()

	switch {
	case key.Matches(msg, m.keys.Restart):
		m.start(state.Difficulty)
		return m, nil

	case key.Matches(msg, m.keys.NewGame):
		m.ctrl.ResetGame()
		m.screen = screenPicker
		return m, nil
	}

	if state.IsComplete() {
		if key.Matches(msg, m.keys.Flip) {
			m.start(state.Difficulty)
		}
		return m, nil
	}

	cols := m.columns(state.Difficulty)
	switch {
	case key.Matches(msg, m.keys.Left):
		m.cursor = moveCursor(m.cursor, -1, len(state.Cards))
	case key.Matches(msg, m.keys.Right):
		m.cursor = moveCursor(m.cursor, 1, len(state.Cards))
	case key.Matches(msg, m.keys.Up):
		m.cursor = moveCursor(m.cursor, -cols, len(state.Cards))
	case key.Matches(msg, m.keys.Down):
		m.cursor = moveCursor(m.cursor, cols, len(state.Cards))
	case key.Matches(msg, m.keys.Flip):
		if m.cursor < len(state.Cards) {
			m.ctrl.FlipCard(state.Cards[m.cursor].ID)
		}
	}
	return m, nil
}

// start deals a new game and switches to the board.
func (m *Model) start(d memory.Difficulty) {
	if err := m.ctrl.StartGame(d); err != nil {
		m.logger.Error("cannot start game", "difficulty", d, "error", err)
		return
	}
	m.prevBest = m.ctrl.State().BestScore()
	m.cursor = 0
	m.screen = screenBoard
}

// columns returns the configured board width for d.
func (m Model) columns(d memory.Difficulty) int {
	if n := m.cfg.UI.Columns.Get(d); n > 0 {
		return n
	}
	return 4
}

// moveCursor shifts pos by delta, staying put when the target is off the board.
func moveCursor(pos, delta, n int) int {
	next := pos + delta
	if next < 0 || next >= n {
		return pos
	}
	return next
}

// isNewBest reports whether d beats the best recorded before the game.
func isNewBest(prev *time.Duration, d time.Duration) bool {
	return prev == nil || d < *prev
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	state := m.ctrl.State()
	var b strings.Builder
	b.WriteString("\n")

	if m.screen == screenPicker {
		menu := renderPicker(m.picker, state.BestScores, m.pairCount, m.theme)
		b.WriteString(centerBlock(menu, m.width))
		b.WriteString("\n")
		b.WriteString(centerBlock(m.help.View(pickerKeys{m.keys}), m.width))
		return b.String()
	}

	title := m.theme.HUDTitle.Render("M E M O R Y  ·  " + state.Difficulty.Title())
	b.WriteString(centerBlock(title, m.width))
	b.WriteString("\n\n")
	b.WriteString(centerBlock(renderHUD(state, m.now(), m.theme), m.width))
	b.WriteString("\n\n")

	if state.IsComplete() {
		elapsed, _ := state.Duration()
		b.WriteString(centerBlock(renderCompletion(state, isNewBest(m.prevBest, elapsed), m.theme), m.width))
	} else {
		b.WriteString(centerBlock(renderBoard(state, m.cursor, m.columns(state.Difficulty), m.theme), m.width))
	}

	b.WriteString("\n\n")
	b.WriteString(centerBlock(m.theme.HUDControls.Render(m.help.View(m.keys)), m.width))
	return b.String()
}

func (m Model) pairCount(d memory.Difficulty) int {
	return m.cfg.Deck.Pairs.Get(d)
}

// Run starts the Bubble Tea program with the given controller.
func Run(ctrl *memory.Controller, opts Options) error {
	model := NewModel(ctrl, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
