package tui

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-memory/internal/memory"
	"github.com/vovakirdan/tui-memory/internal/storage"
)

// Scoreboard layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show difficulty sidebar
	sidebarWidth       = 24  // Width of difficulty sidebar
	maxCompletions     = 100 // Max completions to load
)

// ScoreSource is the read side of score storage.
type ScoreSource interface {
	LoadBestScores() (memory.BestScores, error)
	RecentCompletions(d memory.Difficulty, limit int) ([]storage.CompletionEntry, error)
	FastestCompletions(d memory.Difficulty, limit int) ([]storage.CompletionEntry, error)
	Stats(d memory.Difficulty) (storage.DifficultyStats, error)
}

// Order selects how completed games are listed.
type Order int

const (
	OrderRecent Order = iota
	OrderFastest
)

// Title returns the label shown above the listing.
func (o Order) Title() string {
	if o == OrderFastest {
		return "Fastest"
	}
	return "Recent"
}

// completions lists up to limit games for d in order o.
func (o Order) completions(source ScoreSource, d memory.Difficulty, limit int) ([]storage.CompletionEntry, error) {
	if o == OrderFastest {
		return source.FastestCompletions(d, limit)
	}
	return source.RecentCompletions(d, limit)
}

// loadBest reads the best-score map. An unreadable record counts as empty.
func loadBest(source ScoreSource) (memory.BestScores, error) {
	best, err := source.LoadBestScores()
	if errors.Is(err, storage.ErrCorruptBestScores) {
		return memory.BestScores{}, nil
	}
	return best, err
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Order   key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextTab, k.PrevTab, k.Order, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextTab, k.PrevTab},
		{k.Order, k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next difficulty"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev difficulty"),
		),
		Order: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "fastest/recent"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel is the Bubble Tea model for the scoreboard screen.
type ScoreboardModel struct {
	source      ScoreSource
	tab         int // Index into memory.Difficulties
	order       Order
	best        memory.BestScores
	stats       storage.DifficultyStats
	entries     []storage.CompletionEntry
	loadErr     error
	table       table.Model
	help        help.Model
	keys        ScoreboardKeyMap
	width       int
	height      int
	quitting    bool
	showSidebar bool // Whether to show difficulty sidebar
}

// NewScoreboardModel creates a new scoreboard model.
func NewScoreboardModel(source ScoreSource, width, height int) ScoreboardModel {
	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		source:      source,
		keys:        DefaultScoreboardKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}

	m.table = m.createTable()
	m.load()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Time", Width: 7},
		{Title: "Moves", Width: 6},
		{Title: "", Width: 5},
		{Title: "Date", Width: 14},
	}

	height := m.height - 12 // Leave room for header, stats, help and margins
	if height < 3 {
		height = 3
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	// Table styles
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

// difficulty returns the difficulty of the active tab.
func (m ScoreboardModel) difficulty() memory.Difficulty {
	return memory.Difficulties[m.tab]
}

// load reads best scores, stats and history for the active tab.
func (m *ScoreboardModel) load() {
	m.loadErr = nil
	m.entries = nil
	m.stats = storage.DifficultyStats{Difficulty: m.difficulty()}

	if m.source == nil {
		m.updateTableRows()
		return
	}

	best, err := loadBest(m.source)
	if err != nil {
		m.loadErr = err
	}
	m.best = best

	if stats, err := m.source.Stats(m.difficulty()); err == nil {
		m.stats = stats
	} else {
		m.loadErr = err
	}

	if entries, err := m.order.completions(m.source, m.difficulty(), maxCompletions); err == nil {
		m.entries = entries
	} else {
		m.loadErr = err
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the loaded history.
func (m *ScoreboardModel) updateTableRows() {
	rows := make([]table.Row, len(m.entries))
	for i, e := range m.entries {
		mark := ""
		if e.NewBest {
			mark = "best"
		}
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			memory.FormatDuration(e.Duration),
			fmt.Sprintf("%d", e.Moves),
			mark,
			e.CreatedAt.Local().Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)

	// Reset cursor to top
	m.table.GotoTop()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	n := len(memory.Difficulties)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Back):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextTab):
			m.tab = (m.tab + 1) % n
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.PrevTab):
			m.tab = (m.tab - 1 + n) % n
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.Order):
			if m.order == OrderFastest {
				m.order = OrderRecent
			} else {
				m.order = OrderFastest
			}
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			// Pass to table for scrolling
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := fmt.Sprintf("BEST TIMES - %s - %s", m.difficulty().Title(), m.order.Title())
	b.WriteString(centerBlock(titleStyle.Render(title), m.width))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	if m.loadErr != nil {
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("160"))
		b.WriteString("\n")
		b.WriteString(errStyle.Render("could not read scores: " + m.loadErr.Error()))
	}

	// Help bar
	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderWideLayout renders the scoreboard with a sidebar of best times.
func (m ScoreboardModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Best\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, d := range memory.Difficulties {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.tab {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		sidebar.WriteString(style.Render(fmt.Sprintf("%s%-8s %s", cursor, d.Title(), formatBest(m.best.Get(d)))))
		sidebar.WriteString("\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	content := lipgloss.JoinVertical(lipgloss.Left, m.renderStats(), "", m.renderTableContent())
	return lipgloss.JoinHorizontal(lipgloss.Top, sidebarStyle.Render(sidebar.String()), "  ", tableStyle.Render(content))
}

// renderNarrowLayout renders the scoreboard with difficulty tabs above the table.
func (m ScoreboardModel) renderNarrowLayout() string {
	var b strings.Builder

	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, len(memory.Difficulties))
	for i, d := range memory.Difficulties {
		if i == m.tab {
			tabs[i] = activeTabStyle.Render(d.Title())
		} else {
			tabs[i] = tabStyle.Render(" " + d.Title() + " ")
		}
	}
	b.WriteString(centerBlock(strings.Join(tabs, " "), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerBlock(m.renderStats(), m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(centerBlock(tableStyle.Render(m.renderTableContent()), m.width))

	return b.String()
}

// renderStats renders the best time and aggregate line for the active tab.
func (m ScoreboardModel) renderStats() string {
	label := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	value := lipgloss.NewStyle().Bold(true)

	line := label.Render("Best ") + value.Render(formatBest(m.best.Get(m.difficulty())))
	if m.stats.Games > 0 {
		line += label.Render("  Games ") + value.Render(fmt.Sprintf("%d", m.stats.Games)) +
			label.Render("  Avg ") + value.Render(memory.FormatDuration(m.stats.Average)) +
			label.Render("  Avg moves ") + value.Render(fmt.Sprintf("%.1f", m.stats.AvgMoves))
	}
	return line
}

// renderTableContent renders the table or empty message.
func (m ScoreboardModel) renderTableContent() string {
	if len(m.entries) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No games finished yet.\nClear the board to set a time!")
	}

	return m.table.View()
}

// RunScoreboard runs the scoreboard screen.
func RunScoreboard(source ScoreSource, width, height int) error {
	model := NewScoreboardModel(source, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}

// WriteScores prints best times and up to limit completed games as plain
// text, listed in the given order.
func WriteScores(w io.Writer, source ScoreSource, limit int, order Order) error {
	best, err := loadBest(source)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DIFFICULTY\tBEST\tGAMES\tAVERAGE")
	for _, d := range memory.Difficulties {
		stats, err := source.Stats(d)
		if err != nil {
			return err
		}
		avg := "--:--"
		if stats.Games > 0 {
			avg = memory.FormatDuration(stats.Average)
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", d, formatBest(best.Get(d)), stats.Games, avg)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	entries, err := order.completions(source, "", limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}

	fmt.Fprintln(w)
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "WHEN\tDIFFICULTY\tTIME\tMOVES\t")
	for _, e := range entries {
		mark := ""
		if e.NewBest {
			mark = "new best"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n",
			e.CreatedAt.Local().Format("2006-01-02 15:04"), e.Difficulty,
			memory.FormatDuration(e.Duration), e.Moves, mark)
	}
	return tw.Flush()
}
