package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-memory/internal/config"
	"github.com/vovakirdan/tui-memory/internal/memory"
)

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(t *testing.T, d memory.Difficulty) (Model, *memory.Controller) {
	t.Helper()
	ctrl := memory.NewController(memory.Options{
		MatchDelay: time.Hour, // Timers never fire during these tests
		ResetDelay: time.Hour,
		Seed:       1,
	})
	t.Cleanup(ctrl.Close)

	m := NewModel(ctrl, Options{
		Config:     config.Default(),
		Difficulty: d,
		Width:      80,
		Height:     24,
	})
	return m, ctrl
}

func send(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestModelStartsOnPicker(t *testing.T) {
	m, ctrl := newTestModel(t, "")

	if m.screen != screenPicker {
		t.Fatalf("screen = %v, want picker", m.screen)
	}
	if ctrl.State().IsPlaying {
		t.Error("no game should be running before a difficulty is picked")
	}
	if !strings.Contains(m.View(), "Choose a difficulty") {
		t.Error("picker view missing prompt")
	}

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.screen != screenBoard {
		t.Fatalf("screen = %v, want board", m.screen)
	}
	state := ctrl.State()
	if state.Difficulty != memory.Medium || len(state.Cards) != 20 {
		t.Errorf("started %s with %d cards, want medium with 20", state.Difficulty, len(state.Cards))
	}
}

func TestModelPickerWraps(t *testing.T) {
	m, _ := newTestModel(t, "")

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyUp})
	if m.picker != len(memory.Difficulties)-1 {
		t.Errorf("picker = %d, want last entry", m.picker)
	}
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyDown})
	if m.picker != 0 {
		t.Errorf("picker = %d, want 0", m.picker)
	}
}

func TestModelFlipUnderCursor(t *testing.T) {
	m, ctrl := newTestModel(t, memory.Easy)

	if m.screen != screenBoard {
		t.Fatal("difficulty option should skip the picker")
	}

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyRight})
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyDown})
	if m.cursor != 1+4 {
		t.Fatalf("cursor = %d, want 5", m.cursor)
	}

	m, _ = send(m, keyRunes(" "))
	state := ctrl.State()
	if len(state.FlippedCards) != 1 || state.FlippedCards[0].ID != state.Cards[5].ID {
		t.Errorf("expected card 5 to be selected, got %+v", state.FlippedCards)
	}
	if !strings.Contains(m.View(), "Moves") {
		t.Error("board view missing HUD")
	}
}

func TestModelCursorStaysOnBoard(t *testing.T) {
	m, _ := newTestModel(t, memory.Easy)

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyUp})
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want 0", m.cursor)
	}

	for i := 0; i < 20; i++ {
		m, _ = send(m, tea.KeyMsg{Type: tea.KeyDown})
	}
	if m.cursor != 8 {
		t.Errorf("cursor = %d, want 8 (last row of a 4x3 board)", m.cursor)
	}
}

func TestModelRestartAndNewGame(t *testing.T) {
	m, ctrl := newTestModel(t, memory.Hard)
	first := ctrl.State().Cards[0].ID

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyRight})
	m, _ = send(m, keyRunes("r"))
	state := ctrl.State()
	if state.Difficulty != memory.Hard || state.Cards[0].ID == first {
		t.Error("restart should deal a fresh hard deck")
	}
	if m.cursor != 0 {
		t.Errorf("cursor = %d after restart, want 0", m.cursor)
	}

	m, _ = send(m, keyRunes("n"))
	if m.screen != screenPicker {
		t.Error("n should return to the picker")
	}
	if ctrl.State().IsPlaying {
		t.Error("n should reset the game")
	}
}

func TestModelQuit(t *testing.T) {
	m, _ := newTestModel(t, memory.Easy)

	m, cmd := send(m, keyRunes("q"))
	if !m.quitting || cmd == nil {
		t.Fatal("q should quit")
	}
	if m.View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestModelTickReschedules(t *testing.T) {
	m, _ := newTestModel(t, memory.Easy)

	if _, cmd := send(m, TickMsg(time.Now())); cmd == nil {
		t.Error("tick should schedule the next tick")
	}
}

func TestNotifierCollapses(t *testing.T) {
	n := NewNotifier()
	n.OnChange(memory.State{})
	n.OnChange(memory.State{})

	msg := n.wait()()
	if _, ok := msg.(StateChangedMsg); !ok {
		t.Fatalf("wait() = %T, want StateChangedMsg", msg)
	}
	select {
	case <-n.ch:
		t.Error("second change should have been collapsed")
	default:
	}
}

func TestMoveCursor(t *testing.T) {
	tests := []struct {
		pos, delta, n, want int
	}{
		{0, 1, 12, 1},
		{0, -1, 12, 0},
		{11, 1, 12, 11},
		{2, 4, 12, 6},
		{9, 4, 12, 9},
		{0, 1, 0, 0},
	}
	for _, tt := range tests {
		if got := moveCursor(tt.pos, tt.delta, tt.n); got != tt.want {
			t.Errorf("moveCursor(%d, %d, %d) = %d, want %d", tt.pos, tt.delta, tt.n, got, tt.want)
		}
	}
}

func TestIsNewBest(t *testing.T) {
	prev := 45 * time.Second

	if !isNewBest(nil, time.Minute) {
		t.Error("first completion is a new best")
	}
	if !isNewBest(&prev, 40*time.Second) {
		t.Error("faster time is a new best")
	}
	if isNewBest(&prev, 45*time.Second) {
		t.Error("equal time is not a new best")
	}
	if isNewBest(&prev, 50*time.Second) {
		t.Error("slower time is not a new best")
	}
}

func TestStatusOf(t *testing.T) {
	a, b, c, d := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	s := memory.State{
		Cards: []memory.Card{
			{ID: a, Value: "x"},
			{ID: b, Value: "y", IsFlipped: true},
			{ID: c, Value: "z", IsFlipped: true},
			{ID: d, Value: "w", IsFlipped: true, IsMatched: true},
		},
		Mismatched: []uuid.UUID{c},
	}

	want := []cardStatus{cardHidden, cardFaceUp, cardMismatch, cardMatched}
	for i, card := range s.Cards {
		if got := statusOf(s, card); got != want[i] {
			t.Errorf("statusOf(card %d) = %v, want %v", i, got, want[i])
		}
	}
}

func TestRenderCardHidesFace(t *testing.T) {
	theme := DefaultTheme()
	card := memory.Card{ID: uuid.New(), Value: "🍎"}

	if got := theme.renderCard(card, cardHidden, false); strings.Contains(got, "🍎") {
		t.Error("face-down card shows its value")
	}
	if got := theme.renderCard(card, cardFaceUp, true); !strings.Contains(got, "🍎") {
		t.Error("face-up card hides its value")
	}
}

func TestRenderHUD(t *testing.T) {
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	best := 45 * time.Second
	s := memory.State{
		Cards:        make([]memory.Card, 12),
		Moves:        7,
		MatchedPairs: 3,
		IsPlaying:    true,
		Difficulty:   memory.Easy,
		StartTime:    &start,
		BestScores:   memory.BestScores{Easy: &best},
	}

	got := renderHUD(s, start.Add(83*time.Second), DefaultTheme())
	for _, want := range []string{"7", "3/6", "01:23", "00:45"} {
		if !strings.Contains(got, want) {
			t.Errorf("HUD %q missing %q", got, want)
		}
	}

	s.BestScores = memory.BestScores{}
	if got := renderHUD(s, start, DefaultTheme()); !strings.Contains(got, "--:--") {
		t.Errorf("HUD %q should show an empty best", got)
	}
}

func TestRenderCompletion(t *testing.T) {
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	end := start.Add(42 * time.Second)
	s := memory.State{
		Cards:        []memory.Card{{IsMatched: true}, {IsMatched: true}},
		MatchedPairs: 1,
		Moves:        1,
		StartTime:    &start,
		EndTime:      &end,
	}

	got := renderCompletion(s, true, DefaultTheme())
	if !strings.Contains(got, "00:42") || !strings.Contains(got, "New best!") {
		t.Errorf("completion view missing time or new best: %q", got)
	}
	if got := renderCompletion(s, false, DefaultTheme()); strings.Contains(got, "New best!") {
		t.Error("New best! shown without a record")
	}
}

func TestThemeByName(t *testing.T) {
	for _, name := range config.Themes {
		theme := ThemeByName(name)
		if theme.CardHidden.Render("?") == "" {
			t.Errorf("theme %q renders nothing", name)
		}
	}
}
