package tui

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-memory/internal/memory"
)

// hiddenFace is shown on face-down cards.
const hiddenFace = "?"

// cardStatus is how a card is drawn.
type cardStatus int

const (
	cardHidden cardStatus = iota
	cardFaceUp
	cardMismatch
	cardMatched
)

// statusOf derives the draw status of c from the game state.
func statusOf(s memory.State, c memory.Card) cardStatus {
	switch {
	case c.IsMatched:
		return cardMatched
	case slices.Contains(s.Mismatched, c.ID):
		return cardMismatch
	case c.IsFlipped:
		return cardFaceUp
	}
	return cardHidden
}

// renderCard draws a single card, highlighting its border under the cursor.
func (t Theme) renderCard(c memory.Card, status cardStatus, underCursor bool) string {
	var style lipgloss.Style
	face := c.Value

	switch status {
	case cardMatched:
		style = t.CardMatched
	case cardMismatch:
		style = t.CardMismatch
	case cardFaceUp:
		style = t.CardFaceUp
	default:
		style = t.CardHidden
		face = hiddenFace
	}

	if underCursor {
		style = style.BorderForeground(t.CursorBorder).Bold(true)
	}
	return style.Render(face)
}

// renderBoard lays the cards out in rows of cols.
func renderBoard(s memory.State, cursor, cols int, t Theme) string {
	if len(s.Cards) == 0 {
		return t.MenuDescription.Render("No cards dealt.")
	}
	if cols <= 0 {
		cols = 4
	}

	rows := make([]string, 0, (len(s.Cards)+cols-1)/cols)
	for start := 0; start < len(s.Cards); start += cols {
		end := min(start+cols, len(s.Cards))
		cells := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			c := s.Cards[i]
			cells = append(cells, t.renderCard(c, statusOf(s, c), i == cursor))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// formatBest renders an optional best time.
func formatBest(d *time.Duration) string {
	if d == nil {
		return "--:--"
	}
	return memory.FormatDuration(*d)
}

// renderHUD draws the status line: moves, pairs, time and best.
func renderHUD(s memory.State, now time.Time, t Theme) string {
	sep := t.HUDSeparator.Render(" │ ")
	field := func(label, value string) string {
		return t.HUDLabel.Render(label+" ") + t.HUDValue.Render(value)
	}

	parts := []string{
		field("Moves", fmt.Sprintf("%d", s.Moves)),
		field("Pairs", fmt.Sprintf("%d/%d", s.MatchedPairs, s.TotalPairs())),
		field("Time", memory.FormatDuration(s.Elapsed(now))),
		field("Best", formatBest(s.BestScore())),
	}
	return strings.Join(parts, sep)
}

// renderCompletion draws the end-of-game overlay.
func renderCompletion(s memory.State, newBest bool, t Theme) string {
	elapsed, _ := s.Duration()

	var b strings.Builder
	b.WriteString(t.OverlayTitle.Render("ALL PAIRS FOUND"))
	b.WriteString("\n\n")
	b.WriteString(t.OverlayText.Render(fmt.Sprintf("Time  %s", memory.FormatDuration(elapsed))))
	b.WriteString("\n")
	b.WriteString(t.OverlayText.Render(fmt.Sprintf("Moves %d", s.Moves)))
	if newBest {
		b.WriteString("\n\n")
		b.WriteString(t.NewBest.Render("New best!"))
	}
	b.WriteString("\n\n")
	b.WriteString(t.HUDControls.Render("r/enter again · n difficulty · q quit"))

	return t.OverlayBorder.Render(b.String())
}

// renderPicker draws the difficulty menu.
func renderPicker(cursor int, best memory.BestScores, pairs func(memory.Difficulty) int, t Theme) string {
	var b strings.Builder
	b.WriteString(t.MenuTitle.Render("M E M O R Y"))
	b.WriteString("\n\n")
	b.WriteString(t.MenuDescription.Render("Choose a difficulty"))
	b.WriteString("\n\n")

	for i, d := range memory.Difficulties {
		prefix := "  "
		style := t.MenuItemNormal
		if i == cursor {
			prefix = "> "
			style = t.MenuItemActive
		}
		line := fmt.Sprintf("%s%-8s", prefix, d.Title())
		b.WriteString(style.Render(line))
		b.WriteString(t.MenuDescription.Render(
			fmt.Sprintf("  %2d pairs  best %s", pairs(d), formatBest(best.Get(d))),
		))
		b.WriteString("\n")
	}
	return b.String()
}

// centerBlock centers a possibly multi-line block within width.
func centerBlock(block string, width int) string {
	if width <= lipgloss.Width(block) {
		return block
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, block)
}
