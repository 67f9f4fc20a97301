package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme contains all configurable visual styles for the board.
type Theme struct {
	// Card faces
	CardHidden   lipgloss.Style
	CardFaceUp   lipgloss.Style
	CardMatched  lipgloss.Style
	CardMismatch lipgloss.Style
	CursorBorder lipgloss.Color

	// HUD styles
	HUDTitle     lipgloss.Style
	HUDLabel     lipgloss.Style
	HUDValue     lipgloss.Style
	HUDSeparator lipgloss.Style
	HUDControls  lipgloss.Style

	// Overlay styles
	OverlayBorder lipgloss.Style
	OverlayTitle  lipgloss.Style
	OverlayText   lipgloss.Style
	NewBest       lipgloss.Style

	// Difficulty picker styles
	MenuTitle       lipgloss.Style
	MenuItemNormal  lipgloss.Style
	MenuItemActive  lipgloss.Style
	MenuDescription lipgloss.Style
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Width(4).
		Align(lipgloss.Center)

	return Theme{
		CardHidden:   card.BorderForeground(lipgloss.Color("240")).Foreground(lipgloss.Color("245")),
		CardFaceUp:   card.BorderForeground(lipgloss.Color("51")).Foreground(lipgloss.Color("255")),
		CardMatched:  card.BorderForeground(lipgloss.Color("34")).Foreground(lipgloss.Color("34")).Faint(true),
		CardMismatch: card.BorderForeground(lipgloss.Color("160")).Foreground(lipgloss.Color("255")),
		CursorBorder: lipgloss.Color("226"),

		HUDTitle:     lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		HUDLabel:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		HUDValue:     lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true),
		HUDSeparator: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		HUDControls:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),

		OverlayBorder: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("255")).
			Padding(1, 4).
			Align(lipgloss.Center),
		OverlayTitle: lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		OverlayText:  lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		NewBest:      lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true).Blink(true),

		MenuTitle:       lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		MenuItemNormal:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		MenuItemActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		MenuDescription: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

// NeonTheme returns a neon-style theme.
func NeonTheme() Theme {
	theme := DefaultTheme()
	theme.CardHidden = theme.CardHidden.BorderForeground(lipgloss.Color("171")).Foreground(lipgloss.Color("199"))
	theme.CardFaceUp = theme.CardFaceUp.BorderForeground(lipgloss.Color("87"))
	theme.CardMatched = theme.CardMatched.BorderForeground(lipgloss.Color("118")).Foreground(lipgloss.Color("118"))
	theme.CursorBorder = lipgloss.Color("227")
	theme.HUDTitle = theme.HUDTitle.Foreground(lipgloss.Color("199"))
	return theme
}

// MonochromeTheme returns a grayscale theme.
func MonochromeTheme() Theme {
	theme := DefaultTheme()
	theme.CardHidden = theme.CardHidden.BorderForeground(lipgloss.Color("240")).Foreground(lipgloss.Color("240"))
	theme.CardFaceUp = theme.CardFaceUp.BorderForeground(lipgloss.Color("250")).Foreground(lipgloss.Color("255"))
	theme.CardMatched = theme.CardMatched.BorderForeground(lipgloss.Color("236")).Foreground(lipgloss.Color("245"))
	theme.CardMismatch = theme.CardMismatch.BorderForeground(lipgloss.Color("255"))
	theme.CursorBorder = lipgloss.Color("255")
	theme.NewBest = theme.NewBest.Foreground(lipgloss.Color("255"))
	return theme
}

// ThemeByName returns the named theme, or the default one.
func ThemeByName(name string) Theme {
	switch name {
	case "neon":
		return NeonTheme()
	case "mono", "monochrome":
		return MonochromeTheme()
	}
	return DefaultTheme()
}
