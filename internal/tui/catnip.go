package tui

import (
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// EasterEggMode represents special seasonal themes
type EasterEggMode int

const (
	EasterEggNone EasterEggMode = iota
	EasterEggHalloween
	EasterEggChristmas
)

const logo = `█▀▄ ▄▀█ █▄ █ ▄▀█   █▀█ █ █ █▄ █
█▄▀ █▀█ █ ▀█ █▀█   █▀▄ █▄█ █ ▀█`

// detectEasterEgg checks the EASTER_EGG environment variable first, then
// the date.
func detectEasterEgg(now time.Time) EasterEggMode {
	if easterEgg := os.Getenv("EASTER_EGG"); easterEgg != "" {
		switch strings.ToLower(easterEgg) {
		case "halloween":
			return EasterEggHalloween
		case "xmas", "christmas":
			return EasterEggChristmas
		}
	}

	month := now.Month()
	day := now.Day()

	if month == time.October && day == 31 {
		return EasterEggHalloween
	}

	if month == time.December && day == 25 {
		return EasterEggChristmas
	}

	return EasterEggNone
}

// renderLogo colours the launcher logo for the season. Christmas alternates
// red and green lines.
func renderLogo(base lipgloss.Style, mode EasterEggMode) string {
	switch mode {
	case EasterEggHalloween:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true).Render(logo)

	case EasterEggChristmas:
		red := lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
		green := lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true)
		lines := strings.Split(logo, "\n")
		for i, l := range lines {
			if i%2 == 0 {
				lines[i] = red.Render(l)
			} else {
				lines[i] = green.Render(l)
			}
		}
		return strings.Join(lines, "\n")

	default:
		return base.Render(logo)
	}
}
