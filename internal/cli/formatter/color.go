package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/avermeer/scribe/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// StatusColor returns the lipgloss style for the given phase status.
func StatusColor(status domain.PhaseStatus) lipgloss.Style {
	switch status {
	case domain.StatusOverdue:
		return StyleRed
	case domain.StatusAtRisk:
		return StyleYellow
	case domain.StatusOnTrack:
		return StyleGreen
	case domain.StatusCompleted:
		return StyleBlue
	default:
		return StyleDim
	}
}

// StatusIndicator returns a colored status string such as "● OVERDUE".
func StatusIndicator(status domain.PhaseStatus) string {
	switch status {
	case domain.StatusOverdue:
		return StyleRed.Render("● OVERDUE")
	case domain.StatusAtRisk:
		return StyleYellow.Render("● AT RISK")
	case domain.StatusOnTrack:
		return StyleGreen.Render("● ON TRACK")
	case domain.StatusCompleted:
		return StyleBlue.Render("✔ COMPLETED")
	default:
		return StyleDim.Render("● UNKNOWN")
	}
}

// Header renders a section header with an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
