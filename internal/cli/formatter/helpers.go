package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		return boxStyle.Render(titleRendered + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// DaysLeftLabel renders a days-left count with urgency coloring. nil means
// no deadline.
func DaysLeftLabel(days *int) string {
	if days == nil {
		return Dim("--")
	}
	d := *days
	switch {
	case d < 0:
		return StyleRed.Render(fmt.Sprintf("%dd over", -d))
	case d <= 7:
		return StyleYellow.Render(fmt.Sprintf("%dd left", d))
	default:
		return StyleFg.Render(fmt.Sprintf("%dd left", d))
	}
}

// DateLabel renders an optional ISO date, "--" when absent.
func DateLabel(date *string) string {
	if date == nil || *date == "" {
		return Dim("--")
	}
	return StyleFg.Render(*date)
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}
