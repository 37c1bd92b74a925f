package formatter

import (
	"fmt"
	"strings"

	"github.com/avermeer/scribe/internal/contract"
)

const timelineBarWidth = 10

// FormatTimeline renders the phase table with derived progress columns.
func FormatTimeline(phases []contract.PhaseView) string {
	if len(phases) == 0 {
		return Dim("No timeline yet. Use 'scribe timeline load'.")
	}

	headers := []string{"PHASE", "TASKS", "PROGRESS", "STATUS", "DEADLINE", "DAYS LEFT"}
	rows := make([][]string, 0, len(phases))
	for _, p := range phases {
		rows = append(rows, []string{
			Bold(p.Title),
			fmt.Sprintf("%d/%d", p.CompletedTasks, p.TotalTasks),
			RenderProgress(p.PctComplete, timelineBarWidth),
			StatusIndicator(p.Status),
			DateLabel(p.Deadline),
			DaysLeftLabel(p.DaysLeft),
		})
	}
	return RenderTable(headers, rows)
}

// FormatPhase renders one phase with its task checklist.
func FormatPhase(p *contract.PhaseView) string {
	var b strings.Builder
	b.WriteString(Header(p.Title) + "\n")
	b.WriteString(fmt.Sprintf("%s  %s  %s\n",
		RenderProgress(p.PctComplete, timelineBarWidth),
		StatusIndicator(p.Status),
		DaysLeftLabel(p.DaysLeft),
	))
	if p.StartDate != nil || p.Deadline != nil {
		b.WriteString(Dim(fmt.Sprintf("start %s  deadline %s",
			plainDate(p.StartDate), plainDate(p.Deadline))) + "\n")
	}
	if len(p.Tasks) > 0 {
		b.WriteString("\n")
		for _, task := range p.Tasks {
			b.WriteString(formatTask(task) + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatTask(t contract.TaskView) string {
	if t.Completed {
		return StyleGreen.Render("  [x] ") + Dim(t.Description) + "  " + TruncID(t.ID)
	}
	return StyleFg.Render("  [ ] "+t.Description) + "  " + TruncID(t.ID)
}

func plainDate(date *string) string {
	if date == nil || *date == "" {
		return "--"
	}
	return *date
}

// FormatPlan renders the combined outline and timeline snapshot.
func FormatPlan(view *contract.PlanningView) string {
	outline := FormatOutline(view.Sections)
	timeline := FormatTimeline(view.Timeline)
	return RenderBox("Outline", outline) + "\n" + RenderBox("Timeline", timeline)
}
