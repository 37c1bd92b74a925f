package domain

import (
	"math"
	"time"
)

// Progress holds the derived completion and schedule-risk fields of a phase.
type Progress struct {
	TotalTasks     int
	CompletedTasks int
	PctComplete    float64
	DaysLeft       *int
	Status         PhaseStatus
}

// DateOnly truncates t to its calendar date at midnight UTC.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// daysBetween returns the whole calendar days from a to b. Both values are
// truncated to dates first, so the division is exact.
func daysBetween(a, b time.Time) int {
	return int(DateOnly(b).Sub(DateOnly(a)).Hours() / 24)
}

// ComputeProgress derives completion percentage, days left, and status from
// a phase's task counts, its dates, and an explicit current date. The caller
// supplies today so the derivation stays deterministic under test; the same
// unmodified phase can change status between two reads purely because today
// advanced.
func ComputeProgress(totalTasks, completedTasks int, startDate, deadline *time.Time, today time.Time) Progress {
	p := Progress{
		TotalTasks:     totalTasks,
		CompletedTasks: completedTasks,
	}
	if totalTasks > 0 {
		pct := float64(completedTasks) / float64(totalTasks) * 100
		p.PctComplete = math.Round(pct*10) / 10
	}

	if deadline == nil {
		if p.PctComplete == 100 {
			p.Status = StatusCompleted
		} else {
			p.Status = StatusOnTrack
		}
		return p
	}

	daysLeft := daysBetween(today, *deadline)
	p.DaysLeft = &daysLeft

	switch {
	case daysLeft < 0 && p.PctComplete < 100:
		p.Status = StatusOverdue
	case p.PctComplete == 100 && !DateOnly(today).After(DateOnly(*deadline)):
		p.Status = StatusCompleted
	case startDate != nil:
		totalDuration := daysBetween(*startDate, *deadline)
		if totalDuration < 1 {
			totalDuration = 1
		}
		timeRatio := 1 - float64(daysLeft)/float64(totalDuration)
		progressRatio := p.PctComplete / 100
		if progressRatio < timeRatio {
			p.Status = StatusAtRisk
		} else {
			p.Status = StatusOnTrack
		}
	default:
		p.Status = StatusOnTrack
	}
	return p
}
