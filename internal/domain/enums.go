package domain

// PhaseStatus is the schedule-risk classification of a phase. It is derived
// on every read and never persisted.
type PhaseStatus string

const (
	StatusOnTrack   PhaseStatus = "OnTrack"
	StatusAtRisk    PhaseStatus = "AtRisk"
	StatusOverdue   PhaseStatus = "Overdue"
	StatusCompleted PhaseStatus = "Completed"
)
