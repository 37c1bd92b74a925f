package domain

import "time"

// Phase is one entry of an owner's research timeline. All dates are
// calendar dates (midnight UTC).
type Phase struct {
	ID         string
	OwnerID    string
	Title      string
	OrderIndex int
	StartDate  *time.Time
	EndDate    *time.Time
	Deadline   *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Task belongs to exactly one Phase of the same owner.
type Task struct {
	ID          string
	OwnerID     string
	PhaseID     string
	Description string
	Completed   bool
	OrderIndex  int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
