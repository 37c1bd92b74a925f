// Package contract defines the request and response shapes shared by the
// services and their callers. Dates cross this boundary as ISO-8601
// calendar-date strings.
package contract

import "github.com/avermeer/scribe/internal/domain"

// SectionSpec describes one node of a replacement outline. Sibling order is
// positional; ids are assigned during the rebuild.
type SectionSpec struct {
	Title       string        `json:"title"`
	Summary     string        `json:"summary,omitempty"`
	Subsections []SectionSpec `json:"subsections,omitempty"`
}

// SectionCreate describes a single new section attached to an existing tree.
type SectionCreate struct {
	Title    string  `json:"title"`
	Summary  string  `json:"summary,omitempty"`
	ParentID *string `json:"parent_id,omitempty"`
	Order    int     `json:"order,omitempty"`
}

// ParentRef names the new parent in a patch. An empty ID moves the section
// to the root level.
type ParentRef struct {
	ID string
}

// SectionPatch is a partial update. Nil fields are left unchanged.
type SectionPatch struct {
	Title   *string
	Summary *string
	Order   *int
	Parent  *ParentRef
}

// SectionNode is the rendered view of a section and its subtree.
type SectionNode struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Summary     string        `json:"summary,omitempty"`
	Order       int           `json:"order"`
	Subsections []SectionNode `json:"subsections"`
}

// TaskSpec describes one task of a replacement timeline.
type TaskSpec struct {
	Description string `json:"description"`
	Completed   bool   `json:"completed,omitempty"`
}

// PhaseSpec describes one phase of a replacement timeline. Dates are
// ISO-8601 calendar dates.
type PhaseSpec struct {
	Title     string     `json:"title"`
	StartDate *string    `json:"start_date,omitempty"`
	EndDate   *string    `json:"end_date,omitempty"`
	Deadline  *string    `json:"deadline,omitempty"`
	Tasks     []TaskSpec `json:"tasks,omitempty"`
}

// TaskView is the rendered view of a task.
type TaskView struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// PhaseView is a phase decorated with its derived progress fields. The
// progress fields are recomputed on every read and never stored.
type PhaseView struct {
	ID             string             `json:"id"`
	Title          string             `json:"title"`
	Order          int                `json:"order"`
	StartDate      *string            `json:"start_date"`
	EndDate        *string            `json:"end_date"`
	Deadline       *string            `json:"deadline"`
	TotalTasks     int                `json:"total_tasks"`
	CompletedTasks int                `json:"completed_tasks"`
	PctComplete    float64            `json:"pct_complete"`
	DaysLeft       *int               `json:"days_left"`
	Status         domain.PhaseStatus `json:"status"`
	Tasks          []TaskView         `json:"tasks"`
}

// PlanningView is the combined outline and timeline snapshot.
type PlanningView struct {
	Sections []SectionNode `json:"sections"`
	Timeline []PhaseView   `json:"timeline"`
}
