package testutil

import (
	"time"

	"github.com/avermeer/scribe/internal/domain"
	"github.com/google/uuid"
)

// DefaultOwner is the owner key used by fixtures unless overridden.
const DefaultOwner = "owner-test"

// Section options
type SectionOption func(*domain.Section)

func WithSectionOwner(owner string) SectionOption {
	return func(s *domain.Section) {
		s.OwnerID = owner
	}
}

func WithSectionParent(id string) SectionOption {
	return func(s *domain.Section) {
		s.ParentID = &id
	}
}

func WithSectionSummary(summary string) SectionOption {
	return func(s *domain.Section) {
		s.Summary = summary
	}
}

func WithSectionOrder(i int) SectionOption {
	return func(s *domain.Section) {
		s.OrderIndex = i
	}
}

func NewTestSection(title string, opts ...SectionOption) *domain.Section {
	now := time.Now().UTC()
	s := &domain.Section{
		ID:        uuid.New().String(),
		OwnerID:   DefaultOwner,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Phase options
type PhaseOption func(*domain.Phase)

func WithPhaseOwner(owner string) PhaseOption {
	return func(p *domain.Phase) {
		p.OwnerID = owner
	}
}

func WithPhaseOrder(i int) PhaseOption {
	return func(p *domain.Phase) {
		p.OrderIndex = i
	}
}

func WithPhaseStart(d time.Time) PhaseOption {
	return func(p *domain.Phase) {
		p.StartDate = &d
	}
}

func WithPhaseDeadline(d time.Time) PhaseOption {
	return func(p *domain.Phase) {
		p.Deadline = &d
	}
}

func NewTestPhase(title string, opts ...PhaseOption) *domain.Phase {
	now := time.Now().UTC()
	p := &domain.Phase{
		ID:        uuid.New().String(),
		OwnerID:   DefaultOwner,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Task options
type TaskOption func(*domain.Task)

func WithTaskOwner(owner string) TaskOption {
	return func(t *domain.Task) {
		t.OwnerID = owner
	}
}

func WithTaskCompleted() TaskOption {
	return func(t *domain.Task) {
		t.Completed = true
	}
}

func WithTaskOrder(i int) TaskOption {
	return func(t *domain.Task) {
		t.OrderIndex = i
	}
}

func NewTestTask(phaseID, description string, opts ...TaskOption) *domain.Task {
	now := time.Now().UTC()
	task := &domain.Task{
		ID:          uuid.New().String(),
		OwnerID:     DefaultOwner,
		PhaseID:     phaseID,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, opt := range opts {
		opt(task)
	}
	return task
}
