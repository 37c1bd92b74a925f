package service

import (
	"context"
	"time"

	"github.com/avermeer/scribe/internal/contract"
)

// Clock supplies the current date for progress derivation. It is injected
// rather than read ambiently so tests can pin it.
type Clock func() time.Time

type OutlineService interface {
	ReplaceTree(ctx context.Context, owner string, specs []contract.SectionSpec) ([]contract.SectionNode, error)
	GetTree(ctx context.Context, owner string) ([]contract.SectionNode, error)
	GetSubtree(ctx context.Context, owner, id string) (*contract.SectionNode, error)
	CreateSection(ctx context.Context, owner string, spec contract.SectionCreate) (*contract.SectionNode, error)
	UpdateSection(ctx context.Context, owner, id string, patch contract.SectionPatch) (*contract.SectionNode, error)
	DeleteSection(ctx context.Context, owner, id string) error
}

type TimelineService interface {
	ReplacePhases(ctx context.Context, owner string, specs []contract.PhaseSpec) ([]contract.PhaseView, error)
	GetPhases(ctx context.Context, owner string) ([]contract.PhaseView, error)
	ToggleTask(ctx context.Context, owner, phaseID, taskID string) (*contract.TaskView, error)
	DeletePhase(ctx context.Context, owner, phaseID string) error
	MarkOutlineComplete(ctx context.Context, owner string) error
}

// Snapshot assembles the combined outline and timeline view.
func Snapshot(ctx context.Context, owner string, outline OutlineService, timeline TimelineService) (*contract.PlanningView, error) {
	sections, err := outline.GetTree(ctx, owner)
	if err != nil {
		return nil, err
	}
	phases, err := timeline.GetPhases(ctx, owner)
	if err != nil {
		return nil, err
	}
	return &contract.PlanningView{Sections: sections, Timeline: phases}, nil
}
