package repository

import (
	"context"

	"github.com/avermeer/scribe/internal/domain"
)

// Every read and write below is filtered by the owner key. An id that exists
// under a different owner behaves exactly like an absent id.

type SectionRepo interface {
	Create(ctx context.Context, s *domain.Section) error
	GetByID(ctx context.Context, ownerID, id string) (*domain.Section, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Section, error)
	ListRoots(ctx context.Context, ownerID string) ([]*domain.Section, error)
	ListChildren(ctx context.Context, ownerID, parentID string) ([]*domain.Section, error)
	Update(ctx context.Context, s *domain.Section) error
	Delete(ctx context.Context, ownerID, id string) error
	DeleteByOwner(ctx context.Context, ownerID string) error
}

type PhaseRepo interface {
	Create(ctx context.Context, p *domain.Phase) error
	GetByID(ctx context.Context, ownerID, id string) (*domain.Phase, error)
	GetByTitle(ctx context.Context, ownerID, title string) (*domain.Phase, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Phase, error)
	Delete(ctx context.Context, ownerID, id string) error
	DeleteByOwner(ctx context.Context, ownerID string) error
}

type TaskRepo interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByPhase(ctx context.Context, ownerID, phaseID, taskID string) (*domain.Task, error)
	ListByPhase(ctx context.Context, ownerID, phaseID string) ([]*domain.Task, error)
	CountByPhase(ctx context.Context, ownerID, phaseID string) (int, error)
	Update(ctx context.Context, t *domain.Task) error
	DeleteByOwner(ctx context.Context, ownerID string) error
}
