package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/avermeer/scribe/internal/contract"
	"github.com/avermeer/scribe/internal/db"
	"github.com/avermeer/scribe/internal/domain"
	"github.com/avermeer/scribe/internal/repository"
	"github.com/google/uuid"
)

// outlineCompletePhase is the phase that receives the outline milestone task.
const outlineCompletePhase = "Methodology / Structural Planning"

// outlineCompleteTask marks the outline milestone inside that phase.
const outlineCompleteTask = "Outline Complete"

type timelineService struct {
	phases repository.PhaseRepo
	tasks  repository.TaskRepo
	uow    db.UnitOfWork
	locks  *OwnerLocks
	clock  Clock
}

// NewTimelineService creates the timeline service. The clock supplies the
// current date for progress decoration and is pinned in tests.
func NewTimelineService(phases repository.PhaseRepo, tasks repository.TaskRepo, uow db.UnitOfWork, locks *OwnerLocks, clock Clock) TimelineService {
	return &timelineService{phases: phases, tasks: tasks, uow: uow, locks: locks, clock: clock}
}

func (s *timelineService) ReplacePhases(ctx context.Context, owner string, specs []contract.PhaseSpec) ([]contract.PhaseView, error) {
	parsed, err := parsePhaseSpecs(specs)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(owner)
	defer unlock()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPhases := repository.NewSQLitePhaseRepo(tx)
		txTasks := repository.NewSQLiteTaskRepo(tx)

		// Phase deletion cascades to tasks at the schema level.
		if err := txPhases.DeleteByOwner(ctx, owner); err != nil {
			return err
		}

		now := time.Now().UTC()
		for i, ph := range parsed {
			phase := &domain.Phase{
				ID:         uuid.New().String(),
				OwnerID:    owner,
				Title:      ph.title,
				OrderIndex: i,
				StartDate:  ph.start,
				EndDate:    ph.end,
				Deadline:   ph.deadline,
				CreatedAt:  now,
				UpdatedAt:  now,
			}
			if err := txPhases.Create(ctx, phase); err != nil {
				return err
			}
			for j, t := range ph.tasks {
				task := &domain.Task{
					ID:          uuid.New().String(),
					OwnerID:     owner,
					PhaseID:     phase.ID,
					Description: t.Description,
					Completed:   t.Completed,
					OrderIndex:  j,
					CreatedAt:   now,
					UpdatedAt:   now,
				}
				if err := txTasks.Create(ctx, task); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("replacing timeline: %w", err)
	}

	return s.GetPhases(ctx, owner)
}

// parsedPhase is a PhaseSpec with its date strings resolved.
type parsedPhase struct {
	title                string
	start, end, deadline *time.Time
	tasks                []contract.TaskSpec
}

func parsePhaseSpecs(specs []contract.PhaseSpec) ([]parsedPhase, error) {
	parsed := make([]parsedPhase, 0, len(specs))
	for i, spec := range specs {
		field := fmt.Sprintf("timeline[%d]", i)
		if strings.TrimSpace(spec.Title) == "" {
			return nil, validationErrorf(field+".title", "title is required")
		}
		for j, t := range spec.Tasks {
			if strings.TrimSpace(t.Description) == "" {
				return nil, validationErrorf(fmt.Sprintf("%s.tasks[%d].description", field, j), "description is required")
			}
		}
		start, err := parseDate(field+".start_date", spec.StartDate)
		if err != nil {
			return nil, err
		}
		end, err := parseDate(field+".end_date", spec.EndDate)
		if err != nil {
			return nil, err
		}
		deadline, err := parseDate(field+".deadline", spec.Deadline)
		if err != nil {
			return nil, err
		}
		parsed = append(parsed, parsedPhase{
			title:    spec.Title,
			start:    start,
			end:      end,
			deadline: deadline,
			tasks:    spec.Tasks,
		})
	}
	return parsed, nil
}

func parseDate(field string, s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil, validationErrorf(field, "invalid date %q, want YYYY-MM-DD", *s)
	}
	return &t, nil
}

func (s *timelineService) GetPhases(ctx context.Context, owner string) ([]contract.PhaseView, error) {
	phases, err := s.phases.ListByOwner(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("loading timeline: %w", err)
	}

	today := domain.DateOnly(s.clock())
	views := make([]contract.PhaseView, 0, len(phases))
	for _, phase := range phases {
		tasks, err := s.tasks.ListByPhase(ctx, owner, phase.ID)
		if err != nil {
			return nil, fmt.Errorf("loading tasks for phase %s: %w", phase.ID, err)
		}
		views = append(views, buildPhaseView(phase, tasks, today))
	}
	return views, nil
}

func buildPhaseView(phase *domain.Phase, tasks []*domain.Task, today time.Time) contract.PhaseView {
	completed := 0
	taskViews := make([]contract.TaskView, 0, len(tasks))
	for _, t := range tasks {
		if t.Completed {
			completed++
		}
		taskViews = append(taskViews, contract.TaskView{
			ID:          t.ID,
			Description: t.Description,
			Completed:   t.Completed,
		})
	}

	prog := domain.ComputeProgress(len(tasks), completed, phase.StartDate, phase.Deadline, today)

	return contract.PhaseView{
		ID:             phase.ID,
		Title:          phase.Title,
		Order:          phase.OrderIndex,
		StartDate:      formatDate(phase.StartDate),
		EndDate:        formatDate(phase.EndDate),
		Deadline:       formatDate(phase.Deadline),
		TotalTasks:     prog.TotalTasks,
		CompletedTasks: prog.CompletedTasks,
		PctComplete:    prog.PctComplete,
		DaysLeft:       prog.DaysLeft,
		Status:         prog.Status,
		Tasks:          taskViews,
	}
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}

func (s *timelineService) ToggleTask(ctx context.Context, owner, phaseID, taskID string) (*contract.TaskView, error) {
	unlock := s.locks.Lock(owner)
	defer unlock()

	var view contract.TaskView
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTasks := repository.NewSQLiteTaskRepo(tx)
		task, err := txTasks.GetByPhase(ctx, owner, phaseID, taskID)
		if err != nil {
			return err
		}
		task.Completed = !task.Completed
		task.UpdatedAt = time.Now().UTC()
		if err := txTasks.Update(ctx, task); err != nil {
			return err
		}
		view = contract.TaskView{ID: task.ID, Description: task.Description, Completed: task.Completed}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &view, nil
}

func (s *timelineService) DeletePhase(ctx context.Context, owner, phaseID string) error {
	unlock := s.locks.Lock(owner)
	defer unlock()
	return s.phases.Delete(ctx, owner, phaseID)
}

// MarkOutlineComplete appends a completed milestone task to the structural
// planning phase. A missing phase or an existing milestone makes this a
// no-op, so the operation is idempotent.
func (s *timelineService) MarkOutlineComplete(ctx context.Context, owner string) error {
	unlock := s.locks.Lock(owner)
	defer unlock()

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPhases := repository.NewSQLitePhaseRepo(tx)
		txTasks := repository.NewSQLiteTaskRepo(tx)

		phase, err := txPhases.GetByTitle(ctx, owner, outlineCompletePhase)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil
			}
			return err
		}

		tasks, err := txTasks.ListByPhase(ctx, owner, phase.ID)
		if err != nil {
			return err
		}
		for _, t := range tasks {
			if t.Description == outlineCompleteTask {
				return nil
			}
		}

		now := time.Now().UTC()
		return txTasks.Create(ctx, &domain.Task{
			ID:          uuid.New().String(),
			OwnerID:     owner,
			PhaseID:     phase.ID,
			Description: outlineCompleteTask,
			Completed:   true,
			OrderIndex:  len(tasks),
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	})
}
