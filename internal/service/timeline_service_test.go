package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avermeer/scribe/internal/contract"
	"github.com/avermeer/scribe/internal/domain"
	"github.com/avermeer/scribe/internal/repository"
	"github.com/avermeer/scribe/internal/testutil"
)

// fixedClock pins the timeline service to a known date.
func fixedClock(s string) Clock {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return t }
}

func setupTimelineService(t *testing.T, clock Clock) (TimelineService, *sql.DB) {
	t.Helper()
	database := testutil.NewTestDB(t)
	svc := NewTimelineService(
		repository.NewSQLitePhaseRepo(database),
		repository.NewSQLiteTaskRepo(database),
		testutil.NewTestUoW(database),
		NewOwnerLocks(),
		clock,
	)
	return svc, database
}

func strPtr(s string) *string { return &s }

func sampleTimeline() []contract.PhaseSpec {
	return []contract.PhaseSpec{
		{
			Title:     "Literature Review",
			StartDate: strPtr("2025-08-01"),
			EndDate:   strPtr("2025-08-10"),
			Deadline:  strPtr("2025-08-15"),
			Tasks: []contract.TaskSpec{
				{Description: "Collect papers", Completed: true},
				{Description: "Write summary"},
			},
		},
		{Title: "Methodology / Structural Planning"},
	}
}

func TestTimelineService_ReplaceAndGet(t *testing.T) {
	svc, _ := setupTimelineService(t, fixedClock("2025-08-05"))
	ctx := context.Background()

	phases, err := svc.ReplacePhases(ctx, testOwner, sampleTimeline())
	require.NoError(t, err)
	require.Len(t, phases, 2)

	first := phases[0]
	assert.Equal(t, "Literature Review", first.Title)
	assert.Equal(t, 0, first.Order)
	require.NotNil(t, first.StartDate)
	assert.Equal(t, "2025-08-01", *first.StartDate)
	require.NotNil(t, first.Deadline)
	assert.Equal(t, "2025-08-15", *first.Deadline)
	require.Len(t, first.Tasks, 2)
	assert.Equal(t, "Collect papers", first.Tasks[0].Description)
	assert.True(t, first.Tasks[0].Completed)
	assert.Equal(t, 2, first.TotalTasks)
	assert.Equal(t, 1, first.CompletedTasks)
	assert.Equal(t, 50.0, first.PctComplete)

	second := phases[1]
	assert.Equal(t, 1, second.Order)
	assert.Nil(t, second.Deadline)
	assert.Nil(t, second.DaysLeft)
	assert.Equal(t, domain.StatusOnTrack, second.Status)
}

func TestTimelineService_ReplaceDiscardsPriorTimeline(t *testing.T) {
	svc, _ := setupTimelineService(t, fixedClock("2025-08-05"))
	ctx := context.Background()

	_, err := svc.ReplacePhases(ctx, testOwner, sampleTimeline())
	require.NoError(t, err)

	// An empty replacement clears the timeline entirely.
	phases, err := svc.ReplacePhases(ctx, testOwner, nil)
	require.NoError(t, err)
	assert.Empty(t, phases)
}

func TestTimelineService_ReplaceRejectsBadDate(t *testing.T) {
	svc, _ := setupTimelineService(t, fixedClock("2025-08-05"))

	specs := []contract.PhaseSpec{{Title: "P", Deadline: strPtr("15/08/2025")}}
	_, err := svc.ReplacePhases(context.Background(), testOwner, specs)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "timeline[0].deadline", verr.Field)
}

func TestTimelineService_ReplaceRejectsMissingFields(t *testing.T) {
	svc, _ := setupTimelineService(t, fixedClock("2025-08-05"))
	ctx := context.Background()

	var verr *ValidationError

	_, err := svc.ReplacePhases(ctx, testOwner, []contract.PhaseSpec{{Title: " "}})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "timeline[0].title", verr.Field)

	_, err = svc.ReplacePhases(ctx, testOwner, []contract.PhaseSpec{
		{Title: "P", Tasks: []contract.TaskSpec{{Description: ""}}},
	})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "timeline[0].tasks[0].description", verr.Field)
}

func TestTimelineService_StatusDerivation(t *testing.T) {
	ctx := context.Background()

	// Overdue: deadline passed with work remaining.
	svc, _ := setupTimelineService(t, fixedClock("2025-02-01"))
	phases, err := svc.ReplacePhases(ctx, testOwner, []contract.PhaseSpec{{
		Title:    "Late",
		Deadline: strPtr("2025-01-01"),
		Tasks: []contract.TaskSpec{
			{Description: "a", Completed: true},
			{Description: "b"},
		},
	}})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusOverdue, phases[0].Status)
	require.NotNil(t, phases[0].DaysLeft)
	assert.Equal(t, -31, *phases[0].DaysLeft)

	// AtRisk: progress ratio behind time ratio.
	svc, _ = setupTimelineService(t, fixedClock("2025-01-09"))
	phases, err = svc.ReplacePhases(ctx, testOwner, []contract.PhaseSpec{{
		Title:     "Slipping",
		StartDate: strPtr("2025-01-01"),
		Deadline:  strPtr("2025-01-11"),
		Tasks: []contract.TaskSpec{
			{Description: "a", Completed: true},
			{Description: "b"},
		},
	}})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAtRisk, phases[0].Status)
}

func TestTimelineService_StatusChangesAsTodayAdvances(t *testing.T) {
	// Same stored phase, different current date, different status.
	database := testutil.NewTestDB(t)
	phaseRepo := repository.NewSQLitePhaseRepo(database)
	taskRepo := repository.NewSQLiteTaskRepo(database)
	uow := testutil.NewTestUoW(database)
	locks := NewOwnerLocks()

	before := NewTimelineService(phaseRepo, taskRepo, uow, locks, fixedClock("2025-01-02"))
	after := NewTimelineService(phaseRepo, taskRepo, uow, locks, fixedClock("2025-02-01"))

	ctx := context.Background()
	_, err := before.ReplacePhases(ctx, testOwner, []contract.PhaseSpec{{
		Title:    "Shifting",
		Deadline: strPtr("2025-01-10"),
		Tasks:    []contract.TaskSpec{{Description: "a"}},
	}})
	require.NoError(t, err)

	phases, err := before.GetPhases(ctx, testOwner)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusOnTrack, phases[0].Status)

	phases, err = after.GetPhases(ctx, testOwner)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusOverdue, phases[0].Status)
}

func TestTimelineService_ToggleTask(t *testing.T) {
	svc, _ := setupTimelineService(t, fixedClock("2025-08-05"))
	ctx := context.Background()

	phases, err := svc.ReplacePhases(ctx, testOwner, sampleTimeline())
	require.NoError(t, err)

	phase := phases[0]
	task := phase.Tasks[1]

	toggled, err := svc.ToggleTask(ctx, testOwner, phase.ID, task.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Completed)

	// Toggle back.
	toggled, err = svc.ToggleTask(ctx, testOwner, phase.ID, task.ID)
	require.NoError(t, err)
	assert.False(t, toggled.Completed)
}

func TestTimelineService_ToggleTask_NotFound(t *testing.T) {
	svc, _ := setupTimelineService(t, fixedClock("2025-08-05"))
	ctx := context.Background()

	phases, err := svc.ReplacePhases(ctx, testOwner, sampleTimeline())
	require.NoError(t, err)
	phase := phases[0]
	task := phase.Tasks[0]
	otherPhase := phases[1]

	// Absent task, task under a different phase, and foreign owner are
	// indistinguishable.
	_, err = svc.ToggleTask(ctx, testOwner, phase.ID, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = svc.ToggleTask(ctx, testOwner, otherPhase.ID, task.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = svc.ToggleTask(ctx, "someone-else", phase.ID, task.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTimelineService_DeletePhase(t *testing.T) {
	svc, database := setupTimelineService(t, fixedClock("2025-08-05"))
	ctx := context.Background()

	phases, err := svc.ReplacePhases(ctx, testOwner, sampleTimeline())
	require.NoError(t, err)

	require.NoError(t, svc.DeletePhase(ctx, testOwner, phases[0].ID))
	assert.ErrorIs(t, svc.DeletePhase(ctx, testOwner, phases[0].ID), repository.ErrNotFound)

	// Tasks went with the phase.
	n, err := repository.NewSQLiteTaskRepo(database).CountByPhase(ctx, testOwner, phases[0].ID)
	require.NoError(t, err)
	assert.Zero(t, n)

	remaining, err := svc.GetPhases(ctx, testOwner)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "Methodology / Structural Planning", remaining[0].Title)
}

func TestTimelineService_MarkOutlineComplete(t *testing.T) {
	svc, _ := setupTimelineService(t, fixedClock("2025-08-05"))
	ctx := context.Background()

	_, err := svc.ReplacePhases(ctx, testOwner, sampleTimeline())
	require.NoError(t, err)

	require.NoError(t, svc.MarkOutlineComplete(ctx, testOwner))

	phases, err := svc.GetPhases(ctx, testOwner)
	require.NoError(t, err)
	methodology := phases[1]
	require.Len(t, methodology.Tasks, 1)
	assert.Equal(t, "Outline Complete", methodology.Tasks[0].Description)
	assert.True(t, methodology.Tasks[0].Completed)
	assert.Equal(t, domain.StatusCompleted, methodology.Status)

	// Second call does not duplicate the milestone.
	require.NoError(t, svc.MarkOutlineComplete(ctx, testOwner))
	phases, err = svc.GetPhases(ctx, testOwner)
	require.NoError(t, err)
	assert.Len(t, phases[1].Tasks, 1)
}

func TestTimelineService_MarkOutlineComplete_NoPhase(t *testing.T) {
	svc, _ := setupTimelineService(t, fixedClock("2025-08-05"))
	ctx := context.Background()

	_, err := svc.ReplacePhases(ctx, testOwner, []contract.PhaseSpec{{Title: "Unrelated"}})
	require.NoError(t, err)

	// No structural planning phase: silently a no-op.
	require.NoError(t, svc.MarkOutlineComplete(ctx, testOwner))

	phases, err := svc.GetPhases(ctx, testOwner)
	require.NoError(t, err)
	assert.Empty(t, phases[0].Tasks)
}

func TestTimelineService_OwnerIsolation(t *testing.T) {
	svc, _ := setupTimelineService(t, fixedClock("2025-08-05"))
	ctx := context.Background()

	mine, err := svc.ReplacePhases(ctx, "owner-a", sampleTimeline())
	require.NoError(t, err)
	_, err = svc.ReplacePhases(ctx, "owner-b", []contract.PhaseSpec{{Title: "B's phase"}})
	require.NoError(t, err)

	_, err = svc.ToggleTask(ctx, "owner-b", mine[0].ID, mine[0].Tasks[0].ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	assert.ErrorIs(t, svc.DeletePhase(ctx, "owner-b", mine[0].ID), repository.ErrNotFound)

	got, err := svc.GetPhases(ctx, "owner-a")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestSnapshot(t *testing.T) {
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	locks := NewOwnerLocks()
	outline := NewOutlineService(repository.NewSQLiteSectionRepo(database), uow, locks)
	timeline := NewTimelineService(
		repository.NewSQLitePhaseRepo(database),
		repository.NewSQLiteTaskRepo(database),
		uow, locks, fixedClock("2025-08-05"),
	)

	ctx := context.Background()
	_, err := outline.ReplaceTree(ctx, testOwner, []contract.SectionSpec{{Title: "Intro"}})
	require.NoError(t, err)
	_, err = timeline.ReplacePhases(ctx, testOwner, []contract.PhaseSpec{{Title: "Phase 1"}})
	require.NoError(t, err)

	view, err := Snapshot(ctx, testOwner, outline, timeline)
	require.NoError(t, err)
	require.Len(t, view.Sections, 1)
	require.Len(t, view.Timeline, 1)
	assert.Equal(t, "Intro", view.Sections[0].Title)
	assert.Equal(t, "Phase 1", view.Timeline[0].Title)
}
