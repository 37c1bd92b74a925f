package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func datePtr(s string) *time.Time {
	d := date(s)
	return &d
}

func TestComputeProgress_PctComplete(t *testing.T) {
	today := date("2025-06-01")

	p := ComputeProgress(0, 0, nil, nil, today)
	assert.Equal(t, 0.0, p.PctComplete)

	p = ComputeProgress(2, 1, nil, nil, today)
	assert.Equal(t, 50.0, p.PctComplete)

	// Rounded to one decimal.
	p = ComputeProgress(3, 1, nil, nil, today)
	assert.Equal(t, 33.3, p.PctComplete)
}

func TestComputeProgress_NoDeadline(t *testing.T) {
	today := date("2025-06-01")

	p := ComputeProgress(2, 2, nil, nil, today)
	assert.Equal(t, StatusCompleted, p.Status)
	assert.Nil(t, p.DaysLeft)

	p = ComputeProgress(2, 1, nil, nil, today)
	assert.Equal(t, StatusOnTrack, p.Status)

	// An empty phase with no deadline is on track, not completed.
	p = ComputeProgress(0, 0, nil, nil, today)
	assert.Equal(t, StatusOnTrack, p.Status)
}

func TestComputeProgress_Overdue(t *testing.T) {
	p := ComputeProgress(2, 1, nil, datePtr("2025-01-01"), date("2025-02-01"))
	assert.Equal(t, StatusOverdue, p.Status)
	require.NotNil(t, p.DaysLeft)
	assert.Equal(t, -31, *p.DaysLeft)
}

func TestComputeProgress_CompletedBeforeDeadline(t *testing.T) {
	p := ComputeProgress(2, 2, nil, datePtr("2025-01-10"), date("2025-01-05"))
	assert.Equal(t, StatusCompleted, p.Status)

	// Completion on the deadline day still counts.
	p = ComputeProgress(2, 2, nil, datePtr("2025-01-10"), date("2025-01-10"))
	assert.Equal(t, StatusCompleted, p.Status)
}

func TestComputeProgress_TimeRatio(t *testing.T) {
	start := datePtr("2025-01-01")
	deadline := datePtr("2025-01-11") // duration 10
	today := date("2025-01-09")       // days_left 2, time_ratio 0.8

	p := ComputeProgress(2, 1, start, deadline, today) // progress_ratio 0.5
	assert.Equal(t, StatusAtRisk, p.Status)

	p = ComputeProgress(10, 9, start, deadline, today) // progress_ratio 0.9
	assert.Equal(t, StatusOnTrack, p.Status)
}

func TestComputeProgress_DeadlineWithoutStart(t *testing.T) {
	p := ComputeProgress(4, 1, nil, datePtr("2025-03-01"), date("2025-02-01"))
	assert.Equal(t, StatusOnTrack, p.Status)
	require.NotNil(t, p.DaysLeft)
	assert.Equal(t, 28, *p.DaysLeft)
}

func TestComputeProgress_ZeroDurationClamped(t *testing.T) {
	// start == deadline: duration clamps to 1 rather than dividing by zero.
	day := datePtr("2025-01-05")
	p := ComputeProgress(2, 1, day, day, date("2025-01-05"))
	assert.Equal(t, StatusAtRisk, p.Status) // time_ratio 1.0 > 0.5
}

func TestDateOnly(t *testing.T) {
	ts := time.Date(2025, 6, 1, 17, 45, 12, 0, time.UTC)
	assert.Equal(t, date("2025-06-01"), DateOnly(ts))
}
