package cli

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadedBoard(t *testing.T) (*boardModel, *App) {
	t.Helper()
	app := testApp(t)
	path := writePlanFile(t, samplePlan)
	_, err := executeCmd(t, app, "timeline", "load", path)
	require.NoError(t, err)

	model := newBoardModel(app, "owner-test")
	msg := model.Init()()
	updated, _ := model.Update(msg)
	return updated.(*boardModel), app
}

func TestBoardModel_LoadsRows(t *testing.T) {
	model, _ := loadedBoard(t)

	require.NoError(t, model.err)
	assert.False(t, model.loading)
	// 2 phases, 2 tasks under the first.
	require.Len(t, model.rows, 4)
	assert.True(t, model.rows[0].isPhase)
	assert.False(t, model.rows[1].isPhase)
	assert.Equal(t, "collect papers", model.rows[1].task.Description)
}

func TestBoardModel_Navigation(t *testing.T) {
	model, _ := loadedBoard(t)

	updated, _ := model.Update(tea.KeyMsg{Type: tea.KeyDown})
	model = updated.(*boardModel)
	assert.Equal(t, 1, model.cursor)

	updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyUp})
	model = updated.(*boardModel)
	assert.Equal(t, 0, model.cursor)

	// Up at the top stays put.
	updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyUp})
	model = updated.(*boardModel)
	assert.Equal(t, 0, model.cursor)
}

func TestBoardModel_ToggleTask(t *testing.T) {
	model, app := loadedBoard(t)

	// Move onto the "annotate" task and toggle it.
	model.cursor = 2
	cmd := model.toggleCurrent()
	require.NotNil(t, cmd)

	msg := cmd()
	toggled, ok := msg.(taskToggledMsg)
	require.True(t, ok)
	require.NoError(t, toggled.err)

	phases, err := app.Timeline.GetPhases(context.Background(), "owner-test")
	require.NoError(t, err)
	assert.True(t, phases[0].Tasks[1].Completed)
}

func TestBoardModel_ToggleOnPhaseRowIsNoop(t *testing.T) {
	model, _ := loadedBoard(t)

	model.cursor = 0
	assert.Nil(t, model.toggleCurrent())
}

func TestBoardModel_QuitKey(t *testing.T) {
	model, _ := loadedBoard(t)

	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestBoardModel_ViewRendersPhasesAndTasks(t *testing.T) {
	model, _ := loadedBoard(t)

	view := model.View()
	assert.Contains(t, view, "TIMELINE BOARD")
	assert.Contains(t, view, "Literature Review")
	assert.Contains(t, view, "collect papers")
	assert.Contains(t, view, "toggle task")
}
