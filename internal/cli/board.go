package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/avermeer/scribe/internal/cli/formatter"
	"github.com/avermeer/scribe/internal/contract"
)

func newBoardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Interactive timeline board",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("board requires an interactive terminal")
			}
			owner, err := app.owner(cmd.Context())
			if err != nil {
				return err
			}
			model := newBoardModel(app, owner)
			_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
			return err
		},
	}
}

// boardRow is a flattened row: either a phase header or one of its tasks.
type boardRow struct {
	isPhase bool
	phaseID string
	taskID  string
	phase   contract.PhaseView
	task    contract.TaskView
}

type boardLoadedMsg struct {
	rows []boardRow
	err  error
}

type taskToggledMsg struct{ err error }

type boardKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Reload key.Binding
	Quit   key.Binding
}

var boardKeys = boardKeyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Toggle: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle task")),
	Reload: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

// boardModel drives the interactive timeline board.
type boardModel struct {
	app     *App
	owner   string
	rows    []boardRow
	cursor  int
	loading bool
	err     error
}

func newBoardModel(app *App, owner string) *boardModel {
	return &boardModel{app: app, owner: owner, loading: true}
}

func (m *boardModel) Init() tea.Cmd {
	return m.loadBoard()
}

func (m *boardModel) loadBoard() tea.Cmd {
	app, owner := m.app, m.owner
	return func() tea.Msg {
		phases, err := app.Timeline.GetPhases(context.Background(), owner)
		if err != nil {
			return boardLoadedMsg{err: err}
		}
		return boardLoadedMsg{rows: flattenPhases(phases)}
	}
}

func flattenPhases(phases []contract.PhaseView) []boardRow {
	var rows []boardRow
	for _, p := range phases {
		rows = append(rows, boardRow{isPhase: true, phaseID: p.ID, phase: p})
		for _, t := range p.Tasks {
			rows = append(rows, boardRow{phaseID: p.ID, taskID: t.ID, task: t})
		}
	}
	return rows
}

func (m *boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case boardLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.rows = msg.rows
			if m.cursor >= len(m.rows) {
				m.cursor = max(0, len(m.rows)-1)
			}
		}
		return m, nil

	case taskToggledMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		return m, m.loadBoard()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, boardKeys.Quit):
			return m, tea.Quit
		case key.Matches(msg, boardKeys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, boardKeys.Down):
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
		case key.Matches(msg, boardKeys.Reload):
			m.loading = true
			return m, m.loadBoard()
		case key.Matches(msg, boardKeys.Toggle):
			return m, m.toggleCurrent()
		}
	}
	return m, nil
}

func (m *boardModel) toggleCurrent() tea.Cmd {
	if m.cursor >= len(m.rows) {
		return nil
	}
	row := m.rows[m.cursor]
	if row.isPhase {
		return nil
	}
	app, owner := m.app, m.owner
	return func() tea.Msg {
		_, err := app.Timeline.ToggleTask(context.Background(), owner, row.phaseID, row.taskID)
		return taskToggledMsg{err: err}
	}
}

func (m *boardModel) View() string {
	var b strings.Builder
	b.WriteString(formatter.Header("Timeline Board") + "\n\n")

	switch {
	case m.loading:
		b.WriteString(formatter.Dim("Loading...") + "\n")
	case m.err != nil:
		b.WriteString(formatter.StyleRed.Render("Error: "+m.err.Error()) + "\n")
	case len(m.rows) == 0:
		b.WriteString(formatter.Dim("No phases. Load a timeline first.") + "\n")
	default:
		for i, row := range m.rows {
			b.WriteString(m.renderRow(i, row) + "\n")
		}
	}

	b.WriteString("\n" + helpLine())
	return b.String()
}

func (m *boardModel) renderRow(idx int, row boardRow) string {
	cursor := "  "
	if idx == m.cursor {
		cursor = formatter.StyleHeader.Render("> ")
	}

	if row.isPhase {
		p := row.phase
		return fmt.Sprintf("%s%s  %s  %s  %s",
			cursor,
			formatter.Bold(p.Title),
			formatter.RenderProgress(p.PctComplete, 10),
			formatter.StatusIndicator(p.Status),
			formatter.DaysLeftLabel(p.DaysLeft),
		)
	}

	box := "[ ]"
	desc := row.task.Description
	if row.task.Completed {
		box = formatter.StyleGreen.Render("[x]")
		desc = formatter.Dim(desc)
	}
	return fmt.Sprintf("%s    %s %s", cursor, box, desc)
}

func helpLine() string {
	bindings := []key.Binding{boardKeys.Up, boardKeys.Down, boardKeys.Toggle, boardKeys.Reload, boardKeys.Quit}
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		parts = append(parts, fmt.Sprintf("%s %s", b.Help().Key, formatter.Dim(b.Help().Desc)))
	}
	return formatter.Dim(strings.Join(parts, "  ·  "))
}
