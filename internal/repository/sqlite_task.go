package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/avermeer/scribe/internal/db"
	"github.com/avermeer/scribe/internal/domain"
)

// taskColumns is the canonical SELECT column list for tasks.
const taskColumns = `id, owner_id, phase_id, description, completed, order_index,
		created_at, updated_at`

// SQLiteTaskRepo implements TaskRepo using a SQLite database.
type SQLiteTaskRepo struct {
	db db.DBTX
}

// NewSQLiteTaskRepo creates a new SQLiteTaskRepo.
func NewSQLiteTaskRepo(conn db.DBTX) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: conn}
}

func (r *SQLiteTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	query := `INSERT INTO tasks (id, owner_id, phase_id, description, completed, order_index, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.OwnerID,
		t.PhaseID,
		t.Description,
		boolToInt(t.Completed),
		t.OrderIndex,
		t.CreatedAt.Format(time.RFC3339),
		t.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	return nil
}

// GetByPhase fetches a task by id scoped to both its phase and owner. A task
// that exists under another phase or owner is reported as not found.
func (r *SQLiteTaskRepo) GetByPhase(ctx context.Context, ownerID, phaseID, taskID string) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE owner_id = ? AND phase_id = ? AND id = ?`
	row := r.db.QueryRowContext(ctx, query, ownerID, phaseID, taskID)

	var t domain.Task
	var completedInt int
	var createdAtStr, updatedAtStr string
	err := row.Scan(&t.ID, &t.OwnerID, &t.PhaseID, &t.Description, &completedInt, &t.OrderIndex,
		&createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("task: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning task: %w", err)
	}
	t.Completed = intToBool(completedInt)
	return r.populateTask(&t, createdAtStr, updatedAtStr)
}

func (r *SQLiteTaskRepo) ListByPhase(ctx context.Context, ownerID, phaseID string) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE owner_id = ? AND phase_id = ? ORDER BY order_index`
	rows, err := r.db.QueryContext(ctx, query, ownerID, phaseID)
	if err != nil {
		return nil, fmt.Errorf("listing tasks by phase: %w", err)
	}
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		var t domain.Task
		var completedInt int
		var createdAtStr, updatedAtStr string
		err := rows.Scan(&t.ID, &t.OwnerID, &t.PhaseID, &t.Description, &completedInt, &t.OrderIndex,
			&createdAtStr, &updatedAtStr)
		if err != nil {
			return nil, fmt.Errorf("scanning task row: %w", err)
		}
		t.Completed = intToBool(completedInt)
		task, err := r.populateTask(&t, createdAtStr, updatedAtStr)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return tasks, nil
}

func (r *SQLiteTaskRepo) CountByPhase(ctx context.Context, ownerID, phaseID string) (int, error) {
	query := `SELECT COUNT(*) FROM tasks WHERE owner_id = ? AND phase_id = ?`
	var n int
	if err := r.db.QueryRowContext(ctx, query, ownerID, phaseID).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting tasks: %w", err)
	}
	return n, nil
}

func (r *SQLiteTaskRepo) Update(ctx context.Context, t *domain.Task) error {
	query := `UPDATE tasks SET description = ?, completed = ?, order_index = ?, updated_at = ?
		WHERE owner_id = ? AND id = ?`
	res, err := r.db.ExecContext(ctx, query,
		t.Description,
		boolToInt(t.Completed),
		t.OrderIndex,
		t.UpdatedAt.Format(time.RFC3339),
		t.OwnerID,
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("task: %w", ErrNotFound)
	}
	return nil
}

func (r *SQLiteTaskRepo) DeleteByOwner(ctx context.Context, ownerID string) error {
	query := `DELETE FROM tasks WHERE owner_id = ?`
	if _, err := r.db.ExecContext(ctx, query, ownerID); err != nil {
		return fmt.Errorf("deleting tasks by owner: %w", err)
	}
	return nil
}

// populateTask fills in parsed timestamp fields on a Task.
func (r *SQLiteTaskRepo) populateTask(t *domain.Task, createdAtStr, updatedAtStr string) (*domain.Task, error) {
	var parseErr error
	t.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	t.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return t, nil
}
