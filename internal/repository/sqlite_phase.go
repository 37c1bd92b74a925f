package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/avermeer/scribe/internal/db"
	"github.com/avermeer/scribe/internal/domain"
)

// phaseColumns is the canonical SELECT column list for phases.
const phaseColumns = `id, owner_id, title, order_index, start_date, end_date, deadline,
		created_at, updated_at`

// SQLitePhaseRepo implements PhaseRepo using a SQLite database.
type SQLitePhaseRepo struct {
	db db.DBTX
}

// NewSQLitePhaseRepo creates a new SQLitePhaseRepo.
func NewSQLitePhaseRepo(conn db.DBTX) *SQLitePhaseRepo {
	return &SQLitePhaseRepo{db: conn}
}

func (r *SQLitePhaseRepo) Create(ctx context.Context, p *domain.Phase) error {
	query := `INSERT INTO phases (id, owner_id, title, order_index, start_date, end_date, deadline, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.OwnerID,
		p.Title,
		p.OrderIndex,
		nullableTimeToString(p.StartDate, dateLayout),
		nullableTimeToString(p.EndDate, dateLayout),
		nullableTimeToString(p.Deadline, dateLayout),
		p.CreatedAt.Format(time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting phase: %w", err)
	}
	return nil
}

func (r *SQLitePhaseRepo) GetByID(ctx context.Context, ownerID, id string) (*domain.Phase, error) {
	query := `SELECT ` + phaseColumns + ` FROM phases WHERE owner_id = ? AND id = ?`
	row := r.db.QueryRowContext(ctx, query, ownerID, id)
	return r.scanPhase(row)
}

func (r *SQLitePhaseRepo) GetByTitle(ctx context.Context, ownerID, title string) (*domain.Phase, error) {
	query := `SELECT ` + phaseColumns + ` FROM phases WHERE owner_id = ? AND title = ? ORDER BY order_index LIMIT 1`
	row := r.db.QueryRowContext(ctx, query, ownerID, title)
	return r.scanPhase(row)
}

func (r *SQLitePhaseRepo) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Phase, error) {
	query := `SELECT ` + phaseColumns + ` FROM phases WHERE owner_id = ? ORDER BY order_index`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing phases by owner: %w", err)
	}
	defer rows.Close()

	var phases []*domain.Phase
	for rows.Next() {
		var p domain.Phase
		var startStr, endStr, deadlineStr sql.NullString
		var createdAtStr, updatedAtStr string
		err := rows.Scan(&p.ID, &p.OwnerID, &p.Title, &p.OrderIndex,
			&startStr, &endStr, &deadlineStr, &createdAtStr, &updatedAtStr)
		if err != nil {
			return nil, fmt.Errorf("scanning phase row: %w", err)
		}
		ph, err := r.populatePhase(&p, startStr, endStr, deadlineStr, createdAtStr, updatedAtStr)
		if err != nil {
			return nil, err
		}
		phases = append(phases, ph)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating phases: %w", err)
	}
	return phases, nil
}

func (r *SQLitePhaseRepo) Delete(ctx context.Context, ownerID, id string) error {
	query := `DELETE FROM phases WHERE owner_id = ? AND id = ?`
	res, err := r.db.ExecContext(ctx, query, ownerID, id)
	if err != nil {
		return fmt.Errorf("deleting phase: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting phase: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("phase: %w", ErrNotFound)
	}
	return nil
}

func (r *SQLitePhaseRepo) DeleteByOwner(ctx context.Context, ownerID string) error {
	query := `DELETE FROM phases WHERE owner_id = ?`
	if _, err := r.db.ExecContext(ctx, query, ownerID); err != nil {
		return fmt.Errorf("deleting phases by owner: %w", err)
	}
	return nil
}

// scanPhase scans a single phase from a *sql.Row.
func (r *SQLitePhaseRepo) scanPhase(row *sql.Row) (*domain.Phase, error) {
	var p domain.Phase
	var startStr, endStr, deadlineStr sql.NullString
	var createdAtStr, updatedAtStr string

	err := row.Scan(&p.ID, &p.OwnerID, &p.Title, &p.OrderIndex,
		&startStr, &endStr, &deadlineStr, &createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("phase: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning phase: %w", err)
	}
	return r.populatePhase(&p, startStr, endStr, deadlineStr, createdAtStr, updatedAtStr)
}

// populatePhase fills in parsed fields on a Phase after scanning raw strings.
func (r *SQLitePhaseRepo) populatePhase(p *domain.Phase, startStr, endStr, deadlineStr sql.NullString, createdAtStr, updatedAtStr string) (*domain.Phase, error) {
	p.StartDate = parseNullableTime(startStr, dateLayout)
	p.EndDate = parseNullableTime(endStr, dateLayout)
	p.Deadline = parseNullableTime(deadlineStr, dateLayout)

	var parseErr error
	p.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	p.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return p, nil
}
