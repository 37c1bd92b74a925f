package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/avermeer/scribe/internal/db"
	"github.com/avermeer/scribe/internal/domain"
)

// sectionColumns is the canonical SELECT column list for sections.
const sectionColumns = `id, owner_id, parent_id, title, summary, order_index,
		created_at, updated_at`

// SQLiteSectionRepo implements SectionRepo using a SQLite database.
type SQLiteSectionRepo struct {
	db db.DBTX
}

// NewSQLiteSectionRepo creates a new SQLiteSectionRepo. The conn may be a
// *sql.DB or a transaction handle.
func NewSQLiteSectionRepo(conn db.DBTX) *SQLiteSectionRepo {
	return &SQLiteSectionRepo{db: conn}
}

func (r *SQLiteSectionRepo) Create(ctx context.Context, s *domain.Section) error {
	query := `INSERT INTO sections (id, owner_id, parent_id, title, summary, order_index, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.OwnerID,
		s.ParentID, // *string: nil becomes SQL NULL
		s.Title,
		s.Summary,
		s.OrderIndex,
		s.CreatedAt.Format(time.RFC3339),
		s.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting section: %w", err)
	}
	return nil
}

func (r *SQLiteSectionRepo) GetByID(ctx context.Context, ownerID, id string) (*domain.Section, error) {
	query := `SELECT ` + sectionColumns + ` FROM sections WHERE owner_id = ? AND id = ?`
	row := r.db.QueryRowContext(ctx, query, ownerID, id)
	return r.scanSection(row)
}

func (r *SQLiteSectionRepo) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Section, error) {
	query := `SELECT ` + sectionColumns + ` FROM sections WHERE owner_id = ? ORDER BY order_index`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing sections by owner: %w", err)
	}
	defer rows.Close()
	return r.scanSections(rows)
}

func (r *SQLiteSectionRepo) ListRoots(ctx context.Context, ownerID string) ([]*domain.Section, error) {
	query := `SELECT ` + sectionColumns + ` FROM sections WHERE owner_id = ? AND parent_id IS NULL ORDER BY order_index`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing root sections: %w", err)
	}
	defer rows.Close()
	return r.scanSections(rows)
}

func (r *SQLiteSectionRepo) ListChildren(ctx context.Context, ownerID, parentID string) ([]*domain.Section, error) {
	query := `SELECT ` + sectionColumns + ` FROM sections WHERE owner_id = ? AND parent_id = ? ORDER BY order_index`
	rows, err := r.db.QueryContext(ctx, query, ownerID, parentID)
	if err != nil {
		return nil, fmt.Errorf("listing child sections: %w", err)
	}
	defer rows.Close()
	return r.scanSections(rows)
}

func (r *SQLiteSectionRepo) Update(ctx context.Context, s *domain.Section) error {
	query := `UPDATE sections SET parent_id = ?, title = ?, summary = ?, order_index = ?, updated_at = ?
		WHERE owner_id = ? AND id = ?`
	res, err := r.db.ExecContext(ctx, query,
		s.ParentID,
		s.Title,
		s.Summary,
		s.OrderIndex,
		s.UpdatedAt.Format(time.RFC3339),
		s.OwnerID,
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("updating section: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating section: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("section: %w", ErrNotFound)
	}
	return nil
}

func (r *SQLiteSectionRepo) Delete(ctx context.Context, ownerID, id string) error {
	query := `DELETE FROM sections WHERE owner_id = ? AND id = ?`
	res, err := r.db.ExecContext(ctx, query, ownerID, id)
	if err != nil {
		return fmt.Errorf("deleting section: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting section: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("section: %w", ErrNotFound)
	}
	return nil
}

func (r *SQLiteSectionRepo) DeleteByOwner(ctx context.Context, ownerID string) error {
	query := `DELETE FROM sections WHERE owner_id = ?`
	if _, err := r.db.ExecContext(ctx, query, ownerID); err != nil {
		return fmt.Errorf("deleting sections by owner: %w", err)
	}
	return nil
}

// scanSection scans a single section from a *sql.Row.
func (r *SQLiteSectionRepo) scanSection(row *sql.Row) (*domain.Section, error) {
	var s domain.Section
	var parentID sql.NullString
	var createdAtStr, updatedAtStr string

	err := row.Scan(&s.ID, &s.OwnerID, &parentID, &s.Title, &s.Summary, &s.OrderIndex,
		&createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("section: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning section: %w", err)
	}
	return r.populateSection(&s, parentID, createdAtStr, updatedAtStr)
}

// scanSections scans multiple sections from *sql.Rows.
func (r *SQLiteSectionRepo) scanSections(rows *sql.Rows) ([]*domain.Section, error) {
	var sections []*domain.Section
	for rows.Next() {
		var s domain.Section
		var parentID sql.NullString
		var createdAtStr, updatedAtStr string

		err := rows.Scan(&s.ID, &s.OwnerID, &parentID, &s.Title, &s.Summary, &s.OrderIndex,
			&createdAtStr, &updatedAtStr)
		if err != nil {
			return nil, fmt.Errorf("scanning section row: %w", err)
		}
		sec, err := r.populateSection(&s, parentID, createdAtStr, updatedAtStr)
		if err != nil {
			return nil, err
		}
		sections = append(sections, sec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sections: %w", err)
	}
	return sections, nil
}

// populateSection fills in parsed fields on a Section after scanning raw strings.
func (r *SQLiteSectionRepo) populateSection(s *domain.Section, parentID sql.NullString, createdAtStr, updatedAtStr string) (*domain.Section, error) {
	if parentID.Valid {
		s.ParentID = &parentID.String
	}

	var parseErr error
	s.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	s.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return s, nil
}
