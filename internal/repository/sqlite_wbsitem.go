package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/trestle/internal/db"
	"github.com/alexanderramin/trestle/internal/domain"
)

// wbsItemColumns is the canonical SELECT column list for wbs_items.
const wbsItemColumns = `id, project_id, parent_id, level, code, title, type,
		start_date, end_date, duration_days, budgeted_cost, actual_cost, percent_complete,
		created_at, updated_at`

// SQLiteWbsItemRepo implements WbsItemRepo using a SQLite database.
type SQLiteWbsItemRepo struct {
	db db.DBTX
}

// NewSQLiteWbsItemRepo creates a new SQLiteWbsItemRepo.
func NewSQLiteWbsItemRepo(db db.DBTX) *SQLiteWbsItemRepo {
	return &SQLiteWbsItemRepo{db: db}
}

func (r *SQLiteWbsItemRepo) Create(ctx context.Context, w *domain.WbsItem) error {
	query := `INSERT INTO wbs_items (` + wbsItemColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		w.ID,
		w.ProjectID,
		w.ParentID, // *string: nil becomes SQL NULL
		w.Level,
		w.Code,
		w.Title,
		string(w.Type),
		w.StartDate.Format(dateLayout),
		w.EndDate.Format(dateLayout),
		w.Duration,
		w.BudgetedCost.String(),
		w.ActualCost.String(),
		w.PercentComplete,
		w.CreatedAt.Format(time.RFC3339),
		w.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting wbs item %s: %w", w.Code, err)
	}
	return nil
}

func (r *SQLiteWbsItemRepo) GetByID(ctx context.Context, id string) (*domain.WbsItem, error) {
	query := `SELECT ` + wbsItemColumns + ` FROM wbs_items WHERE id = ?`
	return r.scanItem(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteWbsItemRepo) GetByCode(ctx context.Context, projectID, code string) (*domain.WbsItem, error) {
	query := `SELECT ` + wbsItemColumns + ` FROM wbs_items WHERE project_id = ? AND code = ?`
	return r.scanItem(r.db.QueryRowContext(ctx, query, projectID, code))
}

// ListByProject returns items in insertion order; callers sort by code.
func (r *SQLiteWbsItemRepo) ListByProject(ctx context.Context, projectID string) ([]domain.WbsItem, error) {
	query := `SELECT ` + wbsItemColumns + ` FROM wbs_items WHERE project_id = ? ORDER BY rowid`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing wbs items by project: %w", err)
	}
	defer rows.Close()
	return r.scanItems(rows)
}

func (r *SQLiteWbsItemRepo) ListChildren(ctx context.Context, parentID string) ([]domain.WbsItem, error) {
	query := `SELECT ` + wbsItemColumns + ` FROM wbs_items WHERE parent_id = ? ORDER BY rowid`
	rows, err := r.db.QueryContext(ctx, query, parentID)
	if err != nil {
		return nil, fmt.Errorf("listing child wbs items: %w", err)
	}
	defer rows.Close()
	return r.scanItems(rows)
}

func (r *SQLiteWbsItemRepo) Update(ctx context.Context, w *domain.WbsItem) error {
	query := `UPDATE wbs_items SET parent_id = ?, level = ?, code = ?, title = ?, type = ?,
		start_date = ?, end_date = ?, duration_days = ?, budgeted_cost = ?, actual_cost = ?,
		percent_complete = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		w.ParentID,
		w.Level,
		w.Code,
		w.Title,
		string(w.Type),
		w.StartDate.Format(dateLayout),
		w.EndDate.Format(dateLayout),
		w.Duration,
		w.BudgetedCost.String(),
		w.ActualCost.String(),
		w.PercentComplete,
		w.UpdatedAt.Format(time.RFC3339),
		w.ID,
	)
	if err != nil {
		return fmt.Errorf("updating wbs item: %w", err)
	}
	return requireAffected(res, "wbs item")
}

func (r *SQLiteWbsItemRepo) UpdateSchedule(ctx context.Context, id string, start, end time.Time) error {
	query := `UPDATE wbs_items SET start_date = ?, end_date = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, start.Format(dateLayout), end.Format(dateLayout), nowUTC(), id)
	if err != nil {
		return fmt.Errorf("updating wbs item schedule: %w", err)
	}
	return requireAffected(res, "wbs item")
}

func (r *SQLiteWbsItemRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM wbs_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting wbs item: %w", err)
	}
	return requireAffected(res, "wbs item")
}

func (r *SQLiteWbsItemRepo) scanItems(rows *sql.Rows) ([]domain.WbsItem, error) {
	var items []domain.WbsItem
	for rows.Next() {
		w, err := r.scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating wbs items: %w", err)
	}
	return items, nil
}

func (r *SQLiteWbsItemRepo) scanItem(row rowScanner) (*domain.WbsItem, error) {
	var w domain.WbsItem
	var parentID sql.NullString
	var typeStr, startStr, endStr, budgetStr, actualStr, createdAtStr, updatedAtStr string

	err := row.Scan(
		&w.ID, &w.ProjectID, &parentID, &w.Level, &w.Code, &w.Title, &typeStr,
		&startStr, &endStr, &w.Duration, &budgetStr, &actualStr, &w.PercentComplete,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("wbs item: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning wbs item: %w", err)
	}

	w.Type = domain.WbsType(typeStr)
	if parentID.Valid {
		w.ParentID = &parentID.String
	}
	if w.StartDate, err = time.Parse(dateLayout, startStr); err != nil {
		return nil, fmt.Errorf("parsing start_date: %w", err)
	}
	if w.EndDate, err = time.Parse(dateLayout, endStr); err != nil {
		return nil, fmt.Errorf("parsing end_date: %w", err)
	}
	if w.BudgetedCost, err = parseMoney("budgeted_cost", budgetStr); err != nil {
		return nil, err
	}
	if w.ActualCost, err = parseMoney("actual_cost", actualStr); err != nil {
		return nil, err
	}
	if w.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if w.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &w, nil
}
