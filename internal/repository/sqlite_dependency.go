package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/trestle/internal/db"
	"github.com/alexanderramin/trestle/internal/domain"
)

// SQLiteDependencyRepo implements DependencyRepo using a SQLite database.
type SQLiteDependencyRepo struct {
	db db.DBTX
}

// NewSQLiteDependencyRepo creates a new SQLiteDependencyRepo.
func NewSQLiteDependencyRepo(db db.DBTX) *SQLiteDependencyRepo {
	return &SQLiteDependencyRepo{db: db}
}

func (r *SQLiteDependencyRepo) Create(ctx context.Context, d *domain.Dependency) error {
	query := `INSERT INTO dependencies (predecessor_id, successor_id, type, lag_days) VALUES (?, ?, ?, ?)`
	depType := d.Type
	if depType == "" {
		depType = domain.FinishToStart
	}
	_, err := r.db.ExecContext(ctx, query, d.PredecessorID, d.SuccessorID, string(depType), d.Lag)
	if err != nil {
		return fmt.Errorf("inserting dependency: %w", err)
	}
	return nil
}

func (r *SQLiteDependencyRepo) Delete(ctx context.Context, predecessorID, successorID string) error {
	query := `DELETE FROM dependencies WHERE predecessor_id = ? AND successor_id = ?`
	res, err := r.db.ExecContext(ctx, query, predecessorID, successorID)
	if err != nil {
		return fmt.Errorf("deleting dependency: %w", err)
	}
	return requireAffected(res, "dependency")
}

// ListByProject returns every edge whose successor belongs to the project.
func (r *SQLiteDependencyRepo) ListByProject(ctx context.Context, projectID string) ([]domain.Dependency, error) {
	query := `SELECT d.predecessor_id, d.successor_id, d.type, d.lag_days
		FROM dependencies d
		JOIN wbs_items w ON d.successor_id = w.id
		WHERE w.project_id = ?
		ORDER BY d.rowid`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing dependencies by project: %w", err)
	}
	defer rows.Close()
	return r.scanDependencies(rows)
}

func (r *SQLiteDependencyRepo) ListPredecessors(ctx context.Context, itemID string) ([]domain.Dependency, error) {
	query := `SELECT predecessor_id, successor_id, type, lag_days
		FROM dependencies WHERE successor_id = ? ORDER BY rowid`
	rows, err := r.db.QueryContext(ctx, query, itemID)
	if err != nil {
		return nil, fmt.Errorf("listing predecessors: %w", err)
	}
	defer rows.Close()
	return r.scanDependencies(rows)
}

func (r *SQLiteDependencyRepo) ListSuccessors(ctx context.Context, itemID string) ([]domain.Dependency, error) {
	query := `SELECT predecessor_id, successor_id, type, lag_days
		FROM dependencies WHERE predecessor_id = ? ORDER BY rowid`
	rows, err := r.db.QueryContext(ctx, query, itemID)
	if err != nil {
		return nil, fmt.Errorf("listing successors: %w", err)
	}
	defer rows.Close()
	return r.scanDependencies(rows)
}

// scanDependencies scans multiple dependency rows from *sql.Rows.
func (r *SQLiteDependencyRepo) scanDependencies(rows *sql.Rows) ([]domain.Dependency, error) {
	var deps []domain.Dependency
	for rows.Next() {
		var d domain.Dependency
		var typeStr string
		if err := rows.Scan(&d.PredecessorID, &d.SuccessorID, &typeStr, &d.Lag); err != nil {
			return nil, fmt.Errorf("scanning dependency: %w", err)
		}
		d.Type = domain.DependencyType(typeStr)
		deps = append(deps, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating dependencies: %w", err)
	}
	return deps, nil
}
