package db

import (
	"database/sql"
	"fmt"
)

// Migrate applies the schema. Every statement is idempotent, so running it
// against an existing database is a no-op.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id          TEXT PRIMARY KEY,
		short_id    TEXT NOT NULL DEFAULT '',
		name        TEXT NOT NULL,
		client      TEXT NOT NULL DEFAULT '',
		status      TEXT NOT NULL DEFAULT 'active'
		            CHECK(status IN ('active','on_hold','complete')),
		start_date  TEXT NOT NULL,
		target_date TEXT,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_projects_short_id ON projects(short_id) WHERE short_id != ''`,

	`CREATE TABLE IF NOT EXISTS wbs_items (
		id               TEXT PRIMARY KEY,
		project_id       TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		parent_id        TEXT REFERENCES wbs_items(id) ON DELETE CASCADE,
		level            INTEGER NOT NULL DEFAULT 1 CHECK(level >= 1),
		code             TEXT NOT NULL,
		title            TEXT NOT NULL DEFAULT '',
		type             TEXT NOT NULL
		                 CHECK(type IN ('summary','work_package','activity')),
		start_date       TEXT NOT NULL,
		end_date         TEXT NOT NULL,
		duration_days    INTEGER NOT NULL DEFAULT 0 CHECK(duration_days >= 0),
		budgeted_cost    TEXT NOT NULL DEFAULT '0',
		actual_cost      TEXT NOT NULL DEFAULT '0',
		percent_complete REAL NOT NULL DEFAULT 0
		                 CHECK(percent_complete >= 0 AND percent_complete <= 100),
		created_at       TEXT NOT NULL,
		updated_at       TEXT NOT NULL,
		CHECK(end_date >= start_date)
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_wbs_items_project_code ON wbs_items(project_id, code)`,
	`CREATE INDEX IF NOT EXISTS idx_wbs_items_parent ON wbs_items(parent_id)`,

	`CREATE TABLE IF NOT EXISTS dependencies (
		predecessor_id TEXT NOT NULL REFERENCES wbs_items(id) ON DELETE CASCADE,
		successor_id   TEXT NOT NULL REFERENCES wbs_items(id) ON DELETE CASCADE,
		type           TEXT NOT NULL DEFAULT 'FS'
		               CHECK(type IN ('FS','SS','FF','SF')),
		lag_days       INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (predecessor_id, successor_id),
		CHECK(predecessor_id != successor_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_dependencies_successor ON dependencies(successor_id)`,
}
