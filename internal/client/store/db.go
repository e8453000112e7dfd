// Package store opens the local cache database and wires the
// per-collection repositories over it.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/mpetrovs/prodhub/internal/client/migrations"
	"github.com/mpetrovs/prodhub/internal/client/repositories/expenses"
	"github.com/mpetrovs/prodhub/internal/client/repositories/habitlogs"
	"github.com/mpetrovs/prodhub/internal/client/repositories/habits"
	"github.com/mpetrovs/prodhub/internal/client/repositories/notes"
	"github.com/mpetrovs/prodhub/internal/client/repositories/tasks"
)

// Repositories bundles the five collection repositories backed by one
// SQLite database.
type Repositories struct {
	Tasks     tasks.Repository
	Notes     notes.Repository
	Expenses  expenses.Repository
	Habits    habits.Repository
	HabitLogs habitlogs.Repository

	db *sql.DB
}

// RunMigrations applies the embedded goose migrations.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens (creating if needed) the cache database at dsn,
// applies migrations and returns the repository set.
func InitDatabase(ctx context.Context, dsn string) (*Repositories, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Repositories{
		Tasks:     tasks.NewSQLiteRepository(db),
		Notes:     notes.NewSQLiteRepository(db),
		Expenses:  expenses.NewSQLiteRepository(db),
		Habits:    habits.NewSQLiteRepository(db),
		HabitLogs: habitlogs.NewSQLiteRepository(db),
		db:        db,
	}, nil
}

// Close closes the underlying database handle.
func (r *Repositories) Close() error {
	return r.db.Close()
}
