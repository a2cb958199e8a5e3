// Package sqlite persists simulation runs in a SQLite database via
// database/sql. The driver is modernc.org/sqlite (pure Go, no cgo), which
// the composition root registers with a blank import.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"ridesim/internal/domain/entities"
)

var ErrRunNotFound = errors.New("simulation run not found")

// RunRepository is the SQLite-backed implementation of the RunRepository
// port.
type RunRepository struct {
	db *sql.DB
}

func NewRunRepository(db *sql.DB) *RunRepository {
	return &RunRepository{db: db}
}

// InitSchema creates the runs table if it does not exist yet.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: db is nil")
	}

	createRunsQuery := `
	CREATE TABLE IF NOT EXISTS simulation_runs (
		id TEXT PRIMARY KEY,
		source TEXT NOT NULL,
		events_processed INTEGER NOT NULL,
		rider_wait_time REAL NOT NULL,
		driver_total_distance REAL NOT NULL,
		driver_ride_distance REAL NOT NULL,
		created_at TEXT NOT NULL
	);
	`
	if _, err := db.Exec(createRunsQuery); err != nil {
		return fmt.Errorf("init schema: create simulation_runs: %w", err)
	}
	return nil
}

func (r *RunRepository) Create(ctx context.Context, run *entities.SimulationRun) error {
	query := `
	INSERT INTO simulation_runs
		(id, source, events_processed, rider_wait_time,
		 driver_total_distance, driver_ride_distance, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?);
	`
	_, err := r.db.ExecContext(ctx, query,
		run.ID,
		run.Source,
		run.EventsProcessed,
		run.RiderWaitTime,
		run.DriverTotalDistance,
		run.DriverRideDistance,
		run.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("create run %s: %w", run.ID, err)
	}
	return nil
}

func (r *RunRepository) GetByID(ctx context.Context, id string) (*entities.SimulationRun, error) {
	query := `
	SELECT id, source, events_processed, rider_wait_time,
	       driver_total_distance, driver_ride_distance, created_at
	FROM simulation_runs
	WHERE id = ?;
	`
	run, err := scanRun(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get run %s: %w", id, err)
	}
	return run, nil
}

// List returns all runs, newest first.
func (r *RunRepository) List(ctx context.Context) ([]*entities.SimulationRun, error) {
	query := `
	SELECT id, source, events_processed, rider_wait_time,
	       driver_total_distance, driver_ride_distance, created_at
	FROM simulation_runs
	ORDER BY created_at DESC;
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	runs := make([]*entities.SimulationRun, 0, 16)
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("list runs: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: row iteration: %w", err)
	}
	return runs, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*entities.SimulationRun, error) {
	var run entities.SimulationRun
	var createdAt string
	err := row.Scan(
		&run.ID,
		&run.Source,
		&run.EventsProcessed,
		&run.RiderWaitTime,
		&run.DriverTotalDistance,
		&run.DriverRideDistance,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}
	ts, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	run.CreatedAt = ts
	return &run, nil
}
