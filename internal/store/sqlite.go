package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/me/cpusched/pkg/model"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath and returns a Store.
// Use ":memory:" for an in-memory database (useful in tests).
func NewSQLiteStore(dbPath string, logger *slog.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dbPath, err)
	}
	if dbPath == ":memory:" {
		// Each connection would otherwise get its own empty database.
		db.SetMaxOpenConns(1)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma wal: %w", err)
	}

	return &SQLiteStore{
		db:     db,
		logger: logger.With("component", "store"),
	}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Migrate creates all required tables and indexes.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	s.logger.Debug("sql", "op", "migrate")
	return migrate(ctx, s.db)
}

// timestampLayout has a fixed-width fraction so that stored timestamps sort
// lexicographically.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

const simulationColumns = `id, name, algorithm, quantum, processes, timeline, report, created_at`

const summaryColumns = `id, name, algorithm, quantum, process_count, makespan, avg_waiting, created_at`

func (s *SQLiteStore) CreateSimulation(ctx context.Context, sim *model.Simulation) error {
	s.logger.Debug("sql", "op", "insert", "table", "simulations", "id", sim.ID)

	processesJSON, err := json.Marshal(sim.Processes)
	if err != nil {
		return fmt.Errorf("marshal processes: %w", err)
	}
	timelineJSON, err := json.Marshal(sim.Timeline)
	if err != nil {
		return fmt.Errorf("marshal timeline: %w", err)
	}
	reportJSON, err := json.Marshal(sim.Report)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	sum := sim.Summary()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO simulations (id, name, algorithm, quantum, process_count, makespan, avg_waiting, processes, timeline, report, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sim.ID, sim.Name, string(sim.Policy.Algorithm), sim.Policy.Quantum,
		sum.ProcessCount, sum.Makespan, sum.AverageWaitingTime,
		string(processesJSON), string(timelineJSON), string(reportJSON),
		sim.CreatedAt.UTC().Format(timestampLayout),
	)
	return err
}

func (s *SQLiteStore) GetSimulation(ctx context.Context, id string) (*model.Simulation, error) {
	s.logger.Debug("sql", "op", "select", "table", "simulations", "id", id)

	row := s.db.QueryRowContext(ctx,
		`SELECT `+simulationColumns+` FROM simulations WHERE id = ?`, id)
	sim, err := scanSimulation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return sim, nil
}

func (s *SQLiteStore) ListSimulations(ctx context.Context, opts model.ListOptions) ([]model.SimulationSummary, int, error) {
	s.logger.Debug("sql", "op", "list", "table", "simulations", "limit", opts.Limit, "offset", opts.Offset)
	opts.Clamp()

	where := ""
	var args []any
	if opts.Algorithm != "" {
		where = " WHERE algorithm = ?"
		args = append(args, string(opts.Algorithm))
	}

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM simulations`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+summaryColumns+` FROM simulations`+where+
			` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`,
		append(args, opts.Limit, opts.Offset)...,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var sums []model.SimulationSummary
	for rows.Next() {
		sum, err := scanSummary(rows)
		if err != nil {
			return nil, 0, err
		}
		sums = append(sums, sum)
	}
	return sums, total, rows.Err()
}

func (s *SQLiteStore) DeleteSimulation(ctx context.Context, id string) (bool, error) {
	s.logger.Debug("sql", "op", "delete", "table", "simulations", "id", id)

	res, err := s.db.ExecContext(ctx, `DELETE FROM simulations WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *SQLiteStore) DeleteSimulationsBefore(ctx context.Context, cutoff time.Time) (int, error) {
	s.logger.Debug("sql", "op", "delete_before", "table", "simulations", "cutoff", cutoff)

	res, err := s.db.ExecContext(ctx, `DELETE FROM simulations WHERE created_at < ?`,
		cutoff.UTC().Format(timestampLayout))
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanSimulation(sc scanner) (*model.Simulation, error) {
	var sim model.Simulation
	var algorithm string
	var processesJSON, timelineJSON, reportJSON string
	var createdAt string

	if err := sc.Scan(&sim.ID, &sim.Name, &algorithm, &sim.Policy.Quantum,
		&processesJSON, &timelineJSON, &reportJSON, &createdAt); err != nil {
		return nil, err
	}
	sim.Policy.Algorithm = model.Algorithm(algorithm)

	if err := json.Unmarshal([]byte(processesJSON), &sim.Processes); err != nil {
		return nil, fmt.Errorf("unmarshal processes: %w", err)
	}
	if err := json.Unmarshal([]byte(timelineJSON), &sim.Timeline); err != nil {
		return nil, fmt.Errorf("unmarshal timeline: %w", err)
	}
	if err := json.Unmarshal([]byte(reportJSON), &sim.Report); err != nil {
		return nil, fmt.Errorf("unmarshal report: %w", err)
	}
	sim.CreatedAt, _ = time.Parse(timestampLayout, createdAt)

	return &sim, nil
}

func scanSummary(sc scanner) (model.SimulationSummary, error) {
	var sum model.SimulationSummary
	var algorithm, createdAt string

	if err := sc.Scan(&sum.ID, &sum.Name, &algorithm, &sum.Policy.Quantum,
		&sum.ProcessCount, &sum.Makespan, &sum.AverageWaitingTime, &createdAt); err != nil {
		return sum, err
	}
	sum.Policy.Algorithm = model.Algorithm(algorithm)
	sum.CreatedAt, _ = time.Parse(timestampLayout, createdAt)
	return sum, nil
}
