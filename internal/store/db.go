package store

import (
	"county-pipeline/internal/model"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// ErrRunNotFound is returned by GetRun for an unknown run ID
var ErrRunNotFound = errors.New("run not found")

// Store is the sqlite run ledger
type Store struct {
	db *sql.DB
}

// Open connects to the ledger at dbPath, creating its tables if needed
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	// Create tables if not exists
	runTable := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		input_path TEXT,
		output_path TEXT,
		status TEXT,
		original_rows INTEGER,
		original_cols INTEGER,
		result_rows INTEGER,
		result_cols INTEGER,
		created_at DATETIME,
		updated_at DATETIME
	);
	`
	stageTable := `
	CREATE TABLE IF NOT EXISTS run_stages (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT,
		stage TEXT,
		status TEXT,
		start_time DATETIME,
		end_time DATETIME,
		records INTEGER
	);
	`
	errorTable := `
	CREATE TABLE IF NOT EXISTS run_errors (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT,
		error_message TEXT,
		created_at DATETIME
	);
	`

	for _, ddl := range []string{runTable, stageTable, errorTable} {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to create ledger tables: %w", err)
		}
	}

	return &Store{db: db}, nil
}

// Close releases the database handle
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun stores a new pending run
func (s *Store) SaveRun(runID, inputPath string) error {
	now := time.Now().UTC()
	_, err := s.db.Exec(`INSERT INTO runs (id, input_path, output_path, status, original_rows, original_cols, result_rows, result_cols, created_at, updated_at)
		VALUES (?, ?, '', ?, 0, 0, 0, 0, ?, ?)`,
		runID, inputPath, "running", now, now)
	return err
}

// UpdateRunStatus updates run status
func (s *Store) UpdateRunStatus(runID, status string) error {
	now := time.Now().UTC()
	_, err := s.db.Exec(`UPDATE runs SET status = ?, updated_at = ? WHERE id = ?`, status, now, runID)
	return err
}

// SaveRunResult records the output path and the table shapes of a run
func (s *Store) SaveRunResult(runID, outputPath string, original, result model.Shape) error {
	now := time.Now().UTC()
	_, err := s.db.Exec(`UPDATE runs SET output_path = ?, original_rows = ?, original_cols = ?, result_rows = ?, result_cols = ?, updated_at = ? WHERE id = ?`,
		outputPath, original.Rows, original.Columns, result.Rows, result.Columns, now, runID)
	return err
}

// SaveStageProgress appends a stage event for a run
func (s *Store) SaveStageProgress(runID string, progress model.StageProgress) error {
	var endTime interface{}
	if progress.EndTime != nil {
		endTime = progress.EndTime.UTC()
	}
	_, err := s.db.Exec(`INSERT INTO run_stages (run_id, stage, status, start_time, end_time, records) VALUES (?, ?, ?, ?, ?, ?)`,
		runID, progress.Stage, progress.Status, progress.StartTime.UTC(), endTime, progress.Records)
	return err
}

// SaveRunError records an error for a run
func (s *Store) SaveRunError(runID string, err error) error {
	if err == nil {
		return nil
	}
	now := time.Now().UTC()
	_, e := s.db.Exec(`INSERT INTO run_errors (run_id, error_message, created_at) VALUES (?, ?, ?)`,
		runID, err.Error(), now)
	return e
}

// GetRun fetches a single run
func (s *Store) GetRun(runID string) (*model.RunRecord, error) {
	row := s.db.QueryRow(`SELECT id, input_path, output_path, status, original_rows, original_cols, result_rows, result_cols, created_at, updated_at
		FROM runs WHERE id = ?`, runID)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return run, err
}

// ListRuns returns all runs, newest first
func (s *Store) ListRuns() ([]model.RunRecord, error) {
	rows, err := s.db.Query(`SELECT id, input_path, output_path, status, original_rows, original_cols, result_rows, result_cols, created_at, updated_at
		FROM runs ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []model.RunRecord
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

// RunErrors returns the error messages recorded for a run, oldest first
func (s *Store) RunErrors(runID string) ([]string, error) {
	rows, err := s.db.Query(`SELECT error_message FROM run_errors WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []string
	for rows.Next() {
		var msg string
		if err := rows.Scan(&msg); err != nil {
			return nil, err
		}
		msgs = append(msgs, msg)
	}
	return msgs, rows.Err()
}

// RunStages returns the stage events recorded for a run, in insertion order
func (s *Store) RunStages(runID string) ([]model.StageProgress, error) {
	rows, err := s.db.Query(`SELECT stage, status, start_time, end_time, records FROM run_stages WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stages []model.StageProgress
	for rows.Next() {
		var p model.StageProgress
		var endTime sql.NullTime
		if err := rows.Scan(&p.Stage, &p.Status, &p.StartTime, &endTime, &p.Records); err != nil {
			return nil, err
		}
		if endTime.Valid {
			t := endTime.Time
			p.EndTime = &t
		}
		stages = append(stages, p)
	}
	return stages, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(sc scanner) (*model.RunRecord, error) {
	var run model.RunRecord
	err := sc.Scan(&run.ID, &run.InputPath, &run.OutputPath, &run.Status,
		&run.Original.Rows, &run.Original.Columns, &run.Result.Rows, &run.Result.Columns,
		&run.CreatedAt, &run.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &run, nil
}
