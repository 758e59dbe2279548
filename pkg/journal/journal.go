package journal

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Status is the lifecycle state of a recorded run.
type Status string

const (
	// StatusRunning marks a run that has been started but not completed.
	StatusRunning Status = "running"
	// StatusOK marks a successfully completed run.
	StatusOK Status = "ok"
	// StatusFailed marks a run that ended in an error.
	StatusFailed Status = "failed"
)

// Run is one recorded environment run.
type Run struct {
	ID         string
	EnvName    string
	Section    string
	WorkDir    string
	Status     Status
	StartedAt  time.Time
	FinishedAt *time.Time
}

// Journal stores run records in a SQLite database.
type Journal struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	env_name    TEXT NOT NULL,
	section     TEXT NOT NULL,
	work_dir    TEXT NOT NULL,
	status      TEXT NOT NULL,
	started_at  TIMESTAMP NOT NULL,
	finished_at TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
CREATE INDEX IF NOT EXISTS idx_runs_env_name ON runs(env_name);
`

// Open opens (creating if necessary) the journal database at path.
func Open(path string) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create journal directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal database %q: %w", path, err)
	}

	j := &Journal{
		db:     db,
		path:   path,
		logger: slog.Default().With("component", "journal"),
	}
	if err := j.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return j, nil
}

func (j *Journal) initialize() error {
	if _, err := j.db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	if _, err := j.db.Exec("PRAGMA busy_timeout=5000"); err != nil {
		return fmt.Errorf("failed to set busy timeout: %w", err)
	}
	if _, err := j.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize journal schema: %w", err)
	}
	return nil
}

// Path returns the database file path.
func (j *Journal) Path() string { return j.path }

// Begin records the start of a run and returns it with a fresh ID.
func (j *Journal) Begin(ctx context.Context, envName, section, workDir string) (*Run, error) {
	run := &Run{
		ID:        uuid.New().String(),
		EnvName:   envName,
		Section:   section,
		WorkDir:   workDir,
		Status:    StatusRunning,
		StartedAt: time.Now().UTC(),
	}

	_, err := j.db.ExecContext(ctx,
		`INSERT INTO runs (id, env_name, section, work_dir, status, started_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.EnvName, run.Section, run.WorkDir, string(run.Status), run.StartedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to record run start for %q: %w", envName, err)
	}

	j.logger.Debug("run recorded", "id", run.ID, "env", envName)
	return run, nil
}

// Complete marks a run finished with the given status.
func (j *Journal) Complete(ctx context.Context, id string, status Status) error {
	res, err := j.db.ExecContext(ctx,
		`UPDATE runs SET status = ?, finished_at = ? WHERE id = ?`,
		string(status), time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to complete run %q: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to complete run %q: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("run %q not found", id)
	}
	return nil
}

// List returns the most recent runs, newest first. A limit of 0 means no
// limit.
func (j *Journal) List(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT id, env_name, section, work_dir, status, started_at, finished_at
	          FROM runs ORDER BY started_at DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			run      Run
			status   string
			finished sql.NullTime
		)
		if err := rows.Scan(&run.ID, &run.EnvName, &run.Section, &run.WorkDir,
			&status, &run.StartedAt, &finished); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		run.Status = Status(status)
		if finished.Valid {
			t := finished.Time
			run.FinishedAt = &t
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// PruneBefore deletes runs started before the cutoff and returns the number
// of deleted rows.
func (j *Journal) PruneBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := j.db.ExecContext(ctx, `DELETE FROM runs WHERE started_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune runs: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to prune runs: %w", err)
	}
	if deleted > 0 {
		j.logger.Info("journal pruned", "deleted", deleted, "cutoff", cutoff)
	}
	return deleted, nil
}

// Close closes the underlying database.
func (j *Journal) Close() error {
	return j.db.Close()
}
