// CLAUDE:SUMMARY Run ledger: one SQLite row per (run, locale) benchmark outcome, with history queries for the CLI.
package store

import (
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/hazyhaar/massive-bench/pkg/pipeline"
	_ "modernc.org/sqlite"
)

// Status of a recorded locale outcome.
const (
	StatusOK     = "ok"
	StatusNoData = "no_data"
	StatusError  = "error"
)

// Run is a row of the bench_runs table.
type Run struct {
	RunID          string
	Locale         string
	Good           int
	Total          int
	Accuracy       float64
	Status         string
	Error          *string
	NoneIntent     string
	UseAnnotations bool
	CreatedAt      int64
}

// RunDB manages the bench_runs SQLite table.
type RunDB struct {
	db *sql.DB
	sq sq.StatementBuilderType
}

// NewRunID returns a fresh identifier grouping the locales of one bench run.
func NewRunID() string {
	return uuid.NewString()
}

// OpenRunDB opens (or creates) the SQLite database at path and ensures the
// bench_runs table exists.
func OpenRunDB(path string) (*RunDB, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open run db: %w", err)
	}

	const ddl = `CREATE TABLE IF NOT EXISTS bench_runs (
		run_id          TEXT NOT NULL,
		locale          TEXT NOT NULL,
		good            INTEGER NOT NULL,
		total           INTEGER NOT NULL,
		accuracy        REAL NOT NULL,
		status          TEXT NOT NULL,
		error           TEXT,
		none_intent     TEXT NOT NULL DEFAULT '',
		use_annotations INTEGER NOT NULL DEFAULT 0,
		created_at      INTEGER NOT NULL,
		PRIMARY KEY (run_id, locale)
	)`
	if _, err := db.Exec(ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("create bench_runs table: %w", err)
	}
	if _, err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_bench_runs_locale ON bench_runs(locale, created_at)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create bench_runs index: %w", err)
	}

	return &RunDB{db: db, sq: sq.StatementBuilder}, nil
}

// Close closes the SQLite connection.
func (r *RunDB) Close() error {
	return r.db.Close()
}

// Record stores the outcome of one locale under runID. Recording the same
// (run, locale) twice replaces the earlier row.
func (r *RunDB) Record(runID string, cfg pipeline.Config, out pipeline.Outcome) error {
	status := StatusOK
	var errPtr *string
	switch {
	case out.Err != nil:
		status = StatusError
		msg := out.Err.Error()
		errPtr = &msg
	case out.Result.NoData:
		status = StatusNoData
	}

	q := r.sq.Insert("bench_runs").Options("OR REPLACE").
		Columns(runColumns...).
		Values(runID, out.Locale, out.Result.Good, out.Result.Total, out.Result.Accuracy,
			status, errPtr, cfg.NoneIntent, cfg.UseAnnotations, time.Now().Unix())
	_, err := q.RunWith(r.db).Exec()
	if err != nil {
		return fmt.Errorf("record %s/%s: %w", runID, out.Locale, err)
	}
	return nil
}

var runColumns = []string{
	"run_id", "locale", "good", "total", "accuracy", "status", "error",
	"none_intent", "use_annotations", "created_at",
}

// ListRuns returns the most recent rows, newest first. limit <= 0 returns all.
func (r *RunDB) ListRuns(limit int) ([]Run, error) {
	q := r.sq.Select(runColumns...).From("bench_runs").OrderBy("created_at DESC", "run_id", "locale")
	if limit > 0 {
		q = q.Limit(uint64(limit))
	}
	return r.query("list runs", q)
}

// LocaleHistory returns every recorded outcome of locale, oldest first.
func (r *RunDB) LocaleHistory(locale string) ([]Run, error) {
	q := r.sq.Select(runColumns...).From("bench_runs").
		Where(sq.Eq{"locale": locale}).
		OrderBy("created_at", "run_id")
	return r.query("locale history", q)
}

func (r *RunDB) query(what string, q sq.SelectBuilder) ([]Run, error) {
	rows, err := q.RunWith(r.db).Query()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", what, err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.RunID, &run.Locale, &run.Good, &run.Total, &run.Accuracy,
			&run.Status, &run.Error, &run.NoneIntent, &run.UseAnnotations, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
