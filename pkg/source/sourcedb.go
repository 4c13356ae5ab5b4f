package source

import (
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite"
)

// Source is one dataset release known to the tool, with the URL it is fetched
// from and what the last check and fetch saw.
type Source struct {
	AdapterID   string
	Description string
	SourceURL   string
	License     string
	LastCheck   *int64
	LastStatus  *int
	LastError   *string
	LastFetch   *int64
	Locales     int
	UpdatedAt   int64
}

// SourceDB keeps the dataset_sources table.
type SourceDB struct {
	db *sql.DB
}

// OpenSourceDB opens (or creates) the SQLite database at path.
func OpenSourceDB(path string) (*SourceDB, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open source db: %w", err)
	}

	const ddl = `CREATE TABLE IF NOT EXISTS dataset_sources (
		adapter_id   TEXT PRIMARY KEY,
		description  TEXT NOT NULL,
		source_url   TEXT NOT NULL,
		license      TEXT NOT NULL DEFAULT '',
		last_check   INTEGER,
		last_status  INTEGER,
		last_error   TEXT,
		last_fetch   INTEGER,
		locales      INTEGER NOT NULL DEFAULT 0,
		updated_at   INTEGER NOT NULL
	)`
	if _, err := db.Exec(ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("create dataset_sources table: %w", err)
	}
	return &SourceDB{db: db}, nil
}

func (s *SourceDB) Close() error {
	return s.db.Close()
}

// Seed adds a row per adapter that has none yet. A URL set with SetURL is
// never reset.
func (s *SourceDB) Seed(adapters []Adapter) error {
	if len(adapters) == 0 {
		return nil
	}
	ins := sq.Insert("dataset_sources").Options("OR IGNORE").
		Columns("adapter_id", "description", "source_url", "license", "updated_at")
	now := time.Now().Unix()
	for _, a := range adapters {
		ins = ins.Values(a.ID(), a.Description(), a.DefaultURL(), a.License(), now)
	}
	if _, err := ins.RunWith(s.db).Exec(); err != nil {
		return fmt.Errorf("seed sources: %w", err)
	}
	return nil
}

// GetURL returns the URL adapterID fetches from.
func (s *SourceDB) GetURL(adapterID string) (string, error) {
	var url string
	err := sq.Select("source_url").From("dataset_sources").
		Where(sq.Eq{"adapter_id": adapterID}).
		RunWith(s.db).QueryRow().Scan(&url)
	if err != nil {
		return "", fmt.Errorf("get url for %s: %w", adapterID, err)
	}
	return url, nil
}

// SetURL points adapterID at a mirror.
func (s *SourceDB) SetURL(adapterID, url string) error {
	return s.update(adapterID, "set url", map[string]any{
		"source_url": url,
		"updated_at": time.Now().Unix(),
	})
}

// UpdateCheck stores the outcome of an availability check. An empty checkErr
// clears the previous error.
func (s *SourceDB) UpdateCheck(adapterID string, status int, checkErr string) error {
	var errVal any
	if checkErr != "" {
		errVal = checkErr
	}
	return s.update(adapterID, "update check", map[string]any{
		"last_check":  time.Now().Unix(),
		"last_status": status,
		"last_error":  errVal,
	})
}

// RecordFetch stores when adapterID was last fetched and how many locale
// files it produced.
func (s *SourceDB) RecordFetch(adapterID string, locales int) error {
	return s.update(adapterID, "record fetch", map[string]any{
		"last_fetch": time.Now().Unix(),
		"locales":    locales,
	})
}

func (s *SourceDB) update(adapterID, what string, set map[string]any) error {
	res, err := sq.Update("dataset_sources").SetMap(set).
		Where(sq.Eq{"adapter_id": adapterID}).
		RunWith(s.db).Exec()
	if err != nil {
		return fmt.Errorf("%s for %s: %w", what, adapterID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%s: unknown source %s", what, adapterID)
	}
	return nil
}

// ListSources returns every row ordered by adapter id.
func (s *SourceDB) ListSources() ([]Source, error) {
	rows, err := sq.Select("adapter_id", "description", "source_url", "license",
		"last_check", "last_status", "last_error", "last_fetch", "locales", "updated_at").
		From("dataset_sources").OrderBy("adapter_id").
		RunWith(s.db).Query()
	if err != nil {
		return nil, fmt.Errorf("list sources: %w", err)
	}
	defer rows.Close()

	var sources []Source
	for rows.Next() {
		var src Source
		if err := rows.Scan(&src.AdapterID, &src.Description, &src.SourceURL, &src.License,
			&src.LastCheck, &src.LastStatus, &src.LastError, &src.LastFetch, &src.Locales, &src.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan source: %w", err)
		}
		sources = append(sources, src)
	}
	return sources, rows.Err()
}
