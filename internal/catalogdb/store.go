package catalogdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"reindexer/internal/catalog"
)

// Store is the SQLite catalog mirror.
type Store struct {
	db   *sql.DB
	path string
}

// Build describes one catalog run recorded alongside the datasets.
type Build struct {
	RunID        string
	BuiltAt      time.Time
	DataRoot     string
	DatasetCount int
	FilesBase    *string
	TemplateBase *string
}

// Open initializes or connects to the mirror database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create mirror directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Replace swaps the mirrored datasets for the contents of c and appends the
// build to the run history, all in one transaction. Datasets are rebuilt from
// scratch; builds accumulate.
func (s *Store) Replace(ctx context.Context, c *catalog.Catalog, build Build) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM datasets"); err != nil {
		return fmt.Errorf("clear datasets: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO datasets (
            game_id, dataset_id, source,
            population_file, population_template,
            players_file, players_template,
            sessions_file, sessions_template,
            events_file, events_template,
            raw_file, ogd_revision, start_date, end_date, date_modified, sessions
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare dataset insert: %w", err)
	}
	defer stmt.Close()

	for _, entry := range c.Entries() {
		var dateModified any
		if entry.DateModified != nil {
			dateModified = entry.DateModified.Raw
		}
		_, err := stmt.ExecContext(ctx,
			entry.GameID,
			entry.DatasetID,
			entry.Source.String(),
			fileValue(entry, catalog.KindPopulation),
			templateValue(entry, catalog.KindPopulation),
			fileValue(entry, catalog.KindPlayers),
			templateValue(entry, catalog.KindPlayers),
			fileValue(entry, catalog.KindSessions),
			templateValue(entry, catalog.KindSessions),
			fileValue(entry, catalog.KindEvents),
			templateValue(entry, catalog.KindEvents),
			fileValue(entry, catalog.KindRaw),
			nullableString(entry.OGDRevision),
			nullableString(entry.StartDate),
			nullableString(entry.EndDate),
			dateModified,
			nullableInt(entry.Sessions),
		)
		if err != nil {
			return fmt.Errorf("insert dataset %s/%s: %w", entry.GameID, entry.DatasetID, err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO builds (run_id, built_at, data_root, dataset_count, files_base, templates_base)
        VALUES (?, ?, ?, ?, ?, ?)`,
		build.RunID,
		build.BuiltAt.UnixNano(),
		build.DataRoot,
		build.DatasetCount,
		nullableString(build.FilesBase),
		nullableString(build.TemplateBase),
	)
	if err != nil {
		return fmt.Errorf("record build: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace: %w", err)
	}
	return nil
}

// DatasetCount returns the number of mirrored datasets.
func (s *Store) DatasetCount(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM datasets").Scan(&count); err != nil {
		return 0, fmt.Errorf("count datasets: %w", err)
	}
	return count, nil
}

// Sessions returns the mirrored session count for a dataset; ok is false when
// the dataset is missing or its count is null.
func (s *Store) Sessions(ctx context.Context, gameID, datasetID string) (int, bool, error) {
	var sessions sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		"SELECT sessions FROM datasets WHERE game_id = ? AND dataset_id = ?",
		gameID, datasetID,
	).Scan(&sessions)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("query sessions: %w", err)
	}
	return int(sessions.Int64), sessions.Valid, nil
}

// BuildCount returns the number of recorded builds.
func (s *Store) BuildCount(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM builds").Scan(&count); err != nil {
		return 0, fmt.Errorf("count builds: %w", err)
	}
	return count, nil
}

// LatestBuild returns the build with the newest build time.
func (s *Store) LatestBuild(ctx context.Context) (Build, error) {
	var (
		build     Build
		builtAt   int64
		files     sql.NullString
		templates sql.NullString
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT run_id, built_at, data_root, dataset_count, files_base, templates_base
        FROM builds ORDER BY built_at DESC, rowid DESC LIMIT 1`,
	).Scan(&build.RunID, &builtAt, &build.DataRoot, &build.DatasetCount, &files, &templates)
	if err != nil {
		return Build{}, fmt.Errorf("query latest build: %w", err)
	}
	build.BuiltAt = time.Unix(0, builtAt).UTC()
	if files.Valid {
		build.FilesBase = &files.String
	}
	if templates.Valid {
		build.TemplateBase = &templates.String
	}
	return build, nil
}

func fileValue(entry *catalog.Entry, kind catalog.Kind) any {
	if path, ok := entry.File(kind); ok {
		return path
	}
	return nil
}

func templateValue(entry *catalog.Entry, kind catalog.Kind) any {
	if tmpl, ok := entry.Template(kind); ok {
		return tmpl
	}
	return nil
}

func nullableString(value *string) any {
	if value == nil {
		return nil
	}
	return *value
}

func nullableInt(value *int) any {
	if value == nil {
		return nil
	}
	return *value
}
