// Package sqlite stores runs in a SQLite database using the pure-Go
// modernc.org/sqlite driver. The schema is managed by golang-migrate from
// migrations embedded in the binary.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	stderrors "errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite"

	"github.com/matzehuels/blockfill/pkg/errors"
	"github.com/matzehuels/blockfill/pkg/store"
	"github.com/matzehuels/blockfill/pkg/tiling"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Store is a SQLite-backed [store.Store].
type Store struct {
	db     *sql.DB
	logger *log.Logger
}

// Option configures [Open].
type Option func(*Store)

// WithLogger routes migration output to l at debug level.
func WithLogger(l *log.Logger) Option { return func(s *Store) { s.logger = l } }

// Open opens (creating if needed) the database at path and migrates it to
// the latest schema version.
func Open(ctx context.Context, path string, opts ...Option) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "open sqlite %s", path)
	}
	// One connection keeps ":memory:" databases and migrations on the same handle.
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "ping sqlite %s", path)
	}

	s := &Store{db: db, logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.MigrateUp(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// MigrateUp runs all pending migrations. It is a no-op when the schema is
// current.
func (s *Store) MigrateUp() error {
	m, err := s.newMigrate()
	if err != nil {
		return err
	}
	// m is not closed: closing it would close s.db.
	if err := m.Up(); err != nil && !stderrors.Is(err, migrate.ErrNoChange) {
		return errors.Wrap(errors.ErrCodeStorage, err, "migration up failed")
	}
	return nil
}

// MigrateVersion returns the current schema version and dirty state.
func (s *Store) MigrateVersion() (version uint, dirty bool, err error) {
	m, err := s.newMigrate()
	if err != nil {
		return 0, false, err
	}
	version, dirty, err = m.Version()
	if stderrors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return version, dirty, err
}

func (s *Store) newMigrate() (*migrate.Migrate, error) {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("load embedded migrations: %w", err)
	}
	driver, err := migratesqlite.WithInstance(s.db, &migratesqlite.Config{})
	if err != nil {
		return nil, fmt.Errorf("create sqlite driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return nil, fmt.Errorf("create migrate instance: %w", err)
	}
	m.Log = migrateLogger{s.logger}
	return m, nil
}

func (s *Store) Save(ctx context.Context, run *store.Run) error {
	if err := store.Validate(run); err != nil {
		return err
	}
	data, err := tiling.MarshalTiling(run.Tiling)
	if err != nil {
		return fmt.Errorf("marshal tiling: %w", err)
	}
	t := run.Tiling
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO runs (id, name, created_at, strategy, width, height, seed, reason, rect_count, tiling)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			created_at = excluded.created_at,
			strategy = excluded.strategy,
			width = excluded.width,
			height = excluded.height,
			seed = excluded.seed,
			reason = excluded.reason,
			rect_count = excluded.rect_count,
			tiling = excluded.tiling`,
		run.ID, run.Name, run.CreatedAt.UnixMilli(), string(t.Strategy), t.Width, t.Height, t.Seed,
		string(t.Reason), len(t.Rects), string(data))
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "save run %s", run.ID)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, id string) (*store.Run, error) {
	if err := errors.ValidateRunID(id); err != nil {
		return nil, err
	}
	row := s.db.QueryRowContext(ctx, `SELECT id, name, created_at, tiling FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, store.NotFound(id)
	}
	return run, err
}

func (s *Store) List(ctx context.Context, opts store.ListOptions) ([]*store.Run, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = store.DefaultListLimit
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, created_at, tiling FROM runs
		WHERE ? = '' OR strategy = ?
		ORDER BY created_at DESC, id ASC
		LIMIT ?`, string(opts.Strategy), string(opts.Strategy), limit)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "list runs")
	}
	defer rows.Close()

	var out []*store.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "list runs")
	}
	return out, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	if err := errors.ValidateRunID(id); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "delete run %s", id)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return store.NotFound(id)
	}
	return nil
}

func (s *Store) Close() error { return s.db.Close() }

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (*store.Run, error) {
	var (
		run     store.Run
		created int64
		data    string
	)
	if err := sc.Scan(&run.ID, &run.Name, &created, &data); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "scan run")
	}
	t, err := tiling.UnmarshalTiling([]byte(data))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "decode run %s", run.ID)
	}
	run.CreatedAt = time.UnixMilli(created).UTC()
	run.Tiling = t
	return &run, nil
}

var _ store.Store = (*Store)(nil)
