package lib

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
)

var ErrScriptNotFound = errors.New("script not found")

// StoredScript is a row of the scripts table.
type StoredScript struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Source    string    `db:"source"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Parse parses the stored source. Diagnostics name the script as
// "store:<name>".
func (s StoredScript) Parse() (Script, error) {
	return NewScript(s.Name, "store:"+s.Name, s.Source)
}

// Store keeps script sources in postgres or sqlite. Only sources that parse
// are accepted.
type Store struct {
	db     *sqlx.DB
	driver string
	logger *slog.Logger
}

func OpenStore(ctx context.Context, driver string, dsn string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if driver != DriverPostgres && driver != DriverSQLite {
		return nil, fmt.Errorf("unsupported store driver '%s'", driver)
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", driver, err)
	}
	if driver == DriverSQLite {
		// sqlite allows a single writer
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to %s store: %w", driver, err)
	}

	s := &Store{
		db:     db,
		driver: driver,
		logger: logger.With("store", driver),
	}
	if err := s.requireScriptsTable(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	s.logger.Debug("store opened")
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) requireScriptsTable(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS scripts (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		source TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`)
	return err
}

// Save parses source and, if it is valid, inserts it or replaces the source
// of the script with the same name.
func (s *Store) Save(ctx context.Context, name string, source string) (StoredScript, error) {
	if name == "" {
		return StoredScript{}, errors.New("script name is required")
	}
	if _, err := NewScript(name, name, source); err != nil {
		return StoredScript{}, err
	}

	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx, s.rebind(`
		INSERT INTO scripts (id, name, source, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (name) DO UPDATE SET source = excluded.source, updated_at = excluded.updated_at
	`), uuid.NewString(), name, source, now, now)
	if err != nil {
		return StoredScript{}, fmt.Errorf("failed to save script: %w", err)
	}

	s.logger.Info("script saved", "name", name, "bytes", len(source))
	return s.Load(ctx, name)
}

func (s *Store) Load(ctx context.Context, name string) (StoredScript, error) {
	var script StoredScript
	err := s.db.GetContext(ctx, &script, s.rebind(`
		SELECT id, name, source, created_at, updated_at FROM scripts WHERE name = ?
	`), name)
	if errors.Is(err, sql.ErrNoRows) {
		return StoredScript{}, fmt.Errorf("%w: %s", ErrScriptNotFound, name)
	}
	if err != nil {
		return StoredScript{}, fmt.Errorf("failed to load script: %w", err)
	}
	return script, nil
}

func (s *Store) List(ctx context.Context) ([]StoredScript, error) {
	scripts := []StoredScript{}
	err := s.db.SelectContext(ctx, &scripts, `
		SELECT id, name, source, created_at, updated_at FROM scripts ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list scripts: %w", err)
	}
	return scripts, nil
}

func (s *Store) Delete(ctx context.Context, name string) error {
	result, err := s.db.ExecContext(ctx, s.rebind(`DELETE FROM scripts WHERE name = ?`), name)
	if err != nil {
		return fmt.Errorf("failed to delete script: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrScriptNotFound, name)
	}

	s.logger.Info("script deleted", "name", name)
	return nil
}

// rebind turns "?" placeholders into the driver's style, "$1", "$2", ...
// for postgres.
func (s *Store) rebind(query string) string {
	return sqlx.Rebind(sqlx.BindType(s.driver), query)
}
