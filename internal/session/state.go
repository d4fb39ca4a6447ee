package session

import (
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// StateDB persists the generation session across restarts. One row, fixed
// id — the session is a single client-held document, not a history.
type StateDB struct {
	db *sql.DB
}

// OpenStateDB opens (or creates) the SQLite session database at
// dir/session.db and applies schema migrations.
func OpenStateDB(dir string) (*StateDB, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating state dir %s: %w", dir, err)
	}

	dbPath := filepath.Join(dir, "session.db")
	if err := runMigrations(dbPath); err != nil {
		return nil, fmt.Errorf("migrating session db: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening session db: %w", err)
	}

	return &StateDB{db: db}, nil
}

func runMigrations(dbPath string) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("loading migrations: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, "sqlite://"+dbPath)
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}

// SaveSession writes the current plan and prompt, replacing any prior row.
// The generating flag is deliberately not persisted: a restart must never
// resume in a stuck generating state.
func (s *StateDB) SaveSession(planID, planJSON, prompt string) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO session (id, plan_id, plan_json, prompt, updated_at)
		 VALUES (1, ?, ?, ?, CURRENT_TIMESTAMP)`,
		planID, planJSON, prompt,
	)
	return err
}

// LoadSession reads the persisted session. ok is false when no session has
// been saved or it was cleared.
func (s *StateDB) LoadSession() (planID, planJSON, prompt string, ok bool, err error) {
	err = s.db.QueryRow(
		`SELECT plan_id, plan_json, prompt FROM session WHERE id = 1`,
	).Scan(&planID, &planJSON, &prompt)
	if err == sql.ErrNoRows {
		return "", "", "", false, nil
	}
	if err != nil {
		return "", "", "", false, err
	}
	return planID, planJSON, prompt, true, nil
}

// ClearSession removes the persisted session.
func (s *StateDB) ClearSession() error {
	_, err := s.db.Exec(`DELETE FROM session WHERE id = 1`)
	return err
}

// Close closes the session database.
func (s *StateDB) Close() error {
	return s.db.Close()
}
