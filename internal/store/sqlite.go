package store

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"sync"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite" // pure Go SQLite driver
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SQLiteStore persists documents in a single SQLite database. Controlled
// devices and history rows are keyed by target so several appliances can
// share one file.
type SQLiteStore struct {
	conn *sql.DB
	mu   sync.Mutex
}

// OpenSQLite opens or creates the database at path and applies any pending
// schema migrations.
func OpenSQLite(path string) (*SQLiteStore, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)", path)

	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := runMigrations(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	return &SQLiteStore{conn: conn}, nil
}

func runMigrations(conn *sql.DB) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}

	driver, err := migratesqlite.WithInstance(conn, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("create driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}

// Load reads the document for target. A target with no rows yields a fresh
// empty document.
func (s *SQLiteStore) Load(target string) (*Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := NewDocument()

	rows, err := s.conn.Query("SELECT client_id FROM controlled_devices WHERE target = ? ORDER BY client_id", target)
	if err != nil {
		return nil, fmt.Errorf("query controlled devices: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan controlled device: %w", err)
		}
		doc.ControlledDevices = append(doc.ControlledDevices, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate controlled devices: %w", err)
	}

	histRows, err := s.conn.Query("SELECT client_id, day, query_count FROM query_history WHERE target = ?", target)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer histRows.Close()

	for histRows.Next() {
		var clientID, day string
		var count int
		if err := histRows.Scan(&clientID, &day, &count); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		if doc.History[clientID] == nil {
			doc.History[clientID] = map[string]int{}
		}
		doc.History[clientID][day] = count
	}
	if err := histRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}

	doc.Normalize()
	return doc, nil
}

// Save replaces the target's stored document atomically.
func (s *SQLiteStore) Save(target string, doc *Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.conn.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM controlled_devices WHERE target = ?", target); err != nil {
		return fmt.Errorf("clear controlled devices: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM query_history WHERE target = ?", target); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}

	ctrlStmt, err := tx.Prepare("INSERT INTO controlled_devices (target, client_id) VALUES (?, ?)")
	if err != nil {
		return fmt.Errorf("prepare controlled insert: %w", err)
	}
	defer ctrlStmt.Close()

	for _, id := range doc.ControlledDevices {
		if _, err := ctrlStmt.Exec(target, id); err != nil {
			return fmt.Errorf("insert controlled device %s: %w", id, err)
		}
	}

	histStmt, err := tx.Prepare("INSERT INTO query_history (target, client_id, day, query_count) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("prepare history insert: %w", err)
	}
	defer histStmt.Close()

	for clientID, days := range doc.History {
		for day, count := range days {
			if _, err := histStmt.Exec(target, clientID, day, count); err != nil {
				return fmt.Errorf("insert history %s/%s: %w", clientID, day, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
