// Package storage persists named diagrams to a SQLite database. The
// core stays stateless: every call addresses a diagram by name, there
// is no open-diagram session.
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// ErrNotFound is returned when no stored diagram has the given name.
var ErrNotFound = errors.New("diagram not found")

// SavedDiagram is one row of the diagram store. Data holds the
// canonical full-form payload.
type SavedDiagram struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Title     string          `json:"title"`
	Data      json.RawMessage `json:"data,omitempty"`
	CreatedAt string          `json:"created_at"`
	UpdatedAt string          `json:"updated_at"`
}

// Store manages the diagrams database.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the diagram database and runs migrations.
func Open(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	dbPath := filepath.Join(dataDir, "diagrams.db")
	db, err := sql.Open("sqlite3", "file:"+dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)")
	if err != nil {
		return nil, fmt.Errorf("open diagram db: %w", err)
	}
	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate diagram db: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save upserts a diagram under a unique name. The payload must already
// be canonical full-form JSON; title is extracted for listings.
func (s *Store) Save(name, title string, data json.RawMessage) (*SavedDiagram, error) {
	id := uuid.New().String()
	_, err := s.db.Exec(
		`INSERT INTO diagrams (id, name, title, data) VALUES (?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET title = excluded.title, data = excluded.data, updated_at = datetime('now')`,
		id, name, title, string(data),
	)
	if err != nil {
		return nil, fmt.Errorf("save diagram: %w", err)
	}
	return s.Load(name)
}

// Load returns the stored diagram with the given name, payload
// included.
func (s *Store) Load(name string) (*SavedDiagram, error) {
	row := s.db.QueryRow(
		`SELECT id, name, title, data, created_at, updated_at FROM diagrams WHERE name = ?`,
		name,
	)
	var d SavedDiagram
	var data string
	err := row.Scan(&d.ID, &d.Name, &d.Title, &data, &d.CreatedAt, &d.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan diagram: %w", err)
	}
	d.Data = json.RawMessage(data)
	return &d, nil
}

// List returns every stored diagram ordered by name, payloads
// omitted.
func (s *Store) List() ([]SavedDiagram, error) {
	rows, err := s.db.Query(
		`SELECT id, name, title, created_at, updated_at FROM diagrams ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("list diagrams: %w", err)
	}
	defer rows.Close()

	var diagrams []SavedDiagram
	for rows.Next() {
		var d SavedDiagram
		if err := rows.Scan(&d.ID, &d.Name, &d.Title, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan diagram: %w", err)
		}
		diagrams = append(diagrams, d)
	}
	return diagrams, rows.Err()
}

// Delete permanently removes a stored diagram.
func (s *Store) Delete(name string) error {
	result, err := s.db.Exec(`DELETE FROM diagrams WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete diagram: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
