// Package projects keeps the reusable project name registry in a local
// SQLite database so metadata entry offers known names instead of free text.
package projects

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/maruel/natural"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

var (
	ErrBlankName = errors.New("project name cannot be blank")
	ErrDuplicate = errors.New("project with this name already exists")
	ErrNotFound  = errors.New("no such project")
)

// Project is one registry entry.
type Project struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}

const schema = `
CREATE TABLE IF NOT EXISTS projects (
	id         INTEGER PRIMARY KEY,
	name       TEXT NOT NULL UNIQUE COLLATE NOCASE,
	created_at TEXT NOT NULL
);
`

// Store is the project registry. A single connection guarded by a mutex is
// plenty for this workload.
type Store struct {
	mu   sync.Mutex
	conn *sqlite.Conn
}

func Open(path string) (*Store, error) {
	conn, err := sqlite.OpenConn(path, sqlite.OpenReadWrite, sqlite.OpenCreate, sqlite.OpenWAL)
	if err != nil {
		return nil, fmt.Errorf("unable to open project store: %w", err)
	}
	if err := sqlitex.ExecuteScript(conn, schema, nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("unable to prepare project store: %w", err)
	}
	return &Store{conn: conn}, nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	return err
}

// List returns all projects in natural name order, so "site 2" sorts before
// "site 10".
func (s *Store) List() ([]Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Project
	err := sqlitex.Execute(s.conn, `SELECT id, name, created_at FROM projects`,
		&sqlitex.ExecOptions{ResultFunc: func(stmt *sqlite.Stmt) error {
			out = append(out, scanProject(stmt))
			return nil
		}})
	if err != nil {
		return nil, fmt.Errorf("unable to list projects: %w", err)
	}
	sort.Slice(out, func(i, j int) bool {
		return natural.Less(out[i].Name, out[j].Name)
	})
	return out, nil
}

// Add registers a new project name. Blank and duplicate names are rejected,
// name comparison ignores case.
func (s *Store) Add(name string) (Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Project{}, ErrBlankName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, found, err := s.findLocked(name); err != nil {
		return Project{}, err
	} else if found {
		return Project{}, fmt.Errorf("%s: %w", name, ErrDuplicate)
	}

	created := time.Now().UTC()
	err := sqlitex.Execute(s.conn, `INSERT INTO projects (name, created_at) VALUES (?, ?)`,
		&sqlitex.ExecOptions{Args: []any{name, created.Format(time.RFC3339)}})
	if err != nil {
		return Project{}, fmt.Errorf("unable to add project: %w", err)
	}
	return Project{ID: s.conn.LastInsertRowID(), Name: name, CreatedAt: created}, nil
}

// Rename changes a project name keeping its identity.
func (s *Store) Rename(oldName, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return ErrBlankName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cur, found, err := s.findLocked(oldName)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%s: %w", oldName, ErrNotFound)
	}
	if other, found, err := s.findLocked(newName); err != nil {
		return err
	} else if found && other.ID != cur.ID {
		return fmt.Errorf("%s: %w", newName, ErrDuplicate)
	}

	err = sqlitex.Execute(s.conn, `UPDATE projects SET name = ? WHERE id = ?`,
		&sqlitex.ExecOptions{Args: []any{newName, cur.ID}})
	if err != nil {
		return fmt.Errorf("unable to rename project: %w", err)
	}
	return nil
}

// Delete removes a project by name.
func (s *Store) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := sqlitex.Execute(s.conn, `DELETE FROM projects WHERE name = ? COLLATE NOCASE`,
		&sqlitex.ExecOptions{Args: []any{strings.TrimSpace(name)}})
	if err != nil {
		return fmt.Errorf("unable to delete project: %w", err)
	}
	if s.conn.Changes() == 0 {
		return fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	return nil
}

func (s *Store) findLocked(name string) (Project, bool, error) {
	var p Project
	var found bool
	err := sqlitex.Execute(s.conn, `SELECT id, name, created_at FROM projects WHERE name = ? COLLATE NOCASE`,
		&sqlitex.ExecOptions{
			Args: []any{name},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				found = true
				p = scanProject(stmt)
				return nil
			}})
	if err != nil {
		return Project{}, false, fmt.Errorf("unable to look up project: %w", err)
	}
	return p, found, nil
}

func scanProject(stmt *sqlite.Stmt) Project {
	created, _ := time.Parse(time.RFC3339, stmt.ColumnText(2))
	return Project{
		ID:        stmt.ColumnInt64(0),
		Name:      stmt.ColumnText(1),
		CreatedAt: created,
	}
}
