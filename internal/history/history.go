// Package history records recently opened files in a SQLite database so
// the open-file picker can offer them across sessions.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS recent_files (
	path        TEXT PRIMARY KEY,
	opened_at   TEXT NOT NULL DEFAULT (datetime('now')),
	open_count  INTEGER NOT NULL DEFAULT 1
);

CREATE INDEX IF NOT EXISTS idx_recent_files_opened ON recent_files(opened_at);
`

// Store is the recent-files database. The zero value is not usable;
// call Open.
type Store struct {
	db *sql.DB
}

// DefaultPath places the database under the XDG data directory.
func DefaultPath() (string, error) {
	return xdg.DataFile("quill/history.db")
}

// Open opens (or creates) the database at path and ensures the schema
// exists.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create history schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Touch records that path was opened now, bumping its open count.
func (s *Store) Touch(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}
	_, err = s.db.Exec(`
		INSERT INTO recent_files (path) VALUES (?)
		ON CONFLICT(path) DO UPDATE SET
			opened_at = datetime('now'),
			open_count = open_count + 1`, abs)
	if err != nil {
		return fmt.Errorf("record open: %w", err)
	}
	return nil
}

// Forget drops path from the history, for files that no longer exist.
func (s *Store) Forget(path string) error {
	if _, err := s.db.Exec(`DELETE FROM recent_files WHERE path = ?`, path); err != nil {
		return fmt.Errorf("forget path: %w", err)
	}
	return nil
}

// Recent returns up to limit paths, most recently opened first.
func (s *Store) Recent(limit int) ([]string, error) {
	rows, err := s.db.Query(`
		SELECT path FROM recent_files
		ORDER BY opened_at DESC, open_count DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent files: %w", err)
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("scan recent file: %w", err)
		}
		paths = append(paths, p)
	}
	return paths, rows.Err()
}
