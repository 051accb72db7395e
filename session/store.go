package session

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"
)

// ErrEntryNotFound indicates the requested entry doesn't exist.
var ErrEntryNotFound = errors.New("entry not found")

// Store persists session entries in SQLite. Entry payloads are stored as
// canonical CBOR blobs keyed by sequence number.
type Store struct {
	db     *sql.DB
	dbPath string
	mu     sync.Mutex
}

// Open opens (creating if necessary) a history database at dbPath.
func Open(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Set busy timeout for concurrent access
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS entries (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		data BLOB NOT NULL
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating table: %w", err)
	}

	return &Store{db: db, dbPath: dbPath}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Append records one entry, assigning and returning its sequence number.
func (s *Store) Append(e *Entry) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := MarshalEntry(e)
	if err != nil {
		return 0, fmt.Errorf("encoding entry: %w", err)
	}

	res, err := s.db.Exec("INSERT INTO entries (data) VALUES (?)", data)
	if err != nil {
		return 0, fmt.Errorf("saving entry: %w", err)
	}
	seq, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading sequence: %w", err)
	}
	e.Seq = seq
	return seq, nil
}

// Get retrieves one entry by sequence number.
func (s *Store) Get(seq int64) (*Entry, error) {
	var data []byte
	err := s.db.QueryRow("SELECT data FROM entries WHERE seq = ?", seq).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("querying entry: %w", err)
	}
	e, err := UnmarshalEntry(data)
	if err != nil {
		return nil, err
	}
	e.Seq = seq
	return e, nil
}

// Recent returns up to limit most recent entries, oldest first.
func (s *Store) Recent(limit int) ([]*Entry, error) {
	rows, err := s.db.Query(
		"SELECT seq, data FROM entries ORDER BY seq DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("querying entries: %w", err)
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		var seq int64
		var data []byte
		if err := rows.Scan(&seq, &data); err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}
		e, err := UnmarshalEntry(data)
		if err != nil {
			return nil, err
		}
		e.Seq = seq
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating entries: %w", err)
	}

	// Reverse into chronological order.
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries, nil
}

// Count returns the number of stored entries.
func (s *Store) Count() (int64, error) {
	var n int64
	if err := s.db.QueryRow("SELECT COUNT(*) FROM entries").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting entries: %w", err)
	}
	return n, nil
}
