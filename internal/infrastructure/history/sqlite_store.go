package history

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/doeshing/springprobe/internal/domain"
	"github.com/doeshing/springprobe/internal/ports"
)

// SQLiteStore persists check records in a SQLite database.
type SQLiteStore struct {
	db   *sql.DB
	path string
	mu   sync.Mutex
}

// NewSQLiteStore creates (or opens) the database at path. When the database
// cannot be opened the store degrades to a JSONL file next to it.
func NewSQLiteStore(path string) *SQLiteStore {
	_ = os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return &SQLiteStore{path: path}
	}
	store := &SQLiteStore{db: db, path: path}
	if err := store.init(); err != nil {
		db.Close()
		return &SQLiteStore{path: path}
	}
	return store
}

func (s *SQLiteStore) init() error {
	if s.db == nil {
		return os.ErrInvalid
	}
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS checks (
		id TEXT PRIMARY KEY,
		timestamp TEXT,
		module TEXT,
		base_url TEXT,
		status TEXT,
		health_status_code INTEGER,
		info_status_code INTEGER,
		elapsed_ms INTEGER,
		error TEXT
	);`)
	return err
}

// Save inserts a new record.
func (s *SQLiteStore) Save(record domain.CheckRecord) error {
	if s.db == nil {
		return s.fallback().Save(record)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(`INSERT INTO checks
		(id, timestamp, module, base_url, status, health_status_code, info_status_code, elapsed_ms, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		record.Timestamp.Format(domain.TimestampFormat),
		record.Module,
		record.BaseURL,
		string(record.Status),
		record.HealthStatusCode,
		record.InfoStatusCode,
		record.ElapsedMS,
		record.Error,
	)
	return err
}

// Records returns check entries, newest first (limit/search optional).
func (s *SQLiteStore) Records(limit int, search string) ([]domain.CheckRecord, error) {
	if s.db == nil {
		return s.fallback().Records(limit, search)
	}
	builder := strings.Builder{}
	builder.WriteString("SELECT id, timestamp, module, base_url, status, health_status_code, info_status_code, elapsed_ms, error FROM checks")
	var args []interface{}
	if search != "" {
		builder.WriteString(" WHERE module LIKE ? OR base_url LIKE ? OR status LIKE ?")
		pattern := "%" + search + "%"
		args = append(args, pattern, pattern, pattern)
	}
	builder.WriteString(" ORDER BY datetime(timestamp) DESC")
	if limit > 0 {
		builder.WriteString(" LIMIT ?")
		args = append(args, limit)
	}
	rows, err := s.db.Query(builder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var records []domain.CheckRecord
	for rows.Next() {
		var rec domain.CheckRecord
		var ts, status string
		if err := rows.Scan(&rec.ID, &ts, &rec.Module, &rec.BaseURL, &status,
			&rec.HealthStatusCode, &rec.InfoStatusCode, &rec.ElapsedMS, &rec.Error); err != nil {
			return nil, err
		}
		if t, err := time.Parse(domain.TimestampFormat, ts); err == nil {
			rec.Timestamp = t
		}
		rec.Status = domain.DeploymentStatus(status)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Clear deletes all check entries.
func (s *SQLiteStore) Clear() error {
	if s.db == nil {
		return s.fallback().Clear()
	}
	_, err := s.db.Exec("DELETE FROM checks")
	return err
}

// ExportJSON writes the checks table to a jsonl file.
func (s *SQLiteStore) ExportJSON(dest string) error {
	records, err := s.Records(0, "")
	if err != nil {
		return err
	}
	file, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer file.Close()
	for _, rec := range records {
		b, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		if _, err := file.Write(append(b, '\n')); err != nil {
			return err
		}
	}
	return nil
}

// Path returns the sqlite database path.
func (s *SQLiteStore) Path() string {
	return s.path
}

func (s *SQLiteStore) fallback() *FileStore {
	return &FileStore{path: s.path + ".jsonl"}
}

var _ ports.HistoryRepository = (*SQLiteStore)(nil)
