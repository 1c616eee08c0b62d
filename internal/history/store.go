package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"marquee/internal/config"
)

// timeLayout is fixed width so created_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const entryColumns = "id, record_uuid, tracker, name, status, torrent_path, torrent_url, message, created_at"

// Store is the SQLite-backed attempt log.
type Store struct {
	db   *sql.DB
	path string
}

// Open connects to the database at path, creating it when missing.
func Open(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("history path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	store := &Store{db: db, path: path}
	if err := store.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// OpenFromConfig opens the configured history database. It returns nil
// without error when history is disabled.
func OpenFromConfig(cfg *config.Config) (*Store, error) {
	if cfg == nil || !cfg.History.Enabled {
		return nil, nil
	}
	return Open(cfg.History.Path)
}

// Path returns the database file location.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record appends an attempt. Missing IDs and timestamps are filled in and
// written back to entry. A nil store discards the entry.
func (s *Store) Record(ctx context.Context, entry *Entry) error {
	if s == nil {
		return nil
	}
	if entry == nil {
		return errors.New("entry is nil")
	}
	if strings.TrimSpace(entry.Tracker) == "" || strings.TrimSpace(entry.Name) == "" {
		return errors.New("entry requires tracker and name")
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Status == "" {
		entry.Status = StatusPrepared
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO attempts (`+entryColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID,
		entry.RecordUUID,
		strings.ToUpper(entry.Tracker),
		entry.Name,
		string(entry.Status),
		nullableString(entry.TorrentPath),
		nullableString(entry.TorrentURL),
		nullableString(entry.Message),
		entry.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("insert attempt: %w", err)
	}
	return nil
}

// List returns the most recent attempts, newest first. A non-positive limit
// returns every row.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	if s == nil {
		return nil, nil
	}
	query := `SELECT ` + entryColumns + ` FROM attempts ORDER BY created_at DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attempts: %w", err)
	}
	return entries, nil
}

// Latest returns the newest attempt for a record on one tracker, or nil.
func (s *Store) Latest(ctx context.Context, recordUUID, tracker string) (*Entry, error) {
	if s == nil {
		return nil, nil
	}
	row := s.db.QueryRowContext(ctx,
		`SELECT `+entryColumns+` FROM attempts
         WHERE record_uuid = ? AND tracker = ?
         ORDER BY created_at DESC, rowid DESC LIMIT 1`,
		recordUUID,
		strings.ToUpper(strings.TrimSpace(tracker)),
	)
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest attempt: %w", err)
	}
	return entry, nil
}

func scanEntry(scanner interface{ Scan(dest ...any) error }) (*Entry, error) {
	var (
		entry       Entry
		status      string
		torrentPath sql.NullString
		torrentURL  sql.NullString
		message     sql.NullString
		createdRaw  string
	)
	if err := scanner.Scan(
		&entry.ID,
		&entry.RecordUUID,
		&entry.Tracker,
		&entry.Name,
		&status,
		&torrentPath,
		&torrentURL,
		&message,
		&createdRaw,
	); err != nil {
		return nil, err
	}
	entry.Status = Status(status)
	entry.TorrentPath = torrentPath.String
	entry.TorrentURL = torrentURL.String
	entry.Message = message.String
	if ts, err := time.Parse(time.RFC3339Nano, createdRaw); err == nil {
		entry.CreatedAt = ts
	}
	return &entry, nil
}

func nullableString(value string) any {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return value
}
