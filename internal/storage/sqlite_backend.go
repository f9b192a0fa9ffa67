package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteTimeLayout = time.RFC3339Nano

// SQLiteBackend stores every save as a row of the saves table.
type SQLiteBackend struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLiteBackend(db *sql.DB) (*SQLiteBackend, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	return &SQLiteBackend{db: db, now: time.Now}, nil
}

// OpenSQLite opens path and applies pending migrations.
func OpenSQLite(path string) (*SQLiteBackend, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable wal: %w", err)
	}
	if err := MigrateUp(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	backend, err := NewSQLiteBackend(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return backend, nil
}

func (b *SQLiteBackend) Close() error {
	return b.db.Close()
}

func (b *SQLiteBackend) Save(ctx context.Context, fileID string, data []byte) error {
	if err := validateFileID(fileID); err != nil {
		return err
	}
	_, err := b.db.ExecContext(ctx, `
		INSERT INTO saves (file_id, data, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(file_id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		fileID, string(data), b.now().UTC().Format(sqliteTimeLayout),
	)
	if err != nil {
		return fmt.Errorf("save %s: %w", fileID, err)
	}
	return nil
}

func (b *SQLiteBackend) Load(ctx context.Context, fileID string) ([]byte, error) {
	if err := validateFileID(fileID); err != nil {
		return nil, err
	}
	var data string
	err := b.db.QueryRowContext(ctx, `SELECT data FROM saves WHERE file_id = ?`, fileID).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load %s: %w", fileID, err)
	}
	if data == "" {
		return nil, ErrNotFound
	}
	return []byte(data), nil
}

func (b *SQLiteBackend) List(ctx context.Context) ([]string, error) {
	rows, err := b.db.QueryContext(ctx, `SELECT file_id FROM saves ORDER BY file_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// UpdatedAt reports when fileID was last written.
func (b *SQLiteBackend) UpdatedAt(ctx context.Context, fileID string) (time.Time, error) {
	var raw string
	err := b.db.QueryRowContext(ctx, `SELECT updated_at FROM saves WHERE file_id = ?`, fileID).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, ErrNotFound
		}
		return time.Time{}, err
	}
	return time.Parse(sqliteTimeLayout, raw)
}
