package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const (
	EngineFile   = "file"
	EngineSQLite = "sqlite"
	EngineMemory = "memory"

	sqliteFileName = "studyquest.db"
)

// NewByEngine builds the backend named by engine rooted at dir. The returned
// closer releases backend resources and is never nil.
func NewByEngine(engine string, dir string) (Backend, io.Closer, error) {
	switch strings.ToLower(strings.TrimSpace(engine)) {
	case "", EngineFile:
		b, err := NewFileBackend(dir)
		if err != nil {
			return nil, nil, err
		}
		return b, nopCloser{}, nil
	case EngineSQLite:
		if strings.TrimSpace(dir) == "" {
			return nil, nil, errors.New("storage: sqlite backend directory is required")
		}
		if err := ensureDir(dir); err != nil {
			return nil, nil, err
		}
		b, err := OpenSQLite(filepath.Join(dir, sqliteFileName))
		if err != nil {
			return nil, nil, err
		}
		return b, b, nil
	case EngineMemory:
		return NewMemoryBackend(), nopCloser{}, nil
	default:
		return nil, nil, errors.New("storage: unsupported engine: " + engine)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	return nil
}
