package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var (
	ErrNotFound      = errors.New("storage: not found")
	ErrInvalidFileID = errors.New("storage: invalid file id")
)

// Backend durably stores one blob per file id. The last completed Save wins;
// Load returns ErrNotFound when nothing has been saved under the id.
type Backend interface {
	Save(ctx context.Context, fileID string, data []byte) error
	Load(ctx context.Context, fileID string) ([]byte, error)
}

// Lister is implemented by backends that can enumerate saved file ids.
type Lister interface {
	List(ctx context.Context) ([]string, error)
}

func validateFileID(fileID string) error {
	trimmed := strings.TrimSpace(fileID)
	if trimmed == "" || trimmed != fileID {
		return fmt.Errorf("%w: %q", ErrInvalidFileID, fileID)
	}
	if filepath.Base(fileID) != fileID || fileID == "." || fileID == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidFileID, fileID)
	}
	return nil
}
