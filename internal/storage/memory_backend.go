package storage

import (
	"context"
	"sort"
	"sync"
)

type MemoryBackend struct {
	mu    sync.RWMutex
	files map[string][]byte
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{files: make(map[string][]byte)}
}

func (b *MemoryBackend) Save(ctx context.Context, fileID string, data []byte) error {
	if err := validateFileID(fileID); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.files[fileID] = append([]byte(nil), data...)
	return nil
}

func (b *MemoryBackend) Load(ctx context.Context, fileID string) ([]byte, error) {
	if err := validateFileID(fileID); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	data, ok := b.files[fileID]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), data...), nil
}

func (b *MemoryBackend) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]string, 0, len(b.files))
	for id := range b.files {
		out = append(out, id)
	}
	sort.Strings(out)
	return out, nil
}
