package storage

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func setupSQLite(t *testing.T) *SQLiteBackend {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "studyquest-test.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := MigrateUp(db); err != nil {
		t.Fatalf("migrate up: %v", err)
	}
	backend, err := NewSQLiteBackend(db)
	if err != nil {
		t.Fatalf("new backend: %v", err)
	}
	return backend
}

func setupFile(t *testing.T) *FileBackend {
	t.Helper()
	backend, err := NewFileBackend(filepath.Join(t.TempDir(), "saves"))
	if err != nil {
		t.Fatalf("new file backend: %v", err)
	}
	return backend
}

func backends(t *testing.T) map[string]Backend {
	return map[string]Backend{
		"file":   setupFile(t),
		"sqlite": setupSQLite(t),
		"memory": NewMemoryBackend(),
	}
}

func TestBackendSaveLoadLastWriteWins(t *testing.T) {
	for name, backend := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := testContext(t)
			if _, err := backend.Load(ctx, "StudyQuest_Alice.json"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound before first save, got: %v", err)
			}
			if err := backend.Save(ctx, "StudyQuest_Alice.json", []byte("first")); err != nil {
				t.Fatalf("save first: %v", err)
			}
			if err := backend.Save(ctx, "StudyQuest_Alice.json", []byte("second")); err != nil {
				t.Fatalf("save second: %v", err)
			}
			got, err := backend.Load(ctx, "StudyQuest_Alice.json")
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if string(got) != "second" {
				t.Fatalf("expected last write to win, got %q", got)
			}
		})
	}
}

func TestBackendListsSavedIDs(t *testing.T) {
	for name, backend := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := testContext(t)
			for _, id := range []string{"StudyQuest_b.json", "StudyQuest_a.json"} {
				if err := backend.Save(ctx, id, []byte("{}")); err != nil {
					t.Fatalf("save %s: %v", id, err)
				}
			}
			lister, ok := backend.(Lister)
			if !ok {
				t.Fatalf("%s backend does not list", name)
			}
			ids, err := lister.List(ctx)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if len(ids) != 2 || ids[0] != "StudyQuest_a.json" || ids[1] != "StudyQuest_b.json" {
				t.Fatalf("unexpected ids: %v", ids)
			}
		})
	}
}

func TestBackendRejectsPathLikeIDs(t *testing.T) {
	for name, backend := range backends(t) {
		t.Run(name, func(t *testing.T) {
			for _, id := range []string{"", "../x.json", "dir/x.json", " x.json", ".."} {
				if err := backend.Save(testContext(t), id, []byte("{}")); !errors.Is(err, ErrInvalidFileID) {
					t.Fatalf("save %q: expected ErrInvalidFileID, got %v", id, err)
				}
			}
		})
	}
}

func TestFileBackendTreatsEmptyFileAsAbsent(t *testing.T) {
	backend := setupFile(t)
	if err := os.MkdirAll(backend.Dir(), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(backend.Path("StudyQuest_x.json"), []byte("  \n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := backend.Load(testContext(t), "StudyQuest_x.json"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}

func TestFileBackendLeavesNoTempFile(t *testing.T) {
	backend := setupFile(t)
	if err := backend.Save(testContext(t), "StudyQuest_x.json", []byte("{}")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := os.Stat(backend.Path("StudyQuest_x.json") + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("expected temp file to be renamed away, stat err: %v", err)
	}
}

func TestBackendHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := NewMemoryBackend().Save(ctx, "StudyQuest_x.json", nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if _, err := setupFile(t).Load(ctx, "StudyQuest_x.json"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestSQLiteBackendTracksUpdatedAt(t *testing.T) {
	backend := setupSQLite(t)
	fixed := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	backend.now = func() time.Time { return fixed }
	if err := backend.Save(testContext(t), "StudyQuest_x.json", []byte("{}")); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := backend.UpdatedAt(testContext(t), "StudyQuest_x.json")
	if err != nil {
		t.Fatalf("updated at: %v", err)
	}
	if !got.Equal(fixed) {
		t.Fatalf("unexpected updated_at: %v", got)
	}
	if _, err := backend.UpdatedAt(testContext(t), "StudyQuest_y.json"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}

func TestNewByEngine(t *testing.T) {
	dir := t.TempDir()
	for _, engine := range []string{"", "file", "SQLite", "memory"} {
		backend, closer, err := NewByEngine(engine, dir)
		if err != nil {
			t.Fatalf("engine %q: %v", engine, err)
		}
		if err := backend.Save(testContext(t), "StudyQuest_e.json", []byte("{}")); err != nil {
			t.Fatalf("engine %q save: %v", engine, err)
		}
		if err := closer.Close(); err != nil {
			t.Fatalf("engine %q close: %v", engine, err)
		}
	}
	if _, _, err := NewByEngine("postgres", dir); err == nil {
		t.Fatal("expected unsupported engine error")
	}
}
