package persist

import (
	"fmt"
	"sync"
	"testing"

	"github.com/sandeepkv93/studyquest/internal/storage"
)

func TestWriterStressConcurrentSubmit(t *testing.T) {
	backend := storage.NewMemoryBackend()
	w := NewWriter(backend, 4096)
	w.Start()

	const workers = 8
	const perWorker = 200

	var wg sync.WaitGroup
	wg.Add(workers)
	for n := 0; n < workers; n++ {
		n := n
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				w.Submit(SaveCommand{
					FileID: fmt.Sprintf("StudyQuest_w%d.json", n),
					Data:   []byte(fmt.Sprintf("%d", i)),
				})
			}
		}()
	}
	wg.Wait()
	w.Flush()
	w.Stop()

	for n := 0; n < workers; n++ {
		got, err := backend.Load(testContext(t), fmt.Sprintf("StudyQuest_w%d.json", n))
		if err != nil {
			t.Fatalf("load worker %d: %v", n, err)
		}
		if string(got) != fmt.Sprint(perWorker-1) {
			t.Fatalf("worker %d: expected last write %d to win, got %q", n, perWorker-1, got)
		}
	}
	if total := w.Written() + w.Superseded(); total != workers*perWorker {
		t.Fatalf("every command must be written or superseded: written=%d superseded=%d", w.Written(), w.Superseded())
	}
	if w.Failed() != 0 {
		t.Fatalf("expected no failures, got %d", w.Failed())
	}
}
