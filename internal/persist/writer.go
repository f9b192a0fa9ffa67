// Package persist runs save commands produced by the store against a storage
// backend, off the caller's goroutine.
package persist

import (
	"container/heap"
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sandeepkv93/studyquest/internal/storage"
)

// SaveCommand asks for Data to be written under FileID. Seq orders commands;
// a zero Seq is assigned on submit.
type SaveCommand struct {
	Seq    uint64
	FileID string
	Data   []byte
}

type Result struct {
	Seq    uint64
	FileID string
	Err    error
	At     time.Time
}

// Executor accepts save commands. Submit must not block on I/O.
type Executor interface {
	Submit(SaveCommand)
}

type queueItem struct {
	cmd SaveCommand
}

type commandQueue []queueItem

func (q commandQueue) Len() int { return len(q) }

func (q commandQueue) Less(i, j int) bool {
	return q[i].cmd.Seq < q[j].cmd.Seq
}

func (q commandQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
}

func (q *commandQueue) Push(x any) {
	*q = append(*q, x.(queueItem))
}

func (q *commandQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[0 : n-1]
	return item
}

// Writer executes save commands one at a time in submission order. When
// several commands for the same file are pending only the newest is written.
type Writer struct {
	mu       sync.Mutex
	idle     *sync.Cond
	backend  storage.Backend
	queue    commandQueue
	latest   map[string]uint64
	inflight bool
	nextSeq  uint64
	results  chan Result
	wakeup   chan struct{}
	stopCh   chan struct{}
	doneCh   chan struct{}
	started  bool
	stopped  bool
	now      func() time.Time

	written    uint64
	failed     uint64
	superseded uint64
	dropped    uint64
	rejected   uint64
}

func NewWriter(backend storage.Backend, resultBuffer int) *Writer {
	if resultBuffer <= 0 {
		resultBuffer = 1
	}
	w := &Writer{
		backend: backend,
		queue:   make(commandQueue, 0),
		latest:  make(map[string]uint64),
		results: make(chan Result, resultBuffer),
		wakeup:  make(chan struct{}, 1),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
		now:     time.Now,
	}
	w.idle = sync.NewCond(&w.mu)
	return w
}

// Results delivers the outcome of every executed command. Outcomes are
// dropped rather than blocking the writer when nobody reads them.
func (w *Writer) Results() <-chan Result {
	return w.results
}

func (w *Writer) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started {
		return
	}
	w.started = true
	heap.Init(&w.queue)
	go w.loop()
}

// Stop writes everything still queued, then closes Results.
func (w *Writer) Stop() {
	w.mu.Lock()
	if !w.started || w.stopped {
		w.mu.Unlock()
		return
	}
	w.stopped = true
	close(w.stopCh)
	w.mu.Unlock()
	<-w.doneCh
}

func (w *Writer) Submit(cmd SaveCommand) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		atomic.AddUint64(&w.rejected, 1)
		return
	}
	if cmd.Seq == 0 {
		w.nextSeq++
		cmd.Seq = w.nextSeq
	} else if cmd.Seq > w.nextSeq {
		w.nextSeq = cmd.Seq
	}
	heap.Push(&w.queue, queueItem{cmd: cmd})
	if cmd.Seq > w.latest[cmd.FileID] {
		w.latest[cmd.FileID] = cmd.Seq
	}
	w.signalWakeup()
}

// Flush blocks until every command submitted so far has been executed.
func (w *Writer) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.started {
		return
	}
	for len(w.queue) > 0 || w.inflight {
		w.idle.Wait()
	}
}

func (w *Writer) Pending() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.queue)
}

func (w *Writer) Written() uint64    { return atomic.LoadUint64(&w.written) }
func (w *Writer) Failed() uint64     { return atomic.LoadUint64(&w.failed) }
func (w *Writer) Superseded() uint64 { return atomic.LoadUint64(&w.superseded) }
func (w *Writer) Dropped() uint64    { return atomic.LoadUint64(&w.dropped) }
func (w *Writer) Rejected() uint64   { return atomic.LoadUint64(&w.rejected) }

func (w *Writer) loop() {
	defer close(w.doneCh)
	defer close(w.results)

	ctx := context.Background()
	for {
		cmd, ok := w.next()
		if !ok {
			select {
			case <-w.wakeup:
				continue
			case <-w.stopCh:
				if w.Pending() > 0 {
					continue
				}
				return
			}
		}

		err := w.backend.Save(ctx, cmd.FileID, cmd.Data)
		if err != nil {
			atomic.AddUint64(&w.failed, 1)
		} else {
			atomic.AddUint64(&w.written, 1)
		}
		w.publish(Result{Seq: cmd.Seq, FileID: cmd.FileID, Err: err, At: w.now()})
		w.finish()
	}
}

// next pops the oldest command that is still the newest for its file.
func (w *Writer) next() (SaveCommand, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for len(w.queue) > 0 {
		item := heap.Pop(&w.queue).(queueItem)
		if w.latest[item.cmd.FileID] != item.cmd.Seq {
			atomic.AddUint64(&w.superseded, 1)
			continue
		}
		delete(w.latest, item.cmd.FileID)
		w.inflight = true
		return item.cmd, true
	}
	w.idle.Broadcast()
	return SaveCommand{}, false
}

func (w *Writer) finish() {
	w.mu.Lock()
	w.inflight = false
	if len(w.queue) == 0 {
		w.idle.Broadcast()
	}
	w.mu.Unlock()
}

func (w *Writer) publish(r Result) {
	select {
	case w.results <- r:
	default:
		atomic.AddUint64(&w.dropped, 1)
	}
}

func (w *Writer) signalWakeup() {
	select {
	case w.wakeup <- struct{}{}:
	default:
	}
}

// Sync executes every command inline. It suits one-shot commands that exit
// right after mutating.
type Sync struct {
	Backend  storage.Backend
	OnResult func(Result)
	seq      uint64
}

func (s *Sync) Submit(cmd SaveCommand) {
	if cmd.Seq == 0 {
		cmd.Seq = atomic.AddUint64(&s.seq, 1)
	}
	err := s.Backend.Save(context.Background(), cmd.FileID, cmd.Data)
	if s.OnResult != nil {
		s.OnResult(Result{Seq: cmd.Seq, FileID: cmd.FileID, Err: err, At: time.Now()})
	}
}
