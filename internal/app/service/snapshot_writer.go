package service

import (
	"context"
	"sync"

	"github.com/ikkim/grocery-cart/internal/app/model"
	"github.com/ikkim/grocery-cart/internal/app/repository"
	"github.com/ikkim/grocery-cart/pkg/logger"
)

// SnapshotWriter saves cart snapshots off the request path. One worker
// performs the saves, so they never overlap; a snapshot scheduled while a
// save is in flight replaces any older pending one.
type SnapshotWriter struct {
	repo repository.CartSnapshotRepository

	saveMu sync.Mutex

	mu      sync.Mutex
	pending []model.LineItem
	dirty   bool
	closed  bool

	wake chan struct{}
	done chan struct{}
}

func NewSnapshotWriter(repo repository.CartSnapshotRepository) *SnapshotWriter {
	w := &SnapshotWriter{
		repo: repo,
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
	go w.run()
	return w
}

// Schedule queues a copy of items for saving. After Close it saves inline.
func (w *SnapshotWriter) Schedule(items []model.LineItem) {
	snapshot := model.CloneItems(items)

	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		<-w.done
		w.save(snapshot)
		return
	}
	if w.dirty {
		logger.Debug("Replacing pending cart snapshot", map[string]interface{}{
			"count": len(snapshot),
		})
	}
	w.pending = snapshot
	w.dirty = true
	select {
	case w.wake <- struct{}{}:
	default:
	}
	w.mu.Unlock()
}

// Close flushes the pending snapshot and stops the worker.
func (w *SnapshotWriter) Close() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		<-w.done
		return
	}
	w.closed = true
	w.mu.Unlock()

	close(w.wake)
	<-w.done
}

func (w *SnapshotWriter) run() {
	defer close(w.done)
	for range w.wake {
		w.flush()
	}
	w.flush()
}

func (w *SnapshotWriter) flush() {
	w.mu.Lock()
	if !w.dirty {
		w.mu.Unlock()
		return
	}
	snapshot := w.pending
	w.pending = nil
	w.dirty = false
	w.mu.Unlock()

	w.save(snapshot)
}

func (w *SnapshotWriter) save(items []model.LineItem) {
	w.saveMu.Lock()
	defer w.saveMu.Unlock()
	w.repo.Save(context.Background(), items)
}
