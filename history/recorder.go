// Package history persists completed rolls off the frame loop
package history

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/lixenwraith/dice-tray/event"
	"github.com/lixenwraith/dice-tray/storage"
)

// writeTimeout bounds a single store write
const writeTimeout = 2 * time.Second

// Recorder turns RollResolved events into stored rolls
// The bus handler never blocks: rolls are handed to a buffered queue drained by one writer goroutine
type Recorder struct {
	store storage.RollStore
	die   string
	newID func() string

	mu     sync.Mutex
	queue  chan storage.Roll
	closed bool
	wg     sync.WaitGroup

	written atomic.Int64
	dropped atomic.Int64
	failed  atomic.Int64
}

// NewRecorder creates a recorder for rolls of die with a queue of size entries
func NewRecorder(store storage.RollStore, die string, size int) *Recorder {
	if size < 1 {
		size = 1
	}
	return &Recorder{
		store: store,
		die:   die,
		newID: uuid.NewString,
		queue: make(chan storage.Roll, size),
	}
}

// Start launches the writer; it exits when ctx is cancelled or Close drains the queue
func (r *Recorder) Start(ctx context.Context) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case roll, ok := <-r.queue:
				if !ok {
					return
				}
				r.write(ctx, roll)
			}
		}
	}()
}

func (r *Recorder) write(ctx context.Context, roll storage.Roll) {
	wctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	if err := r.store.RecordRoll(wctx, roll); err != nil {
		r.failed.Add(1)
		log.Printf("history: record roll %s: %v", roll.ID, err)
		return
	}
	r.written.Add(1)
}

// Attach subscribes to resolved rolls on bus; returns the unsubscribe func
func (r *Recorder) Attach(bus *event.Bus) func() {
	id := bus.Subscribe(r.handle, event.EventRollResolved)
	return func() { bus.Unsubscribe(id) }
}

func (r *Recorder) handle(ev event.Event) {
	p, ok := ev.Payload.(*event.RollResolvedPayload)
	if !ok {
		return
	}
	r.Enqueue(storage.Roll{
		ID:         r.newID(),
		Session:    ev.Session,
		Die:        r.die,
		Faces:      p.Faces,
		Face:       p.Face,
		Source:     p.Source.String(),
		Reason:     p.Reason.String(),
		Distance:   p.Distance,
		StartedAt:  p.StartedAt,
		ResolvedAt: p.ResolvedAt,
	})
}

// Enqueue hands roll to the writer, dropping it when the queue is full or closed
func (r *Recorder) Enqueue(roll storage.Roll) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		r.dropped.Add(1)
		return false
	}
	select {
	case r.queue <- roll:
		return true
	default:
		r.dropped.Add(1)
		log.Printf("history: queue full, dropped roll %s", roll.ID)
		return false
	}
}

// Close stops accepting rolls and waits for queued ones to be written
func (r *Recorder) Close() {
	r.mu.Lock()
	if !r.closed {
		r.closed = true
		close(r.queue)
	}
	r.mu.Unlock()
	r.wg.Wait()
}

// Stats returns written, dropped and failed counts
func (r *Recorder) Stats() (written, dropped, failed int64) {
	return r.written.Load(), r.dropped.Load(), r.failed.Load()
}
