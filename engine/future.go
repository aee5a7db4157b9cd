package engine

import (
	"context"
	"sync"
)

// Future is the one-shot result of an explicit roll
// An aborted or destroyed roll never completes its future; use Wait with a context to bound it
type Future struct {
	session SessionID
	done    chan struct{}
	once    sync.Once
	face    int
}

func newFuture(session SessionID) *Future {
	return &Future{session: session, done: make(chan struct{})}
}

// Session returns the roll session this future belongs to
func (f *Future) Session() SessionID {
	return f.session
}

// Done is closed when the face is available
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Face returns the result without blocking
func (f *Future) Face() (int, bool) {
	select {
	case <-f.done:
		return f.face, true
	default:
		return 0, false
	}
}

// Wait blocks until the result or ctx cancellation
func (f *Future) Wait(ctx context.Context) (int, error) {
	select {
	case <-f.done:
		return f.face, nil
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

func (f *Future) resolve(face int) {
	f.once.Do(func() {
		f.face = face
		close(f.done)
	})
}
