package main

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

func TestPumpEventsClosesOnNil(t *testing.T) {
	queue := []tcell.Event{
		tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone),
		tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone),
	}
	poll := func() tcell.Event {
		if len(queue) == 0 {
			return nil
		}
		ev := queue[0]
		queue = queue[1:]
		return ev
	}

	events := make(chan tcell.Event, 4)
	pumpEvents(poll, events, make(chan struct{}))

	n := 0
	for range events {
		n++
	}
	if n != 2 {
		t.Errorf("Expected 2 forwarded events, got %d", n)
	}
}

func TestPumpEventsStopsWhenReaderLeaves(t *testing.T) {
	// Poll never runs dry and nobody reads: the pump must still exit once done closes
	poll := func() tcell.Event {
		return tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)
	}
	events := make(chan tcell.Event, 1)
	done := make(chan struct{})

	exited := make(chan struct{})
	go func() {
		pumpEvents(poll, events, done)
		close(exited)
	}()

	close(done)
	select {
	case <-exited:
	case <-time.After(2 * time.Second):
		t.Fatal("pump blocked on a full channel after done closed")
	}
}
