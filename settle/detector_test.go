package settle

import (
	"errors"
	"testing"
	"time"
)

const step = time.Second / 60

var (
	quiet = Reading{LinearSpeed: 0.01, AngularSpeed: 0.01, Height: 1}
	busy  = Reading{LinearSpeed: 3, AngularSpeed: 0.01, Height: 1}
)

func newTestDetector(t *testing.T) *Detector {
	t.Helper()
	d, err := NewDetector(DefaultParams(1))
	if err != nil {
		t.Fatalf("NewDetector: %v", err)
	}
	return d
}

func TestDetector_QuietConfirms(t *testing.T) {
	d := newTestDetector(t)
	confirm := d.Params().Confirm

	var elapsed time.Duration
	for {
		elapsed += step
		if r := d.Check(quiet, step); r != ReasonNone {
			if r != ReasonQuiet {
				t.Fatalf("Expected quiet settle, got %s", r)
			}
			break
		}
		if elapsed > d.Params().Ceiling {
			t.Fatal("Never settled")
		}
	}
	if elapsed < confirm || elapsed > confirm+step {
		t.Errorf("Settled after %v, expected about %v", elapsed, confirm)
	}
}

func TestDetector_InterruptionRestartsWindow(t *testing.T) {
	d := newTestDetector(t)

	for i := 0; i < 25; i++ {
		if d.Check(quiet, step) != ReasonNone {
			t.Fatal("Settled too early")
		}
	}
	d.Check(busy, step)
	if d.Quiet() != 0 {
		t.Errorf("Busy reading must reset quiet time, got %v", d.Quiet())
	}
	for i := 0; i < 25; i++ {
		if d.Check(quiet, step) != ReasonNone {
			t.Fatalf("Window not restarted, settled at %d", i)
		}
	}
}

func TestDetector_HeightGate(t *testing.T) {
	d := newTestDetector(t)
	high := quiet
	high.Height = 2
	if d.IsQuiet(high) {
		t.Error("Body above the rest plane must not read quiet")
	}
	if !d.IsQuiet(quiet) {
		t.Error("Resting body should read quiet")
	}
}

func TestDetector_Ceiling(t *testing.T) {
	d := newTestDetector(t)
	p := d.Params()

	var elapsed time.Duration
	for !d.IsSettled(busy, step) {
		elapsed += step
		if elapsed > 2*p.Ceiling {
			t.Fatal("Ceiling never fired")
		}
	}
	if d.Elapsed() < p.Ceiling {
		t.Errorf("Ceiling fired early at %v", d.Elapsed())
	}

	d.Reset()
	if d.Elapsed() != 0 || d.Quiet() != 0 {
		t.Error("Reset must clear timers")
	}
	if r := d.Check(busy, step); r != ReasonNone {
		t.Errorf("Fresh detector returned %s", r)
	}
}

func TestParams_Validate(t *testing.T) {
	p := DefaultParams(1)
	p.Confirm = 0
	if _, err := NewDetector(p); !errors.Is(err, ErrInvalidParams) {
		t.Errorf("Expected ErrInvalidParams, got %v", err)
	}
}
