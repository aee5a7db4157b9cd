package engine

import (
	"math"
	"testing"
	"time"

	"github.com/lixenwraith/dice-tray/physics"
)

func TestVelocitySampler_FullWindowMove(t *testing.T) {
	s := NewVelocitySampler(50*time.Millisecond, 120*time.Millisecond)
	base := time.Unix(0, 0)

	s.Begin(0, 0, base)
	s.Move(250, 100, base.Add(50*time.Millisecond))

	got := s.Release(base.Add(50 * time.Millisecond))
	if math.Abs(got.VX-5) > 1e-9 || math.Abs(got.VY-2) > 1e-9 {
		t.Errorf("Expected (5, 2), got (%v, %v)", got.VX, got.VY)
	}
}

func TestVelocitySampler_PartialBlend(t *testing.T) {
	s := NewVelocitySampler(50*time.Millisecond, 120*time.Millisecond)
	base := time.Unix(0, 0)

	s.Begin(0, 0, base)
	// 10ms at 1 unit/ms blends a fifth of the way from zero
	s.Move(10, 0, base.Add(10*time.Millisecond))

	if got := s.Sample().VX; math.Abs(got-0.2) > 1e-9 {
		t.Errorf("Expected blended VX 0.2, got %v", got)
	}
}

func TestVelocitySampler_DuplicateTimestamp(t *testing.T) {
	s := NewVelocitySampler(50*time.Millisecond, 120*time.Millisecond)
	base := time.Unix(0, 0)

	s.Begin(0, 0, base)
	s.Move(100, 100, base)

	got := s.Sample()
	if got.VX != 0 || got.VY != 0 {
		t.Errorf("Zero-interval move should not change sample, got %+v", got)
	}
	if math.IsNaN(got.VX) || math.IsInf(got.VX, 0) {
		t.Error("Sample is not finite")
	}
}

func TestVelocitySampler_StaleRelease(t *testing.T) {
	s := NewVelocitySampler(50*time.Millisecond, 120*time.Millisecond)
	base := time.Unix(0, 0)

	s.Begin(0, 0, base)
	s.Move(300, 0, base.Add(50*time.Millisecond))

	got := s.Release(base.Add(400 * time.Millisecond))
	if got.VX != 0 || got.VY != 0 {
		t.Errorf("Expected zero sample after rest, got %+v", got)
	}
}

func TestView_RoundTrip(t *testing.T) {
	v := NewView(200, 140, physics.Bounds{HalfWidth: 10, HalfDepth: 7})
	if !v.Valid() {
		t.Fatal("Expected valid view")
	}

	tx, tz := v.ToTray(100, 70)
	if math.Abs(tx) > 1e-12 || math.Abs(tz) > 1e-12 {
		t.Errorf("Device center should map to tray origin, got (%v, %v)", tx, tz)
	}
	tx, tz = v.ToTray(200, 0)
	if tx != 10 || tz != -7 {
		t.Errorf("Expected corner (10, -7), got (%v, %v)", tx, tz)
	}

	x, y := v.ToDevice(3, -2)
	tx, tz = v.ToTray(x, y)
	if math.Abs(tx-3) > 1e-9 || math.Abs(tz+2) > 1e-9 {
		t.Errorf("Round trip mismatch: (%v, %v)", tx, tz)
	}

	if NewView(0, 100, v.Bounds).Valid() {
		t.Error("Zero width view should be invalid")
	}
}
