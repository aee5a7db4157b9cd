package engine

import (
	"time"

	"github.com/lixenwraith/dice-tray/throw"
)

// VelocitySampler keeps a rolling, time-weighted pointer velocity in device units/ms
type VelocitySampler struct {
	window time.Duration
	stale  time.Duration

	lastX, lastY float64
	lastAt       time.Time
	sample       throw.Sample
}

// NewVelocitySampler creates a sampler
// window: blend time constant, stale: rest time after which a release throws with a zero sample
func NewVelocitySampler(window, stale time.Duration) VelocitySampler {
	return VelocitySampler{window: window, stale: stale}
}

// Begin starts a gesture at x, y
func (s *VelocitySampler) Begin(x, y float64, at time.Time) {
	s.lastX, s.lastY = x, y
	s.lastAt = at
	s.sample = throw.Sample{}
}

// Move blends the instantaneous velocity since the last move into the sample
// Events sharing a timestamp are merged into the next one with a positive interval
func (s *VelocitySampler) Move(x, y float64, at time.Time) {
	dt := at.Sub(s.lastAt)
	if dt <= 0 {
		return
	}
	ms := float64(dt) / float64(time.Millisecond)
	instX := (x - s.lastX) / ms
	instY := (y - s.lastY) / ms

	w := 1.0
	if s.window > 0 && dt < s.window {
		w = float64(dt) / float64(s.window)
	}
	s.sample.VX += (instX - s.sample.VX) * w
	s.sample.VY += (instY - s.sample.VY) * w

	s.lastX, s.lastY = x, y
	s.lastAt = at
}

// Sample returns the current rolling sample
func (s *VelocitySampler) Sample() throw.Sample {
	return s.sample
}

// Release returns the sample to throw with
func (s *VelocitySampler) Release(at time.Time) throw.Sample {
	if s.stale > 0 && at.Sub(s.lastAt) > s.stale {
		return throw.Sample{}
	}
	return s.sample
}
