package engine

import (
	"errors"
	"time"

	"github.com/lixenwraith/dice-tray/parameter"
)

// ErrInvalidParams is returned when engine timing or geometry values are unusable
var ErrInvalidParams = errors.New("invalid engine parameters")

// Params tunes the roll state machine
type Params struct {
	Step             time.Duration // fixed physics step
	MaxStepsPerFrame int

	SnapBlend       float64 // partial snap toward the nearest face on settle, (0,1]
	PresentDuration time.Duration
	PresentLift     float64

	DragHeight   float64
	DropHeight   float64
	DropSpread   float64 // fraction of the tray interior used by explicit rolls
	HitSlop      float64 // hit radius multiplier
	SampleWindow time.Duration
	SampleStale  time.Duration
}

// DefaultParams returns the tuned state machine values
func DefaultParams() Params {
	return Params{
		Step:             parameter.PhysicsStep,
		MaxStepsPerFrame: parameter.MaxStepsPerFrame,
		SnapBlend:        parameter.SnapBlend,
		PresentDuration:  parameter.PresentDuration,
		PresentLift:      parameter.PresentLift,
		DragHeight:       parameter.DragHeight,
		DropHeight:       parameter.DropHeight,
		DropSpread:       parameter.DropSpread,
		HitSlop:          parameter.HitSlop,
		SampleWindow:     parameter.SampleWindow,
		SampleStale:      parameter.SampleStale,
	}
}

// Validate checks ranges
func (p Params) Validate() error {
	switch {
	case p.Step <= 0 || p.MaxStepsPerFrame <= 0:
		return ErrInvalidParams
	case p.SnapBlend <= 0 || p.SnapBlend > 1:
		return ErrInvalidParams
	case p.PresentDuration <= 0:
		return ErrInvalidParams
	case p.DropSpread < 0 || p.DropSpread > 1:
		return ErrInvalidParams
	case p.HitSlop <= 0:
		return ErrInvalidParams
	}
	return nil
}
