// Package throw turns pointer gesture velocity into initial body velocity
package throw

import (
	"errors"
	"math"
	"math/rand"

	"github.com/lixenwraith/dice-tray/parameter"
	"github.com/lixenwraith/dice-tray/vmath"
)

// ErrInvalidParams is returned when throw parameters are unusable
var ErrInvalidParams = errors.New("invalid throw parameters")

// Sample is a screen-space pointer velocity in device units per millisecond
// +X is right, +Y is down the screen (toward the viewer on the tray)
type Sample struct {
	VX, VY float64
}

// Norm returns the sample magnitude
func (s Sample) Norm() float64 {
	return math.Hypot(s.VX, s.VY)
}

// finite replaces NaN/Inf components with zero
func (s Sample) finite() Sample {
	if math.IsNaN(s.VX) || math.IsInf(s.VX, 0) {
		s.VX = 0
	}
	if math.IsNaN(s.VY) || math.IsInf(s.VY, 0) {
		s.VY = 0
	}
	return s
}

// Throw is the initial velocity applied on release
type Throw struct {
	Linear  vmath.Vec3F
	Angular vmath.Vec3F
}

// Params tunes the gesture-to-velocity mapping
type Params struct {
	Scale     float64 // device units/ms -> tray units/s
	MinLift   float64
	MaxSpeed  float64
	SpinScale float64
	MinSpin   float64
	MaxSpin   float64
	RandomMin float64 // explicit roll sample speed range, device units/ms
	RandomMax float64
}

// DefaultParams returns the tuned throw mapping
func DefaultParams() Params {
	return Params{
		Scale:     parameter.ThrowScale,
		MinLift:   parameter.ThrowMinLift,
		MaxSpeed:  parameter.ThrowMaxSpeed,
		SpinScale: parameter.ThrowSpinScale,
		MinSpin:   parameter.ThrowMinSpin,
		MaxSpin:   parameter.ThrowMaxSpin,
		RandomMin: parameter.RandomThrowMin,
		RandomMax: parameter.RandomThrowMax,
	}
}

// Validate checks ranges
func (p Params) Validate() error {
	if p.Scale <= 0 || p.MinLift <= 0 || p.MaxSpeed < p.MinLift {
		return ErrInvalidParams
	}
	if p.MinSpin < 0 || p.MaxSpin < p.MinSpin || p.SpinScale < 0 {
		return ErrInvalidParams
	}
	if p.RandomMin < 0 || p.RandomMax < p.RandomMin {
		return ErrInvalidParams
	}
	return nil
}

// Controller computes throws; randomness only shapes spin direction and explicit rolls
type Controller struct {
	params Params
	rng    *rand.Rand
}

// NewController creates a controller drawing randomness from rng
func NewController(params Params, rng *rand.Rand) (*Controller, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, ErrInvalidParams
	}
	return &Controller{params: params, rng: rng}, nil
}

// Params returns the active parameters
func (c *Controller) Params() Params {
	return c.params
}

// Compute maps a release sample to body velocity
// Zero or invalid samples degrade to the minimum-lift throw
func (c *Controller) Compute(s Sample) Throw {
	s = s.finite()
	p := &c.params

	lift := math.Max(math.Abs(s.VX+s.VY)*p.Scale, p.MinLift)
	linear := vmath.Vec3F{X: s.VX * p.Scale, Y: lift, Z: s.VY * p.Scale}
	linear = vmath.V3FClampMagnitude(linear, p.MaxSpeed)

	spin := s.Norm() * p.SpinScale
	spin = math.Max(p.MinSpin, math.Min(spin, p.MaxSpin))

	// Y axis follows the gesture's sign, X and Z are free
	sign := 1.0
	switch bias := s.VX + s.VY; {
	case bias < 0:
		sign = -1
	case bias == 0 && c.rng.Intn(2) == 0:
		sign = -1
	}
	dir := vmath.Vec3F{
		X: c.rng.Float64()*2 - 1,
		Y: sign * (0.5 + 0.5*c.rng.Float64()),
		Z: c.rng.Float64()*2 - 1,
	}
	angular := vmath.V3FScale(vmath.V3FNormalize(dir), spin)

	return Throw{Linear: linear, Angular: angular}
}

// RandomSample draws a gesture-free sample for explicit rolls
func (c *Controller) RandomSample() Sample {
	angle := c.rng.Float64() * 2 * math.Pi
	speed := c.params.RandomMin + c.rng.Float64()*(c.params.RandomMax-c.params.RandomMin)
	return Sample{VX: math.Cos(angle) * speed, VY: math.Sin(angle) * speed}
}

// Random computes a throw from a random sample
func (c *Controller) Random() Throw {
	return c.Compute(c.RandomSample())
}

// Rand returns the underlying random source
func (c *Controller) Rand() *rand.Rand {
	return c.rng
}
