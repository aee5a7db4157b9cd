package physics

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/dice-tray/parameter"
	"github.com/lixenwraith/dice-tray/vmath"
)

// ErrInvalidTray is returned when tray geometry or material values cannot simulate
var ErrInvalidTray = errors.New("invalid tray parameters")

// Integrator advances a body by dt seconds
// Implementations must leave kinematic bodies untouched
type Integrator interface {
	Step(b *Body, dt float64) StepResult
	Bounds() Bounds
}

// StepResult reports contacts produced during one step
type StepResult struct {
	Impacts     int
	ImpactSpeed float64 // strongest normal speed among reported impacts
	Grounded    bool
}

// Bounds is the walkable tray interior in the XZ plane
type Bounds struct {
	HalfWidth, HalfDepth float64
}

// Clamp limits x, z so a sphere of radius r stays inside the walls
func (b Bounds) Clamp(x, z, r float64) (float64, float64) {
	return clampRange(x, -b.HalfWidth+r, b.HalfWidth-r), clampRange(z, -b.HalfDepth+r, b.HalfDepth-r)
}

func clampRange(v, lo, hi float64) float64 {
	if lo > hi {
		return 0
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// TrayParams configures the built-in tray integrator
type TrayParams struct {
	HalfWidth           float64
	HalfDepth           float64
	Gravity             float64
	FloorRestitution    float64
	WallRestitution     float64
	BounceStopSpeed     float64
	ContactFriction     float64
	ContactSpinFriction float64
	FloorFriction       float64
	FloorSpinFriction   float64
	AirDamping          float64
	RollCoupling        float64
	ContactEpsilon      float64
	ImpactReportSpeed   float64
}

// DefaultTrayParams returns the tuned tray
func DefaultTrayParams() TrayParams {
	return TrayParams{
		HalfWidth:           parameter.TrayHalfWidth,
		HalfDepth:           parameter.TrayHalfDepth,
		Gravity:             parameter.Gravity,
		FloorRestitution:    parameter.FloorRestitution,
		WallRestitution:     parameter.WallRestitution,
		BounceStopSpeed:     parameter.BounceStopSpeed,
		ContactFriction:     parameter.ContactFriction,
		ContactSpinFriction: parameter.ContactSpinFriction,
		FloorFriction:       parameter.FloorFriction,
		FloorSpinFriction:   parameter.FloorSpinFriction,
		AirDamping:          parameter.AirDamping,
		RollCoupling:        parameter.RollCoupling,
		ContactEpsilon:      parameter.ContactEpsilon,
		ImpactReportSpeed:   parameter.ImpactReportSpeed,
	}
}

// Validate checks geometry and material ranges
func (p TrayParams) Validate() error {
	switch {
	case p.HalfWidth <= 0 || p.HalfDepth <= 0:
		return fmt.Errorf("%w: tray extents must be positive", ErrInvalidTray)
	case p.Gravity < 0:
		return fmt.Errorf("%w: gravity must not be negative", ErrInvalidTray)
	case p.FloorRestitution < 0 || p.FloorRestitution > 1:
		return fmt.Errorf("%w: floor restitution outside [0,1]", ErrInvalidTray)
	case p.WallRestitution < 0 || p.WallRestitution > 1:
		return fmt.Errorf("%w: wall restitution outside [0,1]", ErrInvalidTray)
	case p.FloorFriction < 0 || p.FloorSpinFriction < 0 || p.AirDamping < 0 || p.RollCoupling < 0:
		return fmt.Errorf("%w: damping rates must not be negative", ErrInvalidTray)
	case p.ContactFriction < 0 || p.ContactSpinFriction < 0:
		return fmt.Errorf("%w: damping rates must not be negative", ErrInvalidTray)
	}
	return nil
}

// Tray integrates a sphere inside an open box: floor at Y = 0, four walls, no lid
type Tray struct {
	params TrayParams
}

// NewTray creates a tray integrator
func NewTray(params TrayParams) (*Tray, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Tray{params: params}, nil
}

// Bounds returns the tray interior
func (t *Tray) Bounds() Bounds {
	return Bounds{HalfWidth: t.params.HalfWidth, HalfDepth: t.params.HalfDepth}
}

// Step advances a dynamic body: gravity, semi-implicit Euler, spin, contacts, friction
func (t *Tray) Step(b *Body, dt float64) StepResult {
	var res StepResult
	if b.Mode != ModeDynamic || dt <= 0 {
		return res
	}
	p := &t.params
	r := b.Radius

	b.Linear.Y -= p.Gravity * dt
	b.Position = vmath.V3FAdd(b.Position, vmath.V3FScale(b.Linear, dt))
	b.Orientation = IntegrateOrientation(b.Orientation, b.Angular, dt)

	report := func(speed float64) {
		if speed < p.ImpactReportSpeed {
			return
		}
		res.Impacts++
		if speed > res.ImpactSpeed {
			res.ImpactSpeed = speed
		}
	}

	// Floor
	if b.Position.Y < r {
		b.Position.Y = r
		if b.Linear.Y < 0 {
			impact := -b.Linear.Y
			report(impact)
			b.Linear.Y = impact * p.FloorRestitution
			if b.Linear.Y < p.BounceStopSpeed {
				b.Linear.Y = 0
			}
			// Coulomb friction: tangential loss proportional to the normal impulse
			normal := impact + b.Linear.Y
			horizontal := vmath.V3FReduce(vmath.Vec3F{X: b.Linear.X, Z: b.Linear.Z}, p.ContactFriction*normal)
			b.Linear.X, b.Linear.Z = horizontal.X, horizontal.Z
			b.Angular = vmath.V3FReduce(b.Angular, p.ContactSpinFriction*normal/r)
		}
	}

	// Walls
	report(ReflectAxis(&b.Position.X, &b.Linear.X, -p.HalfWidth+r, p.HalfWidth-r, p.WallRestitution))
	report(ReflectAxis(&b.Position.Z, &b.Linear.Z, -p.HalfDepth+r, p.HalfDepth-r, p.WallRestitution))

	res.Grounded = b.Position.Y <= r+p.ContactEpsilon
	if res.Grounded {
		horizontal := vmath.Vec3F{X: b.Linear.X, Z: b.Linear.Z}
		horizontal = vmath.V3FDampDt(horizontal, p.FloorFriction, dt)
		b.Linear.X, b.Linear.Z = horizontal.X, horizontal.Z

		b.Angular = vmath.V3FDampDt(b.Angular, p.FloorSpinFriction, dt)
		roll := RollingSpin(b.Linear, r)
		k := vmath.Clamp01(p.RollCoupling * dt)
		b.Angular.X += (roll.X - b.Angular.X) * k
		b.Angular.Z += (roll.Z - b.Angular.Z) * k
	} else {
		b.Linear = vmath.V3FDampDt(b.Linear, p.AirDamping, dt)
		b.Angular = vmath.V3FDampDt(b.Angular, p.AirDamping, dt)
	}

	return res
}
