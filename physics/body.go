package physics

import (
	"github.com/lixenwraith/dice-tray/vmath"
)

// Mode decides who may write the body pose
type Mode uint8

const (
	// ModeDynamic lets the integrator move the body
	ModeDynamic Mode = iota
	// ModeKinematic freezes the body for scripted motion
	ModeKinematic
)

func (m Mode) String() string {
	switch m {
	case ModeDynamic:
		return "dynamic"
	case ModeKinematic:
		return "kinematic"
	default:
		return "unknown"
	}
}

// Body is the sphere-approximated die
type Body struct {
	Position    vmath.Vec3F
	Orientation vmath.Orientation
	Linear      vmath.Vec3F // units/s
	Angular     vmath.Vec3F // rad/s, world frame
	Mode        Mode
	Radius      float64
}

// NewBody creates a dynamic body resting at the tray center
func NewBody(radius float64) *Body {
	return &Body{
		Position: vmath.Vec3F{Y: radius},
		Mode:     ModeDynamic,
		Radius:   radius,
	}
}

// ZeroVelocity clears linear and angular velocity
func (b *Body) ZeroVelocity() {
	b.Linear = vmath.Vec3F{}
	b.Angular = vmath.Vec3F{}
}

// Speed returns linear speed
func (b *Body) Speed() float64 {
	return vmath.V3FMag(b.Linear)
}

// AngularSpeed returns angular speed
func (b *Body) AngularSpeed() float64 {
	return vmath.V3FMag(b.Angular)
}

// Pose is the read-only snapshot handed to renderers
type Pose struct {
	Position    vmath.Vec3F
	Orientation vmath.Orientation
	Mode        Mode
}

// Pose returns the current pose snapshot
func (b *Body) Pose() Pose {
	return Pose{Position: b.Position, Orientation: b.Orientation, Mode: b.Mode}
}
