package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/dice-tray/vmath"
)

// ReflectAxis clamps a position component into [lo, hi] and reflects velocity on the boundary
// Returns the normal speed at impact, zero when no boundary was crossed
func ReflectAxis(pos, vel *float64, lo, hi, restitution float64) float64 {
	if *pos < lo {
		*pos = lo
		if *vel < 0 {
			impact := -*vel
			*vel = impact * restitution
			return impact
		}
		return 0
	}
	if *pos > hi {
		*pos = hi
		if *vel > 0 {
			impact := *vel
			*vel = -impact * restitution
			return impact
		}
	}
	return 0
}

// IntegrateOrientation advances o by a world-frame angular velocity over dt
func IntegrateOrientation(o vmath.Orientation, angular vmath.Vec3F, dt float64) vmath.Orientation {
	speed := vmath.V3FMag(angular)
	if speed == 0 || dt <= 0 {
		return o
	}
	axis := vmath.V3FToMgl(vmath.V3FScale(angular, 1/speed))
	dq := mgl64.QuatRotate(speed*dt, axis)
	return vmath.OrientationFromQuat(dq.Mul(o.ToQuat()))
}

// RollingSpin returns the angular velocity of a sphere of radius r rolling without slipping on the floor
func RollingSpin(linear vmath.Vec3F, r float64) vmath.Vec3F {
	if r <= 0 || math.IsInf(r, 0) {
		return vmath.Vec3F{}
	}
	return vmath.Vec3F{X: linear.Z / r, Z: -linear.X / r}
}
