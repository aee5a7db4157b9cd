package vmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec3F is a float64 3D vector for body state
// Y is up; the tray floor is the XZ plane
type Vec3F struct {
	X, Y, Z float64
}

func V3FAdd(a, b Vec3F) Vec3F {
	return Vec3F{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

func V3FSub(a, b Vec3F) Vec3F {
	return Vec3F{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

func V3FScale(v Vec3F, s float64) Vec3F {
	return Vec3F{v.X * s, v.Y * s, v.Z * s}
}

func V3FDot(a, b Vec3F) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

func V3FMagSq(v Vec3F) float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

func V3FMag(v Vec3F) float64 {
	return math.Sqrt(V3FMagSq(v))
}

func V3FNormalize(v Vec3F) Vec3F {
	mag := V3FMag(v)
	if mag == 0 {
		return Vec3F{}
	}
	inv := 1.0 / mag
	return Vec3F{v.X * inv, v.Y * inv, v.Z * inv}
}

// V3FClampMagnitude rescales v down to maxMag preserving direction
func V3FClampMagnitude(v Vec3F, maxMag float64) Vec3F {
	magSq := V3FMagSq(v)
	if magSq <= maxMag*maxMag || magSq == 0 {
		return v
	}
	return V3FScale(v, maxMag/math.Sqrt(magSq))
}

// V3FLerp interpolates a toward b by t, t is not clamped
func V3FLerp(a, b Vec3F, t float64) Vec3F {
	return Vec3F{
		a.X + (b.X-a.X)*t,
		a.Y + (b.Y-a.Y)*t,
		a.Z + (b.Z-a.Z)*t,
	}
}

// V3FDampDt applies frame-rate independent damping: v * (1 - rate*dt), floored at zero
// rate: fraction of velocity removed per second
func V3FDampDt(v Vec3F, rate, dt float64) Vec3F {
	decay := 1.0 - rate*dt
	if decay < 0 {
		decay = 0
	}
	if decay > 1 {
		decay = 1
	}
	return V3FScale(v, decay)
}

// V3FReduce shortens v by amount, stopping at zero
func V3FReduce(v Vec3F, amount float64) Vec3F {
	mag := V3FMag(v)
	if amount <= 0 {
		return v
	}
	if mag <= amount {
		return Vec3F{}
	}
	return V3FScale(v, (mag-amount)/mag)
}

// V3FToMgl converts to mathgl vector for quaternion math
func V3FToMgl(v Vec3F) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

// V3FFromMgl converts from mathgl vector
func V3FFromMgl(v mgl64.Vec3) Vec3F {
	return Vec3F{v[0], v[1], v[2]}
}
