package vmath

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
)

// Orientation is an intrinsic XYZ Euler rotation in radians (R = Rx * Ry * Rz)
// Calibration tables store faces in this form, so comparisons stay in angle space
type Orientation struct {
	X, Y, Z float64
}

var (
	axisX = mgl64.Vec3{1, 0, 0}
	axisY = mgl64.Vec3{0, 1, 0}
	axisZ = mgl64.Vec3{0, 0, 1}
)

// gimbalLimit is the |m13| bound past which Y is treated as ±90°
const gimbalLimit = 0.9999999

// NormalizeAngle wraps an angle into (-π, π]
func NormalizeAngle(a float64) float64 {
	r := math.Remainder(a, 2*math.Pi)
	if r <= -math.Pi {
		r += 2 * math.Pi
	}
	return r
}

// Normalized returns the orientation with each axis wrapped into (-π, π]
func (o Orientation) Normalized() Orientation {
	return Orientation{NormalizeAngle(o.X), NormalizeAngle(o.Y), NormalizeAngle(o.Z)}
}

// Delta returns the per-axis shortest signed angle from o to target
func (o Orientation) Delta(target Orientation) Orientation {
	return Orientation{
		NormalizeAngle(target.X - o.X),
		NormalizeAngle(target.Y - o.Y),
		NormalizeAngle(target.Z - o.Z),
	}
}

// Distance is the Euclidean norm of the normalized per-axis differences
func (o Orientation) Distance(other Orientation) float64 {
	d := o.Delta(other)
	return math.Sqrt(d.X*d.X + d.Y*d.Y + d.Z*d.Z)
}

// Lerp moves o toward target by fraction t along the shortest per-axis path
// t is clamped to [0,1]
func (o Orientation) Lerp(target Orientation, t float64) Orientation {
	if t <= 0 {
		return o
	}
	if t > 1 {
		t = 1
	}
	d := o.Delta(target)
	return Orientation{
		NormalizeAngle(o.X + d.X*t),
		NormalizeAngle(o.Y + d.Y*t),
		NormalizeAngle(o.Z + d.Z*t),
	}
}

// ToQuat converts to a unit quaternion
func (o Orientation) ToQuat() mgl64.Quat {
	qx := mgl64.QuatRotate(o.X, axisX)
	qy := mgl64.QuatRotate(o.Y, axisY)
	qz := mgl64.QuatRotate(o.Z, axisZ)
	return qx.Mul(qy).Mul(qz).Normalize()
}

// OrientationFromQuat extracts XYZ Euler angles from a rotation quaternion
func OrientationFromQuat(q mgl64.Quat) Orientation {
	m := q.Normalize().Mat4()

	m11, m12, m13 := m.At(0, 0), m.At(0, 1), m.At(0, 2)
	m22, m23 := m.At(1, 1), m.At(1, 2)
	m32, m33 := m.At(2, 1), m.At(2, 2)

	y := math.Asin(clampUnit(m13))
	if math.Abs(m13) < gimbalLimit {
		return Orientation{
			X: math.Atan2(-m23, m33),
			Y: y,
			Z: math.Atan2(-m12, m11),
		}
	}
	// Gimbal lock: X and Z share an axis, fold everything into X
	return Orientation{
		X: math.Atan2(m32, m22),
		Y: y,
		Z: 0,
	}
}

// Rotate applies the orientation to a body-space vector
func (o Orientation) Rotate(v Vec3F) Vec3F {
	return V3FFromMgl(o.ToQuat().Rotate(V3FToMgl(v)))
}

// OrientationBetween returns the minimal rotation carrying direction from onto direction to
func OrientationBetween(from, to Vec3F) Orientation {
	f := V3FToMgl(V3FNormalize(from))
	t := V3FToMgl(V3FNormalize(to))

	dot := f.Dot(t)
	switch {
	case dot > 1-1e-12:
		return Orientation{}
	case dot < -1+1e-12:
		// Antiparallel: half turn about any perpendicular axis
		axis := axisX.Cross(f)
		if axis.Len() < 1e-6 {
			axis = axisZ.Cross(f)
		}
		return OrientationFromQuat(mgl64.QuatRotate(math.Pi, axis.Normalize()))
	}

	axis := f.Cross(t).Normalize()
	return OrientationFromQuat(mgl64.QuatRotate(math.Acos(dot), axis))
}

// RandomOrientation draws a uniformly spread Euler triple from rng
func RandomOrientation(rng *rand.Rand) Orientation {
	return Orientation{
		X: NormalizeAngle((rng.Float64()*2 - 1) * math.Pi),
		Y: (rng.Float64()*2 - 1) * math.Pi / 2,
		Z: NormalizeAngle((rng.Float64()*2 - 1) * math.Pi),
	}
}

func clampUnit(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
