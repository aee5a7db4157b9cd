package vmath

import (
	"math"
	"math/rand"
	"testing"
)

const eps = 1e-9

func vecClose(a, b Vec3F, tol float64) bool {
	return math.Abs(a.X-b.X) < tol && math.Abs(a.Y-b.Y) < tol && math.Abs(a.Z-b.Z) < tol
}

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{math.Pi, math.Pi},
		{-math.Pi, math.Pi},
		{3 * math.Pi, math.Pi},
		{2*math.Pi + 0.5, 0.5},
		{-2*math.Pi - 0.5, -0.5},
	}
	for _, tt := range tests {
		if got := NormalizeAngle(tt.in); math.Abs(got-tt.want) > eps {
			t.Errorf("NormalizeAngle(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestOrientationDistance_WrapsAxes(t *testing.T) {
	a := Orientation{X: math.Pi - 0.1}
	b := Orientation{X: -math.Pi + 0.1}
	if d := a.Distance(b); math.Abs(d-0.2) > eps {
		t.Errorf("Expected wrapped distance 0.2, got %v", d)
	}

	c := Orientation{X: 0.3, Y: 0.4}
	if d := (Orientation{}).Distance(c); math.Abs(d-0.5) > eps {
		t.Errorf("Expected euclidean 0.5, got %v", d)
	}
	if d := c.Distance(c); d != 0 {
		t.Errorf("Self distance must be exactly 0, got %v", d)
	}
}

func TestOrientationLerp(t *testing.T) {
	from := Orientation{X: math.Pi - 0.2, Y: 0, Z: 1}
	to := Orientation{X: -math.Pi + 0.2, Y: 0.4, Z: 1}

	mid := from.Lerp(to, 0.5)
	if math.Abs(math.Abs(mid.X)-math.Pi) > eps {
		t.Errorf("Expected X to cross the seam at ±π, got %v", mid.X)
	}
	if math.Abs(mid.Y-0.2) > eps {
		t.Errorf("Expected Y 0.2, got %v", mid.Y)
	}

	if got := from.Lerp(to, 0); got != from {
		t.Errorf("t=0 must return the start exactly, got %v", got)
	}
	if got := from.Lerp(to, 1); got.Distance(to) > eps {
		t.Errorf("t=1 must reach target, got %v", got)
	}
	if got := from.Lerp(to, 7); got.Distance(to) > eps {
		t.Errorf("t>1 must clamp to target, got %v", got)
	}
}

func TestOrientationQuatRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		o := RandomOrientation(rng)
		back := OrientationFromQuat(o.ToQuat())

		// Compare as rotations; Euler triples can differ near the gimbal
		for _, v := range []Vec3F{{X: 1}, {Y: 1}, {Z: 1}} {
			if !vecClose(o.Rotate(v), back.Rotate(v), 1e-6) {
				t.Fatalf("Round trip of %v gave %v", o, back)
			}
		}
		if math.Abs(o.Y) < math.Pi/2-1e-3 && o.Distance(back) > 1e-6 {
			t.Fatalf("Round trip of %v gave different angles %v", o, back)
		}
	}
}

func TestOrientationGimbal(t *testing.T) {
	o := Orientation{X: 0.4, Y: math.Pi / 2, Z: 0}
	back := OrientationFromQuat(o.ToQuat())
	if back.Z != 0 {
		t.Errorf("Gimbal branch must zero Z, got %v", back.Z)
	}
	if !vecClose(o.Rotate(Vec3F{X: 1}), back.Rotate(Vec3F{X: 1}), 1e-6) {
		t.Errorf("Gimbal extraction changed the rotation: %v -> %v", o, back)
	}
}

func TestOrientationBetween(t *testing.T) {
	up := Vec3F{Y: 1}
	dirs := []Vec3F{
		{Y: 1}, {Y: -1}, {X: 1}, {Z: -1},
		V3FNormalize(Vec3F{X: 1, Y: 1, Z: 1}),
		V3FNormalize(Vec3F{X: -0.3, Y: -0.9, Z: 0.2}),
	}
	for _, d := range dirs {
		o := OrientationBetween(d, up)
		if got := o.Rotate(d); !vecClose(got, up, 1e-9) {
			t.Errorf("OrientationBetween(%v, up) rotates to %v", d, got)
		}
	}
	if o := OrientationBetween(up, up); o != (Orientation{}) {
		t.Errorf("Parallel vectors need no rotation, got %v", o)
	}
}

func TestEaseInOut(t *testing.T) {
	if EaseInOut(0) != 0 || EaseInOut(1) != 1 {
		t.Error("Endpoints must be exact")
	}
	if math.Abs(EaseInOut(0.5)-0.5) > eps {
		t.Errorf("Midpoint expected 0.5, got %v", EaseInOut(0.5))
	}
	if EaseInOut(-1) != 0 || EaseInOut(2) != 1 {
		t.Error("Input must be clamped")
	}
	prev := 0.0
	for i := 1; i <= 100; i++ {
		v := EaseInOut(float64(i) / 100)
		if v < prev {
			t.Fatalf("Not monotonic at %d", i)
		}
		prev = v
	}
}

func TestV3FClampMagnitude(t *testing.T) {
	v := V3FClampMagnitude(Vec3F{X: 30, Y: 40}, 25)
	if math.Abs(V3FMag(v)-25) > eps || math.Abs(v.X/v.Y-0.75) > eps {
		t.Errorf("Expected (15, 20, 0), got %v", v)
	}
	small := Vec3F{X: 1}
	if V3FClampMagnitude(small, 25) != small {
		t.Error("Vectors under the limit must pass through")
	}
}

func TestV3FReduce(t *testing.T) {
	tests := []struct {
		name   string
		v      Vec3F
		amount float64
		want   Vec3F
	}{
		{"shortens", Vec3F{X: 3, Z: 4}, 2.5, Vec3F{X: 1.5, Z: 2}},
		{"stops at zero", Vec3F{X: 3, Z: 4}, 6, Vec3F{}},
		{"exact", Vec3F{Y: 2}, 2, Vec3F{}},
		{"no amount", Vec3F{X: 1}, 0, Vec3F{X: 1}},
		{"zero vector", Vec3F{}, 1, Vec3F{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := V3FReduce(tt.v, tt.amount)
			if math.Abs(got.X-tt.want.X) > eps || math.Abs(got.Y-tt.want.Y) > eps || math.Abs(got.Z-tt.want.Z) > eps {
				t.Errorf("V3FReduce(%v, %v) = %v, want %v", tt.v, tt.amount, got, tt.want)
			}
		})
	}
}
