package engine

import (
	"math"
	"testing"
	"time"

	"github.com/lixenwraith/dice-tray/vmath"
)

func TestPresentation_Endpoints(t *testing.T) {
	start := time.Unix(100, 0)
	from := vmath.Vec3F{X: 4, Y: 1, Z: -3}
	apex := vmath.Vec3F{Y: 4}
	rest := vmath.Vec3F{Y: 1}
	fromOrient := vmath.Orientation{X: 0.3, Y: -1.2, Z: 2}
	target := vmath.Orientation{X: -0.5, Y: 0.1, Z: 0}

	p := newPresentation(start, 1500*time.Millisecond, from, apex, rest, fromOrient, target)

	pos, orient, done := p.poseAt(start)
	if done || pos != from || orient.Distance(fromOrient) > 1e-9 {
		t.Errorf("Start pose mismatch: pos=%v orient=%v done=%v", pos, orient, done)
	}

	pos, _, done = p.poseAt(start.Add(750 * time.Millisecond))
	if done || math.Abs(pos.Y-apex.Y) > 1e-9 {
		t.Errorf("Expected apex at midpoint, got %v", pos)
	}

	pos, orient, done = p.poseAt(p.end())
	if !done || pos != rest || orient != target {
		t.Errorf("End pose must be exact: pos=%v orient=%v done=%v", pos, orient, done)
	}

	_, orient, _ = p.poseAt(p.end().Add(time.Hour))
	if orient != target {
		t.Error("Pose after end must stay at target")
	}
}

func TestPresentation_Monotonic(t *testing.T) {
	start := time.Unix(0, 0)
	p := newPresentation(start, time.Second, vmath.Vec3F{Y: 1}, vmath.Vec3F{Y: 4}, vmath.Vec3F{Y: 1},
		vmath.Orientation{}, vmath.Orientation{X: 1})

	prev := -1.0
	for ms := 0; ms <= 500; ms += 25 {
		pos, _, _ := p.poseAt(start.Add(time.Duration(ms) * time.Millisecond))
		if pos.Y < prev-1e-12 {
			t.Fatalf("Ascent not monotonic at %dms: %v < %v", ms, pos.Y, prev)
		}
		prev = pos.Y
	}
}
