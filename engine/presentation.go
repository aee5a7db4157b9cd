package engine

import (
	"time"

	"github.com/lixenwraith/dice-tray/vmath"
)

// presentation is the scripted carry of a settled body to its display pose
// Two equal eased halves: ascend with a partial turn, then descend completing the turn
type presentation struct {
	start    time.Time
	duration time.Duration

	fromPos, apexPos, restPos vmath.Vec3F
	fromOrient, midOrient     vmath.Orientation
	target                    vmath.Orientation
}

func newPresentation(start time.Time, duration time.Duration, from, apex, rest vmath.Vec3F, fromOrient, target vmath.Orientation) *presentation {
	return &presentation{
		start:      start,
		duration:   duration,
		fromPos:    from,
		apexPos:    apex,
		restPos:    rest,
		fromOrient: fromOrient,
		midOrient:  fromOrient.Lerp(target, 0.5),
		target:     target,
	}
}

// end returns the completion time
func (p *presentation) end() time.Time {
	return p.start.Add(p.duration)
}

// poseAt returns the interpolated pose, exact target once done
func (p *presentation) poseAt(now time.Time) (vmath.Vec3F, vmath.Orientation, bool) {
	elapsed := now.Sub(p.start)
	if elapsed >= p.duration || p.duration <= 0 {
		return p.restPos, p.target, true
	}
	if elapsed < 0 {
		elapsed = 0
	}

	half := p.duration / 2
	if elapsed < half {
		u := vmath.EaseInOut(float64(elapsed) / float64(half))
		return vmath.V3FLerp(p.fromPos, p.apexPos, u), p.fromOrient.Lerp(p.midOrient, u), false
	}
	u := vmath.EaseInOut(float64(elapsed-half) / float64(p.duration-half))
	return vmath.V3FLerp(p.apexPos, p.restPos, u), p.midOrient.Lerp(p.target, u), false
}
