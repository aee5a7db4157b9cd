package event

import (
	"time"

	"github.com/lixenwraith/dice-tray/settle"
)

// Source identifies what started a roll
type Source uint8

const (
	SourceGesture Source = iota
	SourceRequest
)

func (s Source) String() string {
	switch s {
	case SourceGesture:
		return "gesture"
	case SourceRequest:
		return "request"
	default:
		return "unknown"
	}
}

// AbortCause identifies why a session was discarded
type AbortCause uint8

const (
	AbortNewDrag AbortCause = iota
	AbortDestroyed
)

func (c AbortCause) String() string {
	switch c {
	case AbortNewDrag:
		return "new_drag"
	case AbortDestroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// RollStartedPayload accompanies EventRollStarted
type RollStartedPayload struct {
	Source    Source
	StartedAt time.Time
	Speed     float64 // initial linear speed
}

// BodyImpactPayload accompanies EventBodyImpact
type BodyImpactPayload struct {
	Speed float64
	Count int
}

// RollSettledPayload accompanies EventRollSettled
type RollSettledPayload struct {
	Reason settle.Reason
	Face   int // nearest face after the snap
}

// RollResolvedPayload accompanies EventRollResolved
type RollResolvedPayload struct {
	Face       int
	Faces      int
	Distance   float64 // resolver distance at settle
	Source     Source
	Reason     settle.Reason
	StartedAt  time.Time
	ResolvedAt time.Time
}

// Duration returns throw-to-result time
func (p *RollResolvedPayload) Duration() time.Duration {
	return p.ResolvedAt.Sub(p.StartedAt)
}

// RollAbortedPayload accompanies EventRollAborted
type RollAbortedPayload struct {
	Cause AbortCause
	Phase string
}
