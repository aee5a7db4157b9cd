package engine

import (
	"time"

	"github.com/lixenwraith/dice-tray/event"
	"github.com/lixenwraith/dice-tray/settle"
)

// SessionID identifies one throw-to-result lifecycle; zero means none
type SessionID uint64

// Session is the transient state of one roll
// Destroyed on result delivery or abort; scheduled tasks are keyed by its ID
type Session struct {
	ID        SessionID
	Source    event.Source
	StartedAt time.Time

	// Filled on settle
	Reason   settle.Reason
	Face     int
	Distance float64

	// Pending one-shot result subscriber (explicit rolls only)
	future    *Future
	futureSub event.Subscription
}
