package event

// EventType represents the type of roll event
type EventType int

const (
	// EventRollStarted marks a new roll session
	// Trigger: drag release, explicit roll request
	// Payload: *RollStartedPayload
	EventRollStarted EventType = iota

	// EventBodyImpact reports floor/wall contacts strong enough to hear
	// Trigger: integrator step while flying
	// Payload: *BodyImpactPayload
	EventBodyImpact

	// EventRollSettled marks the flying -> settling handoff
	// Trigger: settle detector verdict
	// Payload: *RollSettledPayload
	EventRollSettled

	// EventRollResolved is published once per completed roll
	// Trigger: presentation transition completion
	// Consumer: futures, OnRollComplete observers, history | Payload: *RollResolvedPayload
	EventRollResolved

	// EventRollAborted marks a session discarded without a result
	// Trigger: new drag during a roll, die destruction
	// Payload: *RollAbortedPayload
	EventRollAborted
)

func (t EventType) String() string {
	switch t {
	case EventRollStarted:
		return "roll_started"
	case EventBodyImpact:
		return "body_impact"
	case EventRollSettled:
		return "roll_settled"
	case EventRollResolved:
		return "roll_resolved"
	case EventRollAborted:
		return "roll_aborted"
	default:
		return "unknown"
	}
}

// Event is a published roll event
type Event struct {
	Type    EventType
	Session uint64
	Frame   int64
	Payload any
}
