package engine

// Phase is the roll state machine value
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseDragging
	PhaseFlying
	PhaseSettling
	PhasePresenting
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseDragging:
		return "dragging"
	case PhaseFlying:
		return "flying"
	case PhaseSettling:
		return "settling"
	case PhasePresenting:
		return "presenting"
	default:
		return "unknown"
	}
}

// Rolling reports whether a session is in flight in this phase
func (p Phase) Rolling() bool {
	return p == PhaseFlying || p == PhaseSettling || p == PhasePresenting
}
