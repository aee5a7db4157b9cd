package status

// Metric names written by the engine
const (
	RollsStarted   = "rolls.started"
	RollsCompleted = "rolls.completed"
	RollsAborted   = "rolls.aborted"
	RollsCeiling   = "rolls.ceiling"
	LastFace       = "roll.last_face"
	LastReason     = "roll.last_reason"
	Phase          = "die.phase"
	Frames         = "engine.frames"
)
