package parameter

import "time"

// Frame Loop & Engine Timing
const (
	// FrameUpdateInterval is the host render/frame interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// PhysicsStep is the fixed integration step
	PhysicsStep = time.Second / 60

	// MaxStepsPerFrame caps catch-up after a stalled frame
	MaxStepsPerFrame = 8
)

// Event bus
const (
	// HistoryQueueSize is the buffered hand-off between the frame loop and the history writer
	HistoryQueueSize = 64
)
