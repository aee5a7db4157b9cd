package parameter

import "time"

// Audio output
const (
	AudioSampleRate = 48000

	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 100 * time.Millisecond

	// AudioMasterVolume scales every effect, 0..1
	AudioMasterVolume = 0.6
)

// Impact clack
const (
	ClackDuration = 45 * time.Millisecond
	ClackAttack   = 2 * time.Millisecond
	ClackRelease  = 35 * time.Millisecond
	ClackThumpHz  = 180.0

	// ClackFullSpeed is the impact speed that plays at full volume, units/s
	ClackFullSpeed = 15.0

	// ClackMinFrameGap drops impacts closer than this many frames to the last played one
	ClackMinFrameGap = 3
)

// Result chime
const (
	ChimeNoteDuration = 120 * time.Millisecond
	ChimeAttack       = 5 * time.Millisecond
	ChimeRelease      = 90 * time.Millisecond

	// ChimeBaseHz is the first note; the second rises with the face value
	ChimeBaseHz   = 660.0
	ChimeSpanHz   = 660.0
	ChimeOvertone = 0.3
)

// Abort thud
const (
	ThudDuration = 90 * time.Millisecond
	ThudAttack   = 3 * time.Millisecond
	ThudRelease  = 70 * time.Millisecond
	ThudHz       = 90.0
)
