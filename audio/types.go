package audio

import (
	"github.com/lixenwraith/dice-tray/parameter"
)

// SoundType represents different sound effects
type SoundType int

const (
	SoundClack SoundType = iota // Floor or wall impact
	SoundChime                  // Roll resolved
	SoundThud                   // Roll aborted
	soundTypeCount
)

func (s SoundType) String() string {
	switch s {
	case SoundClack:
		return "clack"
	case SoundChime:
		return "chime"
	case SoundThud:
		return "thud"
	default:
		return "unknown"
	}
}

// AudioConfig holds output rate and per-effect volumes
type AudioConfig struct {
	Enabled       bool
	SampleRate    int
	MasterVolume  float64
	EffectVolumes map[SoundType]float64
}

// DefaultAudioConfig returns the tuned mix
func DefaultAudioConfig() *AudioConfig {
	return &AudioConfig{
		Enabled:      true,
		SampleRate:   parameter.AudioSampleRate,
		MasterVolume: parameter.AudioMasterVolume,
		EffectVolumes: map[SoundType]float64{
			SoundClack: 0.8,
			SoundChime: 0.7,
			SoundThud:  0.5,
		},
	}
}
