// Package audio plays synthesized roll feedback through the beep speaker
package audio

import (
	"math/rand"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/dice-tray/event"
	"github.com/lixenwraith/dice-tray/parameter"
)

// SoundManager mixes roll sounds into one speaker stream
// Safe for concurrent use; Play is a no-op until Initialize succeeds
type SoundManager struct {
	mu          sync.Mutex
	cfg         *AudioConfig
	mixer       *beep.Mixer
	rng         *rand.Rand
	initialized bool
	muted       bool

	lastClackFrame int64
	played         [soundTypeCount]uint64
}

// NewSoundManager creates a manager; nil cfg uses defaults
func NewSoundManager(cfg *AudioConfig) *SoundManager {
	if cfg == nil {
		cfg = DefaultAudioConfig()
	}
	return &SoundManager{
		cfg:            cfg,
		mixer:          &beep.Mixer{},
		rng:            rand.New(rand.NewSource(time.Now().UnixNano())),
		lastClackFrame: -parameter.ClackMinFrameGap,
	}
}

// Initialize opens the speaker and starts the mixer
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized || !sm.cfg.Enabled {
		return nil
	}

	rate := beep.SampleRate(sm.cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(parameter.AudioBufferDuration)); err != nil {
		return err
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup stops all sounds
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	speaker.Clear()
	sm.initialized = false
}

// ToggleMute flips mute and returns the new state
func (sm *SoundManager) ToggleMute() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.muted = !sm.muted
	return sm.muted
}

// Played returns how many sounds of st were queued
func (sm *SoundManager) Played(st SoundType) uint64 {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if st < 0 || st >= soundTypeCount {
		return 0
	}
	return sm.played[st]
}

// Attach subscribes the manager to roll events; returns the unsubscribe func
func (sm *SoundManager) Attach(bus *event.Bus) func() {
	id := bus.Subscribe(sm.handle, event.EventBodyImpact, event.EventRollResolved, event.EventRollAborted)
	return func() { bus.Unsubscribe(id) }
}

func (sm *SoundManager) handle(ev event.Event) {
	switch p := ev.Payload.(type) {
	case *event.BodyImpactPayload:
		sm.playClack(ev.Frame, p.Speed)
	case *event.RollResolvedPayload:
		sm.enqueue(SoundChime, func() beep.Streamer { return CreateChimeSound(sm.cfg, p.Face, p.Faces) })
	case *event.RollAbortedPayload:
		if p.Cause == event.AbortNewDrag {
			sm.enqueue(SoundThud, func() beep.Streamer { return CreateThudSound(sm.cfg) })
		}
	}
}

// playClack drops impacts that arrive too close together to hear apart
func (sm *SoundManager) playClack(frame int64, speed float64) {
	sm.mu.Lock()
	if frame-sm.lastClackFrame < parameter.ClackMinFrameGap {
		sm.mu.Unlock()
		return
	}
	sm.lastClackFrame = frame
	sm.mu.Unlock()

	strength := speed / parameter.ClackFullSpeed
	sm.enqueue(SoundClack, func() beep.Streamer { return CreateClackSound(sm.cfg, strength, sm.rng) })
}

func (sm *SoundManager) enqueue(st SoundType, build func() beep.Streamer) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.muted {
		return
	}
	s := build()
	if s == nil {
		return
	}
	sm.played[st]++
	if sm.cfg.Enabled {
		speaker.Lock()
		sm.mixer.Add(s)
		speaker.Unlock()
	}
}
