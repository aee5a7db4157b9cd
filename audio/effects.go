package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/lixenwraith/dice-tray/parameter"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveNoise
)

// oscillator generates raw audio waves for a fixed number of samples
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	rng      *rand.Rand
}

// NewOscillator creates a finite oscillator
// rng is only drawn from by WaveNoise; nil uses a time-seeded source
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate, rng *rand.Rand) beep.Streamer {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		rng:      rng,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveNoise:
			val = o.rng.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies linear attack/release to a finite stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope wraps s with attack and release ramps over duration
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	releaseStart := e.totalSamples - e.releaseSamples

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = math.Max(0, float64(e.totalSamples-e.position)/float64(e.releaseSamples))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s with a linear gain; zero or negative gain is silent
// math.Log2(0) is -Inf, so silence is explicit
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// sineNote is a shaped sine tone from the beep generator
func sineNote(freq float64, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	tone, err := generators.SineTone(rate, freq)
	if err != nil {
		// Frequency above Nyquist: fall back to the local oscillator
		tone = NewOscillator(freq, duration, WaveSine, rate, nil)
	}
	return NewEnvelope(beep.Take(rate.N(duration), tone), duration, attack, release, rate)
}

// CreateClackSound generates a short noise burst over a low thump
// strength in [0,1] scales the volume
func CreateClackSound(cfg *AudioConfig, strength float64, rng *rand.Rand) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	noise := NewOscillator(0, parameter.ClackDuration, WaveNoise, rate, rng)
	noiseShaped := NewEnvelope(noise, parameter.ClackDuration, parameter.ClackAttack, parameter.ClackRelease, rate)
	thump := sineNote(parameter.ClackThumpHz, parameter.ClackDuration, parameter.ClackAttack, parameter.ClackRelease, rate)

	mixed := beep.Mix(
		newVolume(noiseShaped, 0.6),
		newVolume(thump, 0.4),
	)

	vol := cfg.EffectVolumes[SoundClack] * cfg.MasterVolume * clamp01(strength)
	return newVolume(mixed, vol)
}

// CreateChimeSound generates a two-note chime whose second note rises with face/faces
func CreateChimeSound(cfg *AudioConfig, face, faces int) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	d := parameter.ChimeNoteDuration

	ratio := 0.0
	if faces > 1 {
		ratio = float64(face-1) / float64(faces-1)
	}
	second := parameter.ChimeBaseHz + parameter.ChimeSpanHz*clamp01(ratio)

	n1 := sineNote(parameter.ChimeBaseHz, d, parameter.ChimeAttack, parameter.ChimeRelease, rate)
	n2 := beep.Mix(
		newVolume(sineNote(second, d, parameter.ChimeAttack, parameter.ChimeRelease, rate), 1-parameter.ChimeOvertone),
		newVolume(sineNote(2*second, d, parameter.ChimeAttack, parameter.ChimeRelease/2, rate), parameter.ChimeOvertone),
	)

	vol := cfg.EffectVolumes[SoundChime] * cfg.MasterVolume
	return newVolume(beep.Seq(n1, n2), vol)
}

// CreateThudSound generates a dull square thud for aborted rolls
func CreateThudSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	osc := NewOscillator(parameter.ThudHz, parameter.ThudDuration, WaveSquare, rate, nil)
	shaped := NewEnvelope(osc, parameter.ThudDuration, parameter.ThudAttack, parameter.ThudRelease, rate)

	vol := cfg.EffectVolumes[SoundThud] * cfg.MasterVolume
	return newVolume(shaped, vol)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
