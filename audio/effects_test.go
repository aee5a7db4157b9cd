package audio

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/dice-tray/parameter"
)

// drain streams s to completion and returns sample count and peak amplitude
func drain(t *testing.T, s beep.Streamer) (int, float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	total, peak := 0, 0.0
	for i := 0; i < 10000; i++ {
		n, ok := s.Stream(buf)
		for j := 0; j < n; j++ {
			peak = math.Max(peak, math.Abs(buf[j][0]))
			if math.IsNaN(buf[j][0]) || math.IsNaN(buf[j][1]) {
				t.Fatalf("NaN sample at %d", total+j)
			}
		}
		total += n
		if !ok {
			return total, peak
		}
	}
	t.Fatal("stream never ended")
	return 0, 0
}

func TestOscillatorSine(t *testing.T) {
	rate := beep.SampleRate(44100)
	osc := NewOscillator(440, 100*time.Millisecond, WaveSine, rate, nil)

	samples := make([][2]float64, 100)
	n, ok := osc.Stream(samples)
	if !ok || n != 100 {
		t.Fatalf("Expected 100 samples, got %d (ok=%v)", n, ok)
	}
	for i := 0; i < n; i++ {
		if samples[i][0] < -1 || samples[i][0] > 1 {
			t.Errorf("Sample %d out of range: %f", i, samples[i][0])
		}
	}
	if osc.Err() != nil {
		t.Errorf("Expected no error, got: %v", osc.Err())
	}
}

func TestOscillatorDuration(t *testing.T) {
	rate := beep.SampleRate(48000)
	osc := NewOscillator(200, 10*time.Millisecond, WaveSquare, rate, nil)

	total, _ := drain(t, osc)
	if total != rate.N(10*time.Millisecond) {
		t.Errorf("Expected %d samples, got %d", rate.N(10*time.Millisecond), total)
	}
}

func TestOscillatorNoiseSeeded(t *testing.T) {
	rate := beep.SampleRate(48000)
	a := NewOscillator(0, 5*time.Millisecond, WaveNoise, rate, rand.New(rand.NewSource(3)))
	b := NewOscillator(0, 5*time.Millisecond, WaveNoise, rate, rand.New(rand.NewSource(3)))

	bufA := make([][2]float64, 64)
	bufB := make([][2]float64, 64)
	a.Stream(bufA)
	b.Stream(bufB)
	for i := range bufA {
		if bufA[i] != bufB[i] {
			t.Fatal("Same seed must produce identical noise")
		}
	}
}

func TestEnvelopeAttack(t *testing.T) {
	rate := beep.SampleRate(1000)
	osc := NewOscillator(0, time.Second, WaveSquare, rate, nil) // constant +1
	env := NewEnvelope(osc, time.Second, 100*time.Millisecond, 100*time.Millisecond, rate)

	buf := make([][2]float64, 200)
	env.Stream(buf)
	if buf[0][0] != 0 {
		t.Errorf("Attack must start silent, got %v", buf[0][0])
	}
	if math.Abs(buf[50][0]-0.5) > 1e-9 {
		t.Errorf("Expected half volume mid-attack, got %v", buf[50][0])
	}
	if buf[150][0] != 1 {
		t.Errorf("Expected sustain at full volume, got %v", buf[150][0])
	}
}

func TestCreateClackSound(t *testing.T) {
	cfg := DefaultAudioConfig()
	rate := beep.SampleRate(cfg.SampleRate)

	total, loud := drain(t, CreateClackSound(cfg, 1, rand.New(rand.NewSource(1))))
	if total != rate.N(parameter.ClackDuration) {
		t.Errorf("Unexpected clack length %d", total)
	}
	_, soft := drain(t, CreateClackSound(cfg, 0.1, rand.New(rand.NewSource(1))))
	if soft >= loud {
		t.Errorf("Weak impact should be quieter: soft=%v loud=%v", soft, loud)
	}
	_, silent := drain(t, CreateClackSound(cfg, 0, rand.New(rand.NewSource(1))))
	if silent != 0 {
		t.Errorf("Zero strength must be silent, peak %v", silent)
	}
}

func TestCreateChimeSound(t *testing.T) {
	cfg := DefaultAudioConfig()
	rate := beep.SampleRate(cfg.SampleRate)

	total, peak := drain(t, CreateChimeSound(cfg, 20, 20))
	if want := 2 * rate.N(parameter.ChimeNoteDuration); total != want {
		t.Errorf("Expected %d samples, got %d", want, total)
	}
	if peak == 0 || peak > 1 {
		t.Errorf("Unexpected chime peak %v", peak)
	}

	// Single-face tables must not divide by zero
	drain(t, CreateChimeSound(cfg, 1, 1))
}

func TestCreateThudSound(t *testing.T) {
	cfg := DefaultAudioConfig()
	cfg.EffectVolumes[SoundThud] = 0

	_, peak := drain(t, CreateThudSound(cfg))
	if peak != 0 {
		t.Errorf("Zero effect volume must be silent, peak %v", peak)
	}
}
