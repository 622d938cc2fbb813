// Package sfx provides stateless one-shot sound recipes
// Each function returns a finite streamer the host routes through
// Engine.PlayOneShot so master volume and combat mixing apply
package sfx

import (
	"math/rand"
	"time"

	"github.com/gopxl/beep"

	"github.com/veilcraft/soundscape/synth"
)

// UIClick is a short confirmation blip for menus and prompts
func UIClick(rate beep.SampleRate) beep.Streamer {
	return synth.NewGain(synth.NewEnvelope(
		synth.NewOscillator(1200, 50*time.Millisecond, synth.WaveSquare, rate),
		50*time.Millisecond, time.Millisecond, 40*time.Millisecond, rate), 0.4, rate)
}

// Footstep is a dull thud with slight pitch variation per call
func Footstep(rate beep.SampleRate) beep.Streamer {
	freq := 70 + rand.Float64()*20
	return synth.NewGain(synth.NewEnvelope(
		synth.NewOscillator(freq, 110*time.Millisecond, synth.WaveTriangle, rate),
		110*time.Millisecond, 2*time.Millisecond, 90*time.Millisecond, rate), 0.5, rate)
}

// WeaponFire layers a noise crack over a falling body tone
func WeaponFire(rate beep.SampleRate) beep.Streamer {
	crack := synth.NewEnvelope(
		synth.NewOscillator(0, 80*time.Millisecond, synth.WaveNoise, rate),
		80*time.Millisecond, time.Millisecond, 70*time.Millisecond, rate)
	body := synth.NewEnvelope(
		synth.NewOscillator(160, 140*time.Millisecond, synth.WaveSaw, rate),
		140*time.Millisecond, time.Millisecond, 120*time.Millisecond, rate)

	m := synth.NewMixer()
	m.Add(synth.NewGain(crack, 0.6, rate))
	m.Add(synth.NewGain(body, 0.4, rate))
	return &finite{m, rate.N(150 * time.Millisecond)}
}

// Drip is a single water droplet ping
func Drip(rate beep.SampleRate) beep.Streamer {
	return synth.NewGain(synth.NewEnvelope(
		synth.NewOscillator(1200, 90*time.Millisecond, synth.WaveSine, rate),
		90*time.Millisecond, 2*time.Millisecond, 80*time.Millisecond, rate), 0.5, rate)
}

// Pickup is a rising two-note chirp for item collection
func Pickup(rate beep.SampleRate) beep.Streamer {
	note := func(freq float64) beep.Streamer {
		return synth.NewEnvelope(
			synth.NewOscillator(freq, 70*time.Millisecond, synth.WaveSine, rate),
			70*time.Millisecond, 3*time.Millisecond, 50*time.Millisecond, rate)
	}
	return synth.NewGain(beep.Seq(note(660), note(990)), 0.4, rate)
}

// finite caps a mixer at a fixed sample count
// The engine's one-shot stage drops streamers when they drain, and a
// bare mixer never does
type finite struct {
	s      beep.Streamer
	remain int
}

func (f *finite) Stream(samples [][2]float64) (int, bool) {
	if f.remain <= 0 {
		return 0, false
	}
	if len(samples) > f.remain {
		samples = samples[:f.remain]
	}
	n, _ := f.s.Stream(samples)
	f.remain -= n
	return n, n > 0
}

func (f *finite) Err() error { return f.s.Err() }
