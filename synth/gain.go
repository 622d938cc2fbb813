package synth

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
)

// Gain is a smoothed gain stage
// Retargets ramp linearly per sample so per-tick updates never click
type Gain struct {
	mu       sync.Mutex
	streamer beep.Streamer
	rate     beep.SampleRate

	current float64
	target  float64
	step    float64 // Per-sample increment toward target, 0 when settled
}

// NewGain wraps s in a gain stage starting at initial
func NewGain(s beep.Streamer, initial float64, rate beep.SampleRate) *Gain {
	return &Gain{
		streamer: s,
		rate:     rate,
		current:  initial,
		target:   initial,
	}
}

// SetGain jumps to v immediately, cancelling any ramp
func (g *Gain) SetGain(v float64) {
	g.mu.Lock()
	g.current = v
	g.target = v
	g.step = 0
	g.mu.Unlock()
}

// RampTo moves toward target over d
// d <= 0 behaves like SetGain
func (g *Gain) RampTo(target float64, d time.Duration) {
	g.mu.Lock()
	defer g.mu.Unlock()

	samples := g.rate.N(d)
	if samples <= 0 {
		g.current = target
		g.target = target
		g.step = 0
		return
	}
	g.target = target
	g.step = (target - g.current) / float64(samples)
}

// Gain returns the instantaneous gain value
func (g *Gain) Gain() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.current
}

// Target returns the value the stage is ramping toward
func (g *Gain) Target() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.target
}

func (g *Gain) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = g.streamer.Stream(samples)

	g.mu.Lock()
	cur, target, step := g.current, g.target, g.step
	for i := 0; i < n; i++ {
		if step != 0 {
			cur += step
			if (step > 0 && cur >= target) || (step < 0 && cur <= target) {
				cur = target
				step = 0
			}
		}
		samples[i][0] *= cur
		samples[i][1] *= cur
	}
	g.current, g.step = cur, step
	g.mu.Unlock()

	return n, ok
}

func (g *Gain) Err() error { return g.streamer.Err() }
