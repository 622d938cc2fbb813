package synth

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
)

// Lowpass is a one-pole lowpass filter with a smoothed cutoff
// Occlusion and indoor muffling retarget the cutoff every tick; the
// per-sample ramp keeps the timbre shift continuous
type Lowpass struct {
	mu       sync.Mutex
	streamer beep.Streamer
	rate     beep.SampleRate

	cutoff float64
	target float64
	step   float64 // Hz per sample toward target

	state [2]float64
}

// NewLowpass wraps s with an initial cutoff in Hz
func NewLowpass(s beep.Streamer, cutoff float64, rate beep.SampleRate) *Lowpass {
	return &Lowpass{
		streamer: s,
		rate:     rate,
		cutoff:   clampCutoff(cutoff, rate),
		target:   clampCutoff(cutoff, rate),
	}
}

// SetCutoff ramps the cutoff toward target Hz over d
func (f *Lowpass) SetCutoff(target float64, d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()

	target = clampCutoff(target, f.rate)
	samples := f.rate.N(d)
	if samples <= 0 {
		f.cutoff = target
		f.target = target
		f.step = 0
		return
	}
	f.target = target
	f.step = (target - f.cutoff) / float64(samples)
}

// Cutoff returns the instantaneous cutoff in Hz
func (f *Lowpass) Cutoff() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cutoff
}

// TargetCutoff returns the cutoff the filter is ramping toward
func (f *Lowpass) TargetCutoff() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.target
}

func (f *Lowpass) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = f.streamer.Stream(samples)

	f.mu.Lock()
	cutoff, target, step := f.cutoff, f.target, f.step
	y := f.state
	sr := float64(f.rate)

	for i := 0; i < n; i++ {
		if step != 0 {
			cutoff += step
			if (step > 0 && cutoff >= target) || (step < 0 && cutoff <= target) {
				cutoff = target
				step = 0
			}
		}
		alpha := 1.0 - math.Exp(-2.0*math.Pi*cutoff/sr)
		y[0] += alpha * (samples[i][0] - y[0])
		y[1] += alpha * (samples[i][1] - y[1])
		samples[i][0] = y[0]
		samples[i][1] = y[1]
	}

	f.cutoff, f.step = cutoff, step
	f.state = y
	f.mu.Unlock()

	return n, ok
}

func (f *Lowpass) Err() error { return f.streamer.Err() }

func clampCutoff(c float64, rate beep.SampleRate) float64 {
	nyquist := float64(rate) / 2
	if c < 10 {
		return 10
	}
	if c > nyquist {
		return nyquist
	}
	return c
}
