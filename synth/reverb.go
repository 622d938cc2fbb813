package synth

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
)

// reverbTaps is how many points of the impulse the wet path samples
// Full convolution at 44.1kHz is far too expensive for a game mix bus;
// a sparse multi-tap read of the same impulse keeps its decay character
const reverbTaps = 24

type reverbTap struct {
	delay int
	gainL float64
	gainR float64
}

// Reverb is the shared reverb send on the master bus
// The tail is derived from a synthesized impulse response; transitions
// call Retune so reverb character follows the new environment
type Reverb struct {
	mu       sync.Mutex
	streamer beep.Streamer
	rate     beep.SampleRate

	wet  *paramRamp
	taps []reverbTap

	ring    [][2]float64
	ringPos int
}

// NewReverb wraps s with a reverb send at the given wet level
func NewReverb(s beep.Streamer, wet float64, decay time.Duration, rate beep.SampleRate) *Reverb {
	r := &Reverb{
		streamer: s,
		rate:     rate,
		wet:      newParamRamp(wet, rate),
	}
	r.Retune(decay)
	return r
}

// Retune regenerates the impulse for a new decay time and re-derives
// the tap set from it
func (r *Reverb) Retune(decay time.Duration) {
	if decay <= 0 {
		decay = 100 * time.Millisecond
	}
	imp := ReverbImpulse(int(r.rate), decay)

	taps := make([]reverbTap, 0, reverbTaps)
	stride := len(imp) / reverbTaps
	if stride < 1 {
		stride = 1
	}
	norm := 1.0 / float64(reverbTaps)
	for i := stride; i < len(imp); i += stride {
		taps = append(taps, reverbTap{
			delay: i,
			gainL: imp[i][0] * norm,
			gainR: imp[i][1] * norm,
		})
	}

	r.mu.Lock()
	r.taps = taps
	need := len(imp) + 1
	if len(r.ring) < need {
		r.ring = make([][2]float64, need)
		r.ringPos = 0
	}
	r.mu.Unlock()
}

// SetWet ramps the wet level toward target over d
func (r *Reverb) SetWet(target float64, d time.Duration) {
	r.wet.RampTo(target, d)
}

// Wet returns the instantaneous wet level
func (r *Reverb) Wet() float64 {
	return r.wet.Value()
}

func (r *Reverb) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = r.streamer.Stream(samples)

	r.mu.Lock()
	ringLen := len(r.ring)
	for i := 0; i < n; i++ {
		wet := r.wet.step()

		dryL, dryR := samples[i][0], samples[i][1]
		r.ring[r.ringPos] = [2]float64{dryL, dryR}

		var wetL, wetR float64
		for _, t := range r.taps {
			idx := r.ringPos - t.delay
			if idx < 0 {
				idx += ringLen
			}
			wetL += r.ring[idx][0] * t.gainL
			wetR += r.ring[idx][1] * t.gainR
		}

		samples[i][0] = dryL + wetL*wet
		samples[i][1] = dryR + wetR*wet

		r.ringPos++
		if r.ringPos >= ringLen {
			r.ringPos = 0
		}
	}
	r.mu.Unlock()

	return n, ok
}

func (r *Reverb) Err() error { return r.streamer.Err() }

// paramRamp is a lock-guarded scalar with per-sample linear smoothing
type paramRamp struct {
	mu      sync.Mutex
	rate    beep.SampleRate
	current float64
	target  float64
	delta   float64
}

func newParamRamp(initial float64, rate beep.SampleRate) *paramRamp {
	return &paramRamp{rate: rate, current: initial, target: initial}
}

func (p *paramRamp) RampTo(target float64, d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	samples := p.rate.N(d)
	if samples <= 0 {
		p.current = target
		p.target = target
		p.delta = 0
		return
	}
	p.target = target
	p.delta = (target - p.current) / float64(samples)
}

func (p *paramRamp) Value() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// step advances one sample and returns the new value
func (p *paramRamp) step() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.delta != 0 {
		p.current += p.delta
		if (p.delta > 0 && p.current >= p.target) || (p.delta < 0 && p.current <= p.target) {
			p.current = p.target
			p.delta = 0
		}
	}
	return p.current
}
