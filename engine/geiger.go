package engine

import (
	"github.com/gopxl/beep"

	"github.com/veilcraft/soundscape/constant"
	"github.com/veilcraft/soundscape/synth"
)

// geigerClick builds one radiation counter tick
// A click is a bare noise burst with an instant attack; the random
// scheduling cadence carries all of the effect's character
func geigerClick(rate beep.SampleRate) beep.Streamer {
	return synth.NewGain(
		synth.NewOscillator(0, constant.GeigerClickLength, synth.WaveNoise, rate),
		0.35, rate)
}

// startGeigerLocked begins the click cadence if not already running
func (e *Engine) startGeigerLocked() {
	if e.geigerTask != 0 {
		return
	}
	e.geigerTask = e.sched.Every(
		constant.GeigerInterval, constant.GeigerJitter, constant.GeigerProbability, func() {
			e.runLocked(func() {
				if e.geigerTask == 0 {
					return
				}
				e.bus.oneshot.Add(geigerClick(e.rate))
			})
		})
}

// stopGeigerLocked halts the cadence immediately
func (e *Engine) stopGeigerLocked() {
	if e.geigerTask == 0 {
		return
	}
	e.sched.Cancel(e.geigerTask)
	e.geigerTask = 0
}
