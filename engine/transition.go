package engine

import (
	"time"

	"github.com/veilcraft/soundscape/constant"
	"github.com/veilcraft/soundscape/core"
	"github.com/veilcraft/soundscape/profile"
)

// TransitionPhase is the crossfade orchestrator's state
type TransitionPhase int

const (
	PhaseIdle TransitionPhase = iota
	PhaseFadingOut
	PhaseSwapped
	PhaseFadingIn
)

func (p TransitionPhase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseFadingOut:
		return "fading-out"
	case PhaseSwapped:
		return "swapped"
	case PhaseFadingIn:
		return "fading-in"
	default:
		return "invalid"
	}
}

// transitionLocked drives a crossfade to a new environment
// Policy for overlapping calls: last call wins. Every deferred swap
// captures the generation at schedule time; a newer transition bumps
// the counter and the stale swap becomes a verified no-op
func (e *Engine) transitionLocked(cat core.Environment, intensity float64, d time.Duration) {
	if cat == e.current {
		return // Idempotent transition guard
	}
	p, ok := profile.ByCategory(cat)
	if !ok {
		e.logger.Printf("soundscape: no profile for category %v, ignoring transition", cat)
		return
	}

	if intensity <= 0 {
		intensity = 1.0
	}
	e.intensity = clamp01(intensity)

	e.generation++
	gen := e.generation
	e.cancelTransTaskLocked()
	half := d / 2

	if e.playing && e.current != core.EnvNone {
		e.phase = PhaseFadingOut
		e.layers.fadeAllTo(0, half)
		if half > 0 {
			e.transTask = e.sched.After(half, func() {
				e.runLocked(func() { e.swapLocked(gen, p, half) })
			})
			return
		}
	}
	e.swapLocked(gen, p, half)
}

// cancelTransTaskLocked drops the pending deferred swap or fade-in, if any
func (e *Engine) cancelTransTaskLocked() {
	if e.transTask != 0 {
		e.sched.Cancel(e.transTask)
		e.transTask = 0
	}
}

// swapLocked is the hard swap at the transition midpoint
// Stops and fully releases the old environment, builds the new one and
// fades it in; superseded generations do nothing
func (e *Engine) swapLocked(gen uint64, p *profile.EnvironmentProfile, fadeIn time.Duration) {
	if gen != e.generation {
		return // A newer transition owns the engine now
	}
	e.transTask = 0

	e.phase = PhaseSwapped
	e.layers.stopAll()
	e.stopGeigerLocked()

	e.current = p.Category
	e.playing = true
	e.transitions++

	e.bus.applyProfile(p, fadeIn)
	e.layers.startLayers(p, e.intensity, fadeIn)
	if e.combat {
		e.layers.setCombatScale(constant.CombatAmbientScale, fadeIn)
	}
	e.music.start(p)

	if zone := e.zones.active(); zone != nil && zone.HasRadiation {
		e.startGeigerLocked()
	}

	e.phase = PhaseFadingIn
	if fadeIn > 0 {
		e.transTask = e.sched.After(fadeIn, func() {
			e.runLocked(func() {
				if gen == e.generation {
					e.phase = PhaseIdle
					e.transTask = 0
				}
			})
		})
	} else {
		e.phase = PhaseIdle
	}
}

// stopLocked is the fade-out path without a subsequent swap
func (e *Engine) stopLocked(fade time.Duration) {
	if !e.playing {
		return
	}

	e.generation++
	gen := e.generation
	e.cancelTransTaskLocked()
	e.phase = PhaseFadingOut
	e.layers.fadeAllTo(0, fade)

	finish := func() {
		if gen != e.generation {
			return
		}
		e.transTask = 0
		e.layers.stopAll()
		e.music.stop()
		e.stopGeigerLocked()
		e.current = core.EnvNone
		e.playing = false
		e.phase = PhaseIdle
	}

	if fade > 0 {
		e.transTask = e.sched.After(fade, func() {
			e.runLocked(finish)
		})
	} else {
		finish()
	}
}
