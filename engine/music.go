package engine

import (
	"math"
	"time"

	"github.com/gopxl/beep"

	"github.com/veilcraft/soundscape/constant"
	"github.com/veilcraft/soundscape/core"
	"github.com/veilcraft/soundscape/profile"
	"github.com/veilcraft/soundscape/synth"
)

// musicDirector runs the generative music layer
// Four discrete intensity levels scale volume, tempo and brightness in
// lockstep; notes come from the profile's scale over its base pitch
// All methods assume the engine lock is held
type musicDirector struct {
	rate  beep.SampleRate
	bus   *mixBus
	sched *Scheduler
	// exec runs a scheduled action under the engine lock; guard is a
	// lock-held staleness check, same contract as the layer manager's
	exec  func(fn func())
	guard func(cat core.Environment) bool

	src      *synth.Mixer
	lp       *synth.Lowpass
	gain     *synth.Gain
	attached bool

	prof  *profile.EnvironmentProfile
	level core.Intensity
	task  TaskID
	step  int
}

func newMusicDirector(rate beep.SampleRate, bus *mixBus, sched *Scheduler) *musicDirector {
	return &musicDirector{
		rate:  rate,
		bus:   bus,
		sched: sched,
		level: core.IntensityAmbient,
	}
}

// start begins the pulse for a new environment at the current level
func (md *musicDirector) start(p *profile.EnvironmentProfile) {
	md.stopTask()
	md.prof = p
	md.step = 0

	if !md.attached {
		md.src = synth.NewMixer()
		md.lp = synth.NewLowpass(md.src, p.LowpassCutoff, md.rate)
		md.gain = synth.NewGain(md.lp, 0, md.rate)
		md.bus.music.Add(md.gain)
		md.attached = true
	}

	md.applyLevel(constant.MusicRampDuration)
	md.schedule()
}

// setIntensity moves to a new level; unchanged level is a no-op so a
// repeated call produces exactly one ramp
func (md *musicDirector) setIntensity(level core.Intensity) bool {
	if !level.Valid() || level == md.level {
		return false
	}
	md.level = level
	if md.prof == nil {
		return true
	}
	md.applyLevel(constant.MusicRampDuration)
	// Tempo changed; the pulse task is rebuilt at the new interval
	md.stopTask()
	md.schedule()
	return true
}

func (md *musicDirector) intensity() core.Intensity {
	return md.level
}

// stop silences and releases the music chain
func (md *musicDirector) stop() {
	md.stopTask()
	md.prof = nil
	if md.attached {
		md.bus.music.Remove(md.gain)
		md.src.Clear()
		md.src = nil
		md.lp = nil
		md.gain = nil
		md.attached = false
	}
}

func (md *musicDirector) applyLevel(ramp time.Duration) {
	target := profile.ForIntensity(md.level)
	md.gain.RampTo(target.Volume, ramp)
	md.lp.SetCutoff(md.prof.LowpassCutoff*target.CutoffMult, ramp)
}

func (md *musicDirector) schedule() {
	if md.prof == nil {
		return
	}
	target := profile.ForIntensity(md.level)
	bpm := md.prof.Tempo * target.TempoMult
	if bpm <= 0 {
		return
	}
	interval := time.Duration(float64(time.Minute) / bpm)
	cat := md.prof.Category

	md.task = md.sched.Every(interval, 0, 1.0, func() {
		md.exec(func() {
			if !md.guard(cat) {
				return
			}
			md.pulse()
		})
	})
}

// pulse emits one note; runs with the engine lock held
func (md *musicDirector) pulse() {
	prof := md.prof
	src := md.src
	if prof == nil || src == nil {
		return
	}

	degree := prof.Scale[md.step%len(prof.Scale)]
	octave := 0
	// Every other bar reaches an octave up for movement
	if (md.step/len(prof.Scale))%2 == 1 {
		octave = 12
	}
	md.step++

	freq := prof.BasePitch * 2 * math.Pow(2, float64(degree+octave)/12.0)
	dur := 320 * time.Millisecond

	src.Add(synth.NewEnvelope(
		synth.NewOscillator(freq, dur, synth.WaveTriangle, md.rate),
		dur, 15*time.Millisecond, 220*time.Millisecond, md.rate))
}

func (md *musicDirector) stopTask() {
	if md.task != 0 {
		md.sched.Cancel(md.task)
		md.task = 0
	}
}
