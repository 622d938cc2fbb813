package engine

import (
	"time"

	"github.com/gopxl/beep"

	"github.com/veilcraft/soundscape/constant"
	"github.com/veilcraft/soundscape/profile"
	"github.com/veilcraft/soundscape/synth"
)

// mixBus is the final stage shared by every sound the engine renders
// One instance per Engine; only the layer manager, zone tracker and
// combat logic write to it, generators route through their own stages
type mixBus struct {
	rate beep.SampleRate

	ambient *synth.Mixer // Layer gain stages
	spatial *synth.Mixer // Spatial source chains
	music   *synth.Mixer // Music director output
	oneshot *synth.Mixer // Klaxon, collaborator one-shots

	sum     *synth.Mixer
	lowpass *synth.Lowpass
	reverb  *synth.Reverb
	master  *synth.Gain

	// Current targets, recombined when either input changes
	profileCutoff float64
	profileWet    float64
	indoor        bool
}

func newMixBus(rate beep.SampleRate) *mixBus {
	b := &mixBus{
		rate:          rate,
		ambient:       synth.NewMixer(),
		spatial:       synth.NewMixer(),
		music:         synth.NewMixer(),
		oneshot:       synth.NewMixer(),
		sum:           synth.NewMixer(),
		profileCutoff: constant.OpenLowpassCutoff,
		profileWet:    constant.OpenReverbWet,
	}
	b.sum.Add(b.ambient)
	b.sum.Add(b.spatial)
	b.sum.Add(b.music)
	b.sum.Add(b.oneshot)

	b.lowpass = synth.NewLowpass(b.sum, constant.OpenLowpassCutoff, rate)
	b.reverb = synth.NewReverb(b.lowpass, constant.OpenReverbWet, time.Second, rate)
	b.master = synth.NewGain(b.reverb, 1.0, rate)
	return b
}

// root returns the streamer the output sink pulls from
func (b *mixBus) root() beep.Streamer {
	return b.master
}

// applyProfile retargets the shared filter and reverb for a new
// environment and regenerates the reverb impulse to match
func (b *mixBus) applyProfile(p *profile.EnvironmentProfile, ramp time.Duration) {
	b.profileCutoff = p.LowpassCutoff
	b.profileWet = p.ReverbWet
	b.reverb.Retune(p.ReverbDecay)
	b.retarget(ramp)
}

// setIndoor switches between the muffled and open presets
func (b *mixBus) setIndoor(indoor bool, ramp time.Duration) {
	if b.indoor == indoor {
		return
	}
	b.indoor = indoor
	b.retarget(ramp)
}

func (b *mixBus) retarget(ramp time.Duration) {
	cutoff := b.profileCutoff
	wet := b.profileWet
	if b.indoor {
		// Indoor muffling caps brightness and raises the reverb send
		if cutoff > constant.MuffledLowpassCutoff {
			cutoff = constant.MuffledLowpassCutoff
		}
		if wet < constant.MuffledReverbWet {
			wet = constant.MuffledReverbWet
		}
	}
	b.lowpass.SetCutoff(cutoff, ramp)
	b.reverb.SetWet(wet, ramp)
}

// setMasterVolume jumps the final gain; host UI sliders own smoothing
func (b *mixBus) setMasterVolume(v float64) {
	b.master.SetGain(v)
}

// release detaches everything from every stage
func (b *mixBus) release() {
	b.ambient.Clear()
	b.spatial.Clear()
	b.music.Clear()
	b.oneshot.Clear()
}

// activeNodes counts attached streamers across the input stages
func (b *mixBus) activeNodes() int {
	return b.ambient.Len() + b.spatial.Len() + b.music.Len() + b.oneshot.Len()
}
