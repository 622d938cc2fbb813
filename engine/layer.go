package engine

import (
	"time"

	"github.com/gopxl/beep"

	"github.com/veilcraft/soundscape/core"
	"github.com/veilcraft/soundscape/profile"
	"github.com/veilcraft/soundscape/synth"
)

// layer groups the generators behind one gain stage
// The layer manager is the only owner; nothing else starts or stops
// its nodes
type layer struct {
	role    core.LayerRole
	baseVol float64

	src   *synth.Mixer
	chain beep.Streamer // Full chain, attach handle on the ambient stage
	gain  *synth.Gain
	nodes []beep.Streamer
	tasks []TaskID
}

// layerManager builds, fades and releases the per-environment layers
// All methods assume the engine lock is held
type layerManager struct {
	rate  beep.SampleRate
	bus   *mixBus
	sched *Scheduler

	// exec runs a scheduled action under the engine lock, skipping it
	// entirely once the engine is disposed
	exec func(fn func())
	// guard reports, with the engine lock held, whether detail
	// callbacks for cat should still run; late firings from a stale
	// environment become no-ops
	guard func(cat core.Environment) bool

	layers []*layer
}

func newLayerManager(rate beep.SampleRate, bus *mixBus, sched *Scheduler) *layerManager {
	return &layerManager{rate: rate, bus: bus, sched: sched}
}

// startLayers constructs every layer for the profile and fades them in
// Gains start silent so a transition never pops
func (lm *layerManager) startLayers(p *profile.EnvironmentProfile, intensity float64, fadeIn time.Duration) {
	base := p.AmbientVolume * clamp01(intensity)

	for _, role := range core.LayerRoles {
		l := lm.buildLayer(p, role, base)
		lm.layers = append(lm.layers, l)
		lm.bus.ambient.Add(l.chain)
		l.gain.RampTo(l.baseVol, fadeIn)
	}
}

func (lm *layerManager) buildLayer(p *profile.EnvironmentProfile, role core.LayerRole, base float64) *layer {
	l := &layer{
		role: role,
		src:  synth.NewMixer(),
	}

	switch role {
	case core.RoleDrone:
		l.baseVol = base
		l.nodes = droneNodes(p, lm.rate)
	case core.RoleTexture:
		l.baseVol = base * 0.6
		l.nodes = textureNodes(p, lm.rate)
	case core.RoleDetail:
		l.baseVol = base * 0.8
		cat := p.Category
		l.tasks = append(l.tasks, lm.sched.Every(
			p.DetailInterval, p.DetailJitter, p.DetailProbability, func() {
				lm.exec(func() {
					if !lm.guard(cat) {
						return
					}
					l.src.Add(detailOneShot(cat, lm.rate))
				})
			}))
	case core.RoleEvent:
		l.baseVol = base * 0.8
		cat := p.Category
		l.tasks = append(l.tasks, lm.sched.Every(
			p.EventInterval, p.EventInterval/2, p.EventProbability, func() {
				lm.exec(func() {
					if !lm.guard(cat) {
						return
					}
					l.src.Add(eventOneShot(cat, lm.rate))
				})
			}))
	}

	for _, n := range l.nodes {
		l.src.Add(n)
	}

	// Texture gets its own lowpass tint from the profile cutoff
	var tail beep.Streamer = l.src
	if role == core.RoleTexture {
		tail = synth.NewLowpass(l.src, p.LowpassCutoff*0.75, lm.rate)
	}
	l.gain = synth.NewGain(tail, 0, lm.rate)
	l.chain = l.gain
	return l
}

// fadeAllTo ramps every layer's gain stage to an absolute value
func (lm *layerManager) fadeAllTo(gain float64, d time.Duration) {
	for _, l := range lm.layers {
		l.gain.RampTo(gain, d)
	}
}

// fadeToBase restores each layer's own target, scaled for combat state
func (lm *layerManager) fadeToBase(combatScale float64, d time.Duration) {
	for _, l := range lm.layers {
		l.gain.RampTo(l.baseVol*combatScale, d)
	}
}

// setCombatScale ducks the base layers during combat
// Which layers exist never changes, only their prominence
func (lm *layerManager) setCombatScale(scale float64, d time.Duration) {
	for _, l := range lm.layers {
		l.gain.RampTo(l.baseVol*scale, d)
	}
}

// stopAll immediately releases every generator across every layer
// This is the only path that fully frees ambient synthesis resources
func (lm *layerManager) stopAll() {
	for _, l := range lm.layers {
		for _, id := range l.tasks {
			lm.sched.Cancel(id)
		}
		l.tasks = nil
		lm.bus.ambient.Remove(l.chain)
		l.src.Clear()
		l.nodes = nil
	}
	lm.layers = nil
}

func (lm *layerManager) activeLayers() int {
	return len(lm.layers)
}

// generatorCount reports live generator handles for leak checks
func (lm *layerManager) generatorCount() int {
	n := 0
	for _, l := range lm.layers {
		n += len(l.nodes) + l.src.Len()
	}
	return n
}

// droneNodes builds the tonal foundation for a category's profile
// Table-driven: frequencies come from the profile, the node shapes are
// shared across categories
func droneNodes(p *profile.EnvironmentProfile, rate beep.SampleRate) []beep.Streamer {
	fundamental := p.BasePitch
	return []beep.Streamer{
		synth.NewGain(synth.NewLoopSource(synth.BrownNoise(int(rate), 2*time.Second)), 0.22, rate),
		synth.NewGain(synth.NewTone(fundamental, synth.WaveSine, rate), 0.3, rate),
		synth.NewGain(synth.NewTone(fundamental*1.006, synth.WaveSine, rate), 0.2, rate),
		synth.NewGain(synth.NewTone(fundamental*2, synth.WaveTriangle, rate), 0.1, rate),
	}
}

// textureNodes builds the filtered noise bed
func textureNodes(p *profile.EnvironmentProfile, rate beep.SampleRate) []beep.Streamer {
	return []beep.Streamer{
		synth.NewGain(synth.NewLoopSource(synth.PinkNoise(int(rate), 3*time.Second)), 0.35, rate),
	}
}

// detailOneShot builds one incidental sound for a category
func detailOneShot(cat core.Environment, rate beep.SampleRate) beep.Streamer {
	switch cat {
	case core.EnvStation:
		// Console beep
		return synth.NewEnvelope(
			synth.NewOscillator(1040, 140*time.Millisecond, synth.WaveSine, rate),
			140*time.Millisecond, 4*time.Millisecond, 110*time.Millisecond, rate)
	case core.EnvSurface:
		// Wind gust
		return synth.NewEnvelope(
			synth.NewOscillator(0, 2500*time.Millisecond, synth.WaveNoise, rate),
			2500*time.Millisecond, 900*time.Millisecond, 1400*time.Millisecond, rate)
	case core.EnvHive:
		// Chitinous click pair
		return synth.NewEnvelope(
			synth.NewOscillator(320, 70*time.Millisecond, synth.WaveSaw, rate),
			70*time.Millisecond, time.Millisecond, 55*time.Millisecond, rate)
	case core.EnvBase:
		// Distant machinery clank
		return synth.NewEnvelope(
			synth.NewOscillator(140, 180*time.Millisecond, synth.WaveSquare, rate),
			180*time.Millisecond, 2*time.Millisecond, 150*time.Millisecond, rate)
	case core.EnvExtraction:
		// Comms blip
		return synth.NewEnvelope(
			synth.NewOscillator(1560, 60*time.Millisecond, synth.WaveSquare, rate),
			60*time.Millisecond, 2*time.Millisecond, 40*time.Millisecond, rate)
	default:
		return synth.NewBufferSource(nil)
	}
}

// eventOneShot builds one rare accent for a category
func eventOneShot(cat core.Environment, rate beep.SampleRate) beep.Streamer {
	switch cat {
	case core.EnvStation:
		// Hull groan
		return synth.NewEnvelope(
			synth.NewOscillator(48, 3*time.Second, synth.WaveTriangle, rate),
			3*time.Second, 1200*time.Millisecond, 1500*time.Millisecond, rate)
	case core.EnvSurface:
		// Far-off rumble
		return synth.NewEnvelope(
			synth.NewLoopSource(synth.BrownNoise(int(rate), time.Second)),
			4*time.Second, 1500*time.Millisecond, 2*time.Second, rate)
	case core.EnvHive:
		// Deep organic moan
		return synth.NewEnvelope(
			synth.NewOscillator(62, 2500*time.Millisecond, synth.WaveSaw, rate),
			2500*time.Millisecond, 800*time.Millisecond, 1400*time.Millisecond, rate)
	case core.EnvBase:
		// Alarm echo
		return synth.NewEnvelope(
			synth.NewOscillator(660, 900*time.Millisecond, synth.WaveSquare, rate),
			900*time.Millisecond, 30*time.Millisecond, 700*time.Millisecond, rate)
	case core.EnvExtraction:
		// Engine flare
		return synth.NewEnvelope(
			synth.NewOscillator(0, 2*time.Second, synth.WaveNoise, rate),
			2*time.Second, 300*time.Millisecond, 1500*time.Millisecond, rate)
	default:
		return synth.NewBufferSource(nil)
	}
}
