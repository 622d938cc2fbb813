package engine

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/pkg/errors"

	"github.com/veilcraft/soundscape/constant"
	"github.com/veilcraft/soundscape/core"
	"github.com/veilcraft/soundscape/synth"
	"github.com/veilcraft/soundscape/vmath"
)

// SpatialSoundSource configures a world-positioned emitter
type SpatialSoundSource struct {
	ID          string
	Type        core.SourceType
	Position    vmath.Vec3
	MaxDistance float64
	Volume      float64
	Interval    time.Duration // 0 disables the periodic trigger
	Active      bool
	Occludable  bool
}

// OcclusionFunc is supplied by level/physics code
// Returns blockage in [0,1]; the engine never raycasts itself
type OcclusionFunc func(source, listener vmath.Vec3) float64

// OcclusionConfig tunes how blockage maps to filtering and volume
type OcclusionConfig struct {
	Enabled        bool
	OccludedCutoff float64 // Hz at full blockage
	OccludedVolume float64 // Volume multiplier at full blockage
}

// DefaultOcclusionConfig returns the engine-wide defaults
func DefaultOcclusionConfig() OcclusionConfig {
	return OcclusionConfig{
		Enabled:        true,
		OccludedCutoff: constant.OcclusionMinCutoff,
		OccludedVolume: constant.OccludedVolume,
	}
}

// spatialSource pairs a source config with its signal-graph nodes
type spatialSource struct {
	cfg            SpatialSoundSource
	occlusionLevel float64 // Derived each tick, 0 clear..1 blocked

	src      *synth.Mixer
	lp       *synth.Lowpass
	gain     *synth.Gain // Attach handle on the spatial bus stage
	attached bool
	task     TaskID
}

// spatialRegistry owns every spatial source's lifecycle
// All methods assume the engine lock is held
type spatialRegistry struct {
	rate  beep.SampleRate
	bus   *mixBus
	sched *Scheduler

	// trigger re-enters the engine with its lock dropped; set once at
	// engine construction
	trigger func(id string)

	sources  map[string]*spatialSource
	listener vmath.Vec3
}

func newSpatialRegistry(rate beep.SampleRate, bus *mixBus, sched *Scheduler) *spatialRegistry {
	return &spatialRegistry{
		rate:    rate,
		bus:     bus,
		sched:   sched,
		sources: make(map[string]*spatialSource),
	}
}

func (sr *spatialRegistry) add(cfg SpatialSoundSource) error {
	if cfg.ID == "" {
		return errors.New("spatial source: empty id")
	}
	if _, exists := sr.sources[cfg.ID]; exists {
		return errors.Errorf("spatial source %q already registered", cfg.ID)
	}
	if cfg.MaxDistance <= 0 {
		return errors.Errorf("spatial source %q: max distance must be positive", cfg.ID)
	}
	cfg.Volume = clamp01(cfg.Volume)

	s := &spatialSource{cfg: cfg}
	sr.sources[cfg.ID] = s

	if cfg.Active {
		sr.buildNodes(s)
	}
	if cfg.Interval > 0 {
		id := cfg.ID
		s.task = sr.sched.Every(cfg.Interval, cfg.Interval/4, 1.0, func() {
			sr.trigger(id)
		})
	}
	return nil
}

func (sr *spatialRegistry) remove(id string) bool {
	s, ok := sr.sources[id]
	if !ok {
		return false
	}
	sr.teardownNodes(s)
	if s.task != 0 {
		sr.sched.Cancel(s.task)
		s.task = 0
	}
	delete(sr.sources, id)
	return true
}

func (sr *spatialRegistry) setActive(id string, active bool) bool {
	s, ok := sr.sources[id]
	if !ok {
		return false
	}
	if s.cfg.Active == active {
		return true
	}
	s.cfg.Active = active
	if active {
		sr.buildNodes(s)
	} else {
		sr.teardownNodes(s)
	}
	return true
}

func (sr *spatialRegistry) move(id string, pos vmath.Vec3) bool {
	s, ok := sr.sources[id]
	if !ok {
		return false
	}
	s.cfg.Position = pos
	return true
}

func (sr *spatialRegistry) get(id string) (*spatialSource, bool) {
	s, ok := sr.sources[id]
	return s, ok
}

// buildNodes constructs the per-source chain and attaches it
// Chain: recipe generators -> source mixer -> lowpass -> gain -> bus
func (sr *spatialRegistry) buildNodes(s *spatialSource) {
	if s.attached {
		return
	}
	s.src = synth.NewMixer()
	s.lp = synth.NewLowpass(s.src, constant.OcclusionMaxCutoff, sr.rate)
	// Gain starts silent; the next tick ramps it to its computed level
	s.gain = synth.NewGain(s.lp, 0, sr.rate)

	if s.cfg.Type.Continuous() {
		for _, node := range continuousNodes(s.cfg.Type, sr.rate) {
			s.src.Add(node)
		}
	}

	sr.bus.spatial.Add(s.gain)
	s.attached = true
}

// teardownNodes stops and releases the chain
func (sr *spatialRegistry) teardownNodes(s *spatialSource) {
	if !s.attached {
		return
	}
	sr.bus.spatial.Remove(s.gain)
	s.src.Clear()
	s.src = nil
	s.lp = nil
	s.gain = nil
	s.attached = false
}

// update recomputes every source's gain and filter targets
// Runs once per tick after zone resolution; O(sources)
func (sr *spatialRegistry) update(listener vmath.Vec3, combat bool, occ OcclusionConfig, occFn OcclusionFunc) {
	sr.listener = listener

	for _, s := range sr.sources {
		if !s.attached {
			continue
		}

		level := 0.0
		if occ.Enabled && s.cfg.Occludable && occFn != nil {
			level = clamp01(occFn(s.cfg.Position, listener))
		}
		s.occlusionLevel = level

		dist := vmath.V3Dist(listener, s.cfg.Position)
		att := distanceAttenuation(dist, s.cfg.MaxDistance)

		volMult := 1.0 - level*(1.0-occ.OccludedVolume)
		combatMult := 1.0
		if combat && s.cfg.Occludable {
			combatMult = constant.CombatSpatialScale
		}

		target := s.cfg.Volume * att * volMult * combatMult
		s.gain.RampTo(target, constant.GainRampDuration)

		cutoff := constant.OcclusionMaxCutoff -
			(constant.OcclusionMaxCutoff-occ.OccludedCutoff)*level
		s.lp.SetCutoff(cutoff, constant.CutoffRampDuration)
	}
}

// fireTrigger spawns one periodic emission if the source is audible
// Beyond max distance the trigger is silently skipped, not removed, so
// the source reactivates when the listener returns into range
func (sr *spatialRegistry) fireTrigger(id string) {
	s, ok := sr.sources[id]
	if !ok || !s.attached {
		return
	}
	dist := vmath.V3Dist(sr.listener, s.cfg.Position)
	if dist >= s.cfg.MaxDistance {
		return
	}
	s.src.Add(triggerOneShot(s.cfg.Type, sr.rate))
}

// releaseAll tears down every source's nodes but keeps registrations
func (sr *spatialRegistry) releaseAll() {
	for _, s := range sr.sources {
		sr.teardownNodes(s)
		if s.task != 0 {
			sr.sched.Cancel(s.task)
			s.task = 0
		}
	}
}

func (sr *spatialRegistry) count() int {
	return len(sr.sources)
}

// distanceAttenuation is inverse-flavored falloff bounded by max
// 1.0 at the source, 0 at and beyond max distance
func distanceAttenuation(dist, max float64) float64 {
	if max <= 0 || dist >= max {
		return 0
	}
	if dist < 0 {
		dist = 0
	}
	norm := dist / max
	return (1 - norm) / (1 + 3*norm)
}

// continuousNodes builds the free-running generators for a source type
func continuousNodes(t core.SourceType, rate beep.SampleRate) []beep.Streamer {
	switch t {
	case core.SourceMachinery:
		return []beep.Streamer{
			synth.NewGain(synth.NewTone(55, synth.WaveSaw, rate), 0.4, rate),
			synth.NewGain(synth.NewTone(110.5, synth.WaveSine, rate), 0.3, rate),
			synth.NewGain(synth.NewLoopSource(synth.BrownNoise(int(rate), 2*time.Second)), 0.15, rate),
		}
	case core.SourceVent:
		return []beep.Streamer{
			synth.NewGain(synth.NewLoopSource(synth.PinkNoise(int(rate), 2*time.Second)), 0.6, rate),
		}
	case core.SourceDrip, core.SourceElectrical, core.SourceBeacon:
		// Trigger-only types hold no free-running generator
		return nil
	default:
		return nil
	}
}

// triggerOneShot builds one periodic emission for a source type
func triggerOneShot(t core.SourceType, rate beep.SampleRate) beep.Streamer {
	switch t {
	case core.SourceDrip:
		return synth.NewEnvelope(
			synth.NewOscillator(1200, 90*time.Millisecond, synth.WaveSine, rate),
			90*time.Millisecond, 2*time.Millisecond, 80*time.Millisecond, rate)
	case core.SourceElectrical:
		return synth.NewEnvelope(
			synth.NewOscillator(0, 60*time.Millisecond, synth.WaveNoise, rate),
			60*time.Millisecond, time.Millisecond, 50*time.Millisecond, rate)
	case core.SourceBeacon:
		return synth.NewEnvelope(
			synth.NewOscillator(880, 250*time.Millisecond, synth.WaveSine, rate),
			250*time.Millisecond, 5*time.Millisecond, 200*time.Millisecond, rate)
	case core.SourceMachinery:
		// Occasional clank accent over the hum
		return synth.NewEnvelope(
			synth.NewOscillator(180, 120*time.Millisecond, synth.WaveSquare, rate),
			120*time.Millisecond, time.Millisecond, 100*time.Millisecond, rate)
	case core.SourceVent:
		// Pressure burst
		return synth.NewEnvelope(
			synth.NewOscillator(0, 300*time.Millisecond, synth.WaveNoise, rate),
			300*time.Millisecond, 60*time.Millisecond, 200*time.Millisecond, rate)
	default:
		return synth.NewBufferSource(nil)
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
