package engine

import (
	"log"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/pkg/errors"

	"github.com/veilcraft/soundscape/constant"
	"github.com/veilcraft/soundscape/core"
	"github.com/veilcraft/soundscape/profile"
	"github.com/veilcraft/soundscape/vmath"
)

// Engine is the procedural soundscape engine
// One instance per host process; every piece of audio state lives behind
// its mutex and every timer behind its scheduler, so Dispose is a full
// teardown with nothing left running
type Engine struct {
	mu     sync.Mutex
	rate   beep.SampleRate
	logger *log.Logger

	sched   *Scheduler
	bus     *mixBus
	layers  *layerManager
	zones   *zoneTracker
	spatial *spatialRegistry
	music   *musicDirector

	sink   Sink
	silent bool

	current   core.Environment
	intensity float64
	playing   bool
	combat    bool
	master    float64
	listener  vmath.Vec3

	occCfg OcclusionConfig
	occFn  OcclusionFunc

	phase       TransitionPhase
	generation  uint64
	transitions uint64
	transTask   TaskID
	geigerTask  TaskID

	disposed atomic.Bool
}

// Option configures an Engine at construction
type Option func(*Engine)

// WithLogger replaces the default stderr logger
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithSink replaces the speaker output, mainly for tests and headless hosts
func WithSink(s Sink) Option {
	return func(e *Engine) { e.sink = s }
}

// WithSampleRate overrides the default output rate
func WithSampleRate(rate int) Option {
	return func(e *Engine) { e.rate = beep.SampleRate(rate) }
}

// New constructs an engine and starts its output sink
// A failing sink is not fatal: the engine logs a warning and runs the
// full state machine silently so the host never branches on audio
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		rate:      beep.SampleRate(constant.SampleRate),
		logger:    log.New(os.Stderr, "", log.LstdFlags),
		current:   core.EnvNone,
		intensity: 1.0,
		master:    1.0,
		occCfg:    DefaultOcclusionConfig(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rate <= 0 {
		return nil, errors.Errorf("invalid sample rate %d", e.rate)
	}
	if e.sink == nil {
		e.sink = NewSpeakerSink()
	}

	e.sched = NewScheduler()
	e.bus = newMixBus(e.rate)
	e.zones = newZoneTracker()

	e.layers = newLayerManager(e.rate, e.bus, e.sched)
	e.layers.exec = e.runLocked
	e.layers.guard = e.guardCategory

	e.music = newMusicDirector(e.rate, e.bus, e.sched)
	e.music.exec = e.runLocked
	e.music.guard = e.guardCategory

	e.spatial = newSpatialRegistry(e.rate, e.bus, e.sched)
	e.spatial.trigger = func(id string) {
		e.runLocked(func() { e.spatial.fireTrigger(id) })
	}

	if err := e.sink.Start(e.rate, e.bus.root()); err != nil {
		e.logger.Printf("soundscape: audio output unavailable, running silent: %v", err)
		e.silent = true
	}
	return e, nil
}

// runLocked executes a scheduled action under the engine lock
// Actions arriving after Dispose are dropped; the double check closes
// the window between the atomic load and the lock acquisition
func (e *Engine) runLocked(fn func()) {
	if e.disposed.Load() {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.disposed.Load() {
		return
	}
	fn()
}

// guardCategory reports whether scheduled work for cat is still current
func (e *Engine) guardCategory(cat core.Environment) bool {
	return e.playing && e.current == cat
}

// StartEnvironment begins the soundscape for a named level
// Unknown level ids log a warning and leave the engine unchanged
func (e *Engine) StartEnvironment(levelID string, intensity float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.disposed.Load() {
		return
	}

	cat, ok := profile.LevelCategory(levelID)
	if !ok {
		e.logger.Printf("soundscape: unknown level %q, keeping current environment", levelID)
		return
	}
	e.transitionLocked(cat, intensity, constant.DefaultTransitionDuration)
}

// TransitionToEnvironment crossfades to a new environment category
// Fade out over duration/2, swap, fade in over duration/2; overlapping
// calls resolve last-call-wins
func (e *Engine) TransitionToEnvironment(cat core.Environment, intensity float64, duration time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.disposed.Load() {
		return
	}
	e.transitionLocked(cat, intensity, duration)
}

// StopEnvironment fades out and releases all ambient synthesis
// A zero fade stops synchronously; on return nothing is playing and no
// deferred swap remains pending
func (e *Engine) StopEnvironment(fade time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.disposed.Load() {
		return
	}
	e.stopLocked(fade)
}

// AddZone registers a world-space audio zone
func (e *Engine) AddZone(z AudioZone) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.disposed.Load() {
		return errors.New("engine disposed")
	}
	return e.zones.add(z)
}

// RemoveZone unregisters a zone; the next position update re-resolves
func (e *Engine) RemoveZone(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.disposed.Load() {
		return false
	}
	return e.zones.remove(id)
}

// AddSpatialSource registers a world-positioned emitter
func (e *Engine) AddSpatialSource(cfg SpatialSoundSource) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.disposed.Load() {
		return errors.New("engine disposed")
	}
	return e.spatial.add(cfg)
}

// RemoveSpatialSource tears down and unregisters a source
func (e *Engine) RemoveSpatialSource(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.disposed.Load() {
		return false
	}
	return e.spatial.remove(id)
}

// SetSourceActive attaches or detaches a source's signal chain
func (e *Engine) SetSourceActive(id string, active bool) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.disposed.Load() {
		return false
	}
	return e.spatial.setActive(id, active)
}

// MoveSpatialSource repositions a source; gains follow on the next tick
func (e *Engine) MoveSpatialSource(id string, pos vmath.Vec3) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.disposed.Load() {
		return false
	}
	return e.spatial.move(id, pos)
}

// UpdatePlayerPosition is the per-tick listener update
// Zone resolution runs first so zone side effects (environment swap,
// indoor preset, radiation) apply before spatial gains recompute
func (e *Engine) UpdatePlayerPosition(pos vmath.Vec3) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.disposed.Load() {
		return
	}

	e.listener = pos
	zone, changed := e.zones.update(pos)
	if changed {
		e.applyZoneLocked(zone)
	}
	e.spatial.update(pos, e.combat, e.occCfg, e.occFn)
}

// applyZoneLocked applies a newly active zone's side effects
// Leaving all zones keeps the current environment playing; only the
// zone-bound effects (indoor preset, radiation) wind down
func (e *Engine) applyZoneLocked(zone *AudioZone) {
	if zone == nil {
		e.bus.setIndoor(false, constant.MusicRampDuration)
		e.stopGeigerLocked()
		return
	}

	e.transitionLocked(zone.Category, zone.EffectiveIntensity(), constant.DefaultTransitionDuration)
	e.bus.setIndoor(zone.Indoor, constant.MusicRampDuration)

	if zone.HasRadiation {
		e.startGeigerLocked()
	} else {
		e.stopGeigerLocked()
	}
	if zone.HighThreat && e.music.intensity() < core.IntensityAlert {
		e.music.setIntensity(core.IntensityAlert)
	}
}

// SetCombatState toggles the combat mix
// Idempotent: repeated calls with the same state trigger no new ramps
func (e *Engine) SetCombatState(inCombat bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.disposed.Load() || e.combat == inCombat {
		return
	}
	e.combat = inCombat

	scale := 1.0
	if inCombat {
		scale = constant.CombatAmbientScale
	}
	e.layers.setCombatScale(scale, constant.CombatRampDuration)
	e.spatial.update(e.listener, e.combat, e.occCfg, e.occFn)
}

// SetMusicIntensity moves the music director to a discrete level
func (e *Engine) SetMusicIntensity(level core.Intensity) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.disposed.Load() {
		return
	}
	e.music.setIntensity(level)
}

// SetMasterVolume sets the final output gain, clamped to [0,1]
func (e *Engine) SetMasterVolume(v float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.disposed.Load() {
		return
	}
	e.master = clamp01(v)
	e.bus.setMasterVolume(e.master)
}

// PlayEmergencyKlaxon sounds the scripted alarm on the one-shot stage
// Zero or negative duration uses the default
func (e *Engine) PlayEmergencyKlaxon(duration time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.disposed.Load() {
		return
	}
	e.bus.oneshot.Add(klaxonStreamer(duration, e.rate))
}

// PlayOneShot routes a finite streamer through the master bus
// The mixer drops it automatically when drained
func (e *Engine) PlayOneShot(s beep.Streamer) {
	if s == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.disposed.Load() {
		return
	}
	e.bus.oneshot.Add(s)
}

// SetOcclusionCallback installs the host's blockage query
// A nil callback means every source renders unoccluded
func (e *Engine) SetOcclusionCallback(fn OcclusionFunc) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.disposed.Load() {
		return
	}
	e.occFn = fn
}

// SetOcclusionConfig overrides occlusion tuning; zero fields keep their
// current values so callers can adjust one knob at a time
func (e *Engine) SetOcclusionConfig(cfg OcclusionConfig) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.disposed.Load() {
		return
	}
	e.occCfg.Enabled = cfg.Enabled
	if cfg.OccludedCutoff > 0 {
		e.occCfg.OccludedCutoff = cfg.OccludedCutoff
	}
	if cfg.OccludedVolume > 0 {
		e.occCfg.OccludedVolume = cfg.OccludedVolume
	}
}

// SetOcclusionEnabled toggles occlusion without touching the tuning
func (e *Engine) SetOcclusionEnabled(enabled bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.disposed.Load() {
		return
	}
	e.occCfg.Enabled = enabled
}

// Dispose tears the engine down completely
// Safe to call more than once; after return no scheduled task runs, no
// generator is attached and the output device is released
func (e *Engine) Dispose() {
	if !e.disposed.CompareAndSwap(false, true) {
		return
	}

	// Stop first, without the lock: in-flight actions acquire it
	e.sched.Stop()

	e.mu.Lock()
	e.layers.stopAll()
	e.music.stop()
	e.spatial.releaseAll()
	e.stopGeigerLocked()
	e.bus.release()
	e.current = core.EnvNone
	e.playing = false
	e.phase = PhaseIdle
	e.mu.Unlock()

	if err := e.sink.Close(); err != nil {
		e.logger.Printf("soundscape: closing audio output: %v", err)
	}
}

// Stats is a point-in-time snapshot for HUD overlays and leak checks
type Stats struct {
	Zones            int
	SpatialSources   int
	ActiveLayers     int
	ActiveGenerators int
	AttachedNodes    int
	PendingTasks     int
	Transitions      uint64
}

// Stats returns current resource counts
func (e *Engine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Stats{
		Zones:            e.zones.count(),
		SpatialSources:   e.spatial.count(),
		ActiveLayers:     e.layers.activeLayers(),
		ActiveGenerators: e.layers.generatorCount(),
		AttachedNodes:    e.bus.activeNodes(),
		PendingTasks:     e.sched.Pending(),
		Transitions:      e.transitions,
	}
}

// ActiveZoneID returns the id of the zone containing the listener,
// empty when outside all zones
func (e *Engine) ActiveZoneID() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if z := e.zones.active(); z != nil {
		return z.ID
	}
	return ""
}

// CurrentEnvironment returns the playing category, EnvNone when stopped
func (e *Engine) CurrentEnvironment() core.Environment {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.current
}

// IsPlaying reports whether an environment soundscape is active
func (e *Engine) IsPlaying() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.playing
}

// InCombat reports the combat mix state
func (e *Engine) InCombat() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.combat
}

// MasterVolume returns the clamped master gain
func (e *Engine) MasterVolume() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.master
}

// MusicIntensity returns the music director's current level
func (e *Engine) MusicIntensity() core.Intensity {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.music.intensity()
}

// Phase returns the transition state machine's current phase
func (e *Engine) Phase() TransitionPhase {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.phase
}

// SourceGain returns a spatial source's current gain target
// The second result is false for unknown or inactive sources
func (e *Engine) SourceGain(id string) (float64, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.spatial.get(id)
	if !ok || !s.attached {
		return 0, false
	}
	return s.gain.Target(), true
}

// OcclusionLevel returns the last computed blockage for a source
func (e *Engine) OcclusionLevel(id string) (float64, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.spatial.get(id)
	if !ok {
		return 0, false
	}
	return s.occlusionLevel, true
}
