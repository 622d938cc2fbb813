package constant

import "time"

// Audio Hardware Settings
const (
	SampleRate = 44100
	Channels   = 2
	BitDepth   = 16
)

// Output Timing
const (
	// SpeakerBufferDuration determines output latency
	// 50ms keeps scheduled detail sounds feeling immediate
	SpeakerBufferDuration = 50 * time.Millisecond
)

// Parameter Smoothing
const (
	// GainRampDuration is the default smoothing for per-tick gain retargets
	// Short enough to track movement, long enough to avoid zipper noise
	GainRampDuration = 60 * time.Millisecond

	// CutoffRampDuration smooths occlusion filter retargets
	CutoffRampDuration = 90 * time.Millisecond
)

// Transition Defaults
const (
	DefaultTransitionDuration = 2 * time.Second
	DefaultStopFade           = 1 * time.Second
	CombatRampDuration        = 800 * time.Millisecond
	MusicRampDuration         = 1200 * time.Millisecond
)

// Combat Mixing
const (
	// CombatAmbientScale is how far base layers recede during combat
	CombatAmbientScale = 0.3

	// CombatSpatialScale ducks occludable spatial sources during combat
	CombatSpatialScale = 0.5
)

// Occlusion Defaults
const (
	OcclusionMaxCutoff = 8000.0 // Hz, fully clear
	OcclusionMinCutoff = 400.0  // Hz, fully blocked
	OccludedVolume     = 0.3
)

// Master Bus Presets
const (
	OpenLowpassCutoff    = 16000.0 // Hz, effectively transparent
	MuffledLowpassCutoff = 2200.0  // Hz, indoor preset
	OpenReverbWet        = 0.18
	MuffledReverbWet     = 0.42
)

// Geiger Effect
const (
	GeigerInterval    = 70 * time.Millisecond
	GeigerJitter      = 60 * time.Millisecond
	GeigerProbability = 0.45
	GeigerClickLength = 4 * time.Millisecond
)

// Emergency Klaxon
const (
	KlaxonDefaultDuration = 3 * time.Second
	KlaxonToneDuration    = 350 * time.Millisecond
	KlaxonLowFreq         = 440.0
	KlaxonHighFreq        = 587.33 // D5, a harsh fourth above
	KlaxonVolume          = 0.55
)
