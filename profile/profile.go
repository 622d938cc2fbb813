package profile

import (
	"time"

	"github.com/veilcraft/soundscape/core"
)

// EnvironmentProfile is the immutable audio recipe for one category
// The layer manager reads it table-driven; no per-category branching
// outside the recipe construction site
type EnvironmentProfile struct {
	Category core.Environment

	// Tonal foundation
	BasePitch float64 // Hz, drone fundamental
	Scale     []int   // Semitone intervals for melodic material

	// Music
	Tempo float64 // BPM at ambient intensity

	// Master bus targets
	ReverbWet     float64
	ReverbDecay   time.Duration
	LowpassCutoff float64 // Hz

	// Volume targets
	AmbientVolume float64 // Base layer gain at intensity 1.0

	// Detail/event scheduling
	DetailInterval    time.Duration
	DetailJitter      time.Duration
	DetailProbability float64
	EventInterval     time.Duration
	EventProbability  float64
}

var profiles = map[core.Environment]*EnvironmentProfile{
	core.EnvStation: {
		Category:          core.EnvStation,
		BasePitch:         55.0, // A1
		Scale:             []int{0, 3, 5, 7, 10},
		Tempo:             84,
		ReverbWet:         0.3,
		ReverbDecay:       1800 * time.Millisecond,
		LowpassCutoff:     3800,
		AmbientVolume:     0.5,
		DetailInterval:    9 * time.Second,
		DetailJitter:      6 * time.Second,
		DetailProbability: 0.7,
		EventInterval:     25 * time.Second,
		EventProbability:  0.35,
	},
	core.EnvSurface: {
		Category:          core.EnvSurface,
		BasePitch:         49.0, // G1
		Scale:             []int{0, 2, 5, 7, 9},
		Tempo:             72,
		ReverbWet:         0.12,
		ReverbDecay:       900 * time.Millisecond,
		LowpassCutoff:     9000,
		AmbientVolume:     0.45,
		DetailInterval:    12 * time.Second,
		DetailJitter:      8 * time.Second,
		DetailProbability: 0.6,
		EventInterval:     30 * time.Second,
		EventProbability:  0.3,
	},
	core.EnvHive: {
		Category:          core.EnvHive,
		BasePitch:         41.2, // E1
		Scale:             []int{0, 1, 5, 6, 10},
		Tempo:             66,
		ReverbWet:         0.5,
		ReverbDecay:       2600 * time.Millisecond,
		LowpassCutoff:     2400,
		AmbientVolume:     0.55,
		DetailInterval:    6 * time.Second,
		DetailJitter:      5 * time.Second,
		DetailProbability: 0.8,
		EventInterval:     18 * time.Second,
		EventProbability:  0.45,
	},
	core.EnvBase: {
		Category:          core.EnvBase,
		BasePitch:         61.7, // B1
		Scale:             []int{0, 2, 3, 7, 8},
		Tempo:             96,
		ReverbWet:         0.38,
		ReverbDecay:       1400 * time.Millisecond,
		LowpassCutoff:     3200,
		AmbientVolume:     0.5,
		DetailInterval:    8 * time.Second,
		DetailJitter:      5 * time.Second,
		DetailProbability: 0.75,
		EventInterval:     22 * time.Second,
		EventProbability:  0.4,
	},
	core.EnvExtraction: {
		Category:          core.EnvExtraction,
		BasePitch:         65.4, // C2
		Scale:             []int{0, 2, 4, 7, 9},
		Tempo:             118,
		ReverbWet:         0.2,
		ReverbDecay:       1100 * time.Millisecond,
		LowpassCutoff:     6500,
		AmbientVolume:     0.55,
		DetailInterval:    5 * time.Second,
		DetailJitter:      3 * time.Second,
		DetailProbability: 0.85,
		EventInterval:     14 * time.Second,
		EventProbability:  0.5,
	},
}

// ByCategory returns the profile for a category
func ByCategory(cat core.Environment) (*EnvironmentProfile, bool) {
	p, ok := profiles[cat]
	return p, ok
}
