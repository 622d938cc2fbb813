package profile

import (
	"github.com/veilcraft/soundscape/core"
)

// IntensityTarget scales the music layer for one intensity level
// Volume, tempo and brightness move together so the shift reads as one
// gesture rather than three separate ramps
type IntensityTarget struct {
	Volume     float64
	TempoMult  float64
	CutoffMult float64
}

var intensityTargets = map[core.Intensity]IntensityTarget{
	core.IntensityAmbient: {Volume: 0.35, TempoMult: 1.0, CutoffMult: 0.5},
	core.IntensityAlert:   {Volume: 0.5, TempoMult: 1.1, CutoffMult: 0.7},
	core.IntensityCombat:  {Volume: 0.7, TempoMult: 1.25, CutoffMult: 1.0},
	core.IntensityBoss:    {Volume: 0.85, TempoMult: 1.4, CutoffMult: 1.2},
}

// ForIntensity returns the mixing target for a level
// Unknown levels fall back to ambient
func ForIntensity(level core.Intensity) IntensityTarget {
	if t, ok := intensityTargets[level]; ok {
		return t
	}
	return intensityTargets[core.IntensityAmbient]
}
