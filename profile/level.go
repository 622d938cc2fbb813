package profile

import (
	"github.com/veilcraft/soundscape/core"
)

// levelCategories maps host level identifiers to audio categories
// Levels sharing a category share one recipe
var levelCategories = map[string]core.Environment{
	"anchor_station":   core.EnvStation,
	"orbital_dock":     core.EnvStation,
	"surface_crags":    core.EnvSurface,
	"ash_flats":        core.EnvSurface,
	"hive_depths":      core.EnvHive,
	"brood_gallery":    core.EnvHive,
	"enemy_base":       core.EnvBase,
	"relay_compound":   core.EnvBase,
	"extraction_point": core.EnvExtraction,
}

// LevelCategory resolves a level id to its environment category
func LevelCategory(levelID string) (core.Environment, bool) {
	cat, ok := levelCategories[levelID]
	return cat, ok
}
