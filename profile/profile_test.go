package profile

import (
	"testing"

	"github.com/veilcraft/soundscape/core"
)

// TestEveryCategoryHasProfile verifies the table covers the closed set
func TestEveryCategoryHasProfile(t *testing.T) {
	for _, cat := range core.Environments {
		p, ok := ByCategory(cat)
		if !ok {
			t.Errorf("Expected profile for %v", cat)
			continue
		}
		if p.Category != cat {
			t.Errorf("Profile for %v carries category %v", cat, p.Category)
		}
		if p.BasePitch <= 0 {
			t.Errorf("Profile %v has non-positive base pitch", cat)
		}
		if p.Tempo <= 0 {
			t.Errorf("Profile %v has non-positive tempo", cat)
		}
		if p.ReverbDecay <= 0 {
			t.Errorf("Profile %v has non-positive reverb decay", cat)
		}
		if len(p.Scale) == 0 {
			t.Errorf("Profile %v has empty scale", cat)
		}
		if p.AmbientVolume <= 0 || p.AmbientVolume > 1 {
			t.Errorf("Profile %v ambient volume out of range: %v", cat, p.AmbientVolume)
		}
	}
}

// TestUnknownCategoryNotFound verifies lookup misses report cleanly
func TestUnknownCategoryNotFound(t *testing.T) {
	if _, ok := ByCategory(core.EnvNone); ok {
		t.Error("Expected no profile for EnvNone")
	}
}

// TestLevelCategoryResolution verifies known ids resolve and unknown ids miss
func TestLevelCategoryResolution(t *testing.T) {
	cat, ok := LevelCategory("anchor_station")
	if !ok || cat != core.EnvStation {
		t.Errorf("Expected anchor_station -> station, got %v %v", cat, ok)
	}

	cat, ok = LevelCategory("hive_depths")
	if !ok || cat != core.EnvHive {
		t.Errorf("Expected hive_depths -> hive, got %v %v", cat, ok)
	}

	if _, ok := LevelCategory("no_such_level"); ok {
		t.Error("Expected unknown level id to miss")
	}
}

// TestEveryLevelResolvesToProfiledCategory verifies the two tables agree
func TestEveryLevelResolvesToProfiledCategory(t *testing.T) {
	for id, cat := range levelCategories {
		if _, ok := ByCategory(cat); !ok {
			t.Errorf("Level %q maps to category %v with no profile", id, cat)
		}
	}
}

// TestIntensityTargetsEscalate verifies volume and tempo rise with level
func TestIntensityTargetsEscalate(t *testing.T) {
	levels := []core.Intensity{
		core.IntensityAmbient,
		core.IntensityAlert,
		core.IntensityCombat,
		core.IntensityBoss,
	}
	for i := 1; i < len(levels); i++ {
		prev := ForIntensity(levels[i-1])
		cur := ForIntensity(levels[i])
		if cur.Volume <= prev.Volume {
			t.Errorf("Expected volume to rise %v -> %v", levels[i-1], levels[i])
		}
		if cur.TempoMult <= prev.TempoMult {
			t.Errorf("Expected tempo to rise %v -> %v", levels[i-1], levels[i])
		}
		if cur.CutoffMult <= prev.CutoffMult {
			t.Errorf("Expected cutoff to rise %v -> %v", levels[i-1], levels[i])
		}
	}
}

// TestUnknownIntensityFallsBack verifies the ambient fallback
func TestUnknownIntensityFallsBack(t *testing.T) {
	got := ForIntensity(core.Intensity(99))
	want := ForIntensity(core.IntensityAmbient)
	if got != want {
		t.Errorf("Expected ambient fallback, got %+v", got)
	}
}
