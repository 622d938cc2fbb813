package engine

import (
	"github.com/pkg/errors"

	"github.com/veilcraft/soundscape/core"
	"github.com/veilcraft/soundscape/vmath"
)

// AudioZone is a world-space region with its own soundscape
// Zones may overlap; the tracker resolves ties by nearest center
type AudioZone struct {
	ID           string
	Category     core.Environment
	Position     vmath.Vec3
	Radius       float64
	Indoor       bool
	Intensity    float64 // 0 means default 1.0
	HasRadiation bool
	HighThreat   bool
}

// EffectiveIntensity returns the zone's intensity with the default applied
func (z *AudioZone) EffectiveIntensity() float64 {
	if z.Intensity <= 0 {
		return 1.0
	}
	return z.Intensity
}

// zoneTracker resolves the listener's active zone each tick
// Registration order is kept so equidistant zones break ties toward
// the first registered
type zoneTracker struct {
	zones    []*AudioZone
	activeID string
}

func newZoneTracker() *zoneTracker {
	return &zoneTracker{}
}

func (zt *zoneTracker) add(z AudioZone) error {
	if z.Radius <= 0 {
		return errors.Errorf("zone %q: radius must be positive, got %v", z.ID, z.Radius)
	}
	if !z.Category.Valid() {
		return errors.Errorf("zone %q: invalid category %v", z.ID, z.Category)
	}
	for _, cur := range zt.zones {
		if cur.ID == z.ID {
			return errors.Errorf("zone %q already registered", z.ID)
		}
	}
	clone := z
	zt.zones = append(zt.zones, &clone)
	return nil
}

func (zt *zoneTracker) remove(id string) bool {
	for i, z := range zt.zones {
		if z.ID == id {
			zt.zones = append(zt.zones[:i], zt.zones[i+1:]...)
			if zt.activeID == id {
				zt.activeID = ""
			}
			return true
		}
	}
	return false
}

func (zt *zoneTracker) byID(id string) *AudioZone {
	for _, z := range zt.zones {
		if z.ID == id {
			return z
		}
	}
	return nil
}

// update recomputes the active zone from the listener position
// Returns the new active zone (nil when outside all zones) and whether
// it changed this tick
func (zt *zoneTracker) update(listener vmath.Vec3) (*AudioZone, bool) {
	var nearest *AudioZone
	nearestDistSq := 0.0

	for _, z := range zt.zones {
		distSq := vmath.V3DistSq(listener, z.Position)
		if distSq >= z.Radius*z.Radius {
			continue
		}
		// Strict comparison keeps the first-registered zone on ties
		if nearest == nil || distSq < nearestDistSq {
			nearest = z
			nearestDistSq = distSq
		}
	}

	newID := ""
	if nearest != nil {
		newID = nearest.ID
	}
	changed := newID != zt.activeID
	zt.activeID = newID
	return nearest, changed
}

// active returns the current active zone, nil when outside all zones
func (zt *zoneTracker) active() *AudioZone {
	if zt.activeID == "" {
		return nil
	}
	return zt.byID(zt.activeID)
}

func (zt *zoneTracker) count() int {
	return len(zt.zones)
}
