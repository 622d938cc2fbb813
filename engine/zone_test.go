package engine

import (
	"testing"

	"github.com/veilcraft/soundscape/core"
	"github.com/veilcraft/soundscape/vmath"
)

func TestZoneTrackerValidation(t *testing.T) {
	zt := newZoneTracker()

	if err := zt.add(AudioZone{ID: "bad", Category: core.EnvHive, Radius: 0}); err == nil {
		t.Error("Expected error for zero radius")
	}
	if err := zt.add(AudioZone{ID: "bad", Category: core.EnvNone, Radius: 5}); err == nil {
		t.Error("Expected error for invalid category")
	}

	if err := zt.add(AudioZone{ID: "z1", Category: core.EnvHive, Radius: 5}); err != nil {
		t.Fatalf("Expected valid zone to register: %v", err)
	}
	if err := zt.add(AudioZone{ID: "z1", Category: core.EnvBase, Radius: 5}); err == nil {
		t.Error("Expected error for duplicate id")
	}
	if zt.count() != 1 {
		t.Errorf("Expected 1 zone, got %d", zt.count())
	}
}

func TestZoneTrackerContainment(t *testing.T) {
	zt := newZoneTracker()
	if err := zt.add(AudioZone{ID: "z1", Category: core.EnvHive, Position: vmath.Vec3{}, Radius: 10}); err != nil {
		t.Fatalf("add: %v", err)
	}

	zone, changed := zt.update(vmath.Vec3{X: 5})
	if zone == nil || zone.ID != "z1" {
		t.Fatalf("Expected z1 active at distance 5, got %v", zone)
	}
	if !changed {
		t.Error("Expected change on first containment")
	}

	// Same zone again is not a change
	if _, changed = zt.update(vmath.Vec3{X: 6}); changed {
		t.Error("Expected no change while inside the same zone")
	}

	// On the boundary counts as outside
	if zone, _ = zt.update(vmath.Vec3{X: 10}); zone != nil {
		t.Errorf("Expected nil at exact radius, got %v", zone.ID)
	}

	zone, changed = zt.update(vmath.Vec3{X: 50})
	if zone != nil {
		t.Errorf("Expected nil outside all zones, got %v", zone.ID)
	}
	if changed {
		t.Error("Expected no change, already outside")
	}
}

func TestZoneTrackerNearestCenterWins(t *testing.T) {
	zt := newZoneTracker()
	if err := zt.add(AudioZone{ID: "outer", Category: core.EnvStation, Position: vmath.Vec3{}, Radius: 20}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := zt.add(AudioZone{ID: "inner", Category: core.EnvHive, Position: vmath.Vec3{X: 8}, Radius: 20}); err != nil {
		t.Fatalf("add: %v", err)
	}

	if zone, _ := zt.update(vmath.Vec3{X: 7}); zone == nil || zone.ID != "inner" {
		t.Errorf("Expected nearest center to win, got %v", zone)
	}
	if zone, _ := zt.update(vmath.Vec3{X: 1}); zone == nil || zone.ID != "outer" {
		t.Errorf("Expected outer zone nearer, got %v", zone)
	}

	// Equidistant point breaks the tie toward the first registered
	if zone, _ := zt.update(vmath.Vec3{X: 4}); zone == nil || zone.ID != "outer" {
		t.Errorf("Expected first-registered zone on tie, got %v", zone)
	}
}

func TestZoneTrackerRemove(t *testing.T) {
	zt := newZoneTracker()
	if err := zt.add(AudioZone{ID: "z1", Category: core.EnvHive, Radius: 10}); err != nil {
		t.Fatalf("add: %v", err)
	}
	zt.update(vmath.Vec3{X: 1})

	if !zt.remove("z1") {
		t.Error("Expected remove to report success")
	}
	if zt.active() != nil {
		t.Error("Expected no active zone after removing it")
	}
	if zt.remove("z1") {
		t.Error("Expected second remove to report failure")
	}
}

func TestZoneEffectiveIntensity(t *testing.T) {
	z := AudioZone{Intensity: 0}
	if got := z.EffectiveIntensity(); got != 1.0 {
		t.Errorf("Expected default intensity 1.0, got %v", got)
	}
	z.Intensity = 0.4
	if got := z.EffectiveIntensity(); got != 0.4 {
		t.Errorf("Expected explicit intensity 0.4, got %v", got)
	}
}
