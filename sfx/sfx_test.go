package sfx

import (
	"testing"

	"github.com/gopxl/beep"
)

const testRate = beep.SampleRate(44100)

func drain(t *testing.T, name string, s beep.Streamer) int {
	t.Helper()
	buf := make([][2]float64, 512)
	total := 0
	for i := 0; i < 10000; i++ {
		n, ok := s.Stream(buf)
		total += n
		for j := 0; j < n; j++ {
			for ch := 0; ch < 2; ch++ {
				v := buf[j][ch]
				if v < -1.5 || v > 1.5 {
					t.Fatalf("%s: sample %v out of range", name, v)
				}
			}
		}
		if !ok {
			return total
		}
	}
	t.Fatalf("%s: streamer never drained", name)
	return total
}

func TestRecipesAreFinite(t *testing.T) {
	recipes := map[string]beep.Streamer{
		"click":    UIClick(testRate),
		"footstep": Footstep(testRate),
		"weapon":   WeaponFire(testRate),
		"drip":     Drip(testRate),
		"pickup":   Pickup(testRate),
	}

	for name, s := range recipes {
		total := drain(t, name, s)
		if total == 0 {
			t.Errorf("Expected %s to produce samples", name)
		}
		// Every recipe stays under a second
		if total > int(testRate) {
			t.Errorf("Expected %s under one second, got %d samples", name, total)
		}
	}
}

func TestDrainedRecipeStaysDrained(t *testing.T) {
	s := WeaponFire(testRate)
	drain(t, "weapon", s)

	buf := make([][2]float64, 64)
	if n, ok := s.Stream(buf); ok || n != 0 {
		t.Errorf("Expected drained streamer to stay drained, got n=%d ok=%v", n, ok)
	}
}
