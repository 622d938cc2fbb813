package synth

import (
	"math"
	"testing"
	"time"
)

const testRate = 44100

// TestWhiteNoiseRangeAndLength verifies sample bounds and buffer sizing
func TestWhiteNoiseRangeAndLength(t *testing.T) {
	buf := WhiteNoise(testRate, 250*time.Millisecond)

	expected := testRate / 4
	if len(buf) != expected {
		t.Errorf("Expected %d samples, got %d", expected, len(buf))
	}

	for i, v := range buf {
		if v < -1 || v > 1 {
			t.Fatalf("Sample %d out of range: %v", i, v)
		}
	}
}

// TestBrownNoiseIsLowpassed verifies brown noise has less high-frequency
// energy than white noise (successive-difference energy comparison)
func TestBrownNoiseIsLowpassed(t *testing.T) {
	white := WhiteNoise(testRate, time.Second)
	brown := BrownNoise(testRate, time.Second)

	if diffEnergy(brown) >= diffEnergy(white) {
		t.Error("Expected brown noise to have less high-frequency energy than white")
	}
}

// TestPinkNoiseEnergyBetweenWhiteAndBrown verifies the 1/f spectrum sits
// between white and brown in successive-difference energy
func TestPinkNoiseEnergyBetweenWhiteAndBrown(t *testing.T) {
	white := normalizeRMS(WhiteNoise(testRate, time.Second))
	pink := normalizeRMS(PinkNoise(testRate, time.Second))
	brown := normalizeRMS(BrownNoise(testRate, time.Second))

	w, p, b := diffEnergy(white), diffEnergy(pink), diffEnergy(brown)
	if !(b < p && p < w) {
		t.Errorf("Expected brown < pink < white high-frequency energy, got %v %v %v", b, p, w)
	}
}

// TestPinkNoiseNonSilent verifies the filter bank produces output
func TestPinkNoiseNonSilent(t *testing.T) {
	buf := PinkNoise(testRate, 100*time.Millisecond)
	if rms(buf) < 1e-4 {
		t.Errorf("Expected audible pink noise, got RMS %v", rms(buf))
	}
}

// TestReverbImpulseDecay verifies the squared-linear decay envelope
func TestReverbImpulseDecay(t *testing.T) {
	imp := ReverbImpulse(testRate, 500*time.Millisecond)

	if len(imp) != testRate/2 {
		t.Errorf("Expected %d samples, got %d", testRate/2, len(imp))
	}

	// Envelope bound: |sample| <= (1 - i/n)^2
	n := float64(len(imp))
	for i, s := range imp {
		bound := 1.0 - float64(i)/n
		bound *= bound
		if math.Abs(s[0]) > bound+1e-9 || math.Abs(s[1]) > bound+1e-9 {
			t.Fatalf("Sample %d exceeds decay bound %v: %v", i, bound, s)
		}
	}

	// Early energy must dominate late energy
	early := stereoEnergy(imp[:len(imp)/4])
	late := stereoEnergy(imp[3*len(imp)/4:])
	if early <= late {
		t.Errorf("Expected decaying impulse, early %v late %v", early, late)
	}
}

// TestReverbImpulseZeroDecay verifies the minimum-length guard
func TestReverbImpulseZeroDecay(t *testing.T) {
	imp := ReverbImpulse(testRate, 0)
	if len(imp) < 1 {
		t.Error("Expected at least one sample for zero decay")
	}
}

func diffEnergy(buf []float64) float64 {
	sum := 0.0
	for i := 1; i < len(buf); i++ {
		d := buf[i] - buf[i-1]
		sum += d * d
	}
	return sum / float64(len(buf)-1)
}

func rms(buf []float64) float64 {
	sum := 0.0
	for _, v := range buf {
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(buf)))
}

func normalizeRMS(buf []float64) []float64 {
	r := rms(buf)
	if r == 0 {
		return buf
	}
	out := make([]float64, len(buf))
	for i, v := range buf {
		out[i] = v / r
	}
	return out
}

func stereoEnergy(buf [][2]float64) float64 {
	sum := 0.0
	for _, s := range buf {
		sum += s[0]*s[0] + s[1]*s[1]
	}
	return sum
}
