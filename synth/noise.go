package synth

import (
	"math/rand"
	"time"
)

// WhiteNoise returns duration worth of i.i.d. uniform samples in [-1,1]
func WhiteNoise(sampleRate int, duration time.Duration) []float64 {
	n := samplesFor(sampleRate, duration)
	buf := make([]float64, n)
	for i := range buf {
		buf[i] = rand.Float64()*2 - 1
	}
	return buf
}

// BrownNoise returns integrated white noise
// Leaky integrator y[n] = (y[n-1] + 0.02*x[n]) / 1.02, gain-compensated
// by 3.5x for the energy lost to the integrator's lowpass slope
func BrownNoise(sampleRate int, duration time.Duration) []float64 {
	n := samplesFor(sampleRate, duration)
	buf := make([]float64, n)
	last := 0.0
	for i := range buf {
		white := rand.Float64()*2 - 1
		last = (last + 0.02*white) / 1.02
		buf[i] = last * 3.5
	}
	return buf
}

// Paul Kellet pink noise filter bank coefficients
var pinkFeedback = [6]float64{0.99886, 0.99332, 0.969, 0.8665, 0.55, -0.7616}
var pinkInput = [6]float64{0.0555179, 0.0750759, 0.153852, 0.3104856, 0.5329522, -0.016898}

// PinkNoise returns 1/f noise via a seven-stage IIR filter bank
// summed against white noise and normalized by 0.11
func PinkNoise(sampleRate int, duration time.Duration) []float64 {
	n := samplesFor(sampleRate, duration)
	buf := make([]float64, n)
	var b [7]float64
	for i := range buf {
		white := rand.Float64()*2 - 1
		sum := 0.0
		for s := 0; s < 6; s++ {
			b[s] = pinkFeedback[s]*b[s] + white*pinkInput[s]
			sum += b[s]
		}
		sum += b[6] + white*0.5362
		b[6] = white * 0.115926
		buf[i] = sum * 0.11
	}
	return buf
}

// ReverbImpulse synthesizes a stereo impulse response: independent white
// noise per channel shaped by a squared linear decay, length from the
// decay time so reverb character follows the environment profile
func ReverbImpulse(sampleRate int, decay time.Duration) [][2]float64 {
	n := samplesFor(sampleRate, decay)
	if n < 1 {
		n = 1
	}
	imp := make([][2]float64, n)
	for i := range imp {
		shape := 1.0 - float64(i)/float64(n)
		shape *= shape
		imp[i][0] = (rand.Float64()*2 - 1) * shape
		imp[i][1] = (rand.Float64()*2 - 1) * shape
	}
	return imp
}

func samplesFor(sampleRate int, duration time.Duration) int {
	n := int(duration.Seconds() * float64(sampleRate))
	if n < 0 {
		n = 0
	}
	return n
}
