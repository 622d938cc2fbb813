package engine

import (
	"time"

	"github.com/gopxl/beep"

	"github.com/veilcraft/soundscape/constant"
	"github.com/veilcraft/soundscape/synth"
)

// klaxonStreamer builds the scripted two-tone alarm
// Alternating low/high tones fill the requested duration; the sequence
// bypasses the layer system and renders on the one-shot stage
func klaxonStreamer(duration time.Duration, rate beep.SampleRate) beep.Streamer {
	if duration <= 0 {
		duration = constant.KlaxonDefaultDuration
	}

	var seq []beep.Streamer
	low := true
	for elapsed := time.Duration(0); elapsed < duration; elapsed += constant.KlaxonToneDuration {
		freq := constant.KlaxonHighFreq
		if low {
			freq = constant.KlaxonLowFreq
		}
		low = !low

		seq = append(seq, synth.NewEnvelope(
			synth.NewOscillator(freq, constant.KlaxonToneDuration, synth.WaveSquare, rate),
			constant.KlaxonToneDuration,
			8*time.Millisecond,
			30*time.Millisecond,
			rate))
	}

	return synth.NewGain(beep.Seq(seq...), constant.KlaxonVolume, rate)
}
