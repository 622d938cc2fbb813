package engine

import (
	"sync/atomic"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/pkg/errors"

	"github.com/veilcraft/soundscape/constant"
)

// Sink is the audio output boundary
// The engine degrades to a silent no-op when the sink fails, audio is
// never fatal to the host
type Sink interface {
	Start(rate beep.SampleRate, root beep.Streamer) error
	Close() error
}

// SpeakerSink renders through the beep speaker
type SpeakerSink struct {
	started atomic.Bool
}

// NewSpeakerSink creates an unstarted speaker sink
func NewSpeakerSink() *SpeakerSink {
	return &SpeakerSink{}
}

// Start initializes the speaker and begins pulling from root
func (s *SpeakerSink) Start(rate beep.SampleRate, root beep.Streamer) error {
	if s.started.Load() {
		return errors.New("speaker sink already started")
	}
	if err := speaker.Init(rate, rate.N(constant.SpeakerBufferDuration)); err != nil {
		return errors.Wrap(err, "speaker init")
	}
	speaker.Play(root)
	s.started.Store(true)
	return nil
}

// Close stops playback and releases the device
func (s *SpeakerSink) Close() error {
	if !s.started.CompareAndSwap(true, false) {
		return nil
	}
	speaker.Clear()
	speaker.Close()
	return nil
}

// NullSink discards output; used by tests and headless hosts
// The signal graph still exists, nothing pulls from it
type NullSink struct{}

func (NullSink) Start(beep.SampleRate, beep.Streamer) error { return nil }
func (NullSink) Close() error                               { return nil }
