package synth

import (
	"sync"

	"github.com/gopxl/beep"
)

// Mixer sums attached streamers and keeps streaming silence when empty
// Unlike beep.Mixer it supports removal by handle, which is how layers
// and spatial sources detach their generators during teardown
type Mixer struct {
	mu        sync.Mutex
	streamers []beep.Streamer
	scratch   [][2]float64
}

// NewMixer creates an empty mixer
func NewMixer() *Mixer {
	return &Mixer{}
}

// Add attaches s; the streamer handle doubles as the removal key
func (m *Mixer) Add(s beep.Streamer) {
	if s == nil {
		return
	}
	m.mu.Lock()
	m.streamers = append(m.streamers, s)
	m.mu.Unlock()
}

// Remove detaches s, reports whether it was attached
func (m *Mixer) Remove(s beep.Streamer) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, cur := range m.streamers {
		if cur == s {
			m.streamers = append(m.streamers[:i], m.streamers[i+1:]...)
			return true
		}
	}
	return false
}

// Clear detaches every streamer
func (m *Mixer) Clear() {
	m.mu.Lock()
	m.streamers = m.streamers[:0]
	m.mu.Unlock()
}

// Len returns the number of attached streamers
func (m *Mixer) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.streamers)
}

func (m *Mixer) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		samples[i] = [2]float64{}
	}

	m.mu.Lock()
	if cap(m.scratch) < len(samples) {
		m.scratch = make([][2]float64, len(samples))
	}
	tmp := m.scratch[:len(samples)]

	kept := m.streamers[:0]
	for _, s := range m.streamers {
		sn, sok := s.Stream(tmp)
		for i := 0; i < sn; i++ {
			samples[i][0] += tmp[i][0]
			samples[i][1] += tmp[i][1]
		}
		// Drained one-shots drop out of the mix on their own
		if sok {
			kept = append(kept, s)
		}
	}
	m.streamers = kept
	m.mu.Unlock()

	return len(samples), true
}

func (m *Mixer) Err() error { return nil }
