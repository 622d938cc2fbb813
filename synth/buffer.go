package synth

import (
	"github.com/gopxl/beep"
)

// loopSource streams a mono buffer forever, duplicated to both channels
type loopSource struct {
	buf []float64
	pos int
}

// NewLoopSource creates an endless streamer over buf
// An empty buffer streams silence
func NewLoopSource(buf []float64) beep.Streamer {
	return &loopSource{buf: buf}
}

func (l *loopSource) Stream(samples [][2]float64) (n int, ok bool) {
	if len(l.buf) == 0 {
		for i := range samples {
			samples[i] = [2]float64{}
		}
		return len(samples), true
	}
	for i := range samples {
		v := l.buf[l.pos]
		samples[i][0] = v
		samples[i][1] = v
		l.pos++
		if l.pos >= len(l.buf) {
			l.pos = 0
		}
	}
	return len(samples), true
}

func (l *loopSource) Err() error { return nil }

// bufferSource streams a mono buffer once, then drains
type bufferSource struct {
	buf []float64
	pos int
}

// NewBufferSource creates a one-shot streamer over buf
func NewBufferSource(buf []float64) beep.Streamer {
	return &bufferSource{buf: buf}
}

func (b *bufferSource) Stream(samples [][2]float64) (n int, ok bool) {
	if b.pos >= len(b.buf) {
		return 0, false
	}
	for i := range samples {
		if b.pos >= len(b.buf) {
			return i, true
		}
		v := b.buf[b.pos]
		samples[i][0] = v
		samples[i][1] = v
		b.pos++
	}
	return len(samples), true
}

func (b *bufferSource) Err() error { return nil }
