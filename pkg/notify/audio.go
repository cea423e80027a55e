package notify

import (
	"errors"
	"io"
	"math"
	"time"

	"github.com/ebitengine/oto/v3"
)

const (
	sampleRate   = 44100
	notifyFreqLo = 830.0
	notifyFreqHi = 1046.0
	confirmFreq  = 523.0
	segment      = 150 * time.Millisecond
)

var _ Tone = (*Chime)(nil)

// Chime synthesizes the notification sounds on the default audio device.
type Chime struct {
	ctx   *oto.Context
	ready chan struct{}
}

// NewChime opens the audio device. The device initializes asynchronously;
// playing before it is ready returns an error rather than blocking the UI.
func NewChime() (*Chime, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		return nil, err
	}
	return &Chime{ctx: ctx, ready: ready}, nil
}

// Notify plays the rising two-tone update chime.
func (c *Chime) Notify() error {
	return c.play(&toneReader{segments: []toneSegment{
		{freq: notifyFreqLo, dur: segment},
		{freq: notifyFreqHi, dur: segment},
	}})
}

// Confirm plays the single short unlock blip.
func (c *Chime) Confirm() error {
	return c.play(&toneReader{segments: []toneSegment{
		{freq: confirmFreq, dur: segment},
	}})
}

func (c *Chime) play(r *toneReader) error {
	select {
	case <-c.ready:
	default:
		return errors.New("notify: audio device not ready")
	}
	p := c.ctx.NewPlayer(r)
	p.Play()
	go func() {
		// The player drains asynchronously; close it once the tone is over.
		time.Sleep(r.total() + 100*time.Millisecond)
		p.Close()
	}()
	return nil
}

type toneSegment struct {
	freq float64
	dur  time.Duration
}

// toneReader streams the segments as 16-bit mono PCM with a linear fade-out
// per segment so the transitions do not click.
type toneReader struct {
	segments []toneSegment
	pos      int64
}

func (t *toneReader) total() time.Duration {
	var d time.Duration
	for _, s := range t.segments {
		d += s.dur
	}
	return d
}

func (t *toneReader) sampleCount() int64 {
	var n int64
	for _, s := range t.segments {
		n += int64(float64(sampleRate) * s.dur.Seconds())
	}
	return n
}

func (t *toneReader) sampleAt(i int64) float64 {
	for _, s := range t.segments {
		n := int64(float64(sampleRate) * s.dur.Seconds())
		if i < n {
			phase := 2 * math.Pi * s.freq * float64(i) / sampleRate
			env := 1 - float64(i)/float64(n)
			return 0.3 * env * math.Sin(phase)
		}
		i -= n
	}
	return 0
}

func (t *toneReader) Read(buf []byte) (int, error) {
	total := t.sampleCount()
	if t.pos >= total {
		return 0, io.EOF
	}
	n := 0
	for n+2 <= len(buf) && t.pos < total {
		v := int16(t.sampleAt(t.pos) * math.MaxInt16)
		buf[n] = byte(v)
		buf[n+1] = byte(v >> 8)
		n += 2
		t.pos++
	}
	return n, nil
}
