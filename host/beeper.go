package host

import (
	"encoding/binary"
	"math"
	"sync/atomic"

	"github.com/ebitengine/oto/v3"
)

const (
	sampleRate = 44100
	toneFreq   = 440
	toneLevel  = 0.2
)

// Beeper is a Speaker that plays a square wave through the system's
// audio device.
type Beeper struct {
	ctx    *oto.Context
	player *oto.Player
	wave   squareWave
}

// NewBeeper opens the audio device and starts a silent stream.
func NewBeeper() (*Beeper, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		return nil, err
	}
	<-ready

	b := &Beeper{ctx: ctx}
	b.wave.period = sampleRate / toneFreq
	b.player = ctx.NewPlayer(&b.wave)
	b.player.Play()
	return b, nil
}

func (b *Beeper) Tone(on bool) { b.wave.on.Store(on) }

func (b *Beeper) Close() error {
	b.wave.on.Store(false)
	return b.player.Close()
}

// squareWave is an endless stream of float32 samples that is silent
// unless on is set. Read is called from oto's goroutine.
type squareWave struct {
	on     atomic.Bool
	period int
	n      int
}

func (w *squareWave) Read(p []byte) (int, error) {
	on := w.on.Load()
	p = p[:len(p)/4*4]
	for i := 0; i < len(p); i += 4 {
		var v float32
		if on {
			v = toneLevel
			if w.n < w.period/2 {
				v = -toneLevel
			}
		}
		binary.LittleEndian.PutUint32(p[i:], math.Float32bits(v))
		w.n = (w.n + 1) % w.period
	}
	return len(p), nil
}
