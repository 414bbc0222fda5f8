// Package host drives a CHIP-8 machine in real time and connects it to
// the outside world: terminal and GUI frontends, audio and keyboard input.
package host

import (
	"context"
	"fmt"
	"time"

	"github.com/nf/c8/chip8"
)

const (
	// DefaultRate is the number of instructions executed per second.
	DefaultRate = 480

	// TickDivisor is the number of instructions per timer and frame tick.
	// At DefaultRate that gives the 60Hz timer rate.
	TickDivisor = 8
)

// Renderer displays frames.
type Renderer interface {
	Render(chip8.Frame) error
}

// Speaker plays the machine's tone.
type Speaker interface {
	// Tone is called at every timer tick and reports whether the tone
	// should sound until the next tick.
	Tone(on bool)
}

// Input delivers key events.
type Input interface {
	Events() <-chan Event
}

// Event is a key event from an Input.
type Event struct {
	Key  byte // pad key, 0-F
	Quit bool
}

// Silent is a Speaker that makes no sound.
type Silent struct{}

func (Silent) Tone(bool) {}

// Runner executes a machine at a fixed instruction rate.
type Runner struct {
	// Rate is the number of instructions executed per second.
	Rate int

	m   *chip8.Machine
	scr Renderer
	spk Speaker
	in  Input

	reset     chan *chip8.Machine
	resetDone chan bool
	done      chan struct{}

	now   func() time.Time
	sleep func(time.Duration)
}

func NewRunner(m *chip8.Machine, scr Renderer, spk Speaker, in Input) *Runner {
	return &Runner{
		Rate:      DefaultRate,
		m:         m,
		scr:       scr,
		spk:       spk,
		in:        in,
		reset:     make(chan *chip8.Machine),
		resetDone: make(chan bool),
		done:      make(chan struct{}),
		now:       time.Now,
		sleep:     time.Sleep,
	}
}

// Reset replaces the running machine with m at the start of the next
// instruction. It does nothing if Run has returned.
func (r *Runner) Reset(m *chip8.Machine) {
	select {
	case r.reset <- m:
		<-r.resetDone
	case <-r.done:
	}
}

// Run executes the machine until ctx is done, a quit event arrives or the
// machine halts. A halt is reported as a chip8.HaltError.
func (r *Runner) Run(ctx context.Context) error {
	defer close(r.done)

	period := time.Second / time.Duration(r.Rate)
	for tick := 0; ; tick++ {
		start := r.now()

		select {
		case <-ctx.Done():
			return nil
		case e := <-r.in.Events():
			if e.Quit {
				return nil
			}
			r.m.Keys.Press(e.Key)
		case m := <-r.reset:
			r.m = m
			if err := r.scr.Render(m.Display.Frame()); err != nil {
				return fmt.Errorf("render: %v", err)
			}
			r.resetDone <- true
		default:
		}

		if _, err := r.m.Step(); err != nil {
			return err
		}

		if tick%TickDivisor == 0 {
			r.m.Tick()
			r.spk.Tone(r.m.Tone())
			if d := &r.m.Display; d.Dirty() {
				if err := r.scr.Render(d.Frame()); err != nil {
					return fmt.Errorf("render: %v", err)
				}
				d.Consume()
			}
		}

		if rest := period - r.now().Sub(start); rest > 0 {
			r.sleep(rest)
		}
	}
}
