package host

import (
	"github.com/gdamore/tcell/v2"

	"github.com/nf/c8/chip8"
)

var (
	pixelOn  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	pixelOff = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorBlack)
)

// Terminal renders the display to a terminal, one cell per pixel, and
// reads pad keys from the keyboard. It is also a Speaker that rings the
// terminal bell.
type Terminal struct {
	s      tcell.Screen
	events chan Event
	done   chan struct{}
}

// NewTerminal takes over the terminal. Close must be called to restore it.
func NewTerminal() (*Terminal, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return newTerminal(s)
}

func newTerminal(s tcell.Screen) (*Terminal, error) {
	if err := s.Init(); err != nil {
		return nil, err
	}
	s.HideCursor()
	s.Clear()
	t := &Terminal{
		s:      s,
		events: make(chan Event, 16),
		done:   make(chan struct{}),
	}
	go t.readInput()
	return t, nil
}

func (t *Terminal) Events() <-chan Event { return t.events }

func (t *Terminal) readInput() {
	for {
		ev := t.s.PollEvent()
		if ev == nil {
			return // screen finalized
		}
		var e Event
		switch ev := ev.(type) {
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyCtrlC, tcell.KeyEscape:
				e.Quit = true
			case tcell.KeyRune:
				k, ok := PadKey(ev.Rune())
				if !ok {
					continue
				}
				e.Key = k
			default:
				continue
			}
		case *tcell.EventResize:
			t.s.Sync()
			continue
		default:
			continue
		}
		select {
		case t.events <- e:
		case <-t.done:
			return
		}
	}
}

func (t *Terminal) Render(f chip8.Frame) error {
	for y, row := range f {
		for x, px := range row {
			style := pixelOff
			if px {
				style = pixelOn
			}
			t.s.SetContent(x, y, '█', nil, style)
		}
	}
	t.s.Show()
	return nil
}

func (t *Terminal) Tone(on bool) {
	if on {
		t.s.Beep()
	}
}

// Close restores the terminal.
func (t *Terminal) Close() {
	close(t.done)
	t.s.Fini()
}
