package host

import (
	"image"
	"image/color"
	"image/draw"
	"log"

	xdraw "golang.org/x/image/draw"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/nf/c8/chip8"
)

// guiScale is the initial window size in screen pixels per display pixel.
const guiScale = 10

var palette = color.Palette{
	color.RGBA{0x10, 0x10, 0x10, 0xff},
	color.RGBA{0xe0, 0xe0, 0xe0, 0xff},
}

// GUI renders the display in a window and reads pad keys from it.
type GUI struct {
	w      screen.Window
	events chan Event

	frame *image.Paletted
	buf   screen.Buffer
	sz    size.Event
}

type (
	frameEvent struct{ f chip8.Frame }
	stopEvent  struct{}
)

// RunGUI opens a window and calls run with a GUI attached to it. It
// returns once run has returned, and must be called from the main
// goroutine.
func RunGUI(title string, run func(*GUI) error) (err error) {
	driver.Main(func(s screen.Screen) {
		w, werr := s.NewWindow(&screen.NewWindowOptions{
			Title:  title,
			Width:  chip8.Width * guiScale,
			Height: chip8.Height * guiScale,
		})
		if werr != nil {
			err = werr
			return
		}
		defer w.Release()

		g := &GUI{
			w:      w,
			events: make(chan Event, 16),
			frame:  image.NewPaletted(image.Rect(0, 0, chip8.Width, chip8.Height), palette),
		}
		defer g.release()

		done := make(chan error, 1)
		go func() {
			done <- run(g)
			w.Send(stopEvent{})
		}()

		for {
			switch e := w.NextEvent().(type) {
			case stopEvent:
				err = <-done
				return

			case lifecycle.Event:
				if e.To == lifecycle.StageDead {
					g.send(Event{Quit: true})
					err = <-done
					return
				}

			case key.Event:
				if e.Direction == key.DirRelease {
					break
				}
				if e.Code == key.CodeEscape ||
					e.Code == key.CodeC && e.Modifiers&key.ModControl != 0 {
					g.send(Event{Quit: true})
					break
				}
				if k, ok := PadKey(e.Rune); ok {
					g.send(Event{Key: k})
				}

			case size.Event:
				g.sz = e
				if err := g.paint(s); err != nil {
					log.Printf("gui: %v", err)
				}

			case paint.Event:
				if err := g.paint(s); err != nil {
					log.Printf("gui: %v", err)
				}

			case frameEvent:
				g.setFrame(e.f)
				if err := g.paint(s); err != nil {
					log.Printf("gui: %v", err)
				}

			case error:
				log.Print(e)
			}
		}
	})
	return err
}

func (g *GUI) Events() <-chan Event { return g.events }

// Render queues f for display. It is safe to call from any goroutine.
func (g *GUI) Render(f chip8.Frame) error {
	g.w.Send(frameEvent{f})
	return nil
}

func (g *GUI) send(e Event) {
	select {
	case g.events <- e:
	default:
		// runner is behind; drop the event
	}
}

func (g *GUI) setFrame(f chip8.Frame) {
	for y, row := range f {
		for x, px := range row {
			var c uint8
			if px {
				c = 1
			}
			g.frame.SetColorIndex(x, y, c)
		}
	}
}

func (g *GUI) paint(s screen.Screen) error {
	sz := g.sz.Size()
	if sz.X == 0 || sz.Y == 0 {
		return nil
	}
	if g.buf == nil || g.buf.Size() != sz {
		g.release()
		buf, err := s.NewBuffer(sz)
		if err != nil {
			return err
		}
		g.buf = buf
	}
	dst := g.buf.RGBA()
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), g.frame, g.frame.Bounds(), draw.Src, nil)
	g.w.Upload(image.Point{}, g.buf, g.buf.Bounds())
	g.w.Publish()
	return nil
}

func (g *GUI) release() {
	if g.buf != nil {
		g.buf.Release()
		g.buf = nil
	}
}
