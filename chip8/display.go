package chip8

const (
	// Width and Height are the display dimensions in pixels.
	Width  = 64
	Height = 32
)

// Frame is a snapshot of the display, indexed [row][column].
type Frame [Height][Width]bool

// Display is the monochrome frame buffer.
type Display struct {
	px    Frame
	dirty bool
}

// Frame returns a copy of the current display contents.
func (d *Display) Frame() Frame { return d.px }

// Pixel reports whether the pixel at column x, row y is lit.
// Coordinates wrap.
func (d *Display) Pixel(x, y int) bool {
	return d.px[mod(y, Height)][mod(x, Width)]
}

// Dirty reports whether any pixel has changed since the last Consume.
func (d *Display) Dirty() bool { return d.dirty }

// Consume marks the current contents as rendered.
func (d *Display) Consume() { d.dirty = false }

// Clear turns all pixels off.
func (d *Display) Clear() {
	d.px = Frame{}
	d.dirty = true
}

// Draw XORs the sprite rows onto the display with its top-left corner at
// column x, row y, wrapping around both edges. Each row is 8 pixels wide,
// most significant bit first. It reports whether any lit pixel was
// turned off.
func (d *Display) Draw(x, y byte, sprite []byte) (collision bool) {
	for j, row := range sprite {
		py := int(y+byte(j)) % Height
		for i := 0; i < 8; i++ {
			if row>>(7-i)&1 == 0 {
				continue
			}
			px := int(x+byte(i)) % Width
			if d.px[py][px] {
				collision = true
			}
			d.px[py][px] = !d.px[py][px]
		}
	}
	d.dirty = true
	return collision
}

func mod(a, b int) int {
	if a %= b; a < 0 {
		a += b
	}
	return a
}
