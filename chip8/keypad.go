package chip8

import "time"

// KeyDecay is how long a key reads as held after its last press event.
const KeyDecay = 100 * time.Millisecond

// Keypad tracks the 16-key hex pad. Input sources only report discrete
// key presses, so a key reads as down for KeyDecay after each press.
type Keypad struct {
	last [16]time.Time
	now  func() time.Time
}

func (k *Keypad) init(now func() time.Time) {
	k.now = now
	t := now().Add(-5 * time.Second)
	for i := range k.last {
		k.last[i] = t
	}
}

// SetClock replaces the keypad's time source and releases all keys.
func (k *Keypad) SetClock(now func() time.Time) { k.init(now) }

// Press records a press event for key, which must be in the range 0-F.
func (k *Keypad) Press(key byte) {
	k.last[key&0xf] = k.now()
}

// Down reports whether key is held.
func (k *Keypad) Down(key byte) bool {
	return k.now().Sub(k.last[key&0xf]) <= KeyDecay
}

// FirstDown returns the lowest held key, if any.
func (k *Keypad) FirstDown() (key byte, ok bool) {
	now := k.now()
	for i, t := range k.last {
		if now.Sub(t) <= KeyDecay {
			return byte(i), true
		}
	}
	return 0, false
}
