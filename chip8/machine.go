// Package chip8 provides an implementation of a CHIP-8 virtual machine,
// called Machine, that can be used to execute CHIP-8 programs.
package chip8

import (
	"math/rand"
	"time"
)

const (
	// MemSize is the size of the addressable memory.
	MemSize = 0x1000

	// ProgramStart is the address at which programs are loaded and
	// execution begins.
	ProgramStart = 0x200

	// MaxProgramSize is the largest program that fits in memory.
	MaxProgramSize = MemSize - ProgramStart

	// StackDepth is the number of return addresses the call stack holds.
	StackDepth = 16

	// Flag is the index of the carry/flag register, VF.
	Flag = 0xf
)

// glyphSize is the number of bytes in each font glyph.
const glyphSize = 5

// font holds the hexadecimal digit glyphs 0-F, 4 pixels wide and
// 5 rows tall, stored in the high nibble of each byte.
var font = [16 * glyphSize]byte{
	0xf0, 0x90, 0x90, 0x90, 0xf0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xf0, 0x10, 0xf0, 0x80, 0xf0, // 2
	0xf0, 0x10, 0xf0, 0x10, 0xf0, // 3
	0x90, 0x90, 0xf0, 0x10, 0x10, // 4
	0xf0, 0x80, 0xf0, 0x10, 0xf0, // 5
	0xf0, 0x80, 0xf0, 0x90, 0xf0, // 6
	0xf0, 0x10, 0x20, 0x40, 0x40, // 7
	0xf0, 0x90, 0xf0, 0x90, 0xf0, // 8
	0xf0, 0x90, 0xf0, 0x10, 0xf0, // 9
	0xf0, 0x90, 0xf0, 0x90, 0x90, // A
	0xe0, 0x90, 0xe0, 0x90, 0xe0, // B
	0xf0, 0x80, 0x80, 0x80, 0xf0, // C
	0xe0, 0x90, 0x90, 0x90, 0xe0, // D
	0xf0, 0x80, 0xf0, 0x80, 0xf0, // E
	0xf0, 0x80, 0xf0, 0x80, 0x80, // F
}

// Machine is an implementation of a CHIP-8 CPU together with its
// memory, display and keypad.
type Machine struct {
	Mem   [MemSize]byte
	V     [16]byte
	I     uint16
	PC    uint16
	Stack [StackDepth]uint16
	SP    uint16
	DT    byte // delay timer
	ST    byte // sound timer

	Display Display
	Keys    Keypad

	// Rand returns the random bytes used by CXNN.
	Rand func() byte

	// Wait-for-key latch, armed by FX0A.
	awaiting bool
	awaitReg byte
}

// NewMachine returns a CHIP-8 machine with the font loaded at address 0
// and program loaded at ProgramStart. Programs larger than MaxProgramSize
// are truncated.
func NewMachine(program []byte) *Machine {
	m := &Machine{
		PC:   ProgramStart,
		Rand: randByte,
	}
	copy(m.Mem[:], font[:])
	copy(m.Mem[ProgramStart:], program)
	m.Keys.init(time.Now)
	return m
}

func randByte() byte { return byte(rand.Uint32()) }

// Tick decrements the delay and sound timers if they are nonzero.
// It should be called at 60Hz.
func (m *Machine) Tick() {
	if m.DT > 0 {
		m.DT--
	}
	if m.ST > 0 {
		m.ST--
	}
}

// Tone reports whether the sound timer is running.
func (m *Machine) Tone() bool { return m.ST > 0 }

// Awaiting reports whether the machine is waiting for a key press,
// and if so, the register that will receive it.
func (m *Machine) Awaiting() (reg byte, ok bool) {
	return m.awaitReg, m.awaiting
}
