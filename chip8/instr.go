package chip8

import "fmt"

// Instr represents a CHIP-8 instruction word.
type Instr uint16

// Class returns the high nibble, which selects the instruction class.
func (i Instr) Class() byte { return byte(i >> 12) }

// X returns the first register operand.
func (i Instr) X() byte { return byte(i>>8) & 0xf }

// Y returns the second register operand.
func (i Instr) Y() byte { return byte(i>>4) & 0xf }

// N returns the low nibble.
func (i Instr) N() byte { return byte(i) & 0xf }

// NN returns the low byte.
func (i Instr) NN() byte { return byte(i) }

// NNN returns the 12-bit address.
func (i Instr) NNN() uint16 { return uint16(i) & 0xfff }

func (i Instr) String() string { return fmt.Sprintf("%.4x", uint16(i)) }

func short(hi, lo byte) uint16 {
	return uint16(hi)<<8 + uint16(lo)
}
