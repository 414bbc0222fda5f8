package chip8

import "fmt"

// Step executes the instruction at m.PC, or, if the machine is waiting for
// a key press, polls the keypad instead. It reports whether the display
// changed, and only returns a non-nil error if execution must halt, in
// which case the error is a HaltError and the machine state is left as it
// was before the instruction.
func (m *Machine) Step() (frameReady bool, err error) {
	if m.awaiting {
		if k, ok := m.Keys.FirstDown(); ok {
			m.V[m.awaitReg] = k
			m.awaiting = false
		}
		return false, nil
	}

	var (
		pc = m.PC
		in = Instr(short(m.Mem[pc&0xfff], m.Mem[(pc+1)&0xfff]))
	)
	defer func() {
		if e := recover(); e != nil {
			if code, ok := e.(HaltCode); ok {
				err = HaltError{
					HaltCode: code,
					Instr:    in,
					Addr:     pc,
				}
			} else {
				panic(e)
			}
		}
	}()

	return m.exec(in), nil
}

func (m *Machine) exec(in Instr) (frameReady bool) {
	var (
		x, y = in.X(), in.Y()
		vx   = &m.V[x]
		vy   = &m.V[y]
		vf   = &m.V[Flag]
		next = m.PC + 2
	)

	switch in.Class() {
	case 0x0:
		switch in {
		case 0x00e0:
			m.Display.Clear()
			frameReady = true
		case 0x00ee:
			next = m.pop()
		default:
			// Machine code routine; ignored.
		}
	case 0x1:
		next = in.NNN()
	case 0x2:
		m.push(next)
		next = in.NNN()
	case 0x3:
		if *vx == in.NN() {
			next += 2
		}
	case 0x4:
		if *vx != in.NN() {
			next += 2
		}
	case 0x5:
		if in.N() != 0 {
			panic(UnknownInstr)
		}
		if *vx == *vy {
			next += 2
		}
	case 0x6:
		*vx = in.NN()
	case 0x7:
		*vx += in.NN()
	case 0x8:
		switch in.N() {
		case 0x0:
			*vx = *vy
		case 0x1:
			*vx |= *vy
		case 0x2:
			*vx &= *vy
		case 0x3:
			*vx ^= *vy
		case 0x4:
			sum := uint16(*vx) + uint16(*vy)
			*vf = flag(sum > 0xff)
			*vx = byte(sum)
		case 0x5:
			*vf = flag(*vx > *vy)
			*vx -= *vy
		case 0x6:
			*vf = *vx & 1
			*vx >>= 1
		case 0x7:
			*vf = flag(*vy > *vx)
			*vx = *vy - *vx
		case 0xe:
			*vf = *vx >> 7
			*vx <<= 1
		default:
			panic(UnknownInstr)
		}
	case 0x9:
		if in.N() != 0 {
			panic(UnknownInstr)
		}
		if *vx != *vy {
			next += 2
		}
	case 0xa:
		m.I = in.NNN()
	case 0xb:
		next = uint16(m.V[0]) + in.NNN()
	case 0xc:
		*vx = m.Rand() & in.NN()
	case 0xd:
		*vf = 0
		var (
			px, py = *vx, *vy
			sprite = make([]byte, in.N())
		)
		for i := range sprite {
			sprite[i] = m.Mem[(m.I+uint16(i))&0xfff]
		}
		if m.Display.Draw(px, py, sprite) {
			*vf = 1
		}
		frameReady = true
	case 0xe:
		switch in.NN() {
		case 0x9e:
			if m.Keys.Down(*vx) {
				next += 2
			}
		case 0xa1:
			if !m.Keys.Down(*vx) {
				next += 2
			}
		default:
			panic(UnknownInstr)
		}
	case 0xf:
		switch in.NN() {
		case 0x07:
			*vx = m.DT
		case 0x0a:
			m.awaiting = true
			m.awaitReg = x
		case 0x15:
			m.DT = *vx
		case 0x18:
			m.ST = *vx
		case 0x1e:
			m.I += uint16(*vx)
			*vf = flag(m.I > 0x0f00)
		case 0x29:
			m.I = uint16(*vx) * glyphSize
		case 0x33:
			v := *vx
			m.store(0, v/100)
			m.store(1, v%100/10)
			m.store(2, v%10)
		case 0x55:
			for i := byte(0); i <= x; i++ {
				m.store(uint16(i), m.V[i])
			}
		case 0x65:
			for i := byte(0); i <= x; i++ {
				m.V[i] = m.Mem[(m.I+uint16(i))&0xfff]
			}
		default:
			panic(UnknownInstr)
		}
	}

	m.PC = next
	return frameReady
}

// store writes v to memory at I+offs.
func (m *Machine) store(offs uint16, v byte) {
	m.Mem[(m.I+offs)&0xfff] = v
}

func (m *Machine) push(addr uint16) {
	if m.SP >= StackDepth {
		panic(StackOverflow)
	}
	m.Stack[m.SP] = addr
	m.SP++
}

func (m *Machine) pop() uint16 {
	if m.SP == 0 {
		panic(StackUnderflow)
	}
	m.SP--
	return m.Stack[m.SP]
}

func flag(b bool) byte {
	if b {
		return 1
	}
	return 0
}

// HaltError is returned by Step if execution cannot continue.
type HaltError struct {
	HaltCode
	Instr Instr
	Addr  uint16
}

func (e HaltError) Error() string {
	return fmt.Sprintf("%s %s at %.4x", e.HaltCode, e.Instr, e.Addr)
}

// HaltCode signifies the type of condition that halted execution.
type HaltCode byte

const (
	UnknownInstr HaltCode = iota + 1
	StackOverflow
	StackUnderflow
)

func (c HaltCode) String() string {
	switch c {
	case UnknownInstr:
		return "unknown instruction"
	case StackOverflow:
		return "stack overflow"
	case StackUnderflow:
		return "stack underflow"
	default:
		return fmt.Sprintf("HaltCode(%d)", c)
	}
}
