// Package chip8 provides an implementation of a CHIP-8 virtual machine,
// called Machine, that can be used to execute CHIP-8 ROMs.
//
// The Machine performs no pacing of its own: the caller runs some number of
// cycles, ticks the timers, and polls the display and sound state.
package chip8

import (
	"errors"
	"fmt"
)

const (
	// MemSize is the size of the machine's memory in bytes.
	MemSize = 4096

	// ProgramStart is the address at which ROMs are loaded and executed.
	ProgramStart = 0x200

	// MaxROMSize is the largest ROM that fits in memory.
	MaxROMSize = MemSize - ProgramStart

	// NumRegisters is the number of general registers, V0 through VF.
	NumRegisters = 16

	// Flag is the index of VF, which receives carry, borrow, shift and
	// collision results.
	Flag = 0xf
)

// ErrROMTooLarge is returned by LoadROM if the ROM does not fit in memory.
var ErrROMTooLarge = errors.New("rom too large")

// Machine is an implementation of a CHIP-8 CPU and its peripherals.
type Machine struct {
	Mem [MemSize]byte
	V   [NumRegisters]byte
	I   uint16
	PC  uint16

	Stack   Stack
	Timers  Timers
	Keypad  Keypad
	Display Display

	rand RandSource
	last Instruction
}

// NewMachine returns a reset Machine with the font installed.
// If rnd is nil the Random instruction draws from math/rand/v2.
func NewMachine(rnd RandSource) *Machine {
	if rnd == nil {
		rnd = globalRand
	}
	m := &Machine{rand: rnd}
	m.Reset()
	return m
}

// Reset returns the machine to its power-on state: memory, registers, stack,
// timers, keypad and framebuffer are zeroed, the font is reinstalled and PC
// points at ProgramStart.
func (m *Machine) Reset() {
	m.Mem = [MemSize]byte{}
	copy(m.Mem[:], Font[:])
	m.V = [NumRegisters]byte{}
	m.I = 0
	m.PC = ProgramStart
	m.Stack.Reset()
	m.Timers.Reset()
	m.Keypad.Reset()
	m.Display.Clear()
	m.last = Unknown
}

// LoadROM resets the machine and copies rom into memory at ProgramStart.
func (m *Machine) LoadROM(rom []byte) error {
	if len(rom) > MaxROMSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrROMTooLarge, len(rom), MaxROMSize)
	}
	m.Reset()
	copy(m.Mem[ProgramStart:], rom)
	return nil
}

// Last returns the most recently executed instruction.
func (m *Machine) Last() Instruction { return m.last }

func (m *Machine) fetch(addr uint16) uint16 {
	m.checkRange(addr, 2)
	return short(m.Mem[addr], m.Mem[addr+1])
}

// pcState is the program counter disposition chosen by an instruction.
type pcState struct {
	kind pcKind
	addr uint16 // jump target
}

type pcKind byte

const (
	pcNext pcKind = iota
	pcSkip
	pcJump
)

var (
	next = pcState{kind: pcNext}
	skip = pcState{kind: pcSkip}
)

func jump(addr uint16) pcState { return pcState{kind: pcJump, addr: addr} }

func skipIf(cond bool) pcState {
	if cond {
		return skip
	}
	return next
}

// Cycle fetches, decodes and executes the instruction at PC, then advances,
// skips or jumps. It returns a HaltError if the instruction cannot be
// executed, in which case the machine is left as it was before the cycle.
func (m *Machine) Cycle() (err error) {
	var (
		addr = m.PC
		op   uint16
	)
	defer func() {
		if e := recover(); e != nil {
			if code, ok := e.(HaltCode); ok {
				err = HaltError{HaltCode: code, Op: op, Addr: addr}
			} else {
				panic(e)
			}
		}
	}()

	op = m.fetch(addr)
	ins := Decode(op)
	if ins == Unknown {
		panic(UnknownOpcode)
	}
	st := m.exec(ins, op)
	m.last = ins

	switch st.kind {
	case pcNext:
		m.PC += 2
	case pcSkip:
		m.PC += 4
	case pcJump:
		m.PC = st.addr
	}
	return nil
}

func (m *Machine) exec(ins Instruction, op uint16) pcState {
	var (
		x, y = opX(op), opY(op)
		v    = &m.V
	)
	switch ins {
	case ClearScreen:
		m.Display.Clear()
	case Return:
		return jump(m.Stack.Return())
	case Jump:
		return jump(opNNN(op))
	case Call:
		m.Stack.Call(m.PC + 2)
		return jump(opNNN(op))
	case SkipIfEqual:
		return skipIf(v[x] == opNN(op))
	case SkipIfNotEqual:
		return skipIf(v[x] != opNN(op))
	case SkipIfVxEqualVy:
		return skipIf(v[x] == v[y])
	case SkipIfVxNotVy:
		return skipIf(v[x] != v[y])
	case SetVx:
		v[x] = opNN(op)
	case AddVx:
		v[x] += opNN(op)
	case SetVxVy:
		v[x] = v[y]
	case SetVxOrVy:
		v[x] |= v[y]
	case SetVxAndVy:
		v[x] &= v[y]
	case SetVxXorVy:
		v[x] ^= v[y]
	case AddVxVy:
		sum := uint16(v[x]) + uint16(v[y])
		v[Flag] = flag(sum > 0xff)
		v[x] = byte(sum)
	case SubVxVy:
		a, b := v[x], v[y]
		v[Flag] = flag(a > b)
		v[x] = a - b
	case ShiftRight:
		a := v[x]
		v[Flag] = a & 1
		v[x] = a >> 1
	case SubVyVx:
		a, b := v[x], v[y]
		v[Flag] = flag(b > a)
		v[x] = b - a
	case ShiftLeft:
		a := v[x]
		v[Flag] = flag(a >= 0x80)
		v[x] = a << 1
	case SetI:
		m.I = opNNN(op)
	case JumpV0:
		return jump(opNNN(op) + uint16(v[0]))
	case Random:
		v[x] = m.rand.Byte() & opNN(op)
	case Draw:
		m.draw(v[x], v[y], opN(op))
	case SkipIfPressed:
		return skipIf(m.keyPressed(v[x]))
	case SkipIfNotPressed:
		return skipIf(!m.keyPressed(v[x]))
	case SetVxToDelayTimer:
		v[x] = m.Timers.Delay
	case WaitForKeyPress:
		pressed := false
		for k := range m.Keypad {
			if m.Keypad[k] {
				v[x] = byte(k)
				pressed = true
			}
		}
		if !pressed {
			return jump(m.PC)
		}
	case SetDelayTimer:
		m.Timers.Delay = v[x]
	case SetSoundTimer:
		m.Timers.Sound = v[x]
	case AddVxToI:
		m.I += uint16(v[x])
		v[Flag] = flag(m.I > 0xfff)
	case SetIToSprite:
		m.I = uint16(v[x]) * GlyphSize
	case StoreBCD:
		m.checkRange(m.I, 3)
		a := v[x]
		m.Mem[m.I] = a / 100
		m.Mem[m.I+1] = a / 10 % 10
		m.Mem[m.I+2] = a % 10
	case StoreRegisters:
		n := uint16(x) + 1
		m.checkRange(m.I, n)
		copy(m.Mem[m.I:m.I+n], v[:n])
		m.I += n
	case LoadRegisters:
		n := uint16(x) + 1
		m.checkRange(m.I, n)
		copy(v[:n], m.Mem[m.I:m.I+n])
		m.I += n
	default:
		panic(fmt.Errorf("internal error: %v not implemented", ins))
	}
	return next
}

// draw XORs the n-byte sprite at I onto the display at (x, y), wrapping
// around the screen edges, and sets VF if any lit pixel was turned off.
func (m *Machine) draw(x, y, n byte) {
	m.checkRange(m.I, uint16(n))
	m.V[Flag] = 0
	for row := 0; row < int(n); row++ {
		bits := m.Mem[m.I+uint16(row)]
		for col := 0; col < 8; col++ {
			if bits&(0x80>>col) == 0 {
				continue
			}
			px := (int(x) + col) % Width
			py := (int(y) + row) % Height
			if m.Display.DrawPixel(px, py) {
				m.V[Flag] = 1
			}
		}
	}
}

func (m *Machine) keyPressed(k byte) bool {
	if int(k) >= NumKeys {
		panic(InvalidKey)
	}
	return m.Keypad.Pressed(k)
}

// checkRange halts the machine unless [addr, addr+n) lies within memory.
func (m *Machine) checkRange(addr, n uint16) {
	if int(addr)+int(n) > MemSize {
		panic(MemoryOutOfRange)
	}
}

func flag(b bool) byte {
	if b {
		return 1
	}
	return 0
}

func short(hi, lo byte) uint16 {
	return uint16(hi)<<8 + uint16(lo)
}

// HaltError is returned by Cycle if the machine cannot execute the
// instruction at Addr.
type HaltError struct {
	HaltCode
	Op   uint16
	Addr uint16
}

func (e HaltError) Error() string {
	return fmt.Sprintf("%s executing %.4x at %.3x", e.HaltCode, e.Op, e.Addr)
}

// HaltCode signifies the type of condition that halted execution.
type HaltCode byte

const (
	UnknownOpcode    HaltCode = 0x01
	MemoryOutOfRange HaltCode = 0x02
	StackOverflow    HaltCode = 0x03
	InvalidKey       HaltCode = 0x04
)

func (c HaltCode) String() string {
	if s, ok := map[HaltCode]string{
		UnknownOpcode:    "unknown opcode",
		MemoryOutOfRange: "memory access out of range",
		StackOverflow:    "stack overflow",
		InvalidKey:       "invalid key",
	}[c]; ok {
		return s
	}
	return fmt.Sprintf("unknown (%.2x)", byte(c))
}
