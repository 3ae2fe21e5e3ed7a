package chip8

import "fmt"

// Instruction identifies one of the operations of the CHIP-8 instruction set.
type Instruction byte

const (
	Unknown Instruction = iota
	ClearScreen
	Return
	Jump
	Call
	SkipIfEqual
	SkipIfNotEqual
	SkipIfVxEqualVy
	SetVx
	AddVx
	SetVxVy
	SetVxOrVy
	SetVxAndVy
	SetVxXorVy
	AddVxVy
	SubVxVy
	ShiftRight
	SubVyVx
	ShiftLeft
	SkipIfVxNotVy
	SetI
	JumpV0
	Random
	Draw
	SkipIfPressed
	SkipIfNotPressed
	SetVxToDelayTimer
	WaitForKeyPress
	SetDelayTimer
	SetSoundTimer
	AddVxToI
	SetIToSprite
	StoreBCD
	StoreRegisters
	LoadRegisters
)

var instructionNames = [...]string{
	Unknown:           "Unknown",
	ClearScreen:       "ClearScreen",
	Return:            "Return",
	Jump:              "Jump",
	Call:              "Call",
	SkipIfEqual:       "SkipIfEqual",
	SkipIfNotEqual:    "SkipIfNotEqual",
	SkipIfVxEqualVy:   "SkipIfVxEqualVy",
	SetVx:             "SetVx",
	AddVx:             "AddVx",
	SetVxVy:           "SetVxVy",
	SetVxOrVy:         "SetVxOrVy",
	SetVxAndVy:        "SetVxAndVy",
	SetVxXorVy:        "SetVxXorVy",
	AddVxVy:           "AddVxVy",
	SubVxVy:           "SubVxVy",
	ShiftRight:        "ShiftRight",
	SubVyVx:           "SubVyVx",
	ShiftLeft:         "ShiftLeft",
	SkipIfVxNotVy:     "SkipIfVxNotVy",
	SetI:              "SetI",
	JumpV0:            "JumpV0",
	Random:            "Random",
	Draw:              "Draw",
	SkipIfPressed:     "SkipIfPressed",
	SkipIfNotPressed:  "SkipIfNotPressed",
	SetVxToDelayTimer: "SetVxToDelayTimer",
	WaitForKeyPress:   "WaitForKeyPress",
	SetDelayTimer:     "SetDelayTimer",
	SetSoundTimer:     "SetSoundTimer",
	AddVxToI:          "AddVxToI",
	SetIToSprite:      "SetIToSprite",
	StoreBCD:          "StoreBCD",
	StoreRegisters:    "StoreRegisters",
	LoadRegisters:     "LoadRegisters",
}

func (i Instruction) String() string {
	if int(i) < len(instructionNames) {
		return instructionNames[i]
	}
	return fmt.Sprintf("Instruction(%d)", byte(i))
}

// Decode returns the instruction encoded by op, or Unknown if op is not part
// of the instruction set. The top nibble selects the family; families 0x0,
// 0x8, 0xE and 0xF are further selected by their low nibble or low byte.
func Decode(op uint16) Instruction {
	switch op & 0xf000 {
	case 0x0000:
		switch op {
		case 0x00e0:
			return ClearScreen
		case 0x00ee:
			return Return
		}
	case 0x1000:
		return Jump
	case 0x2000:
		return Call
	case 0x3000:
		return SkipIfEqual
	case 0x4000:
		return SkipIfNotEqual
	case 0x5000:
		return SkipIfVxEqualVy
	case 0x6000:
		return SetVx
	case 0x7000:
		return AddVx
	case 0x8000:
		switch op & 0x000f {
		case 0x0:
			return SetVxVy
		case 0x1:
			return SetVxOrVy
		case 0x2:
			return SetVxAndVy
		case 0x3:
			return SetVxXorVy
		case 0x4:
			return AddVxVy
		case 0x5:
			return SubVxVy
		case 0x6:
			return ShiftRight
		case 0x7:
			return SubVyVx
		case 0xe:
			return ShiftLeft
		}
	case 0x9000:
		return SkipIfVxNotVy
	case 0xa000:
		return SetI
	case 0xb000:
		return JumpV0
	case 0xc000:
		return Random
	case 0xd000:
		return Draw
	case 0xe000:
		switch op & 0x00ff {
		case 0x9e:
			return SkipIfPressed
		case 0xa1:
			return SkipIfNotPressed
		}
	case 0xf000:
		switch op & 0x00ff {
		case 0x07:
			return SetVxToDelayTimer
		case 0x0a:
			return WaitForKeyPress
		case 0x15:
			return SetDelayTimer
		case 0x18:
			return SetSoundTimer
		case 0x1e:
			return AddVxToI
		case 0x29:
			return SetIToSprite
		case 0x33:
			return StoreBCD
		case 0x55:
			return StoreRegisters
		case 0x65:
			return LoadRegisters
		}
	}
	return Unknown
}

// Operand accessors for an opcode word.
func opX(op uint16) byte     { return byte(op >> 8 & 0xf) }
func opY(op uint16) byte     { return byte(op >> 4 & 0xf) }
func opN(op uint16) byte     { return byte(op & 0xf) }
func opNN(op uint16) byte    { return byte(op) }
func opNNN(op uint16) uint16 { return op & 0x0fff }
