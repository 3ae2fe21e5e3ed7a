package chip8

import (
	"strings"
	"testing"
)

func TestDecode(t *testing.T) {
	for op, want := range map[uint16]Instruction{
		0x00e0: ClearScreen,
		0x00ee: Return,
		0x0000: Unknown,
		0x0123: Unknown,
		0x1fff: Jump,
		0x2abc: Call,
		0x3123: SkipIfEqual,
		0x4123: SkipIfNotEqual,
		0x5120: SkipIfVxEqualVy,
		0x6123: SetVx,
		0x7123: AddVx,
		0x8120: SetVxVy,
		0x8121: SetVxOrVy,
		0x8122: SetVxAndVy,
		0x8123: SetVxXorVy,
		0x8124: AddVxVy,
		0x8125: SubVxVy,
		0x8126: ShiftRight,
		0x8127: SubVyVx,
		0x812e: ShiftLeft,
		0x8128: Unknown,
		0x812f: Unknown,
		0x9120: SkipIfVxNotVy,
		0xa123: SetI,
		0xb123: JumpV0,
		0xc123: Random,
		0xd123: Draw,
		0xe19e: SkipIfPressed,
		0xe1a1: SkipIfNotPressed,
		0xe1a2: Unknown,
		0xf107: SetVxToDelayTimer,
		0xf10a: WaitForKeyPress,
		0xf115: SetDelayTimer,
		0xf118: SetSoundTimer,
		0xf11e: AddVxToI,
		0xf129: SetIToSprite,
		0xf133: StoreBCD,
		0xf155: StoreRegisters,
		0xf165: LoadRegisters,
		0xf166: Unknown,
	} {
		if got := Decode(op); got != want {
			t.Errorf("Decode(%.4x) returned %v, want %v", op, got, want)
		}
	}
}

// Check that every instruction has a name.
func TestInstructionString(t *testing.T) {
	seen := map[string]bool{}
	for i := Unknown; i <= LoadRegisters; i++ {
		s := i.String()
		if s == "" || strings.HasPrefix(s, "Instruction(") {
			t.Errorf("instruction %d has no name", byte(i))
		}
		if seen[s] {
			t.Errorf("duplicate instruction name %q", s)
		}
		seen[s] = true
	}
	if got, want := Instruction(200).String(), "Instruction(200)"; got != want {
		t.Errorf("String() returned %q, want %q", got, want)
	}
}

func TestOperands(t *testing.T) {
	const op = 0xd5a7
	if g := opX(op); g != 0x5 {
		t.Errorf("x is %x, want 5", g)
	}
	if g := opY(op); g != 0xa {
		t.Errorf("y is %x, want a", g)
	}
	if g := opN(op); g != 0x7 {
		t.Errorf("n is %x, want 7", g)
	}
	if g := opNN(op); g != 0xa7 {
		t.Errorf("nn is %.2x, want a7", g)
	}
	if g := opNNN(op); g != 0x5a7 {
		t.Errorf("nnn is %.3x, want 5a7", g)
	}
}
