package chip8

import (
	"fmt"
	"strings"
)

// StackSize is the number of return-address slots in the call stack.
const StackSize = 16

// Stack implements the CHIP-8 call stack.
//
// The stack pointer addresses the slot holding the most recent return
// address rather than the next free slot. Call only advances the pointer
// when the current slot is occupied (non-zero), and Return reads the current
// slot before stepping back, never moving below zero. Programs that depend on
// nested calls observe these semantics.
type Stack struct {
	Slots [StackSize]uint16
	Ptr   byte
}

// Call records ret as a return address.
func (s *Stack) Call(ret uint16) {
	if s.Slots[s.Ptr] != 0 {
		if int(s.Ptr) == StackSize-1 {
			panic(StackOverflow)
		}
		s.Ptr++
	}
	s.Slots[s.Ptr] = ret
}

// Return yields the return address at the stack pointer.
func (s *Stack) Return() uint16 {
	v := s.Slots[s.Ptr]
	if s.Ptr > 0 {
		s.Ptr--
	}
	return v
}

// Reset empties the stack.
func (s *Stack) Reset() { *s = Stack{} }

func (s Stack) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for i, v := range s.Slots[:s.Ptr+1] {
		b.WriteByte(' ')
		if i == int(s.Ptr) {
			b.WriteByte('*')
		}
		fmt.Fprintf(&b, "%.3x", v)
	}
	b.WriteString(" )")
	return b.String()
}
