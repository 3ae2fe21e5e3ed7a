package chip8

import "math/rand/v2"

// RandSource supplies the random bytes consumed by the Random instruction.
type RandSource interface {
	Byte() byte
}

// RandFunc adapts an ordinary function to a RandSource.
type RandFunc func() byte

func (f RandFunc) Byte() byte { return f() }

// NewRand returns a deterministic RandSource seeded with seed.
func NewRand(seed uint64) RandSource {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	return RandFunc(func() byte { return byte(r.Uint32()) })
}

// globalRand draws from the automatically seeded top-level generator.
var globalRand = RandFunc(func() byte { return byte(rand.Uint32()) })
