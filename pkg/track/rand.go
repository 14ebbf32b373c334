package track

import "math/rand/v2"

// DefaultSeed is the seed used when no random source is supplied.
const DefaultSeed = uint64(42)

// Drawer produces uniform values in [0, 1). *rand.Rand satisfies it.
type Drawer interface {
	Float64() float64
}

// NewRand returns a PCG-backed Drawer for seed. Equal seeds give equal streams.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

// uniform maps one draw onto [lo, hi].
func uniform(d Drawer, lo, hi float64) float64 {
	return lo + d.Float64()*(hi-lo)
}
