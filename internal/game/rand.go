package game

import (
	"math/rand"
	"sync/atomic"
	"time"
)

// Rand is the random source behind every intentional imperfection of the AI.
// *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// NewRand returns a seeded source. Seed 0 seeds from the clock.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return rand.New(rand.NewSource(seed)) //nolint: gosec // game randomness, not crypto
}

// RandFactory hands out one source per caller. With a non-zero base the n-th
// source (counting from 0) is seeded with base+n, so a run replays exactly
// while no two sources share a stream. Base 0 seeds every source from the
// clock.
func RandFactory(base int64) func() Rand {
	var next atomic.Int64

	return func() Rand {
		if base == 0 {
			return NewRand(0)
		}

		seed := base + next.Add(1) - 1

		return rand.New(rand.NewSource(seed)) //nolint: gosec // game randomness, not crypto
	}
}

// Sequence replays a fixed list of floats in [0,1), cycling when exhausted.
type Sequence struct {
	values []float64
	next   int
}

func NewSequence(values ...float64) *Sequence {
	if len(values) == 0 {
		values = []float64{0}
	}

	return &Sequence{values: values}
}

func (that *Sequence) Float64() float64 {
	v := that.values[that.next%len(that.values)]
	that.next++

	return v
}

// Intn maps the next float onto [0,n).
func (that *Sequence) Intn(n int) int {
	if n <= 0 {
		panic("invalid argument to Intn")
	}

	i := int(that.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}

	return i
}
