/*package rand supplies seedable uniform random number generators. The
zero-dependency generators here are much faster than the standard library's
source and, more importantly for simulation work, their streams are cheap to
fork: every walker carries its own generator so results do not depend on the
order worker goroutines touch them.
*/
package rand

import (
	"math"
	golang "math/rand"
	"time"
)

// GeneratorType selects the algorithm backing a Generator.
type GeneratorType int

const (
	// Xorshift is a xorshift128+ generator. It is the default choice.
	Xorshift GeneratorType = iota
	// Tausworthe is a three-component combined Tausworthe generator
	// (L'Ecuyer's taus88).
	Tausworthe
	// Golang wraps the standard library generator. It exists mainly as a
	// cross-check in tests.
	Golang

	DefaultType = Xorshift
)

const uniformScale = 1.0 / (1 << 53)

// Generator produces sequences of uniformly distributed numbers from a
// deterministic seed. It is not safe for concurrent use; fork one per
// goroutine instead.
type Generator struct {
	gt GeneratorType

	// xorshift128+ state
	s0, s1 uint64
	// taus88 state
	t1, t2, t3 uint32

	src *golang.Rand
}

// New creates a Generator of the given type from a seed. Equal seeds give
// equal sequences.
func New(gt GeneratorType, seed uint64) *Generator {
	gen := &Generator{gt: gt}
	gen.Seed(seed)
	return gen
}

// NewTimeSeed creates a Generator of the given type seeded from the wall
// clock.
func NewTimeSeed(gt GeneratorType) *Generator {
	return New(gt, uint64(time.Now().UnixNano()))
}

// Seed resets the generator to the start of the sequence given by seed.
func (gen *Generator) Seed(seed uint64) {
	// All backends expand the seed through SplitMix64 so that small and
	// correlated seeds still produce unrelated streams.
	mix := seed
	switch gen.gt {
	case Xorshift:
		gen.s0 = splitMix64(&mix)
		gen.s1 = splitMix64(&mix)
		if gen.s0 == 0 && gen.s1 == 0 {
			gen.s1 = 1
		}
	case Tausworthe:
		// The taus88 recurrences require each component to exceed its
		// discarded low bits.
		gen.t1 = uint32(splitMix64(&mix)) | 16
		gen.t2 = uint32(splitMix64(&mix)) | 16
		gen.t3 = uint32(splitMix64(&mix)) | 32
	case Golang:
		gen.src = golang.New(golang.NewSource(int64(seed)))
	default:
		panic("Unrecognized generator type.")
	}
}

func splitMix64(state *uint64) uint64 {
	*state += 0x9E3779B97F4A7C15
	z := *state
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

func (gen *Generator) next() uint64 {
	switch gen.gt {
	case Xorshift:
		x, y := gen.s0, gen.s1
		gen.s0 = y
		x ^= x << 23
		x ^= x >> 17
		x ^= y ^ (y >> 26)
		gen.s1 = x
		return x + y
	case Tausworthe:
		hi := gen.taus32()
		lo := gen.taus32()
		return uint64(hi)<<32 | uint64(lo)
	default:
		return uint64(gen.src.Int63())<<1 | uint64(gen.src.Int63()&1)
	}
}

func (gen *Generator) taus32() uint32 {
	b := ((gen.t1 << 13) ^ gen.t1) >> 19
	gen.t1 = ((gen.t1 & 0xFFFFFFFE) << 12) ^ b
	b = ((gen.t2 << 2) ^ gen.t2) >> 25
	gen.t2 = ((gen.t2 & 0xFFFFFFF8) << 4) ^ b
	b = ((gen.t3 << 3) ^ gen.t3) >> 11
	gen.t3 = ((gen.t3 & 0xFFFFFFF0) << 17) ^ b
	return gen.t1 ^ gen.t2 ^ gen.t3
}

// Uniform returns a number distributed uniformly in [low, high).
func (gen *Generator) Uniform(low, high float64) float64 {
	u := float64(gen.next()>>11) * uniformScale
	return low + u*(high-low)
}

// UniformAt fills buf with numbers distributed uniformly in [low, high).
func (gen *Generator) UniformAt(low, high float64, buf []float64) {
	for i := range buf {
		buf[i] = gen.Uniform(low, high)
	}
}

// UniformInt returns an integer distributed uniformly in [low, high).
func (gen *Generator) UniformInt(low, high int) int {
	width := high - low
	if width <= 0 {
		return low
	}
	u := gen.Uniform(0, float64(width))
	i := int(math.Floor(u))
	if i >= width {
		i = width - 1
	}
	return low + i
}
