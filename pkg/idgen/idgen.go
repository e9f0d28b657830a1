// Package idgen issues booking identifiers, confirmation codes and PINs.
//
// None of the values are guaranteed unique; callers that need collision resistance should
// supply a different Generator.
package idgen

import (
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/google/uuid"
)

const upperAlphaNum = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Generator is the identifier-generation capability used by the reservation factory.
type Generator interface {
	// BookingID returns an opaque internal identifier.
	BookingID() string
	// UpperAlphaNum returns n characters from [0-9A-Z].
	UpperAlphaNum(n int) string
	// IntBetween returns an integer in [min, max].
	IntBetween(min, max int) int
}

// PseudoRandom is a non-cryptographic Generator.
type PseudoRandom struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewPseudoRandom seeds a generator. Equal seeds give equal codes and PINs.
func NewPseudoRandom(seed1, seed2 uint64) *PseudoRandom {
	return &PseudoRandom{rng: rand.New(rand.NewPCG(seed1, seed2))}
}

// BookingID returns a random UUID string.
func (g *PseudoRandom) BookingID() string {
	return uuid.NewString()
}

func (g *PseudoRandom) UpperAlphaNum(n int) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		b.WriteByte(upperAlphaNum[g.rng.IntN(len(upperAlphaNum))])
	}
	return b.String()
}

func (g *PseudoRandom) IntBetween(min, max int) int {
	if max <= min {
		return min
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return min + g.rng.IntN(max-min+1)
}
