package shared

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
	"sync"
)

// RandomSource yields uniform floats in [0, 1).
// Every stochastic rule in the game draws from one of these so tests can script outcomes.
type RandomSource interface {
	Float64() float64
}

// NewSeed draws a seed from the operating system entropy pool
func NewSeed() (uint64, error) {
	var buf [8]byte
	if _, err := crand.Read(buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

// SeededRandom is a PCG-backed RandomSource guarded for use from several goroutines
type SeededRandom struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeededRandom creates a deterministic source for the given seed
func NewSeededRandom(seed uint64) *SeededRandom {
	return &SeededRandom{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (r *SeededRandom) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Float64()
}

// FixedRandom replays a scripted sequence of draws, cycling when exhausted.
// An empty sequence always yields 0.
type FixedRandom struct {
	mu     sync.Mutex
	values []float64
	next   int
}

func NewFixedRandom(values ...float64) *FixedRandom {
	return &FixedRandom{values: values}
}

func (r *FixedRandom) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.values) == 0 {
		return 0
	}
	v := r.values[r.next%len(r.values)]
	r.next++
	return v
}
