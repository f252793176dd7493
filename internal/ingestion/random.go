package ingestion

import (
	"math/rand/v2"
	"sync"
)

const (
	fallbackScoreMin  = 60.0
	fallbackScoreSpan = 40.0
)

// RandomSource supplies uniform floats in [0, 1)
type RandomSource interface {
	Float64() float64
}

// DefaultRandom returns the process-wide random source
func DefaultRandom() RandomSource {
	return globalRandom{}
}

type globalRandom struct{}

func (globalRandom) Float64() float64 {
	return rand.Float64()
}

// NewSeededRandom returns a deterministic source, safe for concurrent use
func NewSeededRandom(seed uint64) RandomSource {
	return &lockedRandom{r: rand.New(rand.NewPCG(seed, seed))}
}

type lockedRandom struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (l *lockedRandom) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

// fallbackScore draws a substitute match score in [60, 100)
func fallbackScore(rnd RandomSource) float64 {
	return rnd.Float64()*fallbackScoreSpan + fallbackScoreMin
}
