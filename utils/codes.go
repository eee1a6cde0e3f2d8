package utils

import (
	"math/rand"
	"sync"
)

// Alphabet used for join codes
const codeCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// CodeGenerator mints short random join codes. It keeps no state beyond
// its entropy source and never guarantees uniqueness; callers that need
// unique codes retry against their store. Safe for concurrent use.
type CodeGenerator struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewCodeGenerator builds a generator over the given source. Passing the
// source explicitly keeps tests deterministic.
func NewCodeGenerator(src rand.Source) *CodeGenerator {
	return &CodeGenerator{rnd: rand.New(src)}
}

// Generate returns a random code of the requested length.
func (g *CodeGenerator) Generate(length int) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	b := make([]byte, length)
	for i := range b {
		b[i] = codeCharset[g.rnd.Intn(len(codeCharset))]
	}
	return string(b)
}
