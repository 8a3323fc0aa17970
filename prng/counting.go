package prng

// Counting wraps a Generator and counts 64-bit draws since the last Reset.
// It is used to measure how much randomness a bucket mapper consumes per call.
type Counting struct {
	g     Generator
	count int64
}

// NewCounting wraps g.
func NewCounting(g Generator) *Counting {
	return &Counting{g: g}
}

// Reset resets both the wrapped generator and the draw counter.
func (c *Counting) Reset(seed uint64) {
	c.count = 0
	c.g.Reset(seed)
}

// Uint64 forwards to the wrapped generator.
func (c *Counting) Uint64() uint64 {
	c.count++
	return c.g.Uint64()
}

// Count returns the number of draws since the last Reset.
func (c *Counting) Count() int64 {
	return c.count
}

// Zero clears the draw counter without touching the generator state, for callers that
// do not reset on every call.
func (c *Counting) Zero() {
	c.count = 0
}
