package prng

const (
	// Golden ratio increment used by SplitMix64 to traverse states uniformly.
	splitmix64Increment = 0x9E3779B97F4A7C15

	// Multipliers from the SplitMix64 reference implementation.
	splitmix64Mul1 = 0xBF58476D1CE4E5B9
	splitmix64Mul2 = 0x94D049BB133111EB
)

// SplitMix64 is the splitting-mix generator of Steele, Lea and Flood.
// The zero value is ready to use and equivalent to Reset(0).
type SplitMix64 struct {
	state uint64
}

// NewSplitMix64 returns a generator with zero state.
func NewSplitMix64() *SplitMix64 {
	return &SplitMix64{}
}

// Reset assigns seed to the state. No premixing: the first draw already avalanches.
func (s *SplitMix64) Reset(seed uint64) {
	s.state = seed
}

// Uint64 advances the state by the golden increment and mixes it.
func (s *SplitMix64) Uint64() uint64 {
	s.state += splitmix64Increment
	return mix64(s.state)
}

// mix64 is the SplitMix64 finalizer.
func mix64(z uint64) uint64 {
	z = (z ^ (z >> 30)) * splitmix64Mul1
	z = (z ^ (z >> 27)) * splitmix64Mul2
	return z ^ (z >> 31)
}
