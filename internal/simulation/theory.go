package simulation

import (
	"math"
	"math/bits"

	"github.com/Borislavv/go-jumpback-hash/internal/mapper"
)

// Expected returns the closed-form mean and variance of 64-bit draws per call of alg for n
// buckets. ok is false for algorithms without a known closed form.
func Expected(alg mapper.Algorithm, n int32) (mean, variance float64, ok bool) {
	switch alg {
	case mapper.AlgJumpHash:
		for i := 1; i <= int(n); i++ {
			p := 1 / float64(i)
			mean += p
			variance += p * (1 - p)
		}
		return mean, variance, true
	case mapper.AlgJumpBack32, mapper.AlgReference:
		if n <= 1 {
			return 0, 0, true
		}
		a := alpha(n)
		return 1 + a, a * (a - 1), true
	case mapper.AlgJumpBack:
		if n <= 1 {
			return 0, 0, true
		}
		a := alpha(n)
		d := 2*a - 1
		return 1 + (a-1)*a/d, a * (a - 1) * (a*a - a + 1) / (d * d), true
	default:
		return 0, 0, false
	}
}

// alpha is 2^(floor(log2(n-1))+1) / n, the ratio of the enclosing power of two to n.
// Requires n > 1.
func alpha(n int32) float64 {
	return math.Ldexp(1, bits.Len32(uint32(n-1))) / float64(n)
}

// Deviation is the largest absolute gap between a simulated series and its closed form.
type Deviation struct {
	Mean     float64
	Variance float64
}

// MaxDeviation compares s against Expected over counts. ok is false without a closed form.
func MaxDeviation(s Series, counts []int32) (dev Deviation, ok bool) {
	for i, n := range counts {
		mean, variance, known := Expected(s.Algorithm, n)
		if !known {
			return Deviation{}, false
		}
		dev.Mean = max(dev.Mean, math.Abs(s.Mean[i]-mean))
		dev.Variance = max(dev.Variance, math.Abs(s.Variance[i]-variance))
	}
	return dev, true
}
