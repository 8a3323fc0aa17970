// Package stattest holds the goodness-of-fit tests used to check bucket uniformity.
package stattest

import (
	"errors"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"
)

var (
	ErrMismatchedLength = errors.New("expected and observed must have the same length")
	ErrTooFewCategories = errors.New("at least two categories are required")
	ErrNoSamples        = errors.New("no samples")
)

// SidakAlpha splits an overall significance level over m independent tests.
func SidakAlpha(overall float64, m int) float64 {
	if m <= 1 {
		return overall
	}
	return -math.Expm1(math.Log1p(-overall) / float64(m))
}

// GTest returns the p-value of the G-test (log-likelihood ratio) of observed counts against
// expected proportions. Expected weights need not be normalized.
func GTest(expected []float64, observed []int64) (float64, error) {
	if len(expected) != len(observed) {
		return 0, ErrMismatchedLength
	}
	if len(expected) < 2 {
		return 0, ErrTooFewCategories
	}

	var sumExpected, sumObserved float64
	for i := range expected {
		sumExpected += expected[i]
		sumObserved += float64(observed[i])
	}
	if sumObserved == 0 {
		return 0, ErrNoSamples
	}

	var g float64
	scale := sumObserved / sumExpected
	for i, o := range observed {
		if o == 0 {
			continue
		}
		g += float64(o) * math.Log(float64(o)/(expected[i]*scale))
	}
	g *= 2

	chi := distuv.ChiSquared{K: float64(len(expected) - 1)}
	return chi.Survival(g), nil
}

// KolmogorovSmirnovUniform returns the p-value of the one-sample KS test of samples against
// the continuous uniform distribution on [min, max). Samples are sorted in place.
func KolmogorovSmirnovUniform(samples []float64, min, max float64) (float64, error) {
	if len(samples) == 0 {
		return 0, ErrNoSamples
	}
	sort.Float64s(samples)

	dist := distuv.Uniform{Min: min, Max: max}
	n := float64(len(samples))
	var d float64
	for i, x := range samples {
		f := dist.CDF(x)
		d = math.Max(d, math.Max(float64(i+1)/n-f, f-float64(i)/n))
	}
	return kolmogorovSurvival(d, len(samples)), nil
}

// kolmogorovSurvival is the asymptotic P(D > d) with Stephens' small-sample correction.
// Small arguments use the theta-function form of the Kolmogorov CDF, which converges fast there.
func kolmogorovSurvival(d float64, n int) float64 {
	sqrtN := math.Sqrt(float64(n))
	lambda := (sqrtN + 0.12 + 0.11/sqrtN) * d
	if lambda <= 0 {
		return 1
	}

	if lambda < 1.18 {
		var cdf float64
		c := -math.Pi * math.Pi / (8 * lambda * lambda)
		for k := 1; k <= 100; k++ {
			odd := float64(2*k - 1)
			term := math.Exp(c * odd * odd)
			cdf += term
			if term < 1e-16 {
				break
			}
		}
		cdf *= math.Sqrt(2*math.Pi) / lambda
		return clamp01(1 - cdf)
	}

	var sum float64
	sign := 1.0
	for k := 1; k <= 100; k++ {
		term := sign * math.Exp(-2*float64(k*k)*lambda*lambda)
		sum += term
		if math.Abs(term) < 1e-16 {
			break
		}
		sign = -sign
	}
	return clamp01(2 * sum)
}

func clamp01(p float64) float64 {
	return math.Min(math.Max(p, 0), 1)
}
