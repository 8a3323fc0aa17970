package simulation

import (
	"slices"
)

// GeometricBucketCounts returns the ascending grid hi, hi*factor, hi*factor², ... down to lo,
// stepping by at least one so that small counts are all present.
func GeometricBucketCounts(lo, hi int32, factor float64) []int32 {
	if lo < 1 || hi < lo || factor <= 0 || factor >= 1 {
		return nil
	}
	var counts []int32
	for c := hi; c >= lo; c = min(c-1, int32(float64(c)*factor)) {
		counts = append(counts, c)
	}
	slices.Reverse(counts)
	return counts
}

// DyadicBucketCounts returns the sorted distinct values 2^k, 2^k+1, 2^k·5/4, 2^k·3/2 and 2^k·7/4
// for k in [0, maxExp], keeping those not above 2^maxExp. maxExp is clamped to [0, 30].
func DyadicBucketCounts(maxExp int) []int32 {
	maxExp = min(max(maxExp, 0), 30)
	limit := int64(1) << maxExp

	var counts []int32
	for k := 0; k <= maxExp; k++ {
		p := int64(1) << k
		for _, c := range [...]int64{p, p + 1, p * 5 / 4, p * 3 / 2, p * 7 / 4} {
			if c <= limit {
				counts = append(counts, int32(c))
			}
		}
	}
	slices.Sort(counts)
	return slices.Compact(counts)
}
