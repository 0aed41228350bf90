// Package estimation provides the statistics a particle filter computes
// over its weighted sample set: effective sample size, exponential
// smoothing, recovery probability and pose moments.
package estimation

// EffectiveSampleSize measures how many of the weighted samples carry
// meaningful probability mass: (sum w)^2 / sum w^2. It equals len(weights)
// for uniform weights and approaches 1 as the mass concentrates on a
// single sample. Returns 0 for an empty or all-zero weight set.
func EffectiveSampleSize(weights []float64) float64 {
	var sum, sumSq float64
	for _, w := range weights {
		sum += w
		sumSq += w * w
	}

	if sumSq == 0 {
		return 0
	}

	return sum * sum / sumSq
}
