package estimation

import (
	"github.com/montecarlokit/mcl/src/pkg/assert"
	"github.com/montecarlokit/mcl/src/pkg/utils"
)

// RecoveryEstimator tracks the probability that the filter has lost the
// true state and should inject random samples (Thrun et al., Probabilistic
// Robotics, ch. 8.3). It keeps slow and fast exponential averages of the
// mean particle weight; when the fast average drops below the slow one the
// measurements have recently gotten worse, and the gap becomes the
// recovery probability.
type RecoveryEstimator struct {
	slow *ExponentialFilter
	fast *ExponentialFilter

	probability float64
}

// NewRecoveryEstimator builds an estimator from the two smoothing rates.
// Requires 0 < alphaSlow < alphaFast.
func NewRecoveryEstimator(alphaSlow, alphaFast float64) *RecoveryEstimator {
	assert.Assert(0 < alphaSlow && alphaSlow < alphaFast,
		"estimation: need 0 < alphaSlow (%v) < alphaFast (%v)", alphaSlow, alphaFast)

	return &RecoveryEstimator{
		slow: NewExponentialFilter(alphaSlow),
		fast: NewExponentialFilter(alphaFast),
	}
}

// Update feeds one iteration's particle weights and returns the new
// recovery probability in [0, 1].
func (r *RecoveryEstimator) Update(weights []float64) float64 {
	if len(weights) == 0 {
		return r.probability
	}

	var sum float64
	for _, w := range weights {
		sum += w
	}
	average := sum / float64(len(weights))

	fast := r.fast.Update(average)
	slow := r.slow.Update(average)

	if slow == 0 {
		r.probability = 0
		return r.probability
	}

	r.probability = utils.Clamp(1-fast/slow, 0, 1)

	return r.probability
}

// Probability returns the estimate from the last Update.
func (r *RecoveryEstimator) Probability() float64 {
	return r.probability
}

// Reset drops both averages and the probability, for use after the filter
// is reinitialized.
func (r *RecoveryEstimator) Reset() {
	r.slow.Reset()
	r.fast.Reset()
	r.probability = 0
}
