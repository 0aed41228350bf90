package estimation

import (
	"math"

	"github.com/montecarlokit/mcl/src/pkg/assert"
	"github.com/montecarlokit/mcl/src/pose"
)

// Moments is the weighted first and second moment of a pose sample set.
// The heading has no Euclidean variance; RotationVariance is the circular
// variance -2*ln(R), where R is the length of the mean unit heading
// vector: 0 when all headings agree, +Inf when they cancel out.
type Moments struct {
	Mean                  pose.Pose
	TranslationCovariance [2][2]float64
	RotationVariance      float64
}

// Estimate computes the weighted mean pose and spread of a sample set.
// A nil weights slice means uniform weights; otherwise len(weights) must
// equal len(states). The heading mean is the circular mean, so clusters
// straddling the +-pi seam average correctly.
func Estimate(states []pose.Pose, weights []float64) Moments {
	assert.Assert(len(states) > 0, "estimation: empty sample set")
	assert.Assert(weights == nil || len(weights) == len(states),
		"estimation: %d states but %d weights", len(states), len(weights))

	weightAt := func(int) float64 { return 1 }
	total := float64(len(states))
	if weights != nil {
		weightAt = func(i int) float64 { return weights[i] }
		total = 0
		for _, w := range weights {
			total += w
		}
	}
	assert.Assert(total > 0, "estimation: total weight must be positive")

	var tx, ty, cos, sin float64
	for i, s := range states {
		w := weightAt(i) / total
		tx += w * s.X()
		ty += w * s.Y()
		theta := s.Theta()
		cos += w * math.Cos(theta)
		sin += w * math.Sin(theta)
	}

	mean := pose.New(tx, ty, math.Atan2(sin, cos))

	var cxx, cxy, cyy float64
	for i, s := range states {
		w := weightAt(i) / total
		dx := s.X() - tx
		dy := s.Y() - ty
		cxx += w * dx * dx
		cxy += w * dx * dy
		cyy += w * dy * dy
	}

	return Moments{
		Mean: mean,
		TranslationCovariance: [2][2]float64{
			{cxx, cxy},
			{cxy, cyy},
		},
		RotationVariance: -2 * math.Log(math.Hypot(cos, sin)),
	}
}
