// Package particles holds the weighted sample set a particle filter
// iterates on, plus helpers for reweighting it.
package particles

import (
	"fmt"
	"sync"

	"github.com/panjf2000/ants"

	"github.com/montecarlokit/mcl/src/pose"
)

// Particle is one weighted state hypothesis.
type Particle struct {
	State  pose.Pose
	Weight float64
}

// FromStates wraps plain states into particles with unit weight.
func FromStates(states []pose.Pose) []Particle {
	ps := make([]Particle, len(states))
	for i, s := range states {
		ps[i] = Particle{State: s, Weight: 1}
	}

	return ps
}

// States copies out the particle states.
func States(ps []Particle) []pose.Pose {
	states := make([]pose.Pose, len(ps))
	for i, p := range ps {
		states[i] = p.State
	}

	return states
}

// Weights copies out the particle weights.
func Weights(ps []Particle) []float64 {
	weights := make([]float64, len(ps))
	for i, p := range ps {
		weights[i] = p.Weight
	}

	return weights
}

// TotalWeight sums the particle weights.
func TotalWeight(ps []Particle) float64 {
	var total float64
	for _, p := range ps {
		total += p.Weight
	}

	return total
}

// Normalize scales the weights in place to sum to 1. A zero-total set is
// left untouched, since there is no mass to distribute.
func Normalize(ps []Particle) {
	total := TotalWeight(ps)
	if total == 0 {
		return
	}

	for i := range ps {
		ps[i].Weight /= total
	}
}

// WeighParallel recomputes every particle's weight on the given worker
// pool. weigh must be safe for concurrent calls; each particle is written
// by exactly one task, so no locking is needed. Blocks until all tasks
// finish.
func WeighParallel(pool *ants.Pool, ps []Particle, weigh func(pose.Pose) float64) error {
	var wg sync.WaitGroup

	for i := range ps {
		wg.Add(1)

		err := pool.Submit(func() {
			defer wg.Done()
			ps[i].Weight = weigh(ps[i].State)
		})
		if err != nil {
			wg.Done()
			wg.Wait()

			return fmt.Errorf("failed to submit weighting task: %w", err)
		}
	}

	wg.Wait()

	return nil
}
