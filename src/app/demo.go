package app

import (
	"context"
	"math"
	"math/rand"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/montecarlokit/mcl/src/estimation"
	"github.com/montecarlokit/mcl/src/grid"
	"github.com/montecarlokit/mcl/src/particles"
	"github.com/montecarlokit/mcl/src/pose"
	"github.com/montecarlokit/mcl/src/spatialhash"
)

// beamBearings are the ray directions of the simulated range sensor,
// relative to the robot heading.
var beamBearings = []float64{-math.Pi / 2, -math.Pi / 4, 0, math.Pi / 4, math.Pi / 2}

const (
	recoveryAlphaSlow = 0.001
	recoveryAlphaFast = 0.1
)

// Run drives the localization loop: move the simulated robot, measure,
// reweigh the cloud, log the filter statistics and resample. Returns when
// all iterations finish or the context is cancelled.
func (e *Entrypoint) Run(ctx context.Context) error {
	log := e.log.With("run_id", uuid.NewString())

	rng := rand.New(rand.NewSource(e.Cfg.Seed))

	distmap := e.grid.DistanceMap()
	hasher := spatialhash.NewPoseHasherGrouped(
		e.Cfg.LinearResolution, e.Cfg.AngularResolution,
	)
	recovery := estimation.NewRecoveryEstimator(recoveryAlphaSlow, recoveryAlphaFast)

	truth := e.randomFreePose(rng)
	cloud := particles.FromStates(e.randomFreePoses(rng, e.Cfg.Particles))

	sigma := 2 * e.grid.Resolution()

	log.Infow("localization started",
		"particles", len(cloud),
		"iterations", e.Cfg.Iterations,
		"map_size", e.grid.Width()*e.grid.Height(),
	)

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		for i := 0; i < e.Cfg.Iterations; i++ {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			cmd := motionCommand(rng)
			truth = e.advance(truth, cmd, rng)
			for j := range cloud {
				cloud[j].State = e.noisyAdvance(cloud[j].State, cmd, rng)
			}

			ranges := e.measure(truth)

			err := particles.WeighParallel(e.pool, cloud, func(p pose.Pose) float64 {
				return e.likelihood(distmap, p, ranges, sigma)
			})
			if err != nil {
				return err
			}

			// Recovery tracks the raw average weight, before normalization
			// flattens it.
			prob := recovery.Update(particles.Weights(cloud))

			particles.Normalize(cloud)
			weights := particles.Weights(cloud)

			ess := estimation.EffectiveSampleSize(weights)
			moments := estimation.Estimate(particles.States(cloud), weights)

			cells := make(map[uint]int, len(cloud))
			for _, p := range cloud {
				cells[hasher.Hash(p.State)]++
			}

			log.Infow("iteration done",
				"iteration", i,
				"ess", ess,
				"recovery_probability", prob,
				"clusters", len(cells),
				"estimate_x", moments.Mean.X(),
				"estimate_y", moments.Mean.Y(),
				"estimate_theta", moments.Mean.Theta(),
				"position_error", truth.Translation.Sub(moments.Mean.Translation).Norm(),
			)

			cloud = e.resample(rng, cloud, prob)
		}

		return nil
	})

	return group.Wait()
}

func (e *Entrypoint) maxRange() float64 {
	w := float64(e.grid.Width()) * e.grid.Resolution()
	h := float64(e.grid.Height()) * e.grid.Resolution()

	return math.Hypot(w, h)
}

func (e *Entrypoint) randomFreePose(rng *rand.Rand) pose.Pose {
	for {
		cx := rng.Intn(e.grid.Width())
		cy := rng.Intn(e.grid.Height())
		if e.grid.Occupied(cx, cy) {
			continue
		}

		c := e.grid.ToWorld(cx, cy)

		return pose.New(c.X, c.Y, rng.Float64()*2*math.Pi-math.Pi)
	}
}

func (e *Entrypoint) randomFreePoses(rng *rand.Rand, n int) []pose.Pose {
	states := make([]pose.Pose, n)
	for i := range states {
		states[i] = e.randomFreePose(rng)
	}

	return states
}

// motionCommand is the simulated odometry step in the robot frame.
func motionCommand(rng *rand.Rand) pose.Pose {
	forward := 0.1 + 0.1*rng.Float64()
	turn := 0.3 * rng.NormFloat64()

	return pose.New(forward, 0, turn)
}

// advance applies the command to the true pose, bouncing off obstacles by
// turning in place instead of driving through them.
func (e *Entrypoint) advance(p, cmd pose.Pose, rng *rand.Rand) pose.Pose {
	next := p.Mul(cmd)
	if e.grid.Contains(next.Translation) && !e.grid.Occupied(e.grid.ToCell(next.Translation)) {
		return next
	}

	return pose.New(p.X(), p.Y(), p.Theta()+math.Pi/2+rng.Float64())
}

// noisyAdvance applies the command plus odometry noise, for cloud
// propagation.
func (e *Entrypoint) noisyAdvance(p, cmd pose.Pose, rng *rand.Rand) pose.Pose {
	res := e.grid.Resolution()
	noisy := pose.New(
		cmd.X()+0.5*res*rng.NormFloat64(),
		cmd.Y()+0.5*res*rng.NormFloat64(),
		cmd.Theta()+0.05*rng.NormFloat64(),
	)

	return p.Mul(noisy)
}

// measure raycasts the beam fan from the true pose.
func (e *Entrypoint) measure(truth pose.Pose) []float64 {
	ranges := make([]float64, len(beamBearings))
	for i, bearing := range beamBearings {
		ranges[i] = e.grid.Raycast(truth, bearing, e.maxRange())
	}

	return ranges
}

// likelihood scores a particle with the likelihood-field model: project
// each measured beam endpoint from the particle's frame and score it by
// its distance to the nearest obstacle.
func (e *Entrypoint) likelihood(
	distmap *grid.DistanceMap,
	p pose.Pose,
	ranges []float64,
	sigma float64,
) float64 {
	const floor = 1e-3 // random-measurement mass keeps weights nonzero

	weight := 1.0
	for i, r := range ranges {
		bearing := beamBearings[i]
		endpoint := p.Apply(pose.Vec2{
			X: r * math.Cos(bearing),
			Y: r * math.Sin(bearing),
		})

		d := distmap.ToNearestObstacle(endpoint)
		if math.IsInf(d, 1) {
			weight *= floor
			continue
		}

		weight *= floor + math.Exp(-d*d/(2*sigma*sigma))
	}

	return weight
}

// resample draws the next cloud with low-variance (systematic) sampling;
// with probability recoveryProb a draw is replaced by a fresh random pose.
// Expects normalized weights; returns a uniform-weight cloud.
func (e *Entrypoint) resample(
	rng *rand.Rand,
	cloud []particles.Particle,
	recoveryProb float64,
) []particles.Particle {
	n := len(cloud)
	next := make([]particles.Particle, 0, n)

	step := 1.0 / float64(n)
	u := rng.Float64() * step
	cum := cloud[0].Weight
	idx := 0

	for i := 0; i < n; i++ {
		if rng.Float64() < recoveryProb {
			next = append(next, particles.Particle{
				State:  e.randomFreePose(rng),
				Weight: 1,
			})
			u += step
			continue
		}

		for u > cum && idx < n-1 {
			idx++
			cum += cloud[idx].Weight
		}

		next = append(next, particles.Particle{State: cloud[idx].State, Weight: 1})
		u += step
	}

	return next
}
