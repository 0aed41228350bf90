// Package app wires the localization demo together: map loading, the
// particle cloud, and the per-iteration estimation loop.
package app

import (
	"context"
	"fmt"

	"github.com/panjf2000/ants"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/montecarlokit/mcl/src/grid"
	"github.com/montecarlokit/mcl/src/pkg/utils"
)

// Config is the demo configuration, filled from CLI flags.
type Config struct {
	// MapPath points at a PGM occupancy map. Empty means a built-in arena.
	MapPath       string
	MapResolution float64

	Particles  int
	Iterations int
	Workers    int
	Seed       int64

	// Clustering resolutions for the spatial-hash census.
	LinearResolution  float64
	AngularResolution float64
}

// Entrypoint owns the demo's long-lived resources.
type Entrypoint struct {
	Cfg Config
	Env envVars

	log  *zap.SugaredLogger
	pool *ants.Pool
	grid *grid.Grid
}

func (e *Entrypoint) Init(_ context.Context) error {
	e.Env = mustLoadEnv()

	if e.Env.Environment == EnvDev {
		e.log = utils.Must(zap.NewDevelopment()).Sugar()
	} else {
		e.log = utils.Must(zap.NewProduction()).Sugar()
	}

	if e.Cfg.MapPath != "" {
		g, err := grid.LoadPGM(afero.NewOsFs(), e.Cfg.MapPath, e.Cfg.MapResolution)
		if err != nil {
			return fmt.Errorf("failed to load map: %w", err)
		}
		e.grid = g
	} else {
		e.grid = defaultArena(e.Cfg.MapResolution)
	}

	pool, err := ants.NewPool(e.Cfg.Workers)
	if err != nil {
		return fmt.Errorf("failed to create worker pool: %w", err)
	}
	e.pool = pool

	return nil
}

func (e *Entrypoint) Close() error {
	if e.pool != nil {
		e.pool.Release()
	}

	if e.log != nil {
		// Sync on stderr fails on some platforms; nothing to do about it.
		_ = e.log.Sync()
	}

	return nil
}

// defaultArena builds a small walled box with a central pillar, enough
// structure for the range beams to disambiguate poses.
func defaultArena(resolution float64) *grid.Grid {
	const size = 40

	g := grid.New(size, size, resolution)

	for i := 0; i < size; i++ {
		g.SetOccupied(i, 0, true)
		g.SetOccupied(i, size-1, true)
		g.SetOccupied(0, i, true)
		g.SetOccupied(size-1, i, true)
	}

	for cy := 17; cy < 23; cy++ {
		for cx := 17; cx < 23; cx++ {
			g.SetOccupied(cx, cy, true)
		}
	}

	return g
}
