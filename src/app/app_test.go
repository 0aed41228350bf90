package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{
		MapResolution:     0.25,
		Particles:         200,
		Iterations:        3,
		Workers:           4,
		Seed:              1,
		LinearResolution:  0.5,
		AngularResolution: 0.2,
	}
}

func TestDefaultArena(t *testing.T) {
	g := defaultArena(0.25)

	// Walls on every border, free space inside.
	assert.True(t, g.Occupied(0, 0))
	assert.True(t, g.Occupied(39, 39))
	assert.True(t, g.Occupied(0, 20))
	assert.False(t, g.Occupied(5, 5))

	// The pillar gives the beams something to see in the interior.
	assert.True(t, g.Occupied(20, 20))
}

func TestEntrypointRunCompletes(t *testing.T) {
	e := &Entrypoint{Cfg: testConfig()}

	ctx := context.Background()
	require.NoError(t, e.Init(ctx))
	defer func() { require.NoError(t, e.Close()) }()

	assert.NoError(t, e.Run(ctx))
}

func TestEntrypointRunHonorsCancellation(t *testing.T) {
	cfg := testConfig()
	cfg.Iterations = 1_000_000

	e := &Entrypoint{Cfg: cfg}

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, e.Init(ctx))
	defer func() { require.NoError(t, e.Close()) }()

	cancel()

	assert.ErrorIs(t, e.Run(ctx), context.Canceled)
}

func TestInitRejectsMissingMap(t *testing.T) {
	cfg := testConfig()
	cfg.MapPath = "/does/not/exist.pgm"

	e := &Entrypoint{Cfg: cfg}

	err := e.Init(context.Background())
	assert.Error(t, err)
}
