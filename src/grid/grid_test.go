package grid

import (
	"math"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/montecarlokit/mcl/src/pose"
)

func TestGridOccupancy(t *testing.T) {
	g := New(4, 3, 0.5)

	assert.False(t, g.Occupied(1, 1))

	g.SetOccupied(1, 1, true)
	assert.True(t, g.Occupied(1, 1))

	g.SetOccupied(1, 1, false)
	assert.False(t, g.Occupied(1, 1))

	// Out-of-bounds access reads free and writes are dropped.
	assert.False(t, g.Occupied(-1, 0))
	assert.False(t, g.Occupied(4, 0))
	g.SetOccupied(100, 100, true)
	assert.False(t, g.Occupied(100, 100))
}

func TestGridCoordinateConversion(t *testing.T) {
	g := New(10, 10, 0.5)

	cx, cy := g.ToCell(pose.Vec2{X: 1.2, Y: 0.4})
	assert.Equal(t, 2, cx)
	assert.Equal(t, 0, cy)

	cx, cy = g.ToCell(pose.Vec2{X: -0.1, Y: -0.1})
	assert.Equal(t, -1, cx)
	assert.Equal(t, -1, cy)

	center := g.ToWorld(2, 0)
	assert.InDelta(t, 1.25, center.X, 1e-12)
	assert.InDelta(t, 0.25, center.Y, 1e-12)

	assert.True(t, g.Contains(pose.Vec2{X: 1, Y: 1}))
	assert.False(t, g.Contains(pose.Vec2{X: 6, Y: 1}))
}

func TestGridConstructorInvariants(t *testing.T) {
	assert.Panics(t, func() { New(0, 3, 1) })
	assert.Panics(t, func() { New(3, 3, 0) })
}

func TestRaycastHitsWall(t *testing.T) {
	g := New(10, 10, 1.0)
	for cy := 0; cy < 10; cy++ {
		g.SetOccupied(5, cy, true)
	}

	from := pose.New(0.5, 0.5, 0)

	assert.InDelta(t, 4.5, g.Raycast(from, 0, 20), 1e-9)

	// Looking away from the wall there is nothing to hit.
	assert.InDelta(t, 20, g.Raycast(from, math.Pi, 20), 1e-9)
}

func TestRaycastRespectsMaxRange(t *testing.T) {
	g := New(10, 10, 1.0)
	for cy := 0; cy < 10; cy++ {
		g.SetOccupied(5, cy, true)
	}

	from := pose.New(0.5, 0.5, 0)

	assert.InDelta(t, 3.0, g.Raycast(from, 0, 3.0), 1e-9)
}

func TestRaycastFromInsideObstacle(t *testing.T) {
	g := New(10, 10, 1.0)
	g.SetOccupied(5, 5, true)

	assert.Zero(t, g.Raycast(pose.New(5.5, 5.5, 0), 0, 20))
}

func TestRaycastDiagonal(t *testing.T) {
	g := New(10, 10, 1.0)
	g.SetOccupied(3, 3, true)

	d := g.Raycast(pose.New(0.5, 0.5, math.Pi/4), 0, 20)

	assert.InDelta(t, 2.5*math.Sqrt2, d, 1e-9)
}

func TestRaycastBearingIsRelativeToHeading(t *testing.T) {
	g := New(10, 10, 1.0)
	for cy := 0; cy < 10; cy++ {
		g.SetOccupied(5, cy, true)
	}

	// Heading +y, bearing -90 degrees points the beam at the wall.
	from := pose.New(0.5, 0.5, math.Pi/2)

	assert.InDelta(t, 4.5, g.Raycast(from, -math.Pi/2, 20), 1e-9)
}

func TestDistanceMap(t *testing.T) {
	g := New(5, 5, 1.0)
	g.SetOccupied(2, 2, true)

	d := g.DistanceMap()

	assert.Zero(t, d.At(2, 2))
	assert.InDelta(t, 1, d.At(3, 2), 1e-9)
	assert.InDelta(t, 2, d.At(0, 2), 1e-9)
	assert.InDelta(t, math.Sqrt2, d.At(3, 3), 1e-9)
	assert.InDelta(t, 2*math.Sqrt2, d.At(0, 0), 1e-9)

	assert.InDelta(t, 1, d.ToNearestObstacle(pose.Vec2{X: 1.5, Y: 2.5}), 1e-9)
	assert.True(t, math.IsInf(d.At(-1, 0), 1))
}

func TestDistanceMapNoObstacles(t *testing.T) {
	d := New(3, 3, 1.0).DistanceMap()

	assert.True(t, math.IsInf(d.At(1, 1), 1))
}

func TestDistanceMapScalesWithResolution(t *testing.T) {
	g := New(5, 5, 0.5)
	g.SetOccupied(2, 2, true)

	d := g.DistanceMap()

	assert.InDelta(t, 0.5, d.At(3, 2), 1e-9)
}

const asciiMap = `P2
# 3x2 test map, dark pixels are obstacles
3 2
255
0 255 255
255 255 0
`

func TestLoadPGMAscii(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "map.pgm", []byte(asciiMap), 0o644))

	g, err := LoadPGM(fs, "map.pgm", 0.25)
	require.NoError(t, err)

	assert.Equal(t, 3, g.Width())
	assert.Equal(t, 2, g.Height())
	assert.InDelta(t, 0.25, g.Resolution(), 1e-12)

	// Top image row is the top grid row.
	assert.True(t, g.Occupied(0, 1))
	assert.True(t, g.Occupied(2, 0))
	assert.False(t, g.Occupied(1, 1))
	assert.False(t, g.Occupied(0, 0))
}

func TestLoadPGMBinary(t *testing.T) {
	fs := afero.NewMemMapFs()
	raw := append([]byte("P5\n3 2\n255\n"), 0, 255, 255, 255, 255, 0)
	require.NoError(t, afero.WriteFile(fs, "map.pgm", raw, 0o644))

	g, err := LoadPGM(fs, "map.pgm", 1.0)
	require.NoError(t, err)

	assert.True(t, g.Occupied(0, 1))
	assert.True(t, g.Occupied(2, 0))
	assert.False(t, g.Occupied(1, 0))
}

func TestLoadPGMScalesMaxval(t *testing.T) {
	fs := afero.NewMemMapFs()
	// maxval 15: pixel 3 scales to 51, well under the threshold.
	require.NoError(t, afero.WriteFile(fs, "map.pgm", []byte("P2\n1 1\n15\n3\n"), 0o644))

	g, err := LoadPGM(fs, "map.pgm", 1.0)
	require.NoError(t, err)

	assert.True(t, g.Occupied(0, 0))
}

func TestLoadPGMErrors(t *testing.T) {
	fs := afero.NewMemMapFs()

	_, err := LoadPGM(fs, "missing.pgm", 1.0)
	assert.Error(t, err)

	require.NoError(t, afero.WriteFile(fs, "bad-magic.pgm", []byte("P6\n1 1\n255\nx"), 0o644))
	_, err = LoadPGM(fs, "bad-magic.pgm", 1.0)
	assert.ErrorContains(t, err, "unsupported PGM magic")

	require.NoError(t, afero.WriteFile(fs, "truncated.pgm", []byte("P5\n2 2\n255\n\x00"), 0o644))
	_, err = LoadPGM(fs, "truncated.pgm", 1.0)
	assert.ErrorContains(t, err, "truncated pixel data")

	require.NoError(t, afero.WriteFile(fs, "deep.pgm", []byte("P2\n1 1\n65535\n0\n"), 0o644))
	_, err = LoadPGM(fs, "deep.pgm", 1.0)
	assert.ErrorContains(t, err, "maxval")
}
