// Package grid provides a planar occupancy grid with the lookups a range
// sensor model needs: world/cell coordinate conversion, raycasting and a
// nearest-obstacle distance map.
package grid

import (
	"math"

	"github.com/montecarlokit/mcl/src/pkg/assert"
	"github.com/montecarlokit/mcl/src/pose"
)

// Grid is a fixed-size occupancy grid. Cell (0, 0) sits at the world
// origin corner; cells grow +x to the right and +y upwards. Cells outside
// the grid are treated as free.
type Grid struct {
	width, height int
	resolution    float64
	occupied      []bool
}

// New builds an all-free grid. resolution is the metric side length of a
// cell and must be strictly positive.
func New(width, height int, resolution float64) *Grid {
	assert.Assert(width > 0 && height > 0, "grid: non-positive size %dx%d", width, height)
	assert.Assert(resolution > 0, "grid: non-positive resolution %v", resolution)

	return &Grid{
		width:      width,
		height:     height,
		resolution: resolution,
		occupied:   make([]bool, width*height),
	}
}

func (g *Grid) Width() int { return g.width }

func (g *Grid) Height() int { return g.height }

// Resolution returns the metric side length of a cell.
func (g *Grid) Resolution() float64 { return g.resolution }

func (g *Grid) inBounds(cx, cy int) bool {
	return cx >= 0 && cx < g.width && cy >= 0 && cy < g.height
}

// Occupied reports whether the cell holds an obstacle. Out-of-bounds
// cells read as free.
func (g *Grid) Occupied(cx, cy int) bool {
	if !g.inBounds(cx, cy) {
		return false
	}

	return g.occupied[cy*g.width+cx]
}

// SetOccupied marks or clears one cell. Out-of-bounds writes are ignored.
func (g *Grid) SetOccupied(cx, cy int, v bool) {
	if !g.inBounds(cx, cy) {
		return
	}

	g.occupied[cy*g.width+cx] = v
}

// ToCell maps a world point to its cell coordinates. The result may lie
// outside the grid.
func (g *Grid) ToCell(p pose.Vec2) (cx, cy int) {
	return int(math.Floor(p.X / g.resolution)), int(math.Floor(p.Y / g.resolution))
}

// ToWorld returns the world coordinates of the cell center.
func (g *Grid) ToWorld(cx, cy int) pose.Vec2 {
	return pose.Vec2{
		X: (float64(cx) + 0.5) * g.resolution,
		Y: (float64(cy) + 0.5) * g.resolution,
	}
}

// Contains reports whether the world point falls inside the grid.
func (g *Grid) Contains(p pose.Vec2) bool {
	cx, cy := g.ToCell(p)
	return g.inBounds(cx, cy)
}
