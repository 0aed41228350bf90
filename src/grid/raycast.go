package grid

import (
	"math"

	"github.com/montecarlokit/mcl/src/pose"
)

// Raycast walks the grid from the pose's position along its heading plus
// bearing and returns the distance to the first occupied cell, capped at
// maxRange. Rays that leave the grid or start inside an obstacle return
// maxRange and 0 respectively.
//
// The walk is an Amanatides-Woo traversal: it visits every cell the ray
// pierces exactly once, so thin walls cannot be skipped.
func (g *Grid) Raycast(from pose.Pose, bearing, maxRange float64) float64 {
	theta := from.Theta() + bearing
	dirX, dirY := math.Cos(theta), math.Sin(theta)

	cx, cy := g.ToCell(from.Translation)
	if g.Occupied(cx, cy) {
		return 0
	}

	stepX, tMaxX, tDeltaX := axisStepper(from.Translation.X, dirX, g.resolution)
	stepY, tMaxY, tDeltaY := axisStepper(from.Translation.Y, dirY, g.resolution)

	for {
		var t float64
		if tMaxX < tMaxY {
			t = tMaxX
			tMaxX += tDeltaX
			cx += stepX
		} else {
			t = tMaxY
			tMaxY += tDeltaY
			cy += stepY
		}

		if t >= maxRange {
			return maxRange
		}

		if g.Occupied(cx, cy) {
			return t
		}
	}
}

// axisStepper computes the per-axis walk state: the cell step direction,
// the ray length to the first cell boundary, and the ray length between
// consecutive boundaries. A zero direction component never advances, so
// its boundary distance is +Inf.
func axisStepper(origin, dir, resolution float64) (step int, tMax, tDelta float64) {
	if dir == 0 {
		return 0, math.Inf(1), math.Inf(1)
	}

	cell := math.Floor(origin / resolution)
	if dir > 0 {
		tMax = ((cell+1)*resolution - origin) / dir
		return 1, tMax, resolution / dir
	}

	tMax = (cell*resolution - origin) / dir
	return -1, tMax, -resolution / dir
}
