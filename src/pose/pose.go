// Package pose provides planar rigid-body transforms: 2D rotations as unit
// complex numbers and poses as rotation plus translation.
package pose

import "math"

// Vec2 is a 2D vector.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

func (v Vec2) Norm() float64 {
	return math.Hypot(v.X, v.Y)
}

// Rot2 is a planar rotation stored as a unit complex number (cos, sin).
// The zero value is not a valid rotation; use NewRot2 or IdentityRot2.
type Rot2 struct {
	c, s float64
}

// NewRot2 builds the rotation by theta radians.
func NewRot2(theta float64) Rot2 {
	s, c := math.Sincos(theta)
	return Rot2{c: c, s: s}
}

// IdentityRot2 returns the identity rotation.
func IdentityRot2() Rot2 {
	return Rot2{c: 1, s: 0}
}

// Log returns the rotation angle in (-pi, pi], the logarithm of the
// rotation in SO(2). This is the minimal signed angle representation,
// regardless of how many turns were composed into the rotation.
func (r Rot2) Log() float64 {
	return math.Atan2(r.s, r.c)
}

func (r Rot2) Mul(o Rot2) Rot2 {
	return Rot2{
		c: r.c*o.c - r.s*o.s,
		s: r.s*o.c + r.c*o.s,
	}
}

func (r Rot2) Inverse() Rot2 {
	return Rot2{c: r.c, s: -r.s}
}

// Apply rotates the vector.
func (r Rot2) Apply(v Vec2) Vec2 {
	return Vec2{
		X: r.c*v.X - r.s*v.Y,
		Y: r.s*v.X + r.c*v.Y,
	}
}

// Pose is a planar rigid transform: rotation followed by translation.
type Pose struct {
	Rotation    Rot2
	Translation Vec2
}

// New builds the pose at (x, y) facing theta radians.
func New(x, y, theta float64) Pose {
	return Pose{
		Rotation:    NewRot2(theta),
		Translation: Vec2{X: x, Y: y},
	}
}

// Identity returns the identity transform.
func Identity() Pose {
	return Pose{Rotation: IdentityRot2()}
}

func (p Pose) X() float64 { return p.Translation.X }

func (p Pose) Y() float64 { return p.Translation.Y }

// Theta returns the heading in (-pi, pi].
func (p Pose) Theta() float64 { return p.Rotation.Log() }

// Mul composes two transforms: (p * o)(v) == p(o(v)).
func (p Pose) Mul(o Pose) Pose {
	return Pose{
		Rotation:    p.Rotation.Mul(o.Rotation),
		Translation: p.Rotation.Apply(o.Translation).Add(p.Translation),
	}
}

func (p Pose) Inverse() Pose {
	inv := p.Rotation.Inverse()
	return Pose{
		Rotation:    inv,
		Translation: inv.Apply(p.Translation).Scale(-1),
	}
}

// Apply maps a point from the pose's local frame to the world frame.
func (p Pose) Apply(v Vec2) Vec2 {
	return p.Rotation.Apply(v).Add(p.Translation)
}
