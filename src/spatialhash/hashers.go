package spatialhash

import (
	"math/bits"

	"github.com/montecarlokit/mcl/src/pkg/assert"
	"github.com/montecarlokit/mcl/src/pose"
)

// Real covers the scalar types a state axis may carry.
type Real interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Hasher buckets fixed-dimension numeric states into cells sized by the
// per-axis resolution given at construction. Construct with NewHasher; the
// zero value is unusable.
//
// A constructed Hasher is immutable and safe for concurrent use.
type Hasher[T Real] struct {
	resolution []float64
}

// NewHasher builds a hasher for len(resolution)-dimensional states.
// Resolutions must be strictly positive; zero or negative entries are not
// validated and poison the quantization step.
func NewHasher[T Real](resolution ...float64) Hasher[T] {
	assert.Assert(len(resolution) > 0, "spatialhash: empty resolution vector")

	res := make([]float64, len(resolution))
	copy(res, resolution)

	return Hasher[T]{resolution: res}
}

// Hash maps the state to its cell key. The state arity must equal the
// resolution arity given at construction.
func (h Hasher[T]) Hash(state ...T) uint {
	assert.Assert(
		len(state) == len(h.resolution),
		"spatialhash: state arity %d does not match resolution arity %d",
		len(state), len(h.resolution),
	)

	bitWidth := uint(bits.UintSize) / uint(len(state))

	var key uint
	for i, v := range state {
		key ^= axisHash(float64(v)/h.resolution[i], bitWidth, uint(i))
	}

	return key
}

// Tuple3Hasher buckets heterogeneous 3-tuples of scalars. Arity is fixed
// at the type level: the resolution is a [3]float64, so a mismatched
// vector cannot be constructed.
type Tuple3Hasher[A, B, C Real] struct {
	resolution [3]float64
}

// NewTuple3Hasher builds a 3-tuple hasher; resolution[i] buckets the i-th
// tuple element.
func NewTuple3Hasher[A, B, C Real](resolution [3]float64) Tuple3Hasher[A, B, C] {
	return Tuple3Hasher[A, B, C]{resolution: resolution}
}

// Hash maps the tuple to its cell key.
func (h Tuple3Hasher[A, B, C]) Hash(a A, b B, c C) uint {
	state := [3]float64{float64(a), float64(b), float64(c)}
	return combine(state[:], h.resolution[:])
}

// PoseHasher buckets planar poses by position and heading. At call time
// the pose is projected to (x, y, theta), with theta the minimal signed
// rotation angle, and hashed as a 3-tuple.
type PoseHasher struct {
	inner Tuple3Hasher[float64, float64, float64]
}

// NewPoseHasher builds a pose hasher with per-axis resolutions: x and y in
// length units, theta in radians.
func NewPoseHasher(xRes, yRes, thetaRes float64) PoseHasher {
	return PoseHasher{
		inner: NewTuple3Hasher[float64, float64, float64](
			[3]float64{xRes, yRes, thetaRes},
		),
	}
}

// NewPoseHasherGrouped applies the same linear resolution to both x and y.
func NewPoseHasherGrouped(linearRes, angularRes float64) PoseHasher {
	return NewPoseHasher(linearRes, linearRes, angularRes)
}

// NewDefaultPoseHasher uses unit resolution on every axis (1 length unit,
// 1 radian). A placeholder for call sites that need a hasher value but
// never bucket with it, not a sensible operating default.
func NewDefaultPoseHasher() PoseHasher {
	return NewPoseHasher(1, 1, 1)
}

// Hash maps the pose to its cell key.
func (h PoseHasher) Hash(p pose.Pose) uint {
	return h.inner.Hash(p.X(), p.Y(), p.Rotation.Log())
}
