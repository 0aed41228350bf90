// Package spatialhash buckets continuous multi-dimensional states into
// discrete cells. Each axis is divided by a caller-supplied resolution,
// floored, spread with a Fibonacci multiplicative hash and rotated into its
// own bit range; the per-axis results are XOR-folded into a single uint key.
//
// Keys are pure functions of (state, resolution): identical inputs always
// produce identical keys, with no hidden state. Collisions between distinct
// cells are possible and left to the consumer; this package offers no
// bucket storage or collision resolution.
package spatialhash

import (
	"math"
	"math/bits"
)

const (
	// Golden ratio fractions of the word range: floor(2^64/phi) and
	// floor(2^32/phi).
	fib64 = 11400714819323198485
	fib32 = 2654435769

	// fib is the multiplier for the native word width. fib64 >> 32 == fib32,
	// so the shift picks the right constant on either platform; uint is
	// guaranteed by the language to be 32 or 64 bits wide.
	fib uint = fib64 >> (64 - bits.UintSize)
)

// axisHash quantizes one axis value and spreads it across the key width.
//
// The value is floored (all of [k, k+1) collapses to k) and reinterpreted
// as an unsigned word; negative and overflowing values wrap around, which
// still spreads them over the full hash range. The product is rotated left
// by bitWidth*slot so axes with equal quantized values do not cancel when
// XOR-folded.
func axisHash(value float64, bitWidth, slot uint) uint {
	quantized := uint(int(math.Floor(value)))
	return bits.RotateLeft(quantized*fib, int(bitWidth*slot))
}

// combine hashes one state with a matching per-axis resolution vector.
// Each axis gets bits.UintSize/N bits of rotation headroom; the truncated
// remainder bits overlap between axes and are not corrected.
func combine(state, resolution []float64) uint {
	bitWidth := uint(bits.UintSize) / uint(len(state))

	var key uint
	for i, v := range state {
		key ^= axisHash(v/resolution[i], bitWidth, uint(i))
	}

	return key
}
