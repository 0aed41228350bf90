package utils

import "cmp"

func Must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}

	return v
}

func Clamp[T cmp.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}

	if v > hi {
		return hi
	}

	return v
}
