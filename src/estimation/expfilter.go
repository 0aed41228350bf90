package estimation

// ExponentialFilter smooths a scalar signal: s <- s + alpha*(v - s).
// A zero state counts as unprimed, so the first sample (and the first one
// after Reset) passes through unchanged.
type ExponentialFilter struct {
	alpha float64
	state float64
}

// NewExponentialFilter builds a filter with the given smoothing factor.
// alpha must be in (0, 1]; alpha = 1 disables smoothing.
func NewExponentialFilter(alpha float64) *ExponentialFilter {
	return &ExponentialFilter{alpha: alpha}
}

// Update feeds one sample and returns the smoothed state.
func (f *ExponentialFilter) Update(value float64) float64 {
	if f.state == 0 {
		f.state = value
	} else {
		f.state += f.alpha * (value - f.state)
	}

	return f.state
}

// Reset discards the accumulated state.
func (f *ExponentialFilter) Reset() {
	f.state = 0
}
