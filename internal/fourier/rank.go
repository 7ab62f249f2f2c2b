package fourier

import "slices"

// Rank returns a copy of components ordered by descending amplitude.
// Equal amplitudes keep ascending frequency order, which makes the result
// reproducible and Rank idempotent.
func Rank(components []Component) []Component {
	ranked := slices.Clone(components)
	slices.SortStableFunc(ranked, func(a, b Component) int {
		switch {
		case a.Amplitude > b.Amplitude:
			return -1
		case a.Amplitude < b.Amplitude:
			return 1
		}
		return a.Frequency - b.Frequency
	})
	return ranked
}

// Truncate keeps the first n components of a ranked list. n <= 0 or n past
// the end keeps all of them. The returned slice shares ranked's backing
// array and must not be modified.
func Truncate(ranked []Component, n int) []Component {
	if n <= 0 || n >= len(ranked) {
		return ranked
	}
	return ranked[:n:n]
}
