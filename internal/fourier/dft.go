package fourier

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput is returned for empty sample sequences, empty component
// lists and non-finite samples.
var ErrInvalidInput = errors.New("fourier: invalid input")

// Component is one term of the transform: the normalized k-th coefficient
// together with its frequency, amplitude and phase.
type Component struct {
	Coefficient Complex
	Frequency   int
	Amplitude   float64
	Phase       float64
}

// Analyze runs the naive O(N²) DFT over a closed path sampled at N uniform
// steps. The result has one component per sample, in frequency order, with
// every coefficient divided by N so amplitudes are directly usable as
// epicycle radii.
func Analyze(samples []Complex) ([]Component, error) {
	n := len(samples)
	if n == 0 {
		return nil, fmt.Errorf("%w: empty sample sequence", ErrInvalidInput)
	}
	for i, s := range samples {
		if !s.IsFinite() {
			return nil, fmt.Errorf("%w: sample %d is not finite", ErrInvalidInput, i)
		}
	}

	out := make([]Component, n)
	size := float64(n)
	for k := range n {
		var sum Complex
		for i, x := range samples {
			phi := 2 * math.Pi * float64(k) * float64(i) / size
			sum = sum.Add(x.Mul(Complex{Re: math.Cos(phi), Im: -math.Sin(phi)}))
		}
		sum = Complex{Re: sum.Re / size, Im: sum.Im / size}

		out[k] = Component{
			Coefficient: sum,
			Frequency:   k,
			Amplitude:   sum.Abs(),
			Phase:       sum.Arg(),
		}
	}
	return out, nil
}

// Step returns the angle a reconstruction advances per sample of an
// n-point path.
func Step(n int) float64 {
	if n <= 0 {
		return 0
	}
	return 2 * math.Pi / float64(n)
}
