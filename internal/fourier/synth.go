package fourier

import (
	"fmt"
	"math"
)

// Frame is one evaluation of the epicycle chain.
type Frame struct {
	// Point is the tip of the last rotating vector.
	Point Point
	// Joints holds the anchor of each rotating vector, in chain order.
	Joints []Point
}

// Synthesize chains one rotating vector per component, in the given order,
// starting at anchor. Each vector has length Amplitude and angle
// Frequency·t + Phase + rotation.
func Synthesize(ranked []Component, t, rotation float64, anchor Point) (Frame, error) {
	if len(ranked) == 0 {
		return Frame{}, fmt.Errorf("%w: no components to synthesize", ErrInvalidInput)
	}
	joints := make([]Point, len(ranked))
	tip := chain(ranked, t, rotation, anchor, joints)
	return Frame{Point: tip, Joints: joints}, nil
}

// Evaluate returns only the tip of the chain and does not allocate. An
// empty component list evaluates to anchor.
func Evaluate(ranked []Component, t, rotation float64, anchor Point) Point {
	return chain(ranked, t, rotation, anchor, nil)
}

// chain sums the rotating vectors, recording each pre-advance position in
// joints when it is non-nil.
func chain(ranked []Component, t, rotation float64, anchor Point, joints []Point) Point {
	x, y := anchor.X, anchor.Y
	for i, c := range ranked {
		if joints != nil {
			joints[i] = Point{X: x, Y: y}
		}
		theta := float64(c.Frequency)*t + c.Phase + rotation
		x += c.Amplitude * math.Cos(theta)
		y += c.Amplitude * math.Sin(theta)
	}
	return Point{X: x, Y: y}
}

// Trace evaluates a full sweep of n evenly spaced instants, t = 0 to
// 2π·(n-1)/n, and returns the reconstructed points.
func Trace(ranked []Component, rotation float64, anchor Point, n int) ([]Point, error) {
	if len(ranked) == 0 {
		return nil, fmt.Errorf("%w: no components to trace", ErrInvalidInput)
	}
	if n <= 0 {
		return nil, fmt.Errorf("%w: trace needs at least one sample", ErrInvalidInput)
	}
	dt := Step(n)
	points := make([]Point, n)
	for i := range n {
		points[i] = Evaluate(ranked, float64(i)*dt, rotation, anchor)
	}
	return points, nil
}
