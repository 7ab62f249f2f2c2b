// Package fourier decomposes closed 2D paths into rotating vectors with a
// naive discrete Fourier transform and re-synthesizes them one instant at a
// time.
package fourier

import "math"

// Complex is a complex number stored as its real and imaginary parts.
// Operations return new values and never modify the receiver.
type Complex struct {
	Re float64
	Im float64
}

// Add returns the component-wise sum c + o.
func (c Complex) Add(o Complex) Complex {
	return Complex{Re: c.Re + o.Re, Im: c.Im + o.Im}
}

// Mul returns the complex product c * o.
func (c Complex) Mul(o Complex) Complex {
	return Complex{
		Re: c.Re*o.Re - c.Im*o.Im,
		Im: c.Re*o.Im + c.Im*o.Re,
	}
}

// Scale multiplies both parts by f.
func (c Complex) Scale(f float64) Complex {
	return Complex{Re: c.Re * f, Im: c.Im * f}
}

// Abs returns the magnitude sqrt(re² + im²).
func (c Complex) Abs() float64 {
	return math.Sqrt(c.Re*c.Re + c.Im*c.Im)
}

// Arg returns the angle of c in (-π, π]. Arg of zero is 0.
func (c Complex) Arg() float64 {
	if c.Re == 0 && c.Im == 0 {
		return 0
	}
	phase := math.Atan2(c.Im, c.Re)
	// atan2 reports -π for a negative-zero imaginary part.
	if phase <= -math.Pi {
		phase = math.Pi
	}
	return phase
}

// IsFinite reports whether neither part is NaN or infinite.
func (c Complex) IsFinite() bool {
	return !math.IsNaN(c.Re) && !math.IsInf(c.Re, 0) &&
		!math.IsNaN(c.Im) && !math.IsInf(c.Im, 0)
}

// Point is a position in the drawing plane.
type Point struct {
	X float64
	Y float64
}

// Complex maps the point onto the complex plane (x → re, y → im).
func (p Point) Complex() Complex {
	return Complex{Re: p.X, Im: p.Y}
}

// Add returns p translated by o.
func (p Point) Add(o Point) Point {
	return Point{X: p.X + o.X, Y: p.Y + o.Y}
}

// FromPoints converts a path into DFT samples.
func FromPoints(points []Point) []Complex {
	samples := make([]Complex, len(points))
	for i, p := range points {
		samples[i] = p.Complex()
	}
	return samples
}
