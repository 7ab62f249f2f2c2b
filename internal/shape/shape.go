// Package shape builds the point sequences that feed the analyzer.
package shape

import (
	"math"

	"github.com/olivier-w/epicycles/internal/fourier"
)

// TriforceSteps is the number of interpolation steps per triforce edge.
const TriforceSteps = 50

// Polygon samples a closed polyline. Each edge contributes its start vertex
// followed by steps interpolated points, the last of which is the next
// vertex; the final edge wraps back to the first vertex.
func Polygon(vertices []fourier.Point, steps int) []fourier.Point {
	if len(vertices) == 0 {
		return nil
	}
	if steps < 1 {
		steps = 1
	}

	points := make([]fourier.Point, 0, len(vertices)*(steps+1))
	for i, curr := range vertices {
		next := vertices[(i+1)%len(vertices)]
		points = append(points, curr)
		for j := 1; j <= steps; j++ {
			t := float64(j) / float64(steps)
			points = append(points, fourier.Point{
				X: lerp(curr.X, next.X, t),
				Y: lerp(curr.Y, next.Y, t),
			})
		}
	}
	return points
}

// Triforce returns the default path: three stacked triangles drawn as one
// closed stroke, centered on the origin and sized to fit width × height with
// a margin of 20 units.
func Triforce(width, height float64) []fourier.Point {
	var w, h float64
	if width < height {
		w = width - 20
		h = 13 * w / 15
	} else {
		h = height - 20
		w = 15 * h / 13
	}
	w = math.Max(w, 1)
	h = math.Max(h, 1)

	vertices := []fourier.Point{
		{X: -w / 2, Y: h / 2},
		{X: -w / 4, Y: 0},
		{X: 0, Y: -h / 2},
		{X: w / 4, Y: 0},
		{X: -w / 4, Y: 0},
		{X: 0, Y: h / 2},
		{X: w / 4, Y: 0},
		{X: w / 2, Y: h / 2},
		{X: 0, Y: h / 2},
	}
	return Polygon(vertices, TriforceSteps)
}

// Bounds returns the bounding box of points as (min, max).
func Bounds(points []fourier.Point) (fourier.Point, fourier.Point) {
	if len(points) == 0 {
		return fourier.Point{}, fourier.Point{}
	}
	lo, hi := points[0], points[0]
	for _, p := range points[1:] {
		lo.X = math.Min(lo.X, p.X)
		lo.Y = math.Min(lo.Y, p.Y)
		hi.X = math.Max(hi.X, p.X)
		hi.Y = math.Max(hi.Y, p.Y)
	}
	return lo, hi
}

// Fit centers points on the middle of their bounding box and scales them
// uniformly so the box fits within width × height. A degenerate box is only
// centered.
func Fit(points []fourier.Point, width, height float64) []fourier.Point {
	if len(points) == 0 {
		return nil
	}
	lo, hi := Bounds(points)
	cx, cy := (lo.X+hi.X)/2, (lo.Y+hi.Y)/2
	spanX, spanY := hi.X-lo.X, hi.Y-lo.Y

	scale := 1.0
	switch {
	case spanX > 0 && spanY > 0:
		scale = math.Min(width/spanX, height/spanY)
	case spanX > 0:
		scale = width / spanX
	case spanY > 0:
		scale = height / spanY
	}

	out := make([]fourier.Point, len(points))
	for i, p := range points {
		out[i] = fourier.Point{X: (p.X - cx) * scale, Y: (p.Y - cy) * scale}
	}
	return out
}

// Decimate keeps at most max points, picked at uniform index spacing.
func Decimate(points []fourier.Point, max int) []fourier.Point {
	if max <= 0 || len(points) <= max {
		return points
	}
	out := make([]fourier.Point, max)
	stride := float64(len(points)) / float64(max)
	for i := range out {
		out[i] = points[int(float64(i)*stride)]
	}
	return out
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
