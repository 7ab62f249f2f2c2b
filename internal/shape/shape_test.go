package shape

import (
	"math"
	"testing"

	"github.com/olivier-w/epicycles/internal/fourier"
)

func TestPolygonSamplesEveryEdge(t *testing.T) {
	square := []fourier.Point{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4}}
	points := Polygon(square, 4)

	if len(points) != 20 {
		t.Fatalf("expected 20 points, got %d", len(points))
	}
	if points[0] != square[0] {
		t.Fatalf("expected first point %+v, got %+v", square[0], points[0])
	}
	if points[2] != (fourier.Point{X: 2, Y: 0}) {
		t.Fatalf("expected midpoint of first edge, got %+v", points[2])
	}
	if last := points[len(points)-1]; last != square[0] {
		t.Fatalf("expected path to close on the first vertex, got %+v", last)
	}
}

func TestPolygonEmpty(t *testing.T) {
	if got := Polygon(nil, 10); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}

func TestTriforceFitsCanvas(t *testing.T) {
	points := Triforce(200, 120)
	if len(points) != 9*(TriforceSteps+1) {
		t.Fatalf("expected %d points, got %d", 9*(TriforceSteps+1), len(points))
	}

	lo, hi := Bounds(points)
	if hi.Y-lo.Y > 100+1e-9 {
		t.Fatalf("expected height <= 100, got %v", hi.Y-lo.Y)
	}
	if math.Abs((hi.X-lo.X)/(hi.Y-lo.Y)-15.0/13.0) > 1e-9 {
		t.Fatalf("expected 15:13 aspect, got %v", (hi.X-lo.X)/(hi.Y-lo.Y))
	}
	if math.Abs(lo.X+hi.X) > 1e-9 || math.Abs(lo.Y+hi.Y) > 1e-9 {
		t.Fatalf("expected path centered on origin, got %+v..%+v", lo, hi)
	}
}

func TestTriforcePortrait(t *testing.T) {
	lo, hi := Bounds(Triforce(100, 300))
	if math.Abs((hi.X-lo.X)-80) > 1e-9 {
		t.Fatalf("expected width 80, got %v", hi.X-lo.X)
	}
}

func TestFitScalesIntoBox(t *testing.T) {
	points := []fourier.Point{{X: 10, Y: 10}, {X: 30, Y: 10}, {X: 30, Y: 20}}
	fitted := Fit(points, 100, 100)

	lo, hi := Bounds(fitted)
	if math.Abs(hi.X-lo.X-100) > 1e-9 {
		t.Fatalf("expected width 100, got %v", hi.X-lo.X)
	}
	if math.Abs(lo.X+hi.X) > 1e-9 || math.Abs(lo.Y+hi.Y) > 1e-9 {
		t.Fatalf("expected centered box, got %+v..%+v", lo, hi)
	}
}

func TestFitDegenerate(t *testing.T) {
	fitted := Fit([]fourier.Point{{X: 5, Y: 5}, {X: 5, Y: 5}}, 50, 50)
	for _, p := range fitted {
		if p != (fourier.Point{}) {
			t.Fatalf("expected point collapsed to origin, got %+v", p)
		}
	}
}

func TestDecimate(t *testing.T) {
	points := make([]fourier.Point, 1000)
	for i := range points {
		points[i] = fourier.Point{X: float64(i)}
	}

	got := Decimate(points, 100)
	if len(got) != 100 {
		t.Fatalf("expected 100 points, got %d", len(got))
	}
	if got[1].X != 10 {
		t.Fatalf("expected uniform stride of 10, got %v", got[1].X)
	}
	if len(Decimate(points, 0)) != 1000 {
		t.Fatal("expected max <= 0 to keep every point")
	}
}
