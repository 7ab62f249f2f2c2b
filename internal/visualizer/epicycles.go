package visualizer

import "github.com/olivier-w/epicycles/internal/fourier"

// minCircleRadius hides circles smaller than a dot.
const minCircleRadius = 1.0

// Epicycles draws the rotating-vector chain, the reconstructed trace and,
// while capturing, the path being drawn.
type Epicycles struct {
	output  string
	profile colorProfile
}

func NewEpicycles() *Epicycles {
	return &Epicycles{profile: currentColorProfile()}
}

func (e *Epicycles) Name() string { return "epicycles" }

func (e *Epicycles) Update(scene Scene, width, height int) {
	c := e.draw(scene, width, height)
	e.output = c.render(e.profile)
}

func (e *Epicycles) draw(scene Scene, width, height int) *Canvas {
	c := NewCanvas(width, height)

	if scene.Capturing {
		drawPath(c, scene.Capture, func(int) colorRGB { return captureColor })
		return c
	}

	active := scene.active()
	for i, j := range scene.Frame.Joints {
		if i < len(active) && active[i].Amplitude >= minCircleRadius {
			c.Circle(j, active[i].Amplitude, circleColor)
		}
	}

	n := len(scene.Trace)
	drawPath(c, scene.Trace, func(i int) colorRGB {
		return traceColor(float64(n-1-i) / float64(max(1, n-1)))
	})

	for i, j := range scene.Frame.Joints {
		next := scene.Frame.Point
		if i+1 < len(scene.Frame.Joints) {
			next = scene.Frame.Joints[i+1]
		}
		c.Line(j, next, armColor)
	}
	if len(scene.Frame.Joints) > 0 {
		c.Plot(scene.Frame.Point, tipColor)
	}
	return c
}

func drawPath(c *Canvas, path []fourier.Point, color func(int) colorRGB) {
	for i := 1; i < len(path); i++ {
		c.Line(path[i-1], path[i], color(i))
	}
	if len(path) == 1 {
		c.Plot(path[0], color(0))
	}
}

func (e *Epicycles) View() string {
	return e.output
}
