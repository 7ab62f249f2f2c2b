package visualizer

import (
	"math"
	"strings"

	"github.com/olivier-w/epicycles/internal/fourier"
)

// Braille dot positions (col, row) → bit offset:
//
//	(0,0)=0  (1,0)=3
//	(0,1)=1  (1,1)=4
//	(0,2)=2  (1,2)=5
//	(0,3)=6  (1,3)=7
var brailleBits = [2][4]uint{
	{0, 1, 2, 6},
	{3, 4, 5, 7},
}

const maxCircleSteps = 2048

// Canvas is a grid of braille cells, each a 2x4 dot grid with one colour.
// World coordinates are dots with the origin at the canvas center and y
// growing downwards.
type Canvas struct {
	cols, rows int
	cells      []uint8
	colors     []colorRGB
}

// NewCanvas creates a blank canvas of cols x rows cells.
func NewCanvas(cols, rows int) *Canvas {
	cols, rows = max(cols, 1), max(rows, 1)
	return &Canvas{
		cols:   cols,
		rows:   rows,
		cells:  make([]uint8, cols*rows),
		colors: make([]colorRGB, cols*rows),
	}
}

// Dots returns the canvas size in dots.
func (c *Canvas) Dots() (int, int) { return c.cols * 2, c.rows * 4 }

// Origin returns the dot position of the world origin.
func (c *Canvas) Origin() (float64, float64) {
	return float64(c.cols), float64(c.rows * 2)
}

// CellToWorld maps a terminal cell to world coordinates at the cell center.
func CellToWorld(col, row, cols, rows int) fourier.Point {
	cols, rows = max(cols, 1), max(rows, 1)
	return fourier.Point{
		X: float64(col*2+1) - float64(cols),
		Y: float64(row*4+2) - float64(rows*2),
	}
}

func (c *Canvas) set(x, y int, col colorRGB) {
	w, h := c.Dots()
	if x < 0 || y < 0 || x >= w || y >= h {
		return
	}
	i := (y/4)*c.cols + x/2
	c.cells[i] |= 1 << brailleBits[x%2][y%4]
	c.colors[i] = col
}

func (c *Canvas) toDots(p fourier.Point) (int, int) {
	ox, oy := c.Origin()
	return int(math.Round(ox + p.X)), int(math.Round(oy + p.Y))
}

// Plot sets the dot under world point p.
func (c *Canvas) Plot(p fourier.Point, col colorRGB) {
	x, y := c.toDots(p)
	c.set(x, y, col)
}

// Line draws a straight segment between two world points.
func (c *Canvas) Line(a, b fourier.Point, col colorRGB) {
	x0, y0 := c.toDots(a)
	x1, y1 := c.toDots(b)
	w, h := c.Dots()
	// Segments far off-canvas are clipped by skipping them.
	if (x0 < 0 && x1 < 0) || (y0 < 0 && y1 < 0) || (x0 >= w && x1 >= w) || (y0 >= h && y1 >= h) {
		return
	}

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		c.set(x0, y0, col)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// Circle draws the outline of a circle of radius r around world point p.
func (c *Canvas) Circle(p fourier.Point, r float64, col colorRGB) {
	if r <= 0 {
		return
	}
	// A multiple of four puts a step on each axis.
	steps := min(max(8, int(2*math.Pi*r)), maxCircleSteps)
	steps = (steps + 3) &^ 3
	for i := range steps {
		a := 2 * math.Pi * float64(i) / float64(steps)
		c.Plot(fourier.Point{X: p.X + r*math.Cos(a), Y: p.Y + r*math.Sin(a)}, col)
	}
}

func (c *Canvas) render(profile colorProfile) string {
	var out strings.Builder
	color := ansiState{profile: profile, current: ^uint32(0)}
	for row := range c.rows {
		if row > 0 {
			out.WriteByte('\n')
		}
		for col := range c.cols {
			i := row*c.cols + col
			if c.cells[i] == 0 {
				out.WriteByte(' ')
				continue
			}
			color.set(&out, c.colors[i])
			out.WriteRune(rune(0x2800 + int(c.cells[i])))
		}
		color.reset(&out)
	}
	return out.String()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
