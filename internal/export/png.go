// Package export writes reconstructions to files: PNG snapshots of the
// epicycles and WAV renderings of the XY audio.
package export

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/gogpu/gg"
	"github.com/olivier-w/epicycles/internal/fourier"
	"github.com/olivier-w/epicycles/internal/shape"
)

// PNGOptions describe a snapshot.
type PNGOptions struct {
	Width  int
	Height int
	// T is the instant at which the epicycle chain is drawn.
	T float64
	// Rotation is the global angle offset.
	Rotation float64
	// Samples is the number of trace points; 0 uses 4 per component, at
	// least 512.
	Samples int
	// Margin is kept free around the trace, in pixels.
	Margin float64
}

func (o *PNGOptions) defaults(n int) {
	if o.Width <= 0 {
		o.Width = 800
	}
	if o.Height <= 0 {
		o.Height = 800
	}
	if o.Samples <= 0 {
		o.Samples = max(512, 4*n)
	}
	if o.Margin <= 0 {
		o.Margin = 24
	}
}

// WritePNG renders ranked components to a PNG file.
func WritePNG(path string, ranked []fourier.Component, opts PNGOptions) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := RenderPNG(f, ranked, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// RenderPNG draws the full reconstructed path, the circles and arms of
// the chain at opts.T, and the current tip, scaled to fit the image.
func RenderPNG(w io.Writer, ranked []fourier.Component, opts PNGOptions) error {
	opts.defaults(len(ranked))

	trace, err := fourier.Trace(ranked, opts.Rotation, fourier.Point{}, opts.Samples)
	if err != nil {
		return fmt.Errorf("tracing path: %w", err)
	}
	frame, err := fourier.Synthesize(ranked, opts.T, opts.Rotation, fourier.Point{})
	if err != nil {
		return fmt.Errorf("synthesizing frame: %w", err)
	}

	// Fit the trace, not the circles: large outer circles would otherwise
	// shrink the drawing to a dot.
	lo, hi := shape.Bounds(trace)
	cx, cy := (lo.X+hi.X)/2, (lo.Y+hi.Y)/2
	scale := 1.0
	availW := float64(opts.Width) - 2*opts.Margin
	availH := float64(opts.Height) - 2*opts.Margin
	if spanX, spanY := hi.X-lo.X, hi.Y-lo.Y; spanX > 0 || spanY > 0 {
		scale = math.Min(availW/math.Max(spanX, 1e-9), availH/math.Max(spanY, 1e-9))
	}
	px := func(p fourier.Point) (float64, float64) {
		return float64(opts.Width)/2 + (p.X-cx)*scale, float64(opts.Height)/2 + (p.Y-cy)*scale
	}

	dc := gg.NewContext(opts.Width, opts.Height)
	defer dc.Close()
	dc.ClearWithColor(gg.RGB(0.04, 0.04, 0.06))

	dc.SetLineWidth(1)
	dc.SetRGBA(1, 1, 1, 0.25)
	for i, j := range frame.Joints {
		r := ranked[i].Amplitude * scale
		if r < 0.5 {
			continue
		}
		x, y := px(j)
		dc.DrawCircle(x, y, r)
		if err := dc.Stroke(); err != nil {
			return err
		}
	}

	dc.SetRGBA(1, 1, 1, 0.8)
	for i, j := range frame.Joints {
		next := frame.Point
		if i+1 < len(frame.Joints) {
			next = frame.Joints[i+1]
		}
		x1, y1 := px(j)
		x2, y2 := px(next)
		dc.DrawLine(x1, y1, x2, y2)
	}
	if err := dc.Stroke(); err != nil {
		return err
	}

	dc.SetLineWidth(2)
	dc.SetRGB(1, 0.85, 0.1)
	x, y := px(trace[0])
	dc.MoveTo(x, y)
	for _, p := range trace[1:] {
		x, y := px(p)
		dc.LineTo(x, y)
	}
	dc.ClosePath()
	if err := dc.Stroke(); err != nil {
		return err
	}

	tx, ty := px(frame.Point)
	dc.SetRGB(1, 0.3, 0.2)
	dc.DrawCircle(tx, ty, 3)
	if err := dc.Fill(); err != nil {
		return err
	}

	return dc.EncodePNG(w)
}
