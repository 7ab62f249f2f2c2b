// Package playback drives the frame-by-frame reconstruction of a path and
// the capture of new ones.
package playback

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/olivier-w/epicycles/internal/fourier"
	"go.uber.org/zap"
)

// ErrCapturing is returned by AdvanceFrame while a new path is being drawn.
var ErrCapturing = errors.New("playback: capture in progress")

// State is the driver's mode.
type State uint8

const (
	StateSynthesizing State = iota
	StateCapturing
)

func (s State) String() string {
	switch s {
	case StateCapturing:
		return "capturing"
	default:
		return "synthesizing"
	}
}

// Driver owns the ranked components of the current path, the time cursor
// and the trace drawn so far. It is not safe for concurrent use; the UI
// calls it between frames.
type Driver struct {
	log      *zap.Logger
	state    State
	recorder Recorder

	ranked   []fourier.Component
	terms    int
	t        float64
	dt       float64
	rotation float64
	anchor   fourier.Point
	trace    []fourier.Point
	sweeps   int
}

// NewDriver analyses the initial path and starts synthesizing it.
func NewDriver(log *zap.Logger, initial []fourier.Point) (*Driver, error) {
	if log == nil {
		log = zap.NewNop()
	}
	d := &Driver{log: log}
	if err := d.Load(initial); err != nil {
		return nil, err
	}
	return d, nil
}

// Load replaces the current path wholesale. On error the previous
// reconstruction is kept.
func (d *Driver) Load(points []fourier.Point) error {
	start := time.Now()
	comps, err := fourier.Analyze(fourier.FromPoints(points))
	if err != nil {
		return fmt.Errorf("analysing path: %w", err)
	}
	ranked := fourier.Rank(comps)

	d.ranked = ranked
	d.dt = fourier.Step(len(ranked))
	d.state = StateSynthesizing
	d.resetSweep()
	d.sweeps = 0

	d.log.Info("path analysed",
		zap.Int("samples", len(ranked)),
		zap.Int("dominant_frequency", ranked[0].Frequency),
		zap.Float64("dominant_amplitude", ranked[0].Amplitude),
		zap.Duration("took", time.Since(start)),
	)
	return nil
}

// StartCapture switches to capturing. Time and trace are reset; the previous
// components stay around until a new path is finalized.
func (d *Driver) StartCapture() {
	d.state = StateCapturing
	d.recorder.Start()
	d.resetSweep()
	d.log.Debug("capture started")
}

// AddPoint records a pointer position while capturing.
func (d *Driver) AddPoint(p fourier.Point) {
	if d.state != StateCapturing {
		return
	}
	d.recorder.Add(p)
}

// FinishCapture analyses the captured path and resumes synthesizing it. An
// empty capture is rejected and the previous path resumes.
func (d *Driver) FinishCapture() error {
	if d.state != StateCapturing {
		return nil
	}
	points, err := d.recorder.Finish()
	if err == nil {
		err = d.Load(points)
	}
	if err != nil {
		d.state = StateSynthesizing
		d.log.Warn("capture rejected", zap.Error(err))
		return err
	}
	return nil
}

// AdvanceFrame evaluates the epicycles at the current time, appends the
// result to the trace and steps time by 2π/N. Past 2π time wraps to zero and
// the trace starts over.
func (d *Driver) AdvanceFrame() (fourier.Frame, error) {
	if d.state == StateCapturing {
		return fourier.Frame{}, ErrCapturing
	}
	frame, err := fourier.Synthesize(d.Active(), d.t, d.rotation, d.anchor)
	if err != nil {
		return fourier.Frame{}, err
	}
	d.trace = append(d.trace, frame.Point)

	d.t += d.dt
	if d.t > 2*math.Pi {
		d.resetSweep()
		d.sweeps++
	}
	return frame, nil
}

// Reset rewinds the current sweep.
func (d *Driver) Reset() {
	d.resetSweep()
}

func (d *Driver) resetSweep() {
	d.t = 0
	d.trace = d.trace[:0]
}

// SetTerms limits synthesis to the n dominant components; 0 uses all.
func (d *Driver) SetTerms(n int) {
	if n < 0 {
		n = 0
	}
	if n >= len(d.ranked) {
		n = 0
	}
	d.terms = n
}

// Terms returns the number of components in use.
func (d *Driver) Terms() int {
	return len(d.Active())
}

// SetRotation sets the global angle added to every vector.
func (d *Driver) SetRotation(r float64) { d.rotation = r }

// Rotation returns the global rotation offset.
func (d *Driver) Rotation() float64 { return d.rotation }

// SetAnchor moves the start of the epicycle chain.
func (d *Driver) SetAnchor(p fourier.Point) { d.anchor = p }

// Anchor returns the start of the epicycle chain.
func (d *Driver) Anchor() fourier.Point { return d.anchor }

// Active returns the ranked components used for synthesis.
func (d *Driver) Active() []fourier.Component {
	return fourier.Truncate(d.ranked, d.terms)
}

// Components returns every ranked component of the current path.
func (d *Driver) Components() []fourier.Component { return d.ranked }

// Len is the sample count of the current path.
func (d *Driver) Len() int { return len(d.ranked) }

func (d *Driver) State() State { return d.state }

func (d *Driver) Time() float64 { return d.t }

// Step is the angle advanced per frame.
func (d *Driver) Step() float64 { return d.dt }

// Trace returns the points reconstructed this sweep, oldest first.
func (d *Driver) Trace() []fourier.Point { return d.trace }

// Capture returns the points of the capture in progress.
func (d *Driver) Capture() []fourier.Point { return d.recorder.Points() }

// Sweeps counts completed reconstruction cycles of the current path.
func (d *Driver) Sweeps() int { return d.sweeps }

// Progress is the fraction of the current sweep already drawn.
func (d *Driver) Progress() float64 {
	return math.Min(d.t/(2*math.Pi), 1)
}
