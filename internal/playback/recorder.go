package playback

import (
	"errors"
	"slices"

	"github.com/olivier-w/epicycles/internal/fourier"
)

// ErrEmptyCapture is returned when a capture ends without any points.
var ErrEmptyCapture = errors.New("playback: capture has no points")

// Recorder collects pointer positions while the user draws.
type Recorder struct {
	points    []fourier.Point
	recording bool
}

// Start discards any previous points and begins recording.
func (r *Recorder) Start() {
	r.points = r.points[:0]
	r.recording = true
}

// Recording reports whether Add currently accepts points.
func (r *Recorder) Recording() bool { return r.recording }

// Add appends p unless it repeats the previous point. Pointer devices report
// the same cell many times while the button is held still.
func (r *Recorder) Add(p fourier.Point) {
	if !r.recording {
		return
	}
	if n := len(r.points); n > 0 && r.points[n-1] == p {
		return
	}
	r.points = append(r.points, p)
}

// Points returns the points captured so far.
func (r *Recorder) Points() []fourier.Point { return r.points }

// Finish stops recording and returns a copy of the captured path.
func (r *Recorder) Finish() ([]fourier.Point, error) {
	r.recording = false
	if len(r.points) == 0 {
		return nil, ErrEmptyCapture
	}
	return slices.Clone(r.points), nil
}
