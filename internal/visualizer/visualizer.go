// Package visualizer draws epicycle reconstructions in the terminal.
package visualizer

import "github.com/olivier-w/epicycles/internal/fourier"

// Scene is the state a visualizer draws for one frame.
type Scene struct {
	// Ranked is the full ranked component list.
	Ranked []fourier.Component
	// Active is how many leading components are in use.
	Active int
	Frame  fourier.Frame
	// Trace is the reconstructed path of the current sweep, oldest first.
	Trace     []fourier.Point
	Capture   []fourier.Point
	Capturing bool
}

func (s Scene) active() []fourier.Component {
	if s.Active <= 0 || s.Active > len(s.Ranked) {
		return s.Ranked
	}
	return s.Ranked[:s.Active]
}

// Visualizer renders a Scene as terminal text.
type Visualizer interface {
	Name() string
	Update(scene Scene, width, height int)
	View() string
}

// Modes returns all available visualizers for a view updated fps times a
// second.
func Modes(fps int) []Visualizer {
	return []Visualizer{
		NewEpicycles(),
		NewSpectrum(fps),
	}
}
