package media

import (
	"errors"
	"fmt"

	"github.com/olivier-w/epicycles/internal/fourier"
	"github.com/olivier-w/epicycles/internal/shape"
)

// ErrNotStereo is returned for sources without a second channel to read y
// from.
var ErrNotStereo = errors.New("media: XY path needs a stereo source")

// DefaultMaxPoints bounds the analyzed path length; analysis is O(N²).
const DefaultMaxPoints = 1024

// LoadOptions control how much audio becomes a path.
type LoadOptions struct {
	// MaxPoints caps the path length after decimation.
	MaxPoints int
	// Seconds limits decoding to the start of the file; 0 reads it all.
	Seconds float64
}

// LoadPath decodes a stereo file into a path: left → x, right → -y, so a
// rising right channel moves up on screen.
func LoadPath(path string, opts LoadOptions) ([]fourier.Point, error) {
	maxFrames := 0
	if opts.Seconds > 0 {
		// Rates above 192 kHz are not expected; the exact rate is only
		// known after the header is parsed.
		maxFrames = int(opts.Seconds * 192000)
	}
	pcm, err := Decode(path, maxFrames)
	if err != nil {
		return nil, err
	}
	if pcm.Channels < 2 {
		return nil, fmt.Errorf("%s: %w", path, ErrNotStereo)
	}

	frames := pcm.Frames()
	if opts.Seconds > 0 && pcm.SampleRate > 0 {
		frames = min(frames, int(opts.Seconds*float64(pcm.SampleRate)))
	}
	if frames == 0 {
		return nil, fmt.Errorf("%s: no audio frames", path)
	}

	points := make([]fourier.Point, frames)
	for i := range points {
		points[i] = fourier.Point{
			X: pcm.Samples[i*pcm.Channels],
			Y: -pcm.Samples[i*pcm.Channels+1],
		}
	}

	maxPoints := opts.MaxPoints
	if maxPoints <= 0 {
		maxPoints = DefaultMaxPoints
	}
	return shape.Decimate(points, maxPoints), nil
}
