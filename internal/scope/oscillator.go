// Package scope renders epicycle reconstructions as stereo audio for XY
// oscilloscope display: left carries x and right carries y.
package scope

import (
	"encoding/binary"
	"math"
	"sync/atomic"

	"github.com/olivier-w/epicycles/internal/fourier"
	"gonum.org/v1/gonum/floats"
)

const (
	// SampleRate is the output rate in Hz.
	SampleRate = 44100
	// Channels is the output channel count.
	Channels = 2
	// DefaultSweepHz is how many times per second the path is retraced.
	DefaultSweepHz = 50.0

	headroom = 0.9
)

type voice struct {
	comps []fourier.Component
	gain  float64
}

// Oscillator produces one full sweep of the path every 1/sweepHz seconds.
// SetComponents may be called from any goroutine; reads must come from a
// single goroutine.
//
// Each component is kept as a phasor that is rotated by a fixed per-sample
// step, so the sample loop needs no trigonometry.
type Oscillator struct {
	voice   atomic.Pointer[voice]
	sweepHz float64
	step    float64
	t       float64

	// Reader-side state, rebuilt when the voice changes or time wraps.
	current *voice
	phasors []fourier.Complex
	steps   []fourier.Complex
	buf     []float64
}

// NewOscillator creates a silent oscillator. sweepHz <= 0 selects
// DefaultSweepHz.
func NewOscillator(sweepHz float64) *Oscillator {
	if sweepHz <= 0 {
		sweepHz = DefaultSweepHz
	}
	return &Oscillator{sweepHz: sweepHz, step: 2 * math.Pi * sweepHz / SampleRate}
}

// SetComponents swaps in a new ranked component list. The constant term is
// dropped so the signal is centered, and the remaining amplitudes set the
// gain so samples stay within [-1, 1].
func (o *Oscillator) SetComponents(comps []fourier.Component) {
	moving := make([]fourier.Component, 0, len(comps))
	amps := make([]float64, 0, len(comps))
	for _, c := range comps {
		if c.Frequency == 0 {
			continue
		}
		moving = append(moving, c)
		amps = append(amps, c.Amplitude)
	}
	total := floats.Sum(amps)
	if len(moving) == 0 || total == 0 {
		o.voice.Store(nil)
		return
	}
	o.voice.Store(&voice{comps: moving, gain: headroom / total})
}

// SweepHz returns the retrace rate.
func (o *Oscillator) SweepHz() float64 { return o.sweepHz }

// sync sets every phasor to its exact value at the current time.
func (o *Oscillator) sync(v *voice) {
	o.current = v
	o.phasors = o.phasors[:0]
	o.steps = o.steps[:0]
	if v == nil {
		return
	}
	for _, c := range v.comps {
		f := float64(c.Frequency)
		turn := fourier.Complex{Re: math.Cos(f * o.t), Im: math.Sin(f * o.t)}
		o.phasors = append(o.phasors, c.Coefficient.Mul(turn).Scale(v.gain))
		o.steps = append(o.steps, fourier.Complex{Re: math.Cos(f * o.step), Im: math.Sin(f * o.step)})
	}
}

// Frames fills dst with interleaved left/right samples and returns the
// number of frames written.
func (o *Oscillator) Frames(dst []float64) int {
	frames := len(dst) / Channels
	if v := o.voice.Load(); v != o.current {
		o.sync(v)
	}

	for i := range frames {
		var sum fourier.Complex
		for k, p := range o.phasors {
			sum = sum.Add(p)
			o.phasors[k] = p.Mul(o.steps[k])
		}
		dst[i*2] = sum.Re
		dst[i*2+1] = -sum.Im

		o.t += o.step
		if o.t > 2*math.Pi {
			o.t -= 2 * math.Pi
			// Resync once per sweep so rounding in the rotations cannot build up.
			o.sync(o.current)
		}
	}
	return frames
}

// Read implements io.Reader with signed 16-bit little-endian stereo PCM.
func (o *Oscillator) Read(p []byte) (int, error) {
	frames := len(p) / (Channels * 2)
	if frames == 0 {
		return 0, nil
	}
	if cap(o.buf) < frames*Channels {
		o.buf = make([]float64, frames*Channels)
	}
	buf := o.buf[:frames*Channels]
	o.Frames(buf)
	for i, s := range buf {
		binary.LittleEndian.PutUint16(p[i*2:], uint16(ToInt16(s)))
	}
	return frames * Channels * 2, nil
}

// ToInt16 converts a sample in [-1, 1] to 16-bit PCM, clamping overshoot.
func ToInt16(s float64) int16 {
	switch {
	case s > 1:
		s = 1
	case s < -1:
		s = -1
	}
	return int16(math.Round(s * 32767))
}
