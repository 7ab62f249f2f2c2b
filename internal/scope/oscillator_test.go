package scope

import (
	"encoding/binary"
	"math"
	"testing"
	"time"

	"github.com/olivier-w/epicycles/internal/fourier"
	"github.com/olivier-w/epicycles/internal/shape"
)

func circle() []fourier.Component {
	comps, _ := fourier.Analyze([]fourier.Complex{{Re: 10}, {Im: 10}, {Re: -10}, {Im: -10}})
	return fourier.Rank(comps)
}

func TestSilentWithoutComponents(t *testing.T) {
	o := NewOscillator(0)
	if o.SweepHz() != DefaultSweepHz {
		t.Fatalf("expected default sweep rate, got %v", o.SweepHz())
	}

	buf := make([]float64, 16)
	if n := o.Frames(buf); n != 8 {
		t.Fatalf("expected 8 frames, got %d", n)
	}
	for i, s := range buf {
		if s != 0 {
			t.Fatalf("sample %d: expected silence, got %v", i, s)
		}
	}
}

func TestFramesStayWithinRange(t *testing.T) {
	o := NewOscillator(441)
	o.SetComponents(circle())

	buf := make([]float64, 2*SampleRate/100)
	o.Frames(buf)
	peak := 0.0
	for i, s := range buf {
		if math.Abs(s) > 1 {
			t.Fatalf("sample %d out of range: %v", i, s)
		}
		peak = math.Max(peak, math.Abs(s))
	}
	if math.Abs(peak-headroom) > 1e-3 {
		t.Fatalf("expected peak near %v, got %v", headroom, peak)
	}
}

func TestFirstFrameMatchesSynthesis(t *testing.T) {
	o := NewOscillator(50)
	o.SetComponents(circle())

	buf := make([]float64, 2)
	o.Frames(buf)
	if math.Abs(buf[0]-headroom) > 1e-9 || math.Abs(buf[1]) > 1e-9 {
		t.Fatalf("expected (%v, 0), got (%v, %v)", headroom, buf[0], buf[1])
	}
}

func TestDropsConstantTerm(t *testing.T) {
	o := NewOscillator(50)
	o.SetComponents([]fourier.Component{{Frequency: 0, Amplitude: 5}})
	if o.voice.Load() != nil {
		t.Fatal("expected a constant-only path to stay silent")
	}
}

func TestReadProducesPCM(t *testing.T) {
	o := NewOscillator(50)
	o.SetComponents(circle())

	p := make([]byte, 4*10+3)
	n, err := o.Read(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 40 {
		t.Fatalf("expected 40 bytes, got %d", n)
	}
	left := int16(binary.LittleEndian.Uint16(p[0:]))
	if left != ToInt16(headroom) {
		t.Fatalf("expected first left sample %d, got %d", ToInt16(headroom), left)
	}
}

func TestToInt16Clamps(t *testing.T) {
	if ToInt16(2) != 32767 || ToInt16(-2) != -32767 {
		t.Fatalf("unexpected clamp: %d %d", ToInt16(2), ToInt16(-2))
	}
	if ToInt16(0) != 0 {
		t.Fatalf("expected 0, got %d", ToInt16(0))
	}
}

func triforce(t *testing.T) []fourier.Component {
	t.Helper()
	comps, err := fourier.Analyze(fourier.FromPoints(shape.Triforce(160, 160)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return fourier.Rank(comps)
}

func TestFramesTrackEvaluation(t *testing.T) {
	ranked := triforce(t)
	o := NewOscillator(50)
	o.SetComponents(ranked)
	v := o.voice.Load()

	// Three sweeps, so the per-sweep resync is crossed.
	frames := 3 * SampleRate / 50
	buf := make([]float64, frames*Channels)
	o.Frames(buf)

	step := 2 * math.Pi * 50 / SampleRate
	tt := 0.0
	for i := range frames {
		want := fourier.Evaluate(v.comps, tt, 0, fourier.Point{})
		if math.Abs(buf[i*2]-want.X*v.gain) > 1e-9 || math.Abs(buf[i*2+1]+want.Y*v.gain) > 1e-9 {
			t.Fatalf("frame %d: expected (%v, %v), got (%v, %v)", i, want.X*v.gain, -want.Y*v.gain, buf[i*2], buf[i*2+1])
		}
		tt += step
		if tt > 2*math.Pi {
			tt -= 2 * math.Pi
		}
	}
}

func TestFramesRenderFasterThanRealTime(t *testing.T) {
	o := NewOscillator(0)
	o.SetComponents(triforce(t))

	buf := make([]float64, SampleRate*Channels)
	start := time.Now()
	o.Frames(buf)
	if took := time.Since(start); took > 500*time.Millisecond {
		t.Fatalf("1s of audio took %v to render", took)
	}
}

func TestSwapComponentsMidStream(t *testing.T) {
	o := NewOscillator(50)
	o.SetComponents(circle())
	buf := make([]float64, 200)
	o.Frames(buf)

	o.SetComponents(nil)
	o.Frames(buf)
	for i, s := range buf {
		if s != 0 {
			t.Fatalf("sample %d: expected silence after clearing, got %v", i, s)
		}
	}
}
