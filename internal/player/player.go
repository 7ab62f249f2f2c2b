// Package player plays an epicycle reconstruction through the audio device
// so it can be watched on an XY oscilloscope or just heard.
package player

import (
	"io"
	"sync"

	"github.com/ebitengine/oto/v3"
	"github.com/olivier-w/epicycles/internal/scope"
)

const defaultVolume = 0.5

// output is the part of *oto.Player the Player drives.
type output interface {
	Play()
	Pause()
	SetVolume(float64)
	Close() error
}

// Player streams an oscillator to the audio device.
type Player struct {
	out    output
	volume float64
	paused bool
	closed bool
	mu     sync.Mutex
}

var (
	globalOtoCtx *oto.Context
	otoOnce      sync.Once
	otoInitErr   error
)

func initOto() (*oto.Context, error) {
	otoOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   scope.SampleRate,
			ChannelCount: scope.Channels,
			Format:       oto.FormatSignedInt16LE,
		}
		var ready chan struct{}
		globalOtoCtx, ready, otoInitErr = oto.NewContext(op)
		if otoInitErr == nil {
			<-ready
		}
	})
	return globalOtoCtx, otoInitErr
}

// New opens the audio device and starts playing src, which must produce
// signed 16-bit little-endian stereo PCM at scope.SampleRate.
func New(src io.Reader) (*Player, error) {
	ctx, err := initOto()
	if err != nil {
		return nil, err
	}

	op := ctx.NewPlayer(src)
	p := newPlayer(op)
	op.Play()
	return p, nil
}

func newPlayer(out output) *Player {
	p := &Player{out: out, volume: defaultVolume}
	out.SetVolume(p.volume)
	return p
}

// TogglePause toggles between play and pause.
func (p *Player) TogglePause() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	if p.paused {
		p.out.Play()
		p.paused = false
	} else {
		p.out.Pause()
		p.paused = true
	}
}

// Paused returns whether playback is paused.
func (p *Player) Paused() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.paused
}

// Volume returns current volume (0.0 to 1.0).
func (p *Player) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume
}

// SetVolume sets volume (clamped to 0.0 - 1.0).
func (p *Player) SetVolume(v float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	p.volume = v
	p.out.SetVolume(v)
}

// AdjustVolume adjusts volume by delta.
func (p *Player) AdjustVolume(delta float64) {
	p.mu.Lock()
	v := p.volume + delta
	p.mu.Unlock()
	p.SetVolume(v)
}

// Close stops playback and releases the device player.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true
	p.out.Pause()
	return p.out.Close()
}
