package export

import (
	"errors"
	"io"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/olivier-w/epicycles/internal/scope"
)

const (
	wavBitDepth = 16
	wavPCM      = 1
)

// WriteWAVFile renders seconds of oscillator output to a WAV file.
func WriteWAVFile(path string, osc *scope.Oscillator, seconds float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteWAV(f, osc, seconds); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteWAV encodes seconds of oscillator output as 16-bit stereo PCM.
func WriteWAV(w io.WriteSeeker, osc *scope.Oscillator, seconds float64) error {
	if seconds <= 0 {
		return errors.New("export: WAV duration must be positive")
	}
	frames := int(seconds * scope.SampleRate)

	samples := make([]float64, frames*scope.Channels)
	osc.Frames(samples)

	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = int(scope.ToInt16(s))
	}

	enc := wav.NewEncoder(w, scope.SampleRate, wavBitDepth, scope.Channels, wavPCM)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: scope.Channels, SampleRate: scope.SampleRate},
		Data:           data,
		SourceBitDepth: wavBitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return err
	}
	return enc.Close()
}
