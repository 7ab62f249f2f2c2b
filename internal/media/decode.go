package media

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
	"github.com/mewkiz/flac"
)

// PCM is decoded audio as interleaved samples in [-1, 1].
type PCM struct {
	Samples    []float64
	Channels   int
	SampleRate int
}

// Frames returns the number of sample frames.
func (p PCM) Frames() int {
	if p.Channels == 0 {
		return 0
	}
	return len(p.Samples) / p.Channels
}

// Decode reads the whole file at path, picking the decoder by extension.
// maxFrames > 0 stops decoding once that many frames are available.
func Decode(path string, maxFrames int) (PCM, error) {
	f, err := os.Open(path)
	if err != nil {
		return PCM{}, err
	}
	defer f.Close()

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".mp3":
		return decodeMP3(f, maxFrames)
	case ".wav":
		return decodeWAV(f, maxFrames)
	case ".flac":
		return decodeFLAC(f, maxFrames)
	case ".ogg":
		return decodeOGG(f, maxFrames)
	default:
		return PCM{}, fmt.Errorf("unsupported format: %s", ext)
	}
}

// fullScale returns the magnitude of full-scale PCM at the given bit depth.
func fullScale(bits int) (float64, error) {
	if bits < 1 || bits > 32 {
		return 0, fmt.Errorf("unsupported bit depth %d", bits)
	}
	return float64(int64(1) << (bits - 1)), nil
}

// limit trims interleaved samples to maxFrames frames.
func limit(samples []float64, channels, maxFrames int) []float64 {
	if maxFrames > 0 && len(samples) > maxFrames*channels {
		return samples[:maxFrames*channels]
	}
	return samples
}

// --- MP3 ---

// go-mp3 always produces 16-bit little-endian stereo.
func decodeMP3(r io.Reader, maxFrames int) (PCM, error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return PCM{}, fmt.Errorf("decoding MP3: %w", err)
	}

	var src io.Reader = dec
	if maxFrames > 0 {
		src = io.LimitReader(dec, int64(maxFrames)*4)
	}
	raw, err := io.ReadAll(src)
	if err != nil {
		return PCM{}, fmt.Errorf("decoding MP3: %w", err)
	}

	samples := make([]float64, len(raw)/2)
	for i := range samples {
		samples[i] = float64(int16(binary.LittleEndian.Uint16(raw[i*2:]))) / 32768.0
	}
	return PCM{Samples: samples, Channels: 2, SampleRate: dec.SampleRate()}, nil
}

// --- WAV ---

func decodeWAV(rs io.ReadSeeker, maxFrames int) (PCM, error) {
	dec := wav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return PCM{}, errors.New("invalid WAV file")
	}
	bitDepth := int(dec.BitDepth)
	full, err := fullScale(bitDepth)
	if err != nil {
		return PCM{}, fmt.Errorf("reading WAV: %w", err)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return PCM{}, fmt.Errorf("reading WAV PCM data: %w", err)
	}

	channels := int(dec.NumChans)
	data := buf.Data
	if maxFrames > 0 && len(data) > maxFrames*channels {
		data = data[:maxFrames*channels]
	}

	samples := make([]float64, len(data))
	for i, v := range data {
		if bitDepth == 8 {
			// 8-bit WAV is unsigned
			v -= 128
		}
		samples[i] = float64(v) / full
	}
	return PCM{Samples: samples, Channels: channels, SampleRate: int(dec.SampleRate)}, nil
}

// --- FLAC ---

func decodeFLAC(r io.Reader, maxFrames int) (PCM, error) {
	stream, err := flac.New(r)
	if err != nil {
		return PCM{}, fmt.Errorf("decoding FLAC: %w", err)
	}
	defer stream.Close()

	info := stream.Info
	channels := int(info.NChannels)
	full, err := fullScale(int(info.BitsPerSample))
	if err != nil {
		return PCM{}, fmt.Errorf("decoding FLAC: %w", err)
	}

	var samples []float64
	for maxFrames <= 0 || len(samples) < maxFrames*channels {
		frame, err := stream.ParseNext()
		if err == io.EOF {
			break
		}
		if err != nil {
			return PCM{}, fmt.Errorf("decoding FLAC frame: %w", err)
		}
		for i := 0; i < frame.Subframes[0].NSamples; i++ {
			for ch := range channels {
				samples = append(samples, float64(frame.Subframes[ch].Samples[i])/full)
			}
		}
	}
	return PCM{
		Samples:    limit(samples, channels, maxFrames),
		Channels:   channels,
		SampleRate: int(info.SampleRate),
	}, nil
}

// --- OGG Vorbis ---

func decodeOGG(r io.Reader, maxFrames int) (PCM, error) {
	reader, err := oggvorbis.NewReader(r)
	if err != nil {
		return PCM{}, fmt.Errorf("decoding OGG: %w", err)
	}

	channels := reader.Channels()
	chunk := make([]float32, 4096*channels)
	var samples []float64
	for maxFrames <= 0 || len(samples) < maxFrames*channels {
		n, err := reader.Read(chunk)
		for _, s := range chunk[:n] {
			samples = append(samples, float64(s))
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return PCM{}, fmt.Errorf("decoding OGG: %w", err)
		}
		if n == 0 {
			break
		}
	}
	return PCM{
		Samples:    limit(samples, channels, maxFrames),
		Channels:   channels,
		SampleRate: reader.SampleRate(),
	}, nil
}
