package visualizer

import (
	"math"
	"strings"
)

var barChars = []rune(" ▁▂▃▄▅▆▇█")

// Spectrum renders the ranked amplitudes as vertical bars, largest first.
// Bars past the active term count are drawn dimmed.
type Spectrum struct {
	springs springField
	output  string
	profile colorProfile
}

// NewSpectrum creates a spectrum visualizer updated fps times a second.
func NewSpectrum(fps int) *Spectrum {
	return &Spectrum{
		springs: newSpringField(max(fps, 1), 8.0, 0.8),
		profile: currentColorProfile(),
	}
}

func (s *Spectrum) Name() string { return "spectrum" }

func (s *Spectrum) Update(scene Scene, width, height int) {
	height = max(height, 1)
	cols := max(width, 1)

	bars := min(len(scene.Ranked), cols)
	s.springs.resize(bars)
	if bars == 0 {
		s.output = strings.TrimRight(strings.Repeat(strings.Repeat(" ", cols)+"\n", height), "\n")
		return
	}

	peak := 0.0
	for _, c := range scene.Ranked[:bars] {
		peak = math.Max(peak, c.Amplitude)
	}
	active := len(scene.active())

	levels := make([]float64, bars)
	for i, c := range scene.Ranked[:bars] {
		target := 0.0
		if peak > 0 {
			// sqrt keeps the long tail of small terms visible
			target = math.Sqrt(c.Amplitude / peak)
		}
		levels[i] = clamp01(s.springs.step(i, target))
	}

	var out strings.Builder
	color := ansiState{profile: s.profile, current: ^uint32(0)}
	for row := range height {
		if row > 0 {
			out.WriteByte('\n')
		}
		rowFromBottom := float64(height - 1 - row)
		for col := range cols {
			if col >= bars {
				out.WriteByte(' ')
				continue
			}
			fill := levels[col]*float64(height) - rowFromBottom
			idx := int(clamp01(fill) * float64(len(barChars)-1))
			if idx == 0 {
				out.WriteByte(' ')
				continue
			}
			c := heatColor(levels[col])
			if col >= active {
				c = idleColor
			}
			color.set(&out, c)
			out.WriteRune(barChars[idx])
		}
		color.reset(&out)
	}
	s.output = out.String()
}

func (s *Spectrum) View() string {
	return s.output
}
