package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/olivier-w/epicycles/internal/playback"
)

func renderTerms(active, total int) string {
	return fmt.Sprintf("terms %d/%d", active, total)
}

func renderState(state playback.State, paused bool) string {
	switch {
	case state == playback.StateCapturing:
		return "● drawing"
	case paused:
		return "❚❚ paused"
	default:
		return "▶ tracing"
	}
}

func renderAudio(out audioOutput) string {
	switch {
	case out == nil:
		return "audio off"
	case out.Paused():
		return fmt.Sprintf("audio paused  vol %d%%", int(math.Round(out.Volume()*100)))
	default:
		return fmt.Sprintf("audio on  vol %d%%", int(math.Round(out.Volume()*100)))
	}
}

// joinRight lays out left and right on one line of width w.
func joinRight(left, right string, w int) string {
	gap := max(w-lipgloss.Width(left)-lipgloss.Width(right), 2)
	return left + strings.Repeat(" ", gap) + right
}
