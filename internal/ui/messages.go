package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type frameMsg time.Time

type exportKind string

const (
	exportPNG exportKind = "PNG"
	exportWAV exportKind = "WAV"
)

type exportDoneMsg struct {
	kind exportKind
	path string
	err  error
}

type audioStartedMsg struct {
	player audioOutput
	err    error
}

func frameCmd(fps int) tea.Cmd {
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}
