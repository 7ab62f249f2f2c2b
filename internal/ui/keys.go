package ui

import tea "github.com/charmbracelet/bubbletea"

func isQuit(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return true
	}
	return false
}

func helpText(capturing bool) string {
	if capturing {
		return "release to analyse the drawing"
	}
	return "drag draw  right-click anchor  space pause  +/- terms  0 all  r/R rotate  x restart  v view  a audio  ↑/↓ volume  e png  w wav  q quit"
}
