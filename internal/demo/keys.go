package demo

import tea "github.com/charmbracelet/bubbletea"

func isQuit(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "q", "ctrl+c":
		return true
	}
	return false
}

func helpText() string {
	return "1-9 section  g top  G bottom  c center  j/k drag  esc stop  q quit"
}
