package scroll

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// frameMsg is one display-refresh notification carrying its delivery
// time. Requested one-shot; the controller re-requests it from Tick
// while any spring is still moving.
type frameMsg time.Time

// geometryResolvedMsg carries a resolved scroll movement. gen is the
// controller generation captured when the query was issued; Cancel
// bumps the generation, so a response from before a cancel is dropped.
type geometryResolvedMsg struct {
	gen  uint64
	span Span
}

// geometryFailedMsg reports an element lookup or viewport measurement
// failure. Non-fatal: the scroll silently does not happen.
type geometryFailedMsg struct {
	err error
}

func (m Model) nextFrame() tea.Cmd {
	return tea.Tick(m.frameInterval(), func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}
