package demo

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/ojwest/springscroll/scroll"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	m, err := New(Config{Strength: 100, Dampness: 4.5, FPS: 60}, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	m, _ = m.handleMsg(tea.WindowSizeMsg{Width: 80, Height: 26})
	return m
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestWindowSizeMeasuresContentArea(t *testing.T) {
	m := newTestModel(t)
	if !m.ready {
		t.Fatal("expected model ready after sizing")
	}
	if m.view.width != 80 || m.view.height != 24 {
		t.Fatalf("expected 80x24 content area, got %dx%d", m.view.width, m.view.height)
	}
}

func TestDigitKeyStartsScrollAndGlow(t *testing.T) {
	m := newTestModel(t)

	m, cmd := m.handleKey(key("3"))
	if cmd == nil {
		t.Fatal("expected a command from the section key")
	}
	if m.glow.section != 3 {
		t.Fatalf("expected glow on section 3, got %d", m.glow.section)
	}
	if m.glow.intensity != 1 {
		t.Fatalf("expected full glow, got %v", m.glow.intensity)
	}
}

func TestDigitKeyBeyondLastSectionDoesNothing(t *testing.T) {
	m := newTestModel(t)
	// The sample document has exactly nine sections; shrink it.
	m.view.doc.sections = m.view.doc.sections[:2]

	m, cmd := m.handleKey(key("5"))
	if cmd != nil {
		t.Fatal("expected no command for a missing section")
	}
	if m.glow.active() {
		t.Fatal("expected no glow for a missing section")
	}
}

func TestNativeKeysMoveViewDirectly(t *testing.T) {
	m := newTestModel(t)

	m, _ = m.handleKey(key("j"))
	m, _ = m.handleKey(key("j"))
	if m.view.y != 2 {
		t.Fatalf("expected y 2 after two steps, got %v", m.view.y)
	}
	m, _ = m.handleKey(key("k"))
	if m.view.y != 1 {
		t.Fatalf("expected y 1 after stepping back, got %v", m.view.y)
	}
	if m.ctrl.IsScrolling() {
		t.Fatal("expected native movement to leave the controller idle")
	}
}

func TestScrollStartsFromNativePosition(t *testing.T) {
	m := newTestModel(t)
	m.view.y = 30 // dragged out of band

	_, cmd := m.handleKey(key("g"))
	if cmd == nil {
		t.Fatal("expected a geometry command")
	}
	m, _ = m.handleMsg(cmd())
	if got := m.ctrl.Position(scroll.AxisY); got != 30 {
		t.Fatalf("expected animation to start from 30, got %v", got)
	}
	if got := m.ctrl.Target(scroll.AxisY); got != 0 {
		t.Fatalf("expected target 0, got %v", got)
	}
	if !m.ctrl.IsScrolling() {
		t.Fatal("expected controller to be scrolling")
	}
}

func TestEscCancelsAnimation(t *testing.T) {
	m := newTestModel(t)
	m.view.y = 30

	_, cmd := m.handleKey(key("g"))
	m, _ = m.handleMsg(cmd())
	if !m.ctrl.IsScrolling() {
		t.Fatal("expected controller to be scrolling")
	}

	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyEsc})
	if m.ctrl.IsScrolling() {
		t.Fatal("expected esc to stop the animation")
	}
}

func TestGlowTicksUntilFaded(t *testing.T) {
	m := newTestModel(t)
	m, _ = m.handleKey(key("2"))

	ticks := 0
	for m.glow.active() {
		var cmd tea.Cmd
		m, cmd = m.handleMsg(glowTickMsg{})
		ticks++
		if !m.glow.active() {
			if cmd != nil {
				t.Fatal("expected no further tick once faded")
			}
			break
		}
		if cmd == nil {
			t.Fatal("expected another tick while glowing")
		}
		if ticks > 1000 {
			t.Fatal("glow never faded")
		}
	}
}

func TestCenterKeyTargetsSectionUnderView(t *testing.T) {
	m := newTestModel(t)
	sec := m.view.doc.sections[3]
	m.view.y = float64(sec.line + 1)

	m, cmd := m.handleKey(key("c"))
	if cmd == nil {
		t.Fatal("expected a command from the center key")
	}
	if m.glow.section != 4 {
		t.Fatalf("expected glow on section 4, got %d", m.glow.section)
	}
}

func TestQuitKey(t *testing.T) {
	m := newTestModel(t)
	m, cmd := m.handleKey(key("q"))
	if !m.quitting {
		t.Fatal("expected quitting state")
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if m.View() != "" {
		t.Fatal("expected empty view while quitting")
	}
}

func TestViewShowsHelpAndStatus(t *testing.T) {
	m := newTestModel(t)
	view := m.View()
	if !strings.Contains(view, "1-9 section") {
		t.Fatal("expected help text in view")
	}
	if !strings.Contains(view, "idle") {
		t.Fatal("expected idle status in view")
	}
	if got := strings.Count(view, "\n"); got != 25 {
		t.Fatalf("expected 25 newlines for a 26-row window, got %d", got)
	}
}
