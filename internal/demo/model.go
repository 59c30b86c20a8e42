// Package demo is a terminal document viewer whose viewport is animated
// by the scroll controller. It exists to exercise the controller against
// a real host: it supplies the geometry and viewport-write collaborators
// over an in-memory document and wires keys to every scroll operation.
package demo

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/ojwest/springscroll/scroll"
	"github.com/ojwest/springscroll/spring"
)

// chromeRows is the status bar plus the help line.
const chromeRows = 2

// Config is the demo's launch configuration.
type Config struct {
	Strength float64
	Dampness float64
	FPS      int
	File     string
}

// Model is the Bubble Tea model for the viewer.
type Model struct {
	view     *viewState
	ctrl     scroll.Model
	gauge    progress.Model
	glow     glow
	fps      int
	ready    bool
	quitting bool
}

// New creates the viewer, loading cfg.File or falling back to the
// built-in sample document.
func New(cfg Config, logger *zap.Logger) (Model, error) {
	doc := buildSample()
	if cfg.File != "" {
		var err error
		if doc, err = loadDocument(cfg.File); err != nil {
			return Model{}, err
		}
	}

	vs := &viewState{doc: doc}
	ctrl := scroll.New(docGeometry{vs: vs}, docWriter{vs: vs},
		scroll.WithSettings(spring.Settings{Strength: cfg.Strength, Dampness: cfg.Dampness}),
		scroll.WithFPS(cfg.FPS),
		scroll.WithLogger(logger),
	)

	g := progress.New(
		progress.WithScaledGradient("#FF8C00", "#FF5F1F"),
		progress.WithoutPercentage(),
	)

	return Model{
		view:  vs,
		ctrl:  ctrl,
		gauge: g,
		glow:  newGlow(cfg.FPS),
		fps:   cfg.FPS,
	}, nil
}

func (m Model) Init() tea.Cmd {
	return tea.SetWindowTitle("springscroll")
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m.handleMsg(msg)
}

func (m Model) handleMsg(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.view.width = msg.Width
		m.view.height = max(msg.Height-chromeRows, 1)
		m.gauge.Width = min(max(msg.Width-34, 10), 40)
		m.ready = true
		return m, nil

	case glowTickMsg:
		m.glow = m.glow.step()
		if m.glow.active() {
			return m, glowTickCmd(m.fps)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.ctrl, cmd = m.ctrl.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if isQuit(msg) {
		m.quitting = true
		return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
	}

	key := msg.String()
	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		n := int(key[0] - '0')
		if n > len(m.view.doc.sections) {
			return m, nil
		}
		return m.flashAndScroll(n, m.ctrl.ScrollTo(sectionID(n)))
	}

	switch key {
	case "g", "home":
		return m, m.ctrl.ScrollToTop()

	case "G", "end":
		return m, m.ctrl.ScrollToCustomNoElement(func(vp scroll.Viewport) scroll.Span {
			return scroll.Span{
				From: scroll.Point{X: vp.ScrollX, Y: vp.ScrollY},
				To:   scroll.Point{X: vp.ScrollX, Y: vp.SceneHeight - vp.ViewportHeight},
			}
		})

	case "c":
		n := m.view.doc.sectionAt(int(m.view.y) + m.view.height/2)
		if n == 0 {
			return m, nil
		}
		return m.flashAndScroll(n, m.ctrl.ScrollToCustom(centerSpan, sectionID(n)))

	case "esc":
		m.ctrl = m.ctrl.Cancel()
		return m, nil

	// Native movement, bypassing the controller entirely. The next
	// animated scroll starts from wherever these keys left the view.
	case "j", "down":
		m.view.y = clamp(m.view.y+1, 0, float64(len(m.view.doc.lines)-m.view.height))
	case "k", "up":
		m.view.y = clamp(m.view.y-1, 0, float64(len(m.view.doc.lines)-m.view.height))
	case "pgdown":
		m.view.y = clamp(m.view.y+float64(m.view.height), 0, float64(len(m.view.doc.lines)-m.view.height))
	case "pgup":
		m.view.y = clamp(m.view.y-float64(m.view.height), 0, float64(len(m.view.doc.lines)-m.view.height))
	case "l":
		m.view.x = clamp(m.view.x+2, 0, float64(m.view.doc.width-m.view.width))
	case "h":
		m.view.x = clamp(m.view.x-2, 0, float64(m.view.doc.width-m.view.width))
	}
	return m, nil
}

// flashAndScroll lights the target section's glow and issues the scroll.
// A glow tick is requested only on the inactive edge, so at most one
// tick loop runs no matter how quickly sections are flashed.
func (m Model) flashAndScroll(section int, cmd tea.Cmd) (Model, tea.Cmd) {
	wasGlowing := m.glow.active()
	m.glow = m.glow.flash(section)
	if wasGlowing {
		return m, cmd
	}
	return m, tea.Batch(cmd, glowTickCmd(m.fps))
}

func sectionID(n int) string {
	return fmt.Sprintf("section-%d", n)
}

// centerSpan puts the element's vertical middle at the viewport's
// vertical middle, leaving the horizontal position alone.
func centerSpan(vp scroll.Viewport, el scroll.Element) scroll.Span {
	y := el.Y + el.Height/2 - vp.ViewportHeight/2
	return scroll.Span{
		From: scroll.Point{X: vp.ScrollX, Y: vp.ScrollY},
		To:   scroll.Point{X: vp.ScrollX, Y: clamp(y, 0, vp.SceneHeight-vp.ViewportHeight)},
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "\n  measuring window..."
	}

	vs := m.view
	top := int(vs.y)
	var b strings.Builder
	for row := 0; row < vs.height; row++ {
		if idx := top + row; idx >= 0 && idx < len(vs.doc.lines) {
			b.WriteString(m.renderLine(idx))
		}
		b.WriteByte('\n')
	}
	b.WriteString(m.statusLine())
	b.WriteByte('\n')
	b.WriteString("  " + helpStyle.Render(helpText()))
	return b.String()
}

func (m Model) renderLine(idx int) string {
	vs := m.view
	runes := []rune(vs.doc.lines[idx])
	off := int(vs.x)
	if off >= len(runes) {
		return ""
	}
	runes = runes[off:]
	if len(runes) > vs.width {
		runes = runes[:vs.width]
	}
	line := string(runes)

	for i, sec := range vs.doc.sections {
		if sec.line != idx {
			continue
		}
		switch {
		case m.glow.section == i+1 && m.glow.intensity > 0.5:
			return glowHotStyle.Render(line)
		case m.glow.section == i+1 && m.glow.intensity > 0:
			return glowWarmStyle.Render(line)
		default:
			return headerStyle.Render(line)
		}
	}
	return line
}

func (m Model) statusLine() string {
	vs := m.view
	span := float64(len(vs.doc.lines) - vs.height)
	frac := 0.0
	if span > 0 {
		frac = clamp(vs.y/span, 0, 1)
	}

	state := "○ idle"
	if m.ctrl.IsScrolling() {
		state = "● scrolling"
	}
	sec := vs.doc.sectionAt(int(vs.y))
	pos := fmt.Sprintf("§%d  row %d/%d", sec, int(vs.y)+1, len(vs.doc.lines))

	return fmt.Sprintf("  %s  %s  %s",
		m.gauge.ViewAs(frac),
		statusStyle.Render(state),
		statusStyle.Render(pos))
}
