package demo

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
)

// glow is the fading highlight on the section a scroll was aimed at.
// It runs on its own harmonica spring at a fixed frame rate, decaying
// from full intensity toward zero once flashed.
type glow struct {
	spring    harmonica.Spring
	intensity float64
	vel       float64
	section   int // 1-based, 0 when nothing is highlighted
}

func newGlow(fps int) glow {
	return glow{spring: harmonica.NewSpring(harmonica.FPS(fps), 1.2, 1.0)}
}

func (g glow) flash(section int) glow {
	g.section = section
	g.intensity = 1
	g.vel = 0
	return g
}

func (g glow) step() glow {
	g.intensity, g.vel = g.spring.Update(g.intensity, g.vel, 0)
	if g.intensity < 0.02 {
		g.intensity = 0
		g.section = 0
	}
	return g
}

func (g glow) active() bool {
	return g.section != 0
}

type glowTickMsg time.Time

func glowTickCmd(fps int) tea.Cmd {
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg {
		return glowTickMsg(t)
	})
}
