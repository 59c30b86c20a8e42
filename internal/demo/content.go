package demo

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ojwest/springscroll/scroll"
)

// errNotMeasured is returned by geometry queries before the first
// WindowSizeMsg arrives. The controller treats it as any other geometry
// failure: the scroll silently does not happen.
var errNotMeasured = errors.New("window not measured yet")

// section is an addressable region of the document. Its element id is
// "section-N" with N counted from 1.
type section struct {
	title string
	line  int // header line index within the document
	count int // lines including the header
}

type document struct {
	lines    []string
	sections []section
	width    int // widest line in runes
}

// viewState is the scroll position and window measurements shared by
// the demo model, its geometry provider and its viewport writer. All
// three run on the Bubble Tea dispatch loop, so the pointer is never
// touched concurrently.
type viewState struct {
	x, y   float64
	width  int
	height int // content rows, excluding the status chrome
	doc    document
}

// docGeometry measures the document in terminal cells: a row is the
// vertical unit, a column the horizontal one.
type docGeometry struct {
	vs *viewState
}

func (g docGeometry) Viewport() (scroll.Viewport, error) {
	if g.vs.height <= 0 || g.vs.width <= 0 {
		return scroll.Viewport{}, errNotMeasured
	}
	return scroll.Viewport{
		ScrollX:        g.vs.x,
		ScrollY:        g.vs.y,
		ViewportWidth:  float64(g.vs.width),
		ViewportHeight: float64(g.vs.height),
		SceneWidth:     float64(g.vs.doc.width),
		SceneHeight:    float64(len(g.vs.doc.lines)),
	}, nil
}

func (g docGeometry) Element(id string) (scroll.Element, error) {
	n, ok := strings.CutPrefix(id, "section-")
	if !ok {
		return scroll.Element{}, fmt.Errorf("unknown element %q", id)
	}
	i, err := strconv.Atoi(n)
	if err != nil || i < 1 || i > len(g.vs.doc.sections) {
		return scroll.Element{}, fmt.Errorf("no such section %q", id)
	}
	sec := g.vs.doc.sections[i-1]
	return scroll.Element{
		Y:      float64(sec.line),
		Width:  float64(g.vs.doc.width),
		Height: float64(sec.count),
	}, nil
}

// docWriter applies animated scroll positions, clamped into the scene.
type docWriter struct {
	vs *viewState
}

func (w docWriter) SetViewport(x, y float64) error {
	w.vs.x = clamp(x, 0, float64(w.vs.doc.width-w.vs.width))
	w.vs.y = clamp(y, 0, float64(len(w.vs.doc.lines)-w.vs.height))
	return nil
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// sectionAt returns the 1-based section covering the given line, or 0.
func (d document) sectionAt(line int) int {
	for i := len(d.sections) - 1; i >= 0; i-- {
		if d.sections[i].line <= line {
			return i + 1
		}
	}
	return 0
}

var sampleTitles = []string{
	"Overview",
	"Springs, Not Tweens",
	"Retargeting In Flight",
	"Measuring Geometry",
	"The Frame Clock",
	"Resting and Snapping",
	"Cancellation",
	"Out-of-Band Movement",
	"Tuning",
}

var sampleBody = []string{
	"A scroll that glides keeps the reader oriented; a scroll that",
	"jumps makes them hunt for their place. The viewport here is",
	"pulled toward its destination by a damped spring, so the motion",
	"starts briskly, eases as it arrives, and never takes a fixed",
	"amount of wall-clock time.",
	"",
	"Press a digit to fly to that section. Press another digit while",
	"the view is still moving and watch the motion bend toward the",
	"new destination without a hitch: the spring keeps its velocity",
	"and only its target changes.",
	"",
	"Drag the view with j and k, then jump somewhere. The animation",
	"starts from wherever you left the viewport, not from where it",
	"last came to rest.",
	"",
}

// buildSample generates the demo document: numbered section headers
// with rotated filler paragraphs between them.
func buildSample() document {
	var d document
	for i, title := range sampleTitles {
		header := fmt.Sprintf("%d. %s", i+1, title)
		start := len(d.lines)
		d.lines = append(d.lines, header, strings.Repeat("─", len(header)))
		for j := 0; j < 3; j++ {
			off := (i*7 + j*5) % len(sampleBody)
			d.lines = append(d.lines, sampleBody[off:]...)
			d.lines = append(d.lines, sampleBody[:off]...)
		}
		d.sections = append(d.sections, section{
			title: title,
			line:  start,
			count: len(d.lines) - start,
		})
	}
	d.measure()
	return d
}

// loadDocument reads a file and splits it into equally sized sections
// so every part of it is addressable.
func loadDocument(path string) (document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return document{}, fmt.Errorf("load document: %w", err)
	}
	var d document
	d.lines = strings.Split(strings.ReplaceAll(string(raw), "\t", "    "), "\n")

	const linesPerSection = 40
	for start := 0; start < len(d.lines); start += linesPerSection {
		count := min(linesPerSection, len(d.lines)-start)
		d.sections = append(d.sections, section{
			title: fmt.Sprintf("lines %d-%d", start+1, start+count),
			line:  start,
			count: count,
		})
	}
	d.measure()
	return d, nil
}

func (d *document) measure() {
	for _, l := range d.lines {
		if n := len([]rune(l)); n > d.width {
			d.width = n
		}
	}
}
