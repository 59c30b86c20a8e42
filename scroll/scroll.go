// Package scroll animates a host viewport toward scroll targets with
// spring physics. It is a Bubble Tea component: the host embeds the
// Model in its own model, routes every message through Update, and
// supplies geometry measurement and the viewport write as collaborators.
//
// There is no fixed duration. Each scrolled axis owns a damped spring;
// a scroll request retargets the springs and the animation runs until
// every spring is at rest. A second request issued mid-flight bends the
// motion toward the new destination without any velocity discontinuity.
package scroll

import (
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/ojwest/springscroll/spring"
)

const defaultFPS = 60

// Model is the scroll animation state. It is a value: Update, Tick and
// Cancel return the successor state and never mutate the receiver.
//
// Whether a frame notification is pending is never stored; it is always
// derived from spring rest state, so the subscription cannot drift out
// of sync with the springs.
type Model struct {
	springs map[Axis]spring.Spring
	geo     Geometry
	writer  Writer
	logger  *zap.Logger
	fps     int

	// gen tags geometry queries; Cancel bumps it to invalidate
	// responses still in flight.
	gen uint64

	lastFrame time.Time

	// Write coordinates for axes the controller does not animate,
	// held from the most recent geometry measurement.
	heldX, heldY float64
}

// Option configures a Model.
type Option func(*Model)

// WithSettings tunes every spring.
func WithSettings(s spring.Settings) Option {
	return func(m *Model) {
		for a := range m.springs {
			m.springs[a] = spring.New(s)
		}
	}
}

// WithAxes restricts the controller to the given axes. The default is
// both; WithAxes(AxisY) gives a vertical-only scroller.
func WithAxes(axes ...Axis) Option {
	return func(m *Model) {
		springs := make(map[Axis]spring.Spring, len(axes))
		for _, a := range axes {
			if s, ok := m.springs[a]; ok {
				springs[a] = s
			} else {
				springs[a] = spring.New(spring.DefaultSettings())
			}
		}
		m.springs = springs
	}
}

// WithFPS sets the animation frame rate.
func WithFPS(fps int) Option {
	return func(m *Model) {
		if fps > 0 {
			m.fps = fps
		}
	}
}

// WithLogger sets the logger for swallowed failures (geometry queries,
// viewport writes). The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// New creates an idle controller over both axes.
func New(geo Geometry, w Writer, opts ...Option) Model {
	m := Model{
		springs: map[Axis]spring.Spring{
			AxisX: spring.New(spring.DefaultSettings()),
			AxisY: spring.New(spring.DefaultSettings()),
		},
		geo:    geo,
		writer: w,
		logger: zap.NewNop(),
		fps:    defaultFPS,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

func (m Model) frameInterval() time.Duration {
	return time.Second / time.Duration(m.fps)
}

func (m Model) frameMillis() float64 {
	return 1000 / float64(m.fps)
}

// eachSpring applies f to every spring, cloning the map so the
// successor model shares no state with the receiver.
func (m Model) eachSpring(f func(Axis, spring.Spring) spring.Spring) Model {
	next := make(map[Axis]spring.Spring, len(m.springs))
	for a, s := range m.springs {
		next[a] = f(a, s)
	}
	m.springs = next
	return m
}

// IsScrolling reports whether any spring is still moving. Derived from
// rest state on every call, never cached.
func (m Model) IsScrolling() bool {
	for _, s := range m.springs {
		if !s.AtRest(m.frameMillis()) {
			return true
		}
	}
	return false
}

// Position returns the current animated position on a, or 0 if the
// controller does not own that axis.
func (m Model) Position(a Axis) float64 {
	return m.springs[a].Value()
}

// Target returns the current destination on a.
func (m Model) Target(a Axis) float64 {
	return m.springs[a].Target()
}

// Velocity returns the current velocity on a in units per second.
func (m Model) Velocity(a Axis) float64 {
	return m.springs[a].Velocity()
}

// ScrollTo starts scrolling so the element's top edge reaches the top
// of the viewport, clamped so the viewport never runs past the end of
// the scene. The horizontal position is left where it is. The returned
// command measures geometry asynchronously; if the element cannot be
// found the scroll silently does not happen.
func (m Model) ScrollTo(elementID string) tea.Cmd {
	geo := m.geo
	return m.geometryCmd(func() (Span, error) {
		vp, err := geo.Viewport()
		if err != nil {
			return Span{}, err
		}
		el, err := geo.Element(elementID)
		if err != nil {
			return Span{}, err
		}
		from := Point{X: vp.ScrollX, Y: vp.ScrollY}
		to := Point{X: vp.ScrollX, Y: math.Min(el.Y, vp.SceneHeight-vp.ViewportHeight)}
		return Span{From: from, To: to}, nil
	})
}

// ScrollToTop scrolls to the top of the scene, leaving the horizontal
// position where it is.
func (m Model) ScrollToTop() tea.Cmd {
	geo := m.geo
	return m.geometryCmd(func() (Span, error) {
		vp, err := geo.Viewport()
		if err != nil {
			return Span{}, err
		}
		from := Point{X: vp.ScrollX, Y: vp.ScrollY}
		return Span{From: from, To: Point{X: vp.ScrollX, Y: 0}}, nil
	})
}

// ScrollToCustom measures the viewport and the element and hands both
// to fn, which decides the start and destination on both axes.
func (m Model) ScrollToCustom(fn CustomFunc, elementID string) tea.Cmd {
	geo := m.geo
	return m.geometryCmd(func() (Span, error) {
		vp, err := geo.Viewport()
		if err != nil {
			return Span{}, err
		}
		el, err := geo.Element(elementID)
		if err != nil {
			return Span{}, err
		}
		return fn(vp, el), nil
	})
}

// ScrollToCustomNoElement is ScrollToCustom without an element lookup,
// for destinations given in absolute scene coordinates.
func (m Model) ScrollToCustomNoElement(fn CustomViewportFunc) tea.Cmd {
	geo := m.geo
	return m.geometryCmd(func() (Span, error) {
		vp, err := geo.Viewport()
		if err != nil {
			return Span{}, err
		}
		return fn(vp), nil
	})
}

func (m Model) geometryCmd(query func() (Span, error)) tea.Cmd {
	gen := m.gen
	return func() tea.Msg {
		sp, err := query()
		if err != nil {
			return geometryFailedMsg{err: err}
		}
		return geometryResolvedMsg{gen: gen, span: sp}
	}
}

// Cancel stops the animation immediately by jumping every spring to its
// own current target. Synchronous; it also invalidates any geometry
// query still in flight, so a request issued before the cancel can
// never restart motion afterwards.
func (m Model) Cancel() Model {
	m.gen++
	m.lastFrame = time.Time{}
	return m.eachSpring(func(_ Axis, s spring.Spring) spring.Spring {
		return s.JumpTo(s.Target())
	})
}

// Update routes the controller's messages. Messages it does not own
// return the model unchanged, so the host can forward its entire
// message stream.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case geometryResolvedMsg:
		return m.applySpan(msg)

	case geometryFailedMsg:
		m.logger.Debug("scroll geometry query failed", zap.Error(msg.err))
		return m, nil

	case frameMsg:
		if !m.IsScrolling() {
			// Settled or cancelled since this frame was requested.
			return m, nil
		}
		now := time.Time(msg)
		delta := m.frameMillis()
		if !m.lastFrame.IsZero() {
			delta = float64(now.Sub(m.lastFrame)) / float64(time.Millisecond)
		}
		m.lastFrame = now
		return m.Tick(delta)
	}

	return m, nil
}

// applySpan folds a resolved scroll request into the springs.
//
// Idle: each spring first jumps to the freshly measured position —
// correcting for any out-of-band scrolling that happened while idle —
// then takes the destination as its target, and the frame loop starts.
//
// Animating: only the targets change, preserving position and velocity,
// so the in-flight motion bends toward the new destination. The frame
// loop is already running, so no new frame is requested.
func (m Model) applySpan(msg geometryResolvedMsg) (Model, tea.Cmd) {
	if msg.gen != m.gen {
		m.logger.Debug("dropping cancelled scroll geometry", zap.Uint64("gen", msg.gen))
		return m, nil
	}

	wasScrolling := m.IsScrolling()
	m = m.eachSpring(func(a Axis, s spring.Spring) spring.Spring {
		from, to := msg.span.axis(a)
		if !wasScrolling {
			s = s.JumpTo(from)
		}
		return s.SetTarget(to)
	})
	if _, ok := m.springs[AxisX]; !ok {
		m.heldX = msg.span.From.X
	}
	if _, ok := m.springs[AxisY]; !ok {
		m.heldY = msg.span.From.Y
	}

	if !wasScrolling && m.IsScrolling() {
		m.lastFrame = time.Time{}
		return m, m.nextFrame()
	}
	return m, nil
}

// Tick advances every spring by deltaMillis. While motion continues it
// writes the rounded positions to the viewport (best effort; a failed
// write is retried by the next tick) and requests the next frame. Once
// every spring is at rest it snaps them to their targets, clearing
// residual floating-point drift, and requests nothing — which releases
// the frame subscription.
func (m Model) Tick(deltaMillis float64) (Model, tea.Cmd) {
	m = m.eachSpring(func(_ Axis, s spring.Spring) spring.Spring {
		return s.Advance(deltaMillis)
	})

	if !m.IsScrolling() {
		m.lastFrame = time.Time{}
		return m.eachSpring(func(_ Axis, s spring.Spring) spring.Spring {
			return s.JumpTo(s.Target())
		}), nil
	}

	x, y := m.writeCoords()
	if err := m.writer.SetViewport(math.Round(x), math.Round(y)); err != nil {
		m.logger.Debug("viewport write failed", zap.Error(err))
	}
	return m, m.nextFrame()
}

func (m Model) writeCoords() (x, y float64) {
	x, y = m.heldX, m.heldY
	if s, ok := m.springs[AxisX]; ok {
		x = s.Value()
	}
	if s, ok := m.springs[AxisY]; ok {
		y = s.Value()
	}
	return x, y
}
