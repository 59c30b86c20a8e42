package scroll

// Axis names one scrolled dimension. The controller is generic over its
// axis set, so a vertical-only scroller and a full x/y scroller share
// all state-machine logic.
type Axis string

const (
	AxisX Axis = "x"
	AxisY Axis = "y"
)

// Viewport describes the visible region and the scene behind it, as
// measured by the host. Units are whatever the host scrolls in (pixels,
// terminal cells); the controller never interprets them.
type Viewport struct {
	ScrollX        float64
	ScrollY        float64
	ViewportWidth  float64
	ViewportHeight float64
	SceneWidth     float64
	SceneHeight    float64
}

// Element is the measured geometry of an addressable element within the
// scene, relative to the scene origin.
type Element struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Geometry measures the viewport and elements on demand. Queries run
// asynchronously (inside a command goroutine) and may fail; a failure
// means the requested scroll silently does not happen.
type Geometry interface {
	Viewport() (Viewport, error)
	Element(id string) (Element, error)
}

// Writer applies a scroll position to the host's viewport. It must be
// idempotent and cheap: the controller calls it once per animation
// frame and swallows errors.
type Writer interface {
	SetViewport(x, y float64) error
}

// Point is an x/y scroll position.
type Point struct {
	X float64
	Y float64
}

// Span is a scroll movement: the measured starting position and the
// destination, per axis.
type Span struct {
	From Point
	To   Point
}

func (sp Span) axis(a Axis) (from, to float64) {
	if a == AxisX {
		return sp.From.X, sp.To.X
	}
	return sp.From.Y, sp.To.Y
}

// CustomFunc computes a Span from measured viewport and element
// geometry, giving the caller full control over both axes (offsets,
// centering, horizontal scrolls).
type CustomFunc func(vp Viewport, el Element) Span

// CustomViewportFunc computes a Span from viewport geometry alone, for
// destinations not anchored to an element.
type CustomViewportFunc func(vp Viewport) Span
