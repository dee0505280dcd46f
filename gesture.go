package quilt

import "math"

// Wheel zoom step per notch, applied multiplicatively.
const (
	wheelZoomOut = 0.9
	wheelZoomIn  = 1.1
)

// PointerEvent is a mouse event in screen coordinates.
type PointerEvent struct {
	X, Y   float64
	Button MouseButton
}

// WheelEvent is a scroll event. Without a ctrl/meta modifier the deltas pan
// the view directly; with one they zoom, anchored at the cursor.
type WheelEvent struct {
	X, Y           float64 // cursor position
	DeltaX, DeltaY float64
	Modifiers      KeyModifiers
}

// TouchPoint is one active contact in a touch event.
type TouchPoint struct {
	X, Y float64
}

// gesturePhase enumerates the states of the pan/zoom state machine.
// Exactly one is active at a time; collapsing the phases into a single
// tagged value eliminates impossible combinations such as panning and
// pinching simultaneously.
type gesturePhase uint8

const (
	gestureIdle gesturePhase = iota
	gesturePanning
	gesturePinching
)

func (p gesturePhase) String() string {
	switch p {
	case gesturePanning:
		return "panning"
	case gesturePinching:
		return "pinching"
	default:
		return "idle"
	}
}

// gestureState is the single source of truth for in-flight gesture data.
// anchor is only meaningful while panning; the pinch fields only while
// pinching.
type gestureState struct {
	phase gesturePhase

	// anchor = screen point at gesture start - translation at gesture start,
	// so that translation = current point - anchor keeps the grab point
	// under the pointer.
	anchor Vec2

	// pinch capture: distance between the first two contacts and the scale
	// when the second finger landed.
	pinchStartDist  float64
	pinchStartScale float64
}

// --- Mouse ---

// PointerDown begins a pan when the primary button goes down over the
// canvas. Other buttons are left to the host (selection, context menus).
func (c *Canvas) PointerDown(e PointerEvent) {
	if e.Button != MouseButtonLeft {
		return
	}
	c.beginPan(Vec2{e.X, e.Y})
}

// PointerMove pans the view while a pan is active. Hover moves are ignored.
func (c *Canvas) PointerMove(e PointerEvent) {
	if c.gesture.phase != gesturePanning {
		return
	}
	c.panTo(Vec2{e.X, e.Y})
}

// PointerUp ends the active pan and flushes pending persistence.
func (c *Canvas) PointerUp(e PointerEvent) {
	c.endPan()
}

// PointerLeave is treated like a release: a pointer that leaves the surface
// ends the gesture rather than leaving it stuck.
func (c *Canvas) PointerLeave() {
	c.endPan()
}

// Wheel handles scroll input. Stateless per event — wheel is not part of
// the gesture state machine. Plain scrolling pans; ctrl/meta scrolling zooms
// anchored at the cursor so the point under it does not move.
func (c *Canvas) Wheel(e WheelEvent) {
	c.cancelAnimation()
	if e.Modifiers&(ModCtrl|ModMeta) != 0 {
		factor := wheelZoomIn
		if e.DeltaY > 0 {
			factor = wheelZoomOut
		}
		c.transform = c.transform.SetScaleAnchored(c.transform.Scale*factor, Vec2{e.X, e.Y})
	} else {
		c.transform = c.transform.Translated(Vec2{-e.DeltaX, -e.DeltaY})
	}
	c.scheduleChange()
}

// --- Touch ---

// TouchStart feeds the full list of active contacts when a touch begins.
// One finger starts a pan; a second finger (whether or not a pan was in
// progress) starts a pinch. Contacts beyond the first two are ignored.
func (c *Canvas) TouchStart(points []TouchPoint) {
	switch {
	case len(points) >= 2:
		c.beginPinch(points)
	case len(points) == 1:
		c.beginPan(Vec2{points[0].X, points[0].Y})
	}
}

// TouchMove advances the active gesture with the current contact list.
func (c *Canvas) TouchMove(points []TouchPoint) {
	switch c.gesture.phase {
	case gesturePinching:
		if len(points) >= 2 {
			c.pinchTo(points)
		}
	case gesturePanning:
		if len(points) >= 1 {
			c.panTo(Vec2{points[0].X, points[0].Y})
		}
	}
}

// TouchEnd receives the contacts that remain after fingers lifted. Dropping
// below two contacts ends a pinch — re-entering a pan if one finger remains.
// Dropping to zero ends everything. Either way pending persistence flushes.
func (c *Canvas) TouchEnd(remaining []TouchPoint) {
	switch c.gesture.phase {
	case gesturePinching:
		if len(remaining) >= 2 {
			return
		}
		c.flushGesture("pinch end")
		if len(remaining) == 1 {
			c.beginPan(Vec2{remaining[0].X, remaining[0].Y})
			return
		}
		c.gesture = gestureState{}
	case gesturePanning:
		if len(remaining) >= 1 {
			return
		}
		c.endPan()
	}
}

// --- Shared gesture mechanics ---

func (c *Canvas) beginPan(p Vec2) {
	c.cancelAnimation()
	c.gesture = gestureState{
		phase:  gesturePanning,
		anchor: p.Sub(c.transform.Translation),
	}
	c.debugf("gesture -> panning anchor=(%.1f,%.1f)", c.gesture.anchor.X, c.gesture.anchor.Y)
}

func (c *Canvas) panTo(p Vec2) {
	c.transform.Translation = p.Sub(c.gesture.anchor)
	c.scheduleChange()
}

func (c *Canvas) endPan() {
	if c.gesture.phase != gesturePanning {
		return
	}
	c.flushGesture("pan end")
	c.gesture = gestureState{}
}

func (c *Canvas) beginPinch(points []TouchPoint) {
	c.cancelAnimation()
	c.gesture = gestureState{
		phase:           gesturePinching,
		pinchStartDist:  touchDistance(points[0], points[1]),
		pinchStartScale: c.transform.Scale,
	}
	c.debugf("gesture -> pinching d0=%.1f s0=%.3f", c.gesture.pinchStartDist, c.gesture.pinchStartScale)
}

func (c *Canvas) pinchTo(points []TouchPoint) {
	// Simultaneous touch registration can capture d0 == 0; treat the ratio
	// as 1 until the distance becomes non-zero rather than dividing by it.
	ratio := 1.0
	if c.gesture.pinchStartDist > pinchEpsilon {
		ratio = touchDistance(points[0], points[1]) / c.gesture.pinchStartDist
	} else if d := touchDistance(points[0], points[1]); d > pinchEpsilon {
		c.gesture.pinchStartDist = d
	}
	mid := Vec2{
		X: (points[0].X + points[1].X) / 2,
		Y: (points[0].Y + points[1].Y) / 2,
	}
	c.transform = c.transform.SetScaleAnchored(c.gesture.pinchStartScale*ratio, mid)
	c.scheduleChange()
}

func (c *Canvas) flushGesture(why string) {
	c.debugf("gesture %s (%s), flushing", c.gesture.phase, why)
	c.Flush()
}

const pinchEpsilon = 1e-9

func touchDistance(a, b TouchPoint) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return math.Sqrt(dx*dx + dy*dy)
}
