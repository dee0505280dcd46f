package quilt

// Synthetic input: queued events consumed one per Update call, exactly as a
// host would deliver real input across frames. Used by gesture scripts and
// tests to exercise the full pan/zoom pipeline deterministically.

type syntheticKind uint8

const (
	synthPress syntheticKind = iota
	synthMove
	synthRelease
	synthWheel
	synthTouchStart
	synthTouchMove
	synthTouchEnd
)

// syntheticEvent is a single injected event in screen coordinates.
type syntheticEvent struct {
	kind    syntheticKind
	x, y    float64
	deltaX  float64
	deltaY  float64
	mods    KeyModifiers
	touches []TouchPoint
}

// InjectPress queues a primary-button pointer press at the given screen
// coordinates. The event is consumed on the next Update call.
func (c *Canvas) InjectPress(x, y float64) {
	c.injectQueue = append(c.injectQueue, syntheticEvent{kind: synthPress, x: x, y: y})
}

// InjectMove queues a pointer move with the button held down. Use between
// InjectPress and InjectRelease to simulate a pan.
func (c *Canvas) InjectMove(x, y float64) {
	c.injectQueue = append(c.injectQueue, syntheticEvent{kind: synthMove, x: x, y: y})
}

// InjectRelease queues a pointer release at the given screen coordinates.
func (c *Canvas) InjectRelease(x, y float64) {
	c.injectQueue = append(c.injectQueue, syntheticEvent{kind: synthRelease, x: x, y: y})
}

// InjectWheel queues a wheel event at cursor (x, y) with the given deltas
// and modifiers.
func (c *Canvas) InjectWheel(x, y, deltaX, deltaY float64, mods KeyModifiers) {
	c.injectQueue = append(c.injectQueue, syntheticEvent{
		kind: synthWheel, x: x, y: y, deltaX: deltaX, deltaY: deltaY, mods: mods,
	})
}

// InjectDrag queues a full pan sequence: press at (fromX, fromY), linearly
// interpolated moves, and release at (toX, toY). The sequence consumes
// `frames` Update calls; minimum is 2 (press + release).
func (c *Canvas) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	c.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		c.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	c.InjectRelease(toX, toY)
}

// InjectPinch queues a two-finger pinch: touch start with both contacts at
// their initial positions, interpolated two-finger moves, and a touch end
// with no remaining contacts. Consumes `frames` Update calls (minimum 3).
func (c *Canvas) InjectPinch(a0, b0, a1, b1 TouchPoint, frames int) {
	if frames < 3 {
		frames = 3
	}
	c.injectQueue = append(c.injectQueue, syntheticEvent{
		kind: synthTouchStart, touches: []TouchPoint{a0, b0},
	})
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		c.injectQueue = append(c.injectQueue, syntheticEvent{
			kind: synthTouchMove,
			touches: []TouchPoint{
				{X: a0.X + (a1.X-a0.X)*t, Y: a0.Y + (a1.Y-a0.Y)*t},
				{X: b0.X + (b1.X-b0.X)*t, Y: b0.Y + (b1.Y-b0.Y)*t},
			},
		})
	}
	c.injectQueue = append(c.injectQueue, syntheticEvent{kind: synthTouchEnd})
}

// PendingInjected reports how many injected events have not been consumed.
func (c *Canvas) PendingInjected() int {
	return len(c.injectQueue)
}

// processInjected pops one queued event and feeds it through the same entry
// points real input uses.
func (c *Canvas) processInjected() {
	if len(c.injectQueue) == 0 {
		return
	}
	evt := c.injectQueue[0]
	copy(c.injectQueue, c.injectQueue[1:])
	c.injectQueue = c.injectQueue[:len(c.injectQueue)-1]

	switch evt.kind {
	case synthPress:
		c.PointerDown(PointerEvent{X: evt.x, Y: evt.y, Button: MouseButtonLeft})
	case synthMove:
		c.PointerMove(PointerEvent{X: evt.x, Y: evt.y, Button: MouseButtonLeft})
	case synthRelease:
		c.PointerUp(PointerEvent{X: evt.x, Y: evt.y, Button: MouseButtonLeft})
	case synthWheel:
		c.Wheel(WheelEvent{X: evt.x, Y: evt.y, DeltaX: evt.deltaX, DeltaY: evt.deltaY, Modifiers: evt.mods})
	case synthTouchStart:
		c.TouchStart(evt.touches)
	case synthTouchMove:
		c.TouchMove(evt.touches)
	case synthTouchEnd:
		c.TouchEnd(evt.touches)
	}
}
