package quilt

import "testing"

func TestPointerPan(t *testing.T) {
	c := NewCanvas(nil)

	c.PointerDown(PointerEvent{X: 100, Y: 100, Button: MouseButtonLeft})
	if c.gesture.phase != gesturePanning {
		t.Fatalf("phase = %s, want panning", c.gesture.phase)
	}

	c.PointerMove(PointerEvent{X: 150, Y: 120})
	if !approxVec(c.View().Translation, Vec2{50, 20}, epsilon) {
		t.Errorf("translation = %v, want (50,20)", c.View().Translation)
	}

	// Zoom is untouched by a pan.
	if c.View().Scale != 1.0 {
		t.Errorf("scale = %f, want 1.0", c.View().Scale)
	}

	c.PointerUp(PointerEvent{X: 150, Y: 120})
	if c.gesture.phase != gestureIdle {
		t.Errorf("phase after up = %s, want idle", c.gesture.phase)
	}
}

func TestPointerPan_GrabPointStaysUnderCursor(t *testing.T) {
	c := NewCanvas(nil)
	c.SetView(Transform{Scale: 2, Translation: Vec2{30, -10}})

	grab := Vec2{250, 140}
	world := c.View().ScreenToWorld(grab)

	c.PointerDown(PointerEvent{X: grab.X, Y: grab.Y, Button: MouseButtonLeft})
	c.PointerMove(PointerEvent{X: 400, Y: 90})

	after := c.View().ScreenToWorld(Vec2{400, 90})
	if !approxVec(world, after, 1e-9) {
		t.Errorf("grabbed world point moved: %v -> %v", world, after)
	}
}

func TestPointerDown_NonPrimaryIgnored(t *testing.T) {
	c := NewCanvas(nil)
	c.PointerDown(PointerEvent{X: 10, Y: 10, Button: MouseButtonRight})
	if c.gesture.phase != gestureIdle {
		t.Errorf("right button started a gesture: %s", c.gesture.phase)
	}
}

func TestPointerMove_HoverIgnored(t *testing.T) {
	c := NewCanvas(nil)
	before := c.View()
	c.PointerMove(PointerEvent{X: 500, Y: 500})
	if c.View() != before {
		t.Errorf("hover move changed the view: %+v", c.View())
	}
}

func TestPointerLeave_EndsPan(t *testing.T) {
	c := NewCanvas(nil)
	c.PointerDown(PointerEvent{X: 0, Y: 0, Button: MouseButtonLeft})
	c.PointerLeave()
	if c.gesture.phase != gestureIdle {
		t.Errorf("phase = %s, want idle", c.gesture.phase)
	}
	// The pan flushed on leave, nothing left pending.
	if c.debouncer.Pending() {
		t.Error("persistence still pending after leave")
	}
}

func TestWheel_Pans(t *testing.T) {
	c := NewCanvas(nil)
	c.Wheel(WheelEvent{X: 400, Y: 300, DeltaX: 30, DeltaY: -20})
	if !approxVec(c.View().Translation, Vec2{-30, 20}, epsilon) {
		t.Errorf("translation = %v, want (-30,20)", c.View().Translation)
	}
	if c.View().Scale != 1.0 {
		t.Errorf("plain wheel changed scale: %f", c.View().Scale)
	}
}

func TestWheel_CtrlZooms(t *testing.T) {
	c := NewCanvas(nil)
	cursor := Vec2{200, 150}
	world := c.View().ScreenToWorld(cursor)

	c.Wheel(WheelEvent{X: cursor.X, Y: cursor.Y, DeltaY: -1, Modifiers: ModCtrl})
	if !approxEqual(c.View().Scale, wheelZoomIn, epsilon) {
		t.Errorf("scale = %f, want %f", c.View().Scale, wheelZoomIn)
	}
	after := c.View().ScreenToWorld(cursor)
	if !approxVec(world, after, 1e-9) {
		t.Errorf("cursor world point moved: %v -> %v", world, after)
	}

	c.Wheel(WheelEvent{X: cursor.X, Y: cursor.Y, DeltaY: 1, Modifiers: ModMeta})
	if !approxEqual(c.View().Scale, wheelZoomIn*wheelZoomOut, epsilon) {
		t.Errorf("scale after zoom out = %f", c.View().Scale)
	}
}

func TestWheel_ZoomClampsAtLimits(t *testing.T) {
	c := NewCanvas(nil)
	for i := 0; i < 100; i++ {
		c.Wheel(WheelEvent{X: 400, Y: 300, DeltaY: -1, Modifiers: ModCtrl})
	}
	if c.View().Scale != MaxScale {
		t.Errorf("scale = %f, want pinned at %f", c.View().Scale, MaxScale)
	}
	for i := 0; i < 200; i++ {
		c.Wheel(WheelEvent{X: 400, Y: 300, DeltaY: 1, Modifiers: ModCtrl})
	}
	if c.View().Scale != MinScale {
		t.Errorf("scale = %f, want pinned at %f", c.View().Scale, MinScale)
	}
}

func TestPinch_DoublesScaleAtDoubleDistance(t *testing.T) {
	c := NewCanvas(nil)

	c.TouchStart([]TouchPoint{{100, 300}, {300, 300}})
	if c.gesture.phase != gesturePinching {
		t.Fatalf("phase = %s, want pinching", c.gesture.phase)
	}

	mid := Vec2{200, 300}
	world := c.View().ScreenToWorld(mid)

	// Spread symmetrically to twice the starting distance.
	c.TouchMove([]TouchPoint{{0, 300}, {400, 300}})
	if !approxEqual(c.View().Scale, 2.0, epsilon) {
		t.Errorf("scale = %f, want 2.0", c.View().Scale)
	}
	after := c.View().ScreenToWorld(mid)
	if !approxVec(world, after, 1e-9) {
		t.Errorf("midpoint world point moved: %v -> %v", world, after)
	}
}

func TestPinch_ZeroStartDistance(t *testing.T) {
	c := NewCanvas(nil)

	// Both contacts register at the same position.
	c.TouchStart([]TouchPoint{{200, 200}, {200, 200}})
	c.TouchMove([]TouchPoint{{200, 200}, {200, 200}})
	if c.View().Scale != 1.0 {
		t.Errorf("scale = %f, want unchanged 1.0", c.View().Scale)
	}

	// Once the fingers separate the distance re-baselines; no scale jump.
	c.TouchMove([]TouchPoint{{190, 200}, {210, 200}})
	if !approxEqual(c.View().Scale, 1.0, epsilon) {
		t.Errorf("scale after re-baseline = %f, want 1.0", c.View().Scale)
	}
	c.TouchMove([]TouchPoint{{180, 200}, {220, 200}})
	if !approxEqual(c.View().Scale, 2.0, epsilon) {
		t.Errorf("scale = %f, want 2.0 relative to re-baselined distance", c.View().Scale)
	}
}

func TestPinch_ExtraContactsIgnored(t *testing.T) {
	c := NewCanvas(nil)
	c.TouchStart([]TouchPoint{{100, 300}, {300, 300}, {987, 654}})
	c.TouchMove([]TouchPoint{{0, 300}, {400, 300}, {123, 456}})
	if !approxEqual(c.View().Scale, 2.0, epsilon) {
		t.Errorf("scale = %f, want 2.0 from the first two contacts", c.View().Scale)
	}
}

func TestTouch_SingleFingerPans(t *testing.T) {
	c := NewCanvas(nil)
	c.TouchStart([]TouchPoint{{50, 60}})
	if c.gesture.phase != gesturePanning {
		t.Fatalf("phase = %s, want panning", c.gesture.phase)
	}
	c.TouchMove([]TouchPoint{{80, 100}})
	if !approxVec(c.View().Translation, Vec2{30, 40}, epsilon) {
		t.Errorf("translation = %v, want (30,40)", c.View().Translation)
	}
	c.TouchEnd(nil)
	if c.gesture.phase != gestureIdle {
		t.Errorf("phase after end = %s, want idle", c.gesture.phase)
	}
}

func TestTouch_SecondFingerUpgradesToPinch(t *testing.T) {
	c := NewCanvas(nil)
	c.TouchStart([]TouchPoint{{100, 100}})
	c.TouchStart([]TouchPoint{{100, 100}, {300, 100}})
	if c.gesture.phase != gesturePinching {
		t.Errorf("phase = %s, want pinching", c.gesture.phase)
	}
}

func TestTouch_PinchDowngradesToPan(t *testing.T) {
	c := NewCanvas(nil)
	c.TouchStart([]TouchPoint{{100, 300}, {300, 300}})
	c.TouchMove([]TouchPoint{{0, 300}, {400, 300}})

	// One finger lifts; the remaining finger pans from where it is.
	c.TouchEnd([]TouchPoint{{400, 300}})
	if c.gesture.phase != gesturePanning {
		t.Fatalf("phase = %s, want panning", c.gesture.phase)
	}
	scale := c.View().Scale
	before := c.View().Translation
	c.TouchMove([]TouchPoint{{410, 310}})
	if !approxVec(c.View().Translation, before.Add(Vec2{10, 10}), epsilon) {
		t.Errorf("translation = %v, want %v", c.View().Translation, before.Add(Vec2{10, 10}))
	}
	if c.View().Scale != scale {
		t.Errorf("scale changed during pan: %f -> %f", scale, c.View().Scale)
	}
}

func TestGestureEnd_FlushesPersistence(t *testing.T) {
	c := NewCanvas(nil)

	var committed []Transform
	c.OnViewChanged = func(tr Transform) { committed = append(committed, tr) }

	c.PointerDown(PointerEvent{X: 0, Y: 0, Button: MouseButtonLeft})
	c.PointerMove(PointerEvent{X: 100, Y: 50})
	if len(committed) != 0 {
		t.Fatalf("committed mid-gesture: %d", len(committed))
	}

	c.PointerUp(PointerEvent{X: 100, Y: 50})
	if len(committed) != 1 {
		t.Fatalf("committed %d times after release, want 1", len(committed))
	}
	if !approxVec(committed[0].Translation, Vec2{100, 50}, epsilon) {
		t.Errorf("committed translation = %v", committed[0].Translation)
	}
}
