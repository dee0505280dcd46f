package quilt

import (
	"testing"

	"github.com/tanema/gween/ease"
)

func TestAnimateTo_LinearProgress(t *testing.T) {
	c := NewCanvas(nil)
	target := Transform{Scale: 3, Translation: Vec2{100, 200}}

	c.AnimateTo(target, 1.0, ease.Linear)
	if !c.Animating() {
		t.Fatal("not animating after AnimateTo")
	}

	c.Update(0.5)
	got := c.View()
	if !approxEqual(got.Scale, 2.0, 1e-5) {
		t.Errorf("scale at t=0.5 is %f, want 2.0", got.Scale)
	}
	if !approxVec(got.Translation, Vec2{50, 100}, 1e-3) {
		t.Errorf("translation at t=0.5 is %v, want (50,100)", got.Translation)
	}
}

func TestAnimateTo_SnapsExactlyToTarget(t *testing.T) {
	c := NewCanvas(nil)
	target := Transform{Scale: 2.345, Translation: Vec2{17.25, -33.5}}

	c.AnimateTo(target, 0.5, ease.OutCubic)
	for i := 0; i < 60; i++ {
		c.Update(1.0 / 60.0)
	}

	// The final frame snaps to the target, not a float-accumulated near miss.
	if c.View() != target {
		t.Errorf("final view %+v != target %+v", c.View(), target)
	}
	if c.Animating() {
		t.Error("still animating after completion")
	}
}

func TestAnimateTo_ZeroDurationSnaps(t *testing.T) {
	c := NewCanvas(nil)
	target := Transform{Scale: 2, Translation: Vec2{5, 5}}

	var committed int
	c.OnViewChanged = func(Transform) { committed++ }

	c.AnimateTo(target, 0, nil)
	if c.View() != target {
		t.Errorf("view = %+v, want snapped to target", c.View())
	}
	if c.Animating() {
		t.Error("animating after zero-duration snap")
	}
	if committed != 1 {
		t.Errorf("committed %d times, want immediate flush", committed)
	}
}

func TestAnimateTo_ClampsTargetScale(t *testing.T) {
	c := NewCanvas(nil)
	c.AnimateTo(Transform{Scale: 50}, 0, nil)
	if c.View().Scale != MaxScale {
		t.Errorf("scale = %f, want clamped to %f", c.View().Scale, MaxScale)
	}
}

func TestAnimateTo_Superseded(t *testing.T) {
	c := NewCanvas(nil)

	c.AnimateTo(Transform{Scale: 1, Translation: Vec2{1000, 0}}, 1.0, ease.Linear)
	c.Update(0.25)

	second := Transform{Scale: 1, Translation: Vec2{0, 500}}
	c.AnimateTo(second, 0.5, ease.Linear)
	for i := 0; i < 60; i++ {
		c.Update(1.0 / 60.0)
	}

	if c.View() != second {
		t.Errorf("view = %+v, want second target %+v", c.View(), second)
	}
}

func TestGestureCancelsAnimation(t *testing.T) {
	c := NewCanvas(nil)
	c.AnimateTo(Transform{Scale: 4, Translation: Vec2{999, 999}}, 1.0, ease.Linear)
	c.Update(0.1)
	mid := c.View()

	// A pan starts; the animation must never move the camera again.
	c.PointerDown(PointerEvent{X: 10, Y: 10, Button: MouseButtonLeft})
	pinned := c.View()
	if pinned != mid {
		t.Fatalf("starting a gesture moved the camera: %+v", pinned)
	}
	for i := 0; i < 120; i++ {
		c.Update(1.0 / 60.0)
	}
	if c.View() != pinned {
		t.Errorf("cancelled animation still advanced the camera: %+v", c.View())
	}
	if c.Animating() {
		t.Error("animation not dropped after cancellation")
	}
}

func TestWheelCancelsAnimation(t *testing.T) {
	c := NewCanvas(nil)
	c.AnimateTo(Transform{Scale: 4, Translation: Vec2{999, 999}}, 1.0, ease.Linear)
	c.Update(0.1)

	c.Wheel(WheelEvent{X: 0, Y: 0, DeltaX: 10, DeltaY: 0})
	after := c.View()
	for i := 0; i < 120; i++ {
		c.Update(1.0 / 60.0)
	}
	if c.View() != after {
		t.Errorf("animation survived a wheel event: %+v", c.View())
	}
}

func TestAnimationCompletion_Flushes(t *testing.T) {
	c := NewCanvas(nil)
	var committed []Transform
	c.OnViewChanged = func(tr Transform) { committed = append(committed, tr) }

	target := Transform{Scale: 1.5, Translation: Vec2{10, 20}}
	c.AnimateTo(target, 0.2, ease.Linear)
	for i := 0; i < 30; i++ {
		c.Update(1.0 / 60.0)
	}

	if len(committed) == 0 {
		t.Fatal("no commit after animation completed")
	}
	if committed[len(committed)-1] != target {
		t.Errorf("last commit %+v, want target %+v", committed[len(committed)-1], target)
	}
}

func TestNavigateToNode(t *testing.T) {
	c := NewCanvas(nil)
	n := c.CreateNode(KindNote, Vec2{100, 80})

	if err := c.NavigateToNode("nope"); err == nil {
		t.Error("navigate to unknown node did not error")
	}
	if err := c.NavigateToNode(n.ID); err != nil {
		t.Fatalf("NavigateToNode: %v", err)
	}
	for i := 0; i < 60; i++ {
		c.Update(1.0 / 60.0)
	}

	// Node center lands on the screen center at the unchanged zoom.
	center := c.View().WorldToScreen(n.Rect().Center())
	if !approxVec(center, c.ScreenCenter(), 1e-6) {
		t.Errorf("node center on screen = %v, want %v", center, c.ScreenCenter())
	}
	if c.View().Scale != 1.0 {
		t.Errorf("scale = %f, want unchanged 1.0", c.View().Scale)
	}
}

func TestCenterOnContent(t *testing.T) {
	c := NewCanvas(nil)
	c.nodes = []*Node{
		{ID: "a", Position: Vec2{-100, -100}, Size: Vec2{50, 50}},
		{ID: "b", Position: Vec2{200, 100}, Size: Vec2{100, 100}},
	}
	for _, n := range c.nodes {
		c.byID[n.ID] = n
	}

	c.CenterOnContent(nil)
	for i := 0; i < 60; i++ {
		c.Update(1.0 / 60.0)
	}

	// Bounding box is (-100,-100)-(300,200); its center maps to screen center
	// and the whole box fits inside the screen.
	bbox := Rect{X: -100, Y: -100, Width: 400, Height: 300}
	onScreen := c.View().WorldToScreen(bbox.Center())
	if !approxVec(onScreen, c.ScreenCenter(), 1e-6) {
		t.Errorf("bbox center on screen = %v, want %v", onScreen, c.ScreenCenter())
	}
	if bbox.Width*c.View().Scale > c.screenW || bbox.Height*c.View().Scale > c.screenH {
		t.Errorf("content does not fit at scale %f", c.View().Scale)
	}
}

func TestCenterOnContent_EmptyCanvas(t *testing.T) {
	c := NewCanvas(nil)
	c.SetView(Transform{Scale: 3, Translation: Vec2{500, 500}})

	c.CenterOnContent(nil)
	for i := 0; i < 60; i++ {
		c.Update(1.0 / 60.0)
	}

	if c.View().Scale != 1.0 {
		t.Errorf("scale = %f, want reset to 1.0", c.View().Scale)
	}
	origin := c.View().WorldToScreen(Vec2{})
	if !approxVec(origin, c.ScreenCenter(), 1e-6) {
		t.Errorf("world origin on screen = %v, want centered", origin)
	}
}
