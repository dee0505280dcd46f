package quilt

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// cameraAnim is an in-flight camera transition. A single 0→1 progress tween
// carries the easing; each tick interpolates the whole transform from start
// to target with the eased progress.
//
// generation implements cancellation: starting a new animation or a new
// gesture bumps the canvas generation counter, and a tick whose captured
// generation is stale is a no-op. There is no explicit abort call.
type cameraAnim struct {
	generation uint64
	progress   *gween.Tween
	start      Transform
	target     Transform
}

// AnimateTo starts a smooth transition of the camera to target over duration
// seconds. Any animation already in flight is superseded. The target scale is
// clamped. A non-positive duration snaps immediately.
//
// Easing functions come from gween/ease: ease.Linear, ease.InQuad,
// ease.OutQuad, ease.InOutQuad, ease.OutCubic, and friends.
func (c *Canvas) AnimateTo(target Transform, duration float32, fn ease.TweenFunc) {
	target.Scale = ClampScale(target.Scale)
	c.animGen++
	c.debugf("animate gen=%d target scale=%.3f t=(%.1f,%.1f) dur=%.2fs",
		c.animGen, target.Scale, target.Translation.X, target.Translation.Y, duration)

	if duration <= 0 {
		c.anim = nil
		c.transform = target
		c.scheduleChange()
		c.Flush()
		return
	}
	if fn == nil {
		fn = ease.Linear
	}
	c.anim = &cameraAnim{
		generation: c.animGen,
		progress:   gween.New(0, 1, duration, fn),
		start:      c.transform,
		target:     target,
	}
}

// Animating reports whether a camera transition is in flight.
func (c *Canvas) Animating() bool {
	return c.anim != nil
}

// cancelAnimation makes any in-flight animation stale. The next tick
// discards it without touching the transform; user input always wins.
func (c *Canvas) cancelAnimation() {
	if c.anim != nil {
		c.debugf("animation gen=%d cancelled", c.anim.generation)
	}
	c.animGen++
}

// tickAnimation advances the in-flight animation by dt seconds. A stale
// generation or a live gesture makes the tick a no-op and drops the
// animation; completion snaps exactly to the target and flushes persistence.
func (c *Canvas) tickAnimation(dt float64) {
	a := c.anim
	if a == nil {
		return
	}
	if a.generation != c.animGen || c.gesture.phase != gestureIdle {
		c.anim = nil
		return
	}

	p, done := a.progress.Update(float32(dt))
	if done {
		c.anim = nil
		c.transform = a.target
		c.scheduleChange()
		c.debugf("animation gen=%d complete", a.generation)
		c.Flush()
		return
	}
	c.transform = lerpTransform(a.start, a.target, float64(p))
	c.scheduleChange()
}
