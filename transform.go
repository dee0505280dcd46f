package quilt

import "math"

// Zoom limits. Every scale mutation goes through ClampScale, so a Transform
// obtained from this package always satisfies MinScale <= Scale <= MaxScale.
const (
	MinScale = 0.1
	MaxScale = 5.0
)

// Transform maps world coordinates to screen coordinates: a uniform scale
// followed by a translation. Translation is the screen-space offset of the
// world origin.
//
// Transform is a value type; methods that change it return a new Transform.
// Callers persist and animate separately.
type Transform struct {
	Scale       float64
	Translation Vec2
}

// IdentityTransform is the default view: zoom 1, world origin at the
// top-left corner of the screen.
var IdentityTransform = Transform{Scale: 1}

// ClampScale restricts s to [MinScale, MaxScale]. Non-finite values clamp
// to the nearest bound (NaN clamps to MinScale).
func ClampScale(s float64) float64 {
	if math.IsNaN(s) {
		return MinScale
	}
	return math.Max(MinScale, math.Min(s, MaxScale))
}

// WorldToScreen converts a world-space point to screen space.
func (t Transform) WorldToScreen(p Vec2) Vec2 {
	return Vec2{
		X: p.X*t.Scale + t.Translation.X,
		Y: p.Y*t.Scale + t.Translation.Y,
	}
}

// ScreenToWorld converts a screen-space point to world space.
func (t Transform) ScreenToWorld(p Vec2) Vec2 {
	return Vec2{
		X: (p.X - t.Translation.X) / t.Scale,
		Y: (p.Y - t.Translation.Y) / t.Scale,
	}
}

// SetScaleAnchored returns a Transform with the clamped new scale whose
// translation is solved so that the world point under anchor (a screen
// point) stays under it. This is the single primitive behind wheel zoom,
// pinch zoom, and button zoom.
func (t Transform) SetScaleAnchored(newScale float64, anchor Vec2) Transform {
	s := ClampScale(newScale)
	w := t.ScreenToWorld(anchor)
	return Transform{
		Scale: s,
		Translation: Vec2{
			X: anchor.X - w.X*s,
			Y: anchor.Y - w.Y*s,
		},
	}
}

// Translated returns t with the translation shifted by d.
func (t Transform) Translated(d Vec2) Transform {
	t.Translation = t.Translation.Add(d)
	return t
}

// ViewportBounds returns the world-space rectangle visible through a screen
// of the given size: the inverse transform of the screen rectangle.
func (t Transform) ViewportBounds(screenW, screenH float64) Rect {
	topLeft := t.ScreenToWorld(Vec2{0, 0})
	return Rect{
		X:      topLeft.X,
		Y:      topLeft.Y,
		Width:  screenW / t.Scale,
		Height: screenH / t.Scale,
	}
}

// lerpTransform interpolates between a and b. p=0 yields a, p=1 yields b.
// Used by the animator; p comes pre-shaped by the easing function.
func lerpTransform(a, b Transform, p float64) Transform {
	return Transform{
		Scale: a.Scale + (b.Scale-a.Scale)*p,
		Translation: Vec2{
			X: a.Translation.X + (b.Translation.X-a.Translation.X)*p,
			Y: a.Translation.Y + (b.Translation.Y-a.Translation.Y)*p,
		},
	}
}
