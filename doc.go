// Package quilt is the viewport and spatial-layout engine for a boundless
// 2D canvas of content tiles.
//
// Quilt owns the hard parts of an infinite-canvas app: the world↔screen
// transform with anchor-preserving zoom, the pan/zoom gesture state machine
// across mouse, wheel, and multi-touch input, smooth camera animation,
// viewport culling, collision-aware placement of new nodes, and a two-tier
// debounced persistence pipeline. Everything around it — content rendering,
// durable storage, auth — is a collaborator behind an interface.
//
// # Quick start
//
// Create a [Canvas], seed it from a [Store], and drive it from a frame loop:
//
//	c := quilt.NewCanvas(store)
//	if err := c.Load(ctx, canvasID); err != nil {
//		log.Fatal(err)
//	}
//	// each frame:
//	c.Update(dt)
//
// Input events go straight in: [Canvas.PointerDown], [Canvas.PointerMove],
// [Canvas.PointerUp], [Canvas.Wheel], [Canvas.TouchStart],
// [Canvas.TouchMove], [Canvas.TouchEnd]. Programmatic navigation goes
// through [Canvas.ZoomIn], [Canvas.ZoomOut], [Canvas.CenterOnContent],
// [Canvas.NavigateToNode], and [Canvas.NavigateToWorldPoint]; transitions
// are tweened (via [gween]) and implicitly cancelled by new input.
//
// For a batteries-included window, [Run] hosts a canvas on [Ebitengine],
// translating real mouse/wheel/touch input and drawing visible nodes as
// flat rectangles:
//
//	quilt.Run(c, quilt.RunConfig{Title: "quilt", Width: 1280, Height: 800})
//
// A reference SQLite-backed Store lives in quilt/canvasstore.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package quilt
