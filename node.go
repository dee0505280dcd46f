package quilt

import "math"

// NodeKind identifies what a node's content is. The engine never interprets
// content; kinds exist so hosts can pick a renderer and stores can round-trip
// the payload.
type NodeKind string

const (
	KindNote  NodeKind = "note"
	KindImage NodeKind = "image"
	KindCode  NodeKind = "code"
	KindEmbed NodeKind = "embed"
)

// Defaults substituted for malformed persisted geometry. Loading never
// fails on bad data; it falls back to these and continues.
const (
	defaultNodeW = 50.0
	defaultNodeH = 50.0
)

// Node is a content tile on the canvas. Position is the world-space
// top-left corner; Size is in world units and is always positive.
//
// Nodes are owned by the Store. The engine treats them as read-mostly and
// writes back only Position and Size (after drag, resize, or placement).
type Node struct {
	ID       string
	Kind     NodeKind
	Position Vec2
	Size     Vec2
	// Content is an opaque payload (markdown, image reference, ...) carried
	// through untouched for rendering collaborators.
	Content []byte
}

// Rect returns the node's axis-aligned world rectangle.
func (n *Node) Rect() Rect {
	return Rect{X: n.Position.X, Y: n.Position.Y, Width: n.Size.X, Height: n.Size.Y}
}

// nodeFromRecord parses a raw store record into a canonical Node,
// substituting safe defaults for missing or non-finite geometry. All code
// past this boundary operates on the typed form only.
func nodeFromRecord(r NodeRecord) *Node {
	x, y := r.X, r.Y
	if !isFinite(x) || !isFinite(y) {
		x, y = 0, 0
	}
	w, h := r.Width, r.Height
	if !isFinite(w) || w <= 0 {
		w = defaultNodeW
	}
	if !isFinite(h) || h <= 0 {
		h = defaultNodeH
	}
	kind := NodeKind(r.Kind)
	if kind == "" {
		kind = KindNote
	}
	return &Node{
		ID:       r.ID,
		Kind:     kind,
		Position: Vec2{x, y},
		Size:     Vec2{w, h},
		Content:  r.Content,
	}
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
