package quilt

// DefaultCullPadding expands the viewport by half its size on each side
// before culling, so nodes just off-screen are already rendered when a pan
// brings them in.
const DefaultCullPadding = 0.5

// Culler selects the subset of nodes worth rendering for a given viewport.
// The canvas holds one Culler; swapping in an index-backed implementation
// (see RTreeCuller) changes nothing else.
//
// Invalidate is called whenever the node set or any node's geometry changes
// so index-backed implementations can rebuild lazily.
type Culler interface {
	Visible(nodes []*Node, bounds Rect, paddingFactor float64) []*Node
	Invalidate()
}

// LinearCuller is the default Culler: a straight O(n) scan. At expected
// canvas sizes (hundreds of nodes) this beats maintaining an index.
type LinearCuller struct{}

// Visible returns the nodes whose world rectangle intersects bounds expanded
// by paddingFactor of its own size on each side.
func (LinearCuller) Visible(nodes []*Node, bounds Rect, paddingFactor float64) []*Node {
	padded := bounds.Expand(bounds.Width*paddingFactor, bounds.Height*paddingFactor)
	visible := make([]*Node, 0, len(nodes))
	for _, n := range nodes {
		if n.Rect().Intersects(padded) {
			visible = append(visible, n)
		}
	}
	return visible
}

// Invalidate is a no-op; a linear scan has nothing to rebuild.
func (LinearCuller) Invalidate() {}
