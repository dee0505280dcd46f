package quilt

import "github.com/dhconnelly/rtreego"

// RTreeCuller is a Culler backed by an R-tree. Queries cost O(log n)
// instead of a full scan, which pays off on canvases with thousands of
// nodes. Results are identical to LinearCuller: the tree only narrows the
// candidate set, and the exact intersection test decides.
//
// The index is rebuilt lazily on the first Visible call after Invalidate.
type RTreeCuller struct {
	tree  *rtreego.Rtree
	stale bool
}

// NewRTreeCuller creates an empty RTreeCuller.
func NewRTreeCuller() *RTreeCuller {
	return &RTreeCuller{stale: true}
}

// nodeEntry adapts a Node to rtreego.Spatial.
type nodeEntry struct {
	node *Node
	rect rtreego.Rect
}

func (e *nodeEntry) Bounds() rtreego.Rect {
	return e.rect
}

// spatialRect converts a world Rect, clamping degenerate extents to a small
// positive length (rtreego rejects non-positive lengths).
func spatialRect(r Rect) (rtreego.Rect, error) {
	w, h := r.Width, r.Height
	if w <= 0 {
		w = 1e-9
	}
	if h <= 0 {
		h = 1e-9
	}
	return rtreego.NewRect(rtreego.Point{r.X, r.Y}, []float64{w, h})
}

// Visible returns the nodes intersecting bounds expanded by paddingFactor,
// querying the R-tree and confirming each candidate with the exact test.
func (rc *RTreeCuller) Visible(nodes []*Node, bounds Rect, paddingFactor float64) []*Node {
	if rc.stale || rc.tree == nil {
		rc.rebuild(nodes)
	}

	padded := bounds.Expand(bounds.Width*paddingFactor, bounds.Height*paddingFactor)
	query, err := spatialRect(padded)
	if err != nil {
		// Degenerate viewport; fall back to the scan.
		return LinearCuller{}.Visible(nodes, bounds, paddingFactor)
	}

	candidates := rc.tree.SearchIntersect(query)
	visible := make([]*Node, 0, len(candidates))
	for _, s := range candidates {
		n := s.(*nodeEntry).node
		if n.Rect().Intersects(padded) {
			visible = append(visible, n)
		}
	}
	return visible
}

// Invalidate marks the index for rebuild on the next query.
func (rc *RTreeCuller) Invalidate() {
	rc.stale = true
}

func (rc *RTreeCuller) rebuild(nodes []*Node) {
	rc.tree = rtreego.NewTree(2, 25, 50)
	for _, n := range nodes {
		rect, err := spatialRect(n.Rect())
		if err != nil {
			continue
		}
		rc.tree.Insert(&nodeEntry{node: n, rect: rect})
	}
	rc.stale = false
}
