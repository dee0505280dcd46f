package quilt

import "math"

// Placement tuning. NodePadding surrounds a candidate rectangle during the
// overlap test; EdgePadding keeps spiral candidates away from the viewport
// edges; GridSize is the cell size of the fallback scan.
const (
	NodePadding = 20.0
	EdgePadding = 20.0
	GridSize    = 30.0

	spiralStartRadius = 100.0
	spiralAngleStep   = math.Pi / 6
	spiralRadiusStep  = 60.0
	spiralMaxSteps    = 50
)

// PlacementEngine finds a free position for a newly created node among the
// existing ones. It never fails: the fallback chain always yields a
// position, accepting overlap in the worst case.
type PlacementEngine struct {
	padding float64
	edge    float64
	grid    float64
}

// NewPlacementEngine returns a PlacementEngine with default tuning.
func NewPlacementEngine() *PlacementEngine {
	return &PlacementEngine{
		padding: NodePadding,
		edge:    EdgePadding,
		grid:    GridSize,
	}
}

// Place returns a world position (top-left corner) for a node of the given
// size. viewport is the current visible world rectangle, or nil when no
// viewport is available (e.g. headless creation), in which case the node is
// centered on the world origin.
//
// Strategy, first success wins: viewport center, outward spiral around it,
// row-major grid scan of the viewport, and finally the padded viewport
// origin — which may overlap and is an accepted degradation.
func (p *PlacementEngine) Place(existing []*Node, size Vec2, viewport *Rect) Vec2 {
	if viewport == nil {
		return Vec2{X: -size.X / 2, Y: -size.Y / 2}
	}

	center := viewport.Center()
	if pos, ok := p.tryCentered(existing, size, center); ok {
		return pos
	}
	if pos, ok := p.trySpiral(existing, size, *viewport, center); ok {
		return pos
	}
	if pos, ok := p.tryGrid(existing, size, *viewport); ok {
		return pos
	}
	return Vec2{X: viewport.X + p.padding, Y: viewport.Y + p.padding}
}

// tryCentered tests the rectangle centered on pt.
func (p *PlacementEngine) tryCentered(existing []*Node, size Vec2, pt Vec2) (Vec2, bool) {
	pos := Vec2{X: pt.X - size.X/2, Y: pt.Y - size.Y/2}
	if !p.overlapsAny(existing, Rect{pos.X, pos.Y, size.X, size.Y}) {
		return pos, true
	}
	return Vec2{}, false
}

// trySpiral probes candidate centers on an outward spiral around center:
// twelve probes per ring, radius growing by spiralRadiusStep per full turn.
// A candidate is accepted only if it lies inside the viewport shrunk by the
// edge padding and overlaps nothing.
func (p *PlacementEngine) trySpiral(existing []*Node, size Vec2, viewport Rect, center Vec2) (Vec2, bool) {
	inner := viewport.Expand(-p.edge, -p.edge)
	radius := spiralStartRadius
	angle := 0.0
	for i := 0; i < spiralMaxSteps; i++ {
		pos := Vec2{
			X: center.X + radius*math.Cos(angle) - size.X/2,
			Y: center.Y + radius*math.Sin(angle) - size.Y/2,
		}
		rect := Rect{pos.X, pos.Y, size.X, size.Y}
		if inner.ContainsRect(rect) && !p.overlapsAny(existing, rect) {
			return pos, true
		}
		angle += spiralAngleStep
		if angle >= 2*math.Pi {
			angle -= 2 * math.Pi
			radius += spiralRadiusStep
		}
	}
	return Vec2{}, false
}

// tryGrid scans grid cells covering the viewport in row-major order and
// returns the first collision-free cell origin.
func (p *PlacementEngine) tryGrid(existing []*Node, size Vec2, viewport Rect) (Vec2, bool) {
	for y := viewport.Y; y < viewport.Y+viewport.Height; y += p.grid {
		for x := viewport.X; x < viewport.X+viewport.Width; x += p.grid {
			rect := Rect{x, y, size.X, size.Y}
			if !p.overlapsAny(existing, rect) {
				return Vec2{X: x, Y: y}, true
			}
		}
	}
	return Vec2{}, false
}

// overlapsAny expands only the candidate rectangle by the node padding and
// tests it against each existing node's unpadded rectangle. The asymmetry
// reproduces the sibling frontend's behavior; keep it unless that changes.
func (p *PlacementEngine) overlapsAny(existing []*Node, candidate Rect) bool {
	padded := candidate.Expand(p.padding, p.padding)
	for _, n := range existing {
		if padded.Intersects(n.Rect()) {
			return true
		}
	}
	return false
}
