package quilt

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/tanema/gween/ease"
)

// Button zoom step and the duration/easing of programmatic navigation.
const (
	buttonZoomStep = 1.2
	navDuration    = 0.5 // seconds
	// contentMargin leaves breathing room around the content bounding box
	// when framing it.
	contentMargin = 0.9
)

// Canvas is the viewport engine for one boundless 2D surface: it owns the
// camera transform, the gesture state machine, camera animation, render
// culling, node placement, and the persistence pipeline. Rendering, content,
// and durable storage are collaborators.
//
// All methods must be called from a single goroutine, conventionally the
// host's frame loop. The only internal asynchrony is fire-and-forget store
// writes, which never touch engine state.
type Canvas struct {
	id        string
	transform Transform
	screenW   float64
	screenH   float64

	gesture gestureState
	anim    *cameraAnim
	animGen uint64

	debouncer *Debouncer
	store     Store
	reporter  ErrorReporter
	clock     func() time.Time

	nodes  []*Node
	byID   map[string]*Node
	culler Culler
	placer *PlacementEngine

	cullPadding float64

	injectQueue []syntheticEvent

	// OnViewChanged is the local persistence tier: it receives the settled
	// transform (debounced at ~150ms, flushed on gesture end) so hosts can
	// re-render without chasing every input event.
	OnViewChanged func(Transform)

	debug bool
}

// NewCanvas creates a canvas backed by the given store. store may be nil for
// a purely in-memory canvas (nothing persists, nothing loads).
func NewCanvas(store Store) *Canvas {
	c := &Canvas{
		transform:   IdentityTransform,
		screenW:     800,
		screenH:     600,
		store:       store,
		reporter:    nopReporter{},
		clock:       time.Now,
		byID:        make(map[string]*Node),
		culler:      LinearCuller{},
		placer:      NewPlacementEngine(),
		cullPadding: DefaultCullPadding,
		debug:       debugEnv,
	}
	c.debouncer = NewDebouncer(DefaultLocalDelay, DefaultRemoteDelay, c.commitLocal, c.persistRemote)
	return c
}

// SetErrorReporter routes non-fatal store failures to r.
func (c *Canvas) SetErrorReporter(r ErrorReporter) {
	if r == nil {
		r = nopReporter{}
	}
	c.reporter = r
}

// SetCuller swaps the culling strategy (e.g. an RTreeCuller for very large
// canvases). Passing nil restores the linear scan.
func (c *Canvas) SetCuller(cu Culler) {
	if cu == nil {
		cu = LinearCuller{}
	}
	c.culler = cu
	c.culler.Invalidate()
}

// SetScreenSize updates the screen dimensions in pixels. Called by the host
// on window resize; viewport bounds derive from it.
func (c *Canvas) SetScreenSize(w, h float64) {
	c.screenW = w
	c.screenH = h
}

// setClock overrides the wall clock; tests drive the debouncer with it.
func (c *Canvas) setClock(fn func() time.Time) {
	c.clock = fn
}

// Load seeds the canvas from the store: the persisted view config and the
// node list, read once. Malformed persisted values never fail the load —
// they are repaired with safe defaults. An unreachable store does fail it.
func (c *Canvas) Load(ctx context.Context, canvasID string) error {
	c.id = canvasID
	if c.store == nil {
		return nil
	}

	cfg, err := c.store.LoadViewConfig(ctx, canvasID)
	if err != nil {
		return fmt.Errorf("load view config: %w", err)
	}
	c.transform = sanitizeViewConfig(cfg)

	records, err := c.store.LoadNodes(ctx, canvasID)
	if err != nil {
		return fmt.Errorf("load nodes: %w", err)
	}
	c.nodes = c.nodes[:0]
	clear(c.byID)
	for _, rec := range records {
		n := nodeFromRecord(rec)
		c.nodes = append(c.nodes, n)
		c.byID[n.ID] = n
	}
	c.culler.Invalidate()
	c.debugf("loaded canvas %s: %d nodes, zoom=%.3f", canvasID, len(c.nodes), c.transform.Scale)
	return nil
}

// sanitizeViewConfig turns a persisted view config into a valid Transform,
// substituting defaults for damaged values.
func sanitizeViewConfig(cfg ViewConfig) Transform {
	zoom := cfg.Zoom
	if !isFinite(zoom) || zoom <= 0 {
		zoom = 1
	}
	pos := cfg.Position
	if !isFinite(pos.X) || !isFinite(pos.Y) {
		pos = Vec2{}
	}
	return Transform{Scale: ClampScale(zoom), Translation: pos}
}

// Update advances the engine by dt seconds: the in-flight camera animation
// and the persistence timers. Call once per frame.
func (c *Canvas) Update(dt float64) {
	c.processInjected()
	c.tickAnimation(dt)
	c.debouncer.Tick(c.clock())
}

// View returns the current camera transform.
func (c *Canvas) View() Transform {
	return c.transform
}

// SetView sets the camera transform directly (clamping scale) and triggers
// the persistence pipeline. Gestures and animation are the usual mutation
// paths; this exists for hosts restoring or syncing a view.
func (c *Canvas) SetView(t Transform) {
	t.Scale = ClampScale(t.Scale)
	c.cancelAnimation()
	c.transform = t
	c.scheduleChange()
}

// ViewportBounds returns the currently visible world rectangle.
func (c *Canvas) ViewportBounds() Rect {
	return c.transform.ViewportBounds(c.screenW, c.screenH)
}

// ScreenCenter returns the center of the screen in screen coordinates.
func (c *Canvas) ScreenCenter() Vec2 {
	return Vec2{c.screenW / 2, c.screenH / 2}
}

// --- Camera commands ---

// ZoomIn zooms one step in, anchored at the viewport center.
func (c *Canvas) ZoomIn() {
	c.zoomStep(buttonZoomStep)
}

// ZoomOut zooms one step out, anchored at the viewport center.
func (c *Canvas) ZoomOut() {
	c.zoomStep(1 / buttonZoomStep)
}

func (c *Canvas) zoomStep(factor float64) {
	c.cancelAnimation()
	c.transform = c.transform.SetScaleAnchored(c.transform.Scale*factor, c.ScreenCenter())
	c.scheduleChange()
}

// CenterOnContent animates the camera to frame the bounding box of the
// given nodes (nil means all nodes on the canvas). An empty canvas animates
// back to the default view with the origin centered.
func (c *Canvas) CenterOnContent(nodes []*Node) {
	if nodes == nil {
		nodes = c.nodes
	}
	if len(nodes) == 0 {
		c.AnimateTo(c.framing(Vec2{}, 1), navDuration, ease.OutCubic)
		return
	}

	bbox := nodes[0].Rect()
	for _, n := range nodes[1:] {
		bbox = union(bbox, n.Rect())
	}
	scale := ClampScale(math.Min(
		c.screenW*contentMargin/bbox.Width,
		c.screenH*contentMargin/bbox.Height,
	))
	c.AnimateTo(c.framing(bbox.Center(), scale), navDuration, ease.OutCubic)
}

// NavigateToNode animates the camera so the node is centered in the
// viewport at the current zoom.
func (c *Canvas) NavigateToNode(nodeID string) error {
	n, ok := c.byID[nodeID]
	if !ok {
		return fmt.Errorf("navigate: unknown node %q", nodeID)
	}
	c.AnimateTo(c.framing(n.Rect().Center(), c.transform.Scale), navDuration, ease.OutCubic)
	return nil
}

// NavigateToWorldPoint animates the camera so the world point (x, y) is
// centered in the viewport at the current zoom.
func (c *Canvas) NavigateToWorldPoint(x, y float64) {
	c.AnimateTo(c.framing(Vec2{x, y}, c.transform.Scale), navDuration, ease.OutCubic)
}

// framing returns the transform that puts the world point at the screen
// center at the given scale.
func (c *Canvas) framing(world Vec2, scale float64) Transform {
	scale = ClampScale(scale)
	center := c.ScreenCenter()
	return Transform{
		Scale:       scale,
		Translation: Vec2{center.X - world.X*scale, center.Y - world.Y*scale},
	}
}

func union(a, b Rect) Rect {
	x0 := math.Min(a.X, b.X)
	y0 := math.Min(a.Y, b.Y)
	x1 := math.Max(a.X+a.Width, b.X+b.Width)
	y1 := math.Max(a.Y+a.Height, b.Y+b.Height)
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// --- Nodes ---

// Nodes returns the canvas's node list. The returned slice MUST NOT be
// mutated.
func (c *Canvas) Nodes() []*Node {
	return c.nodes
}

// Node returns the node with the given ID, or nil.
func (c *Canvas) Node(id string) *Node {
	return c.byID[id]
}

// VisibleNodes returns the subset of nodes worth rendering for the current
// viewport, per the configured Culler.
func (c *Canvas) VisibleNodes() []*Node {
	return c.culler.Visible(c.nodes, c.ViewportBounds(), c.cullPadding)
}

// CreateNode places and creates a node of the given kind and size. The
// position comes from the placement engine using the current viewport; the
// node joins the canvas immediately and the store write is fire-and-forget.
func (c *Canvas) CreateNode(kind NodeKind, size Vec2) *Node {
	if size.X <= 0 {
		size.X = defaultNodeW
	}
	if size.Y <= 0 {
		size.Y = defaultNodeH
	}
	bounds := c.ViewportBounds()
	pos := c.placer.Place(c.nodes, size, &bounds)

	n := &Node{
		ID:       uuid.NewString(),
		Kind:     kind,
		Position: pos,
		Size:     size,
	}
	c.nodes = append(c.nodes, n)
	c.byID[n.ID] = n
	c.culler.Invalidate()
	c.debugf("created node %s at (%.1f,%.1f)", n.ID, pos.X, pos.Y)

	if c.store != nil {
		rec := NodeRecord{
			ID: n.ID, Kind: string(n.Kind),
			X: pos.X, Y: pos.Y, Width: size.X, Height: size.Y,
		}
		canvasID := c.id
		go func() {
			if err := c.store.CreateNode(context.Background(), canvasID, rec); err != nil {
				c.reporter.ReportError("create node", err)
			}
		}()
	}
	return n
}

// SetNodeBounds writes back a node's position and size after a drag or
// resize. Non-positive dimensions are clamped to 1 world unit. Local state
// updates immediately; the store write is fire-and-forget.
func (c *Canvas) SetNodeBounds(nodeID string, pos, size Vec2) error {
	n, ok := c.byID[nodeID]
	if !ok {
		return fmt.Errorf("set bounds: unknown node %q", nodeID)
	}
	size.X = math.Max(size.X, 1)
	size.Y = math.Max(size.Y, 1)
	n.Position = pos
	n.Size = size
	c.culler.Invalidate()

	if c.store != nil {
		go func() {
			if err := c.store.UpdateNodeBounds(context.Background(), nodeID, pos, size); err != nil {
				c.reporter.ReportError("update node bounds", err)
			}
		}()
	}
	return nil
}

// --- Persistence pipeline ---

// scheduleChange restarts both persistence tiers after a transform change.
func (c *Canvas) scheduleChange() {
	c.debouncer.Schedule(c.clock())
}

// Flush persists any pending transform change immediately, bypassing the
// debounce timers. Called on gesture end, animation completion, and from
// Close.
func (c *Canvas) Flush() {
	c.debouncer.Flush()
}

// Close flushes pending persistence. The canvas is still usable afterwards;
// Close exists so teardown paths lose nothing.
func (c *Canvas) Close() {
	c.Flush()
}

// commitLocal is the local debounce tier: hand the settled transform to the
// host.
func (c *Canvas) commitLocal() {
	if c.OnViewChanged != nil {
		c.OnViewChanged(c.transform)
	}
}

// persistRemote is the remote debounce tier: write the view config to the
// store without blocking the frame loop. Failure is reported, never rolled
// back.
func (c *Canvas) persistRemote() {
	if c.store == nil || c.id == "" {
		return
	}
	cfg := ViewConfig{Zoom: c.transform.Scale, Position: c.transform.Translation}
	canvasID := c.id
	c.debugf("persisting view config zoom=%.3f pos=(%.1f,%.1f)", cfg.Zoom, cfg.Position.X, cfg.Position.Y)
	go func() {
		if err := c.store.PersistViewConfig(context.Background(), canvasID, cfg); err != nil {
			c.reporter.ReportError("persist view config", err)
		}
	}()
}
