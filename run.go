package quilt

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// wheelLineHeight converts wheel notches to pan pixels.
const wheelLineHeight = 20.0

// RunConfig configures the Run host loop.
type RunConfig struct {
	Title  string
	Width  int
	Height int
	// ShowFPS draws an FPS/TPS readout in the corner.
	ShowFPS bool
	// ClearColor is the background. Zero value means a dark neutral.
	ClearColor color.RGBA
	// UpdateFunc, if set, runs every frame before the canvas updates.
	// Returning an error stops the loop.
	UpdateFunc func(*Canvas) error
}

// Run opens a window and drives the canvas with ebiten: it translates
// mouse, wheel, and touch input into engine events, ticks the engine each
// frame, and draws the visible nodes as flat rectangles. Content rendering
// is a collaborator's job; this host exists for demos and interaction
// testing. Blocks until the window closes.
func Run(c *Canvas, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 800
	}
	if cfg.Height <= 0 {
		cfg.Height = 600
	}
	if cfg.ClearColor == (color.RGBA{}) {
		cfg.ClearColor = color.RGBA{R: 30, G: 30, B: 40, A: 255}
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	c.SetScreenSize(float64(cfg.Width), float64(cfg.Height))
	g := &hostGame{canvas: c, cfg: cfg}
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("run canvas: %w", err)
	}
	c.Close()
	return nil
}

// hostGame adapts a Canvas to ebiten.Game.
type hostGame struct {
	canvas *Canvas
	cfg    RunConfig

	mouseDown    bool
	lastX, lastY int

	touchIDs    []ebiten.TouchID
	touchActive bool
}

func (g *hostGame) Update() error {
	if g.cfg.UpdateFunc != nil {
		if err := g.cfg.UpdateFunc(g.canvas); err != nil {
			return err
		}
	}

	g.processMouse()
	g.processWheel()
	g.processTouch()

	g.canvas.Update(1.0 / float64(ebiten.TPS()))
	return nil
}

func (g *hostGame) processMouse() {
	x, y := ebiten.CursorPosition()
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)

	switch {
	case pressed && !g.mouseDown:
		g.canvas.PointerDown(PointerEvent{X: float64(x), Y: float64(y), Button: MouseButtonLeft})
	case pressed && (x != g.lastX || y != g.lastY):
		g.canvas.PointerMove(PointerEvent{X: float64(x), Y: float64(y), Button: MouseButtonLeft})
	case !pressed && g.mouseDown:
		g.canvas.PointerUp(PointerEvent{X: float64(x), Y: float64(y), Button: MouseButtonLeft})
	}
	g.mouseDown = pressed
	g.lastX, g.lastY = x, y
}

func (g *hostGame) processWheel() {
	xo, yo := ebiten.Wheel()
	if xo == 0 && yo == 0 {
		return
	}
	x, y := ebiten.CursorPosition()
	// Ebiten reports positive Y for scrolling up; the engine follows the
	// DOM convention where positive deltaY scrolls down.
	g.canvas.Wheel(WheelEvent{
		X: float64(x), Y: float64(y),
		DeltaX:    -xo * wheelLineHeight,
		DeltaY:    -yo * wheelLineHeight,
		Modifiers: readModifiers(),
	})
}

func (g *hostGame) processTouch() {
	g.touchIDs = ebiten.AppendTouchIDs(g.touchIDs[:0])
	points := make([]TouchPoint, 0, len(g.touchIDs))
	for _, id := range g.touchIDs {
		tx, ty := ebiten.TouchPosition(id)
		points = append(points, TouchPoint{X: float64(tx), Y: float64(ty)})
	}

	justPressed := len(inpututil.AppendJustPressedTouchIDs(nil)) > 0
	justReleased := len(inpututil.AppendJustReleasedTouchIDs(nil)) > 0

	switch {
	case justPressed:
		g.canvas.TouchStart(points)
		g.touchActive = true
	case justReleased && g.touchActive:
		g.canvas.TouchEnd(points)
		g.touchActive = len(points) > 0
	case g.touchActive && len(points) > 0:
		g.canvas.TouchMove(points)
	}
}

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= ModMeta
	}
	return mods
}

// kindColors gives each node kind a flat placeholder color.
var kindColors = map[NodeKind]color.RGBA{
	KindNote:  {R: 80, G: 140, B: 220, A: 255},
	KindImage: {R: 90, G: 190, B: 120, A: 255},
	KindCode:  {R: 200, G: 160, B: 70, A: 255},
	KindEmbed: {R: 180, G: 100, B: 190, A: 255},
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	screen.Fill(g.cfg.ClearColor)

	t := g.canvas.View()
	for _, n := range g.canvas.VisibleNodes() {
		p := t.WorldToScreen(n.Position)
		w := float32(n.Size.X * t.Scale)
		h := float32(n.Size.Y * t.Scale)
		fill, ok := kindColors[n.Kind]
		if !ok {
			fill = color.RGBA{R: 120, G: 120, B: 120, A: 255}
		}
		vector.DrawFilledRect(screen, float32(p.X), float32(p.Y), w, h, fill, true)
		vector.StrokeRect(screen, float32(p.X), float32(p.Y), w, h, 1, color.RGBA{R: 240, G: 240, B: 240, A: 255}, true)
	}

	if g.cfg.ShowFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf(
			"FPS: %.1f  TPS: %.1f  zoom: %.2f  nodes: %d/%d",
			ebiten.ActualFPS(), ebiten.ActualTPS(),
			t.Scale, len(g.canvas.VisibleNodes()), len(g.canvas.Nodes())))
	}
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.canvas.SetScreenSize(float64(outsideWidth), float64(outsideHeight))
	return outsideWidth, outsideHeight
}
