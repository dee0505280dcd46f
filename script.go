package quilt

import (
	"fmt"

	"github.com/goccy/go-json"
)

// scriptStep is a single action in a gesture script.
type scriptStep struct {
	Action string  `json:"action"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Factor float64 `json:"factor,omitempty"`
	Frames int     `json:"frames,omitempty"`
	Node   string  `json:"node,omitempty"`
}

// gestureScript is the top-level JSON structure.
type gestureScript struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptRunner replays a JSON gesture script against a Canvas frame by
// frame: pans, pinches, wheel zooms, navigation commands, and waits. Useful
// for demos and automated interaction testing.
//
// Supported actions: "pan" (fromX/fromY/toX/toY, frames), "pinch"
// (fromX/fromY midpoint spread by factor, frames), "wheelZoom" (x/y,
// factor>1 zooms in), "navigate" (node), "center", "wait" (frames).
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON gesture script.
func LoadScript(data []byte) (*ScriptRunner, error) {
	var script gestureScript
	if err := json.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("parse gesture script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse gesture script: no steps")
	}
	return &ScriptRunner{steps: script.Steps}, nil
}

// Done reports whether all steps have been executed and their injected
// events consumed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// Step advances the runner by one frame. Call once per frame before
// Canvas.Update.
func (r *ScriptRunner) Step(c *Canvas) error {
	if r.done {
		return nil
	}
	// Let pending injections drain before advancing.
	if c.PendingInjected() > 0 {
		return nil
	}
	if r.waitCount > 0 {
		r.waitCount--
		return nil
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return nil
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "pan":
		c.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "pinch":
		spread := 40.0
		factor := st.Factor
		if factor <= 0 {
			factor = 2
		}
		a0 := TouchPoint{X: st.FromX - spread, Y: st.FromY}
		b0 := TouchPoint{X: st.FromX + spread, Y: st.FromY}
		a1 := TouchPoint{X: st.FromX - spread*factor, Y: st.FromY}
		b1 := TouchPoint{X: st.FromX + spread*factor, Y: st.FromY}
		c.InjectPinch(a0, b0, a1, b1, st.Frames)
	case "wheelZoom":
		delta := 1.0
		if st.Factor > 1 {
			delta = -1
		}
		c.InjectWheel(st.X, st.Y, 0, delta, ModCtrl)
	case "navigate":
		if err := c.NavigateToNode(st.Node); err != nil {
			return fmt.Errorf("script step %d: %w", r.cursor-1, err)
		}
	case "center":
		c.CenterOnContent(nil)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	default:
		return fmt.Errorf("script step %d: unknown action %q", r.cursor-1, st.Action)
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && c.PendingInjected() == 0 {
		r.done = true
	}
	return nil
}
