package quilt

import "context"

// ViewConfig is the durable snapshot of the camera: created with defaults on
// first canvas load, updated by the persistence debouncer, read once at
// Canvas.Load.
type ViewConfig struct {
	Zoom     float64 `json:"zoom"`
	Position Vec2    `json:"position"`
}

// DefaultViewConfig is the view for a freshly created canvas.
var DefaultViewConfig = ViewConfig{Zoom: 1}

// NodeRecord is the raw shape of a node as it comes out of a Store, before
// boundary validation. Geometry may be zero, negative, or non-finite when
// the underlying data is damaged; nodeFromRecord repairs it.
type NodeRecord struct {
	ID      string
	Kind    string
	X       float64
	Y       float64
	Width   float64
	Height  float64
	Content []byte
}

// Store is the persistence collaborator. Load methods are called once at
// Canvas.Load to seed the engine; writes are issued fire-and-forget — their
// results never gate or roll back local state (failures go to the
// ErrorReporter instead).
type Store interface {
	LoadViewConfig(ctx context.Context, canvasID string) (ViewConfig, error)
	PersistViewConfig(ctx context.Context, canvasID string, cfg ViewConfig) error
	LoadNodes(ctx context.Context, canvasID string) ([]NodeRecord, error)
	CreateNode(ctx context.Context, canvasID string, rec NodeRecord) error
	UpdateNodeBounds(ctx context.Context, nodeID string, pos, size Vec2) error
}

// ErrorReporter receives non-fatal store failures. The camera is a
// local-first, eventually-persisted value, so a failed write is reported
// and otherwise ignored.
type ErrorReporter interface {
	ReportError(op string, err error)
}

// nopReporter swallows errors when no reporter is configured.
type nopReporter struct{}

func (nopReporter) ReportError(string, error) {}
