// Package canvasstore is a SQLite-backed implementation of quilt.Store.
//
// One database file holds any number of canvases. The view config lives on
// the canvases table; nodes reference their canvas by ID. Writes come from
// the engine's fire-and-forget persistence pipeline, so the store keeps a
// single connection to sidestep SQLITE_BUSY under WAL.
package canvasstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	_ "modernc.org/sqlite"

	"github.com/phanxgames/quilt"
)

// DB wraps the SQLite connection and implements quilt.Store.
type DB struct {
	conn *sql.DB
}

// Open opens (or creates) the SQLite file at dbPath and runs migrations.
func Open(dbPath string) (*DB, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}
	conn, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// SQLite only supports one writer — limit to a single connection to
	// prevent SQLITE_BUSY from concurrent fire-and-forget writes.
	conn.SetMaxOpenConns(1)

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS canvases (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL DEFAULT '',
			viewport_x REAL NOT NULL DEFAULT 0,
			viewport_y REAL NOT NULL DEFAULT 0,
			viewport_zoom REAL NOT NULL DEFAULT 1.0,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS nodes (
			id TEXT PRIMARY KEY,
			canvas_id TEXT NOT NULL REFERENCES canvases(id),
			kind TEXT NOT NULL DEFAULT 'note',
			x REAL NOT NULL DEFAULT 0,
			y REAL NOT NULL DEFAULT 0,
			width REAL NOT NULL DEFAULT 300,
			height REAL NOT NULL DEFAULT 200,
			content BLOB NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_nodes_canvas ON nodes(canvas_id)`,
	}
	for _, m := range migrations {
		if _, err := db.conn.Exec(m); err != nil {
			return err
		}
	}
	return nil
}

// CreateCanvas inserts a new canvas with the default view config and
// returns its ID.
func (db *DB) CreateCanvas(ctx context.Context, name string) (string, error) {
	id := uuid.NewString()
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO canvases (id, name) VALUES (?, ?)`, id, name)
	if err != nil {
		return "", fmt.Errorf("create canvas: %w", err)
	}
	return id, nil
}

// LoadViewConfig reads the persisted view for a canvas. A canvas that does
// not exist yet is created on the spot with the default view, matching the
// first-load lifecycle.
func (db *DB) LoadViewConfig(ctx context.Context, canvasID string) (quilt.ViewConfig, error) {
	var cfg quilt.ViewConfig
	err := db.conn.QueryRowContext(ctx,
		`SELECT viewport_zoom, viewport_x, viewport_y FROM canvases WHERE id = ?`, canvasID,
	).Scan(&cfg.Zoom, &cfg.Position.X, &cfg.Position.Y)
	if errors.Is(err, sql.ErrNoRows) {
		if _, err := db.conn.ExecContext(ctx,
			`INSERT INTO canvases (id) VALUES (?)`, canvasID); err != nil {
			return quilt.ViewConfig{}, fmt.Errorf("create canvas on first load: %w", err)
		}
		return quilt.DefaultViewConfig, nil
	}
	if err != nil {
		return quilt.ViewConfig{}, fmt.Errorf("load view config: %w", err)
	}
	return cfg, nil
}

// PersistViewConfig writes the view config for a canvas.
func (db *DB) PersistViewConfig(ctx context.Context, canvasID string, cfg quilt.ViewConfig) error {
	_, err := db.conn.ExecContext(ctx,
		`UPDATE canvases SET viewport_zoom = ?, viewport_x = ?, viewport_y = ?, updated_at = ? WHERE id = ?`,
		cfg.Zoom, cfg.Position.X, cfg.Position.Y, time.Now(), canvasID)
	if err != nil {
		return fmt.Errorf("persist view config: %w", err)
	}
	return nil
}

// LoadNodes reads all nodes for a canvas in creation order.
func (db *DB) LoadNodes(ctx context.Context, canvasID string) ([]quilt.NodeRecord, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, kind, x, y, width, height, content FROM nodes WHERE canvas_id = ? ORDER BY created_at ASC`,
		canvasID)
	if err != nil {
		return nil, fmt.Errorf("load nodes: %w", err)
	}
	defer rows.Close()

	var records []quilt.NodeRecord
	for rows.Next() {
		var r quilt.NodeRecord
		if err := rows.Scan(&r.ID, &r.Kind, &r.X, &r.Y, &r.Width, &r.Height, &r.Content); err != nil {
			return nil, fmt.Errorf("scan node: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// CreateNode inserts a node. An empty record ID gets a fresh UUID.
func (db *DB) CreateNode(ctx context.Context, canvasID string, rec quilt.NodeRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	now := time.Now()
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO nodes (id, canvas_id, kind, x, y, width, height, content, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, canvasID, rec.Kind, rec.X, rec.Y, rec.Width, rec.Height, rec.Content, now, now)
	if err != nil {
		return fmt.Errorf("create node: %w", err)
	}
	return nil
}

// UpdateNodeBounds writes back a node's position and size.
func (db *DB) UpdateNodeBounds(ctx context.Context, nodeID string, pos, size quilt.Vec2) error {
	_, err := db.conn.ExecContext(ctx,
		`UPDATE nodes SET x = ?, y = ?, width = ?, height = ?, updated_at = ? WHERE id = ?`,
		pos.X, pos.Y, size.X, size.Y, time.Now(), nodeID)
	if err != nil {
		return fmt.Errorf("update node bounds: %w", err)
	}
	return nil
}
