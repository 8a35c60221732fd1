// Package pointcloud defines the point-cloud collaborator interface the
// tileset builder reads from, plus the concrete sources etiles can open: an
// in-memory source, a GeoJSON source, a DuckDB-backed Parquet/CSV source,
// and a minimal LAS reader, dispatched by file extension through Open (see
// auto.go), mirroring the original's epoint::io::AutoReader.
package pointcloud

import (
	"github.com/paulmach/orb"

	"github.com/envis-space/etiles/internal/octree"
)

// Color is a linear sRGB color sample.
type Color struct {
	R, G, B float32
}

// PointCloud is the upstream collaborator the tileset builder consumes:
// an ordered sequence of points in some source CRS, optional per-point
// color, and a declared local center used to derive the tile's anchor
// isometry.
type PointCloud interface {
	// Height returns the number of points.
	Height() uint64
	// GetAllPoints returns every point's (lon, lat) and ellipsoidal height,
	// in source-CRS order.
	GetAllPoints() ([]orb.Point, []float64)
	// GetAllColors returns per-point colors, or ok=false if the source
	// carries no color channel (callers fall back to octree.DefaultColor).
	GetAllColors() ([]Color, bool)
	// GetLocalCenter returns the reference point (lon, lat) and height
	// later used to derive the tile's root isometry.
	GetLocalCenter() (orb.Point, float64)
}

// InMemory is a PointCloud held entirely in memory, used by tests and by
// readers that materialize their entire source up front.
type InMemory struct {
	Points      []orb.Point
	Heights     []float64
	Colors      []Color
	HasColors   bool
	LocalCenter orb.Point
	CenterH     float64
}

func (p *InMemory) Height() uint64 { return uint64(len(p.Points)) }

func (p *InMemory) GetAllPoints() ([]orb.Point, []float64) { return p.Points, p.Heights }

func (p *InMemory) GetAllColors() ([]Color, bool) {
	if !p.HasColors {
		return nil, false
	}
	return p.Colors, true
}

func (p *InMemory) GetLocalCenter() (orb.Point, float64) { return p.LocalCenter, p.CenterH }

// ToVertexColor converts a pointcloud.Color to octree.Color, falling back
// to octree.DefaultColor when the source declared no color channel.
func ToVertexColor(c Color, ok bool) octree.Color {
	if !ok {
		return octree.DefaultColor
	}
	return octree.Color{R: c.R, G: c.G, B: c.B}
}
