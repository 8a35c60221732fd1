package octree

import "github.com/envis-space/etiles/internal/geom"

// Color is a linear sRGB color sample, stored as three float32 channels to
// match the glTF COLOR_0 accessor layout it eventually feeds.
type Color struct {
	R, G, B float32
}

// DefaultColor is used for every vertex when the source point cloud has no
// color channel, matching the original's hard-coded linear-gray fallback.
var DefaultColor = Color{R: 0.83144885, G: 0.83144885, B: 0.83144885}

// Vertex is a point in the local Cartesian frame with its color, the unit
// the octree partitions and the GLB emitter encodes.
type Vertex struct {
	Position geom.Vec3
	Color    Color
}

// Center returns the vertex position: a point's AABB degenerates to itself.
func (v Vertex) Center() geom.Vec3 { return v.Position }

// Min returns the AABB minimum corner, the vertex position.
func (v Vertex) Min() geom.Vec3 { return v.Position }

// Max returns the AABB maximum corner, the vertex position.
func (v Vertex) Max() geom.Vec3 { return v.Position }
