// Package geom provides the minimal 3D vector, quaternion and rigid-isometry
// math the tileset builder needs. No example in the retrieval pack exercises
// a concrete vector/quaternion library with a signature we could ground
// against confidently (see DESIGN.md), so this stays on stdlib math, the way
// the teacher repo falls back to plain arithmetic wherever none of its
// imported geometry libraries (orb, mvt, planar) cover a need.
package geom

import "math"

// Vec3 is a point or free vector in a Cartesian frame.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns a+b.
func (a Vec3) Add(b Vec3) Vec3 { return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }

// Sub returns a-b.
func (a Vec3) Sub(b Vec3) Vec3 { return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }

// Scale returns v scaled by f.
func (v Vec3) Scale(f float64) Vec3 { return Vec3{v.X * f, v.Y * f, v.Z * f} }

// Dot returns the dot product a.b.
func (a Vec3) Dot(b Vec3) float64 { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }

// Norm returns the Euclidean length of v.
func (v Vec3) Norm() float64 { return math.Sqrt(v.Dot(v)) }

// Array returns the vector as [x,y,z].
func (v Vec3) Array() [3]float64 { return [3]float64{v.X, v.Y, v.Z} }
