package octree

import (
	"math"

	"github.com/envis-space/etiles/internal/geom"
)

// BoundingCube is an axis-aligned cube described by its center and its
// HalfEdge (half the side length). The field is named HalfEdge rather than
// the original's ambiguous "width" per the spec's own redesign note: the
// original's get_lower_bound/get_upper_bound used the raw field as a full
// half-edge while its serialized bounding_array() used half of it, a 2x
// mismatch. Naming the field for what it actually is removes the trap
// instead of reproducing it.
type BoundingCube struct {
	Center   geom.Vec3
	HalfEdge float64
}

// Lower returns the cube's minimum corner.
func (c BoundingCube) Lower() geom.Vec3 {
	return geom.Vec3{X: c.Center.X - c.HalfEdge, Y: c.Center.Y - c.HalfEdge, Z: c.Center.Z - c.HalfEdge}
}

// Upper returns the cube's maximum corner.
func (c BoundingCube) Upper() geom.Vec3 {
	return geom.Vec3{X: c.Center.X + c.HalfEdge, Y: c.Center.Y + c.HalfEdge, Z: c.Center.Z + c.HalfEdge}
}

// Diagonal returns Upper-Lower.
func (c BoundingCube) Diagonal() geom.Vec3 {
	return c.Upper().Sub(c.Lower())
}

// Volume returns the cube's volume, (2*HalfEdge)^3.
func (c BoundingCube) Volume() float64 {
	side := 2 * c.HalfEdge
	return side * side * side
}

// Octant returns the child cube selected by the three half-selectors: each
// true picks the upper half along that axis, matching OctantIndex's child
// numbering (i.e. xHalf==true means child x-bit 1).
func (c BoundingCube) Octant(xHalf, yHalf, zHalf bool) BoundingCube {
	half := c.HalfEdge / 2
	sign := func(b bool) float64 {
		if b {
			return 1
		}
		return -1
	}
	center := geom.Vec3{
		X: c.Center.X + half*sign(xHalf),
		Y: c.Center.Y + half*sign(yHalf),
		Z: c.Center.Z + half*sign(zHalf),
	}
	return BoundingCube{Center: center, HalfEdge: half}
}

// AtIndex returns the bounding cube of the descendant octant addressed by
// index, computed directly from this cube treated as the root (level 0).
func (c BoundingCube) AtIndex(index OctantIndex) BoundingCube {
	if index.Level == 0 {
		return c
	}
	halfEdge := math.Ldexp(c.HalfEdge, -int(index.Level))
	cellSide := 2 * halfEdge
	lower := c.Lower()
	center := geom.Vec3{
		X: lower.X + (float64(index.X)+0.5)*cellSide,
		Y: lower.Y + (float64(index.Y)+0.5)*cellSide,
		Z: lower.Z + (float64(index.Z)+0.5)*cellSide,
	}
	return BoundingCube{Center: center, HalfEdge: halfEdge}
}

// XAxis returns the half-axis vector along X, as used in the serialized
// 3D Tiles box bounding volume.
func (c BoundingCube) XAxis() geom.Vec3 { return geom.Vec3{X: c.HalfEdge} }

// YAxis returns the half-axis vector along Y.
func (c BoundingCube) YAxis() geom.Vec3 { return geom.Vec3{Y: c.HalfEdge} }

// ZAxis returns the half-axis vector along Z.
func (c BoundingCube) ZAxis() geom.Vec3 { return geom.Vec3{Z: c.HalfEdge} }

// BoundingArray returns the 12-double 3D Tiles box representation: center
// xyz followed by the X, Y, Z half-axis vectors in row order.
func (c BoundingCube) BoundingArray() [12]float64 {
	x, y, z := c.XAxis(), c.YAxis(), c.ZAxis()
	return [12]float64{
		c.Center.X, c.Center.Y, c.Center.Z,
		x.X, x.Y, x.Z,
		y.X, y.Y, y.Z,
		z.X, z.Y, z.Z,
	}
}

// BoundingRegion is a geodetic footprint described by its south-west/min and
// north-east/max corners, each (longitude, latitude, height) in degrees.
type BoundingRegion struct {
	SouthWestMinHeight geom.Vec3
	NorthEastMaxHeight geom.Vec3
}

// AsArray serializes the region as [west, south, east, north, minH, maxH] in
// radians, the layout a 3D Tiles `region` bounding volume expects.
func (r BoundingRegion) AsArray() [6]float64 {
	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }
	return [6]float64{
		toRad(r.SouthWestMinHeight.X),
		toRad(r.SouthWestMinHeight.Y),
		toRad(r.NorthEastMaxHeight.X),
		toRad(r.NorthEastMaxHeight.Y),
		r.SouthWestMinHeight.Z,
		r.NorthEastMaxHeight.Z,
	}
}
