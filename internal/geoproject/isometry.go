package geoproject

import (
	"math"

	"github.com/paulmach/orb"

	"github.com/envis-space/etiles/internal/geom"
)

// ConvertIsometry derives the rigid transform from a tile's local
// Cartesian frame to ECEF: the translation is the ECEF position of the
// tile's geodetic origin, and the rotation aligns the local frame's axes
// (east, north, up) with ECEF at that origin, the standard ENU-to-ECEF
// basis change used to orient 3D Tiles content roots.
func ConvertIsometry(projector GeoProjector, origin orb.Point, height float64) (geom.Isometry, error) {
	translation, err := projector.ToECEF(origin, height)
	if err != nil {
		return geom.Isometry{}, err
	}

	lonRad := origin.Lon() * math.Pi / 180
	latRad := origin.Lat() * math.Pi / 180
	sinLon, cosLon := math.Sin(lonRad), math.Cos(lonRad)
	sinLat, cosLat := math.Sin(latRad), math.Cos(latRad)

	east := geom.Vec3{X: -sinLon, Y: cosLon, Z: 0}
	north := geom.Vec3{X: -sinLat * cosLon, Y: -sinLat * sinLon, Z: cosLat}
	up := geom.Vec3{X: cosLat * cosLon, Y: cosLat * sinLon, Z: sinLat}

	rotation := quaternionFromBasis(east, north, up)
	return geom.Isometry{Rotation: rotation, Translation: translation}, nil
}

// quaternionFromBasis builds the unit quaternion whose rotation matrix has
// columns ex, ey, ez (Shepperd's method).
func quaternionFromBasis(ex, ey, ez geom.Vec3) geom.Quaternion {
	m00, m01, m02 := ex.X, ey.X, ez.X
	m10, m11, m12 := ex.Y, ey.Y, ez.Y
	m20, m21, m22 := ex.Z, ey.Z, ez.Z

	trace := m00 + m11 + m22
	switch {
	case trace > 0:
		s := 0.5 / math.Sqrt(trace+1)
		return geom.Quaternion{
			W: 0.25 / s,
			X: (m21 - m12) * s,
			Y: (m02 - m20) * s,
			Z: (m10 - m01) * s,
		}
	case m00 > m11 && m00 > m22:
		s := 2 * math.Sqrt(1+m00-m11-m22)
		return geom.Quaternion{
			W: (m21 - m12) / s,
			X: 0.25 * s,
			Y: (m01 + m10) / s,
			Z: (m02 + m20) / s,
		}
	case m11 > m22:
		s := 2 * math.Sqrt(1+m11-m00-m22)
		return geom.Quaternion{
			W: (m02 - m20) / s,
			X: (m01 + m10) / s,
			Y: 0.25 * s,
			Z: (m12 + m21) / s,
		}
	default:
		s := 2 * math.Sqrt(1+m22-m00-m11)
		return geom.Quaternion{
			W: (m10 - m01) / s,
			X: (m02 + m20) / s,
			Y: (m12 + m21) / s,
			Z: 0.25 * s,
		}
	}
}
