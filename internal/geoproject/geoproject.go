// Package geoproject converts geodetic points into the Earth-Centered,
// Earth-Fixed (ECEF) frame 3D Tiles content is authored in, and carries
// rigid isometries between local Cartesian tile frames and that global
// frame. Point representation follows the teacher's use of
// github.com/paulmach/orb (see internal/tiler/gotiler/gotiler.go), which
// treats a geodetic coordinate as an orb.Point of (lon, lat) degrees.
package geoproject

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"

	"github.com/envis-space/etiles/internal/errdefs"
	"github.com/envis-space/etiles/internal/geom"
)

// SpatialReferenceIdentifier names a coordinate reference system by
// authority and code, e.g. EPSG:4979 for geodetic WGS84 3D.
type SpatialReferenceIdentifier struct {
	Authority string
	Code      int
}

func (s SpatialReferenceIdentifier) String() string {
	return fmt.Sprintf("%s:%d", s.Authority, s.Code)
}

// WGS84Geographic3D is the geodetic (lon, lat, height) reference frame
// input point clouds are expected to supply coordinates in.
var WGS84Geographic3D = SpatialReferenceIdentifier{Authority: "EPSG", Code: 4979}

// WGS84Geographic2D is the plain (lon, lat) WGS84 reference frame, EPSG:4326.
// Geodetic height is carried separately from the point cloud (GetAllPoints'
// height slice), so 4326 and 4979 source clouds are projected identically:
// the CRS code only distinguishes whether height travels inside the point
// or alongside it, not the ellipsoid or the ECEF conversion itself.
var WGS84Geographic2D = SpatialReferenceIdentifier{Authority: "EPSG", Code: 4326}

// ECEF is the Earth-Centered, Earth-Fixed frame 3D Tiles content roots are
// transformed into.
var ECEF = SpatialReferenceIdentifier{Authority: "EPSG", Code: 4978}

// GeoProjector converts between a geodetic reference frame and ECEF. An
// implementation need not be safe for concurrent use by multiple
// goroutines; callers needing parallelism construct one instance per
// worker (see internal/tileset).
type GeoProjector interface {
	// Source returns the geodetic reference frame this projector accepts.
	Source() SpatialReferenceIdentifier
	// ToECEF converts a geodetic point and ellipsoidal height to ECEF.
	ToECEF(p orb.Point, height float64) (geom.Vec3, error)
	// FromECEF converts an ECEF position back to a geodetic point and
	// ellipsoidal height.
	FromECEF(v geom.Vec3) (orb.Point, float64, error)
}

// wgs84Projector implements GeoProjector for the WGS84 ellipsoid using the
// closed-form geodetic-to-ECEF formulas and Bowring's iterative inverse.
type wgs84Projector struct{}

// NewWGS84Projector returns the default GeoProjector, converting WGS84
// geodetic coordinates to and from ECEF.
func NewWGS84Projector() GeoProjector { return wgs84Projector{} }

// NewProjector returns a fresh GeoProjector instance for the given source
// EPSG code. Each call returns an independent value so that parallel
// reprojection workers (internal/tileset) can each own one, matching the
// original's "each worker instantiates its own projector" requirement.
// EPSG:4326 (geodetic WGS84 2D) and EPSG:4979 (geodetic WGS84 3D) are both
// accepted as a source: both address longitude/latitude on the same WGS84
// ellipsoid, and ellipsoidal height always arrives separately from the
// point cloud rather than from the CRS code itself.
func NewProjector(source SpatialReferenceIdentifier) (GeoProjector, error) {
	if source.Authority == "EPSG" && (source.Code == WGS84Geographic3D.Code || source.Code == WGS84Geographic2D.Code) {
		return wgs84Projector{}, nil
	}
	return nil, errdefs.ProjectionFailed(fmt.Sprintf("unsupported source CRS %s", source), nil)
}

const (
	wgs84SemiMajorAxis  = 6378137.0
	wgs84Flattening     = 1.0 / 298.257223563
	wgs84EccentricitySq = wgs84Flattening * (2 - wgs84Flattening)
)

func (wgs84Projector) Source() SpatialReferenceIdentifier { return WGS84Geographic3D }

func (wgs84Projector) ToECEF(p orb.Point, height float64) (geom.Vec3, error) {
	lon, lat := p.Lon(), p.Lat()
	if math.IsNaN(lon) || math.IsNaN(lat) || math.IsNaN(height) {
		return geom.Vec3{}, errdefs.ProjectionFailed("non-finite geodetic coordinate", nil)
	}
	lonRad := lon * math.Pi / 180
	latRad := lat * math.Pi / 180
	sinLat, cosLat := math.Sin(latRad), math.Cos(latRad)
	sinLon, cosLon := math.Sin(lonRad), math.Cos(lonRad)

	primeVerticalRadius := wgs84SemiMajorAxis / math.Sqrt(1-wgs84EccentricitySq*sinLat*sinLat)

	x := (primeVerticalRadius + height) * cosLat * cosLon
	y := (primeVerticalRadius + height) * cosLat * sinLon
	z := (primeVerticalRadius*(1-wgs84EccentricitySq) + height) * sinLat
	return geom.Vec3{X: x, Y: y, Z: z}, nil
}

// FromECEF inverts ToECEF using Bowring's method, converging to better than
// millimeter accuracy within a handful of iterations for any point near the
// Earth's surface.
func (wgs84Projector) FromECEF(v geom.Vec3) (orb.Point, float64, error) {
	if math.IsNaN(v.X) || math.IsNaN(v.Y) || math.IsNaN(v.Z) {
		return orb.Point{}, 0, errdefs.ProjectionFailed("non-finite ECEF coordinate", nil)
	}
	lon := math.Atan2(v.Y, v.X)
	p := math.Hypot(v.X, v.Y)
	if p == 0 {
		return orb.Point{}, 0, errdefs.ProjectionFailed("ECEF point lies on the polar axis", nil)
	}

	lat := math.Atan2(v.Z, p*(1-wgs84EccentricitySq))
	for i := 0; i < 8; i++ {
		sinLat := math.Sin(lat)
		primeVerticalRadius := wgs84SemiMajorAxis / math.Sqrt(1-wgs84EccentricitySq*sinLat*sinLat)
		height := p/math.Cos(lat) - primeVerticalRadius
		lat = math.Atan2(v.Z, p*(1-wgs84EccentricitySq*primeVerticalRadius/(primeVerticalRadius+height)))
	}

	sinLat := math.Sin(lat)
	primeVerticalRadius := wgs84SemiMajorAxis / math.Sqrt(1-wgs84EccentricitySq*sinLat*sinLat)
	height := p/math.Cos(lat) - primeVerticalRadius

	return orb.Point{lon * 180 / math.Pi, lat * 180 / math.Pi}, height, nil
}
