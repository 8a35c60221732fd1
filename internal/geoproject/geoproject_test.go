package geoproject

import (
	"math"
	"testing"

	"github.com/paulmach/orb"

	"github.com/envis-space/etiles/internal/geom"
)

func almostEqual(a, b, tol float64) bool { return math.Abs(a-b) <= tol }

func TestWGS84RoundTrip(t *testing.T) {
	projector := NewWGS84Projector()
	cases := []struct {
		lon, lat, height float64
	}{
		{0, 0, 0},
		{151.2093, -33.8688, 50},
		{-122.4194, 37.7749, 16},
		{45, 89.9, 1000},
	}
	for _, c := range cases {
		v, err := projector.ToECEF(orb.Point{c.lon, c.lat}, c.height)
		if err != nil {
			t.Fatalf("ToECEF(%v): %v", c, err)
		}
		p, height, err := projector.FromECEF(v)
		if err != nil {
			t.Fatalf("FromECEF(%v): %v", c, err)
		}
		if !almostEqual(p.Lon(), c.lon, 1e-6) || !almostEqual(p.Lat(), c.lat, 1e-6) {
			t.Fatalf("round trip lon/lat mismatch: got (%v,%v) want (%v,%v)", p.Lon(), p.Lat(), c.lon, c.lat)
		}
		if !almostEqual(height, c.height, 1e-3) {
			t.Fatalf("round trip height mismatch: got %v want %v", height, c.height)
		}
	}
}

func TestToECEFEquatorPrimeMeridian(t *testing.T) {
	projector := NewWGS84Projector()
	v, err := projector.ToECEF(orb.Point{0, 0}, 0)
	if err != nil {
		t.Fatalf("ToECEF: %v", err)
	}
	if !almostEqual(v.X, wgs84SemiMajorAxis, 1e-6) {
		t.Fatalf("expected X == semi-major axis at (0,0,0), got %v", v.X)
	}
	if !almostEqual(v.Y, 0, 1e-6) || !almostEqual(v.Z, 0, 1e-6) {
		t.Fatalf("expected Y=Z=0 at the equator/prime meridian, got (%v,%v)", v.Y, v.Z)
	}
}

func TestConvertIsometryRoundTripsOrigin(t *testing.T) {
	projector := NewWGS84Projector()
	origin := orb.Point{13.405, 52.52}
	iso, err := ConvertIsometry(projector, origin, 35)
	if err != nil {
		t.Fatalf("ConvertIsometry: %v", err)
	}

	// The tile's local origin (0,0,0) must map back to the same ECEF point
	// ConvertIsometry derived the translation from.
	got := iso.Apply(geom.Vec3{})
	want, err := projector.ToECEF(origin, 35)
	if err != nil {
		t.Fatalf("ToECEF: %v", err)
	}
	if !almostEqual(got.X, want.X, 1e-6) || !almostEqual(got.Y, want.Y, 1e-6) || !almostEqual(got.Z, want.Z, 1e-6) {
		t.Fatalf("local origin did not map to tile ECEF position: got %+v want %+v", got, want)
	}

	// The local "up" axis (0,0,1) must point away from the Earth's center
	// more than the origin itself.
	up := iso.Apply(geom.Vec3{Z: 1})
	if up.Norm() <= want.Norm() {
		t.Fatalf("local +Z should point away from the ellipsoid surface")
	}
}
