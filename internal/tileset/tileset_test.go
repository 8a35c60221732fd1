package tileset

import (
	"testing"

	"github.com/paulmach/orb"

	"github.com/envis-space/etiles/internal/geoproject"
	"github.com/envis-space/etiles/internal/pointcloud"
)

func TestFromPointCloudSinglePointAtOrigin(t *testing.T) {
	pc := &pointcloud.InMemory{
		Points:      []orb.Point{{0, 0}},
		Heights:     []float64{0},
		LocalCenter: orb.Point{0, 0},
		CenterH:     0,
	}

	ts, err := FromPointCloud(pc, geoproject.WGS84Geographic3D, 100000, nil)
	if err != nil {
		t.Fatalf("FromPointCloud: %v", err)
	}

	cells := ts.TiledContent.CellIndices()
	if len(cells) != 1 {
		t.Fatalf("expected a single content cell, got %d", len(cells))
	}
	vs, err := ts.TiledContent.Cell(cells[0])
	if err != nil {
		t.Fatalf("Cell: %v", err)
	}
	if len(vs) != 1 {
		t.Fatalf("expected one vertex, got %d", len(vs))
	}
	// The single source point coincides with the local center, so it must
	// land at the local-frame origin after the root isometry is inverted out.
	pos := vs[0].Position
	const tol = 1e-6
	if abs(pos.X) > tol || abs(pos.Y) > tol || abs(pos.Z) > tol {
		t.Fatalf("expected point at local origin, got %+v", pos)
	}
	if vs[0].Color.R != 0.83144885 {
		t.Fatalf("expected default color for a cloud without colors, got %+v", vs[0].Color)
	}
}

func TestFromPointCloudRejectsUnsupportedCRS(t *testing.T) {
	pc := &pointcloud.InMemory{Points: []orb.Point{{0, 0}}, Heights: []float64{0}}
	unsupported := geoproject.SpatialReferenceIdentifier{Authority: "EPSG", Code: 3857}
	if _, err := FromPointCloud(pc, unsupported, 100, nil); err == nil {
		t.Fatalf("expected error for unsupported source CRS")
	}
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
