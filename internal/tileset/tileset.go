// Package tileset builds a Tileset: a content octree in a local Cartesian
// frame plus the rigid transform anchoring that frame in ECEF and the
// geometric-error figures the tileset JSON builder needs. Grounded on
// etiles-core/src/tileset.rs's Tileset::from_point_cloud.
package tileset

import (
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/envis-space/etiles/internal/errdefs"
	"github.com/envis-space/etiles/internal/geom"
	"github.com/envis-space/etiles/internal/geoproject"
	"github.com/envis-space/etiles/internal/octree"
	"github.com/envis-space/etiles/internal/pointcloud"
)

// Tileset is the fully reprojected, partitioned content the tileset JSON,
// subtree and GLB emitters consume.
type Tileset struct {
	TiledContent       *octree.Octree
	RootTransform      geom.Isometry
	RootGeometricError float64
	GeometricError     float64
}

// FromPointCloud reprojects pc from sourceCRS into ECEF, derives the
// root isometry anchoring the local frame, partitions the localized points
// into an octree, and computes the geometric-error figures the tileset
// document needs.
func FromPointCloud(pc pointcloud.PointCloud, sourceCRS geoproject.SpatialReferenceIdentifier, maxPointsPerOctant uint64, seed *uint64) (*Tileset, error) {
	numberOfPoints := pc.Height()

	localCenter, centerHeight := pc.GetLocalCenter()
	anchorProjector, err := geoproject.NewProjector(sourceCRS)
	if err != nil {
		return nil, err
	}
	rootTransform, err := geoproject.ConvertIsometry(anchorProjector, localCenter, centerHeight)
	if err != nil {
		return nil, err
	}

	ecefPoints, err := reprojectInParallel(pc, sourceCRS)
	if err != nil {
		return nil, err
	}

	geodeticToLocal := rootTransform.Inverse()
	colors, hasColors := pc.GetAllColors()
	vertices := make([]octree.Vertex, len(ecefPoints))
	for i, p := range ecefPoints {
		local := geodeticToLocal.Apply(p)
		var c pointcloud.Color
		var ok bool
		if hasColors {
			c, ok = colors[i], true
		}
		vertices[i] = octree.Vertex{Position: local, Color: pointcloud.ToVertexColor(c, ok)}
	}

	tiledContent, err := octree.New(vertices, maxPointsPerOctant, seed)
	if err != nil {
		return nil, err
	}

	rootCube := tiledContent.Bounds()
	rootGeometricError := rootCube.Diagonal().Norm()

	var geometricError float64
	if numberOfPoints > 0 {
		averageSpacing := math.Cbrt(rootCube.Volume() / float64(numberOfPoints))
		const visualQualityScaling = 7.0
		geometricError = averageSpacing * math.Sqrt2 * visualQualityScaling
	}

	return &Tileset{
		TiledContent:       tiledContent,
		RootTransform:      rootTransform,
		RootGeometricError: rootGeometricError,
		GeometricError:     geometricError,
	}, nil
}

// reprojectInParallel converts every point from sourceCRS to ECEF using N =
// max(available parallelism, 1) workers over disjoint contiguous chunks,
// each worker owning its own GeoProjector instance, preserving input order
// on reassembly — mirroring reproject.rs's par_chunks fan-out.
func reprojectInParallel(pc pointcloud.PointCloud, sourceCRS geoproject.SpatialReferenceIdentifier) ([]geom.Vec3, error) {
	points, heights := pc.GetAllPoints()
	n := len(points)
	out := make([]geom.Vec3, n)
	if n == 0 {
		return out, nil
	}

	numWorkers := runtime.GOMAXPROCS(0)
	if numWorkers < 1 {
		numWorkers = 1
	}
	chunkSize := (n + numWorkers - 1) / numWorkers

	g := new(errgroup.Group)
	for start := 0; start < n; start += chunkSize {
		end := start + chunkSize
		if end > n {
			end = n
		}
		start, end := start, end
		g.Go(func() error {
			projector, err := geoproject.NewProjector(sourceCRS)
			if err != nil {
				return err
			}
			for i := start; i < end; i++ {
				v, err := projector.ToECEF(points[i], heights[i])
				if err != nil {
					return err
				}
				out[i] = v
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errdefs.ProjectionFailed("reprojecting point cloud to ECEF", err)
	}
	return out, nil
}
