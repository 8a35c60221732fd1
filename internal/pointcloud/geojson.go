package pointcloud

import (
	"fmt"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/envis-space/etiles/internal/errdefs"
)

// ReadGeoJSON reads a FeatureCollection of Point features (matching the
// teacher's geojson.UnmarshalFeatureCollection usage in
// internal/tiler/gotiler/gotiler.go) into an in-memory point cloud. Point
// height, if present, is read from each feature's "height" or "z"
// property; color, if present, from "r"/"g"/"b" properties in [0,1].
func ReadGeoJSON(path string) (PointCloud, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errdefs.EncodingFailed("reading geojson point cloud", err)
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, errdefs.EncodingFailed("parsing geojson point cloud", err)
	}

	out := &InMemory{}
	hasAnyColor := false
	for _, f := range fc.Features {
		point, ok := f.Geometry.(orb.Point)
		if !ok {
			return nil, errdefs.EncodingFailed(fmt.Sprintf("unsupported geometry type %T, expected Point", f.Geometry), nil)
		}
		out.Points = append(out.Points, point)
		out.Heights = append(out.Heights, propertyFloat(f.Properties, "height", propertyFloat(f.Properties, "z", 0)))

		if r, rok := f.Properties["r"]; rok {
			hasAnyColor = true
			out.Colors = append(out.Colors, Color{
				R: float32(propertyFloat(f.Properties, "r", 0)),
				G: float32(propertyFloat(f.Properties, "g", 0)),
				B: float32(propertyFloat(f.Properties, "b", 0)),
			})
			_ = r
		} else {
			out.Colors = append(out.Colors, Color{})
		}
	}
	out.HasColors = hasAnyColor
	if !hasAnyColor {
		out.Colors = nil
	}

	out.LocalCenter, out.CenterH = centroid(out.Points, out.Heights)
	return out, nil
}

func propertyFloat(props map[string]interface{}, key string, fallback float64) float64 {
	v, ok := props[key]
	if !ok {
		return fallback
	}
	f, ok := v.(float64)
	if !ok {
		return fallback
	}
	return f
}

func centroid(points []orb.Point, heights []float64) (orb.Point, float64) {
	if len(points) == 0 {
		return orb.Point{}, 0
	}
	var sumLon, sumLat, sumH float64
	for i, p := range points {
		sumLon += p.Lon()
		sumLat += p.Lat()
		sumH += heights[i]
	}
	n := float64(len(points))
	return orb.Point{sumLon / n, sumLat / n}, sumH / n
}
