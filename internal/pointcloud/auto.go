package pointcloud

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/envis-space/etiles/internal/errdefs"
)

// Open dispatches on path's file extension to the matching reader,
// mirroring the original's epoint::io::AutoReader::from_path. Note this is
// distinct from errdefs' InvalidFileExtension/NoFileExtension, which are
// reserved for the output tar path (spec §7); an unrecognized input
// extension is an encoding failure instead.
func Open(path string) (PointCloud, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch ext {
	case "":
		return nil, errdefs.EncodingFailed(fmt.Sprintf("input path %q has no file extension", path), nil)
	case "geojson", "json":
		return ReadGeoJSON(path)
	case "parquet", "csv":
		return ReadDuckDB(path)
	case "las":
		return ReadLAS(path)
	default:
		return nil, errdefs.EncodingFailed(fmt.Sprintf("unsupported input extension %q", ext), nil)
	}
}
