// Package convert orchestrates the convert-point-cloud-to-tiles pipeline:
// read a point cloud, build a tileset, pack it into an uncompressed tar,
// grounded on etiles-cli/src/commands/convert_point_cloud.rs's command
// handler (read -> reproject/partition -> write, with timing banners
// around each phase).
package convert

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/envis-space/etiles/internal/archive"
	"github.com/envis-space/etiles/internal/errdefs"
	"github.com/envis-space/etiles/internal/geoproject"
	"github.com/envis-space/etiles/internal/pointcloud"
	"github.com/envis-space/etiles/internal/progress"
	"github.com/envis-space/etiles/internal/tileset"
)

// LevelsPerSubtree is the fixed subtree depth every implicit tile and
// .subtree binary is built against, matching the original's
// new_implicit_tile() default of 3.
const LevelsPerSubtree = 3

// Options mirrors the convert-point-cloud-to-tiles flags (spec.md §6).
type Options struct {
	InputPath              string
	OutputDirectoryPath    string
	MaximumPointsPerOctant uint64
	SourceCRS              uint32
	RandomlyShuffle        bool
	ShuffleSeedNumber      uint64
}

// Run executes the full pipeline and writes the packed tar to
// opts.OutputDirectoryPath. r may be nil, in which case phase banners are
// skipped.
func Run(opts Options, r *progress.Reporter) error {
	if err := validateOutputPath(opts.OutputDirectoryPath); err != nil {
		return err
	}

	source := geoproject.SpatialReferenceIdentifier{Authority: "EPSG", Code: int(opts.SourceCRS)}

	var pc pointcloud.PointCloud
	if err := phase(r, "reading point cloud "+opts.InputPath, func() error {
		var err error
		pc, err = pointcloud.Open(opts.InputPath)
		return err
	}); err != nil {
		return err
	}

	var seed *uint64
	if opts.RandomlyShuffle {
		s := opts.ShuffleSeedNumber
		seed = &s
	}

	var ts *tileset.Tileset
	if err := phase(r, "reprojecting and partitioning", func() error {
		var err error
		ts, err = tileset.FromPointCloud(pc, source, opts.MaximumPointsPerOctant, seed)
		return err
	}); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(opts.OutputDirectoryPath), 0755); err != nil {
		return errdefs.EncodingFailed("creating output directory", err)
	}

	return phase(r, "writing tileset to "+opts.OutputDirectoryPath, func() error {
		f, err := os.Create(opts.OutputDirectoryPath)
		if err != nil {
			return errdefs.EncodingFailed("creating output file", err)
		}
		defer f.Close()
		if err := archive.Write(f, ts, LevelsPerSubtree, time.Time{}); err != nil {
			return err
		}
		return nil
	})
}

func phase(r *progress.Reporter, name string, fn func() error) error {
	if r == nil {
		return fn()
	}
	done := r.Phase(name)
	if err := fn(); err != nil {
		r.Error(name, err)
		return err
	}
	done()
	return nil
}

// validateOutputPath enforces spec.md §7's output-extension checks before
// any I/O is attempted.
func validateOutputPath(path string) error {
	ext := filepath.Ext(path)
	if ext == "" {
		return errdefs.NoFileExtension()
	}
	if !strings.EqualFold(ext, ".tar") {
		return errdefs.InvalidFileExtension(strings.TrimPrefix(ext, "."))
	}
	return nil
}
