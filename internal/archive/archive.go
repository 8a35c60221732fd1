// Package archive packs a tileset.json, its subtree binaries and content
// GLBs into the single uncompressed tar that convert-point-cloud-to-tiles
// produces, grounded on
// etiles-io/src/write_impl/write.rs's write()/write_subtree_info()/
// create_archive_header().
package archive

import (
	"archive/tar"
	"bytes"
	"io"
	"path"
	"time"

	"github.com/envis-space/etiles/internal/errdefs"
	"github.com/envis-space/etiles/internal/gltf"
	"github.com/envis-space/etiles/internal/octree"
	"github.com/envis-space/etiles/internal/subtree"
	"github.com/envis-space/etiles/internal/tileset"
	"github.com/envis-space/etiles/internal/tilesetdoc"
)

// TilesetJSONName is the archive-root filename for the tileset document.
const TilesetJSONName = "tileset.json"

const archiveFileMode = 0664

// Write packs ts into w as a single tar: tileset.json at the archive root,
// one .subtree file per occupied subtree root under
// tilesetdoc.SubtreesDirectory, and one .glb per content-bearing octant
// under tilesetdoc.ContentDirectory. mtime is applied to every entry's
// header; the zero time leaves entries at mtime 0, matching
// create_archive_header's default of no timestamp.
func Write(w io.Writer, ts *tileset.Tileset, levelsPerSubtree uint16, mtime time.Time) error {
	tw := tar.NewWriter(w)

	doc, err := tilesetdoc.Build(ts, levelsPerSubtree)
	if err != nil {
		return err
	}
	docBytes, err := tilesetdoc.Marshal(doc)
	if err != nil {
		return err
	}
	if err := writeEntry(tw, TilesetJSONName, docBytes, mtime); err != nil {
		return err
	}

	if err := writeSubtrees(tw, ts.TiledContent, int(levelsPerSubtree), mtime); err != nil {
		return err
	}
	if err := writeContent(tw, ts.TiledContent, mtime); err != nil {
		return err
	}

	if err := tw.Close(); err != nil {
		return errdefs.EncodingFailed("closing tar archive", err)
	}
	return nil
}

// writeSubtrees walks the occupied levels in strides of levelsPerSubtree,
// writing one .subtree file per occupied octant at each subtree boundary —
// the Go equivalent of write_subtree_info's
// (0..=max_occupied_level).step_by(levels_per_subtree) traversal.
func writeSubtrees(tw *tar.Writer, tree *octree.Octree, levelsPerSubtree int, mtime time.Time) error {
	maxLevel, ok := tree.GetMaxOccupiedLevel()
	if !ok {
		return nil
	}

	occupancy := tree.OccupancyGraph()
	for level := 0; level <= int(maxLevel); level += levelsPerSubtree {
		for _, base := range occupancy.GetOccupiedCellIndicesOfLevel(uint8(level)) {
			var buf bytes.Buffer
			if err := subtree.Write(&buf, base, levelsPerSubtree, tree); err != nil {
				return err
			}
			name := path.Join(tilesetdoc.SubtreesDirectory, tilesetdoc.DeriveSubtreeFilename(base))
			if err := writeEntry(tw, name, buf.Bytes(), mtime); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeContent encodes every content-bearing octant as a GLB and packs it
// under tilesetdoc.ContentDirectory.
func writeContent(tw *tar.Writer, tree *octree.Octree, mtime time.Time) error {
	for _, index := range tree.CellIndices() {
		vertices, err := tree.Cell(index)
		if err != nil {
			return err
		}

		var buf bytes.Buffer
		if err := gltf.Write(&buf, vertices); err != nil {
			return err
		}
		name := path.Join(tilesetdoc.ContentDirectory, tilesetdoc.DeriveContentFilename(index))
		if err := writeEntry(tw, name, buf.Bytes(), mtime); err != nil {
			return err
		}
	}
	return nil
}

func writeEntry(tw *tar.Writer, name string, data []byte, mtime time.Time) error {
	header := &tar.Header{
		Typeflag: tar.TypeReg,
		Name:     name,
		Size:     int64(len(data)),
		Mode:     archiveFileMode,
		Format:   tar.FormatGNU,
		ModTime:  mtime,
	}
	if err := tw.WriteHeader(header); err != nil {
		return errdefs.EncodingFailed("writing tar header for "+name, err)
	}
	if _, err := tw.Write(data); err != nil {
		return errdefs.EncodingFailed("writing tar entry for "+name, err)
	}
	return nil
}
