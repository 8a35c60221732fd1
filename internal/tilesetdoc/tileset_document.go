package tilesetdoc

import (
	"encoding/json"
	"strconv"

	"github.com/envis-space/etiles/internal/errdefs"
	"github.com/envis-space/etiles/internal/octree"
	"github.com/envis-space/etiles/internal/tileset"
)

// TilesetDocument is the root tileset.json document.
type TilesetDocument struct {
	Asset          Asset   `json:"asset"`
	GeometricError float64 `json:"geometricError"`
	Root           Tile    `json:"root"`
}

// ContentDirectory and SubtreesDirectory are the archive-relative
// directories the content/subtree URIs are templated under (spec §4.6).
const (
	ContentDirectory  = "content"
	SubtreesDirectory = "subtrees"
)

// Build derives the root implicit tile and wraps it in a full
// TilesetDocument, matching write.rs's write_tileset_json /
// derive_implicit_tile_from_content_octree.
func Build(ts *tileset.Tileset, levelsPerSubtree uint16) (TilesetDocument, error) {
	rootCube := ts.TiledContent.Bounds()

	availableLevels := uint16(0)
	if maxLevel, ok := ts.TiledContent.GetMaxOccupiedLevel(); ok {
		availableLevels = uint16(maxLevel)
	}

	root := Tile{
		GeometricError: ts.GeometricError,
		Content:        Content{URI: ContentDirectory + "/pc_{level}__{x}_{y}_{z}.glb"},
		BoundingVolume: NewBoxBoundingVolume(rootCube.BoundingArray()),
		Refine:         RefinementAdd,
		ImplicitTiling: &ImplicitTiling{
			SubdivisionScheme: SubdivisionSchemeOctree,
			SubtreeLevels:     levelsPerSubtree,
			AvailableLevels:   availableLevels,
			Subtrees:          Subtrees{URI: SubtreesDirectory + "/{level}__{x}_{y}_{z}.subtree"},
		},
	}

	transform := ts.RootTransform.Matrix4ColumnMajor()
	root.Transform = &transform

	return TilesetDocument{
		Asset:          Asset{Version: AssetVersion11},
		GeometricError: ts.RootGeometricError,
		Root:           root,
	}, nil
}

// Marshal pretty-prints doc as the bytes that go at the archive root as
// tileset.json.
func Marshal(doc TilesetDocument) ([]byte, error) {
	buf, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, errdefs.EncodingFailed("marshaling tileset document", err)
	}
	return buf, nil
}

// DeriveContentFilename builds a content-bearing octant's archive-relative
// GLB filename, e.g. "pc_2__1_0_3.glb".
func DeriveContentFilename(index octree.OctantIndex) string {
	return "pc_" + octantFilenameSuffix(index) + ".glb"
}

// DeriveSubtreeFilename builds a subtree root's archive-relative binary
// filename, e.g. "2__1_0_3.subtree".
func DeriveSubtreeFilename(index octree.OctantIndex) string {
	return octantFilenameSuffix(index) + ".subtree"
}

func octantFilenameSuffix(index octree.OctantIndex) string {
	u := strconv.FormatUint
	return u(uint64(index.Level), 10) + "__" +
		u(index.X, 10) + "_" + u(index.Y, 10) + "_" + u(index.Z, 10)
}
