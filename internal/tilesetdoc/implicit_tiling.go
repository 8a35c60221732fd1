package tilesetdoc

// SubdivisionScheme names the implicit-tiling subdivision strategy. This
// emitter only ever produces OCTREE.
type SubdivisionScheme string

// SubdivisionSchemeOctree is the only subdivision scheme this emitter
// produces.
const SubdivisionSchemeOctree SubdivisionScheme = "OCTREE"

// Subtrees points the implicit-tiling root at its per-subtree binaries.
type Subtrees struct {
	URI string `json:"uri"`
}

// ImplicitTiling describes an implicit octree rooted at a tile.
type ImplicitTiling struct {
	SubdivisionScheme SubdivisionScheme `json:"subdivisionScheme"`
	SubtreeLevels     uint16            `json:"subtreeLevels"`
	AvailableLevels   uint16            `json:"availableLevels"`
	Subtrees          Subtrees          `json:"subtrees"`
}
