package tilesetdoc

// Refinement names a tile's refinement strategy.
type Refinement string

const (
	RefinementAdd     Refinement = "ADD"
	RefinementReplace Refinement = "REPLACE"
)

// Tile is a 3D Tiles tile. This emitter always produces a single root tile
// carrying an implicitTiling block; Children stays empty and Transform is
// only set on the root.
type Tile struct {
	GeometricError float64         `json:"geometricError"`
	Content        Content         `json:"content"`
	BoundingVolume BoundingVolume  `json:"boundingVolume"`
	Children       []Tile          `json:"children,omitempty"`
	Transform      *[16]float64    `json:"transform,omitempty"`
	Refine         Refinement      `json:"refine,omitempty"`
	ImplicitTiling *ImplicitTiling `json:"implicitTiling,omitempty"`
}
