package octree

import (
	"math"
	"math/rand"
	"sort"

	"github.com/envis-space/etiles/internal/errdefs"
	"github.com/envis-space/etiles/internal/geom"
)

// maxDepth bounds recursive subdivision so that a cluster of duplicate
// points beyond the per-octant budget collapses into the deepest permitted
// leaf instead of recursing forever (spec.md §4.1's "warning, not an
// error" clause).
const maxDepth = 40

// Octree partitions a finite point set under a root BoundingCube subject to
// a per-octant point-count budget.
type Octree struct {
	root               BoundingCube
	cells              map[OctantIndex][]Vertex
	occupancy          *OccupancyGraph
	maxOccupiedLevel   uint8
	hasOccupiedLevel   bool
	maxPointsPerOctant uint64
}

// New partitions vertices into an octree where every leaf holds at most
// maxPointsPerOctant vertices, or has reached the maximum subdivision
// depth. If seed is non-nil, vertices are shuffled with a PRNG seeded by
// *seed before partitioning, to spread points uniformly within each
// octant's stored order; otherwise input order is preserved. An empty
// input yields an empty octree with no occupied level.
func New(vertices []Vertex, maxPointsPerOctant uint64, seed *uint64) (*Octree, error) {
	if maxPointsPerOctant == 0 {
		return nil, errdefs.PartitionFailed("maximum_points_per_octant must be > 0", nil)
	}

	o := &Octree{
		cells:              make(map[OctantIndex][]Vertex),
		occupancy:          newOccupancyGraph(),
		maxPointsPerOctant: maxPointsPerOctant,
	}
	if len(vertices) == 0 {
		return o, nil
	}

	points := make([]Vertex, len(vertices))
	copy(points, vertices)
	for _, v := range points {
		if !isFinite(v.Position) {
			return nil, errdefs.PartitionFailed("non-finite vertex coordinate", nil)
		}
	}

	if seed != nil {
		rng := rand.New(rand.NewSource(int64(*seed)))
		rng.Shuffle(len(points), func(i, j int) { points[i], points[j] = points[j], points[i] })
	}

	o.root = rootBoundingCube(points)
	o.partition(o.root, Origin(), points, 0)
	return o, nil
}

func isFinite(v geom.Vec3) bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0) &&
		!math.IsNaN(v.Z) && !math.IsInf(v.Z, 0)
}

// rootBoundingCube returns the smallest axis-aligned cube enclosing every
// point, padded by a relative epsilon so a point sitting exactly on the
// upper face never falls outside the cube due to floating-point rounding.
func rootBoundingCube(points []Vertex) BoundingCube {
	min, max := points[0].Position, points[0].Position
	for _, p := range points[1:] {
		pos := p.Position
		min = geom.Vec3{X: math.Min(min.X, pos.X), Y: math.Min(min.Y, pos.Y), Z: math.Min(min.Z, pos.Z)}
		max = geom.Vec3{X: math.Max(max.X, pos.X), Y: math.Max(max.Y, pos.Y), Z: math.Max(max.Z, pos.Z)}
	}
	center := min.Add(max).Scale(0.5)
	halfRange := math.Max(max.X-min.X, math.Max(max.Y-min.Y, max.Z-min.Z)) / 2
	if halfRange == 0 {
		halfRange = 1e-6
	} else {
		halfRange *= 1 + 1e-9
	}
	return BoundingCube{Center: center, HalfEdge: halfRange}
}

func (o *Octree) partition(cube BoundingCube, index OctantIndex, points []Vertex, depth int) {
	if uint64(len(points)) <= 0 {
		return
	}
	if uint64(len(points)) <= o.budget() || depth >= maxDepth {
		o.cells[index] = points
		o.occupancy.markOccupied(index)
		if !o.hasOccupiedLevel || index.Level > o.maxOccupiedLevel {
			o.maxOccupiedLevel = index.Level
			o.hasOccupiedLevel = true
		}
		return
	}

	var buckets [8][]Vertex
	for _, p := range points {
		pos := p.Position
		xHalf := pos.X >= cube.Center.X
		yHalf := pos.Y >= cube.Center.Y
		zHalf := pos.Z >= cube.Center.Z
		buckets[octantBucket(xHalf, yHalf, zHalf)] = append(buckets[octantBucket(xHalf, yHalf, zHalf)], p)
	}

	for b := 0; b < 8; b++ {
		if len(buckets[b]) == 0 {
			continue
		}
		xHalf, yHalf, zHalf := bucketSelectors(b)
		childCube := cube.Octant(xHalf, yHalf, zHalf)
		childIndex := index.Child(xHalf, yHalf, zHalf)
		o.partition(childCube, childIndex, buckets[b], depth+1)
	}
}

func octantBucket(xHalf, yHalf, zHalf bool) int {
	b := func(v bool) int {
		if v {
			return 1
		}
		return 0
	}
	return b(xHalf) | b(yHalf)<<1 | b(zHalf)<<2
}

func bucketSelectors(b int) (xHalf, yHalf, zHalf bool) {
	return b&1 != 0, b&2 != 0, b&4 != 0
}

func (o *Octree) budget() uint64 { return o.maxPointsPerOctant }

// Bounds returns the root bounding cube.
func (o *Octree) Bounds() BoundingCube { return o.root }

// CellIndices returns every content-bearing octant index, sorted by
// (Level, Morton index) so that callers iterating it — e.g. the archive
// packer — produce the same entry order on every run with the same seed,
// independent of Go's randomized map iteration order.
func (o *Octree) CellIndices() []OctantIndex {
	out := make([]OctantIndex, 0, len(o.cells))
	for idx := range o.cells {
		out = append(out, idx)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Level != b.Level {
			return a.Level < b.Level
		}
		return MortonIndex(a.X, a.Y, a.Z, int(a.Level)) < MortonIndex(b.X, b.Y, b.Z, int(b.Level))
	})
	return out
}

// Cell returns the vertices stored at index, failing if the octant holds no
// content.
func (o *Octree) Cell(index OctantIndex) ([]Vertex, error) {
	v, ok := o.cells[index]
	if !ok {
		return nil, errdefs.New(errdefs.KindPartitionFailed, "octant not occupied", nil)
	}
	return v, nil
}

// GetMaxOccupiedLevel returns the greatest level at which some octant is
// occupied, and false if the octree is empty.
func (o *Octree) GetMaxOccupiedLevel() (uint8, bool) {
	return o.maxOccupiedLevel, o.hasOccupiedLevel
}

// OccupancyGraph exposes the occupancy bookkeeping built during partition.
func (o *Octree) OccupancyGraph() *OccupancyGraph { return o.occupancy }

// ContainsContentCells reports whether index or any of its descendants is
// content-bearing. Interior octants here never hold points of their own —
// splitting always empties a node into its children — so this answers the
// same question as OccupancyGraph.IsCellOccupied, from the same map.
func (o *Octree) ContainsContentCells(index OctantIndex) bool {
	return o.occupancy.IsCellOccupied(index)
}

// CellCount returns the number of content-bearing octants.
func (o *Octree) CellCount() int { return len(o.cells) }
