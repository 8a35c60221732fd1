package octree

// OccupancyGraph records, for every level from 0 up to the tree's maximum
// occupied level, which octants are non-empty. Because this partitioner
// never stores points directly on an interior (subdivided) octant — a split
// always moves every point down into a child — marking an octant occupied
// is equivalent to saying "some content-bearing leaf exists at or below
// this octant", so IsCellOccupied and ContainsContentCells below answer the
// same underlying question from the same map.
type OccupancyGraph struct {
	occupied map[OctantIndex]struct{}
	byLevel  map[uint8][]OctantIndex
}

func newOccupancyGraph() *OccupancyGraph {
	return &OccupancyGraph{
		occupied: make(map[OctantIndex]struct{}),
		byLevel:  make(map[uint8][]OctantIndex),
	}
}

// markOccupied marks index, and every one of its ancestors, as occupied.
func (g *OccupancyGraph) markOccupied(index OctantIndex) {
	cur := index
	for {
		if _, exists := g.occupied[cur]; exists {
			return // already marked; ancestors were marked too on a prior insert.
		}
		g.occupied[cur] = struct{}{}
		g.byLevel[cur.Level] = append(g.byLevel[cur.Level], cur)
		if cur.Level == 0 {
			return
		}
		cur = cur.Parent()
	}
}

// IsCellOccupied reports whether index is non-empty: it is, or has, a
// content-bearing descendant.
func (g *OccupancyGraph) IsCellOccupied(index OctantIndex) bool {
	_, ok := g.occupied[index]
	return ok
}

// GetOccupiedCellIndicesOfLevel returns all occupied octants at level l, in
// no particular order.
func (g *OccupancyGraph) GetOccupiedCellIndicesOfLevel(l uint8) []OctantIndex {
	return g.byLevel[l]
}
