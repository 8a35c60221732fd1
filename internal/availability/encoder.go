package availability

import "github.com/envis-space/etiles/internal/octree"

// Record is one availability bitstream: its byte-rounded buffer and the
// number of set bits (the subtree document's availableCount).
type Record struct {
	buffer []byte
	Count  uint32
}

// Buffer returns the byte-rounded, unpadded bit buffer.
func (r Record) Buffer() []byte { return r.buffer }

// IsEmpty reports whether no bit in the record is set — the trigger for
// encoding child-subtree availability as a {constant: 0} instead of a
// buffer view.
func (r Record) IsEmpty() bool { return r.Count == 0 }

// PaddedBuffer returns Buffer padded with zero bytes to a multiple of 8.
func (r Record) PaddedBuffer() []byte { return padToMultipleOf8Bytes(r.buffer) }

// TileAvailability builds the tile-availability record for levels
// 0..levelsPerSubtree-1 relative to base, bit = occupancy graph membership.
func TileAvailability(base octree.OctantIndex, levelsPerSubtree int, occupancy *octree.OccupancyGraph) Record {
	return buildRecord(base, levelsPerSubtree, func(idx octree.OctantIndex) bool {
		return occupancy.IsCellOccupied(idx)
	})
}

// ContentAvailability builds the content-availability record for the same
// traversal as TileAvailability, bit = contains-content-cells.
func ContentAvailability(base octree.OctantIndex, levelsPerSubtree int, tree *octree.Octree) Record {
	return buildRecord(base, levelsPerSubtree, tree.ContainsContentCells)
}

// ChildSubtreeAvailability builds the availability record for every
// descendant at exactly levelsPerSubtree levels below base, bit =
// occupancy graph membership.
func ChildSubtreeAvailability(base octree.OctantIndex, levelsPerSubtree int, occupancy *octree.OccupancyGraph) Record {
	var w BitWriter
	var count uint32
	for _, idx := range base.Descendants(levelsPerSubtree) {
		set := occupancy.IsCellOccupied(idx)
		if set {
			count++
		}
		w.Push(set)
	}
	return Record{buffer: w.Bytes(), Count: count}
}

// buildRecord walks every descendant of base at relative levels
// 0..levelsPerSubtree-1, in Morton order within each level, evaluating
// predicate for each.
func buildRecord(base octree.OctantIndex, levelsPerSubtree int, predicate func(octree.OctantIndex) bool) Record {
	var w BitWriter
	var count uint32
	for l := 0; l < levelsPerSubtree; l++ {
		for _, idx := range base.Descendants(l) {
			set := predicate(idx)
			if set {
				count++
			}
			w.Push(set)
		}
	}
	return Record{buffer: w.Bytes(), Count: count}
}
