package octree

// OctantIndex addresses a cell in a complete octree: level 0 is the root
// (0,0,0); the children of (L,x,y,z) are (L+1, 2x+i, 2y+j, 2z+k) for
// i,j,k in {0,1}. Value-typed and comparable, so it can key a map directly.
type OctantIndex struct {
	Level uint8
	X, Y, Z uint64
}

// Origin is the root octant (0,0,0,0).
func Origin() OctantIndex { return OctantIndex{} }

// Child returns the child of index selected by the three half-selectors.
func (idx OctantIndex) Child(xHalf, yHalf, zHalf bool) OctantIndex {
	bit := func(b bool) uint64 {
		if b {
			return 1
		}
		return 0
	}
	return OctantIndex{
		Level: idx.Level + 1,
		X:     2*idx.X + bit(xHalf),
		Y:     2*idx.Y + bit(yHalf),
		Z:     2*idx.Z + bit(zHalf),
	}
}

// Parent returns the octant containing idx at the level above, panicking at
// the root (level 0 has no parent).
func (idx OctantIndex) Parent() OctantIndex {
	if idx.Level == 0 {
		panic("octree: root octant has no parent")
	}
	return OctantIndex{Level: idx.Level - 1, X: idx.X / 2, Y: idx.Y / 2, Z: idx.Z / 2}
}

// Ancestors returns idx's ancestors from its immediate parent up to, and
// including, the root.
func (idx OctantIndex) Ancestors() []OctantIndex {
	out := make([]OctantIndex, 0, idx.Level)
	for cur := idx; cur.Level > 0; {
		cur = cur.Parent()
		out = append(out, cur)
	}
	return out
}

// MortonIndex interleaves the bits of x,y,z into a Morton code, x occupying
// bit 0 of each triplet as required by the 3D Tiles availability ordering.
func MortonIndex(x, y, z uint64, bits int) uint64 {
	spread := func(v uint64) uint64 {
		var out uint64
		for i := 0; i < bits; i++ {
			out |= ((v >> i) & 1) << (3 * i)
		}
		return out
	}
	return spread(x) | spread(y)<<1 | spread(z)<<2
}

// Descendants returns all descendants of base at relativeLevel levels below
// it (8^relativeLevel of them), generated directly in Morton order so
// callers never need a separate sort pass.
func (base OctantIndex) Descendants(relativeLevel int) []OctantIndex {
	if relativeLevel == 0 {
		return []OctantIndex{base}
	}
	count := uint64(1) << uint(3*relativeLevel)
	side := uint64(1) << uint(relativeLevel)
	out := make([]OctantIndex, 0, count)
	for m := uint64(0); m < count; m++ {
		rx, ry, rz := unspreadMorton(m, relativeLevel)
		out = append(out, OctantIndex{
			Level: base.Level + uint8(relativeLevel),
			X:     base.X*side + rx,
			Y:     base.Y*side + ry,
			Z:     base.Z*side + rz,
		})
	}
	return out
}

// RelativeMortonIndex returns descendant's Morton code relative to base,
// the position its availability bit occupies within base's level.
func (base OctantIndex) RelativeMortonIndex(descendant OctantIndex) uint64 {
	relativeLevel := int(descendant.Level) - int(base.Level)
	side := uint64(1) << uint(relativeLevel)
	rx := descendant.X - base.X*side
	ry := descendant.Y - base.Y*side
	rz := descendant.Z - base.Z*side
	return MortonIndex(rx, ry, rz, relativeLevel)
}

// unspreadMorton decodes a Morton code back into its (x,y,z) components,
// each `bits` wide (the inverse of MortonIndex's spread).
func unspreadMorton(m uint64, bits int) (x, y, z uint64) {
	for i := 0; i < bits; i++ {
		x |= ((m >> (3 * i)) & 1) << i
		y |= ((m >> (3*i + 1)) & 1) << i
		z |= ((m >> (3*i + 2)) & 1) << i
	}
	return x, y, z
}
