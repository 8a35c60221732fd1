package octree

import (
	"testing"

	"github.com/envis-space/etiles/internal/geom"
)

func vertexAt(x, y, z float64) Vertex {
	return Vertex{Position: geom.Vec3{X: x, Y: y, Z: z}, Color: DefaultColor}
}

func TestNewEmptyCloud(t *testing.T) {
	tree, err := New(nil, 10, nil)
	if err != nil {
		t.Fatalf("New returned error for empty input: %v", err)
	}
	if got := tree.CellIndices(); len(got) != 0 {
		t.Fatalf("expected no cells, got %d", len(got))
	}
	if _, ok := tree.GetMaxOccupiedLevel(); ok {
		t.Fatalf("expected no occupied level for empty tree")
	}
}

func TestNewSinglePoint(t *testing.T) {
	tree, err := New([]Vertex{vertexAt(1, 2, 3)}, 10, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	cells := tree.CellIndices()
	if len(cells) != 1 {
		t.Fatalf("expected exactly one cell, got %d", len(cells))
	}
	if cells[0].Level != 0 {
		t.Fatalf("single point within budget should stay at root, got level %d", cells[0].Level)
	}
	level, ok := tree.GetMaxOccupiedLevel()
	if !ok || level != 0 {
		t.Fatalf("expected max occupied level 0, got %d (ok=%v)", level, ok)
	}
}

func TestNewRejectsZeroBudget(t *testing.T) {
	if _, err := New([]Vertex{vertexAt(0, 0, 0)}, 0, nil); err == nil {
		t.Fatalf("expected error for zero maximum_points_per_octant")
	}
}

func TestNewRejectsNonFiniteCoordinate(t *testing.T) {
	bad := vertexAt(0, 0, 0)
	bad.Position.X = posInf()
	if _, err := New([]Vertex{bad}, 10, nil); err == nil {
		t.Fatalf("expected error for non-finite coordinate")
	}
}

func posInf() float64 {
	var zero float64
	return 1 / zero
}

// TestUniformGridSplitsIntoEightOctants places one point at the center of
// each of the eight octants of a cube and checks a budget of one forces
// exactly eight leaves, one per octant, each containing its own point.
func TestUniformGridSplitsIntoEightOctants(t *testing.T) {
	var points []Vertex
	for _, dx := range []float64{-0.5, 0.5} {
		for _, dy := range []float64{-0.5, 0.5} {
			for _, dz := range []float64{-0.5, 0.5} {
				points = append(points, vertexAt(dx, dy, dz))
			}
		}
	}
	tree, err := New(points, 1, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	cells := tree.CellIndices()
	if len(cells) != 8 {
		t.Fatalf("expected 8 leaves, got %d", len(cells))
	}
	for _, idx := range cells {
		if idx.Level != 1 {
			t.Fatalf("expected every leaf at level 1, got %d", idx.Level)
		}
		vs, err := tree.Cell(idx)
		if err != nil {
			t.Fatalf("Cell(%v): %v", idx, err)
		}
		if len(vs) != 1 {
			t.Fatalf("expected exactly one point per octant, got %d", len(vs))
		}
	}
	level, ok := tree.GetMaxOccupiedLevel()
	if !ok || level != 1 {
		t.Fatalf("expected max occupied level 1, got %d (ok=%v)", level, ok)
	}
}

func TestCellNotOccupiedErrors(t *testing.T) {
	tree, err := New([]Vertex{vertexAt(0, 0, 0)}, 10, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	child := Origin().Child(true, true, true)
	if _, err := tree.Cell(child); err == nil {
		t.Fatalf("expected error fetching an unoccupied cell")
	}
}

func TestContainsContentCellsMatchesOccupancy(t *testing.T) {
	tree, err := New([]Vertex{vertexAt(0.5, 0.5, 0.5), vertexAt(-0.5, -0.5, -0.5)}, 1, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	root := Origin()
	if !tree.ContainsContentCells(root) {
		t.Fatalf("root should contain content cells")
	}
	if tree.OccupancyGraph().IsCellOccupied(root) != tree.ContainsContentCells(root) {
		t.Fatalf("IsCellOccupied and ContainsContentCells disagree at root")
	}
	unrelated := root.Child(true, false, false).Child(true, false, false)
	if tree.ContainsContentCells(unrelated) {
		t.Fatalf("unrelated deep octant should not report content")
	}
}

func TestDeterministicShuffleIsReproducible(t *testing.T) {
	points := []Vertex{vertexAt(0, 0, 0), vertexAt(1, 1, 1), vertexAt(-1, -1, -1), vertexAt(0.5, -0.5, 0.5)}
	seed := uint64(42)

	t1, err := New(points, 1, &seed)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t2, err := New(points, 1, &seed)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for _, idx := range t1.CellIndices() {
		a, err := t1.Cell(idx)
		if err != nil {
			t.Fatalf("Cell: %v", err)
		}
		b, err := t2.Cell(idx)
		if err != nil {
			t.Fatalf("second tree missing cell %v present in the first", idx)
		}
		if len(a) != len(b) || a[0].Position != b[0].Position {
			t.Fatalf("same seed produced different contents at %v", idx)
		}
	}
}

// TestCellIndicesIsSortedDeterministically guards spec §8 property 1 (two
// independent runs with the same seed produce byte-identical tar archives):
// since a tar concatenates entries in write order, CellIndices must return
// the same sequence on every call, not Go's randomized map iteration order.
func TestCellIndicesIsSortedDeterministically(t *testing.T) {
	var points []Vertex
	for _, dx := range []float64{-0.5, 0.5} {
		for _, dy := range []float64{-0.5, 0.5} {
			for _, dz := range []float64{-0.5, 0.5} {
				points = append(points, vertexAt(dx, dy, dz))
			}
		}
	}

	for attempt := 0; attempt < 5; attempt++ {
		tree, err := New(points, 1, nil)
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		cells := tree.CellIndices()
		for i := 1; i < len(cells); i++ {
			a, b := cells[i-1], cells[i]
			if a.Level > b.Level {
				t.Fatalf("attempt %d: cells not sorted by level: %v before %v", attempt, a, b)
			}
			if a.Level == b.Level {
				am := MortonIndex(a.X, a.Y, a.Z, int(a.Level))
				bm := MortonIndex(b.X, b.Y, b.Z, int(b.Level))
				if am > bm {
					t.Fatalf("attempt %d: cells at the same level not sorted by Morton index: %v (%d) before %v (%d)", attempt, a, am, b, bm)
				}
			}
		}
	}
}

func TestMaxDepthBoundsDuplicatePoints(t *testing.T) {
	var points []Vertex
	for i := 0; i < 5; i++ {
		points = append(points, vertexAt(0, 0, 0))
	}
	tree, err := New(points, 1, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	cells := tree.CellIndices()
	if len(cells) != 1 {
		t.Fatalf("expected duplicate points to collapse into a single deepest leaf, got %d cells", len(cells))
	}
	if cells[0].Level != maxDepth {
		t.Fatalf("expected the leaf to sit at maxDepth=%d, got %d", maxDepth, cells[0].Level)
	}
	vs, err := tree.Cell(cells[0])
	if err != nil {
		t.Fatalf("Cell: %v", err)
	}
	if len(vs) != len(points) {
		t.Fatalf("expected all %d duplicate points in the leaf, got %d", len(points), len(vs))
	}
}
