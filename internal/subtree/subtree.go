// Package subtree serializes a .subtree binary for one content-occupied
// octant: a fixed binary header followed by a padded JSON document and the
// concatenated availability bitstreams, grounded on
// etiles-io/src/write_impl/write_subtree.rs's SubtreeBinaryHeader/Subtree
// types.
package subtree

import (
	"encoding/binary"
	"encoding/json"
	"io"

	"github.com/envis-space/etiles/internal/availability"
	"github.com/envis-space/etiles/internal/errdefs"
	"github.com/envis-space/etiles/internal/octree"
)

// Buffer is the subtree document's single binary buffer descriptor.
type Buffer struct {
	ByteLength uint32 `json:"byteLength"`
}

// BufferView slices Buffer into the tile/content/child-subtree segments.
type BufferView struct {
	Buffer     uint32 `json:"buffer"`
	ByteOffset uint32 `json:"byteOffset"`
	ByteLength uint32 `json:"byteLength"`
}

// Constant names the {constant: N} availability shorthand used when a
// bitstream would otherwise be empty.
type Constant int

const (
	ConstantUnavailable Constant = 0
	ConstantAvailable   Constant = 1
)

// Availability is either a bitstream reference (with its available count)
// or a constant shorthand.
type Availability struct {
	Bitstream      *uint32   `json:"bitstream,omitempty"`
	AvailableCount *uint32   `json:"availableCount,omitempty"`
	Constant       *Constant `json:"constant,omitempty"`
}

// Document is the subtree's JSON body.
type Document struct {
	Buffers                  []Buffer       `json:"buffers"`
	BufferViews              []BufferView   `json:"bufferViews"`
	TileAvailability         Availability   `json:"tileAvailability"`
	ContentAvailability      []Availability `json:"contentAvailability"`
	ChildSubtreeAvailability Availability   `json:"childSubtreeAvailability"`
}

const (
	magic          = "subt"
	binaryVersion  = uint32(1)
	jsonPadByte    = byte(' ')
	headerByteSize = 4 + 4 + 8 + 8 // magic + version + jsonByteLength + binaryByteLength
)

// Write serializes the .subtree binary for base into w: the three
// availability bitstreams (spec §4.3), wrapped in the JSON document (spec
// §4.4 step 2) and the fixed binary header (step 4).
func Write(w io.Writer, base octree.OctantIndex, levelsPerSubtree int, tree *octree.Octree) error {
	tile := availability.TileAvailability(base, levelsPerSubtree, tree.OccupancyGraph())
	content := availability.ContentAvailability(base, levelsPerSubtree, tree)
	childSubtree := availability.ChildSubtreeAvailability(base, levelsPerSubtree, tree.OccupancyGraph())

	tilePadded := tile.PaddedBuffer()
	contentPadded := content.PaddedBuffer()

	bufferViews := []BufferView{
		{Buffer: 0, ByteOffset: 0, ByteLength: uint32(len(tile.Buffer()))},
		{Buffer: 0, ByteOffset: uint32(len(tilePadded)), ByteLength: uint32(len(content.Buffer()))},
	}

	combined := append(append([]byte{}, tilePadded...), contentPadded...)

	var childSubtreeAvailability Availability
	if childSubtree.IsEmpty() {
		c := ConstantUnavailable
		childSubtreeAvailability = Availability{Constant: &c}
	} else {
		childSubtreePadded := childSubtree.PaddedBuffer()
		bitstream := uint32(2)
		count := childSubtree.Count
		childSubtreeAvailability = Availability{Bitstream: &bitstream, AvailableCount: &count}
		bufferViews = append(bufferViews, BufferView{
			Buffer:     0,
			ByteOffset: uint32(len(combined)),
			ByteLength: uint32(len(childSubtree.Buffer())),
		})
		combined = append(combined, childSubtreePadded...)
	}

	tileBitstream, tileCount := uint32(0), tile.Count
	contentBitstream, contentCount := uint32(1), content.Count

	doc := Document{
		Buffers:     []Buffer{{ByteLength: uint32(len(combined))}},
		BufferViews: bufferViews,
		TileAvailability: Availability{
			Bitstream:      &tileBitstream,
			AvailableCount: &tileCount,
		},
		ContentAvailability: []Availability{{
			Bitstream:      &contentBitstream,
			AvailableCount: &contentCount,
		}},
		ChildSubtreeAvailability: childSubtreeAvailability,
	}

	encodedJSON, err := json.Marshal(doc)
	if err != nil {
		return errdefs.EncodingFailed("marshaling subtree document", err)
	}
	if padding := (8 - len(encodedJSON)%8) % 8; padding > 0 {
		pad := make([]byte, padding)
		for i := range pad {
			pad[i] = jsonPadByte
		}
		encodedJSON = append(encodedJSON, pad...)
	}

	header := make([]byte, headerByteSize)
	copy(header[0:4], magic)
	binary.LittleEndian.PutUint32(header[4:8], binaryVersion)
	binary.LittleEndian.PutUint64(header[8:16], uint64(len(encodedJSON)))
	binary.LittleEndian.PutUint64(header[16:24], uint64(len(combined)))

	if _, err := w.Write(header); err != nil {
		return errdefs.EncodingFailed("writing subtree header", err)
	}
	if _, err := w.Write(encodedJSON); err != nil {
		return errdefs.EncodingFailed("writing subtree json", err)
	}
	if _, err := w.Write(combined); err != nil {
		return errdefs.EncodingFailed("writing subtree binary payload", err)
	}
	return nil
}
