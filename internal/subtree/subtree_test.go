package subtree

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"testing"

	"github.com/envis-space/etiles/internal/geom"
	"github.com/envis-space/etiles/internal/octree"
)

func TestWriteSinglePointSubtree(t *testing.T) {
	vertices := []octree.Vertex{{Position: geom.Vec3{}, Color: octree.DefaultColor}}
	tree, err := octree.New(vertices, 100, nil)
	if err != nil {
		t.Fatalf("octree.New: %v", err)
	}

	var buf bytes.Buffer
	if err := Write(&buf, octree.Origin(), 3, tree); err != nil {
		t.Fatalf("Write: %v", err)
	}

	data := buf.Bytes()
	if len(data) < headerByteSize {
		t.Fatalf("output too short: %d bytes", len(data))
	}
	if string(data[0:4]) != "subt" {
		t.Fatalf("expected magic \"subt\", got %q", data[0:4])
	}
	version := binary.LittleEndian.Uint32(data[4:8])
	if version != 1 {
		t.Fatalf("expected version 1, got %d", version)
	}
	jsonLen := binary.LittleEndian.Uint64(data[8:16])
	binLen := binary.LittleEndian.Uint64(data[16:24])
	if int(jsonLen)%8 != 0 {
		t.Fatalf("json length %d is not a multiple of 8", jsonLen)
	}
	if int(binLen)%8 != 0 {
		t.Fatalf("binary length %d is not a multiple of 8", binLen)
	}
	if uint64(len(data)) != uint64(headerByteSize)+jsonLen+binLen {
		t.Fatalf("total length %d does not equal header+json+binary (%d+%d+%d)", len(data), headerByteSize, jsonLen, binLen)
	}

	jsonBytes := data[headerByteSize : headerByteSize+int(jsonLen)]
	var doc Document
	if err := json.Unmarshal(jsonBytes, &doc); err != nil {
		t.Fatalf("subtree json did not parse: %v\n%s", err, jsonBytes)
	}
	if doc.TileAvailability.Bitstream == nil || *doc.TileAvailability.Bitstream != 0 {
		t.Fatalf("expected tileAvailability.bitstream == 0")
	}
	if len(doc.ContentAvailability) != 1 || doc.ContentAvailability[0].Bitstream == nil || *doc.ContentAvailability[0].Bitstream != 1 {
		t.Fatalf("expected a single contentAvailability entry with bitstream == 1")
	}
	// A single point fits in the root octant, so nothing exists at or
	// below the next subtree boundary: child-subtree availability must
	// collapse to the {constant: 0} shorthand.
	if doc.ChildSubtreeAvailability.Constant == nil || *doc.ChildSubtreeAvailability.Constant != ConstantUnavailable {
		t.Fatalf("expected childSubtreeAvailability to be the {constant: 0} shorthand, got %+v", doc.ChildSubtreeAvailability)
	}
	if len(doc.BufferViews) != 2 {
		t.Fatalf("expected 2 buffer views when child-subtree availability is a constant, got %d", len(doc.BufferViews))
	}
}
