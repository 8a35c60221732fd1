package gltf

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"math"
	"testing"

	"github.com/envis-space/etiles/internal/geom"
	"github.com/envis-space/etiles/internal/octree"
)

func TestWriteSingleVertexGLB(t *testing.T) {
	vertices := []octree.Vertex{{Position: geom.Vec3{X: 1, Y: 2, Z: 3}, Color: octree.Color{R: 1, G: 0, B: 0}}}

	var buf bytes.Buffer
	if err := Write(&buf, vertices); err != nil {
		t.Fatalf("Write: %v", err)
	}

	data := buf.Bytes()
	if len(data) < 12 || string(data[0:4]) != "glTF" {
		t.Fatalf("expected glTF magic, got %q", data[0:4])
	}
	version := binary.LittleEndian.Uint32(data[4:8])
	if version != 2 {
		t.Fatalf("expected glTF version 2, got %d", version)
	}
	totalLength := binary.LittleEndian.Uint32(data[8:12])
	if int(totalLength) != len(data) {
		t.Fatalf("header length %d does not match actual output length %d", totalLength, len(data))
	}

	jsonChunkLength := binary.LittleEndian.Uint32(data[12:16])
	if string(data[16:20]) != "JSON" {
		t.Fatalf("expected JSON chunk type, got %q", data[16:20])
	}
	if jsonChunkLength%4 != 0 {
		t.Fatalf("json chunk length %d is not a multiple of 4", jsonChunkLength)
	}
	jsonStart := 20
	jsonBytes := data[jsonStart : jsonStart+int(jsonChunkLength)]

	var doc document
	if err := json.Unmarshal(jsonBytes, &doc); err != nil {
		t.Fatalf("glTF json chunk did not parse: %v\n%s", err, jsonBytes)
	}
	if doc.Accessors[0].Count != 1 {
		t.Fatalf("expected accessor count 1, got %d", doc.Accessors[0].Count)
	}
	if doc.Accessors[0].Min == nil || doc.Accessors[0].Max == nil {
		t.Fatalf("expected min/max on the position accessor")
	}
	if doc.Accessors[1].Min != nil || doc.Accessors[1].Max != nil {
		t.Fatalf("expected no min/max on the color accessor")
	}
	if doc.Meshes[0].Primitives[0].Mode != primitiveModePoint {
		t.Fatalf("expected POINTS primitive mode, got %d", doc.Meshes[0].Primitives[0].Mode)
	}

	binChunkStart := jsonStart + int(jsonChunkLength)
	binChunkLength := binary.LittleEndian.Uint32(data[binChunkStart : binChunkStart+4])
	if string(data[binChunkStart+4:binChunkStart+8]) != "BIN\x00" {
		t.Fatalf("expected BIN chunk type, got %q", data[binChunkStart+4:binChunkStart+8])
	}
	if binChunkLength%4 != 0 {
		t.Fatalf("bin chunk length %d is not a multiple of 4", binChunkLength)
	}
	if int(binChunkLength) < vertexStride {
		t.Fatalf("bin chunk shorter than one vertex: %d", binChunkLength)
	}

	binBytes := data[binChunkStart+8 : binChunkStart+8+int(binChunkLength)]
	px := math.Float32frombits(binary.LittleEndian.Uint32(binBytes[0:4]))
	if px == 0 {
		t.Fatalf("expected a rotated, non-zero X position for input (1,2,3)")
	}
}

func TestWriteRejectsEmptyInput(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, nil); err == nil {
		t.Fatalf("expected an error for an empty vertex list")
	}
}
