// Package gltf emits a minimal glTF 2.0 binary (GLB) for one content-bearing
// octant: a single POINTS primitive with packed position+color vertex
// data, grounded on
// etiles-io/src/write_impl/write_gltf_tile.rs (which builds the same
// buffer/bufferView/accessor/mesh/node/scene graph via the `gltf` crate).
// No example in the retrieval pack imports a Go glTF encoder, so the JSON
// document and binary container are built directly here against the
// public glTF 2.0 schema.
package gltf

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"math"

	"github.com/envis-space/etiles/internal/errdefs"
	"github.com/envis-space/etiles/internal/geom"
	"github.com/envis-space/etiles/internal/octree"
)

// axisAdjustment rotates -90 degrees about the X axis, turning the local
// Z-up frame into glTF's Y-up frame.
var axisAdjustment = geom.Quaternion{W: math.Cos(math.Pi / 4), X: -math.Sin(math.Pi / 4)}

const vertexStride = 24 // 3x f32 position + 3x f32 color

// Write encodes vertices as a GLB with one POINTS primitive and writes it
// to w. vertices must be non-empty: an empty content-bearing octant is a
// programming error upstream (spec invariant), not a condition this
// function recovers from.
func Write(w *bytes.Buffer, vertices []octree.Vertex) error {
	if len(vertices) == 0 {
		return errdefs.AssertFailure("gltf.Write called with no vertices")
	}

	binBuf := make([]byte, len(vertices)*vertexStride)
	min := [3]float32{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32}
	max := [3]float32{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32}

	for i, v := range vertices {
		p := axisAdjustment.Rotate(v.Position)
		px, py, pz := float32(p.X), float32(p.Y), float32(p.Z)
		min = componentMin(min, [3]float32{px, py, pz})
		max = componentMax(max, [3]float32{px, py, pz})

		off := i * vertexStride
		binary.LittleEndian.PutUint32(binBuf[off:], math.Float32bits(px))
		binary.LittleEndian.PutUint32(binBuf[off+4:], math.Float32bits(py))
		binary.LittleEndian.PutUint32(binBuf[off+8:], math.Float32bits(pz))
		binary.LittleEndian.PutUint32(binBuf[off+12:], math.Float32bits(v.Color.R))
		binary.LittleEndian.PutUint32(binBuf[off+16:], math.Float32bits(v.Color.G))
		binary.LittleEndian.PutUint32(binBuf[off+20:], math.Float32bits(v.Color.B))
	}

	doc := buildDocument(len(vertices), min, max)
	jsonBytes, err := json.Marshal(doc)
	if err != nil {
		return errdefs.EncodingFailed("marshaling glTF document", err)
	}
	jsonBytes = padWithSpacesToMultipleOf4(jsonBytes)
	binPadded := padWithZerosToMultipleOf4(binBuf)

	totalLength := uint32(12 + 8 + len(jsonBytes) + 8 + len(binPadded))

	header := make([]byte, 12)
	copy(header[0:4], "glTF")
	binary.LittleEndian.PutUint32(header[4:8], 2)
	binary.LittleEndian.PutUint32(header[8:12], totalLength)

	jsonChunkHeader := make([]byte, 8)
	binary.LittleEndian.PutUint32(jsonChunkHeader[0:4], uint32(len(jsonBytes)))
	copy(jsonChunkHeader[4:8], "JSON")

	binChunkHeader := make([]byte, 8)
	binary.LittleEndian.PutUint32(binChunkHeader[0:4], uint32(len(binPadded)))
	copy(binChunkHeader[4:8], "BIN\x00")

	for _, chunk := range [][]byte{header, jsonChunkHeader, jsonBytes, binChunkHeader, binPadded} {
		if _, err := w.Write(chunk); err != nil {
			return errdefs.EncodingFailed("writing glb chunk", err)
		}
	}
	return nil
}

func componentMin(a, b [3]float32) [3]float32 {
	return [3]float32{ieeeMin(a[0], b[0]), ieeeMin(a[1], b[1]), ieeeMin(a[2], b[2])}
}

func componentMax(a, b [3]float32) [3]float32 {
	return [3]float32{ieeeMax(a[0], b[0]), ieeeMax(a[1], b[1]), ieeeMax(a[2], b[2])}
}

// ieeeMin/ieeeMax implement IEEE-754 minNum/maxNum semantics: a NaN operand
// is ignored in favor of the other, finite operand.
func ieeeMin(a, b float32) float32 {
	if math.IsNaN(float64(a)) {
		return b
	}
	if math.IsNaN(float64(b)) {
		return a
	}
	if a < b {
		return a
	}
	return b
}

func ieeeMax(a, b float32) float32 {
	if math.IsNaN(float64(a)) {
		return b
	}
	if math.IsNaN(float64(b)) {
		return a
	}
	if a > b {
		return a
	}
	return b
}

func padWithSpacesToMultipleOf4(b []byte) []byte {
	if padding := (4 - len(b)%4) % 4; padding > 0 {
		pad := bytes.Repeat([]byte{' '}, padding)
		b = append(b, pad...)
	}
	return b
}

func padWithZerosToMultipleOf4(b []byte) []byte {
	if padding := (4 - len(b)%4) % 4; padding > 0 {
		b = append(b, make([]byte, padding)...)
	}
	return b
}
