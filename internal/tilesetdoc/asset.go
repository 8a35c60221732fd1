// Package tilesetdoc defines the JSON document types the 3D Tiles
// tileset.json file is built from, grounded on
// etiles-io/src/documents/*.rs, serialized here with stdlib encoding/json
// the way the teacher's own JSON-emitting packages do (pmtiles.go,
// server.go, humastar's pagedata.go).
package tilesetdoc

// Asset is the tileset document's required top-level asset descriptor.
type Asset struct {
	Version string `json:"version"`
}

// AssetVersion11 is the only 3D Tiles version this emitter produces.
const AssetVersion11 = "1.1"
