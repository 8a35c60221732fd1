package tilesetdoc

// Content points a tile at its GLB payload.
type Content struct {
	URI string `json:"uri"`
}
