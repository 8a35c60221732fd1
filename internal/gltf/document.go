package gltf

const (
	componentTypeFloat = 5126 // gl.FLOAT
	accessorTypeVec3   = "VEC3"
	targetArrayBuffer  = 34962 // gl.ARRAY_BUFFER
	primitiveModePoint = 0     // gl.POINTS
)

type document struct {
	Asset       asset       `json:"asset"`
	Buffers     []buffer    `json:"buffers"`
	BufferViews []bufferView `json:"bufferViews"`
	Accessors   []accessor  `json:"accessors"`
	Meshes      []mesh      `json:"meshes"`
	Nodes       []node      `json:"nodes"`
	Scenes      []scene     `json:"scenes"`
	Scene       int         `json:"scene"`
}

type asset struct {
	Version string `json:"version"`
}

type buffer struct {
	ByteLength int `json:"byteLength"`
}

type bufferView struct {
	Buffer     int `json:"buffer"`
	ByteLength int `json:"byteLength"`
	ByteStride int `json:"byteStride"`
	Target     int `json:"target"`
}

type accessor struct {
	BufferView    int        `json:"bufferView"`
	ByteOffset    int        `json:"byteOffset"`
	ComponentType int        `json:"componentType"`
	Count         int        `json:"count"`
	Type          string     `json:"type"`
	Min           *[3]float32 `json:"min,omitempty"`
	Max           *[3]float32 `json:"max,omitempty"`
}

type mesh struct {
	Primitives []primitive `json:"primitives"`
}

type primitive struct {
	Attributes map[string]int `json:"attributes"`
	Mode       int            `json:"mode"`
}

type node struct {
	Mesh int `json:"mesh"`
}

type scene struct {
	Nodes []int `json:"nodes"`
}

func buildDocument(vertexCount int, min, max [3]float32) document {
	return document{
		Asset:   asset{Version: "2.0"},
		Buffers: []buffer{{ByteLength: vertexCount * vertexStride}},
		BufferViews: []bufferView{{
			Buffer:     0,
			ByteLength: vertexCount * vertexStride,
			ByteStride: vertexStride,
			Target:     targetArrayBuffer,
		}},
		Accessors: []accessor{
			{
				BufferView:    0,
				ByteOffset:    0,
				ComponentType: componentTypeFloat,
				Count:         vertexCount,
				Type:          accessorTypeVec3,
				Min:           &min,
				Max:           &max,
			},
			{
				BufferView:    0,
				ByteOffset:    12,
				ComponentType: componentTypeFloat,
				Count:         vertexCount,
				Type:          accessorTypeVec3,
			},
		},
		Meshes: []mesh{{
			Primitives: []primitive{{
				Attributes: map[string]int{"POSITION": 0, "COLOR_0": 1},
				Mode:       primitiveModePoint,
			}},
		}},
		Nodes:  []node{{Mesh: 0}},
		Scenes: []scene{{Nodes: []int{0}}},
		Scene:  0,
	}
}
