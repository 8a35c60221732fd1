package tilesetdoc

// BoundingVolume is a tagged box-or-region 3D Tiles bounding volume. No
// extensions are emitted, so exactly one of the two fields is ever set.
type BoundingVolume struct {
	Box    *[12]float64 `json:"box,omitempty"`
	Region *[6]float64  `json:"region,omitempty"`
}

// NewBoxBoundingVolume wraps a 12-double box bounding volume.
func NewBoxBoundingVolume(box [12]float64) BoundingVolume {
	return BoundingVolume{Box: &box}
}

// NewRegionBoundingVolume wraps a 6-double region bounding volume.
func NewRegionBoundingVolume(region [6]float64) BoundingVolume {
	return BoundingVolume{Region: &region}
}
