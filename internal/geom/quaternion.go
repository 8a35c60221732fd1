package geom

import "math"

// Quaternion is a unit quaternion (w + xi + yj + zk) used to represent a
// rotation, mirroring the original's nalgebra::UnitQuaternion usage.
type Quaternion struct {
	W, X, Y, Z float64
}

// QuaternionFromAxisAngle builds the unit quaternion rotating by angle
// radians around axis (which must already be a unit vector).
func QuaternionFromAxisAngle(axis Vec3, angle float64) Quaternion {
	half := angle / 2
	s := math.Sin(half)
	return Quaternion{W: math.Cos(half), X: axis.X * s, Y: axis.Y * s, Z: axis.Z * s}
}

// Rotate applies the rotation represented by q to v.
func (q Quaternion) Rotate(v Vec3) Vec3 {
	// t = 2 * cross(q.xyz, v)
	qv := Vec3{q.X, q.Y, q.Z}
	t := cross(qv, v).Scale(2)
	// v' = v + w*t + cross(q.xyz, t)
	return v.Add(t.Scale(q.W)).Add(cross(qv, t))
}

func cross(a, b Vec3) Vec3 {
	return Vec3{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}

// Matrix3 returns the 3x3 rotation matrix for q in row-major order.
func (q Quaternion) Matrix3() [9]float64 {
	w, x, y, z := q.W, q.X, q.Y, q.Z
	return [9]float64{
		1 - 2*(y*y+z*z), 2 * (x*y - z*w), 2 * (x*z + y*w),
		2 * (x*y + z*w), 1 - 2*(x*x+z*z), 2 * (y*z - x*w),
		2 * (x*z - y*w), 2 * (y*z + x*w), 1 - 2*(x*x+y*y),
	}
}

// Isometry is a rigid transform: rotate then translate.
type Isometry struct {
	Rotation    Quaternion
	Translation Vec3
}

// IdentityIsometry returns the identity rigid transform.
func IdentityIsometry() Isometry {
	return Isometry{Rotation: Quaternion{W: 1}, Translation: Vec3{}}
}

// Apply transforms point p by the isometry: rotate then translate.
func (iso Isometry) Apply(p Vec3) Vec3 {
	return iso.Rotation.Rotate(p).Add(iso.Translation)
}

// Inverse returns the isometry that undoes iso.
func (iso Isometry) Inverse() Isometry {
	inv := Quaternion{W: iso.Rotation.W, X: -iso.Rotation.X, Y: -iso.Rotation.Y, Z: -iso.Rotation.Z}
	return Isometry{
		Rotation:    inv,
		Translation: inv.Rotate(iso.Translation).Scale(-1),
	}
}

// Matrix4ColumnMajor returns iso as a 16-element column-major 4x4 matrix,
// matching the serialization expected by a 3D Tiles `transform` array.
func (iso Isometry) Matrix4ColumnMajor() [16]float64 {
	m := iso.Rotation.Matrix3()
	t := iso.Translation
	// m is row-major 3x3: m[0..2] row0, m[3..5] row1, m[6..8] row2.
	// Column-major 4x4 with the rotation block and translation in column 3.
	return [16]float64{
		m[0], m[3], m[6], 0,
		m[1], m[4], m[7], 0,
		m[2], m[5], m[8], 0,
		t.X, t.Y, t.Z, 1,
	}
}
