package geometry

import "math"

// Vec2 is a 2D vector, used for texture coordinates.
type Vec2 struct {
	U float64 `json:"u"`
	V float64 `json:"v"`
}

// Vec3 is a 3D vector in world units (feet).
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Common axis vectors.
var (
	AxisX = Vec3{X: 1}
	AxisY = Vec3{Y: 1}
	AxisZ = Vec3{Z: 1}
)

// V3 is shorthand for constructing a Vec3.
func V3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

// Scale returns v * s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Dot returns the dot product of v and o.
func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Cross returns the cross product v × o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

// Len returns the Euclidean length of v.
func (v Vec3) Len() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalize returns v scaled to unit length. The zero vector is returned unchanged.
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

// Lerp linearly interpolates between v (t=0) and o (t=1).
func (v Vec3) Lerp(o Vec3, t float64) Vec3 {
	return v.Add(o.Sub(v).Scale(t))
}

// Mat3 is a 3x3 matrix stored as its three column vectors. For an
// orientation these are the local X, Y and Z axes expressed in world space.
type Mat3 struct {
	X Vec3 `json:"x"`
	Y Vec3 `json:"y"`
	Z Vec3 `json:"z"`
}

// Identity returns the identity matrix.
func Identity() Mat3 {
	return Mat3{X: AxisX, Y: AxisY, Z: AxisZ}
}

// RotationX returns a rotation of angle radians about the X axis.
func RotationX(angle float64) Mat3 {
	s, c := math.Sincos(angle)
	return Mat3{
		X: AxisX,
		Y: Vec3{Y: c, Z: s},
		Z: Vec3{Y: -s, Z: c},
	}
}

// RotationY returns a rotation of angle radians about the Y axis.
func RotationY(angle float64) Mat3 {
	s, c := math.Sincos(angle)
	return Mat3{
		X: Vec3{X: c, Z: -s},
		Y: AxisY,
		Z: Vec3{X: s, Z: c},
	}
}

// RotationZ returns a rotation of angle radians about the Z axis.
func RotationZ(angle float64) Mat3 {
	s, c := math.Sincos(angle)
	return Mat3{
		X: Vec3{X: c, Y: s},
		Y: Vec3{X: -s, Y: c},
		Z: AxisZ,
	}
}

// Apply returns m * v.
func (m Mat3) Apply(v Vec3) Vec3 {
	return m.X.Scale(v.X).Add(m.Y.Scale(v.Y)).Add(m.Z.Scale(v.Z))
}

// Mul returns m * o.
func (m Mat3) Mul(o Mat3) Mat3 {
	return Mat3{X: m.Apply(o.X), Y: m.Apply(o.Y), Z: m.Apply(o.Z)}
}

// Det returns the determinant. A negative value means the basis is mirrored.
func (m Mat3) Det() float64 {
	return m.X.Dot(m.Y.Cross(m.Z))
}

// Euler returns the XYZ-order Euler angles (radians) of a rotation matrix,
// matching the convention used by common WebGL scene graphs.
func (m Mat3) Euler() Vec3 {
	// Row/column naming: mRC is row R, column C.
	m11, m12, m13 := m.X.X, m.Y.X, m.Z.X
	m22, m23 := m.Y.Y, m.Z.Y
	m32, m33 := m.Y.Z, m.Z.Z

	y := math.Asin(clamp(m13, -1, 1))
	if math.Abs(m13) < 0.9999999 {
		return Vec3{
			X: math.Atan2(-m23, m33),
			Y: y,
			Z: math.Atan2(-m12, m11),
		}
	}
	return Vec3{X: math.Atan2(m32, m22), Y: y}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
