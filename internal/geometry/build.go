package geometry

import "math"

// parallelTolerance is the |cos| above which a member is treated as parallel
// to the world up axis when choosing its local orientation.
const parallelTolerance = 0.999

// Beam returns a box running from a to b. The local X axis follows the member;
// local Y is the world up axis projected perpendicular to it (world Z for
// vertical members). width is measured along local Z, depth along local Y.
func Beam(a, b Vec3, width, depth float64) Box {
	dir := b.Sub(a)
	length := dir.Len()
	x := dir.Normalize()
	if length == 0 {
		x = AxisX
	}

	ref := AxisY
	if math.Abs(x.Dot(ref)) > parallelTolerance {
		ref = AxisZ
	}
	y := ref.Sub(x.Scale(ref.Dot(x))).Normalize()
	z := x.Cross(y)

	return NewBox(a.Lerp(b, 0.5), Vec3{X: length, Y: depth, Z: width}, Mat3{X: x, Y: y, Z: z})
}

// Quad returns a two-triangle mesh over the corners a, b, c, d given in
// counter-clockwise order, with matching UVs.
func Quad(a, b, c, d Vec3, uvA, uvB, uvC, uvD Vec2) *Mesh {
	return &Mesh{
		Vertices: []Vec3{a, b, c, d},
		UVs:      []Vec2{uvA, uvB, uvC, uvD},
		Indices:  []int{0, 1, 2, 0, 2, 3},
	}
}

// Rect returns a quad spanning origin, origin+u and origin+v with UVs
// covering the unit square.
func Rect(origin, u, v Vec3) *Mesh {
	return Quad(
		origin,
		origin.Add(u),
		origin.Add(u).Add(v),
		origin.Add(v),
		Vec2{U: 0, V: 0}, Vec2{U: 1, V: 0}, Vec2{U: 1, V: 1}, Vec2{U: 0, V: 1},
	)
}

// Transform maps every vertex of m through basis then offsets it by origin.
// When the basis is mirrored the triangle winding is reversed so faces keep
// pointing the same way relative to the transformed geometry.
func (m *Mesh) Transform(basis Mat3, origin Vec3) *Mesh {
	out := &Mesh{
		Vertices: make([]Vec3, len(m.Vertices)),
		UVs:      append([]Vec2(nil), m.UVs...),
		Indices:  append([]int(nil), m.Indices...),
	}
	for i, v := range m.Vertices {
		out.Vertices[i] = basis.Apply(v).Add(origin)
	}
	if basis.Det() < 0 {
		for i := 0; i+2 < len(out.Indices); i += 3 {
			out.Indices[i+1], out.Indices[i+2] = out.Indices[i+2], out.Indices[i+1]
		}
	}
	return out
}

// Bounds returns the axis-aligned min and max corners of the mesh.
func (m *Mesh) Bounds() (minV, maxV Vec3) {
	if len(m.Vertices) == 0 {
		return Vec3{}, Vec3{}
	}
	minV, maxV = m.Vertices[0], m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		minV = Vec3{X: math.Min(minV.X, v.X), Y: math.Min(minV.Y, v.Y), Z: math.Min(minV.Z, v.Z)}
		maxV = Vec3{X: math.Max(maxV.X, v.X), Y: math.Max(maxV.Y, v.Y), Z: math.Max(maxV.Z, v.Z)}
	}
	return minV, maxV
}

// Area returns the total surface area of the mesh triangles.
func (m *Mesh) Area() float64 {
	var a float64
	for i := 0; i+2 < len(m.Indices); i += 3 {
		p0 := m.Vertices[m.Indices[i]]
		e1 := m.Vertices[m.Indices[i+1]].Sub(p0)
		e2 := m.Vertices[m.Indices[i+2]].Sub(p0)
		a += e1.Cross(e2).Len() / 2
	}
	return a
}
