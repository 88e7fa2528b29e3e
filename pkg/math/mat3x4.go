package math

// Mat3x4 is the compact GPU form of an affine transform: the first three
// rows of a Mat4, stored row after row. Read as a GLSL std140 mat3x4 (three
// vec4 columns) it is the transpose of the original matrix, so shaders
// evaluate vec4(p, 1) * m to get the transformed point.
type Mat3x4 [12]float32

// Mat3x4 transposes m and keeps three columns. The fourth row of m is
// dropped and must be (0, 0, 0, 1).
func (m Mat4) Mat3x4() Mat3x4 {
	var c Mat3x4
	for row := 0; row < 3; row++ {
		for col := 0; col < 4; col++ {
			c[row*4+col] = m[col*4+row]
		}
	}
	return c
}

// Mat4 re-transposes c into a column-major affine matrix.
func (c Mat3x4) Mat4() Mat4 {
	m := Identity()
	for row := 0; row < 3; row++ {
		for col := 0; col < 4; col++ {
			m[col*4+row] = c[row*4+col]
		}
	}
	return m
}

// Row returns row i of the original matrix.
func (c Mat3x4) Row(i int) Vec4 {
	return Vec4{c[i*4], c[i*4+1], c[i*4+2], c[i*4+3]}
}

// TransformPoint applies the transform to p, as the shaders do.
func (c Mat3x4) TransformPoint(p Vec3) Vec3 {
	h := p.Vec4(1)
	dot := func(r Vec4) float32 { return r.X*h.X + r.Y*h.Y + r.Z*h.Z + r.W*h.W }
	return Vec3{dot(c.Row(0)), dot(c.Row(1)), dot(c.Row(2))}
}
