// Package geometry builds the unit meshes the scene is made of and uploads
// them to vertex arrays. All meshes wind counter-clockwise when seen from
// outside.
package geometry

import "github.com/Faultbox/umbra/pkg/math"

// Vertex represents a lit mesh vertex with all attributes.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	Tangent  [3]float32
	TexCoord [2]float32
}

// Vertex attribute locations shared with the shaders.
const (
	AttribPosition = 0
	AttribNormal   = 1
	AttribTangent  = 2
	AttribTexCoord = 3
)

// Mesh holds mesh data ready for GPU upload.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	// PositionOnly meshes upload the position attribute alone.
	PositionOnly bool
}

// Triangles returns the number of triangles described by the index list.
func (m Mesh) Triangles() int {
	return len(m.Indices) / 3
}

// face returns the four corners of a unit square centred at center, facing
// normal, with u running along tangent. The bitangent follows the shader's
// cross(tangent, normal), and corners are ordered so the quad winds
// counter-clockwise around the normal.
func face(center, normal, tangent math.Vec3) [4]Vertex {
	bitangent := tangent.Cross(normal)
	corner := func(u, v float32) Vertex {
		p := center.
			Add(tangent.Scale(u - 0.5)).
			Add(bitangent.Scale(v - 0.5))
		return Vertex{
			Position: [3]float32{p.X, p.Y, p.Z},
			Normal:   [3]float32{normal.X, normal.Y, normal.Z},
			Tangent:  [3]float32{tangent.X, tangent.Y, tangent.Z},
			TexCoord: [2]float32{u, v},
		}
	}
	return [4]Vertex{corner(0, 0), corner(0, 1), corner(1, 1), corner(1, 0)}
}

// appendQuad adds two triangles over four consecutive vertices.
func appendQuad(indices []uint32, base uint32) []uint32 {
	return append(indices, base, base+1, base+2, base+2, base+3, base)
}

// Quad returns a unit quad in the y = 0 plane facing +Y.
func Quad() Mesh {
	v := face(math.Vec3{}, math.Vec3{Y: 1}, math.Vec3{X: 1})
	return Mesh{
		Vertices: v[:],
		Indices:  appendQuad(nil, 0),
	}
}

// cubeFaces lists the normal and tangent of each unit cube face.
var cubeFaces = [6][2]math.Vec3{
	{{Y: 1}, {X: 1}},   // top
	{{Y: -1}, {X: -1}}, // bottom
	{{Z: -1}, {X: 1}},  // front
	{{Z: 1}, {X: -1}},  // back
	{{X: -1}, {Z: -1}}, // left
	{{X: 1}, {Z: 1}},   // right
}

// Cube returns a unit cube with per-face normals, tangents and texture
// coordinates: 24 vertices, 36 indices.
func Cube() Mesh {
	m := Mesh{
		Vertices: make([]Vertex, 0, 24),
		Indices:  make([]uint32, 0, 36),
	}
	for _, f := range cubeFaces {
		base := uint32(len(m.Vertices))
		v := face(f[0].Scale(0.5), f[0], f[1])
		m.Vertices = append(m.Vertices, v[:]...)
		m.Indices = appendQuad(m.Indices, base)
	}
	return m
}

// cubeCorners are the eight shared corners of the unit cube.
var cubeCorners = [8][3]float32{
	{-0.5, 0.5, -0.5},
	{0.5, 0.5, -0.5},
	{0.5, 0.5, 0.5},
	{-0.5, 0.5, 0.5},
	{0.5, -0.5, -0.5},
	{-0.5, -0.5, -0.5},
	{-0.5, -0.5, 0.5},
	{0.5, -0.5, 0.5},
}

// cubeCornerFaces indexes cubeCorners, one counter-clockwise quad per face.
var cubeCornerFaces = [6][4]uint32{
	{0, 3, 2, 1}, // top
	{4, 7, 6, 5}, // bottom
	{5, 0, 1, 4}, // front
	{7, 2, 3, 6}, // back
	{6, 3, 0, 5}, // left
	{4, 1, 2, 7}, // right
}

// CubeTriangles returns the shared-vertex cube as a plain triangle list.
func CubeTriangles() Mesh {
	m := Mesh{
		Vertices:     make([]Vertex, len(cubeCorners)),
		Indices:      make([]uint32, 0, 36),
		PositionOnly: true,
	}
	for i, c := range cubeCorners {
		m.Vertices[i].Position = c
	}
	for _, q := range cubeCornerFaces {
		m.Indices = append(m.Indices, q[0], q[1], q[2], q[2], q[3], q[0])
	}
	return m
}

// CubeAdjacency returns the shared-vertex cube with adjacency indices, six
// per triangle, for silhouette extraction in a geometry shader.
func CubeAdjacency() Mesh {
	m := CubeTriangles()
	adj, err := BuildAdjacency(m.Indices)
	if err != nil {
		// The cube is closed; an open edge means the tables above are broken.
		panic(err)
	}
	m.Indices = adj
	return m
}
