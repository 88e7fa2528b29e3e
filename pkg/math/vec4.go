package math

// Vec4 is a 4-component vector.
type Vec4 struct {
	X, Y, Z, W float32
}

// XYZ drops the w component.
func (v Vec4) XYZ() Vec3 {
	return Vec3{v.X, v.Y, v.Z}
}

// Scale returns v * scalar, all four components.
func (v Vec4) Scale(s float32) Vec4 {
	return Vec4{v.X * s, v.Y * s, v.Z * s, v.W * s}
}

// WithW returns a copy of v with w replaced.
func (v Vec4) WithW(w float32) Vec4 {
	v.W = w
	return v
}

// Array returns the components in x, y, z, w order.
func (v Vec4) Array() [4]float32 {
	return [4]float32{v.X, v.Y, v.Z, v.W}
}
