package math3d

// Mat3 is an orthonormal frame stored as three column vectors.
// It is used for tangent space, where the columns are tangent, bitangent
// and normal.
type Mat3 struct {
	X, Y, Z Vec3
}

// Basis builds a frame from its three axes.
func Basis(x, y, z Vec3) Mat3 {
	return Mat3{X: x, Y: y, Z: z}
}

// TangentBasis builds the (tangent, normal × tangent, normal) frame.
func TangentBasis(normal, tangent Vec3) Mat3 {
	return Mat3{X: tangent, Y: normal.Cross(tangent), Z: normal}
}

// MulVec3 expresses v, given in the frame's coordinates, in the parent space.
func (m Mat3) MulVec3(v Vec3) Vec3 {
	return m.X.Scale(v.X).Add(m.Y.Scale(v.Y)).Add(m.Z.Scale(v.Z))
}
