package model

import "github.com/go-gl/mathgl/mgl32"

// Vertex is a single world-space mesh vertex.
type Vertex struct {
	Position  mgl32.Vec3
	Normal    mgl32.Vec3
	Tangent   mgl32.Vec4 // w holds the bitangent sign
	TexCoords mgl32.Vec2
}
