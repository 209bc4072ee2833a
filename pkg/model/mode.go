package model

import "github.com/qmuntal/gltf"

// Mode is the topology a primitive's indices describe.
type Mode int

const (
	ModeTriangles Mode = iota
	ModeTriangleStrip
	ModeTriangleFan
	ModeLines
	ModeLineStrip
	ModeLineLoop
	ModePoints
)

func (m Mode) String() string {
	switch m {
	case ModeTriangles:
		return "triangles"
	case ModeTriangleStrip:
		return "triangle strip"
	case ModeTriangleFan:
		return "triangle fan"
	case ModeLines:
		return "lines"
	case ModeLineStrip:
		return "line strip"
	case ModeLineLoop:
		return "line loop"
	case ModePoints:
		return "points"
	default:
		return "unknown"
	}
}

// IsTriangles reports whether m describes filled faces.
func (m Mode) IsTriangles() bool {
	return m == ModeTriangles || m == ModeTriangleStrip || m == ModeTriangleFan
}

// IsLines reports whether m describes line segments.
func (m Mode) IsLines() bool {
	return m == ModeLines || m == ModeLineStrip || m == ModeLineLoop
}

func modeOf(m gltf.PrimitiveMode) Mode {
	switch m {
	case gltf.PrimitiveTriangleStrip:
		return ModeTriangleStrip
	case gltf.PrimitiveTriangleFan:
		return ModeTriangleFan
	case gltf.PrimitiveLines:
		return ModeLines
	case gltf.PrimitiveLineStrip:
		return ModeLineStrip
	case gltf.PrimitiveLineLoop:
		return ModeLineLoop
	case gltf.PrimitivePoints:
		return ModePoints
	default:
		return ModeTriangles
	}
}
