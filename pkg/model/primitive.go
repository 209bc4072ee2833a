package model

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/jordan4ibanez/minetest-gltf/pkg/math"
)

// Primitive is one mesh primitive with its vertices already in world space.
type Primitive struct {
	Mesh  string // name of the owning mesh
	Index int    // position within the owning mesh
	Node  int    // node that instanced the mesh
	Mode  Mode

	Vertices []Vertex
	Indices  []uint32
	Joints   [][4]uint16
	Weights  [][4]float32
	Material *Material

	HasNormals   bool
	HasTangents  bool
	HasTexCoords bool
	HasIndices   bool
	HasSkin      bool
}

func readPrimitive(doc *gltf.Document, p *gltf.Primitive, world mgl32.Mat4) (*Primitive, error) {
	posIdx, ok := p.Attributes[gltf.POSITION]
	if !ok {
		return nil, ErrMissingPosition
	}
	acr, err := accessorAt(doc, posIdx)
	if err != nil {
		return nil, err
	}
	positions, err := modeler.ReadPosition(doc, acr, nil)
	if err != nil {
		return nil, fmt.Errorf("reading positions: %w", err)
	}

	prim := &Primitive{
		Mode:     modeOf(p.Mode),
		Vertices: make([]Vertex, len(positions)),
	}
	for i, pos := range positions {
		prim.Vertices[i].Position = math.TransformPoint(world, mgl32.Vec3(pos))
	}

	if idx, ok := p.Attributes[gltf.NORMAL]; ok {
		acr, err := accessorAt(doc, idx)
		if err != nil {
			return nil, err
		}
		normals, err := modeler.ReadNormal(doc, acr, nil)
		if err != nil {
			return nil, fmt.Errorf("reading normals: %w", err)
		}
		for i := 0; i < len(normals) && i < len(prim.Vertices); i++ {
			prim.Vertices[i].Normal = unit(math.TransformVector(world, mgl32.Vec3(normals[i])))
		}
		prim.HasNormals = true
	}

	if idx, ok := p.Attributes[gltf.TANGENT]; ok {
		acr, err := accessorAt(doc, idx)
		if err != nil {
			return nil, err
		}
		tangents, err := modeler.ReadTangent(doc, acr, nil)
		if err != nil {
			return nil, fmt.Errorf("reading tangents: %w", err)
		}
		for i := 0; i < len(tangents) && i < len(prim.Vertices); i++ {
			t := tangents[i]
			xyz := unit(math.TransformVector(world, mgl32.Vec3{t[0], t[1], t[2]}))
			prim.Vertices[i].Tangent = xyz.Vec4(t[3])
		}
		prim.HasTangents = true
	}

	if idx, ok := p.Attributes[gltf.TEXCOORD_0]; ok {
		acr, err := accessorAt(doc, idx)
		if err != nil {
			return nil, err
		}
		uvs, err := modeler.ReadTextureCoord(doc, acr, nil)
		if err != nil {
			return nil, fmt.Errorf("reading texture coordinates: %w", err)
		}
		for i := 0; i < len(uvs) && i < len(prim.Vertices); i++ {
			prim.Vertices[i].TexCoords = mgl32.Vec2(uvs[i])
		}
		prim.HasTexCoords = true
	}

	jointIdx, hasJoints := p.Attributes[gltf.JOINTS_0]
	weightIdx, hasWeights := p.Attributes[gltf.WEIGHTS_0]
	if hasJoints && hasWeights {
		acr, err := accessorAt(doc, jointIdx)
		if err != nil {
			return nil, err
		}
		if prim.Joints, err = modeler.ReadJoints(doc, acr, nil); err != nil {
			return nil, fmt.Errorf("reading joints: %w", err)
		}
		if acr, err = accessorAt(doc, weightIdx); err != nil {
			return nil, err
		}
		if prim.Weights, err = modeler.ReadWeights(doc, acr, nil); err != nil {
			return nil, fmt.Errorf("reading weights: %w", err)
		}
		prim.HasSkin = true
	}

	if p.Indices != nil {
		acr, err := accessorAt(doc, *p.Indices)
		if err != nil {
			return nil, err
		}
		if prim.Indices, err = modeler.ReadIndices(doc, acr, nil); err != nil {
			return nil, fmt.Errorf("reading indices: %w", err)
		}
		prim.HasIndices = true
	}

	return prim, nil
}

func unit(v mgl32.Vec3) mgl32.Vec3 {
	if v.Len() == 0 {
		return v
	}
	return v.Normalize()
}

// indexAt resolves the i-th element of the primitive's draw order.
func (p *Primitive) indexAt(i int) (uint32, error) {
	idx := uint32(i)
	if p.HasIndices {
		idx = p.Indices[i]
	}
	if int(idx) >= len(p.Vertices) {
		return 0, fmt.Errorf("%w: %d of %d vertices", ErrIndexRange, idx, len(p.Vertices))
	}
	return idx, nil
}

func (p *Primitive) drawCount() int {
	if p.HasIndices {
		return len(p.Indices)
	}
	return len(p.Vertices)
}

func (p *Primitive) drawOrder() ([]uint32, error) {
	order := make([]uint32, p.drawCount())
	for i := range order {
		idx, err := p.indexAt(i)
		if err != nil {
			return nil, err
		}
		order[i] = idx
	}
	return order, nil
}

// Triangles expands the primitive into a triangle list, unrolling strips and
// fans with consistent winding.
func (p *Primitive) Triangles() ([][3]uint32, error) {
	if !p.Mode.IsTriangles() {
		return nil, fmt.Errorf("%w: %s is not a triangle mode", ErrBadMode, p.Mode)
	}
	v, err := p.drawOrder()
	if err != nil {
		return nil, err
	}

	var tris [][3]uint32
	switch p.Mode {
	case ModeTriangles:
		for i := 0; i+2 < len(v); i += 3 {
			tris = append(tris, [3]uint32{v[i], v[i+1], v[i+2]})
		}
	case ModeTriangleStrip:
		for i := 0; i+2 < len(v); i++ {
			if i%2 == 0 {
				tris = append(tris, [3]uint32{v[i], v[i+1], v[i+2]})
			} else {
				tris = append(tris, [3]uint32{v[i], v[i+2], v[i+1]})
			}
		}
	case ModeTriangleFan:
		for i := 1; i+1 < len(v); i++ {
			tris = append(tris, [3]uint32{v[i], v[i+1], v[0]})
		}
	}
	return tris, nil
}

// Lines expands the primitive into line segments.
func (p *Primitive) Lines() ([][2]uint32, error) {
	if !p.Mode.IsLines() {
		return nil, fmt.Errorf("%w: %s is not a line mode", ErrBadMode, p.Mode)
	}
	v, err := p.drawOrder()
	if err != nil {
		return nil, err
	}

	var lines [][2]uint32
	switch p.Mode {
	case ModeLines:
		for i := 0; i+1 < len(v); i += 2 {
			lines = append(lines, [2]uint32{v[i], v[i+1]})
		}
	case ModeLineStrip, ModeLineLoop:
		for i := 0; i+1 < len(v); i++ {
			lines = append(lines, [2]uint32{v[i], v[i+1]})
		}
		if p.Mode == ModeLineLoop && len(v) > 1 {
			lines = append(lines, [2]uint32{v[len(v)-1], v[0]})
		}
	}
	return lines, nil
}

// Points returns the vertex indices of a point primitive.
func (p *Primitive) Points() ([]uint32, error) {
	if p.Mode != ModePoints {
		return nil, fmt.Errorf("%w: %s is not points", ErrBadMode, p.Mode)
	}
	return p.drawOrder()
}
