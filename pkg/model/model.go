// Package model flattens the node hierarchy of a glTF scene into world-space
// primitives with optional material factors.
package model

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"

	"github.com/jordan4ibanez/minetest-gltf/pkg/math"
)

var (
	ErrNoScene         = errors.New("document has no scene")
	ErrMissingPosition = errors.New("primitive has no POSITION attribute")
	ErrBadMode         = errors.New("primitive topology mismatch")
	ErrIndexRange      = errors.New("index out of range")
)

// identityMatrix is the column-major identity glTF uses for an unset matrix.
var identityMatrix = [16]float64{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}

// Model is the flattened geometry of one scene.
type Model struct {
	Scene      string
	Primitives []*Primitive
	// Materials is indexed like the document's materials and is empty unless
	// material loading was requested.
	Materials []*Material
}

// VertexCount returns the number of vertices across all primitives.
func (m *Model) VertexCount() int {
	n := 0
	for _, p := range m.Primitives {
		n += len(p.Vertices)
	}
	return n
}

// Options controls Flatten.
type Options struct {
	// Scene selects a scene by index. Negative picks the document's default
	// scene, or the first one when none is marked.
	Scene     int
	Materials bool
}

// Flatten walks the selected scene depth-first and returns every mesh
// primitive it instances, transformed by its node's world matrix.
func Flatten(doc *gltf.Document, opts Options) (*Model, error) {
	scene, err := pickScene(doc, opts.Scene)
	if err != nil {
		return nil, err
	}

	m := &Model{Scene: scene.Name}
	if opts.Materials {
		m.Materials = readMaterials(doc)
	}

	w := walker{doc: doc, model: m, visiting: make(map[int]bool)}
	for _, root := range scene.Nodes {
		if err := w.visit(root, mgl32.Ident4()); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func pickScene(doc *gltf.Document, index int) (*gltf.Scene, error) {
	if doc == nil || len(doc.Scenes) == 0 {
		return nil, ErrNoScene
	}
	if index < 0 {
		index = 0
		if doc.Scene != nil {
			index = *doc.Scene
		}
	}
	if index >= len(doc.Scenes) || doc.Scenes[index] == nil {
		return nil, fmt.Errorf("%w: scene %d of %d", ErrNoScene, index, len(doc.Scenes))
	}
	return doc.Scenes[index], nil
}

type walker struct {
	doc      *gltf.Document
	model    *Model
	visiting map[int]bool
}

func (w *walker) visit(index int, parent mgl32.Mat4) error {
	if index < 0 || index >= len(w.doc.Nodes) || w.doc.Nodes[index] == nil {
		return fmt.Errorf("node %d out of range", index)
	}
	if w.visiting[index] {
		return fmt.Errorf("node %d is its own ancestor", index)
	}
	w.visiting[index] = true
	defer delete(w.visiting, index)

	node := w.doc.Nodes[index]
	world := parent.Mul4(LocalTransform(node))

	if node.Mesh != nil {
		if err := w.addMesh(index, *node.Mesh, world); err != nil {
			return err
		}
	}
	for _, child := range node.Children {
		if err := w.visit(child, world); err != nil {
			return err
		}
	}
	return nil
}

func (w *walker) addMesh(node, index int, world mgl32.Mat4) error {
	if index < 0 || index >= len(w.doc.Meshes) || w.doc.Meshes[index] == nil {
		return fmt.Errorf("node %d: mesh %d out of range", node, index)
	}
	mesh := w.doc.Meshes[index]

	for i, p := range mesh.Primitives {
		if p == nil {
			continue
		}
		prim, err := readPrimitive(w.doc, p, world)
		if err != nil {
			return fmt.Errorf("mesh %q primitive %d: %w", mesh.Name, i, err)
		}
		prim.Mesh = mesh.Name
		prim.Index = i
		prim.Node = node

		if len(w.model.Materials) > 0 {
			prim.Material = DefaultMaterial()
			if p.Material != nil && *p.Material >= 0 && *p.Material < len(w.model.Materials) {
				prim.Material = w.model.Materials[*p.Material]
			}
		}
		w.model.Primitives = append(w.model.Primitives, prim)
	}
	return nil
}

// LocalTransform returns a node's transform relative to its parent: the
// explicit matrix when one is set, otherwise translation * rotation * scale.
func LocalTransform(n *gltf.Node) mgl32.Mat4 {
	if n.Matrix != identityMatrix && n.Matrix != ([16]float64{}) {
		return math.Mat4FromFloat64(n.Matrix)
	}

	t := n.Translation
	r := n.RotationOrDefault()
	s := n.ScaleOrDefault()
	return math.ComposeTRS(
		mgl32.Vec3{float32(t[0]), float32(t[1]), float32(t[2])},
		math.QuatFromXYZW([4]float32{float32(r[0]), float32(r[1]), float32(r[2]), float32(r[3])}),
		mgl32.Vec3{float32(s[0]), float32(s[1]), float32(s[2])},
	)
}

func accessorAt(doc *gltf.Document, index int) (*gltf.Accessor, error) {
	if index < 0 || index >= len(doc.Accessors) || doc.Accessors[index] == nil {
		return nil, fmt.Errorf("accessor %d out of range", index)
	}
	return doc.Accessors[index], nil
}
