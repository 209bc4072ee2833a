package model

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
)

// AlphaMode mirrors the glTF material alpha modes.
type AlphaMode string

const (
	AlphaOpaque AlphaMode = "OPAQUE"
	AlphaMask   AlphaMode = "MASK"
	AlphaBlend  AlphaMode = "BLEND"
)

// TextureRef points at a document texture and the UV set it samples.
type TextureRef struct {
	Index    int
	TexCoord int
}

// Material holds the metallic-roughness factors and texture references of a
// glTF material. Images are not decoded.
type Material struct {
	Name        string
	BaseColor   mgl32.Vec4
	Metallic    float32
	Roughness   float32
	Emissive    mgl32.Vec3
	AlphaMode   AlphaMode
	AlphaCutoff float32
	DoubleSided bool

	BaseColorTexture         *TextureRef
	MetallicRoughnessTexture *TextureRef
	NormalTexture            *TextureRef
	OcclusionTexture         *TextureRef
	EmissiveTexture          *TextureRef
}

// DefaultMaterial returns the material glTF assigns to primitives that do not
// reference one.
func DefaultMaterial() *Material {
	return &Material{
		BaseColor:   mgl32.Vec4{1, 1, 1, 1},
		Metallic:    1,
		Roughness:   1,
		AlphaMode:   AlphaOpaque,
		AlphaCutoff: 0.5,
	}
}

func readMaterials(doc *gltf.Document) []*Material {
	out := make([]*Material, len(doc.Materials))
	for i, m := range doc.Materials {
		out[i] = readMaterial(m)
	}
	return out
}

func readMaterial(m *gltf.Material) *Material {
	mat := DefaultMaterial()
	if m == nil {
		return mat
	}

	mat.Name = m.Name
	mat.DoubleSided = m.DoubleSided
	mat.AlphaCutoff = float32(m.AlphaCutoffOrDefault())
	mat.Emissive = mgl32.Vec3{float32(m.EmissiveFactor[0]), float32(m.EmissiveFactor[1]), float32(m.EmissiveFactor[2])}

	switch m.AlphaMode {
	case gltf.AlphaMask:
		mat.AlphaMode = AlphaMask
	case gltf.AlphaBlend:
		mat.AlphaMode = AlphaBlend
	}

	if pbr := m.PBRMetallicRoughness; pbr != nil {
		c := pbr.BaseColorFactorOrDefault()
		mat.BaseColor = mgl32.Vec4{float32(c[0]), float32(c[1]), float32(c[2]), float32(c[3])}
		mat.Metallic = float32(pbr.MetallicFactorOrDefault())
		mat.Roughness = float32(pbr.RoughnessFactorOrDefault())
		mat.BaseColorTexture = textureInfo(pbr.BaseColorTexture)
		mat.MetallicRoughnessTexture = textureInfo(pbr.MetallicRoughnessTexture)
	}
	if t := m.NormalTexture; t != nil && t.Index != nil {
		mat.NormalTexture = &TextureRef{Index: *t.Index, TexCoord: t.TexCoord}
	}
	if t := m.OcclusionTexture; t != nil && t.Index != nil {
		mat.OcclusionTexture = &TextureRef{Index: *t.Index, TexCoord: t.TexCoord}
	}
	mat.EmissiveTexture = textureInfo(m.EmissiveTexture)
	return mat
}

func textureInfo(t *gltf.TextureInfo) *TextureRef {
	if t == nil {
		return nil
	}
	return &TextureRef{Index: t.Index, TexCoord: t.TexCoord}
}
