// Package loader reads a glTF or GLB asset and returns its flattened geometry
// together with the first animation clip resampled onto a uniform timeline.
package loader

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"
	"go.uber.org/zap"

	"github.com/jordan4ibanez/minetest-gltf/pkg/animation"
	"github.com/jordan4ibanez/minetest-gltf/pkg/model"
)

var (
	ErrNoScene      = model.ErrNoScene
	ErrNoPrimitives = errors.New("scene contains no mesh primitives")
)

// MinetestGLTF is a loaded asset.
type MinetestGLTF struct {
	Name  string
	Model *model.Model
	// Clip is nil when the asset has no usable animation.
	Clip *animation.Clip
}

// IsAnimated reports whether at least one node carries resampled keyframes.
func (m *MinetestGLTF) IsAnimated() bool {
	return m.Clip != nil && len(m.Clip.Bones) > 0
}

// IsBroken reports whether the asset has no geometry.
func (m *MinetestGLTF) IsBroken() bool {
	return m.Model == nil
}

// BoneAnimations returns the resampled keyframes keyed by node index, or nil
// for a static asset.
func (m *MinetestGLTF) BoneAnimations() map[int]*animation.BoneAnimation {
	if m.Clip == nil {
		return nil
	}
	return m.Clip.Bones
}

// Load opens the .gltf or .glb file at path. External buffers are resolved
// relative to the file.
func Load(path string, opts ...Option) (*MinetestGLTF, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return FromDocument(assetName(path), doc, opts...)
}

// LoadReader decodes an asset from r. Buffers must be embedded (GLB or data
// URIs) since there is no directory to resolve them against.
func LoadReader(name string, r io.Reader, opts ...Option) (*MinetestGLTF, error) {
	doc := new(gltf.Document)
	if err := gltf.NewDecoder(r).Decode(doc); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	return FromDocument(name, doc, opts...)
}

// FromDocument builds the asset from an already decoded document.
func FromDocument(name string, doc *gltf.Document, opts ...Option) (*MinetestGLTF, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	log := o.logger.With(zap.String("file", name))

	mdl, err := model.Flatten(doc, model.Options{Scene: o.scene, Materials: o.materials})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if len(mdl.Primitives) == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrNoPrimitives)
	}

	out := &MinetestGLTF{Name: name, Model: mdl}
	if o.animation && len(doc.Animations) > 0 {
		out.Clip = loadClip(log, doc, o.maxFrames)
	}

	log.Debug("Loaded asset",
		zap.Int("primitives", len(mdl.Primitives)),
		zap.Int("vertices", mdl.VertexCount()),
		zap.Bool("animated", out.IsAnimated()),
	)
	return out, nil
}

// loadClip resamples the first animation. Failures are logged and leave the
// asset static.
func loadClip(log *zap.Logger, doc *gltf.Document, maxFrames int) *animation.Clip {
	if len(doc.Animations) > 1 {
		log.Debug("Ignoring extra animations", zap.Int("count", len(doc.Animations)-1))
	}

	clip, err := animation.Build(doc, doc.Animations[0], maxFrames)
	if err != nil {
		fields := []zap.Field{zap.Error(err)}
		var ce *animation.ChannelError
		if errors.As(err, &ce) {
			fields = append(fields,
				zap.Int("channel", ce.Channel),
				zap.Int("node", ce.Node),
				zap.Stringer("component", ce.Component),
				zap.Int("values", ce.Values),
				zap.Int("timestamps", ce.Timestamps),
			)
		}
		log.Warn("Animation unusable, loading as static model", fields...)
		return nil
	}
	if clip == nil {
		log.Debug("Animation has no channels")
		return nil
	}

	log.Debug("Resampled animation",
		zap.String("clip", clip.Name),
		zap.Int("bones", len(clip.Bones)),
		zap.Int("frames", clip.Timeline.RequiredFrames),
		zap.Float32("duration", clip.Timeline.Duration()),
	)
	return clip
}

func assetName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
