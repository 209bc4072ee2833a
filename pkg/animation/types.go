// Package animation extracts the keyframe channels of a glTF animation clip
// and resamples them onto one uniform timeline shared by every animated node.
package animation

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Component identifies which node property a keyframe track animates.
type Component int

const (
	ComponentUnknown Component = iota
	ComponentTranslation
	ComponentRotation
	ComponentScale
	ComponentWeights
)

func (c Component) String() string {
	switch c {
	case ComponentTranslation:
		return "translation"
	case ComponentRotation:
		return "rotation"
	case ComponentScale:
		return "scale"
	case ComponentWeights:
		return "weights"
	default:
		return "unknown"
	}
}

// Track pairs keyframe values with the timestamps they occur at.
type Track[T any] struct {
	Values     []T
	Timestamps []float32
}

// Len returns the number of keyframe values.
func (t Track[T]) Len() int { return len(t.Values) }

// Empty reports whether nothing has been stored in the track.
func (t Track[T]) Empty() bool { return len(t.Values) == 0 && len(t.Timestamps) == 0 }

// Keyframes is the decoded output of one animation channel. The variants are
// Translations, Rotations, Scales and Weights.
type Keyframes interface {
	Component() Component
	Len() int
	keyframes()
}

type (
	Translations []mgl32.Vec3
	Rotations    []mgl32.Quat
	Scales       []mgl32.Vec3
	// Weights holds morph target weights keyframe-major: every keyframe
	// contributes one value per morph target.
	Weights []float32
)

func (Translations) Component() Component { return ComponentTranslation }
func (Rotations) Component() Component    { return ComponentRotation }
func (Scales) Component() Component       { return ComponentScale }
func (Weights) Component() Component      { return ComponentWeights }

func (k Translations) Len() int { return len(k) }
func (k Rotations) Len() int    { return len(k) }
func (k Scales) Len() int       { return len(k) }
func (k Weights) Len() int      { return len(k) }

func (Translations) keyframes() {}
func (Rotations) keyframes()    {}
func (Scales) keyframes()       {}
func (Weights) keyframes()      {}

// RawChannel collects the source keyframes of a single node before resampling.
// Each track is written at most once.
type RawChannel struct {
	Translations Track[mgl32.Vec3]
	Rotations    Track[mgl32.Quat]
	Scales       Track[mgl32.Vec3]
	Weights      Track[float32]
}

// Add stores kf with its timestamps in the matching track. It fails with
// ErrDuplicateChannel when the track already holds data, and with
// ErrLengthMismatch when a translation, rotation or scale track would end up
// with a different number of values and timestamps. Weights are stored as is.
func (r *RawChannel) Add(kf Keyframes, timestamps []float32) error {
	switch v := kf.(type) {
	case Translations:
		return store(&r.Translations, []mgl32.Vec3(v), timestamps, ComponentTranslation, true)
	case Rotations:
		return store(&r.Rotations, []mgl32.Quat(v), timestamps, ComponentRotation, true)
	case Scales:
		return store(&r.Scales, []mgl32.Vec3(v), timestamps, ComponentScale, true)
	case Weights:
		return store(&r.Weights, []float32(v), timestamps, ComponentWeights, false)
	default:
		return &ChannelError{Channel: -1, Node: -1, Err: ErrUnsupportedOutput}
	}
}

func store[T any](dst *Track[T], values []T, timestamps []float32, c Component, checkLen bool) error {
	if !dst.Empty() {
		return &ChannelError{
			Channel: -1, Node: -1, Component: c,
			Values: len(values), Timestamps: len(timestamps),
			Err: ErrDuplicateChannel,
		}
	}
	if checkLen && len(values) != len(timestamps) {
		return &ChannelError{
			Channel: -1, Node: -1, Component: c,
			Values: len(values), Timestamps: len(timestamps),
			Err: ErrLengthMismatch,
		}
	}
	dst.Values = values
	dst.Timestamps = timestamps
	return nil
}

// BoneAnimation is a node's keyframes after resampling. Translation, rotation
// and scale tracks hold one value per timeline frame and share the timeline's
// grid as timestamps.
type BoneAnimation struct {
	Translations Track[mgl32.Vec3]
	Rotations    Track[mgl32.Quat]
	Scales       Track[mgl32.Vec3]
	Weights      Track[float32]
}

// Frames returns the number of resampled transform keyframes.
func (b *BoneAnimation) Frames() int { return len(b.Translations.Values) }
