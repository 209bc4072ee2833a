package animation

import (
	"errors"
	"fmt"
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/jordan4ibanez/minetest-gltf/pkg/math"
)

// Extract decodes every channel of clip into per-node raw keyframe tracks.
//
// Any channel the extractor cannot represent fails the whole clip; no partial
// map is returned. A clip without channels yields an empty map.
func Extract(doc *gltf.Document, clip *gltf.Animation) (map[int]*RawChannel, error) {
	raw := make(map[int]*RawChannel)
	if clip == nil {
		return raw, nil
	}

	for i, ch := range clip.Channels {
		if err := extractChannel(doc, clip, i, ch, raw); err != nil {
			return nil, err
		}
	}
	return raw, nil
}

func extractChannel(doc *gltf.Document, clip *gltf.Animation, index int, ch *gltf.AnimationChannel, raw map[int]*RawChannel) error {
	fail := func(c Component, err error) error {
		return &ChannelError{Channel: index, Node: -1, Component: c, Err: err}
	}

	if ch == nil || ch.Sampler < 0 || ch.Sampler >= len(clip.Samplers) || clip.Samplers[ch.Sampler] == nil {
		return fail(ComponentUnknown, fmt.Errorf("%w: sampler out of range", ErrUnsupportedOutput))
	}
	sampler := clip.Samplers[ch.Sampler]

	timestamps, err := readTimestamps(doc, sampler.Input)
	if err != nil {
		return fail(ComponentUnknown, err)
	}

	component := componentOf(ch.Target.Path)
	if component == ComponentUnknown {
		return fail(component, fmt.Errorf("%w: target path %v", ErrUnsupportedOutput, ch.Target.Path))
	}

	kf, err := readKeyframes(doc, sampler.Output, component)
	if err != nil {
		return fail(component, err)
	}

	if sampler.Interpolation == gltf.InterpolationCubicSpline {
		kf, err = collapseCubicSpline(kf, len(timestamps))
		if err != nil {
			return fail(component, err)
		}
	}

	if ch.Target.Node == nil {
		return fail(component, ErrMissingTarget)
	}
	node := *ch.Target.Node

	rec, ok := raw[node]
	if !ok {
		rec = &RawChannel{}
		raw[node] = rec
	}

	if err := rec.Add(kf, timestamps); err != nil {
		var ce *ChannelError
		if errors.As(err, &ce) {
			ce.Channel = index
			ce.Node = node
		}
		return err
	}
	return nil
}

func componentOf(path gltf.TRSProperty) Component {
	switch path {
	case gltf.TRSTranslation:
		return ComponentTranslation
	case gltf.TRSRotation:
		return ComponentRotation
	case gltf.TRSScale:
		return ComponentScale
	case gltf.TRSWeights:
		return ComponentWeights
	default:
		return ComponentUnknown
	}
}

func accessorAt(doc *gltf.Document, index int) (*gltf.Accessor, error) {
	if doc == nil || index < 0 || index >= len(doc.Accessors) || doc.Accessors[index] == nil {
		return nil, fmt.Errorf("accessor %d out of range", index)
	}
	return doc.Accessors[index], nil
}

func readTimestamps(doc *gltf.Document, index int) ([]float32, error) {
	acr, err := accessorAt(doc, index)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedInput, err)
	}
	if acr.Sparse != nil {
		return nil, ErrSparseTimestamps
	}
	if acr.Type != gltf.AccessorScalar || acr.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("%w: %v %v", ErrUnsupportedInput, acr.Type, acr.ComponentType)
	}

	data, err := modeler.ReadAccessor(doc, acr, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedInput, err)
	}
	ts, ok := data.([]float32)
	if !ok {
		return nil, fmt.Errorf("%w: decoded %T", ErrUnsupportedInput, data)
	}
	return ts, nil
}

func readKeyframes(doc *gltf.Document, index int, c Component) (Keyframes, error) {
	acr, err := accessorAt(doc, index)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedOutput, err)
	}
	if acr.Sparse != nil {
		return nil, fmt.Errorf("%w: sparse accessor", ErrUnsupportedOutput)
	}

	want := gltf.AccessorVec3
	switch c {
	case ComponentRotation:
		want = gltf.AccessorVec4
	case ComponentWeights:
		want = gltf.AccessorScalar
	}
	if acr.Type != want {
		return nil, fmt.Errorf("%w: %v accessor for %s", ErrUnsupportedOutput, acr.Type, c)
	}
	if acr.ComponentType != gltf.ComponentFloat {
		if c == ComponentTranslation || c == ComponentScale {
			return nil, fmt.Errorf("%w: %v components for %s", ErrUnsupportedOutput, acr.ComponentType, c)
		}
		if !acr.Normalized {
			return nil, fmt.Errorf("%w: unnormalized %v components for %s", ErrUnsupportedOutput, acr.ComponentType, c)
		}
	}

	data, err := modeler.ReadAccessor(doc, acr, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedOutput, err)
	}

	switch c {
	case ComponentTranslation:
		v, err := vec3s(data)
		return Translations(v), err
	case ComponentScale:
		v, err := vec3s(data)
		return Scales(v), err
	case ComponentRotation:
		return rotations(data)
	default:
		return weights(data)
	}
}

func vec3s(data any) ([]mgl32.Vec3, error) {
	src, ok := data.([][3]float32)
	if !ok {
		return nil, fmt.Errorf("%w: decoded %T", ErrUnsupportedOutput, data)
	}
	out := make([]mgl32.Vec3, len(src))
	for i, v := range src {
		out[i] = mgl32.Vec3(v)
	}
	return out, nil
}

func rotations(data any) (Rotations, error) {
	var xyzw [][4]float32
	switch src := data.(type) {
	case [][4]float32:
		xyzw = src
	case [][4]int8:
		xyzw = normalize4(src, snormByte)
	case [][4]uint8:
		xyzw = normalize4(src, unormByte)
	case [][4]int16:
		xyzw = normalize4(src, snormShort)
	case [][4]uint16:
		xyzw = normalize4(src, unormShort)
	default:
		return nil, fmt.Errorf("%w: decoded %T", ErrUnsupportedOutput, data)
	}

	out := make(Rotations, len(xyzw))
	for i, q := range xyzw {
		out[i] = math.QuatFromXYZW(q)
	}
	return out, nil
}

func weights(data any) (Weights, error) {
	switch src := data.(type) {
	case []float32:
		return Weights(src), nil
	case []int8:
		return normalize1(src, snormByte), nil
	case []uint8:
		return normalize1(src, unormByte), nil
	case []int16:
		return normalize1(src, snormShort), nil
	case []uint16:
		return normalize1(src, unormShort), nil
	default:
		return nil, fmt.Errorf("%w: decoded %T", ErrUnsupportedOutput, data)
	}
}

func snormByte(c int8) float32    { return float32(gomath.Max(float64(c)/127, -1)) }
func unormByte(c uint8) float32   { return float32(c) / 255 }
func snormShort(c int16) float32  { return float32(gomath.Max(float64(c)/32767, -1)) }
func unormShort(c uint16) float32 { return float32(c) / 65535 }

func normalize4[T any](src [][4]T, conv func(T) float32) [][4]float32 {
	out := make([][4]float32, len(src))
	for i, v := range src {
		out[i] = [4]float32{conv(v[0]), conv(v[1]), conv(v[2]), conv(v[3])}
	}
	return out
}

func normalize1[T any](src []T, conv func(T) float32) Weights {
	out := make(Weights, len(src))
	for i, v := range src {
		out[i] = conv(v)
	}
	return out
}

// collapseCubicSpline keeps the value element of each (in-tangent, value,
// out-tangent) triplet a CUBICSPLINE sampler stores per keyframe.
func collapseCubicSpline(kf Keyframes, keys int) (Keyframes, error) {
	switch v := kf.(type) {
	case Translations:
		out, err := splineValues(v, keys, 1)
		return Translations(out), err
	case Rotations:
		out, err := splineValues(v, keys, 1)
		return Rotations(out), err
	case Scales:
		out, err := splineValues(v, keys, 1)
		return Scales(out), err
	case Weights:
		if keys == 0 || len(v)%(3*keys) != 0 {
			return v, nil
		}
		out, err := splineValues(v, keys, len(v)/(3*keys))
		return Weights(out), err
	}
	return kf, nil
}

// splineValues extracts the middle block of width elements from each of the
// keys triplets in src.
func splineValues[T any](src []T, keys, width int) ([]T, error) {
	if len(src) != 3*keys*width {
		return nil, fmt.Errorf("%w: cubic spline output holds %d values for %d keyframes", ErrLengthMismatch, len(src), keys)
	}
	out := make([]T, 0, keys*width)
	for k := 0; k < keys; k++ {
		block := src[k*3*width : (k+1)*3*width]
		out = append(out, block[width:2*width]...)
	}
	return out, nil
}
