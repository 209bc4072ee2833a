package animation

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"

	"github.com/jordan4ibanez/minetest-gltf/pkg/math"
)

// grid is a timeline's sampling points with their precision keys.
type grid struct {
	times  []float32
	keys   []int64
	maxKey int64
}

func newGrid(tl Timeline) grid {
	times := tl.Grid()
	return grid{
		times:  times,
		keys:   precisionKeys(times),
		maxKey: math.PrecisionKey(tl.MaxTime),
	}
}

func precisionKeys(ts []float32) []int64 {
	keys := make([]int64, len(ts))
	for i, t := range ts {
		keys[i] = math.PrecisionKey(t)
	}
	return keys
}

// Build extracts clip from doc and resamples it in one step. A clip without
// channels yields a nil Clip and no error.
func Build(doc *gltf.Document, clip *gltf.Animation, maxFrames int) (*Clip, error) {
	raw, err := Extract(doc, clip)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}
	out, err := Resample(raw, maxFrames)
	if err != nil {
		return nil, err
	}
	if clip != nil {
		out.Name = clip.Name
	}
	return out, nil
}

// Resample places every raw channel on one shared uniform timeline.
//
// Translation, rotation and scale tracks come out with exactly
// Timeline.RequiredFrames values; missing tracks are filled with the identity
// transform. Morph weights are resampled on a best-effort basis and never fail
// the clip. Any error discards the whole result.
func Resample(raw map[int]*RawChannel, maxFrames int) (*Clip, error) {
	tl, err := ComputeTimeline(raw, maxFrames)
	if err != nil {
		return nil, err
	}
	g := newGrid(tl)

	bones := make(map[int]*BoneAnimation, len(raw))
	for _, node := range sortedNodes(raw) {
		rc := raw[node]
		if rc == nil {
			rc = &RawChannel{}
		}

		bone := &BoneAnimation{}
		if bone.Translations, err = resampleTrack(rc.Translations, g, mgl32.Vec3{}, math.LerpVec3, node, ComponentTranslation); err != nil {
			return nil, err
		}
		if bone.Rotations, err = resampleTrack(rc.Rotations, g, mgl32.QuatIdent(), math.SlerpQuat, node, ComponentRotation); err != nil {
			return nil, err
		}
		if bone.Scales, err = resampleTrack(rc.Scales, g, math.UnitScale, math.LerpVec3, node, ComponentScale); err != nil {
			return nil, err
		}
		bone.Weights = resampleWeights(rc.Weights, g)
		bones[node] = bone
	}

	return &Clip{Timeline: tl, Bones: bones}, nil
}

func resampleTrack[T any](tr Track[T], g grid, identity T, lerp func(a, b T, t float32) T, node int, c Component) (Track[T], error) {
	if len(tr.Values) != len(tr.Timestamps) {
		return Track[T]{}, &ChannelError{
			Channel: -1, Node: node, Component: c,
			Values: len(tr.Values), Timestamps: len(tr.Timestamps),
			Err: ErrLengthMismatch,
		}
	}

	out := Track[T]{
		Values:     resampleValues(tr.Values, tr.Timestamps, g, identity, lerp),
		Timestamps: append([]float32(nil), g.times...),
	}
	if len(out.Values) != len(g.times) || len(out.Timestamps) != len(g.times) {
		return Track[T]{}, &ChannelError{
			Channel: -1, Node: node, Component: c,
			Values: len(out.Values), Timestamps: len(out.Timestamps),
			Err: ErrGridMismatch,
		}
	}
	return out, nil
}

// resampleValues evaluates a keyframe track at every grid point. values and
// ts must have equal length and ts must be strictly increasing.
func resampleValues[T any](values []T, ts []float32, g grid, identity T, lerp func(a, b T, t float32) T) []T {
	n := len(g.times)
	out := make([]T, n)

	switch {
	case len(values) == 0:
		for i := range out {
			out[i] = identity
		}
		return out
	case len(values) == 1:
		for i := range out {
			out[i] = values[0]
		}
		return out
	}

	first := math.PrecisionKey(ts[0])
	last := math.PrecisionKey(ts[len(ts)-1])
	if first == 0 && last == g.maxKey {
		if len(values) == n {
			copy(out, values)
			return out
		}
		if len(values) == 2 {
			for i := range out {
				out[i] = lerp(values[0], values[1], math.Percentile(i, n))
			}
			return out
		}
	}

	scanSample(out, values, ts, g, lerp)
	return out
}

// scanSample fills out with the general lookup: an exact key match takes the
// source value, otherwise the two neighbouring keyframes are interpolated.
// Source keys never decrease, so one cursor serves the whole grid.
func scanSample[T any](out, values []T, ts []float32, g grid, lerp func(a, b T, t float32) T) {
	src := precisionKeys(ts)
	lo := 0
	for i, k := range g.keys {
		for lo < len(src) && src[lo] < k {
			lo++
		}
		if lo < len(src) && src[lo] == k {
			out[i] = values[lo]
			continue
		}
		if k == 0 {
			out[i] = values[1]
			continue
		}

		lead := max(lo-1, 0)
		follow := lo
		if follow >= len(src) {
			follow = lead
		}
		if lead == follow {
			out[i] = values[lead]
			continue
		}
		out[i] = lerp(values[lead], values[follow], math.Fraction(g.times[i], ts[lead], ts[follow]))
	}
}

// resampleWeights resamples morph target weights. Layouts it cannot
// interpret are kept verbatim with their source timestamps.
func resampleWeights(tr Track[float32], g grid) Track[float32] {
	nv, nt := len(tr.Values), len(tr.Timestamps)
	verbatim := Track[float32]{
		Values:     append([]float32(nil), tr.Values...),
		Timestamps: append([]float32(nil), tr.Timestamps...),
	}

	switch {
	case nv == 0:
		return Track[float32]{}
	case nt == 0:
		return verbatim
	case nv == nt:
		return Track[float32]{
			Values:     resampleValues(tr.Values, tr.Timestamps, g, 0, math.LerpScalar),
			Timestamps: append([]float32(nil), g.times...),
		}
	case nv%nt != 0:
		return verbatim
	}

	// One column per morph target, stored keyframe-major.
	targets := nv / nt
	frames := len(g.times)
	out := make([]float32, frames*targets)
	column := make([]float32, nt)
	for j := 0; j < targets; j++ {
		for i := 0; i < nt; i++ {
			column[i] = tr.Values[i*targets+j]
		}
		sampled := resampleValues(column, tr.Timestamps, g, 0, math.LerpScalar)
		for i, v := range sampled {
			out[i*targets+j] = v
		}
	}
	return Track[float32]{
		Values:     out,
		Timestamps: append([]float32(nil), g.times...),
	}
}
