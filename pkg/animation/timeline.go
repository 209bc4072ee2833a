package animation

import (
	"fmt"
	gomath "math"
	"slices"
)

// DefaultMaxFrames caps the number of frames a resampled timeline may hold
// when the caller does not set its own limit.
const DefaultMaxFrames = 1 << 16

// Timeline is the uniform sampling grid shared by every bone of a clip.
type Timeline struct {
	MinTime        float32
	MaxTime        float32
	MinDistance    float32 // smallest positive gap between consecutive keyframes
	RequiredFrames int
	Delta          float32 // grid spacing
}

// Grid returns the frame timestamps 0, Delta, 2*Delta, ...
func (t Timeline) Grid() []float32 {
	grid := make([]float32, t.RequiredFrames)
	for i := range grid {
		grid[i] = float32(i) * t.Delta
	}
	return grid
}

// Duration returns the length of the clip measured from time zero.
func (t Timeline) Duration() float32 {
	return t.MaxTime
}

// Clip is a resampled animation keyed by glTF node index.
type Clip struct {
	Name     string
	Timeline Timeline
	Bones    map[int]*BoneAnimation
}

// Nodes returns the animated node indices in ascending order.
func (c *Clip) Nodes() []int {
	nodes := make([]int, 0, len(c.Bones))
	for n := range c.Bones {
		nodes = append(nodes, n)
	}
	slices.Sort(nodes)
	return nodes
}

// ComputeTimeline scans every timestamp array in raw and derives the shared
// grid. maxFrames <= 0 selects DefaultMaxFrames.
func ComputeTimeline(raw map[int]*RawChannel, maxFrames int) (Timeline, error) {
	if maxFrames <= 0 {
		maxFrames = DefaultMaxFrames
	}

	s := timingScan{
		min:     float32(gomath.Inf(1)),
		max:     float32(gomath.Inf(-1)),
		minDist: float32(gomath.Inf(1)),
	}
	for _, node := range sortedNodes(raw) {
		rc := raw[node]
		if rc == nil {
			continue
		}
		for _, tr := range []struct {
			c  Component
			ts []float32
		}{
			{ComponentTranslation, rc.Translations.Timestamps},
			{ComponentRotation, rc.Rotations.Timestamps},
			{ComponentScale, rc.Scales.Timestamps},
			{ComponentWeights, rc.Weights.Timestamps},
		} {
			if err := s.scan(tr.ts); err != nil {
				return Timeline{}, fmt.Errorf("node %d %s: %w", node, tr.c, err)
			}
		}
	}

	if gomath.IsInf(float64(s.minDist), 1) {
		return Timeline{}, fmt.Errorf("%w: no positive gap between keyframes", ErrDegenerateTiming)
	}

	frames := gomath.Round(float64(s.max/s.minDist)) + 1
	if frames < 1 {
		return Timeline{}, fmt.Errorf("%w: clip ends before time zero (%g)", ErrDegenerateTiming, s.max)
	}
	if frames > float64(maxFrames) {
		return Timeline{}, fmt.Errorf("%w: %g frames exceed the limit of %d", ErrDegenerateTiming, frames, maxFrames)
	}

	tl := Timeline{
		MinTime:        s.min,
		MaxTime:        s.max,
		MinDistance:    s.minDist,
		RequiredFrames: int(frames),
		Delta:          s.minDist,
	}
	if tl.RequiredFrames > 1 {
		tl.Delta = tl.MaxTime / float32(tl.RequiredFrames-1)
	}
	return tl, nil
}

type timingScan struct {
	min, max, minDist float32
}

func (s *timingScan) scan(ts []float32) error {
	for i, t := range ts {
		if gomath.IsNaN(float64(t)) || gomath.IsInf(float64(t), 0) {
			return fmt.Errorf("%w: timestamp %d is not finite", ErrDegenerateTiming, i)
		}
		s.min = min(s.min, t)
		s.max = max(s.max, t)
		if i == 0 {
			continue
		}
		d := t - ts[i-1]
		if d <= 0 {
			return fmt.Errorf("%w: timestamp %d (%g) does not follow %g", ErrDegenerateTiming, i, t, ts[i-1])
		}
		s.minDist = min(s.minDist, d)
	}
	return nil
}

func sortedNodes(raw map[int]*RawChannel) []int {
	nodes := make([]int, 0, len(raw))
	for n := range raw {
		nodes = append(nodes, n)
	}
	slices.Sort(nodes)
	return nodes
}
