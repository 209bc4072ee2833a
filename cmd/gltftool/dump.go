package main

import (
	"github.com/jordan4ibanez/minetest-gltf/pkg/animation"
	"github.com/jordan4ibanez/minetest-gltf/pkg/math"
	"gopkg.in/yaml.v3"
)

type clipDump struct {
	Name     string       `yaml:"name"`
	Timeline timelineDump `yaml:"timeline"`
	Bones    []boneDump   `yaml:"bones"`
}

type timelineDump struct {
	MinTime        float32 `yaml:"min_time"`
	MaxTime        float32 `yaml:"max_time"`
	MinDistance    float32 `yaml:"min_distance"`
	RequiredFrames int     `yaml:"required_frames"`
	Delta          float32 `yaml:"delta"`
}

// boneDump stores rotations as x, y, z, w to match the glTF layout.
type boneDump struct {
	Node             int          `yaml:"node"`
	Timestamps       []float32    `yaml:"timestamps,flow"`
	Translations     [][3]float32 `yaml:"translations,flow"`
	Rotations        [][4]float32 `yaml:"rotations,flow"`
	Scales           [][3]float32 `yaml:"scales,flow"`
	Weights          []float32    `yaml:"weights,flow,omitempty"`
	WeightTimestamps []float32    `yaml:"weight_timestamps,flow,omitempty"`
}

func newClipDump(clip *animation.Clip) clipDump {
	tl := clip.Timeline
	d := clipDump{
		Name: clip.Name,
		Timeline: timelineDump{
			MinTime:        tl.MinTime,
			MaxTime:        tl.MaxTime,
			MinDistance:    tl.MinDistance,
			RequiredFrames: tl.RequiredFrames,
			Delta:          tl.Delta,
		},
		Bones: make([]boneDump, 0, len(clip.Bones)),
	}

	for _, n := range clip.Nodes() {
		bone := clip.Bones[n]
		b := boneDump{
			Node:             n,
			Timestamps:       bone.Translations.Timestamps,
			Translations:     make([][3]float32, len(bone.Translations.Values)),
			Rotations:        make([][4]float32, len(bone.Rotations.Values)),
			Scales:           make([][3]float32, len(bone.Scales.Values)),
			Weights:          bone.Weights.Values,
			WeightTimestamps: bone.Weights.Timestamps,
		}
		for i, v := range bone.Translations.Values {
			b.Translations[i] = [3]float32(v)
		}
		for i, q := range bone.Rotations.Values {
			b.Rotations[i] = math.QuatToXYZW(q)
		}
		for i, v := range bone.Scales.Values {
			b.Scales[i] = [3]float32(v)
		}
		d.Bones = append(d.Bones, b)
	}
	return d
}

func marshalClip(clip *animation.Clip) ([]byte, error) {
	return yaml.Marshal(newClipDump(clip))
}
