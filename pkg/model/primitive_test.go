package model

import (
	"errors"
	"reflect"
	"testing"
)

func primitiveWith(mode Mode, vertices int, indices ...uint32) *Primitive {
	p := &Primitive{Mode: mode, Vertices: make([]Vertex, vertices)}
	if indices != nil {
		p.Indices = indices
		p.HasIndices = true
	}
	return p
}

func TestTriangles(t *testing.T) {
	tests := []struct {
		name string
		prim *Primitive
		want [][3]uint32
	}{
		{"list", primitiveWith(ModeTriangles, 4, 0, 1, 2, 2, 1, 3), [][3]uint32{{0, 1, 2}, {2, 1, 3}}},
		{"list drops partial", primitiveWith(ModeTriangles, 4), [][3]uint32{{0, 1, 2}}},
		{"strip", primitiveWith(ModeTriangleStrip, 5), [][3]uint32{{0, 1, 2}, {1, 3, 2}, {2, 3, 4}}},
		{"fan", primitiveWith(ModeTriangleFan, 5), [][3]uint32{{1, 2, 0}, {2, 3, 0}, {3, 4, 0}}},
		{"indexed fan", primitiveWith(ModeTriangleFan, 4, 3, 2, 1, 0), [][3]uint32{{2, 1, 3}, {1, 0, 3}}},
		{"too short", primitiveWith(ModeTriangleStrip, 2), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.prim.Triangles()
			if err != nil {
				t.Fatalf("Triangles failed: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLines(t *testing.T) {
	tests := []struct {
		name string
		prim *Primitive
		want [][2]uint32
	}{
		{"list", primitiveWith(ModeLines, 4), [][2]uint32{{0, 1}, {2, 3}}},
		{"strip", primitiveWith(ModeLineStrip, 3), [][2]uint32{{0, 1}, {1, 2}}},
		{"loop", primitiveWith(ModeLineLoop, 3), [][2]uint32{{0, 1}, {1, 2}, {2, 0}}},
		{"indexed loop", primitiveWith(ModeLineLoop, 3, 2, 0), [][2]uint32{{2, 0}, {0, 2}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.prim.Lines()
			if err != nil {
				t.Fatalf("Lines failed: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPoints(t *testing.T) {
	got, err := primitiveWith(ModePoints, 3, 2, 2, 0).Points()
	if err != nil {
		t.Fatalf("Points failed: %v", err)
	}
	if !reflect.DeepEqual(got, []uint32{2, 2, 0}) {
		t.Errorf("got %v", got)
	}
}

func TestTopologyErrors(t *testing.T) {
	if _, err := primitiveWith(ModeLines, 2).Triangles(); !errors.Is(err, ErrBadMode) {
		t.Errorf("Triangles on lines: expected ErrBadMode, got %v", err)
	}
	if _, err := primitiveWith(ModeTriangles, 3).Lines(); !errors.Is(err, ErrBadMode) {
		t.Errorf("Lines on triangles: expected ErrBadMode, got %v", err)
	}
	if _, err := primitiveWith(ModeLineStrip, 3).Points(); !errors.Is(err, ErrBadMode) {
		t.Errorf("Points on line strip: expected ErrBadMode, got %v", err)
	}
	if _, err := primitiveWith(ModeTriangles, 3, 0, 1, 7).Triangles(); !errors.Is(err, ErrIndexRange) {
		t.Errorf("out-of-range index: expected ErrIndexRange, got %v", err)
	}
}

func TestModeString(t *testing.T) {
	if ModeTriangleFan.String() != "triangle fan" || Mode(42).String() != "unknown" {
		t.Errorf("unexpected mode names")
	}
}
