package terrain

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/ob6160/DropletErosion/utils"
)

// HeightField is a width x height grid of elevations stored row-major in a
// single buffer.
type HeightField struct {
	width, height int
	heights       []float32
}

func NewHeightField(width, height int) *HeightField {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("terrain: invalid dimensions %dx%d", width, height))
	}
	return &HeightField{
		width:   width,
		height:  height,
		heights: make([]float32, width*height),
	}
}

// NewHeightFieldFromSamples builds a field from row-major intensity samples.
func NewHeightFieldFromSamples(width, height int, samples []uint8) *HeightField {
	var field = NewHeightField(width, height)
	if len(samples) != width*height {
		panic(fmt.Sprintf("terrain: %d samples for a %dx%d field", len(samples), width, height))
	}
	for i, s := range samples {
		field.heights[i] = float32(s)
	}
	return field
}

func (f *HeightField) Dimensions() (int, int) {
	return f.width, f.height
}

func (f *HeightField) InBounds(p utils.Point) bool {
	return p.Within(f.width, f.height)
}

func (f *HeightField) index(p utils.Point) int {
	if !f.InBounds(p) {
		panic(fmt.Sprintf("terrain: %v outside %dx%d field", p, f.width, f.height))
	}
	return p.ToIndex(f.width)
}

func (f *HeightField) Get(p utils.Point) float32 {
	return f.heights[f.index(p)]
}

func (f *HeightField) Set(p utils.Point, value float32) {
	f.heights[f.index(p)] = value
}

func (f *HeightField) Add(p utils.Point, delta float32) {
	f.heights[f.index(p)] += delta
}

// Heights exposes the underlying row-major buffer.
func (f *HeightField) Heights() []float32 {
	return f.heights
}

func (f *HeightField) Copy() *HeightField {
	var c = NewHeightField(f.width, f.height)
	copy(c.heights, f.heights)
	return c
}

// Clamp limits every cell to [lo, hi].
func (f *HeightField) Clamp(lo, hi float32) {
	for i, h := range f.heights {
		f.heights[i] = mgl32.Clamp(h, lo, hi)
	}
}

// Samples converts the field to byte intensities, truncating toward zero.
// Values outside [0, 255] are clamped first.
func (f *HeightField) Samples() []uint8 {
	var samples = make([]uint8, len(f.heights))
	for i, h := range f.heights {
		samples[i] = uint8(mgl32.Clamp(h, 0, 255))
	}
	return samples
}
