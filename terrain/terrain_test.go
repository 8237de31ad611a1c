package terrain

import (
	"fmt"
	"testing"

	"github.com/ob6160/DropletErosion/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeightFieldAccess(t *testing.T) {
	var field = NewHeightField(4, 3)
	var width, height = field.Dimensions()
	assert.Equal(t, 4, width)
	assert.Equal(t, 3, height)

	field.Set(utils.Point{X: 2, Y: 3}, 10)
	field.Add(utils.Point{X: 2, Y: 3}, 2.5)
	assert.Equal(t, float32(12.5), field.Get(utils.Point{X: 2, Y: 3}))
	assert.Equal(t, float32(12.5), field.Heights()[11])

	assert.True(t, field.InBounds(utils.Point{X: 2, Y: 3}))
	assert.False(t, field.InBounds(utils.Point{X: 3, Y: 0}))
	assert.False(t, field.InBounds(utils.Point{X: 0, Y: -1}))
}

func TestHeightFieldOutOfRangePanics(t *testing.T) {
	var field = NewHeightField(2, 2)
	assert.Panics(t, func() { field.Get(utils.Point{X: 2, Y: 0}) })
	assert.Panics(t, func() { field.Add(utils.Point{X: 0, Y: -1}, 1) })
	assert.Panics(t, func() { NewHeightField(0, 3) })
	assert.Panics(t, func() { NewHeightFieldFromSamples(2, 2, []uint8{1, 2, 3}) })
}

func TestHeightFieldSamplesRoundTrip(t *testing.T) {
	var samples = []uint8{0, 64, 128, 255, 17, 3}
	var field = NewHeightFieldFromSamples(3, 2, samples)
	assert.Equal(t, float32(128), field.Get(utils.Point{X: 0, Y: 2}))
	assert.Equal(t, samples, field.Samples())

	field.Add(utils.Point{X: 0, Y: 1}, 0.9)
	field.Add(utils.Point{X: 1, Y: 1}, -100)
	field.Add(utils.Point{X: 0, Y: 0}, 400)
	field.Clamp(0, 255)
	var got = field.Samples()
	assert.Equal(t, uint8(64), got[1], "conversion truncates")
	assert.Equal(t, uint8(0), got[4])
	assert.Equal(t, uint8(255), got[0])
}

func TestHeightFieldCopyIsIndependent(t *testing.T) {
	var field = NewHeightField(2, 2)
	var c = field.Copy()
	c.Add(utils.Point{X: 1, Y: 1}, 5)
	assert.Equal(t, float32(0), field.Get(utils.Point{X: 1, Y: 1}))
}

func TestSoftBrushWeights(t *testing.T) {
	var field = NewHeightField(5, 5)
	Brush{Mode: SoftBrush}.Apply(field, utils.Point{X: 2, Y: 2}, 10)

	var want = [][]float32{
		{0, 0, 0, 0, 0},
		{0, 1.5, 3, 1.5, 0},
		{0, 3, 10, 3, 0},
		{0, 1.5, 3, 1.5, 0},
		{0, 0, 0, 0, 0},
	}
	for x := range want {
		for y := range want[x] {
			assert.InDelta(t, want[x][y], field.Get(utils.Point{X: x, Y: y}), 1e-5, "cell %d,%d", x, y)
		}
	}
}

func TestSoftBrushSkipsOutOfBoundsWithoutRenormalising(t *testing.T) {
	var field = NewHeightField(3, 3)
	Brush{Mode: SoftBrush}.Apply(field, utils.Point{X: 0, Y: 0}, 1)

	var total float32
	for _, h := range field.Heights() {
		total += h
	}
	assert.InDelta(t, 1.75, total, 1e-5)
	assert.InDelta(t, 1.0, field.Get(utils.Point{X: 0, Y: 0}), 1e-6)
	assert.InDelta(t, 0.15, field.Get(utils.Point{X: 1, Y: 1}), 1e-6)
	assert.Equal(t, float32(0), field.Get(utils.Point{X: 2, Y: 2}))

	var interior = NewHeightField(3, 3)
	Brush{Mode: SoftBrush}.Apply(interior, utils.Point{X: 1, Y: 1}, 1)
	total = 0
	for _, h := range interior.Heights() {
		total += h
	}
	assert.InDelta(t, 2.8, total, 1e-5)
}

func TestHardBrushTouchesCentreOnly(t *testing.T) {
	var field = NewHeightField(3, 3)
	Brush{Mode: HardBrush}.Apply(field, utils.Point{X: 1, Y: 1}, -4)
	for i, h := range field.Heights() {
		if i == 4 {
			assert.Equal(t, float32(-4), h)
			continue
		}
		assert.Equal(t, float32(0), h)
	}
}

func TestBrushModeText(t *testing.T) {
	var mode BrushMode
	require.NoError(t, mode.UnmarshalText([]byte("hard")))
	assert.Equal(t, HardBrush, mode)
	assert.Error(t, mode.UnmarshalText([]byte("fuzzy")))
	text, err := SoftBrush.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "soft", string(text))
}

func TestTangentCentralDifference(t *testing.T) {
	var field = NewHeightField(32, 32)
	for x := 0; x < 32; x++ {
		for y := 0; y < 32; y++ {
			field.Set(utils.Point{X: x, Y: y}, float32(2*x+3*y))
		}
	}
	var sampler = GradientSampler{VerticalScale: 32, HorizontalScale: 32, Model: ScaleGrid}

	var tangent = sampler.Tangent(field, utils.Point{X: 10, Y: 10})
	assert.InDelta(t, 4, tangent.X(), 1e-5)
	assert.InDelta(t, 6, tangent.Y(), 1e-5)
}

func TestTangentPadsEdgesWithCentre(t *testing.T) {
	var field = NewHeightField(4, 4)
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			field.Set(utils.Point{X: x, Y: y}, float32(10*x+y))
		}
	}
	var sampler = GradientSampler{VerticalScale: 1, HorizontalScale: 1, Model: ScaleFixed}

	tests := []struct {
		give   utils.Point
		wantDV float32
		wantDH float32
	}{
		{utils.Point{X: 0, Y: 0}, 10, 1},
		{utils.Point{X: 3, Y: 3}, 10, 1},
		{utils.Point{X: 1, Y: 1}, 20, 2},
		{utils.Point{X: 0, Y: 2}, 10, 2},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%v", tt.give), func(t *testing.T) {
			var tangent = sampler.Tangent(field, tt.give)
			assert.InDelta(t, tt.wantDV, tangent.X(), 1e-5)
			assert.InDelta(t, tt.wantDH, tangent.Y(), 1e-5)
		})
	}
}

func TestResolutionModels(t *testing.T) {
	var field = NewHeightField(64, 16)
	var grid = GradientSampler{VerticalScale: 32, HorizontalScale: 32, Model: ScaleGrid}
	var rv, rh = grid.Resolution(field)
	assert.Equal(t, float32(2), rv)
	assert.Equal(t, float32(0.5), rh)

	var fixed = GradientSampler{VerticalScale: 8, HorizontalScale: 4, Model: ScaleFixed}
	rv, rh = fixed.Resolution(field)
	assert.Equal(t, float32(8), rv)
	assert.Equal(t, float32(4), rh)
}
