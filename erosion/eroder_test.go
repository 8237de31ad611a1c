package erosion

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"math"
	"testing"

	"github.com/ob6160/DropletErosion/generators"
	"github.com/ob6160/DropletErosion/terrain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func perlinField(width, height int, seed int64) *terrain.HeightField {
	var field = generators.NewPerlin(width, height, seed).Generate()
	generators.Normalize(field, 0, 255)
	return field
}

func TestDropletsFromConfig(t *testing.T) {
	var cfg = DefaultConfig()
	cfg.IterationsPerPixel = 3
	var eroder = NewEroder(terrain.NewHeightField(4, 5), cfg)
	assert.Equal(t, 60, eroder.Droplets())

	cfg.Iterations = 7
	eroder = NewEroder(terrain.NewHeightField(4, 5), cfg)
	assert.Equal(t, 7, eroder.Droplets())
}

func TestSeedPointRespectsMargin(t *testing.T) {
	var cfg = DefaultConfig()
	cfg.EdgeMargin = 2
	var eroder = NewEroder(terrain.NewHeightField(10, 6), cfg)

	var seenRows = map[int]bool{}
	for i := 0; i < 1000; i++ {
		var p = eroder.SeedPoint()
		require.True(t, p.X >= 2 && p.X <= 3, "row %d", p.X)
		require.True(t, p.Y >= 2 && p.Y <= 7, "column %d", p.Y)
		seenRows[p.X] = true
	}
	assert.Len(t, seenRows, 2)

	cfg.EdgeMargin = 10
	eroder = NewEroder(terrain.NewHeightField(5, 5), cfg)
	for i := 0; i < 200; i++ {
		var p = eroder.SeedPoint()
		require.True(t, eroder.Field().InBounds(p))
	}
}

func TestRunIsDeterministic(t *testing.T) {
	var cfg = DefaultConfig()
	cfg.Iterations = 300
	cfg.Seed = 9
	var source = perlinField(32, 32, 3)

	var a = NewEroder(source.Copy(), cfg)
	var b = NewEroder(source.Copy(), cfg)
	statsA, err := a.Run(context.Background())
	require.NoError(t, err)
	statsB, err := b.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, a.Field().Heights(), b.Field().Heights())
	assert.Equal(t, statsA, statsB)
	assert.Equal(t, 300, statsA.Droplets)
	assert.Equal(t, statsA.Droplets, statsA.OutOfBounds+statsA.WaterExhausted)
	assert.NotEqual(t, source.Heights(), a.Field().Heights())

	cfg.Seed = 10
	var c = NewEroder(source.Copy(), cfg)
	_, err = c.Run(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, a.Field().Heights(), c.Field().Heights())
}

func TestResetReplaysRun(t *testing.T) {
	var cfg = DefaultConfig()
	cfg.Iterations = 50
	var source = perlinField(24, 24, 1)

	var eroder = NewEroder(source.Copy(), cfg)
	_, err := eroder.Run(context.Background())
	require.NoError(t, err)
	var first = eroder.Field().Copy()

	eroder.Reset(source.Copy())
	assert.Equal(t, 0, eroder.Iterations())
	_, err = eroder.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first.Heights(), eroder.Field().Heights())
}

func TestRangeInvariant(t *testing.T) {
	var aggressive = DefaultConfig()
	aggressive.Iterations = 400
	aggressive.Intensity = 20
	aggressive.ErosionRate = 1
	aggressive.TransportRate = 0
	aggressive.DepositThreshold = 0
	aggressive.Brush = terrain.HardBrush

	var narrow = DefaultConfig()
	narrow.Iterations = 400
	narrow.MinHeight = 40
	narrow.MaxHeight = 200

	var fixed = DefaultConfig()
	fixed.Iterations = 400
	fixed.ScaleModel = terrain.ScaleFixed
	fixed.VerticalScale = 1
	fixed.HorizontalScale = 1

	tests := map[string]struct {
		cfg   Config
		field *terrain.HeightField
	}{
		"aggressive perlin": {aggressive, perlinField(32, 32, 4)},
		"aggressive ramp":   {aggressive, generators.Ramp{Width: 20, Height: 30, From: 0, To: 255}.Generate()},
		"narrow range":      {narrow, perlinField(32, 16, 6)},
		"fixed scale":       {fixed, perlinField(16, 32, 7)},
		"saturated":         {aggressive, flatField(16, 16, 255)},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var eroder = NewEroder(tt.field, tt.cfg)
			_, err := eroder.Run(context.Background())
			require.NoError(t, err)
			for i, h := range eroder.Field().Heights() {
				require.False(t, math.IsNaN(float64(h)), "cell %d is NaN", i)
				require.True(t, h >= tt.cfg.MinHeight && h <= tt.cfg.MaxHeight, "cell %d = %v", i, h)
			}
		})
	}
}

func TestFlatFieldDrift(t *testing.T) {
	for _, density := range []int{1, 10} {
		t.Run(fmt.Sprintf("density %d", density), func(t *testing.T) {
			var cfg = DefaultConfig()
			cfg.IterationsPerPixel = density
			cfg.Seed = 5
			var field = flatField(24, 24, 128)

			_, err := NewEroder(field, cfg).Run(context.Background())
			require.NoError(t, err)

			var total float64
			for i, h := range field.Heights() {
				var drift = math.Abs(float64(h) - 128)
				require.True(t, drift <= 2, "cell %d drifted to %v", i, h)
				total += drift
			}
			var mean = total / float64(len(field.Heights()))
			assert.True(t, mean <= 0.5, "mean drift %v", mean)
		})
	}
}

func TestRunStopsWhenCancelled(t *testing.T) {
	var cfg = DefaultConfig()
	cfg.Iterations = 10
	var field = flatField(8, 8, 300)

	var ctx, cancel = context.WithCancel(context.Background())
	cancel()
	var eroder = NewEroder(field, cfg)
	_, err := eroder.Run(ctx)
	assert.Equal(t, context.Canceled, err)
	assert.Equal(t, 0, eroder.Iterations())
	assert.Equal(t, float32(300), field.Heights()[0], "a cancelled run is not finalised")
}

func TestRunLogsProgress(t *testing.T) {
	var buf bytes.Buffer
	originalFlags := log.Flags()
	originalWriter := log.Writer()
	log.SetFlags(0)
	log.SetOutput(&buf)
	defer func() {
		log.SetOutput(originalWriter)
		log.SetFlags(originalFlags)
	}()

	var cfg = DefaultConfig()
	cfg.Iterations = 4
	cfg.ProgressInterval = 2
	_, err := NewEroder(perlinField(16, 16, 2), cfg).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "eroded 2/4 droplets\neroded 4/4 droplets\n", buf.String())
}

func TestSimulationStepCountsIterations(t *testing.T) {
	var cfg = DefaultConfig()
	var eroder = NewEroder(perlinField(16, 16, 2), cfg)
	var result = eroder.SimulationStep()
	assert.True(t, result.Outcome.Terminal())
	assert.Equal(t, 1, eroder.Iterations())
	assert.Equal(t, 1, eroder.Stats().Droplets)
	assert.Equal(t, result.Steps, eroder.Stats().Steps)
}
