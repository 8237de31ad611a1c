package generators

import (
	"math"

	"github.com/ob6160/DropletErosion/terrain"
)

// TerrainGenerator produces a synthetic height field.
type TerrainGenerator interface {
	Generate() *terrain.HeightField
	Dimensions() (int, int)
}

// Normalize stretches the field so its lowest cell becomes lo and its
// highest hi. A flat field is set to lo.
func Normalize(field *terrain.HeightField, lo, hi float32) {
	var heights = field.Heights()
	var maxValue = float32(math.Inf(-1))
	var minValue = float32(math.Inf(1))
	for _, h := range heights {
		if h > maxValue {
			maxValue = h
		}
		if h < minValue {
			minValue = h
		}
	}
	var diff = maxValue - minValue

	for i := range heights {
		if diff == 0 {
			heights[i] = lo
			continue
		}
		heights[i] = lo + (heights[i]-minValue)/diff*(hi-lo)
	}
}
