package generators

import (
	"github.com/aquilax/go-perlin"
	"github.com/ob6160/DropletErosion/terrain"
)

// Perlin generates a height field from layered perlin noise.
type Perlin struct {
	width, height int
	// Period is the number of cells covered by one unit of noise space.
	Period float64
	noise  *perlin.Perlin
}

func NewPerlin(width, height int, seed int64) *Perlin {
	return &Perlin{
		width:  width,
		height: height,
		Period: 32,
		noise:  perlin.NewPerlin(2, 2, 4, seed),
	}
}

func (p *Perlin) Dimensions() (int, int) {
	return p.width, p.height
}

// Generate returns a field normalised to [0, 1].
func (p *Perlin) Generate() *terrain.HeightField {
	var field = terrain.NewHeightField(p.width, p.height)
	var heights = field.Heights()
	for x := 0; x < p.height; x++ {
		for y := 0; y < p.width; y++ {
			heights[x*p.width+y] = float32(p.noise.Noise2D(float64(y)/p.Period, float64(x)/p.Period))
		}
	}
	Normalize(field, 0, 1)
	return field
}
