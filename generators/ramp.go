package generators

import (
	"github.com/ob6160/DropletErosion/terrain"
)

// Ramp is a plane sloping linearly from From to To, along the columns when
// Horizontal is set and along the rows otherwise.
type Ramp struct {
	Width, Height int
	From, To      float32
	Horizontal    bool
}

func (r Ramp) Dimensions() (int, int) {
	return r.Width, r.Height
}

func (r Ramp) Generate() *terrain.HeightField {
	var field = terrain.NewHeightField(r.Width, r.Height)
	var heights = field.Heights()

	var steps = r.Height - 1
	if r.Horizontal {
		steps = r.Width - 1
	}
	for x := 0; x < r.Height; x++ {
		for y := 0; y < r.Width; y++ {
			var i = x
			if r.Horizontal {
				i = y
			}
			var t float32
			if steps > 0 {
				t = float32(i) / float32(steps)
			}
			heights[x*r.Width+y] = r.From + (r.To-r.From)*t
		}
	}
	return field
}
