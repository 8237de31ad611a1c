package terrain

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/ob6160/DropletErosion/utils"
)

type ScaleModel int

const (
	// ScaleGrid divides the simulation scale by the grid size, so the
	// resolution of one cell shrinks as the field grows.
	ScaleGrid ScaleModel = iota
	// ScaleFixed uses the simulation scale as a fixed per-cell divisor.
	ScaleFixed
)

var scaleModelNames = map[ScaleModel]string{
	ScaleGrid:  "grid",
	ScaleFixed: "fixed",
}

func (m ScaleModel) String() string {
	if name, ok := scaleModelNames[m]; ok {
		return name
	}
	return fmt.Sprintf("ScaleModel(%d)", int(m))
}

func ParseScaleModel(s string) (ScaleModel, error) {
	for model, name := range scaleModelNames {
		if name == s {
			return model, nil
		}
	}
	return ScaleGrid, fmt.Errorf("unknown scale model %q", s)
}

func (m ScaleModel) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *ScaleModel) UnmarshalText(text []byte) error {
	model, err := ParseScaleModel(string(text))
	if err != nil {
		return err
	}
	*m = model
	return nil
}

// GradientSampler estimates the local slope with central differences.
type GradientSampler struct {
	VerticalScale, HorizontalScale float32
	Model                          ScaleModel
}

// Resolution returns the size of one cell along the vertical (row) and
// horizontal (column) axes.
func (g GradientSampler) Resolution(field *HeightField) (float32, float32) {
	if g.Model == ScaleFixed {
		return g.VerticalScale, g.HorizontalScale
	}
	var width, height = field.Dimensions()
	return g.VerticalScale / float32(height), g.HorizontalScale / float32(width)
}

// Tangent returns (bottom-top, right-left) divided by the cell resolution.
// Neighbours outside the field take the height of p.
func (g GradientSampler) Tangent(field *HeightField, p utils.Point) mgl32.Vec2 {
	var centralValue = field.Get(p)

	var sample = func(n utils.Point) float32 {
		if field.InBounds(n) {
			return field.Get(n)
		}
		return centralValue
	}

	var th = sample(utils.Point{X: p.X - 1, Y: p.Y})
	var bh = sample(utils.Point{X: p.X + 1, Y: p.Y})
	var lh = sample(utils.Point{X: p.X, Y: p.Y - 1})
	var rh = sample(utils.Point{X: p.X, Y: p.Y + 1})

	var resV, resH = g.Resolution(field)
	return mgl32.Vec2{(bh - th) / resV, (rh - lh) / resH}
}
