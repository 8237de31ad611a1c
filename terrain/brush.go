package terrain

import (
	"fmt"

	"github.com/ob6160/DropletErosion/utils"
)

type BrushMode int

const (
	// SoftBrush spreads a modification over the cell and its 8 neighbours.
	SoftBrush BrushMode = iota
	// HardBrush modifies the target cell only.
	HardBrush
)

const (
	orthoWeight  = 0.3
	cornerWeight = 0.15
)

var brushModeNames = map[BrushMode]string{
	SoftBrush: "soft",
	HardBrush: "hard",
}

func (m BrushMode) String() string {
	if name, ok := brushModeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("BrushMode(%d)", int(m))
}

func ParseBrushMode(s string) (BrushMode, error) {
	for mode, name := range brushModeNames {
		if name == s {
			return mode, nil
		}
	}
	return SoftBrush, fmt.Errorf("unknown brush mode %q", s)
}

func (m BrushMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *BrushMode) UnmarshalText(text []byte) error {
	mode, err := ParseBrushMode(string(text))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

type brushTap struct {
	offset utils.Point
	weight float32
}

var softTaps = []brushTap{
	{utils.Point{X: -1, Y: -1}, cornerWeight},
	{utils.Point{X: -1, Y: 0}, orthoWeight},
	{utils.Point{X: -1, Y: 1}, cornerWeight},
	{utils.Point{X: 0, Y: -1}, orthoWeight},
	{utils.Point{X: 0, Y: 1}, orthoWeight},
	{utils.Point{X: 1, Y: -1}, cornerWeight},
	{utils.Point{X: 1, Y: 0}, orthoWeight},
	{utils.Point{X: 1, Y: 1}, cornerWeight},
}

// Brush distributes a height modification around a cell. Neighbour weights
// are not renormalised at the edges or in the interior, so a soft
// application of v adds up to 2.8*v to the field.
type Brush struct {
	Mode BrushMode
}

// Apply adds value to p and, in soft mode, weighted shares of value to each
// in-bounds neighbour. p itself must be in bounds.
func (b Brush) Apply(field *HeightField, p utils.Point, value float32) {
	if b.Mode == SoftBrush {
		for _, tap := range softTaps {
			var n = p.Add(tap.offset)
			if field.InBounds(n) {
				field.Add(n, value*tap.weight)
			}
		}
	}
	field.Add(p, value)
}
