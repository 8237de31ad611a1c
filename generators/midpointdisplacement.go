package generators

import (
	"math/rand"

	"github.com/ob6160/DropletErosion/terrain"
	"github.com/ob6160/DropletErosion/utils"
)

type MidpointDisplacement struct {
	width, height int
	Spread        float32
	Reduce        float32
	rng           *rand.Rand

	field *terrain.HeightField
	set   []bool
}

func NewMidPointDisplacement(width, height int, seed int64) *MidpointDisplacement {
	return &MidpointDisplacement{
		width:  width,
		height: height,
		Spread: 0.5,
		Reduce: 0.5,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

func (m *MidpointDisplacement) Dimensions() (int, int) {
	return m.width, m.height
}

// Generate returns a field normalised to [0, 1].
func (m *MidpointDisplacement) Generate() *terrain.HeightField {
	m.field = terrain.NewHeightField(m.width, m.height)
	m.set = make([]bool, m.width*m.height)

	// Set all four corners to random values
	var topLeft = utils.Point{X: 0, Y: 0}
	var topRight = utils.Point{X: 0, Y: m.width - 1}
	var bottomLeft = utils.Point{X: m.height - 1, Y: 0}
	var bottomRight = utils.Point{X: m.height - 1, Y: m.width - 1}
	for _, p := range []utils.Point{topLeft, topRight, bottomLeft, bottomRight} {
		m.assign(p, m.rng.Float32())
	}
	m.displace(topLeft, bottomRight, m.Spread)

	Normalize(m.field, 0, 1)
	return m.field
}

func (m *MidpointDisplacement) assign(p utils.Point, value float32) {
	m.field.Set(p, value)
	m.set[p.ToIndex(m.width)] = true
}

// fill sets p to the jittered average of the given cells unless it was
// already assigned by a neighbouring square.
func (m *MidpointDisplacement) fill(p utils.Point, spread float32, from ...utils.Point) {
	if m.set[p.ToIndex(m.width)] {
		return
	}
	var values = make([]float32, len(from))
	for i, q := range from {
		values[i] = m.field.Get(q)
	}
	m.assign(p, utils.Jitter(m.rng, utils.Average(values...), spread))
}

func (m *MidpointDisplacement) displace(tl, br utils.Point, spread float32) {
	if br.X-tl.X < 2 && br.Y-tl.Y < 2 {
		return
	}
	var tr = utils.Point{X: tl.X, Y: br.Y}
	var bl = utils.Point{X: br.X, Y: tl.Y}
	var midX = utils.Midpoint(tl.X, br.X)
	var midY = utils.Midpoint(tl.Y, br.Y)

	var topMid = utils.Point{X: tl.X, Y: midY}
	var leftMid = utils.Point{X: midX, Y: tl.Y}
	var rightMid = utils.Point{X: midX, Y: br.Y}
	var bottomMid = utils.Point{X: br.X, Y: midY}
	var centre = utils.Point{X: midX, Y: midY}

	m.fill(topMid, spread, tl, tr)
	m.fill(leftMid, spread, tl, bl)
	m.fill(rightMid, spread, tr, br)
	m.fill(bottomMid, spread, bl, br)
	m.fill(centre, spread, topMid, leftMid, rightMid, bottomMid)

	var next = spread * m.Reduce
	m.displace(tl, centre, next)
	m.displace(topMid, rightMid, next)
	m.displace(leftMid, bottomMid, next)
	m.displace(centre, br, next)
}
