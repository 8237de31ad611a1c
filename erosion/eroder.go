package erosion

import (
	"context"
	"log"
	"math/rand"

	"github.com/ob6160/DropletErosion/terrain"
	"github.com/ob6160/DropletErosion/utils"
)

// Eroder drops droplets on a height field one after another from a single
// seeded random source, so a run is reproducible from its Config.
type Eroder struct {
	field      *terrain.HeightField
	cfg        Config
	rng        *rand.Rand
	simulator  *Simulator
	iterations int
	stats      Stats
}

func NewEroder(field *terrain.HeightField, cfg Config) *Eroder {
	var eroder = Eroder{cfg: cfg}
	eroder.Reset(field)
	return &eroder
}

// Reset binds the eroder to field and rewinds the random source.
func (e *Eroder) Reset(field *terrain.HeightField) {
	e.field = field
	e.rng = rand.New(rand.NewSource(e.cfg.Seed))
	e.simulator = NewSimulator(field, &e.cfg, e.rng)
	e.iterations = 0
	e.stats = Stats{}
}

func (e *Eroder) Field() *terrain.HeightField {
	return e.field
}

func (e *Eroder) Iterations() int {
	return e.iterations
}

func (e *Eroder) Stats() Stats {
	return e.stats
}

// Droplets is the number of droplets Run drops in total.
func (e *Eroder) Droplets() int {
	var width, height = e.field.Dimensions()
	return e.cfg.Droplets(width, height)
}

// SeedPoint draws a starting cell at least EdgeMargin cells from every
// border. An axis too short for the margin is sampled in full.
func (e *Eroder) SeedPoint() utils.Point {
	var width, height = e.field.Dimensions()
	var x = e.between(marginRange(height, e.cfg.EdgeMargin))
	var y = e.between(marginRange(width, e.cfg.EdgeMargin))
	return utils.Point{X: x, Y: y}
}

func marginRange(size, margin int) (int, int) {
	var lo, hi = margin, size - 1 - margin
	if hi < lo {
		return 0, size - 1
	}
	return lo, hi
}

func (e *Eroder) between(lo, hi int) int {
	return lo + e.rng.Intn(hi-lo+1)
}

// SimulationStep drops a single droplet and runs it to completion.
func (e *Eroder) SimulationStep() Result {
	var droplet = e.simulator.NewDroplet(e.SeedPoint())
	var result = e.simulator.Run(droplet)
	e.iterations++
	e.stats.Record(result)
	return result
}

// Run drops the remaining droplets and finalises the field. The context is
// only consulted between droplets.
func (e *Eroder) Run(ctx context.Context) (Stats, error) {
	var total = e.Droplets()
	for e.iterations < total {
		if err := ctx.Err(); err != nil {
			return e.stats, err
		}
		e.SimulationStep()
		if e.cfg.ProgressInterval > 0 && e.iterations%e.cfg.ProgressInterval == 0 {
			log.Printf("eroded %d/%d droplets", e.iterations, total)
		}
	}
	e.Finalise()
	return e.stats, nil
}

// Finalise clamps the field to the configured output range.
func (e *Eroder) Finalise() {
	e.field.Clamp(e.cfg.MinHeight, e.cfg.MaxHeight)
}
