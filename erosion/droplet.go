package erosion

import (
	"math/rand"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/ob6160/DropletErosion/terrain"
	"github.com/ob6160/DropletErosion/utils"
)

const (
	// A pit is filled with a 75/25 split between the brush and a direct
	// addition to the cell, the direct part scaled by pitFillRatio.
	pitFillRatio  = 2.8
	pitBrushShare = 0.75
)

// Simulator runs droplets over a height field one at a time.
type Simulator struct {
	field    *terrain.HeightField
	cfg      *Config
	sampler  terrain.GradientSampler
	brush    terrain.Brush
	fallback *rand.Rand

	resV, resH   float32
	flatV, flatH float32
	pits         int
}

// NewSimulator binds a simulator to field. rng feeds the random direction
// used on flat ground unless cfg.ReseedFallback is set, in which case every
// droplet replays the same sequence seeded from cfg.Seed.
func NewSimulator(field *terrain.HeightField, cfg *Config, rng *rand.Rand) *Simulator {
	var s = &Simulator{
		field:    field,
		cfg:      cfg,
		sampler:  cfg.sampler(),
		brush:    terrain.Brush{Mode: cfg.Brush},
		fallback: rng,
	}
	if cfg.ReseedFallback {
		s.fallback = rand.New(rand.NewSource(cfg.Seed))
	}
	s.resV, s.resH = s.sampler.Resolution(field)
	s.flatV = cfg.Flatness * s.resV
	s.flatH = cfg.Flatness * s.resH
	return s
}

// NewDroplet places a droplet with a full load of water at p.
func (s *Simulator) NewDroplet(p utils.Point) Droplet {
	return Droplet{
		Position: p,
		Water:    s.cfg.StartingWater,
	}
}

// Run steps d until it leaves the field or evaporates.
func (s *Simulator) Run(d Droplet) Result {
	if s.cfg.ReseedFallback {
		s.fallback.Seed(s.cfg.Seed)
	}
	s.pits = 0

	var result = Result{Outcome: WaterExhausted}
	for d.Water > 0 {
		result.Outcome = s.Step(&d)
		result.Steps++
		if result.Outcome.Terminal() {
			break
		}
	}
	result.PitSteps = s.pits
	result.Droplet = d
	return result
}

// Step advances d by one cell, or keeps it in place when the next cell is
// higher. The returned outcome is terminal once the droplet left the field
// or ran out of water.
func (s *Simulator) Step(d *Droplet) Outcome {
	var p = d.Position
	var direction = s.sampler.Tangent(s.field, p)

	if math32.Abs(direction.X()) <= s.flatV && math32.Abs(direction.Y()) <= s.flatH {
		direction = mgl32.Vec2{s.uniform(), s.uniform()}
	}
	d.Direction = direction

	var next = p
	var slope float32
	if math32.Abs(direction.X()) > math32.Abs(direction.Y()) {
		if direction.X() > 0 {
			next.X--
		} else {
			next.X++
		}
		slope = math32.Abs(direction.X())
	} else {
		if direction.Y() > 0 {
			next.Y--
		} else {
			next.Y++
		}
		slope = math32.Abs(direction.Y())
	}

	if !s.field.InBounds(next) {
		return OutOfBounds
	}

	var outcome = Flowing
	var heightDiff = s.field.Get(p) - s.field.Get(next)
	if heightDiff < 0 {
		s.fillPit(d, heightDiff)
		outcome = Stuck
	} else {
		s.erode(d, slope, heightDiff)
		d.Position = next
	}

	d.Water -= s.cfg.Evaporation
	if d.Water <= 0 {
		return WaterExhausted
	}
	return outcome
}

func (s *Simulator) fillPit(d *Droplet, heightDiff float32) {
	var deposited float32
	if d.Sediment < -heightDiff/pitFillRatio {
		deposited = d.Sediment
	} else {
		deposited = math32.Min(-heightDiff, d.Sediment)
	}
	d.Sediment -= deposited

	s.brush.Apply(s.field, d.Position, deposited*pitBrushShare)
	s.field.Add(d.Position, deposited*pitFillRatio*(1-pitBrushShare))

	d.Velocity = 0
	s.pits++
}

func (s *Simulator) erode(d *Droplet, slope, heightDiff float32) {
	var c = s.cfg

	var detached = c.ErosionRate*c.Intensity*c.Intensity +
		c.ErosionSlopeFactor*math32.Pow(slope, 2.0/3.0)*math32.Pow(d.Velocity, 2.0/3.0)
	var capacity = c.TransportRate*slope*c.Intensity +
		c.TransportSlopeFactor*math32.Pow(slope, 5.0/3.0)*math32.Pow(d.Velocity, 5.0/3.0)

	s.brush.Apply(s.field, d.Position, -detached)
	d.Sediment += detached

	var sedimented = math32.Max(d.Sediment-capacity, 0)
	if sedimented > c.DepositThreshold {
		s.brush.Apply(s.field, d.Position, sedimented)
		d.Sediment -= sedimented
	}

	d.Velocity = mgl32.Clamp(d.Velocity+s.acceleration(heightDiff), 0, c.MaxVelocity)
}

// acceleration is the change in speed over one cell: gravity along the
// slope minus friction, scaled by the cell resolution the force acts over.
func (s *Simulator) acceleration(heightDiff float32) float32 {
	var c = s.cfg
	var r = s.resV
	var hd = heightDiff / c.HeightScale

	var hyp = math32.Sqrt(r*r + hd*hd)
	var friction = c.Gravity * (r / hyp) * c.FrictionCoefficient
	var forward = c.Gravity * (hd * hd / hyp)

	return (forward - friction) * r
}

func (s *Simulator) uniform() float32 {
	return s.fallback.Float32()*2 - 1
}
