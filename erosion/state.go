package erosion

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/ob6160/DropletErosion/utils"
)

// Droplet is the transient state of one unit of flowing water.
type Droplet struct {
	Position  utils.Point
	Water     float32
	Sediment  float32
	Velocity  float32
	Direction mgl32.Vec2
}

type Outcome int

const (
	// Flowing droplets moved one cell downhill and keep going.
	Flowing Outcome = iota
	// Stuck droplets hit a pit: they deposited, lost their speed and stayed put.
	Stuck
	// OutOfBounds droplets left the grid; their water and sediment are gone.
	OutOfBounds
	// WaterExhausted droplets evaporated.
	WaterExhausted
)

var outcomeNames = [...]string{
	Flowing:        "flowing",
	Stuck:          "stuck",
	OutOfBounds:    "out-of-bounds",
	WaterExhausted: "water-exhausted",
}

func (o Outcome) String() string {
	if o >= 0 && int(o) < len(outcomeNames) {
		return outcomeNames[o]
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// Terminal reports whether the droplet is finished.
func (o Outcome) Terminal() bool {
	return o == OutOfBounds || o == WaterExhausted
}

// Result summarises one droplet run.
type Result struct {
	Outcome  Outcome
	Steps    int
	PitSteps int
	Droplet  Droplet
}

// Stats accumulates results over a whole run.
type Stats struct {
	Droplets       int
	Steps          int
	PitSteps       int
	OutOfBounds    int
	WaterExhausted int
}

func (s *Stats) Record(r Result) {
	s.Droplets++
	s.Steps += r.Steps
	s.PitSteps += r.PitSteps
	switch r.Outcome {
	case OutOfBounds:
		s.OutOfBounds++
	case WaterExhausted:
		s.WaterExhausted++
	}
}

func (s Stats) String() string {
	return fmt.Sprintf("%d droplets, %d steps (%d in pits), %d left the field, %d evaporated",
		s.Droplets, s.Steps, s.PitSteps, s.OutOfBounds, s.WaterExhausted)
}
