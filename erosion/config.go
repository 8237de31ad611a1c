package erosion

import (
	"io"

	"github.com/chewxy/math32"
	"github.com/ob6160/DropletErosion/terrain"
	"github.com/pkg/errors"
	"gopkg.in/src-d/go-billy.v4"
	"gopkg.in/yaml.v3"
)

// Config holds every tunable of a run. Rates follow the usual droplet model
// naming: S_DR/S_DF detach material, S_TR/S_TF bound the transport capacity.
type Config struct {
	Iterations         int `yaml:"iterations"`           // flat droplet count, overrides the density when > 0
	IterationsPerPixel int `yaml:"iterations_per_pixel"` // droplets per cell

	Evaporation          float32 `yaml:"evaporation"`
	Intensity            float32 `yaml:"intensity"`
	ErosionRate          float32 `yaml:"erosion_rate"`           // S_DR
	ErosionSlopeFactor   float32 `yaml:"erosion_slope_factor"`   // S_DF
	TransportRate        float32 `yaml:"transport_rate"`         // S_TR
	TransportSlopeFactor float32 `yaml:"transport_slope_factor"` // S_TF
	StartingWater        float32 `yaml:"starting_water"`
	FrictionCoefficient  float32 `yaml:"friction_coefficient"`
	Gravity              float32 `yaml:"gravity"`

	VerticalScale   float32            `yaml:"vertical_scale"`
	HorizontalScale float32            `yaml:"horizontal_scale"`
	ScaleModel      terrain.ScaleModel `yaml:"scale_model"`
	HeightScale     float32            `yaml:"height_scale"` // divides height differences in the acceleration model
	Flatness        float32            `yaml:"flatness"`     // multiple of the cell resolution below which the gradient is noise

	Brush            terrain.BrushMode `yaml:"brush"`
	EdgeMargin       int               `yaml:"edge_margin"`
	Seed             int64             `yaml:"seed"`
	MaxVelocity      float32           `yaml:"max_velocity"`
	DepositThreshold float32           `yaml:"deposit_threshold"`
	ReseedFallback   bool              `yaml:"reseed_fallback"`

	MinHeight float32 `yaml:"min_height"`
	MaxHeight float32 `yaml:"max_height"`

	ProgressInterval int `yaml:"progress_interval"`
}

func DefaultConfig() Config {
	return Config{
		Iterations:           0,
		IterationsPerPixel:   10,
		Evaporation:          0.002,
		Intensity:            3.5,
		ErosionRate:          0.01,
		ErosionSlopeFactor:   0.0005,
		TransportRate:        0.01,
		TransportSlopeFactor: 0.0001,
		StartingWater:        1.0,
		FrictionCoefficient:  0.3,
		Gravity:              9.8,
		VerticalScale:        32,
		HorizontalScale:      32,
		ScaleModel:           terrain.ScaleGrid,
		HeightScale:          32,
		Flatness:             1,
		Brush:                terrain.SoftBrush,
		EdgeMargin:           1,
		Seed:                 0,
		MaxVelocity:          32,
		DepositThreshold:     0.1,
		MinHeight:            0,
		MaxHeight:            255,
	}
}

// LoadConfig reads a yaml file on top of DefaultConfig.
func LoadConfig(fs billy.Filesystem, path string) (Config, error) {
	var cfg = DefaultConfig()
	f, err := fs.Open(path)
	if err != nil {
		return cfg, errors.Wrap(err, "read config")
	}
	defer f.Close()

	if err := DecodeConfig(f, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// DecodeConfig overlays the yaml document in r onto cfg and validates the result.
func DecodeConfig(r io.Reader, cfg *Config) error {
	var dec = yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return errors.Wrap(err, "parse config")
	}
	return cfg.Validate()
}

func (c *Config) Validate() error {
	for name, v := range c.floats() {
		if math32.IsNaN(v) || math32.IsInf(v, 0) {
			return errors.Errorf("%s must be finite, got %v", name, v)
		}
	}
	if c.Iterations < 0 || c.IterationsPerPixel < 0 {
		return errors.New("iterations must not be negative")
	}
	if c.Iterations == 0 && c.IterationsPerPixel == 0 {
		return errors.New("one of iterations or iterations_per_pixel must be set")
	}
	if c.Evaporation <= 0 {
		return errors.Errorf("evaporation must be positive, got %v", c.Evaporation)
	}
	if c.StartingWater <= 0 {
		return errors.Errorf("starting_water must be positive, got %v", c.StartingWater)
	}
	for name, v := range map[string]float32{
		"intensity":              c.Intensity,
		"erosion_rate":           c.ErosionRate,
		"erosion_slope_factor":   c.ErosionSlopeFactor,
		"transport_rate":         c.TransportRate,
		"transport_slope_factor": c.TransportSlopeFactor,
		"friction_coefficient":   c.FrictionCoefficient,
		"gravity":                c.Gravity,
		"deposit_threshold":      c.DepositThreshold,
	} {
		if v < 0 {
			return errors.Errorf("%s must not be negative, got %v", name, v)
		}
	}
	if c.MaxVelocity <= 0 {
		return errors.Errorf("max_velocity must be positive, got %v", c.MaxVelocity)
	}
	if c.VerticalScale <= 0 || c.HorizontalScale <= 0 {
		return errors.New("vertical_scale and horizontal_scale must be positive")
	}
	if c.HeightScale <= 0 {
		return errors.Errorf("height_scale must be positive, got %v", c.HeightScale)
	}
	if c.Flatness < 0 {
		return errors.Errorf("flatness must not be negative, got %v", c.Flatness)
	}
	if c.EdgeMargin < 0 {
		return errors.Errorf("edge_margin must not be negative, got %d", c.EdgeMargin)
	}
	if c.MinHeight >= c.MaxHeight {
		return errors.Errorf("min_height %v must be below max_height %v", c.MinHeight, c.MaxHeight)
	}
	if c.ProgressInterval < 0 {
		return errors.New("progress_interval must not be negative")
	}
	return nil
}

func (c *Config) floats() map[string]float32 {
	return map[string]float32{
		"evaporation":            c.Evaporation,
		"intensity":              c.Intensity,
		"erosion_rate":           c.ErosionRate,
		"erosion_slope_factor":   c.ErosionSlopeFactor,
		"transport_rate":         c.TransportRate,
		"transport_slope_factor": c.TransportSlopeFactor,
		"starting_water":         c.StartingWater,
		"friction_coefficient":   c.FrictionCoefficient,
		"gravity":                c.Gravity,
		"vertical_scale":         c.VerticalScale,
		"horizontal_scale":       c.HorizontalScale,
		"height_scale":           c.HeightScale,
		"flatness":               c.Flatness,
		"max_velocity":           c.MaxVelocity,
		"deposit_threshold":      c.DepositThreshold,
		"min_height":             c.MinHeight,
		"max_height":             c.MaxHeight,
	}
}

// Droplets is the number of droplets a run over a width x height field drops.
func (c *Config) Droplets(width, height int) int {
	if c.Iterations > 0 {
		return c.Iterations
	}
	return width * height * c.IterationsPerPixel
}

func (c *Config) sampler() terrain.GradientSampler {
	return terrain.GradientSampler{
		VerticalScale:   c.VerticalScale,
		HorizontalScale: c.HorizontalScale,
		Model:           c.ScaleModel,
	}
}
