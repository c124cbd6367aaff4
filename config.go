package glome

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the value object a World is constructed from. It can be loaded
// from and written back to YAML, but is just as usable as a plain literal.
type Config struct {
	// Gravity is the gravity magnitude. Gravity pulls along -y.
	Gravity float32 `yaml:"gravity"`

	// FixedStep is the fixed tick size in seconds. Wall clock time handed
	// to Update accumulates until at least one full step fits.
	FixedStep float32 `yaml:"fixed_step"`

	// MaxStepsPerUpdate caps the ticks one Update call may run. When the
	// cap is hit the surplus accumulator is dropped, so a debugger pause or
	// scheduling hiccup cannot cause a tick burst afterwards.
	MaxStepsPerUpdate int `yaml:"max_steps_per_update"`

	// MaxSpeed is the velocity magnitude ceiling applied each tick.
	MaxSpeed float32 `yaml:"max_speed"`

	// MaxCorrection caps the positional correction applied per contact and
	// tick.
	MaxCorrection float32 `yaml:"max_correction"`

	// FrictionCombine merges the friction of two touching materials.
	FrictionCombine CombineMode `yaml:"friction_combine"`

	// RestitutionCombine merges the restitution of two touching materials.
	RestitutionCombine CombineMode `yaml:"restitution_combine"`
}

// DefaultConfig returns the configuration a plain world runs with.
func DefaultConfig() Config {
	return Config{
		Gravity:            9.81,
		FixedStep:          1.0 / 64,
		MaxStepsPerUpdate:  4,
		MaxSpeed:           200,
		MaxCorrection:      0.5,
		FrictionCombine:    CombineGeometricMean,
		RestitutionCombine: CombineMax,
	}
}

// sanitized fills zero values with defaults so a partially specified Config
// literal still produces a working world.
func (c Config) sanitized() Config {
	def := DefaultConfig()
	if c.FixedStep <= 0 {
		c.FixedStep = def.FixedStep
	}
	if c.MaxStepsPerUpdate <= 0 {
		c.MaxStepsPerUpdate = def.MaxStepsPerUpdate
	}
	if c.MaxSpeed <= 0 {
		c.MaxSpeed = def.MaxSpeed
	}
	if c.MaxCorrection <= 0 {
		c.MaxCorrection = def.MaxCorrection
	}
	return c
}

// LoadConfig reads a Config from a YAML file. Values missing from the file
// keep their defaults.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("parsing config %q: %w", path, err)
	}

	return config, nil
}

// WriteYAML saves the configuration to path.
func (c Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config %q: %w", path, err)
	}

	return nil
}

var combineModeNames = map[CombineMode]string{
	CombineGeometricMean: "geometric_mean",
	CombineMax:           "max",
	CombineMin:           "min",
	CombineAverage:       "average",
}

func (m CombineMode) String() string {
	if name, ok := combineModeNames[m]; ok {
		return name
	}
	return "unknown"
}

func (m CombineMode) MarshalYAML() (any, error) {
	name, ok := combineModeNames[m]
	if !ok {
		return nil, fmt.Errorf("unknown combine mode %d", uint8(m))
	}
	return name, nil
}

func (m *CombineMode) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}

	for mode, known := range combineModeNames {
		if known == name {
			*m = mode
			return nil
		}
	}

	return fmt.Errorf("unknown combine mode %q", name)
}
