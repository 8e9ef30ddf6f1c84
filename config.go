package svmgrid

import (
	"fmt"
	"math"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Scale maps a value of a Range onto the hyper-parameter that is actually passed to the evaluator.
type Scale string

const (
	// Linear uses range values as-is.
	Linear Scale = "linear"
	// Exp2 uses 2^v for every range value v.
	Exp2 Scale = "exp2"
)

// Apply scales v.
func (s Scale) Apply(v float64) float64 {
	if s == Exp2 {
		return math.Pow(2, v)
	}
	return v
}

// Duration is a time.Duration that can be read from a TOML string such as "10s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// CacheConfig configures the evaluation cache. An empty Dir disables the on-disk tier.
type CacheConfig struct {
	Dir  string `toml:"dir"`
	Size int    `toml:"size"`
}

// Config is everything a grid search needs to know before it starts.
type Config struct {
	// C is the range of the soft margin parameter.
	C Range `toml:"c"`
	// W is the range of the second parameter: the positive class weight for linear kernels, gamma for rbf kernels.
	W      Range  `toml:"w"`
	Scale  Scale  `toml:"scale"`
	Kernel string `toml:"kernel"`
	Folds  int    `toml:"folds"`

	Workers int      `toml:"workers"`
	Poll    Duration `toml:"poll"`

	// Command, when set, is a text/template of a command line that evaluates one job and prints its rate.
	Command     string `toml:"command"`
	PassThrough string `toml:"pass_through"`

	Cache CacheConfig `toml:"cache"`
}

// DefaultConfig is the configuration used for linear kernel grid searches.
func DefaultConfig() Config {
	return Config{
		C:       Range{Begin: -5, End: 15, Step: 2},
		W:       Range{Begin: -5, End: 10, Step: 2},
		Scale:   Exp2,
		Kernel:  "linear",
		Folds:   3,
		Workers: 7,
		Poll:    Duration{10 * time.Second},
		Cache:   CacheConfig{Size: 1024},
	}
}

// RBFConfig is the configuration used for rbf kernel grid searches.
func RBFConfig() Config {
	c := DefaultConfig()
	c.Kernel = "rbf"
	c.W = Range{Begin: -15, End: 5, Step: 2}
	return c
}

// LoadConfig reads a TOML file on top of base. Keys missing from the file keep their value from base.
func LoadConfig(path string, base Config) (Config, error) {
	c := base
	if _, err := toml.DecodeFile(path, &c); err != nil {
		return Config{}, errors.Wrapf(err, "reading config %s", path)
	}
	return c, c.Validate()
}

// Validate checks that the configuration describes a runnable grid.
func (c Config) Validate() error {
	if err := c.C.Validate(); err != nil {
		return errors.Wrap(err, "c")
	}
	if err := c.W.Validate(); err != nil {
		return errors.Wrap(err, "w")
	}
	switch c.Scale {
	case Linear, Exp2:
	default:
		return fmt.Errorf("unknown scale %q", c.Scale)
	}
	if c.Workers < 1 {
		return fmt.Errorf("need at least one worker, got %d", c.Workers)
	}
	if c.Folds < 2 {
		return fmt.Errorf("need at least two folds, got %d", c.Folds)
	}
	return nil
}
