package main

import (
	"encoding/json"
	"os"
	"time"

	"github.com/pkg/errors"

	"imagelife/src/seed"
	"imagelife/src/universe"
)

//field bounds accepted from the user
const (
	MinRows = 10
	MaxRows = 60
	MinCols = 10
	MaxCols = 118
)

//Config holds the configuration of the program
//zero Rows or Cols means the value is asked in the console
type Config struct {
	Rows           int           `json:"rows"`
	Cols           int           `json:"cols"`
	Interval       time.Duration `json:"interval"`
	MaxGenerations int           `json:"max_generations"`
	Image          string        `json:"image"`
	Template       string        `json:"template"`
	Random         bool          `json:"random"`
	Threshold      int           `json:"threshold"`
	Interactive    bool          `json:"interactive"`
	NoColor        bool          `json:"no_color"`
}

//DefaultConfig returns the defaults reproducing the classic behaviour
func DefaultConfig() Config {
	return Config{
		Interval:       universe.DefSimulationInterval,
		MaxGenerations: universe.DefMaxGenerations,
		Threshold:      seed.DefThreshold,
	}
}

//UnmarshalJSON accepts the interval both as the duration string ("200ms") and as nanoseconds
func (c *Config) UnmarshalJSON(data []byte) error {
	type plain Config
	aux := struct {
		*plain
		Interval interface{} `json:"interval"`
	}{plain: (*plain)(c)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	switch v := aux.Interval.(type) {
	case nil:
	case string:
		d, err := time.ParseDuration(v)
		if err != nil {
			return errors.Wrapf(err, "bad interval %q", v)
		}
		c.Interval = d
	case float64:
		c.Interval = time.Duration(v)
	default:
		return errors.Errorf("bad interval %v", v)
	}
	return nil
}

//LoadConfig loads configuration from JSON file on top of the defaults
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	return config, nil
}

//Override returns c with every non zero value of f applied
func (c Config) Override(f Config) Config {
	if f.Rows != 0 {
		c.Rows = f.Rows
	}
	if f.Cols != 0 {
		c.Cols = f.Cols
	}
	if f.Interval != 0 {
		c.Interval = f.Interval
	}
	if f.MaxGenerations != 0 {
		c.MaxGenerations = f.MaxGenerations
	}
	if f.Image != "" {
		c.Image = f.Image
	}
	if f.Template != "" {
		c.Template = f.Template
	}
	if f.Threshold != 0 {
		c.Threshold = f.Threshold
	}
	c.Random = c.Random || f.Random
	c.Interactive = c.Interactive || f.Interactive
	c.NoColor = c.NoColor || f.NoColor
	return c
}

//Validate checks the values which are not asked again
func (c Config) Validate() error {
	if c.Rows != 0 && (c.Rows < MinRows || c.Rows > MaxRows) {
		return errors.Errorf("[Config] rows %v is outside %v-%v", c.Rows, MinRows, MaxRows)
	}
	if c.Cols != 0 && (c.Cols < MinCols || c.Cols > MaxCols) {
		return errors.Errorf("[Config] cols %v is outside %v-%v", c.Cols, MinCols, MaxCols)
	}
	if c.Interval < 0 {
		return errors.Errorf("[Config] negative interval %v", c.Interval)
	}
	if c.MaxGenerations < 1 {
		return errors.Errorf("[Config] max generations must be positive, got %v", c.MaxGenerations)
	}
	if c.Threshold < 0 || c.Threshold > 255 {
		return errors.Errorf("[Config] threshold %v is outside 0-255", c.Threshold)
	}
	if c.Template != "" {
		if _, err := seed.LookupTemplate(c.Template); err != nil {
			return errors.Wrap(err, "[Config]")
		}
	}
	return nil
}

//UniverseOptions converts the configuration to the engine options for the rows x cols field
func (c Config) UniverseOptions(rows int, cols int) universe.Options {
	o := universe.DefaultUniverseOptions
	o.Rows = rows
	o.Cols = cols
	o.Interval = c.Interval
	o.MaxGenerations = c.MaxGenerations
	return o
}
