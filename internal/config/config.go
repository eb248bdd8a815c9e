// Package config turns command-line values or a YAML preset into the
// parameters the clicker engine runs with.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/stigoleg/burst-click/internal/clicker"
	"github.com/stigoleg/burst-click/internal/util"
)

// ParamNames lists the positional parameters in command-line order.
var ParamNames = []string{
	"min_cps",
	"extra_clicks",
	"min_delay_ms",
	"max_delay_ms",
	"weighted_rand_delay",
}

// ErrMissingParam reports a parameter that was not supplied.
var ErrMissingParam = errors.New("missing required parameter")

type Config struct {
	MinCPS            int
	ExtraClicks       int
	MinDelay          time.Duration
	MaxDelay          time.Duration
	WeightedRandDelay float64
}

// FromArgs parses the five positional parameters.
func FromArgs(args []string) (*Config, error) {
	if len(args) < len(ParamNames) {
		return nil, fmt.Errorf("%w: %s", ErrMissingParam, ParamNames[len(args)])
	}
	if len(args) > len(ParamNames) {
		return nil, fmt.Errorf("expected %d parameters, got %d", len(ParamNames), len(args))
	}

	values := make(map[string]string, len(args))
	for i, name := range ParamNames {
		values[name] = args[i]
	}
	return parseValues(values)
}

// fileConfig mirrors the YAML preset. Every key is required; values are
// kept as strings so they go through the same parsing as the command line.
type fileConfig struct {
	MinCPS            yaml.Node `yaml:"min_cps"`
	ExtraClicks       yaml.Node `yaml:"extra_clicks"`
	MinDelayMS        yaml.Node `yaml:"min_delay_ms"`
	MaxDelayMS        yaml.Node `yaml:"max_delay_ms"`
	WeightedRandDelay yaml.Node `yaml:"weighted_rand_delay"`
}

// LoadFile reads a YAML preset holding the five parameters.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML preset.
func Parse(data []byte) (*Config, error) {
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	nodes := map[string]yaml.Node{
		"min_cps":             fc.MinCPS,
		"extra_clicks":        fc.ExtraClicks,
		"min_delay_ms":        fc.MinDelayMS,
		"max_delay_ms":        fc.MaxDelayMS,
		"weighted_rand_delay": fc.WeightedRandDelay,
	}
	values := make(map[string]string, len(nodes))
	for _, name := range ParamNames {
		n := nodes[name]
		if n.Kind == 0 {
			return nil, fmt.Errorf("%w: %s", ErrMissingParam, name)
		}
		if n.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("invalid %s: expected a scalar value (line %d)", name, n.Line)
		}
		values[name] = n.Value
	}
	return parseValues(values)
}

func parseValues(values map[string]string) (*Config, error) {
	var cfg Config
	var err error

	if cfg.MinCPS, err = parseInt("min_cps", values["min_cps"]); err != nil {
		return nil, err
	}
	if cfg.ExtraClicks, err = parseInt("extra_clicks", values["extra_clicks"]); err != nil {
		return nil, err
	}
	if cfg.MinDelay, err = parseDelay("min_delay_ms", values["min_delay_ms"]); err != nil {
		return nil, err
	}
	if cfg.MaxDelay, err = parseDelay("max_delay_ms", values["max_delay_ms"]); err != nil {
		return nil, err
	}
	raw := strings.TrimSpace(values["weighted_rand_delay"])
	if cfg.WeightedRandDelay, err = strconv.ParseFloat(raw, 64); err != nil {
		return nil, fmt.Errorf("invalid weighted_rand_delay %q: %w", raw, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func parseInt(name, raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	n, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, raw, err)
	}
	return int(n), nil
}

func parseDelay(name, raw string) (time.Duration, error) {
	d, err := util.ParseMillis(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	return d, nil
}

// Params converts the configuration into engine parameters.
func (c *Config) Params() clicker.Params {
	return clicker.Params{
		MinCPS:             c.MinCPS,
		ExtraClicks:        c.ExtraClicks,
		MinDelay:           c.MinDelay,
		MaxDelay:           c.MaxDelay,
		WeightedRandomBias: c.WeightedRandDelay,
	}
}

// Validate checks the ranges the engine requires.
func (c *Config) Validate() error {
	if err := c.Params().Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
