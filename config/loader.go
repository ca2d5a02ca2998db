package config

import (
	"fmt"
	"math"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DefaultMatching returns the default scorer/resolver tuning. The three
// dimension weights sum to 1.
func DefaultMatching() MatchingConfig {
	return MatchingConfig{
		NameWeight:             0.5,
		SpatialWeight:          0.35,
		IdentifierWeight:       0.15,
		SpatialMaxRadiusMeters: 500,
		MatchThreshold:         0.7,
		MinClusterThreshold:    0.55,
	}
}

// LoadAppConfig loads and validates the application configuration from a YAML
// file. A zero matching section is replaced by the defaults; a partially
// filled one must be valid on its own.
func LoadAppConfig(path string) (AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return AppConfig{}, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return AppConfig{}, err
	}
	if cfg.Matching == (MatchingConfig{}) {
		cfg.Matching = DefaultMatching()
	}
	v := validator.New()
	for _, d := range cfg.Datasets {
		if err := v.Struct(d); err != nil {
			return AppConfig{}, fmt.Errorf("dataset %q: %w", d.Name, err)
		}
	}
	if err := v.Struct(cfg.Output); err != nil {
		return AppConfig{}, err
	}
	if err := ValidateMatching(cfg.Matching); err != nil {
		return AppConfig{}, err
	}
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "alignment"
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = "json"
	}
	return cfg, nil
}

// ValidateMatching checks weights and thresholds. Violations are fatal at
// startup, before any alignment work begins.
func ValidateMatching(m MatchingConfig) error {
	v := validator.New()
	if err := v.Struct(m); err != nil {
		return err
	}
	sum := m.NameWeight + m.SpatialWeight + m.IdentifierWeight
	if math.Abs(sum-1) > 1e-6 {
		return fmt.Errorf("dimension weights must sum to 1, got %g", sum)
	}
	return nil
}
