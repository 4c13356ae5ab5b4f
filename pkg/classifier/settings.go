// CLAUDE:SUMMARY Classifier hyperparameters (smoothing, None threshold, result cap) loaded from YAML over defaults.
package classifier

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Settings are the hyperparameters of a Model.
type Settings struct {
	// Alpha is the additive smoothing applied to every feature count.
	Alpha float64 `yaml:"alpha"`
	// MinScore is the top posterior below which "None" is ranked first.
	MinScore float64 `yaml:"min_score"`
	// MaxResults caps the ranked list (0 = every intent).
	MaxResults int `yaml:"max_results"`
}

// DefaultSettings returns the settings used when none are configured.
func DefaultSettings() Settings {
	return Settings{
		Alpha:      0.5,
		MinScore:   0.2,
		MaxResults: 10,
	}
}

// Validate checks the ranges the model relies on.
func (s Settings) Validate() error {
	if s.Alpha <= 0 {
		return fmt.Errorf("alpha must be > 0, got %v", s.Alpha)
	}
	if s.MinScore < 0 || s.MinScore > 0.5 {
		return fmt.Errorf("min_score must be in [0, 0.5], got %v", s.MinScore)
	}
	if s.MaxResults < 0 {
		return fmt.Errorf("max_results must be >= 0, got %d", s.MaxResults)
	}
	return nil
}

// LoadSettings reads a YAML settings file over the defaults.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("read settings %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parse settings %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return s, fmt.Errorf("settings %s: %w", path, err)
	}
	return s, nil
}
