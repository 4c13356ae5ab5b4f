package main

import (
	"fmt"
	"os"

	"github.com/hazyhaar/massive-bench/pkg/classifier"
	"github.com/hazyhaar/massive-bench/pkg/pipeline"
	"github.com/hazyhaar/massive-bench/pkg/processor"
	"gopkg.in/yaml.v3"
)

type config struct {
	pipeline.Config `yaml:",inline"`

	ModelsDir string `yaml:"models_dir"`
	RunsDB    string `yaml:"runs_db"`
	SourcesDB string `yaml:"sources_db"`
	Addr      string `yaml:"addr"`
	TLSCert   string `yaml:"tls_cert"`
	TLSKey    string `yaml:"tls_key"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	Classifier classifier.Settings `yaml:"classifier"`
	Processor  processor.Options   `yaml:"processor"`
}

func defaultConfig() config {
	return config{
		Config: pipeline.Config{
			DataDir:        "data",
			NoneIntent:     "general_quirky",
			UseAnnotations: true,
		},
		RunsDB:     "runs.db",
		SourcesDB:  "sources.db",
		Addr:       ":8420",
		LogLevel:   "info",
		LogFormat:  "text",
		Classifier: classifier.DefaultSettings(),
	}
}

// loadConfig overlays the YAML file at path on the defaults. A missing file
// leaves the defaults in place.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Classifier.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	if err := cfg.Processor.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}
