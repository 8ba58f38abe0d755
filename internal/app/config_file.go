package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig represents the optional configuration file schema.
type FileConfig struct {
	OutputDir string `yaml:"outputDir" json:"outputDir"`
	Mode      string `yaml:"mode" json:"mode"`

	Limits struct {
		MaxFileSizeMB  int `yaml:"maxFileSizeMB" json:"maxFileSizeMB"`
		MaxImageSizeMB int `yaml:"maxImageSizeMB" json:"maxImageSizeMB"`
		RequestTimeout int `yaml:"requestTimeoutSeconds" json:"requestTimeoutSeconds"`
	} `yaml:"limits" json:"limits"`

	ExtractMain bool `yaml:"extractMain" json:"extractMain"`
	Verbose     bool `yaml:"verbose" json:"verbose"`
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		// Try YAML then JSON
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	return fc, nil
}

// ApplyFileConfig overlays values from FileConfig into cfg for any fields
// still holding their built-in defaults, so env and flags keep precedence.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}
	if (cfg.OutputDir == "" || cfg.OutputDir == DefaultOutputDir) && fc.OutputDir != "" {
		cfg.OutputDir = fc.OutputDir
	}
	if (cfg.Mode == "" || cfg.Mode == DefaultMode) && fc.Mode != "" {
		cfg.Mode = fc.Mode
	}
	if cfg.MaxFileSizeMB == DefaultMaxFileSizeMB && fc.Limits.MaxFileSizeMB > 0 {
		cfg.MaxFileSizeMB = fc.Limits.MaxFileSizeMB
	}
	if cfg.MaxImageSizeMB == DefaultMaxImageSizeMB && fc.Limits.MaxImageSizeMB > 0 {
		cfg.MaxImageSizeMB = fc.Limits.MaxImageSizeMB
	}
	if cfg.RequestTimeout == DefaultRequestTimeout && fc.Limits.RequestTimeout > 0 {
		cfg.RequestTimeout = time.Duration(fc.Limits.RequestTimeout) * time.Second
	}
	if !cfg.ExtractMain && fc.ExtractMain {
		cfg.ExtractMain = true
	}
	if !cfg.Verbose && fc.Verbose {
		cfg.Verbose = true
	}
}
