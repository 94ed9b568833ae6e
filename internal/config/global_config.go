package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// maxConfigFileSize bounds how much of a config file is read.
const maxConfigFileSize = 10 * 1024 * 1024

// GlobalConfig contains all configuration sections for the application
type GlobalConfig struct {
	FinderConfig          FinderConfig          `json:"finder_config,omitempty" yaml:"finder_config,omitempty"`
	HTTPConfig            HTTPConfig            `json:"http_config,omitempty" yaml:"http_config,omitempty"`
	LogConfig             LogConfig             `json:"log_config,omitempty" yaml:"log_config,omitempty"`
	OutputConfig          OutputConfig          `json:"output_config,omitempty" yaml:"output_config,omitempty"`
	ProgressConfig        ProgressConfig        `json:"progress_config,omitempty" yaml:"progress_config,omitempty"`
	ResourceLimiterConfig ResourceLimiterConfig `json:"resource_limiter_config,omitempty" yaml:"resource_limiter_config,omitempty"`
}

// NewDefaultGlobalConfig creates a new GlobalConfig with default values
func NewDefaultGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		FinderConfig:          NewDefaultFinderConfig(),
		HTTPConfig:            NewDefaultHTTPConfig(),
		LogConfig:             NewDefaultLogConfig(),
		OutputConfig:          NewDefaultOutputConfig(),
		ProgressConfig:        NewDefaultProgressConfig(),
		ResourceLimiterConfig: NewDefaultResourceLimiterConfig(),
	}
}

// LoadGlobalConfig loads the configuration from a file or default locations.
// Values absent from the file keep their defaults. YAML is used for .yaml and
// .yml files, JSON otherwise. No file at all yields the defaults.
func LoadGlobalConfig(providedPath string, logger zerolog.Logger) (*GlobalConfig, error) {
	cfg := NewDefaultGlobalConfig()

	filePath := GetConfigPath(providedPath)
	if filePath == "" {
		logger.Debug().Msg("No config file found, using defaults")
		return cfg, nil
	}

	if !fileExists(filePath) {
		return nil, NewValidationError("config_file", filePath, "config file does not exist")
	}

	data, err := loadConfigFileContent(filePath)
	if err != nil {
		return nil, WrapError(err, "failed to load config file content")
	}

	if err := parseConfigContent(data, filePath, cfg); err != nil {
		return nil, WrapError(err, "failed to parse config content")
	}

	logger.Info().Str("path", filePath).Msg("Loaded configuration file")
	return cfg, nil
}

func loadConfigFileContent(filePath string) ([]byte, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		return nil, err
	}
	if info.Size() > maxConfigFileSize {
		return nil, NewValidationError("config_file", filePath, fmt.Sprintf("config file larger than %d bytes", maxConfigFileSize))
	}
	return os.ReadFile(filePath)
}

func parseConfigContent(data []byte, filePath string, cfg *GlobalConfig) error {
	if isYAMLFile(filepath.Ext(filePath)) {
		return parseYAMLConfig(data, filePath, cfg)
	}
	return parseJSONConfig(data, filePath, cfg)
}

func isYAMLFile(ext string) bool {
	return ext == ".yaml" || ext == ".yml"
}

func parseYAMLConfig(data []byte, filePath string, cfg *GlobalConfig) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to unmarshal YAML from '%s': %w", filePath, err)
	}
	return nil
}

func parseJSONConfig(data []byte, filePath string, cfg *GlobalConfig) error {
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to unmarshal JSON from '%s': %w", filePath, err)
	}
	return nil
}
