package config

import "time"

// ProgressConfig contains configuration for progress display
type ProgressConfig struct {
	// DisplayInterval is how often to log progress (in seconds)
	DisplayInterval int `json:"display_interval,omitempty" yaml:"display_interval,omitempty" validate:"min=1,max=60"`

	EnableProgress    bool `json:"enable_progress" yaml:"enable_progress"`
	ShowETAEstimation bool `json:"show_eta_estimation" yaml:"show_eta_estimation"`
}

// NewDefaultProgressConfig creates a new ProgressConfig with default values
func NewDefaultProgressConfig() ProgressConfig {
	return ProgressConfig{
		DisplayInterval:   DefaultProgressDisplayInterval,
		EnableProgress:    true,
		ShowETAEstimation: true,
	}
}

// GetDisplayIntervalDuration returns the display interval as time.Duration
func (pc *ProgressConfig) GetDisplayIntervalDuration() time.Duration {
	return time.Duration(pc.DisplayInterval) * time.Second
}
