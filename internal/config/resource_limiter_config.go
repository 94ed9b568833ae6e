package config

import "time"

// ResourceLimiterConfig holds back new domains while memory is short.
type ResourceLimiterConfig struct {
	Enabled            bool    `json:"enabled" yaml:"enabled"`
	MaxMemoryMB        int64   `json:"max_memory_mb,omitempty" yaml:"max_memory_mb,omitempty" validate:"min=0"`
	SystemMemThreshold float64 `json:"system_mem_threshold,omitempty" yaml:"system_mem_threshold,omitempty" validate:"min=0,max=1"`
	MaxWaitSecs        int     `json:"max_wait_secs,omitempty" yaml:"max_wait_secs,omitempty" validate:"min=0"`
}

// NewDefaultResourceLimiterConfig creates default resource limiter configuration
func NewDefaultResourceLimiterConfig() ResourceLimiterConfig {
	return ResourceLimiterConfig{
		Enabled:            true,
		MaxMemoryMB:        DefaultResourceMaxMemoryMB,
		SystemMemThreshold: DefaultResourceSystemMemThreshold,
		MaxWaitSecs:        DefaultResourceMaxWaitSecs,
	}
}

// MaxWait returns the longest a domain is held back.
func (rc *ResourceLimiterConfig) MaxWait() time.Duration {
	return time.Duration(rc.MaxWaitSecs) * time.Second
}
