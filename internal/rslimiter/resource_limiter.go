package rslimiter

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/rs/zerolog"
)

// ResourceLimiterConfig holds the admission thresholds.
type ResourceLimiterConfig struct {
	MaxMemoryMB        int64         // Heap ceiling in MB, 0 disables the heap check
	SystemMemThreshold float64       // Fraction of host memory in use (0.9 = 90%), 0 disables the check
	CheckInterval      time.Duration // How long to wait between checks while over a limit
	MaxWait            time.Duration // Give up waiting and admit anyway after this long, 0 waits until ctx ends
}

// DefaultResourceLimiterConfig returns default configuration
func DefaultResourceLimiterConfig() ResourceLimiterConfig {
	return ResourceLimiterConfig{
		MaxMemoryMB:        1024,
		SystemMemThreshold: 0.9,
		CheckInterval:      500 * time.Millisecond,
		MaxWait:            30 * time.Second,
	}
}

// ResourceLimiter holds back new work while the process or host is short on
// memory. Each decompressed sitemap can cost up to the decompression guard, so
// domains are only started once usage is back under the thresholds.
type ResourceLimiter struct {
	config ResourceLimiterConfig
	logger zerolog.Logger
	sample func() ResourceUsage
}

// NewResourceLimiter creates a new resource limiter
func NewResourceLimiter(config ResourceLimiterConfig, logger zerolog.Logger) *ResourceLimiter {
	if config.CheckInterval <= 0 {
		config.CheckInterval = DefaultResourceLimiterConfig().CheckInterval
	}

	return &ResourceLimiter{
		config: config,
		logger: logger.With().Str("component", "ResourceLimiter").Logger(),
		sample: GetResourceUsage,
	}
}

// Acquire blocks until usage is under the limits, ctx ends, or MaxWait passes.
// The first time a limit is hit, a garbage collection is forced before waiting.
// Only a done ctx produces an error; running out of MaxWait admits the caller.
func (rl *ResourceLimiter) Acquire(ctx context.Context) error {
	usage := rl.sample()
	reason := rl.exceeded(usage)
	if reason == "" {
		return nil
	}

	rl.logger.Warn().
		Str("reason", reason).
		Int64("alloc_mb", usage.AllocMB).
		Float64("system_mem_percent", usage.SystemMemUsedPercent).
		Msg("Resource limit reached, holding back new work")
	rl.forceGC()

	var deadline <-chan time.Time
	if rl.config.MaxWait > 0 {
		timer := time.NewTimer(rl.config.MaxWait)
		defer timer.Stop()
		deadline = timer.C
	}

	ticker := time.NewTicker(rl.config.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-deadline:
			rl.logger.Warn().Dur("waited", rl.config.MaxWait).Msg("Resource limit still reached, admitting work anyway")
			return nil
		case <-ticker.C:
			if rl.exceeded(rl.sample()) == "" {
				rl.logger.Debug().Msg("Resource usage back under limits")
				return nil
			}
		}
	}
}

// exceeded returns why usage is over a limit, or "" when it is not.
func (rl *ResourceLimiter) exceeded(usage ResourceUsage) string {
	if rl.config.MaxMemoryMB > 0 && usage.AllocMB > rl.config.MaxMemoryMB {
		return fmt.Sprintf("heap %dMB > limit %dMB", usage.AllocMB, rl.config.MaxMemoryMB)
	}
	if rl.config.SystemMemThreshold > 0 && usage.SystemMemUsedPercent/100.0 > rl.config.SystemMemThreshold {
		return fmt.Sprintf("system memory %.1f%% > threshold %.1f%%", usage.SystemMemUsedPercent, rl.config.SystemMemThreshold*100)
	}
	return ""
}

// LogUsage writes the current usage at debug level.
func (rl *ResourceLimiter) LogUsage() {
	usage := rl.sample()
	rl.logger.Debug().
		Int64("alloc_mb", usage.AllocMB).
		Int64("sys_mb", usage.SysMB).
		Int("goroutines", usage.Goroutines).
		Float64("system_mem_percent", usage.SystemMemUsedPercent).
		Float64("cpu_percent", usage.CPUUsagePercent).
		Msg("Current resource usage")
}

func (rl *ResourceLimiter) forceGC() {
	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)
	runtime.GC()
	runtime.ReadMemStats(&after)

	rl.logger.Debug().
		Uint64("before_mb", before.Alloc/1024/1024).
		Uint64("after_mb", after.Alloc/1024/1024).
		Msg("Forced garbage collection")
}
