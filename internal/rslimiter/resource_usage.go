package rslimiter

import (
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// ResourceUsage is a snapshot of process and host resource usage.
type ResourceUsage struct {
	AllocMB              int64   // Heap currently allocated by the process
	SysMB                int64   // Memory obtained from the OS by the Go runtime
	Goroutines           int     // Live goroutines
	SystemMemUsedPercent float64 // Host memory in use, 0-100
	CPUUsagePercent      float64 // Host CPU usage since the previous sample, 0-100
}

// GetResourceUsage samples the current usage. Host figures stay zero when the
// platform does not expose them.
func GetResourceUsage() ResourceUsage {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	usage := ResourceUsage{
		AllocMB:    int64(m.Alloc / 1024 / 1024),
		SysMB:      int64(m.Sys / 1024 / 1024),
		Goroutines: runtime.NumGoroutine(),
	}

	if vmStat, err := mem.VirtualMemory(); err == nil {
		usage.SystemMemUsedPercent = vmStat.UsedPercent
	}

	// A zero interval compares against the previous call instead of blocking.
	if cpuPercents, err := cpu.Percent(0, false); err == nil && len(cpuPercents) > 0 {
		usage.CPUUsagePercent = cpuPercents[0]
	}

	return usage
}
