package progress

import (
	"fmt"
	"strings"
	"time"
)

func (dm *DisplayManager) displayLoop() {
	defer close(dm.done)
	for {
		select {
		case <-dm.ctx.Done():
			return
		case <-dm.stopChan:
			return
		case <-dm.displayTicker.C:
			dm.displayProgress()
		case <-dm.triggerDisplay:
			dm.displayProgress()
		}
	}
}

// displayProgress logs the current state unless it is identical to the last line.
func (dm *DisplayManager) displayProgress() {
	dm.mutex.Lock()
	defer dm.mutex.Unlock()

	output := dm.formatProgress(dm.progress.Info())
	if output != "" && output != dm.lastDisplayed {
		dm.logger.Info().Msg(output)
		dm.lastDisplayed = output
	}
}

func (dm *DisplayManager) formatProgress(info ProgressInfo) string {
	if info.Status == ProgressStatusIdle || info.Total <= 0 {
		return ""
	}

	var builder strings.Builder
	percentage := info.GetPercentage()

	builder.WriteString(fmt.Sprintf("🔍 Domains: %s %s %.1f%% (%d/%d)",
		getStatusIcon(info.Status), createProgressBar(percentage, 20), percentage, info.Current, info.Total))
	builder.WriteString(fmt.Sprintf(" | ok:%d err:%d sitemaps:%d nested:%d",
		info.Stats.Succeeded, info.Stats.Failed, info.Stats.Sitemaps, info.Stats.NestedURLs))

	if info.Stage != "" && info.Status == ProgressStatusRunning {
		builder.WriteString(fmt.Sprintf(" | %s", info.Stage))
	}

	if dm.config.ShowETAEstimation && info.EstimatedETA > 0 && info.Status == ProgressStatusRunning {
		builder.WriteString(fmt.Sprintf(" | ETA: %s", formatDuration(info.EstimatedETA)))
	}

	return builder.String()
}

func getStatusIcon(status ProgressStatus) string {
	switch status {
	case ProgressStatusRunning:
		return "⏳"
	case ProgressStatusComplete:
		return "✅"
	case ProgressStatusError:
		return "❌"
	case ProgressStatusCancelled:
		return "🚫"
	case ProgressStatusIdle:
		return "💤"
	default:
		return "❓"
	}
}

func createProgressBar(percentage float64, width int) string {
	if width <= 0 {
		return ""
	}

	filled := int((percentage / 100.0) * float64(width))
	if filled > width {
		filled = width
	}

	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}

func formatDuration(d time.Duration) string {
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%.0fs", d.Seconds())
	case d < time.Hour:
		return fmt.Sprintf("%.0fm", d.Minutes())
	default:
		return fmt.Sprintf("%.1fh", d.Hours())
	}
}
