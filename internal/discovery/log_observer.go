package discovery

import (
	"github.com/rs/zerolog"
)

// LogObserver writes every event as a structured log entry. Per-path and
// per-sitemap detail goes to debug, domain and batch milestones to info.
type LogObserver struct {
	logger zerolog.Logger
}

// NewLogObserver creates a LogObserver.
func NewLogObserver(logger zerolog.Logger) *LogObserver {
	return &LogObserver{logger: logger.With().Str("component", "Discovery").Logger()}
}

// OnEvent implements Observer.
func (l *LogObserver) OnEvent(event Event) {
	var entry *zerolog.Event
	switch event.Type {
	case EventBatchStarted, EventBatchComplete, EventDomainComplete:
		entry = l.logger.Info()
	case EventProtocolFailed, EventCompressedFailed:
		entry = l.logger.Warn()
	default:
		entry = l.logger.Debug()
	}

	entry = entry.Str("event", string(event.Type))
	if event.RunID != 0 {
		entry = entry.Uint64("run_id", event.RunID)
	}
	if event.State != "" {
		entry = entry.Str("state", string(event.State))
	}
	if event.Domain != "" {
		entry = entry.Str("domain", event.Domain)
	}
	if event.Protocol != "" {
		entry = entry.Str("protocol", string(event.Protocol))
	}
	if event.URL != "" {
		entry = entry.Str("url", event.URL)
	}
	if event.Source != "" {
		entry = entry.Str("source", event.Source)
	}
	if event.Count > 0 {
		entry = entry.Int("count", event.Count)
	}
	if event.Total > 0 {
		entry = entry.Int("total", event.Total)
	}
	if event.Misses > 0 {
		entry = entry.Int("misses", event.Misses)
	}
	if event.Result != nil {
		entry = entry.
			Str("status", string(event.Result.Status)).
			Int("sitemaps", len(event.Result.Sitemaps)).
			Int("nested_urls", len(event.Result.NestedURLs))
		if event.Result.Error != "" {
			entry = entry.Str("classification", event.Result.Error)
		}
	}
	if event.Err != nil {
		entry = entry.Err(event.Err)
	}

	entry.Msg("Discovery event")
}
