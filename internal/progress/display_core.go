package progress

import (
	"context"
	"sync"
	"time"

	"github.com/aleister1102/sitemapfinder/internal/discovery"
	"github.com/rs/zerolog"
)

// DisplayConfig configures the periodic progress log line.
type DisplayConfig struct {
	DisplayInterval   time.Duration
	EnableProgress    bool
	ShowETAEstimation bool
}

// DefaultDisplayConfig logs every three seconds with an ETA.
func DefaultDisplayConfig() *DisplayConfig {
	return &DisplayConfig{
		DisplayInterval:   3 * time.Second,
		EnableProgress:    true,
		ShowETAEstimation: true,
	}
}

// DisplayManager is a discovery.Observer that turns batch events into a
// progress log line, emitted on an interval and on every state change.
type DisplayManager struct {
	progress       *Progress
	mutex          sync.RWMutex
	logger         zerolog.Logger
	displayTicker  *time.Ticker
	isRunning      bool
	stopChan       chan struct{}
	ctx            context.Context
	cancel         context.CancelFunc
	lastDisplayed  string
	config         *DisplayConfig
	triggerDisplay chan struct{}
	done           chan struct{}
}

// NewDisplayManager creates a DisplayManager. A nil config selects DefaultDisplayConfig.
func NewDisplayManager(logger zerolog.Logger, config *DisplayConfig) *DisplayManager {
	ctx, cancel := context.WithCancel(context.Background())

	if config == nil {
		config = DefaultDisplayConfig()
	}
	if config.DisplayInterval <= 0 {
		config.DisplayInterval = DefaultDisplayConfig().DisplayInterval
	}

	return &DisplayManager{
		progress:       NewProgress(),
		logger:         logger.With().Str("component", "ProgressDisplay").Logger(),
		stopChan:       make(chan struct{}),
		ctx:            ctx,
		cancel:         cancel,
		config:         config,
		triggerDisplay: make(chan struct{}, 1),
		done:           make(chan struct{}),
	}
}

// Start launches the display loop.
func (dm *DisplayManager) Start() {
	dm.mutex.Lock()
	defer dm.mutex.Unlock()

	if dm.isRunning {
		return
	}

	if !dm.config.EnableProgress {
		dm.logger.Debug().Msg("Progress display disabled in configuration")
		return
	}

	dm.isRunning = true
	dm.displayTicker = time.NewTicker(dm.config.DisplayInterval)

	go dm.displayLoop()
}

// Stop ends the display loop after one final render.
func (dm *DisplayManager) Stop() {
	dm.mutex.Lock()
	if !dm.isRunning {
		dm.mutex.Unlock()
		return
	}
	dm.isRunning = false
	dm.displayTicker.Stop()
	close(dm.stopChan)
	dm.mutex.Unlock()

	<-dm.done
	dm.cancel()
	dm.displayProgress()
}

// Progress returns the underlying tracker.
func (dm *DisplayManager) Progress() *Progress {
	return dm.progress
}

// OnEvent implements discovery.Observer. Only batch-level events move the counters.
func (dm *DisplayManager) OnEvent(event discovery.Event) {
	switch event.Type {
	case discovery.EventBatchStarted:
		dm.progress.Update(0, int64(event.Total), "discovering", "")
	case discovery.EventDomainComplete:
		if event.Result != nil {
			dm.progress.RecordDomain(*event.Result)
		}
	case discovery.EventBatchComplete:
		dm.progress.SetStatus(ProgressStatusComplete, "")
	default:
		return
	}
	dm.triggerImmediateDisplay()
}

func (dm *DisplayManager) triggerImmediateDisplay() {
	select {
	case dm.triggerDisplay <- struct{}{}:
	default:
	}
}
