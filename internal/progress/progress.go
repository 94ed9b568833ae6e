package progress

import (
	"sync"
	"time"

	"github.com/aleister1102/sitemapfinder/internal/models"
)

// Progress tracks how far a batch of domains has come.
type Progress struct {
	mu   sync.RWMutex
	info ProgressInfo
}

// NewProgress creates an idle Progress.
func NewProgress() *Progress {
	return &Progress{
		info: ProgressInfo{Status: ProgressStatusIdle},
	}
}

// Info returns a copy of the ProgressInfo.
func (p *Progress) Info() ProgressInfo {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.info
}

// Update sets the counters and stage. The first update starts the clock.
func (p *Progress) Update(current, total int64, stage, message string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := time.Now()

	if p.info.Status == ProgressStatusIdle || current == 0 {
		p.info.StartTime = now
		p.info.Status = ProgressStatusRunning
	}

	p.info.Current = current
	p.info.Total = total
	p.info.Stage = stage
	p.info.Message = message
	p.info.LastUpdateTime = now
	p.info.UpdateETA()
}

// SetStatus sets the progress status.
func (p *Progress) SetStatus(status ProgressStatus, message string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.info.Status = status
	p.info.Message = message
	p.info.LastUpdateTime = time.Now()
	p.info.UpdateETA()
}

// RecordDomain counts one finished domain and folds its result into the stats.
func (p *Progress) RecordDomain(result models.DomainResult) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.info.Status == ProgressStatusIdle {
		p.info.StartTime = time.Now()
		p.info.Status = ProgressStatusRunning
	}

	p.info.Current++
	if result.IsSuccess() {
		p.info.Stats.Succeeded++
	} else {
		p.info.Stats.Failed++
	}
	p.info.Stats.Sitemaps += len(result.Sitemaps)
	p.info.Stats.NestedURLs += len(result.NestedURLs)
	p.info.Message = result.Domain
	p.info.LastUpdateTime = time.Now()
	p.info.UpdateETA()
}
