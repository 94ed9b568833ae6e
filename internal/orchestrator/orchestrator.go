package orchestrator

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/aleister1102/sitemapfinder/internal/discovery"
	"github.com/aleister1102/sitemapfinder/internal/models"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of domains investigated at once when none is configured.
const DefaultConcurrency = 5

// DomainInvestigator investigates a single domain from start to finish.
type DomainInvestigator interface {
	Investigate(ctx context.Context, domain string) models.DomainResult
}

// Admitter decides when a worker may start its next domain.
type Admitter interface {
	Acquire(ctx context.Context) error
}

// Orchestrator fans a batch of domains out over a bounded worker pool.
type Orchestrator struct {
	investigator DomainInvestigator
	concurrency  int
	observer     discovery.Observer
	admitter     Admitter
	logger       zerolog.Logger
}

// NewOrchestrator creates an Orchestrator. A concurrency below one selects
// DefaultConcurrency; a nil observer discards events.
func NewOrchestrator(investigator DomainInvestigator, concurrency int, observer discovery.Observer, logger zerolog.Logger) *Orchestrator {
	if concurrency < 1 {
		concurrency = DefaultConcurrency
	}
	if observer == nil {
		observer = discovery.NopObserver{}
	}

	return &Orchestrator{
		investigator: investigator,
		concurrency:  concurrency,
		observer:     observer,
		logger:       logger.With().Str("component", "Orchestrator").Logger(),
	}
}

// WithAdmitter makes every worker wait on a before starting a domain.
func (o *Orchestrator) WithAdmitter(a Admitter) *Orchestrator {
	o.admitter = a
	return o
}

// Run investigates every domain and returns one result per input, in
// completion order. A failing or panicking domain becomes an error result;
// the batch itself never fails. Cancelling ctx makes outstanding requests fail
// fast but every domain still yields a result.
func (o *Orchestrator) Run(ctx context.Context, domains []string) []models.DomainResult {
	started := time.Now()
	o.emit(discovery.Event{Type: discovery.EventBatchStarted, Total: len(domains)})
	o.logger.Info().
		Int("domains", len(domains)).
		Int("concurrency", o.concurrency).
		Msg("Starting batch")

	var (
		mu      sync.Mutex
		results = make([]models.DomainResult, 0, len(domains))
	)

	var g errgroup.Group
	g.SetLimit(o.concurrency)

	for _, domain := range domains {
		runID := discovery.NextRunID()
		g.Go(func() error {
			o.admit(ctx, domain)
			result := o.investigate(discovery.WithRunID(ctx, runID), domain)

			mu.Lock()
			results = append(results, result)
			mu.Unlock()

			o.emit(discovery.Event{
				Type:   discovery.EventDomainComplete,
				RunID:  runID,
				State:  discovery.StateDone,
				Domain: domain,
				Result: &result,
			})
			return nil
		})
	}

	// Workers never return an error.
	_ = g.Wait()

	o.emit(discovery.Event{Type: discovery.EventBatchComplete, Total: len(results)})
	o.logger.Info().
		Int("domains", len(results)).
		Dur("duration", time.Since(started)).
		Msg("Batch complete")

	return results
}

// admit waits for the admitter. A refusal is logged and the domain still runs,
// so every input keeps its result.
func (o *Orchestrator) admit(ctx context.Context, domain string) {
	if o.admitter == nil {
		return
	}
	if err := o.admitter.Acquire(ctx); err != nil {
		o.logger.Debug().Err(err).Str("domain", domain).Msg("Admission wait ended early")
	}
}

// investigate shields the batch from a panic inside one domain's investigation.
func (o *Orchestrator) investigate(ctx context.Context, domain string) (result models.DomainResult) {
	defer func() {
		if r := recover(); r != nil {
			err, ok := r.(error)
			if !ok {
				err = fmt.Errorf("panic: %v", r)
			}
			o.logger.Error().
				Err(err).
				Str("domain", domain).
				Msg("Recovered from panic during domain investigation")
			result = models.NewErrorResult(domain, discovery.ClassifyError(err))
		}
	}()

	return o.investigator.Investigate(ctx, domain)
}

func (o *Orchestrator) emit(event discovery.Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	o.observer.OnEvent(event)
}
