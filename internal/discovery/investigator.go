package discovery

import (
	"context"
	"fmt"
	"time"

	"github.com/aleister1102/sitemapfinder/internal/compression"
	"github.com/aleister1102/sitemapfinder/internal/httpclient"
	"github.com/aleister1102/sitemapfinder/internal/models"
	"github.com/aleister1102/sitemapfinder/internal/prober"
	"github.com/aleister1102/sitemapfinder/internal/urlhandler"
	"github.com/rs/zerolog"
)

// InvestigatorConfig tunes a domain investigation.
type InvestigatorConfig struct {
	// SitemapPaths is the catalog handed to the path prober; empty selects the default.
	SitemapPaths []string
	// ExtractRobotsCompressed also extracts compressed sitemaps declared in robots.txt.
	ExtractRobotsCompressed bool
	// MaxDecompressedBytes bounds a single compressed sitemap after decompression.
	MaxDecompressedBytes int64
}

// Investigator runs the full discovery for one domain: robots.txt and the path
// catalog over http and https, then extraction of every compressed sitemap found.
type Investigator struct {
	client    prober.Client
	robots    *prober.RobotsProber
	paths     *prober.PathProber
	extractor *compression.Extractor
	observer  Observer
	config    InvestigatorConfig
	logger    zerolog.Logger
}

// NewInvestigator wires the probers and the codec around a shared client.
// A nil observer is replaced by NopObserver.
func NewInvestigator(client prober.Client, config InvestigatorConfig, observer Observer, logger zerolog.Logger) *Investigator {
	if observer == nil {
		observer = NopObserver{}
	}
	if config.MaxDecompressedBytes <= 0 {
		config.MaxDecompressedBytes = compression.DefaultMaxDecompressedBytes
	}

	return &Investigator{
		client:    client,
		robots:    prober.NewRobotsProber(client, logger),
		paths:     prober.NewPathProber(client, config.SitemapPaths, logger),
		extractor: compression.NewExtractor(config.MaxDecompressedBytes, logger),
		observer:  observer,
		config:    config,
		logger:    logger.With().Str("component", "Investigator").Logger(),
	}
}

// investigation is the per-domain accumulator.
type investigation struct {
	runID    uint64
	domain   string
	sitemaps *models.URLSet
	markers  *models.URLSet
	nested   *models.URLSet
}

// Investigate never returns an error: failures are folded into the result.
// Network misses are not errors; only a failure outside the per-protocol and
// per-sitemap guards turns the status into "error". Events are tagged with the
// run ID carried by ctx, or with a fresh one when ctx has none.
func (inv *Investigator) Investigate(ctx context.Context, domain string) models.DomainResult {
	started := time.Now()
	runID, ok := RunIDFromContext(ctx)
	if !ok {
		runID = NextRunID()
	}
	inv.emit(Event{Type: EventDomainStarted, RunID: runID, State: StateStart, Domain: domain})

	state := &investigation{
		runID:    runID,
		domain:   domain,
		sitemaps: models.NewURLSet(),
		markers:  models.NewURLSet(),
		nested:   models.NewURLSet(),
	}

	if err := inv.run(ctx, state); err != nil {
		inv.logger.Error().Err(err).Str("domain", domain).Msg("Domain investigation failed")
		return models.NewErrorResult(domain, ClassifyError(err))
	}

	result := models.NewSuccessResult(domain, state.sitemaps, state.nested)
	inv.logger.Debug().
		Str("domain", domain).
		Int("sitemaps", len(result.Sitemaps)).
		Int("nested_urls", len(result.NestedURLs)).
		Dur("duration", time.Since(started)).
		Msg("Domain investigation finished")
	return result
}

func (inv *Investigator) run(ctx context.Context, state *investigation) error {
	targets, err := urlhandler.ProbeTargets(state.domain)
	if err != nil {
		return fmt.Errorf("building probe targets: %w", err)
	}

	for _, target := range targets {
		if err := inv.probeTarget(ctx, state, target); err != nil {
			return err
		}
	}

	inv.extractAll(ctx, state)
	return nil
}

// probeTarget runs both probers against one protocol variant. A network
// failure aborts only this variant; any other failure is returned.
func (inv *Investigator) probeTarget(ctx context.Context, state *investigation, target models.ProbeTarget) error {
	probing := probingState(target.Protocol)
	base := Event{RunID: state.runID, State: probing, Domain: state.domain, Protocol: target.Protocol}

	inv.emitWith(base, Event{Type: EventProtocolStarted, URL: target.BaseURL})

	robotsSitemaps, err := inv.robots.Probe(ctx, target.BaseURL)
	if err != nil && !httpclient.IsNetworkError(err) {
		return fmt.Errorf("robots.txt probe for %s: %w", target.BaseURL, err)
	}
	// A network failure here means no robots sitemaps; the catalog is still probed.
	inv.emitWith(base, Event{Type: EventRobotsChecked, Count: len(robotsSitemaps), Err: err})
	for _, u := range robotsSitemaps {
		inv.addSitemap(state, base, u, SourceRobots)
		if inv.config.ExtractRobotsCompressed && compression.IsCompressed(u) {
			state.markers.Add(u)
		}
	}

	paths, err := inv.paths.Probe(ctx, target.BaseURL)
	if err != nil {
		if !httpclient.IsNetworkError(err) {
			return fmt.Errorf("path probe for %s: %w", target.BaseURL, err)
		}
		inv.logger.Debug().Err(err).Str("base_url", target.BaseURL).Msg("Protocol variant unreachable")
		inv.emitWith(base, Event{Type: EventProtocolFailed, Misses: len(paths.Misses), Err: err})
		return nil
	}

	inv.emitWith(base, Event{Type: EventPathsChecked, Count: len(paths.Plain), Misses: len(paths.Misses)})
	for _, u := range paths.Plain {
		inv.addSitemap(state, base, u, SourceCatalog)
	}
	state.markers.AddAll(paths.Compressed)

	inv.emitWith(base, Event{Type: EventProtocolComplete, Count: len(robotsSitemaps) + len(paths.Plain)})
	return nil
}

func (inv *Investigator) addSitemap(state *investigation, base Event, u, source string) {
	if u == "" || state.sitemaps.Contains(u) {
		return
	}
	state.sitemaps.Add(u)
	inv.emitWith(base, Event{Type: EventSitemapFound, URL: u, Source: source})
}

// extractAll downloads each compressed marker and collects its <loc> entries.
// Every fetch is independent: one failure is reported and skipped.
func (inv *Investigator) extractAll(ctx context.Context, state *investigation) {
	if state.markers.Len() == 0 {
		return
	}

	base := Event{RunID: state.runID, State: StateExtracting, Domain: state.domain}
	inv.emitWith(base, Event{Type: EventExtractionStarted, Count: state.markers.Len()})

	for _, marker := range state.markers.Sorted() {
		urls, err := inv.extractOne(ctx, marker)
		if err != nil {
			inv.logger.Warn().Err(err).Str("url", marker).Msg("Skipping compressed sitemap")
			inv.emitWith(base, Event{Type: EventCompressedFailed, URL: marker, Err: err})
			continue
		}
		state.nested.AddAll(urls)
		inv.emitWith(base, Event{Type: EventCompressedExtracted, URL: marker, Count: len(urls)})
	}

	inv.emitWith(base, Event{Type: EventExtractionComplete, Count: state.nested.Len()})
}

func (inv *Investigator) extractOne(ctx context.Context, sitemapURL string) ([]string, error) {
	fetched, err := inv.client.FetchContent(httpclient.FetchContentInput{URL: sitemapURL, Context: ctx})
	if err != nil {
		return nil, err
	}
	return inv.extractor.Extract(fetched.Content, compression.DetectType(sitemapURL)), nil
}

func (inv *Investigator) emitWith(base, event Event) {
	event.RunID = base.RunID
	event.State = base.State
	event.Domain = base.Domain
	event.Protocol = base.Protocol
	inv.emit(event)
}

func (inv *Investigator) emit(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	inv.observer.OnEvent(event)
}

// ClassifyError maps an escaped failure onto the coarse user-facing classification.
func ClassifyError(err error) string {
	if httpclient.IsNetworkError(err) {
		return models.ErrorConnectionFailed
	}
	return models.ErrorProcessing
}
