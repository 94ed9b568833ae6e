package discovery

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aleister1102/sitemapfinder/internal/models"
)

// State is the position of a domain investigation in its lifecycle.
type State string

const (
	StateStart        State = "start"
	StateProbingHTTP  State = "probing(http)"
	StateProbingHTTPS State = "probing(https)"
	StateExtracting   State = "extracting"
	StateDone         State = "done"
)

// probingState maps a protocol variant onto its probing state.
func probingState(protocol models.Protocol) State {
	if protocol == models.ProtocolHTTPS {
		return StateProbingHTTPS
	}
	return StateProbingHTTP
}

// EventType names a progress event.
type EventType string

const (
	EventBatchStarted        EventType = "batch_started"
	EventDomainStarted       EventType = "domain_started"
	EventProtocolStarted     EventType = "protocol_started"
	EventRobotsChecked       EventType = "robots_checked"
	EventPathsChecked        EventType = "paths_checked"
	EventSitemapFound        EventType = "sitemap_found"
	EventProtocolFailed      EventType = "protocol_failed"
	EventProtocolComplete    EventType = "protocol_complete"
	EventExtractionStarted   EventType = "extraction_started"
	EventCompressedExtracted EventType = "compressed_extracted"
	EventCompressedFailed    EventType = "compressed_failed"
	EventExtractionComplete  EventType = "extraction_complete"
	EventDomainComplete      EventType = "domain_complete"
	EventBatchComplete       EventType = "batch_complete"
)

// Sources a sitemap URL can be discovered from.
const (
	SourceRobots  = "robots"
	SourceCatalog = "catalog"
)

// Event is a structured progress notification. Only the fields relevant to
// the event type are populated.
type Event struct {
	Type      EventType
	RunID     uint64 // identifies one investigation; the same domain may be investigated twice
	State     State
	Domain    string
	Protocol  models.Protocol
	URL       string
	Source    string
	Count     int // sitemaps, markers or URLs, depending on Type
	Total     int // batch size for batch events
	Misses    int // catalog paths that failed at the network level
	Result    *models.DomainResult
	Err       error
	Timestamp time.Time
}

var runCounter atomic.Uint64

// NextRunID returns a process-wide unique, non-zero investigation ID.
func NextRunID() uint64 {
	return runCounter.Add(1)
}

type runIDKey struct{}

// WithRunID tags ctx so that an investigation started with it reports under id.
func WithRunID(ctx context.Context, id uint64) context.Context {
	return context.WithValue(ctx, runIDKey{}, id)
}

// RunIDFromContext returns the investigation ID carried by ctx, if any.
func RunIDFromContext(ctx context.Context) (uint64, bool) {
	id, ok := ctx.Value(runIDKey{}).(uint64)
	return id, ok && id != 0
}

// Observer receives progress events. Implementations must be safe for
// concurrent use: the orchestrator investigates several domains at once.
type Observer interface {
	OnEvent(event Event)
}

// ObserverFunc adapts a plain function into an Observer.
type ObserverFunc func(event Event)

// OnEvent calls f(event).
func (f ObserverFunc) OnEvent(event Event) {
	f(event)
}

// NopObserver discards every event.
type NopObserver struct{}

// OnEvent does nothing.
func (NopObserver) OnEvent(Event) {}

// MultiObserver fans events out to several observers in order.
type MultiObserver []Observer

// OnEvent forwards event to every non-nil observer.
func (m MultiObserver) OnEvent(event Event) {
	for _, o := range m {
		if o != nil {
			o.OnEvent(event)
		}
	}
}

// RecordingObserver keeps every event it receives. Useful in tests and for
// post-run inspection.
type RecordingObserver struct {
	mu     sync.Mutex
	events []Event
}

// OnEvent appends event.
func (r *RecordingObserver) OnEvent(event Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

// Events returns a copy of the recorded events.
func (r *RecordingObserver) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// OfType returns the recorded events of the given type, in order.
func (r *RecordingObserver) OfType(t EventType) []Event {
	var out []Event
	for _, e := range r.Events() {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}
