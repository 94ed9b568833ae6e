package discovery

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"

	"github.com/aleister1102/sitemapfinder/internal/models"
)

// ConsoleObserver renders each domain as a small tree. Lines are buffered per
// investigation (Event.RunID) and written in one piece when it completes, so
// concurrent investigations, including repeats of the same domain, do not interleave.
type ConsoleObserver struct {
	mu      sync.Mutex
	out     io.Writer
	pending map[uint64]*strings.Builder
}

// NewConsoleObserver creates a ConsoleObserver writing to out.
func NewConsoleObserver(out io.Writer) *ConsoleObserver {
	return &ConsoleObserver{
		out:     out,
		pending: make(map[uint64]*strings.Builder),
	}
}

// OnEvent implements Observer.
func (c *ConsoleObserver) OnEvent(event Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch event.Type {
	case EventBatchStarted:
		fmt.Fprintf(c.out, "Processing %d domains...\n", event.Total)
	case EventDomainStarted:
		c.line(event.RunID, "\n🔎 Checking domain: %s", event.Domain)
	case EventProtocolStarted:
		c.line(event.RunID, "  ┌─ Testing %s protocol", protocolLabel(event.Protocol))
		c.line(event.RunID, "  ├─ Checking robots.txt")
	case EventRobotsChecked:
		if event.Count > 0 {
			c.line(event.RunID, "  │  ✓ Found %d sitemap(s) in robots.txt", event.Count)
		}
		c.line(event.RunID, "  ├─ Checking common locations")
	case EventPathsChecked:
		if event.Count > 0 {
			c.line(event.RunID, "  │  ✓ Found %d sitemap(s) in common locations", event.Count)
		}
	case EventProtocolFailed:
		c.line(event.RunID, "  │  ✗ %s connection failed", protocolLabel(event.Protocol))
	case EventProtocolComplete:
		c.line(event.RunID, "  └─ %s check complete", protocolLabel(event.Protocol))
	case EventExtractionStarted:
		c.line(event.RunID, "  ┌─ Processing %d compressed sitemap(s)", event.Count)
	case EventCompressedFailed:
		c.line(event.RunID, "  │  ✗ %s", event.URL)
	case EventExtractionComplete:
		c.line(event.RunID, "  └─ Extracted %d URLs from compressed sitemaps", event.Count)
	case EventDomainComplete:
		c.flush(event)
	case EventBatchComplete:
		runIDs := make([]uint64, 0, len(c.pending))
		for id := range c.pending {
			runIDs = append(runIDs, id)
		}
		slices.Sort(runIDs)
		for _, id := range runIDs {
			c.flushRun(id)
		}
	}
}

func (c *ConsoleObserver) line(runID uint64, format string, args ...interface{}) {
	b, ok := c.pending[runID]
	if !ok {
		b = &strings.Builder{}
		c.pending[runID] = b
	}
	fmt.Fprintf(b, format, args...)
	b.WriteByte('\n')
}

func (c *ConsoleObserver) flush(event Event) {
	if event.Result != nil {
		if event.Result.IsSuccess() {
			c.line(event.RunID, "✅ %s complete: %d sitemaps found", event.Domain, len(event.Result.Sitemaps))
		} else {
			c.line(event.RunID, "❌ %s failed: %s", event.Domain, event.Result.Error)
		}
	}
	c.flushRun(event.RunID)
}

func (c *ConsoleObserver) flushRun(runID uint64) {
	if b, ok := c.pending[runID]; ok {
		_, _ = io.WriteString(c.out, b.String())
		delete(c.pending, runID)
	}
}

func protocolLabel(p models.Protocol) string {
	return strings.ToUpper(string(p))
}
