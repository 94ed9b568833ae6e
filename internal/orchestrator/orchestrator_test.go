package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aleister1102/sitemapfinder/internal/discovery"
	"github.com/aleister1102/sitemapfinder/internal/httpclient"
	"github.com/aleister1102/sitemapfinder/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type investigatorFunc func(ctx context.Context, domain string) models.DomainResult

func (f investigatorFunc) Investigate(ctx context.Context, domain string) models.DomainResult {
	return f(ctx, domain)
}

func successFor(domain string) models.DomainResult {
	return models.NewSuccessResult(domain, models.NewURLSet("http://"+domain+"/sitemap.xml"), nil)
}

func TestRun_OneResultPerDomain(t *testing.T) {
	domains := make([]string, 0, 40)
	for i := 0; i < 40; i++ {
		domains = append(domains, fmt.Sprintf("d%02d.test", i))
	}

	inv := investigatorFunc(func(ctx context.Context, domain string) models.DomainResult {
		return successFor(domain)
	})
	results := NewOrchestrator(inv, 7, nil, zerolog.Nop()).Run(context.Background(), domains)

	require.Len(t, results, len(domains))
	got := make([]string, 0, len(results))
	for _, r := range results {
		got = append(got, r.Domain)
	}
	assert.ElementsMatch(t, domains, got)
}

func TestRun_PanicBecomesErrorResult(t *testing.T) {
	inv := investigatorFunc(func(ctx context.Context, domain string) models.DomainResult {
		switch domain {
		case "panic.test":
			panic("nil map write")
		case "netpanic.test":
			panic(httpclient.NewNetworkError("http://netpanic.test", "reset", errors.New("connection reset")))
		}
		return successFor(domain)
	})

	results := NewOrchestrator(inv, 2, nil, zerolog.Nop()).Run(context.Background(), []string{"ok.test", "panic.test", "netpanic.test"})
	require.Len(t, results, 3)

	byDomain := make(map[string]models.DomainResult, len(results))
	for _, r := range results {
		byDomain[r.Domain] = r
	}

	assert.True(t, byDomain["ok.test"].IsSuccess())
	assert.Equal(t, models.ResultStatusError, byDomain["panic.test"].Status)
	assert.Equal(t, models.ErrorProcessing, byDomain["panic.test"].Error)
	assert.Equal(t, []string{}, byDomain["panic.test"].Sitemaps)
	assert.Equal(t, models.ErrorConnectionFailed, byDomain["netpanic.test"].Error)
}

func TestRun_RespectsConcurrencyLimit(t *testing.T) {
	var inFlight, peak int32
	inv := investigatorFunc(func(ctx context.Context, domain string) models.DomainResult {
		n := atomic.AddInt32(&inFlight, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		return successFor(domain)
	})

	domains := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}
	results := NewOrchestrator(inv, 3, nil, zerolog.Nop()).Run(context.Background(), domains)

	assert.Len(t, results, len(domains))
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(3))
	assert.GreaterOrEqual(t, atomic.LoadInt32(&peak), int32(1))
}

func TestRun_EmitsBatchEvents(t *testing.T) {
	recorder := &discovery.RecordingObserver{}
	inv := investigatorFunc(func(ctx context.Context, domain string) models.DomainResult {
		return successFor(domain)
	})

	NewOrchestrator(inv, 0, recorder, zerolog.Nop()).Run(context.Background(), []string{"a.test", "b.test"})

	events := recorder.Events()
	require.NotEmpty(t, events)
	assert.Equal(t, discovery.EventBatchStarted, events[0].Type)
	assert.Equal(t, 2, events[0].Total)
	assert.Equal(t, discovery.EventBatchComplete, events[len(events)-1].Type)

	completed := recorder.OfType(discovery.EventDomainComplete)
	require.Len(t, completed, 2)
	for _, e := range completed {
		require.NotNil(t, e.Result)
		assert.Equal(t, e.Domain, e.Result.Domain)
		assert.Equal(t, discovery.StateDone, e.State)
	}
}

func TestRun_RepeatedDomainGetsDistinctRunIDs(t *testing.T) {
	recorder := &discovery.RecordingObserver{}
	var mu sync.Mutex
	seen := make(map[uint64]bool)
	inv := investigatorFunc(func(ctx context.Context, domain string) models.DomainResult {
		runID, ok := discovery.RunIDFromContext(ctx)
		assert.True(t, ok)
		mu.Lock()
		seen[runID] = true
		mu.Unlock()
		return successFor(domain)
	})

	NewOrchestrator(inv, 2, recorder, zerolog.Nop()).Run(context.Background(), []string{"dup.test", "dup.test"})

	completed := recorder.OfType(discovery.EventDomainComplete)
	require.Len(t, completed, 2)
	assert.NotEqual(t, completed[0].RunID, completed[1].RunID)
	for _, e := range completed {
		assert.True(t, seen[e.RunID], "completion must carry the run ID the investigation saw")
	}
}

func TestRun_EmptyBatch(t *testing.T) {
	inv := investigatorFunc(func(ctx context.Context, domain string) models.DomainResult {
		t.Fatal("no domain should be investigated")
		return models.DomainResult{}
	})
	results := NewOrchestrator(inv, 5, nil, zerolog.Nop()).Run(context.Background(), nil)
	assert.Empty(t, results)
	assert.NotNil(t, results)
}

type admitterFunc func(ctx context.Context) error

func (f admitterFunc) Acquire(ctx context.Context) error { return f(ctx) }

func TestRun_WaitsOnAdmitter(t *testing.T) {
	var admitted int32
	admitter := admitterFunc(func(ctx context.Context) error {
		atomic.AddInt32(&admitted, 1)
		return nil
	})
	inv := investigatorFunc(func(ctx context.Context, domain string) models.DomainResult {
		return successFor(domain)
	})

	results := NewOrchestrator(inv, 2, nil, zerolog.Nop()).
		WithAdmitter(admitter).
		Run(context.Background(), []string{"a.test", "b.test", "c.test"})

	assert.Len(t, results, 3)
	assert.Equal(t, int32(3), atomic.LoadInt32(&admitted))
}

func TestRun_AdmitterRefusalStillYieldsResults(t *testing.T) {
	admitter := admitterFunc(func(ctx context.Context) error {
		return errors.New("wait aborted")
	})
	inv := investigatorFunc(func(ctx context.Context, domain string) models.DomainResult {
		return successFor(domain)
	})

	results := NewOrchestrator(inv, 2, nil, zerolog.Nop()).
		WithAdmitter(admitter).
		Run(context.Background(), []string{"a.test", "b.test"})

	require.Len(t, results, 2)
	for _, r := range results {
		assert.True(t, r.IsSuccess())
	}
}
