package dataforseo

import (
	"context"
	"log"
	"sync"
)

const (
	// poolWorkers bounds concurrent API calls; DataForSEO rate limits are
	// generous but the audit has no reason to hammer the endpoint.
	poolWorkers = 2

	// batchSize caps keywords per task.
	batchSize = 20
)

// Pool fans batched keyword lookups out over a fixed set of workers.
// Per-batch failures are logged and skipped so one bad batch never aborts
// the whole lookup.
type Pool struct {
	// lookup is swappable in tests.
	lookup func(ctx context.Context, target string, keywords []string) ([]RankedItem, error)
}

// NewPool creates a pool backed by the given client.
func NewPool(client *Client) *Pool {
	return &Pool{lookup: client.RankedKeywords}
}

// Lookup resolves ranked items for all keywords, batching and running
// lookups across the pool's workers. Results arrive in no particular order.
func (p *Pool) Lookup(ctx context.Context, target string, keywords []string) []RankedItem {
	if len(keywords) == 0 {
		return nil
	}

	batches := make(chan []string, (len(keywords)+batchSize-1)/batchSize)
	for start := 0; start < len(keywords); start += batchSize {
		end := start + batchSize
		if end > len(keywords) {
			end = len(keywords)
		}
		batches <- keywords[start:end]
	}
	close(batches)

	var (
		mu    sync.Mutex
		items []RankedItem
		wg    sync.WaitGroup
	)
	for i := 0; i < poolWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for batch := range batches {
				got, err := p.lookup(ctx, target, batch)
				if err != nil {
					log.Printf("[dataforseo] batch of %d failed: %v", len(batch), err)
					continue
				}
				mu.Lock()
				items = append(items, got...)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	return items
}
