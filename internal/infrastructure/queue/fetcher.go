package queue

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/distribuidora/analise-credito/internal/core/ports"
)

const defaultWorkers = 4

// Fetcher downloads many blobs with a bounded pool of workers. Each path is
// handled independently: a failure is recorded and the rest keep going.
type Fetcher struct {
	workers int
	store   ports.BlobStore
	log     zerolog.Logger
}

// NewFetcher creates a Fetcher with numWorkers workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewFetcher(numWorkers int, store ports.BlobStore, log zerolog.Logger) *Fetcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	return &Fetcher{workers: numWorkers, store: store, log: log}
}

type fetchResult struct {
	path string
	obj  *ports.BlobObject
	err  error
}

// FetchAll downloads every path. Paths not reached before ctx is cancelled are
// reported with ctx.Err().
func (f *Fetcher) FetchAll(ctx context.Context, paths []string) (map[string]*ports.BlobObject, map[string]error) {
	ok := make(map[string]*ports.BlobObject, len(paths))
	failed := make(map[string]error)
	if len(paths) == 0 {
		return ok, failed
	}

	jobs := make(chan string)
	results := make(chan fetchResult, len(paths))

	n := f.workers
	if n > len(paths) {
		n = len(paths)
	}
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go f.runWorker(ctx, i, jobs, results, &wg)
	}

	go func() {
		defer close(jobs)
		for _, p := range paths {
			select {
			case <-ctx.Done():
				return
			case jobs <- p:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	for r := range results {
		if r.err != nil {
			failed[r.path] = r.err
			continue
		}
		ok[r.path] = r.obj
	}

	for _, p := range paths {
		if _, done := ok[p]; done {
			continue
		}
		if _, done := failed[p]; !done {
			failed[p] = ctx.Err()
		}
	}
	return ok, failed
}

func (f *Fetcher) runWorker(ctx context.Context, id int, jobs <-chan string, results chan<- fetchResult, wg *sync.WaitGroup) {
	defer wg.Done()
	for p := range jobs {
		obj, err := f.store.Download(ctx, p)
		if err != nil {
			f.log.Warn().Err(err).
				Str("path", p).
				Int("worker_id", id).
				Msg("blob fetch failed")
		}
		results <- fetchResult{path: p, obj: obj, err: err}
	}
}
