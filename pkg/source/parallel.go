package source

import (
	"context"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/simonhull/firebird-suite/heron/pkg/docnode"
)

// decodeResult holds the outcome of decoding one file
type decodeResult struct {
	rel      string
	nodes    []docnode.Node
	nodeErrs []error
	err      error
}

// decodeJob is a file to decode and its position in the listing
type decodeJob struct {
	index int
	rel   string
}

// decodeAll decodes files with a pool of workers. Results come back in the
// order of files regardless of which worker finished first. Files not
// reached before ctx is cancelled carry ctx's error.
func (s *FileSource) decodeAll(ctx context.Context, dir string, files []string) []decodeResult {
	results := make([]decodeResult, len(files))
	if len(files) == 0 {
		return results
	}

	numWorkers := s.Workers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	numWorkers = min(numWorkers, len(files))

	jobs := make(chan decodeJob)
	var wg sync.WaitGroup

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				nodes, nodeErrs, err := decodeFile(filepath.Join(dir, filepath.FromSlash(job.rel)))
				results[job.index] = decodeResult{rel: job.rel, nodes: nodes, nodeErrs: nodeErrs, err: err}
			}
		}()
	}

	sent := 0
send:
	for i, rel := range files {
		select {
		case <-ctx.Done():
			break send
		case jobs <- decodeJob{index: i, rel: rel}:
			sent++
		}
	}
	close(jobs)
	wg.Wait()

	for i := sent; i < len(files); i++ {
		results[i] = decodeResult{rel: files[i], err: ctx.Err()}
	}
	return results
}
