package search

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/gardar/hocrsearch/pkg/hocr"
)

// QueryAll runs one Query per rect concurrently, with at most workers
// queries in flight (workers < 1 means GOMAXPROCS).
// results[i] holds the matches for rects[i]. Rects are checked before any
// query starts; the lowest-indexed out-of-bounds rect fails the batch with an
// error wrapping ErrRegionOutOfBounds.
func QueryAll(ctx context.Context, doc hocr.Document, rects []hocr.BBox, workers int) ([][]Match, error) {
	for i, rect := range rects {
		if !InBounds(rect) {
			return nil, fmt.Errorf("region %d %v: %w", i, rect, ErrRegionOutOfBounds)
		}
	}
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([][]Match, len(rects))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, rect := range rects {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			matches, err := Query(doc, rect)
			if err != nil {
				return err
			}
			results[i] = matches
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
