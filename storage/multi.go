package storage

import (
	"context"
	"fmt"

	golightqa "github.com/MegaGrindStone/go-light-qa"
	"golang.org/x/sync/errgroup"
)

// Multi concatenates several dataset sources. Sources are read concurrently but the result
// keeps the order of the slice, so earlier sources win ties in the matcher.
type Multi []golightqa.DatasetSource

// Records reads all sources. The first error cancels the remaining reads.
func (m Multi) Records(ctx context.Context) ([]golightqa.QARecord, error) {
	results := make([][]golightqa.QARecord, len(m))

	g, gctx := errgroup.WithContext(ctx)
	for i, src := range m {
		g.Go(func() error {
			records, err := src.Records(gctx)
			if err != nil {
				return fmt.Errorf("source %d: %w", i, err)
			}
			results[i] = records
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, r := range results {
		total += len(r)
	}

	records := make([]golightqa.QARecord, 0, total)
	for _, r := range results {
		records = append(records, r...)
	}

	return records, nil
}
