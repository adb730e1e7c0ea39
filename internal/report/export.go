package report

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/dhananjay-901/Al-Based-Allocation-Engine/internal/service"
)

// ExportAll writes rows to every reporter concurrently. The first failure
// cancels the context handed to the others.
func ExportAll(ctx context.Context, rows []service.ReportRow, reporters ...service.Reporter) error {
	g, ctx := errgroup.WithContext(ctx)
	for i, r := range reporters {
		g.Go(func() error {
			if err := r.Write(ctx, rows); err != nil {
				return fmt.Errorf("export %d of %d failed: %w", i+1, len(reporters), err)
			}
			return nil
		})
	}
	return g.Wait()
}
