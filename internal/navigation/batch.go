package navigation

import (
	"context"
	"runtime"
	"slices"
	"sync"

	"github.com/taigrr/obsidian-pagenav/internal/types"
	"golang.org/x/sync/errgroup"
)

// SynthesizeAll synthesizes every document in docs, a few at a time. All
// documents are attempted; the first failure is returned alongside the
// report.
func (s *Synthesizer) SynthesizeAll(ctx context.Context, docs []*Document) (types.SyncReport, error) {
	report := types.SyncReport{Scanned: len(docs), Updated: []string{}}

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(runtime.NumCPU(), 1))

	for _, doc := range docs {
		g.Go(func() error {
			written, err := s.Synthesize(ctx, doc)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err != nil:
				report.Failed = append(report.Failed, doc.Path)
			case written:
				report.Updated = append(report.Updated, doc.Path)
			}
			return err
		})
	}
	err := g.Wait()

	slices.Sort(report.Updated)
	slices.Sort(report.Failed)
	return report, err
}
