// Package collect implements the source collectors feeding the pipeline.
//
// A collector produces ordered batches of raw records in the shared source
// vocabulary ("Job Title", "Source URL", ...). Collectors are thin I/O
// glue: they do no normalization beyond naming fields, and they stay polite
// to third-party services by pausing between requests.
package collect

import (
	"context"
	"time"

	"github.com/sohia/remote-work-tracker/internal/types"
)

// DefaultPolitenessDelay is the pause inserted between remote calls.
const DefaultPolitenessDelay = 2 * time.Second

// Collector produces one raw record batch per run.
type Collector interface {
	// Name identifies the origin source, stored as job_board.
	Name() string
	// Collect fetches the source and returns raw records in source order.
	Collect(ctx context.Context) ([]types.RawRecord, error)
}

// pause waits out the politeness delay, returning early on cancellation.
func pause(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}
