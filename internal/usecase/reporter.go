package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/naka-gawa/pr-stats/internal/domain"
	"github.com/naka-gawa/pr-stats/internal/gateway"
)

// DefaultDelay is the pause between two windows, kept to stay under the API rate limits.
const DefaultDelay = 5 * time.Second

// RowWriter receives each StatRow as soon as it is computed.
type RowWriter interface {
	WriteRow(row domain.StatRow) error
}

// Reporter is the use case for producing the monthly report.
// It drives the windows, asks the source for each window's pull requests and
// writes one aggregated row per window.
type Reporter struct {
	source gateway.Source
	writer RowWriter
	clock  Clock
	delay  time.Duration
	logger *log.Logger
}

// NewReporter creates a new Reporter instance.
func NewReporter(source gateway.Source, writer RowWriter, clock Clock, delay time.Duration, logger *log.Logger) *Reporter {
	return &Reporter{
		source: source,
		writer: writer,
		clock:  clock,
		delay:  delay,
		logger: logger,
	}
}

// Run writes one row per monthly window from start until end.
// A zero end means the current time, read once before the first window.
// Any error stops the run; rows already written stay written.
func (r *Reporter) Run(ctx context.Context, start, end time.Time) error {
	bound := end
	if bound.IsZero() {
		bound = r.clock.Now()
	}
	r.logger.Printf("Usecase: Reporting windows from %s until %s", start.Format(time.RFC3339), bound.Format(time.RFC3339))

	first := true
	for w := range Months(start, bound) {
		if !first {
			if err := r.clock.Sleep(ctx, r.delay); err != nil {
				return err
			}
		}
		first = false

		r.logger.Printf("Fetching window %s .. %s", w.StartString(), w.EndString())
		r.logRateLimit(ctx)
		prs, err := r.source.FetchMergedPullRequests(ctx, w.Start, w.End)
		if err != nil {
			return fmt.Errorf("failed to fetch pull requests for window starting %s: %w", w.StartString(), err)
		}
		r.logger.Printf("  %d pull requests merged in window", len(prs))

		row, err := CreateStat(prs, w.StartString(), w.EndString())
		if err != nil {
			return fmt.Errorf("failed to aggregate window starting %s: %w", w.StartString(), err)
		}
		if err := r.writer.WriteRow(row); err != nil {
			return fmt.Errorf("failed to write report row: %w", err)
		}
	}

	r.logger.Println("Usecase: Report complete.")
	return nil
}

// logRateLimit prints the remaining API quota when the source has one.
// Failing to read it is not fatal.
func (r *Reporter) logRateLimit(ctx context.Context) {
	rl, ok := r.source.(gateway.RateLimitReporter)
	if !ok {
		return
	}
	status, err := rl.RateLimit(ctx)
	if err != nil {
		r.logger.Printf("  Could not read rate limit: %v", err)
		return
	}
	r.logger.Printf("  Rate limit remaining: core=%d graphql=%d (graphql resets at %s)",
		status.CoreRemaining, status.GraphQLRemaining, status.GraphQLReset.Format(time.RFC3339))
}
