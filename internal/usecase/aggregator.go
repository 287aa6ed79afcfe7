// Package usecase contains the business logic of the application.
package usecase

import (
	"math"

	"github.com/montanaflynn/stats"
	"github.com/naka-gawa/pr-stats/internal/domain"
	"github.com/samber/lo"
)

// CreateStat reduces the pull requests of one window into a StatRow.
// Records are not re-checked against [start, end); the caller is trusted to have filtered them.
// An empty slice yields a row whose numeric fields are all zero.
func CreateStat(prs []domain.PullRequest, start, end string) (domain.StatRow, error) {
	for _, pr := range prs {
		if err := pr.Validate(); err != nil {
			return domain.StatRow{}, err
		}
	}

	additions := lo.Map(prs, func(pr domain.PullRequest, _ int) int { return pr.Additions })
	deletions := lo.Map(prs, func(pr domain.PullRequest, _ int) int { return pr.Deletions })
	leadTimes := lo.Map(prs, func(pr domain.PullRequest, _ int) float64 { return pr.LeadTimeSeconds() })
	timeToMerges := lo.Map(prs, func(pr domain.PullRequest, _ int) float64 { return pr.TimeToMergeSeconds() })
	// Unreviewed pull requests are left out here, not counted as zero.
	timeToMergeFromFirstReviews := lo.FilterMap(prs, func(pr domain.PullRequest, _ int) (float64, bool) {
		return pr.TimeToMergeFromFirstReviewSeconds()
	})
	authors := lo.Uniq(lo.Map(prs, func(pr domain.PullRequest, _ int) string { return pr.Author }))

	return domain.StatRow{
		Start:                                    start,
		End:                                      end,
		Count:                                    len(prs),
		AuthorCount:                              len(authors),
		Additions:                                lo.Sum(additions),
		AdditionsAverage:                         average(toFloats(additions)),
		AdditionsMedian:                          median(toFloats(additions)),
		Deletions:                                lo.Sum(deletions),
		DeletionsAverage:                         average(toFloats(deletions)),
		DeletionsMedian:                          median(toFloats(deletions)),
		LeadTimeSecondsAverage:                   floor(average(leadTimes)),
		LeadTimeSecondsMedian:                    floor(median(leadTimes)),
		TimeToMergeSecondsAverage:                floor(average(timeToMerges)),
		TimeToMergeSecondsMedian:                 floor(median(timeToMerges)),
		TimeToMergeFromFirstReviewSecondsAverage: floor(average(timeToMergeFromFirstReviews)),
		TimeToMergeFromFirstReviewSecondsMedian:  floor(median(timeToMergeFromFirstReviews)),
	}, nil
}

// average returns the arithmetic mean, or 0 for an empty slice.
func average(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	mean, err := stats.Mean(xs)
	if err != nil {
		return 0
	}
	return mean
}

// median returns the middle value (mean of the two middle values for even lengths), or 0 for an empty slice.
func median(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	m, err := stats.Median(xs)
	if err != nil {
		return 0
	}
	return m
}

// floor rounds toward negative infinity, so -0.5 becomes -1.
func floor(f float64) int64 {
	return int64(math.Floor(f))
}

func toFloats(xs []int) []float64 {
	return lo.Map(xs, func(x int, _ int) float64 { return float64(x) })
}
