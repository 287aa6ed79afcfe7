package usecase

import (
	"testing"
	"time"

	"github.com/naka-gawa/pr-stats/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

// newPR builds a merged pull request whose lead time and time to merge are leadTime and timeToMerge seconds.
func newPR(author string, additions, deletions int, leadTime, timeToMerge int) domain.PullRequest {
	merged := baseTime.Add(time.Duration(leadTime) * time.Second)
	return domain.PullRequest{
		Title:        "change by " + author,
		Author:       author,
		URL:          "https://github.com/org/repo/pull/1",
		AuthoredDate: baseTime,
		CreatedAt:    merged.Add(-time.Duration(timeToMerge) * time.Second),
		MergedAt:     merged,
		Additions:    additions,
		Deletions:    deletions,
	}
}

func withFirstReview(pr domain.PullRequest, secondsBeforeMerge int) domain.PullRequest {
	reviewed := pr.MergedAt.Add(-time.Duration(secondsBeforeMerge) * time.Second)
	pr.FirstReviewedAt = &reviewed
	return pr
}

func TestCreateStat(t *testing.T) {
	testCases := []struct {
		name     string
		prs      []domain.PullRequest
		expected domain.StatRow
	}{
		{
			name: "two pull requests by different authors",
			prs: []domain.PullRequest{
				newPR("a", 10, 2, 100, 50),
				newPR("b", 20, 4, 300, 150),
			},
			expected: domain.StatRow{
				Start: "s", End: "e",
				Count: 2, AuthorCount: 2,
				Additions: 30, AdditionsAverage: 15, AdditionsMedian: 15,
				Deletions: 6, DeletionsAverage: 3, DeletionsMedian: 3,
				LeadTimeSecondsAverage: 200, LeadTimeSecondsMedian: 200,
				TimeToMergeSecondsAverage: 100, TimeToMergeSecondsMedian: 100,
			},
		},
		{
			name: "empty input degenerates to zero",
			prs:  nil,
			expected: domain.StatRow{
				Start: "s", End: "e",
			},
		},
		{
			name: "repeated author counted once",
			prs: []domain.PullRequest{
				newPR("A", 1, 0, 10, 10),
				newPR("A", 2, 0, 20, 20),
				newPR("B", 3, 0, 30, 30),
			},
			expected: domain.StatRow{
				Start: "s", End: "e",
				Count: 3, AuthorCount: 2,
				Additions: 6, AdditionsAverage: 2, AdditionsMedian: 2,
				LeadTimeSecondsAverage: 20, LeadTimeSecondsMedian: 20,
				TimeToMergeSecondsAverage: 20, TimeToMergeSecondsMedian: 20,
			},
		},
		{
			name: "durations are floored",
			prs: []domain.PullRequest{
				newPR("a", 1, 1, 1, 1),
				newPR("a", 2, 2, 2, 2),
			},
			expected: domain.StatRow{
				Start: "s", End: "e",
				Count: 2, AuthorCount: 1,
				Additions: 3, AdditionsAverage: 1.5, AdditionsMedian: 1.5,
				Deletions: 3, DeletionsAverage: 1.5, DeletionsMedian: 1.5,
				LeadTimeSecondsAverage: 1, LeadTimeSecondsMedian: 1,
				TimeToMergeSecondsAverage: 1, TimeToMergeSecondsMedian: 1,
			},
		},
		{
			name: "negative durations are floored toward negative infinity",
			prs: []domain.PullRequest{
				newPR("a", 0, 0, -1, 0),
				newPR("b", 0, 0, -2, 0),
			},
			expected: domain.StatRow{
				Start: "s", End: "e",
				Count: 2, AuthorCount: 2,
				LeadTimeSecondsAverage: -2, LeadTimeSecondsMedian: -2,
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			row, err := CreateStat(tc.prs, "s", "e")
			require.NoError(t, err)
			assert.Equal(t, tc.expected, row)
		})
	}
}

func TestCreateStat_FirstReviewExcludesUnreviewed(t *testing.T) {
	prs := []domain.PullRequest{
		withFirstReview(newPR("a", 1, 1, 1000, 900), 500),
		newPR("b", 1, 1, 3000, 2900),
	}

	row, err := CreateStat(prs, "", "")
	require.NoError(t, err)

	assert.Equal(t, int64(500), row.TimeToMergeFromFirstReviewSecondsAverage)
	assert.Equal(t, int64(500), row.TimeToMergeFromFirstReviewSecondsMedian)
	// The other durations still cover both records.
	assert.Equal(t, int64(2000), row.LeadTimeSecondsAverage)
	assert.Equal(t, int64(1900), row.TimeToMergeSecondsAverage)
}

func TestCreateStat_InvalidRecord(t *testing.T) {
	pr := newPR("a", 1, 1, 10, 10)
	pr.AuthoredDate = time.Time{}

	_, err := CreateStat([]domain.PullRequest{pr}, "", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateStat_SumMatchesAverage(t *testing.T) {
	additions := []int{3, 7, 11, 19, 23}
	prs := make([]domain.PullRequest, 0, len(additions))
	for _, a := range additions {
		prs = append(prs, newPR("a", a, a*2, 1, 1))
	}

	row, err := CreateStat(prs, "", "")
	require.NoError(t, err)

	assert.InDelta(t, float64(row.Additions), row.AdditionsAverage*float64(row.Count), 1e-9)
	assert.InDelta(t, float64(row.Deletions), row.DeletionsAverage*float64(row.Count), 1e-9)
	assert.Equal(t, len(prs), row.Count)
}

func TestAverageAndMedian(t *testing.T) {
	assert.Equal(t, float64(0), average(nil))
	assert.Equal(t, float64(0), median(nil))
	assert.Equal(t, float64(2), median([]float64{1, 2, 3}))
	assert.Equal(t, 2.5, median([]float64{1, 2, 3, 4}))
	assert.Equal(t, float64(2), median([]float64{3, 1, 2}))
	assert.Equal(t, 2.5, average([]float64{1, 2, 3, 4}))
}

func TestMedian_DoesNotReorderInput(t *testing.T) {
	xs := []float64{3, 1, 2}
	median(xs)
	assert.Equal(t, []float64{3, 1, 2}, xs)
}
