package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/naka-gawa/pr-stats/internal/domain"
	"github.com/samber/lo"
)

// pullRequestEntry is one element of a pull request log file.
// Pointers distinguish a missing field from a zero value.
type pullRequestEntry struct {
	Title           *string    `json:"title" validate:"required"`
	Author          *string    `json:"author" validate:"required"`
	URL             *string    `json:"url" validate:"required"`
	CreatedAt       *time.Time `json:"createdAt" validate:"required"`
	MergedAt        *time.Time `json:"mergedAt" validate:"required"`
	Additions       *int       `json:"additions" validate:"required,gte=0"`
	Deletions       *int       `json:"deletions" validate:"required,gte=0"`
	AuthoredDate    *time.Time `json:"authoredDate" validate:"required"`
	FirstReviewedAt *time.Time `json:"firstReviewedAt"`
}

func (e pullRequestEntry) toDomain() domain.PullRequest {
	return domain.PullRequest{
		Title:           *e.Title,
		Author:          *e.Author,
		URL:             *e.URL,
		CreatedAt:       *e.CreatedAt,
		MergedAt:        *e.MergedAt,
		Additions:       *e.Additions,
		Deletions:       *e.Deletions,
		AuthoredDate:    *e.AuthoredDate,
		FirstReviewedAt: e.FirstReviewedAt,
	}
}

// LogFileGateway serves pull requests from a JSON log file read once at construction.
type LogFileGateway struct {
	prs []domain.PullRequest
}

// NewLogFileGateway loads the log file at path.
func NewLogFileGateway(path string) (*LogFileGateway, error) {
	prs, err := LoadPullRequestLog(path)
	if err != nil {
		return nil, err
	}
	return &LogFileGateway{prs: prs}, nil
}

// FetchMergedPullRequests returns the logged pull requests whose merge time falls in [start, end).
func (g *LogFileGateway) FetchMergedPullRequests(_ context.Context, start, end time.Time) ([]domain.PullRequest, error) {
	return lo.Filter(g.prs, func(pr domain.PullRequest, _ int) bool {
		return !pr.MergedAt.Before(start) && pr.MergedAt.Before(end)
	}), nil
}

// LoadPullRequestLog reads a JSON array of pull requests from path.
func LoadPullRequestLog(path string) ([]domain.PullRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pull request log %s: %w", path, err)
	}
	return ParsePullRequestLog(data)
}

// ParsePullRequestLog decodes and validates a JSON array of pull requests.
// Every failure, including missing or mistyped fields, wraps domain.ErrParse.
func ParsePullRequestLog(data []byte) ([]domain.PullRequest, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: pull request log must be a JSON array: %v", domain.ErrParse, err)
	}

	validate := validator.New()
	prs := make([]domain.PullRequest, 0, len(raw))
	for i, msg := range raw {
		var entry pullRequestEntry
		if err := json.Unmarshal(msg, &entry); err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", domain.ErrParse, i, err)
		}
		if err := validate.Struct(&entry); err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", domain.ErrParse, i, err)
		}
		prs = append(prs, entry.toDomain())
	}
	return prs, nil
}
