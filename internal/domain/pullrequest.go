package domain

import (
	"fmt"
	"time"
)

// PullRequest is a single merged pull request.
// Instances are built by a source for one window and treated as immutable.
type PullRequest struct {
	Title           string
	Author          string
	URL             string
	CreatedAt       time.Time
	MergedAt        time.Time
	Additions       int
	Deletions       int
	AuthoredDate    time.Time
	FirstReviewedAt *time.Time
}

// Validate reports whether the durations of the pull request can be computed.
// Ordering between the timestamps is not checked; negative durations are allowed.
func (p PullRequest) Validate() error {
	switch {
	case p.MergedAt.IsZero():
		return fmt.Errorf("%w: pull request %q has no mergedAt", ErrInvalidInput, p.URL)
	case p.CreatedAt.IsZero():
		return fmt.Errorf("%w: pull request %q has no createdAt", ErrInvalidInput, p.URL)
	case p.AuthoredDate.IsZero():
		return fmt.Errorf("%w: pull request %q has no authoredDate", ErrInvalidInput, p.URL)
	}
	return nil
}

// LeadTimeSeconds is the time from the first authored commit to the merge.
func (p PullRequest) LeadTimeSeconds() float64 {
	return p.MergedAt.Sub(p.AuthoredDate).Seconds()
}

// TimeToMergeSeconds is the time from opening the pull request to the merge.
func (p PullRequest) TimeToMergeSeconds() float64 {
	return p.MergedAt.Sub(p.CreatedAt).Seconds()
}

// TimeToMergeFromFirstReviewSeconds is the time from the first review to the merge.
// ok is false when the pull request was never reviewed.
func (p PullRequest) TimeToMergeFromFirstReviewSeconds() (seconds float64, ok bool) {
	if p.FirstReviewedAt == nil {
		return 0, false
	}
	return p.MergedAt.Sub(*p.FirstReviewedAt).Seconds(), true
}
