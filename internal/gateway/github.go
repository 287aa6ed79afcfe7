// Package gateway provides the sources of pull request records:
// the GitHub API (GraphQL search plus the REST rate limit endpoint) and local log files.
package gateway

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/naka-gawa/pr-stats/internal/domain"
	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"
)

// Source supplies the pull requests merged in [start, end).
type Source interface {
	FetchMergedPullRequests(ctx context.Context, start, end time.Time) ([]domain.PullRequest, error)
}

// RateLimitReporter is implemented by sources backed by a rate limited API.
type RateLimitReporter interface {
	RateLimit(ctx context.Context) (RateStatus, error)
}

// RateStatus is the remaining API quota.
type RateStatus struct {
	CoreRemaining    int
	GraphQLRemaining int
	GraphQLReset     time.Time
}

// GitHubGateway fetches merged pull requests matching a search query.
type GitHubGateway struct {
	restClient    *github.Client
	graphqlClient *githubv4.Client
	query         string
	logger        *log.Logger
}

// mergedPullRequestsQuery fetches everything CreateStat needs for one page of merged pull requests.
type mergedPullRequestsQuery struct {
	Search struct {
		PageInfo struct {
			HasNextPage bool
			EndCursor   githubv4.String
		}
		Edges []struct {
			Node struct {
				Typename    string `graphql:"__typename"`
				PullRequest struct {
					Title  string
					URL    string
					Author *struct {
						Login string
					}
					CreatedAt githubv4.DateTime
					MergedAt  githubv4.DateTime
					Additions int
					Deletions int
					Commits   struct {
						Nodes []struct {
							Commit struct {
								AuthoredDate githubv4.DateTime
							}
						}
					} `graphql:"commits(first: 1)"`
					Reviews struct {
						Nodes []struct {
							SubmittedAt githubv4.DateTime
						}
					} `graphql:"reviews(first: 1, states: [COMMENTED, APPROVED, CHANGES_REQUESTED, DISMISSED])"`
				} `graphql:"... on PullRequest"`
			}
		}
	} `graphql:"search(query: $query, type: ISSUE, first: 50, after: $cursor)"` // Commits and reviews make each node expensive, so keep the page small.
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
func NewGitHubGateway(token, query string, logger *log.Logger) (*GitHubGateway, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(1*time.Hour, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := &http.Client{
		Transport: &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: ts,
		},
	}
	return &GitHubGateway{
		restClient:    github.NewClient(httpClient),
		graphqlClient: githubv4.NewClient(httpClient),
		query:         query,
		logger:        logger,
	}, nil
}

// searchQuery narrows the user query to pull requests merged inside the window.
func (g *GitHubGateway) searchQuery(start, end time.Time) string {
	return fmt.Sprintf("%s is:pr is:merged merged:%s..%s",
		g.query, start.UTC().Format(time.RFC3339), end.UTC().Format(time.RFC3339))
}

// FetchMergedPullRequests walks every page of the search and converts each node to a domain.PullRequest.
func (g *GitHubGateway) FetchMergedPullRequests(ctx context.Context, start, end time.Time) ([]domain.PullRequest, error) {
	query := g.searchQuery(start, end)
	variables := map[string]interface{}{
		"query":  githubv4.String(query),
		"cursor": (*githubv4.String)(nil),
	}

	prs := make([]domain.PullRequest, 0)
	for {
		var q mergedPullRequestsQuery
		if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
			return nil, fmt.Errorf("failed to execute GraphQL query for merged pull requests: %w", err)
		}

		for _, edge := range q.Search.Edges {
			if edge.Node.Typename != "PullRequest" {
				continue
			}
			prNode := edge.Node.PullRequest

			pr := domain.PullRequest{
				Title:     prNode.Title,
				URL:       prNode.URL,
				CreatedAt: prNode.CreatedAt.Time,
				MergedAt:  prNode.MergedAt.Time,
				Additions: prNode.Additions,
				Deletions: prNode.Deletions,
				// Without commits the lead time starts when the pull request was opened.
				AuthoredDate: prNode.CreatedAt.Time,
			}
			if prNode.Author != nil { // Deleted accounts have no author.
				pr.Author = prNode.Author.Login
			}
			if len(prNode.Commits.Nodes) > 0 {
				pr.AuthoredDate = prNode.Commits.Nodes[0].Commit.AuthoredDate.Time
			}
			if len(prNode.Reviews.Nodes) > 0 {
				firstReviewedAt := prNode.Reviews.Nodes[0].SubmittedAt.Time
				pr.FirstReviewedAt = &firstReviewedAt
			}
			prs = append(prs, pr)
		}

		if !q.Search.PageInfo.HasNextPage {
			break
		}
		variables["cursor"] = githubv4.NewString(q.Search.PageInfo.EndCursor)
		g.logger.Println("  Fetching next page of merged pull requests...")
	}
	g.logger.Printf("Completed fetching merged pull requests for query: %s\n", query)
	return prs, nil
}

// RateLimit reads the remaining REST and GraphQL quota.
func (g *GitHubGateway) RateLimit(ctx context.Context) (RateStatus, error) {
	limits, _, err := g.restClient.RateLimit.Get(ctx)
	if err != nil {
		return RateStatus{}, fmt.Errorf("failed to get rate limits with REST API: %w", err)
	}
	var status RateStatus
	if core := limits.GetCore(); core != nil {
		status.CoreRemaining = core.Remaining
	}
	if gql := limits.GetGraphQL(); gql != nil {
		status.GraphQLRemaining = gql.Remaining
		status.GraphQLReset = gql.Reset.Time
	}
	return status, nil
}
