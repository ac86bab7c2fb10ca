package github

import (
	"context"
	"fmt"
	"time"

	gh "github.com/google/go-github/v60/github"

	"githubmcp/server/internal/modules"
)

// =============================================================================
// Commit history handlers
// =============================================================================

func (m *Module) listCommits(ctx context.Context, params map[string]any) (string, error) {
	client, err := m.client()
	if err != nil {
		return "", err
	}
	owner, repo := strParam(params, "owner"), strParam(params, "repo")
	limit := intParam(params, "limit", 10)

	opts := &gh.CommitsListOptions{
		SHA:         strParam(params, "branch"),
		ListOptions: gh.ListOptions{PerPage: limit},
	}
	commits, _, err := client.Repositories.ListCommits(ctx, owner, repo, opts)
	if err != nil {
		return "", normalizeError(err, commitHints(owner, repo))
	}
	if len(commits) > limit {
		commits = commits[:limit]
	}

	out := commitList{Count: len(commits), Commits: make([]commitSummary, 0, len(commits))}
	for _, rc := range commits {
		out.Commits = append(out.Commits, newCommitSummary(rc))
	}
	return toJSON(out)
}

func (m *Module) getCommitDetails(ctx context.Context, params map[string]any) (string, error) {
	client, err := m.client()
	if err != nil {
		return "", err
	}
	owner, repo := strParam(params, "owner"), strParam(params, "repo")
	sha := strParam(params, "sha")

	rc, _, err := client.Repositories.GetCommit(ctx, owner, repo, sha, nil)
	if err != nil {
		return "", normalizeError(err, errorHints{
			notFound: []string{fmt.Sprintf("Commit %q may not exist in %s/%s.", sha, owner, repo)},
		})
	}
	return toJSON(newCommitDetail(rc, boolParam(params, "include_patch")))
}

func (m *Module) searchCommits(ctx context.Context, params map[string]any) (string, error) {
	client, err := m.client()
	if err != nil {
		return "", err
	}
	owner, repo := strParam(params, "owner"), strParam(params, "repo")
	limit := intParam(params, "limit", 10)

	opts := &gh.CommitsListOptions{
		Author:      strParam(params, "author"),
		Path:        strParam(params, "path"),
		ListOptions: gh.ListOptions{PerPage: limit},
	}
	if since := strParam(params, "since"); since != "" {
		t, err := parseDate(since)
		if err != nil {
			return "", badDateError("since", since)
		}
		opts.Since = t
	}
	if until := strParam(params, "until"); until != "" {
		t, err := parseDate(until)
		if err != nil {
			return "", badDateError("until", until)
		}
		opts.Until = t
	}

	commits, _, err := client.Repositories.ListCommits(ctx, owner, repo, opts)
	if err != nil {
		return "", normalizeError(err, commitHints(owner, repo))
	}
	if len(commits) > limit {
		commits = commits[:limit]
	}

	out := commitList{Count: len(commits), Commits: make([]commitSummary, 0, len(commits))}
	for _, rc := range commits {
		out.Commits = append(out.Commits, newCommitSummary(rc))
	}
	return toJSON(out)
}

func (m *Module) compareCommits(ctx context.Context, params map[string]any) (string, error) {
	client, err := m.client()
	if err != nil {
		return "", err
	}
	owner, repo := strParam(params, "owner"), strParam(params, "repo")
	base, head := strParam(params, "base"), strParam(params, "head")

	cmp, _, err := client.Repositories.CompareCommits(ctx, owner, repo, base, head, nil)
	if err != nil {
		return "", normalizeError(err, errorHints{
			notFound: []string{
				fmt.Sprintf("Refs %q and %q must both exist in %s/%s.", base, head, owner, repo),
			},
		})
	}
	return toJSON(newComparison(base, head, cmp))
}

// getCommitStats walks recent history and aggregates per-day and per-author
// commit counts. The walk stops after commitScanLimit commits; the payload
// reports "scan_capped": true when history continued past the cap, so totals
// are a floor rather than exact on very active repositories.
func (m *Module) getCommitStats(ctx context.Context, params map[string]any) (string, error) {
	client, err := m.client()
	if err != nil {
		return "", err
	}
	owner, repo := strParam(params, "owner"), strParam(params, "repo")
	days := intParam(params, "days", 30)
	branch := strParam(params, "branch")

	stats := commitStats{
		Days:     days,
		Branch:   branch,
		ByDay:    map[string]int{},
		ByAuthor: map[string]int{},
	}
	if stats.Branch == "" {
		stats.Branch = "default"
	}

	since := time.Now().UTC().AddDate(0, 0, -days)
	remaining := m.commitScanLimit
	page := 1
	for remaining > 0 {
		opts := &gh.CommitsListOptions{
			SHA:         branch,
			Since:       since,
			ListOptions: gh.ListOptions{PerPage: min(100, remaining), Page: page},
		}
		commits, resp, err := client.Repositories.ListCommits(ctx, owner, repo, opts)
		if err != nil {
			return "", normalizeError(err, commitHints(owner, repo))
		}
		for _, rc := range commits {
			stats.CommitsAnalyzed++
			if date := rc.GetCommit().GetAuthor().Date; date != nil {
				stats.ByDay[formatDay(date.Time)]++
			}
			stats.ByAuthor[commitAuthorName(rc)]++
		}
		remaining -= len(commits)
		if resp.NextPage == 0 {
			break
		}
		if remaining <= 0 {
			stats.ScanCapped = true
			break
		}
		page = resp.NextPage
	}
	return toJSON(stats)
}

func commitHints(owner, repo string) errorHints {
	return errorHints{
		notFound: []string{
			fmt.Sprintf("Repository %s/%s or the requested ref may not exist.", owner, repo),
		},
	}
}

// parseDate accepts full RFC 3339 timestamps or bare YYYY-MM-DD dates.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

func badDateError(field, value string) error {
	return modules.NewToolError(
		modules.KindValidation,
		fmt.Sprintf("invalid %s date: %q", field, value),
		"Use an ISO 8601 timestamp (2024-01-15T00:00:00Z) or a bare date (2024-01-15).",
	)
}
