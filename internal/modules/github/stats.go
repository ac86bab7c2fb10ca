package github

import (
	"context"
	"errors"
	"sort"

	gh "github.com/google/go-github/v60/github"
)

// =============================================================================
// Repository statistics handlers
// =============================================================================
//
// GitHub computes the stats endpoints asynchronously and answers 202 until
// the aggregation is ready. That surfaces here as *github.AcceptedError and
// becomes a successful "pending" payload rather than an error.

func isPending(err error) bool {
	var accepted *gh.AcceptedError
	return errors.As(err, &accepted)
}

func (m *Module) getContributorStats(ctx context.Context, params map[string]any) (string, error) {
	client, err := m.client()
	if err != nil {
		return "", err
	}
	owner, repo := strParam(params, "owner"), strParam(params, "repo")
	limit := intParam(params, "limit", 10)

	stats, _, err := client.Repositories.ListContributorsStats(ctx, owner, repo)
	if err != nil {
		if isPending(err) {
			return toJSON(newPendingStatus())
		}
		return "", normalizeError(err, errorHints{})
	}

	contributors := make([]contributorStat, 0, len(stats))
	for _, cs := range stats {
		entry := contributorStat{
			Login:   cs.GetAuthor().GetLogin(),
			Commits: cs.GetTotal(),
		}
		for _, week := range cs.Weeks {
			entry.Additions += week.GetAdditions()
			entry.Deletions += week.GetDeletions()
		}
		contributors = append(contributors, entry)
	}
	// GitHub returns contributors in ascending order of commit count.
	sort.Slice(contributors, func(i, j int) bool {
		return contributors[i].Commits > contributors[j].Commits
	})
	if len(contributors) > limit {
		contributors = contributors[:limit]
	}
	return toJSON(contributorStats{Count: len(contributors), Contributors: contributors})
}

func (m *Module) getCodeFrequency(ctx context.Context, params map[string]any) (string, error) {
	client, err := m.client()
	if err != nil {
		return "", err
	}
	owner, repo := strParam(params, "owner"), strParam(params, "repo")

	weeks, _, err := client.Repositories.ListCodeFrequency(ctx, owner, repo)
	if err != nil {
		if isPending(err) {
			return toJSON(newPendingStatus())
		}
		return "", normalizeError(err, errorHints{})
	}

	out := codeFrequency{Weeks: make([]weeklyFrequency, 0, len(weeks))}
	for _, w := range weeks {
		out.Weeks = append(out.Weeks, weeklyFrequency{
			Week:      formatDay(w.GetWeek().Time),
			Additions: w.GetAdditions(),
			Deletions: w.GetDeletions(),
		})
	}
	return toJSON(out)
}

func (m *Module) getCommitActivity(ctx context.Context, params map[string]any) (string, error) {
	client, err := m.client()
	if err != nil {
		return "", err
	}
	owner, repo := strParam(params, "owner"), strParam(params, "repo")

	activity, _, err := client.Repositories.ListCommitActivity(ctx, owner, repo)
	if err != nil {
		if isPending(err) {
			return toJSON(newPendingStatus())
		}
		return "", normalizeError(err, errorHints{})
	}

	out := commitActivity{Weeks: make([]weeklyActivity, 0, len(activity))}
	for _, w := range activity {
		out.TotalLastYear += w.GetTotal()
		out.Weeks = append(out.Weeks, weeklyActivity{
			Week:  formatDay(w.GetWeek().Time),
			Total: w.GetTotal(),
			ByDay: w.Days,
		})
	}
	return toJSON(out)
}

// getTrafficStats needs four endpoint calls; all of them require push access,
// so a 403 on the first one is reported without issuing the rest.
func (m *Module) getTrafficStats(ctx context.Context, params map[string]any) (string, error) {
	client, err := m.client()
	if err != nil {
		return "", err
	}
	owner, repo := strParam(params, "owner"), strParam(params, "repo")
	hints := errorHints{
		forbidden: []string{"Traffic statistics require push access to the repository."},
	}

	views, _, err := client.Repositories.ListTrafficViews(ctx, owner, repo, nil)
	if err != nil {
		return "", normalizeError(err, hints)
	}
	clones, _, err := client.Repositories.ListTrafficClones(ctx, owner, repo, nil)
	if err != nil {
		return "", normalizeError(err, hints)
	}
	referrers, _, err := client.Repositories.ListTrafficReferrers(ctx, owner, repo)
	if err != nil {
		return "", normalizeError(err, hints)
	}
	paths, _, err := client.Repositories.ListTrafficPaths(ctx, owner, repo)
	if err != nil {
		return "", normalizeError(err, hints)
	}

	out := trafficStats{
		Views:        trafficCount{Count: views.GetCount(), Uniques: views.GetUniques()},
		Clones:       trafficCount{Count: clones.GetCount(), Uniques: clones.GetUniques()},
		TopReferrers: make([]trafficReferrer, 0, len(referrers)),
		PopularPaths: make([]trafficPath, 0, len(paths)),
	}
	for _, r := range referrers {
		out.TopReferrers = append(out.TopReferrers, trafficReferrer{
			Referrer: r.GetReferrer(),
			Count:    r.GetCount(),
			Uniques:  r.GetUniques(),
		})
	}
	for _, p := range paths {
		out.PopularPaths = append(out.PopularPaths, trafficPath{
			Path:    p.GetPath(),
			Title:   p.GetTitle(),
			Count:   p.GetCount(),
			Uniques: p.GetUniques(),
		})
	}
	return toJSON(out)
}
