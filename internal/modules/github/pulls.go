package github

import (
	"context"
	"fmt"

	gh "github.com/google/go-github/v60/github"
)

// =============================================================================
// Pull request handlers
// =============================================================================

func (m *Module) listPullRequests(ctx context.Context, params map[string]any) (string, error) {
	client, err := m.client()
	if err != nil {
		return "", err
	}
	owner, repo := strParam(params, "owner"), strParam(params, "repo")
	state := strParam(params, "state")
	limit := intParam(params, "limit", 10)

	opts := &gh.PullRequestListOptions{
		State:       state,
		ListOptions: gh.ListOptions{PerPage: limit},
	}
	prs, _, err := client.PullRequests.List(ctx, owner, repo, opts)
	if err != nil {
		return "", normalizeError(err, errorHints{})
	}
	if len(prs) > limit {
		prs = prs[:limit]
	}

	out := prList{State: state, Count: len(prs), PullRequests: make([]prSummary, 0, len(prs))}
	for _, pr := range prs {
		out.PullRequests = append(out.PullRequests, newPRSummary(pr))
	}
	return toJSON(out)
}

func (m *Module) createPullRequest(ctx context.Context, params map[string]any) (string, error) {
	client, err := m.client()
	if err != nil {
		return "", err
	}
	owner, repo := strParam(params, "owner"), strParam(params, "repo")
	head, base := strParam(params, "head"), strParam(params, "base")

	req := &gh.NewPullRequest{
		Title: gh.String(strParam(params, "title")),
		Head:  gh.String(head),
		Base:  gh.String(base),
		Draft: gh.Bool(boolParam(params, "draft")),
	}
	if body := strParam(params, "body"); body != "" {
		req.Body = gh.String(body)
	}

	pr, _, err := client.PullRequests.Create(ctx, owner, repo, req)
	if err != nil {
		return "", normalizeError(err, errorHints{
			invalid: []string{
				fmt.Sprintf("Both branches must exist: head %q and base %q.", head, base),
				"A pull request for this head/base pair may already exist.",
				"The head branch must contain commits not in the base branch.",
			},
		})
	}
	return toJSON(newPRRef(pr))
}

func (m *Module) updatePullRequest(ctx context.Context, params map[string]any) (string, error) {
	client, err := m.client()
	if err != nil {
		return "", err
	}
	owner, repo := strParam(params, "owner"), strParam(params, "repo")
	number := intParam(params, "pr_number", 0)

	pull := &gh.PullRequest{}
	if title := strParam(params, "title"); title != "" {
		pull.Title = gh.String(title)
	}
	if body := strParam(params, "body"); body != "" {
		pull.Body = gh.String(body)
	}
	if base := strParam(params, "base"); base != "" {
		pull.Base = &gh.PullRequestBranch{Ref: gh.String(base)}
	}

	pr, _, err := client.PullRequests.Edit(ctx, owner, repo, number, pull)
	if err != nil {
		return "", normalizeError(err, prHints(owner, repo, number))
	}
	return toJSON(newPRRef(pr))
}

// addPRComment posts a conversation comment on the pull request. GitHub
// stores these through the issues API since every PR is also an issue.
func (m *Module) addPRComment(ctx context.Context, params map[string]any) (string, error) {
	client, err := m.client()
	if err != nil {
		return "", err
	}
	owner, repo := strParam(params, "owner"), strParam(params, "repo")
	number := intParam(params, "pr_number", 0)

	comment, _, err := client.Issues.CreateComment(ctx, owner, repo, number,
		&gh.IssueComment{Body: gh.String(strParam(params, "body"))})
	if err != nil {
		return "", normalizeError(err, prHints(owner, repo, number))
	}
	return toJSON(commentRef{
		ID:        comment.GetID(),
		URL:       comment.GetHTMLURL(),
		CreatedAt: formatTimestamp(comment.CreatedAt),
	})
}

func (m *Module) closePullRequest(ctx context.Context, params map[string]any) (string, error) {
	return m.setPullRequestState(ctx, params, "closed")
}

func (m *Module) reopenPullRequest(ctx context.Context, params map[string]any) (string, error) {
	return m.setPullRequestState(ctx, params, "open")
}

func (m *Module) setPullRequestState(ctx context.Context, params map[string]any, state string) (string, error) {
	client, err := m.client()
	if err != nil {
		return "", err
	}
	owner, repo := strParam(params, "owner"), strParam(params, "repo")
	number := intParam(params, "pr_number", 0)

	pr, _, err := client.PullRequests.Edit(ctx, owner, repo, number,
		&gh.PullRequest{State: gh.String(state)})
	if err != nil {
		hints := prHints(owner, repo, number)
		if state == "open" {
			hints.invalid = []string{"Merged pull requests cannot be reopened."}
		}
		return "", normalizeError(err, hints)
	}
	return toJSON(newPRRef(pr))
}

func prHints(owner, repo string, number int) errorHints {
	return errorHints{
		notFound: []string{
			fmt.Sprintf("Pull request #%d may not exist in %s/%s.", number, owner, repo),
		},
	}
}
