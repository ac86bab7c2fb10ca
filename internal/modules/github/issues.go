package github

import (
	"context"
	"fmt"

	gh "github.com/google/go-github/v60/github"
)

// =============================================================================
// Issue handlers
// =============================================================================

// listIssues lists issues only. GitHub's issues endpoint intermixes pull
// requests, so the page is fetched at the requested limit first and pull
// requests are filtered out afterwards; a page full of PRs can therefore
// return fewer than "limit" entries.
func (m *Module) listIssues(ctx context.Context, params map[string]any) (string, error) {
	client, err := m.client()
	if err != nil {
		return "", err
	}
	owner, repo := strParam(params, "owner"), strParam(params, "repo")
	state := strParam(params, "state")
	limit := intParam(params, "limit", 10)

	opts := &gh.IssueListByRepoOptions{
		State:       state,
		ListOptions: gh.ListOptions{PerPage: limit},
	}
	issues, _, err := client.Issues.ListByRepo(ctx, owner, repo, opts)
	if err != nil {
		return "", normalizeError(err, errorHints{})
	}
	// Limit first, filter second: an oversized upstream page must never
	// leak past the requested limit.
	if len(issues) > limit {
		issues = issues[:limit]
	}

	out := issueList{State: state, Issues: []issueSummary{}}
	for _, issue := range issues {
		if issue.IsPullRequest() {
			continue
		}
		out.Issues = append(out.Issues, newIssueSummary(issue))
	}
	out.Count = len(out.Issues)
	return toJSON(out)
}

func (m *Module) createIssue(ctx context.Context, params map[string]any) (string, error) {
	client, err := m.client()
	if err != nil {
		return "", err
	}
	owner, repo := strParam(params, "owner"), strParam(params, "repo")

	req := &gh.IssueRequest{Title: gh.String(strParam(params, "title"))}
	if body := strParam(params, "body"); body != "" {
		req.Body = gh.String(body)
	}
	if labels := toStringSlice(params["labels"]); len(labels) > 0 {
		req.Labels = &labels
	}
	if assignees := toStringSlice(params["assignees"]); len(assignees) > 0 {
		req.Assignees = &assignees
	}

	issue, _, err := client.Issues.Create(ctx, owner, repo, req)
	if err != nil {
		return "", normalizeError(err, errorHints{
			invalid: []string{
				"Labels must already exist on the repository.",
				"Assignees must have access to the repository.",
			},
		})
	}
	return toJSON(newIssueRef(issue))
}

func (m *Module) updateIssue(ctx context.Context, params map[string]any) (string, error) {
	client, err := m.client()
	if err != nil {
		return "", err
	}
	owner, repo := strParam(params, "owner"), strParam(params, "repo")
	number := intParam(params, "issue_number", 0)

	req := &gh.IssueRequest{}
	if title := strParam(params, "title"); title != "" {
		req.Title = gh.String(title)
	}
	if body := strParam(params, "body"); body != "" {
		req.Body = gh.String(body)
	}
	if state := strParam(params, "state"); state != "" {
		req.State = gh.String(state)
	}
	if labels := toStringSlice(params["labels"]); labels != nil {
		req.Labels = &labels
	}
	if assignees := toStringSlice(params["assignees"]); assignees != nil {
		req.Assignees = &assignees
	}

	issue, _, err := client.Issues.Edit(ctx, owner, repo, number, req)
	if err != nil {
		return "", normalizeError(err, issueHints(owner, repo, number))
	}
	return toJSON(newIssueRef(issue))
}

func (m *Module) addIssueComment(ctx context.Context, params map[string]any) (string, error) {
	client, err := m.client()
	if err != nil {
		return "", err
	}
	owner, repo := strParam(params, "owner"), strParam(params, "repo")
	number := intParam(params, "issue_number", 0)

	comment, _, err := client.Issues.CreateComment(ctx, owner, repo, number,
		&gh.IssueComment{Body: gh.String(strParam(params, "body"))})
	if err != nil {
		return "", normalizeError(err, issueHints(owner, repo, number))
	}
	return toJSON(commentRef{
		ID:        comment.GetID(),
		URL:       comment.GetHTMLURL(),
		CreatedAt: formatTimestamp(comment.CreatedAt),
	})
}

// closeIssue is idempotent: closing an already-closed issue succeeds and
// reports the resulting state.
func (m *Module) closeIssue(ctx context.Context, params map[string]any) (string, error) {
	return m.setIssueState(ctx, params, "closed")
}

func (m *Module) reopenIssue(ctx context.Context, params map[string]any) (string, error) {
	return m.setIssueState(ctx, params, "open")
}

func (m *Module) setIssueState(ctx context.Context, params map[string]any, state string) (string, error) {
	client, err := m.client()
	if err != nil {
		return "", err
	}
	owner, repo := strParam(params, "owner"), strParam(params, "repo")
	number := intParam(params, "issue_number", 0)

	issue, _, err := client.Issues.Edit(ctx, owner, repo, number,
		&gh.IssueRequest{State: gh.String(state)})
	if err != nil {
		return "", normalizeError(err, issueHints(owner, repo, number))
	}
	return toJSON(newIssueRef(issue))
}

func issueHints(owner, repo string, number int) errorHints {
	return errorHints{
		notFound: []string{
			fmt.Sprintf("Issue #%d may not exist in %s/%s.", number, owner, repo),
		},
	}
}
