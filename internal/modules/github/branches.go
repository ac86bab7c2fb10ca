package github

import (
	"context"
	"errors"
	"fmt"
	"strings"

	gh "github.com/google/go-github/v60/github"

	"githubmcp/server/internal/modules"
)

// =============================================================================
// Branch management handlers
// =============================================================================

func (m *Module) listBranches(ctx context.Context, params map[string]any) (string, error) {
	client, err := m.client()
	if err != nil {
		return "", err
	}
	owner, repo := strParam(params, "owner"), strParam(params, "repo")

	opts := &gh.BranchListOptions{
		ListOptions: gh.ListOptions{PerPage: 100},
	}
	if boolParam(params, "protected_only") {
		opts.Protected = gh.Bool(true)
	}
	branches, _, err := client.Repositories.ListBranches(ctx, owner, repo, opts)
	if err != nil {
		return "", normalizeError(err, errorHints{})
	}

	out := branchList{Count: len(branches), Branches: make([]branchSummary, 0, len(branches))}
	for _, b := range branches {
		out.Branches = append(out.Branches, newBranchSummary(b))
	}
	return toJSON(out)
}

func (m *Module) createBranch(ctx context.Context, params map[string]any) (string, error) {
	client, err := m.client()
	if err != nil {
		return "", err
	}
	owner, repo := strParam(params, "owner"), strParam(params, "repo")
	name := strParam(params, "branch_name")

	from := strParam(params, "from_branch")
	if from == "" {
		r, _, err := client.Repositories.Get(ctx, owner, repo)
		if err != nil {
			return "", normalizeError(err, errorHints{})
		}
		from = r.GetDefaultBranch()
	}

	srcRef, _, err := client.Git.GetRef(ctx, owner, repo, "refs/heads/"+from)
	if err != nil {
		return "", normalizeError(err, errorHints{
			notFound: []string{fmt.Sprintf("Source branch %q may not exist in %s/%s.", from, owner, repo)},
		})
	}

	newRef := &gh.Reference{
		Ref:    gh.String("refs/heads/" + name),
		Object: &gh.GitObject{SHA: srcRef.GetObject().SHA},
	}
	created, _, err := client.Git.CreateRef(ctx, owner, repo, newRef)
	if err != nil {
		return "", normalizeError(err, errorHints{
			invalid:   []string{fmt.Sprintf("A branch named %q may already exist.", name)},
			forbidden: []string{"Creating branches requires write access to the repository."},
		})
	}
	return toJSON(branchCreated{
		Branch: name,
		From:   from,
		SHA:    created.GetObject().GetSHA(),
	})
}

// deleteBranch refuses to delete the repository's default branch. The default
// branch is looked up first, so a refused call issues no delete at all.
func (m *Module) deleteBranch(ctx context.Context, params map[string]any) (string, error) {
	client, err := m.client()
	if err != nil {
		return "", err
	}
	owner, repo := strParam(params, "owner"), strParam(params, "repo")
	name := strParam(params, "branch_name")

	r, _, err := client.Repositories.Get(ctx, owner, repo)
	if err != nil {
		return "", normalizeError(err, errorHints{})
	}
	if name == r.GetDefaultBranch() {
		return "", modules.NewToolError(
			modules.KindValidation,
			fmt.Sprintf("refusing to delete %q: it is the default branch of %s/%s", name, owner, repo),
			"Change the repository's default branch first if you really intend to delete it.",
		)
	}

	if _, err := client.Git.DeleteRef(ctx, owner, repo, "refs/heads/"+name); err != nil {
		return "", normalizeError(err, errorHints{
			notFound:  []string{fmt.Sprintf("Branch %q may not exist in %s/%s.", name, owner, repo)},
			forbidden: []string{"Deleting branches requires write access; protected branches cannot be deleted."},
		})
	}
	return toJSON(branchDeleted{Branch: name, Deleted: true})
}

func (m *Module) mergeBranches(ctx context.Context, params map[string]any) (string, error) {
	client, err := m.client()
	if err != nil {
		return "", err
	}
	owner, repo := strParam(params, "owner"), strParam(params, "repo")
	base, head := strParam(params, "base"), strParam(params, "head")

	req := &gh.RepositoryMergeRequest{
		Base: gh.String(base),
		Head: gh.String(head),
	}
	if msg := strParam(params, "commit_message"); msg != "" {
		req.CommitMessage = gh.String(msg)
	}

	commit, resp, err := client.Repositories.Merge(ctx, owner, repo, req)
	if err != nil {
		return "", normalizeError(err, errorHints{
			notFound: []string{fmt.Sprintf("Branches %q and %q must both exist.", base, head)},
			invalid:  []string{fmt.Sprintf("Check that %q and %q are valid refs for this repository.", base, head)},
			conflict: []string{fmt.Sprintf("Merge %q into %q locally, resolve the conflicts, and push before retrying.", base, head)},
		})
	}
	// 204: base already contains head, nothing to merge.
	if resp != nil && resp.StatusCode == 204 {
		return toJSON(mergeResult{
			Merged:  false,
			Message: fmt.Sprintf("%q already contains all commits from %q", base, head),
		})
	}
	return toJSON(mergeResult{
		Merged:  true,
		SHA:     commit.GetSHA(),
		Message: fmt.Sprintf("merged %q into %q", head, base),
	})
}

func (m *Module) getBranchProtection(ctx context.Context, params map[string]any) (string, error) {
	client, err := m.client()
	if err != nil {
		return "", err
	}
	owner, repo := strParam(params, "owner"), strParam(params, "repo")
	branch := strParam(params, "branch")

	prot, _, err := client.Repositories.GetBranchProtection(ctx, owner, repo, branch)
	if err != nil {
		// GitHub answers 404 both for unknown branches and for branches
		// without protection; the latter is a real answer, not an error.
		var respErr *gh.ErrorResponse
		if errors.Is(err, gh.ErrBranchNotProtected) ||
			(errors.As(err, &respErr) && strings.Contains(strings.ToLower(respErr.Message), "not protected")) {
			return toJSON(protectionRules{Branch: branch, Protected: false, RequiredStatusChecks: []string{}})
		}
		return "", normalizeError(err, errorHints{
			notFound:  []string{fmt.Sprintf("Branch %q may not exist in %s/%s.", branch, owner, repo)},
			forbidden: []string{"Reading branch protection requires admin access to the repository."},
		})
	}

	out := protectionRules{
		Branch:               branch,
		Protected:            true,
		RequiredStatusChecks: []string{},
	}
	if reviews := prot.GetRequiredPullRequestReviews(); reviews != nil {
		out.RequiredReviews = reviews.RequiredApprovingReviewCount
		out.RequireCodeOwnerReviews = reviews.RequireCodeOwnerReviews
		out.DismissStaleReviews = reviews.DismissStaleReviews
	}
	if checks := prot.GetRequiredStatusChecks(); checks != nil {
		out.StrictStatusChecks = checks.Strict
		out.RequiredStatusChecks = append(out.RequiredStatusChecks, checks.GetContexts()...)
	}
	if admins := prot.GetEnforceAdmins(); admins != nil {
		out.EnforceAdmins = admins.Enabled
	}
	return toJSON(out)
}

func (m *Module) compareBranches(ctx context.Context, params map[string]any) (string, error) {
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
				fmt.Sprintf("Branches %q and %q must both exist in %s/%s.", base, head, owner, repo),
			},
		})
	}
	return toJSON(newComparison(base, head, cmp))
}
