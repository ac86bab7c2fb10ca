package github

import "githubmcp/server/internal/modules"

// In this file: tool definitions for every GitHub operation. Slice order is
// the order advertised to clients.

func f64(v float64) *float64 { return &v }

// limitProp declares a "limit"-style parameter. Values outside [1, 100] are
// clamped by validation, matching GitHub's own page-size ceiling.
func limitProp(desc string, def float64) modules.Property {
	return modules.Property{
		Type:        "number",
		Description: desc,
		Default:     def,
		Minimum:     f64(1),
		Maximum:     f64(100),
	}
}

func ownerProp() modules.Property {
	return modules.Property{Type: "string", Description: "Repository owner (username or organization)"}
}

func repoProp() modules.Property {
	return modules.Property{Type: "string", Description: "Repository name"}
}

var toolDefinitions = []modules.Tool{
	// =========================================================================
	// Repository discovery
	// =========================================================================
	{
		Name:        "search_repositories",
		Description: "Search for GitHub repositories",
		Annotations: modules.AnnotateReadOnly,
		InputSchema: modules.InputSchema{
			Type: "object",
			Properties: map[string]modules.Property{
				"query": {Type: "string", Description: "Search query (e.g., 'language:python stars:>1000')"},
				"sort": {
					Type:        "string",
					Description: "Sort by: stars, forks, updated",
					Enum:        []string{"stars", "forks", "updated"},
					Default:     "stars",
				},
				"limit": limitProp("Number of results (max 100)", 10),
			},
			Required: []string{"query"},
		},
	},
	{
		Name:        "get_repository_info",
		Description: "Get detailed information about a repository",
		Annotations: modules.AnnotateReadOnly,
		InputSchema: modules.InputSchema{
			Type: "object",
			Properties: map[string]modules.Property{
				"owner": ownerProp(),
				"repo":  repoProp(),
			},
			Required: []string{"owner", "repo"},
		},
	},
	{
		Name:        "get_file_contents",
		Description: "Get contents of a file from a repository. Falls back to the 'master' branch when the requested branch fails.",
		Annotations: modules.AnnotateReadOnly,
		InputSchema: modules.InputSchema{
			Type: "object",
			Properties: map[string]modules.Property{
				"owner": ownerProp(),
				"repo":  repoProp(),
				"path":  {Type: "string", Description: "Path to the file in the repository"},
				"branch": {
					Type:        "string",
					Description: "Branch name (default: main, with a one-shot fallback to master)",
					Default:     "main",
				},
			},
			Required: []string{"owner", "repo", "path"},
		},
	},
	{
		Name:        "get_language_breakdown",
		Description: "Get the language composition of a repository in bytes and percentages",
		Annotations: modules.AnnotateReadOnly,
		InputSchema: modules.InputSchema{
			Type: "object",
			Properties: map[string]modules.Property{
				"owner": ownerProp(),
				"repo":  repoProp(),
			},
			Required: []string{"owner", "repo"},
		},
	},
	{
		Name:        "get_community_health",
		Description: "Get community health metrics for a repository (README, license, contributing guide, templates)",
		Annotations: modules.AnnotateReadOnly,
		InputSchema: modules.InputSchema{
			Type: "object",
			Properties: map[string]modules.Property{
				"owner": ownerProp(),
				"repo":  repoProp(),
			},
			Required: []string{"owner", "repo"},
		},
	},
	// =========================================================================
	// User
	// =========================================================================
	{
		Name:        "get_user_info",
		Description: "Get information about a GitHub user",
		Annotations: modules.AnnotateReadOnly,
		InputSchema: modules.InputSchema{
			Type: "object",
			Properties: map[string]modules.Property{
				"username": {Type: "string", Description: "GitHub username"},
			},
			Required: []string{"username"},
		},
	},
	// =========================================================================
	// Issues
	// =========================================================================
	{
		Name:        "list_issues",
		Description: "List issues for a repository. Pull requests are excluded even though GitHub's issues endpoint intermixes them, so fewer than 'limit' results may be returned.",
		Annotations: modules.AnnotateReadOnly,
		InputSchema: modules.InputSchema{
			Type: "object",
			Properties: map[string]modules.Property{
				"owner": ownerProp(),
				"repo":  repoProp(),
				"state": {
					Type:        "string",
					Description: "Issue state",
					Enum:        []string{"open", "closed", "all"},
					Default:     "open",
				},
				"limit": limitProp("Number of issues (max 100)", 10),
			},
			Required: []string{"owner", "repo"},
		},
	},
	{
		Name:        "create_issue",
		Description: "Create a new issue in a repository",
		Annotations: modules.AnnotateCreate,
		InputSchema: modules.InputSchema{
			Type: "object",
			Properties: map[string]modules.Property{
				"owner":     ownerProp(),
				"repo":      repoProp(),
				"title":     {Type: "string", Description: "Issue title"},
				"body":      {Type: "string", Description: "Issue body"},
				"labels":    {Type: "array", Description: "Labels to assign (must exist on the repository)", Items: &modules.Property{Type: "string"}},
				"assignees": {Type: "array", Description: "Users to assign (must have repository access)", Items: &modules.Property{Type: "string"}},
			},
			Required: []string{"owner", "repo", "title"},
		},
	},
	{
		Name:        "update_issue",
		Description: "Update an existing issue",
		Annotations: modules.AnnotateUpdate,
		InputSchema: modules.InputSchema{
			Type: "object",
			Properties: map[string]modules.Property{
				"owner":        ownerProp(),
				"repo":         repoProp(),
				"issue_number": {Type: "number", Description: "Issue number"},
				"title":        {Type: "string", Description: "New title"},
				"body":         {Type: "string", Description: "New body"},
				"state": {
					Type:        "string",
					Description: "New state",
					Enum:        []string{"open", "closed"},
				},
				"labels":    {Type: "array", Description: "Labels to set", Items: &modules.Property{Type: "string"}},
				"assignees": {Type: "array", Description: "Users to assign", Items: &modules.Property{Type: "string"}},
			},
			Required: []string{"owner", "repo", "issue_number"},
		},
	},
	{
		Name:        "add_issue_comment",
		Description: "Add a comment to an issue",
		Annotations: modules.AnnotateCreate,
		InputSchema: modules.InputSchema{
			Type: "object",
			Properties: map[string]modules.Property{
				"owner":        ownerProp(),
				"repo":         repoProp(),
				"issue_number": {Type: "number", Description: "Issue number"},
				"body":         {Type: "string", Description: "Comment body"},
			},
			Required: []string{"owner", "repo", "issue_number", "body"},
		},
	},
	{
		Name:        "close_issue",
		Description: "Close an issue. Closing an already-closed issue succeeds and reports state 'closed'.",
		Annotations: modules.AnnotateUpdate,
		InputSchema: modules.InputSchema{
			Type: "object",
			Properties: map[string]modules.Property{
				"owner":        ownerProp(),
				"repo":         repoProp(),
				"issue_number": {Type: "number", Description: "Issue number"},
			},
			Required: []string{"owner", "repo", "issue_number"},
		},
	},
	{
		Name:        "reopen_issue",
		Description: "Reopen a closed issue",
		Annotations: modules.AnnotateUpdate,
		InputSchema: modules.InputSchema{
			Type: "object",
			Properties: map[string]modules.Property{
				"owner":        ownerProp(),
				"repo":         repoProp(),
				"issue_number": {Type: "number", Description: "Issue number"},
			},
			Required: []string{"owner", "repo", "issue_number"},
		},
	},
	// =========================================================================
	// Pull requests
	// =========================================================================
	{
		Name:        "list_pull_requests",
		Description: "List pull requests for a repository",
		Annotations: modules.AnnotateReadOnly,
		InputSchema: modules.InputSchema{
			Type: "object",
			Properties: map[string]modules.Property{
				"owner": ownerProp(),
				"repo":  repoProp(),
				"state": {
					Type:        "string",
					Description: "PR state",
					Enum:        []string{"open", "closed", "all"},
					Default:     "open",
				},
				"limit": limitProp("Number of pull requests (max 100)", 10),
			},
			Required: []string{"owner", "repo"},
		},
	},
	{
		Name:        "create_pull_request",
		Description: "Create a new pull request",
		Annotations: modules.AnnotateCreate,
		InputSchema: modules.InputSchema{
			Type: "object",
			Properties: map[string]modules.Property{
				"owner": ownerProp(),
				"repo":  repoProp(),
				"title": {Type: "string", Description: "PR title"},
				"head":  {Type: "string", Description: "Branch with changes"},
				"base":  {Type: "string", Description: "Branch to merge into"},
				"body":  {Type: "string", Description: "PR description"},
				"draft": {Type: "boolean", Description: "Create as draft PR", Default: false},
			},
			Required: []string{"owner", "repo", "title", "head", "base"},
		},
	},
	{
		Name:        "update_pull_request",
		Description: "Update an existing pull request",
		Annotations: modules.AnnotateUpdate,
		InputSchema: modules.InputSchema{
			Type: "object",
			Properties: map[string]modules.Property{
				"owner":     ownerProp(),
				"repo":      repoProp(),
				"pr_number": {Type: "number", Description: "Pull request number"},
				"title":     {Type: "string", Description: "New title"},
				"body":      {Type: "string", Description: "New body"},
				"base":      {Type: "string", Description: "New base branch"},
			},
			Required: []string{"owner", "repo", "pr_number"},
		},
	},
	{
		Name:        "add_pr_comment",
		Description: "Add a comment to a pull request",
		Annotations: modules.AnnotateCreate,
		InputSchema: modules.InputSchema{
			Type: "object",
			Properties: map[string]modules.Property{
				"owner":     ownerProp(),
				"repo":      repoProp(),
				"pr_number": {Type: "number", Description: "Pull request number"},
				"body":      {Type: "string", Description: "Comment body"},
			},
			Required: []string{"owner", "repo", "pr_number", "body"},
		},
	},
	{
		Name:        "close_pull_request",
		Description: "Close a pull request without merging",
		Annotations: modules.AnnotateUpdate,
		InputSchema: modules.InputSchema{
			Type: "object",
			Properties: map[string]modules.Property{
				"owner":     ownerProp(),
				"repo":      repoProp(),
				"pr_number": {Type: "number", Description: "Pull request number"},
			},
			Required: []string{"owner", "repo", "pr_number"},
		},
	},
	{
		Name:        "reopen_pull_request",
		Description: "Reopen a closed pull request",
		Annotations: modules.AnnotateUpdate,
		InputSchema: modules.InputSchema{
			Type: "object",
			Properties: map[string]modules.Property{
				"owner":     ownerProp(),
				"repo":      repoProp(),
				"pr_number": {Type: "number", Description: "Pull request number"},
			},
			Required: []string{"owner", "repo", "pr_number"},
		},
	},
	// =========================================================================
	// Commit history
	// =========================================================================
	{
		Name:        "list_commits",
		Description: "List recent commits for a repository",
		Annotations: modules.AnnotateReadOnly,
		InputSchema: modules.InputSchema{
			Type: "object",
			Properties: map[string]modules.Property{
				"owner":  ownerProp(),
				"repo":   repoProp(),
				"branch": {Type: "string", Description: "Branch name or commit SHA to start from (default: repository default branch)"},
				"limit":  limitProp("Number of commits (max 100)", 10),
			},
			Required: []string{"owner", "repo"},
		},
	},
	{
		Name:        "get_commit_details",
		Description: "Get details of a single commit, including per-file changes",
		Annotations: modules.AnnotateReadOnly,
		InputSchema: modules.InputSchema{
			Type: "object",
			Properties: map[string]modules.Property{
				"owner":         ownerProp(),
				"repo":          repoProp(),
				"sha":           {Type: "string", Description: "Commit SHA"},
				"include_patch": {Type: "boolean", Description: "Include unified diffs per file", Default: false},
			},
			Required: []string{"owner", "repo", "sha"},
		},
	},
	{
		Name:        "search_commits",
		Description: "Search commit history filtered by author, date range, or file path",
		Annotations: modules.AnnotateReadOnly,
		InputSchema: modules.InputSchema{
			Type: "object",
			Properties: map[string]modules.Property{
				"owner":  ownerProp(),
				"repo":   repoProp(),
				"author": {Type: "string", Description: "Filter by author login or email"},
				"since":  {Type: "string", Description: "Only commits after this date (ISO 8601 or YYYY-MM-DD)"},
				"until":  {Type: "string", Description: "Only commits before this date (ISO 8601 or YYYY-MM-DD)"},
				"path":   {Type: "string", Description: "Only commits touching this file path"},
				"limit":  limitProp("Number of commits (max 100)", 10),
			},
			Required: []string{"owner", "repo"},
		},
	},
	{
		Name:        "compare_commits",
		Description: "Compare two commits or refs",
		Annotations: modules.AnnotateReadOnly,
		InputSchema: modules.InputSchema{
			Type: "object",
			Properties: map[string]modules.Property{
				"owner": ownerProp(),
				"repo":  repoProp(),
				"base":  {Type: "string", Description: "Base ref (commit SHA, branch, or tag)"},
				"head":  {Type: "string", Description: "Head ref (commit SHA, branch, or tag)"},
			},
			Required: []string{"owner", "repo", "base", "head"},
		},
	},
	{
		Name:        "get_commit_stats",
		Description: "Aggregate commit statistics over a recent window: per-day and per-author counts. Scanning is capped (default 500 commits); the payload reports whether the cap was hit.",
		Annotations: modules.AnnotateReadOnly,
		InputSchema: modules.InputSchema{
			Type: "object",
			Properties: map[string]modules.Property{
				"owner": ownerProp(),
				"repo":  repoProp(),
				"days": {
					Type:        "number",
					Description: "Window size in days",
					Default:     float64(30),
					Minimum:     f64(1),
					Maximum:     f64(365),
				},
				"branch": {Type: "string", Description: "Branch to analyze (default: repository default branch)"},
			},
			Required: []string{"owner", "repo"},
		},
	},
	// =========================================================================
	// Branch management
	// =========================================================================
	{
		Name:        "list_branches",
		Description: "List branches in a repository",
		Annotations: modules.AnnotateReadOnly,
		InputSchema: modules.InputSchema{
			Type: "object",
			Properties: map[string]modules.Property{
				"owner":          ownerProp(),
				"repo":           repoProp(),
				"protected_only": {Type: "boolean", Description: "Only list protected branches", Default: false},
			},
			Required: []string{"owner", "repo"},
		},
	},
	{
		Name:        "create_branch",
		Description: "Create a new branch from an existing one (requires write access)",
		Annotations: modules.AnnotateCreate,
		InputSchema: modules.InputSchema{
			Type: "object",
			Properties: map[string]modules.Property{
				"owner":       ownerProp(),
				"repo":        repoProp(),
				"branch_name": {Type: "string", Description: "Name of the branch to create"},
				"from_branch": {Type: "string", Description: "Source branch (default: repository default branch)"},
			},
			Required: []string{"owner", "repo", "branch_name"},
		},
	},
	{
		Name:        "delete_branch",
		Description: "Delete a branch (requires write access). The repository's default branch is never deleted.",
		Annotations: modules.AnnotateDelete,
		InputSchema: modules.InputSchema{
			Type: "object",
			Properties: map[string]modules.Property{
				"owner":       ownerProp(),
				"repo":        repoProp(),
				"branch_name": {Type: "string", Description: "Name of the branch to delete"},
			},
			Required: []string{"owner", "repo", "branch_name"},
		},
	},
	{
		Name:        "merge_branches",
		Description: "Merge one branch into another (requires write access)",
		Annotations: modules.AnnotateUpdate,
		InputSchema: modules.InputSchema{
			Type: "object",
			Properties: map[string]modules.Property{
				"owner":          ownerProp(),
				"repo":           repoProp(),
				"base":           {Type: "string", Description: "Branch to merge into"},
				"head":           {Type: "string", Description: "Branch to merge from"},
				"commit_message": {Type: "string", Description: "Merge commit message"},
			},
			Required: []string{"owner", "repo", "base", "head"},
		},
	},
	{
		Name:        "get_branch_protection",
		Description: "Get protection rules for a branch. Requires admin access to the repository.",
		Annotations: modules.AnnotateReadOnly,
		InputSchema: modules.InputSchema{
			Type: "object",
			Properties: map[string]modules.Property{
				"owner":  ownerProp(),
				"repo":   repoProp(),
				"branch": {Type: "string", Description: "Branch name"},
			},
			Required: []string{"owner", "repo", "branch"},
		},
	},
	{
		Name:        "compare_branches",
		Description: "Compare two branches and show how far head has diverged from base",
		Annotations: modules.AnnotateReadOnly,
		InputSchema: modules.InputSchema{
			Type: "object",
			Properties: map[string]modules.Property{
				"owner": ownerProp(),
				"repo":  repoProp(),
				"base":  {Type: "string", Description: "Base branch"},
				"head":  {Type: "string", Description: "Head branch"},
			},
			Required: []string{"owner", "repo", "base", "head"},
		},
	},
	// =========================================================================
	// Repository statistics
	// =========================================================================
	{
		Name:        "get_contributor_stats",
		Description: "Get top contributors with commit and line totals. May report status 'pending' while GitHub computes the aggregation; retry after a moment.",
		Annotations: modules.AnnotateReadOnly,
		InputSchema: modules.InputSchema{
			Type: "object",
			Properties: map[string]modules.Property{
				"owner": ownerProp(),
				"repo":  repoProp(),
				"limit": limitProp("Number of contributors (max 100)", 10),
			},
			Required: []string{"owner", "repo"},
		},
	},
	{
		Name:        "get_code_frequency",
		Description: "Get weekly additions and deletions. May report status 'pending' while GitHub computes the aggregation; retry after a moment.",
		Annotations: modules.AnnotateReadOnly,
		InputSchema: modules.InputSchema{
			Type: "object",
			Properties: map[string]modules.Property{
				"owner": ownerProp(),
				"repo":  repoProp(),
			},
			Required: []string{"owner", "repo"},
		},
	},
	{
		Name:        "get_commit_activity",
		Description: "Get the last year of weekly commit activity. May report status 'pending' while GitHub computes the aggregation; retry after a moment.",
		Annotations: modules.AnnotateReadOnly,
		InputSchema: modules.InputSchema{
			Type: "object",
			Properties: map[string]modules.Property{
				"owner": ownerProp(),
				"repo":  repoProp(),
			},
			Required: []string{"owner", "repo"},
		},
	},
	{
		Name:        "get_traffic_stats",
		Description: "Get repository traffic: views, clones, referrers, and popular paths. Requires push access to the repository.",
		Annotations: modules.AnnotateReadOnly,
		InputSchema: modules.InputSchema{
			Type: "object",
			Properties: map[string]modules.Property{
				"owner": ownerProp(),
				"repo":  repoProp(),
			},
			Required: []string{"owner", "repo"},
		},
	},
}
