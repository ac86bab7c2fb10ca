package github

import (
	"context"
	"fmt"

	gh "github.com/google/go-github/v60/github"

	"githubmcp/server/internal/githubclient"
	"githubmcp/server/internal/modules"
)

const githubAPIVersion = "2022-11-28"

// defaultCommitScanLimit bounds how many commits get_commit_stats walks.
// Larger repositories report "scan_capped": true instead of silently
// truncating totals.
const defaultCommitScanLimit = 500

// Module implements the modules.Module interface for the GitHub API.
type Module struct {
	provider        *githubclient.Provider
	commitScanLimit int
	handlers        map[string]toolHandler
}

// Option configures a Module.
type Option func(*Module)

// WithCommitScanLimit overrides the commit-statistics scan ceiling.
func WithCommitScanLimit(n int) Option {
	return func(m *Module) {
		if n > 0 {
			m.commitScanLimit = n
		}
	}
}

// NewModule creates the GitHub module backed by the given client provider.
func NewModule(provider *githubclient.Provider, opts ...Option) *Module {
	m := &Module{
		provider:        provider,
		commitScanLimit: defaultCommitScanLimit,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.handlers = map[string]toolHandler{
		// Repository discovery
		"search_repositories":    m.searchRepositories,
		"get_repository_info":    m.getRepositoryInfo,
		"get_file_contents":      m.getFileContents,
		"get_language_breakdown": m.getLanguageBreakdown,
		"get_community_health":   m.getCommunityHealth,
		// User
		"get_user_info": m.getUserInfo,
		// Issues
		"list_issues":       m.listIssues,
		"create_issue":      m.createIssue,
		"update_issue":      m.updateIssue,
		"add_issue_comment": m.addIssueComment,
		"close_issue":       m.closeIssue,
		"reopen_issue":      m.reopenIssue,
		// Pull requests
		"list_pull_requests":  m.listPullRequests,
		"create_pull_request": m.createPullRequest,
		"update_pull_request": m.updatePullRequest,
		"add_pr_comment":      m.addPRComment,
		"close_pull_request":  m.closePullRequest,
		"reopen_pull_request": m.reopenPullRequest,
		// Commit history
		"list_commits":       m.listCommits,
		"get_commit_details": m.getCommitDetails,
		"search_commits":     m.searchCommits,
		"compare_commits":    m.compareCommits,
		"get_commit_stats":   m.getCommitStats,
		// Branch management
		"list_branches":         m.listBranches,
		"create_branch":         m.createBranch,
		"delete_branch":         m.deleteBranch,
		"merge_branches":        m.mergeBranches,
		"get_branch_protection": m.getBranchProtection,
		"compare_branches":      m.compareBranches,
		// Repository statistics
		"get_contributor_stats": m.getContributorStats,
		"get_code_frequency":    m.getCodeFrequency,
		"get_commit_activity":   m.getCommitActivity,
		"get_traffic_stats":     m.getTrafficStats,
	}
	return m
}

// Name returns the module name
func (m *Module) Name() string {
	return "github"
}

// Description returns the module description
func (m *Module) Description() string {
	return "GitHub API - repository discovery, issues, pull requests, commits, branches, and statistics"
}

// APIVersion returns the GitHub API version
func (m *Module) APIVersion() string {
	return githubAPIVersion
}

// Tools returns all available tools in stable registration order.
func (m *Module) Tools() []modules.Tool {
	return toolDefinitions
}

// ExecuteTool executes a tool by name and returns the JSON payload.
func (m *Module) ExecuteTool(ctx context.Context, name string, params map[string]any) (string, error) {
	handler, ok := m.handlers[name]
	if !ok {
		return "", fmt.Errorf("unknown tool: %s", name)
	}
	if err := rejectPlaceholders(params); err != nil {
		return "", err
	}
	return handler(ctx, params)
}

type toolHandler func(ctx context.Context, params map[string]any) (string, error)

// client returns the shared GitHub handle, classifying a missing credential
// before any remote call is attempted.
func (m *Module) client() (*gh.Client, error) {
	c, err := m.provider.Client()
	if err != nil {
		return nil, normalizeError(err, errorHints{})
	}
	return c, nil
}

// =============================================================================
// Placeholder guard
// =============================================================================

// Placeholder values that agents sometimes copy verbatim from setup
// documentation. Requests carrying them never reach the remote system.
var placeholderValues = map[string]bool{
	"YOUR_USERNAME": true,
	"YOUR_REPO":     true,
}

func rejectPlaceholders(params map[string]any) error {
	for _, key := range []string{"owner", "repo", "username"} {
		s, ok := params[key].(string)
		if !ok || !placeholderValues[s] {
			continue
		}
		return modules.NewToolError(
			modules.KindValidation,
			fmt.Sprintf("invalid %s: %q is a documentation placeholder, not a real value", key, s),
			fmt.Sprintf("Replace %q with an actual GitHub %s.", s, key),
			"Example: owner=\"octocat\", repo=\"hello-world\".",
		)
	}
	return nil
}

// =============================================================================
// Parameter helpers
// =============================================================================

var toJSON = modules.ToJSON

var toStringSlice = modules.ToStringSlice

func strParam(params map[string]any, key string) string {
	s, _ := params[key].(string)
	return s
}

func intParam(params map[string]any, key string, defaultVal int) int {
	if v, ok := params[key].(float64); ok {
		return int(v)
	}
	return defaultVal
}

func boolParam(params map[string]any, key string) bool {
	b, _ := params[key].(bool)
	return b
}
