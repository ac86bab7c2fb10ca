package github

import (
	"context"
	"fmt"
	"sort"

	gh "github.com/google/go-github/v60/github"

	"githubmcp/server/internal/modules"
)

// =============================================================================
// Repository discovery handlers
// =============================================================================

func (m *Module) searchRepositories(ctx context.Context, params map[string]any) (string, error) {
	client, err := m.client()
	if err != nil {
		return "", err
	}
	query := strParam(params, "query")
	limit := intParam(params, "limit", 10)
	opts := &gh.SearchOptions{
		Sort:        strParam(params, "sort"),
		Order:       "desc",
		ListOptions: gh.ListOptions{PerPage: limit},
	}
	result, _, err := client.Search.Repositories(ctx, query, opts)
	if err != nil {
		return "", normalizeError(err, errorHints{
			invalid: []string{"Check the search query syntax, e.g. 'language:go stars:>1000'."},
		})
	}
	repos := result.Repositories
	if len(repos) > limit {
		repos = repos[:limit]
	}
	out := searchResult{
		TotalCount:   result.GetTotal(),
		Repositories: make([]repoSummary, 0, len(repos)),
	}
	for _, r := range repos {
		out.Repositories = append(out.Repositories, newRepoSummary(r))
	}
	return toJSON(out)
}

func (m *Module) getRepositoryInfo(ctx context.Context, params map[string]any) (string, error) {
	client, err := m.client()
	if err != nil {
		return "", err
	}
	owner, repo := strParam(params, "owner"), strParam(params, "repo")
	r, _, err := client.Repositories.Get(ctx, owner, repo)
	if err != nil {
		return "", normalizeError(err, errorHints{
			notFound: []string{fmt.Sprintf("Repository %s/%s may not exist.", owner, repo)},
		})
	}
	return toJSON(newRepoInfo(r))
}

// getFileContents fetches a file, retrying once on the "master" branch when
// the requested branch fails. Historical clients defaulting to "main" still
// resolve files in older repositories that never renamed their default
// branch. The retry happens at most once and never when "master" was asked
// for in the first place.
func (m *Module) getFileContents(ctx context.Context, params map[string]any) (string, error) {
	client, err := m.client()
	if err != nil {
		return "", err
	}
	owner, repo := strParam(params, "owner"), strParam(params, "repo")
	path := strParam(params, "path")
	branch := strParam(params, "branch")

	file, firstErr := fetchFile(ctx, client, owner, repo, path, branch)
	usedFallback := false
	if firstErr != nil && branch != "master" {
		if retried, retryErr := fetchFile(ctx, client, owner, repo, path, "master"); retryErr == nil {
			file = retried
			branch = "master"
			usedFallback = true
			firstErr = nil
		}
	}
	if firstErr != nil {
		return "", normalizeError(firstErr, errorHints{
			notFound: []string{
				fmt.Sprintf("File %q or branch %q may not exist in %s/%s.", path, branch, owner, repo),
			},
		})
	}

	content, err := file.GetContent()
	if err != nil {
		return "", normalizeError(fmt.Errorf("decoding %s: %w", path, err), errorHints{})
	}
	return toJSON(fileContents{
		Path:     file.GetPath(),
		Branch:   branch,
		Size:     file.GetSize(),
		Content:  content,
		URL:      file.GetHTMLURL(),
		Fallback: usedFallback,
	})
}

func fetchFile(ctx context.Context, client *gh.Client, owner, repo, path, ref string) (*gh.RepositoryContent, error) {
	file, _, _, err := client.Repositories.GetContents(ctx, owner, repo, path,
		&gh.RepositoryContentGetOptions{Ref: ref})
	if err != nil {
		return nil, err
	}
	if file == nil {
		return nil, modules.NewToolError(
			modules.KindValidation,
			fmt.Sprintf("%q is a directory, not a file", path),
			"Pass the path of a single file within the directory.",
		)
	}
	return file, nil
}

func (m *Module) getLanguageBreakdown(ctx context.Context, params map[string]any) (string, error) {
	client, err := m.client()
	if err != nil {
		return "", err
	}
	owner, repo := strParam(params, "owner"), strParam(params, "repo")
	languages, _, err := client.Repositories.ListLanguages(ctx, owner, repo)
	if err != nil {
		return "", normalizeError(err, errorHints{})
	}

	total := 0
	for _, bytes := range languages {
		total += bytes
	}
	out := languageBreakdown{
		TotalBytes: total,
		Languages:  make([]languageShare, 0, len(languages)),
	}
	for name, bytes := range languages {
		share := languageShare{Language: name, Bytes: bytes}
		if total > 0 {
			share.Percent = round1(float64(bytes) / float64(total) * 100)
		}
		out.Languages = append(out.Languages, share)
	}
	// Largest first, name as tie-breaker for a stable payload.
	sort.Slice(out.Languages, func(i, j int) bool {
		if out.Languages[i].Bytes != out.Languages[j].Bytes {
			return out.Languages[i].Bytes > out.Languages[j].Bytes
		}
		return out.Languages[i].Language < out.Languages[j].Language
	})
	return toJSON(out)
}

func round1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}

func (m *Module) getCommunityHealth(ctx context.Context, params map[string]any) (string, error) {
	client, err := m.client()
	if err != nil {
		return "", err
	}
	owner, repo := strParam(params, "owner"), strParam(params, "repo")
	metrics, _, err := client.Repositories.GetCommunityHealthMetrics(ctx, owner, repo)
	if err != nil {
		return "", normalizeError(err, errorHints{})
	}

	out := communityHealth{
		HealthPercentage:      metrics.GetHealthPercentage(),
		Description:           metrics.Description,
		Documentation:         metrics.Documentation,
		ContentReportsEnabled: metrics.GetContentReportsEnabled(),
		UpdatedAt:             formatTimestamp(metrics.UpdatedAt),
	}
	if files := metrics.GetFiles(); files != nil {
		out.HasReadme = files.GetReadme() != nil
		out.HasLicense = files.GetLicense() != nil
		out.HasContributing = files.GetContributing() != nil
		out.HasCodeOfConduct = files.GetCodeOfConduct() != nil
		out.HasIssueTemplate = files.GetIssueTemplate() != nil
		out.HasPRTemplate = files.GetPullRequestTemplate() != nil
	}
	return toJSON(out)
}

func (m *Module) getUserInfo(ctx context.Context, params map[string]any) (string, error) {
	client, err := m.client()
	if err != nil {
		return "", err
	}
	username := strParam(params, "username")
	user, _, err := client.Users.Get(ctx, username)
	if err != nil {
		return "", normalizeError(err, errorHints{
			notFound: []string{fmt.Sprintf("User %q may not exist.", username)},
		})
	}
	return toJSON(newUserInfo(user))
}
