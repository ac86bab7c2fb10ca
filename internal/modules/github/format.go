package github

import (
	"strings"
	"time"

	gh "github.com/google/go-github/v60/github"

	"githubmcp/server/internal/modules"
)

// =============================================================================
// Payload shapes
// =============================================================================
//
// Every tool returns one of these structs serialized as indented JSON.
// Pointer fields render as explicit nulls when GitHub has no value, so
// callers can distinguish "no description" from "empty description".

type repoSummary struct {
	Name        string  `json:"name"`
	FullName    string  `json:"full_name"`
	Description *string `json:"description"`
	Stars       int     `json:"stars"`
	Forks       int     `json:"forks"`
	Language    *string `json:"language"`
	URL         string  `json:"url"`
	UpdatedAt   string  `json:"updated_at"`
}

type searchResult struct {
	TotalCount   int           `json:"total_count"`
	Repositories []repoSummary `json:"repositories"`
}

type repoInfo struct {
	Name          string   `json:"name"`
	FullName      string   `json:"full_name"`
	Description   *string  `json:"description"`
	Stars         int      `json:"stars"`
	Forks         int      `json:"forks"`
	Watchers      int      `json:"watchers"`
	Language      *string  `json:"language"`
	OpenIssues    int      `json:"open_issues"`
	DefaultBranch string   `json:"default_branch"`
	CreatedAt     string   `json:"created_at"`
	UpdatedAt     string   `json:"updated_at"`
	Homepage      *string  `json:"homepage"`
	Topics        []string `json:"topics"`
	License       *string  `json:"license"`
	URL           string   `json:"url"`
}

type fileContents struct {
	Path     string `json:"path"`
	Branch   string `json:"branch"`
	Size     int    `json:"size"`
	Content  string `json:"content"`
	URL      string `json:"url"`
	Fallback bool   `json:"used_master_fallback,omitempty"`
}

type languageShare struct {
	Language string  `json:"language"`
	Bytes    int     `json:"bytes"`
	Percent  float64 `json:"percent"`
}

type languageBreakdown struct {
	TotalBytes int             `json:"total_bytes"`
	Languages  []languageShare `json:"languages"`
}

type communityHealth struct {
	HealthPercentage      int     `json:"health_percentage"`
	Description           *string `json:"description"`
	Documentation         *string `json:"documentation"`
	HasReadme             bool    `json:"has_readme"`
	HasLicense            bool    `json:"has_license"`
	HasContributing       bool    `json:"has_contributing"`
	HasCodeOfConduct      bool    `json:"has_code_of_conduct"`
	HasIssueTemplate      bool    `json:"has_issue_template"`
	HasPRTemplate         bool    `json:"has_pull_request_template"`
	ContentReportsEnabled bool    `json:"content_reports_enabled"`
	UpdatedAt             string  `json:"updated_at"`
}

type userInfo struct {
	Login       string  `json:"login"`
	Name        *string `json:"name"`
	Bio         *string `json:"bio"`
	Company     *string `json:"company"`
	Location    *string `json:"location"`
	Email       *string `json:"email"`
	PublicRepos int     `json:"public_repos"`
	Followers   int     `json:"followers"`
	Following   int     `json:"following"`
	CreatedAt   string  `json:"created_at"`
	URL         string  `json:"url"`
}

type issueSummary struct {
	Number    int      `json:"number"`
	Title     string   `json:"title"`
	State     string   `json:"state"`
	CreatedAt string   `json:"created_at"`
	UpdatedAt string   `json:"updated_at"`
	User      string   `json:"user"`
	Labels    []string `json:"labels"`
	Comments  int      `json:"comments"`
	URL       string   `json:"url"`
}

type issueList struct {
	State  string         `json:"state"`
	Count  int            `json:"count"`
	Issues []issueSummary `json:"issues"`
}

type issueRef struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
	State  string `json:"state"`
	URL    string `json:"url"`
}

type commentRef struct {
	ID        int64  `json:"id"`
	URL       string `json:"url"`
	CreatedAt string `json:"created_at"`
}

type prSummary struct {
	Number    int    `json:"number"`
	Title     string `json:"title"`
	State     string `json:"state"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
	User      string `json:"user"`
	Merged    bool   `json:"merged"`
	URL       string `json:"url"`
}

type prList struct {
	State        string      `json:"state"`
	Count        int         `json:"count"`
	PullRequests []prSummary `json:"pull_requests"`
}

type prRef struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
	State  string `json:"state"`
	Draft  bool   `json:"draft,omitempty"`
	Merged bool   `json:"merged"`
	URL    string `json:"url"`
}

type commitSummary struct {
	SHA     string `json:"sha"`
	Message string `json:"message"`
	Author  string `json:"author"`
	Date    string `json:"date"`
	URL     string `json:"url"`
}

type commitList struct {
	Count   int             `json:"count"`
	Commits []commitSummary `json:"commits"`
}

type commitFileChange struct {
	Filename  string  `json:"filename"`
	Status    string  `json:"status"`
	Additions int     `json:"additions"`
	Deletions int     `json:"deletions"`
	Changes   int     `json:"changes"`
	Patch     *string `json:"patch,omitempty"`
}

type commitDetail struct {
	SHA          string             `json:"sha"`
	Message      string             `json:"message"`
	Author       string             `json:"author"`
	AuthorEmail  string             `json:"author_email"`
	Date         string             `json:"date"`
	Additions    int                `json:"additions"`
	Deletions    int                `json:"deletions"`
	TotalChanges int                `json:"total_changes"`
	Files        []commitFileChange `json:"files"`
	URL          string             `json:"url"`
}

type comparison struct {
	Base         string          `json:"base"`
	Head         string          `json:"head"`
	Status       string          `json:"status"`
	AheadBy      int             `json:"ahead_by"`
	BehindBy     int             `json:"behind_by"`
	TotalCommits int             `json:"total_commits"`
	FilesChanged int             `json:"files_changed"`
	Commits      []commitSummary `json:"commits"`
}

type commitStats struct {
	Days            int            `json:"days"`
	Branch          string         `json:"branch"`
	CommitsAnalyzed int            `json:"commits_analyzed"`
	ScanCapped      bool           `json:"scan_capped"`
	ByDay           map[string]int `json:"by_day"`
	ByAuthor        map[string]int `json:"by_author"`
}

type branchSummary struct {
	Name      string `json:"name"`
	SHA       string `json:"sha"`
	Protected bool   `json:"protected"`
}

type branchList struct {
	Count    int             `json:"count"`
	Branches []branchSummary `json:"branches"`
}

type branchCreated struct {
	Branch string `json:"branch"`
	From   string `json:"from"`
	SHA    string `json:"sha"`
}

type branchDeleted struct {
	Branch  string `json:"branch"`
	Deleted bool   `json:"deleted"`
}

type mergeResult struct {
	Merged  bool   `json:"merged"`
	SHA     string `json:"sha,omitempty"`
	Message string `json:"message"`
}

type protectionRules struct {
	Branch                  string   `json:"branch"`
	Protected               bool     `json:"protected"`
	RequiredReviews         int      `json:"required_approving_reviews"`
	RequireCodeOwnerReviews bool     `json:"require_code_owner_reviews"`
	DismissStaleReviews     bool     `json:"dismiss_stale_reviews"`
	RequiredStatusChecks    []string `json:"required_status_checks"`
	StrictStatusChecks      bool     `json:"strict_status_checks"`
	EnforceAdmins           bool     `json:"enforce_admins"`
}

type contributorStat struct {
	Login     string `json:"login"`
	Commits   int    `json:"commits"`
	Additions int    `json:"additions"`
	Deletions int    `json:"deletions"`
}

type contributorStats struct {
	Count        int               `json:"count"`
	Contributors []contributorStat `json:"contributors"`
}

type weeklyFrequency struct {
	Week      string `json:"week"`
	Additions int    `json:"additions"`
	Deletions int    `json:"deletions"`
}

type codeFrequency struct {
	Weeks []weeklyFrequency `json:"weeks"`
}

type weeklyActivity struct {
	Week  string `json:"week"`
	Total int    `json:"total"`
	ByDay []int  `json:"by_day"`
}

type commitActivity struct {
	TotalLastYear int              `json:"total_last_year"`
	Weeks         []weeklyActivity `json:"weeks"`
}

type trafficCount struct {
	Count   int `json:"count"`
	Uniques int `json:"uniques"`
}

type trafficReferrer struct {
	Referrer string `json:"referrer"`
	Count    int    `json:"count"`
	Uniques  int    `json:"uniques"`
}

type trafficPath struct {
	Path    string `json:"path"`
	Title   string `json:"title"`
	Count   int    `json:"count"`
	Uniques int    `json:"uniques"`
}

type trafficStats struct {
	Views        trafficCount      `json:"views_last_14_days"`
	Clones       trafficCount      `json:"clones_last_14_days"`
	TopReferrers []trafficReferrer `json:"top_referrers"`
	PopularPaths []trafficPath     `json:"popular_paths"`
}

// pendingStatus is returned in place of statistics GitHub has not finished
// aggregating yet. It is a successful result, not an error.
type pendingStatus struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func newPendingStatus() pendingStatus {
	return pendingStatus{
		Status:  modules.StatusPending,
		Message: "GitHub is still computing these statistics; retry in a few seconds",
	}
}

// =============================================================================
// Converters
// =============================================================================

func formatTimestamp(ts *gh.Timestamp) string {
	if ts == nil || ts.IsZero() {
		return ""
	}
	return ts.UTC().Format(time.RFC3339)
}

func formatDay(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

func newRepoSummary(r *gh.Repository) repoSummary {
	return repoSummary{
		Name:        r.GetName(),
		FullName:    r.GetFullName(),
		Description: r.Description,
		Stars:       r.GetStargazersCount(),
		Forks:       r.GetForksCount(),
		Language:    r.Language,
		URL:         r.GetHTMLURL(),
		UpdatedAt:   formatTimestamp(r.UpdatedAt),
	}
}

func newRepoInfo(r *gh.Repository) repoInfo {
	info := repoInfo{
		Name:          r.GetName(),
		FullName:      r.GetFullName(),
		Description:   r.Description,
		Stars:         r.GetStargazersCount(),
		Forks:         r.GetForksCount(),
		Watchers:      r.GetSubscribersCount(),
		Language:      r.Language,
		OpenIssues:    r.GetOpenIssuesCount(),
		DefaultBranch: r.GetDefaultBranch(),
		CreatedAt:     formatTimestamp(r.CreatedAt),
		UpdatedAt:     formatTimestamp(r.UpdatedAt),
		Homepage:      r.Homepage,
		Topics:        r.Topics,
		URL:           r.GetHTMLURL(),
	}
	if info.Topics == nil {
		info.Topics = []string{}
	}
	if lic := r.GetLicense(); lic != nil {
		info.License = lic.Name
	}
	return info
}

func newUserInfo(u *gh.User) userInfo {
	return userInfo{
		Login:       u.GetLogin(),
		Name:        u.Name,
		Bio:         u.Bio,
		Company:     u.Company,
		Location:    u.Location,
		Email:       u.Email,
		PublicRepos: u.GetPublicRepos(),
		Followers:   u.GetFollowers(),
		Following:   u.GetFollowing(),
		CreatedAt:   formatTimestamp(u.CreatedAt),
		URL:         u.GetHTMLURL(),
	}
}

func newIssueSummary(issue *gh.Issue) issueSummary {
	labels := make([]string, 0, len(issue.Labels))
	for _, l := range issue.Labels {
		labels = append(labels, l.GetName())
	}
	return issueSummary{
		Number:    issue.GetNumber(),
		Title:     issue.GetTitle(),
		State:     issue.GetState(),
		CreatedAt: formatTimestamp(issue.CreatedAt),
		UpdatedAt: formatTimestamp(issue.UpdatedAt),
		User:      issue.GetUser().GetLogin(),
		Labels:    labels,
		Comments:  issue.GetComments(),
		URL:       issue.GetHTMLURL(),
	}
}

func newIssueRef(issue *gh.Issue) issueRef {
	return issueRef{
		Number: issue.GetNumber(),
		Title:  issue.GetTitle(),
		State:  issue.GetState(),
		URL:    issue.GetHTMLURL(),
	}
}

func newPRSummary(pr *gh.PullRequest) prSummary {
	return prSummary{
		Number:    pr.GetNumber(),
		Title:     pr.GetTitle(),
		State:     pr.GetState(),
		CreatedAt: formatTimestamp(pr.CreatedAt),
		UpdatedAt: formatTimestamp(pr.UpdatedAt),
		User:      pr.GetUser().GetLogin(),
		Merged:    pr.GetMerged() || pr.MergedAt != nil,
		URL:       pr.GetHTMLURL(),
	}
}

func newPRRef(pr *gh.PullRequest) prRef {
	return prRef{
		Number: pr.GetNumber(),
		Title:  pr.GetTitle(),
		State:  pr.GetState(),
		Draft:  pr.GetDraft(),
		Merged: pr.GetMerged(),
		URL:    pr.GetHTMLURL(),
	}
}

func newCommitSummary(rc *gh.RepositoryCommit) commitSummary {
	return commitSummary{
		SHA:     rc.GetSHA(),
		Message: firstLine(rc.GetCommit().GetMessage()),
		Author:  commitAuthorName(rc),
		Date:    formatTimestamp(rc.GetCommit().GetAuthor().Date),
		URL:     rc.GetHTMLURL(),
	}
}

func newCommitDetail(rc *gh.RepositoryCommit, includePatch bool) commitDetail {
	detail := commitDetail{
		SHA:          rc.GetSHA(),
		Message:      rc.GetCommit().GetMessage(),
		Author:       commitAuthorName(rc),
		AuthorEmail:  rc.GetCommit().GetAuthor().GetEmail(),
		Date:         formatTimestamp(rc.GetCommit().GetAuthor().Date),
		Additions:    rc.GetStats().GetAdditions(),
		Deletions:    rc.GetStats().GetDeletions(),
		TotalChanges: rc.GetStats().GetTotal(),
		Files:        make([]commitFileChange, 0, len(rc.Files)),
		URL:          rc.GetHTMLURL(),
	}
	for _, f := range rc.Files {
		change := commitFileChange{
			Filename:  f.GetFilename(),
			Status:    f.GetStatus(),
			Additions: f.GetAdditions(),
			Deletions: f.GetDeletions(),
			Changes:   f.GetChanges(),
		}
		if includePatch {
			change.Patch = f.Patch
		}
		detail.Files = append(detail.Files, change)
	}
	return detail
}

func newComparison(base, head string, cmp *gh.CommitsComparison) comparison {
	out := comparison{
		Base:         base,
		Head:         head,
		Status:       cmp.GetStatus(),
		AheadBy:      cmp.GetAheadBy(),
		BehindBy:     cmp.GetBehindBy(),
		TotalCommits: cmp.GetTotalCommits(),
		FilesChanged: len(cmp.Files),
		Commits:      make([]commitSummary, 0, len(cmp.Commits)),
	}
	for _, rc := range cmp.Commits {
		out.Commits = append(out.Commits, newCommitSummary(rc))
	}
	return out
}

func newBranchSummary(b *gh.Branch) branchSummary {
	return branchSummary{
		Name:      b.GetName(),
		SHA:       b.GetCommit().GetSHA(),
		Protected: b.GetProtected(),
	}
}

// commitAuthorName prefers the GitHub login, falling back to the recorded git
// author name for commits by unlinked addresses.
func commitAuthorName(rc *gh.RepositoryCommit) string {
	if login := rc.GetAuthor().GetLogin(); login != "" {
		return login
	}
	return rc.GetCommit().GetAuthor().GetName()
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
