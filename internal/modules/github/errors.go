package github

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	gh "github.com/google/go-github/v60/github"

	"githubmcp/server/internal/githubclient"
	"githubmcp/server/internal/modules"
)

// errorHints carries operation-specific remediation suggestions. The
// normalizer appends them after the generic ones for the matching class, so
// handlers only describe what the generic text cannot (e.g. "the branch may
// not exist" on a 404 that could mean repo or branch).
type errorHints struct {
	notFound  []string
	forbidden []string
	invalid   []string
	conflict  []string
}

// normalizeError maps any failure from the GitHub client into a classified
// ToolError. Already-classified errors pass through unchanged.
func normalizeError(err error, hints errorHints) *modules.ToolError {
	var toolErr *modules.ToolError
	if errors.As(err, &toolErr) {
		return toolErr
	}

	if errors.Is(err, githubclient.ErrMissingToken) {
		return modules.NewToolError(
			modules.KindConfiguration,
			"GitHub token is not configured",
			"Set the GITHUB_TOKEN environment variable (or add it to your .env file).",
			"Create a token at https://github.com/settings/tokens with the scopes your tools need.",
		)
	}

	var rateErr *gh.RateLimitError
	if errors.As(err, &rateErr) {
		te := modules.NewToolError(
			modules.KindPermissionDenied,
			"GitHub API rate limit exceeded",
			fmt.Sprintf("Wait until the limit resets at %s.", rateErr.Rate.Reset.Format(time.RFC3339)),
			"Authenticated requests have a much higher rate limit than anonymous ones.",
		)
		te.Envelope.Status = http.StatusForbidden
		return te
	}

	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		te := modules.NewToolError(
			modules.KindPermissionDenied,
			"GitHub flagged this traffic as abusive (secondary rate limit)",
			"Pause before retrying and reduce request concurrency.",
		)
		if abuseErr.RetryAfter != nil {
			te.Envelope.Suggestions = append(te.Envelope.Suggestions,
				fmt.Sprintf("Retry after %s.", abuseErr.RetryAfter.Round(time.Second)))
		}
		te.Envelope.Status = http.StatusForbidden
		return te
	}

	var respErr *gh.ErrorResponse
	if errors.As(err, &respErr) {
		return normalizeResponseError(respErr, hints)
	}

	te := modules.NewToolError(
		modules.KindUnexpected,
		fmt.Sprintf("unexpected error: %v", err),
		"Retry the request; if the failure persists, check GitHub's status page.",
	)
	return te
}

func normalizeResponseError(respErr *gh.ErrorResponse, hints errorHints) *modules.ToolError {
	status := 0
	if respErr.Response != nil {
		status = respErr.Response.StatusCode
	}

	var te *modules.ToolError
	switch status {
	case http.StatusNotFound:
		te = modules.NewToolError(
			modules.KindNotFound,
			"the requested resource was not found",
			"Check the owner and repository names for typos.",
			"Private repositories return 404 unless your token grants access.",
		)
		te.Envelope.Suggestions = append(te.Envelope.Suggestions, hints.notFound...)

	case http.StatusUnauthorized:
		te = modules.NewToolError(
			modules.KindPermissionDenied,
			"GitHub rejected the credentials",
			"Verify GITHUB_TOKEN is valid and has not expired or been revoked.",
		)

	case http.StatusForbidden:
		te = modules.NewToolError(
			modules.KindPermissionDenied,
			"access to the resource is forbidden",
			"Verify your token has the required scopes for this operation.",
		)
		te.Envelope.Suggestions = append(te.Envelope.Suggestions, hints.forbidden...)

	case http.StatusUnprocessableEntity:
		// GitHub sometimes answers a bare "Validation Failed" with no error
		// entries, so the generic suggestion comes first.
		te = modules.NewToolError(
			modules.KindValidation,
			"GitHub rejected the request parameters",
			"Check that every label, assignee, milestone and ref referenced by the request already exists on the repository.",
		)
		for _, e := range respErr.Errors {
			if msg := apiErrorDetail(e); msg != "" {
				te.Envelope.Suggestions = append(te.Envelope.Suggestions, msg)
			}
		}
		te.Envelope.Suggestions = append(te.Envelope.Suggestions, hints.invalid...)

	case http.StatusConflict:
		te = modules.NewToolError(
			modules.KindConflict,
			"the request conflicts with the current state of the resource",
			"Refresh the resource and retry with its current state.",
		)
		te.Envelope.Suggestions = append(te.Envelope.Suggestions, hints.conflict...)

	default:
		te = modules.NewToolError(
			modules.KindUnexpected,
			fmt.Sprintf("GitHub API error (HTTP %d)", status),
			"Retry the request; if the failure persists, check GitHub's status page.",
		)
	}

	if respErr.Message != "" {
		te.Envelope.Message = fmt.Sprintf("%s: %s", te.Envelope.Message, respErr.Message)
	}
	te.Envelope.Status = status
	if len(respErr.Errors) > 0 {
		te.Envelope.Details = respErr.Errors
	}
	return te
}

// apiErrorDetail renders one entry of a 422 error list as a human-readable
// suggestion line.
func apiErrorDetail(e gh.Error) string {
	switch {
	case e.Message != "":
		return e.Message
	case e.Field != "" && e.Code != "":
		return fmt.Sprintf("field %q: %s", e.Field, e.Code)
	case e.Field != "":
		return fmt.Sprintf("field %q is invalid", e.Field)
	default:
		return ""
	}
}
