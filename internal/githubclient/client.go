// Package githubclient owns the single authenticated go-github handle.
package githubclient

import (
	"context"
	"errors"
	"os"
	"sync"

	"github.com/google/go-github/v60/github"
	"golang.org/x/oauth2"
)

// TokenEnvVar is the environment variable holding the GitHub personal access
// token. Its absence is the sole configuration failure mode.
const TokenEnvVar = "GITHUB_TOKEN"

// ErrMissingToken is returned when no credential is present in the process
// environment at first use. The failure is permanent for the process
// lifetime: there is no refresh or re-read path.
var ErrMissingToken = errors.New("GITHUB_TOKEN environment variable is required")

// Provider constructs the process-wide GitHub client lazily, on first real
// operation, and memoizes the result. Construction is guarded by sync.Once,
// so concurrent first calls are safe and the handle is read-only afterwards.
type Provider struct {
	once   sync.Once
	client *github.Client
	err    error
	build  func() (*github.Client, error)
}

// New returns a Provider that reads GITHUB_TOKEN from the environment on
// first use.
func New() *Provider {
	return &Provider{build: fromEnv}
}

// NewWithClient returns a Provider backed by a pre-built client. Used by
// tests to point the adapter at a fake API server.
func NewWithClient(c *github.Client) *Provider {
	return &Provider{build: func() (*github.Client, error) { return c, nil }}
}

// Client returns the memoized GitHub client, constructing it on first call.
func (p *Provider) Client() (*github.Client, error) {
	p.once.Do(func() {
		p.client, p.err = p.build()
	})
	return p.client, p.err
}

func fromEnv() (*github.Client, error) {
	token := os.Getenv(TokenEnvVar)
	if token == "" {
		return nil, ErrMissingToken
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(context.Background(), ts)
	return github.NewClient(tc), nil
}
