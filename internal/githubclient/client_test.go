package githubclient

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/go-github/v60/github"
)

func TestClient_MissingToken(t *testing.T) {
	t.Setenv(TokenEnvVar, "")

	p := New()
	c, err := p.Client()
	if !errors.Is(err, ErrMissingToken) {
		t.Fatalf("err = %v, want ErrMissingToken", err)
	}
	if c != nil {
		t.Fatal("client must be nil on configuration failure")
	}

	// The failure is permanent for this provider, even after the variable
	// appears: the environment is only read once.
	t.Setenv(TokenEnvVar, "ghp_late")
	if _, err := p.Client(); !errors.Is(err, ErrMissingToken) {
		t.Fatalf("err after late env = %v, want ErrMissingToken", err)
	}
}

func TestClient_WithToken(t *testing.T) {
	t.Setenv(TokenEnvVar, "ghp_test")

	p := New()
	c, err := p.Client()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c == nil {
		t.Fatal("expected a client")
	}
}

func TestClient_BuildsOnce(t *testing.T) {
	var builds int
	p := &Provider{build: func() (*github.Client, error) {
		builds++
		return github.NewClient(nil), nil
	}}

	var wg sync.WaitGroup
	clients := make([]*github.Client, 8)
	for i := range clients {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			clients[i], _ = p.Client()
		}(i)
	}
	wg.Wait()

	if builds != 1 {
		t.Fatalf("build calls = %d, want 1", builds)
	}
	for _, c := range clients {
		if c != clients[0] {
			t.Fatal("all callers must share one client")
		}
	}
}

func TestNewWithClient(t *testing.T) {
	want := github.NewClient(nil)
	p := NewWithClient(want)
	got, err := p.Client()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != want {
		t.Fatal("provider must hand back the injected client")
	}
}
