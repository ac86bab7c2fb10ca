package modules

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
)

// stubModule counts handler invocations so tests can assert that rejected
// requests never reach execution.
type stubModule struct {
	name    string
	tools   []Tool
	calls   int
	execute func(ctx context.Context, tool string, params map[string]any) (string, error)
}

func (s *stubModule) Name() string        { return s.name }
func (s *stubModule) Description() string { return "stub" }
func (s *stubModule) APIVersion() string  { return "v0" }
func (s *stubModule) Tools() []Tool       { return s.tools }

func (s *stubModule) ExecuteTool(ctx context.Context, tool string, params map[string]any) (string, error) {
	s.calls++
	return s.execute(ctx, tool, params)
}

func newStub(name string, execute func(context.Context, string, map[string]any) (string, error)) *stubModule {
	return &stubModule{
		name: name,
		tools: []Tool{{
			Name: "echo",
			InputSchema: InputSchema{
				Type: "object",
				Properties: map[string]Property{
					"msg": {Type: "string"},
				},
				Required: []string{"msg"},
			},
		}},
		execute: execute,
	}
}

func decodeEnvelope(t *testing.T, result *ToolCallResult) ErrorEnvelope {
	t.Helper()
	if !result.IsError {
		t.Fatal("expected an error result")
	}
	if len(result.Content) != 1 {
		t.Fatalf("content blocks = %d, want 1", len(result.Content))
	}
	var env ErrorEnvelope
	if err := json.Unmarshal([]byte(result.Content[0].Text), &env); err != nil {
		t.Fatalf("error content is not a JSON envelope: %v\n%s", err, result.Content[0].Text)
	}
	return env
}

func TestRun_Success(t *testing.T) {
	stub := newStub("stub_ok", func(ctx context.Context, tool string, params map[string]any) (string, error) {
		return `{"echoed": true}`, nil
	})
	RegisterModule(stub)

	result := Run(context.Background(), "stub_ok", "echo", map[string]any{"msg": "hi"})
	if result.IsError {
		t.Fatalf("unexpected error result: %s", result.Content[0].Text)
	}
	if result.Content[0].Text != `{"echoed": true}` {
		t.Errorf("payload = %q", result.Content[0].Text)
	}
	if stub.calls != 1 {
		t.Errorf("handler calls = %d, want 1", stub.calls)
	}
}

func TestRun_UnknownModule(t *testing.T) {
	result := Run(context.Background(), "no_such_module", "echo", nil)
	env := decodeEnvelope(t, result)
	if env.Error != KindUnexpected {
		t.Errorf("kind = %q, want %q", env.Error, KindUnexpected)
	}
}

func TestRun_UnknownTool(t *testing.T) {
	stub := newStub("stub_unknown_tool", func(ctx context.Context, tool string, params map[string]any) (string, error) {
		return "", nil
	})
	RegisterModule(stub)

	result := Run(context.Background(), "stub_unknown_tool", "no_such_tool", nil)
	env := decodeEnvelope(t, result)
	if env.Error != KindUnexpected {
		t.Errorf("kind = %q, want %q", env.Error, KindUnexpected)
	}
	if stub.calls != 0 {
		t.Errorf("handler calls = %d, want 0", stub.calls)
	}
}

func TestRun_ValidationFailureShortCircuits(t *testing.T) {
	stub := newStub("stub_validation", func(ctx context.Context, tool string, params map[string]any) (string, error) {
		return "", nil
	})
	RegisterModule(stub)

	result := Run(context.Background(), "stub_validation", "echo", map[string]any{})
	env := decodeEnvelope(t, result)
	if env.Error != KindValidation {
		t.Errorf("kind = %q, want %q", env.Error, KindValidation)
	}
	if !strings.Contains(env.Message, "msg") {
		t.Errorf("message %q does not name the missing parameter", env.Message)
	}
	if stub.calls != 0 {
		t.Errorf("handler calls = %d, want 0 (validation must run before execution)", stub.calls)
	}
}

func TestRun_ToolErrorEnvelopePassesThrough(t *testing.T) {
	stub := newStub("stub_toolerr", func(ctx context.Context, tool string, params map[string]any) (string, error) {
		return "", NewToolError(KindNotFound, "repository not found", "Check the repository name.")
	})
	RegisterModule(stub)

	result := Run(context.Background(), "stub_toolerr", "echo", map[string]any{"msg": "x"})
	env := decodeEnvelope(t, result)
	if env.Error != KindNotFound {
		t.Errorf("kind = %q, want %q", env.Error, KindNotFound)
	}
	if env.Message != "repository not found" {
		t.Errorf("message = %q", env.Message)
	}
	if len(env.Suggestions) != 1 {
		t.Errorf("suggestions = %v", env.Suggestions)
	}
}

func TestRun_UnclassifiedErrorBecomesUnexpected(t *testing.T) {
	stub := newStub("stub_plain_err", func(ctx context.Context, tool string, params map[string]any) (string, error) {
		return "", context.Canceled
	})
	RegisterModule(stub)

	result := Run(context.Background(), "stub_plain_err", "echo", map[string]any{"msg": "x"})
	env := decodeEnvelope(t, result)
	if env.Error != KindUnexpected {
		t.Errorf("kind = %q, want %q", env.Error, KindUnexpected)
	}
}

func TestRun_PanicRecovered(t *testing.T) {
	stub := newStub("stub_panic", func(ctx context.Context, tool string, params map[string]any) (string, error) {
		panic("boom")
	})
	RegisterModule(stub)

	result := Run(context.Background(), "stub_panic", "echo", map[string]any{"msg": "x"})
	env := decodeEnvelope(t, result)
	if env.Error != KindUnexpected {
		t.Errorf("kind = %q, want %q", env.Error, KindUnexpected)
	}
	if !strings.Contains(env.Message, "boom") {
		t.Errorf("message %q does not carry the panic value", env.Message)
	}
}

func TestRun_AppliesDefaultsBeforeExecution(t *testing.T) {
	var seen map[string]any
	stub := &stubModule{
		name: "stub_defaults",
		tools: []Tool{{
			Name: "echo",
			InputSchema: InputSchema{
				Type: "object",
				Properties: map[string]Property{
					"msg":   {Type: "string"},
					"state": {Type: "string", Default: "open"},
				},
				Required: []string{"msg"},
			},
		}},
		execute: func(ctx context.Context, tool string, params map[string]any) (string, error) {
			seen = params
			return "{}", nil
		},
	}
	RegisterModule(stub)

	result := Run(context.Background(), "stub_defaults", "echo", map[string]any{"msg": "hi"})
	if result.IsError {
		t.Fatalf("unexpected error: %s", result.Content[0].Text)
	}
	if seen["state"] != "open" {
		t.Errorf("state = %v, want default %q", seen["state"], "open")
	}
}
