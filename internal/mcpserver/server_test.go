package mcpserver

import (
	"context"
	"encoding/json"
	"testing"

	mcplib "github.com/mark3labs/mcp-go/mcp"

	"githubmcp/server/internal/modules"
)

type fakeModule struct{}

func (fakeModule) Name() string        { return "fake" }
func (fakeModule) Description() string { return "fake module" }
func (fakeModule) APIVersion() string  { return "v0" }

func (fakeModule) Tools() []modules.Tool {
	return []modules.Tool{{
		Name:        "fake_lookup",
		Description: "Look something up",
		Annotations: modules.AnnotateReadOnly,
		InputSchema: modules.InputSchema{
			Type: "object",
			Properties: map[string]modules.Property{
				"key": {Type: "string", Description: "Lookup key"},
			},
			Required: []string{"key"},
		},
	}}
}

func (fakeModule) ExecuteTool(ctx context.Context, name string, params map[string]any) (string, error) {
	return `{"found": "` + params["key"].(string) + `"}`, nil
}

func TestConvertTool_CarriesSchemaAndAnnotations(t *testing.T) {
	lo, hi := 1.0, 100.0
	tool := modules.Tool{
		Name:        "sample",
		Description: "desc",
		Annotations: modules.AnnotateDelete,
		InputSchema: modules.InputSchema{
			Type: "object",
			Properties: map[string]modules.Property{
				"state": {Type: "string", Enum: []string{"open", "closed"}, Default: "open"},
				"limit": {Type: "number", Minimum: &lo, Maximum: &hi},
			},
			Required: []string{"state"},
		},
	}

	got, err := convertTool(tool)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "sample" || got.Description != "desc" {
		t.Errorf("identity = %q / %q", got.Name, got.Description)
	}
	if got.Annotations.DestructiveHint == nil || !*got.Annotations.DestructiveHint {
		t.Error("destructive hint was dropped")
	}

	var schema struct {
		Type       string `json:"type"`
		Properties map[string]struct {
			Enum    []string `json:"enum"`
			Default any      `json:"default"`
			Minimum *float64 `json:"minimum"`
			Maximum *float64 `json:"maximum"`
		} `json:"properties"`
		Required []string `json:"required"`
	}
	if err := json.Unmarshal(got.RawInputSchema, &schema); err != nil {
		t.Fatalf("raw schema is not valid JSON: %v", err)
	}
	if schema.Type != "object" || len(schema.Required) != 1 {
		t.Errorf("schema shape = %+v", schema)
	}
	if got := schema.Properties["state"].Enum; len(got) != 2 {
		t.Errorf("enum = %v", got)
	}
	if schema.Properties["state"].Default != "open" {
		t.Errorf("default = %v", schema.Properties["state"].Default)
	}
	if schema.Properties["limit"].Minimum == nil || *schema.Properties["limit"].Minimum != 1 {
		t.Error("minimum constraint was dropped")
	}
	if schema.Properties["limit"].Maximum == nil || *schema.Properties["limit"].Maximum != 100 {
		t.Error("maximum constraint was dropped")
	}
}

func TestCallHandler_RoutesThroughDispatcher(t *testing.T) {
	modules.RegisterModule(fakeModule{})

	handler := callHandler("fake", "fake_lookup")

	var req mcplib.CallToolRequest
	req.Params.Name = "fake_lookup"
	req.Params.Arguments = map[string]any{"key": "abc"}

	result, err := handler(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected error result: %+v", result)
	}
	text, ok := result.Content[0].(mcplib.TextContent)
	if !ok {
		t.Fatalf("content[0] is %T, want TextContent", result.Content[0])
	}
	if text.Text != `{"found": "abc"}` {
		t.Errorf("payload = %q", text.Text)
	}
}

// Validation failures surface as IsError tool results, never as protocol
// errors.
func TestCallHandler_ValidationFailureIsToolResult(t *testing.T) {
	modules.RegisterModule(fakeModule{})

	handler := callHandler("fake", "fake_lookup")

	var req mcplib.CallToolRequest
	req.Params.Name = "fake_lookup"
	req.Params.Arguments = map[string]any{}

	result, err := handler(context.Background(), req)
	if err != nil {
		t.Fatalf("validation failures must not be protocol errors: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected IsError result")
	}
	text := result.Content[0].(mcplib.TextContent)
	var env modules.ErrorEnvelope
	if err := json.Unmarshal([]byte(text.Text), &env); err != nil {
		t.Fatalf("error content is not a JSON envelope: %v", err)
	}
	if env.Error != modules.KindValidation {
		t.Errorf("kind = %q, want %q", env.Error, modules.KindValidation)
	}
}

func TestNew_RegistersModuleTools(t *testing.T) {
	modules.RegisterModule(fakeModule{})

	srv, err := New()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if srv.mcp == nil {
		t.Fatal("no MCP server constructed")
	}
}
