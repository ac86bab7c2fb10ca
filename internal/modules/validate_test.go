package modules

import (
	"testing"
)

func TestValidateParams_RequiredFields(t *testing.T) {
	schema := InputSchema{
		Type: "object",
		Properties: map[string]Property{
			"owner": {Type: "string", Description: "Repository owner"},
			"repo":  {Type: "string", Description: "Repository name"},
		},
		Required: []string{"owner", "repo"},
	}

	tests := []struct {
		name    string
		params  map[string]any
		wantErr bool
		errMsg  string
	}{
		{
			name:    "all required present",
			params:  map[string]any{"owner": "octocat", "repo": "hello-world"},
			wantErr: false,
		},
		{
			name:    "missing one required",
			params:  map[string]any{"owner": "octocat"},
			wantErr: true,
			errMsg:  "missing required parameter(s): repo",
		},
		{
			name:    "missing all required",
			params:  map[string]any{},
			wantErr: true,
			errMsg:  "missing required parameter(s): owner, repo",
		},
		{
			name:    "nil params",
			params:  nil,
			wantErr: true,
			errMsg:  "missing required parameter(s): owner, repo",
		},
		{
			name:    "empty string for required field",
			params:  map[string]any{"owner": "", "repo": "hello-world"},
			wantErr: true,
			errMsg:  "missing required parameter(s): owner",
		},
		{
			name:    "nil value for required field",
			params:  map[string]any{"owner": nil, "repo": "hello-world"},
			wantErr: true,
			errMsg:  "missing required parameter(s): owner",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateParams(schema, tt.params)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				if err.Error() != tt.errMsg {
					t.Errorf("error = %q, want %q", err.Error(), tt.errMsg)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateParams_TypeChecking(t *testing.T) {
	schema := InputSchema{
		Type: "object",
		Properties: map[string]Property{
			"query":  {Type: "string"},
			"limit":  {Type: "number"},
			"draft":  {Type: "boolean"},
			"labels": {Type: "array", Items: &Property{Type: "string"}},
		},
		Required: []string{"query"},
	}

	tests := []struct {
		name    string
		params  map[string]any
		wantErr bool
	}{
		{
			name:   "all types correct",
			params: map[string]any{"query": "q", "limit": float64(5), "draft": true, "labels": []any{"bug"}},
		},
		{
			name:    "number where string expected",
			params:  map[string]any{"query": float64(42)},
			wantErr: true,
		},
		{
			name:    "string where number expected",
			params:  map[string]any{"query": "q", "limit": "ten"},
			wantErr: true,
		},
		{
			name:    "string where boolean expected",
			params:  map[string]any{"query": "q", "draft": "yes"},
			wantErr: true,
		},
		{
			name:    "string where array expected",
			params:  map[string]any{"query": "q", "labels": "bug"},
			wantErr: true,
		},
		{
			name:   "undeclared params pass through",
			params: map[string]any{"query": "q", "mystery": 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateParams(schema, tt.params)
			if tt.wantErr && err == nil {
				t.Fatal("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateParams_EnumCheck(t *testing.T) {
	schema := InputSchema{
		Type: "object",
		Properties: map[string]Property{
			"state": {Type: "string", Enum: []string{"open", "closed", "all"}},
		},
	}

	if _, err := ValidateParams(schema, map[string]any{"state": "closed"}); err != nil {
		t.Fatalf("valid enum value rejected: %v", err)
	}
	_, err := ValidateParams(schema, map[string]any{"state": "merged"})
	if err == nil {
		t.Fatal("expected error for out-of-enum value")
	}
	want := `parameter "state": value "merged" is not one of [open, closed, all]`
	if err.Error() != want {
		t.Errorf("error = %q, want %q", err.Error(), want)
	}
}

func TestValidateParams_ClampsBounds(t *testing.T) {
	lo, hi := 1.0, 100.0
	schema := InputSchema{
		Type: "object",
		Properties: map[string]Property{
			"limit": {Type: "number", Minimum: &lo, Maximum: &hi},
		},
	}

	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"zero clamps up", 0, 1},
		{"negative clamps up", -5, 1},
		{"over maximum clamps down", 500, 100},
		{"boundary minimum unchanged", 1, 1},
		{"boundary maximum unchanged", 100, 100},
		{"in range unchanged", 42, 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateParams(schema, map[string]any{"limit": tt.in})
			if err != nil {
				t.Fatalf("bounds must clamp, not reject: %v", err)
			}
			if got["limit"] != tt.want {
				t.Errorf("limit = %v, want %v", got["limit"], tt.want)
			}
		})
	}
}

func TestValidateParams_DefaultSubstitution(t *testing.T) {
	schema := InputSchema{
		Type: "object",
		Properties: map[string]Property{
			"state": {Type: "string", Enum: []string{"open", "closed", "all"}, Default: "open"},
			"limit": {Type: "number", Default: float64(10)},
			"query": {Type: "string"},
		},
	}

	got, err := ValidateParams(schema, map[string]any{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got["state"] != "open" {
		t.Errorf("state = %v, want default %q", got["state"], "open")
	}
	if got["limit"] != float64(10) {
		t.Errorf("limit = %v, want default 10", got["limit"])
	}
	if _, present := got["query"]; present {
		t.Error("query has no default and must stay absent")
	}

	// Explicit values win over defaults.
	got, err = ValidateParams(schema, map[string]any{"state": "all"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got["state"] != "all" {
		t.Errorf("state = %v, want explicit %q", got["state"], "all")
	}
}

func TestValidateParams_DoesNotMutateInput(t *testing.T) {
	lo, hi := 1.0, 100.0
	schema := InputSchema{
		Type: "object",
		Properties: map[string]Property{
			"limit": {Type: "number", Minimum: &lo, Maximum: &hi},
		},
	}
	in := map[string]any{"limit": float64(500)}
	if _, err := ValidateParams(schema, in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in["limit"] != float64(500) {
		t.Errorf("caller's map was mutated: limit = %v", in["limit"])
	}
}
