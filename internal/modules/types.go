package modules

import "context"

// =============================================================================
// Module Interface
// =============================================================================

// Module defines the interface that all tool modules must implement.
// Each module contributes a set of Tools to the server's capability listing
// and executes them on demand.
type Module interface {
	// Metadata
	Name() string
	Description() string
	APIVersion() string

	// Tools - LLM executes, may have side effects
	Tools() []Tool
	ExecuteTool(ctx context.Context, name string, params map[string]any) (string, error)
}

// =============================================================================
// Tool Definition
// =============================================================================

// ToolAnnotations describes the tool's behavior hints per MCP spec (2025-11-25).
type ToolAnnotations struct {
	ReadOnlyHint    *bool `json:"readOnlyHint,omitempty"`
	DestructiveHint *bool `json:"destructiveHint,omitempty"`
	IdempotentHint  *bool `json:"idempotentHint,omitempty"`
	OpenWorldHint   *bool `json:"openWorldHint,omitempty"`
}

// Helper to create *bool for annotation fields
func boolPtr(v bool) *bool { return &v }

// Pre-built annotation sets for common tool patterns
var (
	// AnnotateReadOnly: list, get, search, query tools
	AnnotateReadOnly = &ToolAnnotations{
		ReadOnlyHint:  boolPtr(true),
		OpenWorldHint: boolPtr(true),
	}
	// AnnotateCreate: create, add, append tools (non-idempotent write)
	AnnotateCreate = &ToolAnnotations{
		ReadOnlyHint:    boolPtr(false),
		DestructiveHint: boolPtr(false),
		IdempotentHint:  boolPtr(false),
		OpenWorldHint:   boolPtr(true),
	}
	// AnnotateUpdate: update, close, reopen tools (idempotent write)
	AnnotateUpdate = &ToolAnnotations{
		ReadOnlyHint:    boolPtr(false),
		DestructiveHint: boolPtr(false),
		IdempotentHint:  boolPtr(true),
		OpenWorldHint:   boolPtr(true),
	}
	// AnnotateDelete: delete tools (destructive, idempotent)
	AnnotateDelete = &ToolAnnotations{
		ReadOnlyHint:    boolPtr(false),
		DestructiveHint: boolPtr(true),
		IdempotentHint:  boolPtr(true),
		OpenWorldHint:   boolPtr(true),
	}
)

// Tool represents an MCP tool definition
type Tool struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	InputSchema InputSchema      `json:"inputSchema"`
	Annotations *ToolAnnotations `json:"annotations,omitempty"`
}

// InputSchema defines the input parameters for a tool
type InputSchema struct {
	Type       string              `json:"type"`
	Properties map[string]Property `json:"properties"`
	Required   []string            `json:"required,omitempty"`
}

// Property defines a single property in the input schema.
// Enum, Default, Minimum and Maximum are consulted by ValidateParams, so a
// schema is sufficient to validate any request without touching the remote
// system.
type Property struct {
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Items       *Property `json:"items,omitempty"`
	Enum        []string  `json:"enum,omitempty"`
	Default     any       `json:"default,omitempty"`
	Minimum     *float64  `json:"minimum,omitempty"`
	Maximum     *float64  `json:"maximum,omitempty"`
}

// =============================================================================
// Result Types
// =============================================================================

// ToolCallResult represents the result of a tool call
type ToolCallResult struct {
	Content []ContentBlock `json:"content"`
	IsError bool           `json:"isError,omitempty"`
}

// ContentBlock represents a content block in the result
type ContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// =============================================================================
// Error Envelope
// =============================================================================

// Error kind tags carried in ErrorEnvelope.Error. Statistics that GitHub is
// still aggregating use StatusPending in a success payload, not an error.
const (
	KindConfiguration    = "configuration_error"
	KindNotFound         = "not_found"
	KindPermissionDenied = "permission_denied"
	KindValidation       = "validation_error"
	KindConflict         = "conflict"
	KindUnexpected       = "unexpected_error"

	StatusPending = "pending"
)

// ErrorEnvelope is the normalized error payload returned for every failed
// invocation. Suggestions are concrete remediation steps; Status and Details
// carry the originating remote status code and raw error blob when available.
type ErrorEnvelope struct {
	Error       string   `json:"error"`
	Message     string   `json:"message"`
	Suggestions []string `json:"suggestions,omitempty"`
	Status      int      `json:"status,omitempty"`
	Details     any      `json:"details,omitempty"`
}

// ToolError carries a normalized ErrorEnvelope across the handler boundary.
// Handlers return it for any failure they can classify; Run serializes the
// envelope into the error content block.
type ToolError struct {
	Envelope ErrorEnvelope
}

func (e *ToolError) Error() string {
	return e.Envelope.Message
}

// NewToolError builds a ToolError with the given kind, message and
// suggestions.
func NewToolError(kind, message string, suggestions ...string) *ToolError {
	return &ToolError{Envelope: ErrorEnvelope{
		Error:       kind,
		Message:     message,
		Suggestions: suggestions,
	}}
}
