package modules

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"runtime/debug"
	"time"

	"githubmcp/server/internal/observability"
)

// =============================================================================
// Registry
// =============================================================================

// registry holds all registered modules
var registry = make(map[string]Module)

// RegisterModule adds a module to the registry
func RegisterModule(m Module) {
	registry[m.Name()] = m
}

// GetModule returns a module by name
func GetModule(name string) (Module, bool) {
	m, ok := registry[name]
	return m, ok
}

// ListModules returns all registered module names
func ListModules() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}

// =============================================================================
// Tool Execution
// =============================================================================

// toolTimeout is the maximum duration for a single tool execution.
const toolTimeout = 30 * time.Second

// Run executes a single tool in a module. Every invocation produces exactly
// one ToolCallResult: validation failures, remote failures and panics are all
// captured into error envelopes, never propagated to the transport layer.
func Run(ctx context.Context, moduleName, toolName string, params map[string]any) (result *ToolCallResult) {
	start := time.Now()

	// Operation-level faults must never crash the process.
	defer func() {
		if r := recover(); r != nil {
			log.Printf("PANIC recovered in %s/%s: %v\n%s", moduleName, toolName, r, debug.Stack())
			result = errorResult(ErrorEnvelope{
				Error:   KindUnexpected,
				Message: fmt.Sprintf("internal fault while executing %s: %v", toolName, r),
				Suggestions: []string{
					"This is a bug in the server, not in your request. Report it with the tool name and arguments used.",
				},
			})
			observability.LogToolCall(moduleName, toolName, time.Since(start).Milliseconds(), "error", KindUnexpected)
		}
	}()

	m, ok := registry[moduleName]
	if !ok {
		return errorResult(ErrorEnvelope{
			Error:   KindUnexpected,
			Message: fmt.Sprintf("unknown module: %s", moduleName),
			Suggestions: []string{
				fmt.Sprintf("Available modules: %v", ListModules()),
			},
		})
	}

	tool, found := findTool(m.Tools(), toolName)
	if !found {
		return errorResult(ErrorEnvelope{
			Error:   KindUnexpected,
			Message: fmt.Sprintf("unknown tool: %s", toolName),
			Suggestions: []string{
				"Call tools/list to see the supported operations and their parameters.",
			},
		})
	}

	// Validate params against the tool's InputSchema. Rejected requests
	// never reach the remote system.
	validated, err := ValidateParams(tool.InputSchema, params)
	if err != nil {
		observability.LogToolCall(moduleName, toolName, 0, "error", KindValidation)
		return errorResult(ErrorEnvelope{
			Error:   KindValidation,
			Message: err.Error(),
			Suggestions: []string{
				fmt.Sprintf("Check the input schema of %s via tools/list and resend with corrected arguments.", toolName),
			},
		})
	}

	// Apply timeout to prevent external API calls from hanging indefinitely
	ctx, cancel := context.WithTimeout(ctx, toolTimeout)
	defer cancel()

	text, err := m.ExecuteTool(ctx, toolName, validated)
	durationMs := time.Since(start).Milliseconds()

	if err != nil {
		env := envelopeFor(ctx, moduleName, toolName, err)
		observability.LogToolCall(moduleName, toolName, durationMs, "error", env.Error)
		return errorResult(env)
	}

	observability.LogToolCall(moduleName, toolName, durationMs, "success", "")
	return &ToolCallResult{
		Content: []ContentBlock{{Type: "text", Text: text}},
	}
}

// envelopeFor extracts the normalized envelope from a handler error, or
// wraps an unclassified error as unexpected.
func envelopeFor(ctx context.Context, moduleName, toolName string, err error) ErrorEnvelope {
	var te *ToolError
	if errors.As(err, &te) {
		return te.Envelope
	}
	msg := err.Error()
	suggestions := []string{
		"Retry the request; if the failure persists, inspect the message for the underlying cause.",
	}
	if ctx.Err() == context.DeadlineExceeded {
		msg = fmt.Sprintf("request to %s timed out after %s; the remote API did not respond in time", moduleName, toolTimeout)
		suggestions = []string{
			"Retry later; GitHub may be slow or unreachable from this host.",
			"Reduce the requested limit to shrink the response.",
		}
	}
	return ErrorEnvelope{
		Error:       KindUnexpected,
		Message:     fmt.Sprintf("%s failed: %s", toolName, msg),
		Suggestions: suggestions,
	}
}

// errorResult marshals an envelope into an IsError ToolCallResult.
func errorResult(env ErrorEnvelope) *ToolCallResult {
	b, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		// Envelope fields are all marshalable; this is unreachable in
		// practice but kept total.
		b = []byte(fmt.Sprintf(`{"error":%q,"message":%q}`, KindUnexpected, env.Message))
	}
	return &ToolCallResult{
		Content: []ContentBlock{{Type: "text", Text: string(b)}},
		IsError: true,
	}
}
