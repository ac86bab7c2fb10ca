// Package mcpserver exposes the registered tool modules over the Model
// Context Protocol. Each module tool is advertised under its own name; calls
// are routed through modules.Run so every invocation gets the same
// validation, timeout and error-envelope treatment regardless of transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpsrv "github.com/mark3labs/mcp-go/server"

	"githubmcp/server/internal/modules"
)

const (
	serverName    = "github-mcp"
	serverVersion = "1.0.0"
)

// Server wraps an MCP server populated with every registered module's tools.
type Server struct {
	mcp *mcpsrv.MCPServer
}

// New builds a Server from the current module registry. Modules must be
// registered before calling New; tools registered later are not picked up.
func New() (*Server, error) {
	mcpServer := mcpsrv.NewMCPServer(
		serverName,
		serverVersion,
		mcpsrv.WithInstructions(instructions()),
	)

	names := modules.ListModules()
	sort.Strings(names)
	for _, moduleName := range names {
		mod, _ := modules.GetModule(moduleName)
		for _, tool := range mod.Tools() {
			converted, err := convertTool(tool)
			if err != nil {
				return nil, fmt.Errorf("mcpserver: tool %s/%s: %w", moduleName, tool.Name, err)
			}
			mcpServer.AddTool(converted, callHandler(moduleName, tool.Name))
		}
	}

	return &Server{mcp: mcpServer}, nil
}

func instructions() string {
	return `You are connected to a GitHub MCP server.

Tools cover repository discovery and search, file contents, issues, pull
requests, commit history, branch management and repository statistics.
Read tools work with any repository your token can see; write tools need
the corresponding repository permissions.

Failed calls return a JSON envelope with an "error" kind, a message and
concrete suggestions. Statistics endpoints may return {"status": "pending"}
while GitHub computes aggregates; retry those after a short delay.`
}

// ServeStdio runs the server over stdin/stdout until ctx is cancelled.
func (s *Server) ServeStdio(ctx context.Context) error {
	srv := mcpsrv.NewStdioServer(s.mcp)
	if err := srv.Listen(ctx, os.Stdin, os.Stdout); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
			return nil
		}
		return fmt.Errorf("mcp stdio server: %w", err)
	}
	return nil
}

// convertTool maps an internal tool definition onto the wire representation.
// The input schema is carried verbatim as raw JSON so enum, default, minimum
// and maximum constraints reach the client unchanged.
func convertTool(tool modules.Tool) (mcplib.Tool, error) {
	rawSchema, err := json.Marshal(tool.InputSchema)
	if err != nil {
		return mcplib.Tool{}, fmt.Errorf("marshal input schema: %w", err)
	}
	out := mcplib.NewToolWithRawSchema(tool.Name, tool.Description, rawSchema)
	if a := tool.Annotations; a != nil {
		out.Annotations = mcplib.ToolAnnotation{
			ReadOnlyHint:    a.ReadOnlyHint,
			DestructiveHint: a.DestructiveHint,
			IdempotentHint:  a.IdempotentHint,
			OpenWorldHint:   a.OpenWorldHint,
		}
	}
	return out, nil
}

// callHandler routes one tool's invocations through the module runner.
func callHandler(moduleName, toolName string) mcpsrv.ToolHandlerFunc {
	return func(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		result := modules.Run(ctx, moduleName, toolName, req.GetArguments())
		return toCallToolResult(result), nil
	}
}

func toCallToolResult(result *modules.ToolCallResult) *mcplib.CallToolResult {
	out := &mcplib.CallToolResult{IsError: result.IsError}
	for _, block := range result.Content {
		out.Content = append(out.Content, mcplib.NewTextContent(block.Text))
	}
	return out
}
