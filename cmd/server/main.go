package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"githubmcp/server/internal/githubclient"
	"githubmcp/server/internal/mcpserver"
	"githubmcp/server/internal/modules"
	"githubmcp/server/internal/modules/github"
	"githubmcp/server/internal/observability"
)

func main() {
	// Local development convenience; a missing .env is not an error.
	_ = godotenv.Load()

	// Initialize observability (Loki)
	observability.Init()

	// The client provider is lazy: a missing GITHUB_TOKEN surfaces as a
	// configuration_error on the first tool call, not at startup, so
	// tools/list works without credentials.
	provider := githubclient.New()
	modules.RegisterModule(github.NewModule(provider))

	log.Printf("Registered modules: %v", modules.ListModules())

	srv, err := mcpserver.New()
	if err != nil {
		observability.LogError("startup", err)
		log.Printf("Failed to build MCP server: %v", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("GitHub MCP server listening on stdio")
	if err := srv.ServeStdio(ctx); err != nil {
		observability.LogError("serve", err)
		log.Printf("Server error: %v", err)
		os.Exit(1)
	}
	log.Printf("Server stopped")
}
