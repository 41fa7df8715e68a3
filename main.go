// An MCP server implementation that lets AI agents search logs on a
// job-oriented search backend, with PII masked from results
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"loghound-mcp/internal/logger"
	"loghound-mcp/internal/models"
	"loghound-mcp/internal/search"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/peterbourgon/ff/v3"
)

// Version information
var (
	Version   = "dev"     // Set by goreleaser
	CommitSHA = "unknown" // Set by goreleaser
	BuildTime = "unknown" // Set by goreleaser
)

func main() {
	// .env is optional; real env vars win either way.
	_ = godotenv.Load()

	cfg, err := setupConfig()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zlog := logger.New(cfg.LogLevel)
	defer func() { _ = zlog.Sync() }()

	client, err := search.NewClient(&http.Client{Timeout: 30 * time.Second}, cfg, zlog)
	if err != nil {
		log.Fatalf("create search client: %v", err)
	}

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "loghound-mcp",
		Version: Version,
	}, nil)

	registerAllTools(server, client, cfg, zlog)
	registerAllPrompts(server)

	if cfg.Port != "" {
		if err := NewHTTPServer(server, cfg, zlog).Start(); err != nil {
			log.Fatalf("http server: %v", err)
		}
		return
	}

	if err := server.Run(context.Background(), &mcp.StdioTransport{}); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

// setupConfig initializes and parses the configuration
func setupConfig() (models.Config, error) {
	fs := flag.NewFlagSet("loghound-mcp", flag.ExitOnError)

	var cfg models.Config
	fs.StringVar(&cfg.BaseURL, "url", os.Getenv("LOGHOUND_BASE_URL"), "Search backend base URL")
	fs.StringVar(&cfg.Username, "username", os.Getenv("LOGHOUND_USERNAME"), "Backend username for session login")
	fs.StringVar(&cfg.Password, "password", os.Getenv("LOGHOUND_PASSWORD"), "Backend password for session login")
	fs.StringVar(&cfg.AuthToken, "auth", os.Getenv("LOGHOUND_AUTH_TOKEN"), "Static API token (skips session login)")
	fs.StringVar(&cfg.Host, "host", "localhost", "Bind address for the HTTP transport")
	fs.StringVar(&cfg.Port, "port", "", "Port for the HTTP transport (empty: stdio)")
	fs.Float64Var(&cfg.RequestRateLimit, "rate", 10, "Backend requests per second limit")
	fs.IntVar(&cfg.RequestRateBurst, "burst", 5, "Backend request burst capacity")
	fs.StringVar(&cfg.LogLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	var configFile string
	fs.StringVar(&configFile, "config", "", "config file path")

	err := ff.Parse(fs, os.Args[1:],
		ff.WithEnvVarPrefix("LOGHOUND"),
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(ff.PlainParser),
	)
	if err != nil {
		return cfg, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if cfg.BaseURL == "" {
		return cfg, errors.New("search backend URL must be provided via LOGHOUND_BASE_URL env var or -url flag")
	}
	if cfg.AuthToken == "" && (cfg.Username == "" || cfg.Password == "") {
		return cfg, errors.New("either LOGHOUND_AUTH_TOKEN or LOGHOUND_USERNAME and LOGHOUND_PASSWORD must be provided")
	}

	return cfg, nil
}
