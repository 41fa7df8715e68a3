package main

import (
	"os"

	"loghound-mcp/internal/constants"
	"loghound-mcp/internal/logsearch"
	"loghound-mcp/internal/models"
	"loghound-mcp/internal/redact"
	"loghound-mcp/internal/search"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

// registerAllTools registers all tools with the MCP server. Every tool's
// text output passes through the PII masker; the masking toggle is read
// from the environment on each call so changes apply immediately.
func registerAllTools(server *mcp.Server, client *search.Client, cfg models.Config, log *zap.Logger) {
	masker := redact.New(func() string {
		return os.Getenv(constants.EnvMaskPII)
	}, log)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_logs",
		Description: logsearch.SearchLogsDescription,
	}, logsearch.NewSearchLogsHandler(client, masker))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_indexes",
		Description: logsearch.ListIndexesDescription,
	}, logsearch.NewListIndexesHandler(client, masker))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_saved_searches",
		Description: logsearch.GetSavedSearchesDescription,
	}, logsearch.NewGetSavedSearchesHandler(client, masker))
}
