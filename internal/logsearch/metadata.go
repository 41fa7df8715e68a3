package logsearch

import (
	"context"
	"fmt"

	"loghound-mcp/internal/redact"
	"loghound-mcp/internal/search"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ListIndexesDescription provides the description for the list_indexes tool
const ListIndexesDescription = `List the searchable log indexes on the backend.

Use this to discover valid index names before constructing a search_logs query (e.g. 'index=main error').

Returns a JSON array of index names.`

// GetSavedSearchesDescription provides the description for the get_saved_searches tool
const GetSavedSearchesDescription = `List the saved searches configured on the backend.

Saved searches are pre-built queries maintained on the backend. Run one by passing its query to search_logs.

Returns a JSON array of saved search names.`

// ListIndexesArgs represents the input arguments for the list_indexes tool
type ListIndexesArgs struct{}

// GetSavedSearchesArgs represents the input arguments for the get_saved_searches tool
type GetSavedSearchesArgs struct{}

// NewListIndexesHandler creates a handler for the list_indexes tool
func NewListIndexesHandler(client *search.Client, masker *redact.Masker) func(context.Context, *mcp.CallToolRequest, ListIndexesArgs) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, args ListIndexesArgs) (*mcp.CallToolResult, any, error) {
		names, err := client.ListIndexes(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to list indexes: %w", err)
		}
		return textResult(masker.Mask(formatJSON(names))), nil, nil
	}
}

// NewGetSavedSearchesHandler creates a handler for the get_saved_searches tool
func NewGetSavedSearchesHandler(client *search.Client, masker *redact.Masker) func(context.Context, *mcp.CallToolRequest, GetSavedSearchesArgs) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, args GetSavedSearchesArgs) (*mcp.CallToolResult, any, error) {
		names, err := client.SavedSearches(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get saved searches: %w", err)
		}
		return textResult(masker.Mask(formatJSON(names))), nil, nil
	}
}
