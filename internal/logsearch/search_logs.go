package logsearch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"loghound-mcp/internal/redact"
	"loghound-mcp/internal/search"
	"loghound-mcp/internal/timerange"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// SearchLogsDescription provides the description for the search_logs tool
const SearchLogsDescription = `Search log entries on the backend using its query language.

The query is dispatched as a search job, polled until complete, and the results returned as JSON. Personally identifiable information (emails, phone numbers, card numbers, addresses, SSNs) in the results is masked before it is returned, unless masking is explicitly disabled in the server configuration.

Time expressions accepted by earliest_time and latest_time:
- "now" (case-insensitive): the current time
- Relative offsets: -<N><unit> with unit s/m/h/d/w (e.g. "-15m" = 15 minutes ago, "-2h", "-1d", "-1w")
- Absolute timestamps: ISO 8601 / RFC 3339 (e.g. "2025-06-23T16:00:00Z"), "YYYY-MM-DD HH:MM:SS", or "YYYY-MM-DD"

Time handling:
- earliest_time alone: window runs from that time until now
- latest_time alone with a relative offset (e.g. "-2h"): the offset is the window length, i.e. "the last 2 hours"
- An inverted pair is reordered, not rejected
- Unparseable expressions are ignored and the backend default applies

Parameters:
- query: (Required) Search query (e.g. 'index=main error', 'sourcetype=access_combined status=500')
- earliest_time: (Optional) Start of the time window
- latest_time: (Optional) End of the time window
- limit: (Optional) Maximum number of result rows. Default: 100

Returns the search results as JSON with PII masked.`

// defaultResultLimit applies when the caller does not cap results.
const defaultResultLimit = 100

// SearchLogsArgs represents the input arguments for the search_logs tool
type SearchLogsArgs struct {
	Query        string `json:"query" jsonschema:"Search query to run (e.g. index=main error)"`
	EarliestTime string `json:"earliest_time,omitempty" jsonschema:"Window start: now, -<N><s|m|h|d|w> or an absolute timestamp (e.g. -15m, 2025-06-23T16:00:00Z)"`
	LatestTime   string `json:"latest_time,omitempty" jsonschema:"Window end, same formats as earliest_time. Defaults to now when earliest_time is set"`
	Limit        int    `json:"limit,omitempty" jsonschema:"Maximum number of result rows (default: 100, range: 1-10000)"`
}

// NewSearchLogsHandler creates a handler for the search_logs tool. Per
// call it resolves the time window, runs the search job, and masks PII
// in the serialized results.
func NewSearchLogsHandler(client *search.Client, masker *redact.Masker) func(context.Context, *mcp.CallToolRequest, SearchLogsArgs) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, args SearchLogsArgs) (*mcp.CallToolResult, any, error) {
		if strings.TrimSpace(args.Query) == "" {
			return nil, nil, errors.New("query parameter is required")
		}

		limit := args.Limit
		if limit <= 0 {
			limit = defaultResultLimit
		}

		rng := timerange.Resolve(args.EarliestTime, args.LatestTime)

		results, err := client.Search(ctx, args.Query, rng, limit)
		if err != nil {
			return nil, nil, fmt.Errorf("search failed: %w", err)
		}

		return textResult(masker.Mask(formatJSON(results))), nil, nil
	}
}

// textResult wraps masked text in the MCP result envelope.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

// formatJSON formats a result payload for display.
func formatJSON(data any) string {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(bytes)
}
