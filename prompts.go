package main

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// searchQueryBuilderText guides an agent from a natural language request
// to a backend query string for the search_logs tool.
const searchQueryBuilderText = `You translate natural language questions about logs into backend search queries for the search_logs tool.

Query language basics:
- Scope with an index: index=main
- Filter on fields: sourcetype=access_combined status=500
- Free-text terms match the raw event: error timeout
- Combine with AND (implicit), OR, NOT: index=main (error OR warn) NOT debug
- Pipe to commands for shaping: index=main error | head 20

Time handling:
- Pass time bounds via the earliest_time / latest_time tool parameters, not inside the query.
- Use relative offsets for recent windows: earliest_time="-15m" means the last 15 minutes.
- "the last N hours/days" with no start: latest_time="-2h" alone also means a window of that length ending now.
- Use ISO timestamps for absolute windows: earliest_time="2025-06-23T16:00:00Z".

Workflow:
1. If the index is unknown, call list_indexes first.
2. Build the narrowest query that answers the question.
3. Call search_logs, defaulting earliest_time to "-15m" unless the user asks for another window.
4. Summarize the results; never dump raw JSON at the user.

Note: PII in results (emails, phone numbers, card numbers, addresses, SSNs) arrives already masked as placeholders like [EMAIL REDACTED]; treat placeholders as opaque.`

// registerAllPrompts registers the query-builder prompt with the MCP server.
func registerAllPrompts(server *mcp.Server) {
	server.AddPrompt(&mcp.Prompt{
		Name:        "search_query_builder",
		Title:       "Search Query Builder",
		Description: "Guidance for translating natural language questions into search_logs queries.",
	}, func(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		return &mcp.GetPromptResult{
			Description: "Search query construction guidance",
			Messages: []*mcp.PromptMessage{
				{
					Role:    mcp.Role("user"),
					Content: &mcp.TextContent{Text: searchQueryBuilderText},
				},
			},
		}, nil
	})
}
