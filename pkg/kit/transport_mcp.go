package kit

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// MCPDecoder turns tool arguments into the endpoint's request.
type MCPDecoder func(args map[string]any) (any, error)

// RegisterMCPTool exposes endpoint as an MCP tool. Decode and endpoint
// failures are reported as tool errors, not protocol errors; a response is
// sent back as JSON text.
func RegisterMCPTool(srv *server.MCPServer, tool mcp.Tool, endpoint Endpoint, decode MCPDecoder) {
	srv.AddTool(tool, func(ctx context.Context, call mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		req, err := decode(call.GetArguments())
		if err != nil {
			return mcp.NewToolResultError("invalid arguments: " + err.Error()), nil
		}

		resp, err := endpoint(WithTransport(ctx, "mcp"), req)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		body, err := json.Marshal(resp)
		if err != nil {
			return mcp.NewToolResultError("encode response: " + err.Error()), nil
		}
		return mcp.NewToolResultText(string(body)), nil
	})
}
