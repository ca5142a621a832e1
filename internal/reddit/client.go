package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// MCPConfig configures the stdio MCP server process.
type MCPConfig struct {
	// Command is the executable that starts the MCP server.
	Command string
	// Args are the command arguments.
	Args []string
	// APIToken is passed to the server process via the API_TOKEN
	// environment variable.
	APIToken string
}

// MCPClient drives a Bright Data MCP server over stdio.
type MCPClient struct {
	session *mcp.ClientSession
}

// ConnectMCP spawns the MCP server process and establishes a session.
// The caller owns the returned client and must Close it.
func ConnectMCP(ctx context.Context, cfg MCPConfig) (*MCPClient, error) {
	if cfg.Command == "" {
		return nil, fmt.Errorf("mcp server command is required")
	}

	cmd := exec.Command(cfg.Command, cfg.Args...)
	cmd.Env = append(os.Environ(), "API_TOKEN="+cfg.APIToken)

	client := mcp.NewClient(&mcp.Implementation{Name: "truescan", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, &mcp.CommandTransport{Command: cmd}, nil)
	if err != nil {
		return nil, fmt.Errorf("connect mcp server: %w", err)
	}

	return &MCPClient{session: session}, nil
}

// Tools lists the tools exposed by the server.
func (c *MCPClient) Tools(ctx context.Context) ([]ToolDef, error) {
	res, err := c.session.ListTools(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list tools: %w", err)
	}

	tools := make([]ToolDef, 0, len(res.Tools))
	for _, t := range res.Tools {
		var schema *jsonschema.Schema
		if t.InputSchema != nil {
			raw, err := json.Marshal(t.InputSchema)
			if err != nil {
				return nil, fmt.Errorf("marshal input schema for tool %s: %w", t.Name, err)
			}
			schema = new(jsonschema.Schema)
			if err := json.Unmarshal(raw, schema); err != nil {
				return nil, fmt.Errorf("unmarshal input schema for tool %s: %w", t.Name, err)
			}
		}
		tools = append(tools, ToolDef{
			Name:        t.Name,
			Description: t.Description,
			InputSchema: schema,
		})
	}
	return tools, nil
}

// Call invokes a tool and returns its concatenated text output.
func (c *MCPClient) Call(ctx context.Context, name string, args map[string]any) (string, error) {
	res, err := c.session.CallTool(ctx, &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	if err != nil {
		return "", fmt.Errorf("call tool %s: %w", name, err)
	}

	var sb strings.Builder
	for _, content := range res.Content {
		if tc, ok := content.(*mcp.TextContent); ok {
			sb.WriteString(tc.Text)
		}
	}

	if res.IsError {
		return "", fmt.Errorf("tool %s failed: %s", name, sb.String())
	}

	return sb.String(), nil
}

// Close shuts down the session and the server process.
func (c *MCPClient) Close() error {
	return c.session.Close()
}
