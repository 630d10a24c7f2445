package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/doITmagic/phpgen/internal/logger"
	"github.com/doITmagic/phpgen/internal/tools"
)

type MCPTool interface {
	Name() string
	Description() string
	Execute(ctx context.Context, args map[string]interface{}) (string, error)
}

// RenderBlueprintInput defines the typed input for the render_blueprint tool.
type RenderBlueprintInput struct {
	Blueprint   string `json:"blueprint,omitempty" jsonschema:"YAML blueprint source"`
	FilePath    string `json:"file_path,omitempty" jsonschema:"path of a blueprint file, used when blueprint is empty"`
	StrictTypes *bool  `json:"strict_types,omitempty" jsonschema:"emit declare(strict_types=1)"`
}

// RenderBlueprintOutput defines the typed output for the render_blueprint tool.
type RenderBlueprintOutput struct {
	Source string `json:"source"`
}

func mcpCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the generator tools over MCP on stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			server := newServer(a)
			logger.Info("MCP phpgen server started (stdio mode)")
			if err := server.Run(cmd.Context(), &mcp.StdioTransport{}); err != nil {
				return fmt.Errorf("server terminated: %w", err)
			}
			return nil
		},
	}
}

func newServer(a *app) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "phpgen",
		Version: Version,
	}, nil)

	registerRenderToolTyped(server, tools.NewRenderBlueprintTool(a.source, a.cfg.Generator))
	registerAgentTool(server, tools.NewExtractBodyTool(a.source))
	registerAgentTool(server, tools.NewDocblockTypesTool(a.source))
	registerAgentTool(server, tools.NewGenerateProxyTool(a.source, a.cfg.Generator))
	return server
}

// registerRenderToolTyped registers the render_blueprint tool using the typed
// ToolHandlerFor API from the MCP Go SDK.
func registerRenderToolTyped(server *mcp.Server, tool *tools.RenderBlueprintTool) {
	mcp.AddTool[RenderBlueprintInput, RenderBlueprintOutput](server, &mcp.Tool{
		Name:        tool.Name(),
		Description: tool.Description(),
	}, func(ctx context.Context, req *mcp.CallToolRequest, input RenderBlueprintInput) (*mcp.CallToolResult, RenderBlueprintOutput, error) {
		args := map[string]interface{}{}
		if input.Blueprint != "" {
			args["blueprint"] = input.Blueprint
		}
		if input.FilePath != "" {
			args["file_path"] = input.FilePath
		}
		if input.StrictTypes != nil {
			args["strict_types"] = *input.StrictTypes
		}

		result, err := tool.Execute(ctx, args)
		if err != nil {
			return nil, RenderBlueprintOutput{}, err
		}
		return nil, RenderBlueprintOutput{Source: result}, nil
	})
}

func registerAgentTool(server *mcp.Server, tool MCPTool) {
	schema := getToolSchema(tool.Name())
	server.AddTool(&mcp.Tool{
		Name:        tool.Name(),
		Description: tool.Description(),
		InputSchema: schema,
	}, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := map[string]interface{}{}
		if req.Params != nil && req.Params.Arguments != nil {
			if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
				return nil, fmt.Errorf("invalid arguments: %w", err)
			}
		}
		result, err := tool.Execute(ctx, args)
		if err != nil {
			return &mcp.CallToolResult{
				IsError: true,
				Content: []mcp.Content{
					&mcp.TextContent{Text: err.Error()},
				},
			}, nil
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{Text: result},
			},
		}, nil
	})
}

func stringProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": description,
	}
}

func getToolSchema(toolName string) map[string]interface{} {
	target := map[string]interface{}{
		"file_path":    stringProperty("PHP file (or directory) to index"),
		"class":        stringProperty("Fully qualified class, interface or trait name"),
		"method":       stringProperty("Method name, together with class"),
		"function":     stringProperty("Fully qualified global function name"),
		"closure_line": map[string]interface{}{"type": "number", "description": "Line a closure starts on; file_path must be a single file"},
	}

	switch toolName {
	case "extract_body":
		return map[string]interface{}{
			"type":       "object",
			"properties": target,
			"required":   []string{"file_path"},
		}

	case "docblock_types":
		props := map[string]interface{}{
			"tag":       stringProperty("Tag to read, e.g. return, throws (default: return, or var for properties)"),
			"parameter": stringProperty("Read the @param types of this parameter"),
			"property":  stringProperty("Read the @var types of this property of class"),
		}
		for k, v := range target {
			props[k] = v
		}
		return map[string]interface{}{
			"type":       "object",
			"properties": props,
			"required":   []string{"file_path"},
		}

	case "generate_proxy":
		return map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"file_path": target["file_path"],
				"class":     target["class"],
				"name":      stringProperty("Proxy class name (default: class name plus the configured suffix)"),
				"namespace": stringProperty("Proxy namespace (default: from configuration)"),
				"write":     map[string]interface{}{"type": "boolean", "description": "Save the proxy at its composer.json PSR-4 path instead of returning it"},
			},
			"required": []string{"file_path", "class"},
		}

	default:
		return map[string]interface{}{
			"type":       "object",
			"properties": map[string]interface{}{},
		}
	}
}
