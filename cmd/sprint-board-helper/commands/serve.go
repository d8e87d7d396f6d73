package commands

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goblinsan/sprint-board-helper/pkg/engine"
	"github.com/goblinsan/sprint-board-helper/pkg/parser"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

// JSON-RPC 2.0 types for MCP protocol
type jsonRPCRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

type jsonRPCResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Result  interface{}     `json:"result,omitempty"`
	Error   *jsonRPCError   `json:"error,omitempty"`
}

type jsonRPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// MCP protocol types
type mcpInitializeResult struct {
	ProtocolVersion string          `json:"protocolVersion"`
	Capabilities    mcpCapabilities `json:"capabilities"`
	ServerInfo      mcpServerInfo   `json:"serverInfo"`
}

type mcpCapabilities struct {
	Tools *struct{} `json:"tools,omitempty"`
}

type mcpServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type mcpToolsListResult struct {
	Tools []mcpToolDef `json:"tools"`
}

type mcpToolDef struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"inputSchema"`
}

type mcpToolCallParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

type mcpToolCallResult struct {
	Content []mcpContent `json:"content"`
	IsError bool         `json:"isError,omitempty"`
}

type mcpContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

var parseToolSchema = json.RawMessage(`{
  "type": "object",
  "properties": {
    "markdown": {"type": "string", "description": "The sprint plan markdown content"}
  },
  "required": ["markdown"]
}`)

var applyToolSchema = json.RawMessage(`{
  "type": "object",
  "properties": {
    "markdown": {"type": "string", "description": "The sprint plan markdown content"},
    "board": {"type": "string", "description": "Trello board ID, or owner/repo for the github backend"},
    "list": {"type": "string", "description": "Target list name (default Backlog)"},
    "backend": {"type": "string", "description": "Board backend: trello or github (default trello)"},
    "project": {"type": "string", "description": "GitHub Projects V2 board title (github backend only)"},
    "dry_run": {"type": "boolean", "description": "Preview without creating cards"}
  },
  "required": ["markdown", "board"]
}`)

type applySprintArgs struct {
	Markdown string `json:"markdown"`
	Board    string `json:"board"`
	List     string `json:"list"`
	Backend  string `json:"backend"`
	Project  string `json:"project"`
	DryRun   bool   `json:"dry_run"`
}

func handleMCPRequest(req jsonRPCRequest) jsonRPCResponse {
	switch req.Method {
	case "initialize":
		return jsonRPCResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result: mcpInitializeResult{
				ProtocolVersion: "2024-11-05",
				Capabilities:    mcpCapabilities{Tools: &struct{}{}},
				ServerInfo:      mcpServerInfo{Name: "sprint-board-helper", Version: Version},
			},
		}

	case "notifications/initialized":
		// Client acknowledgment, no response needed (notification, no ID)
		return jsonRPCResponse{}

	case "tools/list":
		return jsonRPCResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result: mcpToolsListResult{
				Tools: []mcpToolDef{
					{
						Name:        "parse_sprint",
						Description: "Parses a markdown sprint plan into its sprint/milestone/task structure with derived priority and labels.",
						InputSchema: parseToolSchema,
					},
					{
						Name:        "apply_sprint",
						Description: "Parses a markdown sprint plan and creates the card hierarchy on a kanban board.",
						InputSchema: applyToolSchema,
					},
				},
			},
		}

	case "tools/call":
		return handleToolCall(req)

	default:
		return jsonRPCResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error:   &jsonRPCError{Code: -32601, Message: fmt.Sprintf("method not found: %s", req.Method)},
		}
	}
}

func handleToolCall(req jsonRPCRequest) jsonRPCResponse {
	var params mcpToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return jsonRPCResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error:   &jsonRPCError{Code: -32602, Message: fmt.Sprintf("invalid params: %v", err)},
		}
	}

	switch params.Name {
	case "parse_sprint":
		return toolResponse(req, handleParseSprint(params.Arguments))
	case "apply_sprint":
		return toolResponse(req, handleApplySprint(params.Arguments))
	default:
		return toolResponse(req, mcpToolCallResult{
			Content: []mcpContent{{Type: "text", Text: fmt.Sprintf("unknown tool: %s", params.Name)}},
			IsError: true,
		})
	}
}

func toolResponse(req jsonRPCRequest, result mcpToolCallResult) jsonRPCResponse {
	return jsonRPCResponse{JSONRPC: "2.0", ID: req.ID, Result: result}
}

func toolError(format string, args ...interface{}) mcpToolCallResult {
	return mcpToolCallResult{
		Content: []mcpContent{{Type: "text", Text: fmt.Sprintf(format, args...)}},
		IsError: true,
	}
}

func handleParseSprint(arguments json.RawMessage) mcpToolCallResult {
	var args struct {
		Markdown string `json:"markdown"`
	}
	if err := json.Unmarshal(arguments, &args); err != nil {
		return toolError("invalid arguments: %v", err)
	}

	sprint, err := parser.Parse(args.Markdown)
	if err != nil {
		return toolError("parse failed: %v", err)
	}

	sprintJSON, _ := json.Marshal(sprint)
	return mcpToolCallResult{
		Content: []mcpContent{{Type: "text", Text: string(sprintJSON)}},
	}
}

func handleApplySprint(arguments json.RawMessage) mcpToolCallResult {
	var args applySprintArgs
	if err := json.Unmarshal(arguments, &args); err != nil {
		return toolError("invalid arguments: %v", err)
	}
	if args.List == "" {
		args.List = "Backlog"
	}
	if args.Backend == "" {
		args.Backend = "trello"
	}

	sprint, err := parser.Parse(args.Markdown)
	if err != nil {
		return toolError("parse failed: %v", err)
	}

	ctx := context.Background()
	var board engine.Board
	if !args.DryRun {
		board, err = newBoard(ctx, args.Backend, args.Board, args.Project)
		if err != nil {
			return toolError("failed to create board client: %v", err)
		}
	}

	report, err := engine.Apply(ctx, board, sprint, engine.Options{
		ListName: args.List,
		DryRun:   args.DryRun,
	})
	if err != nil {
		return toolError("apply failed: %v", err)
	}

	reportJSON, _ := json.Marshal(report)
	return mcpToolCallResult{
		Content: []mcpContent{{Type: "text", Text: string(reportJSON)}},
	}
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server over stdio",
	Long:  `Run the MCP server to allow AI agents to parse sprint plans and create board cards via the Model Context Protocol over stdin/stdout.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		scanner := bufio.NewScanner(os.Stdin)
		// Increase buffer for large sprint payloads (1 MB)
		scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)
		encoder := json.NewEncoder(os.Stdout)

		for scanner.Scan() {
			line := scanner.Bytes()
			if len(line) == 0 {
				continue
			}

			var req jsonRPCRequest
			if err := json.Unmarshal(line, &req); err != nil {
				resp := jsonRPCResponse{
					JSONRPC: "2.0",
					Error:   &jsonRPCError{Code: -32700, Message: fmt.Sprintf("parse error: %v", err)},
				}
				encoder.Encode(resp)
				continue
			}

			resp := handleMCPRequest(req)
			// Notifications (no ID) don't get a response
			if resp.JSONRPC == "" {
				continue
			}
			encoder.Encode(resp)
		}

		return scanner.Err()
	},
}
