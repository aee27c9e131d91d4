// Package mcp exposes a running sweep to MCP clients (editor agents,
// dashboards) as a pair of read-only tools. Launch control stays with the
// CLI; the tools only observe.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/voxfield/nsweep/pkg/domain"
)

// Engine defines the interface required by the MCP server to observe a sweep.
type Engine interface {
	Plan() []domain.Invocation
	Snapshot() *domain.SweepState
	Sweep() *domain.Sweep
}

// StatusResponse is the structured payload of the sweep_status tool.
type StatusResponse struct {
	Sweep     string                       `json:"sweep" jsonschema_description:"Sweep identifier"`
	GridSize  int                          `json:"grid_size" jsonschema_description:"Total number of invocations in the grid"`
	Succeeded int                          `json:"succeeded"`
	Failed    int                          `json:"failed"`
	Skipped   int                          `json:"skipped"`
	Runs      map[string]*domain.RunRecord `json:"runs" jsonschema_description:"Run records keyed by experiment name"`
}

// Server wraps a sweep Engine and exposes it as an MCP Server.
type Server struct {
	engine    Engine
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine, version string) *Server {
	s := &Server{
		engine:    engine,
		mcpServer: server.NewMCPServer("nsweep-mcp", strings.TrimSpace(version)),
	}
	s.registerTools()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	// TOOL: sweep_plan
	s.mcpServer.AddTool(mcp.NewTool("sweep_plan",
		mcp.WithDescription("List the ordered trainer invocations of the configured sweep without launching anything."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		invs := s.engine.Plan()
		jsonBytes, err := json.Marshal(invs)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("marshal plan failed: %v", err)), nil
		}
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})

	// TOOL: sweep_status
	statusTool := mcp.NewTool("sweep_status",
		mcp.WithDescription("Report progress of the sweep: counts by outcome and the per-run ledger."),
		mcp.WithOutputSchema[StatusResponse](),
	)
	s.mcpServer.AddTool(statusTool, mcp.NewStructuredToolHandler(s.handleStatus))
}

func (s *Server) handleStatus(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (StatusResponse, error) {
	state := s.engine.Snapshot()
	succeeded, failed, skipped := state.Counts()

	return StatusResponse{
		Sweep:     state.ID,
		GridSize:  state.GridSize,
		Succeeded: succeeded,
		Failed:    failed,
		Skipped:   skipped,
		Runs:      state.Runs,
	}, nil
}
