// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes Easel's drawing catalog for LLM integration via stdio
// transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/easelhq/easel/internal/catalog"
	"github.com/easelhq/easel/internal/export"
	"github.com/easelhq/easel/internal/store"
)

// Server wraps the MCP server with Easel tools.
type Server struct {
	mcp   *server.MCPServer
	store store.Store
	svc   *catalog.Service
}

// New creates a new MCP server with all Easel tools registered. Reads go
// straight to the store; mutations go through the catalog service so
// session invariants (delete-of-active resets the session) hold for MCP
// callers too.
func New(st store.Store, svc *catalog.Service) *Server {
	s := &Server{store: st, svc: svc}

	s.mcp = server.NewMCPServer(
		"Easel",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("list_drawings",
		mcp.WithDescription("List all persisted drawings, most recently updated first."),
	), s.listDrawings)

	s.mcp.AddTool(mcp.NewTool("read_drawing",
		mcp.WithDescription("Read the full scene payload of a drawing as JSON. "+
			"See the easel://scene-format resource for the payload structure."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Drawing record identifier")),
	), s.readDrawing)

	s.mcp.AddTool(mcp.NewTool("delete_drawing",
		mcp.WithDescription("Delete a drawing record permanently."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Drawing record identifier")),
	), s.deleteDrawing)

	s.mcp.AddTool(mcp.NewTool("export_drawing_svg",
		mcp.WithDescription("Render a drawing to standalone SVG markup."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Drawing record identifier")),
	), s.exportDrawingSVG)

	s.mcp.AddTool(mcp.NewTool("get_scene_contract",
		mcp.WithDescription("Returns the canonical scene payload format. "+
			"Call this before interpreting read_drawing output."),
	), s.getSceneContract)

	// Resource: scene payload contract.
	s.mcp.AddResource(
		mcp.NewResource("easel://scene-format", "Scene Format Contract",
			mcp.WithResourceDescription("Canonical JSON structure of a persisted drawing scene."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readSceneFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) listDrawings(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	items, err := s.store.List(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(items) == 0 {
		return mcp.NewToolResultText("no drawings"), nil
	}
	var lines []string
	for _, d := range items {
		lines = append(lines, fmt.Sprintf("%s\t%s\t%s", d.ID, d.Name, d.UpdatedAt.Format("2006-01-02 15:04:05")))
	}
	return mcp.NewToolResultText(strings.Join(lines, "\n")), nil
}

func (s *Server) readDrawing(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	d, err := s.store.Get(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", id)), nil
	}
	out, _ := json.MarshalIndent(d, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) deleteDrawing(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.svc.Delete(ctx, id); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("delete failed: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("deleted: %s", id)), nil
}

func (s *Server) exportDrawingSVG(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	d, err := s.store.Get(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", id)), nil
	}
	svg, err := export.Vector(d.Scene.Elements, d.Scene.AppState, nil)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("export failed: %v", err)), nil
	}
	return mcp.NewToolResultText(string(svg)), nil
}

func (s *Server) getSceneContract(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(SceneFormatContract), nil
}

func (s *Server) readSceneFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "easel://scene-format",
			MIMEType: "text/markdown",
			Text:     SceneFormatContract,
		},
	}, nil
}
