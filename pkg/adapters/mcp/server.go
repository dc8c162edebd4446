// Package mcp exposes a visualizer as Model Context Protocol tools and resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/internal/presentation/graph"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/tree"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Visualizer is the subset of arbor.Visualizer the tools drive.
type Visualizer interface {
	Insert(ctx context.Context, values ...float64) error
	AnimateInsert(ctx context.Context, value float64) (tree.Node, error)
	Highlight(ctx context.Context, value float64) error
	Nodes(order domain.Order) []tree.Node
	Len() int
	Height() int
}

// TreeResponse is the structured result of the insert tool.
type TreeResponse struct {
	Len    int       `json:"len" jsonschema_description:"Number of nodes in the tree"`
	Height int       `json:"height" jsonschema_description:"Number of levels in the tree"`
	Values []float64 `json:"values" jsonschema_description:"Keys in pre-order"`
}

// TraverseResponse is the structured result of the traverse tool.
type TraverseResponse struct {
	Order     string         `json:"order" jsonschema_description:"Traversal order: pre, in or post"`
	Values    []float64      `json:"values" jsonschema_description:"Keys in traversal order"`
	Positions []domain.Point `json:"positions" jsonschema_description:"Screen position of each visited node"`
}

// Server wraps a Visualizer and exposes it as an MCP Server.
type Server struct {
	viz       Visualizer
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(viz Visualizer) *Server {
	s := &Server{
		viz:       viz,
		mcpServer: server.NewMCPServer("arbor-mcp", strings.TrimSpace(arbor.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying server, for in-process transports.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves on the given port using SSE until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	// TOOL: insert
	insertTool := mcp.NewTool("insert",
		mcp.WithDescription("Insert numeric keys into the binary search tree."),
		mcp.WithString("values", mcp.Required(), mcp.Description("Comma separated numbers, e.g. \"8, 3, 10\"")),
		mcp.WithBoolean("animate", mcp.Description("Play descent cues and a reveal for every value")),
		mcp.WithOutputSchema[TreeResponse](),
	)
	s.mcpServer.AddTool(insertTool, mcp.NewStructuredToolHandler(s.handleInsert))

	// TOOL: traverse
	traverseTool := mcp.NewTool("traverse",
		mcp.WithDescription("List the tree's keys in pre-, in- or post-order."),
		mcp.WithString("order", mcp.Required(), mcp.Description("pre, in or post")),
		mcp.WithOutputSchema[TraverseResponse](),
	)
	s.mcpServer.AddTool(traverseTool, mcp.NewStructuredToolHandler(s.handleTraverse))

	// TOOL: highlight
	s.mcpServer.AddTool(mcp.NewTool("highlight",
		mcp.WithDescription("Emphasize the node holding a key. The tree must have been revealed."),
		mcp.WithNumber("value", mcp.Required(), mcp.Description("Key to highlight")),
	), s.handleHighlight)

	// TOOL: get_graph
	s.mcpServer.AddTool(mcp.NewTool("get_graph",
		mcp.WithDescription("Get the tree as a Mermaid diagram, optionally marking traversal progress."),
		mcp.WithString("order", mcp.Description("Traversal to mark: pre, in or post (optional)")),
		mcp.WithNumber("step", mcp.Description("How many nodes of the traversal are visited (default: all)")),
	), s.handleGraph)
}

func (s *Server) handleInsert(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (TreeResponse, error) {
	raw, _ := args["values"].(string)
	values, err := parseValues(raw)
	if err != nil {
		return TreeResponse{}, err
	}

	if animate, _ := args["animate"].(bool); animate {
		for _, v := range values {
			if _, err := s.viz.AnimateInsert(ctx, v); err != nil {
				return TreeResponse{}, fmt.Errorf("insert failed: %w", err)
			}
		}
	} else if err := s.viz.Insert(ctx, values...); err != nil {
		return TreeResponse{}, fmt.Errorf("insert failed: %w", err)
	}

	return TreeResponse{
		Len:    s.viz.Len(),
		Height: s.viz.Height(),
		Values: keys(s.viz.Nodes(domain.PreOrder)),
	}, nil
}

func (s *Server) handleTraverse(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (TraverseResponse, error) {
	name, _ := args["order"].(string)
	order, err := domain.ParseOrder(name)
	if err != nil {
		return TraverseResponse{}, err
	}

	nodes := s.viz.Nodes(order)
	resp := TraverseResponse{
		Order:     order.String(),
		Values:    keys(nodes),
		Positions: make([]domain.Point, 0, len(nodes)),
	}
	for _, n := range nodes {
		resp.Positions = append(resp.Positions, n.Position)
	}
	return resp, nil
}

func (s *Server) handleHighlight(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	value, err := request.RequireFloat("value")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.viz.Highlight(ctx, value); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("highlight failed: %v", err)), nil
	}
	return mcp.NewToolResultText("highlighted " + tree.FormatValue(value)), nil
}

func (s *Server) handleGraph(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var overlay *graph.GraphOverlay
	if name := request.GetString("order", ""); name != "" {
		order, err := domain.ParseOrder(name)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		nodes := s.viz.Nodes(order)
		step := request.GetInt("step", len(nodes))
		overlay = &graph.GraphOverlay{}
		for i := 0; i < step && i < len(nodes); i++ {
			overlay.Visited = append(overlay.Visited, nodes[i].ID)
		}
	}
	return mcp.NewToolResultText(graph.GenerateMermaid(s.viz.Nodes(domain.PreOrder), overlay)), nil
}

func (s *Server) registerResources() {
	// EXPOSE: arbor://tree
	s.mcpServer.AddResource(mcp.NewResource("arbor://tree", "Current Tree",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(s.viz.Nodes(domain.PreOrder))
		if err != nil {
			return nil, fmt.Errorf("failed to encode tree: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "arbor://tree",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}

// parseValues reads a comma or space separated list of finite numbers.
// Infinite keys are refused because tool results are JSON.
func parseValues(raw string) ([]float64, error) {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	if len(fields) == 0 {
		return nil, fmt.Errorf("no values given: %w", domain.ErrInvalidValue)
	}
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
			return nil, fmt.Errorf("%q is not a finite number: %w", f, domain.ErrInvalidValue)
		}
		out = append(out, v)
	}
	return out, nil
}

func keys(nodes []tree.Node) []float64 {
	out := make([]float64, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Value)
	}
	return out
}
