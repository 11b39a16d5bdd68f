// Package mcp exposes a deck session to Model Context Protocol clients
// over stdio, so agents can drive a presentation the same way a human
// presenter does.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/tiberius-s/fireside"
	"github.com/tiberius-s/fireside/pkg/domain"
	"github.com/tiberius-s/fireside/pkg/schema"
	"github.com/tiberius-s/fireside/pkg/traversal"
)

// NodeView is the wire shape of a node as seen by MCP clients.
type NodeView struct {
	Position     int          `json:"position" jsonschema_description:"Zero-based position in the deck"`
	ID           string       `json:"id,omitempty" jsonschema_description:"Node identifier, if assigned"`
	BlockKinds   []string     `json:"block_kinds" jsonschema_description:"Kinds of the node's content blocks, in order"`
	SpeakerNotes string       `json:"speaker_notes,omitempty"`
	Prompt       string       `json:"prompt,omitempty" jsonschema_description:"Branch prompt, if the node is a branch point"`
	Options      []OptionView `json:"options,omitempty" jsonschema_description:"Branch options selectable from this node"`
}

// OptionView is one selectable branch option.
type OptionView struct {
	Key    string `json:"key"`
	Label  string `json:"label"`
	Target string `json:"target"`
}

// MoveResponse reports the outcome of a navigation tool call.
type MoveResponse struct {
	Moved bool      `json:"moved" jsonschema_description:"False when the move hit a deck boundary"`
	From  int       `json:"from"`
	To    int       `json:"to"`
	Node  *NodeView `json:"node,omitempty" jsonschema_description:"The node now presented, when the move succeeded"`
}

// Server wraps a Session and exposes it as an MCP server.
type Server struct {
	session   *fireside.Session
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates an MCP server over the given session.
func NewServer(session *fireside.Session, logger *slog.Logger) *Server {
	s := &Server{
		session:   session,
		logger:    logger,
		mcpServer: server.NewMCPServer("fireside-mcp", fireside.Version),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	// TOOL: current_node
	currentTool := mcp.NewTool("current_node",
		mcp.WithDescription("Describe the node currently presented, including branch options if any."),
		mcp.WithOutputSchema[NodeView](),
	)
	s.mcpServer.AddTool(currentTool, mcp.NewStructuredToolHandler(s.handleCurrent))

	// TOOL: advance
	advanceTool := mcp.NewTool("advance",
		mcp.WithDescription("Move forward through the deck following its default traversal order."),
		mcp.WithOutputSchema[MoveResponse](),
	)
	s.mcpServer.AddTool(advanceTool, mcp.NewStructuredToolHandler(s.handleAdvance))

	// TOOL: choose
	chooseTool := mcp.NewTool("choose",
		mcp.WithDescription("Follow a branch option from the current node."),
		mcp.WithString("key", mcp.Required(), mcp.Description("Single-character option key")),
		mcp.WithOutputSchema[MoveResponse](),
	)
	s.mcpServer.AddTool(chooseTool, mcp.NewStructuredToolHandler(s.handleChoose))

	// TOOL: jump
	jumpTool := mcp.NewTool("jump",
		mcp.WithDescription("Jump to an arbitrary position in the deck."),
		mcp.WithNumber("position", mcp.Required(), mcp.Description("Zero-based node position")),
		mcp.WithOutputSchema[MoveResponse](),
	)
	s.mcpServer.AddTool(jumpTool, mcp.NewStructuredToolHandler(s.handleJump))

	// TOOL: back
	backTool := mcp.NewTool("back",
		mcp.WithDescription("Return to the most recently visited node."),
		mcp.WithOutputSchema[MoveResponse](),
	)
	s.mcpServer.AddTool(backTool, mcp.NewStructuredToolHandler(s.handleBack))

	// TOOL: validate
	s.mcpServer.AddTool(mcp.NewTool("validate",
		mcp.WithDescription("Run structural diagnostics over the deck."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		diags := s.session.Validate()
		lines := make([]string, len(diags))
		for i, d := range diags {
			lines[i] = d.String()
		}
		jsonBytes, _ := json.Marshal(lines)
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})
}

// Handler methods for structured tools

func (s *Server) handleCurrent(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (NodeView, error) {
	node := s.session.Current()
	if node == nil {
		return NodeView{}, fmt.Errorf("deck has no nodes")
	}
	return nodeView(s.session.Position(), node), nil
}

func (s *Server) handleAdvance(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (MoveResponse, error) {
	return s.moveResponse(s.session.Advance()), nil
}

func (s *Server) handleChoose(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (MoveResponse, error) {
	key, _ := args["key"].(string)
	runes := []rune(key)
	if len(runes) != 1 {
		return MoveResponse{}, fmt.Errorf("key must be a single character, got %q", key)
	}

	res, err := s.session.Choose(runes[0])
	if err != nil {
		return MoveResponse{}, fmt.Errorf("choose failed: %w", err)
	}
	return s.moveResponse(res), nil
}

func (s *Server) handleJump(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (MoveResponse, error) {
	pos, ok := args["position"].(float64)
	if !ok {
		return MoveResponse{}, fmt.Errorf("position must be a number")
	}

	res, err := s.session.Jump(int(pos))
	if err != nil {
		return MoveResponse{}, fmt.Errorf("jump failed: %w", err)
	}
	return s.moveResponse(res), nil
}

func (s *Server) handleBack(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (MoveResponse, error) {
	return s.moveResponse(s.session.Back()), nil
}

func (s *Server) moveResponse(res traversal.Result) MoveResponse {
	resp := MoveResponse{Moved: res.Moved, From: res.From, To: res.To}
	if res.Moved {
		if node := s.session.Current(); node != nil {
			view := nodeView(res.To, node)
			resp.Node = &view
		}
	} else {
		s.logger.Debug("move hit boundary", "position", s.session.Position())
	}
	return resp
}

func nodeView(pos int, node *domain.Node) NodeView {
	view := NodeView{
		Position:     pos,
		ID:           node.ID,
		SpeakerNotes: node.SpeakerNotes,
	}
	view.BlockKinds = make([]string, len(node.Blocks))
	for i, b := range node.Blocks {
		view.BlockKinds[i] = string(b.Kind)
	}
	if node.Traversal != nil && node.Traversal.BranchPoint != nil {
		bp := node.Traversal.BranchPoint
		view.Prompt = bp.Prompt
		for _, opt := range bp.Options {
			view.Options = append(view.Options, OptionView{
				Key:    string(opt.Key),
				Label:  opt.Label,
				Target: opt.Target,
			})
		}
	}
	return view
}

func (s *Server) registerResources() {
	// EXPOSE: fireside://deck
	s.mcpServer.AddResource(mcp.NewResource("fireside://deck", "Current Deck Definition",
		mcp.WithMIMEType("application/yaml"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		data, err := schema.Marshal(s.session.Graph())
		if err != nil {
			return nil, fmt.Errorf("failed to serialize deck: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "fireside://deck",
				MIMEType: "application/yaml",
				Text:     string(data),
			},
		}, nil
	})
}
