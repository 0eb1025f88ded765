package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"

	"github.com/wricardo/dragons-aside/game/engine"
	"github.com/wricardo/dragons-aside/game/service"
	"github.com/wricardo/dragons-aside/game/view"
	"github.com/wricardo/dragons-aside/logging"
)

// Version is reported to MCP clients
const Version = "1.0.0"

var errNoSession = errors.New("no session_id given and no default session; call new_session first")

// Server exposes the game service as MCP tools
type Server struct {
	svc       service.GameService
	mcpServer *server.MCPServer
	log       logrus.FieldLogger

	mu             sync.RWMutex
	defaultSession string
}

// NewServer creates an MCP server named name with every game tool registered
func NewServer(name string, svc service.GameService, log logrus.FieldLogger) *Server {
	if log == nil {
		log = logging.Discard()
	}
	s := &Server{
		svc: svc,
		log: log,
	}
	s.initMCPServer(name)
	return s
}

// initMCPServer initializes the MCP server with all tools
func (s *Server) initMCPServer(name string) {
	s.mcpServer = server.NewMCPServer(
		name,
		Version,
		server.WithToolCapabilities(true),
		server.WithInstructions(`Dragons Aside - MCP Interface

Build a road from the bottom-left corner to the top-right corner of a 6x8 board.

AVAILABLE TOOLS:
- new_session: Start a new session (optional seed)
- list_sessions: List active sessions
- game_state: Board, status and hand
- draw_tile: Draw the next tile (dragons resolve immediately)
- rotate_hand: Rotate the held road tile clockwise
- place_tile: Place the held tile at x,y
- select_cell / rotate_selected: Highlight and rotate a board cell
- new_game: Deal a fresh game in the session
- game_events: Read the event log
- game_instructions: Full rules

Every game tool takes an optional session_id; without it the default session is used.`),
	)

	s.registerTools()
}

func sessionProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Session ID (optional, defaults to the current session)",
	}
}

func coordinateProperties() map[string]interface{} {
	return map[string]interface{}{
		"session_id": sessionProperty(),
		"x": map[string]interface{}{
			"type":        "integer",
			"minimum":     0,
			"maximum":     engine.Width - 1,
			"description": "Column, 0 is the left edge",
		},
		"y": map[string]interface{}{
			"type":        "integer",
			"minimum":     0,
			"maximum":     engine.Height - 1,
			"description": "Row, 0 is the top edge",
		},
	}
}

func sessionOnlySchema() mcp.ToolInputSchema {
	return mcp.ToolInputSchema{
		Type: "object",
		Properties: map[string]interface{}{
			"session_id": sessionProperty(),
		},
	}
}

// registerTools registers all MCP tools
func (s *Server) registerTools() {
	// Session management
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "new_session",
		Description: "Create a new game session and make it the default",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"seed": map[string]interface{}{
					"type":        "integer",
					"description": "Seed for a reproducible game (optional)",
				},
			},
		},
	}, s.handleNewSession)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleListSessions)

	// Game state
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the board, status line and held tile",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"format": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"text", "json"},
					"description": "Output format (default text)",
				},
				"overlays": map[string]interface{}{
					"type":        "boolean",
					"description": "Mark reachable cells and valid moves (default true)",
				},
			},
		},
	}, s.handleGameState)

	// Turn actions
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "draw_tile",
		Description: "Draw the next tile from the pile. Roads go to the hand; dragons resolve immediately",
		InputSchema: sessionOnlySchema(),
	}, s.handleDraw)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "rotate_hand",
		Description: "Rotate the held road tile 90 degrees clockwise",
		InputSchema: sessionOnlySchema(),
	}, s.handleRotateHand)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "place_tile",
		Description: "Place the held tile on an empty or equipment cell",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: coordinateProperties(),
			Required:   []string{"x", "y"},
		},
	}, s.handlePlace)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "select_cell",
		Description: "Highlight a board cell (replaces any previous selection)",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: coordinateProperties(),
			Required:   []string{"x", "y"},
		},
	}, s.handleSelect)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "rotate_selected",
		Description: "Rotate the selected board cell clockwise",
		InputSchema: sessionOnlySchema(),
	}, s.handleRotateSelected)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "new_game",
		Description: "Deal a fresh game in the session",
		InputSchema: sessionOnlySchema(),
	}, s.handleNewGame)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "game_events",
		Description: "Read the session event log",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"since": map[string]interface{}{
					"type":        "integer",
					"description": "Only events after this sequence number",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum events to return (default 20)",
				},
				"order": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"asc", "desc"},
					"description": "Sort order (default desc)",
				},
			},
		},
	}, s.handleEvents)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get the game rules and board legend",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleInstructions)
}

// GetMCPServer returns the underlying MCP server
func (s *Server) GetMCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio serves the tools over stdin/stdout until the input closes
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// SetDefaultSession makes id the session used when a tool omits session_id
func (s *Server) SetDefaultSession(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.defaultSession = id
}

// DefaultSession returns the fallback session ID
func (s *Server) DefaultSession() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.defaultSession
}

// Argument helpers

func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, _ := request.Params.Arguments.(map[string]interface{})
	if args == nil {
		return map[string]interface{}{}
	}
	return args
}

// intArg reads a whole number; JSON numbers arrive as float64
func intArg(args map[string]interface{}, key string) (int, bool, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return 0, false, nil
	}
	switch v := raw.(type) {
	case float64:
		if v != math.Trunc(v) {
			return 0, true, fmt.Errorf("%s must be a whole number", key)
		}
		return int(v), true, nil
	case int:
		return v, true, nil
	case int64:
		return int(v), true, nil
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, true, fmt.Errorf("%s must be a whole number", key)
		}
		return int(n), true, nil
	}
	return 0, true, fmt.Errorf("%s must be a number", key)
}

func (s *Server) sessionID(args map[string]interface{}) (string, error) {
	if id, _ := args["session_id"].(string); id != "" {
		return id, nil
	}
	if id := s.DefaultSession(); id != "" {
		return id, nil
	}
	return "", errNoSession
}

func (s *Server) coordinates(args map[string]interface{}) (int, int, error) {
	x, okX, err := intArg(args, "x")
	if err != nil {
		return 0, 0, err
	}
	y, okY, err := intArg(args, "y")
	if err != nil {
		return 0, 0, err
	}
	if !okX || !okY {
		return 0, 0, errors.New("x and y are required")
	}
	return x, y, nil
}

// Handlers

func (s *Server) handleNewSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	seed, _, err := intArg(args, "seed")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	info, err := s.svc.CreateSession(ctx, int64(seed))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	s.SetDefaultSession(info.ID)
	s.log.WithField("session", info.ID).Info("mcp session created")

	var b strings.Builder
	fmt.Fprintf(&b, "Created session: %s (seed %d)\n\n", info.ID, info.Seed)
	b.WriteString(view.Render(info.State, view.Options{Overlays: true}))
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessions, err := s.svc.ListSessions(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(sessions) == 0 {
		return mcp.NewToolResultText("No active sessions"), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Active sessions (%d):\n", len(sessions))
	current := s.DefaultSession()
	for _, info := range sessions {
		marker := " "
		if info.ID == current {
			marker = "*"
		}
		fmt.Fprintf(&b, "%s %s  seed=%d  phase=%s  last used %s\n",
			marker, info.ID, info.Seed, info.Phase, info.LastAccessedAt.Format("15:04:05"))
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	id, err := s.sessionID(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	snap, err := s.svc.GetState(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if format, _ := args["format"].(string); format == "json" {
		data, err := json.MarshalIndent(snap, "", "  ")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(string(data)), nil
	}

	opts := view.Options{Overlays: true}
	if overlays, ok := args["overlays"].(bool); ok {
		opts.Overlays = overlays
	}
	return mcp.NewToolResultText(formatState(id, snap, opts)), nil
}

// runAction calls a service action for the requested session and formats the result
func (s *Server) runAction(ctx context.Context, request mcp.CallToolRequest, action func(ctx context.Context, id string, args map[string]interface{}) (*service.ActionResult, error)) (*mcp.CallToolResult, error) {
	args := arguments(request)
	id, err := s.sessionID(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := action(ctx, id, args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if !result.Success {
		return mcp.NewToolResultError(formatActionResult(id, result)), nil
	}
	return mcp.NewToolResultText(formatActionResult(id, result)), nil
}

func (s *Server) handleDraw(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.runAction(ctx, request, func(ctx context.Context, id string, _ map[string]interface{}) (*service.ActionResult, error) {
		return s.svc.Draw(ctx, id)
	})
}

func (s *Server) handleRotateHand(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.runAction(ctx, request, func(ctx context.Context, id string, _ map[string]interface{}) (*service.ActionResult, error) {
		return s.svc.RotateHand(ctx, id)
	})
}

func (s *Server) handlePlace(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.runAction(ctx, request, func(ctx context.Context, id string, args map[string]interface{}) (*service.ActionResult, error) {
		x, y, err := s.coordinates(args)
		if err != nil {
			return nil, err
		}
		return s.svc.Place(ctx, id, x, y)
	})
}

func (s *Server) handleSelect(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.runAction(ctx, request, func(ctx context.Context, id string, args map[string]interface{}) (*service.ActionResult, error) {
		x, y, err := s.coordinates(args)
		if err != nil {
			return nil, err
		}
		return s.svc.Select(ctx, id, x, y)
	})
}

func (s *Server) handleRotateSelected(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.runAction(ctx, request, func(ctx context.Context, id string, _ map[string]interface{}) (*service.ActionResult, error) {
		return s.svc.RotateSelected(ctx, id)
	})
}

func (s *Server) handleNewGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.runAction(ctx, request, func(ctx context.Context, id string, _ map[string]interface{}) (*service.ActionResult, error) {
		return s.svc.NewGame(ctx, id)
	})
}

func (s *Server) handleEvents(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	id, err := s.sessionID(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	opts := service.EventOptions{Limit: 20, Order: "desc"}
	if since, ok, err := intArg(args, "since"); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	} else if ok {
		opts.Since = since
	}
	if limit, ok, err := intArg(args, "limit"); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	} else if ok {
		opts.Limit = limit
	}
	if order, _ := args["order"].(string); order == "asc" || order == "desc" {
		opts.Order = order
	}

	resp, err := s.svc.GetEvents(ctx, id, opts)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Events for %s (last seq %d, %d retained):\n", id, resp.LastSeq, resp.Retained)
	b.WriteString(view.RenderEvents(resp.Events))
	if resp.HasMore {
		b.WriteString("... more events available\n")
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handleInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(instructions()), nil
}

// Formatting

func formatState(id string, snap *engine.Snapshot, opts view.Options) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Session %s (seed %d)\n", id, snap.Seed)
	b.WriteString(view.Render(snap, opts))
	b.WriteString(view.RenderLegend(opts))
	b.WriteByte('\n')
	return b.String()
}

func formatActionResult(id string, result *service.ActionResult) string {
	var b strings.Builder
	if result.Success {
		fmt.Fprintf(&b, "✓ %s: %s\n", result.Action, result.Message)
	} else {
		fmt.Fprintf(&b, "✗ %s failed: %s\n", result.Action, result.Message)
	}
	if result.Drawn != nil {
		fmt.Fprintf(&b, "Drawn: %s\n", result.Drawn)
	}
	if len(result.Events) > 0 {
		b.WriteString("Events:\n")
		b.WriteString(view.RenderEvents(result.Events))
	}
	if result.Snapshot != nil {
		b.WriteByte('\n')
		b.WriteString(formatState(id, result.Snapshot, view.Options{Overlays: true}))
	}
	return b.String()
}

func instructions() string {
	return fmt.Sprintf(`DRAGONS ASIDE - RULES

GOAL
Join the start corner (bottom-left, S at 0,%d) to the finish corner
(top-right, F at %d,0) of a %dx%d board.
Empty and equipment cells count as open ground: the start region spreads
through them freely, and an open finish corner already counts as reached.
So while the finish is open, almost any placement that leaves open ground
between the corners wins at once. A full road is only needed once dragons
or roads close the open ground off.

TURN
1. draw_tile takes the top tile of a %d-tile pile.
   - Road tiles go to your hand. rotate_hand turns them clockwise.
   - Dragons resolve at once: if you hold equipment, one piece is spent and
     the dragon is driven off. Otherwise it lands on a random empty cell
     and blocks it for the rest of the game.
2. place_tile puts the held road on an empty or equipment cell.
   Placing on equipment (E) collects it.
3. You win as soon as a placement, or a rotate_selected on a placed road,
   lets the start region meet the finish region. The game is lost when the
   pile runs out.

PILE
1 dead end, 7 straights, 7 T-junctions, 4 turns, 2 crossroads, %d dragons.
%d equipment cells are dealt on the inner rows at the start.

BOARD
x grows to the right from 0, y grows downward from 0.
%s
`, engine.Height-1, engine.Width-1, engine.Width, engine.Height, engine.PileSize,
		engine.DragonCount, engine.EquipmentCount, view.RenderLegend(view.Options{Overlays: true}))
}
