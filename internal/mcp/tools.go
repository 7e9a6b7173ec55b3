// Package mcp exposes a battle as Model Context Protocol tools, so an agent
// can play it over stdio.
package mcp

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.opentelemetry.io/otel/trace"

	"github.com/peterkuimelis/cosmicloot/internal/game"
	cosmicnet "github.com/peterkuimelis/cosmicloot/internal/net"
)

// Handler owns the single active battle of one stdio process.
type Handler struct {
	config game.Config
	pause  time.Duration
	tracer trace.Tracer

	mu     sync.Mutex
	active *GameSession
}

// NewHandler returns a handler that starts battles from cfg. pause is the
// delay before the enemy acts after end_turn.
func NewHandler(cfg game.Config, pause time.Duration, tracer trace.Tracer) *Handler {
	return &Handler{config: cfg, pause: pause, tracer: tracer}
}

// RegisterTools adds all battle tools to the MCP server.
func (h *Handler) RegisterTools(s *server.MCPServer) {
	s.AddTool(startBattleTool(), h.handleStartBattle)
	s.AddTool(playCardTool(), h.handlePlayCard)
	s.AddTool(endTurnTool(), h.handleEndTurn)
	s.AddTool(getBattleStateTool(), h.handleGetBattleState)
	s.AddTool(listCardsTool(), h.handleListCards)
}

// --- Tool definitions ---

func startBattleTool() mcp.Tool {
	return mcp.NewTool("start_battle",
		mcp.WithDescription("Start a new Cosmic Loot battle against the enemy ship. Returns the opening state: "+
			"your hand, energy, health and shield, and the enemy's telegraphed next action (intent). "+
			"Set restart to true to abandon a running battle."),
		mcp.WithNumber("seed", mcp.Description("Random seed for a reproducible battle (0 or omitted for random)")),
		mcp.WithBoolean("restart", mcp.Description("Abandon the running battle, if any, and start a new one")),
	)
}

func playCardTool() mcp.Tool {
	return mcp.NewTool("play_card",
		mcp.WithDescription("Play a card from your hand during your turn. The card's energy cost is paid and its effect resolves immediately. "+
			"Indices refer to the hand as it is now; playing a card shifts the cards after it down by one."),
		mcp.WithNumber("index", mcp.Required(), mcp.Description("0-based index of the card in your hand")),
	)
}

func endTurnTool() mcp.Tool {
	return mcp.NewTool("end_turn",
		mcp.WithDescription("End your turn: your hand is discarded, the enemy performs its telegraphed action, "+
			"and your next turn starts with a fresh hand, full energy and no shield."),
	)
}

func getBattleStateTool() mcp.Tool {
	return mcp.NewTool("get_battle_state",
		mcp.WithDescription("Get the current battle state and any events not yet reported. Read-only."),
	)
}

func listCardsTool() mcp.Tool {
	return mcp.NewTool("list_cards",
		mcp.WithDescription("List every card in the catalog with its cost and effect. Read-only."),
	)
}

// --- Tool handlers ---

func (h *Handler) handleStartBattle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.active != nil && !h.active.Over() && !request.GetBool("restart", false) {
		return mcp.NewToolResultError("A battle is already running. Finish it or call start_battle with restart=true."), nil
	}

	cfg := h.config
	if seed := request.GetInt("seed", 0); seed != 0 {
		cfg.Seed = int64(seed)
		cfg.Rand = nil
	}

	sess, err := cosmicnet.NewSession(cfg, cosmicnet.SessionOptions{Pause: h.pause, Tracer: h.tracer})
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to start battle: %v", err), nil
	}
	h.active = newGameSession(sess)

	return mcp.NewToolResultText(respondJSON(h.active.response(nil))), nil
}

func (h *Handler) handlePlayCard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, errResult := h.running()
	if errResult != nil {
		return errResult, nil
	}

	index := request.GetInt("index", -1)
	hand := sess.State().You.Hand
	if index < 0 || index >= len(hand) {
		return mcp.NewToolResultErrorf("Invalid index %d. Your hand has %d card(s).", index, len(hand)), nil
	}

	accepted := sess.PlayCard(ctx, index)
	return mcp.NewToolResultText(respondJSON(sess.response(&accepted))), nil
}

func (h *Handler) handleEndTurn(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, errResult := h.running()
	if errResult != nil {
		return errResult, nil
	}

	accepted, err := sess.EndTurn(ctx)
	if err != nil {
		return mcp.NewToolResultErrorf("Enemy turn interrupted: %v. Call end_turn again to resume.", err), nil
	}
	return mcp.NewToolResultText(respondJSON(sess.response(&accepted))), nil
}

func (h *Handler) handleGetBattleState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h.mu.Lock()
	sess := h.active
	h.mu.Unlock()
	if sess == nil {
		return mcp.NewToolResultError("No battle has been started. Use start_battle first."), nil
	}
	return mcp.NewToolResultText(respondJSON(sess.response(nil))), nil
}

// CardInfo is one catalog entry as listed by list_cards.
type CardInfo struct {
	Name        string `json:"name"`
	Cost        int    `json:"cost"`
	Description string `json:"description"`
	Effect      string `json:"effect"`
}

func (h *Handler) handleListCards(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	// The running battle's catalog wins over the configured one.
	h.mu.Lock()
	catalog := h.config.Catalog
	if h.active != nil {
		catalog = h.active.Catalog()
	}
	h.mu.Unlock()
	if catalog == nil {
		catalog = game.DefaultCatalog()
	}
	cards := make([]CardInfo, 0, catalog.Len())
	for _, c := range catalog.Cards() {
		cards = append(cards, CardInfo{Name: c.Name, Cost: c.Cost, Description: c.Description, Effect: c.Effect.Kind.String()})
	}
	data, err := json.Marshal(cards)
	if err != nil {
		return mcp.NewToolResultErrorf("marshal cards: %v", err), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// running returns the active battle, or a tool error when there is none or
// it has already ended.
func (h *Handler) running() (*GameSession, *mcp.CallToolResult) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.active == nil {
		return nil, mcp.NewToolResultError("No battle is running. Use start_battle first.")
	}
	if h.active.Over() {
		return nil, mcp.NewToolResultErrorf("The battle is over (%s). Use start_battle to play again.", cosmicnet.ResultText(h.active.Phase()))
	}
	return h.active, nil
}
