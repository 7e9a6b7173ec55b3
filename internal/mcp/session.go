package mcp

import (
	"encoding/json"
	"fmt"
	"sync"

	cosmicnet "github.com/peterkuimelis/cosmicloot/internal/net"
)

// ToolResponse is the JSON envelope returned by all MCP tools.
type ToolResponse struct {
	SessionID string                `json:"session_id"`
	Accepted  *bool                 `json:"accepted,omitempty"` // set by commands, absent for reads
	Events    []cosmicnet.EventView `json:"events"`
	State     *cosmicnet.StateView  `json:"state"`
	GameOver  bool                  `json:"game_over"`
	Result    string                `json:"result,omitempty"`
}

// GameSession is the battle an MCP client is playing, plus how much of its
// event log has already been reported.
type GameSession struct {
	*cosmicnet.Session

	mu   sync.Mutex
	sent int
}

func newGameSession(sess *cosmicnet.Session) *GameSession {
	return &GameSession{Session: sess}
}

// drainEvents returns the events not yet reported and advances the cursor.
func (s *GameSession) drainEvents() []cosmicnet.EventView {
	s.mu.Lock()
	defer s.mu.Unlock()

	events := s.EventsSince(s.sent)
	s.sent += len(events)

	views := make([]cosmicnet.EventView, 0, len(events))
	for _, e := range events {
		views = append(views, *cosmicnet.BuildEventView(e))
	}
	return views
}

// response builds the tool response for the session's current state.
func (s *GameSession) response(accepted *bool) *ToolResponse {
	resp := &ToolResponse{
		SessionID: s.ID,
		Accepted:  accepted,
		Events:    s.drainEvents(),
		State:     s.State(),
	}
	if resp.State.Over {
		resp.GameOver = true
		resp.Result = cosmicnet.ResultText(s.Phase())
	}
	return resp
}

// respondJSON marshals a ToolResponse to a JSON string.
func respondJSON(resp *ToolResponse) string {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}
