package net

// Message types for the JSON protocol shared by the TCP and WebSocket drivers.

const (
	MsgJoin    = "join"
	MsgPlay    = "play"
	MsgEndTurn = "end_turn"
	MsgQuit    = "quit"

	MsgState    = "state"
	MsgNotify   = "notify"
	MsgGameOver = "game_over"
	MsgError    = "error"
)

// --- Server → Client messages ---

// ServerMessage is the envelope for all server-to-client messages.
type ServerMessage struct {
	Type string `json:"type"`

	// For "notify"
	Event *EventView `json:"event,omitempty"`

	// For "state" and "game_over"
	State *StateView `json:"state,omitempty"`

	// For "game_over"
	Result string `json:"result,omitempty"`

	// For "error"
	Error string `json:"error,omitempty"`
}

// EventView is a simplified battle event for the client.
type EventView struct {
	Seq     int    `json:"seq"`
	Turn    int    `json:"turn"`
	Phase   string `json:"phase"`
	Actor   string `json:"actor,omitempty"`
	Type    string `json:"type"`
	Card    string `json:"card,omitempty"`
	Details string `json:"details"`
}

// CardView describes one card in the hand.
type CardView struct {
	Index       int    `json:"index"`
	Name        string `json:"name"`
	Cost        int    `json:"cost"`
	Description string `json:"description"`
	Playable    bool   `json:"playable"`
}

// StateView is the battle as the player sees it.
type StateView struct {
	SessionID  string       `json:"session_id,omitempty"`
	Turn       int          `json:"turn"`
	Phase      string       `json:"phase"`
	IsYourTurn bool         `json:"is_your_turn"`
	Over       bool         `json:"over"`
	You        PlayerView   `json:"you"`
	Opponent   OpponentView `json:"opponent"`
}

// PlayerView shows the player's side.
type PlayerView struct {
	Name         string     `json:"name"`
	HP           int        `json:"hp"`
	MaxHP        int        `json:"max_hp"`
	Shield       int        `json:"shield"`
	Energy       int        `json:"energy"`
	MaxEnergy    int        `json:"max_energy"`
	Hand         []CardView `json:"hand"`
	DeckCount    int        `json:"deck_count"`
	DiscardCount int        `json:"discard_count"`
	Status       string     `json:"status,omitempty"`
}

// OpponentView shows the opponent's side, including its telegraphed intent.
type OpponentView struct {
	Name   string `json:"name"`
	HP     int    `json:"hp"`
	MaxHP  int    `json:"max_hp"`
	Shield int    `json:"shield"`
	Status string `json:"status,omitempty"`
	Intent string `json:"intent"` // e.g. "Attack (12)"
}

// --- Client → Server messages ---

// ClientMessage is the envelope for all client-to-server messages.
type ClientMessage struct {
	Type string `json:"type"`

	// For "play": 0-based hand index
	Index int `json:"index"`
}
