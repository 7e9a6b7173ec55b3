package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"go.opentelemetry.io/otel/trace"

	"github.com/peterkuimelis/cosmicloot/internal/game"
	cosmicnet "github.com/peterkuimelis/cosmicloot/internal/net"
)

//go:embed static
var staticFiles embed.FS

// CardInfo is the JSON representation of a card for the /api/cards endpoint.
type CardInfo struct {
	Name        string `json:"name"`
	Cost        int    `json:"cost"`
	Description string `json:"description"`
	Effect      string `json:"effect"`
	Amount      int    `json:"amount"`
	Draw        int    `json:"draw,omitempty"`
}

// Server is the cosmicloot web UI server. Every WebSocket connection plays
// its own battle.
type Server struct {
	config game.Config
	pause  time.Duration
	tracer trace.Tracer
	mux    *http.ServeMux

	mu       sync.Mutex
	sessions map[string]*cosmicnet.Session
}

// NewServer creates a new web server that starts battles from cfg.
func NewServer(cfg game.Config, pause time.Duration, tracer trace.Tracer) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Server{
		config:   cfg,
		pause:    pause,
		tracer:   tracer,
		mux:      http.NewServeMux(),
		sessions: make(map[string]*cosmicnet.Session),
	}
	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	// Embedded static files
	staticFS, _ := fs.Sub(staticFiles, "static")

	// Serve index.html at root
	s.mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		f, err := staticFS.Open("index.html")
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		defer f.Close()
		io.Copy(w, f.(io.Reader))
	})

	// Static CSS/JS
	s.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	// API endpoints
	s.mux.HandleFunc("GET /api/cards", s.handleCards)
	s.mux.HandleFunc("GET /api/deck", s.handleDeck)
	s.mux.HandleFunc("GET /api/state", s.handleState)

	// Battle over WebSocket
	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s.mux)
}

func (s *Server) handleCards(w http.ResponseWriter, r *http.Request) {
	cards := make([]CardInfo, 0, s.config.Catalog.Len())
	for _, c := range s.config.Catalog.Cards() {
		cards = append(cards, CardInfo{
			Name:        c.Name,
			Cost:        c.Cost,
			Description: c.Description,
			Effect:      c.Effect.Kind.String(),
			Amount:      c.Effect.Amount,
			Draw:        c.Effect.Draw,
		})
	}
	writeJSON(w, cards)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	s.mu.Lock()
	sess, ok := s.sessions[id]
	s.mu.Unlock()
	if !ok {
		http.Error(w, "unknown session", http.StatusNotFound)
		return
	}
	writeJSON(w, sess.State())
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	wsConn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // Allow connections from any origin
	})
	if err != nil {
		log.Printf("WebSocket accept error: %v", err)
		return
	}
	defer wsConn.CloseNow()

	ctx := r.Context()

	sess, err := cosmicnet.NewSession(s.config, cosmicnet.SessionOptions{Pause: s.pause, Tracer: s.tracer})
	if err != nil {
		log.Printf("start battle: %v", err)
		wsConn.Close(websocket.StatusInternalError, "could not start battle")
		return
	}
	s.track(sess)
	defer s.untrack(sess)

	t := &wsTransport{ctx: ctx, conn: wsConn}
	if err := cosmicnet.ServeSession(ctx, sess, t); err != nil {
		if isClosed(err) {
			return
		}
		log.Printf("battle %s: %v", sess.ID, err)
		wsConn.Close(websocket.StatusInternalError, "battle error")
		return
	}
	wsConn.Close(websocket.StatusNormalClosure, "battle ended")
}

func (s *Server) track(sess *cosmicnet.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
}

func (s *Server) untrack(sess *cosmicnet.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sess.ID)
}

// wsTransport carries protocol messages as WebSocket text frames.
type wsTransport struct {
	ctx  context.Context
	conn *websocket.Conn
}

func (t *wsTransport) Send(msg cosmicnet.ServerMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return t.conn.Write(t.ctx, websocket.MessageText, data)
}

func (t *wsTransport) Recv() (cosmicnet.ClientMessage, error) {
	var msg cosmicnet.ClientMessage
	_, data, err := t.conn.Read(t.ctx)
	if err != nil {
		return msg, err
	}
	if err := json.Unmarshal(data, &msg); err != nil {
		return msg, fmt.Errorf("decode client message: %w", err)
	}
	return msg, nil
}

// isClosed reports whether err just means the browser went away.
func isClosed(err error) bool {
	switch websocket.CloseStatus(err) {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway:
		return true
	}
	return errors.Is(err, context.Canceled) || errors.Is(err, io.EOF)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
