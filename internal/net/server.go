package net

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/peterkuimelis/cosmicloot/internal/game"
	"github.com/peterkuimelis/cosmicloot/internal/log"
)

// Server hosts a battle for one TCP client.
type Server struct {
	Config game.Config
	Port   string
	Pause  time.Duration
	Tracer trace.Tracer
	Out    io.Writer // host console; receives the battle log when set
}

// Run starts the server, waits for a client to join, then runs the battle.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", ":"+s.Port)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	defer ln.Close()

	s.printf("Waiting for a pilot on port %s...\n", s.Port)

	// Accept exactly one connection
	conn, err := ln.Accept()
	if err != nil {
		return fmt.Errorf("accept: %w", err)
	}
	defer conn.Close()

	s.printf("Pilot connected from %s\n", conn.RemoteAddr())
	return s.Serve(ctx, conn)
}

// Serve reads the join handshake from conn and plays one battle over it.
func (s *Server) Serve(ctx context.Context, conn net.Conn) error {
	ctrl := NewNetworkController(conn)
	join, err := ctrl.Recv()
	if err != nil {
		return fmt.Errorf("read join message: %w", err)
	}
	if join.Type != MsgJoin {
		_ = ctrl.Send(ServerMessage{Type: MsgError, Error: "expected join"})
		return fmt.Errorf("expected join message, got %q", join.Type)
	}

	sess, err := s.newSession()
	if err != nil {
		_ = ctrl.Send(ServerMessage{Type: MsgError, Error: err.Error()})
		return err
	}
	s.printf("Battle %s: %s vs %s\n", sess.ID, sess.Snapshot().Player.Name, sess.Snapshot().Opponent.Name)

	return ServeSession(ctx, sess, ctrl)
}

// Play runs a battle locally: the session and a REPL client talk over an
// in-memory pipe, reading commands from in and rendering to out.
func (s *Server) Play(ctx context.Context, in io.Reader, out io.Writer) error {
	sess, err := s.newSession()
	if err != nil {
		return err
	}

	clientConn, serverConn := net.Pipe()
	defer clientConn.Close()

	errCh := make(chan error, 1)
	go func() {
		defer serverConn.Close()
		errCh <- ServeSession(ctx, sess, NewNetworkController(serverConn))
	}()

	client := NewClient(clientConn, in, out)
	if err := client.RunREPL(ctx); err != nil {
		return err
	}
	clientConn.Close()
	return <-errCh
}

func (s *Server) newSession() (*Session, error) {
	cfg := s.Config
	if s.Out != nil {
		cfg.Logger = log.NewTextLogger(s.Out)
	}
	return NewSession(cfg, SessionOptions{Pause: s.Pause, Tracer: s.Tracer})
}

func (s *Server) printf(format string, args ...any) {
	if s.Out != nil {
		fmt.Fprintf(s.Out, format, args...)
	}
}

// encodeJoin writes the join handshake.
func encodeJoin(w io.Writer) error {
	return json.NewEncoder(w).Encode(ClientMessage{Type: MsgJoin})
}
