// Package control turns websocket messages into keyboard controller actions.
package control

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/frudas24/keyslice/internal/keyboard"
	"github.com/frudas24/keyslice/internal/layouts"
	"github.com/frudas24/keyslice/internal/log"
	"github.com/frudas24/keyslice/internal/session"
	"github.com/frudas24/keyslice/internal/wininput"
)

// Server handles websocket keyboard control. It serializes every controller call.
type Server struct {
	mu       sync.Mutex
	upgrader websocket.Upgrader
	session  *session.Session
	keyboard *keyboard.Controller
	presets  []layouts.Preset
	threadID uint32
	logger   *slog.Logger
	conn     *websocket.Conn
}

// NewServer creates a control websocket server.
func NewServer(sess *session.Session, kb *keyboard.Controller, presets []layouts.Preset, threadID uint32, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Server{
		session:  sess,
		keyboard: kb,
		presets:  presets,
		threadID: threadID,
		logger:   logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// ServeHTTP upgrades the connection and processes control messages.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !s.session.IsAuthenticated() {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	if !s.connFree() {
		http.Error(w, "control connection already active", http.StatusConflict)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	if err := s.acceptConn(conn); err != nil {
		_ = conn.Close()
		return
	}
	defer s.cleanupConn(conn)
	s.logger.Info("control client connected", "remote", r.RemoteAddr)

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		if err := conn.WriteJSON(s.HandleMessage(msg)); err != nil {
			return
		}
	}
}

// connFree reports whether no control connection is active.
func (s *Server) connFree() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn == nil
}

// acceptConn ensures only one active control connection exists.
func (s *Server) acceptConn(conn *websocket.Conn) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn != nil {
		return fmt.Errorf("control connection already active")
	}
	s.conn = conn
	return nil
}

// cleanupConn clears the active connection and lifts any keys the client left held.
func (s *Server) cleanupConn(conn *websocket.Conn) {
	_ = conn.Close()
	s.mu.Lock()
	if err := s.keyboard.ReleaseAllHeldKeys(); err != nil {
		s.logger.Error("release held keys on disconnect", "error", err)
	}
	if s.conn == conn {
		s.conn = nil
	}
	s.mu.Unlock()
	s.logger.Info("control client disconnected")
}

// ReleaseAll releases every key held through the control connection.
func (s *Server) ReleaseAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.keyboard.ReleaseAllHeldKeys()
}

// HandleMessage applies a single control message and builds its reply.
func (s *Server) HandleMessage(msg Message) Reply {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logger.Log(context.Background(), log.LevelTrace, "control message", "t", msg.T, "id", msg.ID, "key", msg.Key)

	var dropped bool
	err := func() error {
		switch msg.T {
		case "inputEnabled":
			if msg.Enabled == nil {
				return errMissingEnabled
			}
			s.session.SetInputEnabled(*msg.Enabled)
			return nil
		case "state":
			return nil
		}
		actions, err := ActionsFor(msg, s.presets)
		if err != nil {
			return err
		}
		if !s.session.InputEnabled() {
			dropped = len(actions) > 0
			return nil
		}
		return s.applyActions(actions)
	}()

	reply := s.stateReply(msg.ID)
	reply.Dropped = dropped
	if err != nil {
		s.logger.Warn("control action failed", "t", msg.T, "error", err)
		reply.T = ReplyError
		reply.Error = err.Error()
	}
	return reply
}

// stateReply snapshots the controller state. Callers hold s.mu.
func (s *Server) stateReply(id int) Reply {
	held := s.keyboard.HeldKeys()
	if held == nil {
		held = []keyboard.SpecialKey{}
	}
	return Reply{
		T:        ReplyOK,
		ID:       id,
		Held:     held,
		CapsLock: s.keyboard.CapsLock(),
		Layout:   s.keyboard.ActiveLayout(s.threadID).String(),
	}
}

// applyActions executes actions in order, stopping at the first failure.
func (s *Server) applyActions(actions []Action) error {
	for _, action := range actions {
		if err := s.applyAction(action); err != nil {
			return err
		}
	}
	return nil
}

// applyAction executes a single action.
func (s *Server) applyAction(action Action) error {
	switch action.Type {
	case ActType:
		return s.keyboard.TypeText(action.Text)
	case ActPress:
		return s.keyboard.PressSpecialKey(action.Key)
	case ActHold:
		return s.keyboard.HoldKey(action.Key)
	case ActRelease:
		return s.keyboard.ReleaseKey(action.Key)
	case ActReleaseAll:
		return s.keyboard.ReleaseAllHeldKeys()
	case ActCapsLock:
		return s.keyboard.SetCapsLock(action.Enabled)
	case ActLayout:
		_, err := s.keyboard.LoadLayout(action.KLID, action.Flags)
		return err
	default:
		return nil
	}
}

// State returns the current keyboard state without applying anything.
func (s *Server) State() Reply {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateReply(0)
}

// InstalledLayouts lists the layouts installed on the input desktop.
func (s *Server) InstalledLayouts() ([]wininput.Layout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.keyboard.Layouts()
}
