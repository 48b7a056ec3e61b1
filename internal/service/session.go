package service

import (
	"sync"
	"time"

	"github.com/benbeisheim/chessboard-backend/internal/model"
	"github.com/benbeisheim/chessboard-backend/internal/ws"
	"github.com/rs/zerolog"
)

// writeWait bounds a single write to a client so a stalled peer cannot hold
// up the board.
const writeWait = 10 * time.Second

// Conn is the part of a websocket connection a session writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

type deadlineSetter interface {
	SetWriteDeadline(t time.Time) error
}

// write sends v to conn, applying writeWait when the connection supports
// write deadlines.
func write(conn Conn, v interface{}) error {
	if d, ok := conn.(deadlineSetter); ok {
		if err := d.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			return err
		}
	}
	return conn.WriteJSON(v)
}

// Session is one board shared by every connection observing it.
type Session struct {
	ID string

	mu         sync.Mutex
	game       *model.Game
	lastActive time.Time
	now        func() time.Time

	// sendMu orders broadcasts. It is taken before mu is released so
	// observers see states in the order they were produced.
	sendMu  sync.Mutex
	clients map[string]Conn
	log     zerolog.Logger
}

func newSession(id string, log zerolog.Logger, now func() time.Time) *Session {
	return &Session{
		ID:         id,
		game:       model.NewGame(),
		lastActive: now(),
		now:        now,
		clients:    make(map[string]Conn),
		log:        log.With().Str("board", id).Logger(),
	}
}

// update runs fn against the game under the lock and broadcasts the
// resulting state when fn reports a change.
func (s *Session) update(fn func(g *model.Game) bool) model.GameState {
	s.mu.Lock()
	changed := fn(s.game)
	s.lastActive = s.now()
	state := s.game.State()
	if !changed {
		s.mu.Unlock()
		return state
	}
	s.sendMu.Lock()
	s.mu.Unlock()
	defer s.sendMu.Unlock()
	s.broadcastLocked(state)
	return state
}

func (s *Session) Click(sq model.Square) (model.ClickResult, model.GameState) {
	var result model.ClickResult
	state := s.update(func(g *model.Game) bool {
		result = g.Click(sq)
		return result != model.ClickIgnored
	})
	s.log.Debug().Str("square", sq.String()).Str("result", string(result)).Msg("click")
	return result, state
}

func (s *Session) Move(from, to model.Square) (model.GameState, error) {
	var err error
	state := s.update(func(g *model.Game) bool {
		err = g.Move(from, to)
		return err == nil
	})
	if err != nil {
		return state, err
	}
	s.log.Info().Str("from", from.String()).Str("to", to.String()).Str("turn", string(state.Turn)).Msg("move applied")
	return state, nil
}

func (s *Session) Reset() model.GameState {
	state := s.update(func(g *model.Game) bool {
		g.Reset()
		return true
	})
	s.log.Info().Msg("board reset")
	return state
}

func (s *Session) LoadFEN(fen string) (model.GameState, error) {
	var err error
	state := s.update(func(g *model.Game) bool {
		err = g.LoadFEN(fen)
		return err == nil
	})
	if err != nil {
		return state, err
	}
	s.log.Info().Str("fen", fen).Msg("position loaded")
	return state, nil
}

func (s *Session) State() model.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.State()
}

func (s *Session) LegalMoves(sq model.Square) []model.Square {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.LegalMoves(sq)
}

func (s *Session) FEN() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.FEN()
}

// LastActive is the time of the latest mutation or client connect or
// disconnect.
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// Register adds a websocket client and sends it the current state. A
// connection already on record for clientID is replaced and closed.
func (s *Session) Register(clientID string, conn Conn) error {
	s.mu.Lock()
	s.lastActive = s.now()
	state := s.game.State()
	s.sendMu.Lock()
	s.mu.Unlock()
	defer s.sendMu.Unlock()

	if old, exists := s.clients[clientID]; exists && old != conn {
		s.log.Info().Str("client", clientID).Msg("replacing connection")
		old.Close()
	}
	s.clients[clientID] = conn
	s.log.Info().Str("client", clientID).Int("clients", len(s.clients)).Msg("client registered")

	if err := write(conn, ws.NewMessage(ws.MessageTypeState, state)); err != nil {
		delete(s.clients, clientID)
		return err
	}
	return nil
}

// Unregister removes the client only if conn is still the connection on
// record for it.
func (s *Session) Unregister(clientID string, conn Conn) {
	s.sendMu.Lock()
	current, exists := s.clients[clientID]
	removed := exists && current == conn
	if removed {
		delete(s.clients, clientID)
		s.log.Info().Str("client", clientID).Int("clients", len(s.clients)).Msg("client unregistered")
	}
	s.sendMu.Unlock()

	if removed {
		s.mu.Lock()
		s.lastActive = s.now()
		s.mu.Unlock()
	}
}

func (s *Session) ClientCount() int {
	s.sendMu.Lock()
	defer s.sendMu.Unlock()
	return len(s.clients)
}

// SendError writes an error message to a single client.
func (s *Session) SendError(clientID string, err error) {
	s.sendMu.Lock()
	defer s.sendMu.Unlock()

	if conn, ok := s.clients[clientID]; ok {
		if werr := write(conn, ws.NewMessage(ws.MessageTypeError, ws.ErrorPayload{Error: err.Error()})); werr != nil {
			s.log.Warn().Err(werr).Str("client", clientID).Msg("failed to send error")
		}
	}
}

// broadcastLocked sends state to every client, dropping the ones that fail.
// sendMu must be held.
func (s *Session) broadcastLocked(state model.GameState) {
	msg := ws.NewMessage(ws.MessageTypeState, state)
	for clientID, conn := range s.clients {
		if err := write(conn, msg); err != nil {
			s.log.Warn().Err(err).Str("client", clientID).Msg("failed to send state, dropping client")
			delete(s.clients, clientID)
			conn.Close()
		}
	}
}

// closeClients disconnects everyone, used when the session is dropped.
func (s *Session) closeClients() {
	s.sendMu.Lock()
	defer s.sendMu.Unlock()
	for clientID, conn := range s.clients {
		conn.Close()
		delete(s.clients, clientID)
	}
}
