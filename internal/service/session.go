package service

import (
	"fmt"
	"sync"

	"github.com/agkaliel/browser-chess/internal/model"
	"github.com/agkaliel/browser-chess/internal/ws"
	"github.com/gofiber/fiber/v2/log"
)

// Conn is the part of a websocket connection a session writes to. A session
// may write from several goroutines, so implementations serialize writes.
type Conn interface {
	WriteJSON(v interface{}) error
}

// The connections for a specific game
type GameConnections struct {
	connections map[string]Conn // playerID -> connection
	mu          sync.Mutex
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]Conn),
	}
}

type Players struct {
	White string `json:"white"`
	Black string `json:"black"`
}

// Session owns one game's engine state, its seated players and observers.
// The engine is not safe for concurrent use, so every access goes through mu.
type Session struct {
	ID          string
	mu          sync.Mutex
	state       *model.GameState
	players     Players
	lastMove    *model.Move
	connections *GameConnections
}

func NewSession(id string) *Session {
	return &Session{
		ID:          id,
		state:       model.NewGame(),
		connections: NewGameConnections(),
	}
}

// AddPlayer seats playerID at the first open color. A player who is already
// seated gets their existing color back.
func (s *Session) AddPlayer(playerID string) (model.Color, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if color, ok := s.seatOf(playerID); ok {
		return color, nil
	}
	switch {
	case s.players.White == "":
		s.players.White = playerID
		return model.White, nil
	case s.players.Black == "":
		s.players.Black = playerID
		return model.Black, nil
	}
	return 0, ErrGameFull
}

func (s *Session) seatOf(playerID string) (model.Color, bool) {
	switch {
	case playerID == "":
		return 0, false
	case s.players.White == playerID:
		return model.White, true
	case s.players.Black == playerID:
		return model.Black, true
	}
	return 0, false
}

func (s *Session) HasPlayer(playerID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.seatOf(playerID)
	return ok
}

func (s *Session) hasOpenSeat() bool {
	return s.players.White == "" || s.players.Black == ""
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *Session) LegalMoves(sq model.Square) []model.Move {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.LegalMoves(sq)
}

// MakeMove applies from-to for playerID, who must hold the side to move.
func (s *Session) MakeMove(playerID string, from, to model.Square) (Snapshot, error) {
	s.mu.Lock()
	color, ok := s.seatOf(playerID)
	if !ok {
		s.mu.Unlock()
		return Snapshot{}, ErrPlayerNotInGame
	}
	if color != s.state.ToMove {
		s.mu.Unlock()
		return Snapshot{}, ErrNotYourTurn
	}
	mv := model.Move{From: from, To: to}
	if committed, ok := findCandidate(s.state.LegalMoves(from), to); ok {
		mv = committed
	}
	if err := s.state.ApplyMove(mv); err != nil {
		s.mu.Unlock()
		return Snapshot{}, fmt.Errorf("move %s: %w", mv, err)
	}
	s.lastMove = &mv
	snap := s.snapshot()
	board := s.state.Board
	s.mu.Unlock()

	log.Infow("move applied", "game", s.ID, "player", playerID, "move", mv.String(), "status", snap.Status.String())
	log.Debugf("game %s position:\n%s", s.ID, board.Draw())
	s.broadcast(snap)
	return snap, nil
}

// findCandidate returns the generated move to the given square, which carries
// the castling tags the engine will commit.
func findCandidate(moves []model.Move, to model.Square) (model.Move, bool) {
	for _, mv := range moves {
		if mv.To == to {
			return mv, true
		}
	}
	return model.Move{}, false
}

// Reset restarts the game from the initial position. Seats are kept.
func (s *Session) Reset(playerID string) (Snapshot, error) {
	s.mu.Lock()
	if _, ok := s.seatOf(playerID); !ok {
		s.mu.Unlock()
		return Snapshot{}, ErrPlayerNotInGame
	}
	s.state.Reset()
	s.lastMove = nil
	snap := s.snapshot()
	s.mu.Unlock()

	log.Infow("game reset", "game", s.ID, "player", playerID)
	s.broadcast(snap)
	return snap, nil
}

// RegisterConnection adds an observer. Seated players may always connect;
// anyone else only while a seat is still open.
func (s *Session) RegisterConnection(playerID string, conn Conn) error {
	s.mu.Lock()
	_, seated := s.seatOf(playerID)
	authorized := seated || s.hasOpenSeat()
	snap := s.snapshot()
	s.mu.Unlock()

	if !authorized {
		return ErrNotAuthorized
	}

	s.connections.mu.Lock()
	if _, exists := s.connections.connections[playerID]; exists {
		s.connections.mu.Unlock()
		return ErrAlreadyConnected
	}
	s.connections.connections[playerID] = conn
	s.connections.mu.Unlock()
	log.Debugf("registered connection %p for player %s in game %s", conn, playerID, s.ID)

	s.send(playerID, conn, snap)
	return nil
}

// UnregisterConnection drops conn if it is still the player's current one.
func (s *Session) UnregisterConnection(playerID string, conn Conn) {
	s.connections.mu.Lock()
	defer s.connections.mu.Unlock()

	if current, exists := s.connections.connections[playerID]; exists && current == conn {
		log.Debugf("unregistering connection %p for player %s in game %s", conn, playerID, s.ID)
		delete(s.connections.connections, playerID)
	}
}

func (s *Session) ConnectionCount() int {
	s.connections.mu.Lock()
	defer s.connections.mu.Unlock()
	return len(s.connections.connections)
}

func (s *Session) broadcast(snap Snapshot) {
	s.connections.mu.Lock()
	active := make(map[string]Conn, len(s.connections.connections))
	for playerID, conn := range s.connections.connections {
		active[playerID] = conn
	}
	s.connections.mu.Unlock()

	var wg sync.WaitGroup
	for playerID, conn := range active {
		wg.Add(1)
		go func(playerID string, conn Conn) {
			defer wg.Done()
			s.send(playerID, conn, snap)
		}(playerID, conn)
	}
	wg.Wait()
}

// send writes one state message; a connection that fails is dropped.
func (s *Session) send(playerID string, conn Conn, snap Snapshot) {
	msg, err := ws.NewMessage(ws.MessageTypeGameState, snap)
	if err != nil {
		log.Errorf("marshal state for game %s: %v", s.ID, err)
		return
	}

	if err := conn.WriteJSON(msg); err != nil {
		log.Warnf("failed to send state to player %s: %v", playerID, err)
		s.connections.mu.Lock()
		if s.connections.connections[playerID] == conn {
			delete(s.connections.connections, playerID)
		}
		s.connections.mu.Unlock()
	}
}
