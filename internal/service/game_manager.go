package service

import (
	"context"
	"sync"
	"time"

	"github.com/agkaliel/browser-chess/internal/model"
	"github.com/agkaliel/browser-chess/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

type MatchStatus string

const (
	MatchStatusIdle    MatchStatus = "idle"
	MatchStatusQueued  MatchStatus = "queued"
	MatchStatusMatched MatchStatus = "matched"
)

type MatchmakingState struct {
	Status MatchStatus  `json:"status"`
	GameID string       `json:"gameId,omitempty"`
	Color  *model.Color `json:"color,omitempty"`
}

type GameManager struct {
	games            map[string]*Session
	queue            *Queue
	matchingChannels map[string]chan ws.MatchFoundEvent
	pendingMatches   map[string]ws.MatchFoundEvent
	mu               sync.RWMutex
}

func NewGameManager() *GameManager {
	return &GameManager{
		games:            make(map[string]*Session),
		queue:            NewQueue(),
		matchingChannels: make(map[string]chan ws.MatchFoundEvent),
		pendingMatches:   make(map[string]ws.MatchFoundEvent),
	}
}

func (gm *GameManager) CreateGame(gameID string) (*Session, error) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; exists {
		return nil, ErrGameExists
	}

	session := NewSession(gameID)
	gm.games[gameID] = session
	log.Infow("game created", "game", gameID)
	return session, nil
}

func (gm *GameManager) GetGame(gameID string) (*Session, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	session, exists := gm.games[gameID]
	if !exists {
		return nil, ErrGameNotFound
	}
	return session, nil
}

func (gm *GameManager) GameCount() int {
	gm.mu.RLock()
	defer gm.mu.RUnlock()
	return len(gm.games)
}

func (gm *GameManager) AddPlayerToGame(gameID, playerID string) (model.Color, error) {
	session, err := gm.GetGame(gameID)
	if err != nil {
		return 0, err
	}
	color, err := session.AddPlayer(playerID)
	if err != nil {
		return 0, err
	}
	log.Infow("player joined", "game", gameID, "player", playerID, "color", color.String())
	return color, nil
}

// JoinMatchmaking queues playerID. A finished match from an earlier search is
// forgotten.
func (gm *GameManager) JoinMatchmaking(playerID string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if err := gm.queue.AddPlayer(Player{ID: playerID}); err != nil {
		log.Debugf("player %s not queued: %v", playerID, err)
		return err
	}
	delete(gm.pendingMatches, playerID)
	log.Infow("player queued", "player", playerID, "queueSize", gm.queue.Size())
	return nil
}

func (gm *GameManager) LeaveMatchmaking(playerID string) bool {
	return gm.queue.RemovePlayer(playerID)
}

// MatchmakingStatus reports a finished match once; later calls report idle.
func (gm *GameManager) MatchmakingStatus(playerID string) MatchmakingState {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if event, ok := gm.pendingMatches[playerID]; ok {
		delete(gm.pendingMatches, playerID)
		color := event.Color
		return MatchmakingState{Status: MatchStatusMatched, GameID: event.GameID, Color: &color}
	}
	if gm.queue.Contains(playerID) {
		return MatchmakingState{Status: MatchStatusQueued}
	}
	return MatchmakingState{Status: MatchStatusIdle}
}

// RegisterMatchmakingChannel replaces any channel the player already had.
func (gm *GameManager) RegisterMatchmakingChannel(playerID string, ch chan ws.MatchFoundEvent) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.matchingChannels[playerID]; exists {
		log.Debugf("replacing matchmaking channel for player %s", playerID)
	}
	gm.matchingChannels[playerID] = ch
}

// UnregisterMatchmakingChannel removes ch only if it is still the registered
// one. The creator of the channel owns closing it.
func (gm *GameManager) UnregisterMatchmakingChannel(playerID string, ch chan ws.MatchFoundEvent) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if current, exists := gm.matchingChannels[playerID]; exists && current == ch {
		delete(gm.matchingChannels, playerID)
	}
}

// RunMatchmaking pairs queued players every interval until ctx is done.
func (gm *GameManager) RunMatchmaking(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("matchmaking stopped")
			return
		case <-ticker.C:
			gm.MatchPlayers()
		}
	}
}

// MatchPlayers drains the queue two at a time and returns the number of games
// it created.
func (gm *GameManager) MatchPlayers() int {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	created := 0
	for {
		player1, player2, ok := gm.queue.GetNextPair()
		if !ok {
			return created
		}

		gameID := uuid.New().String()
		session := NewSession(gameID)
		p1Color, err := session.AddPlayer(player1.ID)
		if err != nil {
			log.Errorf("seat player %s in game %s: %v", player1.ID, gameID, err)
			continue
		}
		p2Color, err := session.AddPlayer(player2.ID)
		if err != nil {
			log.Errorf("seat player %s in game %s: %v", player2.ID, gameID, err)
			continue
		}
		gm.games[gameID] = session
		created++
		log.Infow("match found", "game", gameID, "white", player1.ID, "black", player2.ID)

		gm.notifyMatch(player1.ID, ws.MatchFoundEvent{GameID: gameID, Color: p1Color})
		gm.notifyMatch(player2.ID, ws.MatchFoundEvent{GameID: gameID, Color: p2Color})
	}
}

// notifyMatch must be called with gm.mu held. The event goes to the player's
// registered channel if it has room; otherwise it is kept until polled.
func (gm *GameManager) notifyMatch(playerID string, event ws.MatchFoundEvent) {
	if ch, ok := gm.matchingChannels[playerID]; ok {
		select {
		case ch <- event:
			log.Debugf("sent match found event to player %s", playerID)
			delete(gm.matchingChannels, playerID)
			return
		default:
			log.Warnf("matchmaking channel for player %s is full", playerID)
		}
	}
	gm.pendingMatches[playerID] = event
}

func (gm *GameManager) PendingMatchCount() int {
	gm.mu.RLock()
	defer gm.mu.RUnlock()
	return len(gm.pendingMatches)
}
