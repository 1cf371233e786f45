package service

import (
	"fmt"

	"github.com/agkaliel/browser-chess/internal/model"
	"github.com/agkaliel/browser-chess/internal/ws"
	"github.com/google/uuid"
)

type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

func (gs *GameService) CreateGame() (string, error) {
	gameID := uuid.New().String()

	if _, err := gs.gameManager.CreateGame(gameID); err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}

	return gameID, nil
}

func (gs *GameService) JoinGame(gameID, playerID string) (model.Color, error) {
	return gs.gameManager.AddPlayerToGame(gameID, playerID)
}

func (gs *GameService) GetGameState(gameID string) (Snapshot, error) {
	session, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return Snapshot{}, err
	}
	return session.Snapshot(), nil
}

func (gs *GameService) LegalMoves(gameID, square string) ([]model.Move, error) {
	session, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	sq, err := parseSquare(square)
	if err != nil {
		return nil, err
	}
	return session.LegalMoves(sq), nil
}

func (gs *GameService) HandleMove(gameID, playerID string, move ws.MovePayload) (Snapshot, error) {
	session, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return Snapshot{}, err
	}
	from, err := parseSquare(move.From)
	if err != nil {
		return Snapshot{}, err
	}
	to, err := parseSquare(move.To)
	if err != nil {
		return Snapshot{}, err
	}
	return session.MakeMove(playerID, from, to)
}

func (gs *GameService) ResetGame(gameID, playerID string) (Snapshot, error) {
	session, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return Snapshot{}, err
	}
	return session.Reset(playerID)
}

func (gs *GameService) JoinMatchmaking(playerID string) error {
	return gs.gameManager.JoinMatchmaking(playerID)
}

func (gs *GameService) LeaveMatchmaking(playerID string) {
	gs.gameManager.LeaveMatchmaking(playerID)
}

func (gs *GameService) MatchmakingStatus(playerID string) MatchmakingState {
	return gs.gameManager.MatchmakingStatus(playerID)
}

func (gs *GameService) RegisterConnection(gameID, playerID string, conn Conn) error {
	session, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	return session.RegisterConnection(playerID, conn)
}

func (gs *GameService) UnregisterConnection(gameID, playerID string, conn Conn) {
	session, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return
	}
	session.UnregisterConnection(playerID, conn)
}

func (gs *GameService) RegisterMatchmakingChannel(playerID string, ch chan ws.MatchFoundEvent) {
	gs.gameManager.RegisterMatchmakingChannel(playerID, ch)
}

func (gs *GameService) UnregisterMatchmakingChannel(playerID string, ch chan ws.MatchFoundEvent) {
	gs.gameManager.UnregisterMatchmakingChannel(playerID, ch)
}

func parseSquare(s string) (model.Square, error) {
	sq, err := model.ParseSquare(s)
	if err != nil {
		return model.Square{}, fmt.Errorf("%w: %v", ErrInvalidSquare, err)
	}
	return sq, nil
}
