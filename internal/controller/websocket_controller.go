package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/agkaliel/browser-chess/internal/service"
	"github.com/agkaliel/browser-chess/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

// lockedConn serializes writes from the read loop and from session broadcasts.
type lockedConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (lc *lockedConn) WriteJSON(v interface{}) error {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	return lc.conn.WriteJSON(v)
}

// HandleConnection serves one player's live socket for a game.
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := c.Params("gameId")
	playerID, _ := c.Locals("playerID").(string)
	out := &lockedConn{conn: c}

	if err := wsc.gameService.RegisterConnection(gameID, playerID, out); err != nil {
		log.Warnf("failed to register connection for player %s in game %s: %v", playerID, gameID, err)
		sendError(out, err)
		c.Close()
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, playerID, out)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Debugf("read error for player %s: %v", playerID, err)
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Debugf("parse error: %v", err)
			sendError(out, fmt.Errorf("malformed message: %w", err))
			continue
		}
		if err := wsc.handleMessage(gameID, playerID, msg, out); err != nil {
			log.Debugf("handle %s for player %s: %v", msg.Type, playerID, err)
			sendError(out, err)
		}
	}
}

// handleMessage dispatches one client message. State changes reach the client
// through the session broadcast; queries are answered on out.
func (wsc *WebSocketController) handleMessage(gameID, playerID string, msg ws.Message, out service.Conn) error {
	switch msg.Type {
	case ws.MessageTypeMove:
		var move ws.MovePayload
		if err := json.Unmarshal(msg.Payload, &move); err != nil {
			return err
		}
		_, err := wsc.gameService.HandleMove(gameID, playerID, move)
		return err

	case ws.MessageTypeLegalMoves:
		var req ws.LegalMovesRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return err
		}
		moves, err := wsc.gameService.LegalMoves(gameID, req.Square)
		if err != nil {
			return err
		}
		reply, err := ws.NewMessage(ws.MessageTypeLegalMoves, ws.LegalMovesPayload{Square: req.Square, Moves: moves})
		if err != nil {
			return err
		}
		return out.WriteJSON(reply)

	case ws.MessageTypeReset:
		_, err := wsc.gameService.ResetGame(gameID, playerID)
		return err

	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

// HandleMatchmaking queues the player and sends a single matchFound message.
// Closing the socket before a match leaves the queue.
func (wsc *WebSocketController) HandleMatchmaking(c *websocket.Conn) {
	playerID, _ := c.Locals("playerID").(string)
	out := &lockedConn{conn: c}

	ch := make(chan ws.MatchFoundEvent, 1)
	wsc.gameService.RegisterMatchmakingChannel(playerID, ch)
	defer wsc.gameService.UnregisterMatchmakingChannel(playerID, ch)

	if err := wsc.gameService.JoinMatchmaking(playerID); err != nil && !errors.Is(err, service.ErrAlreadyQueued) {
		sendError(out, err)
		return
	}

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	select {
	case event := <-ch:
		msg, err := ws.NewMessage(ws.MessageTypeMatchFound, event)
		if err != nil {
			log.Errorf("marshal match event: %v", err)
			return
		}
		if err := out.WriteJSON(msg); err != nil {
			log.Warnf("failed to send match to player %s: %v", playerID, err)
		}
	case <-closed:
		log.Debugf("player %s left matchmaking", playerID)
		wsc.gameService.LeaveMatchmaking(playerID)
	}
}

func sendError(out service.Conn, err error) {
	msg, marshalErr := ws.NewMessage(ws.MessageTypeError, err.Error())
	if marshalErr != nil {
		return
	}
	if writeErr := out.WriteJSON(msg); writeErr != nil {
		log.Debugf("failed to send error: %v", writeErr)
	}
}
