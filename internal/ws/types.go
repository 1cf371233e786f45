package ws

import (
	"encoding/json"

	"github.com/agkaliel/browser-chess/internal/model"
)

// MessageType represents the different kinds of messages our system can handle
type MessageType string

const (
	MessageTypeMove       MessageType = "move"
	MessageTypeLegalMoves MessageType = "legalMoves"
	MessageTypeReset      MessageType = "reset"
	MessageTypeGameState  MessageType = "gameState"
	MessageTypeMatchFound MessageType = "matchFound"
	MessageTypeError      MessageType = "error"
)

// Message represents a WebSocket message in our system
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// NewMessage marshals payload into a message of the given type.
func NewMessage(t MessageType, payload any) (Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: t, Payload: raw}, nil
}

// MovePayload names squares in file/rank form, e.g. "e2".
type MovePayload struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type LegalMovesRequest struct {
	Square string `json:"square"`
}

type LegalMovesPayload struct {
	Square string       `json:"square"`
	Moves  []model.Move `json:"moves"`
}

type MatchFoundEvent struct {
	GameID string      `json:"gameId"`
	Color  model.Color `json:"color"`
}
