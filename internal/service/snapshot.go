package service

import "github.com/agkaliel/browser-chess/internal/model"

// Snapshot is the client-facing view of a session. Empty squares are null.
type Snapshot struct {
	ID       string               `json:"id"`
	Board    [8][8]*model.Piece   `json:"board"`
	ToMove   model.Color          `json:"toMove"`
	Status   model.Status         `json:"status"`
	IsCheck  bool                 `json:"isCheck"`
	Captured model.CapturedPieces `json:"captured"`
	Players  Players              `json:"players"`
	LastMove *model.Move          `json:"lastMove"`
}

// snapshot must be called with s.mu held.
func (s *Session) snapshot() Snapshot {
	snap := Snapshot{
		ID:      s.ID,
		ToMove:  s.state.ToMove,
		Status:  s.state.Status(),
		IsCheck: s.state.IsKingInCheck(s.state.ToMove),
		Captured: model.CapturedPieces{
			White: append([]model.Kind{}, s.state.Captured.White...),
			Black: append([]model.Kind{}, s.state.Captured.Black...),
		},
		Players: s.players,
	}
	for row := range snap.Board {
		for col := range snap.Board[row] {
			p := s.state.Board[row][col]
			if p.IsEmpty() {
				continue
			}
			snap.Board[row][col] = &p
		}
	}
	if s.lastMove != nil {
		mv := *s.lastMove
		snap.LastMove = &mv
	}
	return snap
}
