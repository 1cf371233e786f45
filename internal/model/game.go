package model

import "fmt"

// SideRights records which castling pieces of one color have moved. Flags only
// ever go from false to true.
type SideRights struct {
	KingMoved      bool `json:"kingMoved"`
	LeftRookMoved  bool `json:"leftRookMoved"`
	RightRookMoved bool `json:"rightRookMoved"`
}

func (r SideRights) rookUnmoved(col int) bool {
	if col == queenside.rookFromCol {
		return !r.LeftRookMoved
	}
	return !r.RightRookMoved
}

// CastlingRights is indexed by Color.
type CastlingRights [2]SideRights

// CapturedPieces lists captured kinds keyed by the captured piece's color, in
// capture order.
type CapturedPieces struct {
	White []Kind `json:"white"`
	Black []Kind `json:"black"`
}

func (c *CapturedPieces) Of(color Color) []Kind {
	if color == White {
		return c.White
	}
	return c.Black
}

func (c *CapturedPieces) add(p Piece) {
	if p.Color == White {
		c.White = append(c.White, p.Kind)
	} else {
		c.Black = append(c.Black, p.Kind)
	}
}

// Result is the terminal flag of a game.
type Result uint8

const (
	NoResult Result = iota
	Checkmate
	Stalemate
)

func (r Result) String() string {
	switch r {
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	}
	return ""
}

func (r Result) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

type Status uint8

const (
	StatusOngoing Status = iota
	StatusCheck
	StatusCheckmate
	StatusStalemate
)

func (s Status) String() string {
	switch s {
	case StatusOngoing:
		return "ongoing"
	case StatusCheck:
		return "check"
	case StatusCheckmate:
		return "checkmate"
	case StatusStalemate:
		return "stalemate"
	}
	return ""
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	for _, candidate := range []Status{StatusOngoing, StatusCheck, StatusCheckmate, StatusStalemate} {
		if candidate.String() == string(text) {
			*s = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown status %q", text)
}

// GameState is a single game. It is not safe for concurrent use; callers that
// share one across goroutines must serialize access themselves.
type GameState struct {
	Board    Board          `json:"board"`
	ToMove   Color          `json:"toMove"`
	Castling CastlingRights `json:"castling"`
	Captured CapturedPieces `json:"captured"`
	Result   Result         `json:"result"`
}

// NewGame returns the standard initial position with White to move.
func NewGame() *GameState {
	g := &GameState{}
	g.Reset()
	return g
}

// NewGameFrom starts a game from an arbitrary position. The terminal flag is
// evaluated immediately, so a mated or stalemated position is already over.
func NewGameFrom(board Board, toMove Color, rights CastlingRights) *GameState {
	g := &GameState{
		Board:    board,
		ToMove:   toMove,
		Castling: rights,
		Captured: newCapturedPieces(),
	}
	g.Result = g.evaluateResult()
	return g
}

func newCapturedPieces() CapturedPieces {
	return CapturedPieces{
		White: make([]Kind, 0),
		Black: make([]Kind, 0),
	}
}

// Reset restores the state produced by NewGame.
func (g *GameState) Reset() {
	*g = GameState{
		Board:    newBoard(),
		ToMove:   White,
		Captured: newCapturedPieces(),
	}
}

func (g *GameState) Clone() *GameState {
	clone := *g
	clone.Captured = CapturedPieces{
		White: append(make([]Kind, 0, len(g.Captured.White)), g.Captured.White...),
		Black: append(make([]Kind, 0, len(g.Captured.Black)), g.Captured.Black...),
	}
	return &clone
}

// LegalMoves returns the legal moves of the piece on sq. It is empty when sq
// is vacant, holds a piece of the side not to move, or the game is over.
func (g *GameState) LegalMoves(sq Square) []Move {
	if g.Result != NoResult {
		return []Move{}
	}
	piece := g.Board.At(sq)
	if piece.IsEmpty() || piece.Color != g.ToMove {
		return []Move{}
	}
	return g.filterLegal(g.pseudoMoves(sq))
}

// AllLegalMoves returns every legal move for the side to move.
func (g *GameState) AllLegalMoves() []Move {
	moves := []Move{}
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			moves = append(moves, g.LegalMoves(Square{Row: row, Col: col})...)
		}
	}
	return moves
}

func (g *GameState) hasLegalMove(color Color) bool {
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			sq := Square{Row: row, Col: col}
			if piece := g.Board.At(sq); piece.IsEmpty() || piece.Color != color {
				continue
			}
			if len(g.filterLegal(g.pseudoMoves(sq))) > 0 {
				return true
			}
		}
	}
	return false
}

// Status classifies the position for the side to move.
func (g *GameState) Status() Status {
	inCheck := g.IsKingInCheck(g.ToMove)
	if !g.hasLegalMove(g.ToMove) {
		if inCheck {
			return StatusCheckmate
		}
		return StatusStalemate
	}
	if inCheck {
		return StatusCheck
	}
	return StatusOngoing
}

func (g *GameState) evaluateResult() Result {
	switch g.Status() {
	case StatusCheckmate:
		return Checkmate
	case StatusStalemate:
		return Stalemate
	}
	return NoResult
}
