package model

import "fmt"

// ApplyMove commits mv for the side to move. The move is matched by From and
// To against the current legal set and the generated candidate is applied, so
// castling tags supplied by the caller are ignored. A rejected move leaves the
// state untouched.
func (g *GameState) ApplyMove(mv Move) error {
	if g.Result != NoResult {
		return ErrGameOver
	}
	if !mv.From.InBounds() || !mv.To.InBounds() {
		return fmt.Errorf("%w: %v to %v is off the board", ErrIllegalMove, mv.From, mv.To)
	}
	candidate, ok := findMove(g.LegalMoves(mv.From), mv.From, mv.To)
	if !ok {
		return fmt.Errorf("%w: %v to %v", ErrIllegalMove, mv.From, mv.To)
	}

	piece := g.Board.At(candidate.From)
	if candidate.IsCastling {
		g.castle(candidate)
	} else {
		g.relocate(candidate)
	}
	g.recordHistory(piece, candidate.From)

	g.ToMove = g.ToMove.Opponent()
	g.Result = g.evaluateResult()
	return nil
}

func findMove(moves []Move, from, to Square) (Move, bool) {
	for _, mv := range moves {
		if mv.From == from && mv.To == to {
			return mv, true
		}
	}
	return Move{}, false
}

func (g *GameState) castle(mv Move) {
	side := castleSideFor(mv.RookFromCol)
	row := mv.From.Row
	king := g.Board.At(mv.From)
	rook := g.Board[row][side.rookFromCol]

	g.Board.Clear(mv.From)
	g.Board[row][side.rookFromCol] = Piece{}
	g.Board.Set(mv.To, king)
	g.Board[row][side.rookToCol] = rook
}

func (g *GameState) relocate(mv Move) {
	piece := g.Board.At(mv.From)
	if captured := g.Board.At(mv.To); !captured.IsEmpty() {
		g.Captured.add(captured)
	}
	g.Board.Set(mv.To, piece)
	g.Board.Clear(mv.From)

	if piece.Kind == Pawn && mv.To.Row == piece.Color.Opponent().homeRow() {
		g.Board.Set(mv.To, Piece{Kind: Queen, Color: piece.Color})
	}
}

// recordHistory marks castling pieces as moved. A rook counts by the home-row
// column it left, whichever rook that is.
func (g *GameState) recordHistory(piece Piece, from Square) {
	rights := &g.Castling[piece.Color]
	switch piece.Kind {
	case King:
		rights.KingMoved = true
	case Rook:
		if from.Row != piece.Color.homeRow() {
			return
		}
		switch from.Col {
		case queenside.rookFromCol:
			rights.LeftRookMoved = true
		case kingside.rookFromCol:
			rights.RightRookMoved = true
		}
	}
}
