package model

type direction struct {
	dRow, dCol int
}

var (
	rookDirs   = []direction{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	bishopDirs = []direction{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	queenDirs  = append(append([]direction{}, rookDirs...), bishopDirs...)
	knightDirs = []direction{{2, 1}, {2, -1}, {-2, 1}, {-2, -1}, {1, 2}, {1, -2}, {-1, 2}, {-1, -2}}
	kingDirs   = queenDirs
)

// pseudoMoves returns the destinations of the piece on from, ignoring whether
// the move exposes its own king. Castling candidates are included for kings.
func (g *GameState) pseudoMoves(from Square) []Move {
	piece := g.Board.At(from)
	switch piece.Kind {
	case Pawn:
		return g.Board.pawnMoves(from, piece)
	case Knight:
		return g.Board.stepMoves(from, piece, knightDirs)
	case Bishop:
		return g.Board.slideMoves(from, piece, bishopDirs)
	case Rook:
		return g.Board.slideMoves(from, piece, rookDirs)
	case Queen:
		return g.Board.slideMoves(from, piece, queenDirs)
	case King:
		return append(g.Board.stepMoves(from, piece, kingDirs), g.castleMoves(from, piece)...)
	default:
		return nil
	}
}

func (b *Board) pawnMoves(from Square, piece Piece) []Move {
	var moves []Move
	dir := piece.Color.forward()
	one := from.offset(dir, 0)
	if one.InBounds() && b.isEmpty(one) {
		moves = append(moves, Move{From: from, To: one})
		two := from.offset(2*dir, 0)
		if from.Row == piece.Color.homeRow()+dir && two.InBounds() && b.isEmpty(two) {
			moves = append(moves, Move{From: from, To: two})
		}
	}
	for _, dCol := range []int{-1, 1} {
		target := from.offset(dir, dCol)
		if !target.InBounds() {
			continue
		}
		if occupant := b.At(target); !occupant.IsEmpty() && occupant.Color != piece.Color {
			moves = append(moves, Move{From: from, To: target})
		}
	}
	return moves
}

func (b *Board) stepMoves(from Square, piece Piece, dirs []direction) []Move {
	var moves []Move
	for _, dir := range dirs {
		target := from.offset(dir.dRow, dir.dCol)
		if !target.InBounds() {
			continue
		}
		if occupant := b.At(target); occupant.IsEmpty() || occupant.Color != piece.Color {
			moves = append(moves, Move{From: from, To: target})
		}
	}
	return moves
}

func (b *Board) slideMoves(from Square, piece Piece, dirs []direction) []Move {
	var moves []Move
	for _, dir := range dirs {
		for target := from.offset(dir.dRow, dir.dCol); target.InBounds(); target = target.offset(dir.dRow, dir.dCol) {
			occupant := b.At(target)
			if occupant.IsEmpty() {
				moves = append(moves, Move{From: from, To: target})
				continue
			}
			if occupant.Color != piece.Color {
				moves = append(moves, Move{From: from, To: target})
			}
			break
		}
	}
	return moves
}

// castleMoves offers the two-square king moves. The king must be unmoved, on
// its home square and not in check; each side additionally needs its unmoved
// rook in place, an empty path and no attacked transit square.
func (g *GameState) castleMoves(from Square, king Piece) []Move {
	color := king.Color
	home := color.homeRow()
	if from != (Square{Row: home, Col: kingHomeCol}) || g.Castling[color].KingMoved {
		return nil
	}
	if g.IsSquareUnderAttack(from, color) {
		return nil
	}

	var moves []Move
	for _, side := range []castleSide{kingside, queenside} {
		if !g.Castling[color].rookUnmoved(side.rookFromCol) {
			continue
		}
		if g.Board[home][side.rookFromCol] != (Piece{Kind: Rook, Color: color}) {
			continue
		}
		if !g.Board.rowEmpty(home, side.between) {
			continue
		}
		if g.anyUnderAttack(home, side.transit, color) {
			continue
		}
		moves = append(moves, Move{
			From:        from,
			To:          Square{Row: home, Col: side.kingToCol},
			IsCastling:  true,
			RookFromCol: side.rookFromCol,
		})
	}
	return moves
}

func (b *Board) rowEmpty(row int, cols []int) bool {
	for _, col := range cols {
		if !b[row][col].IsEmpty() {
			return false
		}
	}
	return true
}

func (g *GameState) anyUnderAttack(row int, cols []int, color Color) bool {
	for _, col := range cols {
		if g.IsSquareUnderAttack(Square{Row: row, Col: col}, color) {
			return true
		}
	}
	return false
}

// attacks returns the squares the piece on from attacks. It never offers
// castling and never consults check, so the check analyzer can call it
// without recursing into castling eligibility.
func (b *Board) attacks(from Square) []Square {
	piece := b.At(from)
	var moves []Move
	switch piece.Kind {
	case Pawn:
		var squares []Square
		for _, dCol := range []int{-1, 1} {
			if target := from.offset(piece.Color.forward(), dCol); target.InBounds() {
				squares = append(squares, target)
			}
		}
		return squares
	case Knight:
		moves = b.stepMoves(from, piece, knightDirs)
	case Bishop:
		moves = b.slideMoves(from, piece, bishopDirs)
	case Rook:
		moves = b.slideMoves(from, piece, rookDirs)
	case Queen:
		moves = b.slideMoves(from, piece, queenDirs)
	case King:
		moves = b.stepMoves(from, piece, kingDirs)
	}
	squares := make([]Square, 0, len(moves))
	for _, mv := range moves {
		squares = append(squares, mv.To)
	}
	return squares
}

// filterLegal drops candidates that leave the mover's king attacked. Each
// candidate is simulated on the board and reverted before the next one.
func (g *GameState) filterLegal(candidates []Move) []Move {
	legal := make([]Move, 0, len(candidates))
	for _, mv := range candidates {
		moving := g.Board.At(mv.From)
		captured := g.Board.At(mv.To)

		g.Board.Set(mv.To, moving)
		g.Board.Clear(mv.From)
		exposed := g.IsKingInCheck(moving.Color)
		g.Board.Set(mv.From, moving)
		g.Board.Set(mv.To, captured)

		if !exposed {
			legal = append(legal, mv)
		}
	}
	return legal
}
