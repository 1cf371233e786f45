package model

// IsKingInCheck reports whether the king of color is attacked. A board with
// no such king is treated as not in check.
func (g *GameState) IsKingInCheck(color Color) bool {
	king, ok := g.Board.findKing(color)
	if !ok {
		return false
	}
	return g.Board.isAttackedBy(king, color.Opponent())
}

// IsSquareUnderAttack reports whether any piece of color's opponent attacks sq.
func (g *GameState) IsSquareUnderAttack(sq Square, color Color) bool {
	return g.Board.isAttackedBy(sq, color.Opponent())
}

func (b *Board) findKing(color Color) (Square, bool) {
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			if b[row][col] == (Piece{Kind: King, Color: color}) {
				return Square{Row: row, Col: col}, true
			}
		}
	}
	return Square{}, false
}

func (b *Board) isAttackedBy(target Square, attacker Color) bool {
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			piece := b[row][col]
			if piece.IsEmpty() || piece.Color != attacker {
				continue
			}
			for _, sq := range b.attacks(Square{Row: row, Col: col}) {
				if sq == target {
					return true
				}
			}
		}
	}
	return false
}
