package model

import "fmt"

// Move is a candidate or committed transition. IsCastling and RookFromCol are
// only set on two-square king moves produced by the generator.
type Move struct {
	From        Square `json:"from"`
	To          Square `json:"to"`
	IsCastling  bool   `json:"isCastling"`
	RookFromCol int    `json:"rookFromCol,omitempty"`
}

func (m Move) String() string {
	return fmt.Sprintf("%s%s", m.From, m.To)
}

// castleSide describes one castling option on the king's home row.
type castleSide struct {
	rookFromCol int
	rookToCol   int
	kingToCol   int
	between     []int // must be empty
	transit     []int // must not be attacked, destination included
}

const kingHomeCol = 4

var (
	kingside = castleSide{
		rookFromCol: 7,
		rookToCol:   5,
		kingToCol:   6,
		between:     []int{5, 6},
		transit:     []int{5, 6},
	}
	queenside = castleSide{
		rookFromCol: 0,
		rookToCol:   3,
		kingToCol:   2,
		between:     []int{1, 2, 3},
		transit:     []int{3, 2},
	}
)

func castleSideFor(rookFromCol int) castleSide {
	if rookFromCol == queenside.rookFromCol {
		return queenside
	}
	return kingside
}
