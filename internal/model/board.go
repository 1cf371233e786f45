package model

import (
	"fmt"
)

type Color uint8

const (
	White Color = iota
	Black
)

func (c Color) Opponent() Color {
	if c == White {
		return Black
	}
	return White
}

func (c Color) String() string {
	switch c {
	case White:
		return "white"
	case Black:
		return "black"
	}
	return ""
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Color) UnmarshalText(text []byte) error {
	switch string(text) {
	case "white":
		*c = White
	case "black":
		*c = Black
	default:
		return fmt.Errorf("unknown color %q", text)
	}
	return nil
}

// homeRow is the back rank a color starts on.
func (c Color) homeRow() int {
	if c == White {
		return 7
	}
	return 0
}

// forward is the row delta of a pawn advance.
func (c Color) forward() int {
	if c == White {
		return -1
	}
	return 1
}

// Kind is a piece type. The zero value means "no piece".
type Kind uint8

const (
	NoKind Kind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

var kindNames = [...]string{
	NoKind: "",
	Pawn:   "pawn",
	Knight: "knight",
	Bishop: "bishop",
	Rook:   "rook",
	Queen:  "queen",
	King:   "king",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return ""
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	for i, name := range kindNames {
		if name == string(text) {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown piece kind %q", text)
}

type Piece struct {
	Kind  Kind  `json:"kind"`
	Color Color `json:"color"`
}

func (p Piece) IsEmpty() bool {
	return p.Kind == NoKind
}

func (p Piece) String() string {
	if p.IsEmpty() {
		return "empty"
	}
	return p.Color.String() + " " + p.Kind.String()
}

type Square struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func InBounds(row, col int) bool {
	return row >= 0 && row < 8 && col >= 0 && col < 8
}

func (s Square) InBounds() bool {
	return InBounds(s.Row, s.Col)
}

func (s Square) offset(dRow, dCol int) Square {
	return Square{Row: s.Row + dRow, Col: s.Col + dCol}
}

// String renders the square as file and rank, e.g. "e2".
func (s Square) String() string {
	if !s.InBounds() {
		return fmt.Sprintf("(%d,%d)", s.Row, s.Col)
	}
	return fmt.Sprintf("%c%d", 'a'+s.Col, 8-s.Row)
}

// ParseSquare reads the form produced by Square.String.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return Square{}, fmt.Errorf("invalid square %q", s)
	}
	sq := Square{Row: 8 - int(s[1]-'0'), Col: int(s[0] - 'a')}
	if s[0] < 'a' || s[1] < '0' || !sq.InBounds() {
		return Square{}, fmt.Errorf("invalid square %q", s)
	}
	return sq, nil
}

// Board holds at most one piece per square. Index by Square only after an
// in-bounds check: out-of-range access panics.
type Board [8][8]Piece

func (b *Board) At(sq Square) Piece {
	mustInBounds(sq)
	return b[sq.Row][sq.Col]
}

func (b *Board) Set(sq Square, p Piece) {
	mustInBounds(sq)
	b[sq.Row][sq.Col] = p
}

func (b *Board) Clear(sq Square) {
	b.Set(sq, Piece{})
}

func (b *Board) isEmpty(sq Square) bool {
	return b.At(sq).IsEmpty()
}

func mustInBounds(sq Square) {
	if !sq.InBounds() {
		panic(fmt.Sprintf("model: square %v out of bounds", sq))
	}
}

var backRank = [8]Kind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

func newBoard() Board {
	var board Board
	for col := 0; col < 8; col++ {
		board[0][col] = Piece{Kind: backRank[col], Color: Black}
		board[1][col] = Piece{Kind: Pawn, Color: Black}
		board[6][col] = Piece{Kind: Pawn, Color: White}
		board[7][col] = Piece{Kind: backRank[col], Color: White}
	}
	return board
}
