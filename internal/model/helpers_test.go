package model

import (
	"testing"
)

var fixtureKinds = map[byte]Kind{
	'p': Pawn, 'n': Knight, 'b': Bishop, 'r': Rook, 'q': Queen, 'k': King,
}

// boardFromRows builds a board from eight rows, row 0 first. Uppercase letters
// are white pieces, lowercase black, '.' empty.
func boardFromRows(t *testing.T, rows ...string) Board {
	t.Helper()
	if len(rows) != 8 {
		t.Fatalf("expected 8 rows, got %d", len(rows))
	}
	var board Board
	for row, line := range rows {
		if len(line) != 8 {
			t.Fatalf("row %d: expected 8 cells, got %q", row, line)
		}
		for col := 0; col < 8; col++ {
			ch := line[col]
			if ch == '.' {
				continue
			}
			piece := Piece{Color: White}
			if ch >= 'a' && ch <= 'z' {
				piece.Color = Black
			} else {
				ch += 'a' - 'A'
			}
			kind, ok := fixtureKinds[ch]
			if !ok {
				t.Fatalf("row %d col %d: unknown piece %q", row, col, line[col])
			}
			piece.Kind = kind
			board[row][col] = piece
		}
	}
	return board
}

func sq(t *testing.T, name string) Square {
	t.Helper()
	s, err := ParseSquare(name)
	if err != nil {
		t.Fatalf("parse square: %v", err)
	}
	return s
}

func play(t *testing.T, g *GameState, moves ...string) {
	t.Helper()
	for _, m := range moves {
		from, to := sq(t, m[:2]), sq(t, m[2:4])
		if err := g.ApplyMove(Move{From: from, To: to}); err != nil {
			t.Fatalf("apply %s: %v\n%s", m, err, g.Board.Draw())
		}
	}
}

func destinations(moves []Move) map[string]Move {
	out := make(map[string]Move, len(moves))
	for _, mv := range moves {
		out[mv.To.String()] = mv
	}
	return out
}
