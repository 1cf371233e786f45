package model

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

var (
	darkCell  = color.New(color.FgBlack, color.BgGreen)
	lightCell = color.New(color.FgBlack, color.BgHiWhite)
	edgeLabel = color.New(color.Bold)
)

var unicodeSymbols = map[Color][7]string{
	White: {" ", "♙", "♘", "♗", "♖", "♕", "♔"},
	Black: {" ", "♟", "♞", "♝", "♜", "♛", "♚"},
}

func (p Piece) Symbol() string {
	return unicodeSymbols[p.Color][p.Kind]
}

// Draw renders the board for a terminal, row 0 on top. Colors are dropped
// automatically when the output is not a TTY.
func (b *Board) Draw() string {
	builder := strings.Builder{}
	for row := 0; row < 8; row++ {
		builder.WriteString(edgeLabel.Sprintf(" %d ", 8-row))
		for col := 0; col < 8; col++ {
			cell := lightCell
			if (row+col)%2 == 1 {
				cell = darkCell
			}
			builder.WriteString(cell.Sprintf(" %s ", b[row][col].Symbol()))
		}
		builder.WriteString("\n")
	}
	builder.WriteString("   ")
	for col := 0; col < 8; col++ {
		builder.WriteString(edgeLabel.Sprint(fmt.Sprintf(" %c ", 'a'+col)))
	}
	return builder.String()
}
