package termui

import (
	"fmt"
	"io"
	"strings"

	"github.com/benbeisheim/chessrules-backend/internal/model"
	"github.com/fatih/color"
)

var (
	lightCell = color.New(color.FgBlack, color.BgHiWhite)
	darkCell  = color.New(color.FgBlack, color.BgGreen)
	lastCell  = color.New(color.FgBlack, color.BgYellow)
	label     = color.New(color.Bold)
	alert     = color.New(color.FgRed, color.Bold)
)

var symbols = map[model.Color]map[model.PieceKind]string{
	model.White: {
		model.King: "♔", model.Queen: "♕", model.Rook: "♖",
		model.Bishop: "♗", model.Knight: "♘", model.Pawn: "♙",
	},
	model.Black: {
		model.King: "♚", model.Queen: "♛", model.Rook: "♜",
		model.Bishop: "♝", model.Knight: "♞", model.Pawn: "♟",
	},
}

// Symbol is the unicode glyph for p, a space for nil.
func Symbol(p *model.Piece) string {
	if p == nil {
		return " "
	}
	return symbols[p.Color()][p.Kind()]
}

// DrawBoard renders the board as seen from perspective, highlighting the
// squares of the last move.
func DrawBoard(w io.Writer, g *model.Game, perspective model.Color) {
	var from, to *model.Square
	if m := g.History().LastMove(); m != nil {
		from, to = m.From(), m.To()
	}

	ranks, files := order(perspective)
	var sb strings.Builder
	for _, rank := range ranks {
		sb.WriteString(label.Sprintf(" %d ", rank))
		for _, file := range files {
			sq, _ := g.Board().SquareAt(file, rank)
			cell := darkCell
			if (file+rank)%2 == 1 {
				cell = lightCell
			}
			if sq == from || sq == to {
				cell = lastCell
			}
			sb.WriteString(cell.Sprintf(" %s ", Symbol(sq.Piece())))
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("   ")
	for _, file := range files {
		sb.WriteString(label.Sprintf(" %c ", 'a'+file-1))
	}
	sb.WriteByte('\n')
	fmt.Fprint(w, sb.String())
}

func order(perspective model.Color) (ranks, files []int) {
	for i := 1; i <= 8; i++ {
		ranks = append(ranks, i)
		files = append(files, i)
	}
	if perspective == model.White {
		for i, j := 0, len(ranks)-1; i < j; i, j = i+1, j-1 {
			ranks[i], ranks[j] = ranks[j], ranks[i]
		}
		return ranks, files
	}
	for i, j := 0, len(files)-1; i < j; i, j = i+1, j-1 {
		files[i], files[j] = files[j], files[i]
	}
	return ranks, files
}

// DrawStatus prints whose turn it is, or the result once the game is over.
func DrawStatus(w io.Writer, g *model.Game) {
	s := g.State()
	switch {
	case s.Status.IsTerminal():
		fmt.Fprintf(w, "%s (%s)\n", alert.Sprint(s.Result), s.Score())
	case g.PendingPromotion() != nil:
		fmt.Fprintf(w, "%s to choose a promotion piece\n", s.SideToMove)
	case s.Check:
		fmt.Fprintf(w, "%d. %s to move, %s\n", g.MoveNumber(), s.SideToMove, alert.Sprint("check"))
	default:
		fmt.Fprintf(w, "%d. %s to move\n", g.MoveNumber(), s.SideToMove)
	}
	if reason := g.CanClaimDraw(); reason != model.DrawNone {
		fmt.Fprintf(w, "draw may be claimed: %s\n", reason)
	}
	if side, ok := g.DrawOffer(); ok {
		fmt.Fprintf(w, "%s offers a draw\n", side)
	}
}
