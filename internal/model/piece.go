package model

import "fmt"

type Color uint8

const (
	White Color = iota
	Black
)

func ParseColor(s string) (Color, error) {
	switch s {
	case "white", "w":
		return White, nil
	case "black", "b":
		return Black, nil
	}
	return White, fmt.Errorf("unknown color %q", s)
}

func (c Color) String() string {
	if c == Black {
		return "black"
	}
	return "white"
}

func (c Color) Opposite() Color {
	return c ^ 1
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// forward is the rank delta of a pawn step.
func (c Color) forward() int {
	if c == Black {
		return -1
	}
	return 1
}

func (c Color) homeRank() int {
	if c == Black {
		return 8
	}
	return 1
}

func (c Color) pawnRank() int {
	if c == Black {
		return 7
	}
	return 2
}

func (c Color) lastRank() int {
	if c == Black {
		return 1
	}
	return 8
}

type PieceKind uint8

const (
	NoKind PieceKind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// PromotionKinds lists the kinds a pawn may become.
var PromotionKinds = []PieceKind{Queen, Rook, Bishop, Knight}

// KindFromLetter maps an upper-case algebraic letter to a kind.
func KindFromLetter(letter byte) (PieceKind, bool) {
	switch letter {
	case 'P':
		return Pawn, true
	case 'N':
		return Knight, true
	case 'B':
		return Bishop, true
	case 'R':
		return Rook, true
	case 'Q':
		return Queen, true
	case 'K':
		return King, true
	}
	return NoKind, false
}

func (k PieceKind) String() string {
	switch k {
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	}
	return ""
}

func (k PieceKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *PieceKind) UnmarshalText(text []byte) error {
	s := string(text)
	if s == "" {
		*k = NoKind
		return nil
	}
	if len(s) == 1 {
		if parsed, ok := KindFromLetter(s[0] &^ 0x20); ok {
			*k = parsed
			return nil
		}
	}
	for kind := Pawn; kind <= King; kind++ {
		if kind.String() == s {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown piece kind %q", s)
}

// Letter is the upper-case algebraic letter, "P" for pawns.
func (k PieceKind) Letter() string {
	switch k {
	case Pawn:
		return "P"
	case Knight:
		return "N"
	case Bishop:
		return "B"
	case Rook:
		return "R"
	case Queen:
		return "Q"
	case King:
		return "K"
	}
	return ""
}

// notationLetter omits the letter for pawns.
func (k PieceKind) notationLetter() string {
	if k == Pawn {
		return ""
	}
	return k.Letter()
}

func (k PieceKind) isPromotionTarget() bool {
	switch k {
	case Queen, Rook, Bishop, Knight:
		return true
	}
	return false
}

// Piece is owned by its side's roster; square is a lookup relation kept in
// sync with Square.piece by Board.relocate.
type Piece struct {
	kind   PieceKind
	color  Color
	square *Square
}

func (p *Piece) Kind() PieceKind { return p.kind }

func (p *Piece) Color() Color { return p.color }

// Square is nil once the piece has been captured.
func (p *Piece) Square() *Square { return p.square }

// FENSymbol is upper case for white, lower case for black.
func (p *Piece) FENSymbol() string {
	sym := p.kind.Letter()
	if p.color == Black && sym != "" {
		return string(sym[0] | 0x20)
	}
	return sym
}

func (p *Piece) String() string {
	if p.square == nil {
		return fmt.Sprintf("%s %s", p.color, p.kind)
	}
	return fmt.Sprintf("%s %s at %s", p.color, p.kind, p.square)
}

type offset struct {
	df, dr int
}

var (
	knightJumps = []offset{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	kingSteps   = []offset{{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1}}
)

// geometricReach reports whether the movement pattern of p permits reaching
// to from its current square. It ignores turn order and self-check; a pawn's
// diagonal step onto an empty square is allowed only when the history grants
// en passant.
func geometricReach(p *Piece, to *Square, b *Board, h *History) bool {
	from := p.square
	if from == nil || from == to {
		return false
	}
	if p.kind == Pawn {
		return pawnReach(p, from, to, b, h)
	}
	return covers(p, from, to, b)
}

// attacks reports whether p's geometry covers sq regardless of turn. Pawns
// attack diagonally forward whether or not the square is occupied.
func attacks(p *Piece, sq *Square, b *Board) bool {
	from := p.square
	if from == nil || from == sq {
		return false
	}
	if p.kind == Pawn {
		df := sq.File - from.File
		return (df == 1 || df == -1) && sq.Rank-from.Rank == p.color.forward()
	}
	return covers(p, from, sq, b)
}

// covers is the single dispatch over the non-pawn kinds.
func covers(p *Piece, from, to *Square, b *Board) bool {
	switch p.kind {
	case Knight:
		return jumps(from, to, knightJumps)
	case Bishop:
		return slides(from, to, b, false, true)
	case Rook:
		return slides(from, to, b, true, false)
	case Queen:
		return slides(from, to, b, true, true)
	case King:
		return jumps(from, to, kingSteps)
	}
	return false
}

func pawnReach(p *Piece, from, to *Square, b *Board, h *History) bool {
	fwd := p.color.forward()
	df, dr := to.File-from.File, to.Rank-from.Rank
	switch {
	case df == 0 && dr == fwd:
		return to.piece == nil
	case df == 0 && dr == 2*fwd:
		return from.Rank == p.color.pawnRank() &&
			b.at(from.File, from.Rank+fwd).piece == nil &&
			to.piece == nil
	case (df == 1 || df == -1) && dr == fwd:
		if to.piece != nil {
			return to.piece.color != p.color
		}
		return h.enPassantVictim(p, to) != nil
	}
	return false
}

func jumps(from, to *Square, offsets []offset) bool {
	df, dr := to.File-from.File, to.Rank-from.Rank
	for _, o := range offsets {
		if o.df == df && o.dr == dr {
			return true
		}
	}
	return false
}

// slides walks the ray from from to to and fails on the first occupied
// square strictly between them.
func slides(from, to *Square, b *Board, straight, diagonal bool) bool {
	df, dr := to.File-from.File, to.Rank-from.Rank
	switch {
	case df == 0 || dr == 0:
		if !straight {
			return false
		}
	case abs(df) == abs(dr):
		if !diagonal {
			return false
		}
	default:
		return false
	}
	sf, sr := sign(df), sign(dr)
	for f, r := from.File+sf, from.Rank+sr; f != to.File || r != to.Rank; f, r = f+sf, r+sr {
		if b.at(f, r).piece != nil {
			return false
		}
	}
	return true
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
