package model

import (
	"fmt"
	"iter"
	"strings"
)

const boardSize = 8

// Square is one cell of the board. Its identity never changes; the occupant
// is only changed through Board.relocate.
type Square struct {
	File  int
	Rank  int
	piece *Piece
}

// Piece returns the occupant or nil.
func (s *Square) Piece() *Piece { return s.piece }

func (s *Square) Occupied() bool { return s.piece != nil }

func (s *Square) OccupiedBy(c Color) bool {
	return s.piece != nil && s.piece.color == c
}

func (s *Square) Label() string {
	return fmt.Sprintf("%c%d", 'a'+s.File-1, s.Rank)
}

func (s *Square) String() string {
	return s.Label()
}

func (s *Square) isLight() bool {
	return (s.File+s.Rank)%2 == 1
}

type Board struct {
	squares [boardSize][boardSize]*Square // [file-1][rank-1]
}

func NewBoard() *Board {
	b := &Board{}
	for f := 1; f <= boardSize; f++ {
		for r := 1; r <= boardSize; r++ {
			b.squares[f-1][r-1] = &Square{File: f, Rank: r}
		}
	}
	return b
}

func (b *Board) SquareAt(file, rank int) (*Square, error) {
	sq := b.at(file, rank)
	if sq == nil {
		return nil, fmt.Errorf("%w: file=%d rank=%d", ErrOutOfRange, file, rank)
	}
	return sq, nil
}

// SquareByLabel resolves algebraic labels such as "e4".
func (b *Board) SquareByLabel(label string) (*Square, error) {
	if len(label) != 2 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidLabel, label)
	}
	file, rank := int(label[0]-'a')+1, int(label[1]-'0')
	if label[0] < 'a' || label[1] < '0' {
		return nil, fmt.Errorf("%w: %q", ErrInvalidLabel, label)
	}
	sq := b.at(file, rank)
	if sq == nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidLabel, label)
	}
	return sq, nil
}

// at returns nil for coordinates off the board.
func (b *Board) at(file, rank int) *Square {
	if file < 1 || file > boardSize || rank < 1 || rank > boardSize {
		return nil
	}
	return b.squares[file-1][rank-1]
}

// AllSquares yields a1, b1, ..., h1, a2, ..., h8. The sequence can be ranged
// over any number of times.
func (b *Board) AllSquares() iter.Seq[*Square] {
	return func(yield func(*Square) bool) {
		for r := 1; r <= boardSize; r++ {
			for f := 1; f <= boardSize; f++ {
				if !yield(b.squares[f-1][r-1]) {
					return
				}
			}
		}
	}
}

// relocate is the only code path that changes occupancy. Either end may be
// nil: a nil from places a piece, a nil to takes it off the board.
func (b *Board) relocate(p *Piece, from, to *Square) {
	if from != nil && from.piece == p {
		from.piece = nil
	}
	if to != nil {
		to.piece = p
	}
	p.square = to
}

func (b *Board) String() string {
	builder := strings.Builder{}
	for r := boardSize; r >= 1; r-- {
		_, _ = builder.WriteString(fmt.Sprintf("%d ", r))
		for f := 1; f <= boardSize; f++ {
			sym := "."
			if p := b.at(f, r).piece; p != nil {
				sym = p.FENSymbol()
			}
			_, _ = builder.WriteString(sym)
		}
		_, _ = builder.WriteRune('\n')
	}
	_, _ = builder.WriteString("  abcdefgh")
	return builder.String()
}
