package model

import "strings"

type MoveKind uint8

const (
	MoveNormal MoveKind = iota
	MoveCapture
	MoveCastling
	MoveEnPassant
	MovePromotion
)

func (k MoveKind) String() string {
	switch k {
	case MoveNormal:
		return "normal"
	case MoveCapture:
		return "capture"
	case MoveCastling:
		return "castling"
	case MoveEnPassant:
		return "enPassant"
	case MovePromotion:
		return "promotion"
	}
	return ""
}

func (k MoveKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

type Annotation uint8

const (
	AnnotationNone Annotation = iota
	AnnotationCheck
	AnnotationCheckmate
)

func (a Annotation) suffix() string {
	switch a {
	case AnnotationCheck:
		return "+"
	case AnnotationCheckmate:
		return "#"
	}
	return ""
}

type CastleSide uint8

const (
	NoCastle CastleSide = iota
	CastleShort
	CastleLong
)

func (s CastleSide) String() string {
	switch s {
	case CastleShort:
		return "O-O"
	case CastleLong:
		return "O-O-O"
	}
	return ""
}

// Move is a reversible state transition. Everything needed to undo it is
// carried in the value: the captured piece and its square, the castling
// partner and its squares, and the pawn replaced by a promotion.
type Move struct {
	kind       MoveKind
	piece      *Piece
	from       *Square
	to         *Square
	captured   *Piece
	capturedAt *Square
	ply        int
	annotation Annotation

	castle   CastleSide
	rook     *Piece
	rookFrom *Square
	rookTo   *Square

	promoteTo PieceKind
	promoted  *Piece

	// undo bookkeeping
	capturedIndex int
	pieceIndex    int

	// position keys before and after the move
	before uint64
	after  uint64
}

func (m *Move) Kind() MoveKind { return m.kind }

func (m *Move) Piece() *Piece { return m.piece }

func (m *Move) From() *Square { return m.from }

func (m *Move) To() *Square { return m.to }

// Captured is nil unless the move captures.
func (m *Move) Captured() *Piece { return m.captured }

// CapturedSquare differs from To only for en passant.
func (m *Move) CapturedSquare() *Square { return m.capturedAt }

// Ply is the 1-based index of the move in the game.
func (m *Move) Ply() int { return m.ply }

func (m *Move) Annotation() Annotation { return m.annotation }

func (m *Move) Castle() CastleSide { return m.castle }

func (m *Move) Rook() *Piece { return m.rook }

func (m *Move) RookFrom() *Square { return m.rookFrom }

func (m *Move) RookTo() *Square { return m.rookTo }

// PromoteTo is NoKind until a promotion's piece has been chosen.
func (m *Move) PromoteTo() PieceKind { return m.promoteTo }

// Promoted is the piece that replaced the pawn, nil before the move is applied.
func (m *Move) Promoted() *Piece { return m.promoted }

// Quiet moves neither capture nor move a pawn.
func (m *Move) Quiet() bool {
	return m.captured == nil && m.piece.kind != Pawn
}

func (m *Move) String() string {
	return notation(m)
}

func (m *Move) apply(g *Game) {
	switch m.kind {
	case MoveNormal:
		g.board.relocate(m.piece, m.from, m.to)
	case MoveCapture, MoveEnPassant:
		m.capturedIndex = g.removeFromRoster(m.captured)
		g.board.relocate(m.captured, m.capturedAt, nil)
		g.board.relocate(m.piece, m.from, m.to)
	case MoveCastling:
		g.board.relocate(m.piece, m.from, m.to)
		g.board.relocate(m.rook, m.rookFrom, m.rookTo)
	case MovePromotion:
		if m.captured != nil {
			m.capturedIndex = g.removeFromRoster(m.captured)
			g.board.relocate(m.captured, m.capturedAt, nil)
		}
		if m.promoted == nil || m.promoted.kind != m.promoteTo {
			m.promoted = &Piece{kind: m.promoteTo, color: m.piece.color}
		}
		m.pieceIndex = g.replaceInRoster(m.piece, m.promoted)
		g.board.relocate(m.piece, m.from, nil)
		g.board.relocate(m.promoted, nil, m.to)
	}
}

func (m *Move) undo(g *Game) {
	switch m.kind {
	case MoveNormal:
		g.board.relocate(m.piece, m.to, m.from)
	case MoveCapture, MoveEnPassant:
		g.board.relocate(m.piece, m.to, m.from)
		g.board.relocate(m.captured, nil, m.capturedAt)
		g.insertIntoRoster(m.captured, m.capturedIndex)
	case MoveCastling:
		g.board.relocate(m.rook, m.rookTo, m.rookFrom)
		g.board.relocate(m.piece, m.to, m.from)
	case MovePromotion:
		g.board.relocate(m.promoted, m.to, nil)
		g.rosters[m.piece.color][m.pieceIndex] = m.piece
		g.board.relocate(m.piece, nil, m.from)
		if m.captured != nil {
			g.board.relocate(m.captured, nil, m.capturedAt)
			g.insertIntoRoster(m.captured, m.capturedIndex)
		}
	}
}

// notation renders the long algebraic form accepted back by ParseDescriptor,
// e.g. "e2-e4", "Ng1-f3", "e5xd6", "e7-e8(Q)+", "O-O".
func notation(m *Move) string {
	var sb strings.Builder
	if m.kind == MoveCastling {
		sb.WriteString(m.castle.String())
	} else {
		sb.WriteString(m.piece.kind.notationLetter())
		sb.WriteString(m.from.Label())
		if m.captured != nil {
			sb.WriteByte('x')
		} else {
			sb.WriteByte('-')
		}
		sb.WriteString(m.to.Label())
		if m.kind == MovePromotion && m.promoteTo != NoKind {
			sb.WriteString("(" + m.promoteTo.Letter() + ")")
		}
	}
	sb.WriteString(m.annotation.suffix())
	return sb.String()
}
