package model

// Snapshot is the read-only view of a game handed to the presentation layer.
type Snapshot struct {
	Board            []PieceView    `json:"board"`
	ToMove           Color          `json:"toMove"`
	MoveNumber       int            `json:"moveNumber"`
	Status           Status         `json:"status"`
	Winner           *Color         `json:"winner"`     // nil unless decided
	DrawReason       DrawReason     `json:"drawReason"` // empty unless drawn
	Result           string         `json:"result"`
	IsCheck          bool           `json:"isCheck"`
	MoveHistory      []MoveRecord   `json:"moveHistory"`
	CapturedPieces   CapturedPieces `json:"capturedPieces"`
	LastMove         *MoveRecord    `json:"lastMove"`
	PromotionPending *MoveRecord    `json:"promotionPending"`
	DrawOffer        *Color         `json:"drawOffer"`
	ClaimableDraw    DrawReason     `json:"claimableDraw"`
	FEN              string         `json:"fen"`
}

type PieceView struct {
	Type   PieceKind `json:"type"`
	Color  Color     `json:"color"`
	Square string    `json:"square"`
}

// CapturedPieces groups captured pieces by the side that lost them.
type CapturedPieces struct {
	White []PieceKind `json:"white"`
	Black []PieceKind `json:"black"`
}

type MoveRecord struct {
	Ply        int       `json:"ply"`
	Kind       MoveKind  `json:"kind"`
	Piece      PieceKind `json:"piece"`
	Color      Color     `json:"color"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	Captured   PieceKind `json:"captured,omitempty"`
	Promotion  PieceKind `json:"promotion,omitempty"`
	RookFrom   string    `json:"rookFrom,omitempty"`
	RookTo     string    `json:"rookTo,omitempty"`
	Notation   string    `json:"notation"`
	Annotation string    `json:"annotation,omitempty"`
}

func NewMoveRecord(m *Move) MoveRecord {
	rec := MoveRecord{
		Ply:        m.ply,
		Kind:       m.kind,
		Piece:      m.piece.kind,
		Color:      m.piece.color,
		From:       m.from.Label(),
		To:         m.to.Label(),
		Promotion:  m.promoteTo,
		Notation:   notation(m),
		Annotation: m.annotation.suffix(),
	}
	if m.captured != nil {
		rec.Captured = m.captured.kind
	}
	if m.kind == MoveCastling {
		rec.RookFrom, rec.RookTo = m.rookFrom.Label(), m.rookTo.Label()
	}
	return rec
}

func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Board:         make([]PieceView, 0, 32),
		ToMove:        g.Turn(),
		MoveNumber:    g.MoveNumber(),
		Status:        g.result.Status,
		DrawReason:    g.result.Reason,
		Result:        g.result.Score(),
		IsCheck:       g.check,
		MoveHistory:   make([]MoveRecord, 0, g.history.Len()),
		ClaimableDraw: g.CanClaimDraw(),
		FEN:           g.FEN(),
		CapturedPieces: CapturedPieces{
			White: make([]PieceKind, 0),
			Black: make([]PieceKind, 0),
		},
	}
	for sq := range g.board.AllSquares() {
		if p := sq.piece; p != nil {
			s.Board = append(s.Board, PieceView{Type: p.kind, Color: p.color, Square: sq.Label()})
		}
	}
	if g.result.HasWinner {
		winner := g.result.Winner
		s.Winner = &winner
	}
	for _, m := range g.history.moves {
		rec := NewMoveRecord(m)
		s.MoveHistory = append(s.MoveHistory, rec)
		if m.captured == nil {
			continue
		}
		if m.captured.color == White {
			s.CapturedPieces.White = append(s.CapturedPieces.White, m.captured.kind)
		} else {
			s.CapturedPieces.Black = append(s.CapturedPieces.Black, m.captured.kind)
		}
	}
	if n := len(s.MoveHistory); n > 0 {
		s.LastMove = &s.MoveHistory[n-1]
	}
	if g.pending != nil {
		rec := NewMoveRecord(g.pending)
		s.PromotionPending = &rec
	}
	if side, ok := g.DrawOffer(); ok {
		s.DrawOffer = &side
	}
	return s
}
