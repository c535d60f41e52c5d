package model

// doubleAdvance describes a two-square pawn advance that the next ply may
// answer en passant.
type doubleAdvance struct {
	pawn       *Piece
	passedFile int
	passedRank int
}

// History is the ordered log of applied moves. Its length always equals the
// number of plies played.
type History struct {
	moves []*Move

	// seed stands in for the previous ply of a game set up mid-way, while
	// the log is still empty.
	seed *doubleAdvance
}

func (h *History) Len() int {
	return len(h.moves)
}

// LastMove returns nil before the first ply.
func (h *History) LastMove() *Move {
	if len(h.moves) == 0 {
		return nil
	}
	return h.moves[len(h.moves)-1]
}

// MovesInWindow returns the most recent n plies, oldest first.
func (h *History) MovesInWindow(n int) []*Move {
	if n > len(h.moves) {
		n = len(h.moves)
	}
	if n <= 0 {
		return nil
	}
	window := make([]*Move, n)
	copy(window, h.moves[len(h.moves)-n:])
	return window
}

func (h *History) Moves() []*Move {
	return h.MovesInWindow(len(h.moves))
}

// HasEverMovedFrom reports whether a piece of the given kind has left sq at
// any point of the game. The rook of a castling move counts as leaving its
// corner.
func (h *History) HasEverMovedFrom(sq *Square, kind PieceKind) bool {
	for _, m := range h.moves {
		if m.from == sq && m.piece.kind == kind {
			return true
		}
		if m.kind == MoveCastling && m.rookFrom == sq && kind == Rook {
			return true
		}
	}
	return false
}

// NotationFor renders m in the long algebraic form used for the game record.
func (h *History) NotationFor(m *Move) string {
	return notation(m)
}

// Notation returns the record of the whole game.
func (h *History) Notation() []string {
	out := make([]string, len(h.moves))
	for i, m := range h.moves {
		out[i] = notation(m)
	}
	return out
}

func (h *History) capturedOn(sq *Square) bool {
	for _, m := range h.moves {
		if m.captured != nil && m.capturedAt == sq {
			return true
		}
	}
	return false
}

// quietRun counts the trailing quiet plies.
func (h *History) quietRun() int {
	n := 0
	for i := len(h.moves) - 1; i >= 0 && h.moves[i].Quiet(); i-- {
		n++
	}
	return n
}

// movedSince reports whether c has moved among the plies after index from.
func (h *History) movedSince(c Color, from int) bool {
	for i := from; i < len(h.moves); i++ {
		if h.moves[i].piece.color == c {
			return true
		}
	}
	return false
}

func (h *History) lastDoubleAdvance() (doubleAdvance, bool) {
	m := h.LastMove()
	if m == nil {
		if h.seed != nil {
			return *h.seed, true
		}
		return doubleAdvance{}, false
	}
	if m.kind != MoveNormal || m.piece.kind != Pawn || abs(m.to.Rank-m.from.Rank) != 2 {
		return doubleAdvance{}, false
	}
	return doubleAdvance{
		pawn:       m.piece,
		passedFile: m.from.File,
		passedRank: (m.from.Rank + m.to.Rank) / 2,
	}, true
}

// enPassantVictim returns the pawn p would take by stepping diagonally onto
// the empty square to, or nil when the preceding ply does not allow it.
func (h *History) enPassantVictim(p *Piece, to *Square) *Piece {
	da, ok := h.lastDoubleAdvance()
	if !ok || da.pawn.color == p.color || da.pawn.square == nil {
		return nil
	}
	if da.passedFile != to.File || da.passedRank != to.Rank {
		return nil
	}
	return da.pawn
}

func (h *History) push(m *Move) {
	h.moves = append(h.moves, m)
}

func (h *History) pop() *Move {
	m := h.LastMove()
	if m == nil {
		return nil
	}
	h.moves[len(h.moves)-1] = nil
	h.moves = h.moves[:len(h.moves)-1]
	return m
}
