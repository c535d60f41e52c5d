package model

// castleFiles returns the rook's corner file and the destination files of
// king and rook.
func castleFiles(side CastleSide) (rookFile, kingTo, rookTo int) {
	if side == CastleLong {
		return 1, 3, 4
	}
	return 8, 7, 6
}

// castleAttempt recognizes a king on its home square stepping two files
// sideways along the home rank.
func (g *Game) castleAttempt(p *Piece, to *Square) (CastleSide, bool) {
	rank := p.color.homeRank()
	if p.kind != King || p.square != g.board.at(5, rank) || to.Rank != rank {
		return NoCastle, false
	}
	switch to.File {
	case 7:
		return CastleShort, true
	case 3:
		return CastleLong, true
	}
	return NoCastle, false
}

// hasCastleRight is derived from the history: neither the king nor the
// corner rook may ever have left its square, and the corner must never have
// been captured on.
func (g *Game) hasCastleRight(c Color, side CastleSide) bool {
	if g.castleLost[c][side] {
		return false
	}
	rank := c.homeRank()
	kingFrom := g.board.at(5, rank)
	rookFile, _, _ := castleFiles(side)
	rookFrom := g.board.at(rookFile, rank)
	if g.kings[c].square != kingFrom {
		return false
	}
	if rook := rookFrom.piece; rook == nil || rook.kind != Rook || rook.color != c {
		return false
	}
	return !g.history.HasEverMovedFrom(kingFrom, King) &&
		!g.history.HasEverMovedFrom(rookFrom, Rook) &&
		!g.history.capturedOn(rookFrom)
}

func (g *Game) resolveCastle(c Color, side CastleSide) (*Move, error) {
	if !g.hasCastleRight(c, side) {
		return nil, ErrCastleNotAllowed
	}
	rank := c.homeRank()
	rookFile, kingTo, rookTo := castleFiles(side)
	for f := min(5, rookFile) + 1; f < max(5, rookFile); f++ {
		if g.board.at(f, rank).piece != nil {
			return nil, ErrCastleNotAllowed
		}
	}
	// origin, transit and destination of the king
	step := sign(kingTo - 5)
	for f := 5; ; f += step {
		if g.isAttacked(g.board.at(f, rank), c.Opposite()) {
			return nil, ErrCastleNotAllowed
		}
		if f == kingTo {
			break
		}
	}
	rookFrom := g.board.at(rookFile, rank)
	m := &Move{
		kind:     MoveCastling,
		piece:    g.kings[c],
		from:     g.board.at(5, rank),
		to:       g.board.at(kingTo, rank),
		ply:      g.nextPly(),
		before:   g.currentKey(),
		castle:   side,
		rook:     rookFrom.piece,
		rookFrom: rookFrom,
		rookTo:   g.board.at(rookTo, rank),
	}
	if g.exposesKing(m) {
		return nil, ErrCastleNotAllowed
	}
	return m, nil
}
