package model

// Zobrist keys for position identity. Generated from a fixed seed so keys are
// stable across runs.
var (
	zobristPiece      [2][King + 1][boardSize * boardSize]uint64
	zobristCastle     [2][CastleLong + 1]uint64
	zobristEnPassant  [boardSize]uint64
	zobristSideToMove uint64
)

func init() {
	rng := xorshift{state: 0x6A09E667F3BCC909}
	for c := White; c <= Black; c++ {
		for k := Pawn; k <= King; k++ {
			for i := range zobristPiece[c][k] {
				zobristPiece[c][k][i] = rng.next()
			}
		}
		zobristCastle[c][CastleShort] = rng.next()
		zobristCastle[c][CastleLong] = rng.next()
	}
	for i := range zobristEnPassant {
		zobristEnPassant[i] = rng.next()
	}
	zobristSideToMove = rng.next()
}

// xorshift64*
type xorshift struct {
	state uint64
}

func (x *xorshift) next() uint64 {
	x.state ^= x.state >> 12
	x.state ^= x.state << 25
	x.state ^= x.state >> 27
	return x.state * 0x2545F4914F6CDD1D
}

// positionKey hashes placement, side to move, castling rights and a capturable
// en passant square. Two positions with equal keys count as the same position
// for the repetition rule.
func (g *Game) positionKey() uint64 {
	var key uint64
	for sq := range g.board.AllSquares() {
		if p := sq.piece; p != nil {
			key ^= zobristPiece[p.color][p.kind][(sq.Rank-1)*boardSize+sq.File-1]
		}
	}
	for c := White; c <= Black; c++ {
		for _, side := range []CastleSide{CastleShort, CastleLong} {
			if g.hasCastleRight(c, side) {
				key ^= zobristCastle[c][side]
			}
		}
	}
	if file, ok := g.enPassantFile(); ok {
		key ^= zobristEnPassant[file-1]
	}
	if g.Turn() == Black {
		key ^= zobristSideToMove
	}
	return key
}

// enPassantFile reports the file of the passed square when a pawn of the
// side to move stands ready to capture there.
func (g *Game) enPassantFile() (int, bool) {
	da, ok := g.history.lastDoubleAdvance()
	if !ok || da.pawn.square == nil {
		return 0, false
	}
	landed := da.pawn.square
	for _, df := range []int{-1, 1} {
		sq := g.board.at(landed.File+df, landed.Rank)
		if sq != nil && sq.piece != nil && sq.piece.kind == Pawn && sq.piece.color != da.pawn.color {
			return da.passedFile, true
		}
	}
	return 0, false
}
