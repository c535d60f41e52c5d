package model

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

const DefaultFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

type placement struct {
	kind  PieceKind
	color Color
}

type position struct {
	cells     [boardSize][boardSize]placement // [file-1][rank-1]
	turn      Color
	castling  [2][CastleLong + 1]bool
	enPassant string
	halfMove  int
	fullMove  int
}

func parseFEN(fen string) (*position, error) {
	segments := strings.Fields(fen)
	if len(segments) != 6 {
		return nil, fmt.Errorf("%w: incorrect number of segments", ErrInvalidFEN)
	}
	pos := &position{}

	rows := strings.Split(segments[0], "/")
	if len(rows) != boardSize {
		return nil, fmt.Errorf("%w: invalid board configuration", ErrInvalidFEN)
	}
	for i, row := range rows {
		rank := boardSize - i
		file := 1
		for _, cell := range row {
			if unicode.IsDigit(cell) {
				skip := int(cell - '0')
				if skip == 0 || file+skip-1 > boardSize {
					return nil, fmt.Errorf("%w: skip out of bounds", ErrInvalidFEN)
				}
				file += skip
				continue
			}
			kind, ok := KindFromLetter(byte(unicode.ToUpper(cell)))
			if !ok {
				return nil, fmt.Errorf("%w: unknown symbol '%c'", ErrInvalidFEN, cell)
			}
			if file > boardSize {
				return nil, fmt.Errorf("%w: rank %d too long", ErrInvalidFEN, rank)
			}
			color := White
			if unicode.IsLower(cell) {
				color = Black
			}
			pos.cells[file-1][rank-1] = placement{kind: kind, color: color}
			file++
		}
		if file != boardSize+1 {
			return nil, fmt.Errorf("%w: missing cells on rank %d", ErrInvalidFEN, rank)
		}
	}

	switch segments[1] {
	case "w":
		pos.turn = White
	case "b":
		pos.turn = Black
	default:
		return nil, fmt.Errorf("%w: invalid turn", ErrInvalidFEN)
	}

	if segments[2] != "-" {
		for _, e := range segments[2] {
			switch e {
			case 'K':
				pos.castling[White][CastleShort] = true
			case 'Q':
				pos.castling[White][CastleLong] = true
			case 'k':
				pos.castling[Black][CastleShort] = true
			case 'q':
				pos.castling[Black][CastleLong] = true
			default:
				return nil, fmt.Errorf("%w: invalid castling rights", ErrInvalidFEN)
			}
		}
	}

	if segments[3] != "-" {
		pos.enPassant = segments[3]
	}

	var err error
	if pos.halfMove, err = strconv.Atoi(segments[4]); err != nil || pos.halfMove < 0 {
		return nil, fmt.Errorf("%w: invalid half move clock", ErrInvalidFEN)
	}
	if pos.fullMove, err = strconv.Atoi(segments[5]); err != nil || pos.fullMove < 1 {
		return nil, fmt.Errorf("%w: invalid full move clock", ErrInvalidFEN)
	}
	return pos, nil
}

// setup replaces the whole game state with the position described by fen.
func (g *Game) setup(fen string) error {
	pos, err := parseFEN(fen)
	if err != nil {
		return err
	}
	next := &Game{
		board:         NewBoard(),
		history:       &History{},
		initialFEN:    fen,
		startPly:      (pos.fullMove-1)*2 + int(pos.turn),
		quietBaseline: pos.halfMove,
		observers:     g.observers,
	}
	for sq := range next.board.AllSquares() {
		cell := pos.cells[sq.File-1][sq.Rank-1]
		if cell.kind == NoKind {
			continue
		}
		if cell.kind == Pawn && (sq.Rank == 1 || sq.Rank == boardSize) {
			return fmt.Errorf("%w: pawn on %s", ErrInvalidFEN, sq)
		}
		p := &Piece{kind: cell.kind, color: cell.color}
		next.board.relocate(p, nil, sq)
		next.rosters[cell.color] = append(next.rosters[cell.color], p)
		if cell.kind == King {
			if next.kings[cell.color] != nil {
				return fmt.Errorf("%w: more than one %s king", ErrInvalidFEN, cell.color)
			}
			next.kings[cell.color] = p
		}
	}
	for c := White; c <= Black; c++ {
		if next.kings[c] == nil {
			return fmt.Errorf("%w: missing %s king", ErrInvalidFEN, c)
		}
		for _, side := range []CastleSide{CastleShort, CastleLong} {
			next.castleLost[c][side] = !pos.castling[c][side]
		}
	}
	if pos.enPassant != "" {
		seed, err := next.enPassantSeed(pos.enPassant, pos.turn.Opposite())
		if err != nil {
			return err
		}
		next.history.seed = seed
	}
	if next.inCheck(pos.turn.Opposite()) {
		return fmt.Errorf("%w: side not to move is in check", ErrInvalidFEN)
	}

	next.initialKey = next.positionKey()
	next.evaluate(nil)
	*g = *next
	return nil
}

// enPassantSeed checks that a pawn of mover stands just past the given square.
func (g *Game) enPassantSeed(label string, mover Color) (*doubleAdvance, error) {
	passed, err := g.board.SquareByLabel(label)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid en passant square", ErrInvalidFEN)
	}
	if passed.Rank != mover.pawnRank()+mover.forward() || passed.piece != nil {
		return nil, fmt.Errorf("%w: en passant square %s", ErrInvalidFEN, label)
	}
	landed := g.board.at(passed.File, passed.Rank+mover.forward())
	if p := landed.piece; p == nil || p.kind != Pawn || p.color != mover {
		return nil, fmt.Errorf("%w: no pawn beyond en passant square %s", ErrInvalidFEN, label)
	}
	return &doubleAdvance{
		pawn:       landed.piece,
		passedFile: passed.File,
		passedRank: passed.Rank,
	}, nil
}

// FEN renders the current position.
func (g *Game) FEN() string {
	builder := strings.Builder{}
	for r := boardSize; r >= 1; r-- {
		skip := 0
		for f := 1; f <= boardSize; f++ {
			p := g.board.at(f, r).piece
			if p == nil {
				skip++
				continue
			}
			if skip != 0 {
				_, _ = builder.WriteString(strconv.Itoa(skip))
				skip = 0
			}
			_, _ = builder.WriteString(p.FENSymbol())
		}
		if skip != 0 {
			_, _ = builder.WriteString(strconv.Itoa(skip))
		}
		if r > 1 {
			_, _ = builder.WriteRune('/')
		}
	}

	if g.Turn() == White {
		_, _ = builder.WriteString(" w ")
	} else {
		_, _ = builder.WriteString(" b ")
	}

	rights := ""
	for _, r := range []struct {
		c    Color
		side CastleSide
		sym  string
	}{
		{White, CastleShort, "K"},
		{White, CastleLong, "Q"},
		{Black, CastleShort, "k"},
		{Black, CastleLong, "q"},
	} {
		if g.hasCastleRight(r.c, r.side) {
			rights += r.sym
		}
	}
	if rights == "" {
		rights = "-"
	}
	_, _ = builder.WriteString(rights)
	_, _ = builder.WriteRune(' ')

	if da, ok := g.history.lastDoubleAdvance(); ok {
		_, _ = builder.WriteString(g.board.at(da.passedFile, da.passedRank).Label())
	} else {
		_, _ = builder.WriteRune('-')
	}

	_, _ = builder.WriteString(fmt.Sprintf(" %d %d", g.QuietPlies(), g.MoveNumber()))
	return builder.String()
}
