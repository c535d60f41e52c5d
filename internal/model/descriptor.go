package model

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	descriptorPattern = regexp.MustCompile(`^([PNBRQK])?([a-h][1-8])?([-x])?([a-h][1-8])(?:=?\(?([QRBN])\)?)?([+#])?$`)
	castlePattern     = regexp.MustCompile(`^(O-O|0-0)(-O|-0)?([+#])?$`)
)

// Descriptor is a parsed textual move request.
type Descriptor struct {
	Kind      PieceKind
	From      string // empty when the start square is left to the engine
	Capture   bool
	To        string
	Promotion PieceKind
	Castle    CastleSide
}

// ParseDescriptor accepts "[piece][from][-|x]to[promotion][+|#]" and the
// castling literals "O-O" and "O-O-O". The piece letter defaults to a pawn.
func ParseDescriptor(s string) (Descriptor, error) {
	s = strings.TrimSpace(s)
	if m := castlePattern.FindStringSubmatch(s); m != nil {
		d := Descriptor{Kind: King, Castle: CastleShort}
		if m[2] != "" {
			d.Castle = CastleLong
		}
		return d, nil
	}
	m := descriptorPattern.FindStringSubmatch(s)
	if m == nil {
		return Descriptor{}, ErrInvalidFormat
	}
	d := Descriptor{
		Kind:    Pawn,
		From:    m[2],
		Capture: m[3] == "x",
		To:      m[4],
	}
	if m[1] != "" {
		d.Kind, _ = KindFromLetter(m[1][0])
	}
	if m[5] != "" {
		if d.Kind != Pawn {
			return Descriptor{}, ErrInvalidFormat
		}
		d.Promotion, _ = KindFromLetter(m[5][0])
	}
	return d, nil
}

func (d Descriptor) String() string {
	if d.Castle != NoCastle {
		return d.Castle.String()
	}
	var sb strings.Builder
	sb.WriteString(d.Kind.notationLetter())
	sb.WriteString(d.From)
	if d.Capture {
		sb.WriteByte('x')
	} else if d.From != "" {
		sb.WriteByte('-')
	}
	sb.WriteString(d.To)
	if d.Promotion != NoKind {
		sb.WriteString("(" + d.Promotion.Letter() + ")")
	}
	return sb.String()
}

// Play parses and commits a descriptor for the side to move. Every rejection
// is a *MoveError wrapping one of the package's sentinel errors.
func (g *Game) Play(s string) (*Move, error) {
	m, err := g.play(s)
	if err != nil {
		return nil, &MoveError{Descriptor: s, Err: err}
	}
	return m, nil
}

func (g *Game) play(s string) (*Move, error) {
	d, err := ParseDescriptor(s)
	if err != nil {
		return nil, err
	}
	if err := g.ready(); err != nil {
		return nil, err
	}
	m, err := g.resolveDescriptor(d)
	if err != nil {
		return nil, err
	}
	if err := g.commit(m); err != nil {
		return nil, err
	}
	return m, nil
}

// ResolveDescriptor finds the move d names for the side to move without
// committing it.
func (g *Game) ResolveDescriptor(d Descriptor) (*Move, error) {
	if err := g.ready(); err != nil {
		return nil, err
	}
	return g.resolveDescriptor(d)
}

func (g *Game) resolveDescriptor(d Descriptor) (*Move, error) {
	side := g.Turn()
	if d.Castle != NoCastle {
		return g.resolveCastle(side, d.Castle)
	}
	to, err := g.board.SquareByLabel(d.To)
	if err != nil {
		return nil, err
	}

	var m *Move
	if d.From != "" {
		from, err := g.board.SquareByLabel(d.From)
		if err != nil {
			return nil, err
		}
		p := from.piece
		switch {
		case p == nil:
			return nil, ErrPieceNotPresent
		case p.color != side:
			return nil, ErrNotYourTurn
		case p.kind != d.Kind:
			return nil, fmt.Errorf("%w: %s is a %s", ErrIncorrectPiece, from, p.kind)
		}
		if m, err = g.Resolve(p, to, d.Promotion); err != nil {
			return nil, err
		}
	} else {
		var candidates []*Move
		for _, p := range g.Roster(side) {
			if p.kind != d.Kind {
				continue
			}
			if c, err := g.Resolve(p, to, d.Promotion); err == nil {
				candidates = append(candidates, c)
			}
		}
		switch len(candidates) {
		case 0:
			return nil, ErrImpossibleMove
		case 1:
			m = candidates[0]
		default:
			return nil, ErrAmbiguousMove
		}
	}
	if d.Capture && m.captured == nil {
		return nil, ErrImpossibleMove
	}
	return m, nil
}

// Notation returns the game record as descriptors accepted by Play.
func (g *Game) Notation() []string {
	return g.history.Notation()
}
