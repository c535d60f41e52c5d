package model

import (
	"slices"
	"testing"
)

func newTestGame(t *testing.T, fen string) *Game {
	t.Helper()
	var opts []GameOption
	if fen != "" {
		opts = append(opts, WithFEN(fen))
	}
	g, err := NewGame(opts...)
	if err != nil {
		t.Fatalf("NewGame(%q) error = %v", fen, err)
	}
	return g
}

func playAll(t *testing.T, g *Game, descriptors ...string) {
	t.Helper()
	for _, d := range descriptors {
		if _, err := g.Play(d); err != nil {
			t.Fatalf("Play(%q) error = %v", d, err)
		}
	}
}

func square(t *testing.T, g *Game, label string) *Square {
	t.Helper()
	sq, err := g.Board().SquareByLabel(label)
	if err != nil {
		t.Fatalf("SquareByLabel(%q) error = %v", label, err)
	}
	return sq
}

// occupancyConsistent checks the two-way link between pieces and squares.
func occupancyConsistent(t *testing.T, g *Game) {
	t.Helper()
	onBoard := 0
	for sq := range g.Board().AllSquares() {
		p := sq.Piece()
		if p == nil {
			continue
		}
		onBoard++
		if p.Square() != sq {
			t.Errorf("piece on %s records square %v", sq, p.Square())
		}
		if !slices.Contains(g.rosters[p.color], p) {
			t.Errorf("piece on %s missing from roster", sq)
		}
	}
	if n := len(g.rosters[White]) + len(g.rosters[Black]); n != onBoard {
		t.Errorf("rosters hold %d pieces, board holds %d", n, onBoard)
	}
}
