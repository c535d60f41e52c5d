package model

import (
	"errors"
	"slices"
	"testing"
)

func TestEnPassant(t *testing.T) {
	t.Parallel()
	g := newTestGame(t, "")
	playAll(t, g, "e2-e4", "a7-a6", "e4-e5", "d7-d5")
	d5, d6 := square(t, g, "d5"), square(t, g, "d6")
	victim := d5.Piece()

	m, err := g.Play("e5xd6")
	if err != nil {
		t.Fatalf("Play(e5xd6) error = %v", err)
	}
	if m.Kind() != MoveEnPassant || m.Captured() != victim || m.CapturedSquare() != d5 {
		t.Fatalf("move = %s kind=%s captured=%v at %v", m, m.Kind(), m.Captured(), m.CapturedSquare())
	}
	if d5.Occupied() || d6.Piece() == nil || victim.Square() != nil {
		t.Errorf("after en passant d5=%v d6=%v", d5.Piece(), d6.Piece())
	}
	if slices.Contains(g.Roster(Black), victim) {
		t.Errorf("captured pawn still in roster")
	}

	if _, err := g.Undo(); err != nil {
		t.Fatalf("Undo() error = %v", err)
	}
	if d5.Piece() != victim || d6.Occupied() || !slices.Contains(g.Roster(Black), victim) {
		t.Errorf("undo restored d5=%v d6=%v", d5.Piece(), d6.Piece())
	}
	occupancyConsistent(t, g)
}

func TestEnPassantWindow(t *testing.T) {
	t.Parallel()
	g := newTestGame(t, "")
	playAll(t, g, "e2-e4", "a7-a6", "e4-e5", "d7-d5", "h2-h3", "h7-h6")
	if _, err := g.Play("e5xd6"); !errors.Is(err, ErrImpossibleMove) {
		t.Errorf("late en passant error = %v, want ErrImpossibleMove", err)
	}
	if _, err := g.Play("e5-d6"); !errors.Is(err, ErrImpossibleMove) {
		t.Errorf("late en passant error = %v, want ErrImpossibleMove", err)
	}
}

func TestEnPassantFromFEN(t *testing.T) {
	t.Parallel()
	g := newTestGame(t, enPassantFEN)
	m, err := g.Play("e5xf6")
	if err != nil {
		t.Fatalf("Play(e5xf6) error = %v", err)
	}
	if m.Kind() != MoveEnPassant || m.CapturedSquare().Label() != "f5" {
		t.Errorf("move = %s kind=%s", m, m.Kind())
	}

	g = newTestGame(t, "rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq - 0 3")
	if _, err := g.Play("e5xf6"); !errors.Is(err, ErrImpossibleMove) {
		t.Errorf("en passant without FEN square error = %v", err)
	}
}

func TestHistoryQueries(t *testing.T) {
	t.Parallel()
	g := newTestGame(t, "")
	h := g.History()
	if h.LastMove() != nil || h.Len() != 0 || len(h.MovesInWindow(3)) != 0 {
		t.Fatalf("empty history reports moves")
	}
	playAll(t, g, "e2-e4", "e7-e5", "Ng1-f3", "Nb8-c6", "Bf1-c4")

	if h.Len() != 5 {
		t.Errorf("Len() = %d, want 5", h.Len())
	}
	if got := h.LastMove().String(); got != "Bf1-c4" {
		t.Errorf("LastMove() = %s", got)
	}
	window := h.MovesInWindow(2)
	if len(window) != 2 || window[0].String() != "Nb8-c6" || window[1].String() != "Bf1-c4" {
		t.Errorf("MovesInWindow(2) = %v", window)
	}
	if len(h.MovesInWindow(10)) != 5 {
		t.Errorf("MovesInWindow(10) returned %d moves", len(h.MovesInWindow(10)))
	}
	for i, m := range h.Moves() {
		if m.Ply() != i+1 {
			t.Errorf("move %d has ply %d", i, m.Ply())
		}
	}
	if !h.HasEverMovedFrom(square(t, g, "g1"), Knight) {
		t.Errorf("HasEverMovedFrom(g1, knight) = false")
	}
	if h.HasEverMovedFrom(square(t, g, "g1"), Bishop) {
		t.Errorf("HasEverMovedFrom(g1, bishop) = true")
	}
	if h.HasEverMovedFrom(square(t, g, "e1"), King) {
		t.Errorf("HasEverMovedFrom(e1, king) = true")
	}
	if got := h.quietRun(); got != 3 {
		t.Errorf("quietRun() = %d, want 3", got)
	}
	if got := h.NotationFor(h.Moves()[0]); got != "e2-e4" {
		t.Errorf("NotationFor() = %s", got)
	}
}

func TestMoveNotation(t *testing.T) {
	t.Parallel()
	g := newTestGame(t, "4k3/1P6/8/8/3p4/8/4P3/4K3 w - - 0 1")
	playAll(t, g, "e2-e4", "d4xe3", "b7-b8(Q)+")
	want := []string{"e2-e4", "d4xe3", "b7-b8(Q)+"}
	if got := g.Notation(); !slices.Equal(got, want) {
		t.Errorf("Notation() = %v, want %v", got, want)
	}
}
