package model

import (
	"errors"
	"testing"
)

// shuffle plays n quiet plies with the a-file rook and the black king.
func shuffle(t *testing.T, g *Game, n int) {
	t.Helper()
	cycle := []string{"Ra1-a2", "Ke8-d8", "Ra2-a1", "Kd8-e8"}
	for i := 0; i < n; i++ {
		playAll(t, g, cycle[i%len(cycle)])
	}
}

func TestFiftyMoveRule(t *testing.T) {
	t.Parallel()
	g := newTestGame(t, "4k3/7p/8/8/8/8/7P/R3K3 w - - 0 1")
	shuffle(t, g, 49)
	if g.QuietPlies() != 49 {
		t.Fatalf("QuietPlies() = %d, want 49", g.QuietPlies())
	}
	if g.CanClaimDraw() == DrawFiftyMove {
		t.Fatalf("fifty-move claim after 49 plies")
	}
	playAll(t, g, "Ke8-d8")
	if got := g.CanClaimDraw(); got != DrawFiftyMove {
		t.Fatalf("CanClaimDraw() = %s, want fiftyMove", got)
	}
	if g.State().Status != StatusInProgress {
		t.Fatalf("claimable draw changed the state to %s", g.State().Status)
	}

	playAll(t, g, "h2-h3")
	if got := g.CanClaimDraw(); got != DrawNone {
		t.Errorf("CanClaimDraw() after pawn move = %s, want none", got)
	}
	if _, err := g.ClaimDraw(); !errors.Is(err, ErrDrawNotClaimable) {
		t.Errorf("ClaimDraw() error = %v, want ErrDrawNotClaimable", err)
	}
}

func TestFiftyMoveBaseline(t *testing.T) {
	t.Parallel()
	g := newTestGame(t, "4k3/7p/8/8/8/8/7P/R3K3 w - - 49 80")
	if g.CanClaimDraw() != DrawNone {
		t.Fatalf("claimable before the fiftieth ply")
	}
	playAll(t, g, "Ra1-a2")
	reason, err := g.ClaimDraw()
	if err != nil || reason != DrawFiftyMove {
		t.Fatalf("ClaimDraw() = %s, %v", reason, err)
	}
	if s := g.State(); s.Status != StatusDraw || s.Reason != DrawFiftyMove {
		t.Errorf("State() = %+v", s)
	}
	if _, err := g.Undo(); !errors.Is(err, ErrUndoNotAllowed) {
		t.Errorf("Undo() after claimed draw error = %v, want ErrUndoNotAllowed", err)
	}
}

func TestThreefoldRepetition(t *testing.T) {
	t.Parallel()
	g := newTestGame(t, "")
	if g.RepetitionCount() != 1 {
		t.Fatalf("RepetitionCount() = %d, want 1", g.RepetitionCount())
	}
	cycle := []string{"Ng1-f3", "Ng8-f6", "Nf3-g1", "Nf6-g8"}
	playAll(t, g, cycle...)
	if g.RepetitionCount() != 2 || g.CanClaimDraw() != DrawNone {
		t.Fatalf("RepetitionCount() = %d after one cycle", g.RepetitionCount())
	}
	playAll(t, g, cycle...)
	if g.RepetitionCount() != 3 {
		t.Fatalf("RepetitionCount() = %d, want 3", g.RepetitionCount())
	}
	if got := g.CanClaimDraw(); got != DrawRepetition {
		t.Fatalf("CanClaimDraw() = %s, want repetition", got)
	}

	if _, err := g.Undo(); err != nil {
		t.Fatalf("Undo() error = %v", err)
	}
	if g.CanClaimDraw() != DrawNone {
		t.Errorf("repetition still claimable after undo")
	}
	playAll(t, g, "Nf6-g8")
	reason, err := g.ClaimDraw()
	if err != nil || reason != DrawRepetition {
		t.Fatalf("ClaimDraw() = %s, %v", reason, err)
	}
	if _, err := g.Play("e2-e4"); !errors.Is(err, ErrGameOver) {
		t.Errorf("Play after draw error = %v, want ErrGameOver", err)
	}
}

func TestRepetitionNeedsSameRights(t *testing.T) {
	t.Parallel()
	g := newTestGame(t, castleFEN)
	cycle := []string{"Ke1-f1", "Ke8-f8", "Kf1-e1", "Kf8-e8"}
	playAll(t, g, cycle...)
	playAll(t, g, cycle...)
	// the first occurrence still had castling rights
	if got := g.RepetitionCount(); got != 2 {
		t.Errorf("RepetitionCount() = %d, want 2", got)
	}
}

func TestRepetitionEnPassantRight(t *testing.T) {
	t.Parallel()
	g := newTestGame(t, "4k3/8/8/8/3p4/8/4P3/4K3 w - - 0 1")
	playAll(t, g, "e2-e4")
	first := g.currentKey()
	g2 := newTestGame(t, "4k3/8/8/8/3pP3/8/8/4K3 b - - 0 1")
	if first == g2.currentKey() {
		t.Errorf("position with en passant right hashes like one without")
	}
}

func TestDrawOffer(t *testing.T) {
	t.Parallel()
	g := newTestGame(t, "")
	if err := g.RespondDraw(Black, true); !errors.Is(err, ErrNoDrawOffer) {
		t.Errorf("RespondDraw() without offer error = %v", err)
	}
	if err := g.OfferDraw(White); err != nil {
		t.Fatalf("OfferDraw(White) error = %v", err)
	}
	if side, ok := g.DrawOffer(); !ok || side != White {
		t.Errorf("DrawOffer() = %s, %v", side, ok)
	}
	if err := g.OfferDraw(White); !errors.Is(err, ErrDrawOfferNotAllowed) {
		t.Errorf("repeated offer error = %v", err)
	}
	if err := g.RespondDraw(White, true); !errors.Is(err, ErrNoDrawOffer) {
		t.Errorf("answering own offer error = %v", err)
	}
	if err := g.RespondDraw(Black, false); err != nil {
		t.Fatalf("RespondDraw(decline) error = %v", err)
	}
	if _, ok := g.DrawOffer(); ok {
		t.Errorf("offer still standing after decline")
	}
	if err := g.OfferDraw(White); !errors.Is(err, ErrDrawOfferNotAllowed) {
		t.Errorf("offer right after decline error = %v, want ErrDrawOfferNotAllowed", err)
	}

	playAll(t, g, "e2-e4")
	if err := g.OfferDraw(White); err != nil {
		t.Fatalf("offer after moving error = %v", err)
	}
	playAll(t, g, "e7-e5")
	if _, ok := g.DrawOffer(); ok {
		t.Errorf("offer survives the opponent's move")
	}

	if err := g.OfferDraw(Black); err != nil {
		t.Fatalf("OfferDraw(Black) error = %v", err)
	}
	if err := g.OfferDraw(White); err != nil {
		t.Fatalf("counter-offer error = %v", err)
	}
	if s := g.State(); s.Status != StatusDraw || s.Reason != DrawAgreement {
		t.Errorf("State() = %+v, want agreed draw", s)
	}
	if _, err := g.Undo(); !errors.Is(err, ErrUndoNotAllowed) {
		t.Errorf("Undo() after agreement error = %v", err)
	}
}

func TestDrawOfferAccepted(t *testing.T) {
	t.Parallel()
	g := newTestGame(t, "")
	playAll(t, g, "e2-e4")
	if err := g.OfferDraw(Black); err != nil {
		t.Fatalf("OfferDraw() error = %v", err)
	}
	playAll(t, g, "e7-e5")
	if _, ok := g.DrawOffer(); !ok {
		t.Fatalf("offer withdrawn by the offerer's own move")
	}
	if err := g.RespondDraw(White, true); err != nil {
		t.Fatalf("RespondDraw() error = %v", err)
	}
	if g.State().Status != StatusDraw {
		t.Errorf("Status = %s", g.State().Status)
	}
	if err := g.OfferDraw(White); !errors.Is(err, ErrGameOver) {
		t.Errorf("OfferDraw() after end error = %v", err)
	}
}

func TestResign(t *testing.T) {
	t.Parallel()
	g := newTestGame(t, "")
	var got Result
	g.OnEnd(func(r Result) { got = r })
	playAll(t, g, "e2-e4")
	if err := g.Resign(White); err != nil {
		t.Fatalf("Resign() error = %v", err)
	}
	want := Result{Status: StatusResigned, Winner: Black, HasWinner: true}
	if got != want || g.State().Result != want {
		t.Errorf("result = %+v, observed %+v, want %+v", g.State().Result, got, want)
	}
	if got.Score() != "0-1" {
		t.Errorf("Score() = %s, want 0-1", got.Score())
	}
	if err := g.Resign(Black); !errors.Is(err, ErrGameOver) {
		t.Errorf("second Resign() error = %v", err)
	}
	if _, err := g.Undo(); !errors.Is(err, ErrUndoNotAllowed) {
		t.Errorf("Undo() after resignation error = %v", err)
	}
}
