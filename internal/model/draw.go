package model

const (
	fiftyMovePlies  = 50
	repetitionLimit = 3
)

// QuietPlies counts the trailing plies without a capture or pawn move,
// including the half-move clock of a position set up from FEN.
func (g *Game) QuietPlies() int {
	run := g.history.quietRun()
	if run == g.history.Len() {
		run += g.quietBaseline
	}
	return run
}

// RepetitionCount is the number of times the current position has occurred,
// the current occurrence included.
func (g *Game) RepetitionCount() int {
	cur := g.currentKey()
	n := 0
	if g.initialKey == cur {
		n++
	}
	for _, m := range g.history.moves {
		if m.after == cur {
			n++
		}
	}
	return n
}

// CanClaimDraw returns the reason a draw may be claimed now, DrawNone if it
// may not.
func (g *Game) CanClaimDraw() DrawReason {
	if g.result.Status.IsTerminal() {
		return DrawNone
	}
	if g.QuietPlies() >= fiftyMovePlies {
		return DrawFiftyMove
	}
	if g.RepetitionCount() >= repetitionLimit {
		return DrawRepetition
	}
	return DrawNone
}

func (g *Game) ClaimDraw() (DrawReason, error) {
	if g.result.Status.IsTerminal() {
		return DrawNone, ErrGameOver
	}
	reason := g.CanClaimDraw()
	if reason == DrawNone {
		return DrawNone, ErrDrawNotClaimable
	}
	g.finish(Result{Status: StatusDraw, Reason: reason}, true)
	return reason, nil
}

func (g *Game) Resign(side Color) error {
	if g.result.Status.IsTerminal() {
		return ErrGameOver
	}
	g.finish(Result{Status: StatusResigned, Winner: side.Opposite(), HasWinner: true}, true)
	return nil
}

// OfferDraw records an offer by side. A counter-offer to a standing offer is
// an agreement. After a declined offer the same side has to move before
// offering again.
func (g *Game) OfferDraw(side Color) error {
	if g.result.Status.IsTerminal() {
		return ErrGameOver
	}
	if g.drawOffer != nil {
		if *g.drawOffer == side {
			return ErrDrawOfferNotAllowed
		}
		g.finish(Result{Status: StatusDraw, Reason: DrawAgreement}, true)
		return nil
	}
	if g.offerBlocked[side] && !g.history.movedSince(side, g.offerBlockedAt[side]) {
		return ErrDrawOfferNotAllowed
	}
	g.offerBlocked[side] = false
	offer := side
	g.drawOffer = &offer
	return nil
}

func (g *Game) RespondDraw(side Color, accept bool) error {
	if g.result.Status.IsTerminal() {
		return ErrGameOver
	}
	if g.drawOffer == nil || *g.drawOffer == side {
		return ErrNoDrawOffer
	}
	offerer := *g.drawOffer
	g.drawOffer = nil
	if accept {
		g.finish(Result{Status: StatusDraw, Reason: DrawAgreement}, true)
		return nil
	}
	g.offerBlocked[offerer] = true
	g.offerBlockedAt[offerer] = g.history.Len()
	return nil
}

// DrawOffer reports the side with a standing offer.
func (g *Game) DrawOffer() (Color, bool) {
	if g.drawOffer == nil {
		return White, false
	}
	return *g.drawOffer, true
}

// insufficientMaterial covers bare kings, a single minor piece against a bare
// king, and one bishop each on squares of the same color.
func (g *Game) insufficientMaterial() bool {
	w, b := g.rosters[White], g.rosters[Black]
	switch {
	case len(w) == 1 && len(b) == 1:
		return true
	case len(w) == 1 && len(b) == 2:
		return isMinor(nonKing(b))
	case len(w) == 2 && len(b) == 1:
		return isMinor(nonKing(w))
	case len(w) == 2 && len(b) == 2:
		wb, bb := nonKing(w), nonKing(b)
		return wb.kind == Bishop && bb.kind == Bishop && wb.square.isLight() == bb.square.isLight()
	}
	return false
}

func nonKing(roster []*Piece) *Piece {
	for _, p := range roster {
		if p.kind != King {
			return p
		}
	}
	return nil
}

func isMinor(p *Piece) bool {
	return p.kind == Knight || p.kind == Bishop
}
