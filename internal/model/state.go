package model

type Status uint8

const (
	StatusInProgress Status = iota
	StatusCheckmate
	StatusStalemate
	StatusDraw
	StatusResigned
)

func (s Status) String() string {
	switch s {
	case StatusInProgress:
		return "inProgress"
	case StatusCheckmate:
		return "checkmate"
	case StatusStalemate:
		return "stalemate"
	case StatusDraw:
		return "draw"
	case StatusResigned:
		return "resigned"
	}
	return ""
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// IsTerminal is true for every status but InProgress. Terminal states accept
// no further moves.
func (s Status) IsTerminal() bool {
	return s != StatusInProgress
}

type DrawReason uint8

const (
	DrawNone DrawReason = iota
	DrawInsufficientMaterial
	DrawFiftyMove
	DrawRepetition
	DrawAgreement
)

func (r DrawReason) String() string {
	switch r {
	case DrawInsufficientMaterial:
		return "insufficientMaterial"
	case DrawFiftyMove:
		return "fiftyMove"
	case DrawRepetition:
		return "repetition"
	case DrawAgreement:
		return "agreement"
	}
	return ""
}

func (r DrawReason) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// Result is the end-of-game outcome. Winner is meaningful only when
// HasWinner is set.
type Result struct {
	Status    Status
	Winner    Color
	HasWinner bool
	Reason    DrawReason
}

// Score renders the result in the usual "1-0" / "0-1" / "1/2-1/2" form, "*"
// while the game is in progress.
func (r Result) Score() string {
	switch {
	case !r.Status.IsTerminal():
		return "*"
	case !r.HasWinner:
		return "1/2-1/2"
	case r.Winner == White:
		return "1-0"
	}
	return "0-1"
}

func (r Result) String() string {
	switch r.Status {
	case StatusCheckmate, StatusResigned:
		return r.Winner.String() + " wins by " + r.Status.String()
	case StatusStalemate:
		return "draw by stalemate"
	case StatusDraw:
		return "draw by " + r.Reason.String()
	}
	return "in progress"
}

// State is the controller's current state. Check is the in-progress
// sub-state for the side to move.
type State struct {
	Result
	Check      bool
	SideToMove Color
}
