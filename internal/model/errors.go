package model

import (
	"errors"
	"fmt"
)

// Rejection reasons. None of them leave the game partially updated.
var (
	ErrOutOfRange           = errors.New("coordinates out of range")
	ErrInvalidLabel         = errors.New("invalid square label")
	ErrInvalidFormat        = errors.New("invalid move format")
	ErrPieceNotPresent      = errors.New("no piece at start square")
	ErrIncorrectPiece       = errors.New("piece at start square does not match")
	ErrImpossibleMove       = errors.New("impossible move")
	ErrAmbiguousMove        = errors.New("ambiguous move")
	ErrCastleNotAllowed     = errors.New("castling not allowed")
	ErrPromotionKindMissing = errors.New("promotion piece not specified")
	ErrNothingToUndo        = errors.New("nothing to undo")
)

// Lifecycle errors.
var (
	ErrGameOver             = errors.New("game is over")
	ErrNotYourTurn          = errors.New("not your turn")
	ErrUndoNotAllowed       = errors.New("game result is final")
	ErrPromotionPending     = errors.New("promotion pending")
	ErrNoPromotionPending   = errors.New("no promotion pending")
	ErrNotAPromotion        = errors.New("move is not a promotion")
	ErrInvalidPromotionKind = errors.New("invalid promotion piece")
	ErrDrawNotClaimable     = errors.New("draw cannot be claimed")
	ErrDrawOfferNotAllowed  = errors.New("draw offer not allowed")
	ErrNoDrawOffer          = errors.New("no draw offer to answer")
	ErrInvalidFEN           = errors.New("invalid fen")
)

// MoveError ties a rejection to the descriptor that caused it.
type MoveError struct {
	Descriptor string
	Err        error
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("%q: %v", e.Descriptor, e.Err)
}

func (e *MoveError) Unwrap() error {
	return e.Err
}
