package service

import (
	"errors"

	"github.com/benbeisheim/chessrules-backend/internal/model"
)

var (
	ErrGameNotFound   = errors.New("game not found")
	ErrInvalidRequest = errors.New("invalid request")
)

var errorCodes = []struct {
	err  error
	code string
}{
	{ErrGameNotFound, "gameNotFound"},
	{ErrInvalidRequest, "invalidRequest"},
	{model.ErrInvalidFEN, "invalidFen"},
	{model.ErrOutOfRange, "outOfRange"},
	{model.ErrInvalidLabel, "invalidSquare"},
	{model.ErrInvalidFormat, "invalidFormat"},
	{model.ErrPieceNotPresent, "pieceNotPresent"},
	{model.ErrIncorrectPiece, "incorrectPiece"},
	{model.ErrImpossibleMove, "impossibleMove"},
	{model.ErrAmbiguousMove, "ambiguousMove"},
	{model.ErrCastleNotAllowed, "castleNotAllowed"},
	{model.ErrPromotionKindMissing, "promotionKindMissing"},
	{model.ErrNothingToUndo, "nothingToUndo"},
	{model.ErrGameOver, "gameOver"},
	{model.ErrNotYourTurn, "notYourTurn"},
	{model.ErrUndoNotAllowed, "undoNotAllowed"},
	{model.ErrPromotionPending, "promotionPending"},
	{model.ErrNoPromotionPending, "noPromotionPending"},
	{model.ErrNotAPromotion, "notAPromotion"},
	{model.ErrInvalidPromotionKind, "invalidPromotionKind"},
	{model.ErrDrawNotClaimable, "drawNotClaimable"},
	{model.ErrDrawOfferNotAllowed, "drawOfferNotAllowed"},
	{model.ErrNoDrawOffer, "noDrawOffer"},
}

// ErrorCode is the stable client-facing name of err, "internal" for errors
// outside the game's vocabulary.
func ErrorCode(err error) string {
	for _, ec := range errorCodes {
		if errors.Is(err, ec.err) {
			return ec.code
		}
	}
	return "internal"
}
