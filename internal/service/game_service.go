package service

import (
	"fmt"

	"github.com/benbeisheim/chessrules-backend/internal/model"
	"github.com/benbeisheim/chessrules-backend/internal/ws"
	"github.com/google/uuid"
)

type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

// MoveRequest names a move either by descriptor or by squares.
type MoveRequest struct {
	Descriptor string `json:"descriptor"`
	From       string `json:"from"`
	To         string `json:"to"`
	Promotion  string `json:"promotion"`
}

// CreateGame registers a new game, from the initial position when fen is
// empty.
func (gs *GameService) CreateGame(fen string) (string, model.Snapshot, error) {
	gameID := uuid.New().String()
	if err := gs.gameManager.CreateGame(gameID, fen); err != nil {
		return "", model.Snapshot{}, fmt.Errorf("failed to create game: %w", err)
	}
	snap, err := gs.GetGameState(gameID)
	return gameID, snap, err
}

func (gs *GameService) GetGameState(gameID string) (model.Snapshot, error) {
	var snap model.Snapshot
	err := gs.gameManager.View(gameID, func(g *model.Game) error {
		snap = g.Snapshot()
		return nil
	})
	return snap, err
}

// update applies fn and returns the resulting snapshot.
func (gs *GameService) update(gameID string, fn func(*model.Game) error) (model.Snapshot, error) {
	var snap model.Snapshot
	err := gs.gameManager.Update(gameID, func(g *model.Game) error {
		if err := fn(g); err != nil {
			return err
		}
		snap = g.Snapshot()
		return nil
	})
	return snap, err
}

// checkTurn rejects actions by a known side that is not to move. A nil side
// is a shared-board client acting for whoever is to move.
func checkTurn(g *model.Game, side *model.Color) error {
	if side != nil && *side != g.Turn() {
		return model.ErrNotYourTurn
	}
	return nil
}

func (gs *GameService) Move(gameID string, side *model.Color, req MoveRequest) (model.Snapshot, error) {
	return gs.update(gameID, func(g *model.Game) error {
		if err := checkTurn(g, side); err != nil {
			return err
		}
		if req.Descriptor != "" {
			_, err := g.Play(req.Descriptor)
			return err
		}
		from, to, err := squares(g, req.From, req.To)
		if err != nil {
			return err
		}
		kind, err := promotionKind(req.Promotion)
		if err != nil {
			return err
		}
		_, err = g.MakeMove(from, to, kind)
		return err
	})
}

// CheckMove resolves a descriptor for the side to move without playing it.
func (gs *GameService) CheckMove(gameID string, side *model.Color, descriptor string) (model.MoveRecord, error) {
	var rec model.MoveRecord
	err := gs.gameManager.View(gameID, func(g *model.Game) error {
		if err := checkTurn(g, side); err != nil {
			return err
		}
		d, err := model.ParseDescriptor(descriptor)
		if err == nil {
			var m *model.Move
			if m, err = g.ResolveDescriptor(d); err == nil {
				rec = model.NewMoveRecord(m)
				return nil
			}
		}
		return &model.MoveError{Descriptor: descriptor, Err: err}
	})
	return rec, err
}

func squares(g *model.Game, from, to string) (*model.Square, *model.Square, error) {
	if from == "" || to == "" {
		return nil, nil, fmt.Errorf("%w: from and to are required", ErrInvalidRequest)
	}
	src, err := g.Board().SquareByLabel(from)
	if err != nil {
		return nil, nil, err
	}
	dst, err := g.Board().SquareByLabel(to)
	if err != nil {
		return nil, nil, err
	}
	return src, dst, nil
}

func promotionKind(s string) (model.PieceKind, error) {
	var kind model.PieceKind
	if err := kind.UnmarshalText([]byte(s)); err != nil {
		return model.NoKind, fmt.Errorf("%w: %v", model.ErrInvalidPromotionKind, err)
	}
	return kind, nil
}

func (gs *GameService) Undo(gameID string) (model.Snapshot, error) {
	return gs.update(gameID, func(g *model.Game) error {
		_, err := g.Undo()
		return err
	})
}

// BeginPromotion parks a pawn move to the last rank until FinishPromotion
// names the piece.
func (gs *GameService) BeginPromotion(gameID string, side *model.Color, from, to string) (model.Snapshot, error) {
	return gs.update(gameID, func(g *model.Game) error {
		if err := checkTurn(g, side); err != nil {
			return err
		}
		src, dst, err := squares(g, from, to)
		if err != nil {
			return err
		}
		_, err = g.BeginPromotion(src, dst)
		return err
	})
}

func (gs *GameService) FinishPromotion(gameID string, kind string) (model.Snapshot, error) {
	return gs.update(gameID, func(g *model.Game) error {
		k, err := promotionKind(kind)
		if err != nil {
			return err
		}
		_, err = g.FinishPromotion(k)
		return err
	})
}

func (gs *GameService) CancelPromotion(gameID string) (model.Snapshot, error) {
	return gs.update(gameID, func(g *model.Game) error {
		if g.PendingPromotion() == nil {
			return model.ErrNoPromotionPending
		}
		g.CancelPromotion()
		return nil
	})
}

func (gs *GameService) Resign(gameID string, side model.Color) (model.Snapshot, error) {
	return gs.update(gameID, func(g *model.Game) error {
		return g.Resign(side)
	})
}

func (gs *GameService) ClaimDraw(gameID string) (model.Snapshot, error) {
	return gs.update(gameID, func(g *model.Game) error {
		_, err := g.ClaimDraw()
		return err
	})
}

func (gs *GameService) OfferDraw(gameID string, side model.Color) (model.Snapshot, error) {
	return gs.update(gameID, func(g *model.Game) error {
		return g.OfferDraw(side)
	})
}

func (gs *GameService) RespondDraw(gameID string, side model.Color, accept bool) (model.Snapshot, error) {
	return gs.update(gameID, func(g *model.Game) error {
		return g.RespondDraw(side, accept)
	})
}

// Restart puts the game back to its initial position.
func (gs *GameService) Restart(gameID string) (model.Snapshot, error) {
	return gs.update(gameID, func(g *model.Game) error {
		g.Reset()
		return nil
	})
}

// Reachable lists the squares the piece on label may legally move to,
// ordered a1, b1, ..., h8.
func (gs *GameService) Reachable(gameID, label string) ([]string, error) {
	var labels []string
	err := gs.gameManager.View(gameID, func(g *model.Game) error {
		sq, err := g.Board().SquareByLabel(label)
		if err != nil {
			return err
		}
		p := sq.Piece()
		if p == nil {
			return model.ErrPieceNotPresent
		}
		labels = []string{}
		for dst := range g.ReachableSquares(p) {
			labels = append(labels, dst.Label())
		}
		return nil
	})
	return labels, err
}

func (gs *GameService) History(gameID string) ([]model.MoveRecord, error) {
	var records []model.MoveRecord
	err := gs.gameManager.View(gameID, func(g *model.Game) error {
		records = g.Snapshot().MoveHistory
		return nil
	})
	return records, err
}

func (gs *GameService) RegisterConnection(gameID string, conn Conn) (string, error) {
	return gs.gameManager.RegisterConnection(gameID, conn)
}

// Notify sends msg to one connection only, as with errors answering a
// single client's message.
func (gs *GameService) Notify(gameID, connID string, msg ws.Message) {
	gs.gameManager.Notify(gameID, connID, msg)
}

func (gs *GameService) UnregisterConnection(gameID, connID string) {
	gs.gameManager.UnregisterConnection(gameID, connID)
}
