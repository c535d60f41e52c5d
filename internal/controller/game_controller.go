package controller

import (
	"fmt"

	"github.com/benbeisheim/chessrules-backend/internal/middleware"
	"github.com/benbeisheim/chessrules-backend/internal/model"
	"github.com/benbeisheim/chessrules-backend/internal/service"
	"github.com/gofiber/fiber/v2"
)

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

// Routes mounts the game endpoints on router, normally /api/game.
func (gc *GameController) Routes(router fiber.Router) {
	router.Post("/create", gc.CreateGame)
	router.Get("/:gameId", gc.GetGameState)
	router.Get("/:gameId/history", gc.History)
	router.Get("/:gameId/reachable/:square", gc.Reachable)
	router.Post("/:gameId/move", gc.MakeMove)
	router.Post("/:gameId/move/check", gc.CheckMove)
	router.Post("/:gameId/undo", gc.Undo)
	router.Post("/:gameId/promotion", gc.BeginPromotion)
	router.Post("/:gameId/promotion/finish", gc.FinishPromotion)
	router.Post("/:gameId/promotion/cancel", gc.CancelPromotion)
	router.Post("/:gameId/resign", gc.Resign)
	router.Post("/:gameId/draw/claim", gc.ClaimDraw)
	router.Post("/:gameId/draw/offer", gc.OfferDraw)
	router.Post("/:gameId/draw/respond", gc.RespondDraw)
	router.Post("/:gameId/restart", gc.Restart)
}

// parseBody decodes an optional JSON body into v.
func parseBody(c *fiber.Ctx, v any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.BodyParser(v); err != nil {
		return fmt.Errorf("%w: %v", service.ErrInvalidRequest, err)
	}
	return nil
}

func requireSide(c *fiber.Ctx) (model.Color, error) {
	side := middleware.Side(c)
	if side == nil {
		return model.White, fmt.Errorf("%w: side is required", service.ErrInvalidRequest)
	}
	return *side, nil
}

func respond(c *fiber.Ctx, snap model.Snapshot, err error) error {
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(snap)
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	var body struct {
		FEN string `json:"fen"`
	}
	if err := parseBody(c, &body); err != nil {
		return sendError(c, err)
	}

	gameID, snap, err := gc.gameService.CreateGame(body.FEN)
	if err != nil {
		return sendError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
		"state":   snap,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	snap, err := gc.gameService.GetGameState(c.Params("gameId"))
	return respond(c, snap, err)
}

func (gc *GameController) History(c *fiber.Ctx) error {
	records, err := gc.gameService.History(c.Params("gameId"))
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(fiber.Map{"moves": records})
}

func (gc *GameController) Reachable(c *fiber.Ctx) error {
	square := c.Params("square")
	labels, err := gc.gameService.Reachable(c.Params("gameId"), square)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(fiber.Map{"square": square, "reachable": labels})
}

func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	var req service.MoveRequest
	if err := c.BodyParser(&req); err != nil {
		return sendError(c, fmt.Errorf("%w: %v", service.ErrInvalidRequest, err))
	}
	snap, err := gc.gameService.Move(c.Params("gameId"), middleware.Side(c), req)
	return respond(c, snap, err)
}

// CheckMove answers whether a descriptor names a legal move right now.
func (gc *GameController) CheckMove(c *fiber.Ctx) error {
	var req service.MoveRequest
	if err := c.BodyParser(&req); err != nil {
		return sendError(c, fmt.Errorf("%w: %v", service.ErrInvalidRequest, err))
	}
	rec, err := gc.gameService.CheckMove(c.Params("gameId"), middleware.Side(c), req.Descriptor)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(fiber.Map{"legal": true, "move": rec})
}

func (gc *GameController) Undo(c *fiber.Ctx) error {
	snap, err := gc.gameService.Undo(c.Params("gameId"))
	return respond(c, snap, err)
}

func (gc *GameController) BeginPromotion(c *fiber.Ctx) error {
	var req service.MoveRequest
	if err := c.BodyParser(&req); err != nil {
		return sendError(c, fmt.Errorf("%w: %v", service.ErrInvalidRequest, err))
	}
	snap, err := gc.gameService.BeginPromotion(c.Params("gameId"), middleware.Side(c), req.From, req.To)
	return respond(c, snap, err)
}

func (gc *GameController) FinishPromotion(c *fiber.Ctx) error {
	var req service.MoveRequest
	if err := c.BodyParser(&req); err != nil {
		return sendError(c, fmt.Errorf("%w: %v", service.ErrInvalidRequest, err))
	}
	snap, err := gc.gameService.FinishPromotion(c.Params("gameId"), req.Promotion)
	return respond(c, snap, err)
}

func (gc *GameController) CancelPromotion(c *fiber.Ctx) error {
	snap, err := gc.gameService.CancelPromotion(c.Params("gameId"))
	return respond(c, snap, err)
}

func (gc *GameController) Resign(c *fiber.Ctx) error {
	side, err := requireSide(c)
	if err != nil {
		return sendError(c, err)
	}
	snap, err := gc.gameService.Resign(c.Params("gameId"), side)
	return respond(c, snap, err)
}

func (gc *GameController) ClaimDraw(c *fiber.Ctx) error {
	snap, err := gc.gameService.ClaimDraw(c.Params("gameId"))
	return respond(c, snap, err)
}

func (gc *GameController) OfferDraw(c *fiber.Ctx) error {
	side, err := requireSide(c)
	if err != nil {
		return sendError(c, err)
	}
	snap, err := gc.gameService.OfferDraw(c.Params("gameId"), side)
	return respond(c, snap, err)
}

func (gc *GameController) RespondDraw(c *fiber.Ctx) error {
	side, err := requireSide(c)
	if err != nil {
		return sendError(c, err)
	}
	var body struct {
		Accept bool `json:"accept"`
	}
	if err := c.BodyParser(&body); err != nil {
		return sendError(c, fmt.Errorf("%w: %v", service.ErrInvalidRequest, err))
	}
	snap, err := gc.gameService.RespondDraw(c.Params("gameId"), side, body.Accept)
	return respond(c, snap, err)
}

func (gc *GameController) Restart(c *fiber.Ctx) error {
	snap, err := gc.gameService.Restart(c.Params("gameId"))
	return respond(c, snap, err)
}
