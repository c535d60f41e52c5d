package controller

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/benbeisheim/chessrules-backend/internal/model"
	"github.com/benbeisheim/chessrules-backend/internal/service"
	"github.com/benbeisheim/chessrules-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := c.Params("gameId")
	var side *model.Color
	if s, ok := c.Locals("side").(model.Color); ok {
		side = &s
	}

	connID, err := wsc.gameService.RegisterConnection(gameID, c)
	if err != nil {
		log.Printf("websocket: register failed game=%s err=%v", gameID, err)
		if msg, encErr := errorMessage(err); encErr == nil {
			c.WriteJSON(msg)
		}
		c.Close()
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, connID)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("websocket: read error game=%s conn=%s err=%v", gameID, connID, err)
			}
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		err = json.Unmarshal(message, &msg)
		if err == nil {
			err = wsc.handleMessage(gameID, side, msg)
		} else {
			err = fmt.Errorf("%w: %v", service.ErrInvalidRequest, err)
		}
		if err != nil {
			if reply, encErr := errorMessage(err); encErr == nil {
				wsc.gameService.Notify(gameID, connID, reply)
			}
		}
	}
}

// handleMessage applies one inbound message. Successful changes reach every
// client through the game's broadcast, so only errors are answered here.
func (wsc *WebSocketController) handleMessage(gameID string, side *model.Color, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeMove:
		var move ws.MovePayload
		if err := decode(msg.Payload, &move); err != nil {
			return err
		}
		_, err := wsc.gameService.Move(gameID, side, service.MoveRequest(move))
		return err

	case ws.MessageTypeUndo:
		_, err := wsc.gameService.Undo(gameID)
		return err

	case ws.MessageTypeDrawClaim:
		_, err := wsc.gameService.ClaimDraw(gameID)
		return err

	case ws.MessageTypeResign, ws.MessageTypeDrawOffer, ws.MessageTypeDrawResponse:
		var action ws.ActionPayload
		if err := decode(msg.Payload, &action); err != nil {
			return err
		}
		actor, err := actingSide(side, action.Side)
		if err != nil {
			return err
		}
		switch msg.Type {
		case ws.MessageTypeResign:
			_, err = wsc.gameService.Resign(gameID, actor)
		case ws.MessageTypeDrawOffer:
			_, err = wsc.gameService.OfferDraw(gameID, actor)
		default:
			_, err = wsc.gameService.RespondDraw(gameID, actor, action.Accept)
		}
		return err
	}
	return fmt.Errorf("%w: unknown message type %q", service.ErrInvalidRequest, msg.Type)
}

func decode(payload json.RawMessage, v any) error {
	if len(payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("%w: %v", service.ErrInvalidRequest, err)
	}
	return nil
}

// actingSide prefers the side the connection was opened with.
func actingSide(conn *model.Color, named string) (model.Color, error) {
	if conn != nil {
		return *conn, nil
	}
	if named == "" {
		return model.White, fmt.Errorf("%w: side is required", service.ErrInvalidRequest)
	}
	side, err := model.ParseColor(named)
	if err != nil {
		return model.White, fmt.Errorf("%w: %v", service.ErrInvalidRequest, err)
	}
	return side, nil
}

func errorMessage(err error) (ws.Message, error) {
	return ws.NewMessage(ws.MessageTypeError, ws.ErrorPayload{
		Error: err.Error(),
		Code:  service.ErrorCode(err),
	})
}
