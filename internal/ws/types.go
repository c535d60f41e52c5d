package ws

import (
	"encoding/json"
)

// MessageType represents the different kinds of messages our system can handle
type MessageType string

const (
	// inbound
	MessageTypeMove         MessageType = "move"
	MessageTypeUndo         MessageType = "undo"
	MessageTypeResign       MessageType = "resign"
	MessageTypeDrawOffer    MessageType = "drawOffer"
	MessageTypeDrawResponse MessageType = "drawResponse"
	MessageTypeDrawClaim    MessageType = "drawClaim"

	// outbound
	MessageTypeGameState MessageType = "gameState"
	MessageTypeGameOver  MessageType = "gameOver"
	MessageTypeError     MessageType = "error"
)

// Message represents a WebSocket message in our system
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// MovePayload carries either a descriptor ("Ng1-f3", "O-O") or a
// from/to pair with an optional promotion letter.
type MovePayload struct {
	Descriptor string `json:"descriptor,omitempty"`
	From       string `json:"from,omitempty"`
	To         string `json:"to,omitempty"`
	Promotion  string `json:"promotion,omitempty"`
}

// ActionPayload is the body of resign, drawOffer and drawResponse. Side is
// only read when the connection was opened without one.
type ActionPayload struct {
	Side   string `json:"side,omitempty"`
	Accept bool   `json:"accept,omitempty"`
}

type GameOverPayload struct {
	Status string `json:"status"`
	Winner string `json:"winner,omitempty"`
	Reason string `json:"reason,omitempty"`
	Result string `json:"result"`
}

type ErrorPayload struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// NewMessage marshals payload into a message of type t.
func NewMessage(t MessageType, payload any) (Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: t, Payload: raw}, nil
}
