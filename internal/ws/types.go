package ws

import (
	"encoding/json"
)

// MessageType represents the different kinds of messages our system can handle
type MessageType string

const (
	// client -> server
	MessageTypeClick   MessageType = "click"
	MessageTypeMove    MessageType = "move"
	MessageTypeReset   MessageType = "reset"
	MessageTypeLoadFEN MessageType = "loadFen"

	// server -> client
	MessageTypeState MessageType = "state"
	MessageTypeError MessageType = "error"
)

// Message is an incoming websocket message. Payload is decoded according
// to Type.
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Outgoing is a message written by the server.
type Outgoing struct {
	Type    MessageType `json:"type"`
	Payload interface{} `json:"payload"`
}

func NewMessage(t MessageType, payload interface{}) Outgoing {
	return Outgoing{Type: t, Payload: payload}
}

type ClickPayload struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// MovePayload carries algebraic square names, e.g. {"from":"e2","to":"e4"}.
type MovePayload struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type FENPayload struct {
	FEN string `json:"fen"`
}

type ErrorPayload struct {
	Error string `json:"error"`
}
