package websocket

import (
	"encoding/json"
	"time"
)

type MessageType string

const (
	TypeScreenStateChanged MessageType = "screen.state_changed"
)

// Message is the envelope of every frame sent to clients.
type Message struct {
	Type      MessageType `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   any         `json:"payload"`
}

func NewMessage(msgType MessageType, payload any) Message {
	return Message{
		Type:      msgType,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

func (m Message) JSON() ([]byte, error) {
	return json.Marshal(m)
}

// ScreenStatePayload carries the full state of one screen after a change.
type ScreenStatePayload struct {
	ScreenID string `json:"screen_id"`
	Kind     string `json:"kind"`
	State    any    `json:"state"`
}
