package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/SL-IT-AMAZING/founder-sprint-workspace-sub002/internal/models"
	"github.com/google/uuid"
)

type MessageSender interface {
	Send(ctx context.Context, conversationID uuid.UUID, senderID uint, content string) (*models.Message, error)
}

type ReadMarker interface {
	MarkRead(ctx context.Context, conversationID uuid.UUID, userID uint) error
}

// MessageContext provides all dependencies needed for message processing
type MessageContext struct {
	Ctx       context.Context
	UserID    uint
	Client    *ClientConnection
	Hub       *Hub
	Messages  MessageSender
	ReadState ReadMarker
}

// Message interface for all WebSocket message types
type Message interface {
	GetType() string
	Process(ctx *MessageContext) error
}

// SerializedMessage is the wire format wrapper
type SerializedMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// ErrorResponse is sent when message processing fails
type ErrorResponse struct {
	Type    string `json:"type"`
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}

func CreateMessage(msgType string, typeRegistry map[string]reflect.Type) (Message, error) {
	msgTypeReflect, ok := typeRegistry[msgType]
	if !ok {
		return nil, fmt.Errorf("unknown message type: %s", msgType)
	}
	instance := reflect.New(msgTypeReflect).Interface()
	return instance.(Message), nil
}

// SendError sends an error response to the client
func SendError(client *ClientConnection, code, message, details string) error {
	return client.WriteJSON(ErrorResponse{
		Type:    "error",
		Error:   message,
		Code:    code,
		Details: details,
	})
}
