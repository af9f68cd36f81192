package ws

import (
	"errors"

	"github.com/google/uuid"
)

// MessageSend posts a message into a conversation over the socket
type MessageSend struct {
	ConversationID uuid.UUID `json:"conversation_id"`
	Content        string    `json:"content"`
	ClientID       string    `json:"client_id,omitempty"`
}

func (msg *MessageSend) GetType() string {
	return "message.send"
}

func (msg *MessageSend) Process(ctx *MessageContext) error {
	if ctx.Messages == nil {
		return errors.New("messaging unavailable")
	}
	sent, err := ctx.Messages.Send(ctx.Ctx, msg.ConversationID, ctx.UserID, msg.Content)
	if err != nil {
		return err
	}
	return ctx.Client.WriteJSON(map[string]interface{}{
		"type":      "message.ack",
		"client_id": msg.ClientID,
		"message":   sent.ToResponse(),
	})
}

// MessageRead marks a conversation read for the connected user
type MessageRead struct {
	ConversationID uuid.UUID `json:"conversation_id"`
}

func (msg *MessageRead) GetType() string {
	return "conversation.read"
}

func (msg *MessageRead) Process(ctx *MessageContext) error {
	if ctx.ReadState == nil {
		return errors.New("read tracking unavailable")
	}
	return ctx.ReadState.MarkRead(ctx.Ctx, msg.ConversationID, ctx.UserID)
}
