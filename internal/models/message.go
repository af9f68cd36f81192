package models

import (
	"time"

	"github.com/google/uuid"
)

type Message struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	ConversationID uuid.UUID `gorm:"type:uuid;not null;index:idx_messages_conversation_created,priority:1" json:"conversation_id"`
	// SenderID is nil for system messages.
	SenderID  *uint     `gorm:"index" json:"sender_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"not null;index:idx_messages_conversation_created,priority:2" json:"created_at"`

	Sender *User `gorm:"foreignKey:SenderID" json:"-"`
}

type MessageResponse struct {
	ID             uint         `json:"id"`
	ConversationID uuid.UUID    `json:"conversation_id"`
	SenderID       *uint        `json:"sender_id"`
	Sender         *UserProfile `json:"sender,omitempty"`
	Content        string       `json:"content"`
	CreatedAt      time.Time    `json:"created_at"`
}

func (m *Message) ToResponse() MessageResponse {
	resp := MessageResponse{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		Content:        m.Content,
		CreatedAt:      m.CreatedAt,
	}
	if m.Sender != nil && m.Sender.ID != 0 {
		profile := m.Sender.ToProfile()
		resp.Sender = &profile
	}
	return resp
}
