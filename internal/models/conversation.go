package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Conversation struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	IsGroup bool `gorm:"not null;default:false;index:idx_conversations_public,priority:1" json:"is_group"`
	// DMKey is set only for direct conversations; the unique index enforces one DM per pair.
	DMKey *string `gorm:"type:varchar(64);uniqueIndex:idx_conversations_dm_key" json:"-"`

	GroupName  *string `gorm:"type:varchar(200)" json:"group_name,omitempty"`
	GroupEmoji *string `gorm:"type:varchar(32)" json:"group_emoji,omitempty"`
	IsPublic   bool    `gorm:"not null;default:false;index:idx_conversations_public,priority:2" json:"is_public"`
	CreatedBy  *uint   `json:"created_by,omitempty"`

	LastMessage   *string    `gorm:"type:varchar(800)" json:"last_message"`
	LastMessageAt *time.Time `gorm:"index" json:"last_message_at"`

	Participants []ConversationParticipant `gorm:"foreignKey:ConversationID;constraint:OnDelete:CASCADE" json:"-"`
}

func (c *Conversation) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// DirectKey returns the canonical order-independent key for a user pair.
func DirectKey(a, b uint) string {
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("%d:%d", a, b)
}

// ConversationParticipant is membership plus the per-member read cursor.
type ConversationParticipant struct {
	ConversationID uuid.UUID `gorm:"type:uuid;primaryKey" json:"conversation_id"`
	UserID         uint      `gorm:"primaryKey;autoIncrement:false;index" json:"user_id"`
	JoinedAt       time.Time `gorm:"not null" json:"joined_at"`
	LastReadAt     time.Time `gorm:"not null" json:"last_read_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}
