package repository

import (
	"context"
	"time"

	"github.com/SL-IT-AMAZING/founder-sprint-workspace-sub002/internal/models"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MessageCursor points just past the oldest message of a page.
// A zero ID means only the timestamp bound applies.
type MessageCursor struct {
	CreatedAt time.Time
	ID        uint
}

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// AppendWithPreview stores the message and refreshes the conversation preview
// in one transaction. The preview only moves forward in time.
func (r *MessageRepository) AppendWithPreview(ctx context.Context, message *models.Message, preview string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(message).Error; err != nil {
			return err
		}
		return tx.Model(&models.Conversation{}).
			Where("id = ? AND (last_message_at IS NULL OR last_message_at <= ?)", message.ConversationID, message.CreatedAt).
			Updates(map[string]interface{}{
				"last_message":    preview,
				"last_message_at": message.CreatedAt,
				"updated_at":      message.CreatedAt,
			}).Error
	})
	return errors.Wrap(err, "message.AppendWithPreview")
}

// Page returns up to limit messages older than the cursor, newest first,
// ordered by (created_at, id) so equal timestamps never repeat or vanish.
func (r *MessageRepository) Page(ctx context.Context, conversationID uuid.UUID, before *MessageCursor, limit int) ([]models.Message, error) {
	q := r.db.WithContext(ctx).
		Preload("Sender").
		Where("conversation_id = ?", conversationID)

	if before != nil {
		if before.ID > 0 {
			q = q.Where("(created_at < ? OR (created_at = ? AND id < ?))", before.CreatedAt, before.CreatedAt, before.ID)
		} else {
			q = q.Where("created_at < ?", before.CreatedAt)
		}
	}

	var messages []models.Message
	err := q.Order("created_at DESC").Order("id DESC").Limit(limit).Find(&messages).Error
	if err != nil {
		return nil, errors.Wrap(err, "message.Page")
	}
	return messages, nil
}
