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

type ConversationRepository struct {
	db *gorm.DB
}

func NewConversationRepository(db *gorm.DB) *ConversationRepository {
	return &ConversationRepository{db: db}
}

func (r *ConversationRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Conversation, error) {
	var conv models.Conversation
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&conv).Error; err != nil {
		return nil, notFound(err, "conversation.FindByID")
	}
	return &conv, nil
}

func (r *ConversationRepository) FindByDMKey(ctx context.Context, key string) (*models.Conversation, error) {
	var conv models.Conversation
	if err := r.db.WithContext(ctx).Where("dm_key = ?", key).First(&conv).Error; err != nil {
		return nil, notFound(err, "conversation.FindByDMKey")
	}
	return &conv, nil
}

// CreateWithParticipants inserts the conversation and its initial members in
// one transaction. A dm_key collision surfaces as ErrDuplicate.
func (r *ConversationRepository) CreateWithParticipants(ctx context.Context, conv *models.Conversation, userIDs []uint, joinedAt time.Time) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(conv).Error; err != nil {
			return err
		}
		if len(userIDs) == 0 {
			return nil
		}
		rows := make([]models.ConversationParticipant, 0, len(userIDs))
		for _, id := range userIDs {
			rows = append(rows, models.ConversationParticipant{
				ConversationID: conv.ID,
				UserID:         id,
				JoinedAt:       joinedAt,
				LastReadAt:     joinedAt,
			})
		}
		return tx.Omit(clause.Associations).Create(&rows).Error
	})
	if IsUniqueViolation(err) {
		return errors.Wrap(ErrDuplicate, "conversation.CreateWithParticipants")
	}
	return errors.Wrap(err, "conversation.CreateWithParticipants")
}

// DeleteIfEmpty removes the conversation and its messages only while no
// participant rows reference it, so a concurrent join keeps it alive.
func (r *ConversationRepository) DeleteIfEmpty(ctx context.Context, id uuid.UUID) (bool, error) {
	var deleted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		const orphan = `NOT EXISTS (SELECT 1 FROM conversation_participants WHERE conversation_id = ?)`
		if err := tx.Exec(`DELETE FROM messages WHERE conversation_id = ? AND `+orphan, id, id).Error; err != nil {
			return err
		}
		res := tx.Exec(`DELETE FROM conversations WHERE id = ? AND `+orphan, id, id)
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, errors.Wrap(err, "conversation.DeleteIfEmpty")
	}
	return deleted, nil
}
