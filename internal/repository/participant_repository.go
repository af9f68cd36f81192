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

type ParticipantRepository struct {
	db *gorm.DB
}

func NewParticipantRepository(db *gorm.DB) *ParticipantRepository {
	return &ParticipantRepository{db: db}
}

func (r *ParticipantRepository) IsMember(ctx context.Context, conversationID uuid.UUID, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ConversationParticipant{}).
		Where("conversation_id = ? AND user_id = ?", conversationID, userID).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "participant.IsMember")
	}
	return count > 0, nil
}

// MemberOf reports which of the given conversations the user belongs to.
func (r *ParticipantRepository) MemberOf(ctx context.Context, userID uint, conversationIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	out := make(map[uuid.UUID]bool, len(conversationIDs))
	if len(conversationIDs) == 0 {
		return out, nil
	}
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&models.ConversationParticipant{}).
		Where("user_id = ? AND conversation_id IN ?", userID, conversationIDs).
		Pluck("conversation_id", &ids).Error
	if err != nil {
		return nil, errors.Wrap(err, "participant.MemberOf")
	}
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}

// Ensure adds the users as members, leaving existing rows untouched.
func (r *ParticipantRepository) Ensure(ctx context.Context, conversationID uuid.UUID, userIDs []uint, joinedAt time.Time) error {
	if len(userIDs) == 0 {
		return nil
	}
	rows := make([]models.ConversationParticipant, 0, len(userIDs))
	for _, id := range userIDs {
		rows = append(rows, models.ConversationParticipant{
			ConversationID: conversationID,
			UserID:         id,
			JoinedAt:       joinedAt,
			LastReadAt:     joinedAt,
		})
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Omit(clause.Associations).
		Create(&rows).Error
	return errors.Wrap(err, "participant.Ensure")
}

// Add inserts a single membership row. An existing row yields ErrDuplicate.
func (r *ParticipantRepository) Add(ctx context.Context, conversationID uuid.UUID, userID uint, joinedAt time.Time) error {
	row := models.ConversationParticipant{
		ConversationID: conversationID,
		UserID:         userID,
		JoinedAt:       joinedAt,
		LastReadAt:     joinedAt,
	}
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&row).Error
	if IsUniqueViolation(err) {
		return errors.Wrap(ErrDuplicate, "participant.Add")
	}
	return errors.Wrap(err, "participant.Add")
}

// MarkRead advances the read cursor. It never moves it backwards.
func (r *ParticipantRepository) MarkRead(ctx context.Context, conversationID uuid.UUID, userID uint, readAt time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.ConversationParticipant{}).
		Where("conversation_id = ? AND user_id = ?", conversationID, userID).
		Update("last_read_at", gorm.Expr("CASE WHEN last_read_at > ? THEN last_read_at ELSE ? END", readAt, readAt))
	if res.Error != nil {
		return false, errors.Wrap(res.Error, "participant.MarkRead")
	}
	return res.RowsAffected > 0, nil
}

func (r *ParticipantRepository) Remove(ctx context.Context, conversationID uuid.UUID, userID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("conversation_id = ? AND user_id = ?", conversationID, userID).
		Delete(&models.ConversationParticipant{})
	if res.Error != nil {
		return false, errors.Wrap(res.Error, "participant.Remove")
	}
	return res.RowsAffected > 0, nil
}

func (r *ParticipantRepository) UserIDs(ctx context.Context, conversationID uuid.UUID) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.ConversationParticipant{}).
		Where("conversation_id = ?", conversationID).
		Order("joined_at ASC, user_id ASC").
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, errors.Wrap(err, "participant.UserIDs")
	}
	return ids, nil
}

type unreadRow struct {
	ConversationID uuid.UUID
	Unread         int64
}

// UnreadCounts computes, in one grouped query, how many messages from other
// senders arrived after the user's read cursor. Every membership in scope is
// present, with 0 when nothing is unread. A nil filter means every membership.
func (r *ParticipantRepository) UnreadCounts(ctx context.Context, userID uint, conversationIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	out := make(map[uuid.UUID]int64)
	if conversationIDs != nil && len(conversationIDs) == 0 {
		return out, nil
	}

	query := `
		SELECT p.conversation_id AS conversation_id, COUNT(m.id) AS unread
		FROM conversation_participants p
		LEFT JOIN messages m
			ON m.conversation_id = p.conversation_id
			AND m.created_at > p.last_read_at
			AND (m.sender_id IS NULL OR m.sender_id <> ?)
		WHERE p.user_id = ?`
	args := []interface{}{userID, userID}
	if conversationIDs != nil {
		query += ` AND p.conversation_id IN ?`
		args = append(args, conversationIDs)
	}
	query += ` GROUP BY p.conversation_id`

	var rows []unreadRow
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "participant.UnreadCounts")
	}
	for _, row := range rows {
		out[row.ConversationID] = row.Unread
	}
	return out, nil
}
