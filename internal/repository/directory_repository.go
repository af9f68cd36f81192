package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type PublicGroupSort string

const (
	SortRecent  PublicGroupSort = "recent"
	SortMembers PublicGroupSort = "members"
)

// ConversationRow is a conversation as seen by one of its members.
type ConversationRow struct {
	ID            uuid.UUID
	IsGroup       bool
	GroupName     *string
	GroupEmoji    *string
	IsPublic      bool
	CreatedBy     *uint
	LastMessage   *string
	LastMessageAt *time.Time
	CreatedAt     time.Time
	LastReadAt    time.Time
}

type PublicGroupRow struct {
	ID            uuid.UUID
	GroupName     *string
	GroupEmoji    *string
	LastMessage   *string
	LastMessageAt *time.Time
	CreatedAt     time.Time
	MemberCount   int64
}

type ParticipantRow struct {
	ConversationID uuid.UUID
	UserID         uint
	JoinedAt       time.Time
}

type DirectoryRepository struct {
	db *gorm.DB
}

func NewDirectoryRepository(db *gorm.DB) *DirectoryRepository {
	return &DirectoryRepository{db: db}
}

const memberConversationColumns = `
	c.id, c.is_group, c.group_name, c.group_emoji, c.is_public, c.created_by,
	c.last_message, c.last_message_at, c.created_at, me.last_read_at`

// Conversations without messages sort last, oldest first, so the order is
// stable as new empty conversations appear.
const recentOrder = `(c.last_message_at IS NULL), c.last_message_at DESC, c.created_at ASC, c.id ASC`

// ListForUser returns every conversation the user belongs to, most recent
// activity first. A non-nil conversationID narrows it to that one row.
func (r *DirectoryRepository) ListForUser(ctx context.Context, userID uint, conversationID *uuid.UUID) ([]ConversationRow, error) {
	query := `
		SELECT` + memberConversationColumns + `
		FROM conversations c
		JOIN conversation_participants me
			ON me.conversation_id = c.id AND me.user_id = ?`
	args := []interface{}{userID}
	if conversationID != nil {
		query += ` WHERE c.id = ?`
		args = append(args, *conversationID)
	}
	query += ` ORDER BY ` + recentOrder

	var rows []ConversationRow
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "directory.ListForUser")
	}
	return rows, nil
}

// Search matches the user's conversations by group name, by any
// participant's name, or by any message body. pattern is a ready LIKE
// pattern, already lowercased and escaped.
func (r *DirectoryRepository) Search(ctx context.Context, userID uint, pattern string, limit int) ([]ConversationRow, error) {
	query := `
		SELECT` + memberConversationColumns + `
		FROM conversations c
		JOIN conversation_participants me
			ON me.conversation_id = c.id AND me.user_id = ?
		WHERE LOWER(COALESCE(c.group_name, '')) LIKE ? ESCAPE '\'
			OR EXISTS (
				SELECT 1 FROM conversation_participants p
				JOIN users u ON u.id = p.user_id
				WHERE p.conversation_id = c.id
					AND LOWER(u.name) LIKE ? ESCAPE '\'
			)
			OR EXISTS (
				SELECT 1 FROM messages m
				WHERE m.conversation_id = c.id
					AND LOWER(m.content) LIKE ? ESCAPE '\'
			)
		ORDER BY ` + recentOrder + `
		LIMIT ?`

	var rows []ConversationRow
	err := r.db.WithContext(ctx).
		Raw(query, userID, pattern, pattern, pattern, limit).
		Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "directory.Search")
	}
	return rows, nil
}

// PublicGroups lists discoverable groups with their member counts. An empty
// pattern matches every public group.
func (r *DirectoryRepository) PublicGroups(ctx context.Context, pattern string, sort PublicGroupSort, limit int) ([]PublicGroupRow, error) {
	query := `
		SELECT c.id, c.group_name, c.group_emoji, c.last_message, c.last_message_at, c.created_at,
			(SELECT COUNT(*) FROM conversation_participants p WHERE p.conversation_id = c.id) AS member_count
		FROM conversations c
		WHERE c.is_group = ? AND c.is_public = ?`
	args := []interface{}{true, true}
	if pattern != "" {
		query += ` AND LOWER(COALESCE(c.group_name, '')) LIKE ? ESCAPE '\'`
		args = append(args, pattern)
	}

	switch sort {
	case SortMembers:
		query += ` ORDER BY member_count DESC, (c.last_message_at IS NULL), c.last_message_at DESC, c.created_at DESC, c.id ASC`
	default:
		query += ` ORDER BY (c.last_message_at IS NULL), c.last_message_at DESC, c.created_at DESC, c.id ASC`
	}
	query += ` LIMIT ?`
	args = append(args, limit)

	var rows []PublicGroupRow
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "directory.PublicGroups")
	}
	return rows, nil
}

// ParticipantsOf returns members of the given conversations in join order
// within each conversation.
func (r *DirectoryRepository) ParticipantsOf(ctx context.Context, conversationIDs []uuid.UUID) ([]ParticipantRow, error) {
	if len(conversationIDs) == 0 {
		return nil, nil
	}
	var rows []ParticipantRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT p.conversation_id, p.user_id, p.joined_at
		FROM conversation_participants p
		WHERE p.conversation_id IN ?
		ORDER BY p.conversation_id, p.joined_at ASC, p.user_id ASC`, conversationIDs).
		Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "directory.ParticipantsOf")
	}
	return rows, nil
}
