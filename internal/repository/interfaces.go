package repository

import (
	"context"
	"time"

	"github.com/SL-IT-AMAZING/founder-sprint-workspace-sub002/internal/models"
	"github.com/google/uuid"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks . ConversationRepositoryInterface,UserRepositoryInterface

// UserRepositoryInterface defines the read-only view of platform users
type UserRepositoryInterface interface {
	FindByID(ctx context.Context, id uint) (*models.User, error)
	CountExisting(ctx context.Context, ids []uint) (int64, error)
	Profiles(ctx context.Context, ids []uint) (map[uint]models.UserProfile, error)
}

// ConversationRepositoryInterface defines the contract for conversation rows
type ConversationRepositoryInterface interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Conversation, error)
	FindByDMKey(ctx context.Context, key string) (*models.Conversation, error)
	CreateWithParticipants(ctx context.Context, conv *models.Conversation, userIDs []uint, joinedAt time.Time) error
	DeleteIfEmpty(ctx context.Context, id uuid.UUID) (bool, error)
}

// ParticipantRepositoryInterface defines membership and read-cursor operations
type ParticipantRepositoryInterface interface {
	IsMember(ctx context.Context, conversationID uuid.UUID, userID uint) (bool, error)
	MemberOf(ctx context.Context, userID uint, conversationIDs []uuid.UUID) (map[uuid.UUID]bool, error)
	Ensure(ctx context.Context, conversationID uuid.UUID, userIDs []uint, joinedAt time.Time) error
	Add(ctx context.Context, conversationID uuid.UUID, userID uint, joinedAt time.Time) error
	MarkRead(ctx context.Context, conversationID uuid.UUID, userID uint, readAt time.Time) (bool, error)
	Remove(ctx context.Context, conversationID uuid.UUID, userID uint) (bool, error)
	UserIDs(ctx context.Context, conversationID uuid.UUID) ([]uint, error)
	UnreadCounts(ctx context.Context, userID uint, conversationIDs []uuid.UUID) (map[uuid.UUID]int64, error)
}

// MessageRepositoryInterface defines the append-only message log
type MessageRepositoryInterface interface {
	AppendWithPreview(ctx context.Context, message *models.Message, preview string) error
	Page(ctx context.Context, conversationID uuid.UUID, before *MessageCursor, limit int) ([]models.Message, error)
}

// DirectoryRepositoryInterface defines the listing and search queries
type DirectoryRepositoryInterface interface {
	ListForUser(ctx context.Context, userID uint, conversationID *uuid.UUID) ([]ConversationRow, error)
	Search(ctx context.Context, userID uint, pattern string, limit int) ([]ConversationRow, error)
	PublicGroups(ctx context.Context, pattern string, sort PublicGroupSort, limit int) ([]PublicGroupRow, error)
	ParticipantsOf(ctx context.Context, conversationIDs []uuid.UUID) ([]ParticipantRow, error)
}
