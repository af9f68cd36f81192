package service

import (
	"context"
	"time"

	"github.com/SL-IT-AMAZING/founder-sprint-workspace-sub002/internal/cache"
	"github.com/SL-IT-AMAZING/founder-sprint-workspace-sub002/internal/models"
	"github.com/SL-IT-AMAZING/founder-sprint-workspace-sub002/internal/repository"
	"github.com/SL-IT-AMAZING/founder-sprint-workspace-sub002/internal/validation"
	apperrors "github.com/SL-IT-AMAZING/founder-sprint-workspace-sub002/pkg/errors"
	"github.com/SL-IT-AMAZING/founder-sprint-workspace-sub002/pkg/logger"
	"github.com/google/uuid"
)

type MessagePage struct {
	Messages   []models.Message
	NextCursor *string
}

type MessageService struct {
	participantRepo repository.ParticipantRepositoryInterface
	messageRepo     repository.MessageRepositoryInterface
	cache           *cache.ConversationCache
	publisher       Publisher
	now             func() time.Time
}

func NewMessageService(
	participantRepo repository.ParticipantRepositoryInterface,
	messageRepo repository.MessageRepositoryInterface,
	conversationCache *cache.ConversationCache,
	publisher Publisher,
) *MessageService {
	if publisher == nil {
		publisher = nopPublisher{}
	}
	return &MessageService{
		participantRepo: participantRepo,
		messageRepo:     messageRepo,
		cache:           conversationCache,
		publisher:       publisher,
		now:             repository.Now,
	}
}

// Send appends a message from a participant and refreshes the preview.
func (s *MessageService) Send(ctx context.Context, conversationID uuid.UUID, senderID uint, content string) (*models.Message, error) {
	if senderID == 0 {
		return nil, apperrors.ErrNotAuthenticated
	}
	if err := requireMember(ctx, s.participantRepo, conversationID, senderID); err != nil {
		return nil, err
	}

	body, ok := validation.NormalizeContent(content, validation.MaxMessageRunes)
	if !ok {
		return nil, apperrors.ErrInvalidContent
	}

	msg := &models.Message{
		ConversationID: conversationID,
		SenderID:       &senderID,
		Content:        body,
		CreatedAt:      s.now(),
	}
	if err := s.messageRepo.AppendWithPreview(ctx, msg, validation.Preview(body)); err != nil {
		return nil, apperrors.ErrStore(err)
	}

	s.fanOut(ctx, msg)
	return msg, nil
}

// fanOut runs after commit; nothing here can fail the send.
func (s *MessageService) fanOut(ctx context.Context, msg *models.Message) {
	members, err := s.participantRepo.UserIDs(ctx, msg.ConversationID)
	if err != nil {
		logger.Warn().Err(err).Str("conversation_id", msg.ConversationID.String()).Msg("participant lookup after send failed")
		return
	}
	if err := s.cache.InvalidateUnread(ctx, members...); err != nil {
		logger.Warn().Err(err).Str("conversation_id", msg.ConversationID.String()).Msg("unread cache invalidation failed")
	}
	s.publisher.Publish(members, Event{Type: EventMessageNew, Data: msg.ToResponse()})
}

// ListMessages pages backwards through a conversation. Each page is returned
// in chronological order; NextCursor is nil once the oldest message is reached.
func (s *MessageService) ListMessages(ctx context.Context, conversationID uuid.UUID, callerID uint, limit int, cursor string) (*MessagePage, error) {
	if callerID == 0 {
		return nil, apperrors.ErrNotAuthenticated
	}
	if err := requireMember(ctx, s.participantRepo, conversationID, callerID); err != nil {
		return nil, err
	}
	before, err := ParseCursor(cursor)
	if err != nil {
		return nil, err
	}
	limit = validation.ClampLimit(limit, validation.DefaultPageSize, validation.MaxPageSize)

	rows, err := s.messageRepo.Page(ctx, conversationID, before, limit+1)
	if err != nil {
		return nil, apperrors.ErrStore(err)
	}

	page := &MessagePage{}
	if len(rows) > limit {
		rows = rows[:limit]
		next := EncodeCursor(&rows[len(rows)-1])
		page.NextCursor = &next
	}
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
	page.Messages = rows
	return page, nil
}

func requireMember(ctx context.Context, members MembershipChecker, conversationID uuid.UUID, userID uint) error {
	ok, err := members.IsMember(ctx, conversationID, userID)
	if err != nil {
		return apperrors.ErrStore(err)
	}
	if !ok {
		return apperrors.ErrNotParticipant
	}
	return nil
}
