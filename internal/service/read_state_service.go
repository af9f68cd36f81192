package service

import (
	"context"
	"time"

	"github.com/SL-IT-AMAZING/founder-sprint-workspace-sub002/internal/cache"
	"github.com/SL-IT-AMAZING/founder-sprint-workspace-sub002/internal/repository"
	apperrors "github.com/SL-IT-AMAZING/founder-sprint-workspace-sub002/pkg/errors"
	"github.com/SL-IT-AMAZING/founder-sprint-workspace-sub002/pkg/logger"
	"github.com/google/uuid"
)

// ReadStateService owns per-member read cursors and membership removal.
type ReadStateService struct {
	participantRepo repository.ParticipantRepositoryInterface
	convRepo        repository.ConversationRepositoryInterface
	cache           *cache.ConversationCache
	publisher       Publisher
	now             func() time.Time
}

func NewReadStateService(
	participantRepo repository.ParticipantRepositoryInterface,
	convRepo repository.ConversationRepositoryInterface,
	conversationCache *cache.ConversationCache,
	publisher Publisher,
) *ReadStateService {
	if publisher == nil {
		publisher = nopPublisher{}
	}
	return &ReadStateService{
		participantRepo: participantRepo,
		convRepo:        convRepo,
		cache:           conversationCache,
		publisher:       publisher,
		now:             repository.Now,
	}
}

type readEvent struct {
	ConversationID uuid.UUID `json:"conversation_id"`
	UserID         uint      `json:"user_id"`
	ReadAt         time.Time `json:"read_at"`
}

// MarkRead moves the caller's read cursor to now.
func (s *ReadStateService) MarkRead(ctx context.Context, conversationID uuid.UUID, userID uint) error {
	if userID == 0 {
		return apperrors.ErrNotAuthenticated
	}
	readAt := s.now()
	ok, err := s.participantRepo.MarkRead(ctx, conversationID, userID, readAt)
	if err != nil {
		return apperrors.ErrStore(err)
	}
	if !ok {
		return apperrors.ErrNotParticipant
	}

	if err := s.cache.InvalidateUnread(ctx, userID); err != nil {
		logger.Warn().Err(err).Uint("user_id", userID).Msg("unread cache invalidation failed")
	}
	members, err := s.participantRepo.UserIDs(ctx, conversationID)
	if err != nil {
		logger.Warn().Err(err).Str("conversation_id", conversationID.String()).Msg("participant lookup after read failed")
		return nil
	}
	others := make([]uint, 0, len(members))
	for _, id := range members {
		if id != userID {
			others = append(others, id)
		}
	}
	s.publisher.Publish(others, Event{
		Type: EventConversationRead,
		Data: readEvent{ConversationID: conversationID, UserID: userID, ReadAt: readAt},
	})
	return nil
}

// UnreadCounts returns unread totals for the user's conversations, optionally
// restricted to the given ids. Only the unrestricted map is cached.
func (s *ReadStateService) UnreadCounts(ctx context.Context, userID uint, conversationIDs ...uuid.UUID) (map[uuid.UUID]int64, error) {
	if userID == 0 {
		return nil, apperrors.ErrNotAuthenticated
	}

	if len(conversationIDs) > 0 {
		counts, err := s.participantRepo.UnreadCounts(ctx, userID, conversationIDs)
		if err != nil {
			return nil, apperrors.ErrStore(err)
		}
		return counts, nil
	}

	if counts, ok := s.cache.GetUnread(ctx, userID); ok {
		return counts, nil
	}
	// The generation is read before the store so that an invalidation
	// landing in between makes this fill unusable.
	generation, genErr := s.cache.UnreadGeneration(ctx, userID)
	counts, err := s.participantRepo.UnreadCounts(ctx, userID, nil)
	if err != nil {
		return nil, apperrors.ErrStore(err)
	}
	if genErr != nil {
		logger.Warn().Err(genErr).Uint("user_id", userID).Msg("unread cache generation read failed")
		return counts, nil
	}
	if err := s.cache.SetUnread(ctx, userID, generation, counts); err != nil {
		logger.Warn().Err(err).Uint("user_id", userID).Msg("unread cache write failed")
	}
	return counts, nil
}

// TotalUnread sums UnreadCounts across every conversation of the user.
func (s *ReadStateService) TotalUnread(ctx context.Context, userID uint) (map[uuid.UUID]int64, int64, error) {
	counts, err := s.UnreadCounts(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	var total int64
	for _, n := range counts {
		total += n
	}
	return counts, total, nil
}

// Leave removes the caller from the conversation and deletes the
// conversation once nobody is left in it.
func (s *ReadStateService) Leave(ctx context.Context, conversationID uuid.UUID, userID uint) error {
	if userID == 0 {
		return apperrors.ErrNotAuthenticated
	}
	removed, err := s.participantRepo.Remove(ctx, conversationID, userID)
	if err != nil {
		return apperrors.ErrStore(err)
	}
	if !removed {
		return apperrors.ErrNotParticipant
	}
	if err := s.cache.InvalidateUnread(ctx, userID); err != nil {
		logger.Warn().Err(err).Uint("user_id", userID).Msg("unread cache invalidation failed")
	}

	deleted, err := s.convRepo.DeleteIfEmpty(ctx, conversationID)
	if err != nil {
		// The leave itself is committed; a failed sweep leaves an empty row behind.
		logger.Error().Err(err).Str("conversation_id", conversationID.String()).Msg("empty conversation cleanup failed")
		return nil
	}
	if deleted {
		logger.Info().Str("conversation_id", conversationID.String()).Msg("conversation removed after last participant left")
	}
	return nil
}
