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
	"github.com/pkg/errors"
)

// errDirectGone reports that a direct conversation found by key was deleted
// before its participants could be written.
var errDirectGone = errors.New("direct conversation removed")

type CreateGroupInput struct {
	Name           string `json:"name"`
	Emoji          string `json:"emoji"`
	IsPublic       bool   `json:"is_public"`
	ParticipantIDs []uint `json:"participant_ids"`
}

type ConversationService struct {
	convRepo        repository.ConversationRepositoryInterface
	participantRepo repository.ParticipantRepositoryInterface
	userRepo        repository.UserRepositoryInterface
	cache           *cache.ConversationCache
	now             func() time.Time
}

func NewConversationService(
	convRepo repository.ConversationRepositoryInterface,
	participantRepo repository.ParticipantRepositoryInterface,
	userRepo repository.UserRepositoryInterface,
	conversationCache *cache.ConversationCache,
) *ConversationService {
	return &ConversationService{
		convRepo:        convRepo,
		participantRepo: participantRepo,
		userRepo:        userRepo,
		cache:           conversationCache,
		now:             repository.Now,
	}
}

// GetOrCreateDirect returns the single direct conversation between the two
// users, creating it on first contact.
func (s *ConversationService) GetOrCreateDirect(ctx context.Context, callerID, targetID uint) (uuid.UUID, error) {
	if callerID == 0 {
		return uuid.Nil, apperrors.ErrNotAuthenticated
	}
	if targetID == callerID {
		return uuid.Nil, apperrors.ErrSelfConversation
	}
	if targetID == 0 {
		return uuid.Nil, apperrors.ErrUserNotFound
	}
	if _, err := s.userRepo.FindByID(ctx, targetID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return uuid.Nil, apperrors.ErrUserNotFound
		}
		return uuid.Nil, apperrors.ErrStore(err)
	}

	key := models.DirectKey(callerID, targetID)
	members := []uint{callerID, targetID}

	existing, err := s.findDirect(ctx, key)
	if err != nil {
		return uuid.Nil, err
	}
	if existing != nil {
		err := s.ensureDirectMembers(ctx, existing.ID, members)
		if !errors.Is(err, errDirectGone) {
			return existing.ID, err
		}
		// The last participant left and the row was collected after the
		// lookup; the pair key is free again, so create afresh.
	}

	now := s.now()
	conv := &models.Conversation{DMKey: &key, CreatedBy: &callerID}
	err = s.convRepo.CreateWithParticipants(ctx, conv, members, now)
	if err == nil {
		s.invalidate(ctx, members...)
		return conv.ID, nil
	}
	if !repository.IsUniqueViolation(err) {
		return uuid.Nil, apperrors.ErrStore(err)
	}

	// Lost the race to a concurrent creator: adopt its row, once.
	winner, err := s.findDirect(ctx, key)
	if err != nil {
		return uuid.Nil, err
	}
	if winner == nil {
		return uuid.Nil, apperrors.ErrDirectConflict
	}
	if err := s.ensureDirectMembers(ctx, winner.ID, members); err != nil {
		if errors.Is(err, errDirectGone) {
			return uuid.Nil, apperrors.ErrDirectConflict
		}
		return uuid.Nil, err
	}
	return winner.ID, nil
}

func (s *ConversationService) findDirect(ctx context.Context, key string) (*models.Conversation, error) {
	conv, err := s.convRepo.FindByDMKey(ctx, key)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, apperrors.ErrStore(err)
	}
	return conv, nil
}

func (s *ConversationService) ensureDirectMembers(ctx context.Context, conversationID uuid.UUID, members []uint) error {
	if err := s.participantRepo.Ensure(ctx, conversationID, members, s.now()); err != nil {
		if repository.IsForeignKeyViolation(err) {
			return errDirectGone
		}
		return apperrors.ErrStore(err)
	}
	s.invalidate(ctx, members...)
	return nil
}

// CreateGroup creates a group holding the caller and every listed user.
func (s *ConversationService) CreateGroup(ctx context.Context, callerID uint, in CreateGroupInput) (uuid.UUID, error) {
	if callerID == 0 {
		return uuid.Nil, apperrors.ErrNotAuthenticated
	}
	name, ok := validation.NormalizeGroupName(in.Name)
	if !ok {
		return uuid.Nil, apperrors.ErrInvalidGroupName
	}
	emoji, ok := validation.NormalizeGroupEmoji(in.Emoji)
	if !ok {
		return uuid.Nil, apperrors.ErrInvalidGroupEmoji
	}

	members := validation.ParticipantSet(callerID, in.ParticipantIDs)
	if !validation.MinParticipants(members, 2) {
		return uuid.Nil, apperrors.ErrGroupTooSmall
	}
	if err := s.requireUsers(ctx, members); err != nil {
		return uuid.Nil, err
	}

	conv := &models.Conversation{
		IsGroup:    true,
		GroupName:  &name,
		GroupEmoji: emoji,
		IsPublic:   in.IsPublic,
		CreatedBy:  &callerID,
	}
	if err := s.convRepo.CreateWithParticipants(ctx, conv, members, s.now()); err != nil {
		return uuid.Nil, apperrors.ErrStore(err)
	}
	s.invalidate(ctx, members...)

	logger.Info().
		Str("conversation_id", conv.ID.String()).
		Uint("user_id", callerID).
		Int("members", len(members)).
		Bool("public", in.IsPublic).
		Msg("group created")
	return conv.ID, nil
}

// AddMembers lets an existing group member bring other users in.
// Users already present are left untouched.
func (s *ConversationService) AddMembers(ctx context.Context, callerID uint, conversationID uuid.UUID, userIDs []uint) error {
	if callerID == 0 {
		return apperrors.ErrNotAuthenticated
	}
	conv, err := s.convRepo.FindByID(ctx, conversationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.ErrNotParticipant
		}
		return apperrors.ErrStore(err)
	}
	isMember, err := s.participantRepo.IsMember(ctx, conversationID, callerID)
	if err != nil {
		return apperrors.ErrStore(err)
	}
	if !isMember {
		return apperrors.ErrNotParticipant
	}
	if !conv.IsGroup {
		return apperrors.ErrNotAGroup
	}

	added := validation.ParticipantSet(0, userIDs)
	if len(added) == 0 {
		return apperrors.InvalidArg("user_ids must not be empty")
	}
	if err := s.requireUsers(ctx, added); err != nil {
		return err
	}
	if err := s.participantRepo.Ensure(ctx, conversationID, added, s.now()); err != nil {
		return apperrors.ErrStore(err)
	}
	s.invalidate(ctx, added...)
	return nil
}

func (s *ConversationService) requireUsers(ctx context.Context, ids []uint) error {
	n, err := s.userRepo.CountExisting(ctx, ids)
	if err != nil {
		return apperrors.ErrStore(err)
	}
	if n != int64(len(ids)) {
		return apperrors.ErrUnknownParticipant
	}
	return nil
}

func (s *ConversationService) invalidate(ctx context.Context, userIDs ...uint) {
	if err := s.cache.InvalidateUnread(ctx, userIDs...); err != nil {
		logger.Warn().Err(err).Msg("unread cache invalidation failed")
	}
}
