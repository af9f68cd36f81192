package service

import (
	"context"
	"strings"
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

const (
	SearchLimit       = 20
	PublicGroupsLimit = 50
	AvatarPreview     = 5
)

type ConversationSummary struct {
	ID            uuid.UUID            `json:"id"`
	IsGroup       bool                 `json:"is_group"`
	GroupName     *string              `json:"group_name,omitempty"`
	GroupEmoji    *string              `json:"group_emoji,omitempty"`
	IsPublic      bool                 `json:"is_public"`
	LastMessage   *string              `json:"last_message"`
	LastMessageAt *time.Time           `json:"last_message_at"`
	UnreadCount   int64                `json:"unread_count"`
	Participants  []models.UserProfile `json:"participants"`
}

type PublicGroup struct {
	ID            uuid.UUID            `json:"id"`
	Name          string               `json:"name"`
	Emoji         *string              `json:"emoji,omitempty"`
	LastMessage   *string              `json:"last_message"`
	LastMessageAt *time.Time           `json:"last_message_at"`
	MemberCount   int64                `json:"member_count"`
	Avatars       []models.UserProfile `json:"avatars"`
	Joined        bool                 `json:"joined"`
}

type DirectoryService struct {
	directoryRepo   repository.DirectoryRepositoryInterface
	participantRepo repository.ParticipantRepositoryInterface
	convRepo        repository.ConversationRepositoryInterface
	profiles        ProfileLookup
	readState       *ReadStateService
	cache           *cache.ConversationCache
	now             func() time.Time
}

func NewDirectoryService(
	directoryRepo repository.DirectoryRepositoryInterface,
	participantRepo repository.ParticipantRepositoryInterface,
	convRepo repository.ConversationRepositoryInterface,
	profiles ProfileLookup,
	readState *ReadStateService,
	conversationCache *cache.ConversationCache,
) *DirectoryService {
	return &DirectoryService{
		directoryRepo:   directoryRepo,
		participantRepo: participantRepo,
		convRepo:        convRepo,
		profiles:        profiles,
		readState:       readState,
		cache:           conversationCache,
		now:             repository.Now,
	}
}

// ListConversations returns every conversation of the user, most recently
// active first, with unread counts and the other participants.
func (s *DirectoryService) ListConversations(ctx context.Context, userID uint) ([]ConversationSummary, error) {
	if userID == 0 {
		return nil, apperrors.ErrNotAuthenticated
	}
	rows, err := s.directoryRepo.ListForUser(ctx, userID, nil)
	if err != nil {
		return nil, apperrors.ErrStore(err)
	}
	unread, err := s.readState.UnreadCounts(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.summaries(ctx, userID, rows, unread)
}

// GetConversation returns a single summary for a member of the conversation.
func (s *DirectoryService) GetConversation(ctx context.Context, userID uint, conversationID uuid.UUID) (*ConversationSummary, error) {
	if userID == 0 {
		return nil, apperrors.ErrNotAuthenticated
	}
	rows, err := s.directoryRepo.ListForUser(ctx, userID, &conversationID)
	if err != nil {
		return nil, apperrors.ErrStore(err)
	}
	if len(rows) == 0 {
		return nil, apperrors.ErrNotParticipant
	}
	unread, err := s.readState.UnreadCounts(ctx, userID, conversationID)
	if err != nil {
		return nil, err
	}
	out, err := s.summaries(ctx, userID, rows, unread)
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

// SearchConversations matches the user's conversations by group name,
// participant name or message text. A blank query matches nothing.
func (s *DirectoryService) SearchConversations(ctx context.Context, userID uint, query string) ([]ConversationSummary, error) {
	if userID == 0 {
		return nil, apperrors.ErrNotAuthenticated
	}
	pattern := validation.ContainsPattern(query)
	if pattern == "" {
		return []ConversationSummary{}, nil
	}

	rows, err := s.directoryRepo.Search(ctx, userID, pattern, SearchLimit)
	if err != nil {
		return nil, apperrors.ErrStore(err)
	}
	if len(rows) == 0 {
		return []ConversationSummary{}, nil
	}
	unread, err := s.readState.UnreadCounts(ctx, userID, rowIDs(rows)...)
	if err != nil {
		return nil, err
	}
	return s.summaries(ctx, userID, rows, unread)
}

func (s *DirectoryService) summaries(ctx context.Context, userID uint, rows []repository.ConversationRow, unread map[uuid.UUID]int64) ([]ConversationSummary, error) {
	members, err := s.membersByConversation(ctx, rowIDs(rows), 0)
	if err != nil {
		return nil, err
	}

	out := make([]ConversationSummary, 0, len(rows))
	for _, row := range rows {
		others := make([]models.UserProfile, 0, len(members[row.ID]))
		for _, p := range members[row.ID] {
			if p.ID != userID {
				others = append(others, p)
			}
		}
		out = append(out, ConversationSummary{
			ID:            row.ID,
			IsGroup:       row.IsGroup,
			GroupName:     row.GroupName,
			GroupEmoji:    row.GroupEmoji,
			IsPublic:      row.IsPublic,
			LastMessage:   row.LastMessage,
			LastMessageAt: row.LastMessageAt,
			UnreadCount:   unread[row.ID],
			Participants:  others,
		})
	}
	return out, nil
}

// membersByConversation resolves profiles of each conversation's members in
// join order. perConversation > 0 keeps only that many per conversation.
func (s *DirectoryService) membersByConversation(ctx context.Context, ids []uuid.UUID, perConversation int) (map[uuid.UUID][]models.UserProfile, error) {
	rows, err := s.directoryRepo.ParticipantsOf(ctx, ids)
	if err != nil {
		return nil, apperrors.ErrStore(err)
	}

	picked := make(map[uuid.UUID][]uint, len(ids))
	userIDs := make([]uint, 0, len(rows))
	seen := make(map[uint]bool, len(rows))
	for _, r := range rows {
		if perConversation > 0 && len(picked[r.ConversationID]) >= perConversation {
			continue
		}
		picked[r.ConversationID] = append(picked[r.ConversationID], r.UserID)
		if !seen[r.UserID] {
			seen[r.UserID] = true
			userIDs = append(userIDs, r.UserID)
		}
	}

	profiles, err := s.profiles.Profiles(ctx, userIDs)
	if err != nil {
		return nil, apperrors.ErrStore(err)
	}

	out := make(map[uuid.UUID][]models.UserProfile, len(picked))
	for convID, uids := range picked {
		list := make([]models.UserProfile, 0, len(uids))
		for _, uid := range uids {
			p, ok := profiles[uid]
			if !ok {
				p = models.UserProfile{ID: uid}
			}
			list = append(list, p)
		}
		out[convID] = list
	}
	return out, nil
}

// PublicGroups lists discoverable groups. sort is "recent" (default) or "members".
func (s *DirectoryService) PublicGroups(ctx context.Context, callerID uint, search, sort string) ([]PublicGroup, error) {
	if callerID == 0 {
		return nil, apperrors.ErrNotAuthenticated
	}
	order, err := parseSort(sort)
	if err != nil {
		return nil, err
	}

	rows, err := s.directoryRepo.PublicGroups(ctx, validation.ContainsPattern(search), order, PublicGroupsLimit)
	if err != nil {
		return nil, apperrors.ErrStore(err)
	}
	if len(rows) == 0 {
		return []PublicGroup{}, nil
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)
	}
	avatars, err := s.membersByConversation(ctx, ids, AvatarPreview)
	if err != nil {
		return nil, err
	}
	joined, err := s.participantRepo.MemberOf(ctx, callerID, ids)
	if err != nil {
		return nil, apperrors.ErrStore(err)
	}

	out := make([]PublicGroup, 0, len(rows))
	for _, r := range rows {
		g := PublicGroup{
			ID:            r.ID,
			Emoji:         r.GroupEmoji,
			LastMessage:   r.LastMessage,
			LastMessageAt: r.LastMessageAt,
			MemberCount:   r.MemberCount,
			Avatars:       avatars[r.ID],
			Joined:        joined[r.ID],
		}
		if r.GroupName != nil {
			g.Name = *r.GroupName
		}
		if g.Avatars == nil {
			g.Avatars = []models.UserProfile{}
		}
		out = append(out, g)
	}
	return out, nil
}

func parseSort(sort string) (repository.PublicGroupSort, error) {
	switch strings.ToLower(strings.TrimSpace(sort)) {
	case "", string(repository.SortRecent):
		return repository.SortRecent, nil
	case string(repository.SortMembers):
		return repository.SortMembers, nil
	default:
		return "", apperrors.ErrInvalidSort
	}
}

// JoinPublicGroup adds the caller to a public group. Joining twice, or
// losing a concurrent join race, is a success.
func (s *DirectoryService) JoinPublicGroup(ctx context.Context, userID uint, conversationID uuid.UUID) error {
	if userID == 0 {
		return apperrors.ErrNotAuthenticated
	}
	conv, err := s.convRepo.FindByID(ctx, conversationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.ErrPublicGroupNotFound
		}
		return apperrors.ErrStore(err)
	}
	if !conv.IsGroup || !conv.IsPublic {
		return apperrors.ErrPublicGroupNotFound
	}

	isMember, err := s.participantRepo.IsMember(ctx, conversationID, userID)
	if err != nil {
		return apperrors.ErrStore(err)
	}
	if isMember {
		return nil
	}

	if err := s.participantRepo.Add(ctx, conversationID, userID, s.now()); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil
		}
		return apperrors.ErrStore(err)
	}
	if err := s.cache.InvalidateUnread(ctx, userID); err != nil {
		logger.Warn().Err(err).Uint("user_id", userID).Msg("unread cache invalidation failed")
	}
	logger.Info().Str("conversation_id", conversationID.String()).Uint("user_id", userID).Msg("joined public group")
	return nil
}

func rowIDs(rows []repository.ConversationRow) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)
	}
	return ids
}
