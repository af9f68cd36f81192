package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/SL-IT-AMAZING/founder-sprint-workspace-sub002/internal/cache"
	"github.com/SL-IT-AMAZING/founder-sprint-workspace-sub002/internal/repository"
	"github.com/SL-IT-AMAZING/founder-sprint-workspace-sub002/internal/service"
	"github.com/SL-IT-AMAZING/founder-sprint-workspace-sub002/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var (
	epoch   = time.Date(2025, 4, 2, 9, 0, 0, 0, time.UTC)
	testCtx = context.Background()
)

type stack struct {
	h             *testutil.TestHelper
	convRepo      *repository.ConversationRepository
	partRepo      *repository.ParticipantRepository
	conversations *service.ConversationService
	messages      *service.MessageService
	readState     *service.ReadStateService
	directory     *service.DirectoryService
}

type stackOption func(*stackConfig)

type stackConfig struct {
	cache     *cache.ConversationCache
	publisher service.Publisher
	profiles  service.ProfileLookup
	clock     func() time.Time
}

func withCache(cc *cache.ConversationCache) stackOption {
	return func(c *stackConfig) { c.cache = cc }
}

func withPublisher(p service.Publisher) stackOption {
	return func(c *stackConfig) { c.publisher = p }
}

func withProfiles(p service.ProfileLookup) stackOption {
	return func(c *stackConfig) { c.profiles = p }
}

func withClock(clock func() time.Time) stackOption {
	return func(c *stackConfig) { c.clock = clock }
}

// newStack wires every service over one private sqlite database. All services
// share a clock that advances a millisecond per reading.
func newStack(t *testing.T, opts ...stackOption) *stack {
	t.Helper()
	cfg := stackConfig{clock: testutil.Clock(epoch, time.Millisecond)}
	for _, opt := range opts {
		opt(&cfg)
	}

	h := testutil.NewTestHelper(t)
	convRepo := repository.NewConversationRepository(h.DB)
	partRepo := repository.NewParticipantRepository(h.DB)
	msgRepo := repository.NewMessageRepository(h.DB)
	dirRepo := repository.NewDirectoryRepository(h.DB)
	userRepo := repository.NewUserRepository(h.DB)

	var profiles service.ProfileLookup = userRepo
	if cfg.profiles != nil {
		profiles = cfg.profiles
	}

	s := &stack{
		h:             h,
		convRepo:      convRepo,
		partRepo:      partRepo,
		conversations: service.NewConversationService(convRepo, partRepo, userRepo, cfg.cache),
		messages:      service.NewMessageService(partRepo, msgRepo, cfg.cache, cfg.publisher),
	}
	s.readState = service.NewReadStateService(partRepo, convRepo, cfg.cache, cfg.publisher)
	s.directory = service.NewDirectoryService(dirRepo, partRepo, convRepo, profiles, s.readState, cfg.cache)

	s.conversations.SetClock(cfg.clock)
	s.messages.SetClock(cfg.clock)
	s.readState.SetClock(cfg.clock)
	s.directory.SetClock(cfg.clock)
	return s
}

func (s *stack) direct(t *testing.T, a, b uint) uuid.UUID {
	t.Helper()
	id, err := s.conversations.GetOrCreateDirect(testCtx, a, b)
	require.NoError(t, err)
	return id
}

func (s *stack) group(t *testing.T, creator uint, name string, public bool, members ...uint) uuid.UUID {
	t.Helper()
	id, err := s.conversations.CreateGroup(testCtx, creator, service.CreateGroupInput{
		Name:           name,
		IsPublic:       public,
		ParticipantIDs: members,
	})
	require.NoError(t, err)
	return id
}

func (s *stack) send(t *testing.T, conv uuid.UUID, from uint, content string) uint {
	t.Helper()
	msg, err := s.messages.Send(testCtx, conv, from, content)
	require.NoError(t, err)
	return msg.ID
}
