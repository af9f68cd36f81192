package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/SL-IT-AMAZING/founder-sprint-workspace-sub002/internal/cache"
	"github.com/SL-IT-AMAZING/founder-sprint-workspace-sub002/internal/models"
	"github.com/SL-IT-AMAZING/founder-sprint-workspace-sub002/internal/repository"
	"github.com/SL-IT-AMAZING/founder-sprint-workspace-sub002/internal/service"
	"github.com/SL-IT-AMAZING/founder-sprint-workspace-sub002/internal/service/mocks"
	apperrors "github.com/SL-IT-AMAZING/founder-sprint-workspace-sub002/pkg/errors"
	"github.com/alicebob/miniredis/v2"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnreadCounts_Monotonicity(t *testing.T) {
	s := newStack(t)
	users := s.h.CreateUsers(2)
	a, b := users[0].ID, users[1].ID
	conv := s.direct(t, a, b)

	unread := func(user uint) int64 {
		t.Helper()
		counts, err := s.readState.UnreadCounts(testCtx, user, conv)
		require.NoError(t, err)
		return counts[conv]
	}

	assert.Zero(t, unread(a))
	for i := 1; i <= 4; i++ {
		s.send(t, conv, b, "hello")
		assert.Equal(t, int64(i), unread(a))
		assert.Zero(t, unread(b), "own messages never count")
	}

	s.send(t, conv, a, "reply")
	assert.Equal(t, int64(4), unread(a))
	assert.Equal(t, int64(1), unread(b))

	require.NoError(t, s.readState.MarkRead(testCtx, conv, a))
	assert.Zero(t, unread(a))

	s.send(t, conv, b, "one more")
	assert.Equal(t, int64(1), unread(a))
}

func TestUnreadCounts_SystemMessagesCount(t *testing.T) {
	s := newStack(t)
	users := s.h.CreateUsers(2)
	conv := s.direct(t, users[0].ID, users[1].ID)

	require.NoError(t, s.h.DB.Create(&models.Message{
		ConversationID: conv,
		Content:        "Alice joined",
		CreatedAt:      epoch.Add(24 * time.Hour),
	}).Error)

	for _, u := range users {
		counts, err := s.readState.UnreadCounts(testCtx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), counts[conv])
	}
}

func TestMarkRead(t *testing.T) {
	ctrl := gomock.NewController(t)
	pub := mocks.NewMockPublisher(ctrl)
	s := newStack(t, withPublisher(pub))
	users := s.h.CreateUsers(3)
	a, b, outsider := users[0].ID, users[1].ID, users[2].ID
	conv := s.direct(t, a, b)

	err := s.readState.MarkRead(testCtx, conv, outsider)
	assert.True(t, errors.Is(err, apperrors.ErrNotParticipant))

	err = s.readState.MarkRead(testCtx, uuid.New(), a)
	assert.True(t, errors.Is(err, apperrors.ErrNotParticipant))

	err = s.readState.MarkRead(testCtx, conv, 0)
	assert.True(t, errors.Is(err, apperrors.ErrNotAuthenticated))

	pub.EXPECT().Publish([]uint{b}, gomock.Any()).Do(func(_ []uint, ev service.Event) {
		assert.Equal(t, service.EventConversationRead, ev.Type)
	})
	require.NoError(t, s.readState.MarkRead(testCtx, conv, a))
}

func TestTotalUnread_UsesCacheAndInvalidates(t *testing.T) {
	mr := miniredis.RunT(t)
	rc := cache.NewRedisCache(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = rc.Close() })
	cc := cache.NewConversationCache(rc)

	s := newStack(t, withCache(cc))
	users := s.h.CreateUsers(3)
	a, b, c := users[0].ID, users[1].ID, users[2].ID
	ab := s.direct(t, a, b)
	grp := s.group(t, c, "Trio", false, a, b)

	s.send(t, ab, b, "1")
	s.send(t, grp, c, "2")
	s.send(t, grp, b, "3")

	counts, total, err := s.readState.TotalUnread(testCtx, a)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Equal(t, map[uuid.UUID]int64{ab: 1, grp: 2}, counts)
	assert.True(t, mr.Exists(fmt.Sprintf("unread:%d", a)))

	s.send(t, grp, c, "4")
	_, total, err = s.readState.TotalUnread(testCtx, a)
	require.NoError(t, err)
	assert.Equal(t, int64(4), total, "send must invalidate the cached counts")

	require.NoError(t, s.readState.MarkRead(testCtx, grp, a))
	_, total, err = s.readState.TotalUnread(testCtx, a)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestLeave_LastParticipantDeletesConversation(t *testing.T) {
	s := newStack(t)
	users := s.h.CreateUsers(3)
	a, b, c := users[0].ID, users[1].ID, users[2].ID
	grp := s.group(t, a, "Short lived", false, b, c)
	s.send(t, grp, a, "bye all")

	require.NoError(t, s.readState.Leave(testCtx, grp, a))
	_, err := s.messages.Send(testCtx, grp, a, "still here?")
	assert.True(t, errors.Is(err, apperrors.ErrNotParticipant))

	err = s.readState.Leave(testCtx, grp, a)
	assert.True(t, errors.Is(err, apperrors.ErrNotParticipant))

	require.NoError(t, s.readState.Leave(testCtx, grp, b))
	_, err = s.convRepo.FindByID(testCtx, grp)
	require.NoError(t, err, "conversation survives while a member remains")

	require.NoError(t, s.readState.Leave(testCtx, grp, c))
	_, err = s.convRepo.FindByID(testCtx, grp)
	assert.Error(t, err)

	var messages int64
	require.NoError(t, s.h.DB.Model(&models.Message{}).Where("conversation_id = ?", grp).Count(&messages).Error)
	assert.Zero(t, messages)
}

// afterReadParticipants runs hook once, right after the first unfiltered
// unread read returns from the store.
type afterReadParticipants struct {
	repository.ParticipantRepositoryInterface
	hook func()
}

func (p *afterReadParticipants) UnreadCounts(ctx context.Context, userID uint, ids []uuid.UUID) (map[uuid.UUID]int64, error) {
	counts, err := p.ParticipantRepositoryInterface.UnreadCounts(ctx, userID, ids)
	if ids == nil && p.hook != nil {
		hook := p.hook
		p.hook = nil
		hook()
	}
	return counts, err
}

func TestUnreadCounts_SendDuringCacheFillIsNotMasked(t *testing.T) {
	mr := miniredis.RunT(t)
	rc := cache.NewRedisCache(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = rc.Close() })
	cc := cache.NewConversationCache(rc)

	s := newStack(t, withCache(cc))
	users := s.h.CreateUsers(2)
	a, b := users[0].ID, users[1].ID
	conv := s.direct(t, a, b)

	parts := &afterReadParticipants{ParticipantRepositoryInterface: s.partRepo}
	parts.hook = func() { s.send(t, conv, b, "arrived mid-read") }
	readState := service.NewReadStateService(parts, s.convRepo, cc, nil)

	first, err := readState.UnreadCounts(testCtx, a)
	require.NoError(t, err)
	assert.Equal(t, int64(0), first[conv], "the store was read before the message")

	stored, err := s.partRepo.UnreadCounts(testCtx, a, nil)
	require.NoError(t, err)
	require.Equal(t, int64(1), stored[conv])

	second, err := readState.UnreadCounts(testCtx, a)
	require.NoError(t, err)
	assert.Equal(t, stored[conv], second[conv])
}

func TestLeave_DirectConversation(t *testing.T) {
	s := newStack(t)
	users := s.h.CreateUsers(2)
	a, b := users[0].ID, users[1].ID
	dm := s.direct(t, a, b)
	s.send(t, dm, a, "hello")
	s.send(t, dm, b, "hi")

	require.NoError(t, s.readState.Leave(testCtx, dm, a))
	_, err := s.convRepo.FindByID(testCtx, dm)
	require.NoError(t, err, "one leaver keeps the conversation")
	page, err := s.messages.ListMessages(testCtx, dm, b, 10, "")
	require.NoError(t, err)
	assert.Len(t, page.Messages, 2)

	require.NoError(t, s.readState.Leave(testCtx, dm, b))
	_, err = s.convRepo.FindByID(testCtx, dm)
	assert.True(t, errors.Is(err, repository.ErrNotFound))

	var messages int64
	require.NoError(t, s.h.DB.Model(&models.Message{}).Where("conversation_id = ?", dm).Count(&messages).Error)
	assert.Zero(t, messages)

	_, err = s.convRepo.FindByDMKey(testCtx, models.DirectKey(a, b))
	assert.True(t, errors.Is(err, repository.ErrNotFound), "the pair key is released")

	fresh := s.direct(t, b, a)
	assert.NotEqual(t, dm, fresh)

	members, err := s.partRepo.UserIDs(testCtx, fresh)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{a, b}, members)

	page, err = s.messages.ListMessages(testCtx, fresh, a, 10, "")
	require.NoError(t, err)
	assert.Empty(t, page.Messages)
}
