package service_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/SL-IT-AMAZING/founder-sprint-workspace-sub002/internal/models"
	"github.com/SL-IT-AMAZING/founder-sprint-workspace-sub002/internal/repository"
	"github.com/SL-IT-AMAZING/founder-sprint-workspace-sub002/internal/service"
	"github.com/SL-IT-AMAZING/founder-sprint-workspace-sub002/internal/service/mocks"
	apperrors "github.com/SL-IT-AMAZING/founder-sprint-workspace-sub002/pkg/errors"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListConversations(t *testing.T) {
	s := newStack(t)
	alice := s.h.CreateUser("Alice")
	bob := s.h.CreateUser("Bob")
	carol := s.h.CreateUser("Carol")

	quiet := s.group(t, alice.ID, "Quiet", false, bob.ID, carol.ID)
	dm := s.direct(t, alice.ID, bob.ID)
	busy := s.group(t, carol.ID, "Busy", true, alice.ID)

	s.send(t, dm, bob.ID, "first")
	s.send(t, busy, carol.ID, "second")
	s.send(t, busy, carol.ID, "third")

	list, err := s.directory.ListConversations(testCtx, alice.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)

	assert.Equal(t, busy, list[0].ID)
	assert.Equal(t, int64(2), list[0].UnreadCount)
	require.NotNil(t, list[0].LastMessage)
	assert.Equal(t, "third", *list[0].LastMessage)
	assert.Equal(t, []models.UserProfile{carol.ToProfile()}, list[0].Participants)

	assert.Equal(t, dm, list[1].ID)
	assert.False(t, list[1].IsGroup)
	assert.Equal(t, int64(1), list[1].UnreadCount)
	assert.Equal(t, []models.UserProfile{bob.ToProfile()}, list[1].Participants)

	assert.Equal(t, quiet, list[2].ID)
	assert.Nil(t, list[2].LastMessageAt)
	assert.Zero(t, list[2].UnreadCount)
	assert.Len(t, list[2].Participants, 2)

	one, err := s.directory.GetConversation(testCtx, alice.ID, dm)
	require.NoError(t, err)
	assert.Equal(t, list[1], *one)

	stranger := s.h.CreateUser("Stranger")
	_, err = s.directory.GetConversation(testCtx, stranger.ID, dm)
	assert.True(t, errors.Is(err, apperrors.ErrNotParticipant))

	empty, err := s.directory.ListConversations(testCtx, stranger.ID)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

// unusedDirectory panics if any query reaches it.
type unusedDirectory struct {
	repository.DirectoryRepositoryInterface
}

func TestSearchConversations(t *testing.T) {
	s := newStack(t)
	alice := s.h.CreateUser("Alice")
	bob := s.h.CreateUser("Bob Stone")
	carol := s.h.CreateUser("Carol")

	dm := s.direct(t, alice.ID, bob.ID)
	pct := s.group(t, alice.ID, "Growth 100%", false, carol.ID)
	other := s.group(t, bob.ID, "Private", false, carol.ID)
	s.send(t, dm, bob.ID, "Quarterly PLANNING doc")
	s.send(t, other, carol.ID, "planning without alice")

	byName, err := s.directory.SearchConversations(testCtx, alice.ID, "stone")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, dm, byName[0].ID)

	byContent, err := s.directory.SearchConversations(testCtx, alice.ID, "planning")
	require.NoError(t, err)
	require.Len(t, byContent, 1, "only the caller's conversations are searched")
	assert.Equal(t, dm, byContent[0].ID)
	assert.Equal(t, int64(1), byContent[0].UnreadCount)

	literal, err := s.directory.SearchConversations(testCtx, alice.ID, "100%")
	require.NoError(t, err)
	require.Len(t, literal, 1)
	assert.Equal(t, pct, literal[0].ID)

	wildcard, err := s.directory.SearchConversations(testCtx, alice.ID, "%")
	require.NoError(t, err)
	assert.Len(t, wildcard, 1, "a percent sign matches literally")

	ownName, err := s.directory.SearchConversations(testCtx, alice.ID, "alice")
	require.NoError(t, err)
	require.Len(t, ownName, 2, "the caller's own name matches every conversation they are in")
	assert.ElementsMatch(t, []uuid.UUID{dm, pct}, []uuid.UUID{ownName[0].ID, ownName[1].ID})
	assert.Equal(t, dm, ownName[0].ID, "most recent activity first")

	blank := service.NewDirectoryService(unusedDirectory{}, nil, nil, nil, nil, nil)
	res, err := blank.SearchConversations(testCtx, alice.ID, "   ")
	require.NoError(t, err)
	assert.Empty(t, res)
}

func TestSearchConversations_CapsResults(t *testing.T) {
	s := newStack(t)
	users := s.h.CreateUsers(2)
	for i := 0; i < service.SearchLimit+5; i++ {
		s.group(t, users[0].ID, fmt.Sprintf("Team %d", i), false, users[1].ID)
	}

	res, err := s.directory.SearchConversations(testCtx, users[0].ID, "team")
	require.NoError(t, err)
	assert.Len(t, res, service.SearchLimit)
}

func TestPublicGroups(t *testing.T) {
	s := newStack(t)
	users := s.h.CreateUsers(8)
	viewer := users[7].ID

	small := s.group(t, users[0].ID, "Small talk", true, users[1].ID)
	big := s.group(t, users[0].ID, "Big room", true, users[1].ID, users[2].ID, users[3].ID, users[4].ID, users[5].ID, users[6].ID)
	s.group(t, users[0].ID, "Hidden", false, users[1].ID)
	s.direct(t, users[0].ID, users[1].ID)
	s.send(t, small, users[1].ID, "latest")

	recent, err := s.directory.PublicGroups(testCtx, viewer, "", "")
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, small, recent[0].ID)
	assert.Equal(t, big, recent[1].ID)

	members, err := s.directory.PublicGroups(testCtx, viewer, "", "members")
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, big, members[0].ID)
	assert.Equal(t, int64(7), members[0].MemberCount)
	assert.Equal(t, "Big room", members[0].Name)
	require.Len(t, members[0].Avatars, service.AvatarPreview)
	for i, p := range members[0].Avatars {
		assert.Equal(t, users[i].ID, p.ID)
		assert.Equal(t, users[i].ProfileImage, p.ProfileImage)
	}
	assert.False(t, members[0].Joined)

	filtered, err := s.directory.PublicGroups(testCtx, users[0].ID, "SMALL", "recent")
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.True(t, filtered[0].Joined)

	_, err = s.directory.PublicGroups(testCtx, viewer, "", "popular")
	assert.True(t, errors.Is(err, apperrors.ErrInvalidSort))

	none, err := s.directory.PublicGroups(testCtx, viewer, "nothing like this", "")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestPublicGroups_CapsResults(t *testing.T) {
	s := newStack(t)
	users := s.h.CreateUsers(2)
	for i := 0; i < service.PublicGroupsLimit+3; i++ {
		s.group(t, users[0].ID, fmt.Sprintf("Open %d", i), true, users[1].ID)
	}

	res, err := s.directory.PublicGroups(testCtx, users[0].ID, "", "members")
	require.NoError(t, err)
	assert.Len(t, res, service.PublicGroupsLimit)
}

func TestPublicGroups_ProfileLookupFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	profiles := mocks.NewMockProfileLookup(ctrl)
	s := newStack(t, withProfiles(profiles))
	users := s.h.CreateUsers(2)
	s.group(t, users[0].ID, "Open", true, users[1].ID)

	profiles.EXPECT().Profiles(gomock.Any(), []uint{users[0].ID, users[1].ID}).
		Return(nil, errors.New("profile service down"))

	_, err := s.directory.PublicGroups(testCtx, users[0].ID, "", "")
	assert.Equal(t, apperrors.CodeInternal, apperrors.CodeOf(err))
}

func TestListConversations_MissingProfileKeepsID(t *testing.T) {
	ctrl := gomock.NewController(t)
	profiles := mocks.NewMockProfileLookup(ctrl)
	s := newStack(t, withProfiles(profiles))
	users := s.h.CreateUsers(2)
	s.direct(t, users[0].ID, users[1].ID)

	profiles.EXPECT().Profiles(gomock.Any(), gomock.Any()).Return(map[uint]models.UserProfile{}, nil)

	list, err := s.directory.ListConversations(testCtx, users[0].ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, []models.UserProfile{{ID: users[1].ID}}, list[0].Participants)
}

func TestJoinPublicGroup(t *testing.T) {
	s := newStack(t)
	users := s.h.CreateUsers(3)
	owner, joiner := users[0].ID, users[1].ID

	public := s.group(t, owner, "Open", true, users[2].ID)
	private := s.group(t, owner, "Closed", false, users[2].ID)
	dm := s.direct(t, owner, users[2].ID)

	for _, id := range []uuid.UUID{private, dm, uuid.New()} {
		err := s.directory.JoinPublicGroup(testCtx, joiner, id)
		assert.True(t, errors.Is(err, apperrors.ErrPublicGroupNotFound))
	}

	require.NoError(t, s.directory.JoinPublicGroup(testCtx, joiner, public))
	require.NoError(t, s.directory.JoinPublicGroup(testCtx, joiner, public))

	ids, err := s.partRepo.UserIDs(testCtx, public)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{owner, joiner, users[2].ID}, ids)

	groups, err := s.directory.PublicGroups(testCtx, joiner, "", "")
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.True(t, groups[0].Joined)
}

func TestJoinPublicGroup_Concurrent(t *testing.T) {
	s := newStack(t)
	users := s.h.CreateUsers(3)
	public := s.group(t, users[0].ID, "Rush", true, users[1].ID)
	joiner := users[2].ID

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- s.directory.JoinPublicGroup(testCtx, joiner, public)
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}

	var rows int64
	require.NoError(t, s.h.DB.Model(&models.ConversationParticipant{}).
		Where("conversation_id = ? AND user_id = ?", public, joiner).
		Count(&rows).Error)
	assert.Equal(t, int64(1), rows)
}
