package service

import (
	"context"

	"github.com/SL-IT-AMAZING/founder-sprint-workspace-sub002/internal/models"
	"github.com/google/uuid"
)

//go:generate mockgen -destination=mocks/mock_service.go -package=mocks . ProfileLookup,Publisher

// MembershipChecker is the single access-control primitive for conversation content.
type MembershipChecker interface {
	IsMember(ctx context.Context, conversationID uuid.UUID, userID uint) (bool, error)
}

// ProfileLookup resolves display profiles for user ids. Unknown ids are omitted.
type ProfileLookup interface {
	Profiles(ctx context.Context, ids []uint) (map[uint]models.UserProfile, error)
}

const (
	EventMessageNew       = "message.new"
	EventConversationRead = "conversation.read"
)

type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Publisher pushes an event to whichever of the users are connected.
type Publisher interface {
	Publish(userIDs []uint, event Event)
}

type nopPublisher struct{}

func (nopPublisher) Publish([]uint, Event) {}
