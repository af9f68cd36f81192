package handlers

import (
	"github.com/SL-IT-AMAZING/founder-sprint-workspace-sub002/internal/middleware"
	apperrors "github.com/SL-IT-AMAZING/founder-sprint-workspace-sub002/pkg/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func callerID(c *fiber.Ctx) (uint, error) {
	user, ok := middleware.CurrentUserFrom(c)
	if !ok {
		return 0, apperrors.ErrNotAuthenticated
	}
	return user.ID, nil
}

func conversationParam(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, apperrors.InvalidArg("invalid conversation id")
	}
	return id, nil
}
