package handlers

import (
	"github.com/SL-IT-AMAZING/founder-sprint-workspace-sub002/internal/httpx"
	"github.com/SL-IT-AMAZING/founder-sprint-workspace-sub002/internal/service"
	"github.com/gofiber/fiber/v2"
)

type GroupHandler struct {
	directory *service.DirectoryService
}

func NewGroupHandler(directory *service.DirectoryService) *GroupHandler {
	return &GroupHandler{directory: directory}
}

// PublicGroups handles GET /groups/public?search=&sort=
func (h *GroupHandler) PublicGroups(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return httpx.FromError(c, err)
	}

	groups, err := h.directory.PublicGroups(c.UserContext(), userID, c.Query("search"), c.Query("sort"))
	if err != nil {
		return httpx.FromError(c, err)
	}
	return c.JSON(groups)
}

func (h *GroupHandler) Join(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return httpx.FromError(c, err)
	}
	conversationID, err := conversationParam(c)
	if err != nil {
		return httpx.FromError(c, err)
	}

	if err := h.directory.JoinPublicGroup(c.UserContext(), userID, conversationID); err != nil {
		return httpx.FromError(c, err)
	}
	return c.JSON(fiber.Map{"conversation_id": conversationID, "joined": true})
}
