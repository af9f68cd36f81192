package handlers

import (
	"github.com/SL-IT-AMAZING/founder-sprint-workspace-sub002/internal/httpx"
	"github.com/SL-IT-AMAZING/founder-sprint-workspace-sub002/internal/service"
	"github.com/gofiber/fiber/v2"
)

type ConversationHandler struct {
	conversations *service.ConversationService
	directory     *service.DirectoryService
	readState     *service.ReadStateService
}

func NewConversationHandler(conversations *service.ConversationService, directory *service.DirectoryService, readState *service.ReadStateService) *ConversationHandler {
	return &ConversationHandler{
		conversations: conversations,
		directory:     directory,
		readState:     readState,
	}
}

type directRequest struct {
	TargetID uint `json:"target_id"`
}

type membersRequest struct {
	UserIDs []uint `json:"user_ids"`
}

// CreateDirect handles POST /conversations/direct
func (h *ConversationHandler) CreateDirect(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return httpx.FromError(c, err)
	}

	var req directRequest
	if err := c.BodyParser(&req); err != nil {
		return httpx.BadRequest(c, "invalid_request_body", "Invalid request body")
	}
	if req.TargetID == 0 {
		return httpx.BadRequest(c, "missing_target", "target_id is required")
	}

	id, err := h.conversations.GetOrCreateDirect(c.UserContext(), userID, req.TargetID)
	if err != nil {
		return httpx.FromError(c, err)
	}
	return c.JSON(fiber.Map{"conversation_id": id})
}

// CreateGroup handles POST /conversations/groups
func (h *ConversationHandler) CreateGroup(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return httpx.FromError(c, err)
	}

	var in service.CreateGroupInput
	if err := c.BodyParser(&in); err != nil {
		return httpx.BadRequest(c, "invalid_request_body", "Invalid request body")
	}

	id, err := h.conversations.CreateGroup(c.UserContext(), userID, in)
	if err != nil {
		return httpx.FromError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"conversation_id": id})
}

func (h *ConversationHandler) List(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return httpx.FromError(c, err)
	}

	summaries, err := h.directory.ListConversations(c.UserContext(), userID)
	if err != nil {
		return httpx.FromError(c, err)
	}
	return c.JSON(summaries)
}

func (h *ConversationHandler) Search(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return httpx.FromError(c, err)
	}

	summaries, err := h.directory.SearchConversations(c.UserContext(), userID, c.Query("q"))
	if err != nil {
		return httpx.FromError(c, err)
	}
	return c.JSON(summaries)
}

// Unread returns per-conversation counts and their sum
func (h *ConversationHandler) Unread(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return httpx.FromError(c, err)
	}

	counts, total, err := h.readState.TotalUnread(c.UserContext(), userID)
	if err != nil {
		return httpx.FromError(c, err)
	}
	return c.JSON(fiber.Map{"counts": counts, "total": total})
}

func (h *ConversationHandler) Get(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return httpx.FromError(c, err)
	}
	conversationID, err := conversationParam(c)
	if err != nil {
		return httpx.FromError(c, err)
	}

	summary, err := h.directory.GetConversation(c.UserContext(), userID, conversationID)
	if err != nil {
		return httpx.FromError(c, err)
	}
	return c.JSON(summary)
}

func (h *ConversationHandler) MarkRead(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return httpx.FromError(c, err)
	}
	conversationID, err := conversationParam(c)
	if err != nil {
		return httpx.FromError(c, err)
	}

	if err := h.readState.MarkRead(c.UserContext(), conversationID, userID); err != nil {
		return httpx.FromError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *ConversationHandler) Leave(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return httpx.FromError(c, err)
	}
	conversationID, err := conversationParam(c)
	if err != nil {
		return httpx.FromError(c, err)
	}

	if err := h.readState.Leave(c.UserContext(), conversationID, userID); err != nil {
		return httpx.FromError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *ConversationHandler) AddMembers(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return httpx.FromError(c, err)
	}
	conversationID, err := conversationParam(c)
	if err != nil {
		return httpx.FromError(c, err)
	}

	var req membersRequest
	if err := c.BodyParser(&req); err != nil {
		return httpx.BadRequest(c, "invalid_request_body", "Invalid request body")
	}

	if err := h.conversations.AddMembers(c.UserContext(), userID, conversationID, req.UserIDs); err != nil {
		return httpx.FromError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
