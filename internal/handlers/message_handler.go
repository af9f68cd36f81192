package handlers

import (
	"strconv"

	"github.com/SL-IT-AMAZING/founder-sprint-workspace-sub002/internal/httpx"
	"github.com/SL-IT-AMAZING/founder-sprint-workspace-sub002/internal/models"
	"github.com/SL-IT-AMAZING/founder-sprint-workspace-sub002/internal/service"
	"github.com/gofiber/fiber/v2"
)

type MessageHandler struct {
	messages *service.MessageService
}

func NewMessageHandler(messages *service.MessageService) *MessageHandler {
	return &MessageHandler{messages: messages}
}

type sendRequest struct {
	Content string `json:"content"`
}

type pageResponse struct {
	Messages   []models.MessageResponse `json:"messages"`
	NextCursor *string                  `json:"next_cursor"`
}

func (h *MessageHandler) Send(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return httpx.FromError(c, err)
	}
	conversationID, err := conversationParam(c)
	if err != nil {
		return httpx.FromError(c, err)
	}

	var req sendRequest
	if err := c.BodyParser(&req); err != nil {
		return httpx.BadRequest(c, "invalid_request_body", "Invalid request body")
	}

	msg, err := h.messages.Send(c.UserContext(), conversationID, userID, req.Content)
	if err != nil {
		return httpx.FromError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(msg.ToResponse())
}

// List returns one page of messages, newest first
func (h *MessageHandler) List(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return httpx.FromError(c, err)
	}
	conversationID, err := conversationParam(c)
	if err != nil {
		return httpx.FromError(c, err)
	}

	limit := 0
	if limitStr := c.Query("limit"); limitStr != "" {
		limit, err = strconv.Atoi(limitStr)
		if err != nil {
			return httpx.BadRequest(c, "invalid_limit", "limit must be a number")
		}
	}

	page, err := h.messages.ListMessages(c.UserContext(), conversationID, userID, limit, c.Query("cursor"))
	if err != nil {
		return httpx.FromError(c, err)
	}

	resp := pageResponse{
		Messages:   make([]models.MessageResponse, len(page.Messages)),
		NextCursor: page.NextCursor,
	}
	for i := range page.Messages {
		resp.Messages[i] = page.Messages[i].ToResponse()
	}
	return c.JSON(resp)
}
