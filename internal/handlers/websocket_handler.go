package handlers

import (
	"context"

	"github.com/SL-IT-AMAZING/founder-sprint-workspace-sub002/internal/handlers/ws"
	"github.com/SL-IT-AMAZING/founder-sprint-workspace-sub002/internal/service"
	apperrors "github.com/SL-IT-AMAZING/founder-sprint-workspace-sub002/pkg/errors"
	"github.com/SL-IT-AMAZING/founder-sprint-workspace-sub002/pkg/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

type WebSocketHandler struct {
	messages  *service.MessageService
	readState *service.ReadStateService
	hub       *ws.Hub
}

func NewWebSocketHandler(hub *ws.Hub, messages *service.MessageService, readState *service.ReadStateService) *WebSocketHandler {
	return &WebSocketHandler{
		messages:  messages,
		readState: readState,
		hub:       hub,
	}
}

// Upgrade rejects plain HTTP requests on the socket route
func (h *WebSocketHandler) Upgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	return c.Next()
}

func (h *WebSocketHandler) HandleWebSocket(c *websocket.Conn) {
	userID, ok := c.Locals("userID").(uint)
	if !ok || userID == 0 {
		_ = c.Close()
		return
	}

	supportsGzip := c.Query("gzip") == "1" || c.Headers("X-Supports-Gzip") == "1"
	client := h.hub.Register(userID, c, supportsGzip)
	defer h.hub.Release(client)

	log := logger.With().Uint("user_id", userID).Logger()
	log.Info().Bool("gzip", supportsGzip).Msg("websocket connected")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	msgCtx := &ws.MessageContext{
		Ctx:       ctx,
		UserID:    userID,
		Client:    client,
		Hub:       h.hub,
		Messages:  h.messages,
		ReadState: h.readState,
	}

	for {
		messageType, messageBytes, err := c.ReadMessage()
		if err != nil {
			log.Debug().Err(err).Msg("websocket read ended")
			break
		}

		if messageType == websocket.BinaryMessage {
			decompressed, err := ws.DecompressMessage(messageBytes)
			if err != nil {
				_ = ws.SendError(client, "decompression_failed", "Failed to decompress message", err.Error())
				continue
			}
			messageBytes = decompressed
		}

		msg, err := ws.Deserialize(messageBytes)
		if err != nil {
			_ = ws.SendError(client, "invalid_message", "Invalid message format", err.Error())
			continue
		}

		if err := msg.Process(msgCtx); err != nil {
			code := apperrors.CodeOf(err)
			if code == apperrors.CodeInternal {
				log.Error().Err(err).Str("type", msg.GetType()).Msg("websocket message failed")
				_ = ws.SendError(client, string(code), "Failed to process message", "")
				continue
			}
			_ = ws.SendError(client, string(code), err.Error(), "")
		}
	}

	log.Info().Msg("websocket disconnected")
}
