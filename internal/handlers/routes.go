package handlers

import (
	"strconv"
	"time"

	"github.com/SL-IT-AMAZING/founder-sprint-workspace-sub002/internal/httpx"
	"github.com/SL-IT-AMAZING/founder-sprint-workspace-sub002/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/websocket/v2"
)

// Routes wires the handlers onto a fiber app
type Routes struct {
	JWTSecret      string
	AllowedOrigins string
	// SendLimit caps message posts per user per minute; zero disables it.
	SendLimit int

	Conversations *ConversationHandler
	Messages      *MessageHandler
	Groups        *GroupHandler
	WebSocket     *WebSocketHandler
}

func (r Routes) Register(app *fiber.App) {
	api := app.Group("/api", middleware.OriginAllowed(r.AllowedOrigins), middleware.AuthRequired(r.JWTSecret))

	sendHandlers := []fiber.Handler{}
	if r.SendLimit > 0 {
		sendHandlers = append(sendHandlers, limiter.New(limiter.Config{
			Max:        r.SendLimit,
			Expiration: time.Minute,
			KeyGenerator: func(c *fiber.Ctx) string {
				if uid, err := httpx.LocalUint(c, "userID"); err == nil {
					return "send:" + strconv.FormatUint(uint64(uid), 10)
				}
				return c.IP()
			},
		}))
	}
	sendHandlers = append(sendHandlers, r.Messages.Send)

	api.Post("/conversations/direct", r.Conversations.CreateDirect)
	api.Post("/conversations/groups", r.Conversations.CreateGroup)
	api.Get("/conversations", r.Conversations.List)
	api.Get("/conversations/search", r.Conversations.Search)
	api.Get("/conversations/unread", r.Conversations.Unread)
	api.Get("/conversations/:id", r.Conversations.Get)
	api.Get("/conversations/:id/messages", r.Messages.List)
	api.Post("/conversations/:id/messages", sendHandlers...)
	api.Post("/conversations/:id/read", r.Conversations.MarkRead)
	api.Post("/conversations/:id/leave", r.Conversations.Leave)
	api.Post("/conversations/:id/members", r.Conversations.AddMembers)

	api.Get("/groups/public", r.Groups.PublicGroups)
	api.Post("/groups/:id/join", r.Groups.Join)

	if r.WebSocket != nil {
		app.Use(
			"/ws",
			middleware.OriginAllowed(r.AllowedOrigins),
			middleware.AuthRequired(r.JWTSecret),
			r.WebSocket.Upgrade,
		)
		app.Get("/ws", websocket.New(r.WebSocket.HandleWebSocket))
	}

	app.Get("/health", Health)
}

func Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"message": "Cohort messaging is running",
	})
}
