package v1

import (
	"skill-match/internal/delivery/http/handler"
	"skill-match/internal/delivery/http/middleware"
	"skill-match/internal/ws"

	"github.com/gofiber/fiber/v3"
)

func RegisterNotifications(r fiber.Router, notifications *handler.NotificationHandler) {
	if r == nil || notifications == nil {
		return
	}
	notifications.RegisterRoutes(r)
}

func RegisterRealtime(r fiber.Router, auth *middleware.AuthMiddleware, wsHandler *ws.Handler) {
	if r == nil || auth == nil || wsHandler == nil {
		return
	}
	grp := r.Group("/ws", auth.WebSocket())
	grp.Get("/notifications", wsHandler.HandleNotificationsWS)
}
