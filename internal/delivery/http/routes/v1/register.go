package v1

import (
	"skill-match/internal/delivery/http/handler"
	"skill-match/internal/delivery/http/middleware"
	"skill-match/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Auth            *middleware.AuthMiddleware
	Opportunities   *handler.OpportunityHandler
	Recommendations *handler.RecommendationHandler
	Notifications   *handler.NotificationHandler
	WS              *ws.Handler
}

func Register(r fiber.Router, h Handlers) {
	if r == nil || h.Auth == nil {
		return
	}

	// Registered before the protected group so the header-only auth
	// middleware does not run ahead of it.
	RegisterRealtime(r, h.Auth, h.WS)

	protected := r.Group("", h.Auth.Middleware())
	RegisterOpportunities(protected, h.Opportunities, h.Recommendations)
	RegisterNotifications(protected, h.Notifications)
}
