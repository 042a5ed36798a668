package handler

import (
	"context"
	"time"

	"skill-match/internal/delivery/http/middleware"
	"skill-match/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

// Pinger is implemented by store backends that hold a connection.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	store Pinger
}

func NewHealthHandler(store Pinger) *HealthHandler {
	return &HealthHandler{store: store}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	if h == nil || h.store == nil {
		return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{"store": "ok"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()
	if err := h.store.Ping(ctx); err != nil {
		return middleware.NewAppError(fiber.StatusServiceUnavailable, "Store unavailable", nil, err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{"store": "ok"})
}
