package handler

import (
	"errors"
	"time"

	"skill-match/internal/delivery/http/dto"
	"skill-match/internal/delivery/http/middleware"
	"skill-match/internal/pkg/response"
	"skill-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type NotificationHandler struct {
	uc usecase.NotificationUsecase
}

func NewNotificationHandler(uc usecase.NotificationUsecase) *NotificationHandler {
	return &NotificationHandler{uc: uc}
}

func (h *NotificationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/notifications", h.List)
}

func (h *NotificationHandler) List(c fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return err
	}

	items, err := h.uc.ListForStudent(c.Context(), actor)
	if err != nil {
		if errors.Is(err, usecase.ErrForbidden) {
			return middleware.NewAppError(fiber.StatusForbidden, "Only students receive notifications", nil, err)
		}
		return mapUsecaseError(err)
	}

	out := make([]dto.NotificationResponse, 0, len(items))
	for _, n := range items {
		created := ""
		if !n.CreatedAt.IsZero() {
			created = n.CreatedAt.UTC().Format(time.RFC3339)
		}
		out = append(out, dto.NotificationResponse{
			ID:            n.ID,
			StudentID:     n.StudentID,
			Type:          n.Type,
			OpportunityID: n.OpportunityID,
			Message:       n.Message,
			CreatedAt:     created,
			Read:          n.Read,
		})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}
