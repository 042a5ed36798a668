package handler

import (
	"errors"
	"strconv"

	"skill-match/internal/delivery/http/middleware"
	"skill-match/internal/domain/user"
	"skill-match/internal/pkg/response"
	"skill-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

func actorFromCtx(c fiber.Ctx) (user.Actor, error) {
	actor, ok := middleware.ActorFromCtx(c)
	if !ok {
		return user.Actor{}, middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	return actor, nil
}

func parseQueryIntStrict(c fiber.Ctx, key string, defaultVal int) (int, error) {
	s := c.Query(key)
	if s == "" {
		return defaultVal, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	return v, nil
}

// mapUsecaseError covers the sentinels shared by every usecase. Handlers
// wrap it when they need a more specific message.
func mapUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	var verr *usecase.ValidationError
	switch {
	case errors.As(err, &verr):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", verr.Fields, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, err)
	case errors.Is(err, usecase.ErrOpportunityNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Opportunity not found", nil, err)
	case errors.Is(err, usecase.ErrStudentNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Student not found", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
