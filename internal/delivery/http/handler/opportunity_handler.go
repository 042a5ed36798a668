package handler

import (
	"errors"

	"skill-match/internal/delivery/http/dto"
	"skill-match/internal/delivery/http/middleware"
	"skill-match/internal/domain/opportunity"
	"skill-match/internal/pkg/response"
	"skill-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type OpportunityHandler struct {
	create usecase.OpportunityUsecase
	feed   usecase.OpportunityFeedUsecase
}

func NewOpportunityHandler(create usecase.OpportunityUsecase, feed usecase.OpportunityFeedUsecase) *OpportunityHandler {
	return &OpportunityHandler{create: create, feed: feed}
}

func (h *OpportunityHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/matching/opportunities", h.Create)
	r.Get("/opportunities/recent", h.Recent)
	r.Get("/opportunities/:opportunity_id", h.Detail)
	r.Get("/companies/me/opportunities", h.ListMine)
}

func (h *OpportunityHandler) Create(c fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return err
	}

	var req dto.CreateOpportunityRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	o, err := h.create.Create(c.Context(), actor, usecase.CreateOpportunityInput{
		Title:          req.Title,
		Type:           req.Type,
		RequiredSkills: req.RequiredSkills,
		Description:    req.Description,
		Location:       req.Location,
		Duration:       req.Duration,
		Compensation:   req.Compensation,
		CompanyID:      req.CompanyID,
	})
	if err != nil {
		return mapOpportunityUsecaseError(err)
	}

	return response.Success(c, fiber.StatusCreated, response.MessageCreated, dto.NewOpportunityResponse(o))
}

func (h *OpportunityHandler) Recent(c fiber.Ctx) error {
	if _, err := actorFromCtx(c); err != nil {
		return err
	}

	days, err := parseQueryIntStrict(c, "days", usecase.DefaultRecentWindowDays)
	if err != nil || days <= 0 {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	limit, err := parseQueryIntStrict(c, "limit", usecase.DefaultRecentLimit)
	if err != nil || limit <= 0 {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	items, err := h.feed.Recent(c.Context(), days, limit)
	if err != nil {
		return mapOpportunityUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, enrichedList(items))
}

func (h *OpportunityHandler) Detail(c fiber.Ctx) error {
	if _, err := actorFromCtx(c); err != nil {
		return err
	}

	item, err := h.feed.Detail(c.Context(), c.Params("opportunity_id"))
	if err != nil {
		return mapOpportunityUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewEnrichedOpportunityResponse(item))
}

func (h *OpportunityHandler) ListMine(c fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return err
	}

	items, err := h.feed.ByCompany(c.Context(), actor)
	if err != nil {
		return mapOpportunityUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, enrichedList(items))
}

func enrichedList(items []opportunity.Enriched) []dto.EnrichedOpportunityResponse {
	out := make([]dto.EnrichedOpportunityResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.NewEnrichedOpportunityResponse(it))
	}
	return out
}

func mapOpportunityUsecaseError(err error) error {
	if errors.Is(err, usecase.ErrForbidden) {
		return middleware.NewAppError(fiber.StatusForbidden, "Only the owning company can do this", nil, err)
	}
	return mapUsecaseError(err)
}
