package handler

import (
	"errors"

	"skill-match/internal/delivery/http/dto"
	"skill-match/internal/delivery/http/middleware"
	"skill-match/internal/pkg/response"
	"skill-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type RecommendationHandler struct {
	uc usecase.RecommendationUsecase
}

func NewRecommendationHandler(uc usecase.RecommendationUsecase) *RecommendationHandler {
	return &RecommendationHandler{uc: uc}
}

func (h *RecommendationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/matching/recommendations", h.List)
	r.Get("/opportunities/:opportunity_id/match", h.Match)
}

func (h *RecommendationHandler) List(c fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return err
	}

	items, err := h.uc.Recommend(c.Context(), actor)
	if err != nil {
		return mapRecommendationUsecaseError(err)
	}

	out := make([]dto.RecommendationResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.RecommendationResponse{
			OpportunityResponse: dto.NewOpportunityResponse(it.Opportunity),
			MatchScore:          it.MatchScore,
		})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *RecommendationHandler) Match(c fiber.Ctx) error {
	actor, err := actorFromCtx(c)
	if err != nil {
		return err
	}

	res, err := h.uc.MatchOne(c.Context(), actor, c.Params("opportunity_id"))
	if err != nil {
		return mapRecommendationUsecaseError(err)
	}

	out := dto.MatchResponse{
		Opportunity:   dto.NewOpportunityResponse(res.Opportunity),
		MatchScore:    res.Result.Score,
		MatchedSkills: make([]dto.MatchSkillResponse, 0, len(res.Result.MatchedSkills)),
		MissingSkills: res.Result.MissingSkills,
	}
	for _, ms := range res.Result.MatchedSkills {
		out.MatchedSkills = append(out.MatchedSkills, dto.MatchSkillResponse{
			SkillName: ms.SkillName,
			Level:     string(ms.Level),
			Weight:    ms.Weight,
		})
	}
	if out.MissingSkills == nil {
		out.MissingSkills = []string{}
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func mapRecommendationUsecaseError(err error) error {
	if errors.Is(err, usecase.ErrForbidden) {
		return middleware.NewAppError(fiber.StatusForbidden, "Only students receive recommendations", nil, err)
	}
	return mapUsecaseError(err)
}
