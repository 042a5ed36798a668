package v1

import (
	"skill-match/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

func RegisterOpportunities(r fiber.Router, opportunities *handler.OpportunityHandler, recommendations *handler.RecommendationHandler) {
	if r == nil {
		return
	}

	// /opportunities/recent must be registered ahead of /opportunities/:opportunity_id.
	if opportunities != nil {
		opportunities.RegisterRoutes(r)
	}
	if recommendations != nil {
		recommendations.RegisterRoutes(r)
	}
}
