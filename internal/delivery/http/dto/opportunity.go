package dto

import (
	"skill-match/internal/domain/opportunity"
)

type CreateOpportunityRequest struct {
	Title          string   `json:"title"`
	Type           string   `json:"type"`
	RequiredSkills []string `json:"required_skills"`
	Description    string   `json:"description"`
	Location       string   `json:"location"`
	Duration       string   `json:"duration"`
	Compensation   string   `json:"compensation"`
	CompanyID      string   `json:"company_id"`
}

// OpportunityResponse echoes created_at in the representation it was stored
// with.
type OpportunityResponse struct {
	ID             string                `json:"id"`
	CompanyID      string                `json:"company_id"`
	Title          string                `json:"title"`
	Type           string                `json:"type"`
	RequiredSkills []string              `json:"required_skills"`
	Description    string                `json:"description"`
	Location       string                `json:"location"`
	Duration       string                `json:"duration"`
	Compensation   string                `json:"compensation"`
	CreatedAt      opportunity.Timestamp `json:"created_at"`
}

type RecommendationResponse struct {
	OpportunityResponse
	MatchScore float64 `json:"match_score"`
}

type CompanyResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Sector          string `json:"sector"`
	Size            string `json:"size"`
	Description     string `json:"description"`
	Website         string `json:"website"`
	Address         string `json:"address"`
	City            string `json:"city"`
	Country         string `json:"country"`
	LogoURL         string `json:"logo_url"`
	ContactPerson   string `json:"contact_person"`
	ContactPosition string `json:"contact_position"`
}

type EnrichedOpportunityResponse struct {
	OpportunityResponse
	CompanyName string           `json:"company_name"`
	Company     *CompanyResponse `json:"company,omitempty"`
}

func NewOpportunityResponse(o opportunity.Opportunity) OpportunityResponse {
	skills := o.RequiredSkills
	if skills == nil {
		skills = []string{}
	}
	return OpportunityResponse{
		ID:             o.ID,
		CompanyID:      o.CompanyID,
		Title:          o.Title,
		Type:           o.Type,
		RequiredSkills: skills,
		Description:    o.Description,
		Location:       o.Location,
		Duration:       o.Duration,
		Compensation:   o.Compensation,
		CreatedAt:      o.CreatedAt,
	}
}

func NewEnrichedOpportunityResponse(e opportunity.Enriched) EnrichedOpportunityResponse {
	out := EnrichedOpportunityResponse{
		OpportunityResponse: NewOpportunityResponse(e.Opportunity),
		CompanyName:         e.CompanyName,
	}
	if c := e.Company; c != nil {
		out.Company = &CompanyResponse{
			ID:              c.ID,
			Name:            c.Name,
			Sector:          c.Sector,
			Size:            c.Size,
			Description:     c.Description,
			Website:         c.Website,
			Address:         c.Address,
			City:            c.City,
			Country:         c.Country,
			LogoURL:         c.LogoURL,
			ContactPerson:   c.ContactPerson,
			ContactPosition: c.ContactPosition,
		}
	}
	return out
}
