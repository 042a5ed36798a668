package dto

type MatchSkillResponse struct {
	SkillName string  `json:"skill_name"`
	Level     string  `json:"level"`
	Weight    float64 `json:"weight"`
}

type MatchResponse struct {
	Opportunity   OpportunityResponse  `json:"opportunity"`
	MatchScore    float64              `json:"match_score"`
	MatchedSkills []MatchSkillResponse `json:"matched_skills"`
	MissingSkills []string             `json:"missing_skills"`
}
