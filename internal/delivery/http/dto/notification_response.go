package dto

type NotificationResponse struct {
	ID            string `json:"id"`
	StudentID     string `json:"student_id"`
	Type          string `json:"type"`
	OpportunityID string `json:"opportunity_id"`
	Message       string `json:"message"`
	CreatedAt     string `json:"created_at"`
	Read          bool   `json:"read"`
}
