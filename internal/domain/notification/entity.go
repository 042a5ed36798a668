package notification

import (
	"fmt"
	"time"
)

const TypeOpportunityMatch = "opportunity_match"

type Notification struct {
	ID            string
	StudentID     string
	Type          string
	OpportunityID string
	Message       string
	CreatedAt     time.Time
	Read          bool
}

func OpportunityMatchMessage(title string) string {
	return fmt.Sprintf("New opportunity matching your skills: %s", title)
}
