package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"skill-match/internal/domain/opportunity"
	"skill-match/internal/domain/user"
	"skill-match/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CreateOpportunityInput struct {
	Title          string   `validate:"required,max=200"`
	Type           string   `validate:"required,max=100"`
	RequiredSkills []string `validate:"dive,required,max=100"`
	Description    string   `validate:"max=10000"`
	Location       string   `validate:"max=200"`
	Duration       string   `validate:"max=100"`
	Compensation   string   `validate:"max=100"`
	CompanyID      string
}

// OpportunityEventPublisher announces created opportunities to other
// services.
type OpportunityEventPublisher interface {
	PublishOpportunityCreated(ctx context.Context, o opportunity.Opportunity) error
}

type opportunityFanout interface {
	NotifyMatches(ctx context.Context, o opportunity.Opportunity) (int, error)
}

type OpportunityUsecase interface {
	Create(ctx context.Context, caller user.Actor, in CreateOpportunityInput) (opportunity.Opportunity, error)
}

type Opportunity struct {
	opportunities repository.OpportunityRepository
	fanout        opportunityFanout
	events        OpportunityEventPublisher
	validate      *validator.Validate
	logger        *zap.Logger
	now           func() time.Time
	newID         func() string
}

func NewOpportunityUsecase(opportunities repository.OpportunityRepository, fanout opportunityFanout, events OpportunityEventPublisher, logger *zap.Logger) *Opportunity {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Opportunity{
		opportunities: opportunities,
		fanout:        fanout,
		events:        events,
		validate:      validator.New(),
		logger:        logger,
		now:           time.Now,
		newID:         uuid.NewString,
	}
}

// Create stores the opportunity, then notifies matching students. Fan-out
// and event failures are logged and never fail the creation.
func (u *Opportunity) Create(ctx context.Context, caller user.Actor, in CreateOpportunityInput) (opportunity.Opportunity, error) {
	if !caller.IsCompany() {
		return opportunity.Opportunity{}, ErrForbidden
	}

	in = normalizeCreateInput(in)
	if in.CompanyID == "" {
		in.CompanyID = caller.ID
	}
	if in.CompanyID != caller.ID {
		return opportunity.Opportunity{}, ErrForbidden
	}
	if err := u.validate.Struct(in); err != nil {
		return opportunity.Opportunity{}, toValidationError(err)
	}

	o := opportunity.Opportunity{
		ID:             u.newID(),
		CompanyID:      in.CompanyID,
		Title:          in.Title,
		Type:           in.Type,
		RequiredSkills: in.RequiredSkills,
		Description:    in.Description,
		Location:       in.Location,
		Duration:       in.Duration,
		Compensation:   in.Compensation,
		CreatedAt:      opportunity.NewTimestamp(u.now()),
	}

	if err := u.opportunities.Create(ctx, o); err != nil {
		return opportunity.Opportunity{}, retrievalError("create opportunity", err)
	}

	if u.fanout != nil {
		n, err := u.fanout.NotifyMatches(ctx, o)
		if err != nil {
			u.logger.Warn("opportunity fan-out failed",
				zap.String("opportunity_id", o.ID),
				zap.Int("students_notified", n),
				zap.Error(err),
			)
		}
	}

	if u.events != nil {
		if err := u.events.PublishOpportunityCreated(ctx, o); err != nil {
			u.logger.Warn("publish opportunity created failed",
				zap.String("opportunity_id", o.ID),
				zap.Error(err),
			)
		}
	}

	return o, nil
}

func normalizeCreateInput(in CreateOpportunityInput) CreateOpportunityInput {
	in.Title = strings.TrimSpace(in.Title)
	in.Type = strings.TrimSpace(in.Type)
	in.Description = strings.TrimSpace(in.Description)
	in.Location = strings.TrimSpace(in.Location)
	in.Duration = strings.TrimSpace(in.Duration)
	in.Compensation = strings.TrimSpace(in.Compensation)
	in.CompanyID = strings.TrimSpace(in.CompanyID)

	skills := make([]string, 0, len(in.RequiredSkills))
	for _, s := range in.RequiredSkills {
		skills = append(skills, strings.TrimSpace(s))
	}
	in.RequiredSkills = skills
	return in
}

func toValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return ErrInvalidInput
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[validationFieldName(fe.Namespace())] = fe.Tag()
	}
	return &ValidationError{Fields: fields}
}

var validationFieldNames = map[string]string{
	"Title":          "title",
	"Type":           "type",
	"RequiredSkills": "required_skills",
	"Description":    "description",
	"Location":       "location",
	"Duration":       "duration",
	"Compensation":   "compensation",
}

// validationFieldName turns "CreateOpportunityInput.RequiredSkills[1]" into
// "required_skills[1]".
func validationFieldName(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		ns = ns[i+1:]
	}
	suffix := ""
	if i := strings.Index(ns, "["); i >= 0 {
		ns, suffix = ns[:i], ns[i:]
	}
	if name, ok := validationFieldNames[ns]; ok {
		return name + suffix
	}
	return strings.ToLower(ns) + suffix
}
