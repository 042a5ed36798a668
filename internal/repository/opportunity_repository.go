package repository

import (
	"context"
	"errors"
	"fmt"

	"skill-match/internal/docstore"
	"skill-match/internal/domain/opportunity"

	"go.uber.org/zap"
)

var ErrOpportunityNotFound = errors.New("opportunity not found")

type OpportunityRepository interface {
	Create(ctx context.Context, o opportunity.Opportunity) error
	GetByID(ctx context.Context, id string) (opportunity.Opportunity, error)
	List(ctx context.Context) ([]opportunity.Opportunity, error)
}

type opportunityDoc struct {
	ID             text                  `json:"id"`
	CompanyID      text                  `json:"company_id"`
	Title          text                  `json:"title"`
	Type           text                  `json:"type"`
	RequiredSkills stringList            `json:"required_skills"`
	Description    text                  `json:"description"`
	Location       text                  `json:"location"`
	Duration       text                  `json:"duration"`
	Compensation   text                  `json:"compensation"`
	CreatedAt      opportunity.Timestamp `json:"created_at"`
}

type DocOpportunityRepository struct {
	store  docstore.Store
	logger *zap.Logger
}

func NewDocOpportunityRepository(store docstore.Store, logger *zap.Logger) *DocOpportunityRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DocOpportunityRepository{store: store, logger: logger}
}

func (r *DocOpportunityRepository) Create(ctx context.Context, o opportunity.Opportunity) error {
	doc := toOpportunityDoc(o)
	if err := r.store.Set(ctx, docstore.CollectionOpportunities, o.ID, doc); err != nil {
		return fmt.Errorf("write opportunity %s: %w", o.ID, err)
	}
	return nil
}

func (r *DocOpportunityRepository) GetByID(ctx context.Context, id string) (opportunity.Opportunity, error) {
	b, ok, err := r.store.Get(ctx, docstore.CollectionOpportunities, id)
	if err != nil {
		return opportunity.Opportunity{}, fmt.Errorf("read opportunity %s: %w", id, err)
	}
	if !ok {
		return opportunity.Opportunity{}, ErrOpportunityNotFound
	}
	var doc opportunityDoc
	if err := decodeObject(b, &doc); err != nil {
		return opportunity.Opportunity{}, err
	}
	return doc.toDomain(id), nil
}

func (r *DocOpportunityRepository) List(ctx context.Context) ([]opportunity.Opportunity, error) {
	docs, err := r.store.List(ctx, docstore.CollectionOpportunities)
	if err != nil {
		return nil, fmt.Errorf("list opportunities: %w", err)
	}

	out := make([]opportunity.Opportunity, 0, len(docs))
	for _, d := range docs {
		var doc opportunityDoc
		if err := decodeObject(d.Data, &doc); err != nil {
			r.logger.Warn("skipping malformed opportunity", zap.String("opportunity_id", d.ID), zap.Error(err))
			continue
		}
		out = append(out, doc.toDomain(d.ID))
	}
	return out, nil
}

// The store key is authoritative over an embedded id field.
func (d opportunityDoc) toDomain(key string) opportunity.Opportunity {
	id := key
	if id == "" {
		id = string(d.ID)
	}
	skills := []string(d.RequiredSkills)
	if skills == nil {
		skills = []string{}
	}
	return opportunity.Opportunity{
		ID:             id,
		CompanyID:      string(d.CompanyID),
		Title:          string(d.Title),
		Type:           string(d.Type),
		RequiredSkills: skills,
		Description:    string(d.Description),
		Location:       string(d.Location),
		Duration:       string(d.Duration),
		Compensation:   string(d.Compensation),
		CreatedAt:      d.CreatedAt,
	}
}

func toOpportunityDoc(o opportunity.Opportunity) opportunityDoc {
	skills := o.RequiredSkills
	if skills == nil {
		skills = []string{}
	}
	return opportunityDoc{
		ID:             text(o.ID),
		CompanyID:      text(o.CompanyID),
		Title:          text(o.Title),
		Type:           text(o.Type),
		RequiredSkills: stringList(skills),
		Description:    text(o.Description),
		Location:       text(o.Location),
		Duration:       text(o.Duration),
		Compensation:   text(o.Compensation),
		CreatedAt:      o.CreatedAt,
	}
}
