package usecase

import (
	"context"
	"errors"
	"sort"
	"time"

	"skill-match/internal/domain/opportunity"
	"skill-match/internal/domain/user"
	"skill-match/internal/repository"

	"go.uber.org/zap"
)

const (
	DefaultRecentWindowDays = 30
	DefaultRecentLimit      = 20
)

type OpportunityFeedUsecase interface {
	Recent(ctx context.Context, windowDays, limit int) ([]opportunity.Enriched, error)
	Detail(ctx context.Context, opportunityID string) (opportunity.Enriched, error)
	ByCompany(ctx context.Context, caller user.Actor) ([]opportunity.Enriched, error)
}

type OpportunityFeed struct {
	opportunities repository.OpportunityRepository
	companies     repository.CompanyRepository
	logger        *zap.Logger
	now           func() time.Time
}

func NewOpportunityFeedUsecase(opportunities repository.OpportunityRepository, companies repository.CompanyRepository, logger *zap.Logger) *OpportunityFeed {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OpportunityFeed{opportunities: opportunities, companies: companies, logger: logger, now: time.Now}
}

type datedOpportunity struct {
	opportunity.Opportunity
	at     time.Time
	parsed bool
}

// Recent keeps opportunities created within the last windowDays days, newest
// first, at most limit of them. An opportunity whose creation time cannot be
// parsed is kept and ordered after every dated one.
func (u *OpportunityFeed) Recent(ctx context.Context, windowDays, limit int) ([]opportunity.Enriched, error) {
	if windowDays <= 0 {
		windowDays = DefaultRecentWindowDays
	}
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	opps, err := u.opportunities.List(ctx)
	if err != nil {
		return nil, retrievalError("list opportunities", err)
	}

	cutoff := u.now().Add(-time.Duration(windowDays) * 24 * time.Hour)

	selected := make([]datedOpportunity, 0, len(opps))
	for _, o := range opps {
		if o.CreatedAt.IsZero() {
			continue
		}
		at, err := o.CreatedAt.Time()
		if err != nil {
			u.logger.Debug("unparseable created_at, keeping opportunity",
				zap.String("opportunity_id", o.ID),
				zap.String("created_at", o.CreatedAt.String()),
			)
			selected = append(selected, datedOpportunity{Opportunity: o})
			continue
		}
		if at.Before(cutoff) {
			continue
		}
		selected = append(selected, datedOpportunity{Opportunity: o, at: at, parsed: true})
	}

	sortNewestFirst(selected)
	if len(selected) > limit {
		selected = selected[:limit]
	}

	return u.enrichAll(ctx, selected)
}

func (u *OpportunityFeed) Detail(ctx context.Context, opportunityID string) (opportunity.Enriched, error) {
	if opportunityID == "" {
		return opportunity.Enriched{}, ErrOpportunityNotFound
	}

	o, err := u.opportunities.GetByID(ctx, opportunityID)
	if err != nil {
		if errors.Is(err, repository.ErrOpportunityNotFound) || errors.Is(err, repository.ErrMalformedDocument) {
			return opportunity.Enriched{}, ErrOpportunityNotFound
		}
		return opportunity.Enriched{}, retrievalError("get opportunity", err)
	}

	company, err := u.company(ctx, o.CompanyID, nil)
	if err != nil {
		return opportunity.Enriched{}, err
	}
	return opportunity.Enriched{Opportunity: o, CompanyName: company.DisplayName(), Company: company}, nil
}

func (u *OpportunityFeed) ByCompany(ctx context.Context, caller user.Actor) ([]opportunity.Enriched, error) {
	if !caller.IsCompany() {
		return nil, ErrForbidden
	}

	opps, err := u.opportunities.List(ctx)
	if err != nil {
		return nil, retrievalError("list opportunities", err)
	}

	own := make([]datedOpportunity, 0)
	for _, o := range opps {
		if o.CompanyID != caller.ID {
			continue
		}
		d := datedOpportunity{Opportunity: o}
		if at, err := o.CreatedAt.Time(); err == nil {
			d.at, d.parsed = at, true
		}
		own = append(own, d)
	}

	sortNewestFirst(own)
	return u.enrichAll(ctx, own)
}

func (u *OpportunityFeed) enrichAll(ctx context.Context, items []datedOpportunity) ([]opportunity.Enriched, error) {
	memo := map[string]*opportunity.Company{}
	out := make([]opportunity.Enriched, 0, len(items))
	for _, it := range items {
		company, err := u.company(ctx, it.CompanyID, memo)
		if err != nil {
			return nil, err
		}
		out = append(out, opportunity.Enriched{Opportunity: it.Opportunity, CompanyName: company.DisplayName()})
	}
	return out, nil
}

// company returns nil for a missing reference or an absent or unreadable
// company document. memo only lives for one call.
func (u *OpportunityFeed) company(ctx context.Context, id string, memo map[string]*opportunity.Company) (*opportunity.Company, error) {
	if id == "" {
		return nil, nil
	}
	if c, ok := memo[id]; ok {
		return c, nil
	}

	var out *opportunity.Company
	c, err := u.companies.GetByID(ctx, id)
	switch {
	case err == nil:
		out = &c
	case errors.Is(err, repository.ErrCompanyNotFound), errors.Is(err, repository.ErrMalformedDocument):
		out = nil
	default:
		return nil, retrievalError("get company", err)
	}

	if memo != nil {
		memo[id] = out
	}
	return out, nil
}

func sortNewestFirst(items []datedOpportunity) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.parsed != b.parsed {
			return a.parsed
		}
		if !a.parsed {
			return false
		}
		return a.at.After(b.at)
	})
}
