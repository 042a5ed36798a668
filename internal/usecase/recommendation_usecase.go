package usecase

import (
	"context"
	"errors"
	"sort"

	"skill-match/internal/domain/matching"
	"skill-match/internal/domain/opportunity"
	"skill-match/internal/domain/student"
	"skill-match/internal/domain/user"
	"skill-match/internal/repository"
)

// MatchThreshold is the score an opportunity must exceed to be recommended.
const MatchThreshold = 0.3

type ScoredOpportunity struct {
	Opportunity opportunity.Opportunity
	MatchScore  float64
}

type OpportunityMatch struct {
	Opportunity opportunity.Opportunity
	Result      matching.Result
}

type RecommendationUsecase interface {
	Recommend(ctx context.Context, caller user.Actor) ([]ScoredOpportunity, error)
	MatchOne(ctx context.Context, caller user.Actor, opportunityID string) (OpportunityMatch, error)
}

type Recommendation struct {
	opportunities repository.OpportunityRepository
	students      repository.StudentRepository
}

func NewRecommendationUsecase(opportunities repository.OpportunityRepository, students repository.StudentRepository) *Recommendation {
	return &Recommendation{opportunities: opportunities, students: students}
}

func (u *Recommendation) Recommend(ctx context.Context, caller user.Actor) ([]ScoredOpportunity, error) {
	if !caller.IsStudent() {
		return nil, ErrForbidden
	}

	st, err := u.loadStudent(ctx, caller.ID)
	if err != nil {
		return nil, err
	}

	opps, err := u.opportunities.List(ctx)
	if err != nil {
		return nil, retrievalError("list opportunities", err)
	}

	out := make([]ScoredOpportunity, 0, len(opps))
	for _, o := range opps {
		score := matching.Score(st.ValidatedSkills, o.RequiredSkills)
		if score <= MatchThreshold {
			continue
		}
		out = append(out, ScoredOpportunity{Opportunity: o, MatchScore: score})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MatchScore > out[j].MatchScore
	})

	return out, nil
}

func (u *Recommendation) MatchOne(ctx context.Context, caller user.Actor, opportunityID string) (OpportunityMatch, error) {
	if !caller.IsStudent() {
		return OpportunityMatch{}, ErrForbidden
	}
	if opportunityID == "" {
		return OpportunityMatch{}, ErrOpportunityNotFound
	}

	o, err := u.opportunities.GetByID(ctx, opportunityID)
	if err != nil {
		if errors.Is(err, repository.ErrOpportunityNotFound) || errors.Is(err, repository.ErrMalformedDocument) {
			return OpportunityMatch{}, ErrOpportunityNotFound
		}
		return OpportunityMatch{}, retrievalError("get opportunity", err)
	}

	st, err := u.loadStudent(ctx, caller.ID)
	if err != nil {
		return OpportunityMatch{}, err
	}

	return OpportunityMatch{
		Opportunity: o,
		Result:      matching.Calculate(st.ValidatedSkills, o.RequiredSkills),
	}, nil
}

// An unreadable student document is treated as a student with no validated
// skills.
func (u *Recommendation) loadStudent(ctx context.Context, id string) (student.Student, error) {
	st, err := u.students.GetByID(ctx, id)
	switch {
	case err == nil:
		return st, nil
	case errors.Is(err, repository.ErrStudentNotFound):
		return student.Student{}, ErrStudentNotFound
	case errors.Is(err, repository.ErrMalformedDocument):
		return student.Student{ID: id, ValidatedSkills: map[string]string{}}, nil
	default:
		return student.Student{}, retrievalError("get student", err)
	}
}
