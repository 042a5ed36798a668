package usecase

import (
	"context"
	"errors"
	"testing"

	"skill-match/internal/docstore"
	"skill-match/internal/domain/opportunity"
	"skill-match/internal/domain/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	published []opportunity.Opportunity
	err       error
}

func (p *recordingPublisher) PublishOpportunityCreated(_ context.Context, o opportunity.Opportunity) error {
	p.published = append(p.published, o)
	return p.err
}

func newOpportunityUsecase(f fixture, events OpportunityEventPublisher) *Opportunity {
	uc := NewOpportunityUsecase(f.opportunities, newNotifications(f, nil), events, nil)
	uc.now = fixedClock(feedNow)
	uc.newID = sequentialIDs("opp")
	return uc
}

func validInput() CreateOpportunityInput {
	return CreateOpportunityInput{
		Title:          "  Backend intern ",
		Type:           "internship",
		RequiredSkills: []string{"go", " sql"},
		Location:       "Paris",
	}
}

func TestOpportunityCreate_StoresAndFansOut(t *testing.T) {
	f := newFixture(docstore.NewMemory())
	f.student(t, "s1", map[string]string{"go": "expert"})
	f.student(t, "s2", map[string]string{"sql": "beginner"})
	f.student(t, "s3", map[string]string{"java": "expert"})

	events := &recordingPublisher{}
	uc := newOpportunityUsecase(f, events)

	got, err := uc.Create(context.Background(), companyAcme, validInput())
	require.NoError(t, err)
	assert.Equal(t, "opp-1", got.ID)
	assert.Equal(t, "acme", got.CompanyID)
	assert.Equal(t, "Backend intern", got.Title)
	assert.Equal(t, []string{"go", "sql"}, got.RequiredSkills)
	ts, err := got.CreatedAt.Time()
	require.NoError(t, err)
	assert.True(t, feedNow.Equal(ts))

	stored, err := f.opportunities.GetByID(context.Background(), "opp-1")
	require.NoError(t, err)
	assert.Equal(t, got.Title, stored.Title)

	assert.Equal(t, 2, f.notificationCount(t))
	require.Len(t, events.published, 1)
	assert.Equal(t, "opp-1", events.published[0].ID)
}

func TestOpportunityCreate_FanoutFailureDoesNotFailCreate(t *testing.T) {
	store := &flakyStore{Store: docstore.NewMemory(), failList: map[string]bool{docstore.CollectionStudents: true}}
	f := newFixture(store)
	uc := newOpportunityUsecase(f, &recordingPublisher{err: errors.New("nats down")})

	got, err := uc.Create(context.Background(), companyAcme, validInput())
	require.NoError(t, err)

	_, err = f.opportunities.GetByID(context.Background(), got.ID)
	require.NoError(t, err)
	assert.Zero(t, f.notificationCount(t))
}

func TestOpportunityCreate_StoreFailure(t *testing.T) {
	broken := &flakyStore{Store: docstore.NewMemory(), failAfterWrites: 1, writes: 1}
	uc := newOpportunityUsecase(newFixture(broken), nil)

	_, err := uc.Create(context.Background(), companyAcme, validInput())
	assert.ErrorIs(t, err, ErrRetrieval)
	assert.ErrorIs(t, err, errStoreDown)
}

func TestOpportunityCreate_RejectsNonCompany(t *testing.T) {
	f := newFixture(docstore.NewMemory())
	uc := newOpportunityUsecase(f, nil)

	for _, caller := range []user.Actor{
		{ID: "alice", Type: user.TypeStudent},
		{ID: "pro", Type: user.TypeProfessional},
		{Type: user.TypeCompany},
	} {
		_, err := uc.Create(context.Background(), caller, validInput())
		assert.ErrorIs(t, err, ErrForbidden)
	}

	docs, err := f.store.List(context.Background(), docstore.CollectionOpportunities)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestOpportunityCreate_RejectsForeignCompanyID(t *testing.T) {
	uc := newOpportunityUsecase(newFixture(docstore.NewMemory()), nil)
	in := validInput()
	in.CompanyID = "globex"
	_, err := uc.Create(context.Background(), companyAcme, in)
	assert.ErrorIs(t, err, ErrForbidden)

	in.CompanyID = "acme"
	_, err = uc.Create(context.Background(), companyAcme, in)
	assert.NoError(t, err)
}

func TestOpportunityCreate_Validation(t *testing.T) {
	uc := newOpportunityUsecase(newFixture(docstore.NewMemory()), nil)

	in := validInput()
	in.Title = "   "
	in.RequiredSkills = []string{"go", ""}
	_, err := uc.Create(context.Background(), companyAcme, in)
	require.ErrorIs(t, err, ErrInvalidInput)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "required", verr.Fields["title"])
	assert.Equal(t, "required", verr.Fields["required_skills[1]"])
}
