package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"skill-match/internal/domain/opportunity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	subject string
	data    []byte
	err     error
}

func (f *fakeConn) Publish(subject string, data []byte) error {
	f.subject, f.data = subject, data
	return f.err
}

func TestSubject(t *testing.T) {
	assert.Equal(t, "skillmatch.opportunity.created", Subject("skillmatch", "opportunity.created"))
	assert.Equal(t, "a.b.opportunity.created", Subject(" a.b. ", "opportunity.created"))
	assert.Equal(t, "opportunity.created", Subject("", "opportunity.created"))
}

func TestPublisher_PublishOpportunityCreated(t *testing.T) {
	conn := &fakeConn{}
	p := newPublisher(conn, "skillmatch", nil)
	p.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }

	err := p.PublishOpportunityCreated(context.Background(), opportunity.Opportunity{
		ID:             "o1",
		CompanyID:      "acme",
		Title:          "Data intern",
		RequiredSkills: []string{"python"},
		CreatedAt:      opportunity.NewTimestamp(time.Date(2024, 5, 1, 11, 0, 0, 0, time.UTC)),
	})
	require.NoError(t, err)
	assert.Equal(t, "skillmatch.opportunity.created", conn.subject)

	var evt map[string]any
	require.NoError(t, json.Unmarshal(conn.data, &evt))
	assert.Equal(t, "o1", evt["id"])
	assert.Equal(t, "acme", evt["company_id"])
	assert.Equal(t, "2024-05-01T11:00:00Z", evt["created_at"])
	assert.Equal(t, "2024-05-01T12:00:00Z", evt["published_at"])
}

func TestPublisher_PublishError(t *testing.T) {
	conn := &fakeConn{err: errors.New("nats: connection closed")}
	p := newPublisher(conn, "", nil)
	err := p.PublishOpportunityCreated(context.Background(), opportunity.Opportunity{ID: "o1"})
	assert.ErrorIs(t, err, conn.err)
}

func TestNop(t *testing.T) {
	assert.NoError(t, Nop{}.PublishOpportunityCreated(context.Background(), opportunity.Opportunity{}))
}
