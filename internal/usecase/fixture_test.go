package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"skill-match/internal/docstore"
	"skill-match/internal/domain/notification"
	"skill-match/internal/repository"

	"github.com/stretchr/testify/require"
)

var errStoreDown = errors.New("store down")

type fixture struct {
	store         docstore.Store
	opportunities *repository.DocOpportunityRepository
	students      *repository.DocStudentRepository
	companies     *repository.DocCompanyRepository
	notifications *repository.DocNotificationRepository
}

func newFixture(store docstore.Store) fixture {
	return fixture{
		store:         store,
		opportunities: repository.NewDocOpportunityRepository(store, nil),
		students:      repository.NewDocStudentRepository(store, nil),
		companies:     repository.NewDocCompanyRepository(store),
		notifications: repository.NewDocNotificationRepository(store, nil),
	}
}

func (f fixture) put(t *testing.T, collection, id string, doc any) {
	t.Helper()
	require.NoError(t, f.store.Set(context.Background(), collection, id, doc))
}

func (f fixture) putRaw(t *testing.T, collection, id, raw string) {
	t.Helper()
	f.put(t, collection, id, json.RawMessage(raw))
}

func (f fixture) student(t *testing.T, id string, skills map[string]string) {
	t.Helper()
	f.put(t, docstore.CollectionStudents, id, map[string]any{
		"first_name":       id,
		"validated_skills": skills,
	})
}

func (f fixture) opportunity(t *testing.T, id, companyID string, createdAt any, skills ...string) {
	t.Helper()
	f.put(t, docstore.CollectionOpportunities, id, map[string]any{
		"company_id":      companyID,
		"title":           "Opportunity " + id,
		"type":            "internship",
		"required_skills": skills,
		"created_at":      createdAt,
	})
}

func (f fixture) notificationCount(t *testing.T) int {
	t.Helper()
	docs, err := f.store.List(context.Background(), docstore.CollectionNotifications)
	require.NoError(t, err)
	return len(docs)
}

// flakyStore fails operations on the listed collections, and fails writes
// once failAfterWrites successful writes went through.
type flakyStore struct {
	docstore.Store
	failList        map[string]bool
	failAfterWrites int
	writes          int
}

func (s *flakyStore) List(ctx context.Context, collection string) ([]docstore.Document, error) {
	if s.failList[collection] {
		return nil, errStoreDown
	}
	return s.Store.List(ctx, collection)
}

func (s *flakyStore) Set(ctx context.Context, collection, id string, value any) error {
	if s.failAfterWrites > 0 && s.writes >= s.failAfterWrites {
		return errStoreDown
	}
	s.writes++
	return s.Store.Set(ctx, collection, id, value)
}

type recordedPush struct {
	studentID string
	n         notification.Notification
}

type recordingPusher struct {
	mu     sync.Mutex
	pushes []recordedPush
}

func (p *recordingPusher) PushToStudent(studentID string, n notification.Notification) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pushes = append(p.pushes, recordedPush{studentID: studentID, n: n})
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func sequentialIDs(prefix string) func() string {
	var n int
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}
