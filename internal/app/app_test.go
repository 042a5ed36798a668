package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"skill-match/internal/config"
	"skill-match/internal/docstore"
	"skill-match/internal/domain/opportunity"
	"skill-match/internal/domain/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type semanticResponse struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	t     *testing.T
	app   *App
	store docstore.Store
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	cfg := config.Config{
		App:   config.AppConfig{AppName: "skill-match-test", Environment: "test", HTTPPort: "0"},
		Store: config.StoreConfig{Backend: config.StoreBackendMemory},
		JWT:   config.JWTConfig{Secret: "test-secret", Issuer: "skill-match"},
	}
	c, err := NewContainer(context.Background(), cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	a := New(c)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	a.RunHub(ctx)

	return &testServer{t: t, app: a, store: c.Store}
}

func (s *testServer) token(actor user.Actor) string {
	s.t.Helper()
	tok, err := s.app.JWT.GenerateAccessToken(actor)
	require.NoError(s.t, err)
	return tok
}

func (s *testServer) do(method, path string, actor *user.Actor, body any) (int, semanticResponse) {
	s.t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(s.t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if actor != nil {
		req.Header.Set("Authorization", "Bearer "+s.token(*actor))
	}

	resp, err := s.app.Fiber.Test(req)
	require.NoError(s.t, err)
	defer func() { _ = resp.Body.Close() }()

	var out semanticResponse
	raw, err := io.ReadAll(resp.Body)
	require.NoError(s.t, err)
	require.NoError(s.t, json.Unmarshal(raw, &out), string(raw))
	return resp.StatusCode, out
}

func (s *testServer) seed(collection, id string, doc any) {
	s.t.Helper()
	require.NoError(s.t, s.store.Set(context.Background(), collection, id, doc))
}

var (
	acme    = user.Actor{ID: "acme", Type: user.TypeCompany}
	studA   = user.Actor{ID: "student-a", Type: user.TypeStudent}
	studB   = user.Actor{ID: "student-b", Type: user.TypeStudent}
	someone = user.Actor{ID: "pro-1", Type: user.TypeProfessional}
)

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	status, body := s.do(http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body.Message)
}

func TestAPI_RequiresToken(t *testing.T) {
	s := newTestServer(t)
	status, body := s.do(http.MethodGet, "/api/v1/opportunities/recent", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, http.StatusUnauthorized, body.Status)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/opportunities/recent", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	resp, err := s.app.Fiber.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAPI_CreateRecommendNotify(t *testing.T) {
	s := newTestServer(t)
	s.seed(docstore.CollectionCompanies, "acme", map[string]any{"name": "Acme Corp"})
	s.seed(docstore.CollectionStudents, "student-a", map[string]any{"validated_skills": map[string]string{"python": "expert"}})
	s.seed(docstore.CollectionStudents, "student-b", map[string]any{"validated_skills": map[string]string{"python": "débutant"}})
	s.seed(docstore.CollectionStudents, "student-c", map[string]any{"validated_skills": map[string]string{"java": "expert"}})

	status, body := s.do(http.MethodPost, "/api/v1/matching/opportunities", &acme, map[string]any{
		"title":           "Data intern",
		"type":            "internship",
		"required_skills": []string{"python", "sql"},
		"location":        "Paris",
	})
	require.Equal(t, http.StatusCreated, status, string(body.Data))

	var created struct {
		ID        string `json:"id"`
		CompanyID string `json:"company_id"`
		CreatedAt string `json:"created_at"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &created))
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "acme", created.CompanyID)
	_, err := time.Parse(time.RFC3339Nano, created.CreatedAt)
	assert.NoError(t, err)

	var recs []struct {
		ID         string  `json:"id"`
		MatchScore float64 `json:"match_score"`
	}

	status, body = s.do(http.MethodGet, "/api/v1/matching/recommendations", &studA, nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(body.Data, &recs))
	require.Len(t, recs, 1)
	assert.Equal(t, created.ID, recs[0].ID)
	assert.InDelta(t, 0.5, recs[0].MatchScore, 1e-9)

	status, body = s.do(http.MethodGet, "/api/v1/matching/recommendations", &studB, nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(body.Data, &recs))
	assert.Empty(t, recs)

	var notes []struct {
		OpportunityID string `json:"opportunity_id"`
		Read          bool   `json:"read"`
	}
	status, body = s.do(http.MethodGet, "/api/v1/notifications", &studB, nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(body.Data, &notes))
	require.Len(t, notes, 1)
	assert.Equal(t, created.ID, notes[0].OpportunityID)
	assert.False(t, notes[0].Read)

	docs, err := s.store.List(context.Background(), docstore.CollectionNotifications)
	require.NoError(t, err)
	assert.Len(t, docs, 2)

	var detail struct {
		ID          string `json:"id"`
		CompanyName string `json:"company_name"`
		Company     *struct {
			Name string `json:"name"`
		} `json:"company"`
	}
	status, body = s.do(http.MethodGet, "/api/v1/opportunities/"+created.ID, &someone, nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(body.Data, &detail))
	assert.Equal(t, "Acme Corp", detail.CompanyName)
	require.NotNil(t, detail.Company)

	var match struct {
		MatchScore    float64  `json:"match_score"`
		MissingSkills []string `json:"missing_skills"`
	}
	status, body = s.do(http.MethodGet, "/api/v1/opportunities/"+created.ID+"/match", &studA, nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(body.Data, &match))
	assert.InDelta(t, 0.5, match.MatchScore, 1e-9)
	assert.Equal(t, []string{"sql"}, match.MissingSkills)

	var mine []struct {
		ID string `json:"id"`
	}
	status, body = s.do(http.MethodGet, "/api/v1/companies/me/opportunities", &acme, nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(body.Data, &mine))
	require.Len(t, mine, 1)
	assert.Equal(t, created.ID, mine[0].ID)
}

func TestAPI_Forbidden(t *testing.T) {
	s := newTestServer(t)

	cases := []struct {
		method string
		path   string
		actor  user.Actor
		body   any
	}{
		{http.MethodPost, "/api/v1/matching/opportunities", studA, map[string]any{"title": "x", "type": "y"}},
		{http.MethodPost, "/api/v1/matching/opportunities", someone, map[string]any{"title": "x", "type": "y"}},
		{http.MethodGet, "/api/v1/matching/recommendations", acme, nil},
		{http.MethodGet, "/api/v1/notifications", acme, nil},
		{http.MethodGet, "/api/v1/companies/me/opportunities", studA, nil},
	}
	for _, tc := range cases {
		actor := tc.actor
		status, body := s.do(tc.method, tc.path, &actor, tc.body)
		assert.Equal(t, http.StatusForbidden, status, tc.method+" "+tc.path)
		assert.Equal(t, http.StatusForbidden, body.Status)
	}

	docs, err := s.store.List(context.Background(), docstore.CollectionOpportunities)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestAPI_CreateValidation(t *testing.T) {
	s := newTestServer(t)
	status, body := s.do(http.MethodPost, "/api/v1/matching/opportunities", &acme, map[string]any{
		"type":            "internship",
		"required_skills": []string{"go"},
	})
	assert.Equal(t, http.StatusBadRequest, status)

	var fields map[string]string
	require.NoError(t, json.Unmarshal(body.Data, &fields))
	assert.Equal(t, "required", fields["title"])
}

func TestAPI_NotFound(t *testing.T) {
	s := newTestServer(t)
	s.seed(docstore.CollectionStudents, "student-a", map[string]any{"validated_skills": map[string]string{}})

	status, _ := s.do(http.MethodGet, "/api/v1/opportunities/nope", &studA, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = s.do(http.MethodGet, "/api/v1/opportunities/nope/match", &studA, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestAPI_RecentFeed(t *testing.T) {
	s := newTestServer(t)
	now := time.Now()
	s.seed(docstore.CollectionOpportunities, "old", map[string]any{"title": "old", "created_at": opportunity.NewTimestamp(now.AddDate(0, 0, -31))})
	s.seed(docstore.CollectionOpportunities, "new", map[string]any{"title": "new", "company_id": "ghost", "created_at": opportunity.NewTimestamp(now.AddDate(0, 0, -1))})
	s.seed(docstore.CollectionOpportunities, "odd", map[string]any{"title": "odd", "created_at": "sometime"})

	var items []struct {
		ID          string `json:"id"`
		CompanyName string `json:"company_name"`
		CreatedAt   any    `json:"created_at"`
	}
	status, body := s.do(http.MethodGet, "/api/v1/opportunities/recent", &studA, nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(body.Data, &items))
	require.Len(t, items, 2)
	assert.Equal(t, "new", items[0].ID)
	assert.Equal(t, opportunity.UnknownCompanyName, items[0].CompanyName)
	assert.Equal(t, "odd", items[1].ID)
	assert.Equal(t, "sometime", items[1].CreatedAt)

	status, body = s.do(http.MethodGet, "/api/v1/opportunities/recent?limit=1", &studA, nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(body.Data, &items))
	require.Len(t, items, 1)

	status, _ = s.do(http.MethodGet, "/api/v1/opportunities/recent?limit=abc", &studA, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestListenAddr(t *testing.T) {
	addr, err := ListenAddr("8080")
	require.NoError(t, err)
	assert.Equal(t, ":8080", addr)

	addr, err = ListenAddr(":9090")
	require.NoError(t, err)
	assert.Equal(t, ":9090", addr)

	_, err = ListenAddr(" ")
	assert.Error(t, err)
}
