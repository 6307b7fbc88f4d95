package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/Dwardyvennik/Backend-final-project-fittrakker/internal/access"
	"github.com/Dwardyvennik/Backend-final-project-fittrakker/internal/auth"
	"github.com/Dwardyvennik/Backend-final-project-fittrakker/internal/domain"
	"github.com/Dwardyvennik/Backend-final-project-fittrakker/internal/persistence/memory"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var (
	fixedNow   = time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	authConfig = auth.Config{Secret: "handler-secret", Issuer: "fittracker.test"}

	alice = access.Caller{ID: "u-alice", Username: "alice", Role: access.RoleUser}
	bob   = access.Caller{ID: "u-bob", Username: "bob", Role: access.RoleUser}
	admin = access.Caller{ID: "u-admin", Username: "root", Role: access.RoleAdmin}
)

type testServer struct {
	t       *testing.T
	handler http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	store := memory.NewStore()
	service := domain.NewService(store, store, domain.WithClock(func() time.Time { return fixedNow }))

	router := mux.NewRouter()
	NewHandler(service).RegisterRoutes(router)
	return &testServer{t: t, handler: auth.NewMiddleware(authConfig).Wrap(router)}
}

func (s *testServer) do(caller *access.Caller, method, path string, body any) *httptest.ResponseRecorder {
	s.t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if caller != nil {
		token, err := auth.Issue(authConfig, *caller, time.Hour, time.Now())
		require.NoError(s.t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	s.handler.ServeHTTP(rr, req)
	return rr
}

func (s *testServer) create(caller access.Caller, payload map[string]any) string {
	s.t.Helper()
	rr := s.do(&caller, http.MethodPost, "/workouts", payload)
	require.Equal(s.t, http.StatusCreated, rr.Code, rr.Body.String())
	var resp CreatedResponse
	require.NoError(s.t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(s.t, "Workout created", resp.Message)
	return resp.InsertedID
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), rr.Body.String())
	return out
}

func TestCreateDoneThenPlannedFlow(t *testing.T) {
	srv := newTestServer(t)
	id := srv.create(alice, map[string]any{"title": "Run", "type": "cardio", "duration": "30"})

	rr := srv.do(&alice, http.MethodPatch, "/workouts/"+id+"/status", map[string]string{"action": "done"})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.JSONEq(t, `{"message":"Workout marked as done"}`, rr.Body.String())

	got := decode[map[string]any](t, srv.do(&alice, http.MethodGet, "/workouts/"+id, nil))
	assert.Equal(t, "done", got["status"])
	assert.NotNil(t, got["completedAt"])
	assert.Equal(t, true, got["canManage"])
	assert.Equal(t, float64(30), got["duration"])

	rr = srv.do(&alice, http.MethodPatch, "/workouts/"+id+"/status", map[string]string{"action": "PLANNED"})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	got = decode[map[string]any](t, srv.do(&alice, http.MethodGet, "/workouts/"+id, nil))
	assert.Equal(t, "planned", got["status"])
	assert.Nil(t, got["completedAt"])
	assert.NotNil(t, got["confirmationRequestedAt"])
}

func TestNonOwnerForbiddenAdminAllowed(t *testing.T) {
	srv := newTestServer(t)
	id := srv.create(alice, map[string]any{"title": "Yoga", "type": "yoga", "duration": 45})

	rr := srv.do(&bob, http.MethodGet, "/workouts/"+id, nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Equal(t, "forbidden", decode[map[string]string](t, rr)["type"])

	rr = srv.do(&bob, http.MethodDelete, "/workouts/"+id, nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = srv.do(&admin, http.MethodGet, "/workouts/"+id, nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = srv.do(&admin, http.MethodDelete, "/workouts/"+id, nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"message":"Workout deleted"}`, rr.Body.String())

	rr = srv.do(&alice, http.MethodGet, "/workouts/"+id, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestUppercaseAndURNIDsReachTheRecord(t *testing.T) {
	srv := newTestServer(t)
	id := srv.create(alice, map[string]any{"title": "Row", "type": "cardio", "duration": 20})

	rr := srv.do(&alice, http.MethodGet, "/workouts/"+strings.ToUpper(id), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, id, decode[map[string]any](t, rr)["id"])

	rr = srv.do(&alice, http.MethodPatch, "/workouts/urn:uuid:"+id+"/status", map[string]string{"action": "done"})
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = srv.do(&alice, http.MethodDelete, "/workouts/"+strings.ToUpper(id), nil)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestErrorPrecedence(t *testing.T) {
	srv := newTestServer(t)

	rr := srv.do(nil, http.MethodPut, "/workouts/not-an-id", `{`)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = srv.do(&alice, http.MethodPut, "/workouts/not-an-id", `{`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "invalid id", decode[map[string]string](t, rr)["detail"])

	missing := "9f1c4c1e-6a4b-4d0e-9a55-2b1f3f1d7c11"
	rr = srv.do(&alice, http.MethodPut, "/workouts/"+missing, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "no valid fields provided for update", decode[map[string]string](t, rr)["detail"])

	rr = srv.do(&alice, http.MethodPut, "/workouts/"+missing, map[string]any{"title": "x"})
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = srv.do(&alice, http.MethodPatch, "/workouts/"+missing+"/status", map[string]string{"action": "finished"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCreateValidation(t *testing.T) {
	srv := newTestServer(t)
	tests := []struct {
		name    string
		payload any
	}{
		{name: "malformed json", payload: `{"title":`},
		{name: "missing title", payload: map[string]any{"type": "yoga", "duration": 10}},
		{name: "bad type", payload: map[string]any{"title": "x", "type": "swim", "duration": 10}},
		{name: "zero duration", payload: map[string]any{"title": "x", "type": "yoga", "duration": 0}},
		{name: "non numeric duration", payload: map[string]any{"title": "x", "type": "yoga", "duration": "long"}},
		{name: "negative calories", payload: map[string]any{"title": "x", "type": "yoga", "duration": 10, "calories": -1}},
		{name: "bad scheduledAt", payload: map[string]any{"title": "x", "type": "yoga", "duration": 10, "scheduledAt": "soon"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := srv.do(&alice, http.MethodPost, "/workouts", tt.payload)
			assert.Equal(t, http.StatusBadRequest, rr.Code, rr.Body.String())
			assert.Equal(t, "validation_failed", decode[map[string]string](t, rr)["type"])
		})
	}
}

func TestListWorkoutsPaginationAndProjection(t *testing.T) {
	srv := newTestServer(t)
	for i := 0; i < 12; i++ {
		srv.create(alice, map[string]any{"title": "Lift", "type": "strength", "duration": 20 + i})
	}
	srv.create(bob, map[string]any{"title": "Bob's", "type": "cardio", "duration": 15})

	resp := decode[ListWorkoutsResponse](t, srv.do(&alice, http.MethodGet, "/workouts?page=2&limit=5&sort=duration&order=desc", nil))
	assert.Equal(t, Pagination{Page: 2, Limit: 5, Total: 12, TotalPages: 3}, resp.Pagination)
	require.Len(t, resp.Items, 5)
	assert.Equal(t, float64(26), resp.Items[0]["duration"])

	resp = decode[ListWorkoutsResponse](t, srv.do(&alice, http.MethodGet, "/workouts?fields=title,bogus&limit=1", nil))
	require.Len(t, resp.Items, 1)
	item := resp.Items[0]
	assert.Contains(t, item, "id")
	assert.Contains(t, item, "title")
	assert.Contains(t, item, "ownerId")
	assert.Contains(t, item, "ownerUsername")
	assert.Contains(t, item, "canManage")
	assert.NotContains(t, item, "duration")
	assert.NotContains(t, item, "bogus")

	resp = decode[ListWorkoutsResponse](t, srv.do(&admin, http.MethodGet, "/workouts?scope=all&page=abc", nil))
	assert.Equal(t, int64(13), resp.Pagination.Total)
	assert.Equal(t, 1, resp.Pagination.Page)

	resp = decode[ListWorkoutsResponse](t, srv.do(&bob, http.MethodGet, "/workouts?scope=all", nil))
	assert.Equal(t, int64(1), resp.Pagination.Total)
}

func TestUpdateWorkoutClearsScheduledAt(t *testing.T) {
	srv := newTestServer(t)
	id := srv.create(alice, map[string]any{
		"title": "Ride", "type": "cardio", "duration": 60, "scheduledAt": "2024-01-09T08:00",
	})

	got := decode[map[string]any](t, srv.do(&alice, http.MethodGet, "/workouts/"+id, nil))
	assert.Equal(t, "2024-01-09T08:00:00Z", got["scheduledAt"])
	assert.Equal(t, true, got["isDueConfirmation"])

	rr := srv.do(&alice, http.MethodPut, "/workouts/"+id, `{"scheduledAt":null,"notes":"easy"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	got = decode[map[string]any](t, srv.do(&alice, http.MethodGet, "/workouts/"+id, nil))
	assert.Nil(t, got["scheduledAt"])
	assert.Equal(t, "easy", got["notes"])
	assert.Equal(t, false, got["isDueConfirmation"])
}

func TestHistoryStatsAndSummary(t *testing.T) {
	srv := newTestServer(t)
	doneID := srv.create(alice, map[string]any{"title": "A", "type": "yoga", "duration": 30, "calories": 100})
	missedID := srv.create(alice, map[string]any{"title": "B", "type": "cardio", "duration": 20})
	srv.create(alice, map[string]any{"title": "C", "type": "cardio", "duration": 10})
	srv.create(bob, map[string]any{"title": "D", "type": "strength", "duration": 10})

	srv.do(&alice, http.MethodPatch, "/workouts/"+doneID+"/status", map[string]string{"action": "done"})
	srv.do(&alice, http.MethodPatch, "/workouts/"+missedID+"/status", map[string]string{"action": "missed"})

	history := decode[ItemsResponse[map[string]any]](t, srv.do(&alice, http.MethodGet, "/workouts/history/list", nil))
	assert.Len(t, history.Items, 2)

	history = decode[ItemsResponse[map[string]any]](t, srv.do(&alice, http.MethodGet, "/workouts/history/list?status=planned&limit=0", nil))
	require.Len(t, history.Items, 1)
	assert.Equal(t, "C", history.Items[0]["title"])

	stats := decode[ProgressResponse](t, srv.do(&alice, http.MethodGet, "/workouts/progress/stats", nil))
	assert.Equal(t, 3, stats.TotalWorkouts)
	assert.Equal(t, 1, stats.Done)
	assert.Equal(t, 33, stats.CompletionRate)
	assert.Equal(t, float64(100), stats.TotalCaloriesDone)
	assert.Equal(t, 1, stats.StreakDays)
	assert.Equal(t, []GroupCountView{{Key: "yoga", Count: 1}}, stats.DoneByType)

	rr := srv.do(&alice, http.MethodGet, "/workouts/admin/summary", nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	summary := decode[AdminSummaryResponse](t, srv.do(&admin, http.MethodGet, "/workouts/admin/summary", nil))
	assert.Equal(t, int64(4), summary.TotalWorkouts)
	assert.Equal(t, []GroupCountView{{Key: "alice", Count: 3}, {Key: "bob", Count: 1}}, summary.ByOwner)
	assert.Equal(t, GroupCountView{Key: "cardio", Count: 2}, summary.ByType[0])
}

func TestConsultationFlow(t *testing.T) {
	srv := newTestServer(t)

	catalog := decode[ItemsResponse[ConsultantView]](t, srv.do(&alice, http.MethodGet, "/consultations/consultants", nil))
	assert.Len(t, catalog.Items, 5)

	rr := srv.do(&alice, http.MethodPost, "/consultations", map[string]any{
		"consultantId": "consultant_zarina", "mode": "offline", "phone": "+7 700 000 00 00", "scheduledAt": "2024-02-01T10:00:00Z",
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = srv.do(&alice, http.MethodPost, "/consultations", map[string]any{
		"consultantId": "trainer_almas", "mode": "offline", "phone": "+7 700 000 00 00", "scheduledAt": "2024-02-01T10:00:00Z",
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	id := decode[CreatedResponse](t, rr).InsertedID

	mine := decode[ItemsResponse[ConsultationView]](t, srv.do(&alice, http.MethodGet, "/consultations/my", nil))
	require.Len(t, mine.Items, 1)
	assert.Equal(t, "pending", mine.Items[0].Status)
	assert.Equal(t, "Almasuly Damir", mine.Items[0].ConsultantName)

	rr = srv.do(&alice, http.MethodPatch, "/consultations/"+id+"/status", map[string]string{"action": "approved"})
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = srv.do(&bob, http.MethodPatch, "/consultations/"+id+"/status", map[string]string{"action": "cancelled"})
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = srv.do(&admin, http.MethodPatch, "/consultations/"+id+"/status", map[string]string{"action": "approved"})
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"message":"Consultation marked as approved"}`, rr.Body.String())

	rr = srv.do(&alice, http.MethodPatch, "/consultations/"+id+"/status", map[string]string{"action": "cancelled"})
	assert.Equal(t, http.StatusOK, rr.Code)

	all := decode[ItemsResponse[ConsultationView]](t, srv.do(&admin, http.MethodGet, "/consultations/my?scope=all", nil))
	require.Len(t, all.Items, 1)
	assert.Equal(t, "cancelled", all.Items[0].Status)
}

func TestUnknownRouteAndHealth(t *testing.T) {
	srv := newTestServer(t)

	rr := srv.do(&alice, http.MethodGet, "/nowhere", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"type":"not_found","detail":"route not found"}`, rr.Body.String())

	rr = srv.do(nil, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", rr.Body.String())
}
