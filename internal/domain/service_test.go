package domain_test

import (
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Dwardyvennik/Backend-final-project-fittrakker/internal/access"
	"github.com/Dwardyvennik/Backend-final-project-fittrakker/internal/domain"
	"github.com/Dwardyvennik/Backend-final-project-fittrakker/internal/persistence/memory"
	"github.com/Dwardyvennik/Backend-final-project-fittrakker/internal/query"
)

var (
	fixedNow = time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)

	alice = access.Caller{ID: "u-alice", Username: "alice", Role: access.RoleUser}
	bob   = access.Caller{ID: "u-bob", Username: "bob", Role: access.RoleUser}
	admin = access.Caller{ID: "u-admin", Username: "admin", Role: access.RoleAdmin}
)

func newService(t *testing.T) (*domain.Service, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	return domain.NewService(store, store, domain.WithClock(func() time.Time { return fixedNow })), store
}

func floatPtr(v float64) *float64 { return &v }

func stringPtr(v string) *string { return &v }

func createWorkout(t *testing.T, svc *domain.Service, caller access.Caller, title string) *domain.Workout {
	t.Helper()
	w, err := svc.CreateWorkout(context.Background(), caller, domain.CreateWorkoutInput{
		Title:    title,
		Type:     domain.WorkoutTypeCardio,
		Duration: floatPtr(30),
	})
	require.NoError(t, err)
	return w
}

func TestCreateWorkoutAppliesDefaults(t *testing.T) {
	svc, _ := newService(t)

	w, err := svc.CreateWorkout(context.Background(), alice, domain.CreateWorkoutInput{
		Title:    "  Morning run ",
		Type:     domain.WorkoutTypeCardio,
		Duration: floatPtr(30),
	})
	require.NoError(t, err)

	assert.NotEmpty(t, w.ID)
	assert.Equal(t, "Morning run", w.Title)
	assert.Equal(t, domain.WorkoutStatusPlanned, w.Status)
	assert.Equal(t, "2024-01-10", w.Date)
	assert.Equal(t, domain.DefaultDifficulty, w.Difficulty)
	assert.Zero(t, w.Calories)
	assert.Equal(t, alice.ID, w.OwnerID)
	assert.Equal(t, alice.Username, w.OwnerUsername)
	assert.Nil(t, w.CompletedAt)
	assert.True(t, w.CreatedAt.Equal(fixedNow))
}

func TestCreateWorkoutValidation(t *testing.T) {
	tests := []struct {
		name string
		in   domain.CreateWorkoutInput
	}{
		{name: "missing title", in: domain.CreateWorkoutInput{Type: domain.WorkoutTypeCardio, Duration: floatPtr(10)}},
		{name: "blank title", in: domain.CreateWorkoutInput{Title: "   ", Type: domain.WorkoutTypeCardio, Duration: floatPtr(10)}},
		{name: "unknown type", in: domain.CreateWorkoutInput{Title: "x", Type: "swimming", Duration: floatPtr(10)}},
		{name: "missing duration", in: domain.CreateWorkoutInput{Title: "x", Type: domain.WorkoutTypeYoga}},
		{name: "zero duration", in: domain.CreateWorkoutInput{Title: "x", Type: domain.WorkoutTypeYoga, Duration: floatPtr(0)}},
		{name: "negative calories", in: domain.CreateWorkoutInput{Title: "x", Type: domain.WorkoutTypeYoga, Duration: floatPtr(5), Calories: floatPtr(-1)}},
		{name: "bad date", in: domain.CreateWorkoutInput{Title: "x", Type: domain.WorkoutTypeYoga, Duration: floatPtr(5), Date: "10/01/2024"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := domain.NewService(NewMockWorkoutStore(ctrl), NewMockConsultationStore(ctrl))

			_, err := svc.CreateWorkout(context.Background(), alice, tt.in)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestUnauthenticatedCallerRejectedFirst(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := domain.NewService(NewMockWorkoutStore(ctrl), NewMockConsultationStore(ctrl))
	ctx := context.Background()
	anonymous := access.Caller{}

	_, err := svc.GetWorkout(ctx, anonymous, "not-a-uuid")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	_, err = svc.CreateWorkout(ctx, anonymous, domain.CreateWorkoutInput{})
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	_, err = svc.ListWorkouts(ctx, anonymous, query.Build(url.Values{}), "")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	_, err = svc.ProgressStats(ctx, anonymous)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	_, err = svc.BookConsultation(ctx, anonymous, domain.BookConsultationInput{})
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestMalformedIDRejectedBeforeStoreAccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := domain.NewService(NewMockWorkoutStore(ctrl), NewMockConsultationStore(ctrl))
	ctx := context.Background()

	_, err := svc.GetWorkout(ctx, alice, "abc")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.TransitionWorkout(ctx, alice, "abc", "done")
	assert.ErrorIs(t, err, domain.ErrValidation)

	assert.ErrorIs(t, svc.DeleteWorkout(ctx, alice, "abc"), domain.ErrValidation)

	_, err = svc.TransitionConsultation(ctx, alice, "abc", "cancelled")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestEquivalentIDFormsResolveToSameWorkout(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	w := createWorkout(t, svc, alice, "Intervals")

	forms := map[string]string{
		"uppercase": strings.ToUpper(w.ID),
		"urn":       "urn:uuid:" + w.ID,
		"braced":    "{" + w.ID + "}",
		"undashed":  strings.ReplaceAll(w.ID, "-", ""),
		"padded":    "  " + w.ID + " ",
	}
	for name, id := range forms {
		t.Run(name, func(t *testing.T) {
			got, err := svc.GetWorkout(ctx, alice, id)
			require.NoError(t, err)
			assert.Equal(t, w.ID, got.ID)
		})
	}

	updated, err := svc.TransitionWorkout(ctx, alice, strings.ToUpper(w.ID), "done")
	require.NoError(t, err)
	assert.Equal(t, domain.WorkoutStatusDone, updated.Status)

	_, err = svc.UpdateWorkout(ctx, alice, "urn:uuid:"+w.ID, domain.UpdateWorkoutInput{Title: stringPtr("Tempo")})
	require.NoError(t, err)
	stored, err := svc.GetWorkout(ctx, alice, w.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tempo", stored.Title)
	assert.Equal(t, domain.WorkoutStatusDone, stored.Status)

	require.NoError(t, svc.DeleteWorkout(ctx, alice, "{"+w.ID+"}"))
	_, err = svc.GetWorkout(ctx, alice, w.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBodyValidationPrecedesExistence(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := domain.NewService(NewMockWorkoutStore(ctrl), NewMockConsultationStore(ctrl))
	ctx := context.Background()
	id := uuid.NewString()

	_, err := svc.UpdateWorkout(ctx, alice, id, domain.UpdateWorkoutInput{})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.UpdateWorkout(ctx, alice, id, domain.UpdateWorkoutInput{Duration: floatPtr(-3)})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.TransitionWorkout(ctx, alice, id, "finished")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.TransitionConsultation(ctx, alice, id, "archived")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestMissingWorkoutIsNotFoundWithoutWrite(t *testing.T) {
	ctrl := gomock.NewController(t)
	workouts := NewMockWorkoutStore(ctrl)
	svc := domain.NewService(workouts, NewMockConsultationStore(ctrl))
	id := uuid.NewString()

	workouts.EXPECT().FindOne(gomock.Any(), id).Return(nil, nil)

	_, err := svc.TransitionWorkout(context.Background(), alice, id, "done")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestForeignWorkoutIsForbiddenWithoutWrite(t *testing.T) {
	ctrl := gomock.NewController(t)
	workouts := NewMockWorkoutStore(ctrl)
	svc := domain.NewService(workouts, NewMockConsultationStore(ctrl))
	id := uuid.NewString()

	workouts.EXPECT().FindOne(gomock.Any(), id).Return(&domain.Workout{ID: id, OwnerID: alice.ID}, nil).Times(2)

	_, err := svc.TransitionWorkout(context.Background(), bob, id, "done")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	err = svc.DeleteWorkout(context.Background(), bob, id)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestDeleteWorkoutPassesServiceClock(t *testing.T) {
	ctrl := gomock.NewController(t)
	workouts := NewMockWorkoutStore(ctrl)
	svc := domain.NewService(workouts, NewMockConsultationStore(ctrl), domain.WithClock(func() time.Time { return fixedNow }))
	id := uuid.NewString()

	gomock.InOrder(
		workouts.EXPECT().FindOne(gomock.Any(), id).Return(&domain.Workout{ID: id, OwnerID: alice.ID}, nil),
		workouts.EXPECT().Delete(gomock.Any(), id, fixedNow).Return(nil),
	)

	require.NoError(t, svc.DeleteWorkout(context.Background(), alice, id))
}

func TestGetWorkoutOwnershipRules(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	w := createWorkout(t, svc, alice, "Owned")

	got, err := svc.GetWorkout(ctx, alice, w.ID)
	require.NoError(t, err)
	assert.Equal(t, w.ID, got.ID)

	_, err = svc.GetWorkout(ctx, bob, w.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	got, err = svc.GetWorkout(ctx, admin, w.ID)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.OwnerID)

	_, err = svc.GetWorkout(ctx, alice, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListWorkoutsScopes(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	createWorkout(t, svc, alice, "a1")
	createWorkout(t, svc, alice, "a2")
	createWorkout(t, svc, bob, "b1")

	page, err := svc.ListWorkouts(ctx, alice, query.Build(url.Values{}), "")
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.Total)
	for _, item := range page.Items {
		assert.Equal(t, alice.ID, item.OwnerID)
	}

	page, err = svc.ListWorkouts(ctx, alice, query.Build(url.Values{}), access.ScopeAll)
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.Total, "non-admin scope=all falls back to own records")

	page, err = svc.ListWorkouts(ctx, admin, query.Build(url.Values{}), access.ScopeAll)
	require.NoError(t, err)
	assert.EqualValues(t, 3, page.Total)

	page, err = svc.ListWorkouts(ctx, admin, query.Build(url.Values{}), "")
	require.NoError(t, err)
	assert.EqualValues(t, 0, page.Total)
}

func TestListWorkoutsPagination(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	for i := 0; i < 25; i++ {
		created := fixedNow.Add(time.Duration(i) * time.Minute)
		svc := domain.NewService(store, store, domain.WithClock(func() time.Time { return created }))
		createWorkout(t, svc, alice, "w")
	}
	svc := domain.NewService(store, store, domain.WithClock(func() time.Time { return fixedNow }))

	page, err := svc.ListWorkouts(ctx, alice, query.Build(url.Values{"page": {"3"}, "limit": {"10"}}), "")
	require.NoError(t, err)
	assert.Len(t, page.Items, 5)
	assert.Equal(t, 3, page.Page)
	assert.Equal(t, 10, page.Limit)
	assert.EqualValues(t, 25, page.Total)
	assert.Equal(t, 3, page.TotalPages)

	page, err = svc.ListWorkouts(ctx, alice, query.Build(url.Values{}), "")
	require.NoError(t, err)
	require.Len(t, page.Items, 10)
	assert.True(t, page.Items[0].CreatedAt.After(page.Items[9].CreatedAt), "default sort is newest first")
}

func TestListWorkoutsFilters(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	w := createWorkout(t, svc, alice, "cardio")
	_, err := svc.CreateWorkout(ctx, alice, domain.CreateWorkoutInput{Title: "yoga", Type: domain.WorkoutTypeYoga, Duration: floatPtr(20)})
	require.NoError(t, err)
	_, err = svc.TransitionWorkout(ctx, alice, w.ID, "done")
	require.NoError(t, err)

	page, err := svc.ListWorkouts(ctx, alice, query.Build(url.Values{"type": {"yoga"}}), "")
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "yoga", page.Items[0].Title)

	page, err = svc.ListWorkouts(ctx, alice, query.Build(url.Values{"status": {"done"}}), "")
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, w.ID, page.Items[0].ID)
}

func TestUpdateWorkout(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	w := createWorkout(t, svc, alice, "Before")

	updated, err := svc.UpdateWorkout(ctx, alice, w.ID, domain.UpdateWorkoutInput{
		Title:    stringPtr("After"),
		Calories: floatPtr(250),
	})
	require.NoError(t, err)
	assert.Equal(t, "After", updated.Title)
	assert.Equal(t, 250.0, updated.Calories)
	assert.Equal(t, w.Duration, updated.Duration)

	stored, err := svc.GetWorkout(ctx, alice, w.ID)
	require.NoError(t, err)
	assert.Equal(t, "After", stored.Title)

	_, err = svc.UpdateWorkout(ctx, bob, w.ID, domain.UpdateWorkoutInput{Title: stringPtr("Hijack")})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.UpdateWorkout(ctx, alice, w.ID, domain.UpdateWorkoutInput{Type: stringPtr("swimming")})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTransitionWorkout(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	w := createWorkout(t, svc, alice, "Run")

	done, err := svc.TransitionWorkout(ctx, alice, w.ID, "DONE")
	require.NoError(t, err)
	assert.Equal(t, domain.WorkoutStatusDone, done.Status)
	require.NotNil(t, done.CompletedAt)
	assert.True(t, done.CompletedAt.Equal(fixedNow))
	require.NotNil(t, done.ConfirmationRequestedAt)

	missed, err := svc.TransitionWorkout(ctx, alice, w.ID, "missed")
	require.NoError(t, err)
	assert.Nil(t, missed.CompletedAt)

	stored, err := svc.GetWorkout(ctx, alice, w.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.WorkoutStatusMissed, stored.Status)
	assert.Nil(t, stored.CompletedAt)

	adminDone, err := svc.TransitionWorkout(ctx, admin, w.ID, "done")
	require.NoError(t, err)
	assert.Equal(t, domain.WorkoutStatusDone, adminDone.Status)
}

func TestDeleteWorkout(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	w := createWorkout(t, svc, alice, "Temp")

	require.NoError(t, svc.DeleteWorkout(ctx, alice, w.ID))
	_, err := svc.GetWorkout(ctx, alice, w.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, svc.DeleteWorkout(ctx, alice, w.ID), domain.ErrNotFound)
}

func TestWorkoutHistory(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	planned := createWorkout(t, svc, alice, "planned")
	done := createWorkout(t, svc, alice, "done")
	missed := createWorkout(t, svc, alice, "missed")
	_, err := svc.TransitionWorkout(ctx, alice, done.ID, "done")
	require.NoError(t, err)
	_, err = svc.TransitionWorkout(ctx, alice, missed.ID, "missed")
	require.NoError(t, err)
	createWorkout(t, svc, bob, "other")

	items, err := svc.WorkoutHistory(ctx, alice, domain.HistoryQuery{})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, done.ID, items[0].ID, "completed records sort ahead of records without completion")
	for _, item := range items {
		assert.NotEqual(t, planned.ID, item.ID)
	}

	items, err = svc.WorkoutHistory(ctx, alice, domain.HistoryQuery{Status: "missed"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, missed.ID, items[0].ID)

	items, err = svc.WorkoutHistory(ctx, alice, domain.HistoryQuery{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestWorkoutHistoryAdminScope(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	own := createWorkout(t, svc, admin, "admin run")
	foreign := createWorkout(t, svc, alice, "alice run")
	for _, id := range []string{own.ID, foreign.ID} {
		_, err := svc.TransitionWorkout(ctx, admin, id, "done")
		require.NoError(t, err)
	}

	items, err := svc.WorkoutHistory(ctx, admin, domain.HistoryQuery{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, own.ID, items[0].ID)

	items, err = svc.WorkoutHistory(ctx, admin, domain.HistoryQuery{Scope: "all"})
	require.NoError(t, err)
	assert.Len(t, items, 2)

	items, err = svc.WorkoutHistory(ctx, alice, domain.HistoryQuery{Scope: "all"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, foreign.ID, items[0].ID)
}

func TestProgressStatsAlwaysOwnScope(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	mine := createWorkout(t, svc, admin, "mine")
	_, err := svc.TransitionWorkout(ctx, admin, mine.ID, "done")
	require.NoError(t, err)
	createWorkout(t, svc, alice, "theirs")
	createWorkout(t, svc, alice, "theirs too")

	stats, err := svc.ProgressStats(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalWorkouts)
	assert.Equal(t, 1, stats.Done)
	assert.Equal(t, 100, stats.CompletionRate)
	assert.Equal(t, 1, stats.StreakDays)

	stats, err = svc.ProgressStats(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalWorkouts)
	assert.Equal(t, 0, stats.CompletionRate)
}

func TestAdminSummary(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	createWorkout(t, svc, alice, "a1")
	createWorkout(t, svc, alice, "a2")
	createWorkout(t, svc, bob, "b1")

	_, err := svc.AdminSummary(ctx, alice)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	summary, err := svc.AdminSummary(ctx, admin)
	require.NoError(t, err)
	assert.EqualValues(t, 3, summary.TotalWorkouts)
	assert.Equal(t, []domain.GroupCount{{Key: "cardio", Count: 3}}, summary.ByType)
	assert.Equal(t, []domain.GroupCount{{Key: "alice", Count: 2}, {Key: "bob", Count: 1}}, summary.ByOwner)
}

func validBooking() domain.BookConsultationInput {
	at := fixedNow.Add(48 * time.Hour)
	return domain.BookConsultationInput{
		ConsultantID: "trainer_almas",
		Mode:         domain.ModeOffline,
		Phone:        "+7 (701) 555-12-34",
		ScheduledAt:  &at,
		Notes:        "knee pain",
	}
}

func TestBookConsultation(t *testing.T) {
	svc, _ := newService(t)

	c, err := svc.BookConsultation(context.Background(), alice, validBooking())
	require.NoError(t, err)
	assert.Equal(t, domain.ConsultationStatusPending, c.Status)
	assert.Equal(t, "Almasuly Damir", c.ConsultantName)
	assert.Equal(t, alice.ID, c.OwnerID)
}

func TestBookConsultationValidation(t *testing.T) {
	past := fixedNow.Add(-time.Hour)
	tests := []struct {
		name   string
		mutate func(*domain.BookConsultationInput)
	}{
		{name: "unknown consultant", mutate: func(in *domain.BookConsultationInput) { in.ConsultantID = "nobody" }},
		{name: "mode not offered", mutate: func(in *domain.BookConsultationInput) {
			in.ConsultantID = "consultant_zarina"
			in.Mode = domain.ModeOffline
		}},
		{name: "unknown mode", mutate: func(in *domain.BookConsultationInput) { in.Mode = "phone" }},
		{name: "bad phone", mutate: func(in *domain.BookConsultationInput) { in.Phone = "call me" }},
		{name: "missing time", mutate: func(in *domain.BookConsultationInput) { in.ScheduledAt = nil }},
		{name: "past time", mutate: func(in *domain.BookConsultationInput) { in.ScheduledAt = &past }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := domain.NewService(NewMockWorkoutStore(ctrl), NewMockConsultationStore(ctrl),
				domain.WithClock(func() time.Time { return fixedNow }))
			in := validBooking()
			tt.mutate(&in)

			_, err := svc.BookConsultation(context.Background(), alice, in)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestTransitionConsultationRoles(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	c, err := svc.BookConsultation(ctx, alice, validBooking())
	require.NoError(t, err)

	_, err = svc.TransitionConsultation(ctx, alice, c.ID, "approved")
	assert.ErrorIs(t, err, domain.ErrForbidden, "owners cannot approve")

	_, err = svc.TransitionConsultation(ctx, bob, c.ID, "cancelled")
	assert.ErrorIs(t, err, domain.ErrForbidden, "strangers cannot cancel")

	approved, err := svc.TransitionConsultation(ctx, admin, c.ID, "approved")
	require.NoError(t, err)
	assert.Equal(t, domain.ConsultationStatusApproved, approved.Status)

	cancelled, err := svc.TransitionConsultation(ctx, alice, c.ID, "cancelled")
	require.NoError(t, err)
	assert.Equal(t, domain.ConsultationStatusCancelled, cancelled.Status)

	_, err = svc.TransitionConsultation(ctx, admin, uuid.NewString(), "approved")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListConsultationsScopes(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	_, err := svc.BookConsultation(ctx, alice, validBooking())
	require.NoError(t, err)
	_, err = svc.BookConsultation(ctx, bob, validBooking())
	require.NoError(t, err)

	mine, err := svc.ListConsultations(ctx, alice, access.ScopeAll)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	all, err := svc.ListConsultations(ctx, admin, access.ScopeAll)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
