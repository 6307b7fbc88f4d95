// Package api exposes HTTP handlers for the fitness tracker service.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/Dwardyvennik/Backend-final-project-fittrakker/internal/access"
	"github.com/Dwardyvennik/Backend-final-project-fittrakker/internal/auth"
	"github.com/Dwardyvennik/Backend-final-project-fittrakker/internal/domain"
	"github.com/Dwardyvennik/Backend-final-project-fittrakker/internal/observability"
	"github.com/Dwardyvennik/Backend-final-project-fittrakker/internal/query"
)

// Handler coordinates HTTP requests with the domain service.
type Handler struct {
	service *domain.Service
	logger  log.FieldLogger
}

// HandlerOption customises a Handler.
type HandlerOption func(*Handler)

// WithLogger overrides the logger used for server errors.
func WithLogger(logger log.FieldLogger) HandlerOption {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// NewHandler builds a Handler.
func NewHandler(service *domain.Service, opts ...HandlerOption) *Handler {
	h := &Handler{service: service, logger: log.StandardLogger()}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// RegisterRoutes wires endpoints to the router. Fixed paths under /workouts
// are registered before the {id} routes so they are not captured as ids.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/healthz", healthz).Methods(http.MethodGet)

	r.HandleFunc("/workouts", h.listWorkouts).Methods(http.MethodGet)
	r.HandleFunc("/workouts", h.createWorkout).Methods(http.MethodPost)
	r.HandleFunc("/workouts/history/list", h.workoutHistory).Methods(http.MethodGet)
	r.HandleFunc("/workouts/progress/stats", h.progressStats).Methods(http.MethodGet)
	r.HandleFunc("/workouts/admin/summary", h.adminSummary).Methods(http.MethodGet)
	r.HandleFunc("/workouts/{id}", h.getWorkout).Methods(http.MethodGet)
	r.HandleFunc("/workouts/{id}", h.updateWorkout).Methods(http.MethodPut)
	r.HandleFunc("/workouts/{id}", h.deleteWorkout).Methods(http.MethodDelete)
	r.HandleFunc("/workouts/{id}/status", h.workoutStatus).Methods(http.MethodPatch)

	r.HandleFunc("/consultations/consultants", h.consultants).Methods(http.MethodGet)
	r.HandleFunc("/consultations", h.bookConsultation).Methods(http.MethodPost)
	r.HandleFunc("/consultations/my", h.myConsultations).Methods(http.MethodGet)
	r.HandleFunc("/consultations/{id}/status", h.consultationStatus).Methods(http.MethodPatch)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", "route not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
	})
}

// healthz reports a simple OK status for container health checks.
func healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) listWorkouts(w http.ResponseWriter, r *http.Request) {
	caller := auth.CallerFromContext(r.Context())
	params := r.URL.Query()
	opts := query.Build(params)

	page, err := h.service.ListWorkouts(r.Context(), caller, opts, params.Get("scope"))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	now := h.service.Now()
	items := make([]workoutView, 0, len(page.Items))
	for _, workout := range page.Items {
		items = append(items, toWorkoutView(workout, caller, now).project(opts.Projection))
	}
	writeJSON(w, http.StatusOK, ListWorkoutsResponse{
		Items: items,
		Pagination: Pagination{
			Page:       page.Page,
			Limit:      page.Limit,
			Total:      page.Total,
			TotalPages: page.TotalPages,
		},
	})
}

func (h *Handler) getWorkout(w http.ResponseWriter, r *http.Request) {
	caller := auth.CallerFromContext(r.Context())
	workout, err := h.service.GetWorkout(r.Context(), caller, mux.Vars(r)["id"])
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toWorkoutView(*workout, caller, h.service.Now()))
}

func (h *Handler) createWorkout(w http.ResponseWriter, r *http.Request) {
	caller := auth.CallerFromContext(r.Context())
	if !caller.Authenticated() {
		h.fail(w, r, domain.ErrUnauthenticated)
		return
	}

	var req CreateWorkoutRequest
	if err := decodeBody(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	in, err := req.toInput()
	if err != nil {
		h.fail(w, r, err)
		return
	}

	workout, err := h.service.CreateWorkout(r.Context(), caller, in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	observability.RecordWorkoutCreated()
	writeJSON(w, http.StatusCreated, CreatedResponse{Message: "Workout created", InsertedID: workout.ID})
}

func (h *Handler) updateWorkout(w http.ResponseWriter, r *http.Request) {
	caller := auth.CallerFromContext(r.Context())
	id := mux.Vars(r)["id"]
	if err := preflight(caller, id); err != nil {
		h.fail(w, r, err)
		return
	}

	var req UpdateWorkoutRequest
	if err := decodeBody(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	in, err := req.toInput()
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if _, err := h.service.UpdateWorkout(r.Context(), caller, id, in); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Workout updated"})
}

func (h *Handler) workoutStatus(w http.ResponseWriter, r *http.Request) {
	caller := auth.CallerFromContext(r.Context())
	id := mux.Vars(r)["id"]
	if err := preflight(caller, id); err != nil {
		h.fail(w, r, err)
		return
	}

	var req StatusRequest
	if err := decodeBody(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	workout, err := h.service.TransitionWorkout(r.Context(), caller, id, req.Action)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	observability.RecordWorkoutTransition(string(workout.Status))
	writeJSON(w, http.StatusOK, MessageResponse{Message: fmt.Sprintf("Workout marked as %s", workout.Status)})
}

func (h *Handler) deleteWorkout(w http.ResponseWriter, r *http.Request) {
	caller := auth.CallerFromContext(r.Context())
	if err := h.service.DeleteWorkout(r.Context(), caller, mux.Vars(r)["id"]); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Workout deleted"})
}

func (h *Handler) workoutHistory(w http.ResponseWriter, r *http.Request) {
	caller := auth.CallerFromContext(r.Context())
	params := r.URL.Query()
	items, err := h.service.WorkoutHistory(r.Context(), caller, domain.HistoryQuery{
		Status: strings.TrimSpace(params.Get("status")),
		Limit:  query.ClampInt(params.Get("limit"), domain.HistoryDefaultLimit, 1, domain.HistoryMaxLimit),
		Scope:  params.Get("scope"),
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	now := h.service.Now()
	views := make([]workoutView, 0, len(items))
	for _, workout := range items {
		views = append(views, toWorkoutView(workout, caller, now))
	}
	writeJSON(w, http.StatusOK, ItemsResponse[workoutView]{Items: views})
}

func (h *Handler) progressStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.ProgressStats(r.Context(), auth.CallerFromContext(r.Context()))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toProgressResponse(stats))
}

func (h *Handler) adminSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.AdminSummary(r.Context(), auth.CallerFromContext(r.Context()))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, AdminSummaryResponse{
		TotalWorkouts: summary.TotalWorkouts,
		ByType:        toGroupCountViews(summary.ByType),
		ByOwner:       toGroupCountViews(summary.ByOwner),
	})
}

func (h *Handler) consultants(w http.ResponseWriter, r *http.Request) {
	catalog := domain.Consultants()
	items := make([]ConsultantView, 0, len(catalog))
	for _, c := range catalog {
		items = append(items, ConsultantView{ID: c.ID, Name: c.Name, Role: c.Role, Specialty: c.Specialty, Modes: c.Modes})
	}
	writeJSON(w, http.StatusOK, ItemsResponse[ConsultantView]{Items: items})
}

func (h *Handler) bookConsultation(w http.ResponseWriter, r *http.Request) {
	caller := auth.CallerFromContext(r.Context())
	if !caller.Authenticated() {
		h.fail(w, r, domain.ErrUnauthenticated)
		return
	}

	var req BookConsultationRequest
	if err := decodeBody(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	in, err := req.toInput()
	if err != nil {
		h.fail(w, r, err)
		return
	}

	consultation, err := h.service.BookConsultation(r.Context(), caller, in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	observability.RecordConsultationBooked()
	writeJSON(w, http.StatusCreated, CreatedResponse{Message: "Consultation booked successfully", InsertedID: consultation.ID})
}

func (h *Handler) myConsultations(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListConsultations(r.Context(), auth.CallerFromContext(r.Context()), r.URL.Query().Get("scope"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	views := make([]ConsultationView, 0, len(items))
	for _, c := range items {
		views = append(views, toConsultationView(c))
	}
	writeJSON(w, http.StatusOK, ItemsResponse[ConsultationView]{Items: views})
}

func (h *Handler) consultationStatus(w http.ResponseWriter, r *http.Request) {
	caller := auth.CallerFromContext(r.Context())
	id := mux.Vars(r)["id"]
	if err := preflight(caller, id); err != nil {
		h.fail(w, r, err)
		return
	}

	var req StatusRequest
	if err := decodeBody(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	consultation, err := h.service.TransitionConsultation(r.Context(), caller, id, req.Action)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: fmt.Sprintf("Consultation marked as %s", consultation.Status)})
}

// preflight runs the identity and id checks that must precede body parsing.
func preflight(caller access.Caller, id string) error {
	if !caller.Authenticated() {
		return domain.ErrUnauthenticated
	}
	_, err := domain.ValidateID(id)
	return err
}

func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: unable to parse body", domain.ErrValidation)
	}
	return nil
}

// fail maps a service error onto a status code. Unexpected errors are logged
// and answered with a generic detail.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, "validation_failed", detail(err, domain.ErrValidation))
	case errors.Is(err, domain.ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, "unauthorized", "unauthorized access")
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden", detail(err, domain.ErrForbidden))
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	default:
		h.logger.WithError(err).WithFields(log.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
		}).Error("request failed")
		writeError(w, http.StatusInternalServerError, "server_error", "internal server error")
	}
}

// detail strips the sentinel prefix from a wrapped error message.
func detail(err, sentinel error) string {
	msg := strings.TrimPrefix(err.Error(), sentinel.Error())
	msg = strings.TrimPrefix(msg, ": ")
	if msg == "" {
		return sentinel.Error()
	}
	return msg
}

func writeError(w http.ResponseWriter, status int, code, detail string) {
	payload := map[string]string{
		"type":   code,
		"detail": detail,
	}
	writeJSON(w, status, payload)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.WithError(err).Warn("encode response")
	}
}
