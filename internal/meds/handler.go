package meds

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/2beens/healthtrack/internal/audit"
	"github.com/2beens/healthtrack/internal/auth"
	"github.com/2beens/healthtrack/internal/telemetry/metrics"
	"github.com/2beens/healthtrack/internal/telemetry/tracing"
	"github.com/2beens/healthtrack/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=meds_test
type medsRepo interface {
	Add(ctx context.Context, m *Medication) (*Medication, error)
	ListByUser(ctx context.Context, userID int) ([]Medication, error)
	Delete(ctx context.Context, userID, id int) error
}

type auditLogger interface {
	Log(r *http.Request, action string, details audit.Details)
}

type ListResponse struct {
	Items []ScheduledMedication `json:"items"`
}

type Handler struct {
	repo    medsRepo
	audit   auditLogger
	metrics *metrics.Manager
	now     func() time.Time
}

func NewHandler(repo medsRepo, auditLogger auditLogger, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		repo:    repo,
		audit:   auditLogger,
		metrics: metricsManager,
		now:     time.Now,
	}
}

// WithClock replaces the clock projections are computed against.
func (handler *Handler) WithClock(now func() time.Time) *Handler {
	handler.now = now
	return handler
}

func (handler *Handler) SetupRoutes(mainRouter *mux.Router, requireLogin mux.MiddlewareFunc) {
	medsRouter := mainRouter.PathPrefix("/meds").Subrouter()
	medsRouter.HandleFunc("", handler.handleList).Methods("GET").Name("meds-list")
	medsRouter.HandleFunc("", handler.handleAdd).Methods("POST").Name("meds-add")
	medsRouter.HandleFunc("/{id:[0-9]+}", handler.handleDelete).Methods("DELETE").Name("meds-delete")
	medsRouter.Use(requireLogin)
}

func (handler *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.meds.list")
	defer span.End()

	handler.audit.Log(r, "view_meds", nil)

	session := auth.SessionFromContext(ctx)
	medications, err := handler.repo.ListByUser(ctx, session.UserID)
	if err != nil {
		log.Errorf("list medications of user %d: %s", session.UserID, err)
		pkg.WriteJSONError(w, "Unable to load medications.", http.StatusInternalServerError)
		return
	}

	scheduled := ScheduleAll(medications, handler.now())
	span.SetAttributes(attribute.Int("medications", len(scheduled)))

	pkg.WriteJSON(w, ListResponse{Items: scheduled}, http.StatusOK)
}

func (handler *Handler) handleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.meds.add")
	defer span.End()

	input, err := readMedicationInput(r)
	if err != nil {
		log.Debugf("add medication, read input: %s", err)
		pkg.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	medication, rule, err := input.Validate()
	if err != nil {
		var validationErr *ValidationError
		if errors.As(err, &validationErr) {
			pkg.WriteJSONError(w, validationErr.Error(), http.StatusBadRequest)
			return
		}
		log.Errorf("add medication, validate: %s", err)
		pkg.WriteJSONError(w, "Server error. Please try again.", http.StatusInternalServerError)
		return
	}

	session := auth.SessionFromContext(ctx)
	medication.UserID = session.UserID
	added, err := handler.repo.Add(ctx, medication)
	if errors.Is(err, ErrUnknownUser) {
		// the account was removed while the session lived on
		pkg.WriteJSONError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	if err != nil {
		log.Errorf("add medication for user %d: %s", session.UserID, err)
		pkg.WriteJSONError(w, "Server error. Please try again.", http.StatusInternalServerError)
		return
	}

	details := audit.Details{"name": added.Name, "freq_type": added.FreqType}
	if added.IntervalHours != nil {
		details["interval_hours"] = *added.IntervalHours
	}
	handler.audit.Log(r, "add_medication", details)
	if handler.metrics != nil {
		handler.metrics.CounterMedications.Inc()
	}

	log.Debugf("medication added for user %d: %d", session.UserID, added.ID)

	now := handler.now()
	pkg.WriteJSON(w, ScheduledMedication{
		Medication:    *added,
		Projection:    Project(rule, now),
		BeyondHorizon: BeyondHorizon(rule),
	}, http.StatusCreated)
}

func (handler *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.meds.delete")
	defer span.End()

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		pkg.WriteJSONError(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	session := auth.SessionFromContext(ctx)
	if err := handler.repo.Delete(ctx, session.UserID, id); err != nil {
		if errors.Is(err, ErrMedicationNotFound) {
			pkg.WriteJSONError(w, "medication not found", http.StatusNotFound)
			return
		}
		log.Errorf("delete medication %d of user %d: %s", id, session.UserID, err)
		pkg.WriteJSONError(w, "Server error. Please try again.", http.StatusInternalServerError)
		return
	}

	handler.audit.Log(r, "delete_medication", audit.Details{"id": id})
	pkg.WriteJSON(w, map[string]int{"deletedId": id}, http.StatusOK)
}

// readMedicationInput accepts a JSON body or a submitted form.
func readMedicationInput(r *http.Request) (MedicationInput, error) {
	var input MedicationInput
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		err := json.NewDecoder(r.Body).Decode(&input)
		return input, err
	}

	if err := r.ParseForm(); err != nil {
		return input, err
	}
	input = MedicationInput{
		Name:          r.PostForm.Get("name"),
		Dosage:        r.PostForm.Get("dosage"),
		FreqType:      r.PostForm.Get("freq_type"),
		IntervalHours: pkg.FlexString(r.PostForm.Get("interval_hours")),
		TimeOfDay:     r.PostForm.Get("time_of_day"),
		DaysOfWeek:    r.PostForm.Get("days_of_week"),
		Notes:         r.PostForm.Get("notes"),
	}
	return input, nil
}
