package period

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
	"github.com/2beens/healthtrack/internal/middleware"
	"github.com/2beens/healthtrack/internal/telemetry/tracing"
	"github.com/2beens/healthtrack/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=period_test
type periodRepo interface {
	Add(ctx context.Context, userID int, startDate time.Time, cycleLength int) (*Log, error)
	Latest(ctx context.Context, userID, limit int) ([]Log, error)
}

type auditLogger interface {
	Log(r *http.Request, action string, details audit.Details)
}

type OverviewResponse struct {
	Logs       []Log    `json:"logs"`
	NextWindow *Window  `json:"next_window"`
	Calendar   Calendar `json:"calendar"`
}

type Handler struct {
	repo  periodRepo
	audit auditLogger
	now   func() time.Time
}

func NewHandler(repo periodRepo, auditLogger auditLogger) *Handler {
	return &Handler{
		repo:  repo,
		audit: auditLogger,
		now:   time.Now,
	}
}

func (handler *Handler) WithClock(now func() time.Time) *Handler {
	handler.now = now
	return handler
}

func (handler *Handler) SetupRoutes(mainRouter *mux.Router, requireLogin mux.MiddlewareFunc) {
	mainRouter.HandleFunc("/tools/period", handler.handleLegacyRedirect).Methods("GET").Name("period-legacy")

	periodRouter := mainRouter.PathPrefix("/period").Subrouter()
	periodRouter.HandleFunc("", handler.handleOverview).Methods("GET").Name("period")
	periodRouter.HandleFunc("", handler.handleAdd).Methods("POST").Name("period-add")
	periodRouter.Use(requireLogin)
}

func (handler *Handler) handleLegacyRedirect(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, middleware.BasePathFromContext(r.Context())+"/period", http.StatusMovedPermanently)
}

func (handler *Handler) handleOverview(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.period.overview")
	defer span.End()

	handler.audit.Log(r, "view_period", nil)

	session := auth.SessionFromContext(ctx)
	logs, err := handler.repo.Latest(ctx, session.UserID, HistoryLimit)
	if err != nil {
		log.Errorf("load period logs of user %d: %s", session.UserID, err)
		pkg.WriteJSONError(w, "Unable to load period logs.", http.StatusInternalServerError)
		return
	}

	var next *Window
	if len(logs) > 0 {
		window := NextWindow(logs[0])
		next = &window
	}

	year, yearErr := strconv.Atoi(strings.TrimSpace(r.URL.Query().Get("year")))
	month, monthErr := strconv.Atoi(strings.TrimSpace(r.URL.Query().Get("month")))
	calYear, calMonth := CalendarMonth(year, month, yearErr == nil, monthErr == nil, handler.now())

	if logs == nil {
		logs = []Log{}
	}
	pkg.WriteJSON(w, OverviewResponse{
		Logs:       logs,
		NextWindow: next,
		Calendar:   BuildCalendar(calYear, calMonth, logs, next),
	}, http.StatusOK)
}

func (handler *Handler) handleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.period.add")
	defer span.End()

	rawStart, rawCycle, err := readInput(r)
	if err != nil {
		pkg.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	startDate, cycle, err := ParseInput(rawStart, rawCycle)
	switch {
	case errors.Is(err, ErrBadDate):
		handler.audit.Log(r, "period_failed", audit.Details{"reason": "bad_date"})
		pkg.WriteJSONError(w, "Enter a valid start date (YYYY-MM-DD).", http.StatusBadRequest)
		return
	case errors.Is(err, ErrBadCycle):
		handler.audit.Log(r, "period_failed", audit.Details{"reason": "bad_cycle"})
		pkg.WriteJSONError(w, "Cycle length must be between 20 and 60 days.", http.StatusBadRequest)
		return
	}

	session := auth.SessionFromContext(ctx)
	added, err := handler.repo.Add(ctx, session.UserID, startDate, cycle)
	if err != nil {
		log.Errorf("add period log for user %d: %s", session.UserID, err)
		handler.audit.Log(r, "period_error", audit.Details{"error": err.Error()})
		pkg.WriteJSONError(w, "Server error. Please try again.", http.StatusInternalServerError)
		return
	}

	handler.audit.Log(r, "period_add", audit.Details{
		"start_date":   startDate.Format(DateLayout),
		"cycle_length": cycle,
	})
	pkg.WriteJSON(w, added, http.StatusCreated)
}

func readInput(r *http.Request) (startDate, cycleLength string, err error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var input struct {
			StartDate   string         `json:"start_date"`
			CycleLength pkg.FlexString `json:"cycle_length"`
		}
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			return "", "", err
		}
		return input.StartDate, string(input.CycleLength), nil
	}

	if err := r.ParseForm(); err != nil {
		return "", "", err
	}
	return r.PostForm.Get("start_date"), r.PostForm.Get("cycle_length"), nil
}
