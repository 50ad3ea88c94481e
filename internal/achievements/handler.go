package achievements

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/2beens/healthtrack/internal/audit"
	"github.com/2beens/healthtrack/internal/auth"
	"github.com/2beens/healthtrack/internal/middleware"
	"github.com/2beens/healthtrack/internal/telemetry/metrics"
	"github.com/2beens/healthtrack/internal/telemetry/tracing"
	"github.com/2beens/healthtrack/internal/trends"
	"github.com/2beens/healthtrack/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=achievements_test
type achievementsRepo interface {
	Add(ctx context.Context, a *Achievement) (*Achievement, error)
	List(ctx context.Context, filter Filter, paging Paging) ([]Achievement, int, error)
	Search(ctx context.Context, userID int, q string, paging Paging) ([]Achievement, int, error)
	ListAll(ctx context.Context, userID int) ([]Achievement, error)
	WeeklyCounts(ctx context.Context, userID int, since time.Time) ([]trends.WeekCount, error)
}

type auditLogger interface {
	Log(r *http.Request, action string, details audit.Details)
}

// PageResponse is a page of achievements.
type PageResponse struct {
	Paging
	Total int           `json:"total"`
	Items []Achievement `json:"items"`
}

// OverviewResponse is the achievements page of a user, with trends of the last 8 ISO weeks.
type OverviewResponse struct {
	PageResponse
	Category      string              `json:"category,omitempty"`
	Metric        string              `json:"metric,omitempty"`
	Query         string              `json:"query,omitempty"`
	Trends        []trends.WeekBucket `json:"trends"`
	ThisWeekCount int                 `json:"this_week_count"`
	Message       string              `json:"message,omitempty"`
}

type WeeklyTrendsResponse struct {
	Items []trends.WeekBucket `json:"items"`
}

type Handler struct {
	repo    achievementsRepo
	audit   auditLogger
	metrics *metrics.Manager
	now     func() time.Time
}

func NewHandler(repo achievementsRepo, auditLogger auditLogger, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		repo:    repo,
		audit:   auditLogger,
		metrics: metricsManager,
		now:     time.Now,
	}
}

// WithClock replaces the clock trends are bucketed against.
func (handler *Handler) WithClock(now func() time.Time) *Handler {
	handler.now = now
	return handler
}

// clock reads the current time in UTC, the zone storage groups weeks in.
func (handler *Handler) clock() time.Time {
	return handler.now().UTC()
}

func (handler *Handler) SetupRoutes(
	mainRouter *mux.Router,
	requireLogin mux.MiddlewareFunc,
	rateLimiter middleware.RequestRateLimiter,
	apiAddPerMin int,
) {
	achievementsRouter := mainRouter.PathPrefix("/achievements").Subrouter()
	achievementsRouter.HandleFunc("", handler.handleOverview).Methods("GET").Name("achievements")
	achievementsRouter.HandleFunc("/search", handler.handleSearch).Methods("GET").Name("achievements-search")
	achievementsRouter.Handle("", requireLogin(http.HandlerFunc(handler.handleAdd))).Methods("POST").Name("achievements-add")
	achievementsRouter.Handle("/export.csv", requireLogin(http.HandlerFunc(handler.handleExportCSV))).Methods("GET").Name("achievements-export")

	apiRouter := mainRouter.PathPrefix("/api").Subrouter()
	apiRouter.Handle("/achievements", requireLogin(http.HandlerFunc(handler.handleApiList))).Methods("GET").Name("api-achievements")
	apiRouter.Handle(
		"/achievements",
		middleware.RateLimit(rateLimiter, "api-achievements-add", apiAddPerMin, handler.metrics, handler.audit)(
			requireLogin(http.HandlerFunc(handler.handleApiAdd)),
		),
	).Methods("POST").Name("api-achievements-add")
	apiRouter.Handle("/trends/weekly", requireLogin(http.HandlerFunc(handler.handleWeeklyTrends))).Methods("GET").Name("api-trends-weekly")
}

func (handler *Handler) handleOverview(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.achievements.overview")
	defer span.End()

	session := auth.SessionFromContext(ctx)
	if session == nil {
		handler.audit.Log(r, "view_achievements", audit.Details{"logged_in": false})
		pkg.WriteJSON(w, OverviewResponse{
			PageResponse: PageResponse{Items: []Achievement{}},
			Trends:       []trends.WeekBucket{},
			Message:      "Please log in to see your achievements.",
		}, http.StatusOK)
		return
	}

	paging := PagingFromQuery(r.URL.Query())
	filter := FilterFromQuery(session.UserID, r.URL.Query())
	items, total, err := handler.repo.List(ctx, filter, paging)
	if err != nil {
		handler.loadFailed(w, r, "view_achievements_error", err)
		return
	}

	now := handler.clock()
	observations, err := handler.weeklyObservations(ctx, session.UserID, now)
	if err != nil {
		handler.loadFailed(w, r, "view_achievements_error", err)
		return
	}
	thisWeekCount := trends.CurrentWeekCount(observations, now)

	span.SetAttributes(attribute.Int("achievements", len(items)))
	handler.audit.Log(r, "view_achievements", audit.Details{
		"logged_in":       true,
		"count":           len(items),
		"page":            paging.Page,
		"limit":           paging.Limit,
		"this_week_count": thisWeekCount,
	})

	pkg.WriteJSON(w, OverviewResponse{
		PageResponse:  newPageResponse(paging, total, items),
		Category:      filter.Category,
		Metric:        filter.Metric,
		Trends:        trends.Bucket(observations, now),
		ThisWeekCount: thisWeekCount,
	}, http.StatusOK)
}

func (handler *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.achievements.search")
	defer span.End()

	session := auth.SessionFromContext(ctx)
	if session == nil {
		handler.audit.Log(r, "search_achievements", audit.Details{"logged_in": false})
		pkg.WriteJSON(w, OverviewResponse{
			PageResponse: PageResponse{Items: []Achievement{}},
			Trends:       []trends.WeekBucket{},
			Message:      "Please log in to search your achievements.",
		}, http.StatusOK)
		return
	}

	paging := PagingFromQuery(r.URL.Query())
	q := SanitizeQuery(r.URL.Query().Get("q"))
	if q == "" {
		handler.audit.Log(r, "search_achievements", audit.Details{"query": "", "results": 0})
		pkg.WriteJSON(w, OverviewResponse{
			PageResponse: newPageResponse(paging, 0, nil),
			Trends:       []trends.WeekBucket{},
		}, http.StatusOK)
		return
	}

	items, total, err := handler.repo.Search(ctx, session.UserID, q, paging)
	if err != nil {
		handler.loadFailed(w, r, "search_achievements_error", err)
		return
	}

	handler.audit.Log(r, "search_achievements", audit.Details{
		"query":   q,
		"results": len(items),
		"page":    paging.Page,
		"limit":   paging.Limit,
	})
	pkg.WriteJSON(w, OverviewResponse{
		PageResponse: newPageResponse(paging, total, items),
		Query:        q,
		Trends:       []trends.WeekBucket{},
	}, http.StatusOK)
}

func (handler *Handler) handleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.achievements.add")
	defer span.End()

	input, err := readInput(r)
	if err != nil {
		pkg.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	achievement, errs := input.Validate()
	if len(errs) > 0 {
		pkg.WriteJSONError(w, strings.Join(errs, "; "), http.StatusBadRequest)
		return
	}

	added, err := handler.add(ctx, achievement)
	if err != nil {
		log.Errorf("add achievement: %s", err)
		span.SetStatus(codes.Error, err.Error())
		handler.audit.Log(r, "add_achievement_error", audit.Details{"error": err.Error()})
		pkg.WriteJSONError(w, "Server error. Please try again.", http.StatusInternalServerError)
		return
	}

	handler.audit.Log(r, "add_achievement", addDetails(added))
	pkg.WriteJSON(w, added, http.StatusCreated)
}

func (handler *Handler) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.achievements.export-csv")
	defer span.End()

	session := auth.SessionFromContext(ctx)
	items, err := handler.repo.ListAll(ctx, session.UserID)
	if err != nil {
		log.Errorf("export achievements of user %d: %s", session.UserID, err)
		handler.audit.Log(r, "export_csv_error", audit.Details{"error": err.Error()})
		http.Error(w, "Failed to export CSV", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, items); err != nil {
		log.Errorf("write achievements csv: %s", err)
		http.Error(w, "Failed to export CSV", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="achievements.csv"`)
	pkg.WriteResponseBytes(w, pkg.ContentType.CSV, buf.Bytes(), http.StatusOK)
	handler.audit.Log(r, "export_csv", audit.Details{"rows": len(items)})
}

func (handler *Handler) handleApiList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.achievements.api-list")
	defer span.End()

	session := auth.SessionFromContext(ctx)
	paging := PagingFromQuery(r.URL.Query())
	items, total, err := handler.repo.List(ctx, FilterFromQuery(session.UserID, r.URL.Query()), paging)
	if err != nil {
		log.Errorf("api list achievements of user %d: %s", session.UserID, err)
		pkg.WriteJSONError(w, "Server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, newPageResponse(paging, total, items), http.StatusOK)
}

func (handler *Handler) handleApiAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.achievements.api-add")
	defer span.End()

	input, err := readInput(r)
	if err != nil {
		pkg.WriteJSON(w, map[string][]string{"errors": {"invalid request body"}}, http.StatusBadRequest)
		return
	}

	achievement, errs := input.Validate()
	if len(errs) > 0 {
		pkg.WriteJSON(w, map[string][]string{"errors": errs}, http.StatusBadRequest)
		return
	}

	added, err := handler.add(ctx, achievement)
	if err != nil {
		log.Errorf("api add achievement: %s", err)
		span.SetStatus(codes.Error, err.Error())
		handler.audit.Log(r, "api_add_achievement_error", audit.Details{"error": err.Error()})
		pkg.WriteJSONError(w, "Server error", http.StatusInternalServerError)
		return
	}

	handler.audit.Log(r, "api_add_achievement", addDetails(added))
	pkg.WriteJSON(w, map[string]bool{"ok": true}, http.StatusCreated)
}

func (handler *Handler) handleWeeklyTrends(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.achievements.weekly-trends")
	defer span.End()

	session := auth.SessionFromContext(ctx)
	now := handler.clock()
	observations, err := handler.weeklyObservations(ctx, session.UserID, now)
	if err != nil {
		log.Errorf("weekly trends of user %d: %s", session.UserID, err)
		pkg.WriteJSONError(w, "Server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, WeeklyTrendsResponse{Items: trends.Bucket(observations, now)}, http.StatusOK)
}

func (handler *Handler) add(ctx context.Context, achievement *Achievement) (*Achievement, error) {
	achievement.UserID = auth.SessionFromContext(ctx).UserID
	added, err := handler.repo.Add(ctx, achievement)
	if err != nil {
		return nil, err
	}
	if handler.metrics != nil {
		handler.metrics.CounterAchievements.Inc()
	}
	return added, nil
}

// weeklyObservations loads enough history to cover the oldest trend week in full.
func (handler *Handler) weeklyObservations(ctx context.Context, userID int, now time.Time) (map[string]int, error) {
	since := now.AddDate(0, 0, -7*trends.Weeks)
	rows, err := handler.repo.WeeklyCounts(ctx, userID, since)
	if err != nil {
		return nil, err
	}
	return trends.ObservationsFromRows(rows), nil
}

func (handler *Handler) loadFailed(w http.ResponseWriter, r *http.Request, action string, err error) {
	log.Errorf("%s: %s", action, err)
	handler.audit.Log(r, action, audit.Details{"error": err.Error()})
	pkg.WriteJSONError(w, "Unable to load achievements.", http.StatusInternalServerError)
}

func newPageResponse(paging Paging, total int, items []Achievement) PageResponse {
	if items == nil {
		items = []Achievement{}
	}
	return PageResponse{Paging: paging, Total: total, Items: items}
}

func addDetails(a *Achievement) audit.Details {
	return audit.Details{
		"title":    a.Title,
		"category": a.Category,
		"metric":   a.Metric,
		"amount":   a.Amount,
	}
}

// readInput accepts a JSON body or a submitted form.
func readInput(r *http.Request) (Input, error) {
	var input Input
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		err := json.NewDecoder(r.Body).Decode(&input)
		return input, err
	}

	if err := r.ParseForm(); err != nil {
		return input, err
	}
	return Input{
		Title:    r.PostForm.Get("title"),
		Category: r.PostForm.Get("category"),
		Metric:   r.PostForm.Get("metric"),
		Amount:   pkg.FlexString(r.PostForm.Get("amount")),
		Notes:    r.PostForm.Get("notes"),
	}, nil
}
