package audit

import (
	"context"
	"net/http"

	"github.com/2beens/healthtrack/internal/telemetry/tracing"
	"github.com/2beens/healthtrack/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=audit_test
type entriesLister interface {
	Latest(ctx context.Context, limit int) ([]Entry, error)
}

type ListResponse struct {
	Items []Entry `json:"items"`
}

type Handler struct {
	repo entriesLister
}

func NewHandler(repo entriesLister) *Handler {
	return &Handler{
		repo: repo,
	}
}

// SetupRoutes registers the audit log view. The given middleware guards it.
func (handler *Handler) SetupRoutes(mainRouter *mux.Router, requireLogin mux.MiddlewareFunc) {
	auditRouter := mainRouter.PathPrefix("/audit-log").Subrouter()
	auditRouter.HandleFunc("", handler.handleList).Methods("GET").Name("audit-log")
	auditRouter.Use(requireLogin)
}

func (handler *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.audit.list")
	defer span.End()

	entries, err := handler.repo.Latest(ctx, LatestLimit)
	if err != nil {
		log.Errorf("list audit log: %s", err)
		pkg.WriteJSONError(w, "Unable to load audit log.", http.StatusInternalServerError)
		return
	}

	if entries == nil {
		entries = []Entry{}
	}
	pkg.WriteJSON(w, ListResponse{Items: entries}, http.StatusOK)
}
