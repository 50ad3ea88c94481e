package misc

import (
	"net/http"

	"github.com/2beens/healthtrack/internal/audit"
	"github.com/2beens/healthtrack/internal/auth"
	"github.com/2beens/healthtrack/internal/middleware"
	"github.com/2beens/healthtrack/internal/telemetry/tracing"
	"github.com/2beens/healthtrack/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const about = "Health Tracker keeps your achievements, medications and cycle logs in one place, " +
	"and ships a few calculators for everyday health questions."

type auditLogger interface {
	Log(r *http.Request, action string, details audit.Details)
}

type Handler struct {
	versionInfo string
	audit       auditLogger
}

type HomeResponse struct {
	User  *string           `json:"user"`
	Links map[string]string `json:"links"`
}

func NewHandler(versionInfo string, auditLogger auditLogger) *Handler {
	return &Handler{
		versionInfo: versionInfo,
		audit:       auditLogger,
	}
}

func (handler *Handler) SetupRoutes(mainRouter *mux.Router) {
	mainRouter.HandleFunc("/", handler.handleHome).Methods("GET").Name("home")
	mainRouter.HandleFunc("/about", handler.handleAbout).Methods("GET").Name("about")
	mainRouter.HandleFunc("/version", handler.handleGetVersionInfo).Methods("GET").Name("version")
	mainRouter.NotFoundHandler = http.HandlerFunc(handler.handleNotFound)
}

func (handler *Handler) handleHome(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "miscHandler.home")
	defer span.End()

	handler.audit.Log(r, "view_home", nil)

	basePath := middleware.BasePathFromContext(r.Context())
	resp := HomeResponse{
		Links: map[string]string{
			"achievements": basePath + "/achievements",
			"tools":        basePath + "/tools",
			"period":       basePath + "/period",
			"meds":         basePath + "/meds",
			"about":        basePath + "/about",
		},
	}
	if session := auth.SessionFromContext(r.Context()); session != nil {
		resp.User = &session.Username
		span.SetAttributes(attribute.Int("user.id", session.UserID))
	} else {
		resp.Links["login"] = basePath + "/login"
		resp.Links["register"] = basePath + "/register"
	}

	pkg.WriteJSON(w, resp, http.StatusOK)
}

func (handler *Handler) handleAbout(w http.ResponseWriter, r *http.Request) {
	handler.audit.Log(r, "view_about", nil)
	pkg.WriteJSON(w, map[string]string{"about": about, "version": handler.versionInfo}, http.StatusOK)
}

func (handler *Handler) handleGetVersionInfo(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, handler.versionInfo)
}

func (handler *Handler) handleNotFound(w http.ResponseWriter, r *http.Request) {
	log.Tracef("not found: %s %s", r.Method, r.URL.Path)
	handler.audit.Log(r, "not_found", audit.Details{"url": r.URL.RequestURI()})
	pkg.WriteJSONError(w, "Not found", http.StatusNotFound)
}
