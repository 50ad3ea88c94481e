package status

import (
	"context"
	"net/http"

	"github.com/2beens/healthtrack/internal/telemetry/tracing"
	"github.com/2beens/healthtrack/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=status_test
type usersProbe interface {
	Ping(ctx context.Context) error
	Exists(ctx context.Context, username string) (bool, error)
}

type DBStatus struct {
	Connected bool   `json:"connected"`
	Error     string `json:"error,omitempty"`
}

type UserStatus struct {
	Exists bool `json:"exists"`
}

type Response struct {
	DB       DBStatus   `json:"db"`
	UserGold UserStatus `json:"userGold"`
}

type Handler struct {
	users         usersProbe
	probeUsername string
}

func NewHandler(users usersProbe, probeUsername string) *Handler {
	return &Handler{
		users:         users,
		probeUsername: probeUsername,
	}
}

func (handler *Handler) SetupRoutes(mainRouter *mux.Router) {
	mainRouter.HandleFunc("/status", handler.handleStatus).Methods("GET").Name("status")
}

func (handler *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.status")
	defer span.End()

	var resp Response
	if err := handler.users.Ping(ctx); err != nil {
		log.Errorf("status, db ping: %s", err)
		resp.DB.Error = err.Error()
		pkg.WriteJSON(w, resp, http.StatusInternalServerError)
		return
	}
	resp.DB.Connected = true

	exists, err := handler.users.Exists(ctx, handler.probeUsername)
	if err != nil {
		log.Errorf("status, probe user [%s]: %s", handler.probeUsername, err)
		resp.DB.Error = err.Error()
		pkg.WriteJSON(w, resp, http.StatusInternalServerError)
		return
	}
	resp.UserGold.Exists = exists

	pkg.WriteJSON(w, resp, http.StatusOK)
}
