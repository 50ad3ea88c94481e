package account

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/2beens/healthtrack/internal/audit"
	"github.com/2beens/healthtrack/internal/auth"
	"github.com/2beens/healthtrack/internal/middleware"
	"github.com/2beens/healthtrack/internal/telemetry/metrics"
	"github.com/2beens/healthtrack/internal/telemetry/tracing"
	"github.com/2beens/healthtrack/internal/users"
	"github.com/2beens/healthtrack/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var pushoverKeyRegex = regexp.MustCompile(`^[A-Za-z0-9]{30}$`)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=account_test
type authService interface {
	Register(ctx context.Context, params auth.RegisterParams) (*users.User, error)
	Login(ctx context.Context, username, password string, createdAt time.Time) (*auth.Session, error)
	Logout(ctx context.Context, token string) (bool, error)
	TTL() time.Duration
}

type pushoverKeyStore interface {
	SetPushoverKey(ctx context.Context, userID int, key string) error
}

type auditLogger interface {
	Log(r *http.Request, action string, details audit.Details)
}

type RateLimits struct {
	RegisterPerMin int
	LoginPerMin    int
}

type RegisterResponse struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Redirect string `json:"redirect"`
}

type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Redirect string `json:"redirect"`
}

type Handler struct {
	authService authService
	pushover    pushoverKeyStore
	audit       auditLogger
	metrics     *metrics.Manager
}

func NewHandler(
	authService authService,
	pushover pushoverKeyStore,
	auditLogger auditLogger,
	metricsManager *metrics.Manager,
) *Handler {
	return &Handler{
		authService: authService,
		pushover:    pushover,
		audit:       auditLogger,
		metrics:     metricsManager,
	}
}

func (handler *Handler) SetupRoutes(
	mainRouter *mux.Router,
	requireLogin mux.MiddlewareFunc,
	rateLimiter middleware.RequestRateLimiter,
	limits RateLimits,
) {
	registerRouter := mainRouter.PathPrefix("/register").Subrouter()
	registerRouter.HandleFunc("", handler.handleRegisterView).Methods("GET").Name("register-view")
	registerRouter.HandleFunc("", handler.handleRegister).Methods("POST").Name("register")
	registerRouter.Use(middleware.RateLimit(rateLimiter, "register", limits.RegisterPerMin, handler.metrics, handler.audit))

	loginRouter := mainRouter.PathPrefix("/login").Subrouter()
	loginRouter.HandleFunc("", handler.handleLoginView).Methods("GET").Name("login-view")
	loginRouter.HandleFunc("", handler.handleLogin).Methods("POST").Name("login")
	loginRouter.Use(middleware.RateLimit(rateLimiter, "login", limits.LoginPerMin, handler.metrics, handler.audit))

	mainRouter.HandleFunc("/logout", handler.handleLogout).Methods("GET", "POST").Name("logout")

	accountRouter := mainRouter.PathPrefix("/account").Subrouter()
	accountRouter.HandleFunc("/pushover", handler.handleSetPushoverKey).Methods("PUT").Name("account-pushover")
	accountRouter.Use(requireLogin)
}

func (handler *Handler) handleRegisterView(w http.ResponseWriter, r *http.Request) {
	if auth.SessionFromContext(r.Context()) != nil {
		http.Redirect(w, r, middleware.BasePathFromContext(r.Context())+"/", http.StatusFound)
		return
	}
	handler.audit.Log(r, "view_register", nil)
	pkg.WriteJSON(w, map[string]string{"password_policy": auth.ErrPasswordPolicy.Error()}, http.StatusOK)
}

func (handler *Handler) handleLoginView(w http.ResponseWriter, r *http.Request) {
	handler.audit.Log(r, "view_login", nil)
	resp := map[string]any{"logged_in": false}
	if session := auth.SessionFromContext(r.Context()); session != nil {
		resp["logged_in"] = true
		resp["username"] = session.Username
	}
	pkg.WriteJSON(w, resp, http.StatusOK)
}

func (handler *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.account.register")
	defer span.End()

	type registerRequest struct {
		Username string `json:"username"`
		Password string `json:"password"`
		Confirm  string `json:"confirm"`
	}

	var req registerRequest
	if err := readCredentials(r, &req, func(form func(string) string) {
		req = registerRequest{
			Username: form("username"),
			Password: form("password"),
			Confirm:  form("confirm"),
		}
	}); err != nil {
		log.Debugf("register, read request: %s", err)
		pkg.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	user, err := handler.authService.Register(ctx, auth.RegisterParams{
		Username: req.Username,
		Password: req.Password,
		Confirm:  req.Confirm,
	})
	if err != nil {
		message, status, reason := registerFailure(err)
		if status == http.StatusInternalServerError {
			log.Errorf("register user: %s", err)
			span.SetStatus(codes.Error, err.Error())
		}
		handler.audit.Log(r, "register_failed", audit.Details{"reason": reason})
		pkg.WriteJSONError(w, message, status)
		return
	}

	span.SetAttributes(attribute.Int("user.id", user.ID))
	if handler.metrics != nil {
		handler.metrics.CounterRegistrations.Inc()
	}
	handler.audit.Log(r, "register", audit.Details{"username": user.Username})
	log.Debugf("new user registered: %d", user.ID)

	pkg.WriteJSON(w, RegisterResponse{
		ID:       user.ID,
		Username: user.Username,
		Redirect: middleware.BasePathFromContext(ctx) + "/login",
	}, http.StatusCreated)
}

func registerFailure(err error) (message string, status int, reason string) {
	switch {
	case errors.Is(err, auth.ErrMissingFields):
		return "Please complete all fields.", http.StatusBadRequest, "missing_fields"
	case errors.Is(err, auth.ErrPasswordMismatch):
		return "Passwords do not match.", http.StatusBadRequest, "password_mismatch"
	case errors.Is(err, auth.ErrPasswordPolicy):
		return "Password must be at least 8 characters and include lowercase, uppercase, number and special character.",
			http.StatusBadRequest, "password_policy"
	case errors.Is(err, users.ErrUserExists):
		return "Username already exists.", http.StatusConflict, "username_taken"
	default:
		return "Server error. Please try again.", http.StatusInternalServerError, "server_error"
	}
}

func (handler *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.account.login")
	defer span.End()

	type loginRequest struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	var req loginRequest
	if err := readCredentials(r, &req, func(form func(string) string) {
		req = loginRequest{
			Username: form("username"),
			Password: form("password"),
		}
	}); err != nil {
		log.Debugf("login, read request: %s", err)
		pkg.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	session, err := handler.authService.Login(ctx, req.Username, req.Password, time.Now())
	if err != nil {
		var (
			status  = http.StatusUnauthorized
			message = "Invalid credentials"
			reason  string
		)
		switch {
		case errors.Is(err, auth.ErrMissingFields):
			status, message, reason = http.StatusBadRequest, "Please provide username and password.", "missing_fields"
		case errors.Is(err, auth.ErrNoSuchUser):
			reason = "no_such_user"
		case errors.Is(err, auth.ErrWrongPassword):
			reason = "wrong_password"
		default:
			log.Errorf("login: %s", err)
			span.SetStatus(codes.Error, err.Error())
			status, message, reason = http.StatusInternalServerError, "Server error. Please try again.", "server_error"
		}
		handler.countLogin(reason)
		handler.audit.Log(r, "login_failed", audit.Details{
			"reason":   reason,
			"username": auth.SanitizeUsername(req.Username),
		})
		pkg.WriteJSONError(w, message, status)
		return
	}

	handler.countLogin("success")
	// the new session is not in the request context yet
	r = r.WithContext(auth.ContextWithSession(r.Context(), session))
	handler.audit.Log(r, "login_success", nil)

	basePath := middleware.BasePathFromContext(ctx)
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    session.Token,
		Path:     basePath + "/",
		MaxAge:   int(handler.authService.TTL().Seconds()),
		HttpOnly: true,
		Secure:   isSecure(r),
		SameSite: http.SameSiteLaxMode,
	})

	pkg.WriteJSON(w, LoginResponse{
		Token:    session.Token,
		Username: session.Username,
		Redirect: basePath + "/",
	}, http.StatusOK)
}

func (handler *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.account.logout")
	defer span.End()

	loggedOut := false
	if token := auth.TokenFromRequest(r); token != "" {
		var err error
		loggedOut, err = handler.authService.Logout(ctx, token)
		if err != nil {
			log.Errorf("logout: %s", err)
			span.SetStatus(codes.Error, err.Error())
			pkg.WriteJSONError(w, "Server error. Please try again.", http.StatusInternalServerError)
			return
		}
	}

	if loggedOut {
		handler.audit.Log(r, "logout", nil)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    "",
		Path:     middleware.BasePathFromContext(ctx) + "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	pkg.WriteJSON(w, map[string]bool{"logged_out": loggedOut}, http.StatusOK)
}

func (handler *Handler) handleSetPushoverKey(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.account.pushover")
	defer span.End()

	var req struct {
		UserKey string `json:"user_key"`
	}
	if err := readCredentials(r, &req, func(form func(string) string) {
		req.UserKey = form("user_key")
	}); err != nil {
		pkg.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	key := strings.TrimSpace(req.UserKey)
	if key != "" && !pushoverKeyRegex.MatchString(key) {
		pkg.WriteJSONError(w, "Invalid Pushover user key.", http.StatusBadRequest)
		return
	}

	session := auth.SessionFromContext(ctx)
	if err := handler.pushover.SetPushoverKey(ctx, session.UserID, key); err != nil {
		log.Errorf("set pushover key of user %d: %s", session.UserID, err)
		pkg.WriteJSONError(w, "Server error. Please try again.", http.StatusInternalServerError)
		return
	}

	handler.audit.Log(r, "set_pushover_key", audit.Details{"enabled": key != ""})
	pkg.WriteJSON(w, map[string]bool{"reminders_enabled": key != ""}, http.StatusOK)
}

func (handler *Handler) countLogin(outcome string) {
	if handler.metrics != nil {
		handler.metrics.CounterLogins.WithLabelValues(outcome).Inc()
	}
}

// readCredentials decodes a JSON body into dst, other bodies are parsed as a form
// and handed to fromForm.
func readCredentials(r *http.Request, dst any, fromForm func(form func(string) string)) error {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		return json.NewDecoder(r.Body).Decode(dst)
	}
	if err := r.ParseForm(); err != nil {
		return err
	}
	fromForm(r.PostForm.Get)
	return nil
}

func isSecure(r *http.Request) bool {
	return r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https"
}
