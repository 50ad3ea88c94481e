package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/2beens/healthtrack/internal/account"
	"github.com/2beens/healthtrack/internal/achievements"
	"github.com/2beens/healthtrack/internal/audit"
	"github.com/2beens/healthtrack/internal/auth"
	"github.com/2beens/healthtrack/internal/config"
	"github.com/2beens/healthtrack/internal/db"
	"github.com/2beens/healthtrack/internal/meds"
	"github.com/2beens/healthtrack/internal/middleware"
	"github.com/2beens/healthtrack/internal/misc"
	"github.com/2beens/healthtrack/internal/nutrition"
	"github.com/2beens/healthtrack/internal/period"
	"github.com/2beens/healthtrack/internal/reminders"
	"github.com/2beens/healthtrack/internal/status"
	"github.com/2beens/healthtrack/internal/telemetry/metrics"
	"github.com/2beens/healthtrack/internal/telemetry/tracing"
	"github.com/2beens/healthtrack/internal/tools"
	"github.com/2beens/healthtrack/internal/users"
	"github.com/2beens/healthtrack/pkg"
)

const serviceName = "healthtrack"

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config    *config.Config
	dbPool    *pgxpool.Pool
	scheduler *cron.Cron

	redisClient  *redis.Client
	loginChecker *auth.LoginChecker
	authService  *auth.Service

	usersRepo   *users.Repo
	auditRepo   *audit.Repo
	auditLogger middleware.AuditLogger
	nutrition   *nutrition.Client
	reminders   *reminders.Dispatcher

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	VersionInfo             string
	RedisPassword           string
	DBPassword              string
	NutritionApiKey         string
	PushoverAppToken        string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	cfg := params.Config

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         cfg.PostgresHost,
		DBPort:         cfg.PostgresPort,
		DBName:         cfg.PostgresDBName,
		DBUser:         cfg.PostgresUser,
		DBPassword:     params.DBPassword,
		TracingEnabled: params.HoneycombTracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	} else if cfg.PostgresBootstrap {
		if err := db.EnsureSchema(ctx, dbPool); err != nil {
			return nil, fmt.Errorf("ensure db schema: %w", err)
		}
		log.Debugln("db schema ensured")
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": cfg.PostgresDBName},
	)
	promRegistry := metrics.SetupPrometheus(pgxpoolCollector)
	metricsManager := metrics.NewManager("healthtrack", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
		Password: params.RedisPassword,
		DB:       0, // use default DB
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, serviceName, rdb)
	if err != nil {
		return nil, err
	}

	tracedHttpClient := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
		Timeout:   10 * time.Second,
	}

	sessionTTL := time.Duration(cfg.SessionTTLMinutes) * time.Minute
	usersRepo := users.NewRepo(dbPool)
	auditRepo := audit.NewRepo(dbPool)

	if params.NutritionApiKey == "" {
		log.Warnln("nutrition api key not set, nutrition lookups will fail")
	}

	s := &Server{
		config:      cfg,
		dbPool:      dbPool,
		versionInfo: params.VersionInfo,

		redisClient:  rdb,
		authService:  auth.NewAuthService(sessionTTL, rdb, usersRepo),
		loginChecker: auth.NewLoginChecker(sessionTTL, rdb),

		usersRepo:   usersRepo,
		auditRepo:   auditRepo,
		auditLogger: audit.NewLogger(auditRepo, metricsManager),
		nutrition: nutrition.NewClient(
			cfg.NutritionApiBaseURL,
			params.NutritionApiKey,
			cfg.NutritionCacheSizeByte,
			tracedHttpClient,
		),

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}

	if cfg.RemindersEnabled {
		if params.PushoverAppToken == "" {
			log.Errorln("reminders enabled, but pushover app token not set; reminders disabled")
		} else {
			s.reminders = reminders.NewDispatcher(
				meds.NewRepo(dbPool),
				reminders.NewPushoverNotifier(params.PushoverAppToken),
				rdb,
				metricsManager,
			)
		}
	}

	s.scheduler, err = s.schedulerSetup(ctx)
	if err != nil {
		return nil, fmt.Errorf("scheduler setup: %w", err)
	}

	return s, nil
}

func (s *Server) routerSetup() http.Handler {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))

	reqRateLimiter := redis_rate.NewLimiter(s.redisClient)
	requireLogin := middleware.RequireLogin()

	misc.NewHandler(s.versionInfo, s.auditLogger).SetupRoutes(r)
	status.NewHandler(s.usersRepo, s.config.StatusProbeUsername).SetupRoutes(r)

	account.NewHandler(s.authService, s.usersRepo, s.auditLogger, s.metricsManager).
		SetupRoutes(r, requireLogin, reqRateLimiter, account.RateLimits{
			RegisterPerMin: s.config.RegisterRateLimitPerMin,
			LoginPerMin:    s.config.LoginRateLimitPerMin,
		})

	achievements.NewHandler(achievements.NewRepo(s.dbPool), s.auditLogger, s.metricsManager).
		SetupRoutes(r, requireLogin, reqRateLimiter, s.config.AchievementsRateLimitPerMin)

	meds.NewHandler(meds.NewRepo(s.dbPool), s.auditLogger, s.metricsManager).
		SetupRoutes(r, requireLogin)

	// before tools, so the legacy /tools/period path is matched here
	period.NewHandler(period.NewRepo(s.dbPool), s.auditLogger).
		SetupRoutes(r, requireLogin)

	tools.NewHandler(s.nutrition, s.auditLogger).SetupRoutes(r)

	audit.NewHandler(s.auditRepo).SetupRoutes(r, requireLogin)

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.loginChecker)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors())
	r.Use(middleware.RequestID())
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.DrainAndCloseRequest())

	// router middlewares skip unmatched requests, the not found audit entry still wants them
	r.NotFoundHandler = middleware.RequestID()(authMiddleware.AuthCheck()(r.NotFoundHandler))

	return middleware.BasePath(s.config.BasePath, r)
}

func (s *Server) schedulerSetup(ctx context.Context) (*cron.Cron, error) {
	scheduler := cron.New(
		cron.WithLogger(cron.VerbosePrintfLogger(log.StandardLogger())),
		cron.WithChain(cron.Recover(cron.DefaultLogger), cron.SkipIfStillRunning(cron.DefaultLogger)),
	)

	if _, err := scheduler.AddFunc("@every 8h", func() {
		s.authService.ScanAndClean(ctx)
	}); err != nil {
		return nil, fmt.Errorf("add sessions cleanup job: %w", err)
	}

	if s.reminders != nil {
		if _, err := scheduler.AddFunc("* * * * *", func() {
			sent, err := s.reminders.Run(ctx)
			if err != nil {
				log.Errorf("dose reminders: %s", err)
				return
			}
			if sent > 0 {
				log.Debugf("dose reminders sent: %d", sent)
			}
		}); err != nil {
			return nil, fmt.Errorf("add dose reminders job: %w", err)
		}
	}

	if s.config.AuditRetentionDays > 0 {
		retention := time.Duration(s.config.AuditRetentionDays) * 24 * time.Hour
		if _, err := scheduler.AddFunc("@daily", func() {
			deleted, err := s.auditRepo.DeleteOlderThan(ctx, time.Now().Add(-retention))
			if err != nil {
				log.Errorf("audit retention: %s", err)
				return
			}
			log.Infof("audit retention: %d entries older than %d days removed", deleted, s.config.AuditRetentionDays)
		}); err != nil {
			return nil, fmt.Errorf("add audit retention job: %w", err)
		}
	}

	return scheduler, nil
}

func (s *Server) Serve(ctx context.Context, host string, port int) {
	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      s.routerSetup(),
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{}))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.scheduler.Start()
	s.metricsManager.GaugeLifeSignal.Set(1)

	s.setAuditBackupUnixSocket(ctx)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	if s.scheduler != nil {
		// waits for running jobs
		<-s.scheduler.Stop().Done()
		log.Trace("scheduler stopped ...")
	}

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown http server")
		}
		log.Warnln("server shut down")
	}

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown metrics http server")
		}
		log.Warnln("metrics server shut down")
	}

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}

func (s *Server) setAuditBackupUnixSocket(ctx context.Context) {
	dirExists, err := pkg.PathExists(s.config.AuditBackupSocketDir, true)
	if err != nil {
		log.Errorf("check audit backup unix socket dir: %s", err)
		return
	}
	if !dirExists {
		if err := os.MkdirAll(s.config.AuditBackupSocketDir, os.ModePerm); err != nil {
			log.Errorf("failed to create audit backup unix socket dir: %s", err)
			return
		}
		log.Debugf("audit backup unix socket dir created: %s", s.config.AuditBackupSocketDir)
	}

	if addr, err := audit.BackupReportListenerSetup(
		ctx,
		s.config.AuditBackupSocketDir,
		audit.BackupSocketFileName,
		s.metricsManager,
	); err != nil {
		log.Errorf("failed to create audit backup unix socket: %s", err)
	} else {
		log.Debugf("audit backup unix socket: %s", addr)
	}
}
