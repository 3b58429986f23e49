package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/2beens/fitnessxs/internal/auth"
	"github.com/2beens/fitnessxs/internal/cache"
	"github.com/2beens/fitnessxs/internal/config"
	"github.com/2beens/fitnessxs/internal/db"
	"github.com/2beens/fitnessxs/internal/events"
	"github.com/2beens/fitnessxs/internal/exerciselogs"
	"github.com/2beens/fitnessxs/internal/middleware"
	"github.com/2beens/fitnessxs/internal/movements"
	"github.com/2beens/fitnessxs/internal/profiles"
	"github.com/2beens/fitnessxs/internal/programs"
	"github.com/2beens/fitnessxs/internal/schedule"
	"github.com/2beens/fitnessxs/internal/social"
	"github.com/2beens/fitnessxs/internal/steps"
	"github.com/2beens/fitnessxs/internal/telemetry/metrics"
	"github.com/2beens/fitnessxs/internal/telemetry/tracing"

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
)

const (
	defaultRollCron           = "@daily"
	defaultSessionCleanupCron = "@every 8h"
	defaultLoginPerMin        = 10
	queryCacheSizeMB          = 32
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config      *config.Config
	dbPool      *pgxpool.Pool
	redisClient *redis.Client
	queryCache  *cache.QueryCache
	publisher   events.Publisher
	jobs        *cron.Cron

	tokens   *auth.TokenIssuer
	sessions *auth.SessionStore

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config      *config.Config
	Secrets     *config.Secrets
	VersionInfo string
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         params.Config.PostgresHost,
		DBPort:         params.Config.PostgresPort,
		DBName:         params.Config.PostgresDBName,
		TracingEnabled: params.Secrets.HoneycombEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	}

	if err := db.Migrate(ctx, dbPool); err != nil {
		return nil, fmt.Errorf("migrate db: %w", err)
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": params.Config.PostgresDBName},
	)
	promRegistry := metrics.SetupPrometheus(pgxpoolCollector)
	metricsManager := metrics.NewManager("fitnessxs", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(params.Config.RedisHost, params.Config.RedisPort),
		Password: params.Secrets.RedisPassword,
		DB:       0,
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.Secrets.HoneycombEnabled, "fitnessxs-backend", rdb)
	if err != nil {
		return nil, err
	}

	s := &Server{
		config:      params.Config,
		dbPool:      dbPool,
		redisClient: rdb,
		versionInfo: params.VersionInfo,
		queryCache:  cache.NewQueryCache(queryCacheSizeMB, metricsManager),
		publisher: events.NewPublisher(
			params.Config.KafkaBrokers,
			params.Config.KafkaTopic,
			metricsManager,
		),
		jobs: cron.New(),

		tokens: auth.NewTokenIssuer(
			params.Secrets.JWTSecret,
			params.Config.JWTIssuer,
			params.Config.SessionTTL(),
		),
		sessions: auth.NewSessionStore(params.Config.SessionTTL(), rdb),

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}

	if err := s.scheduleJobs(); err != nil {
		return nil, fmt.Errorf("schedule jobs: %w", err)
	}

	return s, nil
}

func (s *Server) scheduleJobs() error {
	rollSpec := s.config.ScheduleRollCron
	if rollSpec == "" {
		rollSpec = defaultRollCron
	}
	roller := schedule.NewRoller(
		schedule.NewRepo(s.dbPool),
		s.config.ScheduleRollAhead,
		s.metricsManager,
	)
	if _, err := s.jobs.AddFunc(rollSpec, roller.Run); err != nil {
		return fmt.Errorf("add schedule roll job [%s]: %w", rollSpec, err)
	}

	cleanupSpec := s.config.SessionCleanupCron
	if cleanupSpec == "" {
		cleanupSpec = defaultSessionCleanupCron
	}
	if _, err := s.jobs.AddFunc(cleanupSpec, func() {
		begin := time.Now()
		removed := s.sessions.ScanAndClean(context.Background())
		s.metricsManager.HistogramJobDuration.WithLabelValues("session_cleanup").Observe(time.Since(begin).Seconds())
		log.Debugf("session cleanup: %d sessions removed", removed)
	}); err != nil {
		return fmt.Errorf("add session cleanup job [%s]: %w", cleanupSpec, err)
	}

	log.Debugf("jobs scheduled: roll [%s], session cleanup [%s]", rollSpec, cleanupSpec)
	return nil
}

func (s *Server) routerSetup() (*mux.Router, error) {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))

	profilesService := profiles.NewService(profiles.NewRepo(s.dbPool))

	authService := auth.NewService(
		auth.NewUsersRepo(s.dbPool),
		s.sessions,
		s.tokens,
		profilesService,
	)
	loginChecker := auth.NewLoginChecker(s.config.SessionTTL(), s.tokens, s.sessions)

	allowedPerMin := s.config.LoginRateLimitAllowedPerMin
	if allowedPerMin <= 0 {
		allowedPerMin = defaultLoginPerMin
	}
	reqRateLimiter := redis_rate.NewLimiter(s.redisClient)
	authHandler := auth.NewHandler(authService, s.versionInfo, s.metricsManager)
	authHandler.SetupRoutes(
		r,
		middleware.RateLimit(reqRateLimiter, "auth", allowedPerMin, s.metricsManager),
	)

	profiles.NewHandler(profilesService).SetupRoutes(r)

	movements.NewHandler(
		movements.NewService(
			movements.NewRepo(s.dbPool),
			s.queryCache,
			s.config.MovementsCacheTTL(),
		),
	).SetupRoutes(r)

	schedule.NewHandler(
		schedule.NewService(
			schedule.NewRepo(s.dbPool),
			profilesService,
			s.publisher,
			s.metricsManager,
		),
	).SetupRoutes(r)

	programs.NewHandler(
		programs.NewService(
			programs.NewRepo(s.dbPool),
			programs.NewDraftStore(s.redisClient, programs.DraftTTL),
			profilesService,
		),
	).SetupRoutes(r)

	exerciselogs.NewHandler(
		exerciselogs.NewService(
			exerciselogs.NewRepo(s.dbPool),
			profilesService,
			s.metricsManager,
		),
	).SetupRoutes(r)

	steps.NewHandler(
		steps.NewService(steps.NewRepo(s.dbPool), profilesService),
	).SetupRoutes(r)

	social.NewHandler(
		social.NewService(
			social.NewRepo(s.dbPool),
			profilesService,
			s.publisher,
			s.metricsManager,
		),
	).SetupRoutes(r)

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "DELETE", "OPTIONS").Name("unknown")

	authMiddleware := middleware.NewAuthMiddlewareHandler(loginChecker)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.AllowedOrigins))
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.DrainAndCloseRequest())

	return r, nil
}

func (s *Server) Serve(host string, port int) {
	router, err := s.routerSetup()
	if err != nil {
		log.Fatalf("failed to setup router: %s", err)
	}

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      otelhttp.NewHandler(router, "main-server"),
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.InstrumentMetricHandler(
		s.promRegistry,
		promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{}),
	))
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

	s.jobs.Start()
	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

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

	// wait for running jobs, but not longer than the http servers
	select {
	case <-s.jobs.Stop().Done():
		log.Debugln("jobs stopped")
	case <-ctx.Done():
		log.Warnln("jobs still running, giving up on them")
	}

	if err := s.publisher.Close(); err != nil {
		log.Errorf("failed to close events publisher: %s", err)
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
