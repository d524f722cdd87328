package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/alexedwards/scs/goredisstore"
	"github.com/alexedwards/scs/v2"
	"github.com/exaring/otelpgx"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/theatre-booking-system/api"
	"github.com/metinatakli/theatre-booking-system/internal/booking"
	"github.com/metinatakli/theatre-booking-system/internal/cache"
	"github.com/metinatakli/theatre-booking-system/internal/domain"
	"github.com/metinatakli/theatre-booking-system/internal/mailer"
	"github.com/metinatakli/theatre-booking-system/internal/repository"
	appvalidator "github.com/metinatakli/theatre-booking-system/internal/validator"
	"github.com/metinatakli/theatre-booking-system/internal/vcs"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"github.com/riandyrn/otelchi"
	"go.opentelemetry.io/contrib/bridges/otelslog"
)

const (
	serviceName     = "theatre-booking-api"
	shutdownTimeout = 30 * time.Second
)

var (
	version = vcs.Version()
)

type Application struct {
	config         Config
	logger         *slog.Logger
	db             *pgxpool.Pool
	redis          redis.UniversalClient
	validator      *validator.Validate
	mailer         mailer.Mailer
	sessionManager *scs.SessionManager
	swagger        *openapi3.T
	wg             sync.WaitGroup

	userRepo        domain.UserRepository
	hallRepo        domain.HallRepository
	genreRepo       domain.GenreRepository
	actorRepo       domain.ActorRepository
	playRepo        domain.PlayRepository
	performanceRepo domain.PerformanceRepository
	reservationRepo domain.ReservationRepository

	catalog  *booking.Catalog
	bookings *booking.Manager
}

func Run() error {
	cfg, displayVersion, err := LoadConfig(os.Args[1:])
	if err != nil {
		return err
	}

	if displayVersion {
		fmt.Printf("Version:\t%s\n", version)
		os.Exit(0)
	}

	app, err := NewApp(cfg)
	if err != nil {
		return err
	}

	shutdownTelemetry, err := app.InitTelemetry()
	if err != nil {
		return err
	}
	defer shutdownTelemetry(context.Background())

	if cfg.OtelCollectorUrl != "" {
		app.logger = slog.New(newFanoutHandler(
			app.logger.Handler(),
			otelslog.NewHandler(serviceName),
		))
	}

	db, err := NewDatabasePool(cfg.DB)
	if err != nil {
		return err
	}
	defer db.Close()

	redisClient, err := NewRedisClient(cfg.Redis)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	app.Wire(db, redisClient)

	return app.run()
}

type Option func(*Application)

func WithLogger(logger *slog.Logger) Option {
	return func(app *Application) {
		app.logger = logger
	}
}

func WithMailer(mailer mailer.Mailer) Option {
	return func(app *Application) {
		app.mailer = mailer
	}
}

// NewApp builds an Application with everything that does not need a
// network connection.
func NewApp(cfg Config, opts ...Option) (*Application, error) {
	swagger, err := api.GetSwagger()
	if err != nil {
		return nil, err
	}

	app := &Application{
		config:    cfg,
		logger:    slog.New(slog.NewTextHandler(os.Stdout, nil)),
		validator: appvalidator.NewValidator(),
		mailer:    mailer.NewSMTPMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.Sender),
		swagger:   swagger,
	}

	for _, opt := range opts {
		opt(app)
	}

	return app, nil
}

// Wire connects the repositories and booking services to the database and
// redis clients.
func (app *Application) Wire(db *pgxpool.Pool, redisClient *redis.Client) {
	app.db = db
	app.redis = redisClient
	app.sessionManager = NewSessionManager(redisClient)

	app.userRepo = repository.NewPostgresUserRepository(db)
	app.hallRepo = repository.NewPostgresHallRepository(db)
	app.genreRepo = repository.NewPostgresGenreRepository(db)
	app.actorRepo = repository.NewPostgresActorRepository(db)
	app.playRepo = repository.NewPostgresPlayRepository(db)
	app.performanceRepo = repository.NewPostgresPerformanceRepository(db)
	app.reservationRepo = repository.NewPostgresReservationRepository(db)

	var opts []booking.CatalogOption
	if app.config.Cache.Enabled {
		opts = append(opts, booking.WithCache(cache.NewPerformanceCache(redisClient, app.config.Cache.PerformanceTTL)))
	}

	app.catalog = booking.NewCatalog(app.performanceRepo, app.logger, opts...)
	app.bookings = booking.NewManager(app.catalog, app.reservationRepo, app.logger)
}

func NewSessionManager(client *redis.Client) *scs.SessionManager {
	sessionManager := scs.New()

	sessionManager.Store = goredisstore.New(client)
	sessionManager.IdleTimeout = 20 * time.Minute
	sessionManager.Cookie.Name = "session_id"

	return sessionManager
}

func NewRedisClient(cfg RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:            cfg.URL,
		MaxIdleConns:    cfg.MaxIdleConns,
		MaxActiveConns:  cfg.MaxOpenConns,
		ConnMaxIdleTime: cfg.MaxIdleTime,
	})

	err := errors.Join(redisotel.InstrumentTracing(rdb), redisotel.InstrumentMetrics(rdb))
	if err != nil {
		rdb.Close()
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = rdb.Ping(ctx).Err()
	if err != nil {
		rdb.Close()
		return nil, err
	}

	return rdb, nil
}

func NewDatabasePool(cfg DBConfig) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, err
	}

	config.MaxConnIdleTime = cfg.MaxIdleTime
	config.MaxConns = int32(cfg.MaxOpenConns)
	config.ConnConfig.Tracer = otelpgx.NewTracer()

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = db.Ping(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func (app *Application) run() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%d", app.config.Port),
		Handler:      app.Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelDebug),
	}

	shutdownError := make(chan error, 1)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		app.logger.Info("shutting down server", "signal", s.String(), "addr", srv.Addr)

		shutdownError <- app.gracefulShutdown(srv, shutdownTimeout)
	}()

	app.logger.Info("starting server", "addr", srv.Addr, "env", app.config.Env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdownError
	if err != nil {
		return err
	}

	app.logger.Info("stopped server", "addr", srv.Addr)

	return nil
}

type shutdowner interface {
	Shutdown(ctx context.Context) error
}

// gracefulShutdown stops srv and then waits for background tasks. The wait
// happens even when srv fails to drain in time, so queued emails still go out.
func (app *Application) gracefulShutdown(srv shutdowner, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	err := srv.Shutdown(ctx)
	if err != nil {
		err = fmt.Errorf("failed to shutdown server: %w", err)
	}

	app.logger.Info("completing background tasks")

	app.WaitForBackgroundTasks()

	return err
}

func (app *Application) Routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(app.notFoundResponse)
	r.MethodNotAllowed(app.methodNotAllowedResponse)

	r.Use(otelchi.Middleware(serviceName, otelchi.WithChiRoutes(r)))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(app.recoverPanic)
	r.Use(app.contextualLogger)
	r.Use(app.sessionManager.LoadAndSave)

	r.Get("/openapi.json", app.GetOpenAPIDocument)

	return api.HandlerWithOptions(app, api.ChiServerOptions{
		BaseRouter:       r,
		Middlewares:      []api.MiddlewareFunc{app.requireAuthentication},
		ErrorHandlerFunc: app.invalidParamResponse,
	})
}
