package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"

	"ems/internal/domain/auth"
	"ems/internal/domain/employee"
	"ems/internal/domain/payroll"
	"ems/internal/domain/reports"
	"ems/internal/platform/config"
	cryptoutil "ems/internal/platform/crypto"
	"ems/internal/platform/db"
	"ems/internal/platform/metrics"
	authhandler "ems/internal/transport/http/handlers/auth"
	employeehandler "ems/internal/transport/http/handlers/employees"
	payrollhandler "ems/internal/transport/http/handlers/payroll"
	reportshandler "ems/internal/transport/http/handlers/reports"
	"ems/internal/transport/http/middleware"
)

type App struct {
	Config  config.Config
	DB      *sql.DB
	Metrics *metrics.Collector
	Router  http.Handler
}

// Keys older than this no longer replay; they are dropped at startup.
const idempotencyRetention = 24 * time.Hour

// New connects the database, applies migrations and seed data as configured,
// and assembles the router.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	crypto, err := cryptoutil.New(cfg.DataEncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("encryption key: %w", err)
	}

	conn, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}
	if cfg.RunMigrations {
		if err := db.Migrate(ctx, conn, cfg.DBDriver); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("migrations: %w", err)
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, conn, cfg, crypto); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("seed: %w", err)
		}
	}

	if removed, err := middleware.NewIdempotencyStore(conn).Purge(ctx, idempotencyRetention); err != nil {
		slog.Warn("idempotency purge failed", "err", err)
	} else if removed > 0 {
		slog.Info("purged idempotency keys", "removed", removed)
	}

	app := &App{Config: cfg, DB: conn, Metrics: metrics.New()}
	app.Router = app.routes(crypto)
	return app, nil
}

func (a *App) Close() {
	if a.DB != nil {
		_ = a.DB.Close()
	}
}

func (a *App) routes(crypto *cryptoutil.Service) http.Handler {
	cfg := a.Config
	perms := auth.StaticPermissions{}

	users := auth.NewStore(a.DB)
	authSvc := auth.NewService(users, cfg.JWTSecret, cfg.TokenTTL)
	employeeStore := employee.NewStore(a.DB, crypto)
	employeeSvc := employee.NewService(employeeStore)
	payrollSvc := payroll.NewService(employeeStore, a.Metrics)
	reportsSvc := reports.NewService(employeeStore)

	router := chi.NewRouter()
	router.Use(chimw.RealIP)
	router.Use(middleware.RequestID)
	router.Use(httplog.RequestLogger(slog.Default(), &httplog.Options{
		Level:  cfg.SlogLevel(),
		Schema: httplog.SchemaECS,
	}))
	router.Use(chimw.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.IsProduction()))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", middleware.IdempotencyKeyHeader, middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader, "Content-Disposition"},
		MaxAge:           300,
	}))
	router.Use(middleware.Metrics(a.Metrics))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret, users))
	router.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))
	router.Use(middleware.SensitiveMutationRateLimit(cfg.RateLimitPerMinute, time.Minute))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := a.DB.PingContext(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if cfg.MetricsEnabled {
		router.Method(http.MethodGet, "/metrics", a.Metrics.Handler())
	}

	router.Route("/api/v1", func(r chi.Router) {
		authhandler.NewHandler(authSvc, employeeSvc).RegisterRoutes(r)
		employeehandler.NewHandler(employeeSvc, perms).RegisterRoutes(r)
		payrollhandler.NewHandler(payrollSvc, employeeSvc, middleware.NewIdempotencyStore(a.DB), perms).RegisterRoutes(r)
		reportshandler.NewHandler(reportsSvc, perms).RegisterRoutes(r)
	})

	router.Mount("/", spaHandler{staticPath: cfg.FrontendDir, indexPath: "index.html"})
	return router
}

// NewLogger builds the process logger: JSON lines with ECS field names.
func NewLogger(cfg config.Config) *slog.Logger {
	schema := httplog.SchemaECS.Concise(!cfg.IsProduction())
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.SlogLevel(),
		ReplaceAttr: schema.ReplaceAttr,
	})).With(
		slog.String("app", "ems"),
		slog.String("env", cfg.Environment),
	)
}

func Run() {
	cfg := config.Load()
	slog.SetDefault(NewLogger(cfg))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := New(ctx, cfg)
	if err != nil {
		slog.Error("startup failed", "err", err)
		os.Exit(1)
	}
	defer app.Close()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("EMS server listening", "addr", cfg.Addr, "driver", cfg.DBDriver)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "err", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("graceful shutdown failed", "err", err)
		}
		slog.Info("EMS server stopped")
	}
}

type spaHandler struct {
	staticPath string
	indexPath  string
}

func (h spaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	path := filepath.Join(h.staticPath, filepath.Clean("/"+r.URL.Path))
	_, err := os.Stat(path)
	if err == nil {
		http.FileServer(http.Dir(h.staticPath)).ServeHTTP(w, r)
		return
	}

	if os.IsNotExist(err) {
		http.ServeFile(w, r, filepath.Join(h.staticPath, h.indexPath))
		return
	}

	http.NotFound(w, r)
}
