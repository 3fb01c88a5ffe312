package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"borsibaar/internal/caching"
	"borsibaar/internal/common"
	"borsibaar/internal/config"
	"borsibaar/internal/handlers"
	"borsibaar/internal/jobs/background"
	"borsibaar/internal/logging"
	"borsibaar/internal/middleware"
	"borsibaar/internal/models"
	"borsibaar/internal/repositories"
	"borsibaar/internal/services"
	"borsibaar/pkg/database"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.New("", "").Error(context.Background(), "load config", "error", err)
		os.Exit(1)
	}

	log := logging.New(cfg.Env, cfg.LogLevel)
	if err := run(cfg, log); err != nil {
		log.Error(context.Background(), "server exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log logging.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns)
	if err != nil {
		return err
	}
	defer pool.Close()
	log.Info(ctx, "database connected", "max_conns", cfg.DBMaxConns)

	if err := database.Migrate(ctx, pool); err != nil {
		return err
	}

	store := repositories.NewStore(pool)

	// Seed roles must exist before any request is served.
	roles, err := services.LoadRoleRegistry(ctx, store.Roles())
	if err != nil {
		return err
	}

	cacheSvc := caching.NewRedisCacheService(caching.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
		UserTTL:  cfg.AccountCacheTTL,
		OrgTTL:   cfg.OrgCacheTTL,
	}, log)

	accountSvc := services.NewAccountService(store, roles, cacheSvc, log)
	orgSvc := services.NewOrganizationService(store.Organizations(), roles, cacheSvc, log)
	stationSvc := services.NewBarStationService(store.BarStations())
	categorySvc := services.NewCategoryService(store.Categories(), log)

	jwtOpts := middleware.JWTOptions{
		Secret:     []byte(cfg.JWTSecret),
		CookieName: cfg.JWTCookieName,
	}
	if cfg.JWTJWKSURL != "" {
		var keyFunc jwt.Keyfunc
		keyFunc, err = middleware.NewJWKSKeyFunc(ctx, cfg.JWTJWKSURL, log)
		if err != nil {
			return err
		}
		jwtOpts.KeyFunc = keyFunc
	} else if cfg.GeneratedSecret {
		log.Warn(ctx, "JWT_SECRET not set, using a generated secret")
	}

	accountHandlers := handlers.NewAccountHandlers(accountSvc, log)
	orgHandlers := handlers.NewOrganizationHandlers(orgSvc, log)
	stationHandlers := handlers.NewBarStationHandlers(stationSvc, log)
	categoryHandlers := handlers.NewCategoryHandlers(categorySvc, log)
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc, version)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())
	e.Use(echoMiddleware.RequestLoggerWithConfig(echoMiddleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echoMiddleware.RequestLoggerValues) error {
			args := []any{"method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency}
			if userID, ok := common.GetUserIDFromContext(c.Request().Context()); ok {
				args = append(args, "user_id", userID)
			}
			if v.Error != nil {
				log.Error(c.Request().Context(), "request", append(args, "error", v.Error)...)
				return nil
			}
			log.Info(c.Request().Context(), "request", args...)
			return nil
		},
	}))

	// Health endpoints (no auth required)
	e.GET("/health", healthHandlers.LivenessCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)

	api := e.Group("/api")
	api.Use(middleware.JWTMiddleware(jwtOpts))
	api.Use(middleware.PrincipalMiddleware(accountSvc, log))

	api.GET("/account", accountHandlers.GetAccount)
	api.POST("/account/onboarding", accountHandlers.Onboard)
	api.POST("/account/organization", accountHandlers.ChangeOrganization)

	api.GET("/organizations", orgHandlers.ListOrganizations)
	api.GET("/organizations/:id", orgHandlers.GetOrganization)
	api.POST("/organizations", orgHandlers.CreateOrganization, middleware.RequireRole(models.RoleAdmin))

	api.GET("/bar-stations", stationHandlers.ListBarStations)
	api.GET("/bar-stations/active", stationHandlers.ListActiveBarStations)
	api.GET("/bar-stations/:id", stationHandlers.GetBarStation)

	api.GET("/categories", categoryHandlers.ListCategories)
	api.GET("/categories/:id", categoryHandlers.GetCategory)
	api.POST("/categories", categoryHandlers.CreateCategory, middleware.RequireRole(models.RoleAdmin))

	scheduler, err := background.NewJobScheduler(orgSvc, cfg.AdminReportInterval, log)
	if err != nil {
		return err
	}
	scheduler.Start()

	serverErr := make(chan error, 1)
	go func() {
		log.Info(ctx, "server starting", "version", version, "addr", cfg.HTTPAddr)
		if err := e.Start(cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
		log.Info(context.Background(), "shutdown signal received")
	case err := <-serverErr:
		if err != nil {
			_ = scheduler.Stop()
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := scheduler.Stop(); err != nil {
		log.Warn(shutdownCtx, "scheduler shutdown", "error", err)
	}
	return e.Shutdown(shutdownCtx)
}
