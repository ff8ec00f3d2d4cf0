package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/aquaplan/aquatutor-backend/api/routes"
	"github.com/aquaplan/aquatutor-backend/internal/applications"
	"github.com/aquaplan/aquatutor-backend/internal/auth"
	"github.com/aquaplan/aquatutor-backend/internal/contractdoc"
	"github.com/aquaplan/aquatutor-backend/internal/inquiries"
	"github.com/aquaplan/aquatutor-backend/internal/notifications"
	"github.com/aquaplan/aquatutor-backend/internal/profiles"
	"github.com/aquaplan/aquatutor-backend/internal/signatures"
	"github.com/aquaplan/aquatutor-backend/pkg/auth/session"
	"github.com/aquaplan/aquatutor-backend/pkg/config"
	"github.com/aquaplan/aquatutor-backend/pkg/db"
	"github.com/aquaplan/aquatutor-backend/pkg/logger"
	"github.com/aquaplan/aquatutor-backend/pkg/metrics"
	"github.com/aquaplan/aquatutor-backend/pkg/migrate"
	"github.com/aquaplan/aquatutor-backend/pkg/redis"
	"github.com/aquaplan/aquatutor-backend/pkg/resend"
	"github.com/aquaplan/aquatutor-backend/pkg/zipcloud"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	resendOpts := []resend.Option{}
	if cfg.Resend.BaseURL != "" {
		resendOpts = append(resendOpts, resend.WithBaseURL(cfg.Resend.BaseURL))
	}
	if cfg.Resend.From != "" {
		resendOpts = append(resendOpts, resend.WithFrom(cfg.Resend.From))
	}
	mailClient, err := resend.NewClient(cfg.Resend.APIKey, resendOpts...)
	if err != nil {
		logg.Error(context.Background(), "failed to create mail client", err)
		os.Exit(1)
	}

	dispatcher, err := notifications.NewDispatcher(notifications.DispatcherParams{
		Sender:  mailClient,
		Metrics: metrics.NewMailerMetrics(registry),
		Logger:  logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create mail dispatcher", err)
		os.Exit(1)
	}

	zipcloudOpts := []zipcloud.Option{}
	if cfg.Zipcloud.BaseURL != "" {
		zipcloudOpts = append(zipcloudOpts, zipcloud.WithBaseURL(cfg.Zipcloud.BaseURL))
	}
	zipcloudClient := zipcloud.NewClient(zipcloudOpts...)

	profileRepo := profiles.NewRepository(dbClient.DB())

	authService, err := auth.NewService(auth.ServiceParams{
		ProfileRepo:    profileRepo,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	registerService, err := auth.NewRegisterService(auth.RegisterServiceParams{
		DB:             dbClient,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create register service", err)
		os.Exit(1)
	}

	adminRegisterService, err := auth.NewAdminRegisterService(auth.AdminRegisterServiceParams{
		DB:             dbClient,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create admin register service", err)
		os.Exit(1)
	}

	applicationService, err := applications.NewService(applications.ServiceParams{
		Repo:     applications.NewRepository(dbClient.DB()),
		Profiles: profileRepo,
		Builder:  contractdoc.NewBuilder(cfg.Vendor, cfg.Pdf),
		Notifier: dispatcher,
		Vendor:   cfg.Vendor,
		Logger:   logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create application service", err)
		os.Exit(1)
	}

	signatureService, err := signatures.NewService(signatures.ServiceParams{
		Repo:         signatures.NewRepository(dbClient.DB()),
		Applications: applications.NewRepository(dbClient.DB()),
		Notifier:     dispatcher,
		Vendor:       cfg.Vendor,
		Logger:       logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create signature service", err)
		os.Exit(1)
	}

	inquiryService, err := inquiries.NewService(inquiries.ServiceParams{
		Repo:     inquiries.NewRepository(dbClient.DB()),
		Notifier: dispatcher,
		Vendor:   cfg.Vendor,
		Logger:   logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create inquiry service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	id := os.Getenv("DYNO")
	if id == "" {
		id = "local"
	}
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": id,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			redisClient,
			sessionManager,
			registry,
			authService,
			registerService,
			adminRegisterService,
			applicationService,
			signatureService,
			inquiryService,
			zipcloudClient,
			dispatcher,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
