package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aquaplan/aquatutor-backend/api/controllers"
	"github.com/aquaplan/aquatutor-backend/api/middleware"
	"github.com/aquaplan/aquatutor-backend/internal/applications"
	"github.com/aquaplan/aquatutor-backend/internal/auth"
	"github.com/aquaplan/aquatutor-backend/internal/inquiries"
	"github.com/aquaplan/aquatutor-backend/internal/notifications"
	"github.com/aquaplan/aquatutor-backend/internal/signatures"
	"github.com/aquaplan/aquatutor-backend/pkg/auth/session"
	"github.com/aquaplan/aquatutor-backend/pkg/config"
	"github.com/aquaplan/aquatutor-backend/pkg/logger"
	"github.com/aquaplan/aquatutor-backend/pkg/redis"
	"github.com/aquaplan/aquatutor-backend/pkg/zipcloud"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	redisClient *redis.Client,
	sessions session.AccessSessionChecker,
	registry *prometheus.Registry,
	authService auth.Service,
	registerService auth.RegisterService,
	adminRegisterService auth.AdminRegisterService,
	applicationService *applications.Service,
	signatureService *signatures.Service,
	inquiryService *inquiries.Service,
	zipcloudClient *zipcloud.Client,
	dispatcher *notifications.Dispatcher,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
		r.Get("/address", controllers.AddressLookup(zipcloudClient, logg))
		r.Post("/inquiries", controllers.InquirySubmit(inquiryService, logg))
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).Post("/login", controllers.AuthLogin(authService, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, redisClient, logg)).Post("/register", controllers.AuthRegister(registerService, logg))
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, sessions, logg))
			r.Post("/logout", controllers.AuthLogout(authService, logg))
		})
	})

	r.Route("/api/admin/v1/auth", func(r chi.Router) {
		if !cfg.App.IsProd() {
			r.Post("/register", controllers.AdminAuthRegister(adminRegisterService, logg))
		}
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).Post("/login", controllers.AdminAuthLogin(authService, logg))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessions, logg))

		r.Get("/ping", controllers.PrivatePing())

		r.Route("/v1/applications", func(r chi.Router) {
			r.Post("/", controllers.ApplicationSubmit(applicationService, logg))
			r.Get("/", controllers.ApplicationListOwn(applicationService, logg))
			r.Get("/{id}", controllers.ApplicationGet(applicationService, logg))
			r.Post("/{id}/signature", controllers.ApplicationSign(signatureService, logg))
		})
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessions, logg))
		r.Use(middleware.RequireRole("admin", logg))

		r.Get("/ping", controllers.AdminPing())

		r.Route("/v1/applications", func(r chi.Router) {
			r.Get("/", controllers.AdminApplicationList(applicationService, logg))
			r.Post("/{id}/send-contract", controllers.AdminApplicationSendContract(applicationService, logg))
			r.Post("/{id}/approve", controllers.AdminApplicationApprove(applicationService, logg))
			r.Post("/{id}/reject", controllers.AdminApplicationReject(applicationService, logg))
		})
		r.Get("/v1/inquiries", controllers.AdminInquiryList(inquiryService, logg))
		r.Post("/v1/email", controllers.AdminEmailSend(dispatcher, logg))
	})

	return r
}
