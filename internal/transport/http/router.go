package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/pcichat/accounts-api/internal/application/registration"
	"github.com/pcichat/accounts-api/internal/application/session"
	"github.com/pcichat/accounts-api/internal/config"
	jwtinfra "github.com/pcichat/accounts-api/internal/infrastructure/jwt"
	"github.com/pcichat/accounts-api/internal/pkg/otp"
	"github.com/pcichat/accounts-api/internal/transport/http/handler"
	appmiddleware "github.com/pcichat/accounts-api/internal/transport/http/middleware"
	"golang.org/x/time/rate"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	UserRepo    UserRepository
	PendingRepo PendingRepository
	Mailer      Mailer
	JWTProvider *jwtinfra.Provider
}

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	var authMw func(http.Handler) http.Handler
	if deps.JWTProvider != nil {
		authMw = appmiddleware.Auth(deps.JWTProvider)
	} else {
		authMw = func(next http.Handler) http.Handler { return next }
	}

	// 5 requests/second, burst of 10 — applied to the public credential endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	registrationSvc := registration.NewService(registration.ServiceDeps{
		UserRepo:      deps.UserRepo,
		PendingRepo:   deps.PendingRepo,
		Mailer:        deps.Mailer,
		Codes:         otp.Generator{},
		AllowedDomain: cfg.AllowedEmailDomain,
	})
	sessionDeps := session.ServiceDeps{
		Verifier:      session.NewStoreVerifier(deps.UserRepo),
		UserRepo:      deps.UserRepo,
		AllowedDomain: cfg.AllowedEmailDomain,
	}
	if deps.JWTProvider != nil {
		sessionDeps.Signer = deps.JWTProvider
	}
	sessionSvc := session.NewService(sessionDeps)

	healthH := handler.NewHealthHandler()
	registerH := handler.NewRegisterHandler(registrationSvc)
	sessionH := handler.NewSessionHandler(sessionSvc)

	r.Route("/v1", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health-check/{action}", healthH.Ping)
		r.Post("/health-check/{action}", healthH.Ping)
		r.With(sensitiveRL.Limit).Post("/register", registerH.Register)
		r.With(sensitiveRL.Limit).Post("/sessions/login", sessionH.Login)

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.Get("/sessions", sessionH.GetCurrent)
		})
	})

	return r
}
