package httpd

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/eshoplabs/auth"
)

// Options tunes the transport layer, not the engine.
type Options struct {
	// AllowedOrigins feeds the CORS policy. Credentialed cross-site cookies
	// require explicit origins, not a wildcard.
	AllowedOrigins []string
}

// Server exposes the engine over HTTP.
type Server struct {
	engine *auth.Engine
	logger *zap.Logger
}

// New builds the route tree. The returned handler is ready for http.Server.
func New(engine *auth.Engine, logger *zap.Logger, opts Options) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{engine: engine, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if len(opts.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   opts.AllowedOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost},
			AllowedHeaders:   []string{"Accept", "Content-Type"},
			AllowCredentials: true,
		}))
	}

	r.Post("/user-registration", s.handleUserRegistration)
	r.Post("/verify-user", s.handleVerifyUser)
	r.Post("/login-user", s.handleLoginUser)
	r.Post("/refresh-token", s.handleRefreshToken)
	r.Post("/forgot-password-user", s.handleForgotPassword(auth.RoleUser))
	r.Post("/verify-forgot-password-user", s.handleVerifyForgotPassword)
	r.Post("/reset-password-user", s.handleResetPassword(auth.RoleUser))

	r.Post("/seller-registration", s.handleSellerRegistration)
	r.Post("/verify-seller", s.handleVerifySeller)
	r.Post("/login-seller", s.handleLoginSeller)
	r.Post("/create-shop", s.handleCreateShop)
	r.Post("/add-payout-account", s.handleAddPayoutAccount)
	r.Post("/forgot-password-seller", s.handleForgotPassword(auth.RoleSeller))
	r.Post("/verify-forgot-password-seller", s.handleVerifyForgotPassword)
	r.Post("/reset-password-seller", s.handleResetPassword(auth.RoleSeller))

	r.Group(func(g chi.Router) {
		g.Use(s.requireAuth)
		g.With(s.requireRole(auth.RoleUser)).Get("/logged-in-user", s.handleLoggedIn(auth.RoleUser))
		g.With(s.requireRole(auth.RoleSeller)).Get("/logged-in-seller", s.handleLoggedIn(auth.RoleSeller))
	})

	return r
}
