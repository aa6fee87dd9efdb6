package httpx

import (
	"log/slog"
	"net/http"

	"github.com/meridianbank/bankadmin-api/internal/observability/statsd"
	"github.com/meridianbank/bankadmin-api/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Gate          AdminVerifier
	Auth          AuthServiceInterface
	Accounts      *service.AccountService
	Transactions  *service.TransactionService
	Verifications *service.VerificationService
	Wires         *service.WireService
	Wallets       *service.WalletService
	Audit         *service.AuditService
	Roster        *service.RosterService
	Metrics       statsd.Sink
	CookieDomain  string
	Logger        *slog.Logger
}

// NewRouter creates and configures the HTTP router. Every /api/admin route
// passes through the bearer-credential gate; auth-flow and health routes
// do not.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	adminOnly := func(h http.Handler) http.Handler {
		if services.Gate != nil {
			return RequireAdmin(services.Gate)(h)
		}
		return h
	}

	registerAccountRoutes(mux, &AccountHandlers{Svc: services.Accounts}, adminOnly)
	registerTransactionRoutes(mux, &TransactionHandlers{Svc: services.Transactions}, adminOnly)
	registerVerificationRoutes(mux, &VerificationHandlers{Svc: services.Verifications}, adminOnly)
	registerWireRoutes(mux, &WireHandlers{Svc: services.Wires}, adminOnly)
	registerWalletRoutes(mux, &WalletHandlers{Svc: services.Wallets}, adminOnly)
	registerAuditRoutes(mux, &AuditHandlers{Svc: services.Audit}, adminOnly)
	registerRosterRoutes(mux, &RosterHandlers{Svc: services.Roster}, adminOnly)

	if services.Auth != nil {
		registerAuthRoutes(mux, &AuthHandlers{
			Svc:          services.Auth,
			CookieDomain: services.CookieDomain,
			Logger:       services.Logger,
		})
	}

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}
	var handler http.Handler = mux
	handler = Logging(logger)(handler)
	if services.Metrics != nil {
		handler = Metrics(services.Metrics)(handler)
	}
	return Recover(logger)(handler)
}

type routeMiddleware func(http.Handler) http.Handler

func registerAccountRoutes(mux *http.ServeMux, h *AccountHandlers, mw routeMiddleware) {
	mux.Handle("GET /api/admin/accounts", mw(http.HandlerFunc(h.List)))
	mux.Handle("GET /api/admin/accounts/{id}", mw(http.HandlerFunc(h.GetByID)))
	mux.Handle("PUT /api/admin/accounts/{id}", mw(http.HandlerFunc(h.Update)))
	mux.Handle("POST /api/admin/accounts/{id}/approve-funding", mw(http.HandlerFunc(h.ApproveFunding)))
}

func registerTransactionRoutes(mux *http.ServeMux, h *TransactionHandlers, mw routeMiddleware) {
	mux.Handle("GET /api/admin/transactions", mw(http.HandlerFunc(h.List)))
	mux.Handle("GET /api/admin/transactions/{id}", mw(http.HandlerFunc(h.GetByID)))
	mux.Handle("PUT /api/admin/transactions/{id}", mw(http.HandlerFunc(h.Update)))
	mux.Handle("DELETE /api/admin/transactions/{id}", mw(http.HandlerFunc(h.Delete)))
}

func registerVerificationRoutes(mux *http.ServeMux, h *VerificationHandlers, mw routeMiddleware) {
	mux.Handle("GET /api/admin/verifications", mw(http.HandlerFunc(h.List)))
	mux.Handle("GET /api/admin/verifications/{id}", mw(http.HandlerFunc(h.GetByID)))
	mux.Handle("POST /api/admin/verifications/{id}/review", mw(http.HandlerFunc(h.Review)))
}

func registerWireRoutes(mux *http.ServeMux, h *WireHandlers, mw routeMiddleware) {
	mux.Handle("GET /api/admin/wires", mw(http.HandlerFunc(h.List)))
	mux.Handle("GET /api/admin/wires/{id}", mw(http.HandlerFunc(h.GetByID)))
	mux.Handle("POST /api/admin/wires/{id}/suspend", mw(http.HandlerFunc(h.Suspend)))
	mux.Handle("POST /api/admin/wires/{id}/release", mw(http.HandlerFunc(h.Release)))
}

func registerWalletRoutes(mux *http.ServeMux, h *WalletHandlers, mw routeMiddleware) {
	mux.Handle("POST /api/admin/wallets", mw(http.HandlerFunc(h.Create)))
	mux.Handle("GET /api/admin/wallets", mw(http.HandlerFunc(h.List)))
	mux.Handle("GET /api/admin/wallets/{id}", mw(http.HandlerFunc(h.GetByID)))
	mux.Handle("POST /api/admin/wallets/{id}/retire", mw(http.HandlerFunc(h.Retire)))
}

func registerAuditRoutes(mux *http.ServeMux, h *AuditHandlers, mw routeMiddleware) {
	mux.Handle("GET /api/admin/audit", mw(http.HandlerFunc(h.List)))
}

func registerRosterRoutes(mux *http.ServeMux, h *RosterHandlers, mw routeMiddleware) {
	mux.Handle("GET /api/admin/roster", mw(http.HandlerFunc(h.List)))
	mux.Handle("POST /api/admin/roster", mw(http.HandlerFunc(h.Add)))
	mux.Handle("DELETE /api/admin/roster/{id}", mw(http.HandlerFunc(h.Remove)))
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers) {
	mux.HandleFunc("GET /auth/login", h.Login)
	mux.HandleFunc("GET /auth/callback", h.Callback)
	mux.HandleFunc("POST /auth/logout", h.Logout)
	mux.HandleFunc("GET /auth/status", h.Status)
}
