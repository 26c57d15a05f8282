package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"gamerent-backend/internal/jobs"
	"gamerent-backend/internal/security"
	"gamerent-backend/internal/service"
	"gamerent-backend/internal/storage"
)

// RouterConfig collects everything the HTTP surface needs.
type RouterConfig struct {
	Auth          service.AuthService
	Orders        service.OrderService
	Accounts      service.AccountService
	Ledger        service.LedgerService
	Notifications service.NotificationService
	Tokens        security.TokenManager
	Files         storage.Storage
	JobRunner     *jobs.JobRunner
	MaxFileSizeMB int64
}

// NewRouter wires all handlers under /api/v1. Public routes carry signup,
// login and the account catalog; everything else requires a token, and
// /admin requires the admin role.
func NewRouter(cfg RouterConfig) http.Handler {
	authHandler := NewAuthHandler(cfg.Auth)
	orderHandler := NewOrderHandler(cfg.Orders, cfg.Files, cfg.MaxFileSizeMB)
	adminOrderHandler := NewAdminOrderHandler(cfg.Orders)
	accountHandler := NewAccountHandler(cfg.Accounts)
	ledgerHandler := NewLedgerHandler(cfg.Ledger, cfg.Files, cfg.MaxFileSizeMB)
	notificationHandler := NewNotificationHandler(cfg.Notifications)

	root := mux.NewRouter()
	root.Use(loggingMiddleware)

	api := root.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api.HandleFunc("/auth/signup", authHandler.Signup).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)

	api.HandleFunc("/accounts", accountHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/accounts/{id:[0-9]+}", accountHandler.Get).Methods(http.MethodGet)

	authed := api.NewRoute().Subrouter()
	authed.Use(authMiddleware(cfg.Tokens))

	authed.HandleFunc("/orders", orderHandler.Create).Methods(http.MethodPost)
	authed.HandleFunc("/orders", orderHandler.ListMine).Methods(http.MethodGet)
	authed.HandleFunc("/orders/{id:[0-9]+}/cancel", orderHandler.Cancel).Methods(http.MethodPost)

	authed.HandleFunc("/balance", ledgerHandler.GetBalance).Methods(http.MethodGet)
	authed.HandleFunc("/transactions", ledgerHandler.ListTransactions).Methods(http.MethodGet)
	authed.HandleFunc("/deposits", ledgerHandler.CreateDeposit).Methods(http.MethodPost)
	authed.HandleFunc("/deposits/{id:[0-9]+}/cancel", ledgerHandler.CancelDeposit).Methods(http.MethodPost)

	authed.HandleFunc("/notifications", notificationHandler.List).Methods(http.MethodGet)
	authed.HandleFunc("/notifications/{id:[0-9]+}/read", notificationHandler.MarkAsRead).Methods(http.MethodPost)

	admin := authed.PathPrefix("/admin").Subrouter()
	admin.Use(adminOnly)

	admin.HandleFunc("/orders", adminOrderHandler.List).Methods(http.MethodGet)
	admin.HandleFunc("/orders/{id:[0-9]+}/approve", adminOrderHandler.Approve).Methods(http.MethodPost)
	admin.HandleFunc("/orders/{id:[0-9]+}/reject", adminOrderHandler.Reject).Methods(http.MethodPost)
	admin.HandleFunc("/orders/{id:[0-9]+}/verify", adminOrderHandler.Verify).Methods(http.MethodPost)
	admin.HandleFunc("/orders/{id:[0-9]+}/complete", adminOrderHandler.Complete).Methods(http.MethodPost)
	admin.HandleFunc("/orders/{id:[0-9]+}/extend", adminOrderHandler.Extend).Methods(http.MethodPost)
	admin.HandleFunc("/orders/{id:[0-9]+}/reviewed", adminOrderHandler.MarkReviewed).Methods(http.MethodPost)

	admin.HandleFunc("/accounts", accountHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/accounts/{id:[0-9]+}/status", accountHandler.SetStatus).Methods(http.MethodPut)
	admin.HandleFunc("/accounts/{id:[0-9]+}", accountHandler.Delete).Methods(http.MethodDelete)

	admin.HandleFunc("/deposits/{id:[0-9]+}/approve", ledgerHandler.ApproveDeposit).Methods(http.MethodPost)
	admin.HandleFunc("/deposits/{id:[0-9]+}/reject", ledgerHandler.RejectDeposit).Methods(http.MethodPost)

	admin.HandleFunc("/sweep", func(w http.ResponseWriter, r *http.Request) {
		result := cfg.JobRunner.RunScheduledSweep(r.Context())
		writeJSON(w, http.StatusOK, result)
	}).Methods(http.MethodPost)

	return root
}
