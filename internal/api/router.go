package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dadportal/dinojump-go/internal/api/handler"
	"github.com/dadportal/dinojump-go/internal/api/middleware"
	"github.com/dadportal/dinojump-go/internal/services/guardian"
	"github.com/dadportal/dinojump-go/internal/services/ledger"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger        *slog.Logger
	LedgerService *ledger.Service
	GuardianGate  *guardian.Gate
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	profileHandler := handler.NewProfileHandler(cfg.LedgerService)
	guardianHandler := handler.NewGuardianHandler(cfg.GuardianGate)

	// Create middleware
	guardianMiddleware := middleware.Guardian(cfg.GuardianGate)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Player routes (the game client calls these without a guardian session)
	api.HandleFunc("/players/{player}/profile", profileHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/players/{player}/runs", profileHandler.BeginRun).Methods(http.MethodPost)
	api.HandleFunc("/players/{player}/scores", profileHandler.RecordScore).Methods(http.MethodPost)

	// Guardian gate routes (entering the gate needs no session)
	api.HandleFunc("/guardian/verify", guardianHandler.Verify).Methods(http.MethodPost)
	api.HandleFunc("/guardian/lockout", guardianHandler.Lockout).Methods(http.MethodGet)

	// Guarded player routes (require a verified guardian session)
	guarded := api.PathPrefix("/players").Subrouter()
	guarded.Use(guardianMiddleware)
	guarded.HandleFunc("/{player}/attempts/reset", profileHandler.ResetAttempts).Methods(http.MethodPost)
	guarded.HandleFunc("/{player}/settings", profileHandler.UpdateSettings).Methods(http.MethodPatch)

	// Guarded guardian routes
	guardedGate := api.PathPrefix("/guardian").Subrouter()
	guardedGate.Use(guardianMiddleware)
	guardedGate.HandleFunc("/pin", guardianHandler.SetPIN).Methods(http.MethodPut)
	guardedGate.HandleFunc("/close", guardianHandler.Close).Methods(http.MethodPost)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
