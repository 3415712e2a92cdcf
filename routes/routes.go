package routes

import (
	"encoding/json"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/ashitoshh01/do-or-due-sub000/controllers"
	"github.com/ashitoshh01/do-or-due-sub000/middleware"
	"github.com/ashitoshh01/do-or-due-sub000/notifier"
	"github.com/ashitoshh01/do-or-due-sub000/scheduler"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	redis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func optionsHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

// InitRouter wires every endpoint. All handles come in through parameters;
// nothing here reaches for globals.
func InitRouter(db *gorm.DB, push *notifier.Client, rdb *redis.Client) *mux.Router {
	r := mux.NewRouter()

	// Health check endpoint for container health checks (root level)
	r.Handle("/health", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
			"service":   "doordue-api",
		})
	})).Methods(http.MethodGet)

	// CORS - origins from CORS_ALLOWED_ORIGINS (comma-separated) or defaults
	originsEnv := os.Getenv("CORS_ALLOWED_ORIGINS")
	origins := []string{
		"http://localhost:3000", "http://localhost:8080", "http://127.0.0.1:3000", "http://127.0.0.1:8080",
	}
	if originsEnv != "" {
		for _, p := range strings.Split(originsEnv, ",") {
			if o := strings.TrimSpace(p); o != "" {
				origins = append(origins, o)
			}
		}
	}
	r.Use(func(next http.Handler) http.Handler {
		return handlers.CORS(
			handlers.AllowedOrigins(origins),
			handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"}),
			handlers.AllowedHeaders([]string{"Content-Type", "Authorization", "X-CRON-KEY", "X-Requested-With", "X-Request-ID"}),
			handlers.AllowCredentials(),
		)(next)
	})

	api := r.PathPrefix("/v1").Subrouter()

	// Catch-all OPTIONS handler for CORS preflight
	api.PathPrefix("/").HandlerFunc(optionsHandler).Methods(http.MethodOptions)

	// Cron sweeps: 1000/hour per IP, X-CRON-KEY checked inside the chain
	cronLimiter := middleware.NewIPRateLimiter(1000, time.Hour)
	// Relay: 500/hour per IP, whitelist, sliding window
	relayLimiter := middleware.NewWebhookLimiter(500, time.Hour, []string{"127.0.0.1"})

	scanner := scheduler.NewScanner(db, push)
	cronKey := middleware.CronKeyMiddleware(os.Getenv("CRON_KEY"))

	// DB-backed health and the public charity list
	api.Handle("/healthz", controllers.Health(db)).Methods(http.MethodGet)
	api.Handle("/charities", controllers.CharityList(db)).Methods(http.MethodGet)

	// Open relay used by the client to ping reviewers about fresh proofs
	api.Handle("/notify-admin", relayLimiter.Middleware(controllers.NotifyAdmin(push))).Methods(http.MethodPost, http.MethodOptions, http.MethodGet, http.MethodPut, http.MethodDelete)

	// Ops sweep mirroring the scheduled expiry (protected via X-CRON-KEY)
	api.Handle("/cron/expire-overdue", cronLimiter.Middleware(cronKey(controllers.ExpireOverdueSweep(scanner)))).Methods(http.MethodPost)

	UsersRoutes(api, db, push, rdb)
	AdminRoutes(api, db, push, rdb)

	return r
}
