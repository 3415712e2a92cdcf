package routes

import (
	"net/http"

	"github.com/ashitoshh01/do-or-due-sub000/controllers/users"
	"github.com/ashitoshh01/do-or-due-sub000/middleware"
	"github.com/ashitoshh01/do-or-due-sub000/notifier"

	"github.com/gorilla/mux"
	redis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// UsersRoutes registers all member endpoints on the given subrouter.
func UsersRoutes(api *mux.Router, db *gorm.DB, push *notifier.Client, rdb *redis.Client) {
	// 120 reads, 60 writes per user per minute
	userLimiter := middleware.NewUserRateLimiter(120, 60, 60)
	auth := middleware.AuthMiddleware(db, rdb)
	c := users.NewController(db, push)

	chain := func(h http.HandlerFunc) http.Handler {
		return userLimiter.Middleware(auth(h))
	}

	// Profile: ensure-profile is idempotent, safe to call on every sign-in
	api.Handle("/users/me", chain(c.EnsureProfile)).Methods(http.MethodPost)
	api.Handle("/users/me", chain(c.Info)).Methods(http.MethodGet)
	api.Handle("/users/me", chain(c.UpdateProfile)).Methods(http.MethodPut)

	// Task lifecycle
	api.Handle("/users/tasks", chain(c.CreateTask)).Methods(http.MethodPost)
	api.Handle("/users/tasks", chain(c.ListTasks)).Methods(http.MethodGet)
	api.Handle("/users/tasks/{id:[0-9]+}", chain(c.GetTask)).Methods(http.MethodGet)
	api.Handle("/users/tasks/{id:[0-9]+}/proof", chain(c.UploadProof)).Methods(http.MethodPost)
	api.Handle("/users/tasks/{id:[0-9]+}/proof-link", chain(c.SubmitProofLink)).Methods(http.MethodPut)
	api.Handle("/users/tasks/{id:[0-9]+}/expire", chain(c.ExpireTask)).Methods(http.MethodPost)

	// Ledger
	api.Handle("/users/ledger", chain(c.LedgerHistory)).Methods(http.MethodGet)

	// Squads
	api.Handle("/users/squads", chain(c.CreateSquad)).Methods(http.MethodPost)
	api.Handle("/users/squads", chain(c.ListSquads)).Methods(http.MethodGet)
	api.Handle("/users/squads/join", chain(c.JoinSquad)).Methods(http.MethodPost)
	api.Handle("/users/squads/{id:[0-9]+}/membership", chain(c.LeaveSquad)).Methods(http.MethodDelete)

	// Devices
	api.Handle("/users/devices", chain(c.RegisterDevice)).Methods(http.MethodPost)
	api.Handle("/users/devices", chain(c.RemoveDevice)).Methods(http.MethodDelete)

	// Charity
	api.Handle("/users/charity", chain(c.SetDefaultCharity)).Methods(http.MethodPut)
	api.Handle("/users/donations", chain(c.ListDonations)).Methods(http.MethodGet)
}
