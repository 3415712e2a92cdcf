package routes

import (
	"net/http"
	"time"

	"github.com/ashitoshh01/do-or-due-sub000/controllers/admins"
	"github.com/ashitoshh01/do-or-due-sub000/middleware"
	"github.com/ashitoshh01/do-or-due-sub000/notifier"

	"github.com/gorilla/mux"
	redis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// AdminRoutes registers the review console endpoints on the given subrouter.
func AdminRoutes(api *mux.Router, db *gorm.DB, push *notifier.Client, rdb *redis.Client) {
	// 20 login attempts per IP per 5 minutes; the per-account lockout is
	// handled inside the login handler
	loginLimiter := middleware.NewIPRateLimiter(20, 5*time.Minute)
	adminAuth := middleware.AdminAuthMiddleware(db, rdb)
	c := admins.NewController(db, push, rdb)

	chain := func(h http.HandlerFunc) http.Handler {
		return adminAuth(h)
	}

	api.Handle("/admin/login", loginLimiter.Middleware(http.HandlerFunc(c.Login))).Methods(http.MethodPost)

	// Review queue
	api.Handle("/admin/tasks/pending", chain(c.PendingReviewList)).Methods(http.MethodGet)
	api.Handle("/admin/tasks/{id:[0-9]+}/approve", chain(c.ApproveTask)).Methods(http.MethodPost)
	api.Handle("/admin/tasks/{id:[0-9]+}/reject", chain(c.RejectTask)).Methods(http.MethodPost)

	// Users
	api.Handle("/admin/users", chain(c.UserList)).Methods(http.MethodGet)
	api.Handle("/admin/users/{id:[0-9]+}", chain(c.UserDetail)).Methods(http.MethodGet)
	api.Handle("/admin/users/{id:[0-9]+}/plan", chain(c.SetUserPlan)).Methods(http.MethodPut)
	api.Handle("/admin/users/{id:[0-9]+}", chain(c.DeleteUser)).Methods(http.MethodDelete)

	// Charities and donations
	api.Handle("/admin/charities", chain(c.CreateCharity)).Methods(http.MethodPost)
	api.Handle("/admin/charities/{id:[0-9]+}/deactivate", chain(c.DeactivateCharity)).Methods(http.MethodPut)
	api.Handle("/admin/donations", chain(c.DonationReport)).Methods(http.MethodGet)

	// Dashboard
	api.Handle("/admin/dashboard", chain(c.Dashboard)).Methods(http.MethodGet)
}
