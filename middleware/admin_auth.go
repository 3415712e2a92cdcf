package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/ashitoshh01/do-or-due-sub000/models"
	"github.com/ashitoshh01/do-or-due-sub000/utils"

	redis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// AdminAuthMiddleware verifies that the request carries a locally issued
// admin token and that the admin account still exists and is active.
func AdminAuthMiddleware(db *gorm.DB, rdb *redis.Client) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{
					Success: false,
					Message: "Unauthorized: No token provided",
				})
				return
			}
			tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

			claims, err := utils.ValidateAccessToken(tokenString, rdb)
			if err != nil {
				utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{
					Success: false,
					Message: "Unauthorized: Invalid token",
				})
				return
			}

			role, ok := claims["role"].(string)
			if !ok || role != "admin" {
				utils.WriteJSON(w, http.StatusForbidden, utils.APIResponse{
					Success: false,
					Message: "Forbidden: Admin access required",
				})
				return
			}

			// id arrives as a JSON number
			var adminID int64
			if rawID, ok := claims["id"]; ok {
				switch v := rawID.(type) {
				case float64:
					adminID = int64(v)
				case int64:
					adminID = v
				case string:
					_, _ = fmt.Sscanf(v, "%d", &adminID)
				}
			}

			var admin models.Admin
			if err := db.First(&admin, adminID).Error; err != nil {
				utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{
					Success: false,
					Message: "Unauthorized: Admin not found",
				})
				return
			}
			if !admin.IsActive {
				utils.WriteJSON(w, http.StatusForbidden, utils.APIResponse{
					Success: false,
					Message: "Forbidden",
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// CronKeyMiddleware guards ops sweep endpoints with the static X-CRON-KEY
// header.
func CronKeyMiddleware(key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if key == "" || r.Header.Get("X-CRON-KEY") != key {
				utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{
					Success: false,
					Message: "Unauthorized",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
