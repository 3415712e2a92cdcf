package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/ashitoshh01/do-or-due-sub000/models"
	"github.com/ashitoshh01/do-or-due-sub000/utils"

	redis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func writeJSON(w http.ResponseWriter, status int, resp map[string]interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// AuthMiddleware validates the bearer token issued by the identity provider
// and resolves the caller's profile. The profile id in context is 0 until the
// idempotent ensure-profile call has created the row; handlers that need a
// profile check for that.
func AuthMiddleware(db *gorm.DB, rdb *redis.Client) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authz := r.Header.Get("Authorization")
			if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
				writeJSON(w, http.StatusUnauthorized, map[string]interface{}{
					"success": false,
					"message": "Unauthorized",
				})
				return
			}
			tokenStr := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer "))
			claims, err := utils.ValidateAccessToken(tokenStr, rdb)
			if err != nil {
				if strings.Contains(err.Error(), "expired") {
					writeJSON(w, http.StatusUnauthorized, map[string]interface{}{
						"success": false,
						"message": "Your session has expired, please sign in again.",
					})
					return
				}
				writeJSON(w, http.StatusUnauthorized, map[string]interface{}{
					"success": false,
					"message": "Invalid token",
				})
				return
			}

			// Admin console tokens are not valid on user endpoints.
			if role, _ := claims["role"].(string); role == "admin" {
				writeJSON(w, http.StatusForbidden, map[string]interface{}{
					"success": false,
					"message": "Access denied",
				})
				return
			}

			subject, _ := claims["sub"].(string)
			if subject == "" {
				writeJSON(w, http.StatusUnauthorized, map[string]interface{}{
					"success": false,
					"message": "Invalid token",
				})
				return
			}

			var userID uint
			var user models.User
			err = db.Select("id").Where("subject = ?", subject).First(&user).Error
			switch {
			case err == nil:
				userID = user.ID
			case errors.Is(err, gorm.ErrRecordNotFound):
				// first authenticated call; only ensure-profile is useful yet
			default:
				writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
					"success": false,
					"message": "Database error",
				})
				return
			}

			name, _ := claims["name"].(string)

			ctx := context.WithValue(r.Context(), utils.UserIDKey, userID)
			ctx = context.WithValue(ctx, utils.SubjectKey, subject)
			ctx = context.WithValue(ctx, utils.DisplayNameKey, name)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
