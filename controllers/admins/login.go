package admins

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/ashitoshh01/do-or-due-sub000/middleware"
	"github.com/ashitoshh01/do-or-due-sub000/models"
	"github.com/ashitoshh01/do-or-due-sub000/utils"
)

type loginRequest struct {
	Username string `json:"username" validate:"required,maxlen=100"`
	Password string `json:"password" validate:"required,maxlen=128"`
}

// POST /v1/admin/login
// The console is the only place the backend issues tokens itself; member
// tokens come from the identity provider.
func (c *Controller) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	admin, err := models.GetAdminByUsername(c.DB, strings.TrimSpace(req.Username))
	if err != nil {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Invalid username or password"})
		return
	}

	if locked, ttl := middleware.IsAdminLocked(c.RDB, uint(admin.ID)); locked {
		utils.WriteJSON(w, http.StatusTooManyRequests, utils.APIResponse{
			Success: false,
			Message: fmt.Sprintf("Account locked, try again in %d seconds", int(ttl.Seconds())),
		})
		return
	}

	if !admin.ValidatePassword(req.Password) {
		middleware.RecordFailedAdminLogin(c.RDB, uint(admin.ID))
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Invalid username or password"})
		return
	}
	middleware.ResetFailedAdminLogin(c.RDB, uint(admin.ID))

	token, err := utils.GenerateAdminJWT(admin.ID, admin.Username)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to issue token"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: map[string]interface{}{
		"token": token,
		"admin": map[string]interface{}{
			"id":       admin.ID,
			"username": admin.Username,
			"name":     admin.Name,
		},
	}})
}
