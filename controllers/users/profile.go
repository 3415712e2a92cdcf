package users

import (
	"errors"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/ashitoshh01/do-or-due-sub000/middleware"
	"github.com/ashitoshh01/do-or-due-sub000/models"
	"github.com/ashitoshh01/do-or-due-sub000/utils"

	"gorm.io/gorm"
)

func startingBalance() int64 {
	if s := os.Getenv("STARTING_BALANCE"); s != "" {
		if v, err := strconv.ParseInt(s, 10, 64); err == nil && v >= 0 {
			return v
		}
	}
	return 500
}

// POST /v1/users/me
// Idempotent: the first call after sign-up creates the profile row with the
// starting balance, later calls return the existing row.
func (c *Controller) EnsureProfile(w http.ResponseWriter, r *http.Request) {
	subject, ok := utils.GetSubject(r)
	if !ok || subject == "" {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	var user models.User
	err := c.DB.Where("subject = ?", subject).First(&user).Error
	switch {
	case err == nil:
		utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: user})
		return
	case errors.Is(err, gorm.ErrRecordNotFound):
	default:
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}

	name := strings.TrimSpace(utils.GetDisplayName(r))
	if name == "" {
		name = "Member"
	}
	user = models.User{
		Subject: subject,
		Name:    name,
		Balance: startingBalance(),
		Plan:    "base",
	}
	if err := c.DB.Create(&user).Error; err != nil {
		// A concurrent first call may have won the unique index race.
		if err2 := c.DB.Where("subject = ?", subject).First(&user).Error; err2 == nil {
			utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: user})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}
	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{Success: true, Message: "Profile created", Data: user})
}

// GET /v1/users/me
func (c *Controller) Info(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireProfile(w, r)
	if !ok {
		return
	}
	var user models.User
	if err := c.DB.First(&user, uid).Error; err != nil {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Profile not found"})
		return
	}

	var pending int64
	c.DB.Model(&models.Task{}).Where("user_id = ? AND status IN ?", uid, []string{"pending", "pending_review"}).Count(&pending)

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: map[string]interface{}{
		"user":       user,
		"open_tasks": pending,
	}})
}

type updateProfileRequest struct {
	Name string `json:"name" validate:"required,nameok,maxlen=100"`
}

// PUT /v1/users/me
func (c *Controller) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireProfile(w, r)
	if !ok {
		return
	}
	var req updateProfileRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}
	if err := c.DB.Model(&models.User{}).Where("id = ?", uid).Update("name", strings.TrimSpace(req.Name)).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Profile updated"})
}
