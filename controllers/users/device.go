package users

import (
	"net/http"
	"strings"

	"github.com/ashitoshh01/do-or-due-sub000/middleware"
	"github.com/ashitoshh01/do-or-due-sub000/models"
	"github.com/ashitoshh01/do-or-due-sub000/utils"
)

type registerDeviceRequest struct {
	Token    string `json:"token" validate:"required,maxlen=255"`
	Platform string `json:"platform"`
}

// POST /v1/users/devices
// Re-registering the same token is a no-op so clients can call this on every
// app start.
func (c *Controller) RegisterDevice(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireProfile(w, r)
	if !ok {
		return
	}
	var req registerDeviceRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}
	platform := strings.ToLower(strings.TrimSpace(req.Platform))
	switch platform {
	case "android", "ios", "web":
	case "":
		platform = "android"
	default:
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "platform must be android, ios or web"})
		return
	}

	token := strings.TrimSpace(req.Token)
	var existing models.DeviceToken
	if err := c.DB.Where("user_id = ? AND token = ?", uid, token).First(&existing).Error; err == nil {
		utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Device already registered"})
		return
	}
	row := models.DeviceToken{UserID: uid, Token: token, Platform: platform}
	if err := c.DB.Create(&row).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to register device"})
		return
	}
	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{Success: true, Message: "Device registered"})
}

type removeDeviceRequest struct {
	Token string `json:"token" validate:"required,maxlen=255"`
}

// DELETE /v1/users/devices
func (c *Controller) RemoveDevice(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireProfile(w, r)
	if !ok {
		return
	}
	var req removeDeviceRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}
	res := c.DB.Where("user_id = ? AND token = ?", uid, strings.TrimSpace(req.Token)).Delete(&models.DeviceToken{})
	if res.Error != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}
	if res.RowsAffected == 0 {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Device not found"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Device removed"})
}
