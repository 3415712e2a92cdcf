package users

import (
	"net/http"

	"github.com/ashitoshh01/do-or-due-sub000/middleware"
	"github.com/ashitoshh01/do-or-due-sub000/models"
	"github.com/ashitoshh01/do-or-due-sub000/utils"
)

type setCharityRequest struct {
	CharityID uint `json:"charity_id" validate:"required"`
}

// PUT /v1/users/charity
// Sets the default charity that receives future forfeited stakes.
func (c *Controller) SetDefaultCharity(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireProfile(w, r)
	if !ok {
		return
	}
	var req setCharityRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}
	var charity models.Charity
	if err := c.DB.Where("id = ? AND active = ?", req.CharityID, true).First(&charity).Error; err != nil {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Charity not found"})
		return
	}
	if err := c.DB.Model(&models.User{}).Where("id = ?", uid).Update("default_charity_id", charity.ID).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Default charity updated", Data: charity})
}

// GET /v1/users/donations
// The caller's forfeiture history.
func (c *Controller) ListDonations(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireProfile(w, r)
	if !ok {
		return
	}
	var donations []models.CharityDonation
	if err := c.DB.Where("user_id = ?", uid).Order("id DESC").Limit(100).Find(&donations).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: donations})
}
