package admins

import (
	"net/http"
	"strings"

	"github.com/ashitoshh01/do-or-due-sub000/middleware"
	"github.com/ashitoshh01/do-or-due-sub000/models"
	"github.com/ashitoshh01/do-or-due-sub000/utils"
)

type charityRequest struct {
	Name    string `json:"name" validate:"required,maxlen=100"`
	Website string `json:"website" validate:"maxlen=255"`
}

// POST /v1/admin/charities
func (c *Controller) CreateCharity(w http.ResponseWriter, r *http.Request) {
	var req charityRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}
	charity := models.Charity{Name: strings.TrimSpace(req.Name), Active: true}
	if site := strings.TrimSpace(req.Website); site != "" {
		charity.Website = &site
	}
	if err := c.DB.Create(&charity).Error; err != nil {
		utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: "Charity already exists"})
		return
	}
	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{Success: true, Message: "Charity created", Data: charity})
}

// PUT /v1/admin/charities/{id}/deactivate
// Deactivated charities stop appearing in the public list; existing donation
// rows keep pointing at them.
func (c *Controller) DeactivateCharity(w http.ResponseWriter, r *http.Request) {
	charityID, ok := userPathID(w, r)
	if !ok {
		return
	}
	res := c.DB.Model(&models.Charity{}).Where("id = ?", charityID).Update("active", false)
	if res.Error != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}
	if res.RowsAffected == 0 {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Charity not found"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Charity deactivated"})
}

// GET /v1/admin/donations
// Donation totals per charity, including the unassigned bucket.
func (c *Controller) DonationReport(w http.ResponseWriter, r *http.Request) {
	type row struct {
		CharityID *uint `json:"charity_id"`
		Total     int64 `json:"total"`
		Count     int64 `json:"count"`
	}
	var rows []row
	if err := c.DB.Model(&models.CharityDonation{}).
		Select("charity_id, COALESCE(SUM(amount), 0) AS total, COUNT(*) AS count").
		Group("charity_id").Scan(&rows).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}

	var charities []models.Charity
	c.DB.Find(&charities)
	nameByID := map[uint]string{}
	for _, ch := range charities {
		nameByID[ch.ID] = ch.Name
	}

	resp := make([]map[string]interface{}, 0, len(rows))
	for _, r2 := range rows {
		name := "Unassigned"
		if r2.CharityID != nil {
			if n, ok := nameByID[*r2.CharityID]; ok {
				name = n
			}
		}
		resp = append(resp, map[string]interface{}{
			"charity_id": r2.CharityID,
			"charity":    name,
			"total":      r2.Total,
			"count":      r2.Count,
		})
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: resp})
}
