package admins

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ashitoshh01/do-or-due-sub000/middleware"
	"github.com/ashitoshh01/do-or-due-sub000/models"
	"github.com/ashitoshh01/do-or-due-sub000/utils"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// GET /v1/admin/users?page=&limit=&search=
func (c *Controller) UserList(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 {
		limit = 20
	}
	search := strings.TrimSpace(r.URL.Query().Get("search"))

	countQuery := c.DB.Model(&models.User{})
	if search != "" {
		countQuery = countQuery.Where("name LIKE ?", "%"+search+"%")
	}
	var totalRows int64
	if err := countQuery.Count(&totalRows).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}
	totalPages := int(math.Ceil(float64(totalRows) / float64(limit)))
	offset := (page - 1) * limit

	var users []models.User
	query := c.DB.Model(&models.User{})
	if search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}
	if err := query.Order("id DESC").Limit(limit).Offset(offset).Find(&users).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data: map[string]interface{}{
			"data": users,
			"pagination": map[string]interface{}{
				"page":        page,
				"limit":       limit,
				"total_rows":  totalRows,
				"total_pages": totalPages,
			},
		},
	})
}

// GET /v1/admin/users/{id}
func (c *Controller) UserDetail(w http.ResponseWriter, r *http.Request) {
	userID, ok := userPathID(w, r)
	if !ok {
		return
	}
	var user models.User
	if err := c.DB.First(&user, userID).Error; err != nil {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "User not found"})
		return
	}
	var tasks []models.Task
	c.DB.Where("user_id = ?", userID).Order("id DESC").Limit(20).Find(&tasks)

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: map[string]interface{}{
		"user":         user,
		"recent_tasks": tasks,
	}})
}

type setPlanRequest struct {
	Plan string `json:"plan" validate:"required"`
	Days int    `json:"days"`
}

// PUT /v1/admin/users/{id}/plan
func (c *Controller) SetUserPlan(w http.ResponseWriter, r *http.Request) {
	userID, ok := userPathID(w, r)
	if !ok {
		return
	}
	var req setPlanRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}
	plan := strings.ToLower(strings.TrimSpace(req.Plan))
	switch plan {
	case "base", "pro", "elite":
	default:
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "plan must be base, pro or elite"})
		return
	}

	updates := map[string]interface{}{"plan": plan}
	if plan == "base" {
		updates["plan_expires_at"] = nil
	} else {
		days := req.Days
		if days <= 0 {
			days = 30
		}
		updates["plan_expires_at"] = time.Now().AddDate(0, 0, days)
	}
	res := c.DB.Model(&models.User{}).Where("id = ?", userID).Updates(updates)
	if res.Error != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}
	if res.RowsAffected == 0 {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "User not found"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Plan updated"})
}

// DELETE /v1/admin/users/{id}
// Removes the profile and its dependent rows. Ledger entries are kept for
// audit.
func (c *Controller) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := userPathID(w, r)
	if !ok {
		return
	}
	var user models.User
	if err := c.DB.First(&user, userID).Error; err != nil {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "User not found"})
		return
	}
	err := c.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.DeviceToken{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.SquadMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, userID).Error
	})
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "User deleted"})
}

func userPathID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	idStr := mux.Vars(r)["id"]
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid id"})
		return 0, false
	}
	return uint(id), true
}
