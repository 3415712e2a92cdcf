package admins

import (
	"net/http"
	"time"

	"github.com/ashitoshh01/do-or-due-sub000/engine"
	"github.com/ashitoshh01/do-or-due-sub000/models"
	"github.com/ashitoshh01/do-or-due-sub000/utils"
)

// GET /v1/admin/dashboard
func (c *Controller) Dashboard(w http.ResponseWriter, r *http.Request) {
	var totalUsers int64
	var pendingReview int64
	var openTasks int64
	var totalBalance int64
	var totalDonated int64
	var settledToday int64

	if err := c.DB.Model(&models.User{}).Count(&totalUsers).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}
	c.DB.Model(&models.Task{}).Where("status = ?", engine.StatusPendingReview).Count(&pendingReview)
	c.DB.Model(&models.Task{}).Where("status = ?", engine.StatusPending).Count(&openTasks)
	c.DB.Model(&models.User{}).Select("COALESCE(SUM(balance), 0)").Scan(&totalBalance)
	c.DB.Model(&models.CharityDonation{}).Select("COALESCE(SUM(amount), 0)").Scan(&totalDonated)

	startOfDay := time.Now().Truncate(24 * time.Hour)
	c.DB.Model(&models.Task{}).
		Where("status IN ? AND reviewed_at >= ?", []string{engine.StatusSuccess, engine.StatusFailed}, startOfDay).
		Count(&settledToday)

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: map[string]interface{}{
		"total_users":    totalUsers,
		"pending_review": pendingReview,
		"open_tasks":     openTasks,
		"total_balance":  totalBalance,
		"total_donated":  totalDonated,
		"settled_today":  settledToday,
	}})
}
