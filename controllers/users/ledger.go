package users

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ashitoshh01/do-or-due-sub000/models"
	"github.com/ashitoshh01/do-or-due-sub000/utils"
)

// GET /v1/users/ledger?flow=&page=&limit=&search=
func (c *Controller) LedgerHistory(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireProfile(w, r)
	if !ok {
		return
	}

	flow := strings.TrimSpace(r.URL.Query().Get("flow"))
	searchQuery := strings.TrimSpace(r.URL.Query().Get("search"))

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 {
		limit = 10
	}

	countQuery := c.DB.Model(&models.LedgerEntry{}).Where("user_id = ?", uid)
	if flow == "debit" || flow == "credit" {
		countQuery = countQuery.Where("flow = ?", flow)
	}
	if searchQuery != "" {
		countQuery = countQuery.Where("reference_id LIKE ?", "%"+searchQuery+"%")
	}

	var totalRows int64
	if err := countQuery.Count(&totalRows).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}

	totalPages := int(math.Ceil(float64(totalRows) / float64(limit)))
	offset := (page - 1) * limit

	var entries []models.LedgerEntry
	query := c.DB.Where("user_id = ?", uid)
	if flow == "debit" || flow == "credit" {
		query = query.Where("flow = ?", flow)
	}
	if searchQuery != "" {
		query = query.Where("reference_id LIKE ?", "%"+searchQuery+"%")
	}
	if err := query.Order("id DESC").Limit(limit).Offset(offset).Find(&entries).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}

	type entryDTO struct {
		ID          uint    `json:"id"`
		TaskID      *uint   `json:"task_id,omitempty"`
		Amount      int64   `json:"amount"`
		ReferenceID string  `json:"reference_id"`
		Flow        string  `json:"flow"`
		EntryType   string  `json:"entry_type"`
		Message     *string `json:"message,omitempty"`
		CreatedAt   string  `json:"created_at"`
	}
	items := make([]entryDTO, 0, len(entries))
	for _, e := range entries {
		items = append(items, entryDTO{
			ID:          e.ID,
			TaskID:      e.TaskID,
			Amount:      e.Amount,
			ReferenceID: e.ReferenceID,
			Flow:        e.Flow,
			EntryType:   e.EntryType,
			Message:     e.Message,
			CreatedAt:   e.CreatedAt.Format(time.RFC3339),
		})
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data: map[string]interface{}{
			"data": items,
			"pagination": map[string]interface{}{
				"page":        page,
				"limit":       limit,
				"total_rows":  totalRows,
				"total_pages": totalPages,
			},
		},
	})
}
