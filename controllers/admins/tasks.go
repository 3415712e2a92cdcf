package admins

import (
	"errors"
	"log"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ashitoshh01/do-or-due-sub000/engine"
	"github.com/ashitoshh01/do-or-due-sub000/middleware"
	"github.com/ashitoshh01/do-or-due-sub000/models"
	"github.com/ashitoshh01/do-or-due-sub000/notifier"
	"github.com/ashitoshh01/do-or-due-sub000/settlement"
	"github.com/ashitoshh01/do-or-due-sub000/utils"

	"github.com/gorilla/mux"
)

// GET /v1/admin/tasks/pending?page=&limit=
// The review queue: tasks awaiting a verdict, oldest submission first, each
// with a short-lived presigned URL for its stored proof.
func (c *Controller) PendingReviewList(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 {
		limit = 20
	}

	var totalRows int64
	if err := c.DB.Model(&models.Task{}).Where("status = ?", engine.StatusPendingReview).Count(&totalRows).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}
	totalPages := int(math.Ceil(float64(totalRows) / float64(limit)))
	offset := (page - 1) * limit

	var tasks []models.Task
	if err := c.DB.Where("status = ?", engine.StatusPendingReview).
		Order("updated_at ASC").Limit(limit).Offset(offset).Find(&tasks).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}

	userIDs := make([]uint, 0, len(tasks))
	for _, t := range tasks {
		userIDs = append(userIDs, t.UserID)
	}
	nameByID := map[uint]string{}
	if len(userIDs) > 0 {
		var users []models.User
		c.DB.Where("id IN ?", userIDs).Find(&users)
		for _, u := range users {
			nameByID[u.ID] = u.Name
		}
	}

	type reviewDTO struct {
		models.Task
		OwnerName string `json:"owner_name"`
		ProofView string `json:"proof_view,omitempty"`
	}
	items := make([]reviewDTO, 0, len(tasks))
	for _, t := range tasks {
		dto := reviewDTO{Task: t, OwnerName: nameByID[t.UserID]}
		if t.ProofURL != nil {
			if strings.HasPrefix(*t.ProofURL, "proofs/") {
				if url, err := utils.PresignProofURL(r.Context(), *t.ProofURL, 15*time.Minute); err == nil {
					dto.ProofView = url
				} else {
					log.Printf("[admin] presign failed for %s: %v", *t.ProofURL, err)
				}
			} else {
				dto.ProofView = *t.ProofURL
			}
		}
		items = append(items, dto)
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

// POST /v1/admin/tasks/{id}/approve
func (c *Controller) ApproveTask(w http.ResponseWriter, r *http.Request) {
	taskID, ok := taskPathID(w, r)
	if !ok {
		return
	}
	task, err := settlement.Approve(c.DB, taskID, time.Local)
	if err != nil {
		writeReviewError(w, err)
		return
	}

	if tokens := c.Push.UserTokens(task.UserID); len(tokens) > 0 {
		c.Push.SendAsync(notifier.Message{
			Title:  "Task approved!",
			Body:   "Your proof for \"" + task.Objective + "\" was approved. Stake returned with reward.",
			Tokens: tokens,
			Data:   map[string]string{"task_id": strconv.FormatUint(uint64(task.ID), 10), "verdict": "approved"},
		})
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Task approved, stake and reward credited", Data: task})
}

type rejectRequest struct {
	Reason string `json:"reason" validate:"required,maxlen=500"`
}

// POST /v1/admin/tasks/{id}/reject
func (c *Controller) RejectTask(w http.ResponseWriter, r *http.Request) {
	taskID, ok := taskPathID(w, r)
	if !ok {
		return
	}
	var req rejectRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}
	task, err := settlement.Reject(c.DB, taskID, strings.TrimSpace(req.Reason))
	if err != nil {
		writeReviewError(w, err)
		return
	}

	if tokens := c.Push.UserTokens(task.UserID); len(tokens) > 0 {
		c.Push.SendAsync(notifier.Message{
			Title:  "Proof rejected",
			Body:   "Your proof was rejected: " + strings.TrimSpace(req.Reason),
			Tokens: tokens,
			Data:   map[string]string{"task_id": strconv.FormatUint(uint64(task.ID), 10), "verdict": "rejected"},
		})
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Task rejected, stake forfeited", Data: task})
}

func taskPathID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	idStr := mux.Vars(r)["id"]
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid id"})
		return 0, false
	}
	return uint(id), true
}

func writeReviewError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, settlement.ErrTaskNotFound):
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Task not found"})
	case errors.Is(err, engine.ErrAlreadySettled), errors.Is(err, engine.ErrInvalidState):
		utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: err.Error()})
	default:
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
	}
}
