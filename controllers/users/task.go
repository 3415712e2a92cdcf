package users

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ashitoshh01/do-or-due-sub000/engine"
	"github.com/ashitoshh01/do-or-due-sub000/middleware"
	"github.com/ashitoshh01/do-or-due-sub000/models"
	"github.com/ashitoshh01/do-or-due-sub000/settlement"
	"github.com/ashitoshh01/do-or-due-sub000/utils"

	"github.com/gorilla/mux"
)

type createTaskRequest struct {
	Objective string `json:"objective" validate:"required,maxlen=500"`
	Stake     int64  `json:"stake" validate:"required"`
	Deadline  string `json:"deadline" validate:"required"`
}

// POST /v1/users/tasks
func (c *Controller) CreateTask(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireProfile(w, r)
	if !ok {
		return
	}
	var req createTaskRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}
	deadline, err := time.Parse(time.RFC3339, req.Deadline)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "deadline must be RFC3339"})
		return
	}

	task, err := settlement.CreateTask(c.DB, uid, strings.TrimSpace(req.Objective), req.Stake, deadline)
	if err != nil {
		writeLifecycleError(w, err)
		return
	}
	c.notifyReviewers(stakedAlert(task.Objective, task.Stake))
	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{Success: true, Message: "Task created, stake locked", Data: task})
}

// GET /v1/users/tasks?status=&page=&limit=
func (c *Controller) ListTasks(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireProfile(w, r)
	if !ok {
		return
	}

	status := strings.TrimSpace(r.URL.Query().Get("status"))
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 {
		limit = 10
	}

	countQuery := c.DB.Model(&models.Task{}).Where("user_id = ?", uid)
	if status != "" && status != "null" {
		countQuery = countQuery.Where("status = ?", status)
	}
	var totalRows int64
	if err := countQuery.Count(&totalRows).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}

	totalPages := int(math.Ceil(float64(totalRows) / float64(limit)))
	offset := (page - 1) * limit

	var tasks []models.Task
	query := c.DB.Where("user_id = ?", uid)
	if status != "" && status != "null" {
		query = query.Where("status = ?", status)
	}
	if err := query.Order("deadline ASC").Limit(limit).Offset(offset).Find(&tasks).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}

	// Overdue is derived for display; the stored status stays pending until
	// an expiry call settles the row.
	now := time.Now()
	type taskDTO struct {
		models.Task
		Overdue bool `json:"overdue"`
	}
	items := make([]taskDTO, 0, len(tasks))
	for _, t := range tasks {
		items = append(items, taskDTO{Task: t, Overdue: engine.Overdue(t.Status, t.Deadline, now)})
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

// GET /v1/users/tasks/{id}
func (c *Controller) GetTask(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireProfile(w, r)
	if !ok {
		return
	}
	taskID, ok := pathID(w, r)
	if !ok {
		return
	}
	var task models.Task
	if err := c.DB.Where("id = ? AND user_id = ?", taskID, uid).First(&task).Error; err != nil {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Task not found"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: map[string]interface{}{
		"task":    task,
		"overdue": engine.Overdue(task.Status, task.Deadline, time.Now()),
	}})
}

type submitProofLinkRequest struct {
	ProofURL string `json:"proof_url" validate:"required,maxlen=512"`
}

// PUT /v1/users/tasks/{id}/proof-link
// Link proofs skip the upload path; the URL is stored as-is.
func (c *Controller) SubmitProofLink(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireProfile(w, r)
	if !ok {
		return
	}
	taskID, ok := pathID(w, r)
	if !ok {
		return
	}
	var req submitProofLinkRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}
	task, err := settlement.SubmitProof(c.DB, uid, taskID, strings.TrimSpace(req.ProofURL))
	if err != nil {
		writeLifecycleError(w, err)
		return
	}
	c.notifyReviewers(reviewAlert(task.Objective))
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Proof submitted for review", Data: map[string]interface{}{
		"task":        task,
		"ai_verified": aiVerifyProof(task),
	}})
}

// POST /v1/users/tasks/{id}/expire
// The owner acknowledges a missed deadline without waiting for the sweep.
func (c *Controller) ExpireTask(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireProfile(w, r)
	if !ok {
		return
	}
	taskID, ok := pathID(w, r)
	if !ok {
		return
	}
	expired, task, err := settlement.Expire(c.DB, uid, taskID)
	if err != nil {
		writeLifecycleError(w, err)
		return
	}
	if !expired {
		utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Task is not overdue yet", Data: map[string]interface{}{"expired": false}})
		return
	}

	// The task just settled failed, so the owner gets the same comeback nudge
	// the scheduled sweep sends.
	if tokens := c.Push.UserTokens(uid); len(tokens) > 0 {
		msg := comebackAlert(task.Objective)
		msg.Tokens = tokens
		c.Push.SendAsync(msg)
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Task expired, stake forfeited", Data: map[string]interface{}{
		"expired": true,
		"task":    task,
	}})
}

func pathID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	idStr := mux.Vars(r)["id"]
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid id"})
		return 0, false
	}
	return uint(id), true
}
