package users

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/ashitoshh01/do-or-due-sub000/models"
	"github.com/ashitoshh01/do-or-due-sub000/settlement"
	"github.com/ashitoshh01/do-or-due-sub000/utils"

	"github.com/google/uuid"
)

const maxProofBytes = 8 << 20 // 8 MiB

var allowedProofExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".heic": true,
	".pdf":  true,
}

// POST /v1/users/tasks/{id}/proof  (multipart field "proof")
// The image goes to the bucket first; the task row only flips to
// pending_review once the object is stored, so a reviewed task always has a
// retrievable proof.
func (c *Controller) UploadProof(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireProfile(w, r)
	if !ok {
		return
	}
	taskID, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxProofBytes); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid multipart form"})
		return
	}
	file, header, err := r.FormFile("proof")
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Missing proof file"})
		return
	}
	defer file.Close()

	if header.Size > maxProofBytes {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Proof file too large (max 8MB)"})
		return
	}
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedProofExt[ext] {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Unsupported proof file type"})
		return
	}

	objectName := fmt.Sprintf("proofs/%d/%s%s", uid, uuid.NewString(), ext)
	if err := utils.UploadProof(r.Context(), objectName, file, header.Size); err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to store proof"})
		return
	}

	task, err := settlement.SubmitProof(c.DB, uid, taskID, objectName)
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

// aiVerifyProof is the automated pre-check slot. The current model accepts
// every proof; the human review verdict is what settles the task.
func aiVerifyProof(_ *models.Task) bool {
	return true
}
