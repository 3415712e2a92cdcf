package users

import (
	"errors"
	"net/http"

	"github.com/ashitoshh01/do-or-due-sub000/engine"
	"github.com/ashitoshh01/do-or-due-sub000/notifier"
	"github.com/ashitoshh01/do-or-due-sub000/settlement"
	"github.com/ashitoshh01/do-or-due-sub000/utils"

	"gorm.io/gorm"
)

// Controller carries the shared handles for all user endpoints.
type Controller struct {
	DB   *gorm.DB
	Push *notifier.Client
}

func NewController(db *gorm.DB, push *notifier.Client) *Controller {
	return &Controller{DB: db, Push: push}
}

// requireProfile resolves the caller's profile id or writes the error response.
func requireProfile(w http.ResponseWriter, r *http.Request) (uint, bool) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return 0, false
	}
	return uid, true
}

// writeLifecycleError maps lifecycle errors onto HTTP statuses. Validation
// failures are 400, missing rows 404, illegal transitions 409.
func writeLifecycleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, engine.ErrInvalidStake),
		errors.Is(err, engine.ErrInsufficientBalance),
		errors.Is(err, engine.ErrInvalidDeadline):
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: err.Error()})
	case errors.Is(err, settlement.ErrTaskNotFound):
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Task not found"})
	case errors.Is(err, engine.ErrAlreadySettled),
		errors.Is(err, engine.ErrInvalidState):
		utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: err.Error()})
	default:
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
	}
}
